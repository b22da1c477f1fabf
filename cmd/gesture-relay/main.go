// Command gesture-relay serves synthetic hand tracking frames over a
// websocket, for driving the visualizer without tracking hardware.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/iburimskiy/leap-visualizer/internal/gesture"
)

func run(ctx context.Context, hub *gesture.Hub, o orbit, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if hub.Len() > 0 {
				hub.Broadcast(o.frame(now))
			}
		}
	}
}

func main() {
	addr := flag.String("addr", ":6438", "relay listen address")
	fps := flag.Int("fps", 60, "frames per second")
	hands := flag.Int("hands", 2, "number of synthetic hands (0-2)")
	period := flag.Duration("period", 4*time.Second, "time for one orbit")
	flag.Parse()

	if *fps <= 0 {
		log.Fatalf("fps must be positive, got %d", *fps)
	}

	hub := gesture.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go run(ctx, hub, orbit{hands: *hands, period: *period, start: time.Now()}, time.Second/time.Duration(*fps))

	http.Handle("/ws/gesture", hub)

	log.Printf("relaying gestures on ws://localhost%v/ws/gesture", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatalf("relay failed: %v", err)
	}
}
