package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/leap-visualizer/internal/audio"
	"github.com/iburimskiy/leap-visualizer/internal/config"
	"github.com/iburimskiy/leap-visualizer/internal/game"
	"github.com/iburimskiy/leap-visualizer/internal/gesture"
	"github.com/iburimskiy/leap-visualizer/internal/latest"
	"github.com/iburimskiy/leap-visualizer/internal/terminal"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [track.wav|.mp3|.flac ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("log: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else if cfg.Terminal {
		log.SetOutput(io.Discard)
	}

	player := audio.NewPlayer(cfg.SpectrumBands, cfg.SpectrumWindow, cfg.SpectrumHop, cfg.SensitivityDB, config.MinRate, config.MaxRate)
	defer player.Close()

	playlist := &audio.Playlist{}
	for _, path := range flag.Args() {
		playlist.Add(path)
	}
	if path, ok := playlist.Current(); ok {
		if err := player.Load(path); err != nil {
			log.Printf("audio: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gestures := &latest.Cell[gesture.Frame]{}
	var client *gesture.Client
	if cfg.GestureURL == "leap" {
		cfg.GestureURL = gesture.DefaultLeapURL
	}
	if cfg.GestureURL != "" {
		client = gesture.NewClient(cfg.GestureURL, gestures, gesture.Viewport{Width: config.FieldWidth, Height: config.FieldHeight})
		go func() {
			if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("gesture: %v", err)
			}
		}()
	}
	usePointer := client == nil && cfg.Pointer

	var err error
	if cfg.Terminal {
		err = runTerminal(ctx, cfg, player, playlist, gestures, client, usePointer)
	} else {
		err = runWindow(cfg, player, playlist, gestures, usePointer)
	}
	if err != nil {
		log.Fatalf("visualizer: %v", err)
	}
}

func runWindow(cfg config.Config, player *audio.Player, playlist *audio.Playlist, gestures *latest.Cell[gesture.Frame], usePointer bool) error {
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Leap Visualizer - O: open, Space: play/pause, N/P: next/prev, +/-: rate, Esc/Q: quit")
	ebiten.SetTPS(cfg.TPS)

	g := game.NewGame(cfg, player, playlist, gestures, usePointer)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func runTerminal(ctx context.Context, cfg config.Config, player *audio.Player, playlist *audio.Playlist, gestures *latest.Cell[gesture.Frame], client *gesture.Client, usePointer bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	// the controller follows the surface size every tick; the initial size
	// only places the first particles
	surface := terminal.NewSurface(screen, config.Background)
	w, h := surface.Size()
	if client != nil {
		client.Resize(float64(w), float64(h))
	}
	ctrl := game.NewController(cfg, float64(w), float64(h), &player.Samples, gestures, player)

	var pointer *gesture.Pointer
	if usePointer {
		pointer = &gesture.Pointer{Out: gestures}
	}
	host := terminal.NewHost(screen, ctrl, pointer)

	skip := func(move func() (string, bool)) {
		if path, ok := move(); ok {
			if err := player.Load(path); err != nil {
				log.Printf("audio: %v", err)
			}
		}
	}
	host.OnKey = func(r rune) {
		switch r {
		case ' ':
			player.TogglePause()
		case 'n':
			skip(playlist.Next)
		case 'p':
			skip(playlist.Prev)
		case '+', '=':
			player.SetRate(player.Rate() + config.RateStep)
		case '-':
			player.SetRate(player.Rate() - config.RateStep)
		}
	}

	handsUp := gesture.NewHandsUpDetector(float64(w))
	host.OnTick = func() {
		if f, ok := gestures.Load(); ok && handsUp.Observe(f) {
			log.Printf("gesture: hands up, skipping track")
			skip(playlist.Next)
		}
		if player.TakeFinished() {
			skip(playlist.Next)
		}
	}
	return host.Run(ctx, cfg.TPS)
}
