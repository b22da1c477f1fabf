package gesture

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iburimskiy/leap-visualizer/internal/latest"
)

// Client reads frames from a websocket and publishes the newest one. Text
// messages are Leap Motion service JSON; binary messages are relay frames in
// normalised coordinates.
type Client struct {
	URL    string
	Out    *latest.Cell[Frame]
	Dialer *websocket.Dialer

	MinBackoff time.Duration
	MaxBackoff time.Duration

	viewport latest.Cell[Viewport]
}

// NewClient creates a client projecting frames onto vp.
func NewClient(url string, out *latest.Cell[Frame], vp Viewport) *Client {
	c := &Client{
		URL:        url,
		Out:        out,
		Dialer:     websocket.DefaultDialer,
		MinBackoff: 250 * time.Millisecond,
		MaxBackoff: 5 * time.Second,
	}
	c.viewport.Publish(vp)
	return c
}

// Resize changes the viewport used for frames received from now on.
func (c *Client) Resize(width, height float64) {
	c.viewport.Publish(Viewport{Width: width, Height: height})
}

// Run connects and reconnects until ctx is done. Losing the connection is not
// an error: the last published frame simply stays in place.
func (c *Client) Run(ctx context.Context) error {
	backoff := c.MinBackoff
	for {
		connected, err := c.session(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if connected {
			backoff = c.MinBackoff
		}
		log.Printf("gesture: %s: %v (retry in %v)", c.URL, err, backoff)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > c.MaxBackoff {
			backoff = c.MaxBackoff
		}
	}
}

func (c *Client) session(ctx context.Context) (connected bool, err error) {
	conn, _, err := c.Dialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		return false, fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()
	log.Printf("gesture: connected to %s", c.URL)

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	// Keeps the Leap service streaming while the window is unfocused.
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"background": true}`)); err != nil {
		return true, fmt.Errorf("configure: %w", err)
	}

	for {
		typ, data, err := conn.ReadMessage()
		if err != nil {
			return true, fmt.Errorf("read: %w", err)
		}
		f, ok, err := c.decode(typ, data)
		if err != nil {
			log.Printf("gesture: dropping message: %v", err)
			continue
		}
		if ok {
			c.Out.Publish(f)
		}
	}
}

func (c *Client) decode(typ int, data []byte) (Frame, bool, error) {
	vp, _ := c.viewport.Load()
	switch typ {
	case websocket.TextMessage:
		f, ok, err := DecodeLeap(data, vp)
		if ok {
			f.Timestamp = time.Now()
		}
		return f, ok, err
	case websocket.BinaryMessage:
		f, err := UnmarshalFrame(data)
		if err != nil {
			return Frame{}, false, err
		}
		f = vp.project(f).tidy()
		if f.Timestamp.IsZero() {
			f.Timestamp = time.Now()
		}
		return f, true, nil
	}
	return Frame{}, false, errors.New("unexpected message type")
}
