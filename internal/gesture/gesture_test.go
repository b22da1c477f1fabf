package gesture

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/iburimskiy/leap-visualizer/internal/geom"
	"github.com/iburimskiy/leap-visualizer/internal/latest"
)

var vp = Viewport{Width: 1000, Height: 500}

func TestDecodeLeap(t *testing.T) {
	t.Parallel()

	t.Run("handshake is ignored", func(t *testing.T) {
		t.Parallel()
		_, ok, err := DecodeLeap([]byte(`{"serviceVersion":"2.3.1","version":6}`), vp)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("hands and fingers are projected", func(t *testing.T) {
		t.Parallel()
		msg := `{
			"id": 7,
			"hands": [
				{"id": 2, "type": "right", "stabilizedPalmPosition": [50, 250, 0]},
				{"id": 1, "type": "left", "stabilizedPalmPosition": [-100, 200, 0]}
			],
			"pointables": [{"handId": 1, "stabilizedTipPosition": [0, 200, 0]}],
			"interactionBox": {"center": [0, 200, 0], "size": [200, 200, 200]}
		}`
		f, ok, err := DecodeLeap([]byte(msg), vp)
		require.NoError(t, err)
		require.True(t, ok)

		require.Len(t, f.Hands, 2)
		// ordered left to right; y flipped so higher hands are nearer the top
		assert.Equal(t, geom.Pt(0, 250), f.Hands[0])
		assert.Equal(t, geom.Pt(750, 125), f.Hands[1])
		require.Len(t, f.Fingers, 1)
		assert.Equal(t, geom.Pt(500, 250), f.Fingers[0])
	})

	t.Run("empty frame is a valid sample", func(t *testing.T) {
		t.Parallel()
		f, ok, err := DecodeLeap([]byte(`{"hands":[],"pointables":[],"interactionBox":{"center":[0,200,0],"size":[200,200,200]}}`), vp)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, f.Hands)
	})

	t.Run("garbage is malformed", func(t *testing.T) {
		t.Parallel()
		_, _, err := DecodeLeap([]byte(`{"hands": 3`), vp)
		assert.ErrorIs(t, err, ErrMalformedFrame)

		_, _, err = DecodeLeap([]byte(`{"hands":[],"interactionBox":{"center":[0,0,0],"size":[0,0,0]}}`), vp)
		assert.ErrorIs(t, err, ErrMalformedFrame)
	})
}

func TestTidyKeepsTwoHands(t *testing.T) {
	t.Parallel()
	f := Frame{Hands: []geom.Point{{X: 30}, {X: 10}, {X: 20}}}.tidy()
	assert.Equal(t, []geom.Point{{X: 10}, {X: 20}}, f.Hands)
}

func TestFrameCodec(t *testing.T) {
	t.Parallel()
	in := Frame{
		Hands:     []geom.Point{{X: 0.25, Y: 0.5}, {X: 0.75, Y: 0.5}},
		Fingers:   []geom.Point{{X: 0.1, Y: 0.2}},
		Timestamp: time.Unix(1700000000, 123),
	}
	out, err := UnmarshalFrame(MarshalFrame(in))
	require.NoError(t, err)
	assert.Equal(t, in.Hands, out.Hands)
	assert.Equal(t, in.Fingers, out.Fingers)
	assert.True(t, in.Timestamp.Equal(out.Timestamp))

	t.Run("unknown fields are skipped", func(t *testing.T) {
		b := protowire.AppendTag(nil, 9, protowire.VarintType)
		b = protowire.AppendVarint(b, 42)
		b = append(b, MarshalFrame(Frame{Hands: []geom.Point{{X: 1, Y: 2}}})...)
		f, err := UnmarshalFrame(b)
		require.NoError(t, err)
		assert.Equal(t, []geom.Point{{X: 1, Y: 2}}, f.Hands)
	})

	t.Run("truncated input is malformed", func(t *testing.T) {
		b := MarshalFrame(in)
		_, err := UnmarshalFrame(b[:len(b)-3])
		assert.ErrorIs(t, err, ErrMalformedFrame)
	})
}

func TestPointer(t *testing.T) {
	t.Parallel()
	var cell latest.Cell[Frame]
	p := Pointer{Out: &cell}

	p.Move(geom.Pt(40, 50), true, false)
	f, ok := cell.Load()
	require.True(t, ok)
	assert.Equal(t, []geom.Point{{X: 40, Y: 50}}, f.Hands)
	assert.Empty(t, f.Fingers)

	p.Move(geom.Pt(40, 50), true, true)
	f, _ = cell.Load()
	assert.Len(t, f.Fingers, 1)

	p.Move(geom.Pt(-3, 50), false, false)
	f, _ = cell.Load()
	assert.Empty(t, f.Hands)
}

func TestHandsUpDetector(t *testing.T) {
	t.Parallel()
	d := NewHandsUpDetector(1000)
	fingers := []geom.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}
	at := time.Unix(0, 0)
	frame := func(x, y float64, n int) Frame {
		at = at.Add(10 * time.Millisecond)
		return Frame{Hands: []geom.Point{{X: x, Y: y}}, Fingers: fingers[:n], Timestamp: at}
	}

	assert.False(t, d.Observe(frame(100, 300, 3)))
	assert.True(t, d.Observe(frame(100, 290, 3)), "raised on the left")
	assert.False(t, d.Observe(frame(100, 280, 3)), "still rising, already fired")

	same := frame(100, 280, 3)
	d.Observe(same)
	assert.False(t, d.Observe(same), "a repeated frame is not new movement")

	assert.False(t, d.Observe(frame(100, 280, 3)), "hand held still re-arms")
	assert.True(t, d.Observe(frame(100, 270, 3)))

	d.Observe(frame(100, 270, 3))
	assert.False(t, d.Observe(frame(100, 260, 2)), "needs an open hand")
	assert.False(t, d.Observe(frame(600, 250, 3)), "needs to be on the left")
}

func TestClientReceivesRelayFrames(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	var cell latest.Cell[Frame]
	c := NewClient("ws"+strings.TrimPrefix(srv.URL, "http"), &cell, vp)
	c.MinBackoff = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	require.Eventually(t, func() bool { return hub.Len() == 1 }, 2*time.Second, 5*time.Millisecond)

	hub.Broadcast(Frame{
		Hands:   []geom.Point{{X: 0.9, Y: 0.5}, {X: 0.1, Y: 0.5}},
		Fingers: []geom.Point{{X: 0.5, Y: 0.5}},
	})

	var got Frame
	require.Eventually(t, func() bool {
		var ok bool
		got, ok = cell.Load()
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, []geom.Point{{X: 100, Y: 250}, {X: 900, Y: 250}}, got.Hands)
	assert.Equal(t, []geom.Point{{X: 500, Y: 250}}, got.Fingers)
	assert.False(t, got.Timestamp.IsZero())

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("client did not stop")
	}
}

func TestClientDropsMalformedMessages(t *testing.T) {
	var cell latest.Cell[Frame]
	c := NewClient("ws://unused", &cell, vp)

	_, ok, err := c.decode(websocket.BinaryMessage, []byte{0x0a, 0xff})
	assert.ErrorIs(t, err, ErrMalformedFrame)
	assert.False(t, ok)

	c.Resize(200, 100)
	f, ok, err := c.decode(websocket.BinaryMessage, MarshalFrame(Frame{Hands: []geom.Point{{X: 0.5, Y: 0.5}}}))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(100, 50), f.Hands[0])
}
