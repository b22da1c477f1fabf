// Package gesture delivers hand and finger positions from tracking hardware,
// a relay server or the mouse as screen-space frames.
package gesture

import (
	"slices"
	"time"

	"github.com/iburimskiy/leap-visualizer/internal/geom"
)

// MaxHands is the number of hands the visualizer draws.
const MaxHands = 2

// Frame is one tracking sample in screen coordinates.
type Frame struct {
	Hands     []geom.Point
	Fingers   []geom.Point
	Timestamp time.Time
}

// tidy orders hands left to right and drops hands beyond MaxHands.
func (f Frame) tidy() Frame {
	slices.SortStableFunc(f.Hands, func(a, b geom.Point) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		}
		return 0
	})
	if len(f.Hands) > MaxHands {
		f.Hands = f.Hands[:MaxHands]
	}
	return f
}

// Viewport is the screen area normalised coordinates are projected onto.
type Viewport struct {
	Width, Height float64
}

// Project maps a normalised point (0..1, y down) into the viewport.
func (v Viewport) Project(p geom.Point) geom.Point {
	return geom.Pt(p.X*v.Width, p.Y*v.Height)
}

func (v Viewport) project(f Frame) Frame {
	hands := make([]geom.Point, len(f.Hands))
	for i, h := range f.Hands {
		hands[i] = v.Project(h)
	}
	fingers := make([]geom.Point, len(f.Fingers))
	for i, p := range f.Fingers {
		fingers[i] = v.Project(p)
	}
	return Frame{Hands: hands, Fingers: fingers, Timestamp: f.Timestamp}
}
