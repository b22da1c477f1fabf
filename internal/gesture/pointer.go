package gesture

import (
	"time"

	"github.com/iburimskiy/leap-visualizer/internal/geom"
	"github.com/iburimskiy/leap-visualizer/internal/latest"
)

// Pointer turns a mouse cursor into a one-hand frame, for running without
// tracking hardware. Holding the button adds a finger marker at the cursor.
type Pointer struct {
	Out *latest.Cell[Frame]

	last    geom.Point
	inside  bool
	pressed bool
	started bool
}

// Move publishes a frame when the cursor state changed since the last call.
// A cursor outside the surface publishes a frame with no hands.
func (p *Pointer) Move(pos geom.Point, inside, pressed bool) {
	if p.started && pos == p.last && inside == p.inside && pressed == p.pressed {
		return
	}
	p.started = true
	p.last, p.inside, p.pressed = pos, inside, pressed

	f := Frame{Timestamp: time.Now()}
	if inside {
		f.Hands = []geom.Point{pos}
		if pressed {
			f.Fingers = []geom.Point{pos}
		}
	}
	p.Out.Publish(f)
}
