package gesture

import "time"

// HandsUpDetector recognises the rightmost hand being raised quickly with an
// open palm while held on the left side of the screen. It fires once per
// raise and only looks at frames it has not seen before.
type HandsUpDetector struct {
	// MinRise is the upward movement in pixels between consecutive frames.
	MinRise      float64
	MinFingers   int
	LeftFraction float64
	Width        float64

	prevY    float64
	havePrev bool
	armed    bool
	lastSeen time.Time
}

func NewHandsUpDetector(width float64) *HandsUpDetector {
	return &HandsUpDetector{
		MinRise:      6,
		MinFingers:   3,
		LeftFraction: 0.25,
		Width:        width,
		armed:        true,
	}
}

// Observe feeds the latest frame and reports whether the gesture fired.
func (d *HandsUpDetector) Observe(f Frame) bool {
	if !f.Timestamp.IsZero() && f.Timestamp.Equal(d.lastSeen) {
		return false
	}
	d.lastSeen = f.Timestamp

	if len(f.Hands) == 0 {
		d.havePrev = false
		d.armed = true
		return false
	}
	right := f.Hands[len(f.Hands)-1]

	fired := false
	if d.havePrev && right.Positive() {
		rising := d.prevY-right.Y >= d.MinRise
		if rising && len(f.Fingers) >= d.MinFingers && right.X < d.LeftFraction*d.Width {
			fired = d.armed
			d.armed = false
		} else if !rising {
			d.armed = true
		}
	}
	d.prevY = right.Y
	d.havePrev = true
	return fired
}
