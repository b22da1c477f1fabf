package main

import (
	"math"
	"time"

	"github.com/iburimskiy/leap-visualizer/internal/geom"
	"github.com/iburimskiy/leap-visualizer/internal/gesture"
)

// orbit fakes a tracker: hands circle the viewport centre in normalised
// coordinates, each with a fan of five fingers above the palm.
type orbit struct {
	hands  int
	period time.Duration
	start  time.Time
}

const (
	orbitRadius = 0.3
	fingerReach = 0.08
	fingerSpan  = math.Pi / 2
)

func (o orbit) frame(now time.Time) gesture.Frame {
	f := gesture.Frame{Timestamp: now}
	if o.hands <= 0 || o.period <= 0 {
		return f
	}
	phase := 2 * math.Pi * float64(now.Sub(o.start)%o.period) / float64(o.period)
	for i := 0; i < o.hands && i < gesture.MaxHands; i++ {
		a := phase + float64(i)*math.Pi
		palm := geom.Pt(0.5+orbitRadius*math.Cos(a), 0.5+orbitRadius*math.Sin(a))
		f.Hands = append(f.Hands, palm)
		for k := 0; k < 5; k++ {
			// fan from upper left to upper right; y grows downward
			fa := -math.Pi/2 - fingerSpan/2 + fingerSpan*float64(k)/4
			f.Fingers = append(f.Fingers, palm.Add(geom.Pt(fingerReach*math.Cos(fa), fingerReach*math.Sin(fa))))
		}
	}
	return f
}
