package game

import (
	"math"

	"github.com/iburimskiy/leap-visualizer/internal/field"
)

// BeatTransition steps the beat circle radius toward a target derived from
// the audio magnitude. A transition runs to completion before the next
// sample can start another one, so the radius moves monotonically between
// consecutive targets.
type BeatTransition struct {
	Baseline float64
	Scale    float64
	Step     int

	target  int
	growing bool
	active  bool
}

// NewBeatTransition creates a settled transition whose stored target is the
// circle's current radius.
func NewBeatTransition(baseline, scale float64, step int, c *field.Circle) *BeatTransition {
	if step < 1 {
		step = 1
	}
	return &BeatTransition{
		Baseline: baseline,
		Scale:    scale,
		Step:     step,
		target:   c.Radius(),
	}
}

// TargetFor maps a magnitude to a radius within the circle's bounds. Louder
// low frequencies shrink the circle. Negative or NaN magnitudes read as 0.
func (b *BeatTransition) TargetFor(magnitude float64, c *field.Circle) int {
	if !(magnitude > 0) {
		magnitude = 0
	}
	r := b.Scale * (b.Baseline - magnitude)
	if r < math.MinInt32 {
		r = math.MinInt32
	} else if r > math.MaxInt32 {
		r = math.MaxInt32
	}
	return c.Clamp(int(math.Round(r)))
}

// Advance moves the circle one step. With haveSample set and no transition
// running, a target different from the current radius starts a new one.
// Within one step of the target the radius snaps onto it and the transition
// completes.
func (b *BeatTransition) Advance(c *field.Circle, target int, haveSample bool) {
	if !b.active && haveSample && target != c.Radius() {
		b.target = c.Clamp(target)
		b.growing = b.target > c.Radius()
		b.active = true
	}
	if !b.active {
		return
	}

	r := c.Radius()
	if abs(b.target-r) <= b.Step {
		c.SetRadius(b.target)
		b.active = false
		return
	}
	if b.growing {
		c.SetRadius(r + b.Step)
	} else {
		c.SetRadius(r - b.Step)
	}
}

// Target is the radius the current or last transition aims for.
func (b *BeatTransition) Target() int { return b.target }

// Growing reports the direction of the current or last transition.
func (b *BeatTransition) Growing() bool { return b.growing }

// Active reports whether a transition is in progress.
func (b *BeatTransition) Active() bool { return b.active }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
