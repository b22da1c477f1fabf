// Package game drives the particle field from audio and gesture samples and
// hosts it in an ebiten window.
package game

import (
	"math/rand"
	"time"

	"github.com/iburimskiy/leap-visualizer/internal/audio"
	"github.com/iburimskiy/leap-visualizer/internal/config"
	"github.com/iburimskiy/leap-visualizer/internal/field"
	"github.com/iburimskiy/leap-visualizer/internal/geom"
	"github.com/iburimskiy/leap-visualizer/internal/gesture"
)

// AmplitudeSource yields the latest spectrum frame without blocking.
type AmplitudeSource interface {
	Load() (audio.AmplitudeSample, bool)
}

// GestureSource yields the latest tracking frame without blocking.
type GestureSource interface {
	Load() (gesture.Frame, bool)
}

// RateSource reports the media playback rate.
type RateSource interface {
	Rate() float64
}

// Controller fuses the asynchronous audio and gesture samples into one
// deterministic update per tick. Ticks must not run concurrently.
type Controller struct {
	field     *field.Field
	beat      *BeatTransition
	amplitude AmplitudeSource
	gestures  GestureSource
	rate      RateSource

	fingerRadius float64

	magnitude   float64
	handVisible [gesture.MaxHands]bool
	fingers     []geom.Point
}

// NewController creates the particle field for a width x height surface and
// wires it to its sources. Any source may be nil.
func NewController(cfg config.Config, width, height float64, amp AmplitudeSource, gestures GestureSource, rate RateSource) *Controller {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	f := field.New(field.Options{
		Particles:  cfg.Particles,
		TrailSize:  cfg.TrailSize,
		BaseSpeed:  cfg.BaseSpeed,
		Palette:    config.Palette,
		Width:      width,
		Height:     height,
		BeatRadius: cfg.BeatInitialRadius,
		BeatMin:    cfg.BeatMinRadius,
		BeatMax:    cfg.BeatMaxRadius,
		HandRadius: cfg.HandRadius,
		Rand:       rand.New(rand.NewSource(seed)),
	})
	return &Controller{
		field:        f,
		beat:         NewBeatTransition(cfg.BeatBaseline, cfg.BeatScale, cfg.BeatStep, f.Beat()),
		amplitude:    amp,
		gestures:     gestures,
		rate:         rate,
		fingerRadius: float64(cfg.FingerRadius),
	}
}

// Tick runs one update for the surface's current size and draws the result.
func (c *Controller) Tick(s Surface) {
	w, h := s.Size()
	c.Step(float64(w), float64(h))
	c.Render(s)
}

// Step updates beat circle, hand circles and particles for one tick.
func (c *Controller) Step(width, height float64) {
	beat := c.field.Beat()
	beat.SetPosition(geom.Pt(width/2, height/2))

	var target int
	var haveSample bool
	if c.amplitude != nil {
		if s, ok := c.amplitude.Load(); ok {
			c.magnitude = s.Magnitude()
			target = c.beat.TargetFor(c.magnitude, beat)
			haveSample = true
		}
	}
	c.beat.Advance(beat, target, haveSample)

	c.handVisible = [gesture.MaxHands]bool{}
	c.fingers = c.fingers[:0]
	if c.gestures != nil {
		if f, ok := c.gestures.Load(); ok {
			c.applyGestures(f)
		}
	}

	rate := 1.0
	if c.rate != nil {
		rate = c.rate.Rate()
	}
	c.field.SetSpeed(rate)
	c.field.Update(width, height)
}

// applyGestures moves the hand circles to valid hand positions. A hand that is
// missing or off screen leaves its circle where it was and hidden.
func (c *Controller) applyGestures(f gesture.Frame) {
	circles := [gesture.MaxHands]*field.Circle{c.field.LeftHand(), c.field.RightHand()}
	for i, h := range f.Hands {
		if i >= len(circles) {
			break
		}
		if h.Positive() {
			circles[i].SetPosition(h)
			c.handVisible[i] = true
		}
	}
	for _, p := range f.Fingers {
		if p.Positive() {
			c.fingers = append(c.fingers, p)
		}
	}
}

// Render draws the state produced by the last Step.
func (c *Controller) Render(s Surface) {
	beat := c.field.Beat()
	if beat.Radius() > 0 {
		s.FillCircle(beat.Center(), float64(beat.Radius()), config.BeatColor)
	}

	hands := [gesture.MaxHands]*field.Circle{c.field.LeftHand(), c.field.RightHand()}
	for i, hc := range hands {
		if c.handVisible[i] {
			s.FillCircle(hc.Center(), float64(hc.Radius()), config.HandColor)
		}
	}
	for _, p := range c.fingers {
		s.FillCircle(p, c.fingerRadius, config.FingerColor)
	}

	for _, p := range c.field.Particles() {
		trail := p.Trail()
		for i, n := 0, trail.Len(); i < n; i++ {
			pt := trail.At(i)
			size := 2.0
			if c.field.Occluded(pt) {
				size = 1
			}
			s.Dot(pt, size, p.Color)
		}
	}
}

func (c *Controller) Field() *field.Field { return c.field }

func (c *Controller) Beat() *BeatTransition { return c.beat }

// Magnitude is the low-frequency magnitude used by the last Step.
func (c *Controller) Magnitude() float64 { return c.magnitude }

// HandVisible reports whether hand i (0 left, 1 right) was drawn this tick.
func (c *Controller) HandVisible(i int) bool {
	return i >= 0 && i < len(c.handVisible) && c.handVisible[i]
}

// Fingers returns the finger positions drawn this tick.
func (c *Controller) Fingers() []geom.Point { return c.fingers }
