package field

import (
	"image/color"

	"github.com/iburimskiy/leap-visualizer/internal/geom"
)

// Particle is a single moving point with a bounded trail.
type Particle struct {
	Position geom.Point
	Velocity geom.Point
	Color    color.RGBA
	trail    Trail
}

// NewParticle creates a particle with an empty trail of trailSize entries.
func NewParticle(pos, vel geom.Point, c color.RGBA, trailSize int) *Particle {
	return &Particle{
		Position: pos,
		Velocity: vel,
		Color:    c,
		trail:    newTrail(trailSize),
	}
}

// Advance records the current position in the trail, then moves the particle
// by its velocity scaled by speedFactor. Bounds are not checked here.
func (p *Particle) Advance(speedFactor float64) {
	p.trail.Push(p.Position)
	p.Position = p.Position.Add(p.Velocity.Scale(speedFactor))
}

// OutOfBounds reports whether the current position lies outside [0,w]x[0,h].
func (p *Particle) OutOfBounds(width, height float64) bool {
	return !p.Position.Within(width, height)
}

// Trail exposes the recorded positions for rendering.
func (p *Particle) Trail() *Trail { return &p.trail }
