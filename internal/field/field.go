// Package field implements the particle population driven by the visualizer:
// particles with fading trails, plus the beat and hand circles used to decide
// how densely each trail point is drawn.
package field

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/iburimskiy/leap-visualizer/internal/geom"
)

// Options configures a Field.
type Options struct {
	Particles int
	TrailSize int
	// BaseSpeed is the displacement per tick at speed factor 1.
	BaseSpeed float64
	Palette   []color.RGBA

	Width, Height float64

	BeatRadius, BeatMin, BeatMax int
	HandRadius                   int

	// Rand defaults to a time-seeded source.
	Rand *rand.Rand
}

// Field owns a fixed-size particle population and the three circle regions.
type Field struct {
	particles []*Particle
	scratch   []*Particle

	size      int
	trailSize int
	baseSpeed float64
	speed     float64
	palette   []color.RGBA
	rng       *rand.Rand

	width, height float64

	beat, left, right *Circle
}

// New creates a field and spawns the full population inside the given bounds.
func New(opts Options) *Field {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	palette := opts.Palette
	if len(palette) == 0 {
		palette = []color.RGBA{{R: 255, G: 255, B: 255, A: 255}}
	}
	baseSpeed := opts.BaseSpeed
	if baseSpeed <= 0 {
		baseSpeed = 1
	}

	center := geom.Pt(opts.Width/2, opts.Height/2)
	// Hand circles start parked off the surface until a hand is seen.
	parked := geom.Pt(-2*float64(opts.HandRadius)-1, -2*float64(opts.HandRadius)-1)
	f := &Field{
		particles: make([]*Particle, 0, opts.Particles),
		scratch:   make([]*Particle, 0, opts.Particles),
		size:      opts.Particles,
		trailSize: opts.TrailSize,
		baseSpeed: baseSpeed,
		speed:     1,
		palette:   palette,
		rng:       rng,
		width:     opts.Width,
		height:    opts.Height,
		beat:      NewCircle(center, opts.BeatRadius, opts.BeatMin, opts.BeatMax),
		left:      NewCircle(parked, opts.HandRadius, opts.HandRadius, opts.HandRadius),
		right:     NewCircle(parked, opts.HandRadius, opts.HandRadius, opts.HandRadius),
	}
	f.Spawn(opts.Particles)
	return f
}

// Spawn adds count particles at random positions within the current bounds,
// each moving in a random direction. count <= 0 is a no-op.
func (f *Field) Spawn(count int) {
	for i := 0; i < count; i++ {
		pos := geom.Pt(f.rng.Float64()*f.width, f.rng.Float64()*f.height)
		angle := f.rng.Float64() * 2 * math.Pi
		vel := geom.Pt(math.Cos(angle), math.Sin(angle)).Scale(f.baseSpeed)
		c := f.palette[f.rng.Intn(len(f.palette))]
		f.particles = append(f.particles, NewParticle(pos, vel, c, f.trailSize))
	}
}

// Update advances every particle once, culls those whose current position has
// left [0,width]x[0,height] and spawns exactly as many replacements. It
// returns the number of particles replaced.
func (f *Field) Update(width, height float64) int {
	f.width, f.height = width, height

	for _, p := range f.particles {
		p.Advance(f.speed)
	}

	kept := f.scratch[:0]
	for _, p := range f.particles {
		if !p.OutOfBounds(width, height) {
			kept = append(kept, p)
		}
	}
	culled := len(f.particles) - len(kept)

	clear(f.particles)
	f.scratch = f.particles[:0]
	f.particles = kept

	f.Spawn(culled)
	return culled
}

// SetSpeed sets the factor applied to velocities by subsequent updates.
// Zero or negative rates are accepted: motion stops or reverses.
func (f *Field) SetSpeed(rate float64) { f.speed = rate }

func (f *Field) Speed() float64 { return f.speed }

// Particles returns the live population. The slice is owned by the field and
// valid until the next Update.
func (f *Field) Particles() []*Particle { return f.particles }

func (f *Field) Len() int { return len(f.particles) }

// Size is the target population.
func (f *Field) Size() int { return f.size }

func (f *Field) TrailSize() int { return f.trailSize }

func (f *Field) Beat() *Circle { return f.beat }

func (f *Field) LeftHand() *Circle { return f.left }

func (f *Field) RightHand() *Circle { return f.right }

// Occluded reports whether p lies inside any of the three circles.
func (f *Field) Occluded(p geom.Point) bool {
	return f.beat.Contains(p) || f.left.Contains(p) || f.right.Contains(p)
}
