package field

import "github.com/iburimskiy/leap-visualizer/internal/geom"

// Circle is a disc with a mutable centre and an integer radius bounded to
// [min, max]. It only drives rendering decisions, never particle physics.
type Circle struct {
	center   geom.Point
	radius   int
	min, max int
}

// NewCircle returns a circle whose radius is kept within [min, max]. A
// negative min is raised to 0 and max is raised to min.
func NewCircle(center geom.Point, radius, min, max int) *Circle {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	c := &Circle{center: center, min: min, max: max}
	c.SetRadius(radius)
	return c
}

func (c *Circle) SetPosition(p geom.Point) { c.center = p }

// SetRadius stores r clamped to the circle's bounds.
func (c *Circle) SetRadius(r int) {
	c.radius = c.Clamp(r)
}

// Clamp limits r to the circle's radius bounds.
func (c *Circle) Clamp(r int) int {
	if r < c.min {
		return c.min
	}
	if r > c.max {
		return c.max
	}
	return r
}

func (c *Circle) Center() geom.Point { return c.center }

func (c *Circle) Radius() int { return c.radius }

func (c *Circle) Bounds() (min, max int) { return c.min, c.max }

// Contains reports whether p is within the current radius of the current centre.
func (c *Circle) Contains(p geom.Point) bool {
	return p.Dist(c.center) <= float64(c.radius)
}
