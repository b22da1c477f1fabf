package geom

import "math"

// Point is a 2D coordinate in screen space (y grows downwards).
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

func (p Point) Scale(k float64) Point { return Point{X: p.X * k, Y: p.Y * k} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Positive reports whether both coordinates are strictly positive. Tracking
// sources report off-screen or missing hands with non-positive coordinates.
func (p Point) Positive() bool {
	return p.X > 0 && p.Y > 0
}

// Within reports whether p lies inside the closed rectangle [0,w]x[0,h].
func (p Point) Within(w, h float64) bool {
	return p.X >= 0 && p.X <= w && p.Y >= 0 && p.Y <= h
}
