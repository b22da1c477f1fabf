package field

import "github.com/iburimskiy/leap-visualizer/internal/geom"

// Trail is a fixed-capacity ring of the most recent particle positions.
// Once full, each push evicts the oldest entry.
type Trail struct {
	data []geom.Point
	pos  int
	full bool
}

func newTrail(capacity int) Trail {
	if capacity < 1 {
		capacity = 1
	}
	return Trail{data: make([]geom.Point, capacity)}
}

// Push appends p as the newest entry.
func (t *Trail) Push(p geom.Point) {
	t.data[t.pos] = p
	t.pos++
	if t.pos >= len(t.data) {
		t.pos = 0
		t.full = true
	}
}

// Len returns the number of stored positions.
func (t *Trail) Len() int {
	if t.full {
		return len(t.data)
	}
	return t.pos
}

// Cap returns the trail capacity.
func (t *Trail) Cap() int { return len(t.data) }

// At returns the i-th entry in temporal order, 0 being the oldest.
func (t *Trail) At(i int) geom.Point {
	if t.full {
		return t.data[(t.pos+i)%len(t.data)]
	}
	return t.data[i]
}

// Last returns the newest entry. ok is false for an empty trail.
func (t *Trail) Last() (p geom.Point, ok bool) {
	n := t.Len()
	if n == 0 {
		return geom.Point{}, false
	}
	return t.At(n - 1), true
}

// Append adds the trail contents, oldest first, to dst.
func (t *Trail) Append(dst []geom.Point) []geom.Point {
	for i, n := 0, t.Len(); i < n; i++ {
		dst = append(dst, t.At(i))
	}
	return dst
}
