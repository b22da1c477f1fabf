// Package terminal runs the visualizer inside a terminal, one character cell
// standing for a block of cellW x cellH pixels.
package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/leap-visualizer/internal/geom"
)

const (
	cellW = 8
	cellH = 16
)

// Surface maps pixel-space drawing onto terminal cells. It remembers each
// cell's background so dots drawn over a circle keep the circle's tint.
type Surface struct {
	screen     tcell.Screen
	background color.RGBA
	cols, rows int
	bg         []tcell.Color
}

func NewSurface(screen tcell.Screen, background color.RGBA) *Surface {
	s := &Surface{screen: screen, background: background}
	s.Clear()
	return s
}

// Clear resizes to the screen and paints every cell with the background.
func (s *Surface) Clear() {
	s.cols, s.rows = s.screen.Size()
	if n := s.cols * s.rows; cap(s.bg) < n {
		s.bg = make([]tcell.Color, n)
	} else {
		s.bg = s.bg[:n]
	}
	base := toColor(s.background)
	style := tcell.StyleDefault.Background(base)
	for y := 0; y < s.rows; y++ {
		for x := 0; x < s.cols; x++ {
			s.bg[y*s.cols+x] = base
			s.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (s *Surface) Size() (int, int) {
	return s.cols * cellW, s.rows * cellH
}

// FillCircle tints every cell whose centre lies inside the circle, blending
// translucent colours over the background.
func (s *Surface) FillCircle(center geom.Point, radius float64, c color.Color) {
	tint := blend(s.background, c)
	style := tcell.StyleDefault.Background(tint)

	x0 := max(0, int(math.Floor((center.X-radius)/cellW)))
	x1 := min(s.cols-1, int(math.Floor((center.X+radius)/cellW)))
	y0 := max(0, int(math.Floor((center.Y-radius)/cellH)))
	y1 := min(s.rows-1, int(math.Floor((center.Y+radius)/cellH)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			mid := geom.Pt((float64(x)+0.5)*cellW, (float64(y)+0.5)*cellH)
			if mid.Dist(center) <= radius {
				s.bg[y*s.cols+x] = tint
				s.screen.SetContent(x, y, ' ', nil, style)
			}
		}
	}
}

// Dot marks the cell containing p; larger dots get a heavier glyph.
func (s *Surface) Dot(p geom.Point, size float64, c color.Color) {
	x, y := int(p.X/cellW), int(p.Y/cellH)
	if p.X < 0 || p.Y < 0 || x >= s.cols || y >= s.rows {
		return
	}
	glyph := '·'
	if size >= 2 {
		glyph = '•'
	}
	style := tcell.StyleDefault.Background(s.bg[y*s.cols+x]).Foreground(toColor(c))
	s.screen.SetContent(x, y, glyph, nil, style)
}

// Cell converts a terminal cell to the pixel at its centre.
func Cell(x, y int) geom.Point {
	return geom.Pt((float64(x)+0.5)*cellW, (float64(y)+0.5)*cellH)
}

func toColor(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// blend composites c over an opaque background.
func blend(bg color.RGBA, c color.Color) tcell.Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return toColor(bg)
	}
	// RGBA() is alpha-premultiplied in 0..0xffff
	inv := 1 - float64(a)/0xffff
	mix := func(fg uint32, base uint8) int32 {
		return int32(float64(fg>>8) + float64(base)*inv)
	}
	return tcell.NewRGBColor(mix(r, bg.R), mix(g, bg.G), mix(b, bg.B))
}
