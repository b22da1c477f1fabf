package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/leap-visualizer/internal/geom"
)

// imageSurface draws onto an ebiten image, typically a sub-image of the
// screen covering the particle field.
type imageSurface struct {
	img *ebiten.Image
}

func (s imageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s imageSurface) FillCircle(center geom.Point, radius float64, c color.Color) {
	b := s.img.Bounds()
	vector.DrawFilledCircle(s.img, float32(center.X)+float32(b.Min.X), float32(center.Y)+float32(b.Min.Y), float32(radius), c, true)
}

func (s imageSurface) Dot(p geom.Point, size float64, c color.Color) {
	b := s.img.Bounds()
	vector.DrawFilledRect(s.img, float32(p.X)+float32(b.Min.X), float32(p.Y)+float32(b.Min.Y), float32(size), float32(size), c, false)
}
