package game

import (
	"image/color"

	"github.com/iburimskiy/leap-visualizer/internal/geom"
)

// Surface is a display the controller draws a frame onto.
type Surface interface {
	Size() (width, height int)
	FillCircle(center geom.Point, radius float64, c color.Color)
	// Dot draws a size x size square with its top-left corner at p.
	Dot(p geom.Point, size float64, c color.Color)
}
