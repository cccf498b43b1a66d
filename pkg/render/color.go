package render

import (
	"image/color"

	"github.com/taigrr/phong/pkg/math3d"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack    = color.RGBA{0, 0, 0, 255}
	ColorWhite    = color.RGBA{255, 255, 255, 255}
	ColorMidnight = color.RGBA{10, 10, 50, 255}
	ColorNode     = color.RGBA{250, 250, 250, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// FromVec3 converts a float RGB triple to an opaque Color. Channels are
// clamped to [0, 255] and truncated.
func FromVec3(v math3d.Vec3) Color {
	v = v.Clamp(0, 255)
	return RGB(uint8(v.X), uint8(v.Y), uint8(v.Z))
}
