package render

import "github.com/taigrr/phong/pkg/math3d"

// Context carries everything a frame needs besides the meshes: the
// viewport, the light and view directions, the material and the layer
// toggles. Every pipeline stage reads it; only the input controller writes
// Light, between frames.
type Context struct {
	Width  int
	Height int

	Light      math3d.Vec3 // direction, not renormalised after rotation
	LightColor math3d.Vec3 // per-channel multiplier, [1,1,1] is white
	View       math3d.Vec3 // fixed viewing direction
	Material   Material

	// Perspective is the focal distance used for edges. Zero disables the
	// perspective divide.
	Perspective float64

	ShowFaces bool
	ShowEdges bool
	ShowNodes bool

	Background Color
	NodeColor  Color
	NodeRadius float64
}

// DefaultContext returns the context of the stock viewer: light and view
// both along -z, white light, faces and edges on, nodes off.
func DefaultContext(width, height int) Context {
	return Context{
		Width:      width,
		Height:     height,
		Light:      math3d.V3(0, 0, -1),
		LightColor: math3d.V3(1, 1, 1),
		View:       math3d.V3(0, 0, -1),
		Material:   DefaultMaterial,
		ShowFaces:  true,
		ShowEdges:  true,
		ShowNodes:  false,
		Background: ColorMidnight,
		NodeColor:  ColorNode,
		NodeRadius: 4,
	}
}
