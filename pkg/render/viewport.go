package render

import (
	"github.com/taigrr/phong/pkg/math3d"
	"github.com/taigrr/phong/pkg/models"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// MeshBounds returns the bounding box of m's nodes.
func MeshBounds(m *models.Mesh) AABB {
	lo, hi := m.Bounds()
	return AABB{Min: lo, Max: hi}
}

// Pad grows the box by d on the X and Y axes.
func (b AABB) Pad(d float64) AABB {
	return AABB{
		Min: math3d.V3(b.Min.X-d, b.Min.Y-d, b.Min.Z),
		Max: math3d.V3(b.Max.X+d, b.Max.Y+d, b.Max.Z),
	}
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// OnScreen reports whether the (x, y) footprint of b overlaps the viewport
// of ctx. Depth is ignored: there are no near or far planes.
func (b AABB) OnScreen(ctx *Context) bool {
	return b.Max.X >= 0 && b.Min.X < float64(ctx.Width) &&
		b.Max.Y >= 0 && b.Min.Y < float64(ctx.Height)
}

// layerVisible reports whether any of m's layer can land on screen. Edges
// under a perspective divide are never rejected since the divide can move
// them into view.
func layerVisible(ctx *Context, stage Stage, m *models.Mesh) bool {
	if len(m.Nodes) == 0 {
		return false
	}
	b := MeshBounds(m)
	switch stage {
	case StageEdges:
		if ctx.Perspective > 0 {
			return true
		}
		b = b.Pad(1)
	case StageNodes:
		b = b.Pad(ctx.NodeRadius)
	}
	return b.OnScreen(ctx)
}
