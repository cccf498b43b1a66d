package render

import (
	"fmt"
	"iter"

	"github.com/taigrr/phong/pkg/math3d"
	"github.com/taigrr/phong/pkg/models"
)

// Scene supplies the meshes to draw, each with its display colour. Hidden
// meshes are never yielded. The sequence must be restartable: a frame walks
// it once per layer.
type Scene interface {
	Visible() iter.Seq2[*models.Mesh, math3d.Vec3]
}

// Stage is one step of a frame.
type Stage int

const (
	StageClear Stage = iota
	StageFaces
	StageEdges
	StageNodes
	StagePresent
)

// Stages lists the stages of a frame in the order they run.
var Stages = [...]Stage{StageClear, StageFaces, StageEdges, StageNodes, StagePresent}

func (s Stage) String() string {
	switch s {
	case StageClear:
		return "clear"
	case StageFaces:
		return "faces"
	case StageEdges:
		return "edges"
	case StageNodes:
		return "nodes"
	case StagePresent:
		return "present"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Enabled reports whether the stage does anything under ctx. Clear and
// present always run.
func (s Stage) Enabled(ctx *Context) bool {
	switch s {
	case StageFaces:
		return ctx.ShowFaces
	case StageEdges:
		return ctx.ShowEdges
	case StageNodes:
		return ctx.ShowNodes
	}
	return true
}

// FrameStats tracks what a frame drew.
type FrameStats struct {
	MeshesTested int // Mesh layers tested against the viewport
	MeshesCulled int // Mesh layers entirely off screen

	FacesTested     int // Faces considered for drawing
	FacesCulled     int // Faces turned away from the viewer
	FacesDegenerate int // Faces whose first three nodes are collinear
	FacesDrawn      int
	EdgesDrawn      int
	NodesDrawn      int
}

// Frame renders one frame of sc onto s and presents it. Layers are drawn
// whole, one after another: every mesh's faces, then every mesh's edges,
// then every mesh's nodes. There is no depth buffer; faces occlude each
// other only through draw order. A mesh whose layer lies entirely outside
// the viewport is skipped for that layer.
func Frame(ctx *Context, s Surface, sc Scene) (FrameStats, error) {
	var stats FrameStats
	for _, stage := range Stages {
		if !stage.Enabled(ctx) {
			continue
		}
		switch stage {
		case StageClear:
			s.Clear(ctx.Background)
		case StageFaces:
			for m := range sc.Visible() {
				if stats.onScreen(ctx, stage, m) {
					drawFaces(ctx, s, m, &stats)
				}
			}
		case StageEdges:
			for m, c := range sc.Visible() {
				if stats.onScreen(ctx, stage, m) {
					drawEdges(ctx, s, m, FromVec3(c), &stats)
				}
			}
		case StageNodes:
			for m := range sc.Visible() {
				if stats.onScreen(ctx, stage, m) {
					drawNodes(ctx, s, m, &stats)
				}
			}
		case StagePresent:
			if err := s.Present(); err != nil {
				return stats, fmt.Errorf("present: %w", err)
			}
		}
	}
	return stats, nil
}

func (fs *FrameStats) onScreen(ctx *Context, stage Stage, m *models.Mesh) bool {
	fs.MeshesTested++
	if !layerVisible(ctx, stage, m) {
		fs.MeshesCulled++
		return false
	}
	return true
}

func drawFaces(ctx *Context, s Surface, m *models.Mesh, stats *FrameStats) {
	var pts []Point
	for face := range m.SortedFaces() {
		stats.FacesTested++
		c, res := ShadeFace(m, face, ctx)
		switch res {
		case FaceCulled:
			stats.FacesCulled++
			continue
		case FaceDegenerate:
			stats.FacesDegenerate++
			continue
		}

		pts = pts[:0]
		for _, i := range face.Nodes {
			n := m.Nodes[i]
			pts = append(pts, Point{n.X, n.Y})
		}
		s.FillPolygon(c, pts)
		stats.FacesDrawn++
	}
}

func drawEdges(ctx *Context, s Surface, m *models.Mesh, c Color, stats *FrameStats) {
	for _, e := range m.Edges {
		p1, p2 := ProjectEdge(m.Nodes[e[0]].Vec3(), m.Nodes[e[1]].Vec3(), ctx)
		s.Line(c, p1, p2)
		stats.EdgesDrawn++
	}
}

func drawNodes(ctx *Context, s Surface, m *models.Mesh, stats *FrameStats) {
	for _, n := range m.Nodes {
		s.FillCircle(ctx.NodeColor, Point{n.X, n.Y}, ctx.NodeRadius)
		stats.NodesDrawn++
	}
}

// ProjectEdge maps the endpoints of an edge to screen space. With a
// perspective distance set and both endpoints in front of the projection
// plane (z > -distance) the points are scaled towards the viewport centre by
// distance/(distance+z). Otherwise the raw (x, y) are used.
func ProjectEdge(a, b math3d.Vec3, ctx *Context) (Point, Point) {
	d := ctx.Perspective
	if d <= 0 || a.Z <= -d || b.Z <= -d {
		return Point{a.X, a.Y}, Point{b.X, b.Y}
	}
	return perspective(a, d, ctx), perspective(b, d, ctx)
}

func perspective(p math3d.Vec3, d float64, ctx *Context) Point {
	cx, cy := float64(ctx.Width)/2, float64(ctx.Height)/2
	scale := d / (d + p.Z)
	return Point{
		X: cx + scale*(p.X-cx),
		Y: cy + scale*(p.Y-cy),
	}
}
