// Package models provides the wireframe mesh representation for phong.
package models

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/taigrr/phong/pkg/math3d"
)

var (
	// ErrInvalidIndex is returned when an edge or face references a node
	// outside the mesh's node list.
	ErrInvalidIndex = errors.New("node index out of range")

	// ErrFaceTooSmall is returned for faces with fewer than three nodes.
	ErrFaceTooSmall = errors.New("face needs at least 3 nodes")
)

// Edge is an ordered pair of node indices.
type Edge [2]int

// Face is a planar polygon given by node indices plus a base colour.
// The winding of the first three nodes decides the outward normal.
type Face struct {
	Nodes []int
	Color math3d.Vec3 // RGB, channels in [0, 255]
}

// Mesh owns a node list, an edge list and a face list.
type Mesh struct {
	Nodes []math3d.Vec4
	Edges []Edge
	Faces []Face
}

// NewMesh builds a mesh and validates every edge and face index.
func NewMesh(nodes []math3d.Vec4, edges []Edge, faces []Face) (*Mesh, error) {
	m := &Mesh{
		Nodes: nodes,
		Edges: edges,
		Faces: faces,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that every edge and face references existing nodes.
func (m *Mesh) Validate() error {
	n := len(m.Nodes)
	for i, e := range m.Edges {
		for _, idx := range e {
			if idx < 0 || idx >= n {
				return fmt.Errorf("edge %d: %w: %d (have %d nodes)", i, ErrInvalidIndex, idx, n)
			}
		}
	}
	for i, f := range m.Faces {
		if len(f.Nodes) < 3 {
			return fmt.Errorf("face %d: %w: got %d", i, ErrFaceTooSmall, len(f.Nodes))
		}
		for _, idx := range f.Nodes {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d: %w: %d (have %d nodes)", i, ErrInvalidIndex, idx, n)
			}
		}
	}
	return nil
}

// NodeCount returns the number of nodes.
func (m *Mesh) NodeCount() int {
	return len(m.Nodes)
}

// EdgeCount returns the number of edges.
func (m *Mesh) EdgeCount() int {
	return len(m.Edges)
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// FaceDepth returns the centroid z of face i.
func (m *Mesh) FaceDepth(i int) float64 {
	f := m.Faces[i]
	var z float64
	for _, idx := range f.Nodes {
		z += m.Nodes[idx].Z
	}
	return z / float64(len(f.Nodes))
}

// SortedFaces yields faces farthest first (descending centroid z), with
// ties kept in insertion order. Depths are computed when iteration starts,
// so the sequence can be ranged over again after nodes move.
func (m *Mesh) SortedFaces() iter.Seq2[Face, math3d.Vec3] {
	return func(yield func(Face, math3d.Vec3) bool) {
		order := make([]int, len(m.Faces))
		depth := make([]float64, len(m.Faces))
		for i := range m.Faces {
			order[i] = i
			depth[i] = m.FaceDepth(i)
		}
		slices.SortStableFunc(order, func(a, b int) int {
			switch {
			case depth[a] > depth[b]:
				return -1
			case depth[a] < depth[b]:
				return 1
			default:
				return 0
			}
		})
		for _, i := range order {
			f := m.Faces[i]
			if !yield(f, f.Color) {
				return
			}
		}
	}
}

// Bounds returns the axis-aligned bounding box of the nodes.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	if len(m.Nodes) == 0 {
		return math3d.Zero3(), math3d.Zero3()
	}
	min = m.Nodes[0].Vec3()
	max = min
	for _, n := range m.Nodes[1:] {
		min = min.Min(n.Vec3())
		max = max.Max(n.Vec3())
	}
	return min, max
}

// Transform applies a matrix to every node in place.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Nodes {
		m.Nodes[i] = mat.MulVec4(m.Nodes[i])
	}
}
