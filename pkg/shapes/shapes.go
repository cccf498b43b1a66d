// Package shapes builds the primitive meshes used by the viewer.
//
// All faces are wound so that their normal points out of the solid; with the
// default view direction (0, 0, -1) the faces turned towards -z are the ones
// drawn.
package shapes

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/phong/pkg/math3d"
	"github.com/taigrr/phong/pkg/models"
)

// ErrResolution is returned when a spheroid is requested with fewer than
// three segments.
var ErrResolution = errors.New("resolution must be at least 3")

// White is the default face colour.
var White = math3d.V3(255, 255, 255)

// Cuboid builds an axis-aligned box with its minimum corner at origin.
func Cuboid(origin, size math3d.Vec3) (*models.Mesh, error) {
	// Unit cube, scaled and moved into place below.
	var nodes []math3d.Vec4
	for _, x := range []float64{0, 1} {
		for _, y := range []float64{0, 1} {
			for _, z := range []float64{0, 1} {
				nodes = append(nodes, math3d.Point(x, y, z))
			}
		}
	}

	quads := [][]int{
		{0, 1, 3, 2}, // -x
		{7, 5, 4, 6}, // +x
		{4, 5, 1, 0}, // -y
		{2, 3, 7, 6}, // +y
		{0, 2, 6, 4}, // -z
		{5, 7, 3, 1}, // +z
	}
	faces := make([]models.Face, len(quads))
	for i, q := range quads {
		faces[i] = models.Face{Nodes: q, Color: White}
	}

	mesh, err := models.NewMesh(nodes, perimeterEdges(faces), faces)
	if err != nil {
		return nil, err
	}
	mesh.Transform(math3d.Translate(origin).Mul(math3d.Scale(size)))
	return mesh, nil
}

// Spheroid builds an ellipsoid centred on center with the given radii.
// resolution is the number of longitude segments and of latitude bands.
func Spheroid(center, radii math3d.Vec3, resolution int) (*models.Mesh, error) {
	if resolution < 3 {
		return nil, fmt.Errorf("spheroid: %w: got %d", ErrResolution, resolution)
	}
	res := resolution

	// Rings of nodes from the top latitude down, poles excluded.
	nodes := make([]math3d.Vec4, 0, res*(res-1)+2)
	for lat := 1; lat < res; lat++ {
		m := float64(lat) * math.Pi / float64(res)
		for lon := range res {
			n := float64(lon) * 2 * math.Pi / float64(res)
			nodes = append(nodes, math3d.Point(
				center.X+radii.X*math.Sin(n)*math.Sin(m),
				center.Y-radii.Y*math.Cos(m),
				center.Z-radii.Z*math.Cos(n)*math.Sin(m),
			))
		}
	}
	ringNodes := len(nodes)
	top, bottom := ringNodes+1, ringNodes
	nodes = append(nodes,
		math3d.Point(center.X, center.Y+radii.Y, center.Z),
		math3d.Point(center.X, center.Y-radii.Y, center.Z),
	)

	faces := make([]models.Face, 0, res*(res-2)+2*res)
	for lon := range res {
		next := (lon + 1) % res
		for ring := 0; ring < ringNodes-res; ring += res {
			faces = append(faces, models.Face{
				Nodes: []int{ring + lon, ring + res + lon, ring + res + next, ring + next},
				Color: White,
			})
		}
	}
	for lon := range res {
		faces = append(faces, models.Face{
			Nodes: []int{lon, (lon + 1) % res, top},
			Color: White,
		})
	}
	last := ringNodes - res
	for lon := range res {
		faces = append(faces, models.Face{
			Nodes: []int{bottom, last + (lon+1)%res, last + lon},
			Color: White,
		})
	}

	return models.NewMesh(nodes, perimeterEdges(faces), faces)
}

// Stripes tints a spheroid built with the given resolution: out of every
// four longitude columns of quads, the first two lose their green and blue
// channels. The faces must be in Spheroid order.
func Stripes(mesh *models.Mesh, resolution int) {
	band := resolution - 2
	for i := range resolution / 4 {
		for j := range 2 * band {
			f := i*4*band + j
			if f >= len(mesh.Faces) {
				return
			}
			mesh.Faces[f].Color.Y = 0
			mesh.Faces[f].Color.Z = 0
		}
	}
}

// perimeterEdges returns the unique edges around every face, in first-seen order.
func perimeterEdges(faces []models.Face) []models.Edge {
	seen := make(map[models.Edge]struct{})
	var edges []models.Edge
	for _, f := range faces {
		for i, a := range f.Nodes {
			b := f.Nodes[(i+1)%len(f.Nodes)]
			key := models.Edge{min(a, b), max(a, b)}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, models.Edge{a, b})
		}
	}
	return edges
}
