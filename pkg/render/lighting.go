package render

import (
	"math"

	"github.com/taigrr/phong/pkg/math3d"
	"github.com/taigrr/phong/pkg/models"
)

// Material holds the Phong coefficients shared by every face.
type Material struct {
	Diffuse   float64
	Specular  float64
	Ambient   float64
	Shininess float64
}

// DefaultMaterial is the material used by DefaultContext.
var DefaultMaterial = Material{
	Diffuse:   0.4,
	Specular:  0.5,
	Ambient:   0.1,
	Shininess: 4,
}

// FaceNormal returns the unit normal of the plane through a, b and c,
// following the winding a -> b -> c. ok is false for collinear points.
func FaceNormal(a, b, c math3d.Vec3) (normal math3d.Vec3, ok bool) {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Len()
	if l == 0 {
		return math3d.Vec3{}, false
	}
	return n.Scale(1 / l), true
}

// FacesViewer reports whether a face with the given normal is turned
// towards the viewer looking along view.
func FacesViewer(normal, view math3d.Vec3) bool {
	return normal.Dot(view) > 0
}

// Shade computes the flat Phong colour of a face. base is the face colour
// with channels in [0, 255]; the result is clamped to the same range.
func Shade(normal, base math3d.Vec3, ctx *Context) math3d.Vec3 {
	mat := ctx.Material
	lit := base.Mul(ctx.LightColor)
	r := ctx.Light.Mirror(normal)

	diffuse := lit.Scale(mat.Diffuse * math.Max(normal.Dot(ctx.Light), 0))
	specular := lit.Scale(mat.Specular * math.Pow(math.Max(ctx.View.Dot(r), 0), mat.Shininess))
	ambient := lit.Scale(mat.Ambient)

	return diffuse.Add(specular).Add(ambient).Clamp(0, 255)
}

// ShadeFace computes the colour of face f of mesh m. No lighting work is
// done for faces turned away from the viewer or whose first three nodes are
// collinear; the result says which case applied.
func ShadeFace(m *models.Mesh, f models.Face, ctx *Context) (Color, FaceResult) {
	a := m.Nodes[f.Nodes[0]].Vec3()
	b := m.Nodes[f.Nodes[1]].Vec3()
	c := m.Nodes[f.Nodes[2]].Vec3()

	normal, ok := FaceNormal(a, b, c)
	if !ok {
		return Color{}, FaceDegenerate
	}
	if !FacesViewer(normal, ctx.View) {
		return Color{}, FaceCulled
	}
	return FromVec3(Shade(normal, f.Color, ctx)), FaceLit
}

// FaceResult tells the pipeline what happened to a face.
type FaceResult int

const (
	FaceLit FaceResult = iota
	FaceCulled
	FaceDegenerate
)
