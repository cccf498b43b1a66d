package math3d

import (
	"fmt"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

func TestRotationInverseLaw(t *testing.T) {
	vectors := []Vec3{
		V3(0, 0, -1),
		V3(1, 0, 0),
		V3(0, 1, 0),
		V3(1, 2, 3).Normalize(),
		V3(-0.4, 0.7, 0.2).Normalize(),
	}
	angles := []float64{0, 5, -5, 30, 90, 137.5, 180, -270, 720}

	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		for _, angle := range angles {
			t.Run(fmt.Sprintf("%s/%g", axis, angle), func(t *testing.T) {
				for _, v := range vectors {
					got := RotateVec3(Rotation(axis, -angle), RotateVec3(Rotation(axis, angle), v))
					if !got.ApproxEqual(v, eps) {
						t.Errorf("rotate %v by %g then %g = %v", v, angle, -angle, got)
					}
				}
			})
		}
	}
}

func TestRotationPreservesLength(t *testing.T) {
	v := V3(0.3, -0.5, -0.8)
	want := v.Len()
	for range 720 {
		v = RotateVec3(RotationY(5), v)
		v = RotateVec3(RotationX(5), v)
	}
	if math.Abs(v.Len()-want) > 1e-9 {
		t.Errorf("length drifted: got %v, want %v", v.Len(), want)
	}
}

// The light rotations are transposed, which is the conventional rotation
// by the negated angle.
func TestRotationIsTransposedConvention(t *testing.T) {
	tests := []struct {
		axis   Axis
		oracle func(float64) mgl64.Mat4
	}{
		{AxisX, mgl64.HomogRotate3DX},
		{AxisY, mgl64.HomogRotate3DY},
		{AxisZ, mgl64.HomogRotate3DZ},
	}

	for _, tc := range tests {
		for _, deg := range []float64{5, -5, 42, 90} {
			t.Run(fmt.Sprintf("%s/%g", tc.axis, deg), func(t *testing.T) {
				got := Rotation(tc.axis, deg)
				want := tc.oracle(-Radians(deg))
				for i := range got {
					if math.Abs(got[i]-want[i]) > eps {
						t.Fatalf("element %d = %v, want %v", i, got[i], want[i])
					}
				}
			})
		}
	}
}

func TestRotationDirections(t *testing.T) {
	s, c := math.Sin(Radians(5)), math.Cos(Radians(5))
	light := V3(0, 0, -1)

	tests := []struct {
		name string
		m    Mat4
		want Vec3
	}{
		{"y+5 swings towards +x", RotationY(5), V3(s, 0, -c)},
		{"y-5 swings towards -x", RotationY(-5), V3(-s, 0, -c)},
		{"x+5 swings towards -y", RotationX(5), V3(0, -s, -c)},
		{"x-5 swings towards +y", RotationX(-5), V3(0, s, -c)},
		{"z leaves the z axis alone", RotationZ(5), V3(0, 0, -1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RotateVec3(tc.m, light)
			if !got.ApproxEqual(tc.want, eps) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMulVec4MatchesMathgl(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5)).Mul(Scale(V3(2, 3, 4)))
	v := V4(0.5, -1, 2, 1)

	got := m.MulVec4(v)
	want := mgl64.Mat4(m).Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, v.W})

	for i, g := range []float64{got.X, got.Y, got.Z, got.W} {
		if math.Abs(g-want[i]) > eps {
			t.Errorf("component %d = %v, want %v", i, g, want[i])
		}
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(V3(7, 8, 9))
	if m[12] != 7 || m[13] != 8 || m[14] != 9 {
		t.Fatalf("translation column = %v %v %v", m[12], m[13], m[14])
	}
	tr := m.Transpose()
	if tr[3] != 7 || tr[7] != 8 || tr[11] != 9 {
		t.Errorf("transpose did not move translation into the bottom row: %v", tr)
	}
	if tr.Transpose() != m {
		t.Error("double transpose should be identity")
	}
}

func TestVec3Mirror(t *testing.T) {
	n := V3(0, 0, -1)
	if got := V3(0, 0, -1).Mirror(n); !got.ApproxEqual(V3(0, 0, -1), eps) {
		t.Errorf("head-on mirror = %v", got)
	}
	if got := V3(1, 0, -1).Mirror(n); !got.ApproxEqual(V3(-1, 0, -1), eps) {
		t.Errorf("oblique mirror = %v", got)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := Zero3().Normalize(); got != Zero3() {
		t.Errorf("Normalize(0) = %v", got)
	}
}

func TestVec3Clamp(t *testing.T) {
	got := V3(-10, 128, 400).Clamp(0, 255)
	if got != V3(0, 128, 255) {
		t.Errorf("Clamp = %v", got)
	}
}
