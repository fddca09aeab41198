package mathutil

import (
	"math"
	"testing"
)

func mat3Close(t *testing.T, got, want Mat3, label string) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("%s: got %v, want %v", label, got, want)
		}
	}
}

func TestEulerToQuatMatchesMatrixComposition(t *testing.T) {
	cases := [][3]float64{
		{0, 0, 0},
		{math.Pi / 2, 0, 0},
		{0, math.Pi / 2, 0},
		{0, 0, math.Pi / 2},
		{Deg2Rad(30), Deg2Rad(-45), Deg2Rad(60)},
		{Deg2Rad(-15), Deg2Rad(170), Deg2Rad(5)},
	}

	for _, c := range cases {
		q := EulerToQuat(c[0], c[1], c[2])
		got := QuatToMat3(q)
		want := Mat3Mul(Mat3Mul(RotZ(c[2]), RotY(c[1])), RotX(c[0]))
		mat3Close(t, got, want, "euler (rz·ry·rx order)")
	}
}

func TestRotationInverseIsTranspose(t *testing.T) {
	r := Mat3Mul(RotZ(0.7), RotX(-1.2))
	mat3Close(t, Mat3Mul(r, r.Transpose()), Mat3Identity(), "r·rᵀ")
	mat3Close(t, r.Inverse(), r.Transpose(), "inverse vs transpose")
}

func TestMat3MulVec(t *testing.T) {
	v := RotZ(math.Pi / 2).MulVec3(Vec3{1, 0, 0})
	if v.Sub(Vec3{0, 1, 0}).Len() > 1e-9 {
		t.Fatalf("RotZ(90°)·x = %v, want y", v)
	}
}

func TestMat4RotatesAboutPivot(t *testing.T) {
	pivot := Vec3{1, 2, 3}
	rot := QuatToMat3(EulerToQuat(0, 0, math.Pi))

	// T(pivot) · R · T(-pivot)
	m := Mat4Mul(
		FromMat3Translation(rot, pivot),
		FromMat3Translation(Mat3Identity(), pivot.Scale(-1)),
	)

	if got := m.MulPoint(pivot); got.Sub(pivot).Len() > 1e-9 {
		t.Errorf("pivot moved: %v", got)
	}
	want := Vec3{0, 2, 3} // (2,2,3) half-turned about z through (1,2,3)
	if got := m.MulPoint(Vec3{2, 2, 3}); got.Sub(want).Len() > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestBoundsAccumulation(t *testing.T) {
	b := EmptyBounds()
	b.Extend(Vec3{-1, 0, 2})
	b.Extend(Vec3{3, -2, 4})

	if c := b.Center(); c.Sub(Vec3{1, -1, 3}).Len() > 1e-9 {
		t.Errorf("center = %v", c)
	}
	if s := b.Size(); s.Sub(Vec3{4, 2, 2}).Len() > 1e-9 {
		t.Errorf("size = %v", s)
	}
	if v := b.Volume(); math.Abs(v-16) > 1e-9 {
		t.Errorf("volume = %v, want 16", v)
	}
}

func TestBoundsOfEmpty(t *testing.T) {
	b := BoundsOf(nil)
	if b.Volume() != 0 {
		t.Errorf("empty bounds volume = %v", b.Volume())
	}
}
