package beamline

import (
	"math"
	"testing"
)

func closeVec(a, b [3]float64, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestTransformsRoundTrip(t *testing.T) {
	p := [3]float64{10, -5, 1000}
	r := rotZ(0.3)
	in, out := Transforms(p, r, Misalignment{})

	world := [3]float64{1, 2, 3}
	local := in.Apply(world)
	back := out.Apply(local)

	if !closeVec(world, back, 1e-9) {
		t.Fatalf("round trip failed: %v -> %v -> %v", world, local, back)
	}
}

func TestTransformsPlacesOriginAtElementPosition(t *testing.T) {
	p := [3]float64{1, 2, 3}
	in, _ := Transforms(p, Identity3(), Misalignment{})
	local := in.Apply(p)
	if !closeVec(local, [3]float64{0, 0, 0}, 1e-12) {
		t.Fatalf("expected element position to map to local origin, got %v", local)
	}
}

func TestApplyVectorIgnoresTranslation(t *testing.T) {
	m := translation4([3]float64{5, 5, 5})
	dir := [3]float64{0, 0, 1}
	out := m.ApplyVector(dir)
	if out != dir {
		t.Fatalf("expected direction unaffected by translation, got %v", out)
	}
}

func TestMisalignmentRoundTrip(t *testing.T) {
	p := [3]float64{0, 0, 1000}
	mis := Misalignment{Dx: 0.1, Dy: -0.2, Dz: 0.05, Dpsi: 0.01, Dphi: -0.02, Dchi: 0.015}
	in, out := Transforms(p, Identity3(), mis)

	world := [3]float64{0.5, -0.3, 999.8}
	back := out.Apply(in.Apply(world))
	if !closeVec(world, back, 1e-9) {
		t.Fatalf("misaligned round trip failed: %v -> %v", world, back)
	}
}

func TestMulMat4Identity(t *testing.T) {
	m := rotation4(rotY(0.7))
	got := MulMat4(Identity4(), m)
	if got != m {
		t.Fatalf("expected identity*m == m, got %v", got)
	}
}

func Identity3() [3][3]float64 {
	return [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}
