package physics

import (
	"math"
	"testing"

	"github.com/hz-b/rayx-sub003/beamline"
)

func TestLocalLineDensityAtCenterIsNominal(t *testing.T) {
	g := beamline.Grating{LineDensity: 1200, VLS: [6]float64{0.01, 0, 0, 0, 0, 0}}
	got := LocalLineDensity(g, 0)
	if got != 1200 {
		t.Fatalf("expected nominal line density at z=0, got %v", got)
	}
}

func TestLocalLineDensityVariesWithVLS(t *testing.T) {
	g := beamline.Grating{LineDensity: 1200, VLS: [6]float64{0.01, 0, 0, 0, 0, 0}}
	got := LocalLineDensity(g, 10)
	want := 1200 * (1 + 0.01*10)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("VLS-perturbed density mismatch: got %v want %v", got, want)
	}
}

func TestDiffractedDirectionZerothOrderIsMirrorReflection(t *testing.T) {
	n := Vec3{0, 1, 0}
	tang := Vec3{0, 0, 1}
	d := Normalize(Vec3{0, -1, 1})

	got := DiffractedDirection(d, n, tang, 1200, 0, 1000)
	want := Reflect(d, n)

	for i := 0; i < 3; i++ {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("zeroth-order diffraction should equal mirror reflection, got %v want %v", got, want)
		}
	}
}

func TestDiffractedDirectionStaysUnit(t *testing.T) {
	n := Vec3{0, 1, 0}
	tang := Vec3{0, 0, 1}
	d := Normalize(Vec3{0, -1, 1})

	got := DiffractedDirection(d, n, tang, 1200, 1, 500)
	if math.Abs(Norm(got)-1) > 1e-9 {
		t.Fatalf("diffracted direction must stay unit length, got norm %v", Norm(got))
	}
}
