package physics

import (
	"math"
	"testing"

	"github.com/hz-b/rayx-sub003/beamline"
	"github.com/hz-b/rayx-sub003/rng"
)

func TestPerturbNormalNoopWhenZeroSigma(t *testing.T) {
	n := Vec3{0, 1, 0}
	tang := Vec3{0, 0, 1}
	sag := Vec3{1, 0, 0}
	s := rng.New(1, 0, 7)

	got := PerturbNormal(n, tang, sag, beamline.SlopeError{}, &s)
	if got != n {
		t.Fatalf("zero slope error must leave the normal untouched, got %v", got)
	}
}

func TestPerturbNormalStaysUnit(t *testing.T) {
	n := Vec3{0, 1, 0}
	tang := Vec3{0, 0, 1}
	sag := Vec3{1, 0, 0}
	s := rng.New(1, 0, 7)

	se := beamline.SlopeError{Sagittal: 1e-4, Meridional: 2e-4}
	got := PerturbNormal(n, tang, sag, se, &s)
	if math.Abs(Norm(got)-1) > 1e-9 {
		t.Fatalf("perturbed normal must stay unit length, got norm %v", Norm(got))
	}
}
