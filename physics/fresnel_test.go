package physics

import (
	"math"
	"testing"

	"github.com/hz-b/rayx-sub003/material"
)

func TestReflectanceReflectiveIsUnity(t *testing.T) {
	tables := &material.Tables{}
	_, rs, rp := Reflectance(tables, material.Reflective, 1000, 0.1)
	if math.Abs(rs-1) > 1e-12 || math.Abs(rp-1) > 1e-12 {
		t.Fatalf("expected reflectance 1.0 on REFLECTIVE material, got rs=%v rp=%v", rs, rp)
	}
}

func TestReflectanceVacuumIsZero(t *testing.T) {
	tables := &material.Tables{}
	_, rs, rp := Reflectance(tables, material.Vacuum, 1000, 0.1)
	if rs != 0 || rp != 0 {
		t.Fatalf("expected zero reflectance on VACUUM, got rs=%v rp=%v", rs, rp)
	}
}

func TestFresnelNormalIncidenceMatchesScalarForm(t *testing.T) {
	// at normal incidence (cosIncidence=1) the s/p distinction
	// vanishes and both reduce to the familiar (1-N)/(1+N) form.
	n, k := 0.98, 0.01
	fc := Fresnel(n, k, 1.0)
	want := (complex(1, 0) - complex(n, -k)) / (complex(1, 0) + complex(n, -k))
	if d := fc.RS - want; realAbs(d) > 1e-9 {
		t.Fatalf("RS mismatch at normal incidence: got %v want %v", fc.RS, want)
	}
}

func realAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

func TestReflectMirrorsAboutNormal(t *testing.T) {
	d := Vec3{0, -1, 1}
	d = Normalize(d)
	n := Vec3{0, 1, 0}
	out := Reflect(d, n)
	if math.Abs(out[0]-d[0]) > 1e-12 || math.Abs(out[1]+d[1]) > 1e-12 || math.Abs(out[2]-d[2]) > 1e-12 {
		t.Fatalf("reflection about y-normal should flip only the y component, got %v from %v", out, d)
	}
}
