// Package physics implements the per-behaviour collision math: Fresnel
// reflectance from tabulated (n,k), grating/RZP diffraction including
// variable-line-spacing, slit aperturing, slope-error perturbation of
// surface normals, and the Schwinger bending-magnet spectral/angular
// sampler (§4.4, §4.3).
package physics

import (
	"math"

	"github.com/cpmech/gosl/utl"
)

// Vec3 is a plain 3-vector; kept as a named array (not a slice) so the
// hot intersection/behaviour path never allocates, while still reusing
// gosl/utl's Dot3d/Cross3d for the handful of vector-algebra primitives
// they cover.
type Vec3 [3]float64

func Dot(a, b Vec3) float64 {
	return utl.Dot3d(a[:], b[:])
}

func Cross(a, b Vec3) Vec3 {
	var out Vec3
	s := out[:]
	utl.Cross3d(s, a[:], b[:])
	return out
}

func Add(a, b Vec3) Vec3 { return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func Sub(a, b Vec3) Vec3 { return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func Scale(a Vec3, s float64) Vec3 { return Vec3{a[0] * s, a[1] * s, a[2] * s} }

func Norm(a Vec3) float64 { return math.Sqrt(Dot(a, a)) }

func Normalize(a Vec3) Vec3 {
	n := Norm(a)
	if n == 0 {
		return a
	}
	return Scale(a, 1/n)
}

// Reflect computes the mirror-reflected direction d' = d - 2(d.n)n for
// unit vectors d (incoming) and n (surface normal).
func Reflect(d, n Vec3) Vec3 {
	return Sub(d, Scale(n, 2*Dot(d, n)))
}
