package trace

import (
	"math"

	"github.com/cpmech/gosl/num"

	"github.com/hz-b/rayx-sub003/beamline"
)

// epsSelf discards any root at or below this parametric distance,
// suppressing re-collision with the surface a ray just left (§4.4
// "self-intersection is suppressed by discarding t <= eps_self").
const epsSelf = 1e-11

// hit is a candidate collision in the element's own local frame: the
// ray parameter t, the point, and the (sign-normalized) surface
// normal at that point.
type hit struct {
	t      float64
	point  [3]float64
	normal [3]float64
}

// intersectElement dispatches on the element's surface kind and
// returns the single candidate root the surface's own solver selects
// (§4.4); the caller still has to apply the epsSelf/cutout tests.
func intersectElement(p, d [3]float64, el *beamline.CompiledElement) (hit, bool) {
	switch el.Surface.Kind {
	case beamline.SurfaceQuadric:
		return intersectQuadric(p, d, el.Surface.Quadric)
	case beamline.SurfaceToroid:
		return intersectToroid(p, d, el.Surface.Toroid)
	case beamline.SurfaceCubic:
		return intersectCubic(p, d, el.Surface.Cubic)
	case beamline.SurfacePlaneXY:
		return intersectPlaneXY(p, d)
	default:
		return hit{}, false
	}
}

// quadricForm evaluates the three scalars of q(t) = aa*t^2 + bb*t + cc
// for F(x) = x^T A x + 2 b^T x + c along the line x(t) = p + t*d, where
// A, b, c come from the symmetric-matrix Quadric coefficients (§3,
// §4.2).
func quadricForm(p, d [3]float64, q beamline.Quadric) (aa, bb, cc float64) {
	Ax := func(v [3]float64) [3]float64 {
		return [3]float64{
			q.A11*v[0] + q.A12*v[1] + q.A13*v[2],
			q.A12*v[0] + q.A22*v[1] + q.A23*v[2],
			q.A13*v[0] + q.A23*v[1] + q.A33*v[2],
		}
	}
	b := [3]float64{q.A14, q.A24, q.A34}
	dot := func(u, v [3]float64) float64 { return u[0]*v[0] + u[1]*v[1] + u[2]*v[2] }

	Ad := Ax(d)
	Ap := Ax(p)

	aa = dot(d, Ad)
	bb = 2 * (dot(p, Ad) + dot(b, d))
	cc = dot(p, Ap) + 2*dot(b, p) + q.A44
	return
}

// quadricGradient returns 2*(A*point + b), the un-normalized surface
// normal direction at point.
func quadricGradient(point [3]float64, q beamline.Quadric) [3]float64 {
	return [3]float64{
		2 * (q.A11*point[0] + q.A12*point[1] + q.A13*point[2] + q.A14),
		2 * (q.A12*point[0] + q.A22*point[1] + q.A23*point[2] + q.A24),
		2 * (q.A13*point[0] + q.A23*point[1] + q.A33*point[2] + q.A34),
	}
}

// intersectQuadric solves the quadratic form along the ray and picks
// the root icurv selects: +1 takes the "+sqrt" branch, -1 the
// "-sqrt" branch, matching concave-vs-convex surfaces picking
// opposite sides of the two-root pencil (§4.4).
func intersectQuadric(p, d [3]float64, q beamline.Quadric) (hit, bool) {
	aa, bb, cc := quadricForm(p, d, q)

	var t float64
	switch {
	case aa == 0:
		if bb == 0 {
			return hit{}, false
		}
		t = -cc / bb
	default:
		disc := bb*bb - 4*aa*cc
		if disc < 0 {
			return hit{}, false
		}
		sq := math.Sqrt(disc)
		sign := float64(q.Icurv)
		if sign == 0 {
			sign = 1
		}
		t = (-bb + sign*sq) / (2 * aa)
	}

	point := [3]float64{p[0] + t*d[0], p[1] + t*d[1], p[2] + t*d[2]}
	n := normalizeAgainst(quadricGradient(point, q), d)
	return hit{t: t, point: point, normal: n}, true
}

// intersectCubic solves the cubic surface (the quadric form plus a
// single x^2*z cross term) by Newton-Raphson seeded at the
// quadric-only root, since no closed form exists once that term is
// non-zero (§4.2 "Cone, Conic, Cubic: analogous, see source"). The
// root-finding itself goes through num.NlSolver, the same scalar
// Newton solver ana's Hill.Getc uses; since the cross term kills any
// closed-form tangent, the solver's Jacobian callback differences f
// centrally via num.DerivCen, the way mdl/solid's Driver checks a
// consistent tangent against a numerical one.
func intersectCubic(p, d [3]float64, c beamline.Cubic) (hit, bool) {
	f := func(t float64) float64 {
		aa, bb, cc := quadricForm(p, d, c.Quadric)
		x := p[0] + t*d[0]
		z := p[2] + t*d[2]
		return aa*t*t + bb*t + cc + c.A113*x*x*z
	}

	seed, ok := intersectQuadric(p, d, c.Quadric)
	if !ok {
		return hit{}, false
	}

	var nls num.NlSolver
	defer nls.Clean()
	ffcn := func(fx, x []float64) error {
		fx[0] = f(x[0])
		return nil
	}
	jfcn := func(J [][]float64, x []float64) error {
		J[0][0] = num.DerivCen(func(t float64, args ...interface{}) (res float64) {
			return f(t)
		}, x[0])
		return nil
	}
	nls.Init(1, ffcn, nil, jfcn, true, false, nil)
	nls.SetTols(1e-10, 1e-10, 1e-14, num.EPS)

	x := []float64{seed.t}
	if err := nls.Solve(x, true); err != nil {
		return hit{}, false
	}
	t := x[0]

	point := [3]float64{p[0] + t*d[0], p[1] + t*d[1], p[2] + t*d[2]}
	grad := quadricGradient(point, c.Quadric)
	grad[0] += 2 * c.A113 * point[0] * point[2]
	grad[2] += c.A113 * point[0] * point[0]
	n := normalizeAgainst(grad, d)
	return hit{t: t, point: point, normal: n}, true
}

// intersectToroid solves F(t) = (sqrt(x^2+z^2) - Rlong)^2 + y^2 -
// Rshort^2 = 0 by Newton-Raphson via num.NlSolver, starting from the
// plane (y=0) intersection (§4.4), with the Jacobian callback carrying
// F's closed-form derivative the same way msolid's HyperElast1.CalcEps0
// feeds num.NlSolver an analytic tangent. Failure to converge is
// reported to the caller as a non-hit, which the trace loop treats the
// same as a miss; no FatalError event is raised for it.
func intersectToroid(p, d [3]float64, tor beamline.Toroid) (hit, bool) {
	if d[1] == 0 {
		return hit{}, false
	}
	seedT := -p[1] / d[1]

	eval := func(t float64) (val, x, y, z, rho float64) {
		x = p[0] + t*d[0]
		y = p[1] + t*d[1]
		z = p[2] + t*d[2]
		rho = math.Hypot(x, z)
		val = (rho-tor.LongRadius)*(rho-tor.LongRadius) + y*y - tor.ShortRadius*tor.ShortRadius
		return
	}

	var nls num.NlSolver
	defer nls.Clean()
	ffcn := func(fx, x []float64) error {
		val, _, _, _, _ := eval(x[0])
		fx[0] = val
		return nil
	}
	jfcn := func(J [][]float64, x []float64) error {
		_, px, py, pz, rho := eval(x[0])
		if rho == 0 {
			J[0][0] = 2 * py * d[1]
			return nil
		}
		dRho := (px*d[0] + pz*d[2]) / rho
		J[0][0] = 2*(rho-tor.LongRadius)*dRho + 2*py*d[1]
		return nil
	}
	nls.Init(1, ffcn, nil, jfcn, true, false, nil)
	nls.SetTols(1e-10, 1e-10, 1e-14, num.EPS)

	x := []float64{seedT}
	if err := nls.Solve(x, true); err != nil {
		return hit{}, false
	}
	t := x[0]

	_, px, py, pz, rho := eval(t)
	point := [3]float64{px, py, pz}
	var grad [3]float64
	if rho != 0 {
		grad = [3]float64{
			2 * (rho - tor.LongRadius) * px / rho,
			2 * py,
			2 * (rho - tor.LongRadius) * pz / rho,
		}
	} else {
		grad = [3]float64{0, 2 * py, 0}
	}
	if !tor.Concave {
		grad = [3]float64{-grad[0], -grad[1], -grad[2]}
	}
	n := normalizeAgainst(grad, d)
	return hit{t: t, point: point, normal: n}, true
}

// intersectPlaneXY solves t = -p_y/d_y analytically (§4.4); the
// caller treats |d_y| < 1e-16 as a non-hit (BeyondHorizon, never
// FatalError, per §8's boundary case).
func intersectPlaneXY(p, d [3]float64) (hit, bool) {
	if math.Abs(d[1]) < 1e-16 {
		return hit{}, false
	}
	t := -p[1] / d[1]
	point := [3]float64{p[0] + t*d[0], 0, p[2] + t*d[2]}
	n := normalizeAgainst([3]float64{0, 1, 0}, d)
	return hit{t: t, point: point, normal: n}, true
}

// normalizeAgainst normalizes v and flips its sign so it opposes the
// incoming direction d (n·d <= 0), the convention the Fresnel/
// slope-error kernels in package physics expect for their cosine of
// incidence.
func normalizeAgainst(v, d [3]float64) [3]float64 {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if n == 0 {
		return v
	}
	out := [3]float64{v[0] / n, v[1] / n, v[2] / n}
	if out[0]*d[0]+out[1]*d[1]+out[2]*d[2] > 0 {
		out = [3]float64{-out[0], -out[1], -out[2]}
	}
	return out
}
