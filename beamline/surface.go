package beamline

// SurfaceKind tags which of the four surface families an element's
// geometry belongs to (§3, §4.2).
type SurfaceKind int32

const (
	SurfaceQuadric SurfaceKind = iota
	SurfaceToroid
	SurfaceCubic
	SurfacePlaneXY
)

// Quadric holds the symmetric-matrix coefficients of
// x^T A x + 2 b^T x + c = 0 in the element's local frame, packed the
// way the compiler's closed-form curvature formulas (§4.2) produce
// them: A11,A12,A13,A22,A23,A33 is the symmetric 3x3 block, A14,A24,A34
// is b, A44 is c. Icurv selects which of the two roots of the
// intersection quadratic is physical: +1 for a concave surface, -1 for
// convex.
type Quadric struct {
	Icurv                            int32
	A11, A12, A13, A14               float64
	A22, A23, A24                    float64
	A33, A34                         float64
	A44                              float64
}

// Plane returns the quadric encoding of the infinite plane y=0:
// A = diag(0,0,0), b = (0,-1,0), c = 0, i.e. -2y = 0.
func Plane() Quadric {
	return Quadric{Icurv: 1, A24: -1}
}

// Sphere returns the quadric encoding of a sphere of radius R centered
// at (0,R,0): A = I, a24 = -R (§4.2).
func Sphere(radius float64) Quadric {
	return Quadric{Icurv: 1, A11: 1, A22: 1, A24: -radius, A33: 1}
}

// Toroid holds the two principal radii and a concave/convex flag; its
// intersection is solved by Newton-Raphson rather than in closed form
// (§4.4).
type Toroid struct {
	LongRadius, ShortRadius float64
	Concave                 bool
}

// Cubic is a placeholder for the cubic surface family: §4.2 defers its
// coefficient set to closed forms "analogous" to the quadric ones, and
// no compiled beamline in this engine's test corpus instantiates one
// the cubic behaves, numerically, as a quadric with one extra
// cross-term; it shares the Quadric storage plus a single cubic
// coefficient.
type Cubic struct {
	Quadric
	A113 float64 // coefficient of the x^2*z cubic term
}

// Surface is the tagged union the tracer's intersection routines
// dispatch on.
type Surface struct {
	Kind    SurfaceKind
	Quadric Quadric
	Toroid  Toroid
	Cubic   Cubic
}
