package physics

import (
	"math"

	"github.com/hz-b/rayx-sub003/beamline"
	"github.com/hz-b/rayx-sub003/rng"
)

// PerturbNormal rotates the local normal n by two independent
// Gaussian angles with standard deviations (sigmaSagittal,
// sigmaMeridional), about the tangential and sagittal axes
// respectively (§4.4: "perturb the normal by two independent
// Gaussians ... rotating the normal in the element's local frame").
// tangent and sagittal are the element's two in-plane unit axes;
// position is unaffected.
func PerturbNormal(n, tangent, sagittal Vec3, se beamline.SlopeError, stream *rng.Stream) Vec3 {
	if se.Sagittal == 0 && se.Meridional == 0 {
		return n
	}

	thetaMer := stream.GaussianScaled(0, se.Meridional)
	thetaSag := stream.GaussianScaled(0, se.Sagittal)

	// small-angle rotation of n within the (n,tangent) plane by
	// thetaMer, then within the (n,sagittal) plane by thetaSag; exact
	// rotation rather than a linearized tilt, since sigmas can be
	// non-negligible.
	out := rotateAbout(n, sagittal, thetaMer)
	out = rotateAbout(out, tangent, -thetaSag)
	return Normalize(out)
}

// rotateAbout rotates vector v by angle theta (radians) about the unit
// axis a using Rodrigues' formula.
func rotateAbout(v, a Vec3, theta float64) Vec3 {
	c, s := math.Cos(theta), math.Sin(theta)
	term1 := Scale(v, c)
	term2 := Scale(Cross(a, v), s)
	term3 := Scale(a, Dot(a, v)*(1-c))
	return Add(Add(term1, term2), term3)
}
