package physics

import (
	"math"

	"github.com/hz-b/rayx-sub003/beamline"
)

// HvLamEV converts a photon energy in eV to a wavelength in mm, the
// unit the rest of the beamline geometry is expressed in.
func HvLamEV(energyEV float64) float64 {
	const hvLamConst = 1.23984193e-3 // eV*mm, h*c
	return hvLamConst / energyEV
}

// LocalLineDensity evaluates a grating's line density at the
// meridional hit coordinate z (mm from the grating center) via the
// six-coefficient VLS polynomial: k(z) = lineDensity*(1 + vls[0]*z +
// vls[1]*z^2 + ... + vls[5]*z^6) (§4.4's "VLS polynomial evaluated at
// the hit").
func LocalLineDensity(g beamline.Grating, z float64) float64 {
	poly := 1.0
	zp := z
	for i := 0; i < 6; i++ {
		poly += g.VLS[i] * zp
		zp *= z
	}
	return g.LineDensity * poly
}

// DiffractedDirection reflects d about n as a mirror would, then
// perturbs the meridional component so that the grating equation
// sin(alpha) - sin(beta) = m*lambda*k holds, where alpha is the angle
// of incidence and beta the angle of diffraction, both measured from
// the normal within the meridional plane spanned by n and the
// meridional tangent t (§4.4). lineDensityPerMM is in lines/mm,
// energyEV the ray's photon energy, order the diffraction order m.
func DiffractedDirection(d, n, t Vec3, lineDensityPerMM, order, energyEV float64) Vec3 {
	lambdaMM := HvLamEV(energyEV)

	// decompose d into components along n (normal) and t (meridional
	// tangent, lying in the grating's dispersion plane); the third,
	// sagittal component is unaffected by a 1D grating.
	dn := Dot(d, n)
	dt := Dot(d, t)

	// the grating equation sin(alpha) - sin(beta) = m*lambda*k holds
	// between the tangential direction components themselves at this
	// near-paraxial approximation; order 0 must reduce to an unchanged
	// tangential component, i.e. plain mirror reflection.
	betaSin := dt - order*lambdaMM*lineDensityPerMM

	// rebuild the tangential/normal split of the diffracted ray,
	// preserving the sagittal component and the overall unit length.
	sagittal := Sub(d, Add(Scale(n, dn), Scale(t, dt)))
	sagMag2 := Dot(sagittal, sagittal)

	normalMag2 := 1 - betaSin*betaSin - sagMag2
	if normalMag2 < 0 {
		normalMag2 = 0
	}
	// reflection flips the sign of the normal component; the magnitude
	// is whatever the unit-length constraint leaves for it.
	dnOut := math.Sqrt(normalMag2)
	if dn > 0 {
		dnOut = -dnOut
	}

	out := Add(Add(Scale(n, dnOut), Scale(t, betaSin)), sagittal)
	return Normalize(out)
}

// RZPLocalLineDensity computes the position-dependent local line
// density of a reflection zone plate at meridional coordinate z and
// sagittal coordinate x, derived from its focusing condition: the
// local grating vector is the gradient of the optical path difference
// to the two design foci (§4.4, original RZP zone-spacing derivation).
// Entrance/exit arm lengths and design angles fix the two focal
// points in the element's local frame; DesignWavelength and
// DesignOrder fix the OPD's wavelength scale.
func RZPLocalLineDensity(rzp beamline.RZP, x, z float64) float64 {
	rs1 := rzp.DesignSagittalEntranceArm
	rs2 := rzp.DesignSagittalExitArm
	rm1 := rzp.DesignMeridionalEntranceArm
	rm2 := rzp.DesignMeridionalExitArm

	// distances from (x,z) to each focus, modeled in the meridional
	// plane with the sagittal offset folded in quadrature; rs/rm give
	// the two arm lengths at zero sagittal/meridional offset
	// respectively, matching the original's two-arm RZP construction.
	d1 := math.Hypot(rm1+z, x+rs1) - math.Hypot(rm1, rs1)
	d2 := math.Hypot(rm2-z, x+rs2) - math.Hypot(rm2, rs2)

	lambda := rzp.DesignWavelength
	if lambda == 0 {
		lambda = 1
	}

	// local fringe spacing from the path-length gradient w.r.t. z,
	// forward-differenced at a small step since the two Hypot terms
	// above are already closed-form in x,z.
	const h = 1e-6
	d1h := math.Hypot(rm1+z+h, x+rs1) - math.Hypot(rm1, rs1)
	d2h := math.Hypot(rm2-(z+h), x+rs2) - math.Hypot(rm2, rs2)
	dOPDdz := ((d1h + d2h) - (d1 + d2)) / h

	order := rzp.DesignOrder
	if order == 0 {
		order = 1
	}

	density := dOPDdz * order / lambda
	return density
}
