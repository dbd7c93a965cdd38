package physics

import (
	"math"
	"math/cmplx"

	"github.com/hz-b/rayx-sub003/material"
)

// FresnelCoefficients holds the complex amplitude reflectances for the
// two polarization components at a single collision (§4.4).
type FresnelCoefficients struct {
	RS, RP complex128
}

// Fresnel computes the s/p amplitude reflectance of a surface with
// complex refractive index n-ik (vacuum incidence, n1=1) at the given
// angle of incidence measured from the surface normal. cosIncidence is
// |d.n| for a unit incoming direction d and unit normal n.
func Fresnel(n, k, cosIncidence float64) FresnelCoefficients {
	// N = n - ik is the standard X-ray convention (absorption on the
	// imaginary part); Snell's law gives the transmitted angle from
	// sinT = sinI/N, evaluated in the complex plane.
	N := complex(n, -k)

	sinI2 := 1 - cosIncidence*cosIncidence
	if sinI2 < 0 {
		sinI2 = 0
	}
	sinI := math.Sqrt(sinI2)

	sinT := complex(sinI, 0) / N
	cosT := cmplx.Sqrt(1 - sinT*sinT)
	cosI := complex(cosIncidence, 0)

	rs := (cosI - N*cosT) / (cosI + N*cosT)
	rp := (N*cosI - cosT) / (N*cosI + cosT)

	return FresnelCoefficients{RS: rs, RP: rp}
}

// Reflectance returns the (s,p) intensity reflectance |r|^2; REFLECTIVE
// material reflects perfectly at every energy and angle (§8 invariant),
// VACUUM never occurs on a collision surface and is treated as a
// zero-reflectance degenerate case.
func Reflectance(tables *material.Tables, id material.ID, energyEV, cosIncidence float64) (fc FresnelCoefficients, rIntensityS, rIntensityP float64) {
	if id == material.Reflective {
		return FresnelCoefficients{RS: 1, RP: 1}, 1, 1
	}
	if id == material.Vacuum {
		return FresnelCoefficients{}, 0, 0
	}
	n, k, ok := tables.RefractiveIndex(id, energyEV)
	if !ok {
		return FresnelCoefficients{}, 0, 0
	}
	fc = Fresnel(n, k, cosIncidence)
	rIntensityS = real(fc.RS * cmplx.Conj(fc.RS))
	rIntensityP = real(fc.RP * cmplx.Conj(fc.RP))
	return
}

// ApplyFieldAttenuation scales the incoming electric field by the s/p
// amplitude coefficients: the component of field perpendicular to the
// plane of incidence (spanned by d and n) gets RS, the in-plane
// component gets RP (§4.4's "separate s/p coefficients").
func ApplyFieldAttenuation(field [3]complex128, d, n Vec3, fc FresnelCoefficients) [3]complex128 {
	s := Cross(d, n)
	sNorm := Norm(s)
	if sNorm == 0 {
		// incidence exactly along the normal: plane of incidence is
		// undefined, treat the whole field as p-polarized.
		out := field
		for i := range out {
			out[i] *= fc.RP
		}
		return out
	}
	s = Scale(s, 1/sNorm)
	p := Normalize(Cross(s, d))

	sComp := complex(s[0], 0)*field[0] + complex(s[1], 0)*field[1] + complex(s[2], 0)*field[2]
	pComp := complex(p[0], 0)*field[0] + complex(p[1], 0)*field[1] + complex(p[2], 0)*field[2]

	sAmp := sComp * fc.RS
	pAmp := pComp * fc.RP

	var out [3]complex128
	for i := 0; i < 3; i++ {
		out[i] = complex(s[i], 0)*sAmp + complex(p[i], 0)*pAmp
	}
	return out
}
