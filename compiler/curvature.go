// Package compiler implements the optical-model compiler: it walks a
// design.Object tree and produces a beamline.Beamline of
// CompiledElement records ready for the tracing engine (§4.2).
package compiler

import "math"

// CylinderDirection selects which of the cylinder's two principal
// curvatures is finite.
type CylinderDirection int

const (
	LongRadiusR CylinderDirection = iota
	ShortRadiusRho
)

// CylindricalCurvature mirrors the design-time cylinder description:
// either an explicit radius, or zero to request the radius be derived
// from the entrance/exit arm lengths and grazing incidence angle.
type CylindricalCurvature struct {
	Direction          CylinderDirection
	Radius             float64
	GrazingIncAngleRad float64
	EntranceArmLength  float64
	ExitArmLength      float64
}

// ToQuadric derives the (icurv, a11..a44) coefficients of a cylinder,
// resolving an unspecified radius from the two arm lengths exactly as
// the original's RAY.FOR-derived formula does.
func ToQuadric(c CylindricalCurvature) QuadricCoeffs {
	radius := c.Radius
	var a11, a33, a24 float64
	if c.Direction == LongRadiusR {
		a11, a33, a24 = 0, 1, -radius
	} else {
		a11, a33, a24 = 1, 0, -radius
	}

	icurv := 1
	if a24 > 0 {
		icurv = -1
	}

	if radius == 0 {
		sinInc := math.Sin(c.GrazingIncAngleRad)
		if c.Direction == LongRadiusR {
			radius = 2.0 / sinInc / (1/c.EntranceArmLength + 1/c.ExitArmLength)
		} else if c.EntranceArmLength == 0 || c.ExitArmLength == 0 || c.GrazingIncAngleRad == 0 {
			radius = 0
		} else {
			radius = 2.0 * sinInc / (1/c.EntranceArmLength + 1/c.ExitArmLength)
		}
		a24 = -radius
		icurv = 1
		if a24 > 0 {
			icurv = -1
		}
	}

	return QuadricCoeffs{Icurv: int32(icurv), A11: a11, A22: 1, A24: a24, A33: a33}
}

// SphericalCurvature is a sphere of the given radius.
type SphericalCurvature struct{ Radius float64 }

func ToQuadricSphere(c SphericalCurvature) QuadricCoeffs {
	return QuadricCoeffs{Icurv: 1, A11: 1, A22: 1, A24: -c.Radius, A33: 1}
}

// ParabolicCurvatureType selects whether the parabola collimates
// (sign=+1) or focuses (sign=-1) a beam.
type ParabolicCurvatureType int

const (
	Collimate ParabolicCurvatureType = iota
	Focus
)

type ParabolicCurvature struct {
	ArmLength          float64
	ParameterP         float64
	ParameterPType     ParabolicCurvatureType
	GrazingIncAngleRad float64
	ParameterA11       float64
}

func ToQuadricParabola(c ParabolicCurvature) QuadricCoeffs {
	sign := -1.0
	if c.ParameterPType == Collimate {
		sign = 1.0
	}

	sin1 := math.Sin(2 * c.GrazingIncAngleRad)
	cos1 := math.Cos(2 * c.GrazingIncAngleRad)

	y0 := c.ArmLength * sin1
	z0 := c.ArmLength * cos1 * sign

	a24 := -y0
	a34 := -c.ParameterP
	a44 := y0*y0 - 2*c.ParameterP*z0 - c.ParameterP*c.ParameterP

	return QuadricCoeffs{Icurv: 1, A11: c.ParameterA11, A22: 1, A24: a24, A34: a34, A44: a44}
}

// ConicalCurvature describes a cone fitted between two arm lengths at
// different entrance/exit radii, matching the original's RAY.FOR
// derivation of the equivalent upstream/downstream radii.
type ConicalCurvature struct {
	GrazingIncAngleRad float64
	EntranceArmLength  float64
	ExitArmLength      float64
	TotalLength        float64
}

func ToQuadricCone(c ConicalCurvature) QuadricCoeffs {
	zl := c.TotalLength
	ra, rb := c.EntranceArmLength, c.ExitArmLength
	zl2 := (zl / 2) * (zl / 2)
	sth, cth := math.Sin(c.GrazingIncAngleRad), math.Cos(c.GrazingIncAngleRad)

	rmax1 := math.Sqrt(zl2 + ra*ra - zl*ra*cth)
	rmax2 := math.Sqrt(zl2 + rb*rb + zl*rb*cth)
	rmin1 := math.Sqrt(zl2 + ra*ra + zl*ra*cth)
	rmin2 := math.Sqrt(zl2 + rb*rb - zl*rb*cth)

	thmax := math.Asin(ra * sth / rmax1)
	thmin := math.Asin(ra * sth / rmin1)
	sthmax, sthmin := math.Sin(thmax), math.Sin(thmin)

	upstreamR := 2 * sthmax / (1/rmax1 + 1/rmax2)
	downstreamRho := 2 * sthmin / (1/rmin1 + 1/rmin2)

	cm := ((upstreamR - downstreamRho) / zl) * ((upstreamR - downstreamRho) / zl)

	a11 := 1 - cm
	a22 := 1 - 2*cm
	a23 := math.Sqrt(math.Max(0, cm-cm*cm))

	icurv := int32(0)
	if a22 > 0 {
		icurv = 1
	}

	var a24 float64
	if a23 != 0 {
		a24 = -a23 * (upstreamR/math.Sqrt(cm) - zl/2)
	} else {
		a24 = -upstreamR
	}

	return QuadricCoeffs{Icurv: icurv, A11: a11, A22: a22, A23: a23, A24: a24}
}

// FigureRotation selects how an elliptical curvature's a11 coefficient
// is derived: full figure-of-revolution, a plane (a11=0), or an
// explicit design value.
type FigureRotation int

const (
	RotationExplicit FigureRotation = iota
	RotationFull
	RotationPlane
)

type EllipticalCurvature struct {
	EntranceArmLength     float64
	ExitArmLength         float64
	ShortHalfAxisB        float64
	LongHalfAxisA         float64
	DesignGrazingAngleRad float64
	FigureRotation        FigureRotation
	ParameterA11          float64
}

func ToQuadricEllipse(c EllipticalCurvature) QuadricCoeffs {
	var y0 float64
	if c.LongHalfAxisA > c.ShortHalfAxisB {
		if c.DesignGrazingAngleRad > 0 {
			y0 = -(c.ShortHalfAxisB * c.ShortHalfAxisB) / math.Tan(c.DesignGrazingAngleRad) /
				math.Sqrt(c.LongHalfAxisA*c.LongHalfAxisA-c.ShortHalfAxisB*c.ShortHalfAxisB)
		} else {
			y0 = -c.ShortHalfAxisB
		}
	}

	var z0 float64
	switch {
	case c.EntranceArmLength > c.ExitArmLength && -c.ShortHalfAxisB < y0:
		z0 = c.LongHalfAxisA * math.Sqrt(math.Max(0, c.ShortHalfAxisB*c.ShortHalfAxisB-y0*y0)) / c.ShortHalfAxisB
	case c.EntranceArmLength < c.ExitArmLength && -c.ShortHalfAxisB < y0:
		z0 = -c.LongHalfAxisA * math.Sqrt(math.Max(0, c.ShortHalfAxisB*c.ShortHalfAxisB-y0*y0)) / c.ShortHalfAxisB
	}

	var mt float64
	if c.LongHalfAxisA > 0 && y0 < 0 {
		ratio := c.ShortHalfAxisB / c.LongHalfAxisA
		mt = ratio * ratio * z0 / y0
	}

	a11 := c.ParameterA11
	switch c.FigureRotation {
	case RotationFull:
		a11 = 1
	case RotationPlane:
		a11 = 0
	}

	tangentAngle := math.Atan(mt)
	cosT, sinT := math.Cos(tangentAngle), math.Sin(tangentAngle)
	ratio := c.ShortHalfAxisB / c.LongHalfAxisA

	a22 := cosT*cosT + (ratio*sinT)*(ratio*sinT)
	a23 := (c.ShortHalfAxisB*c.ShortHalfAxisB-c.LongHalfAxisA*c.LongHalfAxisA) * cosT * sinT / (c.LongHalfAxisA * c.LongHalfAxisA)
	a24 := ratio*ratio*z0*sinT + y0*cosT
	a33 := sinT*sinT + (ratio*cosT)*(ratio*cosT)
	a34 := ratio*ratio*z0*cosT - y0*sinT
	a44 := -c.ShortHalfAxisB*c.ShortHalfAxisB + y0*y0 + (z0*ratio)*(z0*ratio)

	return QuadricCoeffs{Icurv: 1, A11: a11, A22: a22, A23: a23, A24: a24, A33: a33, A34: a34, A44: a44}
}

// QuadricCoeffs is the compiler-internal coefficient set, converted to
// beamline.Quadric once the compiler has also resolved icurv sign and
// any remaining cross-terms.
type QuadricCoeffs struct {
	Icurv                  int32
	A11, A12, A13, A14     float64
	A22, A23, A24          float64
	A33, A34               float64
	A44                    float64
}
