package compiler

import (
	"github.com/hz-b/rayx-sub003/beamline"
	"github.com/hz-b/rayx-sub003/design"
	"github.com/hz-b/rayx-sub003/rayxerr"
)

// CurvatureKind names which closed-form family §4.2's surface
// resolution picks between; stored under the "curvature" string
// parameter on a design object.
const (
	CurvaturePlane       = "plane"
	CurvatureCylindrical = "cylindrical"
	CurvatureSpherical   = "spherical"
	CurvatureParabolic   = "parabolic"
	CurvatureConical     = "conical"
	CurvatureElliptical  = "elliptical"
	CurvatureToroidal    = "toroidal"
)

func compileSurface(obj design.Object) (beamline.Surface, error) {
	kind, err := obj.String("curvature")
	if err != nil {
		kind = CurvaturePlane
	}

	switch kind {
	case CurvaturePlane:
		return beamline.Surface{Kind: beamline.SurfaceQuadric, Quadric: beamline.Plane()}, nil

	case CurvatureSpherical:
		radius, err := obj.Float("radius")
		if err != nil {
			return beamline.Surface{}, err
		}
		q := ToQuadricSphere(SphericalCurvature{Radius: radius})
		return beamline.Surface{Kind: beamline.SurfaceQuadric, Quadric: toBeamlineQuadric(q)}, nil

	case CurvatureCylindrical:
		dir := LongRadiusR
		if s, _ := obj.String("cylinderDirection"); s == "shortRadiusRho" {
			dir = ShortRadiusRho
		}
		q := ToQuadric(CylindricalCurvature{
			Direction:          dir,
			Radius:             obj.FloatOr("radius", 0),
			GrazingIncAngleRad: obj.FloatOr("grazingIncAngle", 0),
			EntranceArmLength:  obj.FloatOr("entranceArmLength", 0),
			ExitArmLength:      obj.FloatOr("exitArmLength", 0),
		})
		return beamline.Surface{Kind: beamline.SurfaceQuadric, Quadric: toBeamlineQuadric(q)}, nil

	case CurvatureParabolic:
		pType := Focus
		if s, _ := obj.String("parabolaType"); s == "collimate" {
			pType = Collimate
		}
		q := ToQuadricParabola(ParabolicCurvature{
			ArmLength:          obj.FloatOr("armLength", 0),
			ParameterP:         obj.FloatOr("parameterP", 0),
			ParameterPType:     pType,
			GrazingIncAngleRad: obj.FloatOr("grazingIncAngle", 0),
			ParameterA11:       obj.FloatOr("parameterA11", 1),
		})
		return beamline.Surface{Kind: beamline.SurfaceQuadric, Quadric: toBeamlineQuadric(q)}, nil

	case CurvatureConical:
		q := ToQuadricCone(ConicalCurvature{
			GrazingIncAngleRad: obj.FloatOr("grazingIncAngle", 0),
			EntranceArmLength:  obj.FloatOr("entranceArmLength", 0),
			ExitArmLength:      obj.FloatOr("exitArmLength", 0),
			TotalLength:        obj.FloatOr("totalLength", 0),
		})
		return beamline.Surface{Kind: beamline.SurfaceQuadric, Quadric: toBeamlineQuadric(q)}, nil

	case CurvatureElliptical:
		fr := RotationExplicit
		switch s, _ := obj.String("figureRotation"); s {
		case "full":
			fr = RotationFull
		case "plane":
			fr = RotationPlane
		}
		q := ToQuadricEllipse(EllipticalCurvature{
			EntranceArmLength:     obj.FloatOr("entranceArmLength", 0),
			ExitArmLength:         obj.FloatOr("exitArmLength", 0),
			ShortHalfAxisB:        obj.FloatOr("shortHalfAxisB", 0),
			LongHalfAxisA:         obj.FloatOr("longHalfAxisA", 0),
			DesignGrazingAngleRad: obj.FloatOr("designGrazingIncAngle", 0),
			FigureRotation:        fr,
			ParameterA11:          obj.FloatOr("parameterA11", 1),
		})
		return beamline.Surface{Kind: beamline.SurfaceQuadric, Quadric: toBeamlineQuadric(q)}, nil

	case CurvatureToroidal:
		return beamline.Surface{
			Kind: beamline.SurfaceToroid,
			Toroid: beamline.Toroid{
				LongRadius:  obj.FloatOr("longRadius", 0),
				ShortRadius: obj.FloatOr("shortRadius", 0),
				Concave:     mustBool(obj, "concave", true),
			},
		}, nil

	default:
		return beamline.Surface{}, rayxerr.NewConfiguration(obj.Name(), "unknown curvature kind %q", kind)
	}
}

func toBeamlineQuadric(q QuadricCoeffs) beamline.Quadric {
	return beamline.Quadric{
		Icurv: q.Icurv,
		A11:   q.A11, A12: q.A12, A13: q.A13, A14: q.A14,
		A22: q.A22, A23: q.A23, A24: q.A24,
		A33: q.A33, A34: q.A34,
		A44: q.A44,
	}
}

func mustBool(obj design.Object, param string, fallback bool) bool {
	v, err := obj.Bool(param)
	if err != nil {
		return fallback
	}
	return v
}
