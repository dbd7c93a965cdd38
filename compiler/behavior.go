package compiler

import (
	"github.com/hz-b/rayx-sub003/beamline"
	"github.com/hz-b/rayx-sub003/design"
	"github.com/hz-b/rayx-sub003/rayxerr"
)

// compileBehavior packages a design object's per-kind behavior
// parameters into the beamline.Behavior tagged union (§4.2).
func compileBehavior(obj design.Object) (beamline.Behavior, error) {
	switch obj.Kind() {
	case design.KindMirror:
		return beamline.Behavior{Kind: beamline.BehaviorMirror}, nil

	case design.KindGrating:
		var vls [6]float64
		for i := 0; i < 6; i++ {
			vls[i] = obj.FloatOr(vlsParam(i), 0)
		}
		lineDensity, err := obj.Float("lineDensity")
		if err != nil {
			return beamline.Behavior{}, err
		}
		order := obj.FloatOr("orderDiffraction", 1)
		return beamline.Behavior{
			Kind: beamline.BehaviorGrating,
			Grating: beamline.Grating{
				VLS:         vls,
				LineDensity: lineDensity,
				Order:       order,
			},
		}, nil

	case design.KindRZP:
		return beamline.Behavior{
			Kind: beamline.BehaviorRZP,
			RZP: beamline.RZP{
				ImageType:                   obj.FloatOr("imageType", 0),
				RZPType:                     obj.FloatOr("rzpType", 0),
				DerivationMethod:            obj.FloatOr("derivationMethod", 0),
				DesignWavelength:            obj.FloatOr("designWavelength", 0),
				DesignOrder:                 obj.FloatOr("designOrder", 1),
				Order:                       obj.FloatOr("orderDiffraction", 1),
				FresnelZOffset:              obj.FloatOr("fresnelZOffset", 0),
				DesignSagittalEntranceArm:   obj.FloatOr("designSagittalEntranceArm", 0),
				DesignSagittalExitArm:       obj.FloatOr("designSagittalExitArm", 0),
				DesignMeridionalEntranceArm: obj.FloatOr("designMeridionalEntranceArm", 0),
				DesignMeridionalExitArm:     obj.FloatOr("designMeridionalExitArm", 0),
				DesignAlpha:                 obj.FloatOr("designAlpha", 0),
				DesignBeta:                  obj.FloatOr("designBeta", 0),
				AdditionalOrder:             mustBool(obj, "additionalOrder", false),
			},
		}, nil

	case design.KindSlit:
		opening, err := compileSlitCutout(obj, "opening")
		if err != nil {
			return beamline.Behavior{}, err
		}
		beamstop, err := compileSlitCutout(obj, "beamstop")
		if err != nil {
			beamstop = beamline.Cutout{Kind: beamline.CutoutRect}
		}
		return beamline.Behavior{
			Kind: beamline.BehaviorSlit,
			Slit: beamline.Slit{Opening: opening, Beamstop: beamstop},
		}, nil

	case design.KindImagePlane:
		return beamline.Behavior{Kind: beamline.BehaviorImagePlane}, nil

	default:
		return beamline.Behavior{}, rayxerr.NewConfiguration(obj.Name(), "object kind %q has no behavior", obj.Kind())
	}
}

func vlsParam(i int) string {
	return [6]string{"vls0", "vls1", "vls2", "vls3", "vls4", "vls5"}[i]
}

// compileSlitCutout reads a width/length pair namespaced by prefix
// ("opening" or "beamstop") and builds a rectangular cutout from it;
// slits in this model only ever use rectangular openings/beamstops.
func compileSlitCutout(obj design.Object, prefix string) (beamline.Cutout, error) {
	w, werr := obj.Float(prefix + "Width")
	l, lerr := obj.Float(prefix + "Length")
	if werr != nil || lerr != nil {
		return beamline.Cutout{}, rayxerr.NewConfiguration(obj.Name(), "slit requires %sWidth and %sLength", prefix, prefix)
	}
	return beamline.Rect(w, l), nil
}
