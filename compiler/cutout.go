package compiler

import (
	"github.com/hz-b/rayx-sub003/beamline"
	"github.com/hz-b/rayx-sub003/design"
	"github.com/hz-b/rayx-sub003/rayxerr"
)

// compileCutout normalizes a design object's cutout parameters into a
// beamline.Cutout, including the legacy negative-dimension convention
// some importers use to flag an elliptical cutout (§4.2).
func compileCutout(obj design.Object) (beamline.Cutout, error) {
	kind, err := obj.String("cutoutKind")
	if err != nil {
		kind = "unlimited"
	}

	switch kind {
	case "unlimited":
		return beamline.Unlimited(), nil
	case "rect":
		w, werr := obj.Float("width")
		l, lerr := obj.Float("length")
		if werr != nil || lerr != nil {
			return beamline.Cutout{}, rayxerr.NewConfiguration(obj.Name(), "rect cutout requires width and length")
		}
		// the legacy convention signals an elliptical cutout with a
		// negative stored width; normalize it away here rather than
		// carrying the ambiguity into the tracer.
		if w < 0 || l < 0 {
			return beamline.Elliptical(absf(w), absf(l)), nil
		}
		return beamline.Rect(w, l), nil
	case "elliptical":
		dx, dxerr := obj.Float("diameterX")
		dz, dzerr := obj.Float("diameterZ")
		if dxerr != nil || dzerr != nil {
			return beamline.Cutout{}, rayxerr.NewConfiguration(obj.Name(), "elliptical cutout requires diameterX and diameterZ")
		}
		return beamline.Elliptical(absf(dx), absf(dz)), nil
	case "trapezoid":
		wa, waerr := obj.Float("widthA")
		wb, wberr := obj.Float("widthB")
		l, lerr := obj.Float("length")
		if waerr != nil || wberr != nil || lerr != nil {
			return beamline.Cutout{}, rayxerr.NewConfiguration(obj.Name(), "trapezoid cutout requires widthA, widthB, and length")
		}
		return beamline.Trapezoid(wa, wb, l), nil
	default:
		return beamline.Cutout{}, rayxerr.NewConfiguration(obj.Name(), "unknown cutout kind %q", kind)
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
