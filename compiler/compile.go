package compiler

import (
	"math"

	"github.com/hz-b/rayx-sub003/beamline"
	"github.com/hz-b/rayx-sub003/design"
	"github.com/hz-b/rayx-sub003/material"
	"github.com/hz-b/rayx-sub003/rayxerr"
)

// Compile walks a design.Object tree rooted at root and produces a
// Beamline of compiled elements, in depth-first insertion order
// (§4.2). Source objects (PointSource, MatrixSource, DipoleSource,
// UndulatorSource) are skipped here — they are handled by package
// source — so Compile only ever returns the optical elements.
func Compile(root design.Object, tables *material.Tables) (*beamline.Beamline, error) {
	bl := &beamline.Beamline{Tables: tables}
	if err := compileNode(root, &bl.Elements); err != nil {
		return nil, err
	}
	return bl, nil
}

func compileNode(obj design.Object, out *[]beamline.CompiledElement) error {
	switch obj.Kind() {
	case design.KindMirror, design.KindGrating, design.KindRZP, design.KindSlit, design.KindImagePlane:
		el, err := compileElement(obj)
		if err != nil {
			return err
		}
		*out = append(*out, el)
	}
	for _, child := range obj.Children() {
		if err := compileNode(child, out); err != nil {
			return err
		}
	}
	return nil
}

func compileElement(obj design.Object) (beamline.CompiledElement, error) {
	el := beamline.CompiledElement{Name: obj.Name()}

	pos, rot, mis, err := placement(obj)
	if err != nil {
		return el, err
	}
	el.InTransform, el.OutTransform = beamline.Transforms(pos, rot, mis)

	surf, err := compileSurface(obj)
	if err != nil {
		return el, err
	}
	el.Surface = surf

	cutout, err := compileCutout(obj)
	if err != nil {
		return el, err
	}
	el.Cutout = cutout

	behavior, err := compileBehavior(obj)
	if err != nil {
		return el, err
	}
	el.Behavior = behavior

	el.SlopeError = beamline.SlopeError{
		Sagittal:   obj.FloatOr("slopeErrorSag", 0),
		Meridional: obj.FloatOr("slopeErrorMer", 0),
	}
	el.AzimuthalAngle = obj.FloatOr("azimuthalAngle", 0)

	matZ := obj.FloatOr("material", float64(material.Vacuum))
	el.Material = material.ID(int32(matZ))

	if !finite(el.InTransform) || !finite(el.OutTransform) {
		return el, rayxerr.NewConfiguration(obj.Name(), "resolved transform contains a non-finite value")
	}

	return el, nil
}

func placement(obj design.Object) (pos [3]float64, rot [3][3]float64, mis beamline.Misalignment, err error) {
	p, perr := obj.Vec3("position")
	if perr == nil {
		pos = [3]float64{p[0], p[1], p[2]}
	}

	azimuth := obj.FloatOr("azimuthalAngle", 0)
	grazing := obj.FloatOr("grazingIncAngle", 0)
	// the element's local frame is tilted by the grazing angle about
	// x, then rotated about z by the azimuth, matching the original's
	// orientation build order for in-plane vs out-of-plane rotation.
	c, s := math.Cos(grazing), math.Sin(grazing)
	rx := [3][3]float64{{1, 0, 0}, {0, c, -s}, {0, s, c}}
	ca, sa := math.Cos(azimuth), math.Sin(azimuth)
	rz := [3][3]float64{{ca, -sa, 0}, {sa, ca, 0}, {0, 0, 1}}
	rot = mat3Mul(rz, rx)

	mis = beamline.Misalignment{
		Dx:   obj.FloatOr("dx", 0),
		Dy:   obj.FloatOr("dy", 0),
		Dz:   obj.FloatOr("dz", 0),
		Dpsi: obj.FloatOr("dpsi", 0),
		Dphi: obj.FloatOr("dphi", 0),
		Dchi: obj.FloatOr("dchi", 0),
	}
	return pos, rot, mis, nil
}

func mat3Mul(a, b [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func finite(m beamline.Mat4) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.IsNaN(m[i][j]) || math.IsInf(m[i][j], 0) {
				return false
			}
		}
	}
	return true
}
