package compiler

import (
	"math"
	"testing"

	"github.com/hz-b/rayx-sub003/beamline"
	"github.com/hz-b/rayx-sub003/design"
)

func TestCompilePlaneMirrorProducesInverseTransforms(t *testing.T) {
	mirror := design.NewStatic("flat_mirror", design.KindMirror).
		WithVec3("position", design.Vec3{0, 0, 1000}).
		WithFloat("grazingIncAngle", 1*math.Pi/180).
		WithString("curvature", CurvaturePlane).
		WithString("cutoutKind", "rect").
		WithFloat("width", 100).
		WithFloat("length", 100)

	root := design.NewStatic("beamline", design.KindGroup).WithChild(mirror)

	bl, err := Compile(root, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bl.Len() != 1 {
		t.Fatalf("expected exactly one compiled element, got %d", bl.Len())
	}
	el := bl.At(0)
	if !el.ElementTransformsAreInverse(1e-9) {
		t.Fatalf("in_transform*out_transform should be identity")
	}
	if el.Cutout.W != 100 || el.Cutout.L != 100 {
		t.Fatalf("cutout not compiled correctly: %+v", el.Cutout)
	}
}

func TestCompileGratingCollectsVLSCoefficients(t *testing.T) {
	grating := design.NewStatic("g1", design.KindGrating).
		WithFloat("lineDensity", 1200).
		WithFloat("vls0", 0.01).
		WithFloat("orderDiffraction", 1).
		WithString("curvature", CurvaturePlane).
		WithString("cutoutKind", "unlimited")

	root := design.NewStatic("beamline", design.KindGroup).WithChild(grating)
	bl, err := Compile(root, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	el := bl.At(0)
	if el.Behavior.Kind != beamline.BehaviorGrating {
		t.Fatalf("expected BehaviorGrating, got %v", el.Behavior.Kind)
	}
	if el.Behavior.Grating.VLS[0] != 0.01 || el.Behavior.Grating.LineDensity != 1200 {
		t.Fatalf("grating behavior not compiled correctly: %+v", el.Behavior.Grating)
	}
}

func TestCompileRejectsUnknownCurvature(t *testing.T) {
	mirror := design.NewStatic("bad", design.KindMirror).
		WithString("curvature", "nonexistent").
		WithString("cutoutKind", "unlimited")
	root := design.NewStatic("beamline", design.KindGroup).WithChild(mirror)

	if _, err := Compile(root, nil); err == nil {
		t.Fatal("expected an error for an unknown curvature kind")
	}
}
