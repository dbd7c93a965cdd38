package design

import "testing"

func TestStaticFloatRoundTrip(t *testing.T) {
	obj := NewStatic("mirror1", KindMirror).WithFloat("grazingAngle", 1.0)
	v, err := obj.Float("grazingAngle")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1.0 {
		t.Fatalf("expected 1.0, got %v", v)
	}
}

func TestStaticMissingParamErrors(t *testing.T) {
	obj := NewStatic("mirror1", KindMirror)
	if _, err := obj.Float("grazingAngle"); err == nil {
		t.Fatal("expected an error for a missing parameter")
	}
}

func TestStaticFloatOrFallsBack(t *testing.T) {
	obj := NewStatic("grating1", KindGrating)
	if got := obj.FloatOr("vls0", 0); got != 0 {
		t.Fatalf("expected fallback 0, got %v", got)
	}
}

func TestStaticChildrenPreserveInsertionOrder(t *testing.T) {
	root := NewStatic("beamline", KindGroup)
	a := NewStatic("a", KindMirror)
	b := NewStatic("b", KindSlit)
	root.WithChild(a).WithChild(b)

	children := root.Children()
	if len(children) != 2 || children[0].Name() != "a" || children[1].Name() != "b" {
		t.Fatalf("children out of order: %v", children)
	}
}
