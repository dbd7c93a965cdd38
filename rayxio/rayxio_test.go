package rayxio

import "testing"

func TestColumnKnownBit(t *testing.T) {
	name, ok := Column(AttrEnergy)
	if !ok || name != "energy" {
		t.Fatalf("expected (\"energy\", true), got (%q, %v)", name, ok)
	}
}

func TestColumnRejectsCombinedMask(t *testing.T) {
	if _, ok := Column(AttrEnergy | AttrOrder); ok {
		t.Fatal("expected a combined mask to not resolve to a single column")
	}
}

func TestColumnsPreservesCanonicalOrder(t *testing.T) {
	mask := AttrSourceID | AttrRayID | AttrEnergy
	got := Columns(mask)
	want := []string{"ray_id", "energy", "source_id"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestAttrAllSelectsEveryColumn(t *testing.T) {
	got := Columns(AttrAll)
	if len(got) != len(orderedAttrs) {
		t.Fatalf("expected %d columns, got %d", len(orderedAttrs), len(got))
	}
}

func TestHasReportsMembership(t *testing.T) {
	mask := AttrEnergy | AttrOrder
	if !mask.Has(AttrEnergy) {
		t.Fatal("expected mask to have AttrEnergy")
	}
	if mask.Has(AttrSourceID) {
		t.Fatal("expected mask to not have AttrSourceID")
	}
}
