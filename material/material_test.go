package material

import (
	"math"
	"testing"
)

// fakeLoader serves in-memory tables keyed by (symbol, src), avoiding
// any dependency on a populated data root.
type fakeLoader struct {
	tables map[string]map[Source][]NKEntry
}

func (f fakeLoader) Load(symbol string, src Source) ([]NKEntry, error) {
	bySrc, ok := f.tables[symbol]
	if !ok {
		return nil, errNotFound(symbol)
	}
	entries, ok := bySrc[src]
	if !ok {
		return nil, errNotFound(symbol)
	}
	return entries, nil
}

type notFoundError string

func (e notFoundError) Error() string { return string(e) }
func errNotFound(symbol string) error { return notFoundError("no table for " + symbol) }

func TestRefractiveIndexVacuumAndReflective(t *testing.T) {
	tab := &Tables{}
	if n, k, ok := tab.RefractiveIndex(Vacuum, 1000); !ok || n != 1 || k != 0 {
		t.Fatalf("expected vacuum (1,0,true), got (%v,%v,%v)", n, k, ok)
	}
	if n, k, ok := tab.RefractiveIndex(Reflective, 1000); !ok || n != 1 || k != 0 {
		t.Fatalf("expected reflective (1,0,true), got (%v,%v,%v)", n, k, ok)
	}
}

func TestRefractiveIndexInterpolatesPalikBelowCrossover(t *testing.T) {
	loader := fakeLoader{tables: map[string]map[Source][]NKEntry{
		"Au": {Palik: []NKEntry{{Energy: 100, N: 0.9, K: 0.1}, {Energy: 200, N: 0.8, K: 0.2}}},
	}}
	tab, err := Load(loader, []int{79}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, k, ok := tab.RefractiveIndex(ID(79), 150)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if math.Abs(n-0.85) > 1e-9 || math.Abs(k-0.15) > 1e-9 {
		t.Fatalf("expected midpoint interpolation (0.85,0.15), got (%v,%v)", n, k)
	}
}

func TestRefractiveIndexFallsBackToCromerWhenPalikEmpty(t *testing.T) {
	loader := fakeLoader{tables: map[string]map[Source][]NKEntry{
		"Au": {Cromer: []NKEntry{{Energy: 50000, N: 1.0, K: 2.0}}},
	}}
	tab, err := Load(loader, []int{79}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// f1/f2 entries get converted by convertFK; only ok is checked
	// here.
	_, _, ok := tab.RefractiveIndex(ID(79), 50000)
	if !ok {
		t.Fatal("expected fallback to Cromer table to succeed")
	}
}

func TestRefractiveIndexUnknownMaterialFails(t *testing.T) {
	tab := &Tables{}
	if _, _, ok := tab.RefractiveIndex(ID(999), 1000); ok {
		t.Fatal("expected unknown material id to fail")
	}
}

func TestRefractiveIndexOutOfRangeFails(t *testing.T) {
	loader := fakeLoader{tables: map[string]map[Source][]NKEntry{
		"Au": {Palik: []NKEntry{{Energy: 100, N: 0.9, K: 0.1}, {Energy: 200, N: 0.8, K: 0.2}}},
	}}
	tab, err := Load(loader, []int{79}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, ok := tab.RefractiveIndex(ID(79), 5); ok {
		t.Fatal("expected energy below table range to fail")
	}
	if _, _, ok := tab.RefractiveIndex(ID(79), 5000); ok {
		t.Fatal("expected energy above table range to fail")
	}
}

func TestAtomicMassAndRhoUnknownElement(t *testing.T) {
	if _, _, err := AtomicMassAndRho(999); err == nil {
		t.Fatal("expected error for unknown atomic number")
	}
}

func TestAtomicMassAndRhoKnownElement(t *testing.T) {
	mass, rho, err := AtomicMassAndRho(79)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mass <= 0 || rho <= 0 {
		t.Fatalf("expected positive mass/density, got (%v,%v)", mass, rho)
	}
}
