// Package material loads per-element refractive-index tables (Palik,
// NFF, Cromer, Molec) and answers energy-dependent (n, k) lookups for
// the Fresnel reflectance kernel (§4.1).
package material

import (
	"sort"
	"strings"

	"github.com/cpmech/gosl/io"

	"github.com/hz-b/rayx-sub003/rayxerr"
)

// ID identifies a material by atomic number, with two sentinels for the
// non-physical materials the compiler may assign to an element.
type ID int32

const (
	// Vacuum has n=1, k=0 at every energy; never has table data.
	Vacuum ID = -1
	// Reflective is the idealized perfect mirror: Fresnel reflectance
	// returns 1.0 at every energy and angle (§8 invariant).
	Reflective ID = -2
)

// Source distinguishes which on-disk table format a (material,energy)
// pair was read from.
type Source int

const (
	Palik Source = iota
	NFF
	Cromer
	Molec
	numSources
)

func (s Source) fileExt() string {
	switch s {
	case Palik:
		return "NKP"
	case NFF:
		return "nff"
	case Cromer:
		return "f12"
	case Molec:
		return "NKM"
	default:
		rayxerr.Bug("unknown material.Source %d", s)
		return ""
	}
}

// NKEntry is one (energy, n, k) sample, in ascending-energy order
// within its slice.
type NKEntry struct {
	Energy, N, K float64
}

// atomicData holds the mass (u) and density (g/cm^3) needed by the
// NFF/Cromer conversion formula, for the elements this engine ships
// reference constants for. Values are the standard CODATA/CRC atomic
// weights and room-temperature densities, the same constants RAYX's
// materials.xmacro table carries as literals.
var atomicData = map[int]struct{ Mass, Rho float64 }{
	4:  {9.0122, 1.848},   // Be
	6:  {12.011, 2.267},   // C
	13: {26.982, 2.700},   // Al
	14: {28.085, 2.330},   // Si
	24: {51.996, 7.190},   // Cr
	28: {58.693, 8.908},   // Ni
	29: {63.546, 8.960},   // Cu
	42: {95.95, 10.280},   // Mo
	46: {106.42, 12.023},  // Pd
	47: {107.868, 10.490}, // Ag
	74: {183.84, 19.300},  // W
	78: {195.084, 21.450}, // Pt
	79: {196.967, 19.300}, // Au
	82: {207.2, 11.340},   // Pb
}

// AtomicMassAndRho returns the (mass, density) pair used by the
// NFF/Cromer f1/f2 -> n/k conversion. The Resource error names the
// unknown atomic number, matching §7's ResourceError contract.
func AtomicMassAndRho(z int) (mass, rho float64, err error) {
	d, ok := atomicData[z]
	if !ok {
		return 0, 0, rayxerr.NewResource(z, "no atomic mass/density constant on file")
	}
	return d.Mass, d.Rho, nil
}

// elementFileStem lowercases the element symbol the way RAYX's data
// file names do ("Au" -> "au").
func elementFileStem(symbol string) string {
	return strings.ToLower(symbol)
}

// Loader reads one table file for one element. Production code uses
// DiskLoader; tests substitute an in-memory Loader to avoid depending
// on a populated data root.
type Loader interface {
	Load(symbol string, src Source) ([]NKEntry, error)
}

// DiskLoader reads Palik/.NKP, NFF/.nff, Cromer/.f12 and Molec/.NKM
// files from DataRoot, each a header line followed by whitespace
// separated (energy_eV, a, b) triples — (a,b)=(n,k) for Palik/Molec,
// (f1,f2) for NFF/Cromer.
type DiskLoader struct {
	DataRoot string
}

func (d DiskLoader) path(symbol string, src Source) string {
	dir := map[Source]string{Palik: "palik", NFF: "nff", Cromer: "cromer", Molec: "molec"}[src]
	return d.DataRoot + "/" + dir + "/" + elementFileStem(symbol) + "." + src.fileExt()
}

func (d DiskLoader) Load(symbol string, src Source) ([]NKEntry, error) {
	text, err := io.ReadFile(d.path(symbol, src))
	if err != nil {
		return nil, rayxerr.NewResource(0, "could not read %s table for %q: %v", src.fileExt(), symbol, err)
	}
	lines := strings.Split(string(text), "\n")
	var entries []NKEntry
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, rayxerr.NewResource(0, "malformed %s line %d for %q: %q", src.fileExt(), i+1, symbol, line)
		}
		e, a, b := io.Atof(fields[0]), io.Atof(fields[1]), io.Atof(fields[2])
		entries = append(entries, NKEntry{Energy: e, N: a, K: b})
	}
	return entries, nil
}

// Tables is the flat (energy, n, k) buffer plus the per-(material,
// table) offset index, the exact layout §3 and §9 require: one
// []float64 triples buffer, and an offsets slice of length
// 4*zCount+1 so offsets[i+1] >= offsets[i] always and
// offsets[len(offsets)-1] == len(Flat)/3.
type Tables struct {
	// Flat holds (energy, n, k) triples back to back, ascending energy
	// within each (material, source) slice.
	Flat []float64
	// Offsets[4*matIndex+int(src)] is the starting triple-index (not
	// float64-index) of that slice; Offsets[4*matIndex+int(src)+1] is
	// one past its end. materialIndex is the position of the atomic
	// number within the zs slice passed to Load.
	Offsets []int32
	// zs is the ordered list of atomic numbers this table covers,
	// used to translate an ID into a materialIndex.
	zs []int
}

// indexOf returns the materialIndex for atomic number z, or -1.
func (t *Tables) indexOf(z int) int {
	for i, zz := range t.zs {
		if zz == z {
			return i
		}
	}
	return -1
}

// Load builds a Tables covering exactly the given atomic numbers,
// attempting all four sources for each. A source file that fails to
// load yields an empty slice for that (material,source) pair rather
// than aborting — matching "an empty material yields an empty slice;
// the tracer treats missing data as n=1, k=0 (vacuum)".
func Load(loader Loader, elements []int, verbose bool) (*Tables, error) {
	zs := append([]int(nil), elements...)
	sort.Ints(zs)

	t := &Tables{zs: zs}
	for _, z := range zs {
		for _, src := range []Source{Palik, NFF, Cromer, Molec} {
			t.Offsets = append(t.Offsets, int32(len(t.Flat)/3))
			symbol, ok := symbolForZ(z)
			if !ok {
				continue
			}
			entries, err := loader.Load(symbol, src)
			if err != nil {
				if verbose {
					io.Pfyel("material: could not load %v table for Z=%d (%s): %v\n", src, z, symbol, err)
				}
				continue
			}
			if src == NFF || src == Cromer {
				mass, rho, errm := AtomicMassAndRho(z)
				if errm != nil {
					if verbose {
						io.Pfyel("material: %v\n", errm)
					}
					continue
				}
				for _, e := range entries {
					n, k := convertFK(e.Energy, e.N, e.K, mass, rho)
					t.Flat = append(t.Flat, e.Energy, n, k)
				}
			} else {
				for _, e := range entries {
					t.Flat = append(t.Flat, e.Energy, e.N, e.K)
				}
			}
		}
	}
	t.Offsets = append(t.Offsets, int32(len(t.Flat)/3))

	if !t.offsetsMonotonic() {
		rayxerr.Bug("material table offsets are not monotonic, this is a compiler bug")
	}
	return t, nil
}

func (t *Tables) offsetsMonotonic() bool {
	for i := 1; i < len(t.Offsets); i++ {
		if t.Offsets[i] < t.Offsets[i-1] {
			return false
		}
	}
	return len(t.Offsets) > 0 && int(t.Offsets[len(t.Offsets)-1]) == len(t.Flat)/3
}

// convertFK applies the NFF/Cromer f1/f2 -> n/k conversion:
// n = 1 - 415.252*rho*f1/(E^2*M), k = 415.252*rho*f2/(E^2*M).
func convertFK(energy, f1, f2, mass, rho float64) (n, k float64) {
	const c = 415.252
	n = 1 - (c*rho*f1)/(energy*energy*mass)
	k = (c * rho * f2) / (energy * energy * mass)
	return
}

// RefractiveIndex looks up (n, k) for a material at the given energy,
// per §4.1: Palik is tried first below palikNffCrossoverEV and NFF
// first at or above it, then the other of the two, then Cromer, then
// Molec; the first non-empty slice whose energy range covers energyEV
// is interpolated. Energies are not clamped: when no slice covers
// energyEV, or the material is not in the table, the result is
// (1, 0, false).
func (t *Tables) RefractiveIndex(id ID, energyEV float64) (n, k float64, ok bool) {
	switch id {
	case Vacuum:
		return 1, 0, true
	case Reflective:
		return 1, 0, true
	}

	idx := t.indexOf(int(id))
	if idx < 0 {
		return 1, 0, false
	}

	const palikNffCrossoverEV = 30000.0
	order := []Source{Palik, NFF, Cromer, Molec}
	if energyEV >= palikNffCrossoverEV {
		order = []Source{NFF, Palik, Cromer, Molec}
	}

	for _, src := range order {
		lo := t.Offsets[4*idx+int(src)]
		hi := t.Offsets[4*idx+int(src)+1]
		if hi <= lo {
			continue
		}
		n, k, ok = interpolate(t.Flat[3*lo:3*hi], energyEV)
		if ok {
			return n, k, true
		}
	}
	return 1, 0, false
}

// interpolate binary-searches triples for the bracket around energyEV
// and linearly interpolates both n and k. triples is a flat
// (energy,n,k)*m slice, ascending in energy.
func interpolate(triples []float64, energyEV float64) (n, k float64, ok bool) {
	m := len(triples) / 3
	if m == 0 {
		return 0, 0, false
	}
	if energyEV < triples[0] || energyEV > triples[3*(m-1)] {
		return 0, 0, false
	}
	// binary search for the largest i with triples[3*i] <= energyEV
	lo, hi := 0, m-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if triples[3*mid] <= energyEV {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if lo == m-1 {
		return triples[3*lo+1], triples[3*lo+2], true
	}
	e0, n0, k0 := triples[3*lo], triples[3*lo+1], triples[3*lo+2]
	e1, n1, k1 := triples[3*(lo+1)], triples[3*(lo+1)+1], triples[3*(lo+1)+2]
	if e1 == e0 {
		return n0, k0, true
	}
	frac := (energyEV - e0) / (e1 - e0)
	return n0 + frac*(n1-n0), k0 + frac*(k1-k0), true
}

// symbolForZ is the inverse of AtomicMassAndRho's key set, giving the
// element symbol RAYX's data files are named after.
func symbolForZ(z int) (string, bool) {
	switch z {
	case 4:
		return "Be", true
	case 6:
		return "C", true
	case 13:
		return "Al", true
	case 14:
		return "Si", true
	case 24:
		return "Cr", true
	case 28:
		return "Ni", true
	case 29:
		return "Cu", true
	case 42:
		return "Mo", true
	case 46:
		return "Pd", true
	case 47:
		return "Ag", true
	case 74:
		return "W", true
	case 78:
		return "Pt", true
	case 79:
		return "Au", true
	case 82:
		return "Pb", true
	default:
		return "", false
	}
}
