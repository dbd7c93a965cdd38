// Package design holds the materialized, already-parsed beamline
// description the optical-model compiler consumes: a list of typed
// DesignObject values with named parameters, produced by an external
// importer (§6 — "the core consumes a materialized list of
// DesignObject values produced by the importer, with typed accessors
// for every named parameter"). This package owns the Object contract
// and an in-memory Static implementation; parsing the on-disk XML
// format is outside the core's scope.
package design

import "github.com/hz-b/rayx-sub003/rayxerr"

// Kind names the high-level role a design object plays; the compiler
// switches on this to decide which compiled record (source or
// element) to produce.
type Kind string

const (
	KindPointSource  Kind = "PointSource"
	KindMatrixSource Kind = "MatrixSource"
	KindDipoleSource Kind = "DipoleSource"
	KindUndulator    Kind = "UndulatorSource"
	KindMirror       Kind = "Mirror"
	KindGrating      Kind = "Grating"
	KindRZP          Kind = "ReflectionZonePlate"
	KindSlit         Kind = "Slit"
	KindImagePlane   Kind = "ImagePlane"
	KindGroup        Kind = "Group"
)

// Vec3 is a plain 3-tuple parameter value (position, rotation axis).
type Vec3 [3]float64

// Object is the typed-accessor contract the compiler reads every
// beamline node through. Implementations need not be backed by the
// same storage; Static below is the one this module ships.
type Object interface {
	Name() string
	Kind() Kind

	Float(param string) (float64, error)
	Int(param string) (int, error)
	String(param string) (string, error)
	Bool(param string) (bool, error)
	Vec3(param string) (Vec3, error)

	// FloatOr returns a default instead of an error when the
	// parameter is absent — most optional beamline parameters (VLS
	// coefficients, slope errors) have a well-defined zero default.
	FloatOr(param string, fallback float64) float64

	// Children returns the nested objects directly under this one, in
	// the importer's insertion order (§6).
	Children() []Object
}

// Static is a map-backed Object for programmatic beamline construction
// (tests, the demo driver) without going through an XML importer.
type Static struct {
	name     string
	kind     Kind
	floats   map[string]float64
	ints     map[string]int
	strings  map[string]string
	bools    map[string]bool
	vec3s    map[string]Vec3
	children []Object
}

// NewStatic builds an empty Static object of the given name and kind;
// use the With* methods to populate it.
func NewStatic(name string, kind Kind) *Static {
	return &Static{
		name:    name,
		kind:    kind,
		floats:  map[string]float64{},
		ints:    map[string]int{},
		strings: map[string]string{},
		bools:   map[string]bool{},
		vec3s:   map[string]Vec3{},
	}
}

func (s *Static) WithFloat(param string, v float64) *Static { s.floats[param] = v; return s }
func (s *Static) WithInt(param string, v int) *Static       { s.ints[param] = v; return s }
func (s *Static) WithString(param string, v string) *Static { s.strings[param] = v; return s }
func (s *Static) WithBool(param string, v bool) *Static     { s.bools[param] = v; return s }
func (s *Static) WithVec3(param string, v Vec3) *Static     { s.vec3s[param] = v; return s }
func (s *Static) WithChild(c Object) *Static                { s.children = append(s.children, c); return s }

func (s *Static) Name() string { return s.name }
func (s *Static) Kind() Kind   { return s.kind }

func (s *Static) Float(param string) (float64, error) {
	v, ok := s.floats[param]
	if !ok {
		return 0, rayxerr.NewConfiguration(s.name, "missing float parameter %q", param)
	}
	return v, nil
}

func (s *Static) FloatOr(param string, fallback float64) float64 {
	if v, ok := s.floats[param]; ok {
		return v
	}
	return fallback
}

func (s *Static) Int(param string) (int, error) {
	v, ok := s.ints[param]
	if !ok {
		return 0, rayxerr.NewConfiguration(s.name, "missing int parameter %q", param)
	}
	return v, nil
}

func (s *Static) String(param string) (string, error) {
	v, ok := s.strings[param]
	if !ok {
		return "", rayxerr.NewConfiguration(s.name, "missing string parameter %q", param)
	}
	return v, nil
}

func (s *Static) Bool(param string) (bool, error) {
	v, ok := s.bools[param]
	if !ok {
		return false, rayxerr.NewConfiguration(s.name, "missing bool parameter %q", param)
	}
	return v, nil
}

func (s *Static) Vec3(param string) (Vec3, error) {
	v, ok := s.vec3s[param]
	if !ok {
		return Vec3{}, rayxerr.NewConfiguration(s.name, "missing vec3 parameter %q", param)
	}
	return v, nil
}

func (s *Static) Children() []Object { return s.children }
