// Package raytype defines the ray data model shared between the CPU and
// GPU tracer backends: a fixed-layout Ray record, its event-type tag,
// and the per-ray event history used for footprint/flux/spectral
// analysis downstream.
package raytype

import "math"

// EventType tags the last thing that happened to a ray. It is stored as
// a float64 inside the flat GPU-portable Ray layout (see Ray.Array), so
// the constants are declared over float64-representable small integers.
type EventType int32

const (
	Uninitialized EventType = iota
	Emitted
	HitElement
	Absorbed
	FatalError
	BeyondHorizon
	TooManyEvents
)

func (t EventType) String() string {
	switch t {
	case Uninitialized:
		return "Uninitialized"
	case Emitted:
		return "Emitted"
	case HitElement:
		return "HitElement"
	case Absorbed:
		return "Absorbed"
	case FatalError:
		return "FatalError"
	case BeyondHorizon:
		return "BeyondHorizon"
	case TooManyEvents:
		return "TooManyEvents"
	default:
		return "Unknown"
	}
}

// Ray is the per-ray state the tracer carries and the event history
// snapshots. The layout is deliberately flat (no pointers, no slices)
// so it round-trips through Array/FromArray for bulk upload to a
// device buffer.
//
// Field is the electric field, carried as three complex amplitudes
// (x, y, z components); polarization state (the Stokes vector) is
// derived from it wherever needed rather than stored redundantly.
type Ray struct {
	Position    [3]float64
	EventType   EventType
	Direction   [3]float64
	Energy      float64
	Field       [3]complex128
	PathLength  float64
	Order       float64
	LastElement int32
	SourceID    int32
}

// NumArrayFields is the width of the flat Ray.Array() representation:
// position(3) + event type(1) + direction(3) + energy(1) +
// field(3 complex = 6 reals) + path length(1) + order(1) +
// last element(1) + source id(1) = 18.
const NumArrayFields = 18

// Array flattens the ray into a device-portable slice of float64, in
// the field order documented on the Ray type.
func (r Ray) Array() [NumArrayFields]float64 {
	var a [NumArrayFields]float64
	a[0], a[1], a[2] = r.Position[0], r.Position[1], r.Position[2]
	a[3] = float64(r.EventType)
	a[4], a[5], a[6] = r.Direction[0], r.Direction[1], r.Direction[2]
	a[7] = r.Energy
	a[8], a[9] = real(r.Field[0]), imag(r.Field[0])
	a[10], a[11] = real(r.Field[1]), imag(r.Field[1])
	a[12], a[13] = real(r.Field[2]), imag(r.Field[2])
	a[14] = r.PathLength
	a[15] = r.Order
	a[16] = float64(r.LastElement)
	a[17] = float64(r.SourceID)
	return a
}

// FromArray reconstructs a Ray from its flat representation.
func FromArray(a [NumArrayFields]float64) Ray {
	return Ray{
		Position:    [3]float64{a[0], a[1], a[2]},
		EventType:   EventType(a[3]),
		Direction:   [3]float64{a[4], a[5], a[6]},
		Energy:      a[7],
		Field:       [3]complex128{complex(a[8], a[9]), complex(a[10], a[11]), complex(a[12], a[13])},
		PathLength:  a[14],
		Order:       a[15],
		LastElement: int32(a[16]),
		SourceID:    int32(a[17]),
	}
}

// IsUnitDirection reports whether Direction is a unit vector within
// tol, the invariant §3/§8 require whenever EventType is Emitted or
// HitElement.
func (r Ray) IsUnitDirection(tol float64) bool {
	n := math.Sqrt(r.Direction[0]*r.Direction[0] + r.Direction[1]*r.Direction[1] + r.Direction[2]*r.Direction[2])
	return math.Abs(n-1) <= tol
}

// Stokes derives the (I, Q, U, V) polarization descriptor from the
// carried electric field, for callers (writers, analysis) that want
// the classical 4-vector instead of the raw complex amplitudes.
func (r Ray) Stokes() [4]float64 {
	ex, ey := r.Field[0], r.Field[1]
	exx := real(ex)*real(ex) + imag(ex)*imag(ex)
	eyy := real(ey)*real(ey) + imag(ey)*imag(ey)
	cross := ex * cmplxConj(ey)
	return [4]float64{
		exx + eyy,
		exx - eyy,
		2 * real(cross),
		2 * imag(cross),
	}
}

func cmplxConj(c complex128) complex128 { return complex(real(c), -imag(c)) }

// History is the per-ray, growable list of Ray snapshots in order of
// occurrence: empty at emission, one entry appended on every
// HitElement, and exactly one terminal entry on termination. Capped at
// MaxEvents (see Config); reaching the cap yields a final
// TooManyEvents record instead of growing further.
type History struct {
	Records []Ray
}

func (h *History) Append(r Ray) { h.Records = append(h.Records, r) }

// Len returns the number of recorded events, i.e. the ray's actual
// per-ray event counter.
func (h *History) Len() int { return len(h.Records) }

// Last returns the most recent snapshot, or the zero Ray if none was
// ever recorded.
func (h *History) Last() Ray {
	if len(h.Records) == 0 {
		return Ray{}
	}
	return h.Records[len(h.Records)-1]
}
