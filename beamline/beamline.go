// Package beamline holds the shader-portable CompiledElement record
// the optical-model compiler (package compiler) produces and the
// tracing engine (package trace) consumes, plus the Beamline container
// that owns a compiled sequence of elements and their material tables
// (§3).
package beamline

import "github.com/hz-b/rayx-sub003/material"

// SlopeError carries the sagittal/meridional surface-roughness sigmas
// applied before reflection/diffraction (§3, §4.4). ThermalBowing is
// reserved, unused storage matching the original's layout note ("plus
// unused thermal/bowing fields reserved") so a future revision can add
// the behavior without reshuffling the struct.
type SlopeError struct {
	Sagittal, Meridional float64
	ThermalBowing        [2]float64
}

// CompiledElement is the fixed-size record intended for bulk upload to
// a device (§3). Every field here is meaningful on its own; there is
// no further indirection once an element has been compiled.
type CompiledElement struct {
	// Name is diagnostic-only (element names do not affect tracing) —
	// carried so RuntimeRayError/ConfigurationError messages can name
	// the element the way §7 requires.
	Name string

	InTransform, OutTransform Mat4

	Surface  Surface
	Behavior Behavior
	Cutout   Cutout

	SlopeError     SlopeError
	AzimuthalAngle float64

	Material material.ID
}

// Beamline is an ordered sequence of sources followed by an ordered
// sequence of elements; elements are identified by their index, which
// is also their stable id (§3). The Beamline owns its elements and
// material table; rays reference elements by id only.
type Beamline struct {
	Elements []CompiledElement
	Tables   *material.Tables
}

// Len returns the number of compiled elements.
func (b *Beamline) Len() int { return len(b.Elements) }

// At returns the element with the given id. Panics on an out-of-range
// id: the tracer only ever calls this with ids it already validated
// during intersection search, so an out-of-range id here is a bug, not
// recoverable ray-level data.
func (b *Beamline) At(id int) *CompiledElement { return &b.Elements[id] }

// ElementTransformsAreInverse reports whether in_transform*out_transform
// is the identity within tol — the §3/§8 compiled-element invariant,
// exposed for tests and for a compiler self-check.
func (e CompiledElement) ElementTransformsAreInverse(tol float64) bool {
	p := MulMat4(e.InTransform, e.OutTransform)
	id := Identity4()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			d := p[i][j] - id[i][j]
			if d < -tol || d > tol {
				return false
			}
		}
	}
	return true
}
