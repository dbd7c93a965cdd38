// Package rayxio defines the event/material file I/O contract (§4.7,
// §6): an attribute bitmask, a one-method Writer interface, and a
// column-name helper. The core ships no concrete CSV or HDF5 writer —
// that is an external-interface concern out of scope for this module
// (§1 Non-goals) — only the contract any such writer implements.
package rayxio

import "github.com/hz-b/rayx-sub003/raytype"

// AttrMask selects which per-event attributes a Writer emits, one bit
// per attribute (§6). Bits are independent of field order in
// raytype.Ray; Columns below fixes the canonical name for each.
type AttrMask uint32

const (
	AttrRayID AttrMask = 1 << iota
	AttrEventID
	AttrPositionX
	AttrPositionY
	AttrPositionZ
	AttrDirectionX
	AttrDirectionY
	AttrDirectionZ
	AttrFieldXRe
	AttrFieldXIm
	AttrFieldYRe
	AttrFieldYIm
	AttrFieldZRe
	AttrFieldZIm
	AttrEnergy
	AttrPathLength
	AttrOrder
	AttrLastElement
	AttrSourceID
	AttrEventType

	// AttrAll selects every attribute rayx knows how to emit.
	AttrAll = AttrRayID | AttrEventID | AttrPositionX | AttrPositionY | AttrPositionZ |
		AttrDirectionX | AttrDirectionY | AttrDirectionZ |
		AttrFieldXRe | AttrFieldXIm | AttrFieldYRe | AttrFieldYIm | AttrFieldZRe | AttrFieldZIm |
		AttrEnergy | AttrPathLength | AttrOrder | AttrLastElement | AttrSourceID | AttrEventType
)

// Has reports whether mask selects attr.
func (mask AttrMask) Has(attr AttrMask) bool { return mask&attr != 0 }

// orderedAttrs lists every attribute bit in the canonical column order
// (§4.7 "CSV column order matches the user-supplied format string" —
// this is the default order a writer falls back to absent one).
var orderedAttrs = []AttrMask{
	AttrRayID, AttrEventID,
	AttrPositionX, AttrPositionY, AttrPositionZ,
	AttrDirectionX, AttrDirectionY, AttrDirectionZ,
	AttrFieldXRe, AttrFieldXIm, AttrFieldYRe, AttrFieldYIm, AttrFieldZRe, AttrFieldZIm,
	AttrEnergy, AttrPathLength, AttrOrder, AttrLastElement, AttrSourceID, AttrEventType,
}

// columnNames mirrors orderedAttrs one-to-one.
var columnNames = map[AttrMask]string{
	AttrRayID:       "ray_id",
	AttrEventID:     "event_id",
	AttrPositionX:   "position_x",
	AttrPositionY:   "position_y",
	AttrPositionZ:   "position_z",
	AttrDirectionX:  "direction_x",
	AttrDirectionY:  "direction_y",
	AttrDirectionZ:  "direction_z",
	AttrFieldXRe:    "field_x_re",
	AttrFieldXIm:    "field_x_im",
	AttrFieldYRe:    "field_y_re",
	AttrFieldYIm:    "field_y_im",
	AttrFieldZRe:    "field_z_re",
	AttrFieldZIm:    "field_z_im",
	AttrEnergy:      "energy",
	AttrPathLength:  "path_length",
	AttrOrder:       "order",
	AttrLastElement: "last_element",
	AttrSourceID:    "source_id",
	AttrEventType:   "event_type",
}

// Column maps a single attribute bit to its canonical column name, or
// ("", false) if attr isn't exactly one known bit.
func Column(attr AttrMask) (string, bool) {
	name, ok := columnNames[attr]
	return name, ok
}

// Columns returns the column names selected by mask, in canonical
// order — the sequence a writer uses absent a caller-supplied format
// string (§4.7).
func Columns(mask AttrMask) []string {
	var out []string
	for _, attr := range orderedAttrs {
		if mask.Has(attr) {
			name, _ := Column(attr)
			out = append(out, name)
		}
	}
	return out
}

// Writer is the external-interface contract an event file sink
// implements (§4.7). history is one ray's full sequence of recorded
// raytype.Ray snapshots, in occurrence order — the same shape
// raytype.History.Records carries; rayID identifies which ray this
// history belongs to, since mask may select AttrRayID without the
// caller needing to thread it through each Ray value.
type Writer interface {
	WriteEvents(rayID int, history []raytype.Ray, mask AttrMask) error
}
