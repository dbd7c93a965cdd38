// Package trace implements the ray-tracing main loop (§4.4): repeated
// nearest-collision search, behavior application, and event recording
// until a ray terminates. The per-ray loop here is backend-agnostic;
// package trace's CPU and GPU files only decide how many of these
// loops run concurrently and where each ray's state lives meanwhile.
package trace

import (
	"math"

	"github.com/hz-b/rayx-sub003/beamline"
	"github.com/hz-b/rayx-sub003/raytype"
	"github.com/hz-b/rayx-sub003/rng"
)

// collision is a confirmed candidate hit, already validated against
// epsSelf and the element's cutout, expressed in both frames: local
// (what behave() needs) and world (what the main loop advances the
// ray by).
type collision struct {
	elementID   int
	t           float64
	worldPoint  [3]float64
	localPoint  [3]float64
	localNormal [3]float64
}

// tryElement intersects ray against element k's surface, returning a
// validated collision if the root survives the self-intersection and
// cutout tests (§4.4).
func tryElement(ray *raytype.Ray, bl *beamline.Beamline, k int) (collision, bool) {
	el := bl.At(k)

	localP := el.InTransform.Apply(ray.Position)
	localD := el.InTransform.ApplyVector(ray.Direction)

	h, ok := intersectElement(localP, localD, el)
	if !ok {
		return collision{}, false
	}
	if h.t <= epsSelf {
		return collision{}, false
	}
	if !el.Cutout.Contains(h.point[0], h.point[2]) {
		return collision{}, false
	}

	worldPoint := el.OutTransform.Apply(h.point)
	return collision{
		elementID:   k,
		t:           h.t,
		worldPoint:  worldPoint,
		localPoint:  h.point,
		localNormal: h.normal,
	}, true
}

// tieEps is the parametric-distance window within which two
// candidate collisions are considered simultaneous (§4.4's "if two
// elements give t within 1e-12 of each other, prefer the one with the
// higher id").
const tieEps = 1e-12

// findCollision searches for the next collision: the single
// next-in-sequence element in sequential mode, or the globally
// nearest element (by t, tie-broken toward the higher id) otherwise.
func findCollision(ray *raytype.Ray, bl *beamline.Beamline, sequential bool) (collision, bool) {
	if sequential {
		target := int(ray.LastElement) + 1
		if target < 0 || target >= bl.Len() {
			return collision{}, false
		}
		return tryElement(ray, bl, target)
	}

	var best collision
	found := false
	for k := 0; k < bl.Len(); k++ {
		c, ok := tryElement(ray, bl, k)
		if !ok {
			continue
		}
		switch {
		case !found:
			best, found = c, true
		case c.t < best.t-tieEps:
			best = c
		case math.Abs(c.t-best.t) <= tieEps && c.elementID > best.elementID:
			best = c
		}
	}
	return best, found
}

// distance returns the Euclidean distance between two world points.
func distance(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// recordEvent appends ray's current state to history, honoring
// cfg.RecordElementIndex: a non-negative value restricts recording to
// that single element id, but the ray is still traced through
// whichever element it actually hits (§4.7 "restrict ... to a single
// element id; other elements are still traced through").
func recordEvent(history *raytype.History, ray raytype.Ray, cfg raytype.Config, elementID int) {
	if cfg.RecordElementIndex >= 0 && elementID >= 0 && elementID != cfg.RecordElementIndex {
		return
	}
	history.Append(ray)
}

// terminated reports whether ray's current EventType ends the trace,
// including the sequential-mode completion case: having just hit the
// last element in the sequence with no error (§4.4).
func terminated(ray *raytype.Ray, cfg raytype.Config, bl *beamline.Beamline) bool {
	switch ray.EventType {
	case raytype.Absorbed, raytype.FatalError, raytype.BeyondHorizon, raytype.TooManyEvents:
		return true
	}
	if cfg.SequentialMode && int(ray.LastElement) == bl.Len()-1 {
		return true
	}
	return false
}

// TraceRay runs the full collision/behavior loop for a single ray
// starting from its emitted state, appending every HitElement snapshot
// and the final terminal state to history, and returns the ray's
// terminal state (§4.4).
//
//	find nearest/sequential collision
//	  -> none: BeyondHorizon, stop
//	  -> advance position/pathLength/lastElement
//	  -> record HitElement
//	  -> behave()
//	  -> terminated? stop : loop
//
// MaxEvents bounds the number of loop iterations; exhausting it yields
// a TooManyEvents terminal record instead of looping forever.
//
// MaxEvents == 0 is a carve-out, not the exhausted-budget case: §8
// requires every ray to record its untouched Emitted snapshot and
// nothing else, so no collision search or behave() ever runs.
func TraceRay(ray raytype.Ray, bl *beamline.Beamline, cfg raytype.Config, stream *rng.Stream, history *raytype.History) raytype.Ray {
	if cfg.MaxEvents == 0 {
		recordEvent(history, ray, cfg, -1)
		return ray
	}

	for i := 0; i < cfg.MaxEvents; i++ {
		c, ok := findCollision(&ray, bl, cfg.SequentialMode)
		if !ok {
			ray.EventType = raytype.BeyondHorizon
			recordEvent(history, ray, cfg, -1)
			return ray
		}

		ray.PathLength += distance(ray.Position, c.worldPoint)
		ray.Position = c.worldPoint
		ray.LastElement = int32(c.elementID)
		ray.EventType = raytype.HitElement

		recordEvent(history, ray, cfg, c.elementID)

		el := bl.At(c.elementID)
		behave(&ray, el, bl.Tables, c.localPoint, c.localNormal, stream)

		if terminated(&ray, cfg, bl) {
			if ray.EventType == raytype.HitElement {
				// sequential-mode completion: the last element was hit
				// without the ray being absorbed or erroring out.
			} else {
				recordEvent(history, ray, cfg, c.elementID)
			}
			return ray
		}
	}

	ray.EventType = raytype.TooManyEvents
	recordEvent(history, ray, cfg, -1)
	return ray
}
