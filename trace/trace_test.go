package trace

import (
	"context"
	"math"
	"testing"

	"github.com/hz-b/rayx-sub003/beamline"
	"github.com/hz-b/rayx-sub003/material"
	"github.com/hz-b/rayx-sub003/raytype"
	"github.com/hz-b/rayx-sub003/rng"
)

func flatMirror() beamline.CompiledElement {
	return beamline.CompiledElement{
		Name:         "mirror",
		InTransform:  beamline.Identity4(),
		OutTransform: beamline.Identity4(),
		Surface:      beamline.Surface{Kind: beamline.SurfaceQuadric, Quadric: beamline.Plane()},
		Behavior:     beamline.Behavior{Kind: beamline.BehaviorMirror},
		Cutout:       beamline.Unlimited(),
		Material:     material.Reflective,
	}
}

func singleElementBeamline(el beamline.CompiledElement) *beamline.Beamline {
	return &beamline.Beamline{Elements: []beamline.CompiledElement{el}}
}

func straightDownRay(y float64) raytype.Ray {
	return raytype.Ray{
		Position:    [3]float64{0, y, 0},
		EventType:   raytype.Emitted,
		Direction:   [3]float64{0, -1, 0},
		Energy:      1000,
		Field:       [3]complex128{1, 0, 0},
		LastElement: -1,
		SourceID:    0,
	}
}

func TestTraceRayReflectsOffFlatMirror(t *testing.T) {
	bl := singleElementBeamline(flatMirror())
	ray := straightDownRay(5)
	cfg := raytype.DefaultConfig()
	stream := rng.New(1, 0, 0)
	var hist raytype.History

	out := TraceRay(ray, bl, cfg, &stream, &hist)

	if out.Direction != [3]float64{0, 1, 0} {
		t.Fatalf("expected straight back-reflection, got %v", out.Direction)
	}
	if out.Position != [3]float64{0, 0, 0} {
		t.Fatalf("expected hit at origin, got %v", out.Position)
	}
	if math.Abs(out.PathLength-5) > 1e-9 {
		t.Fatalf("expected path length 5, got %v", out.PathLength)
	}
	if hist.Len() == 0 {
		t.Fatal("expected at least one recorded event")
	}
}

func TestTraceRayBeyondHorizonWhenNothingHit(t *testing.T) {
	bl := singleElementBeamline(flatMirror())
	ray := raytype.Ray{
		Position:    [3]float64{0, 5, 0},
		EventType:   raytype.Emitted,
		Direction:   [3]float64{0, 1, 0}, // pointed away from the mirror
		Energy:      1000,
		Field:       [3]complex128{1, 0, 0},
		LastElement: -1,
	}
	cfg := raytype.DefaultConfig()
	stream := rng.New(1, 0, 0)
	var hist raytype.History

	out := TraceRay(ray, bl, cfg, &stream, &hist)
	if out.EventType != raytype.BeyondHorizon {
		t.Fatalf("expected BeyondHorizon, got %v", out.EventType)
	}
}

func TestTraceRayMaxEventsZeroTerminatesImmediately(t *testing.T) {
	bl := singleElementBeamline(flatMirror())
	ray := straightDownRay(5)
	cfg := raytype.DefaultConfig()
	cfg.MaxEvents = 0
	stream := rng.New(1, 0, 0)
	var hist raytype.History

	out := TraceRay(ray, bl, cfg, &stream, &hist)
	if out.EventType != raytype.Emitted {
		t.Fatalf("expected the untouched Emitted snapshot for MaxEvents=0, got %v", out.EventType)
	}
	if hist.Len() != 1 {
		t.Fatalf("expected exactly one recorded event, got %d", hist.Len())
	}
}

func TestTraceRaySelfIntersectionSuppressed(t *testing.T) {
	bl := singleElementBeamline(flatMirror())
	// ray emitted exactly on the mirror surface, already reflected
	// upward: re-running findCollision must not re-hit the same plane
	// at t~0.
	ray := raytype.Ray{
		Position:    [3]float64{0, 0, 0},
		EventType:   raytype.HitElement,
		Direction:   [3]float64{0, 1, 0},
		Energy:      1000,
		Field:       [3]complex128{1, 0, 0},
		LastElement: 0,
	}
	c, ok := findCollision(&ray, bl, false)
	if ok {
		t.Fatalf("expected no collision (self-intersection suppressed), got %+v", c)
	}
}

func TestTraceRaySequentialModeAdvancesByIndex(t *testing.T) {
	first := flatMirror()
	first.InTransform = beamline.Identity4()
	first.OutTransform = beamline.Identity4()

	second := flatMirror()
	// second mirror displaced further down: its transforms translate by
	// p, placing it at y=-5 in world coordinates.
	p := [3]float64{0, -5, 0}
	in, out := beamline.Transforms(p, [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, beamline.Misalignment{})
	second.InTransform = in
	second.OutTransform = out

	bl := &beamline.Beamline{Elements: []beamline.CompiledElement{first, second}}

	ray := straightDownRay(5)
	cfg := raytype.DefaultConfig()
	cfg.SequentialMode = true
	cfg.MaxEvents = 1
	stream := rng.New(1, 0, 0)
	var hist raytype.History

	out2 := TraceRay(ray, bl, cfg, &stream, &hist)
	if out2.LastElement != 0 {
		t.Fatalf("expected first collision against element 0, got %d", out2.LastElement)
	}
}

func TestTraceRayNonSequentialTieBreakPrefersHigherID(t *testing.T) {
	a := flatMirror()
	b := flatMirror()
	bl := &beamline.Beamline{Elements: []beamline.CompiledElement{a, b}}

	ray := straightDownRay(5)
	c, ok := findCollision(&ray, bl, false)
	if !ok {
		t.Fatal("expected a collision")
	}
	if c.elementID != 1 {
		t.Fatalf("expected tie broken toward higher id (1), got %d", c.elementID)
	}
}

func TestCPUTracerMatchesSequentialSingleRay(t *testing.T) {
	bl := singleElementBeamline(flatMirror())
	rays := []raytype.Ray{straightDownRay(5)}
	cfg := raytype.DefaultConfig()
	histories := make([]raytype.History, 1)

	tracer := NewCPUTracer()
	if err := tracer.Trace(context.Background(), bl, rays, cfg, 0, histories); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rays[0].Direction != [3]float64{0, 1, 0} {
		t.Fatalf("expected reflection, got %v", rays[0].Direction)
	}
}

func TestRunBatchesReproducibleAcrossBatchSizes(t *testing.T) {
	bl := singleElementBeamline(flatMirror())
	rays := make([]raytype.Ray, 8)
	for i := range rays {
		rays[i] = straightDownRay(5)
		rays[i].SourceID = int32(i)
		rays[i].LastElement = -1
	}

	cfgOneBatch := raytype.DefaultConfig()
	cfgOneBatch.BatchSize = 8
	tracer := NewCPUTracer()
	rays1 := append([]raytype.Ray(nil), rays...)
	h1, err := RunBatches(context.Background(), tracer, bl, rays1, cfgOneBatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfgSmallBatches := raytype.DefaultConfig()
	cfgSmallBatches.BatchSize = 3
	rays2 := append([]raytype.Ray(nil), rays...)
	h2, err := RunBatches(context.Background(), tracer, bl, rays2, cfgSmallBatches)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range rays1 {
		if rays1[i] != rays2[i] {
			t.Fatalf("ray %d diverged across batch sizes: %+v vs %+v", i, rays1[i], rays2[i])
		}
		if h1[i].Len() != h2[i].Len() {
			t.Fatalf("ray %d history length diverged across batch sizes", i)
		}
	}
}
