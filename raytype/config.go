package raytype

import "github.com/cpmech/gosl/chk"

// Config is the per-trace scalar block the host supplies to a batch
// dispatch — the CLI-level options the core honors, translated from
// host flags (§6). It plays the same role gofem's inp.Simulation plays
// for a FEM run: a single validated struct threaded through the whole
// engine, built once, never mutated by a worker.
type Config struct {
	// MaxEvents bounds the number of recorded events per ray (the
	// iteration cap on the main trace loop).
	MaxEvents int

	// StartEventID is validated (>= 0) but not read by the tracers:
	// recording always begins at a ray's first event.
	StartEventID int

	// SequentialMode restricts intersection search to the
	// next-in-sequence element instead of the globally nearest one.
	SequentialMode bool

	// Seed is the global seed every ray's stream is derived from; no
	// wall-clock entropy is used. FixedSeed is not read by the tracers,
	// so sampling is reproducible whether or not it is set.
	FixedSeed bool
	Seed      uint64

	// BatchSize is the number of rays dispatched together (§5's
	// "Batch").
	BatchSize int

	// RecordElementIndex, when >= 0, restricts event recording to a
	// single element id; other elements are still traced through but
	// not written to the history. A negative value records all
	// elements.
	RecordElementIndex int

	// DeviceIndex is host-selected and opaque to the core; it is
	// carried only so a GPU backend can forward it to the platform
	// device-enumeration call.
	DeviceIndex int
}

// DefaultConfig returns the Config a bare invocation would use: trace
// to completion (bounded only by a generous MaxEvents), non-sequential,
// Seed 0, batches of 1024 rays, recording every element.
func DefaultConfig() Config {
	return Config{
		MaxEvents:          100,
		StartEventID:       0,
		SequentialMode:     false,
		FixedSeed:          false,
		Seed:               0,
		BatchSize:          1024,
		RecordElementIndex: -1,
		DeviceIndex:        0,
	}
}

// Validate checks the Config for internally-inconsistent values,
// failing the way gofem's inp package fails simulation input: before
// any work starts, with a descriptive chk.Err.
func (c Config) Validate() error {
	if c.MaxEvents < 0 {
		return chk.Err("MaxEvents must be >= 0, got %d", c.MaxEvents)
	}
	if c.StartEventID < 0 {
		return chk.Err("StartEventID must be >= 0, got %d", c.StartEventID)
	}
	if c.BatchSize <= 0 {
		return chk.Err("BatchSize must be > 0, got %d", c.BatchSize)
	}
	return nil
}

// PushConstants is the per-batch scalar block supplied to the kernel,
// distinct from Config in that it changes from batch to batch (the ray
// id range and the RNG's per-process seed offset) while Config is
// invariant for the whole trace.
type PushConstants struct {
	RayIDStart int
	SeedOffset uint64
	Cfg        Config
}
