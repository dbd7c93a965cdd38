package trace

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hz-b/rayx-sub003/beamline"
	"github.com/hz-b/rayx-sub003/raytype"
	"github.com/hz-b/rayx-sub003/rng"
)

// Tracer dispatches a batch of rays against a compiled beamline,
// filling one History per ray (§5: "Batch" is the unit a backend
// dispatches at once). The CPU and (optionally, build-tag gated) GPU
// backends both implement this so host code never branches on which
// one is active.
type Tracer interface {
	// rayIDBase is the global ray index (within the whole run, not this
	// slice) that rays[0] corresponds to; every ray's rng.Stream is
	// seeded from cfg.Seed and rayIDBase+local-index, never from the
	// batch boundaries, so splitting a run into differently-sized
	// batches never changes any ray's sample sequence (§4.5, §8).
	Trace(ctx context.Context, bl *beamline.Beamline, rays []raytype.Ray, cfg raytype.Config, rayIDBase int, histories []raytype.History) error
}

// cpuTracer runs one goroutine per contiguous ray-index range, each
// goroutine owning its own rng.Stream per ray (§4.5, §5: "each ray
// owns its own private stream"). golang.org/x/sync/errgroup replaces
// gofem's raw goroutine+WaitGroup+manual-error-channel pattern (see
// fem.FEM's goroutineId-indexed analyses) with first-error propagation
// and context cancellation for free.
type cpuTracer struct {
	workers int
}

// NewCPUTracer returns a Tracer backed by a bounded goroutine pool
// sized to the host's available cores.
func NewCPUTracer() Tracer {
	return &cpuTracer{workers: runtime.GOMAXPROCS(0)}
}

func (c *cpuTracer) Trace(ctx context.Context, bl *beamline.Beamline, rays []raytype.Ray, cfg raytype.Config, rayIDBase int, histories []raytype.History) error {
	n := len(rays)
	if n == 0 {
		return nil
	}
	if len(histories) != n {
		return rayErrLenMismatch(n, len(histories))
	}

	workers := c.workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		lo, hi := lo, hi
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				stream := rng.New(cfg.Seed, 0, rayIDBase+i)
				rays[i] = TraceRay(rays[i], bl, cfg, &stream, &histories[i])
			}
			return nil
		})
	}
	return g.Wait()
}

func rayErrLenMismatch(rays, histories int) error {
	return &lenMismatchError{rays: rays, histories: histories}
}

type lenMismatchError struct {
	rays, histories int
}

func (e *lenMismatchError) Error() string {
	return "trace: rays and histories length mismatch"
}

// RunBatches traces allRays in cfg.BatchSize-sized groups, passing each
// batch's start index as the ray-id base so every ray's rng.Stream is
// seeded from its global index: splitting one run into multiple calls
// never changes any ray's sample sequence (§4.5,
// §8 "batch splitting reproduces identical results").
func RunBatches(ctx context.Context, tracer Tracer, bl *beamline.Beamline, allRays []raytype.Ray, cfg raytype.Config) ([]raytype.History, error) {
	histories := make([]raytype.History, len(allRays))
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = len(allRays)
	}
	for start := 0; start < len(allRays); start += batch {
		end := start + batch
		if end > len(allRays) {
			end = len(allRays)
		}
		if err := tracer.Trace(ctx, bl, allRays[start:end], cfg, start, histories[start:end]); err != nil {
			return nil, err
		}
	}
	return histories, nil
}
