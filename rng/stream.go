// Package rng implements the counter-based pseudo-random source each
// ray owns independently (§4.5). No corpus library offers a
// counter-based generator: github.com/cpmech/gosl/rnd wraps a single
// shared math/rand-style generator with global mutable state, which is
// exactly what this design must avoid (a ray's sample sequence has to
// be a pure function of (global seed, ray id, samples consumed so far),
// with no cross-ray communication). gosl/rnd is not used anywhere in
// this module. See DESIGN.md.
package rng

import "math"

// Stride bounds how many uint64 draws a single ray's stream may make
// before it could in principle overlap the next ray's initial counter
// value. It must exceed max_events * typical_samples_per_event; 1<<20
// (about a million draws) is generous headroom for the richest behaviour (dipole source sampling
// draws on the order of tens of uniforms per ray).
const Stride = 1 << 20

// Stream is a ray's private pseudo-random sequence. It carries no
// pointer to shared state; two Streams with equal (seed, rayID) always
// produce the identical sequence of draws, which is what gives §8's
// "fixed_seed produces byte-identical event histories" property.
type Stream struct {
	seed    uint64
	counter uint64

	haveGauss bool
	gaussNext float64
}

// New initializes a ray's stream. globalSeed and seedOffset come from
// the trace Config/PushConstants; rayGlobalID is the ray's position in
// the whole-trace ray-id space (not just within its batch), so that
// reordering batches never changes any ray's sequence.
func New(globalSeed, seedOffset uint64, rayGlobalID int) Stream {
	return Stream{
		seed:    globalSeed ^ splitmix64(seedOffset),
		counter: (uint64(rayGlobalID) + seedOffset) * Stride,
	}
}

// splitmix64 is the standard SplitMix64 output mixer, used both to
// perturb the seed and as the counter-to-random bijection itself: a
// counter-based generator is precisely "hash(key, counter)", and
// SplitMix64 is a good, simple hash for that role.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

// next draws the next raw 64-bit value from the stream and advances
// the counter.
func (s *Stream) next() uint64 {
	s.counter++
	return splitmix64(s.seed ^ splitmix64(s.counter))
}

// Uniform returns a sample in [0, 1).
func (s *Stream) Uniform() float64 {
	// Use the top 53 bits for a uniformly-distributed double in [0,1),
	// matching the usual uint64->double recipe.
	return float64(s.next()>>11) * (1.0 / (1 << 53))
}

// UniformRange returns a sample in [lo, hi).
func (s *Stream) UniformRange(lo, hi float64) float64 {
	return lo + s.Uniform()*(hi-lo)
}

// Gaussian returns one N(0,1) sample via the polar (Marsaglia) method,
// which draws a variable number of uniform pairs (rejecting points
// outside the unit disk) but produces two independent Gaussians per
// accepted pair; the second is cached for the following call.
func (s *Stream) Gaussian() float64 {
	if s.haveGauss {
		s.haveGauss = false
		return s.gaussNext
	}
	for {
		u := 2*s.Uniform() - 1
		v := 2*s.Uniform() - 1
		q := u*u + v*v
		if q > 0 && q < 1 {
			mul := math.Sqrt(-2 * math.Log(q) / q)
			s.gaussNext = v * mul
			s.haveGauss = true
			return u * mul
		}
	}
}

// GaussianScaled returns a N(mean, sigma^2) sample.
func (s *Stream) GaussianScaled(mean, sigma float64) float64 {
	return mean + sigma*s.Gaussian()
}
