package source

import (
	"math"

	"github.com/hz-b/rayx-sub003/physics"
	"github.com/hz-b/rayx-sub003/raytype"
	"github.com/hz-b/rayx-sub003/rng"
)

// dipoleParams adapts a DipoleConfig into the physics package's
// DipoleParams, the common subset its Schwinger kernels need.
func (d DipoleConfig) dipoleParams() physics.DipoleParams {
	orient := physics.Clockwise
	if d.Orientation != 0 {
		orient = physics.CounterClockwise
	}
	return physics.DipoleParams{
		ElectronEnergyGeV: d.ElectronEnergyGeV,
		CriticalEnergyEV:  d.CriticalEnergyEV,
		Orientation:       orient,
	}
}

// generateDipoleRay samples one ray from a bending-magnet source: a
// natural X/Z position on the bending radius, an energy from the
// Schwinger spectrum via rejection sampling, and a vertical angle +
// Stokes polarization from the folded synchrotron angular distribution
// (§4.3, original DipoleSource::getRays/getXYZPosition/getEnergy/
// getPsiandStokes).
func generateDipoleRay(cfg Config, stream *rng.Stream, sourceID int32) raytype.Ray {
	d := cfg.Dipole
	params := d.dipoleParams()
	table := physics.NewLogLogTable()

	phi := stream.UniformRange(-0.5, 0.5) * cfg.HorDivergence

	x1 := sampleNormalFromRange(stream, cfg.SourceWidth)
	sign := 1.0
	if d.Orientation == 0 {
		sign = -1.0
	}
	x := sign * (x1*math.Cos(phi) + d.BendingRadiusMM*(1-math.Cos(phi)))
	y := sampleNormalFromRange(stream, cfg.SourceHeight)
	z := sign * (d.BendingRadiusMM - x1) * math.Sin(phi)

	energy := sampleSchwingerEnergy(stream, table, params, cfg.PhotonEnergy, cfg.EnergySpread)

	verDivergence := physics.VerticalDivergence(params, cfg.PhotonEnergy, d.ElectronBeamDivergenceRad*1000)
	maxIntensity := maxIntensityEstimate(stream, params, energy, verDivergence)

	var psi float64
	var stokes physics.Stokes
	for {
		candidatePsi := stream.UniformRange(-0.5, 0.5) * 6 * verDivergence
		foldedPsi, s := physics.DipoleFold(stream, params, candidatePsi, energy, d.ElectronBeamDivergenceRad*1000)
		intensity := s[0]
		if intensity/maxIntensity >= stream.Uniform() {
			psi, stokes = foldedPsi, s
			break
		}
	}
	psi *= 1e-3

	direction := directionFromAngles(phi, psi)
	field := physics.StokesToField(stokes)

	return raytype.Ray{
		Position:  [3]float64{x, y, z},
		EventType: raytype.Emitted,
		Direction: direction,
		Energy:    energy,
		Field:       field,
		SourceID:    sourceID,
		LastElement: -1,
	}
}

// sampleNormalFromRange implements getNormalFromRange's rejection
// sampling against a Gaussian envelope over a wide uniform span.
func sampleNormalFromRange(stream *rng.Stream, extentRange float64) float64 {
	if extentRange == 0 {
		return 0
	}
	expanse := -0.5 / extentRange / extentRange
	for {
		value := stream.UniformRange(-0.5, 0.5) * 9 * extentRange
		distribution := math.Exp(expanse * value * value)
		if distribution >= stream.Uniform() {
			return value
		}
	}
}

// sampleSchwingerEnergy implements getEnergy's rejection sampling
// against the pre-computed Schwinger flux curve.
func sampleSchwingerEnergy(stream *rng.Stream, table physics.LogLogTable, params physics.DipoleParams, centerEnergy, spread float64) float64 {
	maxFlux := estimateMaxFlux(table, params, centerEnergy, spread)
	for {
		energy := centerEnergy + stream.UniformRange(-0.5, 0.5)*spread
		flux := physics.Schwinger(table, params, energy, params.ElectronEnergyGeV)
		if flux/maxFlux-stream.Uniform() >= 0 {
			return energy
		}
	}
}

// estimateMaxFlux scans the energy spread coarsely to find an upper
// bound for rejection sampling's acceptance ratio; the original
// precomputes this once per source (setMaxFlux), here it's derived
// on first use per stream since sources are stateless in this model.
func estimateMaxFlux(table physics.LogLogTable, params physics.DipoleParams, centerEnergy, spread float64) float64 {
	best := 0.0
	const steps = 64
	for i := 0; i <= steps; i++ {
		e := centerEnergy - spread/2 + spread*float64(i)/steps
		if e <= 0 {
			continue
		}
		f := physics.Schwinger(table, params, e, params.ElectronEnergyGeV)
		if f > best {
			best = f
		}
	}
	if best == 0 {
		best = 1
	}
	return best
}

// maxIntensityEstimate mirrors setMaxIntensity's coarse scan over psi
// to bound the DipoleFold rejection sampler's acceptance ratio.
func maxIntensityEstimate(stream *rng.Stream, params physics.DipoleParams, energy, verDivergence float64) float64 {
	best := 0.0
	psi := -verDivergence
	const steps = 250
	for i := 1; i < steps; i++ {
		psi += 0.05
		_, s := physics.DipoleFold(stream, params, psi, energy, 1.0)
		v := s[0]
		if v < best {
			break
		}
		best = v
	}
	if best == 0 {
		best = 1
	}
	return best
}
