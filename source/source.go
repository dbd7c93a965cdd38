// Package source implements the four ray generators of §4.3: point,
// matrix, dipole (bending-magnet), and undulator sources. Each
// dispatches through a single SourceKind tag rather than a class
// hierarchy, per §9's polymorphism note, and writes into a shared
// raytype.History-free slice of raytype.Ray (sources never see
// element collisions, so there's no history to populate yet beyond
// the initial Emitted event).
package source

import (
	"math"

	"github.com/hz-b/rayx-sub003/physics"
	"github.com/hz-b/rayx-sub003/raytype"
	"github.com/hz-b/rayx-sub003/rng"
)

// Kind tags which ray-generation algorithm a Config uses.
type Kind int

const (
	KindPoint Kind = iota
	KindMatrix
	KindDipole
	KindUndulator
)

// DistributionKind selects hard-edge (uniform) vs soft-edge (Gaussian)
// sampling for a source's spatial/angular extent, matching the
// original's SOURCE_DIST enum.
type DistributionKind int

const (
	HardEdge DistributionKind = iota
	SoftEdge
)

// Polarization is the fixed linear/circular polarization mix a
// non-dipole source emits every ray with.
type Polarization struct {
	Linear0, Linear45, Circular float64
}

// stokesField converts a fixed polarization mix into the engine's
// complex 3-component field the same way DipoleSource's Stokes path
// does, but for a source with a constant (non-integrated) Stokes
// vector.
func (p Polarization) stokesField() [3]complex128 {
	return physics.StokesToField(physics.Stokes{1, p.Linear0, p.Linear45, p.Circular})
}

// directionFromAngles reproduces LightSource::getDirectionFromAngles:
// the main ray is (0,0,1) at phi=psi=0; phi is the horizontal angle,
// psi the vertical one.
func directionFromAngles(phi, psi float64) [3]float64 {
	al := math.Cos(psi) * math.Sin(phi)
	am := -math.Sin(psi)
	an := math.Cos(psi) * math.Cos(phi)
	return [3]float64{al, am, an}
}

// sampleExtent draws a single coordinate/angle deviation from either a
// hard-edge (uniform) or soft-edge (Gaussian) distribution over
// [-extent/2, extent/2]-equivalent spread, matching PointSource's
// getCoord.
func sampleExtent(stream *rng.Stream, dist DistributionKind, extent float64) float64 {
	if dist == HardEdge {
		return stream.UniformRange(-0.5, 0.5) * extent
	}
	return stream.Gaussian() * extent
}

// Generate dispatches on cfg.Kind and fills rays (len(rays) determines
// the sample count) starting at ray-global-id rayIDStart, each with
// its own deterministic rng.Stream (§4.5).
func Generate(cfg Config, rays []raytype.Ray, rayIDStart int, globalSeed uint64) {
	for i := range rays {
		stream := rng.New(globalSeed, 0, rayIDStart+i)
		rays[i] = generateOne(cfg, &stream, int32(rayIDStart+i))
	}
}

func generateOne(cfg Config, stream *rng.Stream, sourceID int32) raytype.Ray {
	switch cfg.Kind {
	case KindMatrix:
		return generateMatrixRay(cfg, stream, sourceID)
	case KindDipole:
		return generateDipoleRay(cfg, stream, sourceID)
	case KindUndulator:
		return generateUndulatorRay(cfg, stream, sourceID)
	default:
		return generatePointRay(cfg, stream, sourceID)
	}
}

func generatePointRay(cfg Config, stream *rng.Stream, sourceID int32) raytype.Ray {
	x := sampleExtent(stream, cfg.WidthDist, cfg.SourceWidth)
	y := sampleExtent(stream, cfg.HeightDist, cfg.SourceHeight)
	z := stream.UniformRange(-0.5, 0.5) * cfg.SourceDepth

	psi := sampleExtent(stream, cfg.VerDist, cfg.VerDivergence)
	phi := sampleExtent(stream, cfg.HorDist, cfg.HorDivergence)
	dir := directionFromAngles(phi, psi)

	energy := cfg.PhotonEnergy
	if cfg.EnergySpread != 0 {
		energy += stream.UniformRange(-0.5, 0.5) * cfg.EnergySpread
	}

	return raytype.Ray{
		Position:  [3]float64{x, y, z},
		EventType: raytype.Emitted,
		Direction: dir,
		Energy:    energy,
		Field:       cfg.Polarization.stokesField(),
		SourceID:    sourceID,
		LastElement: -1,
	}
}
