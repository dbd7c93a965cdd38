package source

import (
	"github.com/hz-b/rayx-sub003/raytype"
	"github.com/hz-b/rayx-sub003/rng"
)

// generateUndulatorRay samples one ray from the simplified undulator
// model: a fixed on-axis energy (the selected harmonic) and a Gaussian
// angular spread around the central radiation cone, whose opening
// angle scales as 1/gamma (SimpleUndulatorSource's reduction of the
// full on-axis brightness calculation, out of scope per Non-goals).
// Position is drawn the same way a point source draws its transverse
// extent, since the electron beam's cross-section dominates the
// undulator's own source size at this level of fidelity.
func generateUndulatorRay(cfg Config, stream *rng.Stream, sourceID int32) raytype.Ray {
	u := cfg.Undulator

	x := sampleExtent(stream, cfg.WidthDist, cfg.SourceWidth)
	y := sampleExtent(stream, cfg.HeightDist, cfg.SourceHeight)

	spread := u.AngularSpreadRad
	if spread == 0 && u.GammaElectron != 0 {
		spread = 1 / u.GammaElectron
	}
	phi := stream.Gaussian() * spread
	psi := stream.Gaussian() * spread

	dir := directionFromAngles(phi, psi)

	energy := u.CentralEnergyEV
	if energy == 0 {
		energy = cfg.PhotonEnergy
	}
	if cfg.EnergySpread != 0 {
		energy += stream.UniformRange(-0.5, 0.5) * cfg.EnergySpread
	}

	return raytype.Ray{
		Position:  [3]float64{x, y, 0},
		EventType: raytype.Emitted,
		Direction: dir,
		Energy:    energy,
		Field:       cfg.Polarization.stokesField(),
		SourceID:    sourceID,
		LastElement: -1,
	}
}
