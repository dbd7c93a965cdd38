package source

// Config collects every parameter any of the four source kinds might
// need; only the fields relevant to Kind are read (§4.3). This mirrors
// the original's single wide LightSource base class constructor
// parameter list, kept as one struct here since Go has no constructor
// overloading to split it across four call sites cleanly.
type Config struct {
	Kind Kind

	NumberOfRays int

	SourceWidth, SourceHeight, SourceDepth float64
	WidthDist, HeightDist                  DistributionKind

	HorDivergence, VerDivergence float64
	HorDist, VerDist             DistributionKind

	PhotonEnergy, EnergySpread float64
	Polarization               Polarization

	// Matrix source: per-dimension grid counts (§4.3 "deterministic
	// grid sampling across (W×H×φ×ψ) with per-dimension counts").
	MatrixWidthCount, MatrixHeightCount       int
	MatrixHorAngleCount, MatrixVerAngleCount int

	// Dipole source.
	Dipole DipoleConfig

	// Undulator source (harmonic-limited angular spread around the
	// central cone, energy fixed at the selected harmonic).
	Undulator UndulatorConfig
}

// DipoleConfig collects the bending-magnet-specific parameters §4.3's
// dipole source needs beyond the common Config fields.
type DipoleConfig struct {
	BendingRadiusMM           float64
	ElectronEnergyGeV         float64
	CriticalEnergyEV          float64
	Orientation               int // 0 = clockwise, matches physics.Clockwise/CounterClockwise
	ElectronBeamDivergenceRad float64
}

// UndulatorConfig collects the simplified undulator parameters; the
// full harmonic-spectrum model is out of scope (§ Non-goals), so this
// samples a fixed on-axis energy with a Gaussian angular spread
// derived from the central-cone opening angle 1/gamma, matching the
// original's SimpleUndulatorSource reduction.
type UndulatorConfig struct {
	CentralEnergyEV  float64
	GammaElectron    float64
	AngularSpreadRad float64
}
