package beamline

// BehaviorKind tags which optical interaction an element applies at
// the collision point (§3, §4.4).
type BehaviorKind int32

const (
	BehaviorMirror BehaviorKind = iota
	BehaviorGrating
	BehaviorSlit
	BehaviorRZP
	BehaviorImagePlane
)

// Grating holds the six variable-line-spacing coefficients, the
// nominal line density (lines/mm) and the diffraction order (§3).
type Grating struct {
	VLS          [6]float64
	LineDensity  float64
	Order        float64
}

// Slit holds the opening cutout and the (smaller, nested) beamstop
// cutout that absorbs rays that would otherwise pass (§4.4).
type Slit struct {
	Opening, Beamstop Cutout
}

// RZP holds the fourteen design parameters of a reflection zone plate
// (§3, mirroring the original's RZPBehaviour field set exactly so
// every parameter the mount-solving math needs has a named home).
type RZP struct {
	ImageType                      float64
	RZPType                        float64
	DerivationMethod               float64
	DesignWavelength                float64
	DesignOrder                     float64
	Order                           float64
	FresnelZOffset                  float64
	DesignSagittalEntranceArm       float64
	DesignSagittalExitArm           float64
	DesignMeridionalEntranceArm     float64
	DesignMeridionalExitArm         float64
	DesignAlpha                     float64
	DesignBeta                      float64
	AdditionalOrder                 bool
}

// Behavior is the tagged union a CompiledElement carries; only the
// field matching Kind is meaningful.
type Behavior struct {
	Kind    BehaviorKind
	Grating Grating
	Slit    Slit
	RZP     RZP
}
