package source

import (
	"math"
	"testing"

	"github.com/hz-b/rayx-sub003/raytype"
)

func basePointConfig() Config {
	return Config{
		Kind:          KindPoint,
		SourceWidth:   2,
		SourceHeight:  1,
		SourceDepth:   0,
		WidthDist:     HardEdge,
		HeightDist:    SoftEdge,
		HorDivergence: 0.002,
		VerDivergence: 0.001,
		HorDist:       HardEdge,
		VerDist:       HardEdge,
		PhotonEnergy:  100,
	}
}

func TestGenerateProducesUnitDirections(t *testing.T) {
	cfg := basePointConfig()
	rays := make([]raytype.Ray, 64)
	Generate(cfg, rays, 0, 42)

	for i, r := range rays {
		if !r.IsUnitDirection(1e-9) {
			t.Fatalf("ray %d direction not unit: %v", i, r.Direction)
		}
		if r.EventType != raytype.Emitted {
			t.Fatalf("ray %d expected Emitted, got %v", i, r.EventType)
		}
		if r.SourceID != int32(i) {
			t.Fatalf("ray %d SourceID mismatch: got %d", i, r.SourceID)
		}
	}
}

func TestGenerateIsReproducibleForFixedSeed(t *testing.T) {
	cfg := basePointConfig()
	a := make([]raytype.Ray, 16)
	b := make([]raytype.Ray, 16)
	Generate(cfg, a, 0, 7)
	Generate(cfg, b, 0, 7)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("ray %d differs between identical-seed runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateDifferentSeedsDiverge(t *testing.T) {
	cfg := basePointConfig()
	a := make([]raytype.Ray, 16)
	b := make([]raytype.Ray, 16)
	Generate(cfg, a, 0, 7)
	Generate(cfg, b, 0, 8)

	same := true
	for i := range a {
		if a[i].Position != b[i].Position {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different global seeds to produce different ray positions")
	}
}

func TestGenerateMatrixGridCoversFullGrid(t *testing.T) {
	cfg := Config{
		Kind:                KindMatrix,
		SourceWidth:         10,
		SourceHeight:        4,
		HorDivergence:       0.01,
		VerDivergence:       0.005,
		PhotonEnergy:        250,
		MatrixWidthCount:    3,
		MatrixHeightCount:   2,
		MatrixHorAngleCount: 2,
		MatrixVerAngleCount: 2,
	}
	rays := make([]raytype.Ray, 3*2*2*2)
	GenerateMatrixGrid(cfg, rays, 0)

	for i, r := range rays {
		if !r.IsUnitDirection(1e-9) {
			t.Fatalf("ray %d direction not unit: %v", i, r.Direction)
		}
	}

	first := rays[0]
	last := rays[len(rays)-1]
	if first.Position[0] == last.Position[0] && first.Position[1] == last.Position[1] {
		t.Fatal("expected grid extremes to differ in position")
	}
}

func TestGenerateMatrixGridSingleCellIsCentered(t *testing.T) {
	cfg := Config{
		Kind:                KindMatrix,
		SourceWidth:         10,
		SourceHeight:        4,
		MatrixWidthCount:    1,
		MatrixHeightCount:   1,
		MatrixHorAngleCount: 1,
		MatrixVerAngleCount: 1,
		PhotonEnergy:        100,
	}
	rays := make([]raytype.Ray, 1)
	GenerateMatrixGrid(cfg, rays, 0)

	if rays[0].Position[0] != 0 || rays[0].Position[1] != 0 {
		t.Fatalf("expected single-cell grid centered at origin, got %v", rays[0].Position)
	}
}

func TestGenerateDipoleProducesFiniteFlux(t *testing.T) {
	cfg := Config{
		Kind:          KindDipole,
		SourceWidth:   0.1,
		SourceHeight:  0.05,
		HorDivergence: 0.06,
		PhotonEnergy:  2000,
		EnergySpread:  1500,
		Dipole: DipoleConfig{
			BendingRadiusMM:           7000,
			ElectronEnergyGeV:         1.7,
			CriticalEnergyEV:          2398,
			Orientation:               0,
			ElectronBeamDivergenceRad: 0.0002,
		},
	}
	rays := make([]raytype.Ray, 32)
	Generate(cfg, rays, 0, 99)

	for i, r := range rays {
		if !r.IsUnitDirection(1e-6) {
			t.Fatalf("ray %d direction not unit: %v", i, r.Direction)
		}
		if math.IsNaN(r.Energy) || math.IsInf(r.Energy, 0) {
			t.Fatalf("ray %d has non-finite energy: %v", i, r.Energy)
		}
		for _, comp := range r.Field {
			if math.IsNaN(real(comp)) || math.IsNaN(imag(comp)) {
				t.Fatalf("ray %d has NaN field component: %v", i, comp)
			}
		}
	}
}

func TestGenerateUndulatorFallsBackToCentralEnergy(t *testing.T) {
	cfg := Config{
		Kind:         KindUndulator,
		SourceWidth:  0.03,
		SourceHeight: 0.02,
		WidthDist:    SoftEdge,
		HeightDist:   SoftEdge,
		Undulator: UndulatorConfig{
			CentralEnergyEV:  800,
			GammaElectron:    3000,
			AngularSpreadRad: 0,
		},
	}
	rays := make([]raytype.Ray, 16)
	Generate(cfg, rays, 0, 11)

	for i, r := range rays {
		if r.Energy != 800 {
			t.Fatalf("ray %d expected fixed central energy 800, got %v", i, r.Energy)
		}
		if !r.IsUnitDirection(1e-9) {
			t.Fatalf("ray %d direction not unit: %v", i, r.Direction)
		}
	}
}

func TestDirectionFromAnglesZeroIsOpticalAxis(t *testing.T) {
	d := directionFromAngles(0, 0)
	if d != [3]float64{0, 0, 1} {
		t.Fatalf("expected (0,0,1) at phi=psi=0, got %v", d)
	}
}
