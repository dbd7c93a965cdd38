package source

import (
	"github.com/hz-b/rayx-sub003/raytype"
	"github.com/hz-b/rayx-sub003/rng"
)

// generateMatrixRay serves Generate's common dispatch table for the
// matrix kind (§4.3 "Matrix source. Deterministic grid sampling ...
// energy and polarization fixed per source"). Generate passes no grid
// index and the grid itself has no randomness, so every ray built here
// is the grid's center point (a degenerate single-point source);
// GenerateMatrixGrid produces the full deterministic (W×H×φ×ψ) sweep.
func generateMatrixRay(cfg Config, stream *rng.Stream, sourceID int32) raytype.Ray {
	_ = stream
	center := cfg
	center.MatrixWidthCount, center.MatrixHeightCount = 1, 1
	center.MatrixHorAngleCount, center.MatrixVerAngleCount = 1, 1
	return matrixRayAt(center, 0, 0, 0, 0, sourceID)
}

// GenerateMatrixGrid fills rays with the full deterministic (W×H×φ×ψ)
// sweep, in row-major (w,h,horAngle,verAngle) order; len(rays) must
// equal the product of the four grid counts.
func GenerateMatrixGrid(cfg Config, rays []raytype.Ray, sourceID int32) {
	wn, hn, an, vn := gridCount(cfg.MatrixWidthCount), gridCount(cfg.MatrixHeightCount),
		gridCount(cfg.MatrixHorAngleCount), gridCount(cfg.MatrixVerAngleCount)

	idx := 0
	for wi := 0; wi < wn; wi++ {
		for hi := 0; hi < hn; hi++ {
			for ai := 0; ai < an; ai++ {
				for vi := 0; vi < vn; vi++ {
					if idx >= len(rays) {
						return
					}
					rays[idx] = matrixRayAt(cfg, wi, hi, ai, vi, sourceID)
					idx++
				}
			}
		}
	}
}

func gridCount(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func gridCoord(i, n int, extent float64) float64 {
	if n <= 1 {
		return 0
	}
	t := float64(i)/float64(n-1) - 0.5
	return t * extent
}

func matrixRayAt(cfg Config, wi, hi, ai, vi int, sourceID int32) raytype.Ray {
	x := gridCoord(wi, gridCount(cfg.MatrixWidthCount), cfg.SourceWidth)
	y := gridCoord(hi, gridCount(cfg.MatrixHeightCount), cfg.SourceHeight)
	phi := gridCoord(ai, gridCount(cfg.MatrixHorAngleCount), cfg.HorDivergence)
	psi := gridCoord(vi, gridCount(cfg.MatrixVerAngleCount), cfg.VerDivergence)

	return raytype.Ray{
		Position:  [3]float64{x, y, 0},
		EventType: raytype.Emitted,
		Direction: directionFromAngles(phi, psi),
		Energy:    cfg.PhotonEnergy,
		Field:       cfg.Polarization.stokesField(),
		SourceID:    sourceID,
		LastElement: -1,
	}
}
