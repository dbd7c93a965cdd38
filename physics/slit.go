package physics

import "github.com/hz-b/rayx-sub003/beamline"

// PassesSlit reports whether a point in the element's local XZ-plane
// lies within the slit's opening while outside its beamstop (§4.4:
// "lies in opening − beamstop").
func PassesSlit(slit beamline.Slit, x, z float64) bool {
	if !slit.Opening.Contains(x, z) {
		return false
	}
	return !slit.Beamstop.Contains(x, z)
}
