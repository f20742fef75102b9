package match

import (
	"math"

	"dye-atelier/catalog"
	"dye-atelier/colorspace"
)

// Blend computes the midpoint of exactly two dyes: the rounded
// component-wise average of their RGB values, as a hex string. The
// average is commutative, so Blend(a, b) == Blend(b, a).
func Blend(a, b catalog.Dye) string {
	return colorspace.RGB{
		R: avgChannel(a.RGB.R, b.RGB.R),
		G: avgChannel(a.RGB.G, b.RGB.G),
		B: avgChannel(a.RGB.B, b.RGB.B),
	}.Hex()
}

func avgChannel(a, b uint8) uint8 {
	return uint8(math.Round((float64(a) + float64(b)) / 2))
}

// MatchBlend ranks catalog dyes against a blended color, excluding the
// given IDs (normally the two source dyes), ascending by distance and
// truncated to limit.
func (f *Finder) MatchBlend(blendedHex string, excludeIDs map[int]bool, limit int) []Match {
	return f.FindClosest(blendedHex, Options{
		ExcludeIDs: excludeIDs,
		Limit:      limit,
	})
}
