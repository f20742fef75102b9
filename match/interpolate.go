package match

import (
	"math"

	"dye-atelier/catalog"
	"dye-atelier/colorspace"
)

// Space selects the color space a gradient is computed in.
type Space string

const (
	// SpaceRGB interpolates each RGB channel independently.
	SpaceRGB Space = "rgb"
	// SpaceHSV interpolates hue along the shortest path around the color
	// wheel, with linear saturation and value.
	SpaceHSV Space = "hsv"
)

// Step is one point along a computed transition between two dyes.
type Step struct {
	// Position is the fractional distance from start to end, in [0,1].
	Position float64 `json:"position"`
	// TheoreticalHex is the mathematically interpolated color at this
	// position; it is usually not in the catalog.
	TheoreticalHex string `json:"theoreticalHex"`
	// Matched is the nearest catalog dye to TheoreticalHex, excluding
	// the two endpoints, or nil when no candidate remains.
	Matched *catalog.Dye `json:"matched"`
	// Distance is the metric distance between TheoreticalHex and the
	// matched dye. It is 0 when Matched is nil; consumers rely on that
	// convention.
	Distance float64 `json:"distance"`
}

// Interpolate produces a deterministic ordered sequence of steps between
// two dyes. stepCount below 1 clamps to 1; a single-step gradient is one
// step at position 0 equal to the start color. Each theoretical color is
// resolved to its nearest dye with both endpoints excluded; an optional
// exclude predicate further narrows the candidates.
func (f *Finder) Interpolate(start, end catalog.Dye, stepCount int, space Space, exclude func(catalog.Dye) bool) []Step {
	if stepCount < 1 {
		stepCount = 1
	}

	endpointIDs := map[int]bool{start.ID: true, end.ID: true}
	steps := make([]Step, 0, stepCount)

	for i := 0; i < stepCount; i++ {
		var t float64
		if stepCount > 1 {
			t = float64(i) / float64(stepCount-1)
		}

		// Endpoints are taken verbatim so the first and last steps equal
		// the source colors exactly, even in HSV space where a hex-HSV
		// round trip can drift by a rounding unit.
		var theoretical colorspace.RGB
		switch {
		case i == 0:
			theoretical = start.RGB
		case i == stepCount-1:
			theoretical = end.RGB
		case space == SpaceHSV:
			theoretical = lerpHSV(start.HSV, end.HSV, t)
		default:
			theoretical = lerpRGB(start.RGB, end.RGB, t)
		}

		var matched *catalog.Dye
		var distance float64
		if exclude != nil {
			matched, distance, _ = f.findClosestFiltered(theoretical, Options{
				ExcludeIDs: endpointIDs,
				Exclude:    exclude,
			})
		} else {
			matched, distance, _ = f.findClosestRGB(theoretical, endpointIDs)
		}
		if matched == nil {
			distance = 0
		}

		steps = append(steps, Step{
			Position:       t,
			TheoreticalHex: theoretical.Hex(),
			Matched:        matched,
			Distance:       distance,
		})
	}

	return steps
}

// lerpRGB interpolates each channel independently, rounding to the
// nearest integer value.
func lerpRGB(a, b colorspace.RGB, t float64) colorspace.RGB {
	return colorspace.RGB{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// lerpHSV interpolates hue with shortest-path wraparound: a raw hue
// difference beyond 180 degrees goes the other way around the wheel.
// Saturation and value interpolate linearly.
func lerpHSV(a, b colorspace.HSV, t float64) colorspace.RGB {
	dh := b.H - a.H
	if dh > 180 {
		dh -= 360
	} else if dh < -180 {
		dh += 360
	}
	h := math.Mod(a.H+dh*t, 360)
	if h < 0 {
		h += 360
	}
	s := a.S + (b.S-a.S)*t
	v := a.V + (b.V-a.V)*t
	return colorspace.HSVToRGB(h, s, v)
}
