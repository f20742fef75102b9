// Package harmony generates color-theory palettes (complementary,
// triadic, and friends) from a base color and resolves each theoretical
// swatch to the closest catalog dye.
package harmony

import (
	"fmt"

	"dye-atelier/catalog"
	"dye-atelier/colorspace"
	"dye-atelier/match"
)

// Type identifies a harmony scheme.
type Type string

const (
	Complementary      Type = "complementary"
	Triadic            Type = "triadic"
	Analogous          Type = "analogous"
	SplitComplementary Type = "split-complementary"
	Tetradic           Type = "tetradic"
	Monochromatic      Type = "monochromatic"
)

// Types returns every supported harmony type.
func Types() []Type {
	return []Type{
		Complementary,
		Triadic,
		Analogous,
		SplitComplementary,
		Tetradic,
		Monochromatic,
	}
}

// Swatch is one color of a generated harmony: the theoretical color from
// the scheme plus the closest dye the catalog offers for it.
type Swatch struct {
	TheoreticalHex string       `json:"theoreticalHex"`
	Matched        *catalog.Dye `json:"matched"`
	Distance       float64      `json:"distance"`
}

// Palette is a generated harmony.
type Palette struct {
	Type     Type     `json:"type"`
	BaseHex  string   `json:"baseHex"`
	Swatches []Swatch `json:"swatches"`
}

// Generate builds the harmony palette for a base color. Each swatch is
// resolved to the nearest dye, with dyes already used by earlier swatches
// excluded so one dye never fills two slots. An unknown type is an error.
func Generate(baseHex string, t Type, finder *match.Finder) (*Palette, error) {
	base := colorspace.HexToRGB(baseHex)
	hsv := colorspace.RGBToHSV(base.R, base.G, base.B)

	var theoreticals []colorspace.HSV
	switch t {
	case Complementary:
		theoreticals = []colorspace.HSV{hsv, rotate(hsv, 180)}
	case Triadic:
		theoreticals = []colorspace.HSV{hsv, rotate(hsv, 120), rotate(hsv, 240)}
	case Analogous:
		theoreticals = []colorspace.HSV{rotate(hsv, -30), hsv, rotate(hsv, 30)}
	case SplitComplementary:
		theoreticals = []colorspace.HSV{hsv, rotate(hsv, 150), rotate(hsv, 210)}
	case Tetradic:
		theoreticals = []colorspace.HSV{hsv, rotate(hsv, 90), rotate(hsv, 180), rotate(hsv, 270)}
	case Monochromatic:
		theoreticals = monochromatic(hsv)
	default:
		return nil, fmt.Errorf("unknown harmony type: %s", t)
	}

	palette := &Palette{
		Type:    t,
		BaseHex: base.Hex(),
	}

	used := make(map[int]bool)
	for _, th := range theoreticals {
		hex := colorspace.HSVToHex(th.H, th.S, th.V)
		matches := finder.FindClosest(hex, match.Options{ExcludeIDs: used, Limit: 1})

		swatch := Swatch{TheoreticalHex: hex}
		if len(matches) > 0 {
			dye := matches[0].Dye
			swatch.Matched = &dye
			swatch.Distance = matches[0].Distance
			used[dye.ID] = true
		}
		palette.Swatches = append(palette.Swatches, swatch)
	}

	return palette, nil
}

func rotate(hsv colorspace.HSV, degrees float64) colorspace.HSV {
	h := hsv.H + degrees
	for h >= 360 {
		h -= 360
	}
	for h < 0 {
		h += 360
	}
	return colorspace.HSV{H: h, S: hsv.S, V: hsv.V}
}

// monochromatic keeps the hue and walks value (and a little saturation)
// to produce five tints and shades around the base.
func monochromatic(base colorspace.HSV) []colorspace.HSV {
	steps := []struct{ s, v float64 }{
		{base.S, clampPercent(base.V * 0.4)},
		{base.S, clampPercent(base.V * 0.7)},
		{base.S, base.V},
		{clampPercent(base.S * 0.7), clampPercent(base.V*1.15 + 10)},
		{clampPercent(base.S * 0.4), clampPercent(base.V*1.3 + 20)},
	}
	out := make([]colorspace.HSV, 0, len(steps))
	for _, st := range steps {
		out = append(out, colorspace.HSV{H: base.H, S: st.s, V: st.v})
	}
	return out
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
