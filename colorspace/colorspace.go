// Package colorspace provides conversions between hex, RGB and HSV color
// representations, and the distance metric used by every matching component.
package colorspace

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Epsilon is the tolerance used for floating-point distance comparisons.
const Epsilon = 0.000001

// DistanceMethod selects the formula used by Distance.
type DistanceMethod int

const (
	// MethodRGB is plain Euclidean distance in RGB space.
	MethodRGB DistanceMethod = iota
	// MethodLab is delta-E in CIE Lab space.
	MethodLab
)

// RGB represents a color with 8-bit channels, each ranging from 0 to 255.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSV represents a color as hue in degrees [0,360) and saturation and
// value as percentages [0,100].
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// HexToRGB parses a #RRGGBB string (case-insensitive, leading # optional)
// into an RGB value. Malformed input returns RGB{0,0,0} rather than an
// error; callers are expected to validate upstream, and downstream
// rendering depends on the black fallback.
func HexToRGB(hex string) RGB {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return RGB{}
	}
	var value uint32
	for i := 0; i < 6; i++ {
		d := hexDigit(s[i])
		if d < 0 {
			return RGB{}
		}
		value = value<<4 | uint32(d)
	}
	return RGB{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
	}
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// RGBToHex formats channel values as an uppercase #RRGGBB string.
// Out-of-range inputs are clamped to [0,255].
func RGBToHex(r, g, b int) string {
	return fmt.Sprintf("#%02X%02X%02X", clampChannel(r), clampChannel(g), clampChannel(b))
}

// Hex returns the canonical uppercase #RRGGBB form of an RGB value.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// RGBToHSV converts 8-bit RGB channels to HSV with hue in degrees [0,360)
// and saturation/value as percentages [0,100].
func RGBToHSV(r, g, b uint8) HSV {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	maxv := math.Max(rf, math.Max(gf, bf))
	minv := math.Min(rf, math.Min(gf, bf))
	delta := maxv - minv

	var h float64
	switch {
	case delta == 0:
		h = 0
	case maxv == rf:
		h = 60 * math.Mod((gf-bf)/delta, 6)
	case maxv == gf:
		h = 60 * ((bf-rf)/delta + 2)
	default:
		h = 60 * ((rf-gf)/delta + 4)
	}
	if h < 0 {
		h += 360
	}

	var s float64
	if maxv > 0 {
		s = delta / maxv * 100
	}
	return HSV{H: h, S: s, V: maxv * 100}
}

// HSVToRGB converts hue in degrees and saturation/value percentages back
// to 8-bit RGB channels. Hue outside [0,360) is normalized first.
func HSVToRGB(h, s, v float64) RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s /= 100
	v /= 100

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var rf, gf, bf float64
	switch {
	case h < 60:
		rf, gf, bf = c, x, 0
	case h < 120:
		rf, gf, bf = x, c, 0
	case h < 180:
		rf, gf, bf = 0, c, x
	case h < 240:
		rf, gf, bf = 0, x, c
	case h < 300:
		rf, gf, bf = x, 0, c
	default:
		rf, gf, bf = c, 0, x
	}

	return RGB{
		R: uint8(math.Round((rf + m) * 255)),
		G: uint8(math.Round((gf + m) * 255)),
		B: uint8(math.Round((bf + m) * 255)),
	}
}

// HSVToHex converts HSV components directly to an uppercase #RRGGBB string.
func HSVToHex(h, s, v float64) string {
	return HSVToRGB(h, s, v).Hex()
}

// Distance returns a non-negative scalar difference between two hex colors
// using MethodRGB. It is symmetric and zero exactly when both colors parse
// to the same value.
func Distance(hexA, hexB string) float64 {
	return DistanceMethod(MethodRGB).Distance(hexA, hexB)
}

// Distance computes the difference between two hex colors under the
// selected method.
func (m DistanceMethod) Distance(hexA, hexB string) float64 {
	a := HexToRGB(hexA)
	b := HexToRGB(hexB)
	if m == MethodLab {
		ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
		cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
		return ca.DistanceLab(cb)
	}
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return math.Sqrt(float64(dr*dr + dg*dg + db*db))
}
