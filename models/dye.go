package models

import (
	"dye-atelier/catalog"
	"dye-atelier/colorspace"
)

// DyeView is a catalog dye as returned by the API, with an optional
// localized display name applied on top of the source-language name.
type DyeView struct {
	catalog.Dye
	LocalizedName string `json:"localizedName,omitempty"`
}

// ChannelDelta is the per-channel difference between two dyes' colors.
type ChannelDelta struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// CompareResult is the response of the dye comparison tool: both dyes,
// their channel deltas and their distance under both metrics.
type CompareResult struct {
	A           catalog.Dye  `json:"a"`
	B           catalog.Dye  `json:"b"`
	Delta       ChannelDelta `json:"delta"`
	DistanceRGB float64      `json:"distanceRgb"`
	DistanceLab float64      `json:"distanceLab"`
}

// NewCompareResult computes the comparison between two dyes.
func NewCompareResult(a, b catalog.Dye) CompareResult {
	return CompareResult{
		A: a,
		B: b,
		Delta: ChannelDelta{
			R: int(a.RGB.R) - int(b.RGB.R),
			G: int(a.RGB.G) - int(b.RGB.G),
			B: int(a.RGB.B) - int(b.RGB.B),
		},
		DistanceRGB: colorspace.MethodRGB.Distance(a.Hex, b.Hex),
		DistanceLab: colorspace.MethodLab.Distance(a.Hex, b.Hex),
	}
}
