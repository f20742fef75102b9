package models

import "dye-atelier/match"

// PaletteColor is one dominant color extracted from an uploaded image,
// with the closest dyes the catalog offers for it.
type PaletteColor struct {
	Hex     string        `json:"hex"`
	Weight  float64       `json:"weight"`
	Matches []match.Match `json:"matches"`
}

// ExtractResponse is the image palette extraction result.
type ExtractResponse struct {
	Colors []PaletteColor `json:"colors"`
	Width  int            `json:"width"`
	Height int            `json:"height"`
}
