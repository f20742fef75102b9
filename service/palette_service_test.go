package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

// encodeTestImage renders a half-red, half-blue PNG.
func encodeTestImage(t *testing.T) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if x < 16 {
				img.Set(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return &buf
}

func TestExtractDominantColors(t *testing.T) {
	svc := NewPaletteService(testCatalogService(t))

	response, err := svc.Extract(encodeTestImage(t), 2)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if response.Width != 32 || response.Height != 32 {
		t.Errorf("dimensions = %dx%d, want 32x32", response.Width, response.Height)
	}
	if len(response.Colors) != 2 {
		t.Fatalf("got %d colors, want 2", len(response.Colors))
	}

	for _, pc := range response.Colors {
		if math.Abs(pc.Weight-0.5) > 0.1 {
			t.Errorf("color %s weight = %f, want ~0.5", pc.Hex, pc.Weight)
		}
		if len(pc.Matches) == 0 {
			t.Errorf("color %s has no matches", pc.Hex)
		}
		if len(pc.Matches) > matchesPerColor {
			t.Errorf("color %s has %d matches, want at most %d", pc.Hex, len(pc.Matches), matchesPerColor)
		}
	}
}

func TestExtractClampsColorCount(t *testing.T) {
	svc := NewPaletteService(testCatalogService(t))

	// A two-color image cannot yield more than two dominant colors,
	// however many were asked for.
	response, err := svc.Extract(encodeTestImage(t), maxPaletteColors+50)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(response.Colors) > 2 {
		t.Errorf("got %d colors from a two-color image", len(response.Colors))
	}
}

func TestExtractRejectsGarbage(t *testing.T) {
	svc := NewPaletteService(testCatalogService(t))

	if _, err := svc.Extract(bytes.NewBufferString("not an image"), 4); err == nil {
		t.Fatal("expected decode error")
	}
}
