package service

import (
	"fmt"
	"image"
	"io"
	"math"
	"sort"

	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	"dye-atelier/colorspace"
	"dye-atelier/match"
	"dye-atelier/models"
)

const (
	// sampleSize is the max dimension images are downscaled to before
	// sampling; color frequency is stable well below full resolution.
	sampleSize = 64
	// quantization is the number of levels each channel is bucketed
	// into when counting dominant colors.
	quantization = 16

	defaultPaletteColors = 6
	maxPaletteColors     = 12
	matchesPerColor      = 3
)

// PaletteService extracts dominant colors from uploaded images and
// resolves them to catalog dyes.
type PaletteService struct {
	catalogService *CatalogService
}

// NewPaletteService creates a new PaletteService
func NewPaletteService(catalogService *CatalogService) *PaletteService {
	return &PaletteService{catalogService: catalogService}
}

// Extract decodes an image, finds its count most dominant colors and
// returns each with its closest catalog dyes. count is clamped to
// [1, maxPaletteColors]; 0 means the default.
func (s *PaletteService) Extract(reader io.Reader, count int) (*models.ExtractResponse, error) {
	if count <= 0 {
		count = defaultPaletteColors
	}
	if count > maxPaletteColors {
		count = maxPaletteColors
	}

	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}

	// Downsample before counting; Lanczos keeps the color mix honest.
	if width > sampleSize || height > sampleSize {
		img = imaging.Fit(img, sampleSize, sampleSize, imaging.Lanczos)
	}

	dominant := dominantColors(img, count)
	finder := s.catalogService.Finder()

	response := &models.ExtractResponse{Width: width, Height: height}
	for _, dc := range dominant {
		response.Colors = append(response.Colors, models.PaletteColor{
			Hex:     dc.color.Hex(),
			Weight:  dc.weight,
			Matches: finder.FindClosest(dc.color.Hex(), match.Options{Limit: matchesPerColor}),
		})
	}
	return response, nil
}

type weightedColor struct {
	color  colorspace.RGB
	weight float64
}

// dominantColors buckets every pixel into a quantized color and returns
// the count highest-frequency buckets, represented by the average of the
// pixels that fell into them.
func dominantColors(img image.Image, count int) []weightedColor {
	type bucket struct {
		count   int
		sumR    int
		sumG    int
		sumB    int
		firstAt int
	}

	qFactor := 256.0 / float64(quantization)
	buckets := make(map[colorspace.RGB]*bucket)
	bounds := img.Bounds()
	total := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a < 0x8000 {
				// Mostly-transparent pixels carry no palette signal.
				continue
			}
			rgb := colorspace.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
			key := quantize(rgb, qFactor)
			bk, ok := buckets[key]
			if !ok {
				bk = &bucket{firstAt: total}
				buckets[key] = bk
			}
			bk.count++
			bk.sumR += int(rgb.R)
			bk.sumG += int(rgb.G)
			bk.sumB += int(rgb.B)
			total++
		}
	}

	if total == 0 {
		return nil
	}

	type keyed struct {
		key string
		bk  *bucket
	}
	ranked := make([]keyed, 0, len(buckets))
	for k, bk := range buckets {
		ranked = append(ranked, keyed{key: k.Hex(), bk: bk})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].bk.count != ranked[j].bk.count {
			return ranked[i].bk.count > ranked[j].bk.count
		}
		// Equal counts: earlier first appearance wins, for determinism.
		return ranked[i].bk.firstAt < ranked[j].bk.firstAt
	})

	if len(ranked) > count {
		ranked = ranked[:count]
	}

	out := make([]weightedColor, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, weightedColor{
			color: colorspace.RGB{
				R: uint8(r.bk.sumR / r.bk.count),
				G: uint8(r.bk.sumG / r.bk.count),
				B: uint8(r.bk.sumB / r.bk.count),
			},
			weight: float64(r.bk.count) / float64(total),
		})
	}
	return out
}

// quantize rounds each channel to the nearest multiple of the
// quantization factor.
func quantize(c colorspace.RGB, qFactor float64) colorspace.RGB {
	q := func(v uint8) uint8 {
		return uint8(math.Min(255, math.Round(float64(v)/qFactor)*qFactor))
	}
	return colorspace.RGB{R: q(c.R), G: q(c.G), B: q(c.B)}
}
