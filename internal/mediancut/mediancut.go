// Package mediancut provides a ranked median-cut palette extractor backed by
// the go-quantize library. It implements swatch.PaletteProvider.
package mediancut

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/kmbriggs/swatch-mcp/internal/swatch"
)

// whiteThreshold is the per-channel floor above which a pixel counts as
// near-white for exclusion purposes.
const whiteThreshold = 250

// Provider extracts palettes via median-cut quantization. The zero value is
// ready to use and safe for concurrent calls.
type Provider struct{}

// New returns a ready-to-use Provider.
func New() Provider {
	return Provider{}
}

// Palette extracts up to count colors, most dominant first.
//
// The quality level sets the pixel sampling density: the image is sampled on
// a grid whose step matches the level's target area, so low quality inspects
// far fewer pixels than best. When ignoreWhite is set, near-white pixels
// carry no weight and cannot appear in the palette.
//
// An image the quantizer cannot build a palette for yields an empty result
// with a nil error; distinguishing that from failure is the caller's
// contract.
func (Provider) Palette(img image.Image, count int, quality swatch.QualityLevel, ignoreWhite bool) ([]swatch.Color, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("color count must be at least 1, got %d", count)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}

	step := sampleStep(bounds, quality)
	weight := func(m image.Image, x, y int) uint32 {
		if (x-bounds.Min.X)%step != 0 || (y-bounds.Min.Y)%step != 0 {
			return 0
		}
		if ignoreWhite && isNearWhite(m, x, y) {
			return 0
		}
		return 1
	}

	q := quantize.MedianCutQuantizer{
		Aggregation: quantize.Mean,
		Weighting:   weight,
	}
	palette := q.Quantize(make(color.Palette, 0, count), img)
	if len(palette) == 0 {
		return nil, nil
	}

	ranked := rankByCoverage(img, bounds, palette, step, ignoreWhite)

	colors := make([]swatch.Color, len(ranked))
	for i, c := range ranked {
		colors[i] = swatch.FromColor(c)
	}
	return colors, nil
}

// sampleStep derives the sampling grid step from the quality level's target
// area: best samples every pixel, lower levels stride proportionally wider.
func sampleStep(bounds image.Rectangle, quality swatch.QualityLevel) int {
	w := bounds.Dx()
	h := bounds.Dy()
	tw, th := quality.TargetSize(w, h)
	if tw*th <= 0 {
		return 1
	}

	step := int(math.Round(math.Sqrt(float64(w*h) / float64(tw*th))))
	if step < 1 {
		step = 1
	}
	return step
}

func isNearWhite(m image.Image, x, y int) bool {
	r, g, b, _ := m.At(x, y).RGBA()
	return uint8(r>>8) >= whiteThreshold && uint8(g>>8) >= whiteThreshold && uint8(b>>8) >= whiteThreshold
}

// rankByCoverage orders palette entries by how many sampled pixels map to
// each, descending. Ties keep the quantizer's original order.
func rankByCoverage(img image.Image, bounds image.Rectangle, palette color.Palette, step int, ignoreWhite bool) []color.Color {
	counts := make([]int, len(palette))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			if ignoreWhite && isNearWhite(img, x, y) {
				continue
			}
			counts[palette.Index(img.At(x, y))]++
		}
	}

	order := make([]int, len(palette))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	ranked := make([]color.Color, len(palette))
	for i, idx := range order {
		ranked[i] = palette[idx]
	}
	return ranked
}
