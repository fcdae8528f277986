package swatch

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// AverageAlgorithm selects the strategy AverageColor uses.
type AverageAlgorithm int

const (
	// AverageMedianCut derives the average from a one-color median-cut
	// palette. This is the default.
	AverageMedianCut AverageAlgorithm = iota

	// AverageAreaFilter submits the area-average transform to the filter
	// engine, falling back to AverageMedianCut if the engine does not
	// support it.
	AverageAreaFilter
)

// DominantAlgorithm selects the strategy DominantColors uses.
type DominantAlgorithm int

const (
	// DominantMedianCut extracts a ranked palette via median cut, most
	// dominant color first. This is the default.
	DominantMedianCut DominantAlgorithm = iota

	// DominantCluster extracts a fixed set of k-means cluster colors via
	// the filter engine. The result is NOT ranked by dominance.
	DominantCluster
)

const (
	// dominantPaletteSize is the palette size requested on the median-cut
	// dominant path.
	dominantPaletteSize = 5

	// dominantClusterCount is the fixed cluster count on the clustering
	// dominant path. Not caller-configurable.
	dominantClusterCount = 8

	// averageQuality is the sampling hint forwarded to the palette provider
	// on the average median-cut path, which takes no quality parameter.
	averageQuality = QualityFair
)

// ParseAverageAlgorithm converts a tool-facing algorithm name to an
// AverageAlgorithm.
func ParseAverageAlgorithm(s string) (AverageAlgorithm, error) {
	switch s {
	case "median_cut":
		return AverageMedianCut, nil
	case "area_average":
		return AverageAreaFilter, nil
	default:
		return 0, fmt.Errorf("unknown average algorithm: %q (valid: median_cut, area_average)", s)
	}
}

// ParseDominantAlgorithm converts a tool-facing algorithm name to a
// DominantAlgorithm.
func ParseDominantAlgorithm(s string) (DominantAlgorithm, error) {
	switch s {
	case "median_cut":
		return DominantMedianCut, nil
	case "cluster":
		return DominantCluster, nil
	default:
		return 0, fmt.Errorf("unknown dominant algorithm: %q (valid: median_cut, cluster)", s)
	}
}

// Extractor resolves average and dominant colors for images by dispatching
// to a filter engine or a palette provider. It holds no per-call state and
// is safe for concurrent use.
type Extractor struct {
	engine  Engine
	palette PaletteProvider
}

// NewExtractor wires an Extractor to its two collaborators.
func NewExtractor(engine Engine, palette PaletteProvider) *Extractor {
	return &Extractor{
		engine:  engine,
		palette: palette,
	}
}

// AverageColor produces a single representative color for the image.
//
// With AverageAreaFilter the area-average transform is attempted first. If
// the engine reports the transform as unsupported the call falls back to the
// median-cut path — that is the only fallback, and ErrFilterUnsupported is
// never returned to the caller. Every other filter failure (conversion,
// missing output, short render) is terminal.
func (e *Extractor) AverageColor(img image.Image, algorithm AverageAlgorithm) (Color, error) {
	if algorithm == AverageAreaFilter {
		c, err := e.filteredAverage(img)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrFilterUnsupported) {
			return Color{}, err
		}
		// Transform unavailable on this engine; take the median-cut path.
	}

	colors, err := e.palette.Palette(img, 1, averageQuality, false)
	if err != nil {
		return Color{}, err
	}
	if len(colors) == 0 {
		return Color{}, fmt.Errorf("%w: average color", ErrEmptyPalette)
	}
	return colors[0], nil
}

// filteredAverage runs the area-average transform over the image's full
// extent and decodes the single 1×1 sample it renders.
func (e *Extractor) filteredAverage(img image.Image) (Color, error) {
	var extent image.Rectangle
	if img != nil {
		extent = img.Bounds()
	}

	out, err := e.engine.Apply(TransformAreaAverage, Task{Image: img, Extent: extent})
	if err != nil {
		return Color{}, err
	}
	if out == nil {
		return Color{}, fmt.Errorf("%w: %s", ErrOutputMissing, TransformAreaAverage)
	}

	buf := make([]byte, bytesPerRecord)
	if err := out.Render(buf, bytesPerRecord, out.Extent()); err != nil {
		return Color{}, err
	}

	colors, err := DecodeColors(buf, 1)
	if err != nil {
		return Color{}, err
	}
	return colors[0], nil
}

// DominantColors produces the image's dominant colors.
//
// The median-cut path returns up to 5 colors in the provider's order, most
// dominant first; the order is never re-sorted here. The clustering path
// returns exactly 8 fully opaque colors in no particular order — the
// clusters are not ranked, an asymmetry inherited from the clustering
// transform's contract. The clustering path has no fallback; any filter
// failure is terminal.
func (e *Extractor) DominantColors(img image.Image, quality QualityLevel, algorithm DominantAlgorithm) ([]Color, error) {
	if algorithm == DominantCluster {
		return e.clusteredDominant(img, quality)
	}

	colors, err := e.palette.Palette(img, dominantPaletteSize, quality, false)
	if err != nil {
		return nil, err
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: dominant colors", ErrEmptyPalette)
	}
	return colors, nil
}

// clusteredDominant bounds the image to the quality level's target size,
// runs the clustering transform, forces the output opaque and decodes the
// fixed-size swatch strip.
func (e *Extractor) clusteredDominant(img image.Image, quality QualityLevel) ([]Color, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: nil or empty image", ErrImageConversion)
	}

	bounds := img.Bounds()
	w, h := quality.TargetSize(bounds.Dx(), bounds.Dy())
	if w < bounds.Dx() || h < bounds.Dy() {
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	out, err := e.engine.Apply(TransformClusterColors, Task{
		Image:      img,
		Extent:     img.Bounds(),
		Clusters:   dominantClusterCount,
		Passes:     quality.Passes(),
		Perceptual: true,
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: %s", ErrOutputMissing, TransformClusterColors)
	}

	// The transform's native output carries cluster weights in the alpha
	// channel; normalize to fully opaque before decoding so callers never
	// see spurious translucency.
	out = out.Opaque()

	buf := make([]byte, dominantClusterCount*bytesPerRecord)
	if err := out.Render(buf, dominantClusterCount*bytesPerRecord, out.Extent()); err != nil {
		return nil, err
	}

	return DecodeColors(buf, dominantClusterCount)
}
