package swatch

import (
	"image"
)

// Transform identifiers understood by filter engines. An engine that does
// not recognize a name reports ErrFilterUnsupported from Apply.
const (
	// TransformAreaAverage averages all pixels in the extent down to a
	// single 1×1 sample.
	TransformAreaAverage = "area_average"

	// TransformClusterColors groups the extent's pixels into Task.Clusters
	// clusters and emits one swatch per cluster as a Clusters×1 strip.
	TransformClusterColors = "cluster_colors"
)

// Task is the key/value parameter set for a single transform application.
// Image and Extent apply to every transform; the remaining fields are read
// only by TransformClusterColors.
type Task struct {
	// Image is the read-only source raster. Never mutated.
	Image image.Image

	// Extent is the rectangular region of the image to operate on.
	Extent image.Rectangle

	// Clusters is the number of output clusters.
	Clusters int

	// Passes bounds the number of clustering iterations.
	Passes int

	// Perceptual runs clustering in a perceptually-uniform color space
	// instead of raw RGB, improving grouping of near-duplicate shades.
	Perceptual bool
}

// Output is a rendered transform result: a small fixed-size image that can
// be read back as straight RGBA8 bytes.
type Output interface {
	// Extent reports the output's bounds. For area averaging this is 1×1;
	// for clustering it is Clusters×1, regardless of input size.
	Extent() image.Rectangle

	// Opaque returns an output identical to this one with every alpha
	// sample forced to 255. The receiver is not modified.
	Opaque() Output

	// Render writes the output's pixels over bounds into buf as straight
	// RGBA8, rowStride bytes per row.
	Render(buf []byte, rowStride int, bounds image.Rectangle) error
}

// Engine executes named transforms. Implementations may be backed by
// anything from a CPU loop to a GPU pipeline; callers learn that a transform
// is unavailable only when Apply reports ErrFilterUnsupported.
type Engine interface {
	Apply(name string, task Task) (Output, error)
}

// PaletteProvider produces a ranked palette for an image, most dominant
// color first. A nil or empty result means the provider could not build a
// palette; callers treat both the same way.
type PaletteProvider interface {
	// Palette extracts up to count colors. The quality level is a sampling
	// density hint for the provider, not applied by the caller. When
	// ignoreWhite is set, near-white pixels are excluded from consideration.
	Palette(img image.Image, count int, quality QualityLevel, ignoreWhite bool) ([]Color, error)
}
