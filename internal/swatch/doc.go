// Package swatch extracts representative colors from raster images: a single
// average color and a small palette of dominant colors.
//
// Two structurally different strategies share the public surface. The filter
// strategy submits a named transform (area averaging or k-means clustering)
// to a filter engine and decodes the fixed-size RGBA8 swatch it renders. The
// median-cut strategy asks a palette provider for a ranked palette directly.
// An Extractor dispatches between them per call; the only fallback is in
// AverageColor, where a missing area-average transform falls through to the
// median-cut path.
//
// # Color Representation
//
// All results are Color values: four float64 channels (red, green, blue,
// alpha) normalized to [0,1] by dividing 8-bit samples by 255. Raw filter
// output is straight (non-premultiplied) RGBA8, row-major, one byte per
// channel; DecodeColors performs the conversion and nothing else — no gamma
// correction, no premultiplied-alpha undo.
//
// # Quality
//
// QualityLevel trades accuracy for speed. It bounds the pixel area fed to
// the clustering transform (TargetSize, aspect-preserving downscale only)
// and sets the iteration budget for iterative strategies (Passes). The
// median-cut paths forward the level to the palette provider as a sampling
// density hint instead.
//
// # Concurrency
//
// All operations are synchronous and stateless across invocations. The
// package holds no mutable shared state; concurrent calls are safe as long
// as the images themselves are not mutated. Calls block while the engine or
// provider executes — timeouts, if needed, are the caller's concern.
//
// # Error Handling
//
// Failures are sentinel errors matchable with errors.Is: ErrImageConversion,
// ErrFilterUnsupported, ErrOutputMissing, ErrBufferTooSmall and
// ErrEmptyPalette. Every failure surfaces to the caller with its kind
// preserved; only ErrFilterUnsupported is swallowed, exactly once, by the
// AverageColor fallback.
package swatch
