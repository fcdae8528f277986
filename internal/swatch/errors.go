package swatch

import "errors"

// Extraction failure kinds. All are terminal except ErrFilterUnsupported,
// which AverageColor recovers from exactly once by falling back to the
// median-cut path. Wrapped errors remain matchable with errors.Is.
var (
	// ErrImageConversion indicates the image could not be converted to the
	// filter engine's input representation (nil image, empty bounds).
	ErrImageConversion = errors.New("image cannot be converted for filtering")

	// ErrFilterUnsupported indicates the named transform is not available on
	// this engine. Raised at Apply time, not via an upfront capability probe.
	ErrFilterUnsupported = errors.New("filter transform unsupported")

	// ErrOutputMissing indicates the engine completed without producing an
	// output image.
	ErrOutputMissing = errors.New("filter engine produced no output")

	// ErrBufferTooSmall indicates a pixel buffer is shorter than the
	// requested record count requires.
	ErrBufferTooSmall = errors.New("pixel buffer too small")

	// ErrEmptyPalette indicates the palette provider returned no usable
	// palette.
	ErrEmptyPalette = errors.New("palette provider returned no colors")
)
