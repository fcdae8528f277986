// Package filter is a CPU-backed filter engine exposing named transforms
// over images.
//
// Transforms are looked up by string identifier at Apply time; a name the
// engine has no registration for surfaces swatch.ErrFilterUnsupported. There
// is deliberately no upfront capability probe — callers discover missing
// transforms the same way they would on a partially supported GPU pipeline,
// when the work is submitted.
//
// The built-in transforms are area averaging (full-extent mean, 1×1 output)
// and k-means color clustering (fixed-size swatch strip output whose alpha
// channel encodes cluster weight). Both read their input through a single
// conversion step that normalizes any image.Image to straight-alpha NRGBA;
// outputs render back out as straight RGBA8 bytes.
package filter
