package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/kmbriggs/swatch-mcp/internal/swatch"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity: 0 = fully transparent, 255 =
// fully opaque.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) space.
//
// HSL is often more intuitive for color manipulation than RGB: hue is the
// color type, saturation the intensity, lightness the brightness.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
//
// The same color is provided in four formats to suit different use cases:
// Hex for CSS/web usage, RGB without alpha, RGBA with alpha, and HSL for
// perceptual operations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// FromSwatch converts a normalized extraction-core color to the multi-format
// presentation used in tool results.
//
// Channels are scaled from [0,1] back to 8-bit samples with rounding, the
// inverse of the core's divide-by-255 normalization.
func FromSwatch(c swatch.Color) *ColorResult {
	r8 := uint8(math.Round(c.R * 255))
	g8 := uint8(math.Round(c.G * 255))
	b8 := uint8(math.Round(c.B * 255))
	a8 := uint8(math.Round(c.A * 255))

	return &ColorResult{
		Hex:  fmt.Sprintf("#%02X%02X%02X", r8, g8, b8),
		RGB:  RGBColor{R: r8, G: g8, B: b8},
		RGBA: RGBAColor{R: r8, G: g8, B: b8, A: a8},
		HSL:  rgbToHSL(r8, g8, b8),
	}
}

// FromSwatchSlice converts a sequence of normalized colors, preserving
// order.
func FromSwatchSlice(colors []swatch.Color) []ColorResult {
	results := make([]ColorResult, len(colors))
	for i, c := range colors {
		results[i] = *FromSwatch(c)
	}
	return results
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Coordinates are 0-based with origin at top-left. Returns an error when
// (x, y) lies outside the image bounds. For 16-bit images, values are
// scaled down by right-shifting 8 bits.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, a := img.At(x, y).RGBA()
	// Convert from 16-bit to 8-bit
	r8, g8, b8, a8 := uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)

	return &ColorResult{
		Hex:  fmt.Sprintf("#%02X%02X%02X", r8, g8, b8),
		RGB:  RGBColor{R: r8, G: g8, B: b8},
		RGBA: RGBAColor{R: r8, G: g8, B: b8, A: a8},
		HSL:  rgbToHSL(r8, g8, b8),
	}, nil
}

// LabeledPoint represents a pixel coordinate with an optional descriptive
// label, such as "button_background". Unlabeled points are still sampled.
type LabeledPoint struct {
	X     int    // X coordinate (0-based)
	Y     int    // Y coordinate (0-based)
	Label string // Optional descriptive label for this point
}

// LabeledColorResult combines a color sample with its location and label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"` // Optional label (empty if not provided)
	X     int         `json:"x"`               // X coordinate that was sampled
	Y     int         `json:"y"`               // Y coordinate that was sampled
	Color ColorResult `json:"color"`           // The color at this location
}

// MultiColorResult contains color samples from multiple points, in the same
// order as the input points.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti extracts colors at multiple pixel coordinates in a
// single call. Any out-of-bounds point fails the whole call with no partial
// results.
func SampleColorsMulti(img image.Image, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		color, err := SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *color,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// rgbToHSL converts 8-bit RGB values to HSL color space.
//
// Standard algorithm: normalize to 0-1, lightness from the min/max average,
// saturation relative to lightness, hue from whichever component is max.
func rgbToHSL(r, g, b uint8) HSLColor {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	max := rf
	if gf > max {
		max = gf
	}
	if bf > max {
		max = bf
	}

	min := rf
	if gf < min {
		min = gf
	}
	if bf < min {
		min = bf
	}

	l := (max + min) / 2.0

	if max == min {
		return HSLColor{H: 0, S: 0, L: int(l * 100)}
	}

	var s float64
	if l < 0.5 {
		s = (max - min) / (max + min)
	} else {
		s = (max - min) / (2.0 - max - min)
	}

	var h float64
	switch max {
	case rf:
		h = (gf - bf) / (max - min)
		if gf < bf {
			h += 6
		}
	case gf:
		h = 2.0 + (bf-rf)/(max-min)
	case bf:
		h = 4.0 + (rf-gf)/(max-min)
	}
	h *= 60

	return HSLColor{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}
