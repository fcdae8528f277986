package swatch

import (
	"fmt"
	"image/color"
)

// Color is a normalized RGBA color with each channel in [0,1].
//
// Values are derived from 8-bit samples by dividing by 255. A Color has no
// identity beyond its value and is never mutated after construction.
type Color struct {
	R float64 `json:"r"` // Red channel (0.0-1.0)
	G float64 `json:"g"` // Green channel (0.0-1.0)
	B float64 `json:"b"` // Blue channel (0.0-1.0)
	A float64 `json:"a"` // Alpha channel (0.0-1.0, 1.0 = opaque)
}

// fromRGBA8 builds a Color from straight (non-premultiplied) 8-bit samples.
func fromRGBA8(r, g, b, a uint8) Color {
	return Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
		A: float64(a) / 255.0,
	}
}

// FromColor normalizes a standard library color.Color.
//
// The 16-bit premultiplied channels returned by RGBA() are scaled down to
// 8 bits before normalizing, matching how the rest of the package treats
// pixel data.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	return fromRGBA8(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
}

// RGBA8 returns the color's channels as 8-bit samples.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return uint8(c.R*255.0 + 0.5), uint8(c.G*255.0 + 0.5), uint8(c.B*255.0 + 0.5), uint8(c.A*255.0 + 0.5)
}

// Hex returns the color as "#RRGGBB". Alpha is excluded.
func (c Color) Hex() string {
	r, g, b, _ := c.RGBA8()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
