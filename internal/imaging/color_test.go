package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/kmbriggs/swatch-mcp/internal/swatch"
)

func makeTestImage(width, height int, fill color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}
	return img
}

func TestSampleColor(t *testing.T) {
	img := makeTestImage(10, 10, color.NRGBA{R: 255, G: 128, B: 0, A: 255})
	img.Set(5, 5, color.NRGBA{R: 0, G: 0, B: 255, A: 200})

	tests := []struct {
		name     string
		x, y     int
		wantHex  string
		wantRGBA RGBAColor
		wantErr  bool
	}{
		{"fill pixel", 0, 0, "#FF8000", RGBAColor{255, 128, 0, 255}, false},
		{"modified pixel", 5, 5, "#0000FF", RGBAColor{0, 0, 255, 200}, false},
		{"x out of bounds", 10, 5, "", RGBAColor{}, true},
		{"y out of bounds", 5, 10, "", RGBAColor{}, true},
		{"negative x", -1, 5, "", RGBAColor{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SampleColor(img, tt.x, tt.y)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}
			if got.Hex != tt.wantHex {
				t.Errorf("hex: got %s, want %s", got.Hex, tt.wantHex)
			}
			if got.RGBA != tt.wantRGBA {
				t.Errorf("rgba: got %+v, want %+v", got.RGBA, tt.wantRGBA)
			}
		})
	}
}

func TestSampleColorsMulti(t *testing.T) {
	img := makeTestImage(10, 10, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	points := []LabeledPoint{
		{X: 0, Y: 0, Label: "corner"},
		{X: 5, Y: 5},
	}
	result, err := SampleColorsMulti(img, points)
	if err != nil {
		t.Fatalf("SampleColorsMulti failed: %v", err)
	}
	if len(result.Samples) != 2 {
		t.Fatalf("samples: got %d, want 2", len(result.Samples))
	}
	if result.Samples[0].Label != "corner" {
		t.Errorf("label: got %q, want %q", result.Samples[0].Label, "corner")
	}
	if result.Samples[1].Color.Hex != "#0A141E" {
		t.Errorf("hex: got %s, want #0A141E", result.Samples[1].Color.Hex)
	}
}

func TestSampleColorsMulti_OutOfBoundsFailsWhole(t *testing.T) {
	img := makeTestImage(4, 4, color.NRGBA{A: 255})
	points := []LabeledPoint{
		{X: 0, Y: 0},
		{X: 100, Y: 100},
	}
	if _, err := SampleColorsMulti(img, points); err == nil {
		t.Error("expected an error for out-of-bounds point")
	}
}

func TestRGBToHSL(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    HSLColor
	}{
		{"red", 255, 0, 0, HSLColor{H: 0, S: 100, L: 50}},
		{"green", 0, 255, 0, HSLColor{H: 120, S: 100, L: 50}},
		{"blue", 0, 0, 255, HSLColor{H: 240, S: 100, L: 50}},
		{"white", 255, 255, 255, HSLColor{H: 0, S: 0, L: 100}},
		{"black", 0, 0, 0, HSLColor{H: 0, S: 0, L: 0}},
		{"gray", 128, 128, 128, HSLColor{H: 0, S: 0, L: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rgbToHSL(tt.r, tt.g, tt.b)
			if got != tt.want {
				t.Errorf("rgbToHSL(%d,%d,%d) = %+v, want %+v", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestFromSwatch(t *testing.T) {
	tests := []struct {
		name     string
		in       swatch.Color
		wantHex  string
		wantRGBA RGBAColor
	}{
		{"opaque red", swatch.Color{R: 1, A: 1}, "#FF0000", RGBAColor{255, 0, 0, 255}},
		{"mid gray", swatch.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}, "#808080", RGBAColor{128, 128, 128, 255}},
		{"half alpha", swatch.Color{B: 1, A: 0.5}, "#0000FF", RGBAColor{0, 0, 255, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromSwatch(tt.in)
			if got.Hex != tt.wantHex {
				t.Errorf("hex: got %s, want %s", got.Hex, tt.wantHex)
			}
			if got.RGBA != tt.wantRGBA {
				t.Errorf("rgba: got %+v, want %+v", got.RGBA, tt.wantRGBA)
			}
		})
	}
}

func TestFromSwatchSlice_PreservesOrder(t *testing.T) {
	in := []swatch.Color{
		{R: 1, A: 1},
		{G: 1, A: 1},
		{B: 1, A: 1},
	}
	got := FromSwatchSlice(in)
	if len(got) != 3 {
		t.Fatalf("length: got %d, want 3", len(got))
	}
	wantHex := []string{"#FF0000", "#00FF00", "#0000FF"}
	for i, w := range wantHex {
		if got[i].Hex != w {
			t.Errorf("result[%d].Hex = %s, want %s", i, got[i].Hex, w)
		}
	}
}
