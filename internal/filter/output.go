package filter

import (
	"fmt"
	"image"

	"github.com/kmbriggs/swatch-mcp/internal/swatch"
)

// output is the engine's rendered transform result, backed by a small
// straight-alpha NRGBA image.
type output struct {
	img *image.NRGBA
}

// Extent reports the output's bounds.
func (o *output) Extent() image.Rectangle {
	return o.img.Bounds()
}

// Opaque returns a copy of the output with every alpha sample forced to 255.
func (o *output) Opaque() swatch.Output {
	dup := image.NewNRGBA(o.img.Bounds())
	copy(dup.Pix, o.img.Pix)
	for i := 3; i < len(dup.Pix); i += 4 {
		dup.Pix[i] = 0xFF
	}
	return &output{img: dup}
}

// Render writes the output's pixels over bounds into buf as straight RGBA8,
// rowStride bytes per row.
func (o *output) Render(buf []byte, rowStride int, bounds image.Rectangle) error {
	bounds = bounds.Intersect(o.img.Bounds())
	if bounds.Empty() {
		return fmt.Errorf("render bounds outside output extent %v", o.img.Bounds())
	}

	w := bounds.Dx()
	h := bounds.Dy()
	need := (h-1)*rowStride + w*4
	if len(buf) < need {
		return fmt.Errorf("%w: render target holds %d bytes, need %d", swatch.ErrBufferTooSmall, len(buf), need)
	}

	for y := 0; y < h; y++ {
		srcOff := o.img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(buf[y*rowStride:y*rowStride+w*4], o.img.Pix[srcOff:srcOff+w*4])
	}
	return nil
}
