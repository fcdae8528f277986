package filter

import (
	"image"
	"sync"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/kmbriggs/swatch-mcp/internal/swatch"
)

// areaAverage implements swatch.TransformAreaAverage: the mean of every
// pixel in the extent, emitted as a single 1×1 sample.
//
// Rows are accumulated in parallel; each worker sums its own span and folds
// into the shared totals under a mutex.
func areaAverage(task swatch.Task) (swatch.Output, error) {
	src, err := convertInput(task)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	var mu sync.Mutex
	var rSum, gSum, bSum, aSum uint64

	parallel.Line(h, func(start, end int) {
		var r, g, b, a uint64
		for y := start; y < end; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			row := src.Pix[off : off+w*4]
			for x := 0; x < len(row); x += 4 {
				r += uint64(row[x])
				g += uint64(row[x+1])
				b += uint64(row[x+2])
				a += uint64(row[x+3])
			}
		}
		mu.Lock()
		rSum += r
		gSum += g
		bSum += b
		aSum += a
		mu.Unlock()
	})

	n := uint64(w * h)
	out := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	out.Pix[0] = uint8((rSum + n/2) / n)
	out.Pix[1] = uint8((gSum + n/2) / n)
	out.Pix[2] = uint8((bSum + n/2) / n)
	out.Pix[3] = uint8((aSum + n/2) / n)

	return &output{img: out}, nil
}
