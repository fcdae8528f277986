package swatch

import "fmt"

// bytesPerRecord is the width of one decoded color record: one byte each for
// red, green, blue and alpha.
const bytesPerRecord = 4

// DecodeColors interprets a flat RGBA8 byte buffer as recordCount normalized
// colors.
//
// Record i occupies the four consecutive bytes at offset i*4, in red, green,
// blue, alpha order. Bytes are assumed to be straight (non-premultiplied)
// samples as rendered by the filter engine; each is divided by 255 and
// nothing else is applied.
//
// Returns ErrBufferTooSmall, with no partial output, when the buffer holds
// fewer than recordCount*4 bytes.
func DecodeColors(buf []byte, recordCount int) ([]Color, error) {
	need := recordCount * bytesPerRecord
	if len(buf) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d for %d records",
			ErrBufferTooSmall, len(buf), need, recordCount)
	}

	colors := make([]Color, recordCount)
	for i := 0; i < recordCount; i++ {
		off := i * bytesPerRecord
		colors[i] = fromRGBA8(buf[off], buf[off+1], buf[off+2], buf[off+3])
	}
	return colors, nil
}
