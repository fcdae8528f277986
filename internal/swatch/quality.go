package swatch

import (
	"fmt"
	"math"
)

// QualityLevel selects the accuracy/speed tradeoff for extraction.
//
// Each level maps to a preferred sample-area ceiling consumed by TargetSize
// and an iteration budget consumed by Passes. The zero value is QualityLow.
type QualityLevel int

const (
	// QualityLow samples at most ~1,000 px² with a single clustering pass.
	QualityLow QualityLevel = iota
	// QualityFair samples at most ~10,000 px² with 10 clustering passes.
	QualityFair
	// QualityHigh samples at most ~100,000 px² with 15 clustering passes.
	QualityHigh
	// QualityBest samples the full image with 20 clustering passes.
	QualityBest
)

// areaCeiling returns the preferred sample-area ceiling in px², or 0 when
// the level is unbounded.
func (q QualityLevel) areaCeiling() int {
	switch q {
	case QualityLow:
		return 1000
	case QualityFair:
		return 10000
	case QualityHigh:
		return 100000
	default:
		return 0
	}
}

// TargetSize returns the dimensions an image of the given size should be
// sampled at for this quality level.
//
// Images at or under the level's area ceiling come back unchanged — there is
// no upscaling, ever. Over the ceiling, both dimensions are scaled by
// sqrt(ceiling/area) and rounded, preserving aspect ratio to within a pixel
// of rounding.
func (q QualityLevel) TargetSize(width, height int) (int, int) {
	ceiling := q.areaCeiling()
	if ceiling == 0 {
		return width, height
	}

	area := width * height
	if area <= ceiling {
		return width, height
	}

	scale := math.Sqrt(float64(ceiling) / float64(area))
	return int(math.Round(float64(width) * scale)), int(math.Round(float64(height) * scale))
}

// Passes returns the iteration budget for iterative clustering at this
// quality level.
func (q QualityLevel) Passes() int {
	switch q {
	case QualityLow:
		return 1
	case QualityFair:
		return 10
	case QualityHigh:
		return 15
	default:
		return 20
	}
}

// String returns the level's name as used by the MCP tool schema.
func (q QualityLevel) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityFair:
		return "fair"
	case QualityHigh:
		return "high"
	case QualityBest:
		return "best"
	default:
		return fmt.Sprintf("QualityLevel(%d)", int(q))
	}
}

// ParseQuality converts a tool-facing quality name to a QualityLevel.
func ParseQuality(s string) (QualityLevel, error) {
	switch s {
	case "low":
		return QualityLow, nil
	case "fair":
		return QualityFair, nil
	case "high":
		return QualityHigh, nil
	case "best":
		return QualityBest, nil
	default:
		return 0, fmt.Errorf("unknown quality level: %q (valid: low, fair, high, best)", s)
	}
}
