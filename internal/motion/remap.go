package motion

import (
	"fmt"
	"math"
)

// #region map

// Map linearly remaps value from [fromLow, fromHigh] onto [toLow, toHigh].
// A degenerate source range yields NaN rather than dividing by zero.
func Map(value, fromLow, fromHigh, toLow, toHigh float64) float64 {
	if fromLow == fromHigh {
		return math.NaN()
	}
	return toLow + (value-fromLow)/(fromHigh-fromLow)*(toHigh-toLow)
}

// LinearMap is a validated Map with fixed ranges.
type LinearMap struct {
	from Span
	to   Span
}

// NewLinearMap rejects a source span with equal bounds.
func NewLinearMap(from, to Span) (LinearMap, error) {
	if from.Low == from.High {
		return LinearMap{}, fmt.Errorf("linear map from [%g, %g]: %w", from.Low, from.High, ErrDegenerateSpan)
	}
	return LinearMap{from: from, to: to}, nil
}

// Apply remaps v.
func (m LinearMap) Apply(v float64) float64 {
	return Map(v, m.from.Low, m.from.High, m.to.Low, m.to.High)
}

// #endregion map

// clamp restricts v to [-1, 1]. NaN becomes 0 so it never reaches a servo.
func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
