package texture

import "math"

// Quantizer maps real pixel values onto histogram bins spanning [min, max].
type Quantizer struct {
	bins     int
	min, max float64
}

// NewQuantizer validates the range and bin count.
//
// Arguments:
//   - bins: Number of bins per axis, at least 2.
//   - min: Lower bound of the quantized range.
//   - max: Upper bound of the quantized range, strictly greater than min.
//
// Returns:
//   - Quantizer: The quantizer.
//   - error: A *ConfigError naming the rejected parameter.
func NewQuantizer(bins int, min, max float64) (Quantizer, error) {
	if bins < 2 {
		return Quantizer{}, &ConfigError{Param: "bins", Value: bins, Reason: "must be at least 2"}
	}
	if math.IsNaN(min) || math.IsInf(min, 0) {
		return Quantizer{}, &ConfigError{Param: "min", Value: min, Reason: "must be finite"}
	}
	if math.IsNaN(max) || math.IsInf(max, 0) {
		return Quantizer{}, &ConfigError{Param: "max", Value: max, Reason: "must be finite"}
	}
	if min >= max {
		return Quantizer{}, &ConfigError{
			Param:  "min/max",
			Value:  [2]float64{min, max},
			Reason: "degenerate range, min must be below max",
		}
	}
	return Quantizer{bins: bins, min: min, max: max}, nil
}

// Bins returns the number of bins.
func (q Quantizer) Bins() int { return q.bins }

// Range returns the quantized range.
func (q Quantizer) Range() (min, max float64) { return q.min, q.max }

// Bin returns the bin of v, clamped to [0, Bins()-1]. NaN has no bin and maps to -1.
func (q Quantizer) Bin(v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	f := math.Floor((v - q.min) / (q.max - q.min) * float64(q.bins))
	if f < 0 {
		return 0
	}
	if f >= float64(q.bins) {
		return q.bins - 1
	}
	return int(f)
}
