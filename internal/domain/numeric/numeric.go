// Package numeric holds the rounding and guarded-division helpers shared by the
// analytics engines. Every ratio in the engines goes through Ratio so a zero
// denominator yields 0 instead of NaN or Inf.
package numeric

import "math"

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// Ratio divides num by den, returning 0 when den is 0.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Abs returns the absolute value of an int.
func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
