package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// PositiveFinite reports whether x is > 0 and finite.
func PositiveFinite(x float64) bool {
	return x > 0 && IsFinite(x)
}

// MsToSamples converts a duration in milliseconds to samples.
func MsToSamples(ms, sampleRate float64) float64 {
	return ms * sampleRate / 1000
}
