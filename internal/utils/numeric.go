package utils

import "math"

// Sanitize replaces NaN and infinite values with fallback. Invoked once
// per sub-score at the aggregation boundary; upstream sub-scores stay
// individually inspectable.
func Sanitize(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampScore rounds a raw score to an integer in [0,100].
func ClampScore(v float64) int {
	return int(math.Round(Clamp(v, 0, 100)))
}

// Round1 rounds to one decimal place. Distances and areas in output are
// rounded with this so repeated runs serialize identically.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places, used for ratios and multipliers.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
