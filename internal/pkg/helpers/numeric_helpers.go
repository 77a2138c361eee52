package helpers

import "math"

// Float64OrZero normalizes a nullable numeric read into a finite float.
// NULL aggregates (no rows yet) come back as nil and display as 0.0.
func Float64OrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return *v
}

// ClampPercent clamps a percentage value to [0, 100] for display. Stored
// values can drift outside the range; reads never do.
func ClampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// NonNegative floors a currency or duration value at zero.
func NonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
