package nn

import "math"

// sigmoidClamp bounds the exponent argument. Past 36, 1+e^-x rounds to 1 in
// float64, so clamping loses nothing and keeps the result strictly inside (0, 1).
const sigmoidClamp = 36.0

// Sigmoid is the logistic activation 1 / (1 + e^-x).
// Both branches only ever exponentiate a non-positive value, so large inputs
// saturate instead of overflowing.
func Sigmoid(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	x = math.Max(-sigmoidClamp, math.Min(x, sigmoidClamp))
	if x >= 0 {
		return 1.0 / (1.0 + math.Exp(-x))
	}
	z := math.Exp(x)
	return z / (1.0 + z)
}
