package analysis

import "math"

const twoPi = 2 * math.Pi

// NormalizeAngle maps theta into [-π, π) as ((θ + π) mod 2π) - π, with the
// modulus taken towards negative infinity. NaN and ±Inf map to NaN.
func NormalizeAngle(theta float64) float64 {
	r := math.Mod(theta+math.Pi, twoPi)
	if r < 0 {
		r += twoPi
	}
	// r can round up to exactly 2π when theta+π is a tiny negative number.
	if r >= twoPi {
		r = 0
	}
	return r - math.Pi
}

// NormalizeAngles returns a normalized copy of thetas.
func NormalizeAngles(thetas []float64) []float64 {
	out := make([]float64, len(thetas))
	for i, th := range thetas {
		out[i] = NormalizeAngle(th)
	}
	return out
}
