package halotools

import (
	"fmt"
	"math"
)

// Clamp slides every value of xs into [lower, upper] in place and returns xs.
// NaN values are left untouched.
func Clamp(xs []float64, lower, upper float64) []float64 {
	for i, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		xs[i] = math.Min(upper, math.Max(lower, x))
	}
	return xs
}

// CheckLen returns an error wrapping ErrShape unless every slice in xs has
// length n.
func CheckLen(n int, xs ...[]float64) error {
	for _, x := range xs {
		if len(x) != n {
			return fmt.Errorf("%w: got %v values for %v halos", ErrShape, len(x), n)
		}
	}
	return nil
}
