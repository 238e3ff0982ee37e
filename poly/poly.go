// Package poly fits the unique minimum-degree polynomial through a set of
// control points.  Occupation models use it to build smooth, flexible
// functions of the primary halo property from a handful of (abscissa,
// ordinate) pairs.
package poly

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexieleauthaud/halotools"
	"gonum.org/v1/gonum/mat"
)

// Coeffs holds polynomial coefficients in order of increasing power, i.e.
// c[0] + c[1]*x + c[2]*x^2 + ...
type Coeffs []float64

// Solve returns the N coefficients of the polynomial of degree N-1 passing
// through every (abscissa[i], ordinates[i]) pair.  It solves the Vandermonde
// system
//
//    | 1  x0  x0^2 ... |   | c0 |   | y0 |
//    | 1  x1  x1^2 ... | * | c1 | = | y1 |
//    | ...             |   | .. |   | .. |
//
// Duplicate abscissa values make the system singular and are reported with
// halotools.ErrSingularSystem.
func Solve(abscissa, ordinates []float64) (Coeffs, error) {
	n := len(abscissa)
	if n == 0 || len(ordinates) != n {
		return nil, fmt.Errorf("%w: %v abscissa, %v ordinates", halotools.ErrShape, n, len(ordinates))
	}

	seen := make(map[float64]bool, n)
	for _, x := range abscissa {
		if seen[x] {
			return nil, fmt.Errorf("%w: duplicate abscissa %v", halotools.ErrSingularSystem, x)
		}
		seen[x] = true
	}

	vander := mat.NewDense(n, n, nil)
	for i, x := range abscissa {
		for j := 0; j < n; j++ {
			vander.Set(i, j, math.Pow(x, float64(j)))
		}
	}
	y := mat.NewVecDense(n, append([]float64{}, ordinates...))

	c := mat.NewVecDense(n, nil)
	if err := c.SolveVec(vander, y); err != nil {
		// A finite condition number only warns that the solution may be
		// inaccurate; the result is still usable.
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, fmt.Errorf("%w: %v", halotools.ErrSingularSystem, err)
		}
	}
	return Coeffs(c.RawVector().Data), nil
}

// Degree returns the degree of the polynomial.
func (c Coeffs) Degree() int { return len(c) - 1 }

// Eval evaluates the polynomial at x.
func (c Coeffs) Eval(x float64) float64 {
	y := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		y = y*x + c[i]
	}
	return y
}

// EvalBatch evaluates the polynomial at every value of xs.
func (c Coeffs) EvalBatch(xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = c.Eval(x)
	}
	return ys
}

// Model fits the polynomial through the control points and evaluates it at
// every value of p.  The fit is recomputed on each call.
func Model(abscissa, ordinates, p []float64) ([]float64, error) {
	c, err := Solve(abscissa, ordinates)
	if err != nil {
		return nil, err
	}
	return c.EvalBatch(p), nil
}

// Clamped is like Model but slides the result into [lower, upper].
func Clamped(abscissa, ordinates, p []float64, lower, upper float64) ([]float64, error) {
	ys, err := Model(abscissa, ordinates, p)
	if err != nil {
		return nil, err
	}
	return halotools.Clamp(ys, lower, upper), nil
}

// Func returns an OccupationFunc evaluating the polynomial through the given
// control points.  The fit happens once, here, so that a degenerate set of
// control points is reported at construction rather than at evaluation.
func Func(abscissa, ordinates []float64) (halotools.OccupationFunc, error) {
	c, err := Solve(abscissa, ordinates)
	if err != nil {
		return nil, err
	}
	return c.EvalBatch, nil
}

// ClampedFunc is like Func but slides the result into [lower, upper].
func ClampedFunc(abscissa, ordinates []float64, lower, upper float64) (halotools.OccupationFunc, error) {
	c, err := Solve(abscissa, ordinates)
	if err != nil {
		return nil, err
	}
	return func(p []float64) []float64 {
		return halotools.Clamp(c.EvalBatch(p), lower, upper)
	}, nil
}
