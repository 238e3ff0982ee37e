// Package destruct computes destruction functions: per-type multiplicative
// modulations of a baseline occupation that introduce assembly bias (or
// central/satellite conformity) while preserving the unconditioned mean.
//
// With F1(p) the probability that a halo is of Type1 and F0 = 1 - F1, the
// Type1 and Type0 destruction functions d1 and d0 always satisfy
//
//    F1(p)*d1(p) + F0(p)*d0(p) = 1
//
// so the type-conditioned occupations <N|type> = d(p,type)*<N>(p) average
// back to the baseline <N>(p).
package destruct

import (
	"fmt"

	"github.com/alexieleauthaud/halotools"
)

// Engine computes the constrained destruction function of one galaxy
// population (centrals or satellites).
type Engine struct {
	// Unconstrained is the requested Type1 destruction before any clamping.
	// It may return any bounded real value.
	Unconstrained halotools.OccupationFunc
	// Type1Fraction is F1(p).
	Type1Fraction halotools.TypeFractionFunc
	// Baseline is the unconditioned mean occupation.  It is only consulted
	// when CapByBaseline is set.
	Baseline halotools.OccupationFunc
	// CapByBaseline additionally caps d1 at 1/<N>(p).  Centrals set it so a
	// conditioned mean can never exceed one central per halo; satellites
	// have no such ceiling.
	CapByBaseline bool
}

// NewCentrals returns an engine for a central population with the given
// baseline mean occupation.
func NewCentrals(unconstrained halotools.OccupationFunc, f1 halotools.TypeFractionFunc, baseline halotools.OccupationFunc) *Engine {
	return &Engine{Unconstrained: unconstrained, Type1Fraction: f1, Baseline: baseline, CapByBaseline: true}
}

// NewSatellites returns an engine for a satellite population.
func NewSatellites(unconstrained halotools.OccupationFunc, f1 halotools.TypeFractionFunc) *Engine {
	return &Engine{Unconstrained: unconstrained, Type1Fraction: f1}
}

func (e *Engine) fraction(p []float64) ([]float64, error) {
	f1 := e.Type1Fraction(p)
	if err := halotools.CheckLen(len(p), f1); err != nil {
		return nil, fmt.Errorf("type-1 fraction: %w", err)
	}
	return append([]float64{}, f1...), nil
}

func (e *Engine) baseline(p []float64) ([]float64, error) {
	n := e.Baseline(p)
	if err := halotools.CheckLen(len(p), n); err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	return n, nil
}

// TypeFraction returns, for each halo, the probability of having its own
// type: F1(p) for Type1 halos and 1-F1(p) for Type0 halos.
func (e *Engine) TypeFraction(p []float64, types []halotools.HaloType) ([]float64, error) {
	if len(types) != len(p) {
		return nil, fmt.Errorf("%w: %v halos and %v types", halotools.ErrShape, len(p), len(types))
	}
	f, err := e.fraction(p)
	if err != nil {
		return nil, err
	}
	for i, typ := range types {
		if typ == halotools.Type0 {
			f[i] = 1 - f[i]
		}
	}
	return f, nil
}

// MaxDestruction returns the ceiling on the Type1 destruction function:
// 1/F1(p), replaced by 1/<N>(p) wherever that is smaller when CapByBaseline
// is set.  A bound whose denominator is zero contributes zero.
func (e *Engine) MaxDestruction(p []float64) ([]float64, error) {
	f1, err := e.fraction(p)
	if err != nil {
		return nil, err
	}
	return e.maxDestruction(p, f1)
}

func (e *Engine) maxDestruction(p, f1 []float64) ([]float64, error) {
	ceil := make([]float64, len(p))
	for i, f := range f1 {
		if f > 0 {
			ceil[i] = 1 / f
		}
	}
	if !e.CapByBaseline {
		return ceil, nil
	}

	n, err := e.baseline(p)
	if err != nil {
		return nil, err
	}
	for i, ni := range n {
		capn := 0.0
		if ni > 0 {
			capn = 1 / ni
		}
		if capn < ceil[i] {
			ceil[i] = capn
		}
	}
	return ceil, nil
}

// MinDestruction returns the smallest Type1 destruction that keeps the Type0
// conditioned central mean at or below one:
// (1 - F0(p)/<N>(p))/F1(p), floored at zero.  It is zero wherever F1 or <N>
// vanish, and zero everywhere for engines without CapByBaseline.
func (e *Engine) MinDestruction(p []float64) ([]float64, error) {
	floor := make([]float64, len(p))
	if !e.CapByBaseline {
		return floor, nil
	}
	f1, err := e.fraction(p)
	if err != nil {
		return nil, err
	}
	n, err := e.baseline(p)
	if err != nil {
		return nil, err
	}
	for i := range floor {
		if f1[i] > 0 && n[i] > 0 {
			floor[i] = (1 - (1-f1[i])/n[i]) / f1[i]
		}
		if floor[i] < 0 {
			floor[i] = 0
		}
	}
	return floor, nil
}

// Type1 returns the Type1 destruction function for every halo, i.e. as if
// every halo were of Type1.  The unconstrained value is floored at zero,
// capped at MaxDestruction and finally overridden to exactly one wherever
// F1(p) == 1.
func (e *Engine) Type1(p []float64) ([]float64, error) {
	f1, err := e.fraction(p)
	if err != nil {
		return nil, err
	}
	return e.type1(p, f1)
}

func (e *Engine) type1(p, f1 []float64) ([]float64, error) {
	d := append([]float64{}, e.Unconstrained(p)...)
	if err := halotools.CheckLen(len(p), d); err != nil {
		return nil, fmt.Errorf("unconstrained destruction: %w", err)
	}
	ceil, err := e.maxDestruction(p, f1)
	if err != nil {
		return nil, err
	}

	for i := range d {
		if d[i] < 0 {
			d[i] = 0
		}
		if d[i] > ceil[i] {
			d[i] = ceil[i]
		}
		// every halo here is Type1, so Type1 must reproduce the baseline
		if f1[i] == 1 {
			d[i] = 1
		}
	}
	return d, nil
}

// Type0 derives the Type0 destruction function from the Type1 values d1 by
// the conservation law: (1 - d1*F1)/F0.  Where F0 == 0 no Type0 halos exist
// and the result is zero.  d1 must already be clamped by Type1.
func (e *Engine) Type0(p, d1 []float64) ([]float64, error) {
	if err := halotools.CheckLen(len(p), d1); err != nil {
		return nil, fmt.Errorf("type-1 destruction: %w", err)
	}
	f1, err := e.fraction(p)
	if err != nil {
		return nil, err
	}
	return type0(f1, d1), nil
}

func type0(f1, d1 []float64) []float64 {
	d0 := make([]float64, len(f1))
	for i := range d0 {
		if f0 := 1 - f1[i]; f0 > 0 {
			d0[i] = (1 - d1[i]*f1[i]) / f0
		}
		// d1 <= 1/F1 up to rounding
		if d0[i] < 0 {
			d0[i] = 0
		}
	}
	return d0
}

// Destruction returns the destruction function of each halo given its type.
// F1 and the baseline are each evaluated once per call.
func (e *Engine) Destruction(p []float64, types []halotools.HaloType) ([]float64, error) {
	if len(types) != len(p) {
		return nil, fmt.Errorf("%w: %v halos and %v types", halotools.ErrShape, len(p), len(types))
	}

	f1, err := e.fraction(p)
	if err != nil {
		return nil, err
	}
	d, err := e.type1(p, f1)
	if err != nil {
		return nil, err
	}
	d0 := type0(f1, d)
	for i, typ := range types {
		if typ == halotools.Type0 {
			d[i] = d0[i]
		}
	}
	return d, nil
}

// Conditioned returns the type-conditioned mean occupation
// destruction(p, type)*baseline.
func (e *Engine) Conditioned(p []float64, types []halotools.HaloType, baseline []float64) ([]float64, error) {
	if err := halotools.CheckLen(len(p), baseline); err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	d, err := e.Destruction(p, types)
	if err != nil {
		return nil, err
	}
	for i := range d {
		d[i] *= baseline[i]
	}
	return d, nil
}
