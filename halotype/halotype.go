// Package halotype splits halos into two assembly-bias types.  Halos are
// binned by their primary property; within each bin they are rank-ordered by
// a secondary property and the lowest-ranked fraction becomes Type0 so that
// each bin reproduces a target Type1 fraction.
package halotype

import (
	"fmt"
	"math"

	"github.com/alexieleauthaud/halotools"
	"github.com/petar/GoLLRB/llrb"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultBinWidth is the primary property bin width in dex of mass.
	// Primary properties that are not log-mass-like need a retuned width.
	DefaultBinWidth = 0.1
	// DefaultBinMaxEpsilon pads the upper bin edge so that the most extreme
	// halo falls inside the last bin.
	DefaultBinMaxEpsilon = 1e-5
)

type ranked struct {
	secondary float64
	index     int
}

// Less orders by secondary value, then by catalog index so ties are broken
// deterministically.  NaN sorts above every number.
func (r ranked) Less(than llrb.Item) bool {
	o := than.(ranked)
	rnan, onan := math.IsNaN(r.secondary), math.IsNaN(o.secondary)
	switch {
	case rnan && !onan:
		return false
	case !rnan && onan:
		return true
	case !rnan && r.secondary != o.secondary:
		return r.secondary < o.secondary
	}
	return r.index < o.index
}

// Edges returns the bin edges used to classify halos with the given primary
// property values: nbins = max(2, round((max+eps-min)/width)) evenly spaced
// points spanning [min, max+eps], giving nbins-1 bins.
func Edges(primary []float64, width float64) ([]float64, error) {
	if !(width > 0) {
		return nil, fmt.Errorf("%w: bin width must be positive, got %v", halotools.ErrConfiguration, width)
	} else if len(primary) == 0 {
		return nil, fmt.Errorf("%w: no halos to bin", halotools.ErrShape)
	}

	lo := floats.Min(primary)
	hi := floats.Max(primary) + DefaultBinMaxEpsilon
	nedges := int(math.Round((hi - lo) / width))
	if nedges < 2 {
		nedges = 2
	}
	return floats.Span(make([]float64, nedges), lo, hi), nil
}

// Midpoints returns the centers of the bins defined by edges.
func Midpoints(edges []float64) []float64 {
	mids := make([]float64, len(edges)-1)
	for i := range mids {
		mids[i] = edges[i] + (edges[i+1]-edges[i])/2
	}
	return mids
}

// SplitIndex returns the number of lowest-ranked halos in a bin of n members
// that become Type0 when the target Type1 fraction is f1.
func SplitIndex(n int, f1 float64) int {
	k := int(math.Round(float64(n) * (1 - f1)))
	if k < 0 {
		return 0
	} else if k > n {
		return n
	}
	return k
}

// Classify assigns every halo a type.  All halos start as Type1; in each bin
// the round((1-f1)*n) halos with the lowest secondary values are then set to
// Type0, where f1 is type1Fraction evaluated at the bin midpoint and n is the
// bin population.
func Classify(primary, secondary []float64, type1Fraction halotools.TypeFractionFunc, width float64) ([]halotools.HaloType, error) {
	if err := halotools.CheckLen(len(primary), secondary); err != nil {
		return nil, fmt.Errorf("secondary property: %w", err)
	}
	types := halotools.Ones(len(primary))
	if len(primary) == 0 {
		return types, nil
	}

	edges, err := Edges(primary, width)
	if err != nil {
		return nil, err
	}
	mids := Midpoints(edges)
	f1 := type1Fraction(mids)
	if err := halotools.CheckLen(len(mids), f1); err != nil {
		return nil, fmt.Errorf("type-1 fraction at bin midpoints: %w", err)
	}

	bins := make([]*llrb.LLRB, len(mids))
	last := edges[len(edges)-1]
	for i, p := range primary {
		b := floats.Within(edges, p)
		if b == -1 {
			if math.IsNaN(p) {
				continue // unbinnable; stays Type1
			} else if p >= last {
				// the epsilon pad can vanish in rounding for large values
				b = len(bins) - 1
			} else {
				b = 0
			}
		}
		if bins[b] == nil {
			bins[b] = llrb.New()
		}
		bins[b].InsertNoReplace(ranked{secondary: secondary[i], index: i})
	}

	for b, tree := range bins {
		if tree == nil {
			continue
		} else if math.IsNaN(f1[b]) {
			return nil, fmt.Errorf("%w: type-1 fraction is NaN at %v", halotools.ErrConfiguration, mids[b])
		}
		k := SplitIndex(tree.Len(), f1[b])
		for j := 0; j < k; j++ {
			r := tree.DeleteMin().(ranked)
			types[r.index] = halotools.Type0
		}
	}
	return types, nil
}

// ClassifyCatalog classifies the halos of cat using the named primary and
// secondary columns.
func ClassifyCatalog(cat halotools.Catalog, primaryKey, secondaryKey string, type1Fraction halotools.TypeFractionFunc, width float64) ([]halotools.HaloType, error) {
	if _, err := cat.Len(); err != nil {
		return nil, err
	}
	primary, err := cat.Column(primaryKey)
	if err != nil {
		return nil, err
	}
	secondary, err := cat.Column(secondaryKey)
	if err != nil {
		return nil, err
	}
	return Classify(primary, secondary, type1Fraction, width)
}

// Constant returns a TypeFractionFunc that is f1 everywhere.
func Constant(f1 float64) halotools.TypeFractionFunc {
	return func(p []float64) []float64 {
		out := make([]float64, len(p))
		for i := range out {
			out[i] = f1
		}
		return out
	}
}
