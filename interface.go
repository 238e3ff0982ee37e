// Package halotools models the connection between dark matter halos and the
// galaxies they host.  A Model maps a batch of primary halo property values
// (typically log10 of the virial mass) to mean central and satellite
// occupations and to NFW concentrations.  Assembly-biased models additionally
// condition on a binary halo type derived from a secondary halo property.
package halotools

// HaloType is the binary assembly-bias label of a halo.  It is derived from
// the secondary halo property by the halotype package and is recomputed on
// every classification rather than stored with the halo.
type HaloType int8

const (
	Type0 HaloType = 0
	Type1 HaloType = 1
)

// OccupationFunc maps a batch of primary halo property values to a batch of
// non-negative values (mean galaxy counts, destruction factors, etc.).
type OccupationFunc func(p []float64) []float64

// TypeFractionFunc maps a batch of primary halo property values to the
// probability that a halo at that value is of Type1.  Outputs must lie in
// [0,1].
type TypeFractionFunc func(p []float64) []float64

// Model is the capability set shared by every occupation model.  Every method
// takes a whole batch of halos and returns a whole batch.  The types argument
// may be nil and is ignored by models without assembly bias.
type Model interface {
	// MeanNcen returns the mean number of central galaxies per halo.
	MeanNcen(p []float64, types []HaloType) []float64
	// MeanNsat returns the mean number of satellite galaxies per halo.
	MeanNsat(p []float64, types []HaloType) []float64
	// MeanConcentration returns the NFW concentration used to place
	// satellites.
	MeanConcentration(p []float64, types []HaloType) []float64
	// PrimaryPropertyKey names the catalog column the model is a function
	// of.  Composite models must report the same key as their baseline.
	PrimaryPropertyKey() string
}

// Publisher is implemented by models that know which papers they are based
// on.
type Publisher interface {
	Publications() []string
}

// Publications returns the citations of m, or nil if m does not implement
// Publisher.
func Publications(m Model) []string {
	if pub, ok := m.(Publisher); ok {
		return pub.Publications()
	}
	return nil
}

// Parameterized is implemented by models that expose their validated
// parameter set.
type Parameterized interface {
	Params() Params
}

// Ones returns a batch of n Type1 labels.  Composite models pass it to their
// baseline when the baseline must be evaluated without type information.
func Ones(n int) []HaloType {
	types := make([]HaloType, n)
	for i := range types {
		types[i] = Type1
	}
	return types
}
