// Package assembias builds assembly-biased occupation models on top of a
// baseline model.  The mean occupation of each halo is the baseline mean
// multiplied by a type-dependent destruction function (see package destruct),
// so that averaging over halo types recovers the baseline exactly.
package assembias

import (
	"fmt"

	"github.com/alexieleauthaud/halotools"
	"github.com/alexieleauthaud/halotools/destruct"
	"github.com/alexieleauthaud/halotools/halotype"
	"github.com/alexieleauthaud/halotools/poly"
)

// Parameter names.  The misspelling of abscissa is kept so that parameter
// files written for earlier releases still load.
const (
	Abscissa           = "assembias_abcissa"
	CentralOrdinates   = "central_assembias_ordinates"
	SatelliteOrdinates = "satellite_assembias_ordinates"
)

// Keys is the exact parameter key set of both model flavors.
var Keys = []string{Abscissa, CentralOrdinates, SatelliteOrdinates}

// DefaultSecondaryKey is the catalog column used to type halos unless
// WithSecondaryKeys says otherwise.
const DefaultSecondaryKey = "VMAX"

var (
	DefaultTypeSplitAbscissa  = []float64{12, 15}
	DefaultTypeSplitOrdinates = []float64{0.5, 0.5}
)

// DefaultPolynomialParams returns the default parameters of NewPolynomial.
func DefaultPolynomialParams() halotools.Params {
	return halotools.NewParams(map[string]halotools.Value{
		Abscissa:           halotools.Vector(12, 15),
		CentralOrdinates:   halotools.Vector(1.5, 1),
		SatelliteOrdinates: halotools.Vector(1.5, 1),
	})
}

// DefaultSatcenParams returns the default parameters of
// NewSatcenCorrelation.
func DefaultSatcenParams() halotools.Params {
	return halotools.NewParams(map[string]halotools.Value{
		Abscissa:           halotools.Vector(12, 13, 14, 15),
		CentralOrdinates:   halotools.Vector(1, 1, 1, 1),
		SatelliteOrdinates: halotools.Vector(1.5, 1.25, 0.5, 1),
	})
}

type settings struct {
	secondaryCen string
	secondarySat string
	splitX       []float64
	splitY       []float64
	binWidth     float64
}

// Option configures a polynomial assembly-bias model.
type Option func(*settings)

// WithSecondaryKeys sets the catalog columns used to type halos for the
// central and satellite populations.
func WithSecondaryKeys(centrals, satellites string) Option {
	return func(s *settings) {
		s.secondaryCen = centrals
		s.secondarySat = satellites
	}
}

// WithTypeSplit sets the control points of the polynomial giving the Type1
// fraction as a function of the primary property.
func WithTypeSplit(abscissa, ordinates []float64) Option {
	return func(s *settings) {
		s.splitX = append([]float64{}, abscissa...)
		s.splitY = append([]float64{}, ordinates...)
	}
}

// WithBinWidth sets the primary property bin width used when classifying
// halos.
func WithBinWidth(width float64) Option {
	return func(s *settings) { s.binWidth = width }
}

// Model is an assembly-biased occupation model.  It satisfies
// halotools.Model; MeanNcen and MeanNsat require one type per halo.
type Model struct {
	baseline halotools.Model
	params   halotools.Params

	centrals   *destruct.Engine
	satellites *destruct.Engine
	f1cen      halotools.TypeFractionFunc
	f1sat      halotools.TypeFractionFunc

	secondaryCen string
	secondarySat string
	binWidth     float64
	satcen       bool
}

func resolveParams(params, defaults halotools.Params) (halotools.Params, error) {
	if params.IsZero() {
		return defaults, nil
	}
	if err := halotools.RequireKeys(params, Keys...); err != nil {
		return halotools.Params{}, err
	}
	return params, nil
}

// unconstrained builds the requested Type1 destruction polynomials from the
// assembly-bias control points.
func unconstrained(params halotools.Params) (cen, sat halotools.OccupationFunc, err error) {
	x, err := params.Vector(Abscissa)
	if err != nil {
		return nil, nil, err
	}
	ycen, err := params.Vector(CentralOrdinates)
	if err != nil {
		return nil, nil, err
	}
	ysat, err := params.Vector(SatelliteOrdinates)
	if err != nil {
		return nil, nil, err
	}

	if cen, err = poly.Func(x, ycen); err != nil {
		return nil, nil, fmt.Errorf("central assembly bias: %w", err)
	}
	if sat, err = poly.Func(x, ysat); err != nil {
		return nil, nil, fmt.Errorf("satellite assembly bias: %w", err)
	}
	return cen, sat, nil
}

func (m *Model) baselineNcen(p []float64) []float64 {
	return m.baseline.MeanNcen(p, halotools.Ones(len(p)))
}

func (m *Model) wire(uncen, unsat halotools.OccupationFunc) {
	m.centrals = destruct.NewCentrals(uncen, m.f1cen, m.baselineNcen)
	m.satellites = destruct.NewSatellites(unsat, m.f1sat)
}

// NewPolynomial returns a model whose Type1 fractions and unconstrained
// destruction functions are polynomials in the primary halo property.  A zero
// params uses DefaultPolynomialParams; otherwise params must carry exactly
// Keys.
func NewPolynomial(baseline halotools.Model, params halotools.Params, opts ...Option) (*Model, error) {
	if baseline == nil {
		return nil, fmt.Errorf("%w: nil baseline model", halotools.ErrConfiguration)
	}
	params, err := resolveParams(params, DefaultPolynomialParams())
	if err != nil {
		return nil, err
	}

	s := &settings{
		secondaryCen: DefaultSecondaryKey,
		secondarySat: DefaultSecondaryKey,
		splitX:       DefaultTypeSplitAbscissa,
		splitY:       DefaultTypeSplitOrdinates,
		binWidth:     halotype.DefaultBinWidth,
	}
	for _, opt := range opts {
		opt(s)
	}

	split, err := poly.ClampedFunc(s.splitX, s.splitY, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("type split: %w", err)
	}
	uncen, unsat, err := unconstrained(params)
	if err != nil {
		return nil, err
	}

	m := &Model{
		baseline:     baseline,
		params:       params,
		f1cen:        halotools.TypeFractionFunc(split),
		f1sat:        halotools.TypeFractionFunc(split),
		secondaryCen: s.secondaryCen,
		secondarySat: s.secondarySat,
		binWidth:     s.binWidth,
	}
	m.wire(uncen, unsat)
	return m, nil
}

// NewSatcenCorrelation returns a model of central/satellite conformity: every
// halo is Type1 for centrals, while the satellite Type1 fraction is the
// baseline central occupation, i.e. satellite abundance is conditioned on
// the presence of a central.  A zero params uses DefaultSatcenParams.
func NewSatcenCorrelation(baseline halotools.Model, params halotools.Params) (*Model, error) {
	if baseline == nil {
		return nil, fmt.Errorf("%w: nil baseline model", halotools.ErrConfiguration)
	}
	params, err := resolveParams(params, DefaultSatcenParams())
	if err != nil {
		return nil, err
	}
	uncen, unsat, err := unconstrained(params)
	if err != nil {
		return nil, err
	}

	m := &Model{
		baseline: baseline,
		params:   params,
		f1cen:    halotype.Constant(1),
		binWidth: halotype.DefaultBinWidth,
		satcen:   true,
	}
	m.f1sat = m.baselineNcen
	m.wire(uncen, unsat)
	return m, nil
}

// Baseline returns the wrapped baseline model.
func (m *Model) Baseline() halotools.Model { return m.baseline }

// AssembiasParams returns the assembly-bias parameters only.
func (m *Model) AssembiasParams() halotools.Params { return m.params }

// Params returns the baseline parameters merged with the assembly-bias
// parameters; assembly-bias values win on a key collision.
func (m *Model) Params() halotools.Params {
	if pm, ok := m.baseline.(halotools.Parameterized); ok {
		return halotools.Merge(pm.Params(), m.params)
	}
	return m.params
}

func (m *Model) PrimaryPropertyKey() string { return m.baseline.PrimaryPropertyKey() }

func (m *Model) Publications() []string { return halotools.Publications(m.baseline) }

func (m *Model) SecondaryKeyCentrals() string { return m.secondaryCen }

func (m *Model) SecondaryKeySatellites() string { return m.secondarySat }

func (m *Model) BinWidth() float64 { return m.binWidth }

// SatellitesConditionedOnCentrals reports whether the satellite halo type
// is the presence of a central galaxy rather than a secondary-property rank.
func (m *Model) SatellitesConditionedOnCentrals() bool { return m.satcen }

// Type1FractionCentrals returns F1(p) for the central population.
func (m *Model) Type1FractionCentrals(p []float64) []float64 { return m.f1cen(p) }

// Type1FractionSatellites returns F1(p) for the satellite population.
func (m *Model) Type1FractionSatellites(p []float64) []float64 { return m.f1sat(p) }

// Centrals returns the destruction engine of the central population.
func (m *Model) Centrals() *destruct.Engine { return m.centrals }

// Satellites returns the destruction engine of the satellite population.
func (m *Model) Satellites() *destruct.Engine { return m.satellites }

// MeanNcenE returns the type-conditioned mean central occupation.
func (m *Model) MeanNcenE(p []float64, types []halotools.HaloType) ([]float64, error) {
	return m.centrals.Conditioned(p, types, m.baseline.MeanNcen(p, types))
}

// MeanNsatE returns the type-conditioned mean satellite occupation.
func (m *Model) MeanNsatE(p []float64, types []halotools.HaloType) ([]float64, error) {
	return m.satellites.Conditioned(p, types, m.baseline.MeanNsat(p, types))
}

// MeanNcen is like MeanNcenE but panics if types does not hold one entry per
// halo.
func (m *Model) MeanNcen(p []float64, types []halotools.HaloType) []float64 {
	n, err := m.MeanNcenE(p, types)
	if err != nil {
		panic(err)
	}
	return n
}

// MeanNsat is like MeanNsatE but panics if types does not hold one entry per
// halo.
func (m *Model) MeanNsat(p []float64, types []halotools.HaloType) []float64 {
	n, err := m.MeanNsatE(p, types)
	if err != nil {
		panic(err)
	}
	return n
}

// MeanConcentration delegates to the baseline: assembly bias changes
// abundances, never profiles.
func (m *Model) MeanConcentration(p []float64, types []halotools.HaloType) []float64 {
	return m.baseline.MeanConcentration(p, types)
}

// ClassifyCentrals types the halos of cat for the central population.  For a
// model conditioned on centrals every halo is Type1.
func (m *Model) ClassifyCentrals(cat halotools.Catalog) ([]halotools.HaloType, error) {
	if m.satcen {
		n, err := cat.Len()
		if err != nil {
			return nil, err
		}
		return halotools.Ones(n), nil
	}
	return halotype.ClassifyCatalog(cat, m.PrimaryPropertyKey(), m.secondaryCen, m.f1cen, m.binWidth)
}

// ClassifySatellites types the halos of cat for the satellite population.
// Models conditioned on centrals have no secondary property to rank by; their
// satellite types come from the realized centrals (see CentralTypes).
func (m *Model) ClassifySatellites(cat halotools.Catalog) ([]halotools.HaloType, error) {
	if m.satcen {
		return nil, fmt.Errorf("%w: satellite types follow realized centrals", halotools.ErrConfiguration)
	}
	return halotype.ClassifyCatalog(cat, m.PrimaryPropertyKey(), m.secondarySat, m.f1sat, m.binWidth)
}

// CentralTypes returns satellite halo types from realized central counts:
// halos hosting a central are Type1, the rest Type0.
func CentralTypes(ncen []int) []halotools.HaloType {
	types := make([]halotools.HaloType, len(ncen))
	for i, n := range ncen {
		if n > 0 {
			types[i] = halotools.Type1
		}
	}
	return types
}
