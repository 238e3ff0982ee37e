// Package quench assigns quenched fractions to central and satellite
// galaxies.  The vdB03 model (van den Bosch et al. 2003) makes quenching a
// function of host mass only, on top of an unmodified baseline occupation.
package quench

import (
	"fmt"

	"github.com/alexieleauthaud/halotools"
	"github.com/alexieleauthaud/halotools/poly"
)

// Quencher is implemented by models that predict the fraction of galaxies
// that are quenched.  Results lie in [0,1].
type Quencher interface {
	QuenchedFractionCentrals(p []float64, types []halotools.HaloType) []float64
	QuenchedFractionSatellites(p []float64, types []halotools.HaloType) []float64
}

// Parameter names.
const (
	Abscissa           = "quenching_abcissa"
	CentralOrdinates   = "central_quenching_ordinates"
	SatelliteOrdinates = "satellite_quenching_ordinates"
)

var Keys = []string{Abscissa, CentralOrdinates, SatelliteOrdinates}

const Publication = "arXiv:0210495v3"

// DefaultParams returns the default vdB03 control points.
func DefaultParams() halotools.Params {
	return halotools.NewParams(map[string]halotools.Value{
		Abscissa:           halotools.Vector(12, 15),
		CentralOrdinates:   halotools.Vector(0.25, 0.7),
		SatelliteOrdinates: halotools.Vector(0.25, 0.7),
	})
}

// Model is the vdB03 quenching model.  Occupations and concentrations are
// those of the baseline.
type Model struct {
	baseline halotools.Model
	params   halotools.Params

	cen halotools.OccupationFunc
	sat halotools.OccupationFunc
}

// New wraps baseline.  A zero params uses DefaultParams; otherwise params
// must carry exactly Keys.
func New(baseline halotools.Model, params halotools.Params) (*Model, error) {
	if baseline == nil {
		return nil, fmt.Errorf("%w: nil baseline model", halotools.ErrConfiguration)
	}
	if params.IsZero() {
		params = DefaultParams()
	} else if err := halotools.RequireKeys(params, Keys...); err != nil {
		return nil, err
	}

	x, err := params.Vector(Abscissa)
	if err != nil {
		return nil, err
	}
	ycen, err := params.Vector(CentralOrdinates)
	if err != nil {
		return nil, err
	}
	ysat, err := params.Vector(SatelliteOrdinates)
	if err != nil {
		return nil, err
	}

	m := &Model{baseline: baseline, params: params}
	if m.cen, err = poly.ClampedFunc(x, ycen, 0, 1); err != nil {
		return nil, fmt.Errorf("central quenching: %w", err)
	}
	if m.sat, err = poly.ClampedFunc(x, ysat, 0, 1); err != nil {
		return nil, fmt.Errorf("satellite quenching: %w", err)
	}
	return m, nil
}

func (m *Model) Baseline() halotools.Model { return m.baseline }

// Params returns the baseline parameters merged with the quenching
// parameters.
func (m *Model) Params() halotools.Params {
	if pm, ok := m.baseline.(halotools.Parameterized); ok {
		return halotools.Merge(pm.Params(), m.params)
	}
	return m.params
}

func (m *Model) PrimaryPropertyKey() string { return m.baseline.PrimaryPropertyKey() }

func (m *Model) Publications() []string {
	return append(halotools.Publications(m.baseline), Publication)
}

func (m *Model) MeanNcen(p []float64, types []halotools.HaloType) []float64 {
	return m.baseline.MeanNcen(p, types)
}

func (m *Model) MeanNsat(p []float64, types []halotools.HaloType) []float64 {
	return m.baseline.MeanNsat(p, types)
}

func (m *Model) MeanConcentration(p []float64, types []halotools.HaloType) []float64 {
	return m.baseline.MeanConcentration(p, types)
}

// QuenchedFractionCentrals ignores types.
func (m *Model) QuenchedFractionCentrals(p []float64, _ []halotools.HaloType) []float64 {
	return m.cen(p)
}

// QuenchedFractionSatellites ignores types.
func (m *Model) QuenchedFractionSatellites(p []float64, _ []halotools.HaloType) []float64 {
	return m.sat(p)
}
