// Package zheng07 implements the baseline HOD of Zheng et al. 2007
// (arXiv:0703457): an erf step for centrals and a truncated power law for
// satellites, both functions of log10 virial mass only.
package zheng07

import (
	"fmt"
	"math"

	"github.com/alexieleauthaud/halotools"
	"github.com/alexieleauthaud/halotools/profile"
)

// Parameter names.
const (
	LogMminCen = "logMmin_cen"
	SigmaLogM  = "sigma_logM"
	LogM0Sat   = "logM0_sat"
	LogM1Sat   = "logM1_sat"
	AlphaSat   = "alpha_sat"
	Fconc      = "fconc"
)

// Keys is the exact parameter key set required by the model.
var Keys = []string{LogMminCen, SigmaLogM, LogM0Sat, LogM1Sat, AlphaSat, Fconc}

// PrimaryKey is the catalog column the model is a function of.
const PrimaryKey = "MVIR"

const Publication = "arXiv:0703457"

// Model is the Zheng07 baseline occupation model.  It ignores halo types.
type Model struct {
	params halotools.Params

	logMmin float64
	sigma   float64
	m0      float64
	m1      float64
	alpha   float64
	fconc   float64
}

// New validates params and returns the model.  params must carry exactly the
// keys in Keys, each a scalar.
func New(params halotools.Params) (*Model, error) {
	if err := halotools.RequireKeys(params, Keys...); err != nil {
		return nil, err
	}

	vals := make(map[string]float64, len(Keys))
	for _, k := range Keys {
		v, err := params.Scalar(k)
		if err != nil {
			return nil, err
		}
		vals[k] = v
	}
	if vals[SigmaLogM] <= 0 {
		return nil, fmt.Errorf("%w: %v must be positive, got %v", halotools.ErrConfiguration, SigmaLogM, vals[SigmaLogM])
	}

	return &Model{
		params:  params,
		logMmin: vals[LogMminCen],
		sigma:   vals[SigmaLogM],
		m0:      math.Pow(10, vals[LogM0Sat]),
		m1:      math.Pow(10, vals[LogM1Sat]),
		alpha:   vals[AlphaSat],
		fconc:   vals[Fconc],
	}, nil
}

// NewFromThreshold returns the model with the published parameters for the
// given r-band luminosity threshold.
func NewFromThreshold(threshold float64) (*Model, error) {
	params, err := Published(threshold)
	if err != nil {
		return nil, err
	}
	return New(params)
}

func (m *Model) Params() halotools.Params { return m.params }

func (m *Model) PrimaryPropertyKey() string { return PrimaryKey }

func (m *Model) Publications() []string { return []string{Publication} }

// MeanNcen returns 0.5*(1 + erf((logM - logMmin_cen)/sigma_logM)).
func (m *Model) MeanNcen(logM []float64, _ []halotools.HaloType) []float64 {
	ncen := make([]float64, len(logM))
	for i, lm := range logM {
		ncen[i] = 0.5 * (1 + math.Erf((lm-m.logMmin)/m.sigma))
	}
	return ncen
}

// MeanNsat returns <Ncen>*((M - M0)/M1)^alpha_sat for halos with M > M0 and
// zero otherwise.  The cutoff at M0 is a hard floor.
func (m *Model) MeanNsat(logM []float64, types []halotools.HaloType) []float64 {
	ncen := m.MeanNcen(logM, types)
	nsat := make([]float64, len(logM))
	for i, lm := range logM {
		mass := math.Pow(10, lm)
		if mass-m.m0 > 0 {
			nsat[i] = ncen[i] * math.Pow((mass-m.m0)/m.m1, m.alpha)
		}
	}
	return nsat
}

// MeanConcentration returns the Klypin et al. 2011 concentration-mass
// relation.
func (m *Model) MeanConcentration(logM []float64, _ []halotools.HaloType) []float64 {
	return profile.Concentration(logM)
}

// SatelliteConcentrationFactor returns fconc, the multiplicative factor
// applied to host concentrations when placing satellites.  It is not a
// parameter of Zheng et al. 2007.
func (m *Model) SatelliteConcentrationFactor() float64 { return m.fconc }
