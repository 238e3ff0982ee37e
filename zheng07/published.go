package zheng07

import (
	"fmt"

	"github.com/alexieleauthaud/halotools"
)

// DefaultThreshold is used when no luminosity threshold is given.
const DefaultThreshold = -19.5

// Table 1 of Zheng et al. 2007, ordered by luminosity threshold from -18 to
// -22 in steps of 0.5.
var (
	Thresholds = []float64{-18, -18.5, -19, -19.5, -20, -20.5, -21, -21.5, -22}

	tblLogMmin = []float64{11.35, 11.46, 11.6, 11.75, 12.02, 12.3, 12.79, 13.38, 14.22}
	tblSigma   = []float64{0.25, 0.24, 0.26, 0.28, 0.26, 0.21, 0.39, 0.51, 0.77}
	tblLogM0   = []float64{11.2, 10.59, 11.49, 11.69, 11.38, 11.84, 11.92, 13.94, 14.0}
	tblLogM1   = []float64{12.4, 12.68, 12.83, 13.01, 13.31, 13.58, 13.94, 13.91, 14.69}
	tblAlpha   = []float64{0.83, 0.97, 1.02, 1.06, 1.06, 1.12, 1.15, 1.04, 0.87}
)

// Published returns the published best-fit parameters for the given
// luminosity threshold.  Thresholds other than those in Thresholds fail with
// halotools.ErrConfiguration.
func Published(threshold float64) (halotools.Params, error) {
	for i, th := range Thresholds {
		if th != threshold {
			continue
		}
		return halotools.NewParams(map[string]halotools.Value{
			LogMminCen: halotools.Scalar(tblLogMmin[i]),
			SigmaLogM:  halotools.Scalar(tblSigma[i]),
			LogM0Sat:   halotools.Scalar(tblLogM0[i]),
			LogM1Sat:   halotools.Scalar(tblLogM1[i]),
			AlphaSat:   halotools.Scalar(tblAlpha[i]),
			Fconc:      halotools.Scalar(1.0),
		}), nil
	}
	return halotools.Params{}, fmt.Errorf("%w: luminosity threshold %v does not match any of %v",
		halotools.ErrConfiguration, threshold, Thresholds)
}

// Result is the outcome of a parameter lookup that may fall back to a
// default threshold.
type Result struct {
	Params      halotools.Params
	Threshold   float64
	UsedDefault bool
}

// PublishedDefault is like Published but accepts a nil threshold, in which
// case DefaultThreshold is used and UsedDefault is set so callers can warn.
func PublishedDefault(threshold *float64) (Result, error) {
	r := Result{Threshold: DefaultThreshold, UsedDefault: true}
	if threshold != nil {
		r.Threshold, r.UsedDefault = *threshold, false
	}

	params, err := Published(r.Threshold)
	if err != nil {
		return Result{}, err
	}
	r.Params = params
	return r, nil
}
