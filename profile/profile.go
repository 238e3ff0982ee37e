// Package profile holds the NFW radial profile helpers used to place
// satellite galaxies inside their host halos.
package profile

import "math"

// Klypin et al. 2011 (arXiv:1002.3660v4, eqn 12) best-fit values for Bolshoi
// host halos at z=0.
const (
	ConcentrationNorm  = 9.6
	ConcentrationPivot = 1e12
	ConcentrationSlope = -0.075
)

// Concentration returns c(M) = c0*(M/Mpiv)^alpha for each log10 mass in logM.
func Concentration(logM []float64) []float64 {
	cs := make([]float64, len(logM))
	for i, lm := range logM {
		cs[i] = ConcentrationNorm * math.Pow(math.Pow(10, lm)/ConcentrationPivot, ConcentrationSlope)
	}
	return cs
}

// CumulativeNFW returns the fraction of an NFW halo's mass with concentration
// c enclosed within scaled radius x = r/Rvir.
func CumulativeNFW(x, c float64) float64 {
	norm := math.Log(1+c) - c/(1+c)
	return (math.Log(1+x*c) - x*c/(1+x*c)) / norm
}

// InverseCumulativeNFW returns the scaled radius x in [0,1] enclosing mass
// fraction u of an NFW halo with concentration c.  u is clamped to [0,1].
func InverseCumulativeNFW(u, c float64) float64 {
	const tol = 1e-10
	if u <= 0 {
		return 0
	} else if u >= 1 {
		return 1
	}

	// CumulativeNFW is monotonic in x, so bisect.
	lo, hi := 0.0, 1.0
	for hi-lo > tol {
		mid := (lo + hi) / 2
		if CumulativeNFW(mid, c) < u {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
