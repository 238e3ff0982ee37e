// Package mock draws a galaxy population from an occupation model.  Central
// counts are Bernoulli draws, satellite counts are Poisson draws, and
// satellites are placed at NFW-distributed scaled radii inside their hosts.
package mock

import (
	"fmt"
	"math/rand/v2"

	"github.com/alexieleauthaud/halotools"
	"github.com/alexieleauthaud/halotools/assembias"
	"github.com/alexieleauthaud/halotools/profile"
	"github.com/alexieleauthaud/halotools/quench"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mathext/prng"
	"gonum.org/v1/gonum/stat/distuv"
)

const DefaultSeed uint64 = 5489

// Classifier is implemented by assembly-biased models that can type the
// halos of a catalog for each galaxy population.
type Classifier interface {
	ClassifyCentrals(cat halotools.Catalog) ([]halotools.HaloType, error)
	ClassifySatellites(cat halotools.Catalog) ([]halotools.HaloType, error)
}

type conditioned interface {
	SatellitesConditionedOnCentrals() bool
}

type concentrationFactor interface {
	SatelliteConcentrationFactor() float64
}

type baseliner interface {
	Baseline() halotools.Model
}

type unwrapper interface {
	Unwrap() halotools.Model
}

// Galaxies is a realized mock.  The per-galaxy slices are parallel.
type Galaxies struct {
	// per halo
	NCen []int
	NSat []int

	// per galaxy
	Halo     []int
	Central  []bool
	Radius   []float64
	Quenched []bool
}

// Len returns the number of galaxies.
func (g *Galaxies) Len() int { return len(g.Halo) }

type settings struct {
	src      rand.Source
	cenTypes []halotools.HaloType
	satTypes []halotools.HaloType
	logger   *zap.Logger
}

type Option func(*settings)

// WithSeed draws from an MT19937 stream seeded with seed.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		mt := prng.NewMT19937()
		mt.Seed(seed)
		s.src = mt
	}
}

// WithSource draws from src.
func WithSource(src rand.Source) Option {
	return func(s *settings) { s.src = src }
}

// WithTypes uses the given halo types instead of classifying the catalog.
func WithTypes(centrals, satellites []halotools.HaloType) Option {
	return func(s *settings) {
		s.cenTypes = centrals
		s.satTypes = satellites
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// find walks the decorator and baseline chain of m and returns the first
// model for which ok holds.
func find(m halotools.Model, ok func(halotools.Model) bool) halotools.Model {
	for m != nil {
		if ok(m) {
			return m
		}
		switch w := m.(type) {
		case unwrapper:
			m = w.Unwrap()
		case baseliner:
			m = w.Baseline()
		default:
			return nil
		}
	}
	return nil
}

func bernoulli(src rand.Source, p float64) bool {
	return distuv.Bernoulli{P: p, Src: src}.Rand() == 1
}

func poisson(src rand.Source, lambda float64) int {
	if !(lambda > 0) {
		return 0
	}
	return int(distuv.Poisson{Lambda: lambda, Src: src}.Rand())
}

// Populate draws a galaxy population for the halos in cat.  Halo types come
// from WithTypes if given, otherwise from the model when it is a Classifier.
// Satellites of models conditioned on centrals are typed by the realized
// centrals.  Quenched flags are drawn only when the model (or one it wraps)
// is a quench.Quencher.
func Populate(model halotools.Model, cat halotools.Catalog, opts ...Option) (*Galaxies, error) {
	s := &settings{logger: zap.NewNop()}
	WithSeed(DefaultSeed)(s)
	for _, opt := range opts {
		opt(s)
	}

	n, err := cat.Len()
	if err != nil {
		return nil, err
	}
	p, err := cat.Primary(model)
	if err != nil {
		return nil, err
	}

	satcen := false
	if c, ok := find(model, func(m halotools.Model) bool { _, ok := m.(conditioned); return ok }).(conditioned); ok {
		satcen = c.SatellitesConditionedOnCentrals()
	}
	cls, isClassifier := find(model, func(m halotools.Model) bool { _, ok := m.(Classifier); return ok }).(Classifier)

	cenTypes, satTypes := s.cenTypes, s.satTypes
	if cenTypes == nil {
		if isClassifier {
			if cenTypes, err = cls.ClassifyCentrals(cat); err != nil {
				return nil, err
			}
		} else {
			cenTypes = halotools.Ones(n)
		}
	}
	if len(cenTypes) != n {
		return nil, fmt.Errorf("%w: %v halos and %v central types", halotools.ErrShape, n, len(cenTypes))
	}

	g := &Galaxies{NCen: make([]int, n), NSat: make([]int, n)}
	ncen := model.MeanNcen(p, cenTypes)
	for i := range g.NCen {
		if bernoulli(s.src, ncen[i]) {
			g.NCen[i] = 1
		}
	}

	if satTypes == nil {
		switch {
		case satcen:
			satTypes = assembias.CentralTypes(g.NCen)
		case isClassifier:
			if satTypes, err = cls.ClassifySatellites(cat); err != nil {
				return nil, err
			}
		default:
			satTypes = halotools.Ones(n)
		}
	}
	if len(satTypes) != n {
		return nil, fmt.Errorf("%w: %v halos and %v satellite types", halotools.ErrShape, n, len(satTypes))
	}

	nsat := model.MeanNsat(p, satTypes)
	conc := model.MeanConcentration(p, satTypes)
	fconc := 1.0
	if cf, ok := find(model, func(m halotools.Model) bool { _, ok := m.(concentrationFactor); return ok }).(concentrationFactor); ok {
		fconc = cf.SatelliteConcentrationFactor()
	}

	var fqcen, fqsat []float64
	q, quenched := find(model, func(m halotools.Model) bool { _, ok := m.(quench.Quencher); return ok }).(quench.Quencher)
	if quenched {
		fqcen = q.QuenchedFractionCentrals(p, cenTypes)
		fqsat = q.QuenchedFractionSatellites(p, satTypes)
	}

	radius := distuv.Uniform{Min: 0, Max: 1, Src: s.src}
	for i := 0; i < n; i++ {
		if g.NCen[i] > 0 {
			g.Halo = append(g.Halo, i)
			g.Central = append(g.Central, true)
			g.Radius = append(g.Radius, 0)
			g.Quenched = append(g.Quenched, quenched && bernoulli(s.src, fqcen[i]))
		}

		g.NSat[i] = poisson(s.src, nsat[i])
		for j := 0; j < g.NSat[i]; j++ {
			g.Halo = append(g.Halo, i)
			g.Central = append(g.Central, false)
			g.Radius = append(g.Radius, profile.InverseCumulativeNFW(radius.Rand(), conc[i]*fconc))
			g.Quenched = append(g.Quenched, quenched && bernoulli(s.src, fqsat[i]))
		}
	}

	s.logger.Debug("populated mock",
		zap.Int("halos", n),
		zap.Int("galaxies", g.Len()),
		zap.Bool("quenching", quenched),
		zap.Bool("satcen", satcen),
	)
	return g, nil
}
