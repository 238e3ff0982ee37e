package main

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/alexieleauthaud/halotools"
	"github.com/alexieleauthaud/halotools/mock"
	"github.com/alexieleauthaud/halotools/store"
	"github.com/alexieleauthaud/halotools/zheng07"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func ftoa(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }

func (a *app) tableCmd() *cobra.Command {
	var threshold float64
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the published Zheng et al. 2007 parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var th *float64
			if cmd.Flags().Changed("threshold") {
				th = &threshold
			}
			res, err := zheng07.PublishedDefault(th)
			if err != nil {
				return err
			}
			if res.UsedDefault {
				a.logger.Warn("no luminosity threshold given; using default", zap.Float64("threshold", res.Threshold))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "threshold\t%v\n", res.Threshold)
			for _, k := range res.Params.Keys() {
				v, _ := res.Params.Value(k)
				fmt.Fprintf(out, "%v\t%v\n", k, v)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", zheng07.DefaultThreshold, "r-band luminosity threshold")
	return cmd
}

// classifier is implemented by assembly-biased models.
type classifier interface {
	mock.Classifier
	SatellitesConditionedOnCentrals() bool
}

// haloTypes returns the central and satellite halo types of cat under m.
// Without realized centrals, satellites of models conditioned on centrals are
// tabulated as if a central were present.
func haloTypes(m halotools.Model, cat halotools.Catalog, n int) (cen, sat []halotools.HaloType, err error) {
	cl, ok := m.(classifier)
	if !ok {
		return halotools.Ones(n), halotools.Ones(n), nil
	}
	if cen, err = cl.ClassifyCentrals(cat); err != nil {
		return nil, nil, err
	}
	if cl.SatellitesConditionedOnCentrals() {
		return cen, halotools.Ones(n), nil
	}
	if sat, err = cl.ClassifySatellites(cat); err != nil {
		return nil, nil, err
	}
	return cen, sat, nil
}

func (a *app) occupyCmd() *cobra.Command {
	var cfgPath, catPath, dbPath string
	cmd := &cobra.Command{
		Use:   "occupy",
		Short: "Tabulate mean occupations for every halo of a catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, model, err := a.loadModel(cfgPath)
			if err != nil {
				return err
			}
			cat, err := readCatalog(catPath)
			if err != nil {
				return err
			}
			n, err := cat.Len()
			if err != nil {
				return err
			}
			p, err := cat.Primary(model)
			if err != nil {
				return err
			}
			cen, sat, err := haloTypes(model, cat, n)
			if err != nil {
				return err
			}

			lm := halotools.NewLoggedModel(model, a.logger)
			ncen := lm.MeanNcen(p, cen)
			nsat := lm.MeanNsat(p, sat)
			conc := lm.MeanConcentration(p, sat)

			rows := make([]store.Occupation, n)
			for i := range rows {
				rows[i] = store.Occupation{Halo: i, Primary: p[i], CenType: cen[i], SatType: sat[i], NCen: ncen[i], NSat: nsat[i], Conc: conc[i]}
			}

			w := csv.NewWriter(cmd.OutOrStdout())
			w.Write([]string{"halo", model.PrimaryPropertyKey(), "centype", "sattype", "ncen", "nsat", "conc"})
			for _, r := range rows {
				w.Write([]string{strconv.Itoa(r.Halo), ftoa(r.Primary), strconv.Itoa(int(r.CenType)), strconv.Itoa(int(r.SatType)), ftoa(r.NCen), ftoa(r.NSat), ftoa(r.Conc)})
			}
			w.Flush()
			if err := w.Error(); err != nil {
				return err
			}

			if dbPath == "" {
				return nil
			}
			db, s, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			if pm, ok := model.(halotools.Parameterized); ok {
				if err := s.WriteRun(f.Model, pm.Params()); err != nil {
					return err
				}
			}
			if err := s.WriteOccupation(rows); err != nil {
				return err
			}
			a.logger.Info("stored occupations", zap.String("run", s.Run()), zap.Int("halos", n))
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "model description (.yaml, .yml or .toml)")
	cmd.Flags().StringVar(&catPath, "catalog", "", "halo catalog CSV with a header row")
	cmd.Flags().StringVar(&dbPath, "db", "", "sqlite database to store results in")
	cmd.MarkFlagRequired("catalog")
	return cmd
}

func (a *app) mockCmd() *cobra.Command {
	var cfgPath, catPath, dbPath string
	var seed uint64
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Draw a mock galaxy population for a halo catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, model, err := a.loadModel(cfgPath)
			if err != nil {
				return err
			}
			cat, err := readCatalog(catPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") && f.Seed != 0 {
				seed = f.Seed
			}

			g, err := mock.Populate(halotools.NewLoggedModel(model, a.logger), cat,
				mock.WithSeed(seed), mock.WithLogger(a.logger))
			if err != nil {
				return err
			}

			w := csv.NewWriter(cmd.OutOrStdout())
			w.Write([]string{"halo", "central", "radius", "quenched"})
			for i := 0; i < g.Len(); i++ {
				w.Write([]string{strconv.Itoa(g.Halo[i]), strconv.FormatBool(g.Central[i]), ftoa(g.Radius[i]), strconv.FormatBool(g.Quenched[i])})
			}
			w.Flush()
			if err := w.Error(); err != nil {
				return err
			}

			if dbPath == "" {
				return nil
			}
			db, s, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			if pm, ok := model.(halotools.Parameterized); ok {
				if err := s.WriteRun(f.Model, pm.Params()); err != nil {
					return err
				}
			}
			if err := s.WriteGalaxies(g); err != nil {
				return err
			}
			a.logger.Info("stored mock", zap.String("run", s.Run()), zap.Int("galaxies", g.Len()))
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "model description (.yaml, .yml or .toml)")
	cmd.Flags().StringVar(&catPath, "catalog", "", "halo catalog CSV with a header row")
	cmd.Flags().StringVar(&dbPath, "db", "", "sqlite database to store results in")
	cmd.Flags().Uint64Var(&seed, "seed", mock.DefaultSeed, "random seed; overrides the seed in --config")
	cmd.MarkFlagRequired("catalog")
	return cmd
}
