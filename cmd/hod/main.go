// Command hod evaluates halo occupation models on halo catalogs and draws
// mock galaxy populations from them.
package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/alexieleauthaud/halotools"
	"github.com/alexieleauthaud/halotools/config"
	"github.com/alexieleauthaud/halotools/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	_ "modernc.org/sqlite"
)

type app struct {
	debug  bool
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:           "hod",
		Short:         "Halo occupation distribution models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if a.debug {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "log every model evaluation")

	root.AddCommand(a.tableCmd(), a.occupyCmd(), a.mockCmd())
	return root
}

// loadModel builds the model described by the file at path, or the default
// model if path is empty.
func (a *app) loadModel(path string) (*config.File, halotools.Model, error) {
	f := config.Default()
	if path != "" {
		var err error
		if f, err = config.Load(path); err != nil {
			return nil, nil, err
		}
	}
	m, res, err := config.Build(f)
	if err != nil {
		return nil, nil, err
	}
	if res.UsedDefaultThreshold {
		a.logger.Warn("no luminosity threshold given; using default",
			zap.Float64("threshold", res.Threshold))
	}
	a.logger.Info("built model",
		zap.String("model", f.Model),
		zap.Strings("publications", halotools.Publications(m)))
	return f, m, nil
}

// openStore opens the sqlite database at path and starts a run.
func openStore(path string) (*sql.DB, *store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.New(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, s, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
