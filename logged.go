package halotools

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// LoggedModel wraps a Model and logs every batch evaluation at debug level.
// It is safe for concurrent use when the wrapped model is.
type LoggedModel struct {
	Model
	Logger *zap.Logger
	count  atomic.Int64
}

// NewLoggedModel wraps m.  A nil logger is replaced by a no-op logger.
func NewLoggedModel(m Model, logger *zap.Logger) *LoggedModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggedModel{Model: m, Logger: logger.With(zap.String("primary", m.PrimaryPropertyKey()))}
}

func (lm *LoggedModel) MeanNcen(p []float64, types []HaloType) []float64 {
	defer lm.log("mean_ncen", len(p), time.Now())
	return lm.Model.MeanNcen(p, types)
}

func (lm *LoggedModel) MeanNsat(p []float64, types []HaloType) []float64 {
	defer lm.log("mean_nsat", len(p), time.Now())
	return lm.Model.MeanNsat(p, types)
}

func (lm *LoggedModel) MeanConcentration(p []float64, types []HaloType) []float64 {
	defer lm.log("mean_concentration", len(p), time.Now())
	return lm.Model.MeanConcentration(p, types)
}

// Count returns the total number of halos evaluated so far.
func (lm *LoggedModel) Count() int64 { return lm.count.Load() }

// Unwrap returns the decorated model.
func (lm *LoggedModel) Unwrap() Model { return lm.Model }

func (lm *LoggedModel) log(op string, n int, start time.Time) {
	total := lm.count.Add(int64(n))
	lm.Logger.Debug("evaluated batch",
		zap.String("op", op),
		zap.Int("halos", n),
		zap.Int64("total", total),
		zap.Duration("elapsed", time.Since(start)),
	)
}
