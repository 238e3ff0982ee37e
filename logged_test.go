package halotools

import (
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type constModel float64

func (c constModel) fill(p []float64) []float64 {
	out := make([]float64, len(p))
	for i := range out {
		out[i] = float64(c)
	}
	return out
}

func (c constModel) MeanNcen(p []float64, _ []HaloType) []float64          { return c.fill(p) }
func (c constModel) MeanNsat(p []float64, _ []HaloType) []float64          { return c.fill(p) }
func (c constModel) MeanConcentration(p []float64, _ []HaloType) []float64 { return c.fill(p) }
func (c constModel) PrimaryPropertyKey() string                            { return "MVIR" }

func TestLoggedModel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	lm := NewLoggedModel(constModel(0.5), zap.New(core))

	p := []float64{12, 13, 14}
	if got := lm.MeanNcen(p, nil); len(got) != 3 || got[0] != 0.5 {
		t.Errorf("MeanNcen not delegated: %v", got)
	}
	lm.MeanNsat(p, nil)
	lm.MeanConcentration(p[:1], nil)

	if lm.Count() != 7 {
		t.Errorf("counted %v halos, want 7", lm.Count())
	}
	entries := logs.FilterMessage("evaluated batch").All()
	if len(entries) != 3 {
		t.Fatalf("got %v log entries, want 3", len(entries))
	}
	ctx := entries[2].ContextMap()
	if ctx["op"] != "mean_concentration" || ctx["primary"] != "MVIR" || ctx["halos"] != int64(1) {
		t.Errorf("unexpected log context %v", ctx)
	}

	if lm.Unwrap() != Model(constModel(0.5)) {
		t.Errorf("Unwrap returned %v", lm.Unwrap())
	}
	if Publications(lm) != nil {
		t.Errorf("constModel has no publications")
	}
}

func TestLoggedModelNilLogger(t *testing.T) {
	lm := NewLoggedModel(constModel(1), nil)
	lm.MeanNcen([]float64{1}, nil)
	if lm.Count() != 1 {
		t.Errorf("counted %v halos, want 1", lm.Count())
	}
}

func TestLoggedModelConcurrent(t *testing.T) {
	lm := NewLoggedModel(constModel(1), nil)
	p := []float64{12, 13}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				lm.MeanNcen(p, nil)
			}
		}()
	}
	wg.Wait()
	if lm.Count() != 8*100*2 {
		t.Errorf("counted %v halos, want %v", lm.Count(), 8*100*2)
	}
}
