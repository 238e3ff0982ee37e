package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexieleauthaud/halotools"
	"github.com/alexieleauthaud/halotools/assembias"
	"github.com/alexieleauthaud/halotools/quench"
	"github.com/alexieleauthaud/halotools/zheng07"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const polyYAML = `
model: polynomial
threshold: -20.5
assembias:
  assembias_abcissa: [12, 13, 15]
  central_assembias_ordinates: [1.2, 1, 0.8]
  satellite_assembias_ordinates: [0.5, 1, 1.5]
type_split:
  abscissa: [12, 15]
  ordinates: [0.4, 0.6]
secondary:
  centrals: VMAX
  satellites: ZHALF
bin_width: 0.2
seed: 99
`

const quenchTOML = `
model = "vdb03"

[baseline]
logMmin_cen = 12.0
sigma_logM = 0.3
logM0_sat = 11.5
logM1_sat = 13.2
alpha_sat = 1.0
fconc = 0.5

[quenching]
quenching_abcissa = [12.0, 15.0]
central_quenching_ordinates = [0.1, 0.9]
satellite_quenching_ordinates = [0.2, 0.8]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	f, err := Load(writeFile(t, "model.yaml", polyYAML))
	require.NoError(t, err)
	assert.Equal(t, Polynomial, f.Model)
	require.NotNil(t, f.Threshold)
	assert.Equal(t, -20.5, *f.Threshold)
	assert.Equal(t, uint64(99), f.Seed)
	assert.Equal(t, "ZHALF", f.Secondary.Satellites)

	m, res, err := Build(f)
	require.NoError(t, err)
	assert.False(t, res.UsedDefaultThreshold)
	assert.Equal(t, -20.5, res.Threshold)

	ab, ok := m.(*assembias.Model)
	require.True(t, ok)
	assert.Equal(t, "VMAX", ab.SecondaryKeyCentrals())
	assert.Equal(t, "ZHALF", ab.SecondaryKeySatellites())
	assert.Equal(t, 0.2, ab.BinWidth())
	assert.InDeltaSlice(t, []float64{0.4, 0.5, 0.6}, ab.Type1FractionCentrals([]float64{12, 13.5, 15}), 1e-10)

	x, err := ab.Params().Vector(assembias.Abscissa)
	require.NoError(t, err)
	assert.Equal(t, []float64{12, 13, 15}, x)
}

func TestLoadTOML(t *testing.T) {
	f, err := Load(writeFile(t, "model.toml", quenchTOML))
	require.NoError(t, err)

	m, res, err := Build(f)
	require.NoError(t, err)
	assert.False(t, res.UsedDefaultThreshold)

	q, ok := m.(*quench.Model)
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{0.1, 0.9}, q.QuenchedFractionCentrals([]float64{12, 15}, nil), 1e-10)

	base, ok := q.Baseline().(*zheng07.Model)
	require.True(t, ok)
	assert.Equal(t, 0.5, base.SatelliteConcentrationFactor())
}

func TestBuildDefaults(t *testing.T) {
	for _, name := range []string{Zheng07, Polynomial, Satcen, VdB03} {
		t.Run(name, func(t *testing.T) {
			m, res, err := Build(&File{Model: name})
			require.NoError(t, err)
			assert.True(t, res.UsedDefaultThreshold)
			assert.Equal(t, zheng07.DefaultThreshold, res.Threshold)
			assert.Equal(t, zheng07.PrimaryKey, m.PrimaryPropertyKey())
		})
	}

	m, _, err := Build(Default())
	require.NoError(t, err)
	_, ok := m.(*zheng07.Model)
	assert.True(t, ok)
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name    string
		ext     string
		content string
	}{
		{"unknown model", ".yaml", "model: leauthaud11\n"},
		{"missing model", ".yaml", "threshold: -20\n"},
		{"unpublished threshold", ".yaml", "model: zheng07\nthreshold: -20.25\n"},
		{"negative bin width", ".yaml", "model: polynomial\nbin_width: -0.1\n"},
		{"unknown yaml key", ".yaml", "model: zheng07\nthresold: -20\n"},
		{"unknown toml key", ".toml", "model = \"zheng07\"\ncolour = 1\n"},
		{"empty type split", ".yaml", "model: polynomial\ntype_split:\n  abscissa: []\n  ordinates: []\n"},
		{"bad format", ".json", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content), tt.ext)
			assert.ErrorIs(t, err, halotools.ErrConfiguration)
		})
	}
}

func TestBuildInvalidParams(t *testing.T) {
	_, _, err := Build(&File{Model: Zheng07, Baseline: map[string]float64{zheng07.LogMminCen: 12}})
	assert.ErrorIs(t, err, halotools.ErrConfiguration)

	_, _, err = Build(&File{Model: Polynomial, Assembias: map[string][]float64{
		assembias.Abscissa:           {12, 12},
		assembias.CentralOrdinates:   {1, 1},
		assembias.SatelliteOrdinates: {1, 1},
	}})
	assert.ErrorIs(t, err, halotools.ErrSingularSystem)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
