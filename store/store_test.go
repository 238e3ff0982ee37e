package store

import (
	"database/sql"
	"testing"

	"github.com/alexieleauthaud/halotools"
	"github.com/alexieleauthaud/halotools/mock"
	"github.com/alexieleauthaud/halotools/zheng07"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a fresh database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOccupationRoundTrip(t *testing.T) {
	db := openDB(t)
	s, err := New(db)
	require.NoError(t, err)
	require.NotEmpty(t, s.Run())

	params, err := zheng07.Published(-20)
	require.NoError(t, err)
	require.NoError(t, s.WriteRun("zheng07", params))

	rows := []Occupation{
		{Halo: 0, Primary: 12.5, CenType: halotools.Type1, SatType: halotools.Type0, NCen: 0.9, NSat: 0.1, Conc: 8},
		{Halo: 1, Primary: 14, CenType: halotools.Type0, SatType: halotools.Type1, NCen: 1, NSat: 4.5, Conc: 6},
	}
	require.NoError(t, s.WriteOccupation(rows))

	got, err := s.Occupations()
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	// a second run in the same database sees only its own rows
	other, err := New(db)
	require.NoError(t, err)
	assert.NotEqual(t, s.Run(), other.Run())
	got, err = other.Occupations()
	require.NoError(t, err)
	assert.Empty(t, got)

	var model string
	require.NoError(t, db.QueryRow("SELECT model FROM "+TblRuns+" WHERE run=?", s.Run()).Scan(&model))
	assert.Equal(t, "zheng07", model)
}

func TestWriteGalaxies(t *testing.T) {
	s, err := New(openDB(t))
	require.NoError(t, err)

	g := &mock.Galaxies{
		NCen:     []int{1, 0},
		NSat:     []int{2, 1},
		Halo:     []int{0, 0, 0, 1},
		Central:  []bool{true, false, false, false},
		Radius:   []float64{0, 0.3, 0.7, 0.1},
		Quenched: []bool{true, false, true, false},
	}
	require.NoError(t, s.WriteGalaxies(g))

	ncen, nsat, err := s.GalaxyCount()
	require.NoError(t, err)
	assert.Equal(t, 1, ncen)
	assert.Equal(t, 3, nsat)
}
