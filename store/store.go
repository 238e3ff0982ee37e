// Package store records occupation tables and mock galaxy populations in a
// SQL database.  Every Store tags its rows with a run identifier so that
// several runs can share one database.
package store

import (
	"database/sql"
	"time"

	"github.com/alexieleauthaud/halotools"
	"github.com/alexieleauthaud/halotools/mock"
	"github.com/google/uuid"
)

const (
	TblRuns       = "hodruns"
	TblOccupation = "halooccupation"
	TblGalaxies   = "galaxies"
)

var schema = []string{
	"CREATE TABLE IF NOT EXISTS " + TblRuns + " (run TEXT PRIMARY KEY,model TEXT,params TEXT,created TEXT);",
	"CREATE TABLE IF NOT EXISTS " + TblOccupation + " (run TEXT,halo INTEGER,prim REAL,centype INTEGER,sattype INTEGER,ncen REAL,nsat REAL,conc REAL);",
	"CREATE TABLE IF NOT EXISTS " + TblGalaxies + " (run TEXT,halo INTEGER,central INTEGER,radius REAL,quenched INTEGER);",
}

// Occupation is the tabulated model prediction for one halo.
type Occupation struct {
	Halo    int
	Primary float64
	CenType halotools.HaloType
	SatType halotools.HaloType
	NCen    float64
	NSat    float64
	Conc    float64
}

// Store writes to the tables of one run.
type Store struct {
	db  *sql.DB
	run string
}

// New creates the tables if needed and starts a new run.
func New(db *sql.DB) (*Store, error) {
	for _, s := range schema {
		if _, err := db.Exec(s); err != nil {
			return nil, err
		}
	}
	return &Store{db: db, run: uuid.NewString()}, nil
}

// Run returns the identifier attached to every row written by s.
func (s *Store) Run() string { return s.run }

// WriteRun records the model name and parameters of the run.
func (s *Store) WriteRun(model string, params halotools.Params) error {
	_, err := s.db.Exec("INSERT INTO "+TblRuns+" (run,model,params,created) VALUES (?,?,?,?);",
		s.run, model, params.String(), time.Now().UTC().Format(time.RFC3339))
	return err
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// WriteOccupation stores rows in a single transaction.
func (s *Store) WriteOccupation(rows []Occupation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO " + TblOccupation + " (run,halo,prim,centype,sattype,ncen,nsat,conc) VALUES (?,?,?,?,?,?,?,?);")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.Exec(s.run, r.Halo, r.Primary, int(r.CenType), int(r.SatType), r.NCen, r.NSat, r.Conc)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// WriteGalaxies stores every galaxy of g in a single transaction.
func (s *Store) WriteGalaxies(g *mock.Galaxies) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO " + TblGalaxies + " (run,halo,central,radius,quenched) VALUES (?,?,?,?,?);")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < g.Len(); i++ {
		_, err := stmt.Exec(s.run, g.Halo[i], b2i(g.Central[i]), g.Radius[i], b2i(g.Quenched[i]))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Occupations reads back the occupation rows of the run, ordered by halo.
func (s *Store) Occupations() ([]Occupation, error) {
	rows, err := s.db.Query("SELECT halo,prim,centype,sattype,ncen,nsat,conc FROM "+TblOccupation+" WHERE run=? ORDER BY halo;", s.run)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var occ []Occupation
	for rows.Next() {
		var r Occupation
		var ct, st int
		if err := rows.Scan(&r.Halo, &r.Primary, &ct, &st, &r.NCen, &r.NSat, &r.Conc); err != nil {
			return nil, err
		}
		r.CenType, r.SatType = halotools.HaloType(ct), halotools.HaloType(st)
		occ = append(occ, r)
	}
	return occ, rows.Err()
}

// GalaxyCount returns the number of central and satellite galaxies stored
// for the run.
func (s *Store) GalaxyCount() (centrals, satellites int, err error) {
	err = s.db.QueryRow("SELECT COALESCE(SUM(central),0), COUNT(*)-COALESCE(SUM(central),0) FROM "+TblGalaxies+" WHERE run=?;", s.run).Scan(&centrals, &satellites)
	return centrals, satellites, err
}
