package halotools

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestCatalog(t *testing.T) {
	cat := Catalog{"MVIR": {12, 13, 14}, "VMAX": {100, 200, 300}}
	n, err := cat.Len()
	if err != nil || n != 3 {
		t.Errorf("Len() = %v, %v", n, err)
	}
	if _, err := cat.Column("ZHALF"); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("missing column: got %v", err)
	}

	cat["ZHALF"] = []float64{1}
	if _, err := cat.Len(); !errors.Is(err, ErrRaggedCatalog) {
		t.Errorf("ragged catalog: got %v", err)
	}

	if n, err := (Catalog{}).Len(); n != 0 || err != nil {
		t.Errorf("empty catalog Len() = %v, %v", n, err)
	}
}

func TestClamp(t *testing.T) {
	xs := []float64{-1, 0.5, 2, math.NaN()}
	Clamp(xs, 0, 1)
	for i, want := range []float64{0, 0.5, 1} {
		if xs[i] != want {
			t.Errorf("xs[%v] = %v, want %v", i, xs[i], want)
		}
	}
	if !math.IsNaN(xs[3]) {
		t.Errorf("NaN replaced by %v", xs[3])
	}
}

func TestCheckLenAndOnes(t *testing.T) {
	if err := CheckLen(2, []float64{1, 2}, []float64{3, 4}); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	err := CheckLen(2, []float64{1, 2}, []float64{3})
	if !errors.Is(err, ErrShape) {
		t.Errorf("expected ErrShape, got %v", err)
	} else if !strings.Contains(err.Error(), "got 1 values for 2 halos") {
		t.Errorf("unexpected message %q", err)
	}

	for i, typ := range Ones(4) {
		if typ != Type1 {
			t.Errorf("Ones(4)[%v] = %v", i, typ)
		}
	}
}
