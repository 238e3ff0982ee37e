package halotools

import (
	"errors"
	"reflect"
	"testing"
)

func TestParamsCopies(t *testing.T) {
	xs := []float64{12, 15}
	m := map[string]Value{"a": Vector(xs...), "b": Scalar(3)}
	p := NewParams(m)

	xs[0] = -1
	m["c"] = Scalar(1)
	if p.Len() != 2 {
		t.Errorf("params changed with source map: %v", p)
	}

	v, err := p.Vector("a")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v, []float64{12, 15}) {
		t.Errorf("vector changed with source slice: %v", v)
	}
	v[1] = 99
	if v, _ := p.Vector("a"); v[1] != 15 {
		t.Errorf("params changed through returned vector: %v", v)
	}

	mm := p.Map()
	delete(mm, "a")
	if !p.Has("a") {
		t.Errorf("params changed through returned map")
	}
}

func TestParamsAccessors(t *testing.T) {
	p := NewParams(map[string]Value{"a": Vector(1, 2), "b": Scalar(3)})

	if x, err := p.Scalar("b"); err != nil || x != 3 {
		t.Errorf("Scalar(b) = %v, %v", x, err)
	}
	if _, err := p.Scalar("a"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Scalar of a sequence: got %v", err)
	}
	if _, err := p.Vector("b"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Vector of a scalar: got %v", err)
	}
	if _, err := p.Scalar("c"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("missing key: got %v", err)
	}
	if got := p.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Keys() = %v", got)
	}
	if got := p.String(); got != "{a: [1 2], b: 3}" {
		t.Errorf("String() = %q", got)
	}

	if !(Params{}).IsZero() {
		t.Errorf("zero Params not reported as zero")
	}
	if NewParams(nil).IsZero() {
		t.Errorf("constructed empty Params reported as zero")
	}
}

func TestRequireKeys(t *testing.T) {
	tests := []struct {
		keys []string
		ok   bool
	}{
		{[]string{"a", "b"}, true},
		{[]string{"b", "a"}, true},
		{[]string{"a"}, false},
		{[]string{"a", "b", "c"}, false},
		{[]string{"a", "c"}, false},
		{nil, false},
	}

	p := NewParams(map[string]Value{"a": Scalar(1), "b": Scalar(2)})
	for _, test := range tests {
		err := RequireKeys(p, test.keys...)
		if test.ok && err != nil {
			t.Errorf("keys %v: unexpected error %v", test.keys, err)
		} else if !test.ok && !errors.Is(err, ErrConfiguration) {
			t.Errorf("keys %v: expected ErrConfiguration, got %v", test.keys, err)
		}
	}
}

func TestMerge(t *testing.T) {
	a := NewParams(map[string]Value{"x": Scalar(1), "y": Scalar(2)})
	b := NewParams(map[string]Value{"y": Scalar(20), "z": Vector(3)})

	m := Merge(a, b)
	if m.Len() != 3 {
		t.Fatalf("merged %v keys, want 3", m.Len())
	}
	if y, _ := m.Scalar("y"); y != 20 {
		t.Errorf("second operand must win: y = %v", y)
	}
	if y, _ := a.Scalar("y"); y != 2 {
		t.Errorf("Merge modified its first operand")
	}
	if m := Merge(Params{}, b); m.Len() != 2 {
		t.Errorf("merge with zero params: %v", m)
	}
}
