package halotools

import (
	"fmt"
	"sort"
	"strings"
)

// Value is a single model parameter: either a scalar or an ordered sequence
// of scalars (e.g. polynomial control points).
type Value struct {
	vals   []float64
	scalar bool
}

// Scalar returns a scalar parameter value.
func Scalar(x float64) Value { return Value{vals: []float64{x}, scalar: true} }

// Vector returns a sequence parameter value.  xs is copied.
func Vector(xs ...float64) Value {
	return Value{vals: append([]float64{}, xs...)}
}

func (v Value) IsScalar() bool { return v.scalar }

// Floats returns a copy of the values held by v.  A scalar yields a slice of
// length one.
func (v Value) Floats() []float64 { return append([]float64{}, v.vals...) }

func (v Value) String() string {
	if v.scalar {
		return fmt.Sprint(v.vals[0])
	}
	return fmt.Sprint(v.vals)
}

// Params is a closed, immutable mapping from parameter names to values.  It
// is owned by the model that validated it; accessors return copies so a
// model's parameters can never be changed after construction.
type Params struct {
	m map[string]Value
}

// NewParams builds a parameter set from m.  The map is copied.
func NewParams(m map[string]Value) Params {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = Value{vals: append([]float64{}, v.vals...), scalar: v.scalar}
	}
	return Params{m: cp}
}

// IsZero reports whether p is the zero Params, as opposed to an empty but
// explicitly constructed set.  Constructors treat the zero value as "use the
// package defaults".
func (p Params) IsZero() bool { return p.m == nil }

// Len returns the number of parameters in p.
func (p Params) Len() int { return len(p.m) }

// Keys returns the parameter names of p in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p.m))
	for k := range p.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p Params) Has(key string) bool {
	_, ok := p.m[key]
	return ok
}

func (p Params) Value(key string) (Value, bool) {
	v, ok := p.m[key]
	return v, ok
}

// Scalar returns the scalar value stored under key.
func (p Params) Scalar(key string) (float64, error) {
	v, ok := p.m[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing parameter %q", ErrConfiguration, key)
	} else if !v.scalar {
		return 0, fmt.Errorf("%w: parameter %q must be a scalar, got %v", ErrConfiguration, key, v)
	}
	return v.vals[0], nil
}

// Vector returns a copy of the sequence stored under key.
func (p Params) Vector(key string) ([]float64, error) {
	v, ok := p.m[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing parameter %q", ErrConfiguration, key)
	} else if v.scalar {
		return nil, fmt.Errorf("%w: parameter %q must be a sequence, got %v", ErrConfiguration, key, v)
	}
	return v.Floats(), nil
}

// Map returns a copy of the underlying mapping.
func (p Params) Map() map[string]Value {
	return NewParams(p.m).m
}

func (p Params) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range p.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v: %v", k, p.m[k])
	}
	b.WriteString("}")
	return b.String()
}

// RequireKeys fails with ErrConfiguration unless the key set of p is exactly
// keys: no key may be missing and no extra key may be present.
func RequireKeys(p Params, keys ...string) error {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}

	var missing, extra []string
	for k := range want {
		if !p.Has(k) {
			missing = append(missing, k)
		}
	}
	for k := range p.m {
		if !want[k] {
			extra = append(extra, k)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}

	sort.Strings(missing)
	sort.Strings(extra)
	sorted := append([]string{}, keys...)
	sort.Strings(sorted)
	return fmt.Errorf("%w: parameter keys do not match %v (missing %v, unexpected %v)",
		ErrConfiguration, sorted, missing, extra)
}

// Merge returns a new parameter set holding the union of a and b.  When both
// define a key, the value from b wins.
func Merge(a, b Params) Params {
	m := a.Map()
	for k, v := range b.m {
		m[k] = v
	}
	return NewParams(m)
}
