package halotools

import (
	"fmt"
	"sort"
)

// Catalog is a batch of halos stored column-wise: each key (e.g. "MVIR" or
// "VMAX") maps to one value per halo.  All columns must have the same length.
type Catalog map[string][]float64

// Len returns the number of halos in the catalog.
func (c Catalog) Len() (int, error) {
	n := -1
	for _, k := range c.Keys() {
		if n == -1 {
			n = len(c[k])
		} else if len(c[k]) != n {
			return 0, fmt.Errorf("%w: column %q has %v entries, expected %v", ErrRaggedCatalog, k, len(c[k]), n)
		}
	}
	if n == -1 {
		return 0, nil
	}
	return n, nil
}

// Keys returns the column names in sorted order.
func (c Catalog) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Column returns the column stored under key.  The returned slice is shared
// with the catalog and must not be modified.
func (c Catalog) Column(key string) ([]float64, error) {
	col, ok := c[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, key)
	}
	return col, nil
}

// Primary returns the column m is a function of.
func (c Catalog) Primary(m Model) ([]float64, error) {
	return c.Column(m.PrimaryPropertyKey())
}
