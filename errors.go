package halotools

import "errors"

var (
	// ErrConfiguration is returned when a parameter set does not carry
	// exactly the keys a model requires, when a parameter has the wrong
	// shape, or when a luminosity threshold is not tabulated.
	ErrConfiguration = errors.New("invalid model configuration")
	// ErrSingularSystem is returned when a polynomial fit is degenerate,
	// e.g. because of duplicate abscissa values.
	ErrSingularSystem = errors.New("singular linear system")
	// ErrShape is returned when batch arguments have incompatible lengths.
	ErrShape = errors.New("mismatched batch lengths")
	// ErrMissingColumn is returned when a catalog lacks a requested column.
	ErrMissingColumn = errors.New("catalog column not found")
	// ErrRaggedCatalog is returned when catalog columns differ in length.
	ErrRaggedCatalog = errors.New("catalog columns have different lengths")
)
