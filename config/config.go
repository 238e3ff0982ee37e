// Package config loads occupation model descriptions from YAML or TOML files
// and builds the corresponding halotools.Model.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexieleauthaud/halotools"
	"github.com/alexieleauthaud/halotools/assembias"
	"github.com/alexieleauthaud/halotools/quench"
	"github.com/alexieleauthaud/halotools/zheng07"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Model names accepted in File.Model.
const (
	Zheng07    = "zheng07"
	Polynomial = "polynomial"
	Satcen     = "satcen"
	VdB03      = "vdb03"
)

// File is the on-disk description of a model.  Empty sections select the
// package defaults of the corresponding model.
type File struct {
	Model string `yaml:"model" toml:"model" validate:"required,oneof=zheng07 polynomial satcen vdb03"`
	// Threshold selects published Zheng07 parameters.  It is ignored when
	// Baseline is given.
	Threshold *float64           `yaml:"threshold" toml:"threshold" validate:"omitempty,published"`
	Baseline  map[string]float64 `yaml:"baseline" toml:"baseline"`

	Assembias map[string][]float64 `yaml:"assembias" toml:"assembias"`
	TypeSplit *Split               `yaml:"type_split" toml:"type_split"`
	Secondary Secondary            `yaml:"secondary" toml:"secondary"`
	BinWidth  float64              `yaml:"bin_width" toml:"bin_width" validate:"omitempty,gt=0"`

	Quenching map[string][]float64 `yaml:"quenching" toml:"quenching"`

	Seed uint64 `yaml:"seed" toml:"seed"`
}

// Split holds the control points of the Type1 fraction polynomial.
type Split struct {
	Abscissa  []float64 `yaml:"abscissa" toml:"abscissa" validate:"required,min=1"`
	Ordinates []float64 `yaml:"ordinates" toml:"ordinates" validate:"required,min=1"`
}

// Secondary names the catalog columns that type halos.
type Secondary struct {
	Centrals   string `yaml:"centrals" toml:"centrals"`
	Satellites string `yaml:"satellites" toml:"satellites"`
}

// Default returns the description of the plain Zheng07 model at the default
// luminosity threshold.
func Default() *File {
	return &File{Model: Zheng07}
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("published", func(fl validator.FieldLevel) bool {
		th := fl.Field().Float()
		for _, v := range zheng07.Thresholds {
			if v == th {
				return true
			}
		}
		return false
	})
}

// Validate checks the field constraints of f.
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", halotools.ErrConfiguration, err)
	}
	return nil
}

// Load reads and validates the model description at path.  The format is
// chosen by extension: .yaml/.yml or .toml.  Unknown keys are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data in the format named by ext (".yaml", ".yml" or ".toml").
func Parse(data []byte, ext string) (*File, error) {
	f := &File{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(f); err != nil {
			return nil, fmt.Errorf("%w: yaml: %v", halotools.ErrConfiguration, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(f); err != nil {
			return nil, fmt.Errorf("%w: toml: %v", halotools.ErrConfiguration, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config format %q", halotools.ErrConfiguration, ext)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Result reports how Build resolved the baseline parameters.
type Result struct {
	Threshold            float64
	UsedDefaultThreshold bool
}

func scalars(m map[string]float64) halotools.Params {
	vals := make(map[string]halotools.Value, len(m))
	for k, v := range m {
		vals[k] = halotools.Scalar(v)
	}
	return halotools.NewParams(vals)
}

func vectors(m map[string][]float64) halotools.Params {
	if len(m) == 0 {
		return halotools.Params{}
	}
	vals := make(map[string]halotools.Value, len(m))
	for k, v := range m {
		vals[k] = halotools.Vector(v...)
	}
	return halotools.NewParams(vals)
}

// Build constructs the model described by f.
func Build(f *File) (halotools.Model, Result, error) {
	var res Result
	if err := f.Validate(); err != nil {
		return nil, res, err
	}

	var params halotools.Params
	if len(f.Baseline) > 0 {
		params = scalars(f.Baseline)
	} else {
		pub, err := zheng07.PublishedDefault(f.Threshold)
		if err != nil {
			return nil, res, err
		}
		params = pub.Params
		res.Threshold, res.UsedDefaultThreshold = pub.Threshold, pub.UsedDefault
	}
	base, err := zheng07.New(params)
	if err != nil {
		return nil, res, err
	}

	switch f.Model {
	case Zheng07:
		return base, res, nil
	case Polynomial:
		var opts []assembias.Option
		if f.TypeSplit != nil {
			opts = append(opts, assembias.WithTypeSplit(f.TypeSplit.Abscissa, f.TypeSplit.Ordinates))
		}
		if f.Secondary.Centrals != "" || f.Secondary.Satellites != "" {
			cen, sat := f.Secondary.Centrals, f.Secondary.Satellites
			if cen == "" {
				cen = assembias.DefaultSecondaryKey
			}
			if sat == "" {
				sat = assembias.DefaultSecondaryKey
			}
			opts = append(opts, assembias.WithSecondaryKeys(cen, sat))
		}
		if f.BinWidth > 0 {
			opts = append(opts, assembias.WithBinWidth(f.BinWidth))
		}
		m, err := assembias.NewPolynomial(base, vectors(f.Assembias), opts...)
		if err != nil {
			return nil, res, err
		}
		return m, res, nil
	case Satcen:
		m, err := assembias.NewSatcenCorrelation(base, vectors(f.Assembias))
		if err != nil {
			return nil, res, err
		}
		return m, res, nil
	case VdB03:
		m, err := quench.New(base, vectors(f.Quenching))
		if err != nil {
			return nil, res, err
		}
		return m, res, nil
	}
	return nil, res, fmt.Errorf("%w: unknown model %q", halotools.ErrConfiguration, f.Model)
}
