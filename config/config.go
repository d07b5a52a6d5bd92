// Package config reads YAML search descriptions: the variables of a
// dataset, which of them are predictors and which is the response, and the
// runtime settings of the search.
//
// Example:
//
//	data: survey.csv
//	has_header: true
//	response: E
//	predictors: [A, B]
//	parallelism: 4
//	variables:
//	  - name: A
//	    kind: real
//	    column: 0
//	    min: -127
//	    max: 51
//	    max_subdivisions: 2
//	  - name: B
//	    kind: categorical
//	    column: 1
//	    categories: [x, y, z]
//	  - name: E
//	    kind: categorical
//	    column: 4
//	    categories: [a, b]
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/pcart/cart"
	"github.com/YuminosukeSato/pcart/pkg/errors"
	"github.com/YuminosukeSato/pcart/pkg/log"
)

// Variable kinds.
const (
	KindReal        = "real"
	KindCategorical = "categorical"
)

// Environment variables overriding the file.
const (
	EnvParallelism = "PCART_PARALLELISM"
	EnvLogLevel    = "PCART_LOG_LEVEL"
)

// Search is a search description.
type Search struct {
	// Data is the dataset path, relative to the configuration file.
	Data        string     `yaml:"data"`
	HasHeader   bool       `yaml:"has_header"`
	Variables   []Variable `yaml:"variables"`
	Predictors  []string   `yaml:"predictors"`
	Response    string     `yaml:"response"`
	Parallelism int        `yaml:"parallelism"`
	LogLevel    string     `yaml:"log_level"`
}

// Variable describes one dataset column.
type Variable struct {
	Name            string   `yaml:"name"`
	Kind            string   `yaml:"kind"`
	Column          int      `yaml:"column"`
	Min             float64  `yaml:"min"`
	Max             float64  `yaml:"max"`
	MaxSubdivisions int      `yaml:"max_subdivisions"`
	Categories      []string `yaml:"categories"`

	// Prior overrides the default Normal-Gamma prior of a real response.
	Prior *NormalGamma `yaml:"prior,omitempty"`
	// Alpha overrides the Dirichlet concentration of a categorical response.
	Alpha *float64 `yaml:"alpha,omitempty"`
}

// NormalGamma holds Normal-Gamma hyperparameters.
type NormalGamma struct {
	Mu0    float64 `yaml:"mu0"`
	Kappa0 float64 `yaml:"kappa0"`
	Alpha0 float64 `yaml:"alpha0"`
	Beta0  float64 `yaml:"beta0"`
}

// Load reads the search description at path. A relative Data path is
// resolved against the directory of path.
func Load(path string) (*Search, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %s", path)
	}
	s, err := Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	if s.Data != "" && !filepath.IsAbs(s.Data) {
		s.Data = filepath.Join(filepath.Dir(path), s.Data)
	}
	return s, nil
}

// Parse decodes a search description and applies environment overrides.
// Unknown keys are errors.
func Parse(raw []byte) (*Search, error) {
	var s Search
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(err, "config: parse")
	}
	if err := s.applyEnv(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Search) applyEnv() error {
	if v := os.Getenv(EnvParallelism); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.NewValidationError(EnvParallelism, "must be an integer", v)
		}
		s.Parallelism = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}
	return nil
}

// Validate checks the description without constructing variables.
func (s *Search) Validate() error {
	if len(s.Variables) == 0 {
		return errors.NewValidationError("variables", "at least one variable is required", nil)
	}
	names := make(map[string]struct{}, len(s.Variables))
	for _, v := range s.Variables {
		if v.Name == "" {
			return errors.NewValidationError("variables.name", "must not be empty", v.Column)
		}
		if _, dup := names[v.Name]; dup {
			return errors.NewValidationError("variables.name", "duplicate variable", v.Name)
		}
		names[v.Name] = struct{}{}
		if v.Kind != KindReal && v.Kind != KindCategorical {
			return errors.NewValidationError("variables.kind", "must be real or categorical", v.Kind)
		}
	}
	if s.Response == "" {
		return errors.NewValidationError("response", "must not be empty", nil)
	}
	for _, name := range append([]string{s.Response}, s.Predictors...) {
		if _, ok := names[name]; !ok {
			return errors.NewValidationError("predictors", "unknown variable", name)
		}
	}
	if s.LogLevel != "" {
		if _, err := log.ParseLevel(s.LogLevel); err != nil {
			return errors.NewValidationError("log_level", "unknown level", s.LogLevel)
		}
	}
	return nil
}

// Build constructs the variables of the description and returns the
// predictors in the listed order and the response.
func (s *Search) Build() ([]cart.Variable, cart.Variable, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	vars := make(map[string]cart.Variable, len(s.Variables))
	for _, v := range s.Variables {
		built, err := v.build()
		if err != nil {
			return nil, nil, err
		}
		vars[v.Name] = built
	}

	predictors := make([]cart.Variable, len(s.Predictors))
	for i, name := range s.Predictors {
		predictors[i] = vars[name]
	}
	return predictors, vars[s.Response], nil
}

func (v Variable) build() (cart.Variable, error) {
	switch v.Kind {
	case KindReal:
		var opts []cart.RealVarOption
		if p := v.Prior; p != nil {
			opts = append(opts, cart.WithNormalGammaPrior(p.Mu0, p.Kappa0, p.Alpha0, p.Beta0))
		}
		return cart.NewRealVar(v.Name, v.Column, v.Min, v.Max, v.MaxSubdivisions, opts...)
	case KindCategorical:
		var opts []cart.CatVarOption
		if v.Alpha != nil {
			opts = append(opts, cart.WithDirichletAlpha(*v.Alpha))
		}
		return cart.NewCatVar(v.Name, v.Column, v.Categories, opts...)
	default:
		return nil, errors.NewValidationError("variables.kind", "must be real or categorical", v.Kind)
	}
}
