package model

import (
	"context"
	"fmt"
	"os"
	"sort"

	"goresid/domain/core"
	"goresid/ports"

	"gopkg.in/yaml.v3"
)

// Model kinds understood by the registry file.
const (
	KindLinear   = "linear"
	KindConstant = "constant"
)

// RegistryFile is the on-disk layout of a model registry:
//
//	variable_sets:
//	  base: [x1, x2]
//	models:
//	  ols_base:
//	    variables: base
//	    kind: linear
//	    intercept: 1.5
//	    coefficients: {x1: 2.0, x2: -0.5}
type RegistryFile struct {
	VariableSets map[string][]string  `yaml:"variable_sets"`
	Models       map[string]ModelSpec `yaml:"models"`
}

// ModelSpec describes one fitted model.
type ModelSpec struct {
	Variables    string             `yaml:"variables"`
	Kind         string             `yaml:"kind"`
	Intercept    float64            `yaml:"intercept,omitempty"`
	Coefficients map[string]float64 `yaml:"coefficients,omitempty"`
	Value        float64            `yaml:"value,omitempty"`
}

// FileRegistry loads registries from a YAML file.
type FileRegistry struct {
	Path string
}

var _ ports.RegistrySource = (*FileRegistry)(nil)

// NewFileRegistry creates a registry source backed by path.
func NewFileRegistry(path string) *FileRegistry {
	return &FileRegistry{Path: path}
}

// Load reads and parses the registry file.
func (r *FileRegistry) Load(ctx context.Context) (ports.ModelRegistry, ports.ScoringRegistry, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("read registry: %w", err)
	}
	return Parse(data)
}

// Parse decodes a registry document. Aliases a model refers to are not
// required to exist; that is reported when the model is used. When the
// alias does exist, the model's coefficients must name its columns.
func Parse(data []byte) (ports.ModelRegistry, ports.ScoringRegistry, error) {
	var file RegistryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("parse registry: %w", err)
	}

	scoring := make(ports.ScoringRegistry, len(file.VariableSets))
	for alias, cols := range file.VariableSets {
		scoring[alias] = append([]string(nil), cols...)
	}

	models := make(ports.ModelRegistry, len(file.Models))
	names := make([]string, 0, len(file.Models))
	for name := range file.Models {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		spec := file.Models[name]
		if spec.Variables == "" {
			return nil, nil, fmt.Errorf("model %q: variables alias is required", name)
		}
		if cols, ok := scoring[spec.Variables]; ok {
			if err := spec.checkCoefficients(cols); err != nil {
				return nil, nil, fmt.Errorf("model %q: %w", name, err)
			}
		}
		predictor, err := spec.build()
		if err != nil {
			return nil, nil, fmt.Errorf("model %q: %w", name, err)
		}
		models[name] = ports.ModelEntry{Model: predictor, Variables: spec.Variables}
	}
	return models, scoring, nil
}

// checkCoefficients requires every coefficient to name a column of the
// model's variable set.
func (s ModelSpec) checkCoefficients(cols []string) error {
	known := make(map[string]bool, len(cols))
	for _, c := range cols {
		known[c] = true
	}
	names := make([]string, 0, len(s.Coefficients))
	for name := range s.Coefficients {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !known[name] {
			return fmt.Errorf("coefficient outside variable set %q: %w", s.Variables,
				core.NewNotFoundError(core.ErrColumnNotFound, name))
		}
	}
	return nil
}

func (s ModelSpec) build() (ports.Predictor, error) {
	switch s.Kind {
	case KindLinear, "":
		coefs := make(map[string]float64, len(s.Coefficients))
		for k, v := range s.Coefficients {
			coefs[k] = v
		}
		return &LinearModel{Intercept: s.Intercept, Coefficients: coefs}, nil
	case KindConstant:
		return &ConstantModel{Value: s.Value}, nil
	default:
		return nil, fmt.Errorf("unknown model kind %q", s.Kind)
	}
}
