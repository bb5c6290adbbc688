package ports

import (
	"context"
	"sort"

	"goresid/domain/dataset"
)

// Predictor is a fitted model: it maps a feature matrix to one prediction
// per row.
type Predictor interface {
	Predict(ctx context.Context, features *dataset.Frame) ([]float64, error)
}

// ModelEntry pairs a fitted model with the alias of the variable set it was
// trained on.
type ModelEntry struct {
	Model     Predictor
	Variables string
}

// ModelRegistry maps model identifiers to fitted models.
type ModelRegistry map[string]ModelEntry

// IDs returns registered model identifiers in sorted order.
func (r ModelRegistry) IDs() []string {
	ids := make([]string, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ScoringRegistry maps a variable set alias to its ordered feature names.
type ScoringRegistry map[string][]string

// RegistrySource loads both registries from some backing store.
type RegistrySource interface {
	Load(ctx context.Context) (ModelRegistry, ScoringRegistry, error)
}
