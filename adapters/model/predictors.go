package model

import (
	"context"
	"sort"

	"goresid/domain/core"
	"goresid/domain/dataset"
	"goresid/ports"
)

// LinearModel predicts intercept + Σ coefficient·feature. Coefficients are
// keyed by column name, so column order in the frame does not matter.
type LinearModel struct {
	Intercept    float64
	Coefficients map[string]float64
}

var _ ports.Predictor = (*LinearModel)(nil)

// Predict evaluates the linear form row by row.
func (m *LinearModel) Predict(ctx context.Context, features *dataset.Frame) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names := m.names()
	for _, name := range names {
		if !features.HasColumn(name) {
			return nil, core.NewNotFoundError(core.ErrColumnNotFound, name)
		}
	}
	out := make([]float64, features.Rows())
	for i := range out {
		out[i] = m.Intercept
	}
	for _, name := range names {
		coef := m.Coefficients[name]
		col, _ := features.Column(name)
		for i, v := range col {
			out[i] += coef * v
		}
	}
	return out, nil
}

// names returns the coefficient names sorted, fixing the summation order.
func (m *LinearModel) names() []string {
	names := make([]string, 0, len(m.Coefficients))
	for name := range m.Coefficients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConstantModel predicts the same value for every row.
type ConstantModel struct {
	Value float64
}

var _ ports.Predictor = (*ConstantModel)(nil)

// Predict returns Value once per row.
func (m *ConstantModel) Predict(ctx context.Context, features *dataset.Frame) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]float64, features.Rows())
	for i := range out {
		out[i] = m.Value
	}
	return out, nil
}

// PredictorFunc adapts a function to ports.Predictor.
type PredictorFunc func(ctx context.Context, features *dataset.Frame) ([]float64, error)

// Predict calls f.
func (f PredictorFunc) Predict(ctx context.Context, features *dataset.Frame) ([]float64, error) {
	return f(ctx, features)
}
