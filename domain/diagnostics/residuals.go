package diagnostics

import (
	"fmt"
	"math"
	"sort"

	"goresid/domain/core"
	"goresid/domain/dataset"
)

// ResidualRow is one evaluation observation. Obs is the observation's
// position in the evaluation frame before sorting.
type ResidualRow struct {
	Obs       int     `json:"obs"`
	Predicted float64 `json:"predicted"`
	Actual    float64 `json:"actual"`
	Residual  float64 `json:"residual"`
}

// ResidualTable holds predicted, actual and residual values sorted ascending
// by residual. Row numbering is the slice position.
type ResidualTable struct {
	Rows []ResidualRow `json:"rows"`
}

// PredictionSet is the evaluation frame restricted to a model's declared
// feature columns, in declaration order and original row order.
type PredictionSet struct {
	Alias string         `json:"alias"`
	Frame *dataset.Frame `json:"-"`
}

// Features returns the prediction set's column names.
func (p *PredictionSet) Features() []string {
	return p.Frame.Columns
}

// NewResidualTable pairs predictions with actual values by position,
// computes residual = actual - predicted, and sorts ascending by residual.
// Ties keep observation order. Non-finite values are rejected.
func NewResidualTable(predicted, actual []float64) (*ResidualTable, error) {
	if len(predicted) != len(actual) {
		return nil, core.NewShapeError("target", len(actual), len(predicted))
	}
	rows := make([]ResidualRow, len(predicted))
	for i := range predicted {
		if !finite(predicted[i]) {
			return nil, core.NewDegenerateError("residuals", fmt.Sprintf("non-finite prediction at observation %d", i))
		}
		if !finite(actual[i]) {
			return nil, core.NewDegenerateError("residuals", fmt.Sprintf("non-finite actual value at observation %d", i))
		}
		rows[i] = ResidualRow{
			Obs:       i,
			Predicted: predicted[i],
			Actual:    actual[i],
			Residual:  actual[i] - predicted[i],
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Residual < rows[j].Residual
	})
	return &ResidualTable{Rows: rows}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Len returns the number of rows.
func (t *ResidualTable) Len() int {
	return len(t.Rows)
}

// Predicted returns the predicted column in table order.
func (t *ResidualTable) Predicted() []float64 {
	return t.column(func(r ResidualRow) float64 { return r.Predicted })
}

// Actual returns the actual column in table order.
func (t *ResidualTable) Actual() []float64 {
	return t.column(func(r ResidualRow) float64 { return r.Actual })
}

// Residual returns the residual column in table order.
func (t *ResidualTable) Residual() []float64 {
	return t.column(func(r ResidualRow) float64 { return r.Residual })
}

func (t *ResidualTable) column(get func(ResidualRow) float64) []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = get(r)
	}
	return out
}

// ResidualSequence returns residuals in the requested order.
func (t *ResidualTable) ResidualSequence(order SequenceOrder) []float64 {
	if order != OrderObservation {
		return t.Residual()
	}
	out := make([]float64, len(t.Rows))
	for _, r := range t.Rows {
		out[r.Obs] = r.Residual
	}
	return out
}

// Head returns the first n rows (the most negative residuals).
func (t *ResidualTable) Head(n int) []ResidualRow {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

// Tail returns the last n rows (the most positive residuals).
func (t *ResidualTable) Tail(n int) []ResidualRow {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[len(t.Rows)-n:]
}

// Fingerprint hashes the table contents bit-exactly.
func (t *ResidualTable) Fingerprint() core.Hash {
	obs := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		obs[i] = float64(r.Obs)
	}
	return core.HashFloats(obs, t.Predicted(), t.Actual(), t.Residual())
}

// SequenceOrder selects how order-sensitive tests see the residuals.
type SequenceOrder string

const (
	// OrderResidual feeds tests the table as sorted by residual.
	OrderResidual SequenceOrder = "residual"
	// OrderObservation restores the evaluation frame's row order.
	OrderObservation SequenceOrder = "observation"
)

// ParseSequenceOrder validates a sequence order name. Empty means residual.
func ParseSequenceOrder(s string) (SequenceOrder, error) {
	switch SequenceOrder(s) {
	case "", OrderResidual:
		return OrderResidual, nil
	case OrderObservation:
		return OrderObservation, nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrInvalidOrder, s)
	}
}
