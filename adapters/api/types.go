package api

import (
	"fmt"

	"goresid/domain/core"
	"goresid/domain/dataset"
)

// DiagnosticsRequest is the POST /v1/diagnostics body. Rows are row-major
// and follow Columns. Target pairs with rows by position unless both Index
// and TargetIndex are given.
type DiagnosticsRequest struct {
	RunID         string      `json:"run_id,omitempty"`
	ModelID       string      `json:"model_id"`
	Alpha         float64     `json:"alpha,omitempty"`
	SequenceOrder string      `json:"sequence_order,omitempty"`
	Columns       []string    `json:"columns"`
	Rows          [][]float64 `json:"rows"`
	Index         []string    `json:"index,omitempty"`
	Target        []float64   `json:"target"`
	TargetIndex   []string    `json:"target_index,omitempty"`
}

// frame converts the row-major body into a column frame and target series.
func (r *DiagnosticsRequest) frame() (*dataset.Frame, *dataset.Series, error) {
	values := make([][]float64, len(r.Columns))
	for j := range values {
		values[j] = make([]float64, len(r.Rows))
	}
	for i, row := range r.Rows {
		if len(row) != len(r.Columns) {
			return nil, nil, core.NewShapeError(fmt.Sprintf("row %d", i), len(row), len(r.Columns))
		}
		for j, v := range row {
			values[j][i] = v
		}
	}
	frame, err := dataset.NewFrame(r.Columns, values, r.Index)
	if err != nil {
		return nil, nil, err
	}
	target, err := dataset.NewSeries("target", r.Target, r.TargetIndex)
	if err != nil {
		return nil, nil, err
	}
	return frame, target, nil
}

// ModelInfo is one entry of GET /v1/models.
type ModelInfo struct {
	ID        string   `json:"id"`
	Variables string   `json:"variables"`
	Features  []string `json:"features"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
