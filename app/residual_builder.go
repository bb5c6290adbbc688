package app

import (
	"context"
	"fmt"

	"goresid/domain/core"
	"goresid/domain/dataset"
	"goresid/domain/diagnostics"
	apperrors "goresid/internal/errors"
	"goresid/ports"
)

// ResidualInput carries everything needed to score a model on an evaluation
// frame.
type ResidualInput struct {
	ModelID string
	Frame   *dataset.Frame
	Target  *dataset.Series
	Models  ports.ModelRegistry
	Scoring ports.ScoringRegistry
}

// BuildResiduals resolves the model's feature set, predicts on it and pairs
// predictions with the target by position. The returned table is sorted
// ascending by residual; the prediction set keeps the frame's row order.
func BuildResiduals(ctx context.Context, in ResidualInput) (*diagnostics.ResidualTable, *diagnostics.PredictionSet, error) {
	if in.Frame == nil || in.Target == nil {
		return nil, nil, fmt.Errorf("%w: frame and target are required", core.ErrShapeMismatch)
	}

	entry, ok := in.Models[in.ModelID]
	if !ok {
		return nil, nil, core.NewNotFoundError(core.ErrModelNotFound, in.ModelID)
	}
	features, ok := in.Scoring[entry.Variables]
	if !ok {
		return nil, nil, core.NewNotFoundError(core.ErrAliasNotFound, entry.Variables)
	}
	selected, err := in.Frame.Select(features)
	if err != nil {
		return nil, nil, err
	}
	if err := dataset.CheckAligned(in.Frame, in.Target); err != nil {
		return nil, nil, err
	}

	predicted, err := entry.Model.Predict(ctx, selected)
	if err != nil {
		return nil, nil, apperrors.ModelExecution(in.ModelID, err)
	}
	if len(predicted) != selected.Rows() {
		return nil, nil, core.NewShapeError("predictions", len(predicted), selected.Rows())
	}

	table, err := diagnostics.NewResidualTable(predicted, in.Target.Values)
	if err != nil {
		return nil, nil, err
	}
	return table, &diagnostics.PredictionSet{Alias: entry.Variables, Frame: selected}, nil
}
