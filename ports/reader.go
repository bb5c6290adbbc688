package ports

import (
	"context"

	"goresid/domain/dataset"
)

// FrameReader loads an evaluation table.
type FrameReader interface {
	ReadFrame(ctx context.Context) (*dataset.Frame, error)
}
