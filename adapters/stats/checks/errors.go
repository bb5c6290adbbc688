package checks

import (
	"goresid/domain/core"
)

func degenerate(test, reason string) error {
	return core.NewDegenerateError(test, reason)
}

func requireN(test string, n, min int) error {
	if n < min {
		return core.NewInsufficientDataError(test, n, min)
	}
	return nil
}

func shapeMismatch(what string, got, want int) error {
	return core.NewShapeError(what, got, want)
}
