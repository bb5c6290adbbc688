package ports

import (
	"io"

	"goresid/domain/diagnostics"
)

// FigureSink hands out one render target per figure. Callers close the
// returned writer once the figure is written.
type FigureSink interface {
	Target(fig diagnostics.Figure) (io.WriteCloser, error)
}
