package plot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"goresid/domain/diagnostics"
)

// DirSink writes each figure to <Dir>/<figure name>.<Ext>.
type DirSink struct {
	Dir string
	Ext string
}

// NewDirSink creates dir if needed.
func NewDirSink(dir string, opts Options) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create figure directory: %w", err)
	}
	return &DirSink{Dir: dir, Ext: opts.Ext()}, nil
}

// Path returns where fig is written.
func (s *DirSink) Path(fig diagnostics.Figure) string {
	return filepath.Join(s.Dir, fig.Name+"."+s.Ext)
}

// Target implements ports.FigureSink.
func (s *DirSink) Target(fig diagnostics.Figure) (io.WriteCloser, error) {
	return os.Create(s.Path(fig))
}
