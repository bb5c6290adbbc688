package report

import (
	"encoding/json"
	"io"

	"goresid/domain/diagnostics"
)

// WriteJSON encodes the full report, residual table included.
func WriteJSON(w io.Writer, r *diagnostics.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
