package config

import (
	"testing"

	"goresid/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 0.05, cfg.Diagnostics.Alpha)
	assert.Equal(t, "residual", cfg.Diagnostics.SequenceOrder)
	assert.Equal(t, 4, cfg.Server.MaxConcurrentRuns)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"DIAG_ALPHA":               "0.01",
		"DIAG_SEQUENCE_ORDER":      "observation",
		"DIAG_PLOT_FORMAT":         "SVG",
		"DIAG_PLOT_WIDTH":          "1024",
		"DIAG_REPORT_FORMAT":       "markdown",
		"DIAG_HTTP_ADDR":           "127.0.0.1:9000",
		"DIAG_MAX_CONCURRENT_RUNS": "2",
		"DIAG_REGISTRY":            "/etc/goresid/models.yaml",
		"LOG_LEVEL":                "debug",
	}))
	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.Diagnostics.Alpha)
	assert.Equal(t, "observation", cfg.Diagnostics.SequenceOrder)
	assert.Equal(t, "svg", cfg.Plot.Format)
	assert.Equal(t, 1024, cfg.Plot.Width)
	assert.Equal(t, 600, cfg.Plot.Height)
	assert.Equal(t, "markdown", cfg.Report.Format)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 2, cfg.Server.MaxConcurrentRuns)
	assert.Equal(t, "/etc/goresid/models.yaml", cfg.Registry)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"alpha zero", map[string]string{"DIAG_ALPHA": "0"}},
		{"alpha one", map[string]string{"DIAG_ALPHA": "1"}},
		{"alpha text", map[string]string{"DIAG_ALPHA": "five percent"}},
		{"order", map[string]string{"DIAG_SEQUENCE_ORDER": "random"}},
		{"plot format", map[string]string{"DIAG_PLOT_FORMAT": "gif"}},
		{"report format", map[string]string{"DIAG_REPORT_FORMAT": "pdf"}},
		{"runs", map[string]string{"DIAG_MAX_CONCURRENT_RUNS": "0"}},
		{"width", map[string]string{"DIAG_PLOT_WIDTH": "wide"}},
		{"log level", map[string]string{"LOG_LEVEL": "chatty"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(envMap(tt.env))
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
