package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"goresid/app"
	"goresid/domain/core"
	"goresid/domain/diagnostics"
	"goresid/internal"
	"goresid/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runReport(t *testing.T, order diagnostics.SequenceOrder) *diagnostics.Report {
	t.Helper()
	sc, err := testkit.NewScenario(testkit.DefaultScenarioConfig())
	require.NoError(t, err)
	svc := app.NewDiagnosticsService(sc.Models, sc.Scoring, app.WithLogger(internal.NewNopLogger()))
	r, err := svc.Run(context.Background(), app.RunRequest{
		RunID:   core.RunID("fixed"),
		ModelID: sc.ModelID,
		Frame:   sc.Frame,
		Target:  sc.Target,
		Order:   order,
	})
	require.NoError(t, err)
	return r
}

func TestWriteText_SectionsInStepOrder(t *testing.T) {
	r := runReport(t, diagnostics.OrderResidual)
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, r))
	out := buf.String()

	headers := []string{
		"Most negative residuals",
		"Most positive residuals",
		"*** Test data residuals statistics ***",
		"[figure residual_histogram]",
		"[figure residual_density]",
		"[figure residual_qq]",
		"*** Jarque-Bera test for normality of residuals ***",
		"Shapiro-Wilk test for normality",
		"Anderson-Darling test for normality",
		"Normal test for normality",
		"*** Durbin-Watson residual autocorrelation test ***",
		"*** Investigating homoscedasticity of residuals ***",
		"*** Breusch-Pagan homoscedasticity test***",
		"*** Variance Inflation Factor (VIF) table***",
		"*** Correlation Matrix ***",
	}
	last := -1
	for _, h := range headers {
		idx := strings.Index(out, h)
		require.GreaterOrEqual(t, idx, 0, "missing %q", h)
		assert.Greater(t, idx, last, "%q out of order", h)
		last = idx
	}

	assert.Contains(t, out, r.OrderCaveat())
	assert.Contains(t, out, r.JarqueBera.Verdict.Text)
	assert.Contains(t, out, r.DurbinWatson.Text)
	assert.Contains(t, out, r.VIF.Text)
	for _, level := range r.AndersonDarling.Levels {
		assert.Contains(t, out, level.Text)
	}
}

func TestWriteText_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, WriteText(&a, runReport(t, diagnostics.OrderResidual)))
	require.NoError(t, WriteText(&b, runReport(t, diagnostics.OrderResidual)))
	assert.Equal(t, a.String(), b.String())
}

func TestWriteText_ObservationOrderHasNoCaveat(t *testing.T) {
	r := runReport(t, diagnostics.OrderObservation)
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, r))
	assert.NotContains(t, buf.String(), "residual-sorted")
}

func TestWriteMarkdown(t *testing.T) {
	r := runReport(t, diagnostics.OrderResidual)
	md := string(Markdown(r))

	assert.True(t, strings.HasPrefix(md, "# Residual diagnostics: ols"))
	assert.Contains(t, md, "| x1 | | | |")
	assert.Contains(t, md, "![Residuals qq plot](residual_qq)")
	assert.Contains(t, md, "## Variance inflation factors")
	assert.Contains(t, md, "> "+r.OrderCaveat())
}

func TestWriteHTML(t *testing.T) {
	r := runReport(t, diagnostics.OrderResidual)
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "<title>Residual diagnostics: ols</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "Breusch-Pagan</h2>")
}

func TestWriteJSON(t *testing.T) {
	r := runReport(t, diagnostics.OrderResidual)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, r))

	var decoded diagnostics.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r.ModelID, decoded.ModelID)
	assert.Equal(t, r.Residuals.Len(), decoded.Residuals.Len())
	assert.Equal(t, r.VIF.Max, decoded.VIF.Max)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("MD")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)

	assert.Error(t, Write(&bytes.Buffer{}, &diagnostics.Report{}, Format("pdf")))
}
