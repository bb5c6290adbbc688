package plot

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"goresid/app"
	"goresid/domain/diagnostics"
	"goresid/internal"
	"goresid/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func testReport(t *testing.T) *diagnostics.Report {
	t.Helper()
	cfg := testkit.DefaultScenarioConfig()
	cfg.Rows = 60
	sc, err := testkit.NewScenario(cfg)
	require.NoError(t, err)
	svc := app.NewDiagnosticsService(sc.Models, sc.Scoring, app.WithLogger(internal.NewNopLogger()))
	r, err := svc.Run(context.Background(), app.RunRequest{ModelID: sc.ModelID, Frame: sc.Frame, Target: sc.Target})
	require.NoError(t, err)
	return r
}

func TestRender_EveryFigurePNG(t *testing.T) {
	r := testReport(t)
	for _, fig := range r.Figures() {
		t.Run(fig.Name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, r, fig, Options{Format: FormatPNG, Width: 400, Height: 300}))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestRender_SVG(t *testing.T) {
	r := testReport(t)
	for _, fig := range r.Figures() {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, r, fig, Options{Format: FormatSVG}))
		assert.Contains(t, buf.String(), "<svg", fig.Name)
	}
}

func TestRender_MissingStep(t *testing.T) {
	r := testReport(t)
	r.Correlation = nil
	err := Render(&bytes.Buffer{}, r, diagnostics.Figure{Name: diagnostics.FigureCorrelation}, DefaultOptions())
	assert.Error(t, err)

	err = Render(&bytes.Buffer{}, r, diagnostics.Figure{Name: "pie"}, DefaultOptions())
	assert.Error(t, err)
}

func TestRender_ConstantResidualsStillDraw(t *testing.T) {
	r := &diagnostics.Report{
		Histogram: &diagnostics.HistogramResult{Edges: []float64{2.5, 3.5}, Counts: []int{4}},
		Homoscedasticity: &diagnostics.HomoscedasticityResult{
			Predicted: []float64{3, 3, 3, 3},
			Actual:    []float64{3, 3, 3, 3},
			Residual:  []float64{0, 0, 0, 0},
			LineMin:   3,
			LineMax:   3,
		},
	}
	for _, fig := range r.Figures() {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, r, fig, DefaultOptions()), fig.Name)
	}
}

func TestRenderAll_DirSink(t *testing.T) {
	r := testReport(t)
	opts := Options{Format: FormatSVG, Width: 320, Height: 240}
	sink, err := NewDirSink(t.TempDir(), opts)
	require.NoError(t, err)

	require.NoError(t, RenderAll(context.Background(), r, sink, opts, nil))
	for _, fig := range r.Figures() {
		data, err := os.ReadFile(sink.Path(fig))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(sink.Path(fig), ".svg"))
		assert.NotEmpty(t, data)
	}
}

func TestRenderAll_Canceled(t *testing.T) {
	r := testReport(t)
	sink, err := NewDirSink(t.TempDir(), DefaultOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, RenderAll(ctx, r, sink, DefaultOptions(), nil), context.Canceled)
}

func TestDiverging(t *testing.T) {
	assert.Equal(t, uint8(255), diverging(0).G)
	assert.Equal(t, uint8(0), diverging(1).G)
	assert.Equal(t, uint8(255), diverging(-1).B)
	assert.Equal(t, uint8(0), diverging(-1).R)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("SVG")
	require.NoError(t, err)
	assert.Equal(t, FormatSVG, f)
	_, err = ParseFormat("gif")
	assert.Error(t, err)
}
