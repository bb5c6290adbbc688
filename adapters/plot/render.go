package plot

import (
	"context"
	"fmt"
	"io"

	"goresid/domain/diagnostics"
	"goresid/internal"
	"goresid/ports"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Render draws one figure of r into w.
func Render(w io.Writer, r *diagnostics.Report, fig diagnostics.Figure, opts Options) error {
	opts = opts.normalized()
	rp, err := opts.provider()
	if err != nil {
		return err
	}
	draw, err := figureFunc(r, fig.Name)
	if err != nil {
		return err
	}
	if err := draw(w, fig.Title, opts, rp); err != nil {
		return fmt.Errorf("render %s: %w", fig.Name, err)
	}
	return nil
}

// RenderAll draws every figure of r into targets handed out by sink.
func RenderAll(ctx context.Context, r *diagnostics.Report, sink ports.FigureSink, opts Options, logger *internal.Logger) error {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	for _, fig := range r.Figures() {
		if err := ctx.Err(); err != nil {
			return err
		}
		target, err := sink.Target(fig)
		if err != nil {
			return fmt.Errorf("open target for %s: %w", fig.Name, err)
		}
		err = Render(target, r, fig, opts)
		if cerr := target.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		logger.Debug("Rendered figure %s", fig.Name)
	}
	return nil
}

func figureFunc(r *diagnostics.Report, name string) (renderFunc, error) {
	missing := fmt.Errorf("figure %s: step result not in report", name)
	switch name {
	case diagnostics.FigureHistogram:
		if r.Histogram == nil {
			return nil, missing
		}
		return histogram(r.Histogram), nil
	case diagnostics.FigureDensity:
		if r.Density == nil {
			return nil, missing
		}
		return density(r.Density), nil
	case diagnostics.FigureQQ:
		if r.QQ == nil {
			return nil, missing
		}
		return qq(r.QQ), nil
	case diagnostics.FigurePredictedResidual:
		if r.Homoscedasticity == nil {
			return nil, missing
		}
		return predictedResidual(r.Homoscedasticity), nil
	case diagnostics.FigureActualPredicted:
		if r.Homoscedasticity == nil {
			return nil, missing
		}
		return actualPredicted(r.Homoscedasticity), nil
	case diagnostics.FigureCorrelation:
		if r.Correlation == nil {
			return nil, missing
		}
		return heatmap(r.Correlation), nil
	default:
		return nil, fmt.Errorf("unknown figure %q", name)
	}
}

var (
	lineStyle = chart.Style{
		StrokeWidth: 2,
		StrokeColor: chart.ColorBlue,
	}
	refStyle = chart.Style{
		StrokeWidth: 1.5,
		StrokeColor: chart.ColorRed,
	}
)

// pointStyle renders points only.
func pointStyle() chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    3,
		DotColor:    chart.ColorBlue,
	}
}

// axisRange pads a degenerate span so go-chart never sees a zero-width range.
func axisRange(values ...[]float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	first := true
	for _, vs := range values {
		for _, v := range vs {
			if first || v < lo {
				lo = v
			}
			if first || v > hi {
				hi = v
			}
			first = false
		}
	}
	if hi-lo == 0 {
		lo, hi = lo-0.5, hi+0.5
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func xyChart(title string, opts Options, xName, yName string, xs, ys []float64, series ...chart.Series) chart.Chart {
	return chart.Chart{
		Title:      title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: xName, Range: axisRange(xs)},
		YAxis:      chart.YAxis{Name: yName, Range: axisRange(ys)},
		Series:     series,
	}
}

func histogram(h *diagnostics.HistogramResult) renderFunc {
	return func(w io.Writer, title string, opts Options, rp chart.RendererProvider) error {
		// Outline of the bars as a filled step polyline.
		xs := make([]float64, 0, 2*len(h.Counts)+2)
		ys := make([]float64, 0, 2*len(h.Counts)+2)
		xs = append(xs, h.Edges[0])
		ys = append(ys, 0)
		heights := make([]float64, len(h.Counts))
		for i, c := range h.Counts {
			heights[i] = float64(c)
			xs = append(xs, h.Edges[i], h.Edges[i+1])
			ys = append(ys, heights[i], heights[i])
		}
		xs = append(xs, h.Edges[len(h.Edges)-1])
		ys = append(ys, 0)

		bars := chart.ContinuousSeries{
			Name: "count",
			Style: chart.Style{
				StrokeWidth: 1,
				StrokeColor: chart.ColorBlue,
				FillColor:   chart.ColorBlue.WithAlpha(96),
			},
			XValues: xs,
			YValues: ys,
		}
		c := xyChart(title, opts, "Residuals", "Count", h.Edges, append(heights, 0), bars)
		return c.Render(rp, w)
	}
}

func density(d *diagnostics.DensityResult) renderFunc {
	return func(w io.Writer, title string, opts Options, rp chart.RendererProvider) error {
		s := chart.ContinuousSeries{Name: "density", Style: lineStyle, XValues: d.X, YValues: d.Y}
		c := xyChart(title, opts, "Residuals", "Density", d.X, append([]float64{0}, d.Y...), s)
		return c.Render(rp, w)
	}
}

func qq(q *diagnostics.QQResult) renderFunc {
	return func(w io.Writer, title string, opts Options, rp chart.RendererProvider) error {
		points := chart.ContinuousSeries{Name: "ordered", Style: pointStyle(), XValues: q.Theoretical, YValues: q.Ordered}
		lo, hi := axisRange(q.Theoretical).Min, axisRange(q.Theoretical).Max
		fit := chart.ContinuousSeries{
			Name:    "fit",
			Style:   refStyle,
			XValues: []float64{lo, hi},
			YValues: []float64{q.Intercept + q.Slope*lo, q.Intercept + q.Slope*hi},
		}
		c := xyChart(title, opts, "Theoretical quantiles", "Ordered residuals", q.Theoretical, append(append([]float64{}, q.Ordered...), fit.YValues...), points, fit)
		return c.Render(rp, w)
	}
}

func predictedResidual(h *diagnostics.HomoscedasticityResult) renderFunc {
	return func(w io.Writer, title string, opts Options, rp chart.RendererProvider) error {
		s := chart.ContinuousSeries{Name: "residual", Style: pointStyle(), XValues: h.Predicted, YValues: h.Residual}
		c := xyChart(title, opts, "Predicted", "Residuals", h.Predicted, h.Residual, s)
		return c.Render(rp, w)
	}
}

func actualPredicted(h *diagnostics.HomoscedasticityResult) renderFunc {
	return func(w io.Writer, title string, opts Options, rp chart.RendererProvider) error {
		s := chart.ContinuousSeries{Name: "predicted", Style: pointStyle(), XValues: h.Actual, YValues: h.Predicted}
		line := chart.ContinuousSeries{
			Name:    "identity",
			Style:   refStyle,
			XValues: []float64{h.LineMin, h.LineMax},
			YValues: []float64{h.LineMin, h.LineMax},
		}
		span := []float64{h.LineMin, h.LineMax}
		c := xyChart(title, opts, "Actual", "Predicted", span, span, s, line)
		return c.Render(rp, w)
	}
}
