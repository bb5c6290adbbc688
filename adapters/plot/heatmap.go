package plot

import (
	"fmt"
	"io"
	"math"

	"goresid/domain/diagnostics"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	heatmapTop    = 48
	heatmapLeft   = 96
	heatmapRight  = 24
	heatmapBottom = 72
)

// heatmap draws the lower triangle of the rounded correlation matrix with a
// blue-white-red scale. go-chart has no heatmap series, so cells are drawn
// straight onto the renderer.
func heatmap(c *diagnostics.CorrelationResult) renderFunc {
	return func(w io.Writer, title string, opts Options, rp chart.RendererProvider) error {
		r, err := rp(opts.Width, opts.Height)
		if err != nil {
			return err
		}
		font, err := chart.GetDefaultFont()
		if err != nil {
			return err
		}
		r.SetFont(font)
		r.SetFontColor(drawing.ColorBlack)

		r.SetFillColor(drawing.ColorWhite)
		rect(r, 0, 0, opts.Width, opts.Height)
		r.Fill()

		r.SetFontSize(14)
		tb := r.MeasureText(title)
		r.Text(title, (opts.Width-tb.Width())/2, heatmapTop/2+tb.Height()/2)

		k := len(c.Features)
		if k == 0 {
			return r.Save(w)
		}
		cell := (opts.Width - heatmapLeft - heatmapRight) / k
		if h := (opts.Height - heatmapTop - heatmapBottom) / k; h < cell {
			cell = h
		}
		if cell < 1 {
			return fmt.Errorf("canvas %dx%d too small for %d features", opts.Width, opts.Height, k)
		}

		r.SetFontSize(10)
		r.SetStrokeColor(drawing.ColorWhite)
		r.SetStrokeWidth(1)
		for i := 0; i < k; i++ {
			y := heatmapTop + i*cell
			lb := r.MeasureText(c.Features[i])
			r.SetFontColor(drawing.ColorBlack)
			r.Text(c.Features[i], heatmapLeft-lb.Width()-6, y+cell/2+lb.Height()/2)
			for j := 0; j < k; j++ {
				if c.Mask[i][j] {
					continue
				}
				x := heatmapLeft + j*cell
				v := c.Rounded[i][j]
				r.SetFillColor(diverging(v))
				rect(r, x, y, cell, cell)
				r.FillStroke()

				label := fmt.Sprintf("%.2f", v)
				vb := r.MeasureText(label)
				if math.Abs(v) > 0.6 {
					r.SetFontColor(drawing.ColorWhite)
				} else {
					r.SetFontColor(drawing.ColorBlack)
				}
				r.Text(label, x+(cell-vb.Width())/2, y+(cell+vb.Height())/2)
			}
		}
		r.SetFontColor(drawing.ColorBlack)
		for j := 0; j < k; j++ {
			lb := r.MeasureText(c.Features[j])
			r.Text(c.Features[j], heatmapLeft+j*cell+(cell-lb.Width())/2, heatmapTop+k*cell+lb.Height()+6)
		}
		return r.Save(w)
	}
}

func rect(r chart.Renderer, x, y, w, h int) {
	r.MoveTo(x, y)
	r.LineTo(x+w, y)
	r.LineTo(x+w, y+h)
	r.LineTo(x, y+h)
	r.Close()
}

// diverging maps [-1, 1] onto blue, white, red.
func diverging(v float64) drawing.Color {
	if math.IsNaN(v) {
		return drawing.ColorBlack
	}
	v = math.Max(-1, math.Min(1, v))
	fade := uint8(math.Round(255 * (1 - math.Abs(v))))
	if v >= 0 {
		return drawing.Color{R: 255, G: fade, B: fade, A: 255}
	}
	return drawing.Color{R: fade, G: fade, B: 255, A: 255}
}
