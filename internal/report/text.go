// Package report renders a diagnostics report for people: console text in
// the order the checks ran, Markdown, a standalone HTML page, or JSON.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"goresid/domain/diagnostics"
)

// Format names a report writer.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatMarkdown, FormatHTML, FormatJSON:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Write renders r in the given format.
func Write(w io.Writer, r *diagnostics.Report, f Format) error {
	switch f {
	case FormatText:
		return WriteText(w, r)
	case FormatMarkdown:
		return WriteMarkdown(w, r)
	case FormatHTML:
		return WriteHTML(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	default:
		return fmt.Errorf("unknown report format %q", f)
	}
}

// WriteText prints statistics and verdict sentences interleaved, one block
// per step. The run identifier is left out so identical inputs print
// identical text.
func WriteText(w io.Writer, r *diagnostics.Report) error {
	bw := bufio.NewWriter(w)
	tp := &textPrinter{w: bw}

	tp.printf("Residual diagnostics for model %s (variables %s, n=%d, alpha=%s)\n",
		r.ModelID, r.Variables, r.Observations, diagnostics.FormatAlpha(r.Alpha))
	if caveat := r.OrderCaveat(); caveat != "" {
		tp.printf("%s\n", caveat)
	}
	tp.printf("\n")

	if r.Residuals != nil && r.Residuals.Len() > 0 {
		tp.printf("Most negative residuals\n")
		tp.rows(r.Residuals.Head(extremeRows))
		tp.printf("Most positive residuals\n")
		tp.rows(r.Residuals.Tail(extremeRows))
		tp.printf("\n")
	}
	for _, res := range r.Results() {
		tp.result(res)
	}
	if tp.err != nil {
		return tp.err
	}
	return bw.Flush()
}

// extremeRows is how many rows of each end of the residual table are shown.
const extremeRows = 5

type textPrinter struct {
	w   io.Writer
	err error
}

func (p *textPrinter) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *textPrinter) figures(v diagnostics.Visual) {
	for _, fig := range v.Figures() {
		p.printf("[figure %s] %s\n", fig.Name, fig.Title)
	}
}

func (p *textPrinter) result(res diagnostics.Result) {
	switch v := res.(type) {
	case *diagnostics.DescriptiveResult:
		p.printf("*** Test data residuals statistics ***\n")
		p.describe(v)
	case *diagnostics.HistogramResult:
		p.figures(v)
		p.printf("bins=%d\n\n", len(v.Counts))
	case *diagnostics.DensityResult:
		p.figures(v)
		p.printf("bandwidth=%s\n\n", num(v.Bandwidth))
	case *diagnostics.QQResult:
		p.figures(v)
		p.printf("slope=%s, intercept=%s, r=%s\n\n", num(v.Slope), num(v.Intercept), num(v.R))
	case *diagnostics.JarqueBeraResult:
		p.printf("*** Jarque-Bera test for normality of residuals ***\n")
		p.printf("Jarque-Bera: %s\n", num(v.Statistic))
		p.printf("Chi^2 two-tail prob.: %s\n", num(v.PValue))
		p.printf("Skew: %s\n", num(v.Skew))
		p.printf("Kurtosis: %s\n", num(v.Kurtosis))
		p.printf("%s\n\n", v.Verdict.Text)
	case *diagnostics.ShapiroWilkResult:
		p.printf("Shapiro-Wilk test for normality\n")
		p.printf("Statistic=%s, p-value=%s\n", num(v.Statistic), num(v.PValue))
		p.printf("%s\n\n", v.Verdict.Text)
	case *diagnostics.AndersonDarlingResult:
		p.printf("Anderson-Darling test for normality\n")
		p.printf("Statistic: %.3f\n", v.Statistic)
		for _, level := range v.Levels {
			p.printf("%s\n", level.Text)
		}
		p.printf("\n")
	case *diagnostics.DAgostinoResult:
		p.printf("Normal test for normality\n")
		p.printf("Statistics=%.3f, p=%.3f\n", v.Statistic, v.PValue)
		p.printf("%s\n\n", v.Verdict.Text)
	case *diagnostics.DurbinWatsonResult:
		p.printf("*** Durbin-Watson residual autocorrelation test ***\n")
		p.printf("Statistic value - %s\n", num(v.Statistic))
		p.printf("%s\n\n", v.Text)
	case *diagnostics.HomoscedasticityResult:
		p.printf("*** Investigating homoscedasticity of residuals ***\n")
		p.figures(v)
		p.printf("\n")
	case *diagnostics.BreuschPaganResult:
		p.printf("*** Breusch-Pagan homoscedasticity test***\n")
		p.printf("Lagrange multiplier statistic: %s\n", num(v.LM))
		p.printf("p-value: %s\n", num(v.LMPValue))
		p.printf("f-value: %s\n", num(float64(v.F)))
		p.printf("f p-value: %s\n", num(v.FPValue))
		p.printf("%s\n\n", v.Verdict.Text)
	case *diagnostics.VIFResult:
		p.printf("*** Investigating Multicollinearity ***\n")
		p.printf("*** Variance Inflation Factor (VIF) table***\n")
		p.vif(v)
		p.printf("%s\n\n", v.Text)
	case *diagnostics.CorrelationResult:
		p.printf("*** Correlation Matrix ***\n")
		p.correlation(v)
		p.figures(v)
	}
}

var describeRows = []struct {
	label string
	get   func(diagnostics.ColumnSummary) float64
}{
	{"count", func(c diagnostics.ColumnSummary) float64 { return float64(c.Count) }},
	{"mean", func(c diagnostics.ColumnSummary) float64 { return c.Mean }},
	{"std", func(c diagnostics.ColumnSummary) float64 { return c.Std }},
	{"min", func(c diagnostics.ColumnSummary) float64 { return c.Min }},
	{"25%", func(c diagnostics.ColumnSummary) float64 { return c.Q25 }},
	{"50%", func(c diagnostics.ColumnSummary) float64 { return c.Median }},
	{"75%", func(c diagnostics.ColumnSummary) float64 { return c.Q75 }},
	{"max", func(c diagnostics.ColumnSummary) float64 { return c.Max }},
}

func (p *textPrinter) describe(v *diagnostics.DescriptiveResult) {
	if p.err != nil {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for _, c := range v.Columns {
		fmt.Fprintf(tw, "%s\t", c.Name)
	}
	fmt.Fprintln(tw)
	for _, row := range describeRows {
		fmt.Fprintf(tw, "%s\t", row.label)
		for _, c := range v.Columns {
			fmt.Fprintf(tw, "%.6f\t", row.get(c))
		}
		fmt.Fprintln(tw)
	}
	p.err = tw.Flush()
	p.printf("\n")
}

func (p *textPrinter) rows(rows []diagnostics.ResidualRow) {
	if p.err != nil {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "obs\tpredicted\tactual\tresidual\t")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%.6f\t\n", row.Obs, row.Predicted, row.Actual, row.Residual)
	}
	p.err = tw.Flush()
}

func (p *textPrinter) vif(v *diagnostics.VIFResult) {
	if p.err != nil {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tfeature\tVIF")
	for i, row := range v.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, row.Feature, num(float64(row.VIF)))
	}
	p.err = tw.Flush()
}

// correlation prints the rounded matrix with masked cells left blank.
func (p *textPrinter) correlation(v *diagnostics.CorrelationResult) {
	if p.err != nil {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for _, f := range v.Features {
		fmt.Fprintf(tw, "%s\t", f)
	}
	fmt.Fprintln(tw)
	for i, f := range v.Features {
		fmt.Fprintf(tw, "%s\t", f)
		for j := range v.Features {
			if v.Mask[i][j] {
				fmt.Fprint(tw, "\t")
				continue
			}
			fmt.Fprintf(tw, "%.2f\t", v.Rounded[i][j])
		}
		fmt.Fprintln(tw)
	}
	p.err = tw.Flush()
}

// num formats a statistic with the shortest representation that round-trips.
func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
