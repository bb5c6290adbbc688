package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"goresid/domain/diagnostics"
)

// WriteMarkdown renders the report as a Markdown document with one section
// per step and tables for the tabular results.
func WriteMarkdown(w io.Writer, r *diagnostics.Report) error {
	_, err := w.Write(Markdown(r))
	return err
}

// Markdown returns the Markdown rendering of r.
func Markdown(r *diagnostics.Report) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Residual diagnostics: %s\n\n", r.ModelID)
	fmt.Fprintf(&b, "- Variables: `%s` (%s)\n", r.Variables, strings.Join(r.Features, ", "))
	fmt.Fprintf(&b, "- Observations: %d\n", r.Observations)
	fmt.Fprintf(&b, "- Significance level: %s\n", diagnostics.FormatAlpha(r.Alpha))
	fmt.Fprintf(&b, "- Sequence order: %s\n", r.Ordering)
	if caveat := r.OrderCaveat(); caveat != "" {
		fmt.Fprintf(&b, "\n> %s\n", caveat)
	}
	b.WriteString("\n")

	for _, res := range r.Results() {
		markdownSection(&b, res)
	}
	return b.Bytes()
}

func markdownSection(b *bytes.Buffer, res diagnostics.Result) {
	switch v := res.(type) {
	case *diagnostics.DescriptiveResult:
		b.WriteString("## Residual statistics\n\n| |")
		for _, c := range v.Columns {
			fmt.Fprintf(b, " %s |", c.Name)
		}
		b.WriteString("\n|---|")
		for range v.Columns {
			b.WriteString("---:|")
		}
		b.WriteString("\n")
		for _, row := range describeRows {
			fmt.Fprintf(b, "| %s |", row.label)
			for _, c := range v.Columns {
				fmt.Fprintf(b, " %.6f |", row.get(c))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	case *diagnostics.HistogramResult, *diagnostics.DensityResult, *diagnostics.QQResult, *diagnostics.HomoscedasticityResult:
		for _, fig := range res.(diagnostics.Visual).Figures() {
			fmt.Fprintf(b, "## %s\n\n![%s](%s)\n\n", fig.Title, fig.Title, fig.Name)
		}
	case *diagnostics.JarqueBeraResult:
		b.WriteString("## Jarque-Bera\n\n| statistic | p-value | skew | kurtosis |\n|---:|---:|---:|---:|\n")
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n\n%s\n\n", num(v.Statistic), num(v.PValue), num(v.Skew), num(v.Kurtosis), v.Verdict.Text)
	case *diagnostics.ShapiroWilkResult:
		fmt.Fprintf(b, "## Shapiro-Wilk\n\nW = %s, p = %s\n\n%s\n\n", num(v.Statistic), num(v.PValue), v.Verdict.Text)
	case *diagnostics.AndersonDarlingResult:
		fmt.Fprintf(b, "## Anderson-Darling\n\nA² = %.3f\n\n| significance (%%) | critical value | decision |\n|---:|---:|---|\n", v.Statistic)
		for _, l := range v.Levels {
			fmt.Fprintf(b, "| %.1f | %.3f | %s |\n", l.Significance, l.CriticalValue, l.Decision)
		}
		b.WriteString("\n")
	case *diagnostics.DAgostinoResult:
		fmt.Fprintf(b, "## D'Agostino-Pearson\n\nK² = %.3f, p = %.3f\n\n%s\n\n", v.Statistic, v.PValue, v.Verdict.Text)
	case *diagnostics.DurbinWatsonResult:
		fmt.Fprintf(b, "## Durbin-Watson\n\nd = %s (%s order)\n\n%s\n\n", num(v.Statistic), v.Ordering, v.Text)
	case *diagnostics.BreuschPaganResult:
		b.WriteString("## Breusch-Pagan\n\n| LM | LM p-value | F | F p-value |\n|---:|---:|---:|---:|\n")
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n\n%s\n\n", num(v.LM), num(v.LMPValue), num(float64(v.F)), num(v.FPValue), v.Verdict.Text)
	case *diagnostics.VIFResult:
		b.WriteString("## Variance inflation factors\n\n| feature | VIF |\n|---|---:|\n")
		for _, row := range v.Rows {
			fmt.Fprintf(b, "| %s | %s |\n", row.Feature, num(float64(row.VIF)))
		}
		fmt.Fprintf(b, "\n%s\n\n", v.Text)
	case *diagnostics.CorrelationResult:
		b.WriteString("## Correlation matrix\n\n| |")
		for _, f := range v.Features {
			fmt.Fprintf(b, " %s |", f)
		}
		b.WriteString("\n|---|")
		for range v.Features {
			b.WriteString("---:|")
		}
		b.WriteString("\n")
		for i, f := range v.Features {
			fmt.Fprintf(b, "| %s |", f)
			for j := range v.Features {
				if v.Mask[i][j] {
					b.WriteString(" |")
				} else {
					fmt.Fprintf(b, " %.2f |", v.Rounded[i][j])
				}
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
}
