package checks

import (
	"math"
	"sort"

	"goresid/domain/diagnostics"

	"github.com/montanaflynn/stats"
)

// Describe summarises one column: count, mean, sample std, min, linearly
// interpolated quartiles and max.
func Describe(name string, data []float64) (diagnostics.ColumnSummary, error) {
	summary := diagnostics.ColumnSummary{Name: name, Count: len(data)}
	if len(data) == 0 {
		return summary, requireN("describe", 0, 1)
	}

	var err error
	if summary.Mean, err = stats.Mean(data); err != nil {
		return summary, err
	}
	if summary.Min, err = stats.Min(data); err != nil {
		return summary, err
	}
	if summary.Max, err = stats.Max(data); err != nil {
		return summary, err
	}
	if len(data) > 1 {
		if summary.Std, err = stats.StandardDeviationSample(data); err != nil {
			return summary, err
		}
	} else {
		summary.Std = math.NaN()
	}

	sorted := sortedCopy(data)
	summary.Q25 = quantileLinear(sorted, 0.25)
	summary.Median = quantileLinear(sorted, 0.50)
	summary.Q75 = quantileLinear(sorted, 0.75)
	return summary, nil
}

// DescribeResiduals summarises the predicted, actual and residual columns of
// a residual table.
func DescribeResiduals(table *diagnostics.ResidualTable) (*diagnostics.DescriptiveResult, error) {
	columns := []struct {
		name string
		data []float64
	}{
		{"predicted", table.Predicted()},
		{"actual", table.Actual()},
		{"residual", table.Residual()},
	}

	result := &diagnostics.DescriptiveResult{}
	for _, c := range columns {
		summary, err := Describe(c.name, c.data)
		if err != nil {
			return nil, err
		}
		result.Columns = append(result.Columns, summary)
	}
	return result, nil
}

// quantileLinear interpolates between closest ranks at position p·(n-1) of
// an ascending slice.
func quantileLinear(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func sortedCopy(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	sort.Float64s(out)
	return out
}
