package checks

import (
	"math"

	"goresid/domain/diagnostics"

	"gonum.org/v1/gonum/stat"
)

// NormalProbabilityPlot pairs ordered data with normal quantiles of
// Filliben's uniform order statistic medians and fits a least-squares line
// through the points.
func NormalProbabilityPlot(data []float64) (*diagnostics.QQResult, error) {
	if err := requireN("qq plot", len(data), 2); err != nil {
		return nil, err
	}

	ordered := sortedCopy(data)
	theoretical := make([]float64, len(ordered))
	for i, m := range fillibenMedians(len(ordered)) {
		theoretical[i] = NormalQuantile(m)
	}

	intercept, slope := stat.LinearRegression(theoretical, ordered, nil, false)
	r := 0.0
	if stat.StdDev(ordered, nil) > 0 {
		r = stat.Correlation(theoretical, ordered, nil)
	}

	return &diagnostics.QQResult{
		Theoretical: theoretical,
		Ordered:     ordered,
		Slope:       slope,
		Intercept:   intercept,
		R:           r,
	}, nil
}

func fillibenMedians(n int) []float64 {
	m := make([]float64, n)
	last := math.Pow(0.5, 1/float64(n))
	m[n-1] = last
	m[0] = 1 - last
	for i := 2; i < n; i++ {
		m[i-1] = (float64(i) - 0.3175) / (float64(n) + 0.365)
	}
	return m
}
