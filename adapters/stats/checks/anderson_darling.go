package checks

import (
	"math"

	"goresid/domain/diagnostics"

	"gonum.org/v1/gonum/stat"
)

// Significance levels (percent) and asymptotic critical values for the
// normal case with estimated mean and variance.
var (
	adSignificance = []float64{15, 10, 5, 2.5, 1}
	adCritical     = []float64{0.576, 0.656, 0.787, 0.918, 1.092}
)

// AndersonDarling computes A² against a normal with the sample mean and
// standard deviation, and decides each tabulated level. Critical values are
// corrected by 1 + 4/n - 25/n² and rounded to three decimals.
func AndersonDarling(data []float64) (*diagnostics.AndersonDarlingResult, error) {
	const test = "anderson-darling"
	n := len(data)
	if err := requireN(test, n, 3); err != nil {
		return nil, err
	}

	x := sortedCopy(data)
	mean, std := stat.MeanStdDev(x, nil)
	if std <= 0 || math.IsNaN(std) {
		return nil, degenerate(test, "sample has zero variance")
	}

	an := float64(n)
	sum := 0.0
	for i := 0; i < n; i++ {
		lo := (x[i] - mean) / std
		hi := (x[n-1-i] - mean) / std
		sum += float64(2*i+1) / an * (NormalLogCDF(lo) + NormalLogSurvival(hi))
	}
	a2 := -an - sum

	factor := 1 + 4/an - 25/(an*an)
	result := &diagnostics.AndersonDarlingResult{Statistic: a2}
	for i, sig := range adSignificance {
		critical := math.Round(adCritical[i]/factor*1000) / 1000
		result.Levels = append(result.Levels, diagnostics.AndersonDarlingLevel(a2, sig, critical))
	}
	return result, nil
}
