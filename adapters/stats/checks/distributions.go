package checks

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquarePValue returns the upper tail probability of a chi-squared
// statistic.
func ChiSquarePValue(chiSquare float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 {
		return 1.0
	}
	chiDist := distuv.ChiSquared{K: float64(degreesOfFreedom)}
	return chiDist.Survival(chiSquare)
}

// FTestPValue returns the upper tail probability of an F statistic.
func FTestPValue(fStatistic float64, df1, df2 int) float64 {
	if df1 <= 0 || df2 <= 0 {
		return 1.0
	}
	if math.IsInf(fStatistic, 1) {
		return 0
	}
	fDist := distuv.F{D1: float64(df1), D2: float64(df2)}
	return fDist.Survival(fStatistic)
}

// NormalSurvival computes the upper tail of the standard normal.
func NormalSurvival(x float64) float64 {
	return distuv.UnitNormal.Survival(x)
}

// NormalQuantile computes quantile function for standard normal (inverse CDF)
func NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// NormalLogCDF is log Φ(x), accurate far into the lower tail where Φ(x)
// underflows.
func NormalLogCDF(x float64) float64 {
	if x > -30 {
		return math.Log(0.5 * math.Erfc(-x/math.Sqrt2))
	}
	// Asymptotic series: Φ(x) ≈ φ(x)/|x| · (1 - 1/x² + 3/x⁴).
	x2 := x * x
	return -0.5*x2 - math.Log(-x) - 0.5*math.Log(2*math.Pi) + math.Log1p(-1/x2+3/(x2*x2))
}

// NormalLogSurvival is log(1 - Φ(x)).
func NormalLogSurvival(x float64) float64 {
	return NormalLogCDF(-x)
}
