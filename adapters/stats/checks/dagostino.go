package checks

import (
	"math"

	"goresid/domain/diagnostics"
)

const dagostinoMinN = 8

// DAgostino combines the skewness and kurtosis z-scores into
// K² = Z_s² + Z_k², referred to a chi-squared(2) distribution.
func DAgostino(data []float64) (*diagnostics.DAgostinoResult, error) {
	const test = "dagostino-pearson"
	n := len(data)
	if err := requireN(test, n, dagostinoMinN); err != nil {
		return nil, err
	}
	s, err := sampleShape(test, data)
	if err != nil {
		return nil, err
	}

	zs := skewZ(s.skew, float64(n))
	zk := kurtosisZ(s.kurtosis, float64(n))
	if math.IsNaN(zs) || math.IsNaN(zk) {
		return nil, degenerate(test, "z-score undefined for this sample")
	}

	k2 := zs*zs + zk*zk
	return &diagnostics.DAgostinoResult{
		Statistic: k2,
		PValue:    ChiSquarePValue(k2, 2),
		SkewZ:     zs,
		KurtosisZ: zk,
	}, nil
}

// skewZ is D'Agostino's (1970) transformation of sample skewness.
func skewZ(b1, n float64) float64 {
	y := b1 * math.Sqrt((n+1)*(n+3)/(6*(n-2)))
	beta2 := 3 * (n*n + 27*n - 70) * (n + 1) * (n + 3) / ((n - 2) * (n + 5) * (n + 7) * (n + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	delta := 1 / math.Sqrt(0.5*math.Log(w2))
	alpha := math.Sqrt(2 / (w2 - 1))
	return delta * math.Asinh(y/alpha)
}

// kurtosisZ is Anscombe and Glynn's (1983) transformation of sample
// kurtosis b2 (normal = 3).
func kurtosisZ(b2, n float64) float64 {
	e := 3 * (n - 1) / (n + 1)
	varb2 := 24 * n * (n - 2) * (n - 3) / ((n + 1) * (n + 1) * (n + 3) * (n + 5))
	x := (b2 - e) / math.Sqrt(varb2)
	sqrtBeta1 := 6 * (n*n - 5*n + 2) / ((n + 7) * (n + 9)) * math.Sqrt(6*(n+3)*(n+5)/(n*(n-2)*(n-3)))
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))
	term1 := 1 - 2/(9*a)
	denom := 1 + x*math.Sqrt(2/(a-4))
	if denom == 0 {
		return math.NaN()
	}
	term2 := math.Copysign(math.Cbrt((1-2/a)/math.Abs(denom)), denom)
	return (term1 - term2) / math.Sqrt(2/(9*a))
}
