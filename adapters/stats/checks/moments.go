package checks

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// shape holds population (biased) moment ratios of a sample.
type shape struct {
	n        int
	mean     float64
	m2       float64
	skew     float64 // m3 / m2^1.5
	kurtosis float64 // m4 / m2^2, normal = 3
}

// sampleShape computes biased skewness and kurtosis from central moments.
func sampleShape(test string, x []float64) (shape, error) {
	s := shape{n: len(x)}
	s.mean = stat.Mean(x, nil)
	s.m2 = stat.Moment(2, x, nil)
	if s.m2 <= 0 || math.IsNaN(s.m2) {
		return s, degenerate(test, "sample has zero variance")
	}
	m3 := stat.Moment(3, x, nil)
	m4 := stat.Moment(4, x, nil)
	s.skew = m3 / math.Pow(s.m2, 1.5)
	s.kurtosis = m4 / (s.m2 * s.m2)
	return s, nil
}
