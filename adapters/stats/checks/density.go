package checks

import (
	"math"

	"goresid/domain/diagnostics"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	densityGridSize = 200
	densityCut      = 3.0
)

// KernelDensity evaluates a Gaussian kernel density estimate with Scott's
// bandwidth on an evenly spaced grid reaching densityCut bandwidths past the
// extreme observations.
func KernelDensity(data []float64) (*diagnostics.DensityResult, error) {
	if err := requireN("kernel density", len(data), 2); err != nil {
		return nil, err
	}
	std := stat.StdDev(data, nil)
	if std <= 0 || math.IsNaN(std) {
		return nil, degenerate("kernel density", "sample has zero variance")
	}

	n := float64(len(data))
	bw := math.Pow(n, -1.0/5.0) * std

	lo := floats.Min(data) - densityCut*bw
	hi := floats.Max(data) + densityCut*bw
	xs := make([]float64, densityGridSize)
	floats.Span(xs, lo, hi)

	ys := make([]float64, densityGridSize)
	for i, x := range xs {
		sum := 0.0
		for _, v := range data {
			sum += distuv.UnitNormal.Prob((x - v) / bw)
		}
		ys[i] = sum / (n * bw)
	}
	return &diagnostics.DensityResult{Bandwidth: bw, X: xs, Y: ys}, nil
}
