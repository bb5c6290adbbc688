package checks

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// rankTolerance is the relative singular value cutoff used to decide the
// numerical rank of a design matrix.
const rankTolerance = 1e-12

// perfectFitTolerance treats SSR/SST below this as an exact fit.
const perfectFitTolerance = 1e-12

var errNoVariance = errors.New("response has zero variance")

// olsFit is the outcome of an intercept-augmented least squares regression.
type olsFit struct {
	beta []float64
	ssr  float64
	sst  float64
	r2   float64
	rank int
}

// fitOLS regresses y on [1, columns...] through a thin SVD, so rank-deficient
// designs still produce the minimum-norm solution.
func fitOLS(y []float64, columns [][]float64) (*olsFit, error) {
	n := len(y)
	k := len(columns) + 1
	x := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
	}
	for j, col := range columns {
		for i, v := range col {
			x.Set(i, j+1, v)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return nil, errors.New("svd factorization failed")
	}
	rank := svd.Rank(rankTolerance)
	if rank == 0 {
		return nil, errors.New("design matrix has rank zero")
	}

	yv := mat.NewVecDense(n, append([]float64(nil), y...))
	var beta mat.VecDense
	svd.SolveVecTo(&beta, yv, rank)

	var fitted mat.VecDense
	fitted.MulVec(x, &beta)

	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(n)

	fit := &olsFit{beta: make([]float64, k), rank: rank}
	for j := range fit.beta {
		fit.beta[j] = beta.AtVec(j)
	}
	for i, v := range y {
		r := v - fitted.AtVec(i)
		d := v - mean
		fit.ssr += r * r
		fit.sst += d * d
	}
	if fit.sst == 0 {
		return fit, errNoVariance
	}
	if fit.ssr <= perfectFitTolerance*fit.sst {
		fit.ssr = 0
	}
	fit.r2 = math.Max(0, 1-fit.ssr/fit.sst)
	return fit, nil
}
