package checks

import (
	"math"

	"goresid/domain/dataset"
	"goresid/domain/diagnostics"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Correlation computes the Pearson matrix of the prediction set, a copy
// rounded to two decimals, and the upper-triangle mask (diagonal included).
func Correlation(features *dataset.Frame) (*diagnostics.CorrelationResult, error) {
	const test = "correlation"
	p := features.Width()
	n := features.Rows()
	if p == 0 {
		return nil, degenerate(test, "prediction set has no columns")
	}
	if err := requireN(test, n, 2); err != nil {
		return nil, err
	}

	data := mat.NewDense(n, p, nil)
	for j, name := range features.Columns {
		col, _ := features.Column(name)
		if constant(col) {
			return nil, degenerate(test, "column "+name+" is constant")
		}
		data.SetCol(j, col)
	}

	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, data, nil)

	result := &diagnostics.CorrelationResult{
		Features: append([]string(nil), features.Columns...),
		Matrix:   make([][]float64, p),
		Rounded:  make([][]float64, p),
		Mask:     make([][]bool, p),
	}
	for i := 0; i < p; i++ {
		result.Matrix[i] = make([]float64, p)
		result.Rounded[i] = make([]float64, p)
		result.Mask[i] = make([]bool, p)
		for j := 0; j < p; j++ {
			v := corr.At(i, j)
			result.Matrix[i][j] = v
			result.Rounded[i][j] = math.Round(v*100) / 100
			result.Mask[i][j] = j >= i
		}
	}
	return result, nil
}
