package checks

import (
	"errors"
	"math"

	"goresid/domain/dataset"
	"goresid/domain/diagnostics"
)

// BreuschPagan regresses squared residuals on a constant plus the prediction
// set's columns. LM = n·R² is chi-squared with p degrees of freedom; the F
// form is (R²/p) / ((1-R²)/(n-p-1)).
//
// residuals[i] is paired with row i of features.
func BreuschPagan(residuals []float64, features *dataset.Frame) (*diagnostics.BreuschPaganResult, error) {
	const test = "breusch-pagan"
	n := len(residuals)
	p := features.Width()
	if p == 0 {
		return nil, degenerate(test, "prediction set has no columns")
	}
	if features.Rows() != n {
		return nil, shapeMismatch("prediction set", features.Rows(), n)
	}
	if err := requireN(test, n, p+2); err != nil {
		return nil, err
	}

	sq := make([]float64, n)
	for i, e := range residuals {
		sq[i] = e * e
	}
	columns := make([][]float64, p)
	for j, name := range features.Columns {
		columns[j], _ = features.Column(name)
	}

	fit, err := fitOLS(sq, columns)
	if errors.Is(err, errNoVariance) {
		return nil, degenerate(test, "squared residuals are constant")
	}
	if err != nil {
		return nil, degenerate(test, err.Error())
	}

	lm := float64(n) * fit.r2
	dfResid := n - p - 1
	f := math.Inf(1)
	if fit.r2 < 1 {
		f = (fit.r2 / float64(p)) / ((1 - fit.r2) / float64(dfResid))
	}

	return &diagnostics.BreuschPaganResult{
		LM:       lm,
		LMPValue: ChiSquarePValue(lm, p),
		F:        diagnostics.Float(f),
		FPValue:  FTestPValue(f, p, dfResid),
		DF:       p,
	}, nil
}
