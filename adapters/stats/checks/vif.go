package checks

import (
	"errors"
	"math"

	"goresid/domain/dataset"
	"goresid/domain/diagnostics"
)

// VarianceInflation regresses each column on a constant and the other
// columns and reports VIF = 1/(1-R²). An exact linear dependency yields +Inf.
// The multicollinearity flag is left for the caller.
func VarianceInflation(features *dataset.Frame) (*diagnostics.VIFResult, error) {
	const test = "vif"
	p := features.Width()
	n := features.Rows()
	if p == 0 {
		return nil, degenerate(test, "prediction set has no columns")
	}
	if err := requireN(test, n, 2); err != nil {
		return nil, err
	}

	columns := make([][]float64, p)
	for j, name := range features.Columns {
		columns[j], _ = features.Column(name)
	}

	result := &diagnostics.VIFResult{Rows: make([]diagnostics.VIFRow, p)}
	maxVIF := math.Inf(-1)
	others := make([][]float64, 0, p-1)
	for j, name := range features.Columns {
		others = others[:0]
		for k := range columns {
			if k != j {
				others = append(others, columns[k])
			}
		}

		vif := 1.0
		if len(others) > 0 {
			fit, err := fitOLS(columns[j], others)
			if errors.Is(err, errNoVariance) {
				return nil, degenerate(test, "column "+name+" is constant")
			}
			if err != nil {
				return nil, degenerate(test, err.Error())
			}
			vif = math.Inf(1)
			if fit.r2 < 1 {
				vif = 1 / (1 - fit.r2)
			}
		} else if constant(columns[j]) {
			return nil, degenerate(test, "column "+name+" is constant")
		}

		result.Rows[j] = diagnostics.VIFRow{Feature: name, VIF: diagnostics.Float(vif)}
		if vif > maxVIF {
			maxVIF = vif
		}
	}
	result.Max = diagnostics.Float(maxVIF)
	return result, nil
}

func constant(x []float64) bool {
	for _, v := range x[1:] {
		if v != x[0] {
			return false
		}
	}
	return true
}
