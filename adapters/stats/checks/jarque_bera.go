package checks

import (
	"goresid/domain/diagnostics"
)

// JarqueBera tests normality from sample skewness S and kurtosis K:
//
//	JB = n/6 · (S² + (K-3)²/4)
//
// with a chi-squared(2) p-value. The verdict is left for the caller.
func JarqueBera(data []float64) (*diagnostics.JarqueBeraResult, error) {
	const test = "jarque-bera"
	if err := requireN(test, len(data), 2); err != nil {
		return nil, err
	}
	s, err := sampleShape(test, data)
	if err != nil {
		return nil, err
	}

	excess := s.kurtosis - 3
	jb := float64(s.n) / 6 * (s.skew*s.skew + excess*excess/4)
	return &diagnostics.JarqueBeraResult{
		Statistic: jb,
		PValue:    ChiSquarePValue(jb, 2),
		Skew:      s.skew,
		Kurtosis:  s.kurtosis,
	}, nil
}
