package checks

// DurbinWatson returns Σ(e_t - e_{t-1})² / Σe_t² for residuals in the order
// given. The statistic lies in [0,4].
func DurbinWatson(residuals []float64) (float64, error) {
	const test = "durbin-watson"
	if err := requireN(test, len(residuals), 2); err != nil {
		return 0, err
	}

	num, den := 0.0, 0.0
	for i, e := range residuals {
		den += e * e
		if i > 0 {
			d := e - residuals[i-1]
			num += d * d
		}
	}
	if den == 0 {
		return 0, degenerate(test, "all residuals are zero")
	}
	return num / den, nil
}
