package checks

import (
	"math"

	"goresid/domain/diagnostics"
)

// Royston (1995) polynomial approximations for the Shapiro-Wilk
// coefficients and the null distribution of W.
var (
	swC1 = []float64{0, 0.221157, -0.147981, -2.071190, 4.434685, -2.706056}
	swC2 = []float64{0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}
	swC3 = []float64{0.5440, -0.39978, 0.025054, -6.714e-4}
	swC4 = []float64{1.3822, -0.77857, 0.062767, -0.0020322}
	swC5 = []float64{-1.5861, -0.31082, -0.083751, 0.0038915}
	swC6 = []float64{-0.4803, -0.082676, 0.0030302}
	swG  = []float64{-2.273, 0.459}
)

const swMinN = 3

// ShapiroWilk computes W and its p-value with Royston's AS R94 algorithm.
func ShapiroWilk(data []float64) (*diagnostics.ShapiroWilkResult, error) {
	const test = "shapiro-wilk"
	n := len(data)
	if err := requireN(test, n, swMinN); err != nil {
		return nil, err
	}

	x := sortedCopy(data)
	if x[n-1]-x[0] <= 0 {
		return nil, degenerate(test, "all observations are identical")
	}

	a := swCoefficients(n)

	// W = (Σ a_i (x_(n+1-i) - x_(i)))² / Σ (x - x̄)²
	num := 0.0
	for i, ai := range a {
		num += ai * (x[n-1-i] - x[i])
	}
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)
	ss := 0.0
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	w := num * num / ss
	if w > 1 {
		w = 1
	}

	return &diagnostics.ShapiroWilkResult{Statistic: w, PValue: swPValue(w, n)}, nil
}

// swCoefficients returns a_1..a_{n/2}, the weights applied to
// x_(n+1-i) - x_(i). They are positive and 2·Σa² = 1.
func swCoefficients(n int) []float64 {
	half := n / 2
	a := make([]float64, half)
	if n == 3 {
		a[0] = math.Sqrt(0.5)
		return a
	}

	an := float64(n)
	// m holds the lower half of the expected normal order statistics
	// (all negative).
	m := make([]float64, half)
	summ2 := 0.0
	for i := range m {
		m[i] = NormalQuantile((float64(i+1) - 0.375) / (an + 0.25))
		summ2 += m[i] * m[i]
	}
	summ2 *= 2
	ssumm2 := math.Sqrt(summ2)
	rsn := 1 / math.Sqrt(an)

	a1 := poly(swC1, rsn) - m[0]/ssumm2
	start := 1
	var fac float64
	if n > 5 {
		start = 2
		a2 := -m[1]/ssumm2 + poly(swC2, rsn)
		fac = math.Sqrt((summ2 - 2*m[0]*m[0] - 2*m[1]*m[1]) / (1 - 2*a1*a1 - 2*a2*a2))
		a[1] = a2
	} else {
		fac = math.Sqrt((summ2 - 2*m[0]*m[0]) / (1 - 2*a1*a1))
	}
	a[0] = a1
	for i := start; i < half; i++ {
		a[i] = -m[i] / fac
	}
	return a
}

func swPValue(w float64, n int) float64 {
	if n == 3 {
		const (
			pi6  = 6 / math.Pi
			stqr = math.Pi / 3
		)
		return math.Max(pi6*(math.Asin(math.Sqrt(w))-stqr), 0)
	}

	an := float64(n)
	y := math.Log(1 - w)
	var m, s float64
	if n <= 11 {
		gamma := poly(swG, an)
		if y >= gamma {
			return 1e-99
		}
		y = -math.Log(gamma - y)
		m = poly(swC3, an)
		s = math.Exp(poly(swC4, an))
	} else {
		xx := math.Log(an)
		m = poly(swC5, xx)
		s = math.Exp(poly(swC6, xx))
	}
	return NormalSurvival((y - m) / s)
}

// poly evaluates c[0] + c[1]x + c[2]x² + ...
func poly(c []float64, x float64) float64 {
	result := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		result = result*x + c[i]
	}
	return result
}
