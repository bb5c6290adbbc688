package diagnostics

import (
	"goresid/domain/core"
)

// Report is the structured outcome of one diagnostics run: one field per
// step plus the residual table every step read.
type Report struct {
	RunID        core.RunID     `json:"run_id"`
	ModelID      string         `json:"model_id"`
	Variables    string         `json:"variables"`
	Features     []string       `json:"features"`
	Alpha        float64        `json:"alpha"`
	Ordering     SequenceOrder  `json:"ordering"`
	Observations int            `json:"observations"`
	Fingerprint  core.Hash      `json:"fingerprint"`
	Residuals    *ResidualTable `json:"residuals"`

	Descriptive      *DescriptiveResult      `json:"descriptive"`
	Histogram        *HistogramResult        `json:"histogram"`
	Density          *DensityResult          `json:"density"`
	QQ               *QQResult               `json:"qq"`
	JarqueBera       *JarqueBeraResult       `json:"jarque_bera"`
	ShapiroWilk      *ShapiroWilkResult      `json:"shapiro_wilk"`
	AndersonDarling  *AndersonDarlingResult  `json:"anderson_darling"`
	DAgostino        *DAgostinoResult        `json:"dagostino"`
	DurbinWatson     *DurbinWatsonResult     `json:"durbin_watson"`
	Homoscedasticity *HomoscedasticityResult `json:"homoscedasticity"`
	BreuschPagan     *BreuschPaganResult     `json:"breusch_pagan"`
	VIF              *VIFResult              `json:"vif"`
	Correlation      *CorrelationResult      `json:"correlation"`
}

// Set stores r in the field matching its kind.
func (r *Report) Set(res Result) {
	switch v := res.(type) {
	case *DescriptiveResult:
		r.Descriptive = v
	case *HistogramResult:
		r.Histogram = v
	case *DensityResult:
		r.Density = v
	case *QQResult:
		r.QQ = v
	case *JarqueBeraResult:
		r.JarqueBera = v
	case *ShapiroWilkResult:
		r.ShapiroWilk = v
	case *AndersonDarlingResult:
		r.AndersonDarling = v
	case *DAgostinoResult:
		r.DAgostino = v
	case *DurbinWatsonResult:
		r.DurbinWatson = v
	case *HomoscedasticityResult:
		r.Homoscedasticity = v
	case *BreuschPaganResult:
		r.BreuschPagan = v
	case *VIFResult:
		r.VIF = v
	case *CorrelationResult:
		r.Correlation = v
	}
}

// Result returns the payload stored for kind, if the step ran.
func (r *Report) Result(kind Kind) (Result, bool) {
	var res Result
	switch kind {
	case KindDescriptive:
		if r.Descriptive != nil {
			res = r.Descriptive
		}
	case KindHistogram:
		if r.Histogram != nil {
			res = r.Histogram
		}
	case KindDensity:
		if r.Density != nil {
			res = r.Density
		}
	case KindQQ:
		if r.QQ != nil {
			res = r.QQ
		}
	case KindJarqueBera:
		if r.JarqueBera != nil {
			res = r.JarqueBera
		}
	case KindShapiroWilk:
		if r.ShapiroWilk != nil {
			res = r.ShapiroWilk
		}
	case KindAndersonDarling:
		if r.AndersonDarling != nil {
			res = r.AndersonDarling
		}
	case KindDAgostino:
		if r.DAgostino != nil {
			res = r.DAgostino
		}
	case KindDurbinWatson:
		if r.DurbinWatson != nil {
			res = r.DurbinWatson
		}
	case KindHomoscedasticity:
		if r.Homoscedasticity != nil {
			res = r.Homoscedasticity
		}
	case KindBreuschPagan:
		if r.BreuschPagan != nil {
			res = r.BreuschPagan
		}
	case KindVIF:
		if r.VIF != nil {
			res = r.VIF
		}
	case KindCorrelation:
		if r.Correlation != nil {
			res = r.Correlation
		}
	}
	return res, res != nil
}

// Results returns every stored payload in step order.
func (r *Report) Results() []Result {
	out := make([]Result, 0, len(Steps))
	for _, kind := range Steps {
		if res, ok := r.Result(kind); ok {
			out = append(out, res)
		}
	}
	return out
}

// Figures lists every drawable panel in step order.
func (r *Report) Figures() []Figure {
	var out []Figure
	for _, res := range r.Results() {
		if v, ok := res.(Visual); ok {
			out = append(out, v.Figures()...)
		}
	}
	return out
}

// OrderCaveat is set when order-sensitive tests ran over the residual-sorted
// sequence rather than the observation sequence.
func (r *Report) OrderCaveat() string {
	if r.Ordering == OrderObservation {
		return ""
	}
	return "Note: Durbin-Watson and Breusch-Pagan were computed on the residual-sorted table; the observation order is not preserved."
}
