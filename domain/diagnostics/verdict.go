package diagnostics

import (
	"fmt"
	"strconv"
)

// Decision is the outcome of a hypothesis test at a significance level.
type Decision string

const (
	FailToReject Decision = "fail_to_reject"
	Reject       Decision = "reject"
)

// Verdict is a decision plus the sentence that explains it.
type Verdict struct {
	Decision Decision `json:"decision"`
	Alpha    float64  `json:"alpha"`
	Text     string   `json:"text"`
}

// SerialCorrelation buckets a Durbin-Watson statistic.
type SerialCorrelation string

const (
	PositiveSerialCorrelation SerialCorrelation = "positive"
	NoSerialCorrelation       SerialCorrelation = "none"
	NegativeSerialCorrelation SerialCorrelation = "negative"
)

// Durbin-Watson bucket edges and the VIF flag threshold.
const (
	DurbinWatsonUpper = 2.5
	DurbinWatsonLower = 1.5
	VIFThreshold      = 5.0
)

// FormatAlpha renders a significance level the way it appears in verdict
// sentences: the shortest decimal that round-trips.
func FormatAlpha(alpha float64) string {
	return strconv.FormatFloat(alpha, 'g', -1, 64)
}

func decide(pValue, alpha float64) Decision {
	if pValue > alpha {
		return FailToReject
	}
	return Reject
}

// JarqueBeraVerdict: p > alpha fails to reject normality.
func JarqueBeraVerdict(pValue, alpha float64) Verdict {
	d := decide(pValue, alpha)
	a := FormatAlpha(alpha)
	text := fmt.Sprintf("On %s significance level we reject H0 about normal distribution of residuals.", a)
	if d == FailToReject {
		text = fmt.Sprintf("On %s significance level we fail to reject H0 about normal distribution of residuals.", a)
	}
	return Verdict{Decision: d, Alpha: alpha, Text: text}
}

// NormalityVerdict is the Shapiro-Wilk and D'Agostino rule.
func NormalityVerdict(pValue, alpha float64) Verdict {
	d := decide(pValue, alpha)
	a := FormatAlpha(alpha)
	text := fmt.Sprintf("On %s significance level we reject H0 that residuals come from a normal distribution.", a)
	if d == FailToReject {
		text = fmt.Sprintf("On %s significance level we fail to reject H0 that residuals come from a normal distribution.", a)
	}
	return Verdict{Decision: d, Alpha: alpha, Text: text}
}

// HomoscedasticityVerdict: p > alpha fails to reject constant variance,
// otherwise heteroscedasticity is assumed.
func HomoscedasticityVerdict(pValue, alpha float64) Verdict {
	d := decide(pValue, alpha)
	a := FormatAlpha(alpha)
	text := fmt.Sprintf("On %s significance level we reject H0 and assume heteroscedasticity of residuals.", a)
	if d == FailToReject {
		text = fmt.Sprintf("On %s significance level we fail to reject H0 about homoscedasticity of residuals.", a)
	}
	return Verdict{Decision: d, Alpha: alpha, Text: text}
}

// AndersonDarlingLevel decides one tabulated level: a statistic below the
// critical value fails to reject normality.
func AndersonDarlingLevel(statistic, significance, critical float64) CriticalLevel {
	level := CriticalLevel{Significance: significance, CriticalValue: critical}
	if statistic < critical {
		level.Decision = FailToReject
		level.Text = fmt.Sprintf("Significance level - %.3f: %.3f (Critical Value), fail to reject H0 that sample comes from normal distribution.", significance, critical)
	} else {
		level.Decision = Reject
		level.Text = fmt.Sprintf("Significance level - %.3f: %.3f (Critical Value), rejecting H0 that sample comes from normal distribution.", significance, critical)
	}
	return level
}

// ClassifyDurbinWatson buckets d: above 2.5 negative, above 1.5 none,
// otherwise positive serial correlation.
func ClassifyDurbinWatson(d float64) SerialCorrelation {
	switch {
	case d > DurbinWatsonUpper:
		return NegativeSerialCorrelation
	case d > DurbinWatsonLower:
		return NoSerialCorrelation
	default:
		return PositiveSerialCorrelation
	}
}

// DurbinWatsonText is the sentence reported for a bucket.
func DurbinWatsonText(c SerialCorrelation) string {
	switch c {
	case NegativeSerialCorrelation:
		return "Statistic indicates negative serial correlation between residuals."
	case NoSerialCorrelation:
		return "Statistic indicates no serial correlation between residuals."
	default:
		return "Statistic indicates positive serial correlation between residuals."
	}
}

// Multicollinear applies the VIF > 5 rule to the largest factor.
func Multicollinear(maxVIF float64) bool {
	return maxVIF > VIFThreshold
}

// MulticollinearityText is the sentence reported for the VIF table.
func MulticollinearityText(flagged bool) string {
	if flagged {
		return "There is indication (VIF > 5) that multicollinearity is present in the data."
	}
	return "Based on VIF there seems that there are no significant correlations between independent variables."
}
