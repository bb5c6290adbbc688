package diagnostics

import (
	"strings"
	"testing"
)

func TestClassifyDurbinWatson(t *testing.T) {
	tests := []struct {
		d    float64
		want SerialCorrelation
	}{
		{0.0, PositiveSerialCorrelation},
		{0.5, PositiveSerialCorrelation},
		{1.5, PositiveSerialCorrelation},
		{1.5000001, NoSerialCorrelation},
		{2.0, NoSerialCorrelation},
		{2.5, NoSerialCorrelation},
		{2.5000001, NegativeSerialCorrelation},
		{3.0, NegativeSerialCorrelation},
		{4.0, NegativeSerialCorrelation},
	}
	for _, tt := range tests {
		if got := ClassifyDurbinWatson(tt.d); got != tt.want {
			t.Errorf("ClassifyDurbinWatson(%v) = %s, want %s", tt.d, got, tt.want)
		}
	}
}

func TestDurbinWatsonBucketsAreExhaustive(t *testing.T) {
	for d := 0.0; d <= 4.0; d += 0.01 {
		c := ClassifyDurbinWatson(d)
		if c != PositiveSerialCorrelation && c != NoSerialCorrelation && c != NegativeSerialCorrelation {
			t.Fatalf("d=%v fell outside every bucket", d)
		}
		if DurbinWatsonText(c) == "" {
			t.Fatalf("no text for bucket %s", c)
		}
	}
}

func TestVerdictsDependOnAlphaOnly(t *testing.T) {
	const p = 0.03

	loose := NormalityVerdict(p, 0.05)
	strict := NormalityVerdict(p, 0.01)

	if loose.Decision != Reject {
		t.Errorf("p=%v at alpha=0.05 should reject, got %s", p, loose.Decision)
	}
	if strict.Decision != FailToReject {
		t.Errorf("p=%v at alpha=0.01 should fail to reject, got %s", p, strict.Decision)
	}
	if !strings.Contains(loose.Text, "On 0.05 significance level") {
		t.Errorf("verdict should quote alpha literally: %q", loose.Text)
	}
	if !strings.Contains(strict.Text, "On 0.01 significance level") {
		t.Errorf("verdict should quote alpha literally: %q", strict.Text)
	}
}

func TestVerdictBoundaryIsStrict(t *testing.T) {
	// p == alpha rejects: only p > alpha fails to reject.
	if JarqueBeraVerdict(0.05, 0.05).Decision != Reject {
		t.Error("p equal to alpha should reject")
	}
	if HomoscedasticityVerdict(0.051, 0.05).Decision != FailToReject {
		t.Error("p above alpha should fail to reject")
	}
	if !strings.Contains(HomoscedasticityVerdict(0.01, 0.05).Text, "heteroscedasticity") {
		t.Error("rejection should assume heteroscedasticity")
	}
}

func TestAndersonDarlingLevel(t *testing.T) {
	pass := AndersonDarlingLevel(0.3, 5.0, 0.787)
	if pass.Decision != FailToReject {
		t.Errorf("statistic below critical value should fail to reject, got %s", pass.Decision)
	}
	if !strings.HasPrefix(pass.Text, "Significance level - 5.000: 0.787 (Critical Value)") {
		t.Errorf("unexpected text %q", pass.Text)
	}

	fail := AndersonDarlingLevel(0.787, 5.0, 0.787)
	if fail.Decision != Reject {
		t.Errorf("statistic equal to critical value should reject, got %s", fail.Decision)
	}
}

func TestMulticollinear(t *testing.T) {
	if Multicollinear(5.0) {
		t.Error("VIF of exactly 5 should not be flagged")
	}
	if !Multicollinear(5.01) {
		t.Error("VIF above 5 should be flagged")
	}
	if !strings.Contains(MulticollinearityText(true), "VIF > 5") {
		t.Error("flag text should mention the threshold")
	}
}

func TestFormatAlpha(t *testing.T) {
	cases := map[float64]string{0.05: "0.05", 0.1: "0.1", 0.001: "0.001", 0.5: "0.5"}
	for alpha, want := range cases {
		if got := FormatAlpha(alpha); got != want {
			t.Errorf("FormatAlpha(%v) = %q, want %q", alpha, got, want)
		}
	}
}
