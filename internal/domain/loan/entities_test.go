package loan

import "testing"

func TestStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusActive},
		{StatusActive, StatusPaidOff},
		{StatusActive, StatusDefault},
		{StatusActive, StatusRestructured},
		{StatusRestructured, StatusActive},
		{StatusRestructured, StatusDefault},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransition(tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusPaidOff},
		{StatusPending, StatusDefault},
		{StatusPending, StatusRestructured},
		{StatusPaidOff, StatusActive},
		{StatusPaidOff, StatusDefault},
		{StatusDefault, StatusActive},
		{StatusDefault, StatusRestructured},
		{StatusRestructured, StatusPaidOff},
		{StatusActive, StatusPending},
		{StatusActive, StatusActive},
	}
	for _, tc := range denied {
		if tc.from.CanTransition(tc.to) {
			t.Errorf("%s -> %s should be denied", tc.from, tc.to)
		}
	}
}

func TestParseStatus_AcceptsWireValueAndLabel(t *testing.T) {
	for _, v := range []string{"paid_off", "Paid Off"} {
		s, err := ParseStatus(v)
		if err != nil {
			t.Fatalf("ParseStatus(%q): %v", v, err)
		}
		if s != StatusPaidOff {
			t.Fatalf("ParseStatus(%q) = %s", v, s)
		}
	}
	if _, err := ParseStatus("cancelled"); err == nil {
		t.Fatal("ParseStatus accepted unknown status")
	}
}

func TestRiskRatingLabel(t *testing.T) {
	if got := RiskRating("").Label(); got != UnratedLabel {
		t.Fatalf("empty rating label = %q", got)
	}
	if got := RatingBBB.Label(); got != "BBB" {
		t.Fatalf("BBB label = %q", got)
	}
}

func TestParseRiskRating(t *testing.T) {
	if r, err := ParseRiskRating(""); err != nil || r != "" {
		t.Fatalf("empty rating: %v %q", err, r)
	}
	if _, err := ParseRiskRating("ZZZ"); err == nil {
		t.Fatal("accepted unknown rating")
	}
	if r, err := ParseRiskRating("AA"); err != nil || r != RatingAA {
		t.Fatalf("AA: %v %q", err, r)
	}
}

func TestSyndicationPercentage_ZeroAmountGuard(t *testing.T) {
	l := &Loan{Amount: 0}
	if got := l.SyndicationPercentage(500); got != 0 {
		t.Fatalf("zero-amount percentage = %v, want 0", got)
	}
	l.Amount = 1_000_000
	if got := l.SyndicationPercentage(400_000); got != 40 {
		t.Fatalf("percentage = %v, want 40", got)
	}
}

func TestRemainingPrincipal(t *testing.T) {
	l := &Loan{Amount: 1_000_000}
	if got := l.RemainingPrincipal(200_000); got != 800_000 {
		t.Fatalf("remaining = %v", got)
	}
}
