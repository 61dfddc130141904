package analyze

import (
	"strings"
	"testing"

	"github.com/ppiankov/ledgerpen/internal/model"
)

func TestAnalyzeFactualClaims_Statistic(t *testing.T) {
	analysis := AnalyzeFactualClaims("Sales grew by 25% last year.")

	if len(analysis.Claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(analysis.Claims))
	}

	claim := analysis.Claims[0]
	if claim.Category != model.ClaimStatistic {
		t.Errorf("expected statistic, got %s", claim.Category)
	}
	// base 70 + percent bonus 10
	if claim.Confidence != 80 {
		t.Errorf("expected confidence 80, got %d", claim.Confidence)
	}
	if claim.Status != model.StatusNeedsVerification {
		t.Errorf("expected needs_verification, got %s", claim.Status)
	}
	if claim.Text != "Sales grew by 25% last year." {
		t.Errorf("expected full sentence, got %q", claim.Text)
	}
	if claim.Explanation == "" || len(claim.Sources) == 0 {
		t.Error("expected explanation and sources to be populated")
	}
}

func TestAnalyzeFactualClaims_Attribution(t *testing.T) {
	analysis := AnalyzeFactualClaims("According to the treasurer, the budget balanced.")

	if len(analysis.Claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(analysis.Claims))
	}

	claim := analysis.Claims[0]
	if claim.Category != model.ClaimAttribution {
		t.Errorf("expected attribution, got %s", claim.Category)
	}
	// base 70 + quoted-speech bonus 15
	if claim.Confidence != 85 {
		t.Errorf("expected confidence 85, got %d", claim.Confidence)
	}
	if claim.Status != model.StatusLikelyAccurate {
		t.Errorf("expected likely_accurate, got %s", claim.Status)
	}
}

func TestAnalyzeFactualClaims_DatePrecedesHistorical(t *testing.T) {
	// "founded in 1998" matches both the date and historical tables; the
	// date patterns come earlier, so the span belongs to date.
	analysis := AnalyzeFactualClaims("The company was founded in 1998.")

	if len(analysis.Claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(analysis.Claims))
	}

	claim := analysis.Claims[0]
	if claim.Category != model.ClaimDate {
		t.Errorf("expected date to win precedence, got %s", claim.Category)
	}
	// base 70 + year bonus 10
	if claim.Confidence != 80 {
		t.Errorf("expected confidence 80, got %d", claim.Confidence)
	}
}

func TestAnalyzeFactualClaims_ScientificPenalty(t *testing.T) {
	analysis := AnalyzeFactualClaims("Studies show that coffee improves memory.")

	if len(analysis.Claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(analysis.Claims))
	}

	claim := analysis.Claims[0]
	if claim.Category != model.ClaimScientific {
		t.Errorf("expected scientific, got %s", claim.Category)
	}
	// base 70 - scientific penalty 5
	if claim.Confidence != 65 {
		t.Errorf("expected confidence 65, got %d", claim.Confidence)
	}
}

func TestAnalyzeFactualClaims_Quote(t *testing.T) {
	analysis := AnalyzeFactualClaims(`He said: "This is the best quarter we have ever had."`)

	if len(analysis.Claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(analysis.Claims))
	}

	claim := analysis.Claims[0]
	if claim.Category != model.ClaimQuote {
		t.Errorf("expected quote, got %s", claim.Category)
	}
	// base 70 + quoted-speech bonus 15
	if claim.Confidence != 85 {
		t.Errorf("expected confidence 85, got %d", claim.Confidence)
	}
}

func TestAnalyzeFactualClaims_CurrencyAndMagnitude(t *testing.T) {
	analysis := AnalyzeFactualClaims("The acquisition cost $5 million.")

	if len(analysis.Claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(analysis.Claims))
	}

	claim := analysis.Claims[0]
	if claim.Category != model.ClaimQuantity {
		t.Errorf("expected quantity, got %s", claim.Category)
	}
	// base 70 + currency 5 + magnitude 10
	if claim.Confidence != 85 {
		t.Errorf("expected confidence 85, got %d", claim.Confidence)
	}
}

func TestAnalyzeFactualClaims_NonOverlapping(t *testing.T) {
	// One sentence matching both statistic and date patterns produces a
	// single claim: the first accepted span owns the whole sentence.
	analysis := AnalyzeFactualClaims("Revenue rose 25% in 2023.")

	if len(analysis.Claims) != 1 {
		t.Fatalf("expected 1 claim for overlapping matches, got %d", len(analysis.Claims))
	}
	if analysis.Claims[0].Category != model.ClaimStatistic {
		t.Errorf("expected statistic to win, got %s", analysis.Claims[0].Category)
	}
}

func TestAnalyzeFactualClaims_SortedByStart(t *testing.T) {
	text := "The fort was built in 1754. According to the curator, it never fell. Visitors grew by 12% this decade."
	analysis := AnalyzeFactualClaims(text)

	if len(analysis.Claims) < 2 {
		t.Fatalf("expected multiple claims, got %d", len(analysis.Claims))
	}
	for i := 1; i < len(analysis.Claims); i++ {
		if analysis.Claims[i].StartIndex < analysis.Claims[i-1].StartIndex {
			t.Errorf("claims not sorted by start index at %d", i)
		}
	}
}

func TestAnalyzeFactualClaims_NoClaims(t *testing.T) {
	analysis := AnalyzeFactualClaims("Nothing checkable lives in this sentence.")

	if len(analysis.Claims) != 0 {
		t.Errorf("expected no claims, got %d", len(analysis.Claims))
	}
	if analysis.OverallConfidence != 100 {
		t.Errorf("expected confidence 100 with no claims, got %d", analysis.OverallConfidence)
	}
}

func TestAnalyzeFactualClaims_OverallConfidenceMean(t *testing.T) {
	// 80 (statistic with percent) and 65 (scientific) average to 72
	text := "Sales grew by 25% last month. Research suggests the trend continues."
	analysis := AnalyzeFactualClaims(text)

	if len(analysis.Claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(analysis.Claims))
	}
	if analysis.OverallConfidence != 72 {
		t.Errorf("expected overall confidence 72, got %d", analysis.OverallConfidence)
	}
}

func TestAnalyzeFactualClaims_LongSentenceSkipped(t *testing.T) {
	long := "The figure reached 42% " + strings.Repeat("and kept going on ", 40) + "without a break"
	analysis := AnalyzeFactualClaims(long)

	if len(analysis.Claims) != 0 {
		t.Errorf("expected over-long sentence to be skipped, got %d claims", len(analysis.Claims))
	}
}

func TestAnalyzeFactualClaims_StableIDs(t *testing.T) {
	text := "Revenue rose 25% in 2023. The plant opened in 1962."

	first := AnalyzeFactualClaims(text)
	second := AnalyzeFactualClaims(text)

	if len(first.Claims) != len(second.Claims) {
		t.Fatalf("claim counts differ across runs: %d vs %d", len(first.Claims), len(second.Claims))
	}
	for i := range first.Claims {
		if first.Claims[i].ID != second.Claims[i].ID {
			t.Errorf("claim id changed across runs: %s vs %s", first.Claims[i].ID, second.Claims[i].ID)
		}
	}
}

func TestStatusForConfidence(t *testing.T) {
	tests := []struct {
		confidence int
		want       model.ClaimStatus
	}{
		{100, model.StatusLikelyAccurate},
		{85, model.StatusLikelyAccurate},
		{84, model.StatusNeedsVerification},
		{60, model.StatusNeedsVerification},
		{59, model.StatusUnverified},
		{40, model.StatusUnverified},
		{39, model.StatusQuestionable},
		{0, model.StatusQuestionable},
	}

	for _, tt := range tests {
		if got := StatusForConfidence(tt.confidence); got != tt.want {
			t.Errorf("StatusForConfidence(%d) = %s, want %s", tt.confidence, got, tt.want)
		}
	}
}

func TestClaimID(t *testing.T) {
	if got := ClaimID(model.ClaimDate, 10, 42); got != "date-10-42" {
		t.Errorf("ClaimID = %q, want %q", got, "date-10-42")
	}
}
