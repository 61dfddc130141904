package model

// ClaimCategory classifies the shape of a detected factual claim
type ClaimCategory string

const (
	ClaimStatistic   ClaimCategory = "statistic"   // Percentages, rates, ratios
	ClaimAttribution ClaimCategory = "attribution" // "According to X", studies, reports
	ClaimDate        ClaimCategory = "date"        // Specific years and calendar dates
	ClaimQuantity    ClaimCategory = "quantity"    // Amounts, money, magnitudes
	ClaimScientific  ClaimCategory = "scientific"  // "Research shows", "studies suggest"
	ClaimHistorical  ClaimCategory = "historical"  // Founding, invention, firsts
	ClaimQuote       ClaimCategory = "quote"       // Direct quotations
)

// ClaimStatus is derived deterministically from confidence thresholds
type ClaimStatus string

const (
	StatusLikelyAccurate    ClaimStatus = "likely_accurate"    // confidence >= 85
	StatusNeedsVerification ClaimStatus = "needs_verification" // confidence >= 60
	StatusUnverified        ClaimStatus = "unverified"         // confidence >= 40
	StatusQuestionable      ClaimStatus = "questionable"       // below 40
)

// Claim represents one factual assertion detected in a document.
// StartIndex/EndIndex are sentence-level offsets into the analyzed text;
// spans never overlap within a single analysis result.
type Claim struct {
	ID          string        `json:"id"`         // Content-derived: category + span offsets
	Text        string        `json:"text"`       // Full sentence containing the match
	StartIndex  int           `json:"start_index"`
	EndIndex    int           `json:"end_index"`
	Category    ClaimCategory `json:"category"`
	Confidence  int           `json:"confidence"` // 0-100
	Status      ClaimStatus   `json:"status"`
	Explanation string        `json:"explanation,omitempty"` // Why this span was flagged
	Sources     []string      `json:"sources,omitempty"`     // Suggested verification sources
	IsDismissed bool          `json:"is_dismissed"`          // User-toggleable, keyed by ID
}

// Analysis is the result of one factual-claim scan over a document
type Analysis struct {
	Claims            []Claim `json:"claims"`
	OverallConfidence int     `json:"overall_confidence"` // Mean of claim confidences; 100 when no claims
}
