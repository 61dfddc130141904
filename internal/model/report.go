package model

import "time"

// Report is the complete writing-analysis report for one document
type Report struct {
	Subject    string    `json:"subject"`     // Document name or title
	AnalyzedAt time.Time `json:"analyzed_at"` // When the analysis ran
	WordCount  int       `json:"word_count"`
	Paragraphs int       `json:"paragraphs"`

	Gaps   []ParagraphGap `json:"gaps"`   // Transition-gap findings
	Claims []Claim        `json:"claims"` // Factual-claim findings

	OverallConfidence int `json:"overall_confidence"` // Document-level claim confidence
	GapsNeedingWork   int `json:"gaps_needing_work"`  // Gaps with needs_transition set
}
