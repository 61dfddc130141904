package model

// TransitionCategory is the closed set of transition phrase families
type TransitionCategory string

const (
	TransitionAdditive TransitionCategory = "additive"
	TransitionContrast TransitionCategory = "contrast"
	TransitionCausal   TransitionCategory = "causal"
	TransitionTemporal TransitionCategory = "temporal"
	TransitionEmphasis TransitionCategory = "emphasis"
)

// TransitionCategories lists all known categories in stable order
var TransitionCategories = []TransitionCategory{
	TransitionAdditive,
	TransitionContrast,
	TransitionCausal,
	TransitionTemporal,
	TransitionEmphasis,
}

// ParagraphGap marks a paragraph boundary that may need a transition phrase.
// Gaps are recomputed wholesale on every analysis pass and never persisted.
type ParagraphGap struct {
	Index           int     `json:"index"`            // Ordinal position among detected boundaries (0-based)
	BeforeText      string  `json:"before_text"`      // Tail of the preceding paragraph
	AfterText       string  `json:"after_text"`       // Head of the following paragraph
	Position        int     `json:"position"`         // Absolute character offset of the boundary
	NeedsTransition bool    `json:"needs_transition"` // No existing starter and score above threshold
	Score           float64 `json:"score"`            // 0-1, monotonic in heuristic signals
}

// TransitionSuggestion is a candidate phrase for a selected gap.
// Generated on demand, discarded when the gap is deselected.
type TransitionSuggestion struct {
	ID          string             `json:"id"`
	Text        string             `json:"text"` // Literal phrase to insert
	Category    TransitionCategory `json:"category"`
	Description string             `json:"description"`
}
