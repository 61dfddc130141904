package suggest

import (
	"context"
	"fmt"

	"github.com/ppiankov/ledgerpen/internal/model"
)

// mockPhrases are the canned responses the demo widgets ship with, keyed by
// the first detected category. Deterministic so tests can assert exact sets.
var mockPhrases = map[model.TransitionCategory][]string{
	model.TransitionAdditive: {"Building on this,", "Along the same lines,"},
	model.TransitionContrast: {"Even so,", "By comparison,"},
	model.TransitionCausal:   {"This means that,", "It follows that,"},
	model.TransitionTemporal: {"From there,", "Before long,"},
	model.TransitionEmphasis: {"Crucially,", "What stands out is,"},
}

// Mock is a deterministic provider used by the demo widgets and tests.
// It fabricates plausible phrases without any network call.
type Mock struct{}

// NewMock creates a mock provider
func NewMock() *Mock {
	return &Mock{}
}

// Name returns the provider name
func (m *Mock) Name() string {
	return "mock"
}

// IsAvailable always succeeds for the mock provider
func (m *Mock) IsAvailable(ctx context.Context) bool {
	return true
}

// Suggest returns canned phrases for the requested categories, in category
// order, capped at MaxSuggestions.
func (m *Mock) Suggest(ctx context.Context, req Request) ([]model.TransitionSuggestion, error) {
	categories := req.Categories
	if len(categories) == 0 {
		categories = []model.TransitionCategory{model.TransitionAdditive}
	}

	max := req.MaxSuggestions
	if max <= 0 {
		max = 3
	}

	var suggestions []model.TransitionSuggestion
	for _, category := range categories {
		for _, phrase := range mockPhrases[category] {
			if len(suggestions) >= max {
				return suggestions, nil
			}
			suggestions = append(suggestions, model.TransitionSuggestion{
				ID:          fmt.Sprintf("ai-sugg-%d", len(suggestions)),
				Text:        phrase,
				Category:    category,
				Description: "Suggested phrasing",
			})
		}
	}

	return suggestions, nil
}
