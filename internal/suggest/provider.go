// Package suggest generates alternative transition phrasings for a detected
// paragraph gap. Providers are strictly additive UI sugar: they never affect
// gap scoring or claim confidence.
package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/ledgerpen/internal/model"
)

// Provider defines the interface for suggestion providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Suggest proposes transition phrases for the gap described by req
	Suggest(ctx context.Context, req Request) ([]model.TransitionSuggestion, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Request describes the gap a provider should phrase a transition for
type Request struct {
	// BeforeText and AfterText are the bounded context windows around the
	// paragraph boundary.
	BeforeText string
	AfterText  string

	// Categories are the rhetorical families detected in BeforeText
	Categories []model.TransitionCategory

	// MaxSuggestions limits the response size
	MaxSuggestions int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "mock", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// ConfigFromModel converts model.LLMConfig to suggest.Config
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		MaxTokens: cfg.MaxTokens,
	}
}

// BuildPrompt constructs the default prompt for transition suggestions
func BuildPrompt(req Request) string {
	max := req.MaxSuggestions
	if max <= 0 {
		max = 3
	}

	categories := make([]string, 0, len(req.Categories))
	for _, c := range req.Categories {
		categories = append(categories, string(c))
	}
	if len(categories) == 0 {
		categories = append(categories, string(model.TransitionAdditive))
	}

	return fmt.Sprintf(`You suggest short transition phrases between two paragraphs.

RULES:
1. Reply with at most %d phrases, one per line, nothing else.
2. Each phrase must be 1-5 words and end with a comma (e.g., "However,").
3. Prefer these rhetorical families: %s.
4. Do not rewrite the paragraphs; only suggest opening phrases.

The preceding paragraph ends with:
%s

The following paragraph begins with:
%s`, max, strings.Join(categories, ", "), req.BeforeText, req.AfterText)
}
