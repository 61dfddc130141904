package suggest

import (
	"fmt"
	"strings"
)

// NewProvider creates a suggestion provider based on configuration.
// An empty provider name disables suggestions (returns nil, nil).
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "mock":
		return NewMock(), nil

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown suggestion provider: %s (supported: openai, mock)", config.Provider)
	}
}
