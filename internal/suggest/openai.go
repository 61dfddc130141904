package suggest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/ledgerpen/internal/model"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements the Provider interface for OpenAI models
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// Suggest generates transition phrases using the Chat Completions API
func (p *OpenAIProvider) Suggest(ctx context.Context, req Request) ([]model.TransitionSuggestion, error) {
	chatModel := p.config.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	maxTokens := p.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 200
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a writing assistant that suggests short transition phrases. Reply with phrases only, one per line.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(req),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion response")
	}

	return parsePhrases(resp.Choices[0].Message.Content, req), nil
}

// parsePhrases turns the one-phrase-per-line response into suggestions.
// Phrases are assigned to the requested categories round-robin; garbage
// lines (too long, empty, numbered prose) are dropped.
func parsePhrases(content string, req Request) []model.TransitionSuggestion {
	categories := req.Categories
	if len(categories) == 0 {
		categories = []model.TransitionCategory{model.TransitionAdditive}
	}

	max := req.MaxSuggestions
	if max <= 0 {
		max = 3
	}

	var suggestions []model.TransitionSuggestion
	for _, line := range strings.Split(content, "\n") {
		phrase := strings.Trim(strings.TrimSpace(line), `"'-*0123456789. `)
		if phrase == "" || len(strings.Fields(phrase)) > 6 {
			continue
		}
		if len(suggestions) >= max {
			break
		}
		suggestions = append(suggestions, model.TransitionSuggestion{
			ID:          fmt.Sprintf("ai-sugg-%d", len(suggestions)),
			Text:        phrase,
			Category:    categories[len(suggestions)%len(categories)],
			Description: "Suggested phrasing",
		})
	}

	return suggestions
}
