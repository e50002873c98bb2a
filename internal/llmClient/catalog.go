package llmclient

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderFake   = "fake"

	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultOpenAIModel = "openai/gpt-4o-mini"
)

// Settings selects and configures one provider.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// DefaultModel returns the model used when Settings.Model is empty.
func DefaultModel(provider string) string {
	switch normalizeProvider(provider) {
	case ProviderOpenAI:
		return DefaultOpenAIModel
	case ProviderFake:
		return "fake"
	}
	return DefaultGeminiModel
}

// RequiresAPIKey reports whether the provider needs a credential.
func RequiresAPIKey(provider string) bool {
	return normalizeProvider(provider) != ProviderFake
}

// New builds the provider client named by s.Provider.
func New(ctx context.Context, s Settings) (LLMClient, error) {
	provider := normalizeProvider(s.Provider)
	model := strings.TrimSpace(s.Model)
	if model == "" {
		model = DefaultModel(provider)
	}
	if RequiresAPIKey(provider) && strings.TrimSpace(s.APIKey) == "" {
		return nil, fmt.Errorf("llmclient: %s provider requires an API key", provider)
	}
	switch provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, s.APIKey, model)
	case ProviderOpenAI:
		baseURL := s.BaseURL
		if strings.TrimSpace(baseURL) == "" {
			baseURL = DefaultOpenAIBaseURL
		}
		return NewOpenAIClient(s.APIKey, baseURL, model), nil
	case ProviderFake:
		return NewFakeClient(), nil
	}
	return nil, fmt.Errorf("llmclient: unknown provider %q", s.Provider)
}

func normalizeProvider(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if p == "" {
		return ProviderGemini
	}
	return p
}
