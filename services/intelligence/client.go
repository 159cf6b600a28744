package ai

import (
	"context"
	"fmt"

	"slotwise/config"
)

// NewCompletionClient builds the client for the configured LLM_PROVIDER.
func NewCompletionClient(ctx context.Context, cfg *config.Config) (CompletionClient, error) {
	var (
		client CompletionClient
		err    error
	)
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		client, err = NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case config.ProviderAnthropic:
		client, err = NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	case config.ProviderOpenAI:
		client, err = NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}
