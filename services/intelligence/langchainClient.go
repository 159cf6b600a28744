package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangChainClient drives any langchaingo model with a single prompt.
type LangChainClient struct {
	llm      llms.Model
	provider string
}

func NewAnthropicClient(apiKey, model string) (*LangChainClient, error) {
	llm, err := anthropic.New(anthropic.WithToken(apiKey), anthropic.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create Anthropic client: %w", err)
	}
	return &LangChainClient{llm: llm, provider: "anthropic"}, nil
}

func NewOpenAIClient(apiKey, model string) (*LangChainClient, error) {
	llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return &LangChainClient{llm: llm, provider: "openai"}, nil
}

func (c *LangChainClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithTemperature(0),
		llms.WithMaxTokens(512),
	)
	if err != nil {
		return "", fmt.Errorf("%s generate error: %w", c.provider, err)
	}
	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}
