package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
)

// AnthropicConfig holds configuration for the Anthropic provider.
type AnthropicConfig struct {
	APIKey  string // API key, required
	BaseURL string // API base URL (optional)
	Model   string // Model ID, defaults to a Haiku-class model
}

// AnthropicConfigFromEnv reads the same environment variables the Claude
// Code runtime itself uses, so the hook needs no extra credential setup.
func AnthropicConfigFromEnv() AnthropicConfig {
	key := os.Getenv("ANTHROPIC_AUTH_TOKEN")
	if key == "" {
		key = os.Getenv("ANTHROPIC_API_KEY")
	}
	return AnthropicConfig{
		APIKey:  key,
		BaseURL: os.Getenv("ANTHROPIC_BASE_URL"),
		Model:   os.Getenv("ANTHROPIC_DEFAULT_HAIKU_MODEL"),
	}
}

// AnthropicProvider implements Provider using the Anthropic Messages API.
type AnthropicProvider struct {
	llm     *anthropic.LLM
	modelID string
}

// NewAnthropicProvider creates an Anthropic-backed provider. Returns
// ErrUnavailable when no API key is configured, so callers can fall back to
// NopProvider without treating it as a hard failure.
func NewAnthropicProvider(cfg AnthropicConfig) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrUnavailable
	}
	if cfg.Model == "" {
		// Haiku-class default keeps per-session summarization cheap
		cfg.Model = "claude-haiku-4-5-20251001"
	}

	opts := []anthropic.Option{
		anthropic.WithToken(cfg.APIKey),
		anthropic.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	llm, err := anthropic.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Anthropic client: %w", err)
	}

	return &AnthropicProvider{llm: llm, modelID: cfg.Model}, nil
}

// GenerateText implements Provider.
func (p *AnthropicProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	response, err := llms.GenerateFromSinglePrompt(ctx, p.llm, prompt,
		llms.WithMaxTokens(1024),
		llms.WithTemperature(0.3),
	)
	if err != nil {
		return "", fmt.Errorf("anthropic generation failed: %w", err)
	}
	return response, nil
}

// Name implements Provider.
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}
