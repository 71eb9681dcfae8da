package llm

import (
	"context"
	"errors"
)

// ErrUnavailable means no text-generation backend is configured. Callers
// treat generation as best-effort and degrade to locally derived text.
var ErrUnavailable = errors.New("no LLM provider available")

// Provider is the interface for text-generation backends.
type Provider interface {
	// GenerateText generates text from a prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name (e.g., "anthropic", "none")
	Name() string
}

// NopProvider is the null backend, used in tests and when no credentials are
// present. GenerateText always fails with ErrUnavailable.
type NopProvider struct{}

func (NopProvider) GenerateText(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

func (NopProvider) Name() string { return "none" }
