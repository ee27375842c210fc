package recipe

import "context"

// ProviderType represents the type of AI provider
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOpenAI ProviderType = "openai"
)

// Provider sends one prompt to an external text generation service and
// returns its raw text.
type Provider interface {
	Name() string
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Generator is the capability the form needs from a generation backend.
// Configure must not touch the network.
type Generator interface {
	Configure(credential string) bool
	Generate(ctx context.Context, req Request) (string, error)
}
