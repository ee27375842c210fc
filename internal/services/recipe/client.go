package recipe

import (
	"context"
	"log/slog"
	"sync"

	apperrors "github.com/socialchef/mise/internal/errors"
	"github.com/socialchef/mise/internal/logger"
	"github.com/socialchef/mise/internal/services/ai"
	"github.com/socialchef/mise/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = telemetry.Tracer("github.com/socialchef/mise/internal/services/recipe")

// Client is the generation client owned by one form session. It holds the
// provider handle built from the last accepted credential.
type Client struct {
	newProvider ProviderFactory

	mu       sync.RWMutex
	provider Provider
}

// NewClient returns an unconfigured client that builds providers with newProvider.
func NewClient(newProvider ProviderFactory) *Client {
	return &Client{newProvider: newProvider}
}

// Configure builds a provider handle from credential and replaces the
// current one. It reports false, keeping the previous handle, when no
// handle can be built. No network call is made.
func (c *Client) Configure(credential string) bool {
	provider, err := c.newProvider(credential)
	if err != nil {
		slog.Warn("Provider construction failed", "error", err)
		return false
	}

	c.mu.Lock()
	c.provider = provider
	c.mu.Unlock()
	return true
}

// Configured reports whether a provider handle exists.
func (c *Client) Configured() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.provider != nil
}

// Generate builds the recipe prompt for req and performs exactly one
// provider call, returning the model's raw text.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	c.mu.RLock()
	provider := c.provider
	c.mu.RUnlock()

	if provider == nil {
		return "", ErrNotConfigured()
	}

	ctx, span := tracer.Start(ctx, "recipe.generate",
		trace.WithAttributes(
			attribute.String("provider", provider.Name()),
			attribute.String("recipe.meal_type", req.MealType),
			attribute.String("recipe.cooking_method", req.CookingMethod),
		),
	)
	defer span.End()

	prompt := ai.BuildRecipePrompt(req.Ingredients, req.MealType, req.PeopleCount, req.CookingMethod)

	text, err := provider.GenerateText(ctx, prompt)
	if err != nil {
		providerErr := ClassifyError(err, provider.Name())
		span.RecordError(err)
		span.SetStatus(codes.Error, providerErr.Type)
		slog.ErrorContext(ctx, "Recipe generation failed",
			"provider", provider.Name(),
			"error_type", providerErr.Type,
			"error", err.Error(),
			logger.WithTraceContext(ctx),
		)
		return "", apperrors.NewGenerationFailedError(providerErr.ErrorCode(), err)
	}

	span.SetAttributes(attribute.Int("recipe.text_length", len(text)))
	return text, nil
}

// ProviderName returns the name of the configured provider, or "" when unconfigured.
func (c *Client) ProviderName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.provider == nil {
		return ""
	}
	return c.provider.Name()
}

// ErrNotConfigured is returned by Generate before any successful Configure.
// It is a MissingCredential error.
func ErrNotConfigured() *apperrors.AppError {
	err := apperrors.NewMissingCredentialError()
	err.ErrorCode = "NOT_CONFIGURED"
	return err
}

// NewSessionClientFactory returns a constructor for per-session clients that
// all share one provider factory.
func NewSessionClientFactory(newProvider ProviderFactory) func() *Client {
	return func() *Client {
		return NewClient(newProvider)
	}
}

// compile-time check
var _ Generator = (*Client)(nil)
