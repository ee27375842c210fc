package recipe

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/socialchef/mise/internal/errors"
)

// Error classes reported by ClassifyError.
const (
	ErrorClassRateLimit       = "rate_limit"
	ErrorClassCreditExhausted = "credit_exhausted"
	ErrorClassAuth            = "auth"
	ErrorClassServer          = "server_error"
	ErrorClassClient          = "client_error"
	ErrorClassTimeout         = "timeout"
	ErrorClassCanceled        = "canceled"
	ErrorClassEmpty           = "empty_response"
	ErrorClassUnknown         = "unknown"
)

// ErrEmptyResponse is returned by providers when the model produced no text.
var ErrEmptyResponse = errors.New("empty response from model")

// ProviderError represents a classified error from an AI provider
type ProviderError struct {
	Type     string
	Message  string
	Provider string
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return e.Message
}

// ErrorCode is the AppError code used when this class of failure reaches the user.
func (e *ProviderError) ErrorCode() string {
	return "PROVIDER_" + strings.ToUpper(e.Type)
}

// ClassifyError analyzes an error and returns a ProviderError with classification
func ClassifyError(err error, provider string) *ProviderError {
	if err == nil {
		return nil
	}

	classify := func(t string) *ProviderError {
		return &ProviderError{Type: t, Message: err.Error(), Provider: provider}
	}

	switch {
	case errors.Is(err, context.Canceled):
		return classify(ErrorClassCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return classify(ErrorClassTimeout)
	case errors.Is(err, ErrEmptyResponse):
		return classify(ErrorClassEmpty)
	}

	msg := err.Error()

	if containsAny(msg, "status 429", "HTTP 429", "rate limit", "too many requests", "resource_exhausted", "quota") {
		return classify(ErrorClassRateLimit)
	}

	if containsAny(msg, "status 402", "HTTP 402", "insufficient credit", "credit exhausted", "billing") {
		return classify(ErrorClassCreditExhausted)
	}

	if containsAny(msg, "status 401", "status 403", "HTTP 401", "HTTP 403", "api key not valid", "invalid api key",
		"incorrect api key", "unauthorized", "permission_denied", "forbidden") {
		return classify(ErrorClassAuth)
	}

	if appErr, ok := apperrors.As(err); ok {
		if appErr.StatusCode >= 500 {
			return classify(ErrorClassServer)
		}
		if appErr.StatusCode >= 400 {
			return classify(ErrorClassClient)
		}
	}

	if containsAny(msg, "status 5", "HTTP 5", "server error", "internal error", "unavailable") {
		return classify(ErrorClassServer)
	}

	if containsAny(msg, "status 4", "HTTP 4", "bad request", "not found") {
		return classify(ErrorClassClient)
	}

	if containsAny(msg, "timeout", "deadline exceeded") {
		return classify(ErrorClassTimeout)
	}

	return classify(ErrorClassUnknown)
}

// containsAny checks if s contains any of the substrings (case-insensitive)
func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
