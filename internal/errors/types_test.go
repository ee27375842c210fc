package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := &AppError{
		Message: "something went wrong",
	}
	if err.Error() != "something went wrong" {
		t.Errorf("expected 'something went wrong', got %v", err.Error())
	}

	wrappedErr := errors.New("underlying error")
	errWithWrap := &AppError{
		Message: "failed operation",
		Err:     wrappedErr,
	}
	expected := "failed operation: underlying error"
	if errWithWrap.Error() != expected {
		t.Errorf("expected %q, got %q", expected, errWithWrap.Error())
	}
}

func TestAppError_Code(t *testing.T) {
	err := &AppError{
		ErrorCode: "ERR_CODE_123",
	}
	if err.Code() != "ERR_CODE_123" {
		t.Errorf("expected ERR_CODE_123, got %v", err.Code())
	}
}

func TestAppError_IsMatchesByType(t *testing.T) {
	err := fmt.Errorf("submit: %w", NewIncompleteRequestError([]string{"ingredients"}))

	if !errors.Is(err, NewIncompleteRequestError(nil)) {
		t.Error("expected wrapped incomplete request error to match by type")
	}
	if errors.Is(err, NewMissingCredentialError()) {
		t.Error("expected incomplete request error not to match missing credential")
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("status 503")
	err := NewGenerationFailedError("PROVIDER_SERVER_ERROR", cause)

	if !errors.Is(err, cause) {
		t.Error("underlying error not reachable through errors.Is")
	}
}

func TestIsType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		typ  ErrorType
		want bool
	}{
		{
			name: "direct match",
			err:  NewEmptyCredentialError(),
			typ:  ErrorTypeEmptyCredential,
			want: true,
		},
		{
			name: "wrapped match",
			err:  fmt.Errorf("configure: %w", NewInvalidCredentialError(nil)),
			typ:  ErrorTypeInvalidCredential,
			want: true,
		},
		{
			name: "different type",
			err:  NewGenerationInProgressError(),
			typ:  ErrorTypeGenerationFailed,
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			typ:  ErrorTypeInternal,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			typ:  ErrorTypeInternal,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsType(tt.err, tt.typ); got != tt.want {
				t.Errorf("IsType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NewEmptyCredentialError(), http.StatusBadRequest},
		{NewInvalidCredentialError(nil), http.StatusBadRequest},
		{NewMissingCredentialError(), http.StatusPreconditionFailed},
		{NewIncompleteRequestError(nil), http.StatusBadRequest},
		{NewGenerationFailedError("X", nil), http.StatusBadGateway},
		{NewGenerationInProgressError(), http.StatusConflict},
		{NewNotFoundError("gone", "GONE", ""), http.StatusNotFound},
		{NewInternalError("oops", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Type), func(t *testing.T) {
			if tt.err.StatusCode != tt.want {
				t.Errorf("expected %d, got %d", tt.want, tt.err.StatusCode)
			}
		})
	}
}

func TestNewIncompleteRequestError_ListsMissingFields(t *testing.T) {
	err := NewIncompleteRequestError([]string{"ingredients", "mealType"})
	if err.Message != "Please fill in all fields (missing: [ingredients mealType])" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.RecoverySuggestion() == "" {
		t.Error("expected a recovery suggestion")
	}
}
