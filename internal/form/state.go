package form

import (
	apperrors "github.com/socialchef/mise/internal/errors"
	"github.com/socialchef/mise/internal/services/recipe"
)

// State is a point-in-time copy of a Controller's UI state.
type State struct {
	CredentialConfigured bool           `json:"credentialConfigured"`
	Draft                recipe.Request `json:"draft"`
	Result               *recipe.Result `json:"result,omitempty"`
	Busy                 bool           `json:"busy"`
}

// Variant selects how a notification is styled.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a transient message shown once to the user.
type Notification struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
	Code        string  `json:"code,omitempty"`
}

func successNotification(description string) Notification {
	return Notification{
		Title:       "Success",
		Description: description,
		Variant:     VariantDefault,
	}
}

// errorNotification shows the error's fixed message and recovery hint; the
// wrapped cause is never shown.
func errorNotification(err *apperrors.AppError) Notification {
	description := err.Message
	if err.Recovery != "" {
		description += ". " + err.Recovery
	}
	return Notification{
		Title:       "Error",
		Description: description,
		Variant:     VariantDestructive,
		Code:        err.Code(),
	}
}
