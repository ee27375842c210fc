// Package form holds the per-session form state: the credential flag, the
// recipe draft, the latest result and the busy flag. Every user action goes
// through a Controller method and is turned into a state transition and, on
// failure, a transient notification.
package form

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	apperrors "github.com/socialchef/mise/internal/errors"
	"github.com/socialchef/mise/internal/metrics"
	"github.com/socialchef/mise/internal/sentry"
	"github.com/socialchef/mise/internal/services/recipe"
)

// Controller owns the UI state of one session. Its methods are safe to call
// from concurrent requests; the generator call runs without holding the lock
// so the state stays readable while a recipe is generated.
type Controller struct {
	gen    recipe.Generator
	logger *slog.Logger
	now    func() time.Time

	mu                   sync.Mutex
	credentialConfigured bool
	draft                recipe.Request
	result               *recipe.Result
	busy                 bool
	notifications        []Notification
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithClock overrides the time source used to stamp results.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController returns a controller with an empty draft that issues
// requests through gen.
func NewController(gen recipe.Generator, opts ...Option) *Controller {
	c := &Controller{
		gen:    gen,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitCredential configures the generator with raw. A blank credential is
// rejected without touching the generator.
func (c *Controller) SubmitCredential(ctx context.Context, raw string) error {
	credential := strings.TrimSpace(raw)
	if credential == "" {
		metrics.RecordCredentialSubmission(ctx, "empty")
		return c.fail(ctx, apperrors.NewEmptyCredentialError())
	}

	if !c.gen.Configure(credential) {
		metrics.RecordCredentialSubmission(ctx, "invalid")
		return c.fail(ctx, apperrors.NewInvalidCredentialError(nil))
	}

	c.mu.Lock()
	c.credentialConfigured = true
	c.pushLocked(successNotification("API key saved"))
	c.mu.Unlock()

	metrics.RecordCredentialSubmission(ctx, "accepted")
	c.logger.InfoContext(ctx, "Credential configured")
	return nil
}

// UpdateField sets one draft field. Values are not validated here.
func (c *Controller) UpdateField(ctx context.Context, field recipe.Field, value string) error {
	if _, ok := recipe.ParseField(string(field)); !ok {
		return c.fail(ctx, apperrors.NewValidationError(
			"Unknown form field "+string(field),
			"UNKNOWN_FIELD",
			"Use one of ingredients, mealType, peopleCount, cookingMethod.",
		))
	}

	c.mu.Lock()
	c.draft = c.draft.With(field, value)
	c.mu.Unlock()
	return nil
}

// SubmitRecipeRequest generates a recipe from the current draft.
//
// Preconditions are checked in order: a configured credential, then all four
// fields present, then no generation already running. On success the result
// replaces the previous one together with a snapshot of the draft that
// produced it. On failure the previous result is kept. The busy flag is
// cleared in both cases.
func (c *Controller) SubmitRecipeRequest(ctx context.Context) error {
	c.mu.Lock()
	if !c.credentialConfigured {
		c.mu.Unlock()
		return c.fail(ctx, apperrors.NewMissingCredentialError())
	}
	if missing := c.draft.Missing(); len(missing) > 0 {
		c.mu.Unlock()
		return c.fail(ctx, apperrors.NewIncompleteRequestError(missing))
	}
	if c.busy {
		c.mu.Unlock()
		return c.fail(ctx, apperrors.NewGenerationInProgressError())
	}
	snapshot := c.draft
	c.busy = true
	c.mu.Unlock()

	start := c.now()
	text, err := c.gen.Generate(ctx, snapshot)
	elapsed := c.now().Sub(start).Seconds()

	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()

	if err != nil {
		metrics.RecordGeneration(ctx, "failed", elapsed)
		if apperrors.IsType(err, apperrors.ErrorTypeMissingCredential) {
			return c.fail(ctx, apperrors.NewMissingCredentialError())
		}
		genErr, ok := apperrors.As(err)
		if !ok || genErr.Type != apperrors.ErrorTypeGenerationFailed {
			genErr = apperrors.NewGenerationFailedError("GENERATION_FAILED", err)
		}
		sentry.CaptureError(err, map[string]string{"error_code": genErr.Code()})
		return c.fail(ctx, genErr)
	}

	c.mu.Lock()
	c.result = &recipe.Result{
		Text:        text,
		Request:     snapshot,
		Provider:    providerName(c.gen),
		GeneratedAt: c.now(),
	}
	c.mu.Unlock()

	metrics.RecordGeneration(ctx, "success", elapsed)
	c.logger.InfoContext(ctx, "Recipe generated",
		"meal_type", snapshot.MealType,
		"cooking_method", snapshot.CookingMethod,
		"duration_s", elapsed,
	)
	return nil
}

// Reject records a failure detected outside the controller, such as a
// malformed request body, the same way the controller's own failures are
// recorded. Errors that are not AppErrors are reported as internal errors.
func (c *Controller) Reject(ctx context.Context, err error) error {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.NewInternalError("Something went wrong", err)
	}
	return c.fail(ctx, appErr)
}

// State returns a copy of the current UI state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		CredentialConfigured: c.credentialConfigured,
		Draft:                c.draft,
		Busy:                 c.busy,
	}
	if c.result != nil {
		r := *c.result
		s.Result = &r
	}
	return s
}

// DrainNotifications returns the pending notifications and clears them.
func (c *Controller) DrainNotifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.notifications
	c.notifications = nil
	return n
}

// fail records err as a notification, logs it, and returns it.
func (c *Controller) fail(ctx context.Context, err *apperrors.AppError) error {
	level := slog.LevelInfo
	if err.Type == apperrors.ErrorTypeGenerationFailed {
		level = slog.LevelError
	}
	attrs := []any{"error_type", string(err.Type), "error_code", err.Code()}
	if err.Err != nil {
		attrs = append(attrs, "cause", err.Err.Error())
	}
	c.logger.Log(ctx, level, "Form action rejected", attrs...)

	c.mu.Lock()
	c.pushLocked(errorNotification(err))
	c.mu.Unlock()
	return err
}

func (c *Controller) pushLocked(n Notification) {
	const maxPending = 10
	c.notifications = append(c.notifications, n)
	if len(c.notifications) > maxPending {
		c.notifications = c.notifications[len(c.notifications)-maxPending:]
	}
}

func providerName(gen recipe.Generator) string {
	if named, ok := gen.(interface{ ProviderName() string }); ok {
		return named.ProviderName()
	}
	return ""
}
