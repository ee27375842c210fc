package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("socialchef/mise")

	// Recipe metrics
	RecipeGenerationsTotal   metric.Int64Counter
	RecipeGenerationDuration metric.Float64Histogram

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter
	ExternalAPIDuration   metric.Float64Histogram

	// Session metrics
	CredentialSubmissionsTotal metric.Int64Counter
	ActiveSessions             metric.Int64UpDownCounter
)

func Init() error {
	var err error

	RecipeGenerationsTotal, err = meter.Int64Counter(
		"recipe.generations.total",
		metric.WithDescription("Total number of recipe generation submissions by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	RecipeGenerationDuration, err = meter.Float64Histogram(
		"recipe.generation.duration",
		metric.WithDescription("Duration of recipe generation as seen by the form"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of external API calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of external API calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30),
	)
	if err != nil {
		return err
	}

	CredentialSubmissionsTotal, err = meter.Int64Counter(
		"credential.submissions.total",
		metric.WithDescription("Total number of API key submissions by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ActiveSessions, err = meter.Int64UpDownCounter(
		"sessions.active",
		metric.WithDescription("Number of live form sessions"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	return nil
}

// The helpers below are no-ops until Init has run, so packages can record
// unconditionally (tests never call Init).

// RecordExternalCall records one outbound provider call.
func RecordExternalCall(ctx context.Context, provider string, seconds float64) {
	attrs := metric.WithAttributes(attribute.String("provider", provider))
	if ExternalAPIDuration != nil {
		ExternalAPIDuration.Record(ctx, seconds, attrs)
	}
	if ExternalAPICallsTotal != nil {
		ExternalAPICallsTotal.Add(ctx, 1, attrs)
	}
}

// RecordGeneration records a form submission that reached the generator.
func RecordGeneration(ctx context.Context, outcome string, seconds float64) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	if RecipeGenerationsTotal != nil {
		RecipeGenerationsTotal.Add(ctx, 1, attrs)
	}
	if RecipeGenerationDuration != nil {
		RecipeGenerationDuration.Record(ctx, seconds, attrs)
	}
}

// RecordCredentialSubmission records a credential save attempt.
func RecordCredentialSubmission(ctx context.Context, outcome string) {
	if CredentialSubmissionsTotal != nil {
		CredentialSubmissionsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

// SessionOpened and SessionClosed track the live session gauge.
func SessionOpened(ctx context.Context) {
	if ActiveSessions != nil {
		ActiveSessions.Add(ctx, 1)
	}
}

func SessionClosed(ctx context.Context) {
	if ActiveSessions != nil {
		ActiveSessions.Add(ctx, -1)
	}
}
