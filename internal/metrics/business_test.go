package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBeforeInit(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordExternalCall(ctx, "gemini", 0.2)
		RecordGeneration(ctx, "success", 1.5)
		RecordCredentialSubmission(ctx, "accepted")
		SessionOpened(ctx)
		SessionClosed(ctx)
	})
}

func TestInit(t *testing.T) {
	require.NoError(t, Init())

	assert.NotNil(t, RecipeGenerationsTotal)
	assert.NotNil(t, RecipeGenerationDuration)
	assert.NotNil(t, ExternalAPICallsTotal)
	assert.NotNil(t, ExternalAPIDuration)
	assert.NotNil(t, CredentialSubmissionsTotal)
	assert.NotNil(t, ActiveSessions)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordExternalCall(ctx, "openai", 0.4)
		RecordGeneration(ctx, "failed", 0.1)
	})
}
