package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIProvider_BlankKey(t *testing.T) {
	_, err := NewOpenAIProvider("", "gpt-4o-mini", "", nil)
	assert.Error(t, err)
}

func TestOpenAIProvider_GenerateText(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-api-key" {
			t.Errorf("Expected test-api-key, got %s", r.Header.Get("Authorization"))
		}

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Failed to decode body: %v", err)
		}
		if body.Model != "gpt-4o-mini" {
			t.Errorf("Expected model gpt-4o-mini, got %s", body.Model)
		}
		if len(body.Messages) != 1 || body.Messages[0].Role != "user" || body.Messages[0].Content != "the prompt" {
			t.Errorf("Unexpected messages %+v", body.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o-mini",`+
			`"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"STUB_RECIPE_TEXT"}}]}`)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider("test-api-key", "gpt-4o-mini", server.URL+"/v1/", server.Client())
	require.NoError(t, err)

	text, err := provider.GenerateText(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "STUB_RECIPE_TEXT", text)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestOpenAIProvider_ServerErrorIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"boom","type":"server_error"}}`)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider("test-api-key", "gpt-4o-mini", server.URL+"/v1/", server.Client())
	require.NoError(t, err)

	_, err = provider.GenerateText(context.Background(), "the prompt")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, ErrorClassServer, ClassifyError(err, "openai").Type)
}
