// Package integration exercises the full HTTP stack: router, session cookie,
// form controller, generation client and a Gemini provider pointed at a fake
// upstream. No real API calls are made.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/socialchef/mise/internal/api"
	"github.com/socialchef/mise/internal/config"
	"github.com/socialchef/mise/internal/form"
	"github.com/socialchef/mise/internal/httpclient"
	"github.com/socialchef/mise/internal/middleware"
	"github.com/socialchef/mise/internal/render"
	"github.com/socialchef/mise/internal/services/recipe"
	"github.com/socialchef/mise/internal/session"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// Fake Gemini upstream
// ============================================================================

type fakeGemini struct {
	calls   atomic.Int32
	status  atomic.Int32
	text    string
	hold    chan struct{}
	started chan struct{}

	mu      sync.Mutex
	prompts []string
	keys    []string
}

func newFakeGemini(text string) *fakeGemini {
	g := &fakeGemini{text: text, started: make(chan struct{}, 8)}
	g.status.Store(http.StatusOK)
	return g
}

func (g *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.calls.Add(1)

	var body struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	g.mu.Lock()
	g.keys = append(g.keys, r.Header.Get("x-goog-api-key"))
	if len(body.Contents) > 0 && len(body.Contents[0].Parts) > 0 {
		g.prompts = append(g.prompts, body.Contents[0].Parts[0].Text)
	}
	g.mu.Unlock()

	g.started <- struct{}{}
	if g.hold != nil {
		<-g.hold
	}

	w.Header().Set("Content-Type", "application/json")
	if status := int(g.status.Load()); status != http.StatusOK {
		w.WriteHeader(status)
		w.Write([]byte(`{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`))
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"parts": []map[string]any{{"text": g.text}},
			},
		}},
	})
}

func (g *fakeGemini) lastKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.keys) == 0 {
		return ""
	}
	return g.keys[len(g.keys)-1]
}

func (g *fakeGemini) lastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.prompts) == 0 {
		return ""
	}
	return g.prompts[len(g.prompts)-1]
}

// ============================================================================
// Application under test
// ============================================================================

type app struct {
	server   *httptest.Server
	upstream *httptest.Server
	gemini   *fakeGemini
	store    *session.Store
}

func newApp(t *testing.T, gemini *fakeGemini) *app {
	t.Helper()

	upstream := httptest.NewServer(gemini)
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		ServiceName:   "mise-test",
		SessionSecret: "integration-secret",
		Generation: config.GenerationConfig{
			Provider:      "gemini",
			GeminiModel:   "gemini-2.0-flash",
			GeminiBaseURL: upstream.URL,
		},
		Session: config.SessionConfig{IdleTTL: time.Hour},
	}

	newClient := recipe.NewSessionClientFactory(
		recipe.NewProviderFactoryWithClient(cfg.Generation, httpclient.WrapClient(upstream.Client())),
	)
	store := session.NewStore(func() *form.Controller {
		return form.NewController(newClient())
	}, cfg.Session.IdleTTL)

	sessions, err := middleware.NewSessions(store, cfg.SessionSecret, cfg.Session)
	require.NoError(t, err)

	server := httptest.NewServer(api.NewRouter(api.NewServer(cfg, render.Verbatim{}), sessions))
	t.Cleanup(server.Close)

	return &app{server: server, upstream: upstream, gemini: gemini, store: store}
}

// browser returns an HTTP client with its own cookie jar, i.e. its own session.
func (a *app) browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func (a *app) do(t *testing.T, client *http.Client, method, path string, body any) (int, api.ErrorResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// ErrorResponse embeds StateResponse, so it decodes both shapes.
	var out api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func strPtr(s string) *string { return &s }

// resultPanel returns the rendered result section of page, so assertions do
// not match the form's own option labels.
func resultPanel(t *testing.T, page string) string {
	t.Helper()
	_, rest, ok := strings.Cut(page, "<h2>Your recipe</h2>")
	require.True(t, ok, "page has no result panel")
	panel, _, ok := strings.Cut(rest, "</section>")
	require.True(t, ok, "result panel is not closed")
	return panel
}

func fullRecipe() api.RecipeRequest {
	return api.RecipeRequest{
		Ingredients:   strPtr("egg, flour"),
		MealType:      strPtr("breakfast"),
		PeopleCount:   strPtr("2"),
		CookingMethod: strPtr("stovetop"),
	}
}
