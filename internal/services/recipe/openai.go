package recipe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/socialchef/mise/internal/httpclient"
	"github.com/socialchef/mise/internal/metrics"
)

// OpenAIProvider implements Provider with the OpenAI chat completions API.
// Any OpenAI-compatible endpoint works when a base URL is set.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIProvider constructs a provider for the given API key. It fails
// only on a blank key; the SDK does not contact the API until first use.
func NewOpenAIProvider(apiKey, model, baseURL string, httpClient *http.Client) (*OpenAIProvider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key required")
	}
	if httpClient == nil {
		httpClient = httpclient.New(0)
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (p *OpenAIProvider) Name() string {
	return string(ProviderOpenAI)
}

// GenerateText sends prompt as a single user message.
func (p *OpenAIProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	startTime := time.Now()
	defer func() {
		metrics.RecordExternalCall(ctx, p.Name(), time.Since(startTime).Seconds())
	}()

	resp, err := p.client.Chat.Completions.New(httpclient.WithProvider(ctx, "OpenAI"), openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}
	return content, nil
}
