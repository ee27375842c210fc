package recipe

import (
	"fmt"
	"net/http"

	"github.com/socialchef/mise/internal/config"
	"github.com/socialchef/mise/internal/httpclient"
)

// ProviderFactory builds a provider handle from a user supplied credential.
type ProviderFactory func(credential string) (Provider, error)

// NewProviderFactory returns a factory for the provider selected in cfg.
// Every provider it builds shares one instrumented HTTP client.
func NewProviderFactory(cfg config.GenerationConfig) ProviderFactory {
	return NewProviderFactoryWithClient(cfg, httpclient.New(cfg.Timeout))
}

// NewProviderFactoryWithClient is NewProviderFactory with an explicit HTTP client.
func NewProviderFactoryWithClient(cfg config.GenerationConfig, httpClient *http.Client) ProviderFactory {
	switch ProviderType(cfg.Provider) {
	case ProviderOpenAI:
		return func(credential string) (Provider, error) {
			return NewOpenAIProvider(credential, cfg.OpenAIModel, cfg.OpenAIBaseURL, httpClient)
		}
	case ProviderGemini, "":
		return func(credential string) (Provider, error) {
			return NewGeminiProvider(credential, cfg.GeminiModel, cfg.GeminiBaseURL, httpClient)
		}
	default:
		return func(string) (Provider, error) {
			return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
		}
	}
}
