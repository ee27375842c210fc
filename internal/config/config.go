package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	// SessionSecret signs session cookies. A random secret is generated at
	// startup when empty, which invalidates sessions on restart.
	SessionSecret string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string
	SentryDSN                string
	CORSAllowedOrigins       string

	Port       string
	ConfigPath string

	Generation GenerationConfig
	Session    SessionConfig
	Render     RenderConfig
}

type GenerationConfig struct {
	Provider      string        `yaml:"provider"`
	GeminiModel   string        `yaml:"gemini_model"`
	GeminiBaseURL string        `yaml:"gemini_base_url"`
	OpenAIModel   string        `yaml:"openai_model"`
	OpenAIBaseURL string        `yaml:"openai_base_url"`
	Timeout       time.Duration `yaml:"timeout"`
}

type SessionConfig struct {
	IdleTTL       time.Duration `yaml:"idle_ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
	SecureCookie  bool          `yaml:"secure_cookie"`
}

type RenderConfig struct {
	Markdown bool `yaml:"markdown"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		SessionSecret:            os.Getenv("SESSION_SECRET"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		SentryDSN:                os.Getenv("SENTRY_DSN"),
		CORSAllowedOrigins:       os.Getenv("CORS_ALLOWED_ORIGINS"),
		Port:                     os.Getenv("PORT"),
		ConfigPath:               os.Getenv("CONFIG_PATH"),
		Generation: GenerationConfig{
			Provider:      os.Getenv("GENERATION_PROVIDER"),
			GeminiModel:   os.Getenv("GEMINI_MODEL"),
			OpenAIModel:   os.Getenv("OPENAI_MODEL"),
			OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		},
	}

	if cfg.ConfigPath == "" {
		cfg.ConfigPath = "config.yaml"
	}

	// Load from YAML file if available
	if err := cfg.LoadFromYAML(cfg.ConfigPath); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	// Set defaults
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "socialchef-mise"
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "1.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.SetGenerationDefaults()
	cfg.SetSessionDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Generation GenerationConfig `yaml:"generation"`
		Session    SessionConfig    `yaml:"session"`
		Render     RenderConfig     `yaml:"render"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment wins over the file for fields both can set
	g := yamlConfig.Generation
	if g.Provider != "" && c.Generation.Provider == "" {
		c.Generation.Provider = g.Provider
	}
	if g.GeminiModel != "" && c.Generation.GeminiModel == "" {
		c.Generation.GeminiModel = g.GeminiModel
	}
	if g.GeminiBaseURL != "" {
		c.Generation.GeminiBaseURL = g.GeminiBaseURL
	}
	if g.OpenAIModel != "" && c.Generation.OpenAIModel == "" {
		c.Generation.OpenAIModel = g.OpenAIModel
	}
	if g.OpenAIBaseURL != "" && c.Generation.OpenAIBaseURL == "" {
		c.Generation.OpenAIBaseURL = g.OpenAIBaseURL
	}
	if g.Timeout > 0 {
		c.Generation.Timeout = g.Timeout
	}

	s := yamlConfig.Session
	if s.IdleTTL > 0 {
		c.Session.IdleTTL = s.IdleTTL
	}
	if s.SweepInterval > 0 {
		c.Session.SweepInterval = s.SweepInterval
	}
	if s.SecureCookie {
		c.Session.SecureCookie = true
	}

	if yamlConfig.Render.Markdown {
		c.Render.Markdown = true
	}

	return nil
}

func (c *Config) SetGenerationDefaults() {
	c.Generation.Provider = strings.ToLower(strings.TrimSpace(c.Generation.Provider))
	if c.Generation.Provider == "" {
		c.Generation.Provider = "gemini"
	}
	if c.Generation.GeminiModel == "" {
		c.Generation.GeminiModel = "gemini-2.0-flash"
	}
	if c.Generation.GeminiBaseURL == "" {
		c.Generation.GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if c.Generation.OpenAIModel == "" {
		c.Generation.OpenAIModel = "gpt-4o-mini"
	}
}

func (c *Config) SetSessionDefaults() {
	if c.Session.IdleTTL == 0 {
		c.Session.IdleTTL = 2 * time.Hour
	}
	if c.Session.SweepInterval == 0 {
		c.Session.SweepInterval = time.Minute
	}
	if c.Env == "production" {
		c.Session.SecureCookie = true
	}
}

// OTLPHeaders parses OTEL_EXPORTER_OTLP_HEADERS ("k1=v1,k2=v2").
func (c *Config) OTLPHeaders() map[string]string {
	if c.OtelExporterOTLPHeaders == "" {
		return nil
	}
	headers := make(map[string]string)
	for _, pair := range strings.Split(c.OtelExporterOTLPHeaders, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return headers
}

// AllowedOrigins parses CORS_ALLOWED_ORIGINS ("https://a.example,https://b.example").
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) validate() error {
	switch c.Generation.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("GENERATION_PROVIDER %q is not supported (use gemini or openai)", c.Generation.Provider)
	}
	if c.Generation.Timeout < 0 {
		return fmt.Errorf("generation.timeout must not be negative")
	}
	if c.Session.IdleTTL < 0 {
		return fmt.Errorf("session.idle_ttl must not be negative")
	}
	return nil
}
