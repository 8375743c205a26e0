package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries all environment-sourced settings. It is constructed once at
// process start and treated as read-only afterwards.
//
// Azure credentials are deliberately not required here: the server can run
// with only one of the two services configured, and each client reports a
// configuration failure at call time instead.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	TranslatorKey      string `envconfig:"AZURE_TRANSLATOR_KEY" default:""`
	TranslatorRegion   string `envconfig:"AZURE_TRANSLATOR_REGION" default:"centralindia"`
	TranslatorEndpoint string `envconfig:"AZURE_TRANSLATOR_ENDPOINT" default:"https://api.cognitive.microsofttranslator.com"`

	OpenAIKey         string        `envconfig:"AZURE_OPENAI_API_KEY" default:""`
	OpenAIEndpoint    string        `envconfig:"AZURE_OPENAI_ENDPOINT" default:""`
	OpenAIDeployment  string        `envconfig:"AZURE_OPENAI_DEPLOYMENT_NAME" default:"gpt-4o-mini"`
	OpenAIAPIVersion  string        `envconfig:"AZURE_OPENAI_API_VERSION" default:"2024-02-15-preview"`
	CompletionTimeout time.Duration `envconfig:"COMPLETION_TIMEOUT" default:"60s"`

	MaxUploadMB        int    `envconfig:"MAX_UPLOAD_MB" default:"16"`
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.TranslatorEndpoint) == "" {
		return fmt.Errorf("AZURE_TRANSLATOR_ENDPOINT is required")
	}
	if strings.TrimSpace(c.OpenAIDeployment) == "" {
		return fmt.Errorf("AZURE_OPENAI_DEPLOYMENT_NAME is required")
	}
	if strings.TrimSpace(c.OpenAIAPIVersion) == "" {
		return fmt.Errorf("AZURE_OPENAI_API_VERSION is required")
	}
	if c.CompletionTimeout <= 0 {
		return fmt.Errorf("COMPLETION_TIMEOUT must be a positive duration")
	}
	if c.MaxUploadMB < 1 {
		return fmt.Errorf("MAX_UPLOAD_MB must be >= 1")
	}
	return nil
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}

// MaxUploadBytes returns the upload cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	if c == nil || c.MaxUploadMB < 1 {
		return 16 << 20
	}
	return int64(c.MaxUploadMB) << 20
}
