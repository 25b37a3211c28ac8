package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}

	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	if c.Import.MaxPageBytes <= 0 {
		return fmt.Errorf("import.max_page_bytes must be > 0 (got %d)", c.Import.MaxPageBytes)
	}
	if c.RateLimit.IngestPerMinute <= 0 {
		return fmt.Errorf("rate_limit.ingest_per_minute must be > 0 (got %d)", c.RateLimit.IngestPerMinute)
	}
	if !c.Metrics.Disabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (l *LLMConfig) validate() error {
	switch l.Provider {
	case "":
		return nil
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("provider must be %q, %q or empty (got %q)", ProviderOpenAI, ProviderAnthropic, l.Provider)
	}

	if l.APIKey == "" {
		return fmt.Errorf("api_key is required when provider is %q", l.Provider)
	}
	if l.Temperature < 0 || l.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2] (got %v)", l.Temperature)
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", l.Timeout)
	}
	return nil
}
