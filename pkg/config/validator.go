package config

import (
	"fmt"
	"net/url"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	validDrivers   = []string{"postgres", "sqlite"}
	validProviders = []string{"", "openai", "ollama", "gemini", "anthropic"}
	validLevels    = []string{"debug", "info", "warn", "error"}
)

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate Server config
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "server.port",
			Message: "port must be between 1 and 65535",
		})
	}

	// Validate Database config
	if !contains(validDrivers, c.Database.Driver) {
		errors = append(errors, ValidationError{
			Field:   "database.driver",
			Message: fmt.Sprintf("unsupported driver %q", c.Database.Driver),
		})
	}

	if c.Database.URL == "" {
		errors = append(errors, ValidationError{
			Field:   "database.url",
			Message: "database URL is required",
		})
	} else if c.Database.Driver == "postgres" {
		if _, err := url.Parse(c.Database.URL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "database.url",
				Message: "invalid database URL",
			})
		}
	}

	// Validate LLM config
	if !contains(validProviders, c.LLM.Provider) {
		errors = append(errors, ValidationError{
			Field:   "llm.provider",
			Message: fmt.Sprintf("unsupported provider %q", c.LLM.Provider),
		})
	}

	switch c.LLM.Provider {
	case "openai", "gemini", "anthropic":
		if c.LLM.APIKey == "" {
			errors = append(errors, ValidationError{
				Field:   "llm.api_key",
				Message: fmt.Sprintf("an API key is required for provider %s", c.LLM.Provider),
			})
		}
	}

	if c.LLM.MaxTokens < 1 || c.LLM.MaxTokens > 4096 {
		errors = append(errors, ValidationError{
			Field:   "llm.max_tokens",
			Message: "max_tokens must be between 1 and 4096",
		})
	}

	if c.LLM.Temperature != nil && (*c.LLM.Temperature < 0 || *c.LLM.Temperature > 2) {
		errors = append(errors, ValidationError{
			Field:   "llm.temperature",
			Message: "temperature must be between 0 and 2",
		})
	}

	if c.LLM.Timeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "llm.timeout",
			Message: "timeout must not be negative",
		})
	}

	// Validate base URL format
	if c.LLM.BaseURL != "" {
		if u, err := url.Parse(c.LLM.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "llm.base_url",
				Message: "invalid base URL",
			})
		}
	}

	// Validate Importer config
	if c.Importer.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "importer.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	if c.Importer.MaxContentBytes < 1 {
		errors = append(errors, ValidationError{
			Field:   "importer.max_content_bytes",
			Message: "max_content_bytes must be positive",
		})
	}

	if !contains(validLevels, strings.ToLower(c.Log.Level)) {
		errors = append(errors, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("unknown log level %q", c.Log.Level),
		})
	}

	return errors
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
