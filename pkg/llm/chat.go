package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/types"
)

const (
	ProviderNone      = ""
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// ChatConfig represents the configuration for answer generation.
type ChatConfig struct {
	Provider       string
	Model          string
	APIKey         string
	BaseURL        string // OpenAI-compatible or Ollama server URL
	MaxTokens      int
	Temperature    *float64 // nil means 0.7
	Timeout        time.Duration
	SystemTemplate string
}

var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-3.5-turbo",
	ProviderOllama:    "mistral",
	ProviderGemini:    "gemini-2.5-flash",
	ProviderAnthropic: "claude-3-5-haiku-latest",
}

// Float returns a pointer to v, for ChatConfig.Temperature.
func Float(v float64) *float64 {
	return &v
}

func (c *ChatConfig) applyDefaults() error {
	if c.Model == "" {
		c.Model = defaultModels[c.Provider]
	}
	if c.Temperature == nil {
		c.Temperature = Float(0.7)
	}
	if *c.Temperature < 0 || *c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max tokens cannot be negative")
	} else if c.MaxTokens == 0 {
		c.MaxTokens = 500
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.SystemTemplate == "" {
		c.SystemTemplate = defaultSystemTemplate
	}
	return nil
}

// NewWithConfig builds the generator for config.Provider. Without a provider
// the deterministic ExcerptGenerator is returned; otherwise a ModelGenerator
// that falls back to it.
func NewWithConfig(ctx context.Context, config ChatConfig) (types.Generator, error) {
	if config.Provider == ProviderNone {
		slog.Default().Info("no language model configured, answers use document excerpts")
		return NewExcerptGenerator(), nil
	}

	if err := config.applyDefaults(); err != nil {
		return nil, err
	}

	completer, err := newCompleter(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}

	return NewModelGenerator(completer, config), nil
}

func newCompleter(ctx context.Context, config ChatConfig) (types.Completer, error) {
	switch config.Provider {
	case ProviderOpenAI:
		return newOpenAICompleter(config)
	case ProviderOllama:
		return newOllamaCompleter(config)
	case ProviderGemini:
		return newGeminiCompleter(ctx, config)
	case ProviderAnthropic:
		return newAnthropicCompleter(config)
	default:
		return nil, fmt.Errorf("unsupported provider %q", config.Provider)
	}
}
