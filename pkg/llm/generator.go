package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/models"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/types"
)

// ModelGenerator asks a language model for the answer and degrades to
// document excerpts whenever the model call does not produce one.
type ModelGenerator struct {
	completer types.Completer
	fallback  *ExcerptGenerator
	system    string
	timeout   time.Duration
	logger    *slog.Logger
}

// NewModelGenerator wraps completer. Zero config fields take their defaults.
func NewModelGenerator(completer types.Completer, config ChatConfig) *ModelGenerator {
	if config.SystemTemplate == "" {
		config.SystemTemplate = defaultSystemTemplate
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &ModelGenerator{
		completer: completer,
		fallback:  NewExcerptGenerator(),
		system:    config.SystemTemplate,
		timeout:   config.Timeout,
		logger: slog.Default().With(
			"component", "model-generator",
			"provider", config.Provider,
			"model", config.Model,
		),
	}
}

func (g *ModelGenerator) Generate(ctx context.Context, query string, docs []models.Document) string {
	answer, err := g.complete(ctx, query, docs)
	if err != nil {
		g.logger.Warn("model call failed, using excerpt fallback", "err", err)
		return g.fallback.Generate(ctx, query, docs)
	}
	return answer
}

func (g *ModelGenerator) complete(ctx context.Context, query string, docs []models.Document) (answer string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model client panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	answer, err = g.completer.Complete(ctx, g.system, BuildPrompt(query, docs))
	if err != nil {
		return "", err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("model returned an empty answer")
	}
	return answer, nil
}
