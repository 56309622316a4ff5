package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/models"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/types"
)

// DefaultCandidates is how many recent documents stand in when a search
// finds nothing.
const DefaultCandidates = 2

var (
	// ErrImportDisabled is returned by ImportDocument when no importer is set.
	ErrImportDisabled = errors.New("document import is not configured")

	// ErrFetch marks an import that failed while downloading the source page.
	ErrFetch = errors.New("fetch failed")
)

type Pipeline struct {
	store     types.Store
	generator types.Generator
	importer  types.Importer
	logger    *slog.Logger
}

type Option func(*Pipeline)

// WithImporter enables ImportDocument.
func WithImporter(importer types.Importer) Option {
	return func(p *Pipeline) {
		p.importer = importer
	}
}

func New(store types.Store, generator types.Generator, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:     store,
		generator: generator,
		logger:    slog.Default().With("component", "pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessQuery searches for documents matching queryText, phrases an answer
// from them and records the exchange.
func (p *Pipeline) ProcessQuery(ctx context.Context, queryText string) (*models.QueryResult, error) {
	if strings.TrimSpace(queryText) == "" {
		return nil, models.ValidationError{Field: "query", Message: "Query cannot be empty"}
	}

	docs, err := p.store.Search(ctx, queryText)
	if err != nil {
		return nil, &models.DependencyError{Op: "search documents", Err: err}
	}

	if len(docs) == 0 {
		all, err := p.store.Documents(ctx)
		if err != nil {
			return nil, &models.DependencyError{Op: "list documents", Err: err}
		}
		docs = all[:min(DefaultCandidates, len(all))]
		p.logger.Debug("no keyword matches, using recent documents", "candidates", len(docs))
	}

	answer := p.generator.Generate(ctx, queryText, docs)
	sources := models.Titles(docs)

	if _, err := p.store.LogQuery(ctx, queryText, answer, sources); err != nil {
		return nil, &models.DependencyError{Op: "log query", Err: err}
	}

	p.logger.Info("query processed", "sources", len(sources))

	return &models.QueryResult{
		Answer:          answer,
		SourceDocuments: sources,
		Success:         true,
		Message:         "Query processed successfully",
	}, nil
}

func (p *Pipeline) CreateDocument(ctx context.Context, input models.DocumentInput) (models.Document, error) {
	doc, err := p.store.CreateDocument(ctx, input)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			return models.Document{}, err
		}
		return models.Document{}, &models.DependencyError{Op: "create document", Err: err}
	}
	return doc, nil
}

func (p *Pipeline) Documents(ctx context.Context) ([]models.Document, error) {
	docs, err := p.store.Documents(ctx)
	if err != nil {
		return nil, &models.DependencyError{Op: "list documents", Err: err}
	}
	return docs, nil
}

// Document returns models.ErrNotFound for unknown ids.
func (p *Pipeline) Document(ctx context.Context, id string) (models.Document, error) {
	doc, err := p.store.Document(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Document{}, err
		}
		return models.Document{}, &models.DependencyError{Op: "fetch document", Err: err}
	}
	return doc, nil
}

func (p *Pipeline) QueryHistory(ctx context.Context, limit int) ([]models.QueryLog, error) {
	logs, err := p.store.QueryHistory(ctx, limit)
	if err != nil {
		return nil, &models.DependencyError{Op: "query history", Err: err}
	}
	return logs, nil
}

// ImportDocument fetches url and stores it as a new document. A non-empty
// category overrides whatever the importer derived.
func (p *Pipeline) ImportDocument(ctx context.Context, url, category string) (models.Document, error) {
	if p.importer == nil {
		return models.Document{}, ErrImportDisabled
	}
	if strings.TrimSpace(url) == "" {
		return models.Document{}, models.ValidationError{Field: "url", Message: "URL is required"}
	}

	input, err := p.importer.Fetch(ctx, url)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			return models.Document{}, err
		}
		return models.Document{}, &models.DependencyError{Op: "import " + url, Err: fmt.Errorf("%w: %w", ErrFetch, err)}
	}
	if category != "" {
		input.Category = category
	}

	return p.CreateDocument(ctx, input)
}
