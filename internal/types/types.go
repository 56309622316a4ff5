package types

import (
	"context"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/models"
)

// Core interfaces
type DocumentStore interface {
	CreateDocument(ctx context.Context, input models.DocumentInput) (models.Document, error)
	Documents(ctx context.Context) ([]models.Document, error)
	Document(ctx context.Context, id string) (models.Document, error)
	Search(ctx context.Context, queryText string) ([]models.Document, error)
}

type QueryLogStore interface {
	LogQuery(ctx context.Context, queryText, response string, sources []string) (models.QueryLog, error)
	QueryHistory(ctx context.Context, limit int) ([]models.QueryLog, error)
}

type Store interface {
	DocumentStore
	QueryLogStore
	Close()
}

// Generator phrases an answer to query from docs. Implementations never fail;
// they degrade to a deterministic answer instead.
type Generator interface {
	Generate(ctx context.Context, query string, docs []models.Document) string
}

// Completer sends a system and user message pair to a language model.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

type Importer interface {
	Fetch(ctx context.Context, url string) (models.DocumentInput, error)
}
