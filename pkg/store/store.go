package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/models"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/types"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/pkg/processor"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// DefaultHistoryLimit bounds QueryHistory when no limit is given.
	DefaultHistoryLimit = 50
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type StoreConfig struct {
	Driver         string
	ConnString     string
	DocumentsTable string
	QueryLogsTable string
}

func (c *StoreConfig) applyDefaults() error {
	if c.Driver == "" {
		c.Driver = DriverPostgres
	}
	if c.DocumentsTable == "" {
		c.DocumentsTable = "legal_documents"
	}
	if c.QueryLogsTable == "" {
		c.QueryLogsTable = "query_logs"
	}

	for _, table := range []string{c.DocumentsTable, c.QueryLogsTable} {
		if !identifierPattern.MatchString(table) {
			return fmt.Errorf("invalid table name %q", table)
		}
	}
	return nil
}

// NewWithConfig opens the backend named by config.Driver and creates its
// tables if they are missing.
func NewWithConfig(ctx context.Context, config StoreConfig) (types.Store, error) {
	switch config.Driver {
	case DriverPostgres, "":
		return NewPostgres(ctx, config)
	case DriverSQLite:
		return NewSQLite(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}
}

// newDocument validates input and fills in the store-assigned fields.
func newDocument(input models.DocumentInput) (models.Document, error) {
	title := strings.TrimSpace(processor.SanitizeUTF8(input.Title))
	content := strings.TrimSpace(processor.SanitizeUTF8(input.Content))

	if title == "" {
		return models.Document{}, models.ValidationError{Field: "title", Message: "title is required"}
	}
	if content == "" {
		return models.Document{}, models.ValidationError{Field: "content", Message: "content is required"}
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = models.DefaultCategory
	}

	return models.Document{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Category:  category,
		CreatedAt: now(),
	}, nil
}

func newQueryLog(queryText, response string, sources []string) models.QueryLog {
	if sources == nil {
		sources = []string{}
	}
	return models.QueryLog{
		ID:              uuid.NewString(),
		QueryText:       processor.SanitizeUTF8(queryText),
		Response:        processor.SanitizeUTF8(response),
		SourceDocuments: sources,
		CreatedAt:       now(),
	}
}

// now is truncated to the precision PostgreSQL keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func historyLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	return limit
}

// escapeLike makes keyword match literally inside a LIKE pattern.
func escapeLike(keyword string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(keyword)
}
