package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/models"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/pkg/processor"
)

// SQLiteStore keeps documents in a local SQLite file. Timestamps are stored as
// unix nanoseconds.
type SQLiteStore struct {
	config StoreConfig
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLite(ctx context.Context, config StoreConfig) (*SQLiteStore, error) {
	if err := config.applyDefaults(); err != nil {
		return nil, err
	}
	if config.ConnString == "" {
		config.ConnString = "legaldoc.db"
	}

	db, err := sql.Open("sqlite", config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serialises writers and keeps ":memory:" databases
	// shared across calls.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{
		config: config,
		db:     db,
		logger: slog.Default().With("component", "sqlite-store"),
	}

	if err := s.initialize(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLiteStore) initialize(ctx context.Context) error {
	createDocuments := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT 'General',
			created_at INTEGER NOT NULL
		)`, s.config.DocumentsTable)

	if _, err := s.db.ExecContext(ctx, createDocuments); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_created_at_idx
		ON %s (created_at DESC)`,
		s.config.DocumentsTable, s.config.DocumentsTable)

	if _, err := s.db.ExecContext(ctx, createIndex); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	createLogs := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			query_text TEXT NOT NULL,
			response TEXT NOT NULL,
			source_documents TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`, s.config.QueryLogsTable)

	if _, err := s.db.ExecContext(ctx, createLogs); err != nil {
		return fmt.Errorf("failed to create query log table: %w", err)
	}

	return nil
}

func (s *SQLiteStore) CreateDocument(ctx context.Context, input models.DocumentInput) (models.Document, error) {
	doc, err := newDocument(input)
	if err != nil {
		return models.Document{}, err
	}

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, title, content, category, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.config.DocumentsTable)

	_, err = s.db.ExecContext(ctx, stmt,
		doc.ID,
		doc.Title,
		doc.Content,
		doc.Category,
		doc.CreatedAt.UnixNano(),
	)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to insert document: %w", err)
	}

	s.logger.Debug("document created", "id", doc.ID, "title", doc.Title)
	return doc, nil
}

func (s *SQLiteStore) Documents(ctx context.Context) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, title, content, category, created_at
		FROM %s
		ORDER BY created_at DESC, id DESC`,
		s.config.DocumentsTable)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}

	return docs, nil
}

func (s *SQLiteStore) Document(ctx context.Context, id string) (models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, title, content, category, created_at
		FROM %s
		WHERE id = ?`,
		s.config.DocumentsTable)

	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Document{}, models.ErrNotFound
	}
	if err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

// Search filters in Go because SQLite's LIKE and lower() only fold ASCII.
func (s *SQLiteStore) Search(ctx context.Context, queryText string) ([]models.Document, error) {
	keywords := processor.Keywords(queryText)
	if len(keywords) == 0 {
		return []models.Document{}, nil
	}

	docs, err := s.Documents(ctx)
	if err != nil {
		return nil, err
	}

	matches := []models.Document{}
	for _, doc := range docs {
		if processor.ContainsAny(doc.Title, keywords) || processor.ContainsAny(doc.Content, keywords) {
			matches = append(matches, doc)
		}
	}
	return matches, nil
}

func (s *SQLiteStore) LogQuery(ctx context.Context, queryText, response string, sources []string) (models.QueryLog, error) {
	entry := newQueryLog(queryText, response, sources)

	encoded, err := json.Marshal(entry.SourceDocuments)
	if err != nil {
		return models.QueryLog{}, fmt.Errorf("failed to encode sources: %w", err)
	}

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, query_text, response, source_documents, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.config.QueryLogsTable)

	_, err = s.db.ExecContext(ctx, stmt,
		entry.ID,
		entry.QueryText,
		entry.Response,
		string(encoded),
		entry.CreatedAt.UnixNano(),
	)
	if err != nil {
		return models.QueryLog{}, fmt.Errorf("failed to log query: %w", err)
	}

	return entry, nil
}

func (s *SQLiteStore) QueryHistory(ctx context.Context, limit int) ([]models.QueryLog, error) {
	query := fmt.Sprintf(`
		SELECT id, query_text, response, source_documents, created_at
		FROM %s
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		s.config.QueryLogsTable)

	rows, err := s.db.QueryContext(ctx, query, historyLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	logs := []models.QueryLog{}
	for rows.Next() {
		var (
			entry   models.QueryLog
			sources string
			created int64
		)
		if err := rows.Scan(&entry.ID, &entry.QueryText, &entry.Response, &sources, &created); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(sources), &entry.SourceDocuments); err != nil {
			return nil, fmt.Errorf("failed to decode sources: %w", err)
		}
		entry.CreatedAt = time.Unix(0, created).UTC()
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	return logs, nil
}

func (s *SQLiteStore) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (models.Document, error) {
	var (
		doc     models.Document
		created int64
	)
	err := row.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.Category, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Document{}, err
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to scan row: %w", err)
	}
	doc.CreatedAt = time.Unix(0, created).UTC()
	return doc, nil
}
