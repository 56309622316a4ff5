package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/models"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/pkg/processor"
)

type PostgresStore struct {
	config StoreConfig
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgres(ctx context.Context, config StoreConfig) (*PostgresStore, error) {
	if err := config.applyDefaults(); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &PostgresStore{
		config: config,
		pool:   pool,
		logger: slog.Default().With("component", "postgres-store"),
	}

	if err := s.initialize(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

func (s *PostgresStore) initialize(ctx context.Context) error {
	createDocuments := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT 'General',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, s.config.DocumentsTable)

	if _, err := s.pool.Exec(ctx, createDocuments); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_created_at_idx
		ON %s (created_at DESC)`,
		s.config.DocumentsTable, s.config.DocumentsTable)

	if _, err := s.pool.Exec(ctx, createIndex); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	createLogs := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			query_text TEXT NOT NULL,
			response TEXT NOT NULL,
			source_documents TEXT[] NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, s.config.QueryLogsTable)

	if _, err := s.pool.Exec(ctx, createLogs); err != nil {
		return fmt.Errorf("failed to create query log table: %w", err)
	}

	return nil
}

func (s *PostgresStore) CreateDocument(ctx context.Context, input models.DocumentInput) (models.Document, error) {
	doc, err := newDocument(input)
	if err != nil {
		return models.Document{}, err
	}

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, title, content, category, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		s.config.DocumentsTable)

	_, err = s.pool.Exec(ctx, stmt,
		doc.ID,
		doc.Title,
		doc.Content,
		doc.Category,
		doc.CreatedAt,
	)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to insert document: %w", err)
	}

	s.logger.Debug("document created", "id", doc.ID, "title", doc.Title)
	return doc, nil
}

func (s *PostgresStore) Documents(ctx context.Context) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, title, content, category, created_at
		FROM %s
		ORDER BY created_at DESC, id DESC`,
		s.config.DocumentsTable)

	return s.queryDocuments(ctx, query)
}

func (s *PostgresStore) Document(ctx context.Context, id string) (models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, title, content, category, created_at
		FROM %s
		WHERE id = $1`,
		s.config.DocumentsTable)

	var doc models.Document
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.Title,
		&doc.Content,
		&doc.Category,
		&doc.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Document{}, models.ErrNotFound
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to fetch document: %w", err)
	}

	doc.CreatedAt = doc.CreatedAt.UTC()
	return doc, nil
}

func (s *PostgresStore) Search(ctx context.Context, queryText string) ([]models.Document, error) {
	keywords := processor.Keywords(queryText)
	if len(keywords) == 0 {
		return []models.Document{}, nil
	}

	conditions := make([]string, 0, len(keywords))
	args := make([]any, 0, len(keywords))
	for i, keyword := range keywords {
		conditions = append(conditions, fmt.Sprintf(
			`title ILIKE $%d ESCAPE '\' OR content ILIKE $%d ESCAPE '\'`, i+1, i+1))
		args = append(args, "%"+escapeLike(keyword)+"%")
	}

	query := fmt.Sprintf(`
		SELECT id, title, content, category, created_at
		FROM %s
		WHERE %s
		ORDER BY created_at DESC, id DESC`,
		s.config.DocumentsTable, strings.Join(conditions, " OR "))

	return s.queryDocuments(ctx, query, args...)
}

func (s *PostgresStore) queryDocuments(ctx context.Context, query string, args ...any) ([]models.Document, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(
			&doc.ID,
			&doc.Title,
			&doc.Content,
			&doc.Category,
			&doc.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		doc.CreatedAt = doc.CreatedAt.UTC()
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}

	return docs, nil
}

func (s *PostgresStore) LogQuery(ctx context.Context, queryText, response string, sources []string) (models.QueryLog, error) {
	entry := newQueryLog(queryText, response, sources)

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, query_text, response, source_documents, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		s.config.QueryLogsTable)

	_, err := s.pool.Exec(ctx, stmt,
		entry.ID,
		entry.QueryText,
		entry.Response,
		entry.SourceDocuments,
		entry.CreatedAt,
	)
	if err != nil {
		return models.QueryLog{}, fmt.Errorf("failed to log query: %w", err)
	}

	return entry, nil
}

func (s *PostgresStore) QueryHistory(ctx context.Context, limit int) ([]models.QueryLog, error) {
	query := fmt.Sprintf(`
		SELECT id, query_text, response, source_documents, created_at
		FROM %s
		ORDER BY created_at DESC, id DESC
		LIMIT $1`,
		s.config.QueryLogsTable)

	rows, err := s.pool.Query(ctx, query, historyLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	logs := []models.QueryLog{}
	for rows.Next() {
		var entry models.QueryLog
		if err := rows.Scan(
			&entry.ID,
			&entry.QueryText,
			&entry.Response,
			&entry.SourceDocuments,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		entry.CreatedAt = entry.CreatedAt.UTC()
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	return logs, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
