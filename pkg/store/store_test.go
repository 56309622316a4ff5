package store_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/models"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/types"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/pkg/store"
)

func newSQLiteStore(t *testing.T) types.Store {
	t.Helper()
	s, err := store.NewWithConfig(context.Background(), store.StoreConfig{
		Driver:     store.DriverSQLite,
		ConnString: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

// newPostgresStore needs a reachable server in TEST_DATABASE_URL.
func newPostgresStore(t *testing.T) types.Store {
	t.Helper()
	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	suffix := strings.ReplaceAll(uuid.NewString()[:8], "-", "")
	s, err := store.NewWithConfig(context.Background(), store.StoreConfig{
		Driver:         store.DriverPostgres,
		ConnString:     connString,
		DocumentsTable: "test_documents_" + suffix,
		QueryLogsTable: "test_query_logs_" + suffix,
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestSQLiteStore(t *testing.T) {
	runStoreSuite(t, newSQLiteStore)
}

func TestPostgresStore(t *testing.T) {
	runStoreSuite(t, newPostgresStore)
}

func runStoreSuite(t *testing.T, open func(t *testing.T) types.Store) {
	t.Run("create assigns id, timestamp and default category", func(t *testing.T) {
		s := open(t)
		doc, err := s.CreateDocument(context.Background(), models.DocumentInput{
			Title:   "  NDA  ",
			Content: "Mutual non-disclosure terms.",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, doc.ID)
		assert.Equal(t, "NDA", doc.Title)
		assert.Equal(t, models.DefaultCategory, doc.Category)
		assert.WithinDuration(t, time.Now(), doc.CreatedAt, time.Minute)

		got, err := s.Document(context.Background(), doc.ID)
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("create rejects missing title or content", func(t *testing.T) {
		s := open(t)
		inputs := []models.DocumentInput{
			{Title: "", Content: "text"},
			{Title: "   ", Content: "text"},
			{Title: "Title", Content: ""},
			{Title: "Title", Content: " \n\t"},
		}
		for _, input := range inputs {
			_, err := s.CreateDocument(context.Background(), input)
			assert.ErrorIs(t, err, models.ErrValidation)
		}

		docs, err := s.Documents(context.Background())
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		s := open(t)
		_, err := s.Document(context.Background(), "does-not-exist")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("documents are newest first", func(t *testing.T) {
		s := open(t)
		first := create(t, s, "First", "one")
		second := create(t, s, "Second", "two")
		third := create(t, s, "Third", "three")

		docs, err := s.Documents(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{third.ID, second.ID, first.ID}, ids(docs))
	})

	t.Run("search matches title or content ignoring case", func(t *testing.T) {
		s := open(t)
		license := create(t, s, "Software License Agreement", "GRANT OF LICENSE: non-exclusive use.")
		employment := create(t, s, "Employment Contract", "5. NON-COMPETE: For 12 months following termination")
		create(t, s, "Privacy Policy", "We collect personal data.")

		docs, err := s.Search(context.Background(), "non-compete clause")
		require.NoError(t, err)
		assert.Equal(t, []string{employment.ID}, ids(docs))

		docs, err = s.Search(context.Background(), "SOFTWARE termination")
		require.NoError(t, err)
		assert.Equal(t, []string{employment.ID, license.ID}, ids(docs))
	})

	t.Run("search ignores short tokens", func(t *testing.T) {
		s := open(t)
		create(t, s, "The Act", "law of the sea")

		for _, q := range []string{"the act", "law", "", "   ", "of a sea"} {
			docs, err := s.Search(context.Background(), q)
			require.NoError(t, err)
			assert.Empty(t, docs, "query %q", q)
			assert.NotNil(t, docs)
		}
	})

	t.Run("search treats wildcard characters literally", func(t *testing.T) {
		s := open(t)
		create(t, s, "Rates", "interest of 5% per annum")
		create(t, s, "Other", "interest of 50 per annum")

		docs, err := s.Search(context.Background(), "5%_per")
		require.NoError(t, err)
		assert.Empty(t, docs)

		docs, err = s.Search(context.Background(), "5% per annum")
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("query logs round trip newest first", func(t *testing.T) {
		s := open(t)
		first, err := s.LogQuery(context.Background(), "first query", "answer one", []string{"A", "B"})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
		second, err := s.LogQuery(context.Background(), "second query", "answer two", nil)
		require.NoError(t, err)

		logs, err := s.QueryHistory(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, second.ID, logs[0].ID)
		assert.Equal(t, []string{}, logs[0].SourceDocuments)
		assert.Equal(t, first.ID, logs[1].ID)
		assert.Equal(t, []string{"A", "B"}, logs[1].SourceDocuments)
		assert.Equal(t, "answer one", logs[1].Response)

		logs, err = s.QueryHistory(context.Background(), 1)
		require.NoError(t, err)
		assert.Len(t, logs, 1)
	})

	t.Run("seed fills an empty store once", func(t *testing.T) {
		s := open(t)
		n, err := store.Seed(context.Background(), s)
		require.NoError(t, err)
		assert.Equal(t, len(store.SampleDocuments), n)

		n, err = store.Seed(context.Background(), s)
		require.NoError(t, err)
		assert.Zero(t, n)

		docs, err := s.Documents(context.Background())
		require.NoError(t, err)
		assert.Len(t, docs, len(store.SampleDocuments))
	})
}

func TestNewWithConfigRejectsBadInput(t *testing.T) {
	_, err := store.NewWithConfig(context.Background(), store.StoreConfig{Driver: "mongodb"})
	assert.Error(t, err)

	_, err = store.NewWithConfig(context.Background(), store.StoreConfig{
		Driver:         store.DriverSQLite,
		ConnString:     filepath.Join(t.TempDir(), "test.db"),
		DocumentsTable: "docs; DROP TABLE x",
	})
	assert.Error(t, err)
}

func create(t *testing.T, s types.DocumentStore, title, content string) models.Document {
	t.Helper()
	doc, err := s.CreateDocument(context.Background(), models.DocumentInput{Title: title, Content: content})
	require.NoError(t, err)
	// Keeps created_at strictly increasing at microsecond precision.
	time.Sleep(2 * time.Millisecond)
	return doc
}

func ids(docs []models.Document) []string {
	out := make([]string, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.ID)
	}
	return out
}
