package models

import "time"

// DefaultCategory is assigned to documents created without a category.
const DefaultCategory = "General"

type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentInput carries the caller-supplied fields of a new document.
type DocumentInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
}

type QueryLog struct {
	ID              string    `json:"id"`
	QueryText       string    `json:"query_text"`
	Response        string    `json:"response"`
	SourceDocuments []string  `json:"source_documents"`
	CreatedAt       time.Time `json:"created_at"`
}

// QueryResult is the outcome of processing one query.
type QueryResult struct {
	Answer          string   `json:"answer"`
	SourceDocuments []string `json:"source_documents"`
	Success         bool     `json:"success"`
	Message         string   `json:"message,omitempty"`
}

// Titles returns the titles of docs in order.
func Titles(docs []Document) []string {
	titles := make([]string, 0, len(docs))
	for _, doc := range docs {
		titles = append(titles, doc.Title)
	}
	return titles
}
