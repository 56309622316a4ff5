package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/models"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/pkg/processor"
)

// ExcerptGenerator answers without a model by quoting, for each document, the
// lines around the first line that mentions a query keyword.
type ExcerptGenerator struct{}

func NewExcerptGenerator() *ExcerptGenerator {
	return &ExcerptGenerator{}
}

func (g *ExcerptGenerator) Generate(_ context.Context, query string, docs []models.Document) string {
	if len(docs) == 0 {
		return "No legal documents are available to answer this query. Please add documents and try again."
	}

	keywords := processor.Keywords(query)

	var sections []string
	for _, doc := range docs {
		if excerpt, ok := Excerpt(doc.Content, keywords); ok {
			sections = append(sections, fmt.Sprintf("**%s**:\n%s", doc.Title, excerpt))
		}
	}

	if len(sections) == 0 {
		return fmt.Sprintf(
			"I found the following documents that may be relevant: %s. Please refine your query with more specific terms for a detailed answer.",
			strings.Join(models.Titles(docs), ", "))
	}

	return "Based on the available legal documents, here is what I found:\n\n" + strings.Join(sections, "\n\n")
}

// Excerpt returns the line before through two lines after the first
// non-blank line of content containing any keyword.
func Excerpt(content string, keywords []string) (string, bool) {
	lines := processor.Lines(content)
	for i, line := range lines {
		if !processor.ContainsAny(line, keywords) {
			continue
		}
		start := max(i-1, 0)
		end := min(i+3, len(lines))
		return strings.Join(lines[start:end], "\n"), true
	}
	return "", false
}
