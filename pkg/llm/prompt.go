package llm

import (
	"fmt"
	"strings"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/models"
)

const defaultSystemTemplate = "You are a legal document assistant. Answer questions using only the legal documents provided. Be concise, cite the relevant sections, and say so when the documents do not cover the question."

// BuildPrompt embeds every document's title and full content followed by the
// user's question.
func BuildPrompt(query string, docs []models.Document) string {
	var b strings.Builder

	b.WriteString("Based on the following legal documents, answer the question concisely and cite the relevant sections.\n\n")

	if len(docs) == 0 {
		b.WriteString("No documents are available.\n\n")
	}
	for i, doc := range docs {
		fmt.Fprintf(&b, "Document %d: %s\n%s\n\n", i+1, doc.Title, doc.Content)
	}

	fmt.Fprintf(&b, "Question: %s\n\nAnswer:", query)
	return b.String()
}
