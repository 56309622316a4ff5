package processor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/pkg/processor"
)

func TestKeywords(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"short words dropped", "is the law ok", nil},
		{"empty", "", nil},
		{"whitespace only", "   \t\n ", nil},
		{"lower-cased", "Non-Compete CLAUSE", []string{"non-compete", "clause"}},
		{"boundary length", "abc abcd", []string{"abcd"}},
		{"duplicates removed", "term TERM terms", []string{"term", "terms"}},
		{"any whitespace splits", "governing\tlaw\nwarranty", []string{"governing", "warranty"}},
		{"runes counted", "ñañá", []string{"ñañá"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, processor.Keywords(tt.query))
		})
	}
}

func TestLines(t *testing.T) {
	content := "\n   First line  \n\n\t\nSecond line\r\n  third\n"
	assert.Equal(t, []string{"First line", "Second line", "third"}, processor.Lines(content))
	assert.Empty(t, processor.Lines("  \n \n"))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, processor.ContainsAny("5. NON-COMPETE: For 12 months", []string{"non-compete"}))
	assert.True(t, processor.ContainsAny("Termination clause", []string{"missing", "clause"}))
	assert.False(t, processor.ContainsAny("Termination clause", []string{"warranty"}))
	assert.False(t, processor.ContainsAny("anything", nil))
}

func TestProcessor_Normalize(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{})

	text := "  Title   line \r\n\n\n\n 1. GRANT   OF LICENSE:  text \n\n2. RESTRICTIONS \xff\n"
	got := p.Normalize(text)

	assert.Equal(t, "Title line\n\n1. GRANT OF LICENSE: text\n\n2. RESTRICTIONS", got)
}

func TestProcessor_NormalizeTruncates(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{MaxContentBytes: 5})

	assert.Equal(t, "abcde", p.Normalize("abcdefgh"))
	// "é" is two bytes; the cut must not split it.
	assert.Equal(t, "abcd", p.Normalize("abcdé"))
}

func TestSanitizeUTF8(t *testing.T) {
	assert.Equal(t, "valid", processor.SanitizeUTF8("valid"))
	assert.Equal(t, "ab", processor.SanitizeUTF8("a\xffb"))
}
