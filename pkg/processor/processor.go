package processor

import (
	"strings"
	"unicode/utf8"
)

// MinKeywordLength is the length a query token must exceed to be searched.
const MinKeywordLength = 3

type ProcessorConfig struct {
	MaxBlankLines   int
	MaxContentBytes int
}

type Processor struct {
	config ProcessorConfig
}

func NewWithConfig(config ProcessorConfig) Processor {
	if config.MaxBlankLines == 0 {
		config.MaxBlankLines = 1
	}

	return Processor{
		config: config,
	}
}

// Normalize cleans free text pulled from external sources. Line structure is
// kept because answer excerpts are cut on line boundaries.
func (p *Processor) Normalize(text string) string {
	text = SanitizeUTF8(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var out []string
	blank := 0
	for _, line := range strings.Split(text, "\n") {
		// Replace multiple spaces with single space
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank++
			if blank > p.config.MaxBlankLines {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}

	text = strings.TrimSpace(strings.Join(out, "\n"))
	if p.config.MaxContentBytes > 0 && len(text) > p.config.MaxContentBytes {
		text = truncateUTF8(text, p.config.MaxContentBytes)
	}
	return text
}

// Keywords lower-cases query, splits it on whitespace and keeps the distinct
// tokens longer than MinKeywordLength runes, in order of first appearance.
func Keywords(query string) []string {
	var keywords []string
	seen := make(map[string]bool)

	for _, word := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(word) <= MinKeywordLength || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}

	return keywords
}

// Lines returns the trimmed, non-blank lines of content.
func Lines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ContainsAny reports whether text contains any of the lower-case keywords,
// ignoring case.
func ContainsAny(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func SanitizeUTF8(s string) string {
	if !utf8.ValidString(s) {
		v := make([]rune, 0, len(s))
		for i, r := range s {
			if r == utf8.RuneError {
				_, size := utf8.DecodeRuneInString(s[i:])
				if size == 1 {
					continue
				}
			}
			v = append(v, r)
		}
		return string(v)
	}
	return s
}

func truncateUTF8(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return strings.TrimSpace(s[:n])
}
