package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/models"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/pkg/processor"
)

// blockElements start a new line of extracted text. Everything else is inline.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "br": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true, "figure": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true, "hr": true,
	"li": true, "main": true, "ol": true, "p": true, "pre": true, "section": true,
	"table": true, "td": true, "th": true, "tr": true, "ul": true,
}

type ScraperConfig struct {
	RateLimit       float64 // requests per second
	Timeout         time.Duration
	IgnorePatterns  []string
	MaxContentBytes int
	Category        string
	UserAgent       string
}

// Scraper turns a single web page into a document.
type Scraper struct {
	config    ScraperConfig
	client    *http.Client
	limiter   *rate.Limiter
	processor processor.Processor
	logger    *slog.Logger
}

func NewWithConfig(config ScraperConfig) *Scraper {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 2 // 2 requests per second by default
	}
	if config.MaxContentBytes == 0 {
		config.MaxContentBytes = 1 << 20
	}
	if config.Category == "" {
		config.Category = "Imported"
	}
	if config.UserAgent == "" {
		config.UserAgent = "legaldoc-importer/1.0"
	}

	return &Scraper{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
		processor: processor.NewWithConfig(processor.ProcessorConfig{
			MaxContentBytes: config.MaxContentBytes,
		}),
		logger: slog.Default().With("component", "scraper"),
	}
}

func (s *Scraper) validateURL(urlStr string) (*url.URL, error) {
	parsedURL, err := url.Parse(strings.TrimSpace(urlStr))
	if err != nil {
		return nil, models.ValidationError{Field: "url", Message: "invalid URL"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, models.ValidationError{Field: "url", Message: "only http and https URLs can be imported"}
	}
	if parsedURL.Host == "" {
		return nil, models.ValidationError{Field: "url", Message: "URL has no host"}
	}

	for _, pattern := range s.config.IgnorePatterns {
		if strings.Contains(urlStr, pattern) {
			return nil, models.ValidationError{Field: "url", Message: fmt.Sprintf("URL matches ignored pattern %q", pattern)}
		}
	}

	return parsedURL, nil
}

// Fetch downloads urlStr and extracts its title and readable text.
func (s *Scraper) Fetch(ctx context.Context, urlStr string) (models.DocumentInput, error) {
	parsedURL, err := s.validateURL(urlStr)
	if err != nil {
		return models.DocumentInput{}, err
	}

	// Apply rate limiting
	if err := s.limiter.Wait(ctx); err != nil {
		return models.DocumentInput{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedURL.String(), nil)
	if err != nil {
		return models.DocumentInput{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.config.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return models.DocumentInput{}, fmt.Errorf("failed to fetch %s: %w", parsedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.DocumentInput{}, fmt.Errorf("received status code %d for URL: %s", resp.StatusCode, parsedURL)
	}

	// Read a little past the limit; the processor truncates on a rune boundary.
	body := io.LimitReader(resp.Body, int64(s.config.MaxContentBytes)*4)
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return models.DocumentInput{}, fmt.Errorf("failed to parse %s: %w", parsedURL, err)
	}

	input := models.DocumentInput{
		Title:    s.extractTitle(doc, parsedURL),
		Content:  s.extractMainContent(doc),
		Category: s.config.Category,
	}
	if input.Content == "" {
		return models.DocumentInput{}, models.ValidationError{Field: "content", Message: "page has no readable text"}
	}

	s.logger.Info("page imported", "url", parsedURL.String(), "title", input.Title, "bytes", len(input.Content))
	return input, nil
}

func (s *Scraper) extractTitle(doc *goquery.Document, pageURL *url.URL) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		title = pageURL.String()
	}
	return strings.Join(strings.Fields(title), " ")
}

func (s *Scraper) extractMainContent(doc *goquery.Document) string {
	doc.Find("script, style, noscript, nav, header, footer, form").Remove()

	// Try to find main content area
	selectors := []string{
		"article",
		"main",
		".content",
		"#content",
		"body",
	}

	var root *goquery.Selection
	for _, selector := range selectors {
		if selected := doc.Find(selector).First(); selected.Length() > 0 {
			root = selected
			break
		}
	}
	if root == nil {
		root = doc.Selection
	}

	var w lineWriter
	w.collect(root)
	w.flush()

	return s.processor.Normalize(strings.Join(w.lines, "\n"))
}

// lineWriter turns a DOM subtree into text lines, one per run of text
// between block element boundaries, in document order.
type lineWriter struct {
	lines   []string
	current strings.Builder
}

func (w *lineWriter) collect(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		name := goquery.NodeName(child)
		switch {
		case name == "#text":
			w.current.WriteString(child.Text())
		case strings.HasPrefix(name, "#"):
			// comments and doctypes
		case blockElements[name]:
			w.flush()
			w.collect(child)
			w.flush()
		default:
			w.collect(child)
		}
	})
}

func (w *lineWriter) flush() {
	if line := strings.Join(strings.Fields(w.current.String()), " "); line != "" {
		w.lines = append(w.lines, line)
	}
	w.current.Reset()
}
