// Package webpage fetches a lyrics page and extracts its title and text.
package webpage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/heartmarshall/kashi-backend/internal/ingestion"
)

// DefaultMaxBodySize caps the HTML read from a single page.
const DefaultMaxBodySize = 10 * 1024 * 1024

// ErrTooLarge is returned when a page exceeds the body size limit.
var ErrTooLarge = errors.New("webpage: body exceeds size limit")

var (
	reRT = regexp.MustCompile(`(?si)<rt\b[^>]*>.*?</rt>`)
	reRP = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
)

// Fetcher downloads pages over HTTP.
type Fetcher struct {
	httpClient  *http.Client
	maxBodySize int64
	retryDelay  time.Duration
	log         *slog.Logger
}

// Config holds the fetcher settings. Zero values fall back to defaults.
type Config struct {
	Timeout     time.Duration
	MaxBodySize int64
}

// NewFetcher creates a Fetcher.
func NewFetcher(cfg Config, logger *slog.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}
	return &Fetcher{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		maxBodySize: cfg.MaxBodySize,
		retryDelay:  500 * time.Millisecond,
		log:         logger.With("adapter", "webpage"),
	}
}

// Fetch downloads rawURL, strips ruby annotations and extracts the article.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*ingestion.Page, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("webpage: invalid url %q", rawURL)
	}

	f.log.DebugContext(ctx, "webpage request", slog.String("url", rawURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("webpage: create request: %w", err)
	}

	resp, err := f.doWithRetry(ctx, req)
	if err != nil {
		f.log.ErrorContext(ctx, "webpage request failed", slog.String("url", rawURL), slog.String("error", err.Error()))
		return nil, fmt.Errorf("webpage: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("webpage: unexpected status %d", resp.StatusCode)
	}
	if resp.ContentLength > f.maxBodySize {
		return nil, ErrTooLarge
	}

	// One byte past the limit tells a truncated body from one that fits exactly.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("webpage: read body: %w", err)
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, ErrTooLarge
	}

	article, err := readability.FromReader(bytes.NewReader(SanitizeRuby(body)), parsed)
	if err != nil {
		return nil, fmt.Errorf("webpage: extract article: %w", err)
	}

	page := &ingestion.Page{
		URL:   rawURL,
		Title: strings.TrimSpace(article.Title),
		Text:  strings.TrimSpace(article.TextContent),
	}
	if page.Text == "" {
		return nil, fmt.Errorf("webpage: no readable text at %s", rawURL)
	}

	f.log.DebugContext(ctx, "webpage response",
		slog.String("url", rawURL),
		slog.String("title", page.Title),
		slog.Int("chars", len(page.Text)),
	)
	return page, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (f *Fetcher) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := f.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	f.log.WarnContext(ctx, "webpage retry", slog.String("url", req.URL.String()), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(f.retryDelay):
	}

	return f.httpClient.Do(req)
}

// SanitizeRuby removes ruby text and ruby parentheses so furigana does not
// end up duplicated next to its base text.
func SanitizeRuby(content []byte) []byte {
	cleaned := reRT.ReplaceAll(content, nil)
	return reRP.ReplaceAll(cleaned, nil)
}
