package lyrics

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/kashi-backend/internal/domain"
	"github.com/heartmarshall/kashi-backend/internal/ingestion"
)

// IngestResult is the outcome of an ingestion run.
type IngestResult struct {
	Import     domain.ImportResult
	Usage      ingestion.Usage
	Model      string
	Content    string
	Annotation ingestion.AnnotationStats
}

// Ingest sends the lyrics to the ingestion source, parses its answer,
// fills gaps with the annotator and imports the document. Output that does
// not parse fails with a *domain.IngestionFormatError and nothing is written.
func (s *Service) Ingest(ctx context.Context, input IngestInput) (*IngestResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if s.source == nil {
		return nil, ErrIngestionDisabled
	}

	title := strings.TrimSpace(input.Title)

	start := time.Now()
	resp, err := s.source.Analyze(ctx, ingestion.Request{Title: title, Lyrics: input.Lyrics})
	s.metrics.RecordIngestion(ctx, resp.Usage, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("analyze lyrics: %w", err)
	}

	doc, err := ingestion.Parse([]byte(resp.Content))
	if err != nil {
		s.log.WarnContext(ctx, "ingestion output rejected",
			slog.String("title", title),
			slog.String("model", resp.Model),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	// The caller's title wins so repeated ingestion appends to the same song.
	doc.Title = title

	result := &IngestResult{Usage: resp.Usage, Model: resp.Model, Content: resp.Content}
	if s.annotator != nil {
		result.Annotation = s.annotator.Annotate(&doc)
	}

	imported, err := s.ImportLyrics(ctx, doc)
	if err != nil {
		return nil, err
	}
	result.Import = *imported

	s.log.InfoContext(ctx, "lyrics ingested",
		slog.String("song_id", imported.SongID.String()),
		slog.String("model", resp.Model),
		slog.Int64("total_tokens", resp.Usage.TotalTokens),
		slog.Int("readings_filled", result.Annotation.ReadingsFilled),
		slog.Int("types_inferred", result.Annotation.TypesInferred),
	)

	return result, nil
}

// IngestURL fetches a lyrics page and ingests its readable text.
func (s *Service) IngestURL(ctx context.Context, input IngestURLInput) (*IngestResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if s.source == nil || s.fetcher == nil {
		return nil, ErrIngestionDisabled
	}

	page, err := s.fetcher.Fetch(ctx, strings.TrimSpace(input.URL))
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = page.Title
	}
	if title == "" {
		return nil, domain.NewValidationError("title", "page has no title, provide one")
	}

	return s.Ingest(ctx, IngestInput{Title: title, Lyrics: page.Text})
}
