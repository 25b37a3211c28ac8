// Package observe records application metrics through the OpenTelemetry
// Metrics API and exposes them for Prometheus scraping.
//
// Tests should build a [Metrics] with [NewMetrics] over their own
// [metric.MeterProvider]; [Noop] returns an instance that records nothing.
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/heartmarshall/kashi-backend/internal/domain"
	"github.com/heartmarshall/kashi-backend/internal/ingestion"
)

const meterName = "github.com/heartmarshall/kashi-backend"

// Metrics holds the metric instruments of the application.
type Metrics struct {
	// SongsImported counts import calls. Attribute: created (bool).
	SongsImported metric.Int64Counter

	// SentencesImported counts sentences appended by imports.
	SentencesImported metric.Int64Counter

	// WordsResolved counts resolved word occurrences. Attribute: result (created|reused).
	WordsResolved metric.Int64Counter

	// WordsCollected counts words garbage-collected after a deletion. Attribute: trigger (song|sentence).
	WordsCollected metric.Int64Counter

	// IngestionRequests counts ingestion source calls. Attribute: status (ok|error).
	IngestionRequests metric.Int64Counter

	// IngestionTokens counts tokens spent on ingestion. Attribute: kind (prompt|completion).
	IngestionTokens metric.Int64Counter

	// IngestionDuration tracks the latency of an ingestion source call.
	IngestionDuration metric.Float64Histogram

	// HTTPRequestDuration tracks HTTP latency. Attributes: method, route, status.
	HTTPRequestDuration metric.Float64Histogram
}

var ingestionBuckets = []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160}

// NewMetrics creates every instrument from mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.SongsImported, err = m.Int64Counter("kashi.import.songs",
		metric.WithDescription("Import calls by whether the song was created."),
	); err != nil {
		return nil, err
	}
	if met.SentencesImported, err = m.Int64Counter("kashi.import.sentences",
		metric.WithDescription("Sentences appended by imports."),
	); err != nil {
		return nil, err
	}
	if met.WordsResolved, err = m.Int64Counter("kashi.import.words",
		metric.WithDescription("Resolved word occurrences by result."),
	); err != nil {
		return nil, err
	}
	if met.WordsCollected, err = m.Int64Counter("kashi.gc.words_collected",
		metric.WithDescription("Words deleted because nothing referenced them any more."),
	); err != nil {
		return nil, err
	}
	if met.IngestionRequests, err = m.Int64Counter("kashi.ingestion.requests",
		metric.WithDescription("Ingestion source calls by status."),
	); err != nil {
		return nil, err
	}
	if met.IngestionTokens, err = m.Int64Counter("kashi.ingestion.tokens",
		metric.WithDescription("Tokens spent on ingestion by kind."),
	); err != nil {
		return nil, err
	}
	if met.IngestionDuration, err = m.Float64Histogram("kashi.ingestion.duration",
		metric.WithDescription("Latency of an ingestion source call."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(ingestionBuckets...),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("kashi.http.request.duration",
		metric.WithDescription("HTTP request latency by method, route and status."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// Noop returns Metrics that discard every measurement.
func Noop() *Metrics {
	m, err := NewMetrics(noop.NewMeterProvider())
	if err != nil {
		panic("observe: noop metrics: " + err.Error())
	}
	return m
}

// RecordImport records the outcome of one lyrics import.
func (m *Metrics) RecordImport(ctx context.Context, r domain.ImportResult) {
	m.SongsImported.Add(ctx, 1, metric.WithAttributes(attribute.Bool("created", r.SongCreated)))
	m.SentencesImported.Add(ctx, int64(r.SentencesAdded))
	m.WordsResolved.Add(ctx, int64(r.WordsCreated), metric.WithAttributes(attribute.String("result", "created")))
	m.WordsResolved.Add(ctx, int64(r.WordsReused), metric.WithAttributes(attribute.String("result", "reused")))
}

// RecordCollected records words removed by garbage collection.
func (m *Metrics) RecordCollected(ctx context.Context, trigger string, n int) {
	if n == 0 {
		return
	}
	m.WordsCollected.Add(ctx, int64(n), metric.WithAttributes(attribute.String("trigger", trigger)))
}

// RecordIngestion records one call to the ingestion source.
func (m *Metrics) RecordIngestion(ctx context.Context, usage ingestion.Usage, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.IngestionRequests.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	m.IngestionDuration.Record(ctx, elapsed.Seconds())
	if usage.PromptTokens > 0 {
		m.IngestionTokens.Add(ctx, usage.PromptTokens, metric.WithAttributes(attribute.String("kind", "prompt")))
	}
	if usage.CompletionTokens > 0 {
		m.IngestionTokens.Add(ctx, usage.CompletionTokens, metric.WithAttributes(attribute.String("kind", "completion")))
	}
}
