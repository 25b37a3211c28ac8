package app

import (
	"fmt"
	"log/slog"

	"github.com/heartmarshall/kashi-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/kashi-backend/internal/adapter/provider/kagome"
	"github.com/heartmarshall/kashi-backend/internal/adapter/provider/openai"
	"github.com/heartmarshall/kashi-backend/internal/adapter/provider/webpage"
	"github.com/heartmarshall/kashi-backend/internal/config"
	"github.com/heartmarshall/kashi-backend/internal/ingestion"
	"github.com/heartmarshall/kashi-backend/internal/service/lyrics"
)

// Ingestion is the configured LLM pipeline: source, annotator and page fetcher.
type Ingestion struct {
	Provider  string
	source    ingestion.Source
	annotator *kagome.Annotator
	fetcher   *webpage.Fetcher
}

// NewIngestion builds the pipeline from config. It returns nil, nil when no
// LLM provider is configured.
func NewIngestion(cfg *config.Config, logger *slog.Logger) (*Ingestion, error) {
	if !cfg.LLM.Enabled() {
		return nil, nil
	}

	completer, err := newCompleter(cfg.LLM, logger)
	if err != nil {
		return nil, err
	}

	in := &Ingestion{
		Provider: cfg.LLM.Provider,
		source:   ingestion.NewAnalyzer(completer, !cfg.LLM.SkipVerify, logger),
		fetcher: webpage.NewFetcher(webpage.Config{
			Timeout:     cfg.Import.FetchTimeout,
			MaxBodySize: cfg.Import.MaxPageBytes,
		}, logger),
	}

	if !cfg.Import.SkipAnnotate {
		if in.annotator, err = newAnnotator(); err != nil {
			return nil, err
		}
	}

	logger.Info("ingestion enabled",
		slog.String("provider", cfg.LLM.Provider),
		slog.String("model", cfg.LLM.ModelOrDefault()),
		slog.Bool("verify", !cfg.LLM.SkipVerify),
		slog.Bool("annotate", in.annotator != nil),
	)
	return in, nil
}

// Attach enables ingestion on the lyrics service.
func (in *Ingestion) Attach(svc *lyrics.Service) {
	if in.annotator == nil {
		// A typed nil would defeat the service's nil check.
		svc.SetIngestion(in.source, nil, in.fetcher)
		return
	}
	svc.SetIngestion(in.source, in.annotator, in.fetcher)
}

// newAnnotator loads the morphological dictionary used to fill readings and word types.
func newAnnotator() (*kagome.Annotator, error) {
	a, err := kagome.New()
	if err != nil {
		return nil, fmt.Errorf("kagome annotator: %w", err)
	}
	return a, nil
}

func newCompleter(cfg config.LLMConfig, logger *slog.Logger) (ingestion.Completer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.New(openai.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.ModelOrDefault(),
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
			BaseURL:     cfg.BaseURL,
		}, logger)
	case config.ProviderAnthropic:
		return anthropic.New(anthropic.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.ModelOrDefault(),
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
			BaseURL:     cfg.BaseURL,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
