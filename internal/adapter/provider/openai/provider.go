// Package openai is an ingestion.Completer backed by the OpenAI chat completions API.
package openai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	"github.com/heartmarshall/kashi-backend/internal/ingestion"
)

// Config configures the provider.
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	BaseURL     string
}

// Provider implements ingestion.Completer. Every call asks for a JSON object response.
type Provider struct {
	client oai.Client
	cfg    Config
	log    *slog.Logger
}

var _ ingestion.Completer = (*Provider)(nil)

// New constructs a Provider.
func New(cfg Config, logger *slog.Logger) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: api key must not be empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai: model must not be empty")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}

	return &Provider{
		client: oai.NewClient(opts...),
		cfg:    cfg,
		log:    logger.With("adapter", "openai"),
	}, nil
}

// Complete implements ingestion.Completer.
func (p *Provider) Complete(ctx context.Context, system, user string) (ingestion.Completion, error) {
	params := oai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.cfg.Model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(system),
			oai.UserMessage(user),
		},
		Temperature: param.NewOpt(p.cfg.Temperature),
		ResponseFormat: oai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}
	if p.cfg.MaxTokens > 0 {
		params.MaxCompletionTokens = param.NewOpt(int64(p.cfg.MaxTokens))
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return ingestion.Completion{}, fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ingestion.Completion{}, fmt.Errorf("openai: empty choices in response")
	}

	p.log.DebugContext(ctx, "openai completion",
		slog.String("model", resp.Model),
		slog.Duration("duration", time.Since(start)),
		slog.String("finish_reason", string(resp.Choices[0].FinishReason)),
	)

	return ingestion.Completion{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: ingestion.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
