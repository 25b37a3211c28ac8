// Package anthropic is an ingestion.Completer backed by the Anthropic messages API.
package anthropic

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

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

// Provider implements ingestion.Completer.
type Provider struct {
	client anthropic.Client
	cfg    Config
	log    *slog.Logger
}

var _ ingestion.Completer = (*Provider)(nil)

// New constructs a Provider.
func New(cfg Config, logger *slog.Logger) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: api key must not be empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("anthropic: model must not be empty")
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 8192
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}

	return &Provider{
		client: anthropic.NewClient(opts...),
		cfg:    cfg,
		log:    logger.With("adapter", "anthropic"),
	}, nil
}

// Complete implements ingestion.Completer. Text blocks of the reply are concatenated.
func (p *Provider) Complete(ctx context.Context, system, user string) (ingestion.Completion, error) {
	start := time.Now()
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(p.cfg.Model),
		MaxTokens:   int64(p.cfg.MaxTokens),
		System:      []anthropic.TextBlockParam{{Text: system}},
		Temperature: anthropic.Float(p.cfg.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return ingestion.Completion{}, fmt.Errorf("anthropic: messages: %w", err)
	}
	if len(msg.Content) == 0 {
		return ingestion.Completion{}, fmt.Errorf("anthropic: empty response")
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	p.log.DebugContext(ctx, "anthropic completion",
		slog.String("model", string(msg.Model)),
		slog.Duration("duration", time.Since(start)),
		slog.String("stop_reason", string(msg.StopReason)),
	)

	in, out := msg.Usage.InputTokens, msg.Usage.OutputTokens
	return ingestion.Completion{
		Content: text.String(),
		Model:   string(msg.Model),
		Usage:   ingestion.Usage{PromptTokens: in, CompletionTokens: out, TotalTokens: in + out},
	}, nil
}
