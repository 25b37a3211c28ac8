package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Completer is a single-turn chat call to a language model.
type Completer interface {
	Complete(ctx context.Context, system, user string) (Completion, error)
}

// Completion is the text and token usage of one Completer call.
type Completion struct {
	Content string
	Usage   Usage
	Model   string
}

// Analyzer is the Source that runs an analysis pass and, when enabled,
// a verification pass over the analysis. Token usage of both passes is summed.
type Analyzer struct {
	llm    Completer
	verify bool
	log    *slog.Logger
}

// NewAnalyzer creates an Analyzer on top of a Completer.
func NewAnalyzer(llm Completer, verify bool, log *slog.Logger) *Analyzer {
	return &Analyzer{llm: llm, verify: verify, log: log.With("component", "analyzer")}
}

// Analyze implements Source.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Lyrics) == "" {
		return Response{}, fmt.Errorf("analyze: title and lyrics are required")
	}

	first, err := a.llm.Complete(ctx, AnalysisSystemPrompt, AnalysisUserPrompt(req.Title, req.Lyrics))
	if err != nil {
		return Response{}, fmt.Errorf("analysis pass: %w", err)
	}
	a.log.InfoContext(ctx, "analysis pass done",
		slog.String("title", req.Title),
		slog.Int64("total_tokens", first.Usage.TotalTokens),
	)

	if !a.verify {
		return Response{Content: first.Content, Usage: first.Usage, Model: first.Model}, nil
	}

	second, err := a.llm.Complete(ctx, VerificationSystemPrompt, VerificationUserPrompt(first.Content))
	if err != nil {
		return Response{}, fmt.Errorf("verification pass: %w", err)
	}
	a.log.InfoContext(ctx, "verification pass done",
		slog.String("title", req.Title),
		slog.Int64("total_tokens", second.Usage.TotalTokens),
	)

	return Response{
		Content: second.Content,
		Usage:   first.Usage.Add(second.Usage),
		Model:   second.Model,
	}, nil
}
