// Package ingestion turns raw lyrics into a domain.LyricsDocument through an
// external analysis source (an LLM) and parses its output defensively.
package ingestion

import "context"

// Request is one lyrics text to analyse.
type Request struct {
	Title  string
	Lyrics string
}

// Usage counts the tokens a source spent, summed over every pass.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// Add returns the sum of two usages.
func (u Usage) Add(o Usage) Usage {
	return Usage{
		PromptTokens:     u.PromptTokens + o.PromptTokens,
		CompletionTokens: u.CompletionTokens + o.CompletionTokens,
		TotalTokens:      u.TotalTokens + o.TotalTokens,
	}
}

// Response is the raw output of a source. Content is expected, but not
// guaranteed, to be a lyrics document in JSON.
type Response struct {
	Content string
	Usage   Usage
	Model   string
}

// Source analyses lyrics into a JSON lyrics document.
type Source interface {
	Analyze(ctx context.Context, req Request) (Response, error)
}

// AnnotationStats reports what a dictionary pass filled into a document.
type AnnotationStats struct {
	ReadingsFilled int
	TypesInferred  int
}

// Page is the readable part of a fetched lyrics page.
type Page struct {
	URL   string
	Title string
	Text  string
}
