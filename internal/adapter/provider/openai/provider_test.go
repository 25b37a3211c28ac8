package openai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{Model: "gpt-4o-mini"}, newTestLogger()); err == nil {
		t.Error("expected error for missing api key")
	}
	if _, err := New(Config{APIKey: "k"}, newTestLogger()); err == nil {
		t.Error("expected error for missing model")
	}
}

func TestProvider_Complete(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "{\"title\":{}}"}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 8, "total_tokens": 20}
		}`))
	}))
	defer srv.Close()

	p, err := New(Config{APIKey: "k", Model: "gpt-4o-mini", Temperature: 0.1, MaxTokens: 10000, BaseURL: srv.URL}, newTestLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c, err := p.Complete(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if c.Content != `{"title":{}}` {
		t.Errorf("Content = %q", c.Content)
	}
	if c.Usage.PromptTokens != 12 || c.Usage.CompletionTokens != 8 || c.Usage.TotalTokens != 20 {
		t.Errorf("Usage = %+v", c.Usage)
	}

	if got["model"] != "gpt-4o-mini" {
		t.Errorf("model = %v", got["model"])
	}
	if got["temperature"] != 0.1 {
		t.Errorf("temperature = %v", got["temperature"])
	}
	rf, _ := got["response_format"].(map[string]any)
	if rf["type"] != "json_object" {
		t.Errorf("response_format = %v", got["response_format"])
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Errorf("expected system + user messages, got %d", len(msgs))
	}
}

func TestProvider_Complete_EmptyChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[],"usage":{}}`))
	}))
	defer srv.Close()

	p, err := New(Config{APIKey: "k", Model: "m", BaseURL: srv.URL}, newTestLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := p.Complete(context.Background(), "s", "u"); err == nil {
		t.Error("expected error for empty choices")
	}
}
