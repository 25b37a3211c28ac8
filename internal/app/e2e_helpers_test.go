//go:build e2e

package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kashi-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/kashi-backend/internal/app"
	"github.com/heartmarshall/kashi-backend/internal/auth"
	"github.com/heartmarshall/kashi-backend/internal/config"
	"github.com/heartmarshall/kashi-backend/internal/domain"
	"github.com/heartmarshall/kashi-backend/internal/observe"
	"github.com/heartmarshall/kashi-backend/internal/service/user"
	"github.com/heartmarshall/kashi-backend/internal/transport/middleware"
)

const (
	testSecret   = "test-secret-at-least-32-chars-long!!"
	testIssuer   = "test-issuer"
	testAudience = "authenticated"
)

type testServer struct {
	URL      string
	Client   *http.Client
	Pool     *pgxpool.Pool
	verifier *auth.Verifier
}

type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// envelope is the response body every JSON route writes.
type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Fields  []json.RawMessage `json:"fields"`
}

// setupTestServer wires the full router against a migrated PostgreSQL
// container. Ingestion stays disabled.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	cfg := &config.Config{
		Server: config.ServerConfig{MaxBodyBytes: 1 << 20},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         86400,
		},
		RateLimit: config.RateLimitConfig{IngestPerMinute: 6, CleanupInterval: time.Minute},
	}

	lexicon := app.NewLexicon(pool, logger, observe.Noop())
	verifier := auth.NewVerifier(testSecret, testIssuer, testAudience, time.Second)
	users := user.NewService(logger, lexicon.Users, verifier)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	t.Cleanup(limiter.Stop)

	handler := app.NewRouter(app.RouterDeps{
		Config:  cfg,
		Logger:  logger,
		Lexicon: lexicon,
		Users:   users,
		Metrics: observe.Noop(),
		Limiter: limiter,
		Version: "test-version",
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:      srv.URL,
		Client:   srv.Client(),
		Pool:     pool,
		verifier: verifier,
	}
}

// token issues an access token for a seeded user.
func (ts *testServer) token(t *testing.T, u domain.User) string {
	t.Helper()
	tok, err := ts.verifier.Issue(auth.Identity{UserID: u.ID, Email: u.Email}, 15*time.Minute)
	require.NoError(t, err)
	return tok
}

// newUser seeds a plain user and returns it with a token.
func (ts *testServer) newUser(t *testing.T) (domain.User, string) {
	t.Helper()
	u := testhelper.SeedUser(t, ts.Pool)
	return u, ts.token(t, u)
}

// newAdmin seeds a user with the admin flag set.
func (ts *testServer) newAdmin(t *testing.T) (domain.User, string) {
	t.Helper()
	u := testhelper.SeedUser(t, ts.Pool)
	_, err := ts.Pool.Exec(context.Background(), `UPDATE users SET is_admin = true WHERE id = $1`, u.ID)
	require.NoError(t, err)
	u.IsAdmin = true
	return u, ts.token(t, u)
}

// do sends a request with an optional JSON body and bearer token.
func (ts *testServer) do(t *testing.T, method, path string, body any, token string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	}
	return resp.StatusCode, env
}

// decode unmarshals the envelope data into v.
func decode(t *testing.T, env envelope, v any) {
	t.Helper()
	require.True(t, env.Success, "expected success envelope, got error %q", env.Error)
	require.NoError(t, json.Unmarshal(env.Data, v))
}

// sampleLyrics is a two-sentence document in the expanded shape. 猫 appears twice.
func sampleLyrics(title string) map[string]any {
	word := func(original, hiragana, pron, meaning, typ string) map[string]any {
		w := map[string]any{
			"original":      original,
			"pronunciation": pron,
			"meaning":       meaning,
			"word_type":     typ,
		}
		if hiragana != "" {
			w["hiragana"] = hiragana
		}
		return w
	}

	return map[string]any{
		"title": map[string]any{"title": title, "title_korean": "고양이 노래"},
		"lyrics": []any{
			map[string]any{
				"sentence": map[string]any{"original": "猫が好き", "pronunciation": "neko ga suki", "meaning": "I like cats"},
				"words": []any{
					word("猫", "ねこ", "neko", "cat", "noun"),
					word("が", "", "ga", "subject marker", "particle"),
					word("好き", "すき", "suki", "like", "adjective"),
				},
			},
			map[string]any{
				"sentence": map[string]any{"original": "猫と歩く", "pronunciation": "neko to aruku", "meaning": "walk with the cat"},
				"words": []any{
					word("猫", "ねこ", "neko", "cat", "noun"),
					word("歩く", "あるく", "aruku", "to walk", "verb"),
				},
			},
		},
	}
}
