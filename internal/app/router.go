package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/kashi-backend/internal/config"
	"github.com/heartmarshall/kashi-backend/internal/dataloader"
	"github.com/heartmarshall/kashi-backend/internal/observe"
	"github.com/heartmarshall/kashi-backend/internal/service/user"
	"github.com/heartmarshall/kashi-backend/internal/transport/middleware"
	"github.com/heartmarshall/kashi-backend/internal/transport/rest"
)

// RouterDeps is everything NewRouter wires. Ingestion and Limiter may be nil
// when ingestion is disabled.
type RouterDeps struct {
	Config    *config.Config
	Logger    *slog.Logger
	Lexicon   *Lexicon
	Users     *user.Service
	Ingestion *Ingestion
	Metrics   *observe.Metrics
	Limiter   *middleware.RateLimiter
	Version   string
}

// NewRouter registers every route and wraps the mux in the middleware chain:
// recovery, request id, CORS, auth, access log, dataloaders, route metrics.
func NewRouter(d RouterDeps) http.Handler {
	lex := d.Lexicon
	mux := http.NewServeMux()

	provider := ""
	if d.Ingestion != nil {
		provider = d.Ingestion.Provider
	}
	health := rest.NewHealthHandler(lex.Pool, d.Version, provider)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	songs := rest.NewSongHandler(lex.SongService, lex.LyricsService, d.Logger)
	mux.HandleFunc("GET /songs", songs.List)
	mux.HandleFunc("POST /songs", songs.Create)
	mux.HandleFunc("GET /songs/{id}", songs.Get)
	mux.HandleFunc("PUT /songs/{id}", songs.Update)
	mux.HandleFunc("DELETE /songs/{id}", songs.Delete)
	mux.HandleFunc("GET /songs/{id}/lyrics", songs.Lyrics)
	mux.HandleFunc("GET /songs/{id}/sentences", songs.Sentences)
	mux.HandleFunc("POST /songs/{id}/sentences", songs.AddSentence)
	mux.HandleFunc("POST /sentences/{id}/words", songs.LinkWord)
	mux.HandleFunc("DELETE /sentences/{id}", songs.DeleteSentence)

	words := rest.NewWordHandler(lex.WordService, d.Logger)
	mux.HandleFunc("GET /words", words.List)
	mux.HandleFunc("POST /words", words.Create)
	mux.HandleFunc("GET /words/export", words.Export)
	mux.HandleFunc("GET /words/{id}", words.Get)
	mux.HandleFunc("PUT /words/{id}", words.Update)
	mux.HandleFunc("DELETE /words/{id}", words.Delete)
	mux.HandleFunc("GET /songs/{id}/words", words.SongWords)

	cards := rest.NewCardHandler(lex.FlashcardService, d.Logger)
	mux.HandleFunc("GET /songs/{id}/cards", cards.Page)

	ledger := rest.NewLedgerHandler(lex.LedgerService, d.Logger)
	mux.HandleFunc("GET /me/unknown-words", ledger.List)
	mux.HandleFunc("GET /me/unknown-words/{wordId}", ledger.Get)
	mux.HandleFunc("PUT /me/unknown-words/{wordId}", ledger.Mark)
	mux.HandleFunc("DELETE /me/unknown-words/{wordId}", ledger.Unmark)

	profile := rest.NewProfileHandler(d.Users, d.Logger)
	mux.HandleFunc("GET /me", profile.Me)

	imports := rest.NewImportHandler(lex.LyricsService, d.Logger)
	mux.HandleFunc("POST /songs/import", imports.Import)
	if d.Ingestion != nil {
		limit := d.Limiter.Limit(d.Config.RateLimit.IngestPerMinute)
		mux.Handle("POST /songs/ingest", limit.ThenFunc(imports.Ingest))
		mux.Handle("POST /songs/ingest-url", limit.ThenFunc(imports.IngestURL))
	}

	chain := middleware.Chain(
		middleware.Recovery(d.Logger),
		middleware.RequestID(),
		middleware.CORS(d.Config.CORS),
		middleware.Auth(d.Users),
		middleware.Logger(d.Logger),
		middleware.Middleware(dataloader.Middleware(lex.Loaders)),
		middleware.Middleware(observe.Middleware(d.Metrics)),
	)
	return http.MaxBytesHandler(chain(mux), d.Config.Server.MaxBodyBytes)
}
