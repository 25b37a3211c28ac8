package app

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/kashi-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kashi-backend/internal/adapter/postgres/sentence"
	"github.com/heartmarshall/kashi-backend/internal/adapter/postgres/song"
	"github.com/heartmarshall/kashi-backend/internal/adapter/postgres/unknownword"
	"github.com/heartmarshall/kashi-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/kashi-backend/internal/adapter/postgres/word"
	"github.com/heartmarshall/kashi-backend/internal/dataloader"
	"github.com/heartmarshall/kashi-backend/internal/observe"
	"github.com/heartmarshall/kashi-backend/internal/service/flashcard"
	"github.com/heartmarshall/kashi-backend/internal/service/ledger"
	"github.com/heartmarshall/kashi-backend/internal/service/lyrics"
	songsvc "github.com/heartmarshall/kashi-backend/internal/service/song"
	wordsvc "github.com/heartmarshall/kashi-backend/internal/service/word"
)

// Lexicon is the set of repositories and services over one database pool.
// Every entry point builds it the same way.
type Lexicon struct {
	Pool *pgxpool.Pool

	Songs       *song.Repo
	Sentences   *sentence.Repo
	Words       *word.Repo
	UnknownWord *unknownword.Repo
	Users       *user.Repo
	Loaders     *dataloader.Repos

	SongService      *songsvc.Service
	WordService      *wordsvc.Service
	LyricsService    *lyrics.Service
	LedgerService    *ledger.Service
	FlashcardService *flashcard.Service
}

// NewLexicon wires repositories and services. Ingestion stays disabled until
// an Ingestion is attached to LyricsService.
func NewLexicon(pool *pgxpool.Pool, logger *slog.Logger, metrics *observe.Metrics) *Lexicon {
	txm := postgres.NewTxManager(pool)

	l := &Lexicon{
		Pool:        pool,
		Songs:       song.New(pool),
		Sentences:   sentence.New(pool),
		Words:       word.New(pool),
		UnknownWord: unknownword.New(pool),
		Users:       user.New(pool),
	}
	l.Loaders = &dataloader.Repos{Word: l.Words}

	l.SongService = songsvc.NewService(logger, l.Songs, l.Sentences, l.Words, txm, metrics)
	l.WordService = wordsvc.NewService(logger, l.Words, l.Songs, txm)
	l.LyricsService = lyrics.NewService(logger, l.Songs, l.Sentences, l.Words, txm, l.Loaders, metrics)
	l.LedgerService = ledger.NewService(logger, l.UnknownWord, l.Words)
	l.FlashcardService = flashcard.NewService(logger, l.Songs, l.Words, l.LedgerService)

	return l
}
