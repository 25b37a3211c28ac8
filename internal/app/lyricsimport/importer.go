// Package lyricsimport imports a directory of lyrics documents, one song per file.
package lyricsimport

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/heartmarshall/kashi-backend/internal/domain"
	"github.com/heartmarshall/kashi-backend/internal/ingestion"
)

// Importer writes one parsed document.
type Importer interface {
	ImportLyrics(ctx context.Context, doc domain.LyricsDocument) (*domain.ImportResult, error)
}

// Result holds import statistics.
type Result struct {
	FilesProcessed int
	SongsCreated   int
	SentencesAdded int
	WordsCreated   int
	WordsReused    int
	Errors         int
}

// Run imports every *.json file of cfg.InputDir in name order. Each file is
// its own transaction; a bad file is logged and skipped unless FailFast.
// Documents are stored exactly as parsed, the same as a document posted to
// the import route, so a word gets the same key on either path.
func Run(ctx context.Context, cfg *Config, importer Importer, log *slog.Logger) (Result, error) {
	files, err := filepath.Glob(filepath.Join(cfg.InputDir, "*.json"))
	if err != nil {
		return Result{}, fmt.Errorf("glob input dir: %w", err)
	}
	sort.Strings(files)

	var result Result
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.FilesProcessed++

		if err := importFile(ctx, cfg, path, importer, &result, log); err != nil {
			log.Error("import file", slog.String("path", path), slog.String("error", err.Error()))
			result.Errors++
			if cfg.FailFast {
				return result, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	log.Info("lyrics-import complete",
		slog.Int("files", result.FilesProcessed),
		slog.Int("songs_created", result.SongsCreated),
		slog.Int("sentences", result.SentencesAdded),
		slog.Int("words_created", result.WordsCreated),
		slog.Int("words_reused", result.WordsReused),
		slog.Int("errors", result.Errors),
		slog.Bool("dry_run", cfg.DryRun),
	)
	return result, nil
}

func importFile(ctx context.Context, cfg *Config, path string, importer Importer, result *Result, log *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	doc, err := ingestion.Parse(data)
	if err != nil {
		return err
	}

	if cfg.DryRun {
		log.Info("valid document",
			slog.String("path", path),
			slog.String("title", doc.Title),
			slog.Int("sentences", len(doc.Sentences)),
			slog.Int("words", doc.WordCount()),
		)
		return nil
	}

	res, err := importer.ImportLyrics(ctx, doc)
	if err != nil {
		return err
	}

	if res.SongCreated {
		result.SongsCreated++
	}
	result.SentencesAdded += res.SentencesAdded
	result.WordsCreated += res.WordsCreated
	result.WordsReused += res.WordsReused
	return nil
}
