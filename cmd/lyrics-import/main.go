// Command lyrics-import loads songs into the lexicon.
//
// Modes:
//
//	lyrics-import --dir=./lyrics              import every *.json lyrics document as written
//	lyrics-import --title=T --lyrics=song.txt analyse raw lyrics with the configured LLM
//	lyrics-import --url=https://...           fetch a lyrics page and analyse it
//
// Flags:
//
//	--import-config  path to batch import config YAML (optional; falls back to env)
//	--dry-run        parse and validate documents without writing (dir mode)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/kashi-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kashi-backend/internal/app"
	"github.com/heartmarshall/kashi-backend/internal/app/lyricsimport"
	"github.com/heartmarshall/kashi-backend/internal/config"
	"github.com/heartmarshall/kashi-backend/internal/observe"
	"github.com/heartmarshall/kashi-backend/internal/service/lyrics"
)

func main() {
	importConfigPath := flag.String("import-config", "", "path to batch import config YAML")
	dir := flag.String("dir", "", "directory of *.json lyrics documents")
	dryRun := flag.Bool("dry-run", false, "validate documents without writing")
	title := flag.String("title", "", "song title for --lyrics or --url")
	lyricsPath := flag.String("lyrics", "", "plain-text lyrics file to analyse")
	url := flag.String("url", "", "lyrics page to fetch and analyse")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}
	logger := app.NewLogger(appCfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	lexicon := app.NewLexicon(pool, logger, observe.Noop())

	ingest, err := app.NewIngestion(appCfg, logger)
	if err != nil {
		logger.Error("build ingestion", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if ingest != nil {
		ingest.Attach(lexicon.LyricsService)
	}

	switch {
	case *url != "" || *lyricsPath != "":
		err = analyse(ctx, lexicon.LyricsService, *title, *lyricsPath, *url)
	default:
		err = importDir(ctx, *importConfigPath, *dir, *dryRun, lexicon.LyricsService, logger)
	}
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func importDir(ctx context.Context, cfgPath, dir string, dryRun bool, svc *lyrics.Service, logger *slog.Logger) error {
	cfg, err := lyricsimport.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	if dir != "" {
		cfg.InputDir = dir
	}
	if dryRun {
		cfg.DryRun = true
	}

	res, err := lyricsimport.Run(ctx, cfg, svc, logger)
	if err != nil {
		return err
	}
	if res.Errors > 0 {
		return fmt.Errorf("%d of %d files failed", res.Errors, res.FilesProcessed)
	}
	return nil
}

func analyse(ctx context.Context, svc *lyrics.Service, title, lyricsPath, url string) error {
	if !svc.IngestionEnabled() {
		return fmt.Errorf("no llm provider configured (set LLM_PROVIDER and LLM_API_KEY)")
	}

	var (
		res *lyrics.IngestResult
		err error
	)
	if url != "" {
		res, err = svc.IngestURL(ctx, lyrics.IngestURLInput{URL: url, Title: title})
	} else {
		var text []byte
		if text, err = os.ReadFile(lyricsPath); err != nil {
			return fmt.Errorf("read lyrics: %w", err)
		}
		res, err = svc.Ingest(ctx, lyrics.IngestInput{Title: title, Lyrics: string(text)})
	}
	if err != nil {
		return err
	}

	fmt.Printf("song %s: %d sentences, %d new words, %d reused, %d tokens (%s)\n",
		res.Import.SongID, res.Import.SentencesAdded, res.Import.WordsCreated,
		res.Import.WordsReused, res.Usage.TotalTokens, res.Model)
	return nil
}
