// Command cleanup physically removes words that no sentence uses and that
// are older than the given age. Deleting songs and sentences already
// collects their words; this sweeps words created through the admin surface
// and never linked. It is intended to be invoked by an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/kashi-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kashi-backend/internal/app"
	"github.com/heartmarshall/kashi-backend/internal/config"
	"github.com/heartmarshall/kashi-backend/internal/observe"
)

func main() {
	olderThan := flag.Duration("older-than", 30*24*time.Hour, "only delete orphan words created before now minus this age")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	lexicon := app.NewLexicon(pool, logger, observe.Noop())

	if _, err := lexicon.WordService.PurgeOrphans(ctx, *olderThan); err != nil {
		logger.Error("orphan sweep failed",
			slog.String("error", err.Error()),
			slog.Duration("older_than", *olderThan),
		)
		os.Exit(1)
	}
}
