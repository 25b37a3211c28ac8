// Command migrate applies the embedded goose migrations.
//
// Usage:
//
//	migrate [up|down|status]
//
// The database comes from the application config (DATABASE_DSN).
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/heartmarshall/kashi-backend/internal/app"
	"github.com/heartmarshall/kashi-backend/internal/config"
	"github.com/heartmarshall/kashi-backend/migrations"
)

func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "overall timeout")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, cfg.Database.DSN, command, logger); err != nil {
		logger.Error("migrate failed", slog.String("command", command), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, dsn, command string, logger *slog.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}

	switch command {
	case "up":
		if err := migrations.Up(ctx, db); err != nil {
			return err
		}
		logger.Info("migrations applied")
	case "down":
		if err := migrations.Down(ctx, db); err != nil {
			return err
		}
		logger.Info("last migration rolled back")
	case "status":
		statuses, err := migrations.Status(ctx, db)
		if err != nil {
			return err
		}
		for _, st := range statuses {
			fmt.Printf("%-8s %s\n", st.State, st.Source.Path)
		}
	default:
		return fmt.Errorf("unknown command %q (want up, down or status)", command)
	}
	return nil
}
