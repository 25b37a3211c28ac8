// Command promote grants or revokes the admin flag by email address.
// It is used to bootstrap the first admin user.
//
// Usage:
//
//	promote --email=user@example.com [--revoke]
//
// The user must have signed in at least once.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/heartmarshall/kashi-backend/internal/adapter/postgres"
	userrepo "github.com/heartmarshall/kashi-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/kashi-backend/internal/app"
	"github.com/heartmarshall/kashi-backend/internal/auth"
	"github.com/heartmarshall/kashi-backend/internal/config"
	"github.com/heartmarshall/kashi-backend/internal/domain"
	"github.com/heartmarshall/kashi-backend/internal/service/user"
)

func main() {
	email := flag.String("email", "", "email of the user to promote")
	revoke := flag.Bool("revoke", false, "remove the admin flag instead")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --email=user@example.com [--revoke]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience, cfg.Auth.Leeway)
	svc := user.NewService(logger, userrepo.New(pool), verifier)

	u, err := svc.SetAdmin(ctx, user.SetAdminInput{Email: *email, IsAdmin: !*revoke})
	if errors.Is(err, domain.ErrNotFound) {
		fmt.Printf("No user found with email %q.\n", *email)
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("set admin: %v", err)
	}

	fmt.Printf("User %q admin=%t.\n", u.Email, u.IsAdmin)
}
