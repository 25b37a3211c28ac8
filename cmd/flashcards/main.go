// Command flashcards is a terminal flashcard client.
//
// Anonymous sessions keep unknown-word marks in the device store
// (device.path); with --token the marks belong to the signed-in user.
// Display settings always stay on the device.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/heartmarshall/kashi-backend/internal/adapter/localstore"
	"github.com/heartmarshall/kashi-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kashi-backend/internal/app"
	"github.com/heartmarshall/kashi-backend/internal/app/cardsession"
	"github.com/heartmarshall/kashi-backend/internal/auth"
	"github.com/heartmarshall/kashi-backend/internal/config"
	"github.com/heartmarshall/kashi-backend/internal/observe"
	"github.com/heartmarshall/kashi-backend/internal/service/user"
	"github.com/heartmarshall/kashi-backend/pkg/ctxutil"
)

func main() {
	token := flag.String("token", "", "access token of a signed-in user (optional)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.Log.Format = "text"
	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	device, err := localstore.Open(ctx, cfg.Device.Path)
	if err != nil {
		log.Fatalf("open device store: %v", err)
	}
	defer device.Close()

	lexicon := app.NewLexicon(pool, logger, observe.Noop())
	lexicon.LedgerService.SetDevice(localstore.NewDeviceLedger(device))

	if *token != "" {
		verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience, cfg.Auth.Leeway)
		u, err := user.NewService(logger, lexicon.Users, verifier).Authenticate(ctx, *token)
		if err != nil {
			log.Fatalf("sign in: %v", err)
		}
		ctx = ctxutil.WithUserID(ctx, u.ID)
		fmt.Printf("signed in as %s\n", u.Email)
	}

	session := cardsession.New(os.Stdout,
		lexicon.SongService,
		lexicon.FlashcardService,
		lexicon.LedgerService,
		localstore.NewSettingsStore(device),
	)
	if err := session.Start(ctx); err != nil {
		log.Fatalf("start: %v", err)
	}
	fmt.Println(`type "help" for commands`)

	if err := session.Run(ctx, os.Stdin); err != nil {
		log.Fatalf("session: %v", err)
	}
}
