package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/kashi-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kashi-backend/internal/adapter/postgres/testhelper"
)

// songExists checks whether a song row with the given ID exists in the database.
func songExists(t *testing.T, pool *pgxpool.Pool, songID uuid.UUID) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM songs WHERE id = $1)`,
		songID,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("songExists query: %v", err)
	}
	return exists
}

func insertSong(ctx context.Context, q postgres.Querier, id uuid.UUID) error {
	_, err := q.Exec(ctx,
		`INSERT INTO songs (id, title) VALUES ($1, $2)`,
		id, "tx-"+id.String(),
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	songID := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertSong(ctx, postgres.QuerierFromCtx(ctx, pool), songID)
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !songExists(t, pool, songID) {
		t.Fatal("expected song to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	songID := uuid.New()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if execErr := insertSong(ctx, postgres.QuerierFromCtx(ctx, pool), songID); execErr != nil {
			t.Fatalf("insert inside tx failed: %v", execErr)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if songExists(t, pool, songID) {
		t.Fatal("expected song NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	songID := uuid.New()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}
		if songExists(t, pool, songID) {
			t.Fatal("expected song NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertSong(ctx, postgres.QuerierFromCtx(ctx, pool), songID); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	songID := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if err := insertSong(ctx, q, songID); err != nil {
			return err
		}

		// Visible inside the transaction, not yet outside.
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM songs WHERE id = $1)`, songID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected song to be visible within the transaction")
		}
		if songExists(t, pool, songID) {
			t.Fatal("song leaked outside the transaction before commit")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !songExists(t, pool, songID) {
		t.Fatal("expected song to exist after committed transaction")
	}
}

func TestRunInTx_NestedCallJoinsOuter(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	outerID, innerID := uuid.New(), uuid.New()
	sentinel := errors.New("outer failed")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertSong(ctx, postgres.QuerierFromCtx(ctx, pool), outerID); err != nil {
			return err
		}
		innerErr := tm.RunInTx(ctx, func(ctx context.Context) error {
			if !postgres.InTx(ctx) {
				t.Fatal("expected inner call to see the outer transaction")
			}
			return insertSong(ctx, postgres.QuerierFromCtx(ctx, pool), innerID)
		})
		if innerErr != nil {
			return innerErr
		}
		if songExists(t, pool, innerID) {
			t.Fatal("inner write committed independently of the outer transaction")
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if songExists(t, pool, outerID) || songExists(t, pool, innerID) {
		t.Fatal("expected both writes rolled back with the outer transaction")
	}
}

func TestRunInTx_RetriesSerializationFailure(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	songID := uuid.New()
	calls := 0

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		calls++
		if err := insertSong(ctx, postgres.QuerierFromCtx(ctx, pool), songID); err != nil {
			return err
		}
		if calls == 1 {
			return &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls)
	}
	if !songExists(t, pool, songID) {
		t.Fatal("expected song to exist after the retried transaction")
	}
}

func TestRunInTx_GivesUpAfterRetries(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	calls := 0
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		calls++
		return &pgconn.PgError{Code: "40P01", Message: "deadlock detected"}
	})

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "40P01" {
		t.Fatalf("expected deadlock error, got: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestQuerierFromCtx_FallbackWithoutTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)

	if q := postgres.QuerierFromCtx(context.Background(), pool); q != postgres.Querier(pool) {
		t.Fatalf("expected fallback querier, got %T", q)
	}
}
