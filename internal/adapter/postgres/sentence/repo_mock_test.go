package sentence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/heartmarshall/kashi-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/kashi-backend/internal/domain"
)

func TestRepo_NextOrder(t *testing.T) {
	songID := uuid.New()

	tests := []struct {
		name  string
		setup func(mock pgxmock.PgxPoolIface)
		want  int
	}{
		{
			name: "empty song starts at zero",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT COALESCE\(MAX\("order"\) \+ 1, 0\) FROM sentences WHERE song_id = \$1`).
					WithArgs(songID).
					WillReturnRows(pgxmock.NewRows([]string{"next"}).AddRow(0))
			},
			want: 0,
		},
		{
			name: "appends after the last sentence",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM sentences`).
					WithArgs(songID).
					WillReturnRows(pgxmock.NewRows([]string{"next"}).AddRow(3))
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testhelper.NewMockPool(t)
			tt.setup(mock)

			got, err := New(mock).NextOrder(context.Background(), songID)
			if err != nil {
				t.Fatalf("NextOrder() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("NextOrder() = %d, want %d", got, tt.want)
			}

			testhelper.ExpectationsWereMet(t, mock)
		})
	}
}

func TestRepo_Link_PositionTaken(t *testing.T) {
	mock := testhelper.NewMockPool(t)
	sentenceID, wordID := uuid.New(), uuid.New()

	mock.ExpectQuery(`INSERT INTO sentence_words`).
		WithArgs(sentenceID, wordID, 0).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := New(mock).Link(context.Background(), sentenceID, wordID, 0)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("Link() error = %v, want conflict", err)
	}

	testhelper.ExpectationsWereMet(t, mock)
}

func TestRepo_LinksBySentenceIDs_Empty(t *testing.T) {
	mock := testhelper.NewMockPool(t)

	got, err := New(mock).LinksBySentenceIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}

	testhelper.ExpectationsWereMet(t, mock)
}
