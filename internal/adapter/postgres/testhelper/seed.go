package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a non-admin user with a unique email.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	user := domain.User{
		ID:    uuid.New(),
		Email: "testuser-" + uniqueSuffix() + "@example.com",
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (id, email) VALUES ($1, $2) RETURNING created_at, updated_at`,
		user.ID, user.Email,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedSong creates a song with a unique title.
func SeedSong(t *testing.T, pool *pgxpool.Pool) domain.Song {
	t.Helper()

	song := domain.Song{Title: "Song " + uniqueSuffix()}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO songs (title) VALUES ($1) RETURNING id, created_at, updated_at`,
		song.Title,
	).Scan(&song.ID, &song.CreatedAt, &song.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedSong: %v", err)
	}

	return song
}

// SeedSentence appends a sentence at the given order to a song.
func SeedSentence(t *testing.T, pool *pgxpool.Pool, songID uuid.UUID, order int) domain.Sentence {
	t.Helper()

	s := domain.Sentence{
		SongID:        songID,
		Original:      "文 " + uniqueSuffix(),
		Pronunciation: "pron",
		Meaning:       "meaning",
		Order:         order,
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO sentences (song_id, original, pronunciation, meaning, "order")
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		s.SongID, s.Original, s.Pronunciation, s.Meaning, s.Order,
	).Scan(&s.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedSentence: %v", err)
	}

	return s
}

// SeedWord creates a word with a unique original and no reading.
func SeedWord(t *testing.T, pool *pgxpool.Pool, pos domain.PartOfSpeech) domain.Word {
	t.Helper()

	w := domain.Word{
		Original:      "語" + uniqueSuffix(),
		Pronunciation: "go",
		Meaning:       "word",
		PartOfSpeech:  pos,
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO words (original, pronunciation, meaning, word_type)
		 VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`,
		w.Original, w.Pronunciation, w.Meaning, string(w.PartOfSpeech),
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedWord: %v", err)
	}

	return w
}

// SeedLink places a word in a sentence at the given position.
func SeedLink(t *testing.T, pool *pgxpool.Pool, sentenceID, wordID uuid.UUID, order int) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO sentence_words (sentence_id, word_id, "order") VALUES ($1, $2, $3)`,
		sentenceID, wordID, order,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLink: %v", err)
	}
}
