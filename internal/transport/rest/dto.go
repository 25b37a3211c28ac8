package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

type songResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	TitleKorean *string   `json:"titleKorean"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toSongResponse(s domain.Song) songResponse {
	return songResponse{
		ID:          s.ID,
		Title:       s.Title,
		TitleKorean: s.TitleKorean,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

type sentenceResponse struct {
	ID            uuid.UUID      `json:"id"`
	SongID        uuid.UUID      `json:"songId"`
	Original      string         `json:"original"`
	Pronunciation string         `json:"pronunciation"`
	Meaning       string         `json:"meaning"`
	Order         int            `json:"order"`
	Words         []wordResponse `json:"words,omitempty"`
}

func toSentenceResponse(s domain.Sentence) sentenceResponse {
	return sentenceResponse{
		ID:            s.ID,
		SongID:        s.SongID,
		Original:      s.Original,
		Pronunciation: s.Pronunciation,
		Meaning:       s.Meaning,
		Order:         s.Order,
	}
}

type wordResponse struct {
	ID            uuid.UUID           `json:"id"`
	Original      string              `json:"original"`
	Hiragana      *string             `json:"hiragana"`
	Pronunciation string              `json:"pronunciation"`
	Meaning       string              `json:"meaning"`
	WordType      domain.PartOfSpeech `json:"wordType"`
	Order         int                 `json:"order"`
}

func toWordResponse(w domain.Word) wordResponse {
	return wordResponse{
		ID:            w.ID,
		Original:      w.Original,
		Hiragana:      w.Reading,
		Pronunciation: w.Pronunciation,
		Meaning:       w.Meaning,
		WordType:      w.PartOfSpeech,
		Order:         w.Order,
	}
}

func toWordResponses(words []domain.Word) []wordResponse {
	out := make([]wordResponse, len(words))
	for i, w := range words {
		out[i] = toWordResponse(w)
	}
	return out
}

type lyricsResponse struct {
	Song      songResponse       `json:"song"`
	Sentences []sentenceResponse `json:"sentences"`
}

func toLyricsResponse(l *domain.SongLyrics) lyricsResponse {
	out := lyricsResponse{
		Song:      toSongResponse(l.Song),
		Sentences: make([]sentenceResponse, len(l.Sentences)),
	}
	for i, s := range l.Sentences {
		sr := toSentenceResponse(s.Sentence)
		sr.Words = toWordResponses(s.Words)
		out.Sentences[i] = sr
	}
	return out
}

type importResponse struct {
	SongID         uuid.UUID `json:"songId"`
	SongCreated    bool      `json:"songCreated"`
	SentencesAdded int       `json:"sentencesAdded"`
	WordsCreated   int       `json:"wordsCreated"`
	WordsReused    int       `json:"wordsReused"`
	Links          int       `json:"links"`
}

func toImportResponse(r domain.ImportResult) importResponse {
	return importResponse{
		SongID:         r.SongID,
		SongCreated:    r.SongCreated,
		SentencesAdded: r.SentencesAdded,
		WordsCreated:   r.WordsCreated,
		WordsReused:    r.WordsReused,
		Links:          r.Links,
	}
}

type userResponse struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"isAdmin"`
}
