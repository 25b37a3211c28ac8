package ingestion

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/heartmarshall/kashi-backend/internal/domain"
)

// Parse decodes source output into a validated lyrics document.
//
// It tolerates prose or code fences around the JSON object, accepts the
// expanded and the compact shape, and normalises readings (blank, "null" or
// equal to the original become nil). Everything else is strict: unknown
// fields, unknown word types, empty lyrics and missing required fields fail.
// Every failure is a *domain.IngestionFormatError.
func Parse(raw []byte) (domain.LyricsDocument, error) {
	body, err := extractJSON(raw)
	if err != nil {
		return domain.LyricsDocument{}, err
	}

	compact, err := isCompact(body)
	if err != nil {
		return domain.LyricsDocument{}, err
	}

	var doc expandedDocument
	if compact {
		var c compactDocument
		if err := decodeStrict(body, &c); err != nil {
			return domain.LyricsDocument{}, err
		}
		doc = c.expand()
	} else if err := decodeStrict(body, &doc); err != nil {
		return domain.LyricsDocument{}, err
	}

	result := toDomain(doc)
	if err := result.Validate(); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) && len(ve.Errors) > 0 {
			reason := ve.Errors[0].Message
			if n := len(ve.Errors) - 1; n > 0 {
				reason = fmt.Sprintf("%s (and %d more)", reason, n)
			}
			return domain.LyricsDocument{}, domain.NewIngestionFormatError(ve.Errors[0].Field, reason)
		}
		return domain.LyricsDocument{}, &domain.IngestionFormatError{Reason: "invalid document", Err: err}
	}
	return result, nil
}

// Marshal encodes a document in the expanded shape.
func Marshal(doc domain.LyricsDocument) ([]byte, error) {
	out := expandedDocument{
		Title:  expandedTitle{Title: doc.Title, TitleKorean: doc.TitleKorean},
		Lyrics: make([]expandedLine, len(doc.Sentences)),
	}
	for i, s := range doc.Sentences {
		line := expandedLine{
			Sentence: expandedSentence{Original: s.Original, Pronunciation: s.Pronunciation, Meaning: s.Meaning},
			Words:    make([]expandedWord, len(s.Words)),
		}
		for j, w := range s.Words {
			line.Words[j] = expandedWord{
				Original:      w.Original,
				Hiragana:      w.Reading,
				Pronunciation: w.Pronunciation,
				Meaning:       w.Meaning,
				WordType:      string(w.PartOfSpeech),
			}
		}
		out.Lyrics[i] = line
	}
	return json.MarshalIndent(out, "", "  ")
}

// extractJSON returns the bytes from the first '{' to the last '}'.
func extractJSON(raw []byte) ([]byte, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, domain.NewIngestionFormatError("", "empty response")
	}
	start := bytes.IndexByte(raw, '{')
	end := bytes.LastIndexByte(raw, '}')
	if start == -1 || end == -1 || end <= start {
		return nil, domain.NewIngestionFormatError("", "no JSON object found")
	}
	return raw[start : end+1], nil
}

// isCompact inspects the top-level keys to pick the shape.
func isCompact(body []byte) (bool, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return false, &domain.IngestionFormatError{Reason: "invalid JSON", Err: err}
	}

	title, ok := top["title"]
	if !ok {
		return false, domain.NewIngestionFormatError("title", "required")
	}
	if _, ok := top["lyrics"]; !ok {
		return false, domain.NewIngestionFormatError("lyrics", "required")
	}

	var titleKeys map[string]json.RawMessage
	if err := json.Unmarshal(title, &titleKeys); err != nil {
		return false, &domain.IngestionFormatError{Path: "title", Reason: "must be an object", Err: err}
	}
	_, compact := titleKeys["t"]
	return compact, nil
}

func decodeStrict(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &domain.IngestionFormatError{Path: typeErr.Field, Reason: "wrong type", Err: err}
		}
		return &domain.IngestionFormatError{Reason: "invalid document", Err: err}
	}
	return nil
}

func toDomain(in expandedDocument) domain.LyricsDocument {
	doc := domain.LyricsDocument{
		Title:       strings.TrimSpace(in.Title.Title),
		TitleKorean: domain.TrimOrNil(in.Title.TitleKorean),
		Sentences:   make([]domain.SentenceEntry, len(in.Lyrics)),
	}
	for i, l := range in.Lyrics {
		entry := domain.SentenceEntry{
			Original:      strings.TrimSpace(l.Sentence.Original),
			Pronunciation: strings.TrimSpace(l.Sentence.Pronunciation),
			Meaning:       strings.TrimSpace(l.Sentence.Meaning),
			Words:         make([]domain.WordEntry, len(l.Words)),
		}
		for j, w := range l.Words {
			// Word originals are dedup keys and are kept byte for byte.
			entry.Words[j] = domain.WordEntry{
				Original:      w.Original,
				Reading:       normalizeReading(w.Original, w.Hiragana),
				Pronunciation: strings.TrimSpace(w.Pronunciation),
				Meaning:       strings.TrimSpace(w.Meaning),
				PartOfSpeech:  domain.PartOfSpeech(strings.ToLower(strings.TrimSpace(w.WordType))),
			}
		}
		doc.Sentences[i] = entry
	}
	return doc
}

// normalizeReading also treats the literal string "null" as no reading.
func normalizeReading(original string, reading *string) *string {
	if reading != nil && strings.EqualFold(strings.TrimSpace(*reading), "null") {
		return nil
	}
	return domain.NormalizeReading(original, reading)
}
