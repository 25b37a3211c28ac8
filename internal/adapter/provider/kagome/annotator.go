// Package kagome fills gaps in analysed lyrics with the kagome morphological
// analyser and the IPA dictionary: missing readings of kanji words and missing
// word types.
package kagome

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/heartmarshall/kashi-backend/internal/domain"
	"github.com/heartmarshall/kashi-backend/internal/ingestion"
)

// IPA feature indexes.
const (
	featurePOS     = 0
	featureReading = 7
)

var posByIPA = map[string]domain.PartOfSpeech{
	"名詞":  domain.PartOfSpeechNoun,
	"動詞":  domain.PartOfSpeechVerb,
	"形容詞": domain.PartOfSpeechAdjective,
	"連体詞": domain.PartOfSpeechAdjective,
	"助詞":  domain.PartOfSpeechParticle,
	"助動詞": domain.PartOfSpeechParticle,
	"副詞":  domain.PartOfSpeechAdverb,
}

// Annotator wraps a kagome tokenizer. It is safe for concurrent use.
type Annotator struct {
	t *tokenizer.Tokenizer
}

// New loads the IPA dictionary and builds the tokenizer.
func New() (*Annotator, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("kagome: new tokenizer: %w", err)
	}
	return &Annotator{t: t}, nil
}

// Annotate fills, in place, the reading of every word that has none but
// contains kanji, and the word type of every word that has none.
// Values the source provided are never overwritten.
func (a *Annotator) Annotate(doc *domain.LyricsDocument) ingestion.AnnotationStats {
	var stats ingestion.AnnotationStats
	for i := range doc.Sentences {
		words := doc.Sentences[i].Words
		for j := range words {
			w := &words[j]
			if w.Reading == nil && containsKanji(w.Original) {
				if r, ok := a.Reading(w.Original); ok {
					if w.Reading = domain.NormalizeReading(w.Original, &r); w.Reading != nil {
						stats.ReadingsFilled++
					}
				}
			}
			if w.PartOfSpeech == "" {
				if p, ok := a.PartOfSpeech(w.Original); ok {
					w.PartOfSpeech = p
					stats.TypesInferred++
				}
			}
		}
	}
	return stats
}

// Reading returns the hiragana reading of surface. It fails when any token is
// unknown to the dictionary.
func (a *Annotator) Reading(surface string) (string, bool) {
	var b strings.Builder
	n := 0
	for _, tok := range a.t.Tokenize(surface) {
		if tok.Class == tokenizer.DUMMY || strings.TrimSpace(tok.Surface) == "" {
			continue
		}
		features := tok.Features()
		if len(features) <= featureReading || features[featureReading] == "*" {
			return "", false
		}
		b.WriteString(KatakanaToHiragana(features[featureReading]))
		n++
	}
	return b.String(), n > 0
}

// PartOfSpeech maps the IPA part of speech of the first token of surface onto
// the closed word-type set.
func (a *Annotator) PartOfSpeech(surface string) (domain.PartOfSpeech, bool) {
	for _, tok := range a.t.Tokenize(surface) {
		if tok.Class == tokenizer.DUMMY || strings.TrimSpace(tok.Surface) == "" {
			continue
		}
		features := tok.Features()
		if len(features) <= featurePOS {
			return "", false
		}
		p, ok := posByIPA[features[featurePOS]]
		return p, ok
	}
	return "", false
}

// KatakanaToHiragana shifts every katakana letter to its hiragana counterpart.
// The prolonged sound mark and non-katakana runes are kept.
func KatakanaToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'ァ' && r <= 'ヶ' {
			return r - 0x60
		}
		return r
	}, s)
}

func containsKanji(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
