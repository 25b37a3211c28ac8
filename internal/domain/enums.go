package domain

// PartOfSpeech is the closed set of word types a lyric word can carry.
type PartOfSpeech string

const (
	PartOfSpeechNoun      PartOfSpeech = "noun"
	PartOfSpeechVerb      PartOfSpeech = "verb"
	PartOfSpeechAdjective PartOfSpeech = "adjective"
	PartOfSpeechParticle  PartOfSpeech = "particle"
	PartOfSpeechAdverb    PartOfSpeech = "adverb"
)

// DefaultPartOfSpeech is used when a word arrives without a type.
const DefaultPartOfSpeech = PartOfSpeechNoun

// PartsOfSpeech lists every valid PartOfSpeech in display order.
var PartsOfSpeech = []PartOfSpeech{
	PartOfSpeechNoun,
	PartOfSpeechVerb,
	PartOfSpeechAdjective,
	PartOfSpeechParticle,
	PartOfSpeechAdverb,
}

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective,
		PartOfSpeechParticle, PartOfSpeechAdverb:
		return true
	}
	return false
}

// ExportGroup returns the key a word of this type is grouped under in a word export.
func (p PartOfSpeech) ExportGroup() string {
	switch p {
	case PartOfSpeechNoun:
		return "nouns"
	case PartOfSpeechVerb:
		return "verbs"
	case PartOfSpeechAdjective:
		return "adjectives"
	case PartOfSpeechParticle:
		return "particles"
	case PartOfSpeechAdverb:
		return "adverbs"
	}
	return "others"
}
