package domain

// WordFilter narrows an admin word listing. Zero values mean "no constraint".
type WordFilter struct {
	Search       string
	PartOfSpeech *PartOfSpeech
	Limit        int
	Offset       int
}

// DefaultWordLimit applies when a listing does not set a limit.
const DefaultWordLimit = 100
