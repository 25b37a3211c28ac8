package ingestion

// Expanded shape, as produced by the analysis prompt.
type expandedDocument struct {
	Title  expandedTitle  `json:"title"`
	Lyrics []expandedLine `json:"lyrics"`
}

type expandedTitle struct {
	Title       string  `json:"title"`
	TitleKorean *string `json:"title_korean,omitempty"`
}

type expandedLine struct {
	Sentence expandedSentence `json:"sentence"`
	Words    []expandedWord   `json:"words"`
}

type expandedSentence struct {
	Original      string `json:"original"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `json:"meaning"`
}

type expandedWord struct {
	Original      string  `json:"original"`
	Hiragana      *string `json:"hiragana"`
	Pronunciation string  `json:"pronunciation"`
	Meaning       string  `json:"meaning"`
	WordType      string  `json:"word_type"`
}

// Compact shape, as pasted into the admin import box.
type compactDocument struct {
	Title  compactTitle  `json:"title"`
	Lyrics []compactLine `json:"lyrics"`
}

type compactTitle struct {
	T string  `json:"t"`
	K *string `json:"k,omitempty"`
}

type compactLine struct {
	S compactSentence `json:"s"`
	W []compactWord   `json:"w"`
}

type compactSentence struct {
	O string `json:"o"`
	P string `json:"p"`
	M string `json:"m"`
}

type compactWord struct {
	O string  `json:"o"`
	H *string `json:"h"`
	P string  `json:"p"`
	M string  `json:"m"`
	T string  `json:"t"`
}

func (c compactDocument) expand() expandedDocument {
	doc := expandedDocument{
		Title:  expandedTitle{Title: c.Title.T, TitleKorean: c.Title.K},
		Lyrics: make([]expandedLine, len(c.Lyrics)),
	}
	for i, l := range c.Lyrics {
		line := expandedLine{
			Sentence: expandedSentence{Original: l.S.O, Pronunciation: l.S.P, Meaning: l.S.M},
			Words:    make([]expandedWord, len(l.W)),
		}
		for j, w := range l.W {
			line.Words[j] = expandedWord{Original: w.O, Hiragana: w.H, Pronunciation: w.P, Meaning: w.M, WordType: w.T}
		}
		doc.Lyrics[i] = line
	}
	return doc
}
