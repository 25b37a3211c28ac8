package domain

// DisplaySettings controls which words a flashcard deck shows and which fields a card reveals.
type DisplaySettings struct {
	ShowPronunciation bool                  `json:"showPronunciation"`
	ShowMeaning       bool                  `json:"showMeaning"`
	ShowHiragana      bool                  `json:"showHiragana"`
	ShowOnlyUnknown   bool                  `json:"showOnlyUnknown"`
	WordTypes         map[PartOfSpeech]bool `json:"wordTypes"`
}

// DefaultDisplaySettings shows every field and the four core word types.
func DefaultDisplaySettings() DisplaySettings {
	return DisplaySettings{
		ShowPronunciation: true,
		ShowMeaning:       true,
		ShowHiragana:      true,
		ShowOnlyUnknown:   false,
		WordTypes: map[PartOfSpeech]bool{
			PartOfSpeechNoun:      true,
			PartOfSpeechVerb:      true,
			PartOfSpeechAdjective: true,
			PartOfSpeechParticle:  true,
		},
	}
}

// SettingsPatch is a partial update of DisplaySettings. Nil fields are left unchanged.
type SettingsPatch struct {
	ShowPronunciation *bool                 `json:"showPronunciation,omitempty"`
	ShowMeaning       *bool                 `json:"showMeaning,omitempty"`
	ShowHiragana      *bool                 `json:"showHiragana,omitempty"`
	ShowOnlyUnknown   *bool                 `json:"showOnlyUnknown,omitempty"`
	WordTypes         map[PartOfSpeech]bool `json:"wordTypes,omitempty"`
}

// Merge returns a copy of s with the patch applied. WordTypes merge key by key.
func (s DisplaySettings) Merge(p SettingsPatch) DisplaySettings {
	out := s
	out.WordTypes = make(map[PartOfSpeech]bool, len(s.WordTypes)+len(p.WordTypes))
	for k, v := range s.WordTypes {
		out.WordTypes[k] = v
	}

	if p.ShowPronunciation != nil {
		out.ShowPronunciation = *p.ShowPronunciation
	}
	if p.ShowMeaning != nil {
		out.ShowMeaning = *p.ShowMeaning
	}
	if p.ShowHiragana != nil {
		out.ShowHiragana = *p.ShowHiragana
	}
	if p.ShowOnlyUnknown != nil {
		out.ShowOnlyUnknown = *p.ShowOnlyUnknown
	}
	for k, v := range p.WordTypes {
		out.WordTypes[k] = v
	}
	return out
}

// Allows reports whether words of the given type pass the word-type filter.
func (s DisplaySettings) Allows(p PartOfSpeech) bool {
	return s.WordTypes[p]
}
