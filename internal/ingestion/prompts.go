package ingestion

import "fmt"

// rules is shared by the analysis and the verification pass.
const rules = `1. If a word's hiragana reading is identical to its original, set "hiragana" to null.
2. "pronunciation" is the Korean transcription of the Japanese sound, spaced the way Korean is spaced.
3. "word_type" is exactly one of: verb, particle, noun, adjective, adverb.
4. "meaning" is a natural Korean rendering that reads like a lyric line, not a dictionary gloss
   (prefer "아직 보이지 않아" over "아직 보이지 않는다").
5. Keep particles attached in the Korean pronunciation, e.g. "君のこころが" is "키미노 코코로가".
6. Analyse every line of the lyrics; never skip or summarise lines.`

const schema = `{
  "title": { "title": "Japanese title", "title_korean": "Korean title" },
  "lyrics": [
    {
      "sentence": { "original": "Japanese line", "pronunciation": "Korean pronunciation", "meaning": "Korean meaning" },
      "words": [
        { "original": "word", "hiragana": "reading or null", "pronunciation": "pronunciation", "meaning": "meaning", "word_type": "noun" }
      ]
    }
  ]
}`

// AnalysisSystemPrompt instructs the first pass.
const AnalysisSystemPrompt = `You analyse Japanese song lyrics for Korean learners.
Split the lyrics into lines and, for every line, list the words it contains in order.

Follow these rules strictly:
` + rules + `

Reply with JSON only, no explanation, in exactly this shape:
` + schema

// VerificationSystemPrompt instructs the second pass.
const VerificationSystemPrompt = `You verify Japanese lyrics analyses. Reply with JSON only.`

// AnalysisUserPrompt builds the user message of the first pass.
func AnalysisUserPrompt(title, lyrics string) string {
	return fmt.Sprintf("Title: %s\nLyrics:\n%s\n\nAnalyse the title and lyrics of this song. Reply with JSON only.", title, lyrics)
}

// VerificationUserPrompt builds the user message of the second pass from the first pass's output.
func VerificationUserPrompt(analysis string) string {
	return fmt.Sprintf(`Below is an analysis of Japanese lyrics. Check that it follows these rules and fix it where it does not:

%s

Analysis:
%s

Return the verified, corrected analysis as JSON only, in the same shape. No explanation.`, rules, analysis)
}
