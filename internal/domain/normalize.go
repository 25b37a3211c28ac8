package domain

import (
	"strings"
)

// TrimOrNil trims whitespace. Returns nil if the result is empty.
func TrimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// NormalizeReading returns the reading to store for a word:
//   - nil when absent or blank
//   - nil when it equals the original (the surface form is its own reading)
//   - otherwise the trimmed reading
//
// The original itself is never normalized; "猫" and "猫 " stay different words.
func NormalizeReading(original string, reading *string) *string {
	r := TrimOrNil(reading)
	if r == nil || *r == original {
		return nil
	}
	return r
}
