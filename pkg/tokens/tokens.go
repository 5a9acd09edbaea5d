// Package tokens provides a cheap token-count approximation for sizing
// prompts against an LLM context window. It deliberately never fails:
// callers get 0 for empty input and a rough estimate otherwise, and any
// content that slips under the estimate still goes through the single-call
// path rather than aborting a run.
package tokens

import (
	"strings"
	"unicode"
)

// Estimate approximates the token count of text. Latin-script words come
// out near 1.3 tokens per word; CJK text tokenizes closer to one token per
// rune, so runes outside the word count are weighted separately.
func Estimate(text string) int {
	if text == "" {
		return 0
	}

	words := 0
	wideRunes := 0
	inWord := false
	for _, r := range text {
		if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r) {
			wideRunes++
			inWord = false
			continue
		}
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			words++
			inWord = true
		}
	}

	estimate := (words*4 + 2) / 3
	estimate += wideRunes
	if estimate == 0 && strings.TrimSpace(text) != "" {
		estimate = 1
	}
	return estimate
}
