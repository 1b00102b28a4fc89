package turns

import (
	"strings"

	"github.com/finmitra/finmitra/internal/generation"
)

// hinglishMarkers are romanized Hindi function words that rarely occur in
// English prose. Two or more distinct hits tip detection to Hinglish.
var hinglishMarkers = []string{
	"hai", "hain", "kya", "kaise", "kyun", "nahi", "nahin", "mera", "meri",
	"mujhe", "paisa", "paise", "kitna", "kitni", "karna", "chahiye", "batao",
	"wala", "wali", "saal", "bhai", "yojana", "sarkari",
}

// DetectLanguage infers the reply language from the utterance script and
// vocabulary. Devanagari text is Hindi, romanized Hindi is Hinglish, and
// everything else defaults to English.
func DetectLanguage(text string) generation.Language {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return generation.LanguageHindi
		}
	}

	hits := 0
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,!?\"'")
		for _, marker := range hinglishMarkers {
			if token == marker {
				hits++
				break
			}
		}
	}
	if hits >= 2 {
		return generation.LanguageHinglish
	}

	return generation.LanguageEnglish
}
