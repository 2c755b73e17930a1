package segment

import (
	"regexp"
	"strings"
)

// abbreviations are trailing-period tokens that do not end a sentence.
var abbreviations = map[string]bool{
	"dr": true, "mr": true, "mrs": true, "ms": true, "prof": true,
	"sr": true, "jr": true, "st": true,
	"inc": true, "ltd": true, "co": true, "corp": true,
	"e.g": true, "i.e": true, "etc": true, "vs": true, "approx": true,
	"no": true, "fig": true,
	"jan": true, "feb": true, "mar": true, "apr": true, "jun": true,
	"jul": true, "aug": true, "sep": true, "oct": true, "nov": true,
	"dec": true,
}

// boundary matches a sentence terminator followed by whitespace and an
// upper-case letter or opening quote.
var boundary = regexp.MustCompile(`([.!?]+)\s+(["'“‘]?[A-Z0-9])`)

// splitSentences breaks text into sentences using conventional boundary
// detection: terminator punctuation followed by a capitalized word, with
// common abbreviations and decimal numbers left intact.
func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	matches := boundary.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []string{text}
	}

	var sentences []string
	last := 0
	for _, m := range matches {
		// m[2]:m[3] is the terminator, m[4] the start of the next word.
		end := m[3]
		next := m[4]

		if isAbbreviation(text[last:end]) {
			continue
		}

		sentences = append(sentences, strings.TrimSpace(text[last:end]))
		last = next
	}

	if last < len(text) {
		sentences = append(sentences, strings.TrimSpace(text[last:]))
	}

	return sentences
}

// isAbbreviation reports whether the candidate sentence ends in a known
// abbreviation or a single-letter initial.
func isAbbreviation(candidate string) bool {
	candidate = strings.TrimRight(candidate, ".!?")

	idx := strings.LastIndexAny(candidate, " \n\t")
	word := strings.ToLower(candidate[idx+1:])

	if len(word) == 1 {
		// Initials such as "J." in "J. Smith".
		return word >= "a" && word <= "z"
	}
	return abbreviations[word]
}
