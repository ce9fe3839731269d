package speech

import (
	"mediscreen.com/prescreen/types"
	"strings"
	"unicode"
)

var fillerWords = getFillerWords()

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "`", "'")

// Normalize lowercases the utterance, trims punctuation off each word and
// drops filler words. Inner hyphens and apostrophes are kept.
func Normalize(raw string) types.Utterance {
	fields := strings.Fields(strings.ToLower(apostrophes.Replace(raw)))
	tokens := make([]types.Token, 0, len(fields))
	for _, field := range fields {
		word := strings.TrimFunc(field, isEdgePunct)
		if word == "" || fillerWords[word] {
			continue
		}
		tokens = append(tokens, types.NewToken(len(tokens), word))
	}

	return types.Utterance{
		Raw:    raw,
		Tokens: tokens,
	}
}

func isEdgePunct(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
