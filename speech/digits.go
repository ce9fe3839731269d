package speech

import (
	"regexp"
)

var (
	spokenDigits  = getSpokenDigits()
	literalDigits = regexp.MustCompile(`\d`)
)

// ExtractDigits maps spoken numbers and literal digit words to single digit
// characters in the order they were said. When nothing in the token
// stream looks like a number, the raw text is scanned for digits instead.
// It never fails; an empty result means nothing recognizable was said.
func ExtractDigits(raw string) []string {
	u := Normalize(raw)

	digits := make([]string, 0, len(u.Tokens))
	for _, token := range u.Tokens {
		value, ok := spokenDigits[token.Text]
		if !ok {
			if !token.IsNumber {
				continue
			}
			value = token.Text
		}
		for _, ch := range value {
			digits = append(digits, string(ch))
		}
	}

	if len(digits) == 0 {
		digits = append(digits, literalDigits.FindAllString(raw, -1)...)
	}
	return digits
}
