package speech

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	phoneDigitWords  = getPhoneDigitWords()
	delimitedPhone   = regexp.MustCompile(`\b(\d{3})[-.]?(\d{3})[-.]?(\d{4})\b`)
	areaCodePhone    = regexp.MustCompile(`area code\s*(\d{3})[,\s]*(\d{3})[,\s-]*(\d{4})`)
	parenthesisPhone = regexp.MustCompile(`\((\d{3})\)\s*(\d{3})[-\s]*(\d{4})`)
)

// ExtractPhoneNumber reads a full ten-digit number from one utterance and
// formats it as NNN-NNN-NNNN. Patterns are tried in a fixed order:
// delimited digits, a run of exactly ten spoken digits, "area code"
// followed by groups, the first ten digits anywhere, then "(NNN) NNN-NNNN".
func ExtractPhoneNumber(raw string) (string, bool) {
	if m := delimitedPhone.FindStringSubmatch(raw); m != nil {
		return FormatPhone(m[1], m[2], m[3]), true
	}

	if digits := spokenPhoneDigits(raw); len(digits) == 10 {
		return FormatPhone(digits[:3], digits[3:6], digits[6:]), true
	}

	lower := strings.ToLower(strings.TrimSpace(raw))
	if m := areaCodePhone.FindStringSubmatch(lower); m != nil {
		return FormatPhone(m[1], m[2], m[3]), true
	}

	if all := literalDigits.FindAllString(raw, -1); len(all) >= 10 {
		digits := strings.Join(all[:10], "")
		return FormatPhone(digits[:3], digits[3:6], digits[6:]), true
	}

	if m := parenthesisPhone.FindStringSubmatch(raw); m != nil {
		return FormatPhone(m[1], m[2], m[3]), true
	}
	return "", false
}

func FormatPhone(areaCode string, middle string, lastFour string) string {
	return fmt.Sprintf("%s-%s-%s", areaCode, middle, lastFour)
}

// spokenPhoneDigits concatenates single spoken digits and purely numeric
// words, in order.
func spokenPhoneDigits(raw string) string {
	var sb strings.Builder
	for _, token := range Normalize(raw).Tokens {
		if d, ok := phoneDigitWords[token.Text]; ok {
			sb.WriteString(d)
			continue
		}
		if token.IsNumber {
			sb.WriteString(token.Text)
		}
	}
	return sb.String()
}
