package speech

import (
	"mediscreen.com/prescreen/types"
	"strconv"
	"strings"
)

var unitWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9,
}

var tensWords = map[string]int{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var teenWords = map[string]int{
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
}

var scaleWords = map[string]bool{"hundred": true, "thousand": true}

// ExtractSpokenNumber reads the first spoken number below one hundred,
// e.g. "thirty five", "forty-two", "nineteen". A run of number words that
// does not form such a number, like "nineteen eighty" or "one hundred two",
// is rejected rather than cut short.
func ExtractSpokenNumber(raw string) (int, bool) {
	tokens := Normalize(raw).Tokens
	for i := 0; i < len(tokens); i++ {
		word := tokens[i].Text
		if n, err := strconv.Atoi(word); err == nil && len(word) <= 2 {
			return n, true
		}
		if !isNumberWord(word) {
			continue
		}
		end := i + 1
		for end < len(tokens) && isNumberWord(tokens[end].Text) {
			end++
		}
		return spokenValue(tokens[i:end])
	}
	return 0, false
}

func spokenValue(run []types.Token) (int, bool) {
	switch len(run) {
	case 1:
		word := run[0].Text
		if n, ok := compoundValue(word); ok {
			return n, true
		}
		if n, ok := tensWords[word]; ok {
			return n, true
		}
		if n, ok := teenWords[word]; ok {
			return n, true
		}
		if n, ok := unitWords[word]; ok {
			return n, true
		}
	case 2:
		t, ok := tensWords[run[0].Text]
		if !ok {
			break
		}
		if u, ok := unitWords[run[1].Text]; ok {
			return t + u, true
		}
	}
	return 0, false
}

// compoundValue reads a hyphenated "forty-two".
func compoundValue(word string) (int, bool) {
	tens, unit, ok := strings.Cut(word, "-")
	if !ok {
		return 0, false
	}
	t, ok := tensWords[tens]
	if !ok {
		return 0, false
	}
	u, ok := unitWords[unit]
	if !ok {
		return 0, false
	}
	return t + u, true
}

func isNumberWord(word string) bool {
	if _, ok := compoundValue(word); ok {
		return true
	}
	_, unit := unitWords[word]
	_, tens := tensWords[word]
	_, teen := teenWords[word]
	return unit || tens || teen || scaleWords[word]
}
