package speech

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mediscreen.com/prescreen/types"
	"testing"
)

func words(u types.Utterance) []string {
	out := make([]string, len(u.Tokens))
	for i, tok := range u.Tokens {
		out[i] = tok.Text
	}
	return out
}

func TestNormalize(t *testing.T) {
	u := Normalize("  Um, the answer is NO… I don’t think so.  ")
	assert.Equal(t, []string{"answer", "no", "i", "don't", "think", "so"}, words(u))
	assert.Equal(t, "  Um, the answer is NO… I don’t think so.  ", u.Raw)
	for i, tok := range u.Tokens {
		assert.Equal(t, i, tok.Index)
	}

	assert.Empty(t, Normalize("").Tokens)
	assert.Equal(t, []string{"twenty-one"}, words(Normalize("Twenty-one!")))
}

func TestExtractDigits(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected []string
	}{
		{"literal", "4567", []string{"4", "5", "6", "7"}},
		{"spoken", "four five six seven", []string{"4", "5", "6", "7"}},
		{"mishearings", "oh to for ate", []string{"0", "2", "4", "8"}},
		{"teens exploded", "twelve thirty", []string{"1", "2", "3", "0"}},
		{"fillers ignored", "um five uh five and five", []string{"5", "5", "5"}},
		{"punctuation", "Five, five, five.", []string{"5", "5", "5"}},
		{"embedded digits fallback", "it's 555-1234", []string{"5", "5", "5", "1", "2", "3", "4"}},
		{"mixed words and numbers", "five 55", []string{"5", "5", "5"}},
		{"nothing", "hello there", []string{}},
		{"empty", "", []string{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, ExtractDigits(c.input))
		})
	}
}

func TestExtractDigitsIsIdempotentOnDigits(t *testing.T) {
	assert.Equal(t, ExtractDigits("4567"), ExtractDigits("four five six seven"))
	assert.Equal(t, ExtractDigits("4567"), ExtractDigits(joinDigits(ExtractDigits("4567"))))
}

func joinDigits(d []string) string {
	out := ""
	for _, s := range d {
		out += s
	}
	return out
}

func TestExtractDate(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"october sixteenth", "10/16"},
		{"October sixteenth.", "10/16"},
		{"ten sixteen", "10/16"},
		{"the sixteenth of october", "10/16"},
		{"October 16", "10/16"},
		{"oct 16th", "10/16"},
		{"december twenty first", "12/21"},
		{"how about the twenty-third of may", "05/23"},
		{"I could do five twenty", "05/20"},
		{"sept fifth works", "09/5"},
		{"10/16", "10/16"},
		{"maybe 3 14", "3/14"},
		{"gibberish", ""},
		{"thirty forty", ""},
		{"", ""},
	}
	extract := NewDateExtractor()
	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			date, ok := extract(Normalize(c.input))
			assert.Equal(t, c.expected != "", ok)
			assert.Equal(t, c.expected, date)
		})
	}
}

func TestDateExtractorReportsMiss(t *testing.T) {
	extract := NewDateExtractor()
	_, ok := extract(Normalize("whenever works for you"))
	assert.False(t, ok)

	date, ok := extract(Normalize("january first"))
	require.True(t, ok)
	assert.Equal(t, "01/1", date)
}

func TestDatePatternPriority(t *testing.T) {
	extract := NewDateExtractor()
	// A month-name pair wins over a later cardinal pair.
	date, _ := extract(Normalize("november two or ten sixteen"))
	assert.Equal(t, "11/2", date)
	// A month cannot exceed twelve in the cardinal pair pattern.
	date, _ = extract(Normalize("thirteen four 11/4"))
	assert.Equal(t, "11/4", date)
}

func TestExtractPhoneNumber(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
		found    bool
	}{
		{"dashed", "call me at 555-123-4567", "555-123-4567", true},
		{"dotted", "555.123.4567", "555-123-4567", true},
		{"plain", "5551234567", "555-123-4567", true},
		{"spoken", "five five five one two three four five six seven", "555-123-4567", true},
		{"spoken with oh", "five oh five one two three four five six oh", "505-123-4560", true},
		{"grouped literal words", "555 123 4567", "555-123-4567", true},
		{"area code phrase", "Area code 555, 123 4567, extension 9", "555-123-4567", true},
		{"scattered digits", "5 5 5 1 2 3 4 5 6 7 8", "555-123-4567", true},
		{"parenthesis", "(555) 123-4567", "555-123-4567", true},
		{"too short", "five five five", "", false},
		{"nothing", "I'd rather not say", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			phone, found := ExtractPhoneNumber(c.input)
			assert.Equal(t, c.found, found)
			assert.Equal(t, c.expected, phone)
		})
	}
}

func TestKeywordSet(t *testing.T) {
	set := NewKeywordSet("pregnant", "high blood pressure")

	assert.True(t, set.Matches(Normalize("I have high blood pressure")))
	assert.False(t, set.Matches(Normalize("high pressure blood")))
	assert.False(t, set.Matches(Normalize("pregnancy")))

	assert.True(t, set.MatchesAffirmed(Normalize("yes I am pregnant")))
	assert.False(t, set.MatchesAffirmed(Normalize("I'm not pregnant")))
	assert.False(t, set.MatchesAffirmed(Normalize("I don't have high blood pressure")))
	assert.True(t, set.Matches(Normalize("I'm not pregnant")))

	doSet := NewKeywordSet("i do")
	assert.True(t, doSet.MatchesAffirmed(Normalize("yes I do")))
	assert.False(t, doSet.MatchesAffirmed(Normalize("I do not")))
	assert.False(t, doSet.MatchesAffirmed(Normalize("No I do not")))
	assert.False(t, doSet.MatchesAffirmed(Normalize("I do not take any medications")))
	assert.True(t, doSet.Matches(Normalize("I do not")))
}

func TestExtractSpokenNumber(t *testing.T) {
	cases := map[string]int{
		"thirty five":        35,
		"I'm forty-two":      42,
		"nineteen years old": 19,
		"seventy":            70,
		"I am 35":            35,
	}
	for input, expected := range cases {
		n, ok := ExtractSpokenNumber(input)
		assert.True(t, ok, input)
		assert.Equal(t, expected, n, input)
	}
	for _, input := range []string{
		"old enough",
		"I was born in nineteen eighty",
		"I'm one hundred and two",
		"ninety ninety",
		"two thousand",
	} {
		_, ok := ExtractSpokenNumber(input)
		assert.False(t, ok, input)
	}
}
