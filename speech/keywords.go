package speech

import (
	"mediscreen.com/prescreen/negation"
	"mediscreen.com/prescreen/types"
	"strings"
)

var polarity = negation.NewDefaultAnalyzer()

// KeywordSet matches whole words or multi-word phrases against the tokens of
// an utterance.
type KeywordSet struct {
	phrases [][]string
}

func NewKeywordSet(phrases ...string) KeywordSet {
	set := KeywordSet{phrases: make([][]string, 0, len(phrases))}
	for _, p := range phrases {
		words := strings.Fields(strings.ToLower(p))
		if len(words) > 0 {
			set.phrases = append(set.phrases, words)
		}
	}
	return set
}

// Matches reports whether any phrase occurs in the utterance.
func (set KeywordSet) Matches(u types.Utterance) bool {
	return set.find(u, false)
}

// MatchesAffirmed is like Matches but ignores negated occurrences, as in
// "I don't take insulin" or "I do not".
func (set KeywordSet) MatchesAffirmed(u types.Utterance) bool {
	return set.find(u, true)
}

func (set KeywordSet) find(u types.Utterance, skipNegated bool) bool {
	for _, phrase := range set.phrases {
		for start := 0; start+len(phrase) <= len(u.Tokens); start++ {
			if !phraseAt(u.Tokens, start, phrase) {
				continue
			}
			if skipNegated && polarity.IsNegated(u.Tokens, start, start+len(phrase)) {
				continue
			}
			return true
		}
	}
	return false
}

func phraseAt(tokens []types.Token, start int, phrase []string) bool {
	for i, word := range phrase {
		if tokens[start+i].Text != word {
			return false
		}
	}
	return true
}
