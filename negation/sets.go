package negation

// Cues that negate a keyword they precede.
func getLeftCues() map[string]bool {
	return map[string]bool{
		"no":      true,
		"not":     true,
		"never":   true,
		"nothing": true,
		"none":    true,
		"without": true,
		"neither": true,
		"nor":     true,
		"denies":  true,
		"dont":    true,
		"cant":    true,
	}
}

// Cues that negate a keyword they follow, as in "I do not".
func getRightCues() map[string]bool {
	return map[string]bool{
		"not":   true,
		"never": true,
	}
}

// Words that may follow a right cue and keep it attached to the keyword:
// "I do not take any", "I do not really".
func getNegatedPredicates() map[string]bool {
	return map[string]bool{
		"take":      true,
		"taking":    true,
		"have":      true,
		"use":       true,
		"using":     true,
		"need":      true,
		"any":       true,
		"at":        true,
		"really":    true,
		"currently": true,
		"anymore":   true,
	}
}

func getAspectualVerbs() map[string]bool {
	return map[string]bool{
		"stopped":      true,
		"quit":         true,
		"discontinued": true,
	}
}

func getNegAdjectives() map[string]bool {
	return map[string]bool{
		"free": true,
	}
}

func getNegPrepositions() map[string]bool {
	return map[string]bool{
		"of":   true,
		"from": true,
	}
}

// GetDefaultBoundaries lists the words that close a negation scope.
func GetDefaultBoundaries() map[string]bool {
	return map[string]bool{
		"but":      true,
		"however":  true,
		"though":   true,
		"although": true,
		"except":   true,
		"yet":      true,
	}
}
