package speech

// Words dropped by the normalizer before any extraction.
func getFillerWords() map[string]bool {
	return map[string]bool{
		"um":   true,
		"uh":   true,
		"like": true,
		"the":  true,
		"and":  true,
		"or":   true,
		"is":   true,
		"are":  true,
	}
}

// Spoken forms the digit extractor understands, including common
// recognizer mishearings. Multi-digit values are exploded by the caller.
func getSpokenDigits() map[string]string {
	return map[string]string{
		"zero":      "0",
		"one":       "1",
		"two":       "2",
		"three":     "3",
		"four":      "4",
		"five":      "5",
		"six":       "6",
		"seven":     "7",
		"eight":     "8",
		"nine":      "9",
		"oh":        "0",
		"o":         "0",
		"to":        "2",
		"too":       "2",
		"for":       "4",
		"ate":       "8",
		"ten":       "10",
		"eleven":    "11",
		"twelve":    "12",
		"thirteen":  "13",
		"fourteen":  "14",
		"fifteen":   "15",
		"sixteen":   "16",
		"seventeen": "17",
		"eighteen":  "18",
		"nineteen":  "19",
		"twenty":    "20",
		"thirty":    "30",
		"forty":     "40",
		"fifty":     "50",
		"sixty":     "60",
		"seventy":   "70",
		"eighty":    "80",
		"ninety":    "90",
	}
}

// Single spoken digits accepted by the ten-digit phone run.
func getPhoneDigitWords() map[string]string {
	return map[string]string{
		"zero":  "0",
		"one":   "1",
		"two":   "2",
		"three": "3",
		"four":  "4",
		"five":  "5",
		"six":   "6",
		"seven": "7",
		"eight": "8",
		"nine":  "9",
		"oh":    "0",
	}
}

func getMonthNames() map[string]int {
	return map[string]int{
		"january":   1,
		"jan":       1,
		"february":  2,
		"feb":       2,
		"march":     3,
		"mar":       3,
		"april":     4,
		"apr":       4,
		"may":       5,
		"june":      6,
		"jun":       6,
		"july":      7,
		"jul":       7,
		"august":    8,
		"aug":       8,
		"september": 9,
		"sep":       9,
		"sept":      9,
		"october":   10,
		"oct":       10,
		"november":  11,
		"nov":       11,
		"december":  12,
		"dec":       12,
	}
}

func getCardinals() map[string]int {
	return map[string]int{
		"zero":         0,
		"one":          1,
		"two":          2,
		"three":        3,
		"four":         4,
		"five":         5,
		"six":          6,
		"seven":        7,
		"eight":        8,
		"nine":         9,
		"ten":          10,
		"eleven":       11,
		"twelve":       12,
		"thirteen":     13,
		"fourteen":     14,
		"fifteen":      15,
		"sixteen":      16,
		"seventeen":    17,
		"eighteen":     18,
		"nineteen":     19,
		"twenty":       20,
		"twenty-one":   21,
		"twenty-two":   22,
		"twenty-three": 23,
		"twenty-four":  24,
		"twenty-five":  25,
		"twenty-six":   26,
		"twenty-seven": 27,
		"twenty-eight": 28,
		"twenty-nine":  29,
		"thirty":       30,
		"thirty-one":   31,
	}
}

func getOrdinals() map[string]int {
	return map[string]int{
		"first":          1,
		"second":         2,
		"third":          3,
		"fourth":         4,
		"fifth":          5,
		"sixth":          6,
		"seventh":        7,
		"eighth":         8,
		"ninth":          9,
		"tenth":          10,
		"eleventh":       11,
		"twelfth":        12,
		"thirteenth":     13,
		"fourteenth":     14,
		"fifteenth":      15,
		"sixteenth":      16,
		"seventeenth":    17,
		"eighteenth":     18,
		"nineteenth":     19,
		"twentieth":      20,
		"twenty-first":   21,
		"twenty-second":  22,
		"twenty-third":   23,
		"twenty-fourth":  24,
		"twenty-fifth":   25,
		"twenty-sixth":   26,
		"twenty-seventh": 27,
		"twenty-eighth":  28,
		"twenty-ninth":   29,
		"thirtieth":      30,
		"thirty-first":   31,
	}
}

// Tens words that a recognizer may emit apart from their unit,
// e.g. "twenty first" for "twenty-first".
func getCompoundTens() map[string]bool {
	return map[string]bool{
		"twenty": true,
		"thirty": true,
	}
}
