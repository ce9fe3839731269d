package speech

import (
	"fmt"
	"mediscreen.com/prescreen/fsm"
	"mediscreen.com/prescreen/types"
	"regexp"
	"strconv"
)

// DateExtractor turns a spoken availability date into "MM/D". The boolean
// reports whether any pattern matched.
type DateExtractor func(u types.Utterance) (string, bool)

type datePattern struct {
	machine fsm.Machine
	resolve func(window []types.Token) (month int, day int)
}

var (
	monthNames     = getMonthNames()
	cardinals      = getCardinals()
	ordinals       = getOrdinals()
	compoundTens   = getCompoundTens()
	numericOrdinal = regexp.MustCompile(`^(\d{1,2})(st|nd|rd|th)$`)
	numericDate    = regexp.MustCompile(`(\d{1,2})[/\s]+(\d{1,2})`)
)

func NewDateExtractor() DateExtractor {
	patterns := []datePattern{
		{getMonthCardinalMachine(), monthThenDay},
		{getCardinalPairMachine(), cardinalPair},
		{getMonthOrdinalMachine(), monthThenDay},
		{getOrdinalOfMonthMachine(), dayOfMonth},
	}

	return func(u types.Utterance) (string, bool) {
		tokens := joinCompoundNumbers(u.Tokens)
		for _, pattern := range patterns {
			begin, end, ok := pattern.machine.Match(tokens)
			if !ok {
				continue
			}
			month, day := pattern.resolve(tokens[begin : end+1])
			return fmt.Sprintf("%02d/%d", month, day), true
		}

		if m := numericDate.FindStringSubmatch(u.Raw); m != nil {
			return fmt.Sprintf("%s/%s", m[1], m[2]), true
		}
		return "", false
	}
}

/*
Detects:
	october sixteen
	oct 16
*/
func getMonthCardinalMachine() fsm.Machine {
	const Month = "MONTH"

	monthCondition := fsm.NewWordMapCondition(monthNames)
	dayCondition := fsm.NewDisjointCondition(
		fsm.NewWordValueRangeCondition(cardinals, 1, 31),
		fsm.NewIntegerRangeCondition(1, 31),
	)

	return fsm.Machine{
		fsm.Start: []fsm.MachineRule{
			{Cond: monthCondition, Dst: Month},
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
		Month: []fsm.MachineRule{
			{Cond: dayCondition, Dst: fsm.End},
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
		fsm.End: []fsm.MachineRule{
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
	}
}

/*
Detects:
	ten sixteen
	five twenty-one
*/
func getCardinalPairMachine() fsm.Machine {
	const Month = "MONTH"

	monthCondition := fsm.NewWordValueRangeCondition(cardinals, 1, 12)
	dayCondition := fsm.NewWordValueRangeCondition(cardinals, 1, 31)

	return fsm.Machine{
		fsm.Start: []fsm.MachineRule{
			{Cond: monthCondition, Dst: Month},
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
		Month: []fsm.MachineRule{
			{Cond: dayCondition, Dst: fsm.End},
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
		fsm.End: []fsm.MachineRule{
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
	}
}

/*
Detects:
	october sixteenth
	oct 16th
*/
func getMonthOrdinalMachine() fsm.Machine {
	const Month = "MONTH"

	monthCondition := fsm.NewWordMapCondition(monthNames)
	dayCondition := fsm.NewDisjointCondition(ordinalDayCondition, cardinalDayCondition)

	return fsm.Machine{
		fsm.Start: []fsm.MachineRule{
			{Cond: monthCondition, Dst: Month},
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
		Month: []fsm.MachineRule{
			{Cond: dayCondition, Dst: fsm.End},
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
		fsm.End: []fsm.MachineRule{
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
	}
}

/*
Detects "the sixteenth of october". The article is a filler word and is
already gone from the token stream, so the machine starts at the ordinal.
*/
func getOrdinalOfMonthMachine() fsm.Machine {
	const (
		Day = "DAY"
		Of  = "OF"
	)

	monthCondition := fsm.NewWordMapCondition(monthNames)
	ofCondition := fsm.NewTextValueCondition("of")

	return fsm.Machine{
		fsm.Start: []fsm.MachineRule{
			{Cond: ordinalDayCondition, Dst: Day},
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
		Day: []fsm.MachineRule{
			{Cond: ofCondition, Dst: Of},
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
		Of: []fsm.MachineRule{
			{Cond: monthCondition, Dst: fsm.End},
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
		fsm.End: []fsm.MachineRule{
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
	}
}

func ordinalDayCondition(token *types.Token) bool {
	_, ok := ordinalValue(token.Text)
	return ok
}

func cardinalDayCondition(token *types.Token) bool {
	n, ok := cardinalValue(token.Text)
	return ok && n >= 1 && n <= 31
}

func ordinalValue(word string) (int, bool) {
	if n, ok := ordinals[word]; ok {
		return n, true
	}
	m := numericOrdinal.FindStringSubmatch(word)
	if m == nil {
		return 0, false
	}
	n, _ := strconv.Atoi(m[1])
	return n, n >= 1 && n <= 31
}

func cardinalValue(word string) (int, bool) {
	if n, ok := cardinals[word]; ok {
		return n, true
	}
	n, err := strconv.Atoi(word)
	return n, err == nil
}

func dayValue(word string) int {
	if n, ok := ordinalValue(word); ok {
		return n
	}
	n, _ := cardinalValue(word)
	return n
}

func monthThenDay(window []types.Token) (int, int) {
	return monthNames[window[0].Text], dayValue(window[len(window)-1].Text)
}

func cardinalPair(window []types.Token) (int, int) {
	return cardinals[window[0].Text], cardinals[window[1].Text]
}

func dayOfMonth(window []types.Token) (int, int) {
	return monthNames[window[len(window)-1].Text], dayValue(window[0].Text)
}

// joinCompoundNumbers glues "twenty" + "one" into "twenty-one" (and the
// ordinal forms) so the tables only need the hyphenated spelling.
func joinCompoundNumbers(tokens []types.Token) []types.Token {
	out := make([]types.Token, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		if i+1 < len(tokens) && compoundTens[tokens[i].Text] {
			joined := tokens[i].Text + "-" + tokens[i+1].Text
			if _, ok := cardinals[joined]; ok {
				out = append(out, types.NewToken(len(out), joined))
				i++
				continue
			}
			if _, ok := ordinals[joined]; ok {
				out = append(out, types.NewToken(len(out), joined))
				i++
				continue
			}
		}
		tok := tokens[i]
		tok.Index = len(out)
		out = append(out, tok)
	}
	return out
}
