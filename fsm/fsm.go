package fsm

import (
	"errors"
	"fmt"
	"mediscreen.com/prescreen/types"
)

const (
	Start = "START"
	End   = "END"
)

type MachineRule struct {
	Dst  string
	Cond Condition
}

type Machine map[string][]MachineRule

func (fsm Machine) Input(token *types.Token, currentState string) string {
	rules, isOk := fsm[currentState]
	if !isOk {
		errTxt := fmt.Sprintf("Wrong rule: there is no transitions from '%s' state", currentState)
		panic(errors.New(errTxt))
	}

	for _, rule := range rules {
		if rule.Cond(token) {
			return rule.Dst
		}
	}

	return currentState
}

// Match returns the first token window [begin, end] that drives the
// machine from Start to End. Every offset is tried as a starting point,
// so a token that broke one attempt can still open the next one.
func (fsm Machine) Match(tokens []types.Token) (int, int, bool) {
	for begin := range tokens {
		state := Start
		for i := begin; i < len(tokens); i++ {
			state = fsm.Input(&tokens[i], state)
			if state == End {
				return begin, i, true
			}
			if state == Start {
				break
			}
		}
	}
	return 0, 0, false
}
