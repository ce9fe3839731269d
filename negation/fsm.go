package negation

import (
	"mediscreen.com/prescreen/fsm"
	"mediscreen.com/prescreen/types"
	"strings"
)

const eosText = "<EOS>"

// PolarityFSM reports whether a scope of tokens carries a negation.
type PolarityFSM func(tokens []types.Token) bool

func newPolarityFSM(machines ...fsm.Machine) PolarityFSM {
	return func(tokens []types.Token) bool {
		states := make([]string, len(machines))
		for i := range states {
			states[i] = fsm.Start
		}
		for i := range tokens {
			for m, machine := range machines {
				states[m] = machine.Input(&tokens[i], states[m])
				if states[m] == fsm.End {
					return true
				}
			}
		}
		return false
	}
}

func newLeftPolarityFSM() PolarityFSM {
	return newPolarityFSM(
		getCueMachine(getLeftCues()),
		getAspectualMachine(),
		getAdjNegIndicatorMachine(),
	)
}

func newRightPolarityFSM() PolarityFSM {
	return newPolarityFSM(getTrailingCueMachine())
}

func eosCondition(token *types.Token) bool {
	return token.Text == eosText
}

// contractionCondition matches "don't", "isn't", "haven't" and friends.
func contractionCondition(token *types.Token) bool {
	return strings.HasSuffix(token.Text, "n't")
}

func getCueMachine(cues map[string]bool) fsm.Machine {
	wordC := fsm.NewNegateCondition(fsm.NumberCondition)
	cueC := fsm.NewDisjointCondition(
		fsm.NewWordSetCondition(cues),
		fsm.NewCombineCondition(wordC, contractionCondition),
	)
	return fsm.Machine{
		fsm.Start: []fsm.MachineRule{
			{Cond: cueC, Dst: fsm.End},
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
	}
}

func getAspectualMachine() fsm.Machine {
	return fsm.Machine{
		fsm.Start: []fsm.MachineRule{
			{Cond: fsm.NewWordSetCondition(getAspectualVerbs()), Dst: fsm.End},
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
	}
}

// "free of", "free from"
func getAdjNegIndicatorMachine() fsm.Machine {
	const negAdjState = "NEG_ADJ"
	negAdjC := fsm.NewWordSetCondition(getNegAdjectives())
	return fsm.Machine{
		fsm.Start: []fsm.MachineRule{
			{Cond: negAdjC, Dst: negAdjState},
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
		negAdjState: []fsm.MachineRule{
			{Cond: fsm.NewWordSetCondition(getNegPrepositions()), Dst: fsm.End},
			{Cond: negAdjC, Dst: negAdjState},
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
	}
}

// A right cue only counts when the answer stops there or carries on with
// the negated predicate, so "diabetes, not hypertension" keeps diabetes.
func getTrailingCueMachine() fsm.Machine {
	const cueState = "CUE"
	cueC := fsm.NewWordSetCondition(getRightCues())
	return fsm.Machine{
		fsm.Start: []fsm.MachineRule{
			{Cond: cueC, Dst: cueState},
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
		cueState: []fsm.MachineRule{
			{Cond: eosCondition, Dst: fsm.End},
			{Cond: fsm.NewWordSetCondition(getNegatedPredicates()), Dst: fsm.End},
			{Cond: cueC, Dst: cueState},
			{Cond: fsm.AnyCondition, Dst: fsm.Start},
		},
	}
}
