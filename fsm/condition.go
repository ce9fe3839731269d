package fsm

import (
	"mediscreen.com/prescreen/types"
	"strconv"
	"strings"
)

type Condition func(token *types.Token) bool

func AnyCondition(token *types.Token) bool {
	return true
}

func NewWordSetCondition(set map[string]bool) Condition {
	return func(token *types.Token) bool {
		return set[token.Text]
	}
}

func NewWordMapCondition[V any](set map[string]V) Condition {
	return func(token *types.Token) bool {
		_, ok := set[token.Text]
		return ok
	}
}

// NewWordValueRangeCondition accepts words whose mapped value lies in
// [lowNumber, highNumber].
func NewWordValueRangeCondition(set map[string]int, lowNumber int, highNumber int) Condition {
	return func(token *types.Token) bool {
		num, ok := set[token.Text]
		if !ok {
			return false
		}
		return num <= highNumber && num >= lowNumber
	}
}

func NewTextValueCondition(value string) Condition {
	l := len(value)
	return func(token *types.Token) bool {
		return token.IsWord && len(token.Text) == l && strings.EqualFold(token.Text, value)
	}
}

func NewDisjointCondition(conditions ...Condition) Condition {
	return func(token *types.Token) bool {
		for _, cond := range conditions {
			if cond(token) {
				return true
			}
		}

		return false
	}
}

func NewCombineCondition(conditions ...Condition) Condition {
	return func(token *types.Token) bool {
		for _, cond := range conditions {
			if !cond(token) {
				return false
			}
		}

		return true
	}
}

func NewIntegerRangeCondition(lowNumber int, highNumber int) Condition {
	return func(token *types.Token) bool {
		num, err := strconv.Atoi(token.Text)
		if err != nil {
			return false
		}

		return num <= highNumber && num >= lowNumber
	}
}

func NewNegateCondition(cond Condition) Condition {
	return func(token *types.Token) bool {
		return !cond(token)
	}
}

func NumberCondition(token *types.Token) bool {
	return token.IsNumber
}
