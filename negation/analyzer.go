package negation

import (
	"mediscreen.com/prescreen/types"
)

const (
	DefaultMaxLeftScopeSize  = 3
	DefaultMaxRightScopeSize = 2
)

// Analyzer decides whether a keyword found in an utterance is negated by
// the words around it. Scopes stop at boundary words such as "but".
type Analyzer struct {
	maxLeftScopeSize  int
	maxRightScopeSize int
	boundaries        map[string]bool
	left              PolarityFSM
	right             PolarityFSM
}

func NewAnalyzer(maxLeftScopeSize int, maxRightScopeSize int, boundaries map[string]bool) Analyzer {
	return Analyzer{
		maxLeftScopeSize:  maxLeftScopeSize,
		maxRightScopeSize: maxRightScopeSize,
		boundaries:        boundaries,
		left:              newLeftPolarityFSM(),
		right:             newRightPolarityFSM(),
	}
}

func NewDefaultAnalyzer() Analyzer {
	return NewAnalyzer(DefaultMaxLeftScopeSize, DefaultMaxRightScopeSize, GetDefaultBoundaries())
}

// IsNegated checks the keyword occupying tokens[begin:end].
func (a Analyzer) IsNegated(tokens []types.Token, begin int, end int) bool {
	return a.left(a.LeftScope(tokens, begin)) || a.right(a.RightScope(tokens, end))
}

// LeftScope returns up to maxLeftScopeSize tokens before begin, in order,
// followed by an end-of-scope marker.
func (a Analyzer) LeftScope(tokens []types.Token, begin int) []types.Token {
	from := begin
	for from > 0 && begin-from < a.maxLeftScopeSize && !a.isBoundary(tokens[from-1]) {
		from--
	}
	return withEOS(tokens[from:begin])
}

// RightScope returns up to maxRightScopeSize tokens from end on, followed
// by an end-of-scope marker.
func (a Analyzer) RightScope(tokens []types.Token, end int) []types.Token {
	to := end
	for to < len(tokens) && to-end < a.maxRightScopeSize && !a.isBoundary(tokens[to]) {
		to++
	}
	return withEOS(tokens[end:to])
}

func (a Analyzer) isBoundary(token types.Token) bool {
	return a.boundaries[token.Text]
}

func withEOS(scope []types.Token) []types.Token {
	out := make([]types.Token, 0, len(scope)+1)
	out = append(out, scope...)
	return append(out, types.NewToken(-1, eosText))
}
