package types

import (
	"strings"
	"unicode"
)

// Token is one whitespace-separated word of a normalized utterance.
type Token struct {
	Index    int
	Text     string
	IsNumber bool
	IsWord   bool
	Shape    string
}

func NewToken(index int, text string) Token {
	shape := GetShape(text)
	return Token{
		Index:    index,
		Text:     text,
		IsNumber: len(text) > 0 && strings.Trim(shape, "d") == "",
		IsWord:   strings.ContainsRune(shape, 'x'),
		Shape:    shape,
	}
}

func GetShape(txt string) string {
	var sb strings.Builder
	for _, r := range txt {
		switch {
		case unicode.IsDigit(r):
			sb.WriteRune('d')
		case unicode.IsUpper(r):
			sb.WriteRune('X')
		case unicode.IsLetter(r):
			sb.WriteRune('x')
		default:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// Utterance holds one caller turn in the forms the extractors need.
type Utterance struct {
	Raw    string
	Tokens []Token
}
