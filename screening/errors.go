package screening

import "errors"

var (
	ErrUnknownField       = errors.New("screening: unknown field identifier")
	ErrEmptyQuestionSet   = errors.New("screening: question set is empty")
	ErrInvalidQuestionSet = errors.New("screening: invalid question set")
)
