package screening

import (
	"fmt"
	"mediscreen.com/prescreen/types"
)

// FieldKind says which patient record attribute a question fills. It is
// resolved once when the question set is built.
type FieldKind int

const (
	FieldAge FieldKind = iota
	FieldMedicalConditions
	FieldMedications
	FieldPregnant
	FieldSevereConditions
	FieldPhoneAreaCode
	FieldPhoneMiddle
	FieldPhoneLastFour
	FieldContactPhone
	FieldAvailabilityDate
)

var fieldIdentifiers = map[FieldKind]string{
	FieldAge:               "age",
	FieldMedicalConditions: "medical_conditions",
	FieldMedications:       "medications",
	FieldPregnant:          "pregnant",
	FieldSevereConditions:  "severe_conditions",
	FieldPhoneAreaCode:     "phone_area_code",
	FieldPhoneMiddle:       "phone_middle",
	FieldPhoneLastFour:     "phone_last_four",
	FieldContactPhone:      "contact_phone",
	FieldAvailabilityDate:  "availability_date",
}

func (kind FieldKind) String() string {
	if id, ok := fieldIdentifiers[kind]; ok {
		return id
	}
	return fmt.Sprintf("field(%d)", int(kind))
}

func (kind FieldKind) ValueKind() ValueKind {
	switch kind {
	case FieldAge:
		return ValueNumber
	case FieldMedicalConditions, FieldMedications:
		return ValueList
	case FieldPregnant, FieldSevereConditions:
		return ValueBoolean
	}
	return ValueText
}

func ParseFieldKind(identifier string) (FieldKind, error) {
	for kind, id := range fieldIdentifiers {
		if id == identifier {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, identifier)
}

type ValueKind string

const (
	ValueNumber  ValueKind = "number"
	ValueList    ValueKind = "list"
	ValueBoolean ValueKind = "boolean"
	ValueText    ValueKind = "text"
)

type Question struct {
	Prompt string
	Field  FieldKind
	Value  ValueKind
}

func NewQuestion(prompt string, field FieldKind) Question {
	return Question{Prompt: prompt, Field: field, Value: field.ValueKind()}
}

// QuestionSet is the fixed, ordered list of questions of one screening.
type QuestionSet struct {
	questions []Question
}

func NewQuestionSet(questions ...Question) (QuestionSet, error) {
	if len(questions) == 0 {
		return QuestionSet{}, ErrEmptyQuestionSet
	}
	if err := checkPhoneQuestions(questions); err != nil {
		return QuestionSet{}, err
	}
	qs := make([]Question, len(questions))
	copy(qs, questions)
	return QuestionSet{questions: qs}, nil
}

func (set QuestionSet) Len() int {
	return len(set.questions)
}

func (set QuestionSet) At(i int) Question {
	return set.questions[i]
}

func (set QuestionSet) Questions() []Question {
	out := make([]Question, len(set.questions))
	copy(out, set.questions)
	return out
}

// The three phone parts are asked together, in order, and never next to a
// single-field phone question.
func checkPhoneQuestions(questions []Question) error {
	parts := []FieldKind{FieldPhoneAreaCode, FieldPhoneMiddle, FieldPhoneLastFour}
	positions := make(map[FieldKind]int)
	hasContact := false
	for i, q := range questions {
		if _, ok := fieldIdentifiers[q.Field]; !ok {
			return fmt.Errorf("%w: question %d", ErrUnknownField, i)
		}
		if q.Field == FieldContactPhone {
			hasContact = true
		}
		for _, p := range parts {
			if q.Field == p {
				if _, dup := positions[p]; dup {
					return fmt.Errorf("%w: %s asked twice", ErrInvalidQuestionSet, p)
				}
				positions[p] = i
			}
		}
	}
	if len(positions) == 0 {
		return nil
	}
	if hasContact {
		return fmt.Errorf("%w: contact_phone mixed with phone parts", ErrInvalidQuestionSet)
	}
	if len(positions) != len(parts) {
		return fmt.Errorf("%w: phone parts must all be asked", ErrInvalidQuestionSet)
	}
	first := positions[FieldPhoneAreaCode]
	if positions[FieldPhoneMiddle] != first+1 || positions[FieldPhoneLastFour] != first+2 {
		return fmt.Errorf("%w: phone parts must be consecutive and ordered", ErrInvalidQuestionSet)
	}
	return nil
}

func commonQuestions() []Question {
	return []Question{
		NewQuestion("What is your age?", FieldAge),
		NewQuestion("Have you been diagnosed with any medical conditions?", FieldMedicalConditions),
		NewQuestion("Are you currently taking any medications?", FieldMedications),
		NewQuestion("Are you currently pregnant or nursing?", FieldPregnant),
		NewQuestion("Do you have any severe medical conditions that require ongoing treatment?", FieldSevereConditions),
	}
}

var availabilityQuestion = NewQuestion(
	"What is the next date when you would be available for a screening visit? "+
		"You can say it like 'ten sixteen' for October 16th, or 'October sixteenth', or 'the sixteenth of October'.",
	FieldAvailabilityDate,
)

// DefaultQuestionSet asks for the phone number in three parts.
func DefaultQuestionSet() QuestionSet {
	questions := append(commonQuestions(),
		NewQuestion("What is the best phone number to reach you for follow-up? Please say the first 3 digits of your area code.", FieldPhoneAreaCode),
		NewQuestion("Now please say the next 3 digits of your phone number.", FieldPhoneMiddle),
		NewQuestion("Finally, please say the last 4 digits of your phone number.", FieldPhoneLastFour),
		availabilityQuestion,
	)
	return QuestionSet{questions: questions}
}

// SingleFieldPhoneQuestionSet asks for the whole phone number at once.
func SingleFieldPhoneQuestionSet() QuestionSet {
	questions := append(commonQuestions(),
		NewQuestion("What is the best phone number to reach you for follow-up? Please say the number clearly, including the area code.", FieldContactPhone),
		availabilityQuestion,
	)
	return QuestionSet{questions: questions}
}

func QuestionSetFromTrial(cfg types.TrialConfiguration) (QuestionSet, error) {
	if len(cfg.Questions) == 0 {
		if cfg.PhoneCapture == types.PhoneCaptureSingle {
			return SingleFieldPhoneQuestionSet(), nil
		}
		return DefaultQuestionSet(), nil
	}
	questions := make([]Question, 0, len(cfg.Questions))
	for _, qc := range cfg.Questions {
		kind, err := ParseFieldKind(qc.Field)
		if err != nil {
			return QuestionSet{}, err
		}
		questions = append(questions, NewQuestion(qc.Prompt, kind))
	}
	return NewQuestionSet(questions...)
}
