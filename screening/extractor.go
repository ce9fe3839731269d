package screening

import (
	"mediscreen.com/prescreen/speech"
	"mediscreen.com/prescreen/types"
	"regexp"
	"strconv"
	"strings"
)

var agePattern = regexp.MustCompile(`\b(\d{1,2})\b`)

// Extraction is what one answer contributed to the patient record.
type Extraction struct {
	Matched bool
	// Values holds the extracted text by name, as written to the turn log.
	Values map[string]string
}

// Extractor fills the field a question is asking about from one utterance.
type Extractor interface {
	Extract(q Question, u types.Utterance, record *types.PatientRecord) (Extraction, error)
}

// FieldExtractor is the heuristic extractor used for spoken answers.
type FieldExtractor struct {
	date speech.DateExtractor
}

func NewFieldExtractor() *FieldExtractor {
	return &FieldExtractor{date: speech.NewDateExtractor()}
}

func (e *FieldExtractor) Extract(q Question, u types.Utterance, record *types.PatientRecord) (Extraction, error) {
	switch q.Field {
	case FieldAge:
		return extractAge(u, record), nil
	case FieldMedicalConditions:
		return extractConditions(u, record), nil
	case FieldMedications:
		return extractMedications(u, record), nil
	case FieldPregnant:
		return extractTriState(u, pregnantYes, pregnantNo, &record.Pregnant), nil
	case FieldSevereConditions:
		return extractTriState(u, severeYes, severeNo, &record.SevereConditions), nil
	case FieldPhoneAreaCode:
		return extractPhonePart(u, 3, "area_code", &record.PhoneAreaCode, record), nil
	case FieldPhoneMiddle:
		return extractPhonePart(u, 3, "middle", &record.PhoneMiddle, record), nil
	case FieldPhoneLastFour:
		return extractPhonePart(u, 4, "last_four", &record.PhoneLastFour, record), nil
	case FieldContactPhone:
		return extractContactPhone(u, record), nil
	case FieldAvailabilityDate:
		return e.extractDate(u, record), nil
	}
	return Extraction{}, ErrUnknownField
}

func extractAge(u types.Utterance, record *types.PatientRecord) Extraction {
	if m := agePattern.FindStringSubmatch(u.Raw); m != nil {
		age, _ := strconv.Atoi(m[1])
		record.Age = types.IntPtr(age)
		return matched("age", m[1])
	}
	if age, ok := speech.ExtractSpokenNumber(u.Raw); ok {
		record.Age = types.IntPtr(age)
		return matched("age", strconv.Itoa(age))
	}
	return Extraction{}
}

func extractConditions(u types.Utterance, record *types.PatientRecord) Extraction {
	var found []string
	for _, entry := range conditionLexicon {
		if entry.keywords.MatchesAffirmed(u) {
			found = append(found, entry.name)
		}
	}
	if len(found) == 0 {
		return Extraction{}
	}
	record.MedicalConditions = append(record.MedicalConditions, found...)
	return matched("medical_conditions", strings.Join(found, ", "))
}

func extractMedications(u types.Utterance, record *types.PatientRecord) Extraction {
	var found []string
	for _, entry := range medicationLexicon {
		if entry.keywords.MatchesAffirmed(u) {
			found = append(found, entry.name)
		}
	}
	if len(found) == 0 && takingMedication.MatchesAffirmed(u) {
		found = append(found, unspecifiedMedication)
	}
	if len(found) == 0 {
		return Extraction{}
	}
	record.Medications = append(record.Medications, found...)
	return matched("medications", strings.Join(found, ", "))
}

// Affirmative wins over negative; neither leaves the value unset.
func extractTriState(u types.Utterance, yes speech.KeywordSet, no speech.KeywordSet, target **bool) Extraction {
	switch {
	case yes.MatchesAffirmed(u):
		*target = types.BoolPtr(true)
		return matched("answer", "yes")
	case no.Matches(u):
		*target = types.BoolPtr(false)
		return matched("answer", "no")
	}
	return Extraction{}
}

func extractPhonePart(u types.Utterance, width int, name string, target **string, record *types.PatientRecord) Extraction {
	digits := speech.ExtractDigits(u.Raw)
	if len(digits) < width {
		return Extraction{}
	}
	part := strings.Join(digits[:width], "")
	*target = types.StringPtr(part)

	result := matched("extracted_"+name, part)
	if record.PhoneAreaCode != nil && record.PhoneMiddle != nil && record.PhoneLastFour != nil {
		phone := speech.FormatPhone(*record.PhoneAreaCode, *record.PhoneMiddle, *record.PhoneLastFour)
		record.ContactInfo = types.StringPtr(phone)
		result.Values["contact_info"] = phone
	}
	return result
}

func extractContactPhone(u types.Utterance, record *types.PatientRecord) Extraction {
	phone, ok := speech.ExtractPhoneNumber(u.Raw)
	if !ok {
		return Extraction{}
	}
	record.ContactInfo = types.StringPtr(phone)
	return matched("contact_info", phone)
}

// The date answer is always kept. When no pattern matches, the raw answer
// is stored as-is and the turn still counts as a miss.
func (e *FieldExtractor) extractDate(u types.Utterance, record *types.PatientRecord) Extraction {
	if strings.TrimSpace(u.Raw) == "" {
		return Extraction{}
	}
	date, ok := e.date(u)
	if !ok {
		record.AvailabilityDate = types.StringPtr(u.Raw)
		return Extraction{Values: map[string]string{"availability_date": u.Raw}}
	}
	record.AvailabilityDate = types.StringPtr(date)
	return matched("availability_date", date)
}

func matched(name string, value string) Extraction {
	return Extraction{Matched: true, Values: map[string]string{name: value}}
}
