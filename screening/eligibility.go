package screening

import "mediscreen.com/prescreen/types"

const (
	MinimumAge = 18
	MaximumAge = 75
)

type Exclusion string

const (
	ExclusionAgeUnknown        Exclusion = "age_unknown"
	ExclusionAgeOutOfRange     Exclusion = "age_out_of_range"
	ExclusionPregnant          Exclusion = "pregnant"
	ExclusionMedications       Exclusion = "medications"
	ExclusionMedicalConditions Exclusion = "medical_conditions"
	ExclusionSevereConditions  Exclusion = "severe_conditions"
)

// Exclusions lists every rule the record breaks, in a fixed order. An
// unanswered yes/no question never excludes; a missing age always does.
func Exclusions(record types.PatientRecord) []Exclusion {
	var found []Exclusion
	if record.Age == nil {
		found = append(found, ExclusionAgeUnknown)
	} else if *record.Age < MinimumAge || *record.Age > MaximumAge {
		found = append(found, ExclusionAgeOutOfRange)
	}
	if record.Pregnant != nil && *record.Pregnant {
		found = append(found, ExclusionPregnant)
	}
	if len(record.Medications) > 0 {
		found = append(found, ExclusionMedications)
	}
	if len(record.MedicalConditions) > 0 {
		found = append(found, ExclusionMedicalConditions)
	}
	if record.SevereConditions != nil && *record.SevereConditions {
		found = append(found, ExclusionSevereConditions)
	}
	return found
}

func Assess(record types.PatientRecord) bool {
	return len(Exclusions(record)) == 0
}
