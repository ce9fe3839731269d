package types

// PatientRecord collects what the caller told us. Nil pointers mean the
// question was never answered in a way we understood.
type PatientRecord struct {
	Age               *int     `json:"age"`
	MedicalConditions []string `json:"medical_conditions"`
	Medications       []string `json:"medications"`
	Pregnant          *bool    `json:"pregnant"`
	SevereConditions  *bool    `json:"severe_conditions"`
	ContactInfo       *string  `json:"contact_info"`
	PhoneAreaCode     *string  `json:"phone_area_code,omitempty"`
	PhoneMiddle       *string  `json:"phone_middle,omitempty"`
	PhoneLastFour     *string  `json:"phone_last_four,omitempty"`
	AvailabilityDate  *string  `json:"availability_date"`
}

func (record PatientRecord) Clone() PatientRecord {
	return PatientRecord{
		Age:               cloneInt(record.Age),
		MedicalConditions: cloneStrings(record.MedicalConditions),
		Medications:       cloneStrings(record.Medications),
		Pregnant:          cloneBool(record.Pregnant),
		SevereConditions:  cloneBool(record.SevereConditions),
		ContactInfo:       cloneString(record.ContactInfo),
		PhoneAreaCode:     cloneString(record.PhoneAreaCode),
		PhoneMiddle:       cloneString(record.PhoneMiddle),
		PhoneLastFour:     cloneString(record.PhoneLastFour),
		AvailabilityDate:  cloneString(record.AvailabilityDate),
	}
}

func IntPtr(v int) *int          { return &v }
func BoolPtr(v bool) *bool       { return &v }
func StringPtr(v string) *string { return &v }

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	return IntPtr(*v)
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	return BoolPtr(*v)
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	return StringPtr(*v)
}

func cloneStrings(v []string) []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v))
	copy(out, v)
	return out
}
