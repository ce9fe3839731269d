package screening

import "mediscreen.com/prescreen/speech"

type lexiconEntry struct {
	name     string
	keywords speech.KeywordSet
}

func getConditionLexicon() []lexiconEntry {
	return []lexiconEntry{
		{"diabetes", speech.NewKeywordSet("diabetes", "diabetic")},
		{"hypertension", speech.NewKeywordSet("hypertension", "high blood pressure")},
		{"asthma", speech.NewKeywordSet("asthma", "asthmatic")},
		{"heart disease", speech.NewKeywordSet("heart disease", "heart condition", "heart attack", "heart failure")},
		{"cancer", speech.NewKeywordSet("cancer", "leukemia", "lymphoma")},
		{"kidney disease", speech.NewKeywordSet("kidney disease", "kidney failure", "dialysis")},
	}
}

func getMedicationLexicon() []lexiconEntry {
	return []lexiconEntry{
		{"metformin", speech.NewKeywordSet("metformin", "glucophage")},
		{"insulin", speech.NewKeywordSet("insulin")},
		{"lisinopril", speech.NewKeywordSet("lisinopril")},
		{"amlodipine", speech.NewKeywordSet("amlodipine")},
		{"atorvastatin", speech.NewKeywordSet("atorvastatin", "lipitor")},
		{"levothyroxine", speech.NewKeywordSet("levothyroxine", "synthroid")},
		{"albuterol", speech.NewKeywordSet("albuterol", "inhaler")},
		{"anticoagulant", speech.NewKeywordSet("warfarin", "blood thinner", "blood thinners")},
		{"contraceptive", speech.NewKeywordSet("birth control", "pill")},
		{"antidepressant", speech.NewKeywordSet("sertraline", "zoloft", "prozac", "antidepressant", "antidepressants")},
	}
}

const unspecifiedMedication = "unspecified"

var (
	conditionLexicon  = getConditionLexicon()
	medicationLexicon = getMedicationLexicon()

	takingMedication = speech.NewKeywordSet("yes", "i take", "i'm taking", "taking", "i do")

	pregnantYes = speech.NewKeywordSet("yes", "pregnant", "nursing", "breastfeeding")
	pregnantNo  = speech.NewKeywordSet("no", "not pregnant", "not nursing", "nope")

	severeYes = speech.NewKeywordSet("yes", "severe", "serious", "ongoing treatment")
	severeNo  = speech.NewKeywordSet("no", "not severe", "mild", "nothing", "none", "nope")
)
