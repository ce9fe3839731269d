package types

type Stage string

const (
	StageGreeting   Stage = "greeting"
	StageScreening  Stage = "screening"
	StageConclusion Stage = "conclusion"
)

// Turn is one entry of the conversation audit log. Only the fields that
// belong to the kind of entry are set.
type Turn struct {
	Stage            Stage             `json:"stage"`
	Response         string            `json:"response,omitempty"`
	PatientResponse  *string           `json:"patient_response,omitempty"`
	Question         string            `json:"question,omitempty"`
	QuestionIndex    *int              `json:"question_index,omitempty"`
	Field            string            `json:"field,omitempty"`
	Outcome          string            `json:"outcome,omitempty"`
	Extracted        map[string]string `json:"extracted,omitempty"`
	OriginalResponse string            `json:"original_response,omitempty"`
	Error            string            `json:"error,omitempty"`
	Eligible         *bool             `json:"eligible,omitempty"`
	Conclusion       string            `json:"conclusion,omitempty"`
}

type Summary struct {
	TrialName       string        `json:"trial_name"`
	Stage           Stage         `json:"conversation_stage"`
	QuestionsAsked  int           `json:"questions_asked"`
	PatientInfo     PatientRecord `json:"patient_info"`
	Eligible        bool          `json:"eligible"`
	ConversationLog []Turn        `json:"conversation_log"`
}
