package types

import "time"

// CallRecord is what is kept about a call once it ends.
type CallRecord struct {
	RecordID        string    `json:"record_id"`
	CallSid         string    `json:"call_sid"`
	FromNumber      string    `json:"from_number"`
	StartTime       time.Time `json:"start_time"`
	DurationSeconds float64   `json:"duration_seconds"`
	Summary         Summary   `json:"summary"`
	Timestamp       time.Time `json:"timestamp"`
}

// FollowUp asks the notification side to text an eligible caller.
type FollowUp struct {
	CallSid          string `json:"call_sid"`
	ToNumber         string `json:"to_number"`
	ContactInfo      string `json:"contact_info,omitempty"`
	AvailabilityDate string `json:"availability_date,omitempty"`
	TrialName        string `json:"trial_name"`
	Message          string `json:"message"`
}
