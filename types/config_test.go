package types

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func writeTrial(t *testing.T, name string, body string) string {
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadTrialConfiguration(t *testing.T) {
	p := writeTrial(t, "asthma.yaml", `
trial_name: Asthma Relief Study
phone_capture: single
eligible_closing: You qualify.
questions:
  - prompt: How old are you?
    field: age
  - prompt: What number can we call?
    field: contact_phone
`)
	cfg, err := LoadTrialConfiguration(p)
	require.NoError(t, err)
	assert.Equal(t, "Asthma Relief Study", cfg.Name)
	assert.Equal(t, PhoneCaptureSingle, cfg.PhoneCapture)
	assert.Equal(t, "You qualify.", cfg.EligibleClosing)
	assert.Empty(t, cfg.IneligibleClosing)
	require.Len(t, cfg.Questions, 2)
	assert.Equal(t, "contact_phone", cfg.Questions[1].Field)
	assert.Equal(t, p, cfg.FilePath)
}

func TestLoadTrialConfigurationDefaults(t *testing.T) {
	p := writeTrial(t, "empty.yaml", "greeting: Hi there\n")
	cfg, err := LoadTrialConfiguration(p)
	require.NoError(t, err)
	assert.Equal(t, DefaultTrialName, cfg.Name)
	assert.Equal(t, PhoneCaptureThreePart, cfg.PhoneCapture)
	assert.Equal(t, "Hi there", cfg.Greeting)
}

func TestLoadTrialConfigurationErrors(t *testing.T) {
	t.Run("wrong extension", func(t *testing.T) {
		_, err := LoadTrialConfiguration(writeTrial(t, "trial.json", "{}"))
		assert.Error(t, err)
	})
	t.Run("wrong phone capture", func(t *testing.T) {
		_, err := LoadTrialConfiguration(writeTrial(t, "t.yaml", "phone_capture: two_digit\n"))
		assert.Error(t, err)
	})
	t.Run("question without field", func(t *testing.T) {
		_, err := LoadTrialConfiguration(writeTrial(t, "t.yaml", "questions:\n  - prompt: Age?\n"))
		assert.Error(t, err)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTrialConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestPatientRecordClone(t *testing.T) {
	orig := PatientRecord{
		Age:               IntPtr(40),
		MedicalConditions: []string{"asthma"},
		Pregnant:          BoolPtr(false),
		ContactInfo:       StringPtr("555-123-4567"),
	}
	clone := orig.Clone()
	*clone.Age = 41
	clone.MedicalConditions[0] = "diabetes"
	*clone.Pregnant = true

	assert.Equal(t, 40, *orig.Age)
	assert.Equal(t, []string{"asthma"}, orig.MedicalConditions)
	assert.False(t, *orig.Pregnant)
	assert.Nil(t, clone.Medications)
}

func TestNewToken(t *testing.T) {
	assert.True(t, NewToken(0, "35").IsNumber)
	assert.False(t, NewToken(0, "35").IsWord)
	assert.True(t, NewToken(1, "twenty-one").IsWord)
	assert.False(t, NewToken(1, "twenty-one").IsNumber)
	assert.Equal(t, "dd/dd", NewToken(2, "10/16").Shape)
}
