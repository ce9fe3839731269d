package types

import (
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"path"
	"strings"
)

const (
	PhoneCaptureThreePart = "three_part"
	PhoneCaptureSingle    = "single"

	DefaultTrialName = "Clinical Research Study"
)

type QuestionConfig struct {
	Prompt string `yaml:"prompt" json:"prompt"`
	Field  string `yaml:"field" json:"field"`
}

// TrialConfiguration is a trial profile loaded from YAML. Empty strings
// fall back to the built-in texts.
type TrialConfiguration struct {
	Name              string           `yaml:"trial_name" json:"trial_name"`
	FilePath          string           `yaml:"-" json:"file_path"`
	Description       string           `yaml:"trial_description" json:"trial_description"`
	Greeting          string           `yaml:"greeting" json:"greeting"`
	EligibleClosing   string           `yaml:"eligible_closing" json:"eligible_closing"`
	IneligibleClosing string           `yaml:"ineligible_closing" json:"ineligible_closing"`
	PhoneCapture      string           `yaml:"phone_capture" json:"phone_capture"`
	Questions         []QuestionConfig `yaml:"questions" json:"questions"`
}

func DefaultTrialConfiguration() TrialConfiguration {
	return TrialConfiguration{
		Name:         DefaultTrialName,
		PhoneCapture: PhoneCaptureThreePart,
	}
}

func LoadTrialConfiguration(filePath string) (TrialConfiguration, error) {
	cfg := DefaultTrialConfiguration()
	cfg.FilePath = filePath

	ext := strings.ToLower(path.Ext(filePath))
	if ext != ".yaml" && ext != ".yml" {
		return cfg, fmt.Errorf("trial configuration %s: expected a .yaml file", filePath)
	}
	buf, err := os.ReadFile(filePath)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, fmt.Errorf("trial configuration %s: %w", filePath, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("trial configuration %s: %w", filePath, err)
	}
	return cfg, nil
}

func (cfg TrialConfiguration) Validate() error {
	if strings.TrimSpace(cfg.Name) == "" {
		return errors.New("trial_name must not be empty")
	}
	if cfg.PhoneCapture != PhoneCaptureThreePart && cfg.PhoneCapture != PhoneCaptureSingle {
		return fmt.Errorf("wrong phone_capture %q", cfg.PhoneCapture)
	}
	for i, q := range cfg.Questions {
		if strings.TrimSpace(q.Prompt) == "" || strings.TrimSpace(q.Field) == "" {
			return fmt.Errorf("question %d needs both prompt and field", i)
		}
	}
	return nil
}
