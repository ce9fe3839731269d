package screening

import (
	"fmt"
	"mediscreen.com/prescreen/types"
	"strings"
)

const ApologyPrompt = "I apologize, but I'm having trouble processing your response. Could you please repeat that?"

const (
	defaultGreeting = "Hello! Thank you for calling about our %s. " +
		"I'm here to help you learn more about this study and see if you might be a good fit. " +
		"This will take about 5 minutes. Are you ready to begin?"
	defaultEligibleClosing = "Thank you for answering all the questions. Based on your responses, " +
		"you appear to be a potential candidate for our %s. " +
		"We will contact you within 24 hours to schedule a screening visit and provide more details about the study. " +
		"Have a great day!"
	defaultIneligibleClosing = "Thank you for your interest in our %s. " +
		"Based on your responses, you may not be eligible for this particular study, " +
		"but we will keep your information for future research opportunities. " +
		"Thank you for your time."
)

// Prompts holds the fixed texts spoken outside of the question set.
type Prompts struct {
	Greeting          string
	EligibleClosing   string
	IneligibleClosing string
}

// PromptsFromTrial fills empty trial texts with the built-in ones. A "%s"
// in any text is replaced with the trial name.
func PromptsFromTrial(cfg types.TrialConfiguration) Prompts {
	return Prompts{
		Greeting:          render(cfg.Greeting, defaultGreeting, cfg.Name),
		EligibleClosing:   render(cfg.EligibleClosing, defaultEligibleClosing, cfg.Name),
		IneligibleClosing: render(cfg.IneligibleClosing, defaultIneligibleClosing, cfg.Name),
	}
}

func render(text string, fallback string, trialName string) string {
	if strings.TrimSpace(text) == "" {
		text = fallback
	}
	if strings.Contains(text, "%s") {
		return strings.TrimSpace(fmt.Sprintf(text, trialName))
	}
	return strings.TrimSpace(text)
}
