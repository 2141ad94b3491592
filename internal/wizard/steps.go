// Package wizard derives dashboard state from a business profile: per-step
// progress through the onboarding wizard and the recommended next actions.
// Every exported computation is a pure function of its inputs.
package wizard

import (
	"fmt"

	"digital-presence/platform-backend/pkg/workflows"
)

// StepID identifies one of the fixed wizard steps
type StepID string

const (
	StepBusinessInfo StepID = "business-info"
	StepBranding     StepID = "branding"
	StepWebsite      StepID = "website"
	StepMarketing    StepID = "marketing"
	StepLaunch       StepID = "launch"
)

// WizardStep describes a stage of the business development wizard
type WizardStep struct {
	ID          StepID `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Route       string `json:"route"`
}

// wizardSteps is ordered; the order is the default sequence of the wizard.
var wizardSteps = []WizardStep{
	{
		ID:          StepBusinessInfo,
		Name:        "Business Information",
		Description: "Tell us about your business, your audience and your goals.",
		Route:       "/wizard/business-info",
	},
	{
		ID:          StepBranding,
		Name:        "Branding",
		Description: "Define your logo, colors and brand voice.",
		Route:       "/wizard/branding",
	},
	{
		ID:          StepWebsite,
		Name:        "Website",
		Description: "Choose the structure, pages and features of your website.",
		Route:       "/wizard/website",
	},
	{
		ID:          StepMarketing,
		Name:        "Marketing",
		Description: "Select the channels and campaigns that reach your audience.",
		Route:       "/wizard/marketing",
	},
	{
		ID:          StepLaunch,
		Name:        "Launch",
		Description: "Review everything and schedule your launch.",
		Route:       "/wizard/launch",
	},
}

// Steps returns the wizard steps in their fixed order.
func Steps() []WizardStep {
	return append([]WizardStep{}, wizardSteps...)
}

// StepByID looks up a wizard step.
func StepByID(id StepID) (WizardStep, bool) {
	for _, s := range wizardSteps {
		if s.ID == id {
			return s, true
		}
	}
	return WizardStep{}, false
}

// ParseStepID reports whether s names a wizard step.
func ParseStepID(s string) (StepID, bool) {
	step, ok := StepByID(StepID(s))
	return step.ID, ok
}

// StepStatus is the derived state of a wizard step
type StepStatus string

const (
	StatusCompleted  StepStatus = workflows.StepCompleted
	StatusInProgress StepStatus = workflows.StepInProgress
	StatusNotStarted StepStatus = workflows.StepNotStarted
)

// ParseStepStatus validates a step status
func ParseStepStatus(s string) (StepStatus, error) {
	switch StepStatus(s) {
	case StatusCompleted, StatusInProgress, StatusNotStarted:
		return StepStatus(s), nil
	}
	return "", fmt.Errorf("invalid step status %q", s)
}

func (s *StepStatus) UnmarshalText(text []byte) error {
	v, err := ParseStepStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
