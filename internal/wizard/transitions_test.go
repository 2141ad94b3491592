package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepTransitionsForward(t *testing.T) {
	prev := profileWith([]string{"business-info"}, WizardProgress{CurrentStep: "branding"})
	next := profileWith([]string{"business-info", "branding"}, WizardProgress{CurrentStep: "website"})

	transitions := StepTransitions(prev, next)

	assert.Equal(t, []StepTransition{
		{Step: StepBranding, From: StatusInProgress, To: StatusCompleted, Forward: true},
		{Step: StepWebsite, From: StatusNotStarted, To: StatusInProgress, Forward: true},
	}, transitions)
}

func TestStepTransitionsRegression(t *testing.T) {
	prev := profileWith([]string{"business-info", "branding"}, WizardProgress{})
	next := profileWith([]string{"business-info"}, WizardProgress{CurrentStep: "branding"})

	transitions := StepTransitions(prev, next)

	require.Len(t, transitions, 1)
	assert.Equal(t, StepBranding, transitions[0].Step)
	assert.False(t, transitions[0].Forward)
	assert.True(t, transitions[0].Regression())
}

func TestStepTransitionsFromNil(t *testing.T) {
	transitions := StepTransitions(nil, profileWith([]string{"business-info"}, WizardProgress{}))

	require.Len(t, transitions, 1)
	assert.Equal(t, StatusNotStarted, transitions[0].From)
	assert.True(t, transitions[0].Forward)

	assert.Empty(t, StepTransitions(nil, nil))
}
