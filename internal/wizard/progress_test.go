package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileWith(completed []string, progress WizardProgress) *BusinessProfile {
	return &BusinessProfile{CompletedSteps: completed, WizardProgress: progress}
}

func statuses(p Progress) []StepStatus {
	out := make([]StepStatus, len(p.Steps))
	for i, s := range p.Steps {
		out[i] = s.Status
	}
	return out
}

func TestComputeProgressNilProfile(t *testing.T) {
	progress := ComputeProgress(nil)

	assert.Equal(t, 0, progress.Percent)
	require.Len(t, progress.Steps, 5)
	for _, s := range progress.Steps {
		assert.Equal(t, StatusNotStarted, s.Status)
	}
}

func TestComputeProgressStatuses(t *testing.T) {
	p := profileWith(
		[]string{"business-info", "branding"},
		WizardProgress{CurrentStep: "website"},
	)

	progress := ComputeProgress(p)

	assert.Equal(t, []StepStatus{
		StatusCompleted, StatusCompleted, StatusInProgress, StatusNotStarted, StatusNotStarted,
	}, statuses(progress))
	assert.Equal(t, 40, progress.Percent)
	assert.Equal(t, 2, progress.CompletedCount())
}

func TestComputeProgressKeepsStepOrder(t *testing.T) {
	progress := ComputeProgress(profileWith([]string{"launch", "business-info"}, WizardProgress{}))

	ids := make([]StepID, len(progress.Steps))
	for i, s := range progress.Steps {
		ids[i] = s.Step.ID
	}
	assert.Equal(t, []StepID{StepBusinessInfo, StepBranding, StepWebsite, StepMarketing, StepLaunch}, ids)
}

func TestComputeProgressCompletedWinsOverCurrent(t *testing.T) {
	progress := ComputeProgress(profileWith([]string{"branding"}, WizardProgress{CurrentStep: "branding"}))

	assert.Equal(t, StatusCompleted, progress.StatusOf(StepBranding))
	for _, s := range progress.Steps {
		assert.NotEqual(t, StatusInProgress, s.Status)
	}
}

func TestComputeProgressUnknownCurrentStep(t *testing.T) {
	progress := ComputeProgress(profileWith([]string{"business-info"}, WizardProgress{CurrentStep: "checkout"}))

	assert.Equal(t, []StepStatus{
		StatusCompleted, StatusNotStarted, StatusNotStarted, StatusNotStarted, StatusNotStarted,
	}, statuses(progress))
}

func TestComputeProgressPercentValues(t *testing.T) {
	all := []string{"business-info", "branding", "website", "marketing", "launch"}
	want := []int{0, 20, 40, 60, 80, 100}

	previous := -1
	for n := 0; n <= len(all); n++ {
		progress := ComputeProgress(profileWith(all[:n], WizardProgress{}))
		assert.Equal(t, want[n], progress.Percent, "completed=%d", n)
		assert.GreaterOrEqual(t, progress.Percent, previous)
		previous = progress.Percent
	}
}

func TestComputeProgressIgnoresForeignAndDuplicateSteps(t *testing.T) {
	p := profileWith([]string{
		"business-info", "business-info", "branding", "checkout", "", "website", "marketing", "launch", "extra",
	}, WizardProgress{})

	progress := ComputeProgress(p)

	assert.Equal(t, 100, progress.Percent)
	assert.Equal(t, 5, progress.CompletedCount())

	onlyForeign := ComputeProgress(profileWith([]string{"checkout", "payments"}, WizardProgress{}))
	assert.Equal(t, 0, onlyForeign.Percent)
}

func TestComputeProgressIsDeterministic(t *testing.T) {
	p := profileWith([]string{"marketing", "business-info"}, WizardProgress{CurrentStep: "branding"})

	assert.Equal(t, ComputeProgress(p), ComputeProgress(p))
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, 0, percentOf(0, 5))
	assert.Equal(t, 20, percentOf(1, 5))
	assert.Equal(t, 33, percentOf(1, 3))
	assert.Equal(t, 67, percentOf(2, 3))
	assert.Equal(t, 50, percentOf(1, 2))
	assert.Equal(t, 100, percentOf(7, 5))
	assert.Equal(t, 0, percentOf(1, 0))
}

func TestNextStep(t *testing.T) {
	step, ok := ComputeProgress(nil).NextStep()
	require.True(t, ok)
	assert.Equal(t, StepBusinessInfo, step.ID)

	step, ok = ComputeProgress(profileWith([]string{"business-info"}, WizardProgress{CurrentStep: "marketing"})).NextStep()
	require.True(t, ok)
	assert.Equal(t, StepMarketing, step.ID)

	step, ok = ComputeProgress(profileWith([]string{"business-info", "branding"}, WizardProgress{})).NextStep()
	require.True(t, ok)
	assert.Equal(t, StepWebsite, step.ID)

	_, ok = ComputeProgress(profileWith([]string{"business-info", "branding", "website", "marketing", "launch"}, WizardProgress{})).NextStep()
	assert.False(t, ok)
}

func TestStepsReturnsCopy(t *testing.T) {
	steps := Steps()
	steps[0].Name = "tampered"

	assert.Equal(t, "Business Information", Steps()[0].Name)
}

func TestParseStepStatus(t *testing.T) {
	status, err := ParseStepStatus("in-progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, status)

	_, err = ParseStepStatus("paused")
	assert.Error(t, err)
}
