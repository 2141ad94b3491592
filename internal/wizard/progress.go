package wizard

// StepProgress pairs a wizard step with its derived status
type StepProgress struct {
	Step   WizardStep `json:"step"`
	Status StepStatus `json:"status"`
}

// Progress is the wizard completion view of a profile
type Progress struct {
	Steps   []StepProgress `json:"steps"`
	Percent int            `json:"percent"`
}

// ComputeProgress derives per-step status and overall completion. A nil
// profile yields every step not started and zero percent.
//
// Completed steps take precedence over the current step. Entries in
// CompletedSteps that are not wizard steps are ignored, so Percent is
// always one of 0, 20, 40, 60, 80 or 100.
func ComputeProgress(p *BusinessProfile) Progress {
	progress := Progress{Steps: make([]StepProgress, 0, len(wizardSteps))}
	if p == nil {
		for _, step := range wizardSteps {
			progress.Steps = append(progress.Steps, StepProgress{Step: step, Status: StatusNotStarted})
		}
		return progress
	}

	state := newProfileState(p)
	for _, step := range wizardSteps {
		status := StatusNotStarted
		switch {
		case state.isCompleted(step.ID):
			status = StatusCompleted
		case state.hasCurrent && state.currentStep == step.ID:
			status = StatusInProgress
		}
		progress.Steps = append(progress.Steps, StepProgress{Step: step, Status: status})
	}
	progress.Percent = percentOf(len(state.completed), len(wizardSteps))
	return progress
}

// percentOf rounds 100*done/total half up using integer arithmetic and
// clamps the result to [0, 100].
func percentOf(done, total int) int {
	if total <= 0 || done <= 0 {
		return 0
	}
	percent := (200*done + total) / (2 * total)
	if percent > 100 {
		return 100
	}
	return percent
}

// CompletedCount returns the number of completed steps.
func (p Progress) CompletedCount() int {
	n := 0
	for _, s := range p.Steps {
		if s.Status == StatusCompleted {
			n++
		}
	}
	return n
}

// StatusOf returns the status of a step; unknown steps are not started.
func (p Progress) StatusOf(id StepID) StepStatus {
	for _, s := range p.Steps {
		if s.Step.ID == id {
			return s.Status
		}
	}
	return StatusNotStarted
}

// NextStep returns the step the user should work on: the one in progress,
// otherwise the first not started. It reports false once every step is done.
func (p Progress) NextStep() (WizardStep, bool) {
	for _, s := range p.Steps {
		if s.Status == StatusInProgress {
			return s.Step, true
		}
	}
	for _, s := range p.Steps {
		if s.Status == StatusNotStarted {
			return s.Step, true
		}
	}
	return WizardStep{}, false
}
