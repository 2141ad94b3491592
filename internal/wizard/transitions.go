package wizard

import "digital-presence/platform-backend/pkg/workflows"

var stepLifecycle = workflows.NewStepStateMachine()

// StepTransition records a step whose status differs between two snapshots
type StepTransition struct {
	Step    StepID     `json:"step"`
	From    StepStatus `json:"from"`
	To      StepStatus `json:"to"`
	Forward bool       `json:"forward"`
}

// Regression reports whether a completed step lost its completion.
func (t StepTransition) Regression() bool {
	return t.From == StatusCompleted && t.To != StatusCompleted
}

// StepTransitions compares the progress of two snapshots of the same
// profile, in wizard step order. Either snapshot may be nil.
func StepTransitions(prev, next *BusinessProfile) []StepTransition {
	before := ComputeProgress(prev)
	after := ComputeProgress(next)

	transitions := []StepTransition{}
	for i, s := range before.Steps {
		from, to := s.Status, after.Steps[i].Status
		if from == to {
			continue
		}
		transitions = append(transitions, StepTransition{
			Step:    s.Step.ID,
			From:    from,
			To:      to,
			Forward: stepLifecycle.CanTransition(string(from), string(to)),
		})
	}
	return transitions
}
