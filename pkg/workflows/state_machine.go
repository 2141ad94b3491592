package workflows

// Wizard step lifecycle states.
const (
	StepNotStarted = "not-started"
	StepInProgress = "in-progress"
	StepCompleted  = "completed"
)

// StateMachine enforces status transitions
type StateMachine struct {
	allowedTransitions map[string][]string
}

// NewStateMachine creates a state machine from an explicit transition table.
// The table is copied so callers cannot mutate it afterwards.
func NewStateMachine(transitions map[string][]string) *StateMachine {
	allowed := make(map[string][]string, len(transitions))
	for from, to := range transitions {
		allowed[from] = append([]string{}, to...)
	}
	return &StateMachine{allowedTransitions: allowed}
}

// NewStepStateMachine creates the lifecycle of a single wizard step.
// A step may be completed without ever being the current one, and a step
// stops being in progress when the user moves elsewhere. Completed steps
// have no forward transitions.
func NewStepStateMachine() *StateMachine {
	return NewStateMachine(map[string][]string{
		StepNotStarted: {StepInProgress, StepCompleted},
		StepInProgress: {StepCompleted, StepNotStarted},
		StepCompleted:  {},
	})
}

// CanTransition checks if a status transition is allowed
func (sm *StateMachine) CanTransition(from, to string) bool {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return false
	}
	for _, allowedTo := range allowed {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the allowed next statuses for a given status
func (sm *StateMachine) AllowedTransitions(from string) []string {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return []string{}
	}
	return append([]string{}, allowed...)
}

// IsTerminal reports whether a known status has no outgoing transitions.
func (sm *StateMachine) IsTerminal(status string) bool {
	allowed, exists := sm.allowedTransitions[status]
	return exists && len(allowed) == 0
}
