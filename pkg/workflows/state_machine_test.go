package workflows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepStateMachineTransitions(t *testing.T) {
	sm := NewStepStateMachine()

	tests := []struct {
		from, to string
		want     bool
	}{
		{StepNotStarted, StepInProgress, true},
		{StepNotStarted, StepCompleted, true},
		{StepInProgress, StepCompleted, true},
		{StepInProgress, StepNotStarted, true},
		{StepCompleted, StepInProgress, false},
		{StepCompleted, StepNotStarted, false},
		{"unknown", StepCompleted, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sm.CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestStepStateMachineTerminal(t *testing.T) {
	sm := NewStepStateMachine()

	assert.True(t, sm.IsTerminal(StepCompleted))
	assert.False(t, sm.IsTerminal(StepInProgress))
	assert.False(t, sm.IsTerminal("unknown"))
}

func TestAllowedTransitionsReturnsCopy(t *testing.T) {
	sm := NewStepStateMachine()

	allowed := sm.AllowedTransitions(StepNotStarted)
	allowed[0] = "tampered"

	assert.Equal(t, []string{StepInProgress, StepCompleted}, sm.AllowedTransitions(StepNotStarted))
	assert.Empty(t, sm.AllowedTransitions("unknown"))
}

func TestNewStateMachineCopiesTable(t *testing.T) {
	table := map[string][]string{"a": {"b"}}
	sm := NewStateMachine(table)
	table["a"][0] = "c"

	assert.True(t, sm.CanTransition("a", "b"))
	assert.False(t, sm.CanTransition("a", "c"))
}
