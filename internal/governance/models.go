package governance

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidValue is returned when an enumerated field holds a value outside
// its closed set.
var ErrInvalidValue = errors.New("invalid enumerated value")

// RequiredForAll marks an onboarding step that every role must complete.
const RequiredForAll = "all"

// RoleLevel is the tier a governance role sits at
type RoleLevel string

const (
	LevelMember        RoleLevel = "member"
	LevelAreaLeader    RoleLevel = "area-leader"
	LevelGuidingStar   RoleLevel = "guiding-star"
	LevelCouncilMember RoleLevel = "council-member"
)

var roleLevels = []RoleLevel{LevelMember, LevelAreaLeader, LevelGuidingStar, LevelCouncilMember}

// Scope is the organizational reach of a governance level
type Scope string

const (
	ScopeGlobal      Scope = "global"
	ScopeContinental Scope = "continental"
	ScopeArea        Scope = "area"
	ScopeLocal       Scope = "local"
)

var scopes = []Scope{ScopeGlobal, ScopeContinental, ScopeArea, ScopeLocal}

// VotingMechanism is how a governance level reaches a decision
type VotingMechanism string

const (
	VotingUnanimous         VotingMechanism = "unanimous"
	VotingMajority          VotingMechanism = "majority"
	VotingQualifiedMajority VotingMechanism = "qualified-majority"
)

var votingMechanisms = []VotingMechanism{VotingUnanimous, VotingMajority, VotingQualifiedMajority}

// StepType classifies an onboarding step
type StepType string

const (
	StepTypeInformation StepType = "information"
	StepTypeEvaluation  StepType = "evaluation"
	StepTypeDecision    StepType = "decision"
	StepTypeApproval    StepType = "approval"
)

var stepTypes = []StepType{StepTypeInformation, StepTypeEvaluation, StepTypeDecision, StepTypeApproval}

// GovernanceRole describes a role in the governance model
type GovernanceRole struct {
	ID               string    `json:"id" yaml:"id"`
	Title            string    `json:"title" yaml:"title"`
	Description      string    `json:"description" yaml:"description"`
	Responsibilities []string  `json:"responsibilities" yaml:"responsibilities"`
	Requirements     []string  `json:"requirements" yaml:"requirements"`
	Level            RoleLevel `json:"level" yaml:"level"`
	VotingRights     bool      `json:"votingRights" yaml:"voting_rights"`
	TermLength       string    `json:"termLength,omitempty" yaml:"term_length,omitempty"`
}

// GovernanceLevel describes a decision-making body and how it votes
type GovernanceLevel struct {
	ID              string          `json:"id" yaml:"id"`
	Name            string          `json:"name" yaml:"name"`
	Description     string          `json:"description" yaml:"description"`
	Scope           Scope           `json:"scope" yaml:"scope"`
	DecisionMakers  []string        `json:"decisionMakers" yaml:"decision_makers"`
	VotingMechanism VotingMechanism `json:"votingMechanism" yaml:"voting_mechanism"`
	Quorum          *int            `json:"quorum,omitempty" yaml:"quorum,omitempty"`
}

// OnboardingStep is one stage of joining the governance model
type OnboardingStep struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Description   string   `json:"description" yaml:"description"`
	Type          StepType `json:"type" yaml:"type"`
	RequiredFor   []string `json:"requiredFor" yaml:"required_for"`
	EstimatedTime string   `json:"estimatedTime" yaml:"estimated_time"`
	Order         int      `json:"order" yaml:"order"`
}

// IsRequiredFor reports whether the step applies to the given role.
func (s OnboardingStep) IsRequiredFor(roleID string) bool {
	for _, r := range s.RequiredFor {
		if r == RequiredForAll || r == roleID {
			return true
		}
	}
	return false
}

// ParseRoleLevel validates a role level
func ParseRoleLevel(s string) (RoleLevel, error) {
	return parseEnum("role level", s, roleLevels)
}

// ParseScope validates a governance scope
func ParseScope(s string) (Scope, error) {
	return parseEnum("scope", s, scopes)
}

// ParseVotingMechanism validates a voting mechanism
func ParseVotingMechanism(s string) (VotingMechanism, error) {
	return parseEnum("voting mechanism", s, votingMechanisms)
}

// ParseStepType validates an onboarding step type
func ParseStepType(s string) (StepType, error) {
	return parseEnum("step type", s, stepTypes)
}

func parseEnum[T ~string](kind, s string, allowed []T) (T, error) {
	for _, v := range allowed {
		if string(v) == s {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s %q", ErrInvalidValue, kind, s)
}

func (l *RoleLevel) UnmarshalText(text []byte) error {
	v, err := ParseRoleLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

func (s *Scope) UnmarshalText(text []byte) error {
	v, err := ParseScope(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (m *VotingMechanism) UnmarshalText(text []byte) error {
	v, err := ParseVotingMechanism(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (t *StepType) UnmarshalText(text []byte) error {
	v, err := ParseStepType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (l *RoleLevel) UnmarshalYAML(value *yaml.Node) error {
	return unmarshalScalar(value, l.UnmarshalText)
}

func (s *Scope) UnmarshalYAML(value *yaml.Node) error {
	return unmarshalScalar(value, s.UnmarshalText)
}

func (m *VotingMechanism) UnmarshalYAML(value *yaml.Node) error {
	return unmarshalScalar(value, m.UnmarshalText)
}

func (t *StepType) UnmarshalYAML(value *yaml.Node) error {
	return unmarshalScalar(value, t.UnmarshalText)
}

func unmarshalScalar(value *yaml.Node, set func([]byte) error) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w: expected a scalar", value.Line, ErrInvalidValue)
	}
	if err := set([]byte(value.Value)); err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	return nil
}
