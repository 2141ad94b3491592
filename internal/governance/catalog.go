// Package governance holds the static governance model: roles, decision
// levels and onboarding steps, plus read-only queries over them.
package governance

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrInvalidCatalog is returned when catalog data fails validation.
var ErrInvalidCatalog = errors.New("invalid governance catalog")

// Catalog is an immutable set of governance tables. All accessors return
// copies, so a Catalog is safe for concurrent use.
type Catalog struct {
	roles  []GovernanceRole
	levels []GovernanceLevel
	steps  []OnboardingStep
}

// NewCatalog validates the tables and builds a catalog from them.
func NewCatalog(roles []GovernanceRole, levels []GovernanceLevel, steps []OnboardingStep) (*Catalog, error) {
	c := &Catalog{
		roles:  cloneRoles(roles),
		levels: cloneLevels(levels),
		steps:  cloneSteps(steps),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	roleIDs := make(map[string]bool, len(c.roles))
	for i, r := range c.roles {
		if r.ID == "" {
			return fmt.Errorf("%w: roles[%d]: id is required", ErrInvalidCatalog, i)
		}
		if roleIDs[r.ID] {
			return fmt.Errorf("%w: duplicate role id %q", ErrInvalidCatalog, r.ID)
		}
		if _, err := ParseRoleLevel(string(r.Level)); err != nil {
			return fmt.Errorf("%w: role %q: %v", ErrInvalidCatalog, r.ID, err)
		}
		roleIDs[r.ID] = true
	}

	levelIDs := make(map[string]bool, len(c.levels))
	for i, l := range c.levels {
		if l.ID == "" {
			return fmt.Errorf("%w: levels[%d]: id is required", ErrInvalidCatalog, i)
		}
		if levelIDs[l.ID] {
			return fmt.Errorf("%w: duplicate level id %q", ErrInvalidCatalog, l.ID)
		}
		if _, err := ParseScope(string(l.Scope)); err != nil {
			return fmt.Errorf("%w: level %q: %v", ErrInvalidCatalog, l.ID, err)
		}
		if _, err := ParseVotingMechanism(string(l.VotingMechanism)); err != nil {
			return fmt.Errorf("%w: level %q: %v", ErrInvalidCatalog, l.ID, err)
		}
		if l.Quorum != nil && *l.Quorum <= 0 {
			return fmt.Errorf("%w: level %q: quorum must be positive", ErrInvalidCatalog, l.ID)
		}
		levelIDs[l.ID] = true
	}

	stepIDs := make(map[string]bool, len(c.steps))
	for i, s := range c.steps {
		if s.ID == "" {
			return fmt.Errorf("%w: steps[%d]: id is required", ErrInvalidCatalog, i)
		}
		if stepIDs[s.ID] {
			return fmt.Errorf("%w: duplicate step id %q", ErrInvalidCatalog, s.ID)
		}
		if _, err := ParseStepType(string(s.Type)); err != nil {
			return fmt.Errorf("%w: step %q: %v", ErrInvalidCatalog, s.ID, err)
		}
		if len(s.RequiredFor) == 0 {
			return fmt.Errorf("%w: step %q: required_for is empty", ErrInvalidCatalog, s.ID)
		}
		for _, r := range s.RequiredFor {
			if r != RequiredForAll && !roleIDs[r] {
				return fmt.Errorf("%w: step %q: unknown role %q in required_for", ErrInvalidCatalog, s.ID, r)
			}
		}
		stepIDs[s.ID] = true
	}
	return nil
}

// Roles returns every role in declaration order.
func (c *Catalog) Roles() []GovernanceRole { return cloneRoles(c.roles) }

// Levels returns every governance level in declaration order.
func (c *Catalog) Levels() []GovernanceLevel { return cloneLevels(c.levels) }

// Steps returns every onboarding step in declaration order.
func (c *Catalog) Steps() []OnboardingStep { return cloneSteps(c.steps) }

// RoleByID returns the role with the given id. Unknown ids report false.
func (c *Catalog) RoleByID(roleID string) (GovernanceRole, bool) {
	for _, r := range c.roles {
		if r.ID == roleID {
			return cloneRole(r), true
		}
	}
	return GovernanceRole{}, false
}

// StepsForRole returns the onboarding steps that apply to the role, sorted
// by Order. Steps sharing an Order keep their declaration order.
func (c *Catalog) StepsForRole(roleID string) []OnboardingStep {
	steps := make([]OnboardingStep, 0, len(c.steps))
	for _, s := range c.steps {
		if s.IsRequiredFor(roleID) {
			steps = append(steps, cloneStep(s))
		}
	}
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Order < steps[j].Order
	})
	return steps
}

// LevelByScope returns the first level declared for the scope.
func (c *Catalog) LevelByScope(scope Scope) (GovernanceLevel, bool) {
	for _, l := range c.levels {
		if l.Scope == scope {
			return cloneLevel(l), true
		}
	}
	return GovernanceLevel{}, false
}

// LevelByID returns the level with the given id.
func (c *Catalog) LevelByID(levelID string) (GovernanceLevel, bool) {
	for _, l := range c.levels {
		if l.ID == levelID {
			return cloneLevel(l), true
		}
	}
	return GovernanceLevel{}, false
}

// CanUserVote reports whether the role carries voting rights. Unknown roles
// cannot vote.
func (c *Catalog) CanUserVote(roleID string) bool {
	role, ok := c.RoleByID(roleID)
	return ok && role.VotingRights
}

// RequiredApprovers returns the decision makers of the level with the given
// id, or an empty slice when the level is unknown.
func (c *Catalog) RequiredApprovers(levelID string) []string {
	level, ok := c.LevelByID(levelID)
	if !ok || level.DecisionMakers == nil {
		return []string{}
	}
	return level.DecisionMakers
}

// VotingRoles returns the ids of roles with voting rights in declaration order.
func (c *Catalog) VotingRoles() []string {
	ids := []string{}
	for _, r := range c.roles {
		if r.VotingRights {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog decoded from the embedded data.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(embeddedCatalog)
		if err != nil {
			panic(fmt.Sprintf("governance: embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// GetRoleByID looks up a role in the default catalog.
func GetRoleByID(roleID string) (GovernanceRole, bool) { return Default().RoleByID(roleID) }

// GetStepsForRole lists the default catalog's onboarding steps for a role.
func GetStepsForRole(roleID string) []OnboardingStep { return Default().StepsForRole(roleID) }

// GetGovernanceLevelByScope looks up a level by scope in the default catalog.
func GetGovernanceLevelByScope(scope Scope) (GovernanceLevel, bool) {
	return Default().LevelByScope(scope)
}

// CanUserVote checks voting rights against the default catalog.
func CanUserVote(roleID string) bool { return Default().CanUserVote(roleID) }

// GetRequiredApprovers lists a level's decision makers from the default catalog.
func GetRequiredApprovers(levelID string) []string { return Default().RequiredApprovers(levelID) }

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}

func cloneRole(r GovernanceRole) GovernanceRole {
	r.Responsibilities = cloneStrings(r.Responsibilities)
	r.Requirements = cloneStrings(r.Requirements)
	return r
}

func cloneLevel(l GovernanceLevel) GovernanceLevel {
	l.DecisionMakers = cloneStrings(l.DecisionMakers)
	if l.Quorum != nil {
		q := *l.Quorum
		l.Quorum = &q
	}
	return l
}

func cloneStep(s OnboardingStep) OnboardingStep {
	s.RequiredFor = cloneStrings(s.RequiredFor)
	return s
}

func cloneRoles(in []GovernanceRole) []GovernanceRole {
	out := make([]GovernanceRole, len(in))
	for i, r := range in {
		out[i] = cloneRole(r)
	}
	return out
}

func cloneLevels(in []GovernanceLevel) []GovernanceLevel {
	out := make([]GovernanceLevel, len(in))
	for i, l := range in {
		out[i] = cloneLevel(l)
	}
	return out
}

func cloneSteps(in []OnboardingStep) []OnboardingStep {
	out := make([]OnboardingStep, len(in))
	for i, s := range in {
		out[i] = cloneStep(s)
	}
	return out
}
