// Package dashboard composes the wizard engine into the view a host renders
// and handles the "mark action complete" round trip through the host's
// profile store.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"digital-presence/platform-backend/internal/wizard"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUnknownAction   = errors.New("unknown action")
)

// ProfileStore is implemented by the host application. GetProfile returns
// nil, nil when the profile does not exist.
type ProfileStore interface {
	GetProfile(ctx context.Context, id wizard.ProfileID) (*wizard.BusinessProfile, error)
	UpdateCompletedActions(ctx context.Context, id wizard.ProfileID, actions []string) error
}

// View is everything the dashboard renders for one profile
type View struct {
	ProfileID wizard.ProfileID    `json:"profileId"`
	Progress  wizard.Progress     `json:"progress"`
	Actions   []wizard.ActionItem `json:"actions"`
	NextStep  *wizard.WizardStep  `json:"nextStep,omitempty"`
}

// BuildView computes the dashboard for a profile snapshot. A nil profile
// gives the empty baseline.
func BuildView(p *wizard.BusinessProfile) View {
	view := View{
		Progress: wizard.ComputeProgress(p),
		Actions:  wizard.ComputeActions(p),
	}
	if p != nil {
		view.ProfileID = p.ID
	}
	if next, ok := view.Progress.NextStep(); ok {
		view.NextStep = &next
	}
	return view
}

// Service provides dashboard operations on top of a profile store
type Service struct {
	store  ProfileStore
	logger *zap.Logger
}

// NewService creates a new dashboard service
func NewService(store ProfileStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Dashboard fetches the current profile and computes its view.
func (s *Service) Dashboard(ctx context.Context, profileID wizard.ProfileID) (*View, error) {
	profile, err := s.fetch(ctx, profileID)
	if err != nil {
		return nil, err
	}

	view := BuildView(profile)
	s.logger.Debug("Dashboard computed",
		zap.String("profile_id", string(profileID)),
		zap.Int("percent", view.Progress.Percent),
		zap.Int("actions", len(view.Actions)))
	return &view, nil
}

// SetActionCompleted marks an action done or not done and returns the
// recomputed view from the profile as confirmed by the store. The store is
// only written when the completed set actually changes.
func (s *Service) SetActionCompleted(ctx context.Context, profileID wizard.ProfileID, actionID string, completed bool) (*View, error) {
	id, ok := wizard.ParseActionID(actionID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, actionID)
	}

	profile, err := s.fetch(ctx, profileID)
	if err != nil {
		return nil, err
	}

	current := profile.WizardProgress.CompletedActions
	updated := wizard.SetActionCompleted(current, id, completed)
	if sameSet(current, updated) {
		s.logger.Debug("Completed actions unchanged",
			zap.String("profile_id", string(profileID)),
			zap.String("action_id", actionID),
			zap.Bool("completed", completed))
		view := BuildView(profile)
		return &view, nil
	}

	if err := s.store.UpdateCompletedActions(ctx, profileID, updated); err != nil {
		s.logger.Error("Failed to update completed actions",
			zap.String("profile_id", string(profileID)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to update completed actions: %w", err)
	}

	s.logger.Info("Action completion updated",
		zap.String("profile_id", string(profileID)),
		zap.String("action_id", actionID),
		zap.Bool("completed", completed))

	// recompute from what the store confirms, not from the local copy
	return s.Dashboard(ctx, profileID)
}

// Transitions reports step status changes between two snapshots and warns
// about completed steps that were reopened.
func (s *Service) Transitions(prev, next *wizard.BusinessProfile) []wizard.StepTransition {
	transitions := wizard.StepTransitions(prev, next)
	for _, t := range transitions {
		if t.Regression() {
			s.logger.Warn("Completed wizard step reopened",
				zap.String("step", string(t.Step)),
				zap.String("to", string(t.To)))
		}
	}
	return transitions
}

func (s *Service) fetch(ctx context.Context, profileID wizard.ProfileID) (*wizard.BusinessProfile, error) {
	profile, err := s.store.GetProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, profileID)
	}
	return profile, nil
}

func sameSet(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	other := make(map[string]bool, len(b))
	for _, v := range b {
		if !set[v] {
			return false
		}
		other[v] = true
	}
	return len(set) == len(other)
}
