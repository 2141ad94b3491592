package wizard

import (
	"fmt"
	"sort"
)

// Priority orders recommended actions
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank of the priority, lower first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// ParsePriority validates a priority
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), nil
	}
	return "", fmt.Errorf("invalid priority %q", s)
}

func (p *Priority) UnmarshalText(text []byte) error {
	v, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ActionID identifies a recommended action
type ActionID string

const (
	ActionCompleteBranding ActionID = "complete-branding"
	ActionCreateSocialPlan ActionID = "create-social-plan"
	ActionDetailedBranding ActionID = "detailed-branding"
	ActionSelectService    ActionID = "select-service"
	ActionExploreResources ActionID = "explore-resources"
)

// ParseActionID reports whether s names a known action.
func ParseActionID(s string) (ActionID, bool) {
	for _, r := range actionRules {
		if string(r.item.ID) == s {
			return r.item.ID, true
		}
	}
	return "", false
}

// ActionItem is a recommended next task for the business
type ActionItem struct {
	ID          ActionID `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Link        string   `json:"link"`
	LinkText    string   `json:"linkText"`
	Completed   bool     `json:"completed"`
	Priority    Priority `json:"priority"`
}

type actionRule struct {
	item  ActionItem
	fires func(s *profileState) bool
}

// actionRules are evaluated in order and every rule that fires contributes
// one item.
var actionRules = []actionRule{
	{
		item: ActionItem{
			ID:          ActionCompleteBranding,
			Title:       "Complete your branding",
			Description: "Define your logo, colors and brand voice so your website and marketing stay consistent.",
			Link:        routeOf(StepBranding),
			LinkText:    "Continue to Branding",
			Priority:    PriorityHigh,
		},
		fires: func(s *profileState) bool {
			return s.isCompleted(StepBusinessInfo) && !s.isCompleted(StepBranding)
		},
	},
	{
		item: ActionItem{
			ID:          ActionCreateSocialPlan,
			Title:       "Create a social media plan",
			Description: "Decide which channels to use and how often to post.",
			Link:        "/tools/social-media-plan",
			LinkText:    "Start Planning",
			Priority:    PriorityMedium,
		},
		fires: func(s *profileState) bool {
			return !truthy(s.progress.SocialMediaPlan)
		},
	},
	{
		item: ActionItem{
			ID:          ActionDetailedBranding,
			Title:       "Complete the detailed brand questionnaire",
			Description: "Go deeper on audience, personality and positioning to refine your brand.",
			Link:        "/tools/brand-questionnaire",
			LinkText:    "Open Questionnaire",
			Priority:    PriorityMedium,
		},
		fires: func(s *profileState) bool {
			return s.isCompleted(StepBranding) && !truthy(s.progress.BrandingQuestionnaire)
		},
	},
	{
		item: ActionItem{
			ID:          ActionSelectService,
			Title:       "Choose a service tier",
			Description: "Pick the level of support that fits your business.",
			Link:        "/services",
			LinkText:    "Compare Services",
			Priority:    PriorityLow,
		},
		fires: func(s *profileState) bool {
			return !truthy(s.progress.ServiceTier)
		},
	},
	{
		item: ActionItem{
			ID:          ActionExploreResources,
			Title:       "Explore the resource library",
			Description: "Guides and templates to keep growing after launch.",
			Link:        "/resources",
			LinkText:    "Browse Resources",
			Priority:    PriorityLow,
		},
		fires: func(s *profileState) bool {
			return s.allStepsCompleted()
		},
	},
}

func routeOf(id StepID) string {
	step, _ := StepByID(id)
	return step.Route
}

// ComputeActions derives the recommended actions for a profile. Items the
// user marked done stay in the list flagged Completed. Incomplete items
// come first, then by priority; ties keep rule order. A nil profile has no
// actions.
func ComputeActions(p *BusinessProfile) []ActionItem {
	return computeActions(p, actionRules)
}

func computeActions(p *BusinessProfile, rules []actionRule) []ActionItem {
	items := []ActionItem{}
	if p == nil {
		return items
	}

	state := newProfileState(p)
	for _, rule := range rules {
		if !rule.fires(state) {
			continue
		}
		item := rule.item
		item.Completed = state.actionsDone[item.ID]
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Completed != items[j].Completed {
			return !items[i].Completed
		}
		return items[i].Priority.Rank() < items[j].Priority.Rank()
	})
	return items
}

// SetActionCompleted returns the completed-actions set with id added or
// removed. The input is not modified, order is preserved and duplicates
// collapse, so applying the same update twice is a no-op.
func SetActionCompleted(actions []string, id ActionID, completed bool) []string {
	out := make([]string, 0, len(actions)+1)
	seen := make(map[string]bool, len(actions))
	present := false
	for _, a := range actions {
		if seen[a] {
			continue
		}
		seen[a] = true
		if a == string(id) {
			present = true
			if !completed {
				continue
			}
		}
		out = append(out, a)
	}
	if completed && !present {
		out = append(out, string(id))
	}
	return out
}
