package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var allSteps = []string{"business-info", "branding", "website", "marketing", "launch"}

func actionIDs(items []ActionItem) []ActionID {
	ids := make([]ActionID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func TestComputeActionsNilProfile(t *testing.T) {
	items := ComputeActions(nil)

	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestComputeActionsAfterBusinessInfo(t *testing.T) {
	items := ComputeActions(profileWith([]string{"business-info"}, WizardProgress{}))

	assert.Equal(t, []ActionID{ActionCompleteBranding, ActionCreateSocialPlan, ActionSelectService}, actionIDs(items))
	assert.Equal(t, PriorityHigh, items[0].Priority)
	assert.Equal(t, PriorityMedium, items[1].Priority)
	assert.Equal(t, PriorityLow, items[2].Priority)
	for _, item := range items {
		assert.False(t, item.Completed, item.ID)
	}
	assert.Equal(t, "/wizard/branding", items[0].Link)
}

func TestComputeActionsAllDone(t *testing.T) {
	p := profileWith(allSteps, WizardProgress{
		ServiceTier:           datatypes.JSON(`"pro"`),
		SocialMediaPlan:       datatypes.JSON(`{"channels":["instagram"]}`),
		BrandingQuestionnaire: datatypes.JSON(`{"personality":"warm"}`),
	})

	items := ComputeActions(p)

	require.Len(t, items, 1)
	assert.Equal(t, ActionExploreResources, items[0].ID)
	assert.Equal(t, PriorityLow, items[0].Priority)
}

func TestComputeActionsEmptyProfile(t *testing.T) {
	items := ComputeActions(&BusinessProfile{})

	assert.Equal(t, []ActionID{ActionCreateSocialPlan, ActionSelectService}, actionIDs(items))
}

func TestComputeActionsDetailedBrandingRule(t *testing.T) {
	items := ComputeActions(profileWith([]string{"business-info", "branding"}, WizardProgress{}))
	assert.Equal(t, []ActionID{ActionCreateSocialPlan, ActionDetailedBranding, ActionSelectService}, actionIDs(items))

	items = ComputeActions(profileWith([]string{"branding"}, WizardProgress{
		BrandingQuestionnaire: datatypes.JSON(`{}`),
	}))
	assert.NotContains(t, actionIDs(items), ActionDetailedBranding)
}

func TestComputeActionsFalsyBlobs(t *testing.T) {
	for _, blob := range []string{``, `null`, `false`, `0`, `""`, ` null `} {
		items := ComputeActions(profileWith(nil, WizardProgress{ServiceTier: datatypes.JSON(blob)}))
		assert.Contains(t, actionIDs(items), ActionSelectService, "blob %q", blob)
	}
	for _, blob := range []string{`"basic"`, `1`, `true`, `{}`, `[]`} {
		items := ComputeActions(profileWith(nil, WizardProgress{ServiceTier: datatypes.JSON(blob)}))
		assert.NotContains(t, actionIDs(items), ActionSelectService, "blob %q", blob)
	}
}

func TestComputeActionsCompletionOverride(t *testing.T) {
	p := profileWith([]string{"business-info"}, WizardProgress{
		CompletedActions: []string{"complete-branding", "not-an-action"},
	})

	items := ComputeActions(p)

	// the overridden item is kept but moves behind the incomplete ones
	assert.Equal(t, []ActionID{ActionCreateSocialPlan, ActionSelectService, ActionCompleteBranding}, actionIDs(items))
	assert.True(t, items[2].Completed)
	assert.False(t, items[0].Completed)
}

func TestComputeActionsCompletedItemsSortedByPriority(t *testing.T) {
	p := profileWith([]string{"business-info"}, WizardProgress{
		CompletedActions: []string{"select-service", "complete-branding", "create-social-plan"},
	})

	items := ComputeActions(p)

	assert.Equal(t, []ActionID{ActionCompleteBranding, ActionCreateSocialPlan, ActionSelectService}, actionIDs(items))
	for _, item := range items {
		assert.True(t, item.Completed)
	}
}

func TestComputeActionsIsDeterministic(t *testing.T) {
	p := profileWith([]string{"business-info", "branding"}, WizardProgress{CompletedActions: []string{"select-service"}})

	assert.Equal(t, ComputeActions(p), ComputeActions(p))
}

func TestComputeActionsStableForEqualKeys(t *testing.T) {
	always := func(*profileState) bool { return true }
	rules := []actionRule{
		{item: ActionItem{ID: "low-first", Priority: PriorityLow}, fires: always},
		{item: ActionItem{ID: "high-first", Priority: PriorityHigh}, fires: always},
		{item: ActionItem{ID: "low-second", Priority: PriorityLow}, fires: always},
		{item: ActionItem{ID: "high-second", Priority: PriorityHigh}, fires: always},
		{item: ActionItem{ID: "never", Priority: PriorityHigh}, fires: func(*profileState) bool { return false }},
		{item: ActionItem{ID: "high-done", Priority: PriorityHigh}, fires: always},
		{item: ActionItem{ID: "high-third", Priority: PriorityHigh}, fires: always},
	}
	p := profileWith(nil, WizardProgress{CompletedActions: []string{"high-done"}})

	items := computeActions(p, rules)

	assert.Equal(t, []ActionID{"high-first", "high-second", "high-third", "low-first", "low-second", "high-done"}, actionIDs(items))
}

func TestComputeActionsDoesNotMutateRuleTable(t *testing.T) {
	p := profileWith([]string{"business-info"}, WizardProgress{CompletedActions: []string{"complete-branding"}})
	_ = ComputeActions(p)

	assert.False(t, actionRules[0].item.Completed)
}

func TestSetActionCompletedIdempotent(t *testing.T) {
	once := SetActionCompleted(nil, ActionSelectService, true)
	twice := SetActionCompleted(once, ActionSelectService, true)

	assert.Equal(t, []string{"select-service"}, once)
	assert.Equal(t, once, twice)
}

func TestSetActionCompletedRemove(t *testing.T) {
	actions := []string{"create-social-plan", "select-service"}

	removed := SetActionCompleted(actions, ActionSelectService, false)
	assert.Equal(t, []string{"create-social-plan"}, removed)
	assert.Equal(t, []string{"create-social-plan", "select-service"}, actions)

	noop := SetActionCompleted(removed, ActionExploreResources, false)
	assert.Equal(t, removed, noop)
}

func TestSetActionCompletedCollapsesDuplicates(t *testing.T) {
	actions := []string{"select-service", "create-social-plan", "select-service"}

	assert.Equal(t, []string{"select-service", "create-social-plan"}, SetActionCompleted(actions, ActionSelectService, true))
	assert.Equal(t, []string{"create-social-plan"}, SetActionCompleted(actions, ActionSelectService, false))
}

func TestParseActionID(t *testing.T) {
	id, ok := ParseActionID("detailed-branding")
	assert.True(t, ok)
	assert.Equal(t, ActionDetailedBranding, id)

	_, ok = ParseActionID("launch-rocket")
	assert.False(t, ok)
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Less(t, PriorityLow.Rank(), Priority("urgent").Rank())

	_, err := ParsePriority("urgent")
	assert.Error(t, err)
}
