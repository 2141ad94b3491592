package wizard

import (
	"bytes"
	"encoding/json"

	"gorm.io/datatypes"
)

// ProfileID is the opaque identifier the profile store assigns. JSON
// strings are taken as is and numbers keep their literal text.
type ProfileID string

func (id *ProfileID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		*id = ProfileID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err == nil {
		*id = ProfileID(n.String())
		return nil
	}
	// anything else carries no usable identity
	*id = ""
	return nil
}

// BusinessProfile is the snapshot of a business as stored by the profile
// store. The engine only reads it.
type BusinessProfile struct {
	ID             ProfileID      `json:"id"`
	CompletedSteps []string       `json:"completedSteps"`
	WizardProgress WizardProgress `json:"wizardProgress"`
}

// UnmarshalJSON decodes a snapshot leniently: a malformed field degrades to
// its absent value instead of failing the whole profile, and non-string
// entries in completedSteps are skipped.
func (p *BusinessProfile) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = BusinessProfile{}
	if v, ok := raw["id"]; ok {
		if err := p.ID.UnmarshalJSON(v); err != nil {
			return err
		}
	}
	if v, ok := raw["completedSteps"]; ok {
		p.CompletedSteps = decodeStrings(v)
	}
	if v, ok := raw["wizardProgress"]; ok {
		if err := json.Unmarshal(v, &p.WizardProgress); err != nil {
			p.WizardProgress = WizardProgress{}
		}
	}
	return nil
}

// decodeStrings returns the string elements of a JSON array, or nil when
// value is not an array.
func decodeStrings(value json.RawMessage) []string {
	var elems []json.RawMessage
	if err := json.Unmarshal(value, &elems); err != nil || elems == nil {
		return nil
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		var s *string
		if err := json.Unmarshal(e, &s); err != nil || s == nil {
			continue
		}
		out = append(out, *s)
	}
	return out
}

// WizardProgress holds the wizard's free-form state. Keys the engine does
// not interpret are kept in Extra and written back unchanged. Extra also
// holds known keys whose value was malformed, null or empty, so a rewrite
// reproduces them.
type WizardProgress struct {
	CurrentStep           string
	CompletedActions      []string
	SocialMediaPlan       datatypes.JSON
	BrandingQuestionnaire datatypes.JSON
	ServiceTier           datatypes.JSON
	Extra                 map[string]datatypes.JSON
}

const (
	keyCurrentStep           = "currentStep"
	keyCompletedActions      = "completedActions"
	keySocialMediaPlan       = "socialMediaPlan"
	keyBrandingQuestionnaire = "brandingQuestionnaire"
	keyServiceTier           = "serviceTier"
)

// UnmarshalJSON decodes the progress object. Malformed, null and empty
// values for known keys are treated as absent and preserved in Extra.
func (p *WizardProgress) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = WizardProgress{}
	for key, value := range raw {
		switch key {
		case keyCurrentStep:
			var step *string
			if err := json.Unmarshal(value, &step); err != nil || step == nil || *step == "" {
				p.setExtra(key, value)
				continue
			}
			p.CurrentStep = *step
		case keyCompletedActions:
			var actions []string
			if err := json.Unmarshal(value, &actions); err != nil || actions == nil {
				p.setExtra(key, value)
				continue
			}
			p.CompletedActions = actions
		case keySocialMediaPlan:
			p.SocialMediaPlan = cloneBlob(value)
		case keyBrandingQuestionnaire:
			p.BrandingQuestionnaire = cloneBlob(value)
		case keyServiceTier:
			p.ServiceTier = cloneBlob(value)
		default:
			p.setExtra(key, value)
		}
	}
	return nil
}

// MarshalJSON encodes the progress object, including Extra keys. Known
// fields that are set win over Extra entries of the same key.
func (p WizardProgress) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(p.Extra)+5)
	for key, value := range p.Extra {
		if len(value) > 0 {
			out[key] = json.RawMessage(value)
		}
	}

	if p.CurrentStep != "" {
		b, err := json.Marshal(p.CurrentStep)
		if err != nil {
			return nil, err
		}
		out[keyCurrentStep] = b
	}
	if p.CompletedActions != nil {
		b, err := json.Marshal(p.CompletedActions)
		if err != nil {
			return nil, err
		}
		out[keyCompletedActions] = b
	}
	for key, blob := range map[string]datatypes.JSON{
		keySocialMediaPlan:       p.SocialMediaPlan,
		keyBrandingQuestionnaire: p.BrandingQuestionnaire,
		keyServiceTier:           p.ServiceTier,
	} {
		if len(blob) > 0 {
			out[key] = json.RawMessage(blob)
		}
	}
	return json.Marshal(out)
}

func (p *WizardProgress) setExtra(key string, value json.RawMessage) {
	if p.Extra == nil {
		p.Extra = make(map[string]datatypes.JSON)
	}
	p.Extra[key] = cloneBlob(value)
}

func cloneBlob(value []byte) datatypes.JSON {
	if value == nil {
		return nil
	}
	return datatypes.JSON(append([]byte{}, value...))
}

// truthy reports whether a blob counts as present: absent, null, false,
// 0 and "" do not; any object or array does, even when empty.
func truthy(blob datatypes.JSON) bool {
	trimmed := bytes.TrimSpace(blob)
	if len(trimmed) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return true
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

// profileState is the normalized view of a profile the rules evaluate.
type profileState struct {
	completed   map[StepID]bool
	currentStep StepID
	hasCurrent  bool
	progress    WizardProgress
	actionsDone map[ActionID]bool
}

func newProfileState(p *BusinessProfile) *profileState {
	s := &profileState{
		completed:   make(map[StepID]bool, len(wizardSteps)),
		progress:    p.WizardProgress,
		actionsDone: make(map[ActionID]bool, len(p.WizardProgress.CompletedActions)),
	}
	// entries outside the step vocabulary are ignored; duplicates collapse
	for _, raw := range p.CompletedSteps {
		if id, ok := ParseStepID(raw); ok {
			s.completed[id] = true
		}
	}
	if id, ok := ParseStepID(p.WizardProgress.CurrentStep); ok {
		s.currentStep = id
		s.hasCurrent = true
	}
	for _, a := range p.WizardProgress.CompletedActions {
		s.actionsDone[ActionID(a)] = true
	}
	return s
}

func (s *profileState) isCompleted(id StepID) bool { return s.completed[id] }

func (s *profileState) allStepsCompleted() bool { return len(s.completed) == len(wizardSteps) }
