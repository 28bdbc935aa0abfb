package effect

import (
	"strings"

	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

// Kind names an effect family. Unknown kinds are preserved as supplied.
type Kind string

const (
	KindStatModifier        Kind = "stat_modifier"
	KindAbilityScoreSet     Kind = "ability_score_set"
	KindProficiencyGrant    Kind = "proficiency_grant"
	KindEquipmentGrant      Kind = "equipment_grant"
	KindSpellGrant          Kind = "spell_grant"
	KindSpellcastingFeature Kind = "spellcasting_feature"
	KindCastingModifier     Kind = "casting_modifier"
	KindSenseGrant          Kind = "sense_grant"
	KindGrantFeature        Kind = "grant_feature"
	KindResourcePool        Kind = "resource_pool"
	KindAbilityCreate       Kind = "ability_create"
	KindTempHPGrant         Kind = "temp_hp_grant"
	KindConditionApply      Kind = "condition_apply"
	KindResistanceGrant     Kind = "resistance_grant"
	KindUIMessage           Kind = "ui_message"
	KindChoice              Kind = "choice"
)

// KindOf folds a type string for case-insensitive dispatch
func KindOf(t string) Kind {
	return Kind(strings.ToLower(strings.TrimSpace(t)))
}

// Payload holds the type-specific fields of an effect
type Payload map[string]any

// Effect is the canonical form of one mutation instruction
type Effect struct {
	ID         string         `json:"id,omitempty"`
	Type       string         `json:"type,omitempty"`
	Source     string         `json:"source,omitempty"`
	Priority   float64        `json:"priority"`
	Payload    Payload        `json:"payload"`
	Conditions any            `json:"conditions,omitempty"`
	Raw        map[string]any `json:"raw,omitempty"`

	// Position is the effect's index in the list it was normalized from.
	Position int `json:"-"`
}

// Kind returns the folded effect type
func (e *Effect) Kind() Kind {
	return KindOf(e.Type)
}

// ApplyImmediately reports whether a choice-looking effect must skip the
// pending-choice path
func (e *Effect) ApplyImmediately() bool {
	v, ok := e.Payload["apply_immediately"]
	return ok && values.Truthy(v)
}

// ToMap renders the effect back into a decoded-JSON object
func (e *Effect) ToMap() map[string]any {
	out := map[string]any{
		"priority": e.Priority,
		"payload":  values.CloneMap(e.Payload),
	}
	if e.Payload == nil {
		out["payload"] = map[string]any{}
	}
	if e.ID != "" {
		out["id"] = e.ID
	}
	if e.Type != "" {
		out["type"] = e.Type
	}
	if e.Source != "" {
		out["source"] = e.Source
	}
	if e.Conditions != nil {
		out["conditions"] = values.Clone(e.Conditions)
	}
	if e.Raw != nil {
		out["raw"] = values.CloneMap(e.Raw)
	}
	return out
}

// Clone deep-copies the effect
func (e *Effect) Clone() *Effect {
	if e == nil {
		return nil
	}
	return &Effect{
		ID:         e.ID,
		Type:       e.Type,
		Source:     e.Source,
		Priority:   e.Priority,
		Payload:    Payload(values.CloneMap(e.Payload)),
		Conditions: values.Clone(e.Conditions),
		Raw:        values.CloneMap(e.Raw),
		Position:   e.Position,
	}
}

// OptionLabel pairs an option identifier with its display label
type OptionLabel struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// AutoFrom describes an option set computed by querying a collection
type AutoFrom struct {
	Collection  string         `json:"collection"`
	Filters     map[string]any `json:"filters,omitempty"`
	Limit       int            `json:"limit,omitempty"`
	IDFields    []string       `json:"id_fields,omitempty"`
	LabelFields []string       `json:"label_fields,omitempty"`
}

// ChoiceDescriptor is one pending decision surfaced to the player
type ChoiceDescriptor struct {
	UIID       string        `json:"ui_id"`
	FeatureID  string        `json:"featureId,omitempty"`
	Choose     int           `json:"choose"`
	From       []string      `json:"from"`
	FromLabels []OptionLabel `json:"from_labels"`
	Type       string        `json:"type,omitempty"`
	Category   string        `json:"category,omitempty"`
	AutoFrom   *AutoFrom     `json:"auto_from,omitempty"`
	Raw        *Effect       `json:"raw"`
}

// Label returns the display label for an option id, falling back to the id
func (d *ChoiceDescriptor) Label(id string) string {
	for _, l := range d.FromLabels {
		if l.ID == id {
			return l.Label
		}
	}
	return id
}
