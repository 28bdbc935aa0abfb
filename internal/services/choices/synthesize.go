package choices

import (
	"strings"

	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/effect"
	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

// grantRule says how an answered choice of a category becomes an effect
type grantRule struct {
	kind  effect.Kind
	field string

	// perID emits one effect per chosen id instead of one for all of them
	perID bool
}

// Categories answered straight into the sheet. Anything else is consumed and
// its chosen ids seed the feature graph.
var categoryRules = map[string]grantRule{
	"skill":         {kind: effect.KindProficiencyGrant, field: "proficiency"},
	"skills":        {kind: effect.KindProficiencyGrant, field: "proficiency"},
	"proficiency":   {kind: effect.KindProficiencyGrant, field: "proficiency"},
	"proficiencies": {kind: effect.KindProficiencyGrant, field: "proficiency"},
	"tool":          {kind: effect.KindProficiencyGrant, field: "proficiency"},
	"tools":         {kind: effect.KindProficiencyGrant, field: "proficiency"},
	"language":      {kind: effect.KindProficiencyGrant, field: "proficiency"},
	"languages":     {kind: effect.KindProficiencyGrant, field: "proficiency"},
	"equipment":     {kind: effect.KindEquipmentGrant, field: "equipment"},
	"item":          {kind: effect.KindEquipmentGrant, field: "equipment"},
	"items":         {kind: effect.KindEquipmentGrant, field: "equipment"},
	"spell":         {kind: effect.KindSpellGrant, field: "spell_id", perID: true},
	"spells":        {kind: effect.KindSpellGrant, field: "spell_id", perID: true},
	"cantrip":       {kind: effect.KindSpellGrant, field: "spell_id", perID: true},
	"cantrips":      {kind: effect.KindSpellGrant, field: "spell_id", perID: true},
}

// GrantKind returns the effect kind an answered choice of this category
// becomes, if any
func GrantKind(category string) (effect.Kind, bool) {
	rule, ok := categoryRules[strings.ToLower(category)]
	return rule.kind, ok
}

// Synthesize builds the immediate effects for an answered choice. The new
// effects keep the source, priority and conditions of the choice.
func Synthesize(d *effect.ChoiceDescriptor, origin *effect.Effect, answer []string) []*effect.Effect {
	if d == nil || len(answer) == 0 {
		return nil
	}
	rule, ok := categoryRules[strings.ToLower(d.Category)]
	if !ok {
		return nil
	}

	build := func(id string, value any) *effect.Effect {
		e := &effect.Effect{
			ID:      id,
			Type:    string(rule.kind),
			Source:  d.FeatureID,
			Payload: effect.Payload{rule.field: value, "choice_ui_id": d.UIID},
		}
		if origin != nil {
			e.Priority = origin.Priority
			e.Conditions = values.Clone(origin.Conditions)
			if origin.Source != "" {
				e.Source = origin.Source
			}
			if rule.kind == effect.KindSpellGrant {
				for _, k := range []string{"prepared", "known"} {
					if v, ok := origin.Payload[k]; ok {
						e.Payload[k] = v
					}
				}
			}
		}
		return e
	}

	if rule.perID {
		out := make([]*effect.Effect, 0, len(answer))
		for _, id := range answer {
			out = append(out, build(d.UIID+":"+id, id))
		}
		return out
	}

	var value any = answer[0]
	if len(answer) > 1 {
		list := make([]any, len(answer))
		for i, id := range answer {
			list[i] = id
		}
		value = list
	}
	return []*effect.Effect{build(d.UIID, value)}
}
