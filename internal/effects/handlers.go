package effects

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/effect"
	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

const (
	statAll         = "all"
	defaultRecharge = "long_rest"
)

var statAbbreviations = map[string]string{
	"str": character.Strength,
	"dex": character.Dexterity,
	"con": character.Constitution,
	"int": character.Intelligence,
	"wis": character.Wisdom,
	"cha": character.Charisma,
}

func builtinHandlers() map[effect.Kind]Handler {
	return map[effect.Kind]Handler{
		effect.KindStatModifier:        applyStatModifier,
		effect.KindAbilityScoreSet:     applyAbilityScoreSet,
		effect.KindSenseGrant:          applySenseGrant,
		effect.KindProficiencyGrant:    applyProficiencyGrant,
		effect.KindEquipmentGrant:      applyEquipmentGrant,
		effect.KindGrantFeature:        applyGrantFeature,
		effect.KindSpellGrant:          applySpellGrant,
		effect.KindSpellcastingFeature: applySpellcastingFeature,
		effect.KindCastingModifier:     applyCastingModifier,
		effect.KindResourcePool:        applyResourcePool,
		effect.KindAbilityCreate:       applyAbilityCreate,
		effect.KindTempHPGrant:         applyTempHPGrant,
		effect.KindConditionApply:      applyConditionApply,
		effect.KindResistanceGrant:     applyResistanceGrant,
		effect.KindUIMessage:           applyUIMessage,
	}
}

func canonicalStat(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if full, ok := statAbbreviations[s]; ok {
		return full
	}
	return s
}

func payloadString(e *effect.Effect, keys ...string) string {
	s, _ := values.FirstString(e.Payload, keys...)
	return s
}

func payloadStrings(e *effect.Effect, keys ...string) []string {
	var out []string
	for _, k := range keys {
		out = append(out, values.Strings(e.Payload[k])...)
	}
	return out
}

// Scores missing from both final and base stats start at the default score
func applyStatModifier(p *character.Preview, e *effect.Effect, _ *Context) error {
	stat := canonicalStat(payloadString(e, "stat", "ability"))
	if stat == "" {
		return dnderr.InvalidArgument("stat_modifier requires a stat")
	}
	delta := values.Int(e.Payload["delta"], 0)

	if stat == statAll {
		for _, a := range character.Abilities {
			p.FinalStats[a] = p.AbilityScore(a) + delta
		}
		return nil
	}

	p.FinalStats[stat] = p.AbilityScore(stat) + delta
	return nil
}

func applyAbilityScoreSet(p *character.Preview, e *effect.Effect, _ *Context) error {
	stat := canonicalStat(payloadString(e, "stat", "ability"))
	if stat == "" {
		return dnderr.InvalidArgument("ability_score_set requires a stat")
	}
	raw, ok := values.First(e.Payload, "value", "score")
	if !ok {
		return dnderr.InvalidArgument("ability_score_set requires a value")
	}
	score, err := cast.ToIntE(raw)
	if err != nil {
		return dnderr.InvalidArgumentf("ability_score_set value %v is not a number", raw)
	}

	// "minimum" only raises the score, like a headband of intellect
	if values.Truthy(e.Payload["minimum"]) && p.AbilityScore(stat) >= score {
		return nil
	}
	p.FinalStats[stat] = score
	return nil
}

func applySenseGrant(p *character.Preview, e *effect.Effect, _ *Context) error {
	p.Senses = append(p.Senses, character.Sense{
		SenseType: payloadString(e, "sense_type", "sense"),
		Range:     values.Clone(e.Payload["range"]),
		Units:     payloadString(e, "units"),
		Source:    e.Source,
	})
	return nil
}

func applyProficiencyGrant(p *character.Preview, e *effect.Effect, _ *Context) error {
	for _, v := range payloadStrings(e, effect.ProficiencyFields...) {
		p.AddProficiency(v)
	}
	return nil
}

func applyEquipmentGrant(p *character.Preview, e *effect.Effect, _ *Context) error {
	for _, v := range payloadStrings(e, effect.EquipmentFields...) {
		p.AddEquipment(v)
	}
	return nil
}

// The id is recorded whether or not apply_immediately is set so later
// conditions can see it
func applyGrantFeature(p *character.Preview, e *effect.Effect, _ *Context) error {
	id := payloadString(e, effect.FeatureIDFields...)
	if id == "" {
		return dnderr.InvalidArgument("grant_feature requires a feature_id")
	}
	p.AddFeature(id)
	return nil
}

func applySpellGrant(p *character.Preview, e *effect.Effect, _ *Context) error {
	id := payloadString(e, effect.SpellIDFields...)
	if id == "" {
		return dnderr.InvalidArgument("spell_grant requires a spell id")
	}
	if values.Truthy(e.Payload["prepared"]) && !values.Truthy(e.Payload["known"]) {
		p.AddPreparedSpell(id)
		return nil
	}
	p.AddKnownSpell(id)
	return nil
}

func applySpellcastingFeature(p *character.Preview, e *effect.Effect, ctx *Context) error {
	sc := p.Spellcasting

	if ability := canonicalStat(payloadString(e, "ability", "spellcasting_ability")); ability != "" {
		sc.Ability = ability
	}

	level := ctx.Level(payloadString(e, "class"))
	for _, k := range effect.SlotsFields {
		mergeSlots(sc.Slots, e.Payload[k], level)
	}

	for _, id := range values.Strings(e.Payload["known"]) {
		p.AddKnownSpell(id)
	}

	mod := 0
	if sc.Ability != "" {
		mod = character.AbilityModifier(p.AbilityScore(sc.Ability))
	}
	if sc.Meta.SpellSaveDC == nil {
		dc := 10 + mod + values.Int(e.Payload["spell_save_dc_mod"], 0)
		sc.Meta.SpellSaveDC = &dc
	}
	if sc.Meta.SpellAttackMod == nil {
		atk := mod + character.ProficiencyBonus(level) + values.Int(e.Payload["spell_attack_mod"], 0)
		sc.Meta.SpellAttackMod = &atk
	}

	sc.Features = append(sc.Features, character.EffectRecord{
		ID:      e.ID,
		Payload: values.CloneMap(e.Payload),
	})
	return nil
}

// mergeSlots copies a level -> count table into slots. A table keyed by
// character level ({"1": {"1": 2}, "3": {"1": 4, "2": 2}}) contributes the
// row of the highest level not above the current one.
func mergeSlots(slots map[string]int, table any, level int) {
	t, ok := values.AsMap(table)
	if !ok || len(t) == 0 {
		return
	}

	nested := false
	for _, v := range t {
		if _, ok := values.AsMap(v); ok {
			nested = true
			break
		}
	}
	if nested {
		t = slotRow(t, level)
	}

	for k, v := range t {
		if n, err := cast.ToIntE(v); err == nil {
			slots[k] = n
		}
	}
}

func slotRow(table map[string]any, level int) map[string]any {
	keys := make([]int, 0, len(table))
	for k := range table {
		if n, err := strconv.Atoi(k); err == nil {
			keys = append(keys, n)
		}
	}
	sort.Ints(keys)

	var row map[string]any
	for _, k := range keys {
		if k > level {
			break
		}
		row, _ = values.AsMap(table[strconv.Itoa(k)])
	}
	return row
}

func applyCastingModifier(p *character.Preview, e *effect.Effect, _ *Context) error {
	sc := p.Spellcasting
	sc.Modifiers = append(sc.Modifiers, character.EffectRecord{
		ID:      e.ID,
		Payload: values.CloneMap(e.Payload),
	})

	if v, ok := e.Payload["spell_save_dc_delta"]; ok {
		sc.Meta.SpellSaveDC = addTo(sc.Meta.SpellSaveDC, values.Int(v, 0))
	}
	if v, ok := e.Payload["spell_attack_bonus_delta"]; ok {
		sc.Meta.SpellAttackMod = addTo(sc.Meta.SpellAttackMod, values.Int(v, 0))
	}
	return nil
}

func addTo(field *int, delta int) *int {
	n := delta
	if field != nil {
		n += *field
	}
	return &n
}

// Pools are replaced, not merged, when the same id is granted again
func applyResourcePool(p *character.Preview, e *effect.Effect, ctx *Context) error {
	id := payloadString(e, "id", "resource_id")
	if id == "" {
		return dnderr.InvalidArgument("resource_pool requires an id")
	}

	n := ctx.Count(p, firstValue(map[string]any(e.Payload), "max", "uses", "amount"), 0)
	if from, ok := e.Payload["max_from"]; ok {
		n = ctx.Count(p, from, n)
	}

	recharge := payloadString(e, "recharge")
	if recharge == "" {
		recharge = defaultRecharge
	}
	p.Resources[id] = character.Resource{Max: n, Current: n, Recharge: recharge}
	return nil
}

// The first grant of an ability id wins
func applyAbilityCreate(p *character.Preview, e *effect.Effect, ctx *Context) error {
	id := payloadString(e, "id", "ability_id")
	if id == "" {
		return dnderr.InvalidArgument("ability_create requires an id")
	}
	if _, exists := p.Abilities[id]; exists {
		return nil
	}

	def := values.CloneMap(e.Payload)
	if from, ok := e.Payload["uses_from"]; ok {
		def["uses_from"] = values.Clone(from)
		def["uses"] = ctx.Count(p, from, values.Int(e.Payload["uses"], 0))
	}
	if e.Source != "" {
		def["source"] = e.Source
	}
	p.Abilities[id] = def
	return nil
}

func applyTempHPGrant(p *character.Preview, e *effect.Effect, ctx *Context) error {
	n := ctx.Count(p, firstValue(map[string]any(e.Payload), "amount", "temp_hp", "value"), 0)
	p.TempHP = max(p.TempHP, n)
	return nil
}

func applyConditionApply(p *character.Preview, e *effect.Effect, _ *Context) error {
	p.Conditions = append(p.Conditions, character.Condition{
		ConditionID: payloadString(e, "condition_id", "condition", "id"),
		Duration:    values.Clone(e.Payload["duration"]),
		Source:      e.Source,
	})
	return nil
}

func applyResistanceGrant(p *character.Preview, e *effect.Effect, _ *Context) error {
	kind := payloadString(e, "resistance_type", "kind")
	if kind == "" {
		kind = "resistance"
	}
	p.Resistances = append(p.Resistances, character.Resistance{
		DamageType: payloadString(e, "damage_type", "damage", "type"),
		Type:       kind,
	})
	return nil
}

func applyUIMessage(p *character.Preview, e *effect.Effect, _ *Context) error {
	p.Messages = append(p.Messages, character.Message{
		Title: payloadString(e, "title"),
		Body:  payloadString(e, "body", "text", "message"),
	})
	return nil
}
