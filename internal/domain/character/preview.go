package character

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cast"
)

// Stats maps a lowercase ability name to its score. Decoding is lenient:
// numeric strings are accepted and values that cannot be read as numbers are
// dropped.
type Stats map[string]int

func (s *Stats) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Stats, len(raw))
	for k, v := range raw {
		n, err := cast.ToFloat64E(v)
		if err != nil {
			continue
		}
		out[strings.ToLower(k)] = int(n)
	}
	*s = out
	return nil
}

// Clone copies the stats; nil yields an empty map
func (s Stats) Clone() Stats {
	out := make(Stats, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// EffectRecord keeps the id and payload of an effect that was folded into a
// list (spellcasting features and modifiers)
type EffectRecord struct {
	ID      string         `json:"id,omitempty"`
	Payload map[string]any `json:"payload"`
}

type SpellcastingMeta struct {
	SpellSaveDC    *int `json:"spell_save_dc,omitempty"`
	SpellAttackMod *int `json:"spell_attack_mod,omitempty"`
}

type Spellcasting struct {
	Ability   string           `json:"ability,omitempty"`
	Slots     map[string]int   `json:"slots"`
	Known     []string         `json:"known"`
	Prepared  []string         `json:"prepared"`
	Meta      SpellcastingMeta `json:"meta"`
	Features  []EffectRecord   `json:"features"`
	Modifiers []EffectRecord   `json:"modifiers"`
}

type Sense struct {
	SenseType string `json:"sense_type"`
	Range     any    `json:"range,omitempty"`
	Units     string `json:"units,omitempty"`
	Source    string `json:"source,omitempty"`
}

type Resource struct {
	Max      int    `json:"max"`
	Current  int    `json:"current"`
	Recharge string `json:"recharge"`
}

type Condition struct {
	ConditionID string `json:"condition_id"`
	Duration    any    `json:"duration,omitempty"`
	Source      string `json:"source,omitempty"`
}

type Resistance struct {
	DamageType string `json:"damage_type"`
	Type       string `json:"type"`
}

type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// UnhandledEffect records an effect the engine could not apply. Error is
// empty when the effect kind is simply unknown.
type UnhandledEffect struct {
	Error  string `json:"error,omitempty"`
	Effect any    `json:"effect"`
}

// AppliedEffect is one entry of the audit trail
type AppliedEffect struct {
	ID      string         `json:"id,omitempty"`
	Source  string         `json:"source,omitempty"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Derived holds values computed from the final sheet
type Derived struct {
	Modifiers        map[string]int `json:"modifiers"`
	ProficiencyBonus int            `json:"proficiency_bonus"`
}

// Preview is the in-progress character sheet built by one preview call
type Preview struct {
	BaseStats     Stats                     `json:"base_stats_before_race"`
	FinalStats    Stats                     `json:"final_stats"`
	Niveau        int                       `json:"niveau"`
	Features      []string                  `json:"features"`
	Proficiencies []string                  `json:"proficiencies"`
	Equipment     []string                  `json:"equipment"`
	Spellcasting  *Spellcasting             `json:"spellcasting"`
	Senses        []Sense                   `json:"senses"`
	Resources     map[string]Resource       `json:"resources"`
	Abilities     map[string]map[string]any `json:"abilities"`
	Conditions    []Condition               `json:"conditions"`
	Resistances   []Resistance              `json:"resistances"`
	TempHP        int                       `json:"temp_hp"`
	Messages      []Message                 `json:"messages"`
	Unhandled     []UnhandledEffect         `json:"unhandled_effects"`
	Applied       []AppliedEffect           `json:"applied"`
	Derived       *Derived                  `json:"derived,omitempty"`
}

// NewPreview seeds a fresh draft from the base character. Final stats start
// as a copy of the base stats.
func NewPreview(base *BaseCharacter, level int) *Preview {
	p := &Preview{Niveau: level}
	if base != nil {
		p.BaseStats = base.BaseStats.Clone()
	}
	p.Ensure()
	p.FinalStats = p.BaseStats.Clone()
	return p
}

// Ensure initializes every compound field that is still nil. Safe to call
// repeatedly.
func (p *Preview) Ensure() {
	if p.BaseStats == nil {
		p.BaseStats = Stats{}
	}
	if p.FinalStats == nil {
		p.FinalStats = Stats{}
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.Proficiencies == nil {
		p.Proficiencies = []string{}
	}
	if p.Equipment == nil {
		p.Equipment = []string{}
	}
	if p.Spellcasting == nil {
		p.Spellcasting = &Spellcasting{}
	}
	sc := p.Spellcasting
	if sc.Slots == nil {
		sc.Slots = map[string]int{}
	}
	if sc.Known == nil {
		sc.Known = []string{}
	}
	if sc.Prepared == nil {
		sc.Prepared = []string{}
	}
	if sc.Features == nil {
		sc.Features = []EffectRecord{}
	}
	if sc.Modifiers == nil {
		sc.Modifiers = []EffectRecord{}
	}
	if p.Senses == nil {
		p.Senses = []Sense{}
	}
	if p.Resources == nil {
		p.Resources = map[string]Resource{}
	}
	if p.Abilities == nil {
		p.Abilities = map[string]map[string]any{}
	}
	if p.Conditions == nil {
		p.Conditions = []Condition{}
	}
	if p.Resistances == nil {
		p.Resistances = []Resistance{}
	}
	if p.Messages == nil {
		p.Messages = []Message{}
	}
	if p.Unhandled == nil {
		p.Unhandled = []UnhandledEffect{}
	}
	if p.Applied == nil {
		p.Applied = []AppliedEffect{}
	}
}

// AbilityScore reads the current score: final stats, then base stats, then 10
func (p *Preview) AbilityScore(ability string) int {
	ability = strings.ToLower(ability)
	if v, ok := p.FinalStats[ability]; ok {
		return v
	}
	if v, ok := p.BaseStats[ability]; ok {
		return v
	}
	return DefaultAbilityScore
}

// AddFeature appends a feature id once
func (p *Preview) AddFeature(id string) bool {
	return appendUnique(&p.Features, id)
}

// HasFeature reports whether the feature id was granted
func (p *Preview) HasFeature(id string) bool {
	return contains(p.Features, id)
}

// AddProficiency adds to the proficiency set
func (p *Preview) AddProficiency(v string) bool {
	return appendUnique(&p.Proficiencies, v)
}

// HasProficiency reports membership in the proficiency set
func (p *Preview) HasProficiency(v string) bool {
	return contains(p.Proficiencies, v)
}

// AddEquipment appends an item id once
func (p *Preview) AddEquipment(v string) bool {
	return appendUnique(&p.Equipment, v)
}

func (p *Preview) AddKnownSpell(id string) bool {
	p.Ensure()
	return appendUnique(&p.Spellcasting.Known, id)
}

func (p *Preview) AddPreparedSpell(id string) bool {
	p.Ensure()
	return appendUnique(&p.Spellcasting.Prepared, id)
}

// Derive fills the derived block from the current sheet
func (p *Preview) Derive(level int) {
	d := &Derived{
		Modifiers:        make(map[string]int, len(Abilities)),
		ProficiencyBonus: ProficiencyBonus(level),
	}
	for _, a := range Abilities {
		d.Modifiers[a] = AbilityModifier(p.AbilityScore(a))
	}
	p.Derived = d
}

func appendUnique(list *[]string, v string) bool {
	if v == "" || contains(*list, v) {
		return false
	}
	*list = append(*list, v)
	return true
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
