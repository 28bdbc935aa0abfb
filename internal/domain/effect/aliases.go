package effect

import (
	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

// FieldAlias maps legacy field names onto one canonical payload field. The
// first alias present wins.
type FieldAlias struct {
	Canonical string
	Aliases   []string
}

// familyAliases lists, per effect family, the payload fields normalized at
// load time.
var familyAliases = map[Kind][]FieldAlias{
	KindGrantFeature: {
		{Canonical: "feature_id", Aliases: []string{"feature_id", "featureId", "id", "feature"}},
	},
	KindSpellGrant: {
		{Canonical: "spell_id", Aliases: []string{"spell_id", "spellId", "id", "spell"}},
	},
}

// Field alias lists read by the application engine. Each accepts a scalar or
// an array under any of its names.
var (
	ProficiencyFields = []string{"proficiency", "proficiencies", "skill", "skills"}
	EquipmentFields   = []string{"equipment", "item", "items", "item_id"}
	SpellIDFields     = []string{"spell_id", "spell", "id", "spellId"}
	FeatureIDFields   = []string{"feature_id", "featureId", "id", "feature"}
	SlotsFields       = []string{"slots_table", "slots"}
)

// Choice option sources, in merge order. Each entry is read from either the
// payload or the raw document.
type optionSource struct {
	fromRaw bool
	path    string
}

var choiceOptionSources = []optionSource{
	{fromRaw: false, path: "from"},
	{fromRaw: true, path: "payload.from"},
	{fromRaw: true, path: "from"},
	{fromRaw: false, path: "options"},
	{fromRaw: false, path: "choices"},
	{fromRaw: true, path: "mecanique"},
	{fromRaw: true, path: "mecanique.from"},
	{fromRaw: true, path: "choices"},
	{fromRaw: true, path: "options"},
	{fromRaw: true, path: "payload.options"},
}

// Keys of an option object that configure the choice rather than list options
var optionControlKeys = map[string]struct{}{
	"choose":   {},
	"count":    {},
	"category": {},
	"type":     {},
}

// Keys used to pull an (id, label) pair out of an option object
var (
	optionIDKeys    = []string{"id", "value", "key", "name", "code"}
	optionLabelKeys = []string{"label", "name", "title", "text"}
)

// RegisterAlias adds or extends an alias rule for an effect family
func RegisterAlias(kind Kind, alias FieldAlias) {
	familyAliases[kind] = append(familyAliases[kind], alias)
}

func applyAliases(kind Kind, payload Payload) {
	for _, rule := range familyAliases[kind] {
		if v, ok := values.First(payload, rule.Aliases...); ok {
			payload[rule.Canonical] = v
		}
	}
}
