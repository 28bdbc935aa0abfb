package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-creation-engine/internal/clients/documents"
)

// Content is a small ruleset shaped like the real content repository: a
// few classes, races, backgrounds, features and spells using the legacy
// document shapes the engine has to tolerate.
var Content = map[string]map[string]any{
	"races/mock_race.json": {
		"id":   "mock_race",
		"name": "Mock race",
		"effects": []any{
			map[string]any{"type": "stat_modifier", "payload": map[string]any{"stat": "dexterity", "delta": float64(2)}},
		},
	},
	"races/elf.json": {
		"id":   "elf",
		"name": "Elfe",
		"mecanique": map[string]any{
			"effects": []any{
				map[string]any{"type": "stat_modifier", "payload": map[string]any{"stat": "dexterity", "delta": float64(2)}},
				map[string]any{"type": "proficiency_grant", "payload": map[string]any{"skill": "perception"}},
			},
			"links": map[string]any{"grants": []any{"darkvision"}},
		},
	},
	"features/darkvision.json": {
		"effects": map[string]any{
			"type":    "sense_grant",
			"payload": map[string]any{"sense_type": "darkvision", "range": float64(18), "units": "m"},
		},
	},
	"classes/ranger.json": {
		"id":   "ranger",
		"name": "Rôdeur",
		"effects": []any{
			map[string]any{"type": "proficiency_grant", "payload": map[string]any{"proficiencies": []any{"light_armor", "shields"}}},
			map[string]any{
				"id":   "ranger_skills",
				"type": "skill_choice",
				"payload": map[string]any{
					"choose": float64(1),
					"from":   []any{map[string]any{"id": "survie", "label": "Survie"}, "discretion"},
				},
			},
			map[string]any{
				"id":      "ranger_style",
				"type":    "choice",
				"payload": map[string]any{"category": "fighting_style", "from": []any{"archery", "defense"}},
			},
			map[string]any{
				"type":       "resource_pool",
				"payload":    map[string]any{"id": "favored_foe", "max_from": "proficiency_bonus"},
				"conditions": map[string]any{"kind": "level_gte", "value": float64(2)},
			},
		},
	},
	"features/archery.json": {
		"id": "archery",
		"effects": []any{
			map[string]any{"type": "ui_message", "payload": map[string]any{"title": "Archerie", "body": "+2 aux attaques à distance"}},
		},
	},
	"features/defense.json": {
		"id":      "defense",
		"effects": []any{map[string]any{"type": "grant_feature", "payload": map[string]any{"feature_id": "defense"}}},
	},
	"classes/wizard.json": {
		"id":   "wizard",
		"name": "Magicien",
		"effects": []any{
			map[string]any{
				"id":       "wizard_casting",
				"type":     "spellcasting_feature",
				"priority": float64(10),
				"payload":  map[string]any{"ability": "intelligence", "slots_table": `{"1": 2}`},
			},
			map[string]any{
				"id":   "wizard_cantrips",
				"type": "choice",
				"payload": map[string]any{
					"category": "spell",
					"choose":   float64(2),
					"auto_from": map[string]any{
						"collection": "spells",
						"filters":    map[string]any{"level": float64(0), "tags": []any{"wizard"}},
					},
				},
			},
		},
		"links": map[string]any{"grants": []any{"arcane_recovery"}},
	},
	"features/arcane_recovery.json": {
		"effects": []any{
			map[string]any{"type": "ability_create", "payload": map[string]any{"id": "arcane_recovery", "uses": float64(1), "recharge": "long_rest"}},
		},
	},
	"backgrounds/sage.json": {
		"id":          "sage",
		"name":        "Sage",
		"description": "Des années passées à étudier.",
		"effects": []any{
			map[string]any{"type": "proficiency_grant", "payload": map[string]any{"skills": []any{"arcanes", "histoire"}}},
			map[string]any{"type": "equipment_grant", "payload": map[string]any{"items": []any{"ink", "quill"}}},
		},
	},
	"spells/light.json": {
		"name": "Lumière", "level": float64(0), "tags": []any{"wizard", "cleric"},
	},
	"spells/mage_hand.json": {
		"name": "Main de mage", "level": float64(0), "tags": []any{"wizard"},
	},
	"spells/sacred_flame.json": {
		"name": "Flamme sacrée", "level": float64(0), "tags": []any{"cleric"},
	},
	"spells/magic_missile.json": {
		"name": "Projectile magique", "level": float64(1), "tags": []any{"wizard", "force"},
	},
	"spells/fireball.json": {
		"name": "Boule de feu", "level": float64(3), "tags": []any{"wizard", "fire"},
	},
}

// NewContentSource returns an in-memory source loaded with Content
func NewContentSource(t testing.TB) *documents.MemorySource {
	t.Helper()
	src := documents.NewMemorySource()
	for path, doc := range Content {
		require.NoError(t, src.PutJSON(path, doc))
	}
	return src
}

// NewContentStore returns a document store over NewContentSource
func NewContentStore(t testing.TB) *documents.Store {
	t.Helper()
	store, err := documents.NewStore(&documents.StoreConfig{Source: NewContentSource(t)})
	require.NoError(t, err)
	return store
}
