package feature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/feature"
)

func TestFromDocument(t *testing.T) {
	tests := []struct {
		name        string
		requested   string
		doc         map[string]any
		wantID      string
		wantEffects int
		wantGrants  []string
	}{
		{
			name:      "canonical shape",
			requested: "ranger",
			doc: map[string]any{
				"id":      "ranger",
				"effects": []any{map[string]any{"type": "ui_message"}},
				"links":   map[string]any{"grants": []any{"favored_enemy", "natural_explorer"}},
			},
			wantID:      "ranger",
			wantEffects: 1,
			wantGrants:  []string{"favored_enemy", "natural_explorer"},
		},
		{
			name:      "requested id wins over the document id",
			requested: "guerrier",
			doc: map[string]any{
				"id":      "fighter",
				"effects": []any{map[string]any{"type": "ui_message"}},
			},
			wantID:      "guerrier",
			wantEffects: 1,
			wantGrants:  []string{},
		},
		{
			name:        "document id when nothing was requested",
			doc:         map[string]any{"id": "fighter"},
			wantID:      "fighter",
			wantEffects: 0,
			wantGrants:  []string{},
		},
		{
			name:      "mecanique shape",
			requested: "dwarf",
			doc: map[string]any{
				"mecanique": map[string]any{
					"effects": []any{map[string]any{"type": "sense_grant"}, map[string]any{"type": "stat_modifier"}},
					"links":   map[string]any{"grant_feature_ids": []any{"stonecunning"}},
				},
			},
			wantID:      "dwarf",
			wantEffects: 2,
			wantGrants:  []string{"stonecunning"},
		},
		{
			name:      "top-level grants array",
			requested: "acolyte",
			doc: map[string]any{
				"features": []any{map[string]any{"type": "proficiency_grant"}},
				"grants":   []any{"shelter_of_the_faithful"},
			},
			wantID:      "acolyte",
			wantEffects: 1,
			wantGrants:  []string{"shelter_of_the_faithful"},
		},
		{
			name:        "nested payload effects and single grant",
			requested:   "x",
			doc:         map[string]any{"payload": map[string]any{"effects": map[string]any{"type": "ui_message"}}, "links": map[string]any{"features": "y"}},
			wantID:      "x",
			wantEffects: 1,
			wantGrants:  []string{"y"},
		},
		{
			name:        "nothing",
			requested:   "empty",
			doc:         map[string]any{},
			wantID:      "empty",
			wantEffects: 0,
			wantGrants:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := feature.FromDocument(tt.requested, tt.doc)
			require.NotNil(t, f)

			assert.Equal(t, tt.wantID, f.ID)
			assert.Len(t, f.Effects, tt.wantEffects)
			assert.Equal(t, tt.wantGrants, f.Grants)
			assert.Equal(t, len(tt.wantGrants) > 0, f.HasGrants())
			assert.Equal(t, tt.doc, f.Raw)
		})
	}
}

func TestFromDocument_Nil(t *testing.T) {
	assert.Nil(t, feature.FromDocument("x", nil))
}
