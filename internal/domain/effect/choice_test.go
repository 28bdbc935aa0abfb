package effect_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/effect"
)

func TestExtractChoiceDescriptor_NotAChoice(t *testing.T) {
	assert.Nil(t, effect.ExtractChoiceDescriptor(nil))

	e := effect.Normalize(map[string]any{"type": "stat_modifier", "payload": map[string]any{"stat": "dexterity"}})
	assert.Nil(t, effect.ExtractChoiceDescriptor(e))
	assert.False(t, effect.IsChoice(e))
}

func TestExtractChoiceDescriptor_FromNormalizedEffect(t *testing.T) {
	e := effect.Normalize(map[string]any{
		"id":   "ranger_skills",
		"type": "skill_choice",
		"payload": map[string]any{
			"choose": float64(2),
			"from": []any{
				map[string]any{"id": "survie", "label": "Survie"},
				"perception",
			},
		},
	})
	require.NotNil(t, e)

	d := effect.ExtractChoiceDescriptor(e)
	require.NotNil(t, d)

	assert.Equal(t, "ranger_skills", d.UIID)
	assert.Equal(t, "ranger_skills", d.FeatureID)
	assert.Equal(t, 2, d.Choose)
	assert.Equal(t, []string{"survie", "perception"}, d.From)
	assert.Equal(t, []effect.OptionLabel{
		{ID: "survie", Label: "Survie"},
		{ID: "perception", Label: "perception"},
	}, d.FromLabels)
	assert.Equal(t, "skill", d.Category)
	assert.Equal(t, "choice", d.Type)
	assert.Nil(t, d.AutoFrom)
	require.NotNil(t, d.Raw)
	assert.Equal(t, "Survie", d.Label("survie"))
	assert.Equal(t, "unknown", d.Label("unknown"))
}

func TestExtractChoiceDescriptor_UIID(t *testing.T) {
	t.Run("explicit payload ui_id wins", func(t *testing.T) {
		d := effect.ExtractChoiceDescriptor(&effect.Effect{
			ID:      "feat",
			Type:    "choice",
			Payload: effect.Payload{"ui_id": "pick_one", "from": []any{"a"}},
		})
		require.NotNil(t, d)
		assert.Equal(t, "pick_one", d.UIID)
		assert.Equal(t, "feat", d.FeatureID)
	})

	t.Run("anonymous choices get a stable token", func(t *testing.T) {
		build := func() *effect.Effect {
			return effect.Normalize(map[string]any{
				"type":    "choice",
				"payload": map[string]any{"from": []any{"x", "y"}},
			})
		}
		first := effect.ExtractChoiceDescriptor(build())
		second := effect.ExtractChoiceDescriptor(build())
		require.NotNil(t, first)
		require.NotNil(t, second)

		assert.True(t, strings.HasPrefix(first.UIID, "choice_"))
		assert.Len(t, first.UIID, len("choice_")+12)
		assert.Equal(t, first.UIID, second.UIID)
		assert.Empty(t, first.FeatureID)
	})

	t.Run("different content gives different tokens", func(t *testing.T) {
		a := effect.ExtractChoiceDescriptor(effect.Normalize(map[string]any{"type": "choice", "payload": map[string]any{"from": []any{"x"}}}))
		b := effect.ExtractChoiceDescriptor(effect.Normalize(map[string]any{"type": "choice", "payload": map[string]any{"from": []any{"y"}}}))
		require.NotNil(t, a)
		require.NotNil(t, b)
		assert.NotEqual(t, a.UIID, b.UIID)
	})

	t.Run("owning feature and position separate identical content", func(t *testing.T) {
		build := func(source string, position int) *effect.Effect {
			e := effect.Normalize(map[string]any{
				"type":     "choice",
				"category": "language",
				"choose":   1,
				"from":     []any{"elfique", "nain", "orc"},
			})
			e.Source = source
			e.Position = position
			return e
		}
		elf := effect.ExtractChoiceDescriptor(build("elf", 0))
		sage := effect.ExtractChoiceDescriptor(build("sage", 0))
		second := effect.ExtractChoiceDescriptor(build("elf", 1))
		again := effect.ExtractChoiceDescriptor(build("elf", 0))

		assert.NotEqual(t, elf.UIID, sage.UIID)
		assert.NotEqual(t, elf.UIID, second.UIID)
		assert.Equal(t, elf.UIID, again.UIID)
	})
}

func TestNormalizeAll_RecordsPosition(t *testing.T) {
	list := effect.NormalizeAll([]any{
		map[string]any{"type": "choice", "from": []any{"a"}},
		"not an effect",
		map[string]any{"type": "choice", "from": []any{"a"}},
	})
	require.Len(t, list, 2)
	assert.Equal(t, 0, list[0].Position)
	assert.Equal(t, 2, list[1].Position)
	assert.NotEqual(t,
		effect.ExtractChoiceDescriptor(list[0]).UIID,
		effect.ExtractChoiceDescriptor(list[1]).UIID)
}

func TestExtractChoiceDescriptor_HandBuiltEffect(t *testing.T) {
	d := effect.ExtractChoiceDescriptor(&effect.Effect{
		Type: "choice",
		Raw: map[string]any{
			"id":        "tools",
			"mecanique": map[string]any{"b": "luth", "a": "flute"},
		},
	})
	require.NotNil(t, d)

	assert.Equal(t, "tools", d.UIID)
	assert.Equal(t, 1, d.Choose)
	assert.Equal(t, []string{"flute", "luth"}, d.From)
}

func TestExtractChoiceDescriptor_HandBuiltMecaniqueCount(t *testing.T) {
	d := effect.ExtractChoiceDescriptor(&effect.Effect{
		Type: "choice",
		Raw: map[string]any{
			"id":        "tools",
			"mecanique": map[string]any{"count": float64(2), "b": "luth", "a": "flute"},
		},
	})
	require.NotNil(t, d)

	assert.Equal(t, 2, d.Choose)
	assert.Equal(t, []string{"flute", "luth"}, d.From)
}

func TestExtractChoiceDescriptor_EmptyOptions(t *testing.T) {
	d := effect.ExtractChoiceDescriptor(&effect.Effect{ID: "nothing", Type: "choice", Payload: effect.Payload{}})
	require.NotNil(t, d)
	assert.NotNil(t, d.From)
	assert.Empty(t, d.From)
	assert.NotNil(t, d.FromLabels)
	assert.Empty(t, d.FromLabels)
}

func TestCategory(t *testing.T) {
	tests := []struct {
		name string
		e    *effect.Effect
		want string
	}{
		{
			name: "explicit payload category",
			e:    &effect.Effect{Type: "choice", Payload: effect.Payload{"category": "Spell"}},
			want: "spell",
		},
		{
			name: "raw choice_type",
			e:    &effect.Effect{Type: "choice", Payload: effect.Payload{}, Raw: map[string]any{"choice_type": "language"}},
			want: "language",
		},
		{
			name: "derived from declared raw type",
			e:    &effect.Effect{Type: "choice", Payload: effect.Payload{}, Raw: map[string]any{"type": "Tool_Choice"}},
			want: "tool",
		},
		{
			name: "plain choice has no category",
			e:    &effect.Effect{Type: "choice", Payload: effect.Payload{}},
			want: "",
		},
		{
			name: "nil",
			e:    nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, effect.Category(tt.e))
		})
	}
}

func TestParseAutoFrom(t *testing.T) {
	t.Run("object form", func(t *testing.T) {
		e := effect.Normalize(map[string]any{
			"id":   "wizard_cantrips",
			"type": "choice",
			"payload": map[string]any{
				"choose": float64(3),
				"auto_from": map[string]any{
					"collection":   "spells",
					"filters":      map[string]any{"level": float64(0), "classes": []any{"wizard"}},
					"limit":        float64(10),
					"id_fields":    []any{"slug"},
					"label_fields": "nom",
				},
			},
		})
		require.NotNil(t, e)

		af := effect.ParseAutoFrom(e)
		require.NotNil(t, af)
		assert.Equal(t, "spells", af.Collection)
		assert.Equal(t, 10, af.Limit)
		assert.Equal(t, []string{"slug"}, af.IDFields)
		assert.Equal(t, []string{"nom"}, af.LabelFields)
		assert.Equal(t, float64(0), af.Filters["level"])

		d := effect.ExtractChoiceDescriptor(e)
		require.NotNil(t, d)
		assert.Equal(t, af, d.AutoFrom)
		assert.Empty(t, d.From)
	})

	t.Run("string form names the collection", func(t *testing.T) {
		af := effect.ParseAutoFrom(&effect.Effect{Payload: effect.Payload{"auto_from": "languages"}})
		require.NotNil(t, af)
		assert.Equal(t, "languages", af.Collection)
	})

	t.Run("read from raw", func(t *testing.T) {
		af := effect.ParseAutoFrom(&effect.Effect{
			Payload: effect.Payload{},
			Raw:     map[string]any{"payload": map[string]any{"auto_from": map[string]any{"from": "items"}}},
		})
		require.NotNil(t, af)
		assert.Equal(t, "items", af.Collection)
	})

	t.Run("missing collection", func(t *testing.T) {
		assert.Nil(t, effect.ParseAutoFrom(&effect.Effect{Payload: effect.Payload{"auto_from": map[string]any{"limit": float64(2)}}}))
		assert.Nil(t, effect.ParseAutoFrom(&effect.Effect{Payload: effect.Payload{}}))
		assert.Nil(t, effect.ParseAutoFrom(nil))
	})
}

func TestIsChoice_AutoFromOnly(t *testing.T) {
	e := effect.Normalize(map[string]any{
		"type":    "spell_grant",
		"payload": map[string]any{"auto_from": "spells"},
	})
	require.NotNil(t, e)
	assert.True(t, effect.IsChoice(e))
	assert.Equal(t, "choice", e.Type)
}
