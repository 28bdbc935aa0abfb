package values_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

func TestGet(t *testing.T) {
	doc := map[string]any{
		"mecanique": map[string]any{
			"links": map[string]any{"grants": []any{"a", "b"}},
		},
		"level": float64(1),
	}

	v, ok := values.Get(doc, "mecanique.links.grants")
	assert.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, v)

	_, ok = values.Get(doc, "mecanique.missing.grants")
	assert.False(t, ok)

	_, ok = values.Get(doc, "level.value")
	assert.False(t, ok)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{"survie"}, values.Strings("survie"))
	assert.Equal(t, []string{"1", "true", "x"}, values.Strings([]any{float64(1), true, "x", "", nil, map[string]any{}}))
	assert.Nil(t, values.Strings(nil))
	assert.Nil(t, values.Strings("  "))
}

func TestInt(t *testing.T) {
	assert.Equal(t, 2, values.Int(float64(2), 1))
	assert.Equal(t, 3, values.Int("3", 1))
	assert.Equal(t, 1, values.Int("abc", 1))
	assert.Equal(t, 1, values.Int(nil, 1))
}

func TestTruthyAndEmpty(t *testing.T) {
	assert.True(t, values.Truthy(true))
	assert.False(t, values.Truthy(float64(0)))
	assert.False(t, values.Truthy(""))
	assert.True(t, values.Truthy(map[string]any{}))

	assert.True(t, values.Empty([]any{}))
	assert.True(t, values.Empty(" "))
	assert.False(t, values.Empty(float64(0)))
}

func TestClone(t *testing.T) {
	src := map[string]any{"from": []any{"a"}, "nested": map[string]any{"k": "v"}}
	dup := values.CloneMap(src)

	dup["from"].([]any)[0] = "changed"
	dup["nested"].(map[string]any)["k"] = "changed"

	assert.Equal(t, "a", src["from"].([]any)[0])
	assert.Equal(t, "v", src["nested"].(map[string]any)["k"])
}
