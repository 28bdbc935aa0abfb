package effects

import (
	"strings"

	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

// Condition kinds
const (
	ConditionLevelGTE   = "level_gte"
	ConditionAlways     = "always"
	ConditionTrue       = "true"
	ConditionHasFeature = "has_feature"
)

// Evaluate reports whether an effect's conditions hold. It accepts
// {"all": [...]}, {"any": [...]}, a single condition object, or a list
// (read as "all"). Unknown or missing kinds never block an effect.
func Evaluate(cond any, p *character.Preview, ctx *Context) bool {
	switch c := cond.(type) {
	case nil:
		return true
	case bool:
		return c
	case []any:
		return every(c, p, ctx)
	case map[string]any:
		if all, ok := values.AsSlice(c["all"]); ok {
			return every(all, p, ctx)
		}
		if anyOf, ok := values.AsSlice(c["any"]); ok {
			for _, item := range anyOf {
				if Evaluate(item, p, ctx) {
					return true
				}
			}
			return false
		}
		return single(c, p, ctx)
	}
	return true
}

func every(list []any, p *character.Preview, ctx *Context) bool {
	for _, item := range list {
		if !Evaluate(item, p, ctx) {
			return false
		}
	}
	return true
}

func single(c map[string]any, p *character.Preview, ctx *Context) bool {
	kind, _ := values.FirstString(c, "kind", "type")

	switch strings.ToLower(kind) {
	case ConditionLevelGTE:
		required := values.Int(firstValue(c, "value", "level"), 0)
		class, _ := values.FirstString(c, "class")
		return ctx.Level(class) >= required

	case ConditionAlways, ConditionTrue:
		return true

	case ConditionHasFeature:
		id, ok := values.FirstString(c, "feature", "feature_id", "value", "id")
		return ok && p.HasFeature(id)
	}
	return true
}

func firstValue(m map[string]any, keys ...string) any {
	v, _ := values.First(m, keys...)
	return v
}
