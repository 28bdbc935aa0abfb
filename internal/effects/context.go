package effects

import (
	"strings"

	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

// Context carries the selection state conditions and handlers read from
type Context struct {
	Selection   *character.Selection
	Base        *character.BaseCharacter
	ClassLevels map[string]int
}

// NewContext builds an application context for a normalized selection
func NewContext(sel *character.Selection, base *character.BaseCharacter) *Context {
	ctx := &Context{Selection: sel, Base: base}
	if sel != nil {
		ctx.ClassLevels = sel.EffectiveClassLevels()
	}
	return ctx
}

// Level returns the current level for a class, or for the selection's class
// when none is named: classLevels first, then the selection level, then the
// base character level, then 0.
func (c *Context) Level(class string) int {
	if c == nil {
		return 0
	}
	if class == "" && c.Selection != nil {
		class = c.Selection.Class
	}
	if class != "" {
		if lvl, ok := c.ClassLevels[class]; ok && lvl > 0 {
			return lvl
		}
	}
	if c.Selection != nil && c.Selection.Niveau > 0 {
		return c.Selection.Niveau
	}
	if c.Base != nil && c.Base.Niveau > 0 {
		return c.Base.Niveau
	}
	return 0
}

// Count reads a count that is either a number or a reference to a value of
// the sheet: "level", "proficiency_bonus", an ability name or
// "<ability>_mod". Unknown references yield def.
func (c *Context) Count(p *character.Preview, v any, def int) int {
	if v == nil {
		return def
	}
	ref, isString := v.(string)
	if !isString {
		return values.Int(v, def)
	}

	ref = strings.ToLower(strings.TrimSpace(ref))
	switch ref {
	case "":
		return def
	case "level", "niveau":
		return c.Level("")
	case "proficiency_bonus", "proficiency":
		return character.ProficiencyBonus(c.Level(""))
	}

	ability := strings.TrimSuffix(strings.TrimSuffix(ref, "_modifier"), "_mod")
	for _, a := range character.Abilities {
		if a == ability {
			return max(character.AbilityModifier(p.AbilityScore(a)), 1)
		}
	}
	return values.Int(v, def)
}
