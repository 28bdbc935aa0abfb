package character

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cast"

	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

// DefaultLevel is used when a selection carries no usable level
const DefaultLevel = 1

// Selection is the player's build input. The engine keeps no state between
// calls, so every answered choice travels back in ChosenOptions keyed by the
// ui_id it was surfaced under.
type Selection struct {
	Class          string         `json:"class,omitempty"`
	Race           string         `json:"race,omitempty"`
	Background     string         `json:"background,omitempty"`
	Niveau         int            `json:"niveau"`
	ManualFeatures []any          `json:"manual_features"`
	ChosenOptions  map[string]any `json:"chosenOptions"`
	ClassLevels    map[string]int `json:"classLevels"`
	SeedIDs        []string       `json:"seedIds,omitempty"`

	// LegacyID is the bare id/name some older clients send instead of a class
	LegacyID string `json:"-"`
}

// UnmarshalJSON accepts a bare string as shorthand for {"class": <string>},
// "level" as an alias of "niveau" and "seed_ids" as an alias of "seedIds".
func (s *Selection) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Selection{Class: str}
		s.Normalize()
		return nil
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = SelectionFromMap(raw)
	return nil
}

// SelectionFromMap reads a selection out of a decoded JSON object
func SelectionFromMap(raw map[string]any) Selection {
	var s Selection
	if raw == nil {
		s.Normalize()
		return s
	}

	s.Class, _ = values.String(raw["class"])
	s.Race, _ = values.String(raw["race"])
	s.Background, _ = values.String(raw["background"])

	if v, ok := values.First(raw, "niveau", "level"); ok {
		s.Niveau = values.Int(v, 0)
	}

	if items, ok := values.AsSlice(raw["manual_features"]); ok {
		s.ManualFeatures = items
	}
	if opts, ok := values.AsMap(raw["chosenOptions"]); ok {
		s.ChosenOptions = values.CloneMap(opts)
	}
	if levels, ok := values.AsMap(raw["classLevels"]); ok {
		s.ClassLevels = make(map[string]int, len(levels))
		for k, v := range levels {
			if n, err := cast.ToFloat64E(v); err == nil {
				s.ClassLevels[k] = int(n)
			}
		}
	}
	if seeds, ok := values.First(raw, "seedIds", "seed_ids"); ok {
		s.SeedIDs = values.Strings(seeds)
	}
	s.LegacyID, _ = values.FirstString(raw, "id", "name")

	s.Normalize()
	return s
}

// Normalize fills defaults in place
func (s *Selection) Normalize() {
	s.Class = strings.TrimSpace(s.Class)
	s.Race = strings.TrimSpace(s.Race)
	s.Background = strings.TrimSpace(s.Background)
	if s.Niveau <= 0 {
		s.Niveau = DefaultLevel
	}
	if s.ManualFeatures == nil {
		s.ManualFeatures = []any{}
	}
	if s.ChosenOptions == nil {
		s.ChosenOptions = map[string]any{}
	}
	if s.ClassLevels == nil {
		s.ClassLevels = map[string]int{}
	}
}

// EffectiveClassLevels returns the class levels with the primary class seeded
// at the selection level when it is not already listed.
func (s *Selection) EffectiveClassLevels() map[string]int {
	out := make(map[string]int, len(s.ClassLevels)+1)
	for k, v := range s.ClassLevels {
		out[k] = v
	}
	if s.Class != "" {
		if _, ok := out[s.Class]; !ok {
			level := s.Niveau
			if level <= 0 {
				level = DefaultLevel
			}
			out[s.Class] = level
		}
	}
	return out
}

// WithChoice returns a copy of the selection with value recorded under uiID
func (s *Selection) WithChoice(uiID string, value any) Selection {
	cp := s.Clone()
	cp.ChosenOptions[uiID] = values.Clone(value)
	return cp
}

// Clone deep-copies the selection
func (s *Selection) Clone() Selection {
	cp := *s
	cp.ManualFeatures = nil
	if s.ManualFeatures != nil {
		cp.ManualFeatures, _ = values.Clone(s.ManualFeatures).([]any)
	}
	cp.ChosenOptions = values.CloneMap(s.ChosenOptions)
	if s.ClassLevels != nil {
		cp.ClassLevels = make(map[string]int, len(s.ClassLevels))
		for k, v := range s.ClassLevels {
			cp.ClassLevels[k] = v
		}
	}
	if s.SeedIDs != nil {
		cp.SeedIDs = append([]string(nil), s.SeedIDs...)
	}
	cp.Normalize()
	return cp
}

// BaseCharacter is the player-entered starting point of a preview
type BaseCharacter struct {
	BaseStats Stats `json:"base_stats_before_race"`
	Niveau    int   `json:"niveau,omitempty"`
}

func (b *BaseCharacter) UnmarshalJSON(data []byte) error {
	var raw struct {
		BaseStats Stats `json:"base_stats_before_race"`
		Niveau    any   `json:"niveau"`
		Level     any   `json:"level"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.BaseStats = raw.BaseStats
	lvl := raw.Niveau
	if lvl == nil {
		lvl = raw.Level
	}
	b.Niveau = values.Int(lvl, 0)
	return nil
}
