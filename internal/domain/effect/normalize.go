package effect

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

// Normalize reconciles one effect object into the canonical shape. It accepts
// decoded JSON objects and already-built *Effect values; anything else yields
// nil. Normalizing an already-normalized effect leaves type, payload.from and
// payload.choose unchanged.
func Normalize(input any) *Effect {
	var in map[string]any
	position := 0
	switch t := input.(type) {
	case *Effect:
		if t == nil {
			return nil
		}
		in = t.ToMap()
		position = t.Position
	case map[string]any:
		in = t
	case Payload:
		in = map[string]any(t)
	default:
		return nil
	}
	if in == nil {
		return nil
	}

	src := values.CloneMap(in)
	raw, hasRaw := values.AsMap(src["raw"])
	if !hasRaw {
		raw = values.CloneMap(in)
	}
	declared, _ := values.AsMap(src["payload"])

	e := &Effect{
		ID:     firstString(src["id"], declared["id"], raw["id"]),
		Type:   firstString(src["type"], declared["type"], raw["type"]),
		Source: firstString(src["source"], declared["source"], raw["source"]),
		Raw:    raw,

		Position: position,
	}
	e.Priority = values.Float(firstPresent(src["priority"], declared["priority"], raw["priority"]), 0)
	e.Payload = buildPayload(declared, raw, hasRaw)

	applyAliases(e.Kind(), e.Payload)

	if looksLikeChoice(e.Type, e.Payload, raw) {
		normalizeChoice(e, raw)
	} else if hasKey(e.Payload, "choose") || hasKey(e.Payload, "from") {
		e.Payload["choose"] = coerceChoose(e.Payload["choose"])
		switch from := e.Payload["from"].(type) {
		case string:
			e.Payload["from"] = []any{from}
		case []any:
		default:
			e.Payload["from"] = []any{}
		}
	}

	if e.Kind() == KindSpellcastingFeature || hasKey(e.Payload, "slots_table") {
		e.Payload["slots_table"] = parseSlotsTable(e.Payload["slots_table"])
	}

	if c, ok := src["conditions"]; ok && c != nil {
		e.Conditions = c
	} else if c, ok := e.Payload["conditions"]; ok && c != nil {
		e.Conditions = values.Clone(c)
	}

	return e
}

// NormalizeAll normalizes a list (or a single effect) and drops non-objects
func NormalizeAll(input any) []*Effect {
	items, ok := values.AsSlice(input)
	if !ok {
		if input == nil {
			return nil
		}
		items = []any{input}
	}

	out := make([]*Effect, 0, len(items))
	for i, item := range items {
		if e := Normalize(item); e != nil {
			e.Position = i
			out = append(out, e)
		}
	}
	return out
}

func buildPayload(declared, raw map[string]any, hasRaw bool) Payload {
	if declared != nil {
		return Payload(declared)
	}
	if hasRaw {
		if p, ok := values.AsMap(raw["payload"]); ok {
			return Payload(values.CloneMap(p))
		}
	}
	if mec, ok := raw["mecanique"]; ok && mec != nil {
		return Payload{"mecanique": values.Clone(mec)}
	}
	return Payload{}
}

func normalizeChoice(e *Effect, raw map[string]any) {
	e.Type = string(KindChoice)

	chooseRaw, _ := firstOf(
		lookup(e.Payload, "choose"),
		lookup(e.Payload, "count"),
		lookup(raw, "choose"),
		lookup(raw, "payload.choose"),
		lookup(raw, "mecanique.choose"),
		lookup(raw, "mecanique.count"),
	)
	e.Payload["choose"] = coerceChoose(chooseRaw)

	known := labelIndex(e.Payload["from_labels"])
	options := collectOptions(e.Payload, raw, known)

	from := make([]any, 0, len(options))
	labels := make([]any, 0, len(options))
	for _, o := range options {
		from = append(from, o.ID)
		labels = append(labels, map[string]any{"id": o.ID, "label": o.Label})
	}

	e.Payload["from"] = from
	if len(labels) > 0 {
		e.Payload["from_labels"] = labels
	} else if existing := labelList(e.Payload["from_labels"]); len(existing) > 0 {
		normalized := make([]any, 0, len(existing))
		for _, l := range existing {
			normalized = append(normalized, map[string]any{"id": l.ID, "label": l.Label})
		}
		e.Payload["from_labels"] = normalized
	}
}

// collectOptions merges every plausible option source, deduplicating by id in
// first-seen order.
func collectOptions(payload Payload, raw map[string]any, known map[string]string) []OptionLabel {
	seen := make(map[string]struct{})
	var out []OptionLabel

	for _, src := range choiceOptionSources {
		container := map[string]any(payload)
		if src.fromRaw {
			container = raw
		}
		candidate, ok := values.Get(container, src.path)
		if !ok {
			continue
		}
		for _, item := range flattenCandidates(candidate) {
			id, label, ok := extractIDLabel(item)
			if !ok {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if label == id {
				if better, ok := known[id]; ok && better != "" {
					label = better
				}
			}
			out = append(out, OptionLabel{ID: id, Label: label})
		}
	}
	return out
}

// flattenCandidates turns the many shapes an option list takes into a flat
// list of items. Object maps contribute their values in key order, except
// for the choice's own control keys.
func flattenCandidates(candidate any) []any {
	if candidate == nil {
		return nil
	}
	if items, ok := values.AsSlice(candidate); ok {
		return items
	}
	if obj, ok := values.AsMap(candidate); ok {
		if items, ok := values.AsSlice(obj["items"]); ok {
			return items
		}
		if nested, ok := values.AsMap(obj["items"]); ok {
			obj = nested
		}
		out := make([]any, 0, len(obj))
		for _, k := range values.SortedKeys(obj) {
			if _, control := optionControlKeys[k]; control {
				continue
			}
			out = append(out, obj[k])
		}
		return out
	}
	return []any{candidate}
}

// extractIDLabel pulls an (id, label) pair out of one option item
func extractIDLabel(item any) (string, string, bool) {
	if obj, ok := values.AsMap(item); ok {
		id, ok := values.FirstString(obj, optionIDKeys...)
		if !ok {
			return "", "", false
		}
		label, ok := values.FirstString(obj, optionLabelKeys...)
		if !ok {
			label = id
		}
		return id, label, true
	}
	s, ok := values.String(item)
	if !ok || s == "" {
		return "", "", false
	}
	return s, s, true
}

func labelList(v any) []OptionLabel {
	items, ok := values.AsSlice(v)
	if !ok {
		return nil
	}
	var out []OptionLabel
	for _, item := range items {
		if ol, ok := item.(OptionLabel); ok {
			out = append(out, ol)
			continue
		}
		if id, label, ok := extractIDLabel(item); ok {
			out = append(out, OptionLabel{ID: id, Label: label})
		}
	}
	return out
}

func labelIndex(v any) map[string]string {
	idx := make(map[string]string)
	for _, l := range labelList(v) {
		if _, ok := idx[l.ID]; !ok {
			idx[l.ID] = l.Label
		}
	}
	return idx
}

// looksLikeChoice is the detection rule shared by Normalize and
// ExtractChoiceDescriptor.
func looksLikeChoice(typ string, payload Payload, raw map[string]any) bool {
	if strings.Contains(strings.ToLower(typ), "choice") {
		return true
	}
	for _, m := range []map[string]any{payload, raw} {
		if hasValue(m, "choose") || hasValue(m, "from") || hasValue(m, "auto_from") {
			return true
		}
	}
	return false
}

// coerceChoose turns any choose value into a positive integer, 1 by default
func coerceChoose(v any) int {
	if v == nil {
		return 1
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 1
	}
	n := int(f)
	if n < 1 {
		return 1
	}
	return n
}

func parseSlotsTable(v any) map[string]any {
	if s, ok := v.(string); ok {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(s), &parsed); err == nil && parsed != nil {
			return parsed
		}
		return map[string]any{}
	}
	if m, ok := values.AsMap(v); ok {
		return m
	}
	return map[string]any{}
}

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

func hasValue(m map[string]any, key string) bool {
	v, ok := m[key]
	return ok && v != nil
}

func lookup(m map[string]any, path string) any {
	v, _ := values.Get(m, path)
	return v
}

func firstOf(candidates ...any) (any, bool) {
	for _, c := range candidates {
		if c != nil {
			return c, true
		}
	}
	return nil, false
}

func firstPresent(candidates ...any) any {
	v, _ := firstOf(candidates...)
	return v
}

func firstString(candidates ...any) string {
	for _, c := range candidates {
		if s, ok := values.String(c); ok && s != "" {
			return s
		}
	}
	return ""
}
