package choices

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/dnd-creation-engine/internal/clients/documents"
	"github.com/KirkDiggler/dnd-creation-engine/internal/domain/effect"
	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

// Field names tried, in order, when an auto_from query names none
var (
	defaultIDFields    = []string{"id", "slug", "code", "key", "name"}
	defaultLabelFields = []string{"label", "name", "title", "display_name"}
)

// buildPredicate turns auto_from filters into a collection predicate. Every
// filter must match. Keys are dotted paths into the document.
func buildPredicate(filters map[string]any) documents.Predicate {
	if len(filters) == 0 {
		return nil
	}
	keys := values.SortedKeys(filters)

	return func(doc map[string]any) bool {
		data, err := json.Marshal(doc)
		if err != nil {
			return false
		}
		for _, key := range keys {
			if !matchFilter(gjson.GetBytes(data, key), filters[key]) {
				return false
			}
		}
		return true
	}
}

func matchFilter(actual gjson.Result, want any) bool {
	switch w := want.(type) {
	case []any:
		return containsAll(actual, w)
	case []string:
		items, _ := values.AsSlice(w)
		return containsAll(actual, items)
	case map[string]any:
		if in, ok := w["$in"]; ok {
			if !actual.Exists() {
				return false
			}
			got := resultString(actual)
			for _, candidate := range values.Strings(in) {
				if candidate == got {
					return true
				}
			}
			return false
		}
		if eq, ok := w["$eq"]; ok {
			return actual.Exists() && resultString(actual) == cast.ToString(eq)
		}
		return deepEqual(actual, w)
	case nil:
		return !actual.Exists() || actual.Type == gjson.Null
	default:
		return actual.Exists() && resultString(actual) == cast.ToString(w)
	}
}

// containsAll reports whether every wanted element appears in the document
// value, compared case-insensitively. A scalar value counts as a one-element
// array.
func containsAll(actual gjson.Result, want []any) bool {
	if !actual.Exists() {
		return len(want) == 0
	}

	have := make(map[string]struct{})
	if actual.IsArray() {
		for _, item := range actual.Array() {
			have[strings.ToLower(resultString(item))] = struct{}{}
		}
	} else {
		have[strings.ToLower(resultString(actual))] = struct{}{}
	}

	for _, w := range want {
		s, ok := values.String(w)
		if !ok {
			return false
		}
		if _, found := have[strings.ToLower(s)]; !found {
			return false
		}
	}
	return true
}

func deepEqual(actual gjson.Result, want map[string]any) bool {
	if !actual.Exists() {
		return false
	}
	a, err := json.Marshal(actual.Value())
	if err != nil {
		return false
	}
	b, err := json.Marshal(want)
	if err != nil {
		return false
	}
	return string(a) == string(b)
}

// resultString renders a JSON value the way a literal filter is rendered, so
// 1 and "1" compare equal.
func resultString(r gjson.Result) string {
	if r.Type == gjson.Number {
		return cast.ToString(r.Float())
	}
	return r.String()
}

// optionFromDocument maps a collection document to an option. The label
// falls back to the id.
func optionFromDocument(doc map[string]any, idFields, labelFields []string) (effect.OptionLabel, bool) {
	if len(idFields) == 0 {
		idFields = defaultIDFields
	}
	if len(labelFields) == 0 {
		labelFields = defaultLabelFields
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return effect.OptionLabel{}, false
	}

	id := firstField(data, idFields)
	if id == "" {
		return effect.OptionLabel{}, false
	}
	label := firstField(data, labelFields)
	if label == "" {
		label = id
	}
	return effect.OptionLabel{ID: id, Label: label}, true
}

func firstField(data []byte, fields []string) string {
	for _, f := range fields {
		r := gjson.GetBytes(data, f)
		if !r.Exists() || r.IsObject() || r.IsArray() || r.Type == gjson.Null {
			continue
		}
		if s := strings.TrimSpace(resultString(r)); s != "" {
			return s
		}
	}
	return ""
}
