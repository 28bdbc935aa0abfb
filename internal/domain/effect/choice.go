package effect

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/KirkDiggler/dnd-creation-engine/internal/uuid"
	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

// Payload and raw paths consulted for a choice's category, in order
var categoryPaths = []string{"category", "choice_category", "choice_type", "kind"}

// IsChoice reports whether the effect represents a player decision
func IsChoice(e *Effect) bool {
	if e == nil {
		return false
	}
	return looksLikeChoice(e.Type, e.Payload, e.Raw)
}

// ExtractChoiceDescriptor builds the pending-choice descriptor for an effect,
// or nil when the effect is not a choice. It tolerates effects that were built
// by hand and never went through Normalize.
func ExtractChoiceDescriptor(e *Effect) *ChoiceDescriptor {
	if e == nil {
		return nil
	}

	raw := e.Raw
	if raw == nil {
		raw = map[string]any{}
	}
	payload := map[string]any(e.Payload)
	if payload == nil {
		payload, _ = values.GetMap(raw, "payload")
		if payload == nil {
			payload = map[string]any{}
		}
	}

	typ := firstString(e.Type, raw["type"], payload["type"])
	if !looksLikeChoice(typ, payload, raw) {
		return nil
	}

	d := &ChoiceDescriptor{
		Type:     typ,
		Category: Category(e),
		AutoFrom: ParseAutoFrom(e),
		Raw:      e.Clone(),
	}

	d.UIID = firstString(payload["ui_id"], raw["ui_id"], e.ID, raw["id"])
	if d.UIID == "" {
		d.UIID = fallbackToken(e)
	}

	d.FeatureID = firstString(e.ID, raw["id"], payload["feature_id"], payload["featureId"])

	chooseRaw, _ := firstOf(
		payload["choose"],
		payload["count"],
		raw["choose"],
		lookup(raw, "mecanique.choose"),
		lookup(raw, "mecanique.count"),
	)
	d.Choose = coerceChoose(chooseRaw)

	d.From, d.FromLabels = descriptorOptions(payload, raw)

	return d
}

func descriptorOptions(payload, raw map[string]any) ([]string, []OptionLabel) {
	known := labelIndex(payload["from_labels"])
	seen := make(map[string]struct{})
	var from []string
	var labels []OptionLabel

	add := func(id, label string) {
		if id == "" {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		if label == "" || label == id {
			if better, ok := known[id]; ok && better != "" {
				label = better
			} else {
				label = id
			}
		}
		from = append(from, id)
		labels = append(labels, OptionLabel{ID: id, Label: label})
	}

	var list []any
	if items, ok := values.AsSlice(payload["from"]); ok {
		list = items
	} else if items, ok := values.AsSlice(raw["from"]); ok {
		list = items
	}
	for _, item := range list {
		id, label, ok := extractIDLabel(item)
		if ok {
			add(id, label)
		}
	}

	if len(from) == 0 {
		if mec, ok := raw["mecanique"]; ok {
			for _, item := range flattenCandidates(mec) {
				if id, label, ok := extractIDLabel(item); ok {
					add(id, label)
				}
			}
		}
	}

	if from == nil {
		from = []string{}
	}
	if labels == nil {
		labels = []OptionLabel{}
	}
	return from, labels
}

// Category returns the lowercase choice category (for example "skill"). It is
// read from explicit category fields first, then derived from the declared
// type ("skill_choice" gives "skill").
func Category(e *Effect) string {
	if e == nil {
		return ""
	}
	if s, ok := values.FirstString(e.Payload, categoryPaths...); ok {
		return strings.ToLower(s)
	}
	for _, p := range categoryPaths {
		if s, ok := values.FirstString(e.Raw, p, "payload."+p); ok {
			return strings.ToLower(s)
		}
	}

	declared, _ := values.String(e.Raw["type"])
	if declared == "" {
		declared = e.Type
	}
	declared = strings.ToLower(declared)
	declared = strings.ReplaceAll(declared, "choice", "")
	declared = strings.Trim(declared, "_- .:")
	return declared
}

// ParseAutoFrom reads a computed option-set descriptor from the payload or
// raw document. A bare string names the collection.
func ParseAutoFrom(e *Effect) *AutoFrom {
	if e == nil {
		return nil
	}
	candidate, ok := firstOf(
		e.Payload["auto_from"],
		lookup(e.Raw, "auto_from"),
		lookup(e.Raw, "payload.auto_from"),
	)
	if !ok {
		return nil
	}

	if name, ok := candidate.(string); ok {
		if name == "" {
			return nil
		}
		return &AutoFrom{Collection: name}
	}

	obj, ok := values.AsMap(candidate)
	if !ok {
		return nil
	}
	collection, _ := values.FirstString(obj, "collection", "from", "source")
	if collection == "" {
		return nil
	}

	af := &AutoFrom{
		Collection:  collection,
		Limit:       values.Int(obj["limit"], 0),
		IDFields:    values.Strings(obj["id_fields"]),
		LabelFields: values.Strings(obj["label_fields"]),
	}
	if filters, ok := values.AsMap(obj["filters"]); ok {
		af.Filters = values.CloneMap(filters)
	}
	return af
}

// fallbackToken derives a stable ui_id from the owning feature, the effect's
// position in that feature and its content, so identical anonymous choices on
// different features stay distinct across requests.
func fallbackToken(e *Effect) string {
	basis := e.Raw
	if basis == nil {
		basis = e.ToMap()
	}
	data, err := json.Marshal(map[string]any{
		"source":   e.Source,
		"position": e.Position,
		"content":  basis,
	})
	if err != nil {
		data = []byte(e.Source + "/" + strconv.Itoa(e.Position) + "/" + e.Type)
	}
	return "choice_" + strings.ReplaceAll(uuid.Derive(data), "-", "")[:12]
}
