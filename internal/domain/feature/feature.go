package feature

import (
	"github.com/KirkDiggler/dnd-creation-engine/internal/values"
)

// Paths an effect list may live under, in order
var effectPaths = []string{"effects", "features", "mecanique.effects", "payload.effects", "payload.features"}

// Paths a links object may live under, in order
var linkPaths = []string{"links", "mecanique.links"}

// Names the granted id list goes by inside a links object
var grantAliases = []string{"grants", "grant_feature_ids", "features"}

// Feature is one loaded feature document. Effects are left undecoded; the
// orchestrator normalizes them.
type Feature struct {
	ID      string         `json:"id"`
	Effects []any          `json:"effects"`
	Grants  []string       `json:"grants,omitempty"`
	Raw     map[string]any `json:"raw"`
}

// FromDocument extracts a feature from a decoded JSON document loaded for
// requestedID. The document's own id only names the feature when requestedID
// is empty; it stays available in Raw either way.
func FromDocument(requestedID string, doc map[string]any) *Feature {
	if doc == nil {
		return nil
	}

	f := &Feature{
		ID:  requestedID,
		Raw: doc,
	}
	if f.ID == "" {
		f.ID, _ = values.String(doc["id"])
	}

	if list, ok := values.First(doc, effectPaths...); ok {
		if items, ok := values.AsSlice(list); ok {
			f.Effects = items
		} else {
			f.Effects = []any{list}
		}
	}
	if f.Effects == nil {
		f.Effects = []any{}
	}

	f.Grants = extractGrants(doc)
	return f
}

func extractGrants(doc map[string]any) []string {
	var candidate any
	if links, ok := values.First(doc, linkPaths...); ok {
		if obj, ok := values.AsMap(links); ok {
			candidate, _ = values.First(obj, grantAliases...)
		} else {
			candidate = links
		}
	} else if grants, ok := values.Get(doc, "grants"); ok {
		if obj, ok := values.AsMap(grants); ok {
			candidate, _ = values.First(obj, grantAliases...)
		} else {
			candidate = grants
		}
	}

	ids := values.Strings(candidate)
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

// HasGrants reports whether the feature links to further features
func (f *Feature) HasGrants() bool {
	return len(f.Grants) > 0
}
