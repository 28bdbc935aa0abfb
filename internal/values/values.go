// Package values holds helpers for walking decoded JSON documents whose shape
// is only loosely known (map[string]any, []any and scalars).
package values

import (
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// AsMap returns v as an object when it is one
func AsMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

// AsSlice returns v as an array when it is one
func AsSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out, true
	}
	return nil, false
}

// Get reads a dotted path ("mecanique.links.grants") from a document
func Get(m map[string]any, path string) (any, bool) {
	if m == nil || path == "" {
		return nil, false
	}

	var current any = m
	for _, segment := range strings.Split(path, ".") {
		obj, ok := AsMap(current)
		if !ok {
			return nil, false
		}
		current, ok = obj[segment]
		if !ok {
			return nil, false
		}
	}
	return current, current != nil
}

// GetMap reads a dotted path and returns it when it is an object
func GetMap(m map[string]any, path string) (map[string]any, bool) {
	v, ok := Get(m, path)
	if !ok {
		return nil, false
	}
	return AsMap(v)
}

// First returns the first non-nil value among the given dotted paths
func First(m map[string]any, paths ...string) (any, bool) {
	for _, p := range paths {
		if v, ok := Get(m, p); ok {
			return v, true
		}
	}
	return nil, false
}

// FirstString returns the first value among paths that stringifies to a
// non-empty string
func FirstString(m map[string]any, paths ...string) (string, bool) {
	for _, p := range paths {
		v, ok := Get(m, p)
		if !ok {
			continue
		}
		if s, ok := String(v); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// String stringifies a scalar. Objects, arrays and nil are rejected.
func String(v any) (string, bool) {
	switch v.(type) {
	case nil, map[string]any, []any:
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

// Strings flattens a scalar or an array of scalars into non-empty strings
func Strings(v any) []string {
	if items, ok := AsSlice(v); ok {
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := String(item); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s, ok := String(v); ok && strings.TrimSpace(s) != "" {
		return []string{s}
	}
	return nil
}

// Int coerces v to an int, returning def when it cannot
func Int(v any, def int) int {
	if v == nil {
		return def
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return int(f)
	}
	return def
}

// Float coerces v to a float64, returning def when it cannot
func Float(v any, def float64) float64 {
	if v == nil {
		return def
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return f
	}
	return def
}

// Truthy mirrors loose truthiness of decoded JSON values
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	}
	return true
}

// Empty reports whether v carries no usable value
func Empty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

// SortedKeys returns the keys of m in lexical order
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone deep-copies a decoded JSON value
func Clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Clone(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	}
	return v
}

// CloneMap deep-copies an object; nil yields nil
func CloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Clone(v)
	}
	return out
}
