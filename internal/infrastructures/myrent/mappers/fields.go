package mappers

import (
	"encoding/json"
	"strings"

	"github.com/Golden-Bit/myrent-SDK/internal/domain/coerce"
)

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

// truthy mirrors the loose "is this field set" check the upstream payloads need:
// nil, empty strings, zero numbers, false and empty containers are unset.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case map[string]any:
		return len(x) > 0
	case []any:
		return len(x) > 0
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	}
	if f, ok := coerce.Float(v); ok {
		return f != 0
	}
	return true
}

func firstTruthy(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && truthy(v) {
			return v
		}
	}
	return nil
}

func firstString(m map[string]any, keys ...string) string {
	return coerce.String(firstTruthy(m, keys...))
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func boolPtr(v any) *bool {
	b, ok := coerce.Bool(v)
	if !ok {
		return nil
	}
	return &b
}

func float64Ptr(v any) *float64 {
	f, ok := coerce.Float(v)
	if !ok {
		return nil
	}
	return &f
}

func intPtr(v any) *int {
	n, ok := coerce.Int(v)
	if !ok {
		return nil
	}
	return &n
}

func unique(values ...string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
