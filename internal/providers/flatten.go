// Package providers holds the shared source contract for security
// data providers and helpers for canonicalising their responses.
package providers

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
)

// Source produces one provider's observations for a token address:
// a flat indicator key → raw text value map. Values stay opaque text;
// interpretation belongs to the scoring pipeline.
type Source interface {
	Name() string
	// Configured reports whether the source can be queried at all. An
	// unconfigured source contributes no observations, not an error.
	Configured() bool
	TokenSecurity(ctx context.Context, address string) (map[string]string, error)
}

// Flatten converts a decoded JSON object into indicator key → text
// value. Null and nested values are dropped, scalar values are
// stringified, field names are snake_cased, an "is_" prefix is
// stripped, and aliases override the derived key.
func Flatten(data map[string]any, aliases map[string]string) map[string]string {
	out := make(map[string]string, len(data))
	for field, value := range data {
		text, ok := stringify(value)
		if !ok {
			continue
		}
		key := strings.TrimPrefix(snakeCase(field), "is_")
		if alias, ok := aliases[key]; ok {
			key = alias
		}
		out[key] = text
	}
	return out
}

func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	default:
		// Nested objects and arrays carry no scalar observation.
		return "", false
	}
}

// snakeCase converts camelCase or mixed-case field names to
// lower_snake_case. Already-snake_cased input passes through.
func snakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] != '_' {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
