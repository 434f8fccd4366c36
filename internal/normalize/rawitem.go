// Package normalize turns the wildly inconsistent payloads of resource-site
// APIs into canonical video records: envelope extraction, per-item field
// mapping, play-source decoding and category filtering. Everything here is
// pure and degrades to defaults on malformed input instead of failing.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// SafeGet reads a string field from a raw item. Missing keys, nil values
// and whitespace-only values all yield the empty string; non-string values
// are stringified the way the sites themselves mix types (years as numbers,
// ids as strings).
func SafeGet(item map[string]any, key string) string {
	value, ok := item[key]
	if !ok || value == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(value))
}

// SafeGetInt reads a numeric field. Values are parsed float-then-int so
// strings like "1500.0" coerce cleanly; anything unparseable returns the
// default, never an error.
func SafeGetInt(item map[string]any, key string, def int) int {
	value, ok := item[key]
	if !ok || value == nil {
		return def
	}

	s := strings.TrimSpace(fmt.Sprint(value))
	if s == "" {
		return def
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return int(f)
}
