package core

// convert.go provides the coercion functions that turn Adalo export cells
// into typed values.
//
// The legacy exports are inconsistent per field:
//   - JSON payloads sometimes wrapped in stray quote characters
//   - Booleans as TRUE/True/true/1 (and their falsy counterparts)
//   - Arrays as JSON or as plain comma-separated text
//
// None of these functions returns an error. Unusable input yields nil
// (or an empty slice for arrays) so a single bad cell never fails a row.

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseJSONField decodes a JSON payload stored as a string cell.
// Surrounding whitespace and runs of stray double quotes then single quotes are
// stripped before decoding. Returns nil for empty or malformed input.
func ParseJSONField(s string) any {
	if s == "" {
		return nil
	}

	cleaned := strings.Trim(strings.TrimSpace(s), `"`)
	cleaned = strings.Trim(cleaned, "'")

	var v any
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return nil
	}
	return v
}

// ParseBoolean converts an Adalo boolean token.
// Truthy tokens return true; falsy tokens and the empty string return false;
// anything else returns nil.
func ParseBoolean(s string) any {
	switch s {
	case "TRUE", "True", "true", "1":
		return true
	case "FALSE", "False", "false", "0", "":
		return false
	default:
		return nil
	}
}

// ParseTimestamp passes an Adalo timestamp (2025-11-18T16:15:25.000Z) through
// unchanged. Returns nil for empty input. No validation or timezone
// normalization is performed.
func ParseTimestamp(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// ParseNumber converts a numeric cell.
// A '.' selects float64, otherwise int64. Returns nil for empty,
// non-numeric, or out-of-range input.
func ParseNumber(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return f
	}

	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return i
}

// ParseArray converts a list cell stored either as a JSON array or as
// comma-separated text. Returns an empty slice for empty input.
//
// JSON string elements are kept as-is; other elements are rendered as
// compact JSON text. Comma-separated segments are trimmed and blank
// segments dropped.
func ParseArray(s string) []string {
	if s == "" {
		return []string{}
	}

	var items []any
	if err := json.Unmarshal([]byte(s), &items); err == nil && items != nil {
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, stringifyElement(item))
		}
		return out
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func stringifyElement(v any) string {
	if str, ok := v.(string); ok {
		return str
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Column coercers used by the entity mapping tables.

// Raw keeps the cell exactly as exported, including the empty string.
func Raw(s string) any {
	return s
}

// Text returns the cell, or nil when it is empty.
func Text(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// TextOr returns a coercer that substitutes def for an empty cell.
func TextOr(def string) Coercer {
	return func(s string) any {
		if s == "" {
			return def
		}
		return s
	}
}

// Number coerces with ParseNumber.
func Number(s string) any {
	return ParseNumber(s)
}

// NumberOr returns a coercer that substitutes def when the number is
// missing, unparseable, or zero.
func NumberOr(def int64) Coercer {
	return func(s string) any {
		switch n := ParseNumber(s).(type) {
		case int64:
			if n != 0 {
				return n
			}
		case float64:
			if n != 0 {
				return n
			}
		}
		return def
	}
}

// Bool coerces with ParseBoolean.
func Bool(s string) any {
	return ParseBoolean(s)
}

// Timestamp coerces with ParseTimestamp.
func Timestamp(s string) any {
	return ParseTimestamp(s)
}

// JSONDoc coerces with ParseJSONField and marks the result as a JSON document.
func JSONDoc(s string) any {
	v := ParseJSONField(s)
	if v == nil {
		return nil
	}
	return JSON{V: v}
}

// Array coerces with ParseArray.
func Array(s string) any {
	return ParseArray(s)
}
