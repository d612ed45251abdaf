// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sentinel classifies raw field values as absent or present. It is
// the single point of truth for blank detection across the pipeline: form
// submissions and legacy store records encode "no value" inconsistently as
// "", "NaN", "nan", a null, or a floating-point NaN left behind by the
// spreadsheet export.
package sentinel

import (
	"math"
	"strings"
)

// sentinels are the case-sensitive string literals meaning "absent",
// compared after whitespace trimming.
var sentinels = map[string]struct{}{
	"":    {},
	"NaN": {},
	"nan": {},
}

// Absent reports whether a string field value is semantically blank.
func Absent(s string) bool {
	_, ok := sentinels[strings.TrimSpace(s)]
	return ok
}

// AbsentValue reports whether a raw cell value of any type is semantically
// blank: a nil, an absent string, or a floating-point NaN (a value that
// compares unequal to itself).
func AbsentValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return Absent(x)
	case float64:
		return math.IsNaN(x)
	case float32:
		return x != x
	default:
		return false
	}
}

// Clean returns the trimmed value, or "" when the value is absent. The
// store applies it once at the load boundary so merge logic only ever
// sees "" for blank scalars.
func Clean(s string) string {
	if Absent(s) {
		return ""
	}
	return strings.TrimSpace(s)
}
