// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schema maps records between schema versions. Every version is
// decoded into a typed wire shape, converted to the Canonical model, and
// encoded back out in the target version's shape.
//
// All functions are pure and safe for concurrent use.
// Implements: version mapper (v1, v2, v3 via Canonical).
package schema

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/datashift/pkg/types"
)

// Canonical is the version-independent pivot every mapping goes through.
// It is never serialized directly.
type Canonical struct {
	FirstName string
	LastName  string
	Email     string
	CreatedAt string
	Active    bool
}

// truthyStrings are the string spellings that normalize to true.
var truthyStrings = map[string]bool{
	"1":      true,
	"true":   true,
	"yes":    true,
	"active": true,
}

// NormalizeBoolean coerces a wire value to a boolean. Booleans pass
// through; strings are true only for 1, true, yes or active (trimmed,
// case-insensitive). Otherwise nil, zero and NaN are false and any other
// value is true.
func NormalizeBoolean(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return truthyStrings[strings.ToLower(strings.TrimSpace(t))]
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return t.String() != ""
		}
		return truthyFloat(f)
	case float64:
		return truthyFloat(t)
	case float32:
		return truthyFloat(float64(t))
	case int:
		return t != 0
	case int64:
		return t != 0
	case int32:
		return t != 0
	case *types.Record:
		return t != nil
	default:
		return true
	}
}

func truthyFloat(f float64) bool {
	return f != 0 && !math.IsNaN(f)
}

// text reads a string field, defaulting absent or null values to "".
func text(v any, ok bool) string {
	if !ok {
		return ""
	}
	return types.Text(v)
}
