// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package codec converts between wire-format text and records. Each
// format has a Codec; the Registry maps format identifiers to codecs.
//
// Parsed values are *types.Record, []any (elements usually *types.Record)
// or JSON scalars. Codecs hold no state and are safe for concurrent use.
//
// Implements: format codecs (json, csv, ndjson, keyvalue) and the codec
// registry. See DESIGN.md § internal/codec.
package codec

import (
	"fmt"

	"github.com/pdiddy/datashift/pkg/types"
)

// Codec parses one wire format into records and serializes records back.
type Codec interface {
	// Format returns the identifier the codec is registered under.
	Format() types.Format

	// Parse decodes text into a value.
	Parse(text string) (any, error)

	// Stringify encodes a value (a record or a record set) as text.
	Stringify(v any) (string, error)
}

// ParseError reports input that a codec could not decode.
type ParseError struct {
	Format types.Format
	// Line is the 1-based input line, or 0 when unknown.
	Line   int
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parsing %s: line %d: %s", e.Format, e.Line, e.Detail)
	}
	return fmt.Sprintf("parsing %s: %s", e.Format, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes every ParseError match types.ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == types.ErrParse
}

func parseErr(format types.Format, line int, err error) *ParseError {
	return &ParseError{Format: format, Line: line, Detail: err.Error(), Err: err}
}
