// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"fmt"
	"strings"

	"github.com/pdiddy/datashift/pkg/types"
)

// NDJSONCodec handles newline-delimited JSON: one compact value per line.
type NDJSONCodec struct{}

func (NDJSONCodec) Format() types.Format { return types.FormatNDJSON }

// Parse decodes every non-blank line. A malformed line fails the whole
// parse; no partial result is returned.
func (NDJSONCodec) Parse(text string) (any, error) {
	items := []any{}
	for i, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		v, err := types.DecodeJSONDocument([]byte(line))
		if err != nil {
			return nil, parseErr(types.FormatNDJSON, i+1, err)
		}
		items = append(items, v)
	}
	return items, nil
}

func (NDJSONCodec) Stringify(v any) (string, error) {
	items, err := valueList(v)
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(items))
	for i, item := range items {
		b, err := types.EncodeJSON(item)
		if err != nil {
			return "", fmt.Errorf("encoding ndjson line %d: %w", i+1, err)
		}
		lines = append(lines, string(b))
	}
	return strings.Join(lines, "\n"), nil
}

// valueList flattens a record, a record set or an []any into a list of
// values to emit one per line.
func valueList(v any) ([]any, error) {
	switch t := v.(type) {
	case []any:
		return t, nil
	case []*types.Record:
		out := make([]any, len(t))
		for i, r := range t {
			out[i] = r
		}
		return out, nil
	case *types.Record:
		return []any{t}, nil
	default:
		return nil, fmt.Errorf("%w: ndjson needs records, got %s", types.ErrInvalidInputShape, types.KindOf(v))
	}
}

// splitLines splits on "\n", dropping a trailing "\r" from each line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
