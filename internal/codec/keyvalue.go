// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"strings"

	"github.com/pdiddy/datashift/pkg/types"
)

// KeyValueCodec handles "key=value" lines describing a single record.
type KeyValueCodec struct{}

func (KeyValueCodec) Format() types.Format { return types.FormatKeyValue }

// Parse returns one record. Blank lines, lines starting with "#" and lines
// without "=" are skipped; a line is split at its first "=" and both sides
// are trimmed.
func (KeyValueCodec) Parse(text string) (any, error) {
	rec := types.NewRecord()
	for _, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		key, val, ok := strings.Cut(trimmed, "=")
		if !ok {
			continue
		}
		rec.Set(strings.TrimSpace(key), strings.TrimSpace(val))
	}
	return rec, nil
}

// Stringify writes the first record of v, one "key=value" line per field.
func (KeyValueCodec) Stringify(v any) (string, error) {
	set, err := types.AsRecordSet(v)
	if err != nil {
		return "", err
	}
	if len(set) == 0 {
		return "", nil
	}
	fields := set[0].Fields()
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = f.Key + "=" + types.Text(f.Value)
	}
	return strings.Join(lines, "\n"), nil
}
