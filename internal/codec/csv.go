// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"errors"
	"strings"

	"github.com/samber/lo"

	"github.com/pdiddy/datashift/pkg/types"
)

var errUnterminatedQuote = errors.New("unterminated quoted field")

// CSVCodec handles comma-separated values with a header line. Splitting is
// line oriented: quoted fields may hold commas and doubled quotes but not
// line breaks.
type CSVCodec struct{}

func (CSVCodec) Format() types.Format { return types.FormatCSV }

// Parse treats the first non-blank line as the header and every later
// non-blank line as one record keyed by header position. Missing trailing
// cells become empty strings; cells beyond the header are dropped.
func (CSVCodec) Parse(text string) (any, error) {
	records := []any{}
	var header []string
	for i, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells, err := splitCSVLine(line)
		if err != nil {
			return nil, parseErr(types.FormatCSV, i+1, err)
		}
		if header == nil {
			header = cells
			continue
		}
		rec := types.NewRecord()
		for j, key := range header {
			val := ""
			if j < len(cells) {
				val = cells[j]
			}
			rec.Set(key, val)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Stringify writes a header built from the union of all record keys in
// first-seen order, then one line per record. An empty set yields "".
func (CSVCodec) Stringify(v any) (string, error) {
	set, err := types.AsRecordSet(v)
	if err != nil {
		return "", err
	}
	if len(set) == 0 {
		return "", nil
	}

	header := lo.Uniq(lo.FlatMap(set, func(r *types.Record, _ int) []string {
		return r.Keys()
	}))

	lines := make([]string, 0, len(set)+1)
	lines = append(lines, joinCSVLine(header))
	for _, r := range set {
		cells := make([]string, len(header))
		for i, key := range header {
			val, _ := r.Get(key)
			cells[i] = types.Text(val)
		}
		lines = append(lines, joinCSVLine(cells))
	}
	return strings.Join(lines, "\n"), nil
}

func splitCSVLine(line string) ([]string, error) {
	var (
		cells    []string
		cur      strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"' && inQuotes && i+1 < len(line) && line[i+1] == '"':
			cur.WriteByte('"')
			i++
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			cells = append(cells, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if inQuotes {
		return nil, errUnterminatedQuote
	}
	return append(cells, cur.String()), nil
}

func joinCSVLine(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = escapeCSV(c)
	}
	return strings.Join(escaped, ",")
}

// escapeCSV quotes a cell holding a comma, quote or line break and doubles
// embedded quotes.
func escapeCSV(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
