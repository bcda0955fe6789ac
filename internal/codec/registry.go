// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/pdiddy/datashift/pkg/types"
)

// Registry maps format identifiers to codecs. It is built once and never
// mutated, so lookups need no locking.
type Registry struct {
	codecs map[types.Format]Codec
}

// NewRegistry builds a registry from the given codecs. A later codec with
// the same format replaces an earlier one.
func NewRegistry(codecs ...Codec) *Registry {
	r := &Registry{codecs: make(map[types.Format]Codec, len(codecs))}
	for _, c := range codecs {
		r.codecs[c.Format()] = c
	}
	return r
}

var defaultRegistry = NewRegistry(
	JSONCodec{},
	CSVCodec{},
	NDJSONCodec{},
	KeyValueCodec{},
)

// Default returns the process-wide registry holding json, csv, ndjson and
// keyvalue.
func Default() *Registry {
	return defaultRegistry
}

// Lookup returns the codec for format. Unknown identifiers fail with
// types.ErrUnsupportedFormat.
func (r *Registry) Lookup(format types.Format) (Codec, error) {
	c, ok := r.codecs[format]
	if !ok {
		return nil, fmt.Errorf("%w %q", types.ErrUnsupportedFormat, string(format))
	}
	return c, nil
}

// Formats lists the registered identifiers in sorted order.
func (r *Registry) Formats() []types.Format {
	formats := lo.Keys(r.codecs)
	slices.Sort(formats)
	return formats
}

// FormatForExtension maps a file extension (with or without the dot) to a
// format: .json, .csv, .ndjson/.jsonl, .kv/.env/.properties.
func FormatForExtension(ext string) (types.Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		return types.FormatJSON, true
	case "csv":
		return types.FormatCSV, true
	case "ndjson", "jsonl":
		return types.FormatNDJSON, true
	case "kv", "env", "properties":
		return types.FormatKeyValue, true
	default:
		return "", false
	}
}

// Extension returns the canonical file extension for format, including
// the dot.
func Extension(format types.Format) string {
	switch format {
	case types.FormatKeyValue:
		return ".kv"
	default:
		return "." + string(format)
	}
}
