// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Format identifies a wire format handled by a codec.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatNDJSON   Format = "ndjson"
	FormatKeyValue Format = "keyvalue"
)

// Version identifies a schema version: a field-naming convention for the
// same logical entity.
type Version string

const (
	V1 Version = "v1"
	V2 Version = "v2"
	V3 Version = "v3"
)

// Versions lists every known schema version in order.
var Versions = []Version{V1, V2, V3}

// Endpoint is one side of a conversion: a format paired with a version.
type Endpoint struct {
	Format  Format  `json:"format" yaml:"format"`
	Version Version `json:"version" yaml:"version"`
}

// String renders the endpoint as "<format>/<version>".
func (e Endpoint) String() string {
	return string(e.Format) + "/" + string(e.Version)
}

// ParseEndpoint parses "<format>/<version>" (e.g. "csv/v2"). Either half
// may be omitted, in which case the matching field of def is used.
// Identifiers are not validated here; codec and mapper lookups do that.
func ParseEndpoint(s string, def Endpoint) (Endpoint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	out := def
	format, version, hasSlash := strings.Cut(s, "/")
	if strings.Count(s, "/") > 1 {
		return Endpoint{}, fmt.Errorf("invalid endpoint %q: want <format>/<version>", s)
	}
	if format != "" {
		out.Format = Format(strings.ToLower(format))
	}
	if hasSlash && version != "" {
		out.Version = Version(strings.ToLower(version))
	}
	return out, nil
}
