// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/datashift/pkg/types"
)

const jsonIndent = "  "

// JSONCodec parses strict JSON and pretty-prints with two-space indentation.
type JSONCodec struct{}

func (JSONCodec) Format() types.Format { return types.FormatJSON }

func (JSONCodec) Parse(text string) (any, error) {
	v, err := types.DecodeJSONDocument([]byte(text))
	if err != nil {
		return nil, parseErr(types.FormatJSON, jsonErrorLine(text, err), err)
	}
	return v, nil
}

func (JSONCodec) Stringify(v any) (string, error) {
	if set, ok := v.([]*types.Record); ok && set == nil {
		v = []*types.Record{}
	}
	compact, err := types.EncodeJSON(v)
	if err != nil {
		return "", fmt.Errorf("encoding json: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", jsonIndent); err != nil {
		return "", fmt.Errorf("indenting json: %w", err)
	}
	return out.String(), nil
}

// jsonErrorLine maps a decoder error to the 1-based line it occurred on.
func jsonErrorLine(text string, err error) int {
	var (
		syn   *json.SyntaxError
		depth *types.DepthError
	)
	switch {
	case errors.As(err, &syn):
		return lineAt(text, syn.Offset)
	case errors.As(err, &depth):
		return lineAt(text, depth.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return lineAt(text, int64(len(text)))
	default:
		return 0
	}
}

func lineAt(text string, offset int64) int {
	if offset > int64(len(text)) {
		offset = int64(len(text))
	}
	if offset < 0 {
		offset = 0
	}
	return strings.Count(text[:offset], "\n") + 1
}
