// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/datashift/pkg/types"
)

// flatten turns parsed records into plain key/value pairs for comparison.
func flatten(t *testing.T, v any) [][]types.Field {
	t.Helper()
	set, err := types.AsRecordSet(v)
	require.NoError(t, err)
	out := make([][]types.Field, len(set))
	for i, r := range set {
		out[i] = r.Fields()
	}
	return out
}

func rec(kv ...string) *types.Record {
	r := types.NewRecord()
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i], kv[i+1])
	}
	return r
}

func TestCSVParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]types.Field
	}{
		{
			name:  "quoted comma",
			input: "a,b\n1,\"x,y\"\n2,z",
			want: [][]types.Field{
				{{Key: "a", Value: "1"}, {Key: "b", Value: "x,y"}},
				{{Key: "a", Value: "2"}, {Key: "b", Value: "z"}},
			},
		},
		{
			name:  "crlf and blank lines",
			input: "\r\nname,city\r\n\r\nada,london\r\n  \r\n",
			want: [][]types.Field{
				{{Key: "name", Value: "ada"}, {Key: "city", Value: "london"}},
			},
		},
		{
			name:  "missing trailing cells",
			input: "a,b,c\n1",
			want: [][]types.Field{
				{{Key: "a", Value: "1"}, {Key: "b", Value: ""}, {Key: "c", Value: ""}},
			},
		},
		{
			name:  "extra cells dropped",
			input: "a\n1,2,3",
			want: [][]types.Field{
				{{Key: "a", Value: "1"}},
			},
		},
		{
			name:  "doubled quotes unescape",
			input: "q\n\"say \"\"hi\"\"\"",
			want: [][]types.Field{
				{{Key: "q", Value: `say "hi"`}},
			},
		},
		{
			name:  "header only",
			input: "a,b\n",
			want:  [][]types.Field{},
		},
		{
			name:  "empty input",
			input: "",
			want:  [][]types.Field{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := CSVCodec{}.Parse(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, flatten(t, v)); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCSVParseUnterminatedQuote(t *testing.T) {
	_, err := CSVCodec{}.Parse("a,b\n1,2\n3,\"oops")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrParse)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, types.FormatCSV, pe.Format)
	assert.Equal(t, 3, pe.Line)
}

func TestCSVStringify(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{
			name: "heterogeneous keys",
			in: []*types.Record{
				types.RecordOf(types.Field{Key: "a", Value: json.Number("1")}),
				types.RecordOf(types.Field{Key: "b", Value: json.Number("2")}),
			},
			want: "a,b\n1,\n,2",
		},
		{
			name: "escaping",
			in: []any{
				rec("k", "x,y", "q", `he said "no"`, "n", "line\nbreak"),
			},
			want: "k,q,n\n\"x,y\",\"he said \"\"no\"\"\",\"line\nbreak\"",
		},
		{
			name: "booleans and nil",
			in: types.RecordOf(
				types.Field{Key: "active", Value: true},
				types.Field{Key: "gone", Value: nil},
			),
			want: "active,gone\ntrue,",
		},
		{
			name: "empty set",
			in:   []*types.Record{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CSVCodec{}.Stringify(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCSVRoundTrip(t *testing.T) {
	records := []any{
		rec("first", "Ada", "last", "Lovelace", "note", "a, b"),
		rec("first", "Grace", "last", "Hopper", "note", `"quoted"`),
		rec("first", "", "last", "Turing", "note", ""),
	}

	text, err := CSVCodec{}.Stringify(records)
	require.NoError(t, err)
	back, err := CSVCodec{}.Parse(text)
	require.NoError(t, err)

	if diff := cmp.Diff(flatten(t, records), flatten(t, back)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNDJSON(t *testing.T) {
	c := NDJSONCodec{}

	v, err := c.Parse("{\"a\":1}\n\n  \r\n{\"b\":\"x\"}\r\n")
	require.NoError(t, err)
	items, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, items, 2)

	out, err := c.Stringify(items)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n{\"b\":\"x\"}", out)

	empty, err := c.Stringify([]*types.Record{})
	require.NoError(t, err)
	assert.Equal(t, "", empty)
}

func TestNDJSONMalformedLineFailsWholeParse(t *testing.T) {
	v, err := NDJSONCodec{}.Parse("{\"a\":1}\n{\"b\":\n{\"c\":3}")
	require.Error(t, err)
	assert.Nil(t, v)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, types.FormatNDJSON, pe.Format)
	assert.Equal(t, 2, pe.Line)
}

func TestJSON(t *testing.T) {
	c := JSONCodec{}

	v, err := c.Parse(`[{"b":1,"a":"<x>"}]`)
	require.NoError(t, err)

	out, err := c.Stringify(v)
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"b\": 1,\n    \"a\": \"<x>\"\n  }\n]", out)

	empty, err := c.Stringify([]*types.Record(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)
}

func TestJSONParseErrorLine(t *testing.T) {
	_, err := JSONCodec{}.Parse("{\n  \"a\": 1,\n  oops\n}")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrParse)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Line)
	assert.Contains(t, pe.Error(), "line 3")
}

func TestJSONParseEmptyIsError(t *testing.T) {
	_, err := JSONCodec{}.Parse("")
	assert.ErrorIs(t, err, types.ErrParse)
}

func TestParseNestingLimit(t *testing.T) {
	deep := strings.Repeat("[", types.MaxJSONDepth+1) + strings.Repeat("]", types.MaxJSONDepth+1)

	tests := []struct {
		name  string
		codec Codec
		text  string
		line  int
	}{
		{name: "json", codec: JSONCodec{}, text: "\n" + deep, line: 2},
		{name: "json far past the limit", codec: JSONCodec{}, text: strings.Repeat("[", 5_000_000), line: 1},
		{name: "ndjson", codec: NDJSONCodec{}, text: "{\"a\":1}\n\n" + deep, line: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.codec.Parse(tt.text)
			assert.Nil(t, v)
			assert.ErrorIs(t, err, types.ErrParse)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.line, pe.Line)

			var de *types.DepthError
			assert.True(t, errors.As(err, &de))
		})
	}
}

func TestKeyValue(t *testing.T) {
	c := KeyValueCodec{}

	v, err := c.Parse("# comment\n  name = Ada Lovelace \nno equals here\n\nurl=http://x?a=b\r\n   # indented comment\n")
	require.NoError(t, err)
	r, ok := v.(*types.Record)
	require.True(t, ok)
	assert.Equal(t, []types.Field{
		{Key: "name", Value: "Ada Lovelace"},
		{Key: "url", Value: "http://x?a=b"},
	}, r.Fields())

	out, err := c.Stringify([]any{
		types.RecordOf(types.Field{Key: "a", Value: "1"}, types.Field{Key: "b", Value: nil}),
		rec("ignored", "yes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "a=1\nb=", out)

	empty, err := c.Stringify([]*types.Record{})
	require.NoError(t, err)
	assert.Equal(t, "", empty)
}

func TestKeyValueStringifyWritesTextAsIs(t *testing.T) {
	c := KeyValueCodec{}
	out, err := c.Stringify(types.RecordOf(
		types.Field{Key: "note", Value: "two\nlines"},
		types.Field{Key: "a=b", Value: "c"},
	))
	require.NoError(t, err)
	assert.Equal(t, "note=two\nlines\na=b=c", out)

	v, err := c.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, []types.Field{
		{Key: "note", Value: "two"},
		{Key: "a", Value: "b=c"},
	}, v.(*types.Record).Fields())
}
