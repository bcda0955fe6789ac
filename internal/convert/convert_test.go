// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/datashift/internal/codec"
	"github.com/pdiddy/datashift/pkg/types"
)

const adaJSON = `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","created_at":"1843-12-10","active":true}`

func TestConvertJSONv1ToJSONv2(t *testing.T) {
	res, err := Convert(Options{
		InputText:     adaJSON,
		InputFormat:   types.FormatJSON,
		OutputFormat:  types.FormatJSON,
		InputVersion:  types.V1,
		OutputVersion: types.V2,
	})
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.OutputText), &got))
	assert.Equal(t, []map[string]any{{
		"fullName":     "Ada Lovelace",
		"emailAddress": "ada@example.com",
		"createdAt":    "1843-12-10",
		"status":       "active",
	}}, got)

	assert.Equal(t, Stats{Records: 1, Source: "json/v1", Target: "json/v2"}, res.Stats)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
		n    int
	}{
		{
			name: "csv v1 to ndjson v3",
			opts: Options{
				InputText:     "first_name,last_name,email,created_at,active\nAda,Lovelace,ada@example.com,1843-12-10,yes\nAlan,Turing,,1912-06-23,0\n",
				InputFormat:   types.FormatCSV,
				OutputFormat:  types.FormatNDJSON,
				InputVersion:  types.V1,
				OutputVersion: types.V3,
			},
			want: `{"name":{"first":"Ada","last":"Lovelace"},"contact":{"email":"ada@example.com"},"meta":{"createdAt":"1843-12-10","active":true}}` + "\n" +
				`{"name":{"first":"Alan","last":"Turing"},"contact":{"email":""},"meta":{"createdAt":"1912-06-23","active":false}}`,
			n: 2,
		},
		{
			name: "json array to keyvalue keeps only first record",
			opts: Options{
				InputText:     `[{"fullName":"Ada Lovelace","status":"active"},{"fullName":"Alan Turing","status":"inactive"}]`,
				InputFormat:   types.FormatJSON,
				OutputFormat:  types.FormatKeyValue,
				InputVersion:  types.V2,
				OutputVersion: types.V1,
			},
			want: "first_name=Ada\nlast_name=Lovelace\nemail=\ncreated_at=\nactive=true",
			n:    2,
		},
		{
			name: "keyvalue to csv",
			opts: Options{
				InputText:     "# person\nfullName = Grace Hopper\nemailAddress=grace@example.com\nstatus=active\n",
				InputFormat:   types.FormatKeyValue,
				OutputFormat:  types.FormatCSV,
				InputVersion:  types.V2,
				OutputVersion: types.V2,
			},
			want: "fullName,emailAddress,createdAt,status\nGrace Hopper,grace@example.com,,active",
			n:    1,
		},
		{
			name: "empty csv to csv",
			opts: Options{
				InputText:     "first_name,last_name\n",
				InputFormat:   types.FormatCSV,
				OutputFormat:  types.FormatCSV,
				InputVersion:  types.V1,
				OutputVersion: types.V2,
			},
			want: "",
			n:    0,
		},
		{
			name: "empty ndjson to keyvalue",
			opts: Options{
				InputText:     "\n\n",
				InputFormat:   types.FormatNDJSON,
				OutputFormat:  types.FormatKeyValue,
				InputVersion:  types.V1,
				OutputVersion: types.V1,
			},
			want: "",
			n:    0,
		},
		{
			name: "empty json array to json",
			opts: Options{
				InputText:     "[]",
				InputFormat:   types.FormatJSON,
				OutputFormat:  types.FormatJSON,
				InputVersion:  types.V3,
				OutputVersion: types.V1,
			},
			want: "[]",
			n:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Convert(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.OutputText)
			assert.Equal(t, tt.n, res.Stats.Records)
		})
	}
}

func TestConvertErrors(t *testing.T) {
	base := Options{
		InputText:     adaJSON,
		InputFormat:   types.FormatJSON,
		OutputFormat:  types.FormatJSON,
		InputVersion:  types.V1,
		OutputVersion: types.V2,
	}

	tests := []struct {
		name    string
		mutate  func(o *Options)
		is      error
		stage   Stage
		subject string
		index   int
	}{
		{
			name:    "unsupported input format",
			mutate:  func(o *Options) { o.InputFormat = "yaml" },
			is:      types.ErrUnsupportedFormat,
			stage:   StageLookup,
			subject: "yaml",
			index:   -1,
		},
		{
			name:    "unsupported output format",
			mutate:  func(o *Options) { o.OutputFormat = "xml" },
			is:      types.ErrUnsupportedFormat,
			stage:   StageLookup,
			subject: "xml",
			index:   -1,
		},
		{
			name:    "unsupported version",
			mutate:  func(o *Options) { o.OutputVersion = "v9" },
			is:      types.ErrUnsupportedVersion,
			stage:   StageMap,
			subject: "v9",
			index:   -1,
		},
		{
			name:    "malformed json",
			mutate:  func(o *Options) { o.InputText = `{"first_name":` },
			is:      types.ErrParse,
			stage:   StageParse,
			subject: "json",
			index:   -1,
		},
		{
			name:    "scalar input",
			mutate:  func(o *Options) { o.InputText = `42` },
			is:      types.ErrInvalidInputShape,
			stage:   StageShape,
			subject: "json",
			index:   -1,
		},
		{
			name:    "null input",
			mutate:  func(o *Options) { o.InputText = `null` },
			is:      types.ErrInvalidInputShape,
			stage:   StageShape,
			subject: "json",
			index:   -1,
		},
		{
			name:    "array with scalar element",
			mutate:  func(o *Options) { o.InputText = `[{"first_name":"Ada"},"oops"]` },
			is:      types.ErrInvalidInputShape,
			stage:   StageShape,
			subject: "json",
			index:   -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := base
			tt.mutate(&opts)

			res, err := Convert(opts)
			require.Error(t, err)
			assert.Equal(t, Result{}, res, "no partial output on failure")
			assert.ErrorIs(t, err, tt.is)

			var ce *Error
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.stage, ce.Stage)
			assert.Equal(t, tt.subject, ce.Subject)
			assert.Equal(t, tt.index, ce.Index)
		})
	}
}

func TestConvertParseErrorKeepsLine(t *testing.T) {
	_, err := Convert(Options{
		InputText:     "first_name\nAda\n\"Alan",
		InputFormat:   types.FormatCSV,
		OutputFormat:  types.FormatJSON,
		InputVersion:  types.V1,
		OutputVersion: types.V1,
	})
	var pe *codec.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Line)
	assert.Contains(t, err.Error(), "parse csv")
}

func TestConvertUnsupportedVersionWithNoRecords(t *testing.T) {
	_, err := Convert(Options{
		InputText:     "[]",
		InputFormat:   types.FormatJSON,
		OutputFormat:  types.FormatJSON,
		InputVersion:  "v0",
		OutputVersion: types.V1,
	})
	assert.ErrorIs(t, err, types.ErrUnsupportedVersion)
}

func TestConvertHeterogeneousCSV(t *testing.T) {
	res, err := Convert(Options{
		InputText:     `[{"fullName":"Ada"},{"emailAddress":"b@example.com"}]`,
		InputFormat:   types.FormatJSON,
		OutputFormat:  types.FormatCSV,
		InputVersion:  types.V2,
		OutputVersion: types.V2,
	})
	require.NoError(t, err)
	assert.Equal(t, "fullName,emailAddress,createdAt,status\nAda,,,inactive\n,b@example.com,,inactive", res.OutputText)
}

func TestSample(t *testing.T) {
	tests := []struct {
		format  types.Format
		version types.Version
		want    string
	}{
		{
			format:  types.FormatCSV,
			version: types.V1,
			want: "first_name,last_name,email,created_at,active\n" +
				"Ada,Lovelace,ada@example.com,2024-01-15T09:30:00Z,true\n" +
				"Alan,Turing,alan@example.com,2024-02-20T14:00:00Z,false",
		},
		{
			format:  types.FormatNDJSON,
			version: types.V2,
			want: `{"fullName":"Ada Lovelace","emailAddress":"ada@example.com","createdAt":"2024-01-15T09:30:00Z","status":"active"}` + "\n" +
				`{"fullName":"Alan Turing","emailAddress":"alan@example.com","createdAt":"2024-02-20T14:00:00Z","status":"inactive"}`,
		},
		{
			format:  types.FormatKeyValue,
			version: types.V3,
			want: `name={"first":"Ada","last":"Lovelace"}` + "\n" +
				`contact={"email":"ada@example.com"}` + "\n" +
				`meta={"createdAt":"2024-01-15T09:30:00Z","active":true}`,
		},
		{
			format:  types.FormatJSON,
			version: types.V2,
			want: `[
  {
    "fullName": "Ada Lovelace",
    "emailAddress": "ada@example.com",
    "createdAt": "2024-01-15T09:30:00Z",
    "status": "active"
  },
  {
    "fullName": "Alan Turing",
    "emailAddress": "alan@example.com",
    "createdAt": "2024-02-20T14:00:00Z",
    "status": "inactive"
  }
]`,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.format)+"/"+string(tt.version), func(t *testing.T) {
			got, err := Sample(tt.format, tt.version)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := Sample(tt.format, tt.version)
			require.NoError(t, err)
			assert.Equal(t, got, again, "sample output must be stable")
		})
	}
}

func TestSampleErrors(t *testing.T) {
	_, err := Sample("yaml", types.V1)
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)

	_, err = Sample(types.FormatJSON, "v4")
	assert.ErrorIs(t, err, types.ErrUnsupportedVersion)
}

func TestSampleFeedsConvert(t *testing.T) {
	for _, format := range codec.Default().Formats() {
		for _, version := range types.Versions {
			text, err := Sample(format, version)
			require.NoError(t, err)

			res, err := Convert(Options{
				InputText:     text,
				InputFormat:   format,
				OutputFormat:  format,
				InputVersion:  version,
				OutputVersion: version,
			})
			require.NoError(t, err, "%s/%s", format, version)
			assert.Equal(t, text, res.OutputText, "%s/%s", format, version)
		}
	}
}

func TestConvertFlatV3KeepsNestedFields(t *testing.T) {
	want := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","created_at":"2024-01-15T09:30:00Z","active":true}` + "\n" +
		`{"first_name":"Alan","last_name":"Turing","email":"alan@example.com","created_at":"2024-02-20T14:00:00Z","active":false}`

	for _, format := range []types.Format{types.FormatCSV, types.FormatKeyValue} {
		t.Run(string(format), func(t *testing.T) {
			text, err := Sample(format, types.V3)
			require.NoError(t, err)

			res, err := Convert(Options{
				InputText:     text,
				InputFormat:   format,
				OutputFormat:  types.FormatNDJSON,
				InputVersion:  types.V3,
				OutputVersion: types.V1,
			})
			require.NoError(t, err)
			expected := want
			if format == types.FormatKeyValue {
				expected, _, _ = strings.Cut(want, "\n")
			}
			assert.Equal(t, expected, res.OutputText)
		})
	}
}
