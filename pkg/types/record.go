// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is one logical entity: string keys mapped to scalar or nested
// values, kept in insertion order. Values are string, bool, json.Number,
// nil, []any or *Record; Go numeric kinds are accepted when encoding.
//
// The zero value is an empty record.
type Record struct {
	fields *orderedmap.OrderedMap[string, any]
}

// Field is a single key/value pair of a Record.
type Field struct {
	Key   string
	Value any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{fields: orderedmap.New[string, any]()}
}

// RecordOf builds a record from pairs in order.
func RecordOf(fields ...Field) *Record {
	r := NewRecord()
	for _, f := range fields {
		r.Set(f.Key, f.Value)
	}
	return r
}

// Set stores value under key. An existing key keeps its position.
func (r *Record) Set(key string, value any) {
	if r.fields == nil {
		r.fields = orderedmap.New[string, any]()
	}
	r.fields.Set(key, value)
}

// Get returns the value stored under key and whether it was present.
func (r *Record) Get(key string) (any, bool) {
	if r == nil || r.fields == nil {
		return nil, false
	}
	return r.fields.Get(key)
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil || r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.Len())
	if r.Len() == 0 {
		return keys
	}
	for p := r.fields.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Fields returns the key/value pairs in insertion order.
func (r *Record) Fields() []Field {
	out := make([]Field, 0, r.Len())
	if r.Len() == 0 {
		return out
	}
	for p := r.fields.Oldest(); p != nil; p = p.Next() {
		out = append(out, Field{Key: p.Key, Value: p.Value})
	}
	return out
}

// MarshalJSON encodes the record as a JSON object in key order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := EncodeJSON(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := EncodeJSON(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", f.Key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EncodeJSON marshals v compactly without HTML escaping.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// MaxJSONDepth bounds the nesting of arrays and objects accepted by
// DecodeJSONValue, matching encoding/json.
const MaxJSONDepth = 10000

// DepthError reports input nested deeper than MaxJSONDepth.
type DepthError struct {
	// Offset is the input byte offset where the limit was crossed.
	Offset int64
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("exceeded max nesting depth %d at offset %d", MaxJSONDepth, e.Offset)
}

// DecodeJSONValue reads one JSON value from dec. Objects become *Record,
// arrays []any, and numbers json.Number; dec should have UseNumber set.
// Nesting past MaxJSONDepth fails with *DepthError.
func DecodeJSONValue(dec *json.Decoder) (any, error) {
	return decodeValue(dec, 0)
}

func decodeValue(dec *json.Decoder, depth int) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	if depth >= MaxJSONDepth {
		return nil, &DepthError{Offset: dec.InputOffset()}
	}
	switch delim {
	case '{':
		rec := NewRecord()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T, want string", keyTok)
			}
			val, err := decodeValue(dec, depth+1)
			if err != nil {
				return nil, err
			}
			rec.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return rec, nil
	case '[':
		items := []any{}
		for dec.More() {
			val, err := decodeValue(dec, depth+1)
			if err != nil {
				return nil, err
			}
			items = append(items, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// ErrTrailingData is returned when input continues after a complete JSON value.
var ErrTrailingData = errors.New("unexpected data after top-level value")

// DecodeJSONDocument decodes exactly one JSON value from data.
func DecodeJSONDocument(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := DecodeJSONValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, ErrTrailingData
	}
	return v, nil
}

// Text renders a scalar as text: nil is empty, strings pass through,
// booleans and numbers use their literal form, and nested values are
// encoded as compact JSON.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(t)
	default:
		b, err := EncodeJSON(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// KindOf names the JSON kind of v for error messages.
func KindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int32, int64:
		return "number"
	case []any, []*Record:
		return "array"
	case *Record:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// AsRecordSet turns a single record, a []*Record or a []any of records
// into a record set. Any other shape, including a nil record, fails with
// ErrInvalidInputShape.
func AsRecordSet(v any) ([]*Record, error) {
	switch t := v.(type) {
	case *Record:
		if t == nil {
			return nil, fmt.Errorf("%w: null", ErrInvalidInputShape)
		}
		return []*Record{t}, nil
	case []*Record:
		for i, r := range t {
			if r == nil {
				return nil, fmt.Errorf("%w: element %d is null", ErrInvalidInputShape, i)
			}
		}
		return t, nil
	case []any:
		out := make([]*Record, 0, len(t))
		for i, item := range t {
			r, ok := item.(*Record)
			if !ok || r == nil {
				return nil, fmt.Errorf("%w: element %d is %s, want object", ErrInvalidInputShape, i, KindOf(item))
			}
			out = append(out, r)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %s, want object or array", ErrInvalidInputShape, KindOf(v))
	}
}
