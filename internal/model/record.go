package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Field is one column of a record, already coerced to display text.
type Field struct {
	Key   string
	Value string
}

// Record is a flat record label entry. Field order matches the order a
// browser would iterate the source JSON object in.
type Record struct {
	Fields []Field
}

// Keys returns the field names in iteration order.
func (r Record) Keys() []string {
	out := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		out[i] = f.Key
	}
	return out
}

// Values returns the display values in iteration order.
func (r Record) Values() []string {
	out := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		out[i] = f.Value
	}
	return out
}

// Get returns the value for key and whether it was present.
func (r Record) Get(key string) (string, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

func (r Record) Len() int { return len(r.Fields) }

var ErrNotArray = errors.New("response is not a JSON array")

// UnmarshalJSON decodes a flat JSON object while keeping key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	rec, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// DecodeRecords parses a JSON array of flat objects.
func DecodeRecords(body []byte) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, ErrNotArray
	}

	records := []Record{}
	for dec.More() {
		rec, err := decodeObject(dec)
		if err != nil {
			return nil, fmt.Errorf("decode record %d: %w", len(records), err)
		}
		records = append(records, rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("decode records: trailing data after array")
	}
	return records, nil
}

func decodeObject(dec *json.Decoder) (Record, error) {
	tok, err := dec.Token()
	if err != nil {
		return Record{}, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Record{}, fmt.Errorf("expected object, got %v", tok)
	}

	var fields []Field
	pos := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Record{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Record{}, fmt.Errorf("unexpected key token %v", keyTok)
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return Record{}, err
		}
		val := TextContent(raw)
		if i, seen := pos[key]; seen {
			fields[i].Value = val
			continue
		}
		pos[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return Record{}, err
	}

	return Record{Fields: orderKeys(fields)}, nil
}

// orderKeys puts array-index keys first in ascending numeric order, then
// the remaining keys in insertion order, like Object.keys.
func orderKeys(fields []Field) []Field {
	var idx, rest []Field
	for _, f := range fields {
		if isArrayIndex(f.Key) {
			idx = append(idx, f)
		} else {
			rest = append(rest, f)
		}
	}
	if len(idx) == 0 {
		return fields
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, _ := strconv.ParseUint(idx[i].Key, 10, 32)
		b, _ := strconv.ParseUint(idx[j].Key, 10, 32)
		return a < b
	})
	return append(idx, rest...)
}

func isArrayIndex(key string) bool {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	return err == nil && n < math.MaxUint32
}

// TextContent converts a decoded JSON value to the string a DOM node shows
// after assigning it to textContent.
func TextContent(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return FormatNumber(f)
	case float64:
		return FormatNumber(t)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = TextContent(e)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	default:
		return fmt.Sprint(t)
	}
}

// FormatNumber mirrors Number.prototype.toString for finite doubles.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}
