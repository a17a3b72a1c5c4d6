// Package record defines the opaque row type every list screen is built on,
// plus typed accessors so the sort and search engines never need reflection.
//
// A Record is whatever the API returned for one item (one area, one user,
// one knowledge base entry), already decoded into a map. The only field the
// engine cares about by name is "id", used for row expansion.
package record

import (
	"strconv"
	"strings"
	"time"
)

// IDField is the identity field used by the expansion set.
const IDField = "id"

// Record is one item in a collection being displayed.
type Record map[string]any

// Collection coerces an arbitrary decoded value into a slice of records.
// nil, non-slices and slices without map elements become an empty
// collection; non-map elements inside a slice are skipped.
func Collection(v any) []Record {
	switch c := v.(type) {
	case nil:
		return []Record{}
	case []Record:
		if c == nil {
			return []Record{}
		}
		return c
	case []map[string]any:
		out := make([]Record, 0, len(c))
		for _, m := range c {
			if m != nil {
				out = append(out, Record(m))
			}
		}
		return out
	case []any:
		out := make([]Record, 0, len(c))
		for _, item := range c {
			switch m := item.(type) {
			case map[string]any:
				out = append(out, Record(m))
			case Record:
				out = append(out, m)
			}
		}
		return out
	default:
		return []Record{}
	}
}

// Lookup returns the value at a field name or dotted path ("category.name").
// A nil value counts as absent.
func (r Record) Lookup(path string) (any, bool) {
	if r == nil || path == "" {
		return nil, false
	}
	if v, ok := r[path]; ok || !strings.Contains(path, ".") {
		return v, ok && v != nil
	}

	var current any = map[string]any(r)
	for _, key := range strings.Split(path, ".") {
		switch m := current.(type) {
		case map[string]any:
			current = m[key]
		case Record:
			current = m[key]
		default:
			return nil, false
		}
		if current == nil {
			return nil, false
		}
	}
	return current, true
}

// String returns the field as a string when it holds one.
func (r Record) String(path string) (string, bool) {
	v, ok := r.Lookup(path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Float returns the field as a float64 when it holds any numeric type.
func (r Record) Float(path string) (float64, bool) {
	v, ok := r.Lookup(path)
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// Int returns the field as an int64 when it holds a signed integer type.
// Floats are not converted.
func (r Record) Int(path string) (int64, bool) {
	v, ok := r.Lookup(path)
	if !ok {
		return 0, false
	}
	return toInt(v)
}

// Bool returns the field as a bool when it holds one.
func (r Record) Bool(path string) (bool, bool) {
	v, ok := r.Lookup(path)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Time returns the field as a time. Strings are parsed with the layouts the
// backend emits, numbers are taken as epoch milliseconds.
func (r Record) Time(path string) (time.Time, bool) {
	v, ok := r.Lookup(path)
	if !ok {
		return time.Time{}, false
	}
	return AsTime(v)
}

// ID returns the record identity as a string. Records whose id is missing,
// empty, zero or false have no identity.
func (r Record) ID() (string, bool) {
	v, ok := r.Lookup(IDField)
	if !ok {
		return "", false
	}
	switch id := v.(type) {
	case string:
		return id, id != ""
	case bool:
		return "", false
	}
	if s, ok := integerText(v); ok {
		if s == "0" {
			return "", false
		}
		return s, true
	}
	if f, ok := toFloat(v); ok {
		if f == 0 {
			return "", false
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return Text(v)
}

// Text renders a field value as the string search and display work on.
func Text(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case time.Time:
		return val.Format(time.RFC3339), true
	case []byte:
		return string(val), true
	case interface{ String() string }:
		return val.String(), true
	}
	if s, ok := integerText(v); ok {
		return s, true
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

// integerText formats integer values exactly; float64 loses precision
// past 2^53.
func integerText(v any) (string, bool) {
	if n, ok := toInt(v); ok {
		return strconv.FormatInt(n, 10), true
	}
	switch n := v.(type) {
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	}
	return "", false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
}

// AsTime converts a raw field value to a time using the same rules as
// Record.Time.
func AsTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	}
	if ms, ok := toFloat(v); ok {
		return time.UnixMilli(int64(ms)), true
	}
	return time.Time{}, false
}
