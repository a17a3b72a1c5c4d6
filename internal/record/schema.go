package record

import (
	"reflect"
	"strings"
	"time"
)

// Kind tags how a field is compared. It is resolved once per field
// declaration, never per comparison.
type Kind int

const (
	KindAuto Kind = iota // inferred from the collection at sort time
	KindString
	KindNumber
	KindBool
	KindDate
	KindDerivedBool
)

var kindNames = map[Kind]string{
	KindAuto:        "auto",
	KindString:      "string",
	KindNumber:      "number",
	KindBool:        "bool",
	KindDate:        "date",
	KindDerivedBool: "derived",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "auto"
}

// ParseKind maps a config name ("string", "date", ...) to a Kind.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "auto":
		return KindAuto, true
	case "boolean":
		return KindBool, true
	case "datetime", "time", "timestamp":
		return KindDate, true
	case "int", "float", "numeric":
		return KindNumber, true
	case "text":
		return KindString, true
	}
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindAuto, false
}

// Field declares one sortable or searchable column of a screen.
type Field struct {
	Name   string
	Label  string
	Kind   Kind
	Derive func(Record) bool // required for KindDerivedBool
}

// Value returns the comparable value of the field on a record. Derived
// booleans are always present.
func (f Field) Value(r Record) (any, bool) {
	if f.Kind == KindDerivedBool && f.Derive != nil {
		return f.Derive(r), true
	}
	return r.Lookup(f.Name)
}

// Title returns the label, falling back to the field name.
func (f Field) Title() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// temporalSuffixes mark date-like field names.
var temporalSuffixes = []string{"_at", "_date", "created", "updated", "timestamp"}

// IsTemporalName reports whether a field name carries a recognized
// temporal suffix.
func IsTemporalName(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range temporalSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// builtins are derived fields every screen understands without declaring
// them.
var builtins = map[string]Field{
	"has_embedding": {
		Name:   "has_embedding",
		Label:  "Embedding",
		Kind:   KindDerivedBool,
		Derive: NonEmpty("question_embedding"),
	},
}

// Schema is the set of fields a screen declares.
type Schema struct {
	fields map[string]Field
	order  []string
}

// NewSchema builds a schema from field declarations.
func NewSchema(fields ...Field) *Schema {
	s := &Schema{fields: make(map[string]Field, len(fields))}
	for _, f := range fields {
		s.Add(f)
	}
	return s
}

// Add declares or replaces a field. A derived kind without a Derive func
// degrades to auto.
func (s *Schema) Add(f Field) {
	if f.Name == "" {
		return
	}
	if f.Kind == KindDerivedBool && f.Derive == nil {
		f.Kind = KindAuto
	}
	if f.Kind == KindAuto && IsTemporalName(f.Name) {
		f.Kind = KindDate
	}
	if _, exists := s.fields[f.Name]; !exists {
		s.order = append(s.order, f.Name)
	}
	s.fields[f.Name] = f
}

// Resolve returns the declaration for a field name. Undeclared names get a
// synthesized declaration: built-in derived fields, date for temporal
// names, auto otherwise. A nil schema is valid.
func (s *Schema) Resolve(name string) Field {
	if s != nil {
		if f, ok := s.fields[name]; ok {
			return f
		}
	}
	if f, ok := builtins[name]; ok {
		return f
	}
	if IsTemporalName(name) {
		return Field{Name: name, Kind: KindDate}
	}
	return Field{Name: name, Kind: KindAuto}
}

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []Field {
	if s == nil {
		return nil
	}
	out := make([]Field, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.fields[name])
	}
	return out
}

// Infer picks a kind for an auto field from the first non-nil value in the
// collection.
func Infer(records []Record, name string) Kind {
	if IsTemporalName(name) {
		return KindDate
	}
	for _, r := range records {
		v, ok := r.Lookup(name)
		if !ok {
			continue
		}
		switch v.(type) {
		case string:
			return KindString
		case bool:
			return KindBool
		case time.Time, *time.Time:
			return KindDate
		}
		if _, ok := toFloat(v); ok {
			return KindNumber
		}
		return KindAuto
	}
	return KindAuto
}

// NonEmpty derives "has at least one related child" style flags: true when
// the value at path is a non-empty slice, map or string, a true bool or a
// non-zero number.
func NonEmpty(path string) func(Record) bool {
	return func(r Record) bool {
		v, ok := r.Lookup(path)
		if !ok {
			return false
		}
		switch val := v.(type) {
		case string:
			return val != ""
		case bool:
			return val
		case []any:
			return len(val) > 0
		case map[string]any:
			return len(val) > 0
		case Record:
			return len(val) > 0
		}
		if f, ok := toFloat(v); ok {
			return f != 0
		}
		switch rv := reflect.ValueOf(v); rv.Kind() {
		case reflect.Slice, reflect.Map, reflect.Array:
			return rv.Len() > 0
		case reflect.Pointer:
			return !rv.IsNil()
		}
		return true
	}
}

// ParseDerive turns a config expression into a derive func. Only
// "non_empty:<path>" is understood.
func ParseDerive(expr string) (func(Record) bool, bool) {
	name, arg, found := strings.Cut(strings.TrimSpace(expr), ":")
	if !found || arg == "" {
		return nil, false
	}
	switch strings.ToLower(name) {
	case "non_empty", "nonempty", "has":
		return NonEmpty(strings.TrimSpace(arg)), true
	}
	return nil, false
}
