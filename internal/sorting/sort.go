// Package sorting is the comparator engine shared by every list screen.
//
// Sort dispatches on the field's kind, resolved once per call: dates compare
// as epoch milliseconds, booleans (stored or derived) as 0/1, strings through
// a locale collator that ignores case, numbers numerically. Missing values
// sort lowest, then values of the wrong type, which compare equal among
// themselves so the stable sort keeps their relative order.
package sorting

import (
	"cmp"
	"slices"

	"github.com/imgajeed76/dataview/internal/record"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is used for string collation when none is configured.
const DefaultLocale = "es"

// Sorter sorts collections with a fixed collation locale. It is not safe
// for concurrent use.
type Sorter struct {
	locale   language.Tag
	collator *collate.Collator
}

// NewSorter builds a sorter for a BCP 47 locale. Unparseable locales fall
// back to DefaultLocale.
func NewSorter(locale string) *Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Sorter{
		locale:   tag,
		collator: collate.New(tag, collate.IgnoreCase),
	}
}

// Locale returns the collation locale.
func (s *Sorter) Locale() language.Tag {
	return s.locale
}

// Sort returns a sorted copy of records using the default locale.
func Sort(records []record.Record, schema *record.Schema, state State) []record.Record {
	return NewSorter(DefaultLocale).Sort(records, schema, state)
}

// Sort returns a sorted copy of records. The input is never mutated; an
// unsorted state returns a shallow copy in the original order.
func (s *Sorter) Sort(records []record.Record, schema *record.Schema, state State) []record.Record {
	out := make([]record.Record, len(records))
	copy(out, records)
	if !state.IsSorted() || len(out) < 2 {
		return out
	}

	field := schema.Resolve(state.Field)
	kind := field.Kind
	if kind == record.KindAuto {
		kind = record.Infer(records, field.Name)
	}
	if kind == record.KindAuto {
		return out
	}

	compare := s.comparator(field, kind)
	if state.Direction == Desc {
		asc := compare
		compare = func(a, b record.Record) int { return -asc(a, b) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

// valueState classifies one side of a comparison. States are ordered:
// missing values rank lowest, values of the wrong type next, comparable
// values last.
type valueState int

const (
	valueMissing valueState = iota
	valueMismatched
	valueOK
)

// compareStates ranks two sides by state. It reports false when both sides
// hold comparable values and the caller must compare them.
func compareStates(a, b valueState) (int, bool) {
	if a == valueOK && b == valueOK {
		return 0, false
	}
	return cmp.Compare(a, b), true
}

func (s *Sorter) comparator(field record.Field, kind record.Kind) func(a, b record.Record) int {
	switch kind {
	case record.KindDate:
		return func(a, b record.Record) int {
			av, as := dateValue(a, field.Name)
			bv, bs := dateValue(b, field.Name)
			if c, done := compareStates(as, bs); done {
				return c
			}
			return cmp.Compare(av, bv)
		}

	case record.KindBool, record.KindDerivedBool:
		return func(a, b record.Record) int {
			return cmp.Compare(boolValue(a, field), boolValue(b, field))
		}

	case record.KindString:
		return func(a, b record.Record) int {
			av, as := stringValue(a, field.Name)
			bv, bs := stringValue(b, field.Name)
			if c, done := compareStates(as, bs); done {
				return c
			}
			return s.collator.CompareString(av, bv)
		}

	case record.KindNumber:
		return func(a, b record.Record) int {
			av, as := numberValue(a, field.Name)
			bv, bs := numberValue(b, field.Name)
			if c, done := compareStates(as, bs); done {
				return c
			}
			if ai, ok := a.Int(field.Name); ok {
				if bi, ok := b.Int(field.Name); ok {
					return cmp.Compare(ai, bi)
				}
			}
			return cmp.Compare(av, bv)
		}
	}
	return func(a, b record.Record) int { return 0 }
}

// dateFallback is consulted when a record lacks its created/updated stamp.
const dateFallback = "created"

func dateValue(r record.Record, name string) (int64, valueState) {
	raw, ok := r.Lookup(name)
	if !ok && (name == "created_at" || name == "updated_at") {
		raw, ok = r.Lookup(dateFallback)
	}
	if !ok {
		return 0, valueMissing
	}
	t, ok := record.AsTime(raw)
	if !ok {
		// Unparseable dates rank with missing ones.
		return 0, valueMissing
	}
	return t.UnixMilli(), valueOK
}

func boolValue(r record.Record, field record.Field) int {
	v, ok := field.Value(r)
	if !ok {
		return 0
	}
	if b, isBool := v.(bool); isBool && b {
		return 1
	}
	return 0
}

func stringValue(r record.Record, name string) (string, valueState) {
	v, ok := r.Lookup(name)
	if !ok {
		return "", valueMissing
	}
	str, ok := v.(string)
	if !ok {
		return "", valueMismatched
	}
	return str, valueOK
}

func numberValue(r record.Record, name string) (float64, valueState) {
	if _, ok := r.Lookup(name); !ok {
		return 0, valueMissing
	}
	f, ok := r.Float(name)
	if !ok {
		return 0, valueMismatched
	}
	return f, valueOK
}
