package search

import (
	"strings"
	"time"

	"github.com/imgajeed76/dataview/internal/record"
)

// Embedding filters on whether a record carries a question embedding.
type Embedding string

const (
	EmbeddingAny     Embedding = ""
	EmbeddingWith    Embedding = "with"
	EmbeddingWithout Embedding = "without"
)

// Default field names used when a Filters field name is left empty.
const (
	DefaultCategoryField  = "category"
	DefaultEmbeddingField = "question_embedding"
	DefaultActiveField    = "is_active"
	DefaultDateField      = "created_at"
)

// Filters combines a text query with the structured filters list screens
// offer. The zero value filters nothing.
type Filters struct {
	Query          string
	Fields         []string
	MinQueryLength int

	CategoryID    string
	CategoryField string

	Embedding      Embedding
	EmbeddingField string

	Active      *bool
	ActiveField string

	DateField string
	From      time.Time
	To        time.Time
}

// HasQuery reports whether the query is long enough to be applied.
func (f Filters) HasQuery() bool {
	q := strings.TrimSpace(f.Query)
	return q != "" && len([]rune(q)) >= f.MinQueryLength && len(f.Fields) > 0
}

// HasFilters reports whether any structured filter is set.
func (f Filters) HasFilters() bool {
	return f.CategoryID != "" || f.Embedding != EmbeddingAny || f.Active != nil ||
		!f.From.IsZero() || !f.To.IsZero()
}

// Apply runs the query and every set filter over records, in that order.
func Apply(records []record.Record, f Filters) []record.Record {
	out := records
	if f.HasQuery() {
		out = Search(out, f.Query, f.Fields)
	}
	if f.CategoryID != "" {
		out = keep(out, categoryIs(or(f.CategoryField, DefaultCategoryField), f.CategoryID))
	}
	if f.Embedding == EmbeddingWith || f.Embedding == EmbeddingWithout {
		has := record.NonEmpty(or(f.EmbeddingField, DefaultEmbeddingField))
		want := f.Embedding == EmbeddingWith
		out = keep(out, func(r record.Record) bool { return has(r) == want })
	}
	if f.Active != nil {
		field, want := or(f.ActiveField, DefaultActiveField), *f.Active
		out = keep(out, func(r record.Record) bool { return truthy(r, field) == want })
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		out = keep(out, dateWithin(or(f.DateField, DefaultDateField), f.From, f.To))
	}
	return out
}

// Stats summarizes how much of a collection a filter kept.
type Stats struct {
	Total           int
	Filtered        int
	Hidden          int
	MatchPercentage int
}

// StatsOf compares a filtered collection against its source size.
func StatsOf(total, filtered int) Stats {
	s := Stats{Total: total, Filtered: filtered, Hidden: total - filtered}
	if total > 0 {
		s.MatchPercentage = (filtered*100 + total/2) / total
	}
	return s
}

func keep(records []record.Record, pred func(record.Record) bool) []record.Record {
	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// categoryIs matches a category given either as an object with an id or
// as a bare id.
func categoryIs(field, id string) func(record.Record) bool {
	return func(r record.Record) bool {
		v, ok := r.Lookup(field)
		if !ok {
			return false
		}
		switch c := v.(type) {
		case map[string]any:
			v, ok = record.Record(c).Lookup(record.IDField)
		case record.Record:
			v, ok = c.Lookup(record.IDField)
		}
		if !ok {
			return false
		}
		text, ok := record.Text(v)
		return ok && text == id
	}
}

// truthy mirrors loose boolean coercion: missing, false, zero and empty
// strings are false.
func truthy(r record.Record, field string) bool {
	v, ok := r.Lookup(field)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b != ""
	}
	if text, ok := record.Text(v); ok {
		return text != "0"
	}
	return true
}

func dateWithin(field string, from, to time.Time) func(record.Record) bool {
	return func(r record.Record) bool {
		t, ok := r.Time(field)
		if !ok {
			return false
		}
		if !from.IsZero() && t.Before(from) {
			return false
		}
		if !to.IsZero() && t.After(to) {
			return false
		}
		return true
	}
}
