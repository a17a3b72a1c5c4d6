// Package search filters collections by a free-text query across a set of
// declared fields. Matching ignores case and diacritics, so "area", "AREA"
// and "Área" are the same word.
package search

import (
	"strings"
	"unicode"

	"github.com/imgajeed76/dataview/internal/record"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer folds text for comparison. A Normalizer is not safe for
// concurrent use.
type Normalizer struct {
	strip transform.Transformer
	fold  cases.Caser
}

// NewNormalizer returns a normalizer that decomposes, drops combining
// marks, recomposes and case folds.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		strip: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		fold:  cases.Fold(),
	}
}

// Normalize folds s. Text that fails to transform is folded as is.
func (n *Normalizer) Normalize(s string) string {
	stripped, _, err := transform.String(n.strip, s)
	if err != nil {
		stripped = s
	}
	return n.fold.String(stripped)
}

// Normalize folds s with a fresh Normalizer.
func Normalize(s string) string {
	return NewNormalizer().Normalize(s)
}

// Search returns the records where any of fields contains query. A blank
// query returns records unchanged. Absent fields are skipped and
// non-string values are matched on their text form.
func Search(records []record.Record, query string, fields []string) []record.Record {
	m := NewMatcher(query, fields)
	if m == nil {
		return records
	}
	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		if m.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Count returns how many records Search would keep. A blank query counts
// nothing.
func Count(records []record.Record, query string, fields []string) int {
	m := NewMatcher(query, fields)
	if m == nil {
		return 0
	}
	n := 0
	for _, r := range records {
		if m.Match(r) {
			n++
		}
	}
	return n
}

// Matcher tests records against one folded query. Build it once per query
// and reuse it across records. It is not safe for concurrent use.
type Matcher struct {
	norm   *Normalizer
	query  string
	fields []string
}

// NewMatcher folds query once. It returns nil for a blank query.
func NewMatcher(query string, fields []string) *Matcher {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	n := NewNormalizer()
	return &Matcher{norm: n, query: n.Normalize(query), fields: fields}
}

// Match reports whether any of the matcher's fields contains the query.
func (m *Matcher) Match(r record.Record) bool {
	if m == nil {
		return false
	}
	for _, field := range m.fields {
		if m.MatchField(r, field) {
			return true
		}
	}
	return false
}

// MatchField reports whether one field of r contains the query. The field
// need not be one of the matcher's fields. A nil matcher matches nothing.
func (m *Matcher) MatchField(r record.Record, field string) bool {
	if m == nil {
		return false
	}
	_, ok := m.field(r, field)
	return ok
}

// field returns the raw text of a field when it contains the query.
func (m *Matcher) field(r record.Record, field string) (string, bool) {
	v, ok := r.Lookup(field)
	if !ok {
		return "", false
	}
	text, ok := record.Text(v)
	if !ok {
		return "", false
	}
	return text, strings.Contains(m.norm.Normalize(text), m.query)
}

// Match is one field of a record that contains the query.
type Match struct {
	Field string
	Value string
}

// Matches lists the fields of r that contain query, in field order.
func Matches(r record.Record, query string, fields []string) []Match {
	m := NewMatcher(query, fields)
	if m == nil {
		return nil
	}
	var out []Match
	for _, field := range fields {
		if text, ok := m.field(r, field); ok {
			out = append(out, Match{Field: field, Value: text})
		}
	}
	return out
}

// Suggestions returns up to limit distinct lowercase words from the
// searched fields that contain query without being equal to it.
func Suggestions(records []record.Record, query string, fields []string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" || limit < 1 {
		return nil
	}
	n := NewNormalizer()
	needle := n.Normalize(query)

	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		for _, field := range fields {
			s, ok := r.String(field)
			if !ok {
				continue
			}
			for _, word := range strings.Fields(strings.ToLower(s)) {
				folded := n.Normalize(word)
				if folded == needle || !strings.Contains(folded, needle) {
					continue
				}
				if _, dup := seen[word]; dup {
					continue
				}
				seen[word] = struct{}{}
				out = append(out, word)
				if len(out) == limit {
					return out
				}
			}
		}
	}
	return out
}
