package record

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_Coercion(t *testing.T) {
	assert.Empty(t, Collection(nil))
	assert.Empty(t, Collection("not a slice"))
	assert.Empty(t, Collection(42))
	assert.NotNil(t, Collection([]Record(nil)))

	mixed := []any{
		map[string]any{"id": 1},
		"skip me",
		Record{"id": 2},
		nil,
	}
	got := Collection(mixed)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0]["id"])
	assert.Equal(t, 2, got[1]["id"])

	maps := []map[string]any{{"id": "a"}, nil, {"id": "b"}}
	assert.Len(t, Collection(maps), 2)
}

func TestLookup_NestedPaths(t *testing.T) {
	r := Record{
		"nombre":   "Área",
		"category": map[string]any{"name": "General", "meta": map[string]any{"code": "G"}},
		"empty":    nil,
	}

	v, ok := r.Lookup("category.name")
	require.True(t, ok)
	assert.Equal(t, "General", v)

	v, ok = r.Lookup("category.meta.code")
	require.True(t, ok)
	assert.Equal(t, "G", v)

	_, ok = r.Lookup("category.missing")
	assert.False(t, ok)
	_, ok = r.Lookup("nombre.length")
	assert.False(t, ok)
	_, ok = r.Lookup("empty")
	assert.False(t, ok, "nil values count as absent")

	var nilRecord Record
	_, ok = nilRecord.Lookup("id")
	assert.False(t, ok)
}

func TestLookup_LiteralDottedKeyWins(t *testing.T) {
	r := Record{"a.b": "literal", "a": map[string]any{"b": "nested"}}
	v, ok := r.Lookup("a.b")
	require.True(t, ok)
	assert.Equal(t, "literal", v)
}

func TestID(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
		ok     bool
	}{
		{"string", Record{"id": "abc"}, "abc", true},
		{"float", Record{"id": float64(12)}, "12", true},
		{"int", Record{"id": 7}, "7", true},
		{"bigint past 2^53", Record{"id": int64(9007199254740993)}, "9007199254740993", true},
		{"uint64", Record{"id": uint64(18446744073709551615)}, "18446744073709551615", true},
		{"int64 zero", Record{"id": int64(0)}, "", false},
		{"json number", Record{"id": json.Number("99")}, "99", true},
		{"zero", Record{"id": 0}, "", false},
		{"empty string", Record{"id": ""}, "", false},
		{"false", Record{"id": false}, "", false},
		{"missing", Record{"name": "x"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.record.ID()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTime_Parsing(t *testing.T) {
	want := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

	r := Record{
		"rfc":     "2024-03-05T10:30:00Z",
		"space":   "2024-03-05 10:30:00",
		"day":     "2024-03-05",
		"millis":  float64(want.UnixMilli()),
		"native":  want,
		"garbage": "not a date",
		"blank":   "  ",
	}

	got, ok := r.Time("rfc")
	require.True(t, ok)
	assert.True(t, got.Equal(want))

	got, ok = r.Time("space")
	require.True(t, ok)
	assert.True(t, got.Equal(want))

	got, ok = r.Time("day")
	require.True(t, ok)
	assert.Equal(t, 5, got.Day())

	got, ok = r.Time("millis")
	require.True(t, ok)
	assert.True(t, got.Equal(want))

	got, ok = r.Time("native")
	require.True(t, ok)
	assert.True(t, got.Equal(want))

	_, ok = r.Time("garbage")
	assert.False(t, ok)
	_, ok = r.Time("blank")
	assert.False(t, ok)
	_, ok = r.Time("missing")
	assert.False(t, ok)
}

func TestText(t *testing.T) {
	s, ok := Text(float64(3.5))
	require.True(t, ok)
	assert.Equal(t, "3.5", s)

	s, ok = Text(int64(42))
	require.True(t, ok)
	assert.Equal(t, "42", s)

	s, ok = Text(int64(9007199254740993))
	require.True(t, ok)
	assert.Equal(t, "9007199254740993", s)

	s, ok = Text(true)
	require.True(t, ok)
	assert.Equal(t, "true", s)

	_, ok = Text(nil)
	assert.False(t, ok)

	_, ok = Text([]any{1, 2})
	assert.False(t, ok)
}

func TestTypedAccessors(t *testing.T) {
	r := Record{"name": "Ventas", "count": int32(3), "is_active": true}

	name, ok := r.String("name")
	require.True(t, ok)
	assert.Equal(t, "Ventas", name)

	_, ok = r.String("count")
	assert.False(t, ok)

	count, ok := r.Float("count")
	require.True(t, ok)
	assert.Equal(t, 3.0, count)

	n, ok := r.Int("count")
	require.True(t, ok)
	assert.Equal(t, int64(3), n)
	_, ok = Record{"total": 3.0}.Int("total")
	assert.False(t, ok)

	active, ok := r.Bool("is_active")
	require.True(t, ok)
	assert.True(t, active)
}
