package sorting

import (
	"testing"

	"github.com/imgajeed76/dataview/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(records []record.Record) []any {
	out := make([]any, len(records))
	for i, r := range records {
		out[i] = r["id"]
	}
	return out
}

func TestSort_UnsortedReturnsCopy(t *testing.T) {
	in := []record.Record{{"id": 2}, {"id": 1}}
	out := Sort(in, nil, State{})

	assert.Equal(t, ids(in), ids(out))
	out[0] = record.Record{"id": 99}
	assert.Equal(t, 2, in[0]["id"], "input must not be mutated")
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	in := []record.Record{{"id": 1, "n": 3.0}, {"id": 2, "n": 1.0}, {"id": 3, "n": 2.0}}
	out := Sort(in, nil, NewState("n", Asc))

	assert.Equal(t, []any{2, 3, 1}, ids(out))
	assert.Equal(t, []any{1, 2, 3}, ids(in))
}

func TestSort_Numbers(t *testing.T) {
	in := []record.Record{
		{"id": "a", "count": 10},
		{"id": "b", "count": int64(2)},
		{"id": "c", "count": 7.5},
	}
	schema := record.NewSchema(record.Field{Name: "count", Kind: record.KindNumber})

	assert.Equal(t, []any{"b", "c", "a"}, ids(Sort(in, schema, NewState("count", Asc))))
	assert.Equal(t, []any{"a", "c", "b"}, ids(Sort(in, schema, NewState("count", Desc))))
}

func TestSort_BigintsCompareExactly(t *testing.T) {
	in := []record.Record{
		{"id": "a", "n": int64(9007199254740993)},
		{"id": "b", "n": int64(9007199254740992)},
		{"id": "c", "n": 5.0},
	}
	schema := record.NewSchema(record.Field{Name: "n", Kind: record.KindNumber})

	assert.Equal(t, []any{"c", "b", "a"}, ids(Sort(in, schema, NewState("n", Asc))))
	assert.Equal(t, []any{"a", "b", "c"}, ids(Sort(in, schema, NewState("n", Desc))))
}

func TestSort_StableOnTies(t *testing.T) {
	in := []record.Record{
		{"id": 1, "group": "b"},
		{"id": 2, "group": "a"},
		{"id": 3, "group": "b"},
		{"id": 4, "group": "a"},
	}
	assert.Equal(t, []any{2, 4, 1, 3}, ids(Sort(in, nil, NewState("group", Asc))))
	assert.Equal(t, []any{1, 3, 2, 4}, ids(Sort(in, nil, NewState("group", Desc))))
}

func TestSort_Idempotent(t *testing.T) {
	in := []record.Record{
		{"id": 1, "name": "Ventas"},
		{"id": 2, "name": "área legal"},
		{"id": 3, "name": "Compras"},
		{"id": 4, "name": "ventas"},
	}
	state := NewState("name", Asc)
	once := Sort(in, nil, state)
	twice := Sort(once, nil, state)
	assert.Equal(t, ids(once), ids(twice))
}

func TestSort_StringCollation(t *testing.T) {
	in := []record.Record{
		{"id": "zeta", "name": "zeta"},
		{"id": "arbol", "name": "Árbol"},
		{"id": "nandu", "name": "ñandú"},
		{"id": "nube", "name": "nube"},
		{"id": "banana", "name": "banana"},
	}
	got := NewSorter("es").Sort(in, nil, NewState("name", Asc))
	assert.Equal(t, []any{"arbol", "banana", "nube", "nandu", "zeta"}, ids(got))
}

func TestSort_StringCaseInsensitive(t *testing.T) {
	in := []record.Record{
		{"id": 1, "name": "apple"},
		{"id": 2, "name": "Apple"},
		{"id": 3, "name": "APPLE"},
	}
	// Case differences are ties, so the stable sort keeps input order.
	assert.Equal(t, []any{1, 2, 3}, ids(Sort(in, nil, NewState("name", Asc))))
	assert.Equal(t, []any{1, 2, 3}, ids(Sort(in, nil, NewState("name", Desc))))
}

func TestSort_Dates(t *testing.T) {
	in := []record.Record{
		{"id": "mid", "created_at": "2024-02-01T00:00:00Z"},
		{"id": "old", "created_at": "2023-01-01"},
		{"id": "none"},
		{"id": "new", "created_at": "2024-06-01 08:00:00"},
		{"id": "bad", "created_at": "yesterday"},
	}

	asc := Sort(in, nil, NewState("created_at", Asc))
	assert.Equal(t, []any{"none", "bad", "old", "mid", "new"}, ids(asc))

	desc := Sort(in, nil, NewState("created_at", Desc))
	assert.Equal(t, []any{"new", "mid", "old", "none", "bad"}, ids(desc))
}

func TestSort_DateFallsBackToCreated(t *testing.T) {
	in := []record.Record{
		{"id": 1, "created_at": "2024-05-01"},
		{"id": 2, "created": "2024-01-01"},
		{"id": 3, "created_at": "2024-03-01"},
	}
	assert.Equal(t, []any{2, 3, 1}, ids(Sort(in, nil, NewState("created_at", Asc))))
}

func TestSort_DerivedBoolDesc(t *testing.T) {
	in := []record.Record{
		{"id": 1, "question_embedding": []any{}},
		{"id": 2, "question_embedding": []any{0.1}},
		{"id": 3},
		{"id": 4, "question_embedding": []any{0.2, 0.3}},
		{"id": 5, "question_embedding": nil},
	}

	got := Sort(in, nil, NewState("has_embedding", Desc))
	assert.Equal(t, []any{2, 4, 1, 3, 5}, ids(got))

	got = Sort(in, nil, NewState("has_embedding", Asc))
	assert.Equal(t, []any{1, 3, 5, 2, 4}, ids(got))
}

func TestSort_Bools(t *testing.T) {
	in := []record.Record{
		{"id": 1, "is_active": true},
		{"id": 2, "is_active": false},
		{"id": 3},
		{"id": 4, "is_active": true},
	}
	got := Sort(in, nil, NewState("is_active", Asc))
	assert.Equal(t, []any{2, 3, 1, 4}, ids(got))
}

func TestSort_MissingSortsLowest(t *testing.T) {
	schema := record.NewSchema(
		record.Field{Name: "name", Kind: record.KindString},
		record.Field{Name: "count", Kind: record.KindNumber},
	)
	in := []record.Record{
		{"id": 1, "name": "b", "count": 2},
		{"id": 2},
		{"id": 3, "name": "a", "count": 1},
	}

	assert.Equal(t, []any{2, 3, 1}, ids(Sort(in, schema, NewState("name", Asc))))
	assert.Equal(t, []any{2, 3, 1}, ids(Sort(in, schema, NewState("count", Asc))))
	assert.Equal(t, []any{1, 3, 2}, ids(Sort(in, schema, NewState("count", Desc))))
}

func TestSort_MismatchedTypesCompareEqual(t *testing.T) {
	schema := record.NewSchema(record.Field{Name: "code", Kind: record.KindString})
	in := []record.Record{
		{"id": 1, "code": 42},
		{"id": 2, "code": true},
		{"id": 3, "code": []any{"x"}},
	}
	assert.Equal(t, []any{1, 2, 3}, ids(Sort(in, schema, NewState("code", Asc))))
}

func TestSort_MismatchedRankBetweenMissingAndValues(t *testing.T) {
	in := []record.Record{
		{"id": 1, "v": 5},
		{"id": 2, "v": "b"},
		{"id": 3, "v": 3},
		{"id": 4},
		{"id": 5, "v": "a"},
		{"id": 6, "v": 1},
	}

	assert.Equal(t, []any{4, 2, 5, 6, 3, 1}, ids(Sort(in, nil, NewState("v", Asc))))
	assert.Equal(t, []any{1, 3, 6, 2, 5, 4}, ids(Sort(in, nil, NewState("v", Desc))))
}

func TestSort_MixedColumnIdempotent(t *testing.T) {
	values := []any{5, "b", 3, nil, "a", 1, "c", 2}
	in := make([]record.Record, 40)
	for i := range in {
		in[i] = record.Record{"id": i, "v": values[i%len(values)]}
	}

	for _, dir := range []Direction{Asc, Desc} {
		state := NewState("v", dir)
		once := Sort(in, nil, state)
		twice := Sort(once, nil, state)
		assert.Equal(t, ids(once), ids(twice), string(dir))
	}
}

func TestSort_UnknownFieldKeepsOrder(t *testing.T) {
	in := []record.Record{
		{"id": 1, "tags": []any{"b"}},
		{"id": 2, "tags": []any{"a"}},
	}
	assert.Equal(t, []any{1, 2}, ids(Sort(in, nil, NewState("tags", Asc))))
	assert.Equal(t, []any{1, 2}, ids(Sort(in, nil, NewState("nope", Desc))))
}

func TestSort_EmptyAndNil(t *testing.T) {
	assert.Empty(t, Sort(nil, nil, NewState("name", Asc)))
	out := Sort([]record.Record{}, nil, NewState("name", Asc))
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestNewSorter_BadLocaleFallsBack(t *testing.T) {
	s := NewSorter("not a locale!!")
	assert.Equal(t, DefaultLocale, s.Locale().String())
	assert.Equal(t, "en", NewSorter("en").Locale().String())
}
