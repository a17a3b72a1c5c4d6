package replay

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgajeed76/dataview/internal/record"
	"github.com/imgajeed76/dataview/internal/sorting"
	"github.com/imgajeed76/dataview/internal/view"
)

func rows(n int) []record.Record {
	names := []string{"Ventas", "árbol", "Logística", "compras", "Éxito"}
	out := make([]record.Record, n)
	for i := range out {
		out[i] = record.Record{
			"id":         fmt.Sprintf("r%02d", i),
			"nombre":     names[i%len(names)],
			"total":      float64(i % 4),
			"is_active":  i%2 == 0,
			"created_at": fmt.Sprintf("2024-01-%02dT10:00:00Z", i%28+1),
		}
	}
	return out
}

func TestScript_Shape(t *testing.T) {
	script := Script([]string{"nombre", "total"}, 23, 10, true)

	// 2 fields x 3 sort states x (1 sort + 3 pages x 3 steps) + reset
	require.Len(t, script, 2*3*(1+3*3)+1)
	assert.Equal(t, Action{Kind: KindSort, Field: "nombre"}, script[0])
	assert.Equal(t, Action{Kind: KindPage, Page: 1}, script[1])
	assert.Equal(t, KindExpandAll, script[2].Kind)
	assert.Equal(t, KindReset, script[len(script)-1].Kind)

	noExpand := Script([]string{"nombre"}, 0, 10, false)
	assert.Len(t, noExpand, 3*(1+1)+1, "an empty collection still has one page")
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "sort nombre", Action{Kind: KindSort, Field: "nombre"}.String())
	assert.Equal(t, "page 3", Action{Kind: KindPage, Page: 3}.String())
	assert.Equal(t, "toggle r01", Action{Kind: KindToggle, ID: "r01"}.String())
	assert.Equal(t, "expand-all", Action{Kind: KindExpandAll}.String())
}

func TestCompare_MemoMatchesRecompute(t *testing.T) {
	data := rows(37)
	cfg := view.Config{SortField: "created_at", SortDirection: sorting.Desc, ItemsPerPage: 7}

	memoized := view.New(cfg, data)
	cfg.DisableMemo = true
	plain := view.New(cfg, data)

	script := Script([]string{"nombre", "total", "is_active", "created_at"}, len(data), 7, true)
	checked, mismatches, err := Compare(plain, memoized, script)
	require.NoError(t, err)
	assert.Equal(t, len(script), checked)
	assert.Empty(t, mismatches)
}

func TestCompare_ReportsDivergence(t *testing.T) {
	data := rows(12)
	a := view.New(view.Config{ItemsPerPage: 5}, data)
	b := view.New(view.Config{ItemsPerPage: 4}, data)

	_, mismatches, err := Compare(a, b, []Action{{Kind: KindPage, Page: 2}})
	require.NoError(t, err)
	require.Len(t, mismatches, 1)
	assert.Equal(t, 1, mismatches[0].Step)
	assert.Equal(t, []string{"r05", "r06", "r07", "r08", "r09"}, mismatches[0].Want.IDs)
	assert.Equal(t, []string{"r04", "r05", "r06", "r07"}, mismatches[0].Got.IDs)
}

func TestReference_AgreesWithController(t *testing.T) {
	data := rows(23)
	configs := map[string]view.Config{
		"default":       {ItemsPerPage: 5},
		"english":       {ItemsPerPage: 4, Locale: "en"},
		"narrow window": {ItemsPerPage: 2, MaxVisiblePages: 3},
		"single page":   {DisablePagination: true},
		"unsortable":    {ItemsPerPage: 6, DisableSorting: true},
	}
	script := Script([]string{"nombre", "total", "created_at"}, len(data), 4, true)

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			ctl := view.New(cfg, data)
			for _, action := range script {
				action.Apply(ctl)
				assert.Equal(t, Describe(Take(ctl)), Describe(Reference(ctl)), action.String())
			}
		})
	}
}

func TestReference_SortsAndPages(t *testing.T) {
	data := []record.Record{
		{"id": "a", "total": 3.0},
		{"id": "b", "total": 1.0},
		{"id": "c", "total": 2.0},
	}
	ctl := view.New(view.Config{ItemsPerPage: 2}, data)
	ctl.HandleSort("total")
	ctl.HandleSort("total")
	ctl.GoToNextPage()

	snap := Reference(ctl)
	assert.Equal(t, sorting.NewState("total", sorting.Asc), snap.Sort)
	assert.Equal(t, []string{"a"}, snap.IDs)
	assert.Equal(t, 2, snap.Info.CurrentPage)
	assert.Equal(t, []int{1, 2}, snap.Numbers)
}

func TestTake_RowsWithoutID(t *testing.T) {
	ctl := view.New(view.Config{}, []record.Record{{"nombre": "x"}, {"id": "a"}})
	snap := Take(ctl)
	assert.Equal(t, []string{"?", "a"}, snap.IDs)
	assert.Equal(t, 2, snap.Info.TotalItems)
}

func TestFingerprint_Stable(t *testing.T) {
	ctl := view.New(view.Config{ItemsPerPage: 3}, rows(9))
	h1, err := Fingerprint(Take(ctl))
	require.NoError(t, err)
	h2, err := Fingerprint(Take(ctl))
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	ctl.GoToNextPage()
	h3, err := Fingerprint(Take(ctl))
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestDiffLines(t *testing.T) {
	lines := DiffLines("a\nb\nc\n", "a\nB\nc\n")

	var got []string
	for _, l := range lines {
		got = append(got, l.Prefix()+l.Content)
	}
	assert.Equal(t, []string{" a", "-b", "+B", " c"}, got)
}

func TestDescribe(t *testing.T) {
	ctl := view.New(view.Config{ItemsPerPage: 2}, rows(3))
	out := Describe(Take(ctl))
	assert.Contains(t, out, "page: 1 of 2 (2 per page, 3 items)\n")
	assert.Contains(t, out, "row r00\nrow r01\n")
}
