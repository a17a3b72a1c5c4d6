package table

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/imgajeed76/dataview/internal/record"
	"github.com/imgajeed76/dataview/internal/sorting"
	"github.com/imgajeed76/dataview/internal/ui/styles"
	"github.com/imgajeed76/dataview/internal/util"
	"github.com/imgajeed76/dataview/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noColor(t *testing.T) {
	t.Helper()
	styles.Configure(true, false)
	t.Cleanup(func() { styles.Configure(false, false) })
}

// areas builds n area records with ids "1".."n".
func areas(n int) []record.Record {
	names := []string{"Ventas", "Árbol", "logística", "Compras"}
	out := make([]record.Record, n)
	for i := range out {
		cargos := []any{}
		if i%2 == 0 {
			cargos = append(cargos, map[string]any{"id": float64(i), "nombre": "Jefe"})
		}
		out[i] = record.Record{
			"id":         fmt.Sprint(i + 1),
			"nombre":     names[i%len(names)],
			"cargos":     cargos,
			"is_active":  i%3 != 0,
			"created_at": time.Date(2024, 1, i+1, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
		}
	}
	return out
}

func areaSchema() *record.Schema {
	return record.NewSchema(
		record.Field{Name: "nombre", Label: "Nombre", Kind: record.KindString},
		record.Field{Name: "has_cargos", Label: "Cargos", Kind: record.KindDerivedBool, Derive: record.NonEmpty("cargos")},
	)
}

func TestColumns(t *testing.T) {
	schema := areaSchema()
	cols := Columns([]string{"nombre", "has_cargos", "created_at"}, schema, nil)
	require.Len(t, cols, 3)
	assert.Equal(t, "Nombre", cols[0].Title())
	assert.Equal(t, record.KindDerivedBool, cols[1].Kind)
	assert.Equal(t, record.KindDate, cols[2].Kind)

	inferred := Columns(nil, nil, []record.Record{{"b": 1, "id": 1}, {"a": 2}})
	names := make([]string, len(inferred))
	for i, c := range inferred {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"id", "a", "b"}, names)
}

func TestCell(t *testing.T) {
	r := record.Record{
		"nombre":      "Ventas\nNorte",
		"count":       float64(3),
		"is_active":   true,
		"cargos":      []any{1, 2},
		"area_detail": map[string]any{"nombre": "Logística"},
		"created_at":  "2024-03-05T12:00:00Z",
	}

	cell := func(f record.Field) string {
		s, _ := Cell(r, f, "")
		return s
	}
	assert.Equal(t, `Ventas\nNorte`, cell(record.Field{Name: "nombre"}))
	assert.Equal(t, "3", cell(record.Field{Name: "count"}))
	assert.Equal(t, "yes", cell(record.Field{Name: "is_active"}))
	assert.Equal(t, "[2]", cell(record.Field{Name: "cargos"}))
	assert.Equal(t, "Logística", cell(record.Field{Name: "area_detail"}))
	assert.Equal(t, "2024-03-05", cell(record.Field{Name: "created_at", Kind: record.KindDate}))
	assert.Equal(t, "no", cell(record.Field{Name: "has_x", Kind: record.KindDerivedBool, Derive: record.NonEmpty("x")}))

	_, ok := Cell(r, record.Field{Name: "missing"}, "")
	assert.False(t, ok)
}

func TestDetail(t *testing.T) {
	r := record.Record{
		"id":     "1",
		"nombre": "Ventas",
		"cargos": []any{map[string]any{"nombre": "Jefe"}, map[string]any{"name": "Analyst"}},
		"codigo": "V-01",
	}
	lines := Detail(r, []record.Field{{Name: "id"}, {Name: "nombre"}}, "")
	assert.Equal(t, []string{"cargos: [Jefe, Analyst]", "codigo: V-01"}, lines)
}

func TestDisplayCell_ShortensULIDs(t *testing.T) {
	assigned := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	id := util.NewULIDWithTime(assigned)
	r := record.Record{"id": id, "nombre": "Ventas"}

	short, ok := DisplayCell(r, record.Field{Name: "id"}, "")
	require.True(t, ok)
	assert.Equal(t, util.ShortID(id), short)

	full, _ := Cell(r, record.Field{Name: "id"}, "")
	assert.Equal(t, id, full)

	plain, _ := DisplayCell(record.Record{"id": "V-01"}, record.Field{Name: "id"}, "")
	assert.Equal(t, "V-01", plain)
	// Only the id column is shortened.
	other, _ := DisplayCell(record.Record{"ref": id}, record.Field{Name: "ref"}, "")
	assert.Equal(t, id, other)
}

func TestDetail_ListsFullULID(t *testing.T) {
	assigned := time.Date(2024, 3, 5, 10, 30, 0, 0, time.Local)
	id := util.NewULIDWithTime(assigned)
	r := record.Record{"id": id, "nombre": "Ventas", "codigo": "V-01"}

	want := []string{"id: " + id + " (assigned 2024-03-05)", "codigo: V-01"}
	assert.Equal(t, want, Detail(r, []record.Field{{Name: "id"}, {Name: "nombre"}}, ""))
	// Not a column: listed once, still in full.
	assert.Equal(t, []string{"id: " + id + " (assigned 2024-03-05)", "codigo: V-01"},
		Detail(r, []record.Field{{Name: "nombre"}}, ""))
}

func TestPrintPage_FooterAndArrows(t *testing.T) {
	noColor(t)

	ctl := view.New(view.Config{ItemsPerPage: 10, Schema: areaSchema()}, areas(23))
	ctl.HandleSort("nombre")
	ctl.GoToLastPage()

	var buf bytes.Buffer
	PrintPage(&buf, ctl, DisplayOptions{
		Title:   "Áreas",
		Columns: Columns([]string{"id", "nombre", "has_cargos"}, areaSchema(), nil),
	})
	out := buf.String()

	assert.Contains(t, out, "Áreas")
	assert.Contains(t, out, "Nombre ▼")
	assert.Contains(t, out, "id ↕")
	assert.Contains(t, out, "Showing 21-23 of 23  ‹ 1 2 [3]  (page 3 of 3)")
	// 3 rows on the last page, plus title, blank, header, separator, blank, footer
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 9)
}

func TestPrintPage_ExpandedRows(t *testing.T) {
	noColor(t)

	ctl := view.New(view.Config{ItemsPerPage: 5}, areas(3))
	ctl.ToggleRowExpansion("1")

	var buf bytes.Buffer
	PrintPage(&buf, ctl, DisplayOptions{Columns: Columns([]string{"id", "nombre"}, nil, nil)})
	out := buf.String()

	assert.Contains(t, out, "- 1 ")
	assert.Contains(t, out, "+ 2 ")
	assert.Contains(t, out, "    is_active: no")
	assert.Contains(t, out, "    cargos: [Jefe]")
	assert.Contains(t, out, "Showing 1-3 of 3")
}

func TestPrintPage_SortingDisabledHasNoArrows(t *testing.T) {
	noColor(t)

	ctl := view.New(view.Config{DisableSorting: true, DisableExpansion: true}, areas(2))
	var buf bytes.Buffer
	PrintPage(&buf, ctl, DisplayOptions{Columns: Columns([]string{"nombre"}, nil, nil)})

	header := strings.Split(buf.String(), "\n")[0]
	assert.Equal(t, "nombre", strings.TrimSpace(header))
}

func TestFooter_Empty(t *testing.T) {
	noColor(t)
	ctl := view.New(view.Config{}, nil)
	assert.Equal(t, "No records", Footer(ctl))
}

func TestPrintJSON(t *testing.T) {
	ctl := view.New(view.Config{ItemsPerPage: 2, SortField: "id", SortDirection: sorting.Asc}, areas(5))
	ctl.GoToNextPage()
	ctl.ToggleRowExpansion("3")

	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, ctl))

	var page struct {
		Results    []map[string]any `json:"results"`
		Pagination struct {
			CurrentPage int `json:"currentPage"`
			TotalPages  int `json:"totalPages"`
		} `json:"pagination"`
		PageNumbers []int `json:"pageNumbers"`
		Sort        struct {
			Field     string `json:"field"`
			Direction string `json:"direction"`
		} `json:"sort"`
		Expanded []string `json:"expanded"`
	}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &page))

	assert.Equal(t, 2, page.Pagination.CurrentPage)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, []int{1, 2, 3}, page.PageNumbers)
	assert.Equal(t, "id", page.Sort.Field)
	assert.Equal(t, "asc", page.Sort.Direction)
	assert.Equal(t, []string{"3"}, page.Expanded)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "3", page.Results[0]["id"])
}

func TestPrintRaw(t *testing.T) {
	var buf bytes.Buffer
	PrintRaw(&buf, areas(2), DisplayOptions{Columns: Columns([]string{"id", "nombre"}, nil, nil)})
	assert.Equal(t, "1\tVentas\n2\tÁrbol\n", buf.String())
}

func TestPadOrTruncate(t *testing.T) {
	assert.Equal(t, "Área  ", PadOrTruncate("Área", 6))
	assert.Equal(t, "Logí…", PadOrTruncate("Logística", 5))
	assert.Equal(t, "…", PadOrTruncate("abc", 1))
	assert.Equal(t, "", PadOrTruncate("abc", 0))
}
