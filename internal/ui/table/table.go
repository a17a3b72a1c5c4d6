// Package table renders a list screen driven by a view.Controller. It
// supports an interactive TUI (sortable headers, pages, expandable rows,
// live search), plain text tables with a pager footer, JSON output, and
// raw tab-separated output.
package table

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/imgajeed76/dataview/internal/record"
	"github.com/imgajeed76/dataview/internal/util"
	"github.com/imgajeed76/dataview/internal/view"
	"golang.org/x/term"
)

// DisplayOptions controls how a screen is rendered.
type DisplayOptions struct {
	// Title is shown in the interactive TUI header and above plain tables.
	Title string
	// Columns are the fields shown, in order.
	Columns []record.Field
	// SearchFields are matched by live search in the TUI.
	SearchFields []string
	// DateFormat is a Go layout, "relative", "relative-short", or empty for
	// date only.
	DateFormat string
	// JSON outputs the current page as a JSON document.
	JSON bool
	// Raw outputs the current page as tab-separated values (for piping).
	Raw bool
	// NoPager forces plain table output even on a TTY.
	NoPager bool
	// Out defaults to stdout.
	Out io.Writer
}

func (o DisplayOptions) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

// Display picks the right output mode based on options and environment,
// then renders the controller's current page. all is the unfiltered
// collection live search runs over; nil means the controller's records.
func Display(ctl *view.Controller, all []record.Record, opts DisplayOptions) error {
	if all == nil {
		all = ctl.Records()
	}
	if len(opts.Columns) == 0 {
		opts.Columns = Columns(nil, ctl.Config().Schema, all)
	}
	w := opts.out()

	if opts.Raw {
		PrintRaw(w, ctl.Paginated(), opts)
		return nil
	}

	if opts.JSON {
		return PrintJSON(w, ctl)
	}

	f, isFile := w.(*os.File)
	isTTY := isFile && term.IsTerminal(int(f.Fd()))

	if !isTTY || opts.NoPager || len(all) == 0 {
		PrintPage(w, ctl, opts)
		return nil
	}

	return RunTableTUI(ctl, all, opts)
}

// Columns resolves column names against the schema. With no names, the
// columns are every top-level key found in records, id first.
func Columns(names []string, schema *record.Schema, records []record.Record) []record.Field {
	if len(names) == 0 {
		names = inferColumns(records)
	}
	cols := make([]record.Field, 0, len(names))
	for _, name := range names {
		cols = append(cols, schema.Resolve(name))
	}
	return cols
}

// sampleSize bounds how many records column inference looks at.
const sampleSize = 50

func inferColumns(records []record.Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records[:min(len(records), sampleSize)] {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		if k != record.IDField {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	if _, ok := seen[record.IDField]; ok {
		names = slices.Insert(names, 0, record.IDField)
	}
	return names
}

// Cell renders one field of a record as plain text. Missing values are
// empty; the second result reports whether a value was present.
func Cell(r record.Record, f record.Field, dateFormat string) (string, bool) {
	v, ok := f.Value(r)
	if !ok {
		return "", false
	}
	if f.Kind == record.KindDate {
		if t, ok := record.AsTime(v); ok {
			return util.FormatDate(t.Local(), dateFormat), true
		}
	}
	switch val := v.(type) {
	case time.Time:
		return util.FormatDate(val.Local(), dateFormat), true
	case bool:
		if val {
			return "yes", true
		}
		return "no", true
	case []any:
		return fmt.Sprintf("[%d]", len(val)), true
	case map[string]any:
		if name, ok := record.Record(val).String("name"); ok {
			return name, true
		}
		if name, ok := record.Record(val).String("nombre"); ok {
			return name, true
		}
		return "{…}", true
	}
	s, ok := record.Text(v)
	if !ok {
		return fmt.Sprintf("%v", v), true
	}
	return util.Escape(s), true
}

// DisplayCell is Cell for table columns: generated ULID ids are shortened
// to their last characters. Exports and yanks use Cell.
func DisplayCell(r record.Record, f record.Field, dateFormat string) (string, bool) {
	s, ok := Cell(r, f, dateFormat)
	if ok && f.Name == record.IDField && util.ValidateULID(s) {
		return util.ShortID(s), true
	}
	return s, ok
}

// ulidLine describes a ULID id with the time it was assigned.
func ulidLine(r record.Record, dateFormat string) (string, bool) {
	id, ok := r.String(record.IDField)
	if !ok {
		return "", false
	}
	at, err := util.ParseULID(id)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%s: %s (assigned %s)", record.IDField, id, util.FormatDate(at.Local(), dateFormat)), true
}

// Detail lists every field of an expanded record not already shown as a
// column, one "key: value" line each, sorted by key. A ULID id is always
// listed in full, since its column shows the short form.
func Detail(r record.Record, cols []record.Field, dateFormat string) []string {
	shown := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		shown[c.Name] = struct{}{}
	}
	keys := make([]string, 0, len(r))
	for k := range r {
		if _, ok := shown[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys)+1)
	if line, ok := ulidLine(r, dateFormat); ok {
		lines = append(lines, line)
		keys = slices.DeleteFunc(keys, func(k string) bool { return k == record.IDField })
	}
	for _, k := range keys {
		v, _ := Cell(r, record.Field{Name: k}, dateFormat)
		if list, ok := r[k].([]any); ok {
			v = detailList(list)
		}
		lines = append(lines, fmt.Sprintf("%s: %s", k, v))
	}
	return lines
}

func detailList(list []any) string {
	items := make([]string, 0, len(list))
	for _, item := range list {
		switch v := item.(type) {
		case map[string]any:
			c, _ := Cell(record.Record{"x": v}, record.Field{Name: "x"}, "")
			items = append(items, c)
		default:
			s, _ := record.Text(v)
			items = append(items, s)
		}
	}
	return "[" + strings.Join(items, ", ") + "]"
}
