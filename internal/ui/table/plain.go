package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/lipgloss"
	"github.com/imgajeed76/dataview/internal/pagination"
	"github.com/imgajeed76/dataview/internal/record"
	"github.com/imgajeed76/dataview/internal/sorting"
	"github.com/imgajeed76/dataview/internal/ui/styles"
	"github.com/imgajeed76/dataview/internal/view"
)

// Page is the JSON document for one page of a screen.
type Page struct {
	Results     []record.Record `json:"results"`
	Pagination  pagination.Info `json:"pagination"`
	PageNumbers []int           `json:"pageNumbers"`
	Sort        *PageSort       `json:"sort,omitempty"`
	Expanded    []string        `json:"expanded,omitempty"`
	Stats       view.Stats      `json:"stats"`
}

// PageSort is the active sort of a Page.
type PageSort struct {
	Field     string            `json:"field"`
	Direction sorting.Direction `json:"direction"`
}

// PageOf collects the controller's current page.
func PageOf(ctl *view.Controller) Page {
	p := Page{
		Results:     ctl.Paginated(),
		Pagination:  ctl.Pagination(),
		PageNumbers: ctl.PageNumbers(),
		Expanded:    ctl.Expanded().IDs(),
		Stats:       ctl.Stats(),
	}
	if st := ctl.SortState(); st.IsSorted() {
		p.Sort = &PageSort{Field: st.Field, Direction: st.Direction}
	}
	return p
}

// PrintJSON outputs the current page with its pagination info.
func PrintJSON(w io.Writer, ctl *view.Controller) error {
	return writeJSON(w, PageOf(ctl))
}

// PrintJSONRecords outputs records as a JSON array.
func PrintJSONRecords(w io.Writer, records []record.Record) error {
	if records == nil {
		records = []record.Record{}
	}
	return writeJSON(w, records)
}

func writeJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// PrintRaw outputs records as tab-separated values, one line per record.
func PrintRaw(w io.Writer, records []record.Record, opts DisplayOptions) {
	for _, r := range records {
		vals := make([]string, len(opts.Columns))
		for i, c := range opts.Columns {
			vals[i], _ = Cell(r, c, opts.DateFormat)
		}
		fmt.Fprintln(w, strings.Join(vals, "\t"))
	}
}

// PrintPage prints the current page as an aligned table for non-TTY
// output: sort arrows in the header, detail lines under expanded rows, and
// a footer with the display range and page window. Shows full content
// without truncation.
func PrintPage(w io.Writer, ctl *view.Controller, opts DisplayOptions) {
	cols := opts.Columns
	if len(cols) == 0 {
		fmt.Fprintln(w, "(0 rows)")
		return
	}

	rows := ctl.Paginated()
	cells := make([][]string, len(rows))
	present := make([][]bool, len(rows))
	for i, r := range rows {
		cells[i] = make([]string, len(cols))
		present[i] = make([]bool, len(cols))
		for j, c := range cols {
			cells[i][j], present[i][j] = DisplayCell(r, c, opts.DateFormat)
		}
	}

	// Calculate column widths based on actual content (no truncation)
	headers := make([]string, len(cols))
	colWidths := make([]int, len(cols))
	for i, c := range cols {
		headers[i] = HeaderText(ctl, c)
		colWidths[i] = lipgloss.Width(headers[i])
	}
	for _, row := range cells {
		for i, val := range row {
			colWidths[i] = max(colWidths[i], lipgloss.Width(val))
		}
	}

	expandable := !ctl.Config().DisableExpansion
	prefix := func(s string) string {
		if !expandable {
			return ""
		}
		return s + " "
	}

	if opts.Title != "" {
		fmt.Fprintln(w, styles.SectionHeader(opts.Title))
		fmt.Fprintln(w)
	}

	// Print header
	fmt.Fprint(w, prefix(" "))
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		sorted := sorting.IsSorted(c.Name, ctl.SortState())
		fmt.Fprint(w, styles.Header(pad(headers[i], colWidths[i]), sorted))
	}
	fmt.Fprintln(w)

	// Print separator
	fmt.Fprint(w, prefix(" "))
	for i, cw := range colWidths {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		fmt.Fprint(w, strings.Repeat("─", cw))
	}
	fmt.Fprintln(w)

	// Print rows (full content, no truncation)
	for i, r := range rows {
		id, hasID := r.ID()
		expanded := hasID && ctl.IsRowExpanded(id)
		fmt.Fprint(w, prefix(styles.ExpandMarker(expanded)))
		for j, val := range cells[i] {
			if j > 0 {
				fmt.Fprint(w, "  ")
			}
			fmt.Fprint(w, styleCell(pad(val, colWidths[j]), rows[i], cols[j], present[i][j]))
		}
		fmt.Fprintln(w)
		if expanded {
			for _, line := range Detail(r, cols, opts.DateFormat) {
				fmt.Fprintln(w, styles.Indent(styles.MutedMsg(line), 4))
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, Footer(ctl))
}

// HeaderText is a column title followed by its sort arrow. Columns of a
// screen with sorting disabled have no arrow.
func HeaderText(ctl *view.Controller, c record.Field) string {
	if ctl.Config().DisableSorting {
		return c.Title()
	}
	return c.Title() + " " + ctl.SortInfo(c.Name).Icon.Arrow()
}

// Footer summarizes the current page: "Showing 11-20 of 23  ‹ 1 [2] 3 ›".
func Footer(ctl *view.Controller) string {
	r := ctl.DisplayRange()
	if r.Total == 0 {
		return styles.MutedMsg("No records")
	}
	text := fmt.Sprintf("Showing %d-%d of %d", r.Start, r.End, r.Total)
	numbers := ctl.PageNumbers()
	if len(numbers) <= 1 {
		return styles.MutedMsg(text)
	}

	nav := ctl.Navigation()
	parts := make([]string, 0, len(numbers)+2)
	if nav.CanGoPrev {
		parts = append(parts, "‹")
	}
	current := ctl.CurrentPage()
	for _, n := range numbers {
		parts = append(parts, styles.PageNumber(n, n == current))
	}
	if nav.CanGoNext {
		parts = append(parts, "›")
	}
	info := ctl.Pagination()
	return fmt.Sprintf("%s  %s  %s", styles.MutedMsg(text), strings.Join(parts, " "),
		styles.MutedMsg(fmt.Sprintf("(page %d of %d)", info.CurrentPage, info.TotalPages)))
}

// styleCell colors a padded cell by kind.
func styleCell(padded string, r record.Record, c record.Field, present bool) string {
	if !present {
		return padded
	}
	v, _ := c.Value(r)
	if b, ok := v.(bool); ok {
		if b {
			return styles.Render(styles.TrueStyle, padded)
		}
		return styles.Render(styles.FalseStyle, padded)
	}
	switch {
	case c.Name == record.IDField:
		return styles.Render(styles.IDStyle, padded)
	case c.Kind == record.KindDate:
		return styles.Render(styles.DateStyle, padded)
	}
	return padded
}

// pad adds spaces to reach the desired display width (no truncation).
func pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// PadOrTruncate pads or truncates to exact display width (for TUI table).
func PadOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		runes := []rune(s)
		for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
			runes = runes[:len(runes)-1]
		}
		return pad(string(runes)+"…", width)
	}
	return pad(s, width)
}
