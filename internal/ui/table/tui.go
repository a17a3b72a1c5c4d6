package table

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/imgajeed76/dataview/internal/record"
	"github.com/imgajeed76/dataview/internal/search"
	"github.com/imgajeed76/dataview/internal/sorting"
	"github.com/imgajeed76/dataview/internal/ui/styles"
	"github.com/imgajeed76/dataview/internal/view"
)

// ═══════════════════════════════════════════════════════════════════════════
// Constants
// ═══════════════════════════════════════════════════════════════════════════

const (
	defaultColWidth = 24
	minColWidth     = 3
	hiddenColWidth  = 3
	markerWidth     = 2
)

// Column display state
type colState int

const (
	colStateDefault  colState = iota // truncated to defaultColWidth
	colStateExpanded                 // full width
	colStateHidden                   // minimal width (just "...")
)

// Table mode
type tableMode int

const (
	tableModeNormal tableMode = iota
	tableModeSearch
)

// Exit mode: what to do after quitting the TUI
type exitMode int

const (
	exitNormal exitMode = iota
	exitJSON
	exitRaw
	exitPlain
)

// ═══════════════════════════════════════════════════════════════════════════
// Model
// ═══════════════════════════════════════════════════════════════════════════

type tableModel struct {
	ctl           *view.Controller
	all           []record.Record // unfiltered records, live search input
	opts          DisplayOptions
	searchFields  []string
	fullColWidths []int      // actual max width of each column's content
	colStates     []colState // display state for each column
	cursor        int        // selected row on the current page
	colCursor     int        // selected column
	scrollX       int        // horizontal scroll offset in characters
	scrollY       int        // vertical scroll offset in lines
	width         int        // terminal width
	height        int        // terminal height
	ready         bool
	mode          tableMode
	searchInput   textinput.Model
	searchQuery   string
	matcher       *search.Matcher // folded searchQuery; nil when blank
	searchHints   []string        // longer words to try, with their counts
	exitMode      exitMode        // how to exit (for re-printing data)

	// Animation state for smooth scrolling
	animating   bool // whether animation is in progress
	animTargetX int  // target scrollX for animation
	animTargetY int  // target scrollY for animation

	// Status message (flash notification, e.g. after yank)
	statusMsg   string    // message to show in footer
	statusUntil time.Time // when to clear the message
}

// ═══════════════════════════════════════════════════════════════════════════
// Key Bindings
// ═══════════════════════════════════════════════════════════════════════════

type tableKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	ShiftLeft   key.Binding
	ShiftRight  key.Binding
	Sort        key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	FirstPage   key.Binding
	LastPage    key.Binding
	Toggle      key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Reset       key.Binding
	Widen       key.Binding
	Hide        key.Binding
	Search      key.Binding
	Quit        key.Binding
	YankCell    key.Binding
	YankRow     key.Binding
	ExportJSON  key.Binding
	ExportRaw   key.Binding
	ExportPlain key.Binding
}

var tableKeys = tableKeyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:        key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev column")),
	Right:       key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next column")),
	ShiftLeft:   key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("⇧←", "scroll half left")),
	ShiftRight:  key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("⇧→", "scroll half right")),
	Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
	NextPage:    key.NewBinding(key.WithKeys("n", "pgdown", "ctrl+d"), key.WithHelp("n", "next page")),
	PrevPage:    key.NewBinding(key.WithKeys("p", "pgup", "ctrl+u"), key.WithHelp("p", "prev page")),
	FirstPage:   key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first page")),
	LastPage:    key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last page")),
	Toggle:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand row")),
	ExpandAll:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "expand all")),
	CollapseAll: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse all")),
	Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset view")),
	Widen:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "widen/default")),
	Hide:        key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "hide/default")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	YankCell:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy cell")),
	YankRow:     key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "copy row")),
	ExportJSON:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "print as JSON")),
	ExportRaw:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "print raw")),
	ExportPlain: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "print table")),
}

// ═══════════════════════════════════════════════════════════════════════════
// Entry Point
// ═══════════════════════════════════════════════════════════════════════════

// RunTableTUI launches the interactive table viewer. It blocks until the
// user quits. If the user requests an export (J/R/P), the sorted view is
// printed after the TUI exits.
func RunTableTUI(ctl *view.Controller, all []record.Record, opts DisplayOptions) error {
	m := newTableModel(ctl, all, opts)

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Check if user requested output after exit
	if fm, ok := finalModel.(tableModel); ok {
		w := opts.out()
		switch fm.exitMode {
		case exitJSON:
			return PrintJSONRecords(w, ctl.Sorted())
		case exitRaw:
			PrintRaw(w, ctl.Sorted(), fm.opts)
		case exitPlain:
			PrintPage(w, ctl, fm.opts)
		}
	}

	return nil
}

func newTableModel(ctl *view.Controller, all []record.Record, opts DisplayOptions) tableModel {
	if len(opts.Columns) == 0 {
		opts.Columns = Columns(nil, ctl.Config().Schema, all)
	}

	// Calculate full column widths based on content
	fullColWidths := make([]int, len(opts.Columns))
	for i, c := range opts.Columns {
		fullColWidths[i] = lipgloss.Width(HeaderText(ctl, c))
		for _, r := range all {
			val, _ := DisplayCell(r, c, opts.DateFormat)
			fullColWidths[i] = max(fullColWidths[i], lipgloss.Width(val))
		}
	}

	fields := opts.SearchFields
	if len(fields) == 0 {
		for _, c := range opts.Columns {
			fields = append(fields, c.Name)
		}
	}

	// Initialize search input
	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = 100
	ti.Width = 30

	return tableModel{
		ctl:           ctl,
		all:           all,
		opts:          opts,
		searchFields:  fields,
		fullColWidths: fullColWidths,
		colStates:     make([]colState, len(opts.Columns)),
		mode:          tableModeNormal,
		searchInput:   ti,
		exitMode:      exitNormal,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Bubble Tea Interface
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel) Init() tea.Cmd {
	return nil
}

func (m tableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case animTickMsg:
		// Handle animation frame
		cmd := m.updateAnimation()
		return m, cmd

	case statusClearMsg:
		// Clear the flash message if it has expired
		if !m.statusUntil.IsZero() && time.Now().After(m.statusUntil) {
			m.statusMsg = ""
			m.statusUntil = time.Time{}
		}
		return m, nil

	case tea.KeyMsg:
		// Cancel any ongoing animation when user presses a key
		m.cancelAnimation()

		// Handle search mode
		if m.mode == tableModeSearch {
			return m.updateSearch(msg)
		}

		// Normal mode
		switch {
		case key.Matches(msg, tableKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, tableKeys.Search):
			m.mode = tableModeSearch
			m.searchInput.Focus()
			return m, textinput.Blink

		case key.Matches(msg, tableKeys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.ensureRowVisible()
			}

		case key.Matches(msg, tableKeys.Down):
			if m.cursor < len(m.ctl.Paginated())-1 {
				m.cursor++
				m.ensureRowVisible()
			}

		case key.Matches(msg, tableKeys.Left):
			colStartX := m.getColStartX(m.colCursor)

			if colStartX < m.scrollX {
				m.scrollX = max(colStartX, m.scrollX-3, 0)
			} else if m.colCursor > 0 {
				m.colCursor--
				m.ensureColVisibleFromRight()
			}

		case key.Matches(msg, tableKeys.Right):
			colEndX := m.getColEndX(m.colCursor)
			viewportEndX := m.scrollX + m.width - 2

			if colEndX > viewportEndX {
				m.scrollX = min(m.scrollX+3, m.getMaxScrollX())
			} else if m.colCursor < len(m.opts.Columns)-1 {
				m.colCursor++
				m.ensureColVisibleFromLeft()
			}

		case key.Matches(msg, tableKeys.ShiftLeft):
			halfWidth := max(m.width/2, 1)
			return m, m.startAnimation(m.scrollX-halfWidth, m.scrollY)

		case key.Matches(msg, tableKeys.ShiftRight):
			halfWidth := max(m.width/2, 1)
			return m, m.startAnimation(m.scrollX+halfWidth, m.scrollY)

		case key.Matches(msg, tableKeys.Sort):
			return m, m.sortSelectedColumn()

		case key.Matches(msg, tableKeys.NextPage):
			m.ctl.GoToNextPage()
			m.resetCursor()

		case key.Matches(msg, tableKeys.PrevPage):
			m.ctl.GoToPrevPage()
			m.resetCursor()

		case key.Matches(msg, tableKeys.FirstPage):
			m.ctl.GoToFirstPage()
			m.resetCursor()

		case key.Matches(msg, tableKeys.LastPage):
			m.ctl.GoToLastPage()
			m.resetCursor()

		case key.Matches(msg, tableKeys.Toggle):
			return m, m.toggleSelectedRow()

		case key.Matches(msg, tableKeys.ExpandAll):
			if m.ctl.Config().DisableExpansion {
				return m, m.setStatus("Row expansion is disabled for this screen")
			}
			m.ctl.ExpandAllRows()

		case key.Matches(msg, tableKeys.CollapseAll):
			m.ctl.CollapseAllRows()
			m.ensureRowVisible()

		case key.Matches(msg, tableKeys.Reset):
			m.ctl.ResetView()
			m.resetCursor()
			return m, m.setStatus("View reset")

		case key.Matches(msg, tableKeys.Widen):
			m.cycleColState(colStateExpanded)

		case key.Matches(msg, tableKeys.Hide):
			m.cycleColState(colStateHidden)

		case key.Matches(msg, tableKeys.YankCell):
			return m, m.yankCell()

		case key.Matches(msg, tableKeys.YankRow):
			return m, m.yankRow()

		case key.Matches(msg, tableKeys.ExportJSON):
			m.exitMode = exitJSON
			return m, tea.Quit

		case key.Matches(msg, tableKeys.ExportRaw):
			m.exitMode = exitRaw
			return m, tea.Quit

		case key.Matches(msg, tableKeys.ExportPlain):
			m.exitMode = exitPlain
			return m, tea.Quit
		}
	}

	return m, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Commands
// ═══════════════════════════════════════════════════════════════════════════

func (m *tableModel) resetCursor() {
	m.cursor = 0
	m.scrollY = 0
}

func (m *tableModel) sortSelectedColumn() tea.Cmd {
	if m.ctl.Config().DisableSorting {
		return m.setStatus("Sorting is disabled for this screen")
	}
	if m.colCursor >= len(m.opts.Columns) {
		return nil
	}
	col := m.opts.Columns[m.colCursor]
	m.ctl.HandleSort(col.Name)
	m.resetCursor()

	st := m.ctl.SortState()
	if !st.IsSorted() {
		return m.setStatus("Sort cleared")
	}
	return m.setStatus(fmt.Sprintf("Sorted by %s %s", col.Title(), sorting.IconFor(col.Name, st).Arrow()))
}

func (m *tableModel) toggleSelectedRow() tea.Cmd {
	if m.ctl.Config().DisableExpansion {
		return m.setStatus("Row expansion is disabled for this screen")
	}
	rows := m.ctl.Paginated()
	if m.cursor >= len(rows) {
		return nil
	}
	id, ok := rows[m.cursor].ID()
	if !ok {
		return m.setStatus("Row has no id")
	}
	m.ctl.ToggleRowExpansion(id)
	m.ensureRowVisible()
	return nil
}

func (m *tableModel) cycleColState(target colState) {
	if m.colCursor >= len(m.colStates) {
		return
	}
	if m.colStates[m.colCursor] == target {
		m.colStates[m.colCursor] = colStateDefault
	} else {
		m.colStates[m.colCursor] = target
	}
	m.ensureColVisible()
}

// ═══════════════════════════════════════════════════════════════════════════
// Search
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = tableModeNormal
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.performSearch()
		return m, nil
	case tea.KeyEnter:
		m.mode = tableModeNormal
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Live filter as user types
	if q := m.searchInput.Value(); q != m.searchQuery {
		m.searchQuery = q
		m.performSearch()
	}

	return m, cmd
}

// performSearch feeds the matching records to the controller. A new
// collection keeps sort and expansion, and starts on the first page.
func (m *tableModel) performSearch() {
	m.matcher = search.NewMatcher(m.searchQuery, m.searchFields)
	m.ctl.SetRecords(search.Search(m.all, m.searchQuery, m.searchFields))
	m.ctl.GoToFirstPage()
	m.resetCursor()
	m.searchHints = searchHints(m.all, m.searchQuery, m.searchFields)
}

// maxSearchHints bounds the words offered under the search bar.
const maxSearchHints = 3

// searchHints offers words from the searched fields that extend query,
// each with the number of records it would match, as "ventas (6)".
func searchHints(all []record.Record, query string, fields []string) []string {
	words := search.Suggestions(all, query, fields, maxSearchHints)
	hints := make([]string, len(words))
	for i, w := range words {
		hints[i] = fmt.Sprintf("%s (%d)", w, search.Count(all, w, fields))
	}
	return hints
}

// ═══════════════════════════════════════════════════════════════════════════
// Row / Column Helpers
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel) getColDisplayWidth(colIdx int) int {
	if colIdx >= len(m.colStates) {
		return defaultColWidth
	}

	switch m.colStates[colIdx] {
	case colStateExpanded:
		return max(m.fullColWidths[colIdx], minColWidth)
	case colStateHidden:
		return hiddenColWidth
	default:
		return max(min(m.fullColWidths[colIdx], defaultColWidth), minColWidth)
	}
}

func (m tableModel) getColStartX(colIdx int) int {
	x := markerWidth
	for i := 0; i < colIdx && i < len(m.opts.Columns); i++ {
		x += m.getColDisplayWidth(i) + 2 // +2 for column separator spacing
	}
	return x
}

func (m tableModel) getColEndX(colIdx int) int {
	return m.getColStartX(colIdx) + m.getColDisplayWidth(colIdx)
}

func (m tableModel) getTotalWidth() int {
	return m.getColStartX(len(m.opts.Columns))
}

func (m tableModel) getMaxScrollX() int {
	return max(m.getTotalWidth()-m.width+2, 0) // +2 for some padding
}

func (m tableModel) getMaxScrollY() int {
	return max(len(m.pageLines())-m.visibleRowCount(), 0)
}

// pageLine is one rendered line of the current page: a record row, or a
// detail line under an expanded record.
type pageLine struct {
	row    int
	detail string
	isRow  bool
}

func (m tableModel) pageLines() []pageLine {
	var lines []pageLine
	for i, r := range m.ctl.Paginated() {
		lines = append(lines, pageLine{row: i, isRow: true})
		if id, ok := r.ID(); ok && m.ctl.IsRowExpanded(id) {
			for _, d := range Detail(r, m.opts.Columns, m.opts.DateFormat) {
				lines = append(lines, pageLine{row: i, detail: d})
			}
		}
	}
	return lines
}

// cursorSpan returns the first and last line of the selected row,
// including its detail lines.
func (m tableModel) cursorSpan() (int, int) {
	first, last := -1, -1
	for i, l := range m.pageLines() {
		if l.row == m.cursor {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	return max(first, 0), max(last, 0)
}

// ═══════════════════════════════════════════════════════════════════════════
// Animation
// ═══════════════════════════════════════════════════════════════════════════

type animTickMsg time.Time

const animationFrameInterval = 16 * time.Millisecond
const animationFraction = 0.25
const animationSnapThreshold = 1

func animTick() tea.Cmd {
	return tea.Tick(animationFrameInterval, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

func (m *tableModel) startAnimation(targetX, targetY int) tea.Cmd {
	maxX := m.getMaxScrollX()
	if targetX < 0 {
		targetX = 0
	} else if targetX > maxX {
		targetX = maxX
	}

	maxY := m.getMaxScrollY()
	if targetY < 0 {
		targetY = 0
	} else if targetY > maxY {
		targetY = maxY
	}

	m.animTargetX = targetX
	m.animTargetY = targetY

	if targetX == m.scrollX && targetY == m.scrollY {
		m.animating = false
		return nil
	}

	if !m.animating {
		m.animating = true
		return animTick()
	}

	return nil
}

func (m *tableModel) updateAnimation() tea.Cmd {
	if !m.animating {
		return nil
	}

	remainingX := m.animTargetX - m.scrollX
	remainingY := m.animTargetY - m.scrollY

	if abs(remainingX) <= animationSnapThreshold && abs(remainingY) <= animationSnapThreshold {
		m.scrollX = m.animTargetX
		m.scrollY = m.animTargetY
		m.animating = false
		return nil
	}

	if remainingX != 0 {
		deltaX := int(float64(remainingX) * animationFraction)
		if deltaX == 0 {
			if remainingX > 0 {
				deltaX = 1
			} else {
				deltaX = -1
			}
		}
		m.scrollX += deltaX
	}

	if remainingY != 0 {
		deltaY := int(float64(remainingY) * animationFraction)
		if deltaY == 0 {
			if remainingY > 0 {
				deltaY = 1
			} else {
				deltaY = -1
			}
		}
		m.scrollY += deltaY
	}

	return animTick()
}

func (m *tableModel) cancelAnimation() {
	m.animating = false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ═══════════════════════════════════════════════════════════════════════════
// Status Message (flash notification)
// ═══════════════════════════════════════════════════════════════════════════

type statusClearMsg struct{}

const statusDuration = 2 * time.Second

// setStatus sets a temporary status message that auto-clears.
func (m *tableModel) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusUntil = time.Now().Add(statusDuration)
	return tea.Tick(statusDuration, func(t time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

// ═══════════════════════════════════════════════════════════════════════════
// Clipboard (yank)
// ═══════════════════════════════════════════════════════════════════════════

// yankCell copies the selected cell value to the system clipboard.
func (m *tableModel) yankCell() tea.Cmd {
	rows := m.ctl.Paginated()
	if m.cursor >= len(rows) || m.colCursor >= len(m.opts.Columns) {
		return nil
	}
	val, _ := Cell(rows[m.cursor], m.opts.Columns[m.colCursor], m.opts.DateFormat)
	if err := clipboard.WriteAll(val); err != nil {
		return m.setStatus(fmt.Sprintf("clipboard error: %s", err))
	}
	return m.setStatus(fmt.Sprintf("Copied: %s", PadOrTruncate(val, min(lipgloss.Width(val), 40))))
}

// yankRow copies the selected record as JSON to the clipboard.
func (m *tableModel) yankRow() tea.Cmd {
	rows := m.ctl.Paginated()
	if m.cursor >= len(rows) {
		return nil
	}
	var sb strings.Builder
	if err := writeJSON(&sb, rows[m.cursor]); err != nil {
		return m.setStatus(fmt.Sprintf("encode error: %s", err))
	}
	if err := clipboard.WriteAll(strings.TrimSpace(sb.String())); err != nil {
		return m.setStatus(fmt.Sprintf("clipboard error: %s", err))
	}
	return m.setStatus(fmt.Sprintf("Copied row (%d fields)", len(rows[m.cursor])))
}

// ═══════════════════════════════════════════════════════════════════════════
// ANSI-aware Viewport Slicing
// ═══════════════════════════════════════════════════════════════════════════

// applyViewport extracts a horizontal slice of a string, handling ANSI escape
// codes properly. It returns the portion of the string from visual column
// startX with the given width.
func applyViewport(s string, startX, width int) string {
	if width <= 0 {
		return ""
	}
	if startX < 0 {
		startX = 0
	}

	var result strings.Builder
	result.Grow(width + 64)

	visualPos := 0
	outputChars := 0
	stylesApplied := false
	inEscape := false
	escapeSeq := strings.Builder{}

	var activeStyles []string

	runes := []rune(s)
	i := 0

	for i < len(runes) && outputChars < width {
		r := runes[i]

		if r == '\x1b' && i+1 < len(runes) && runes[i+1] == '[' {
			inEscape = true
			escapeSeq.Reset()
			escapeSeq.WriteRune(r)
			i++
			continue
		}

		if inEscape {
			escapeSeq.WriteRune(r)
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
				seq := escapeSeq.String()

				if r == 'm' {
					if seq == "\x1b[0m" || seq == "\x1b[m" {
						activeStyles = nil
					} else {
						activeStyles = append(activeStyles, seq)
					}
				}

				if visualPos >= startX {
					result.WriteString(seq)
				}
			}
			i++
			continue
		}

		if visualPos >= startX {
			if !stylesApplied && len(activeStyles) > 0 {
				for _, style := range activeStyles {
					result.WriteString(style)
				}
				stylesApplied = true
			}
			result.WriteRune(r)
			outputChars++
		}

		visualPos++
		i++
	}

	if len(activeStyles) > 0 && outputChars > 0 {
		result.WriteString("\x1b[0m")
	}

	if outputChars < width {
		result.WriteString(strings.Repeat(" ", width-outputChars))
	}

	return result.String()
}

// ═══════════════════════════════════════════════════════════════════════════
// Scroll Helpers
// ═══════════════════════════════════════════════════════════════════════════

// ensureRowVisible scrolls so the selected row and as much of its detail
// as fits are on screen.
func (m *tableModel) ensureRowVisible() {
	visibleRows := max(m.visibleRowCount(), 1)
	first, last := m.cursorSpan()
	if last-first+1 > visibleRows {
		last = first + visibleRows - 1
	}
	if first < m.scrollY {
		m.scrollY = first
	} else if last >= m.scrollY+visibleRows {
		m.scrollY = last - visibleRows + 1
	}
	m.scrollY = min(m.scrollY, m.getMaxScrollY())
}

func (m *tableModel) clampScrollX() {
	m.scrollX = max(min(m.scrollX, m.getMaxScrollX()), 0)
}

func (m *tableModel) ensureColVisible() {
	colStartX := m.getColStartX(m.colCursor)
	colEndX := m.getColEndX(m.colCursor)
	colWidth := colEndX - colStartX
	viewportWidth := m.width - 2

	if colStartX < m.scrollX {
		m.scrollX = colStartX
	} else if colEndX > m.scrollX+viewportWidth {
		if colWidth <= viewportWidth {
			m.scrollX = colEndX - viewportWidth
		} else {
			m.scrollX = colStartX
		}
	}
	m.clampScrollX()
}

func (m *tableModel) ensureColVisibleFromLeft() {
	m.scrollX = m.getColStartX(m.colCursor)
	if m.colCursor == 0 {
		m.scrollX = 0
	}
	m.clampScrollX()
}

func (m *tableModel) ensureColVisibleFromRight() {
	colStartX := m.getColStartX(m.colCursor)
	colEndX := m.getColEndX(m.colCursor)
	viewportWidth := m.width - 2

	m.scrollX = colEndX - viewportWidth
	if colEndX-colStartX <= viewportWidth && m.scrollX < colStartX {
		m.scrollX = colStartX
	}
	if m.colCursor == 0 {
		m.scrollX = 0
	}
	m.clampScrollX()
}

func (m tableModel) visibleRowCount() int {
	// title + search bar + column header + separator, pager + help
	return max(m.height-6, 1)
}

// ═══════════════════════════════════════════════════════════════════════════
// View
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var sb strings.Builder

	// Header with title info
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)
	title := m.opts.Title
	if title == "" {
		title = "records"
	}
	shown := len(m.ctl.Records())
	if shown != len(m.all) {
		sb.WriteString(styles.Render(headerStyle, fmt.Sprintf("%s: %d/%d records", title, shown, len(m.all))))
	} else {
		sb.WriteString(styles.Render(headerStyle, fmt.Sprintf("%s: %d records", title, shown)))
	}

	// Sort and expansion indicators
	var stateInfo []string
	if st := m.ctl.SortState(); st.IsSorted() {
		label := m.ctl.Config().Schema.Resolve(st.Field).Title()
		stateInfo = append(stateInfo, fmt.Sprintf("sorted by %s %s", label, sorting.IconFor(st.Field, st).Arrow()))
	}
	if n := m.ctl.Expanded().Len(); n > 0 {
		stateInfo = append(stateInfo, fmt.Sprintf("%d expanded", n))
	}
	if len(stateInfo) > 0 {
		sb.WriteString(styles.MutedMsg(fmt.Sprintf("  [%s]", strings.Join(stateInfo, ", "))))
	}
	sb.WriteString("\n")

	// Search bar
	hints := ""
	if len(m.searchHints) > 0 {
		hints = styles.MutedMsg("  try: " + strings.Join(m.searchHints, ", "))
	}
	if m.mode == tableModeSearch {
		sb.WriteString(fmt.Sprintf("/%s%s\n", m.searchInput.View(), hints))
	} else if m.searchQuery != "" {
		stats := search.StatsOf(len(m.all), shown)
		sb.WriteString(styles.MutedMsg(fmt.Sprintf("filter: %s (%d hidden, %d%% match)", m.searchQuery, stats.Hidden, stats.MatchPercentage)))
		sb.WriteString(hints + "\n")
	} else {
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderTable())

	// Footer
	sb.WriteString("\n")
	if m.statusMsg != "" && time.Now().Before(m.statusUntil) {
		sb.WriteString(styles.SuccessMsg(m.statusMsg))
	} else if m.mode == tableModeSearch {
		sb.WriteString(styles.MutedMsg("enter confirm  esc cancel"))
	} else {
		sb.WriteString(styles.MutedMsg("↑↓←→ nav  s sort  n/p page  g/G first/last  enter expand  e/c all  / search  r reset  y copy  J json  q quit"))
	}

	return sb.String()
}

// ═══════════════════════════════════════════════════════════════════════════
// Render Table
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel) renderTable() string {
	var sb strings.Builder

	if len(m.opts.Columns) == 0 {
		return "No columns\n"
	}

	viewportWidth := m.width - 2

	sb.WriteString(applyViewport(m.buildFullHeaderLine(), m.scrollX, viewportWidth))
	sb.WriteString("\n")
	sb.WriteString(applyViewport(m.buildFullSeparatorLine(), m.scrollX, viewportWidth))
	sb.WriteString("\n")

	rows := m.ctl.Paginated()
	lines := m.pageLines()
	visibleRows := m.visibleRowCount()
	endLine := min(m.scrollY+visibleRows, len(lines))

	for i := m.scrollY; i < endLine; i++ {
		l := lines[i]
		if l.isRow {
			sb.WriteString(applyViewport(m.buildFullRowLine(rows[l.row], l.row == m.cursor), m.scrollX, viewportWidth))
		} else {
			sb.WriteString(applyViewport(strings.Repeat(" ", markerWidth+2)+styles.MutedMsg(l.detail), m.scrollX, viewportWidth))
		}
		sb.WriteString("\n")
	}
	for i := endLine - m.scrollY; i < visibleRows; i++ {
		sb.WriteString("\n")
	}

	// Pager and scroll indicators
	sb.WriteString(Footer(m.ctl))
	var indicators []string
	if m.scrollX > 0 {
		indicators = append(indicators, "◀")
	}
	if m.scrollX+viewportWidth < m.getTotalWidth() {
		indicators = append(indicators, "▶")
	}
	if m.scrollY > 0 {
		indicators = append(indicators, "▲")
	}
	if endLine < len(lines) {
		indicators = append(indicators, "▼")
	}
	if len(indicators) > 0 {
		sb.WriteString("  ")
		sb.WriteString(styles.MutedMsg(strings.Join(indicators, " ")))
	}

	return sb.String()
}

func (m tableModel) buildFullHeaderLine() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", markerWidth))

	st := m.ctl.SortState()
	for i, c := range m.opts.Columns {
		colWidth := m.getColDisplayWidth(i)

		displayName := "..."
		if m.colStates[i] != colStateHidden {
			displayName = HeaderText(m.ctl, c)
		}
		displayName = PadOrTruncate(displayName, colWidth)

		if i == m.colCursor {
			sb.WriteString(styles.Render(lipgloss.NewStyle().Bold(true).Underline(true).Foreground(styles.Accent), displayName))
		} else {
			sb.WriteString(styles.Header(displayName, sorting.IsSorted(c.Name, st)))
		}
		sb.WriteString("  ")
	}

	return sb.String()
}

func (m tableModel) buildFullSeparatorLine() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", markerWidth))

	for i := range m.opts.Columns {
		sep := strings.Repeat("─", m.getColDisplayWidth(i))
		if i == m.colCursor {
			sb.WriteString(styles.Render(lipgloss.NewStyle().Foreground(styles.Accent), sep))
		} else {
			sb.WriteString(styles.MutedMsg(sep))
		}
		sb.WriteString("  ")
	}

	return sb.String()
}

func (m tableModel) buildFullRowLine(r record.Record, isSelectedRow bool) string {
	var sb strings.Builder

	selectedRowStyle := lipgloss.NewStyle().Background(styles.BgHighlight)
	selectedCellStyle := lipgloss.NewStyle().Background(styles.Accent).Foreground(lipgloss.Color("#000000"))

	marker := " "
	if !m.ctl.Config().DisableExpansion {
		id, ok := r.ID()
		marker = styles.ExpandMarker(ok && m.ctl.IsRowExpanded(id))
	}
	sb.WriteString(PadOrTruncate(marker, markerWidth))

	for i, c := range m.opts.Columns {
		colWidth := m.getColDisplayWidth(i)

		val, present := DisplayCell(r, c, m.opts.DateFormat)
		displayVal := "..."
		if m.colStates[i] != colStateHidden {
			displayVal = val
		}
		displayVal = PadOrTruncate(displayVal, colWidth)

		isSelectedCol := i == m.colCursor
		hasSearchMatch := m.matcher.MatchField(r, c.Name)

		switch {
		case isSelectedRow && isSelectedCol:
			sb.WriteString(styles.Render(selectedCellStyle, displayVal))
		case isSelectedRow:
			sb.WriteString(styles.Render(selectedRowStyle, displayVal))
		case hasSearchMatch:
			sb.WriteString(styles.Highlight(displayVal))
		default:
			sb.WriteString(styleCell(displayVal, r, c, present))
		}
		sb.WriteString("  ")
	}

	return sb.String()
}
