package styles

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Symbols - Unicode with ASCII fallbacks
const (
	SymbolSuccess   = "✓"
	SymbolError     = "✗"
	SymbolWarning   = "⚠"
	SymbolInfo      = "●"
	SymbolArrow     = "→"
	SymbolExpanded  = "▾"
	SymbolCollapsed = "▸"
)

var (
	noColor    atomic.Bool
	accessible atomic.Bool
)

// Configure sets the output mode from the environment the CLI resolved.
func Configure(disableColor, accessibleMode bool) {
	noColor.Store(disableColor)
	accessible.Store(accessibleMode)
}

// NoColor checks if colors should be disabled
func NoColor() bool {
	return noColor.Load()
}

// IsAccessible checks if accessibility mode is enabled
// When enabled: no animations, no spinner, simplified output
func IsAccessible() bool {
	return accessible.Load()
}

// Base text styles
var (
	Bold      = lipgloss.NewStyle().Bold(true)
	Dim       = lipgloss.NewStyle().Foreground(Muted)
	Underline = lipgloss.NewStyle().Underline(true)
)

// Semantic styles - use these instead of raw colors
var (
	// Message types
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoStyle    = lipgloss.NewStyle().Foreground(Info)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)

	// Table
	HeaderStyle       = lipgloss.NewStyle().Bold(true)
	SortedHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSortActive)
	ArrowStyle        = lipgloss.NewStyle().Foreground(ColorSortInactive)
	ActiveArrowStyle  = lipgloss.NewStyle().Foreground(ColorSortActive)
	TrueStyle         = lipgloss.NewStyle().Foreground(ColorTrue)
	FalseStyle        = lipgloss.NewStyle().Foreground(ColorFalse)
	NullStyle         = lipgloss.NewStyle().Foreground(ColorNull).Italic(true)
	IDStyle           = lipgloss.NewStyle().Foreground(ColorID)
	DateStyle         = lipgloss.NewStyle().Foreground(ColorDate)
	DetailKeyStyle    = lipgloss.NewStyle().Foreground(TextSecondary)
	CurrentPageStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorCurrentPage)
	MatchStyle        = lipgloss.NewStyle().Foreground(ColorMatch).Bold(true)

	// Interactive TUI
	SelectedStyle = lipgloss.NewStyle().
			Background(BgHighlight).
			Foreground(TextPrimary)

	// Help bar
	HelpKey   = lipgloss.NewStyle().Foreground(Accent)
	HelpValue = lipgloss.NewStyle().Foreground(Muted)
)

// ═══════════════════════════════════════════════════════════════════════════
// Render functions - centralized formatting with NoColor support
// ═══════════════════════════════════════════════════════════════════════════

// render applies a style if colors are enabled
func render(s lipgloss.Style, text string) string {
	if NoColor() {
		return text
	}
	return s.Render(text)
}

// Render applies a style unless colors are disabled
func Render(s lipgloss.Style, text string) string {
	return render(s, text)
}

// Header formats a column title. Sorted columns are highlighted.
func Header(title string, sorted bool) string {
	if sorted {
		return render(SortedHeaderStyle, title)
	}
	return render(HeaderStyle, title)
}

// SortArrow formats the sort indicator of a column header
func SortArrow(arrow string, sorted bool) string {
	if sorted {
		return render(ActiveArrowStyle, arrow)
	}
	return render(ArrowStyle, arrow)
}

// Bool formats a boolean cell
func Bool(v bool) string {
	if v {
		symbol := SymbolSuccess
		if NoColor() {
			symbol = "yes"
		}
		return render(TrueStyle, symbol)
	}
	symbol := SymbolError
	if NoColor() {
		symbol = "no"
	}
	return render(FalseStyle, symbol)
}

// Null formats a missing cell value
func Null() string {
	return render(NullStyle, "—")
}

// ID formats a record id
func ID(id string) string {
	return render(IDStyle, id)
}

// Date formats a date/timestamp
func Date(date string) string {
	return render(DateStyle, date)
}

// ExpandMarker returns the row prefix for expanded and collapsed rows
func ExpandMarker(expanded bool) string {
	if NoColor() || IsAccessible() {
		if expanded {
			return "-"
		}
		return "+"
	}
	if expanded {
		return SymbolExpanded
	}
	return SymbolCollapsed
}

// PageNumber formats one entry of the page window
func PageNumber(n int, current bool) string {
	if current {
		if NoColor() {
			return fmt.Sprintf("[%d]", n)
		}
		return render(CurrentPageStyle, fmt.Sprintf("%d", n))
	}
	return fmt.Sprintf("%d", n)
}

// ═══════════════════════════════════════════════════════════════════════════
// Message formatters - structured output
// ═══════════════════════════════════════════════════════════════════════════

// SuccessMsg formats a success message with checkmark
func SuccessMsg(msg string) string {
	symbol := SymbolSuccess
	if NoColor() {
		symbol = "+"
	}
	return fmt.Sprintf("%s %s", render(SuccessStyle, symbol), msg)
}

// ErrorMsg formats an error message
func ErrorMsg(title string) string {
	return render(ErrorStyle, "Error: "+title)
}

// WarningMsg formats a warning message
func WarningMsg(msg string) string {
	symbol := SymbolWarning
	if NoColor() {
		symbol = "!"
	}
	return fmt.Sprintf("%s %s", render(WarningStyle, symbol), msg)
}

// InfoMsg formats an info message
func InfoMsg(msg string) string {
	return render(InfoStyle, msg)
}

// MutedMsg formats muted/secondary text
func MutedMsg(msg string) string {
	return render(MutedStyle, msg)
}

// ═══════════════════════════════════════════════════════════════════════════
// Section formatters - consistent output structure
// ═══════════════════════════════════════════════════════════════════════════

// SectionHeader formats a section header
func SectionHeader(title string) string {
	return render(Bold, title)
}

// HelpLine formats a help line (key description)
func HelpLine(key, description string) string {
	return fmt.Sprintf("  %s %s", render(HelpKey, key), render(MutedStyle, description))
}

// Indent returns text indented by n spaces
func Indent(text string, n int) string {
	prefix := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// ═══════════════════════════════════════════════════════════════════════════
// Color functions - simple string coloring
// ═══════════════════════════════════════════════════════════════════════════

func Cyan(s string) string        { return render(InfoStyle, s) }
func Mute(s string) string        { return render(MutedStyle, s) }
func Highlight(s string) string   { return render(MatchStyle, s) }
func SuccessText(s string) string { return render(SuccessStyle, s) }
func WarningText(s string) string { return render(WarningStyle, s) }
func ErrorText(s string) string   { return render(ErrorStyle, s) }

// Printf-style color functions
func Cyanf(format string, a ...any) string    { return Cyan(fmt.Sprintf(format, a...)) }
func Mutef(format string, a ...any) string    { return Mute(fmt.Sprintf(format, a...)) }
func Boldf(format string, a ...any) string    { return render(Bold, fmt.Sprintf(format, a...)) }
func Errorf(format string, a ...any) string   { return ErrorText(fmt.Sprintf(format, a...)) }
func Successf(format string, a ...any) string { return SuccessText(fmt.Sprintf(format, a...)) }
func Warningf(format string, a ...any) string { return WarningText(fmt.Sprintf(format, a...)) }
