package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
// Dark mode optimized, semantic colors
var (
	// Primary semantic colors
	Accent  = lipgloss.Color("#7C3AED") // violet-500 - highlights, interactive
	Success = lipgloss.Color("#10B981") // emerald-500 - success, true values
	Warning = lipgloss.Color("#F59E0B") // amber-500 - warnings, search matches
	Error   = lipgloss.Color("#EF4444") // red-500 - errors, false values
	Info    = lipgloss.Color("#3B82F6") // blue-500 - info, ids
	Muted   = lipgloss.Color("#6B7280") // gray-500 - secondary text

	// Text colors
	TextPrimary   = lipgloss.Color("#F9FAFB") // gray-50 - main text
	TextSecondary = lipgloss.Color("#9CA3AF") // gray-400 - descriptions
	TextTertiary  = lipgloss.Color("#6B7280") // gray-500 - timestamps

	// Background colors
	BgHighlight = lipgloss.Color("#1F2937") // gray-800 - selected items
	BgBorder    = lipgloss.Color("#374151") // gray-700 - borders
)

// Semantic color aliases for clarity
var (
	// Column headers
	ColorSortActive   = Accent // Header of the sorted column
	ColorSortInactive = Muted  // Neutral sort arrow

	// Cell values
	ColorTrue  = Success // Active, has_cargos, has_embedding
	ColorFalse = Error
	ColorNull  = Muted
	ColorID    = Info
	ColorDate  = Muted

	// Pager
	ColorCurrentPage = Accent
	ColorMatch       = Warning // Live search highlight
)
