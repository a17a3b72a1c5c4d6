package sorting

import "strings"

// Direction of a sort. The zero value means unsorted.
type Direction string

const (
	None Direction = ""
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc"/"desc" and their long forms, case
// insensitive. Anything else is None.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Asc
	case "desc", "descending":
		return Desc
	}
	return None
}

// State is the sort applied to a screen. Field is empty exactly when
// Direction is None; build it with NewState to keep that invariant.
type State struct {
	Field     string
	Direction Direction
}

// NewState returns the unsorted state if either half is missing.
func NewState(field string, dir Direction) State {
	if field == "" || (dir != Asc && dir != Desc) {
		return State{}
	}
	return State{Field: field, Direction: dir}
}

// IsSorted reports whether a sort is applied.
func (s State) IsSorted() bool {
	return s.Field != "" && s.Direction != None
}

// Next advances the per-column toggle. Clicking a new column enters at
// desc; clicking the active column goes desc -> asc -> unsorted.
func Next(current State, clicked string) State {
	if current.IsSorted() && current.Field == clicked {
		switch current.Direction {
		case Desc:
			return NewState(clicked, Asc)
		case Asc:
			return State{}
		}
	}
	return NewState(clicked, Desc)
}

// Icon is the indicator a column header shows for its sort state.
type Icon string

const (
	IconNeutral    Icon = "neutral"
	IconAscending  Icon = "ascending"
	IconDescending Icon = "descending"
)

// IconFor returns the header icon of a field under the given state.
func IconFor(field string, state State) Icon {
	if !IsSorted(field, state) {
		return IconNeutral
	}
	if state.Direction == Asc {
		return IconAscending
	}
	return IconDescending
}

// IsSorted reports whether field is the active sort column.
func IsSorted(field string, state State) bool {
	return state.IsSorted() && state.Field == field
}

// Arrow renders the icon for terminal headers.
func (i Icon) Arrow() string {
	switch i {
	case IconAscending:
		return "▲"
	case IconDescending:
		return "▼"
	default:
		return "↕"
	}
}
