package view

import (
	"github.com/imgajeed76/dataview/internal/pagination"
	"github.com/imgajeed76/dataview/internal/record"
	"github.com/imgajeed76/dataview/internal/sorting"
)

// Config declares how one list screen behaves. Capabilities are on unless
// disabled, so the zero value is a usable unsorted screen.
type Config struct {
	SortField       string
	SortDirection   sorting.Direction
	ItemsPerPage    int
	MaxVisiblePages int

	DisableSorting    bool
	DisablePagination bool
	DisableExpansion  bool

	// DisableMemo recomputes every stage on every read.
	DisableMemo bool

	Schema   *record.Schema
	Locale   string
	Observer Observer
}

// DefaultConfig is the list screen default: newest first, ten per page.
func DefaultConfig() Config {
	return Config{
		SortField:       "created_at",
		SortDirection:   sorting.Desc,
		ItemsPerPage:    pagination.DefaultPerPage,
		MaxVisiblePages: pagination.DefaultMaxVisible,
	}
}

func (c Config) normalized() Config {
	if c.ItemsPerPage < 1 {
		c.ItemsPerPage = pagination.DefaultPerPage
	}
	if c.MaxVisiblePages < 1 {
		c.MaxVisiblePages = pagination.DefaultMaxVisible
	}
	if c.Locale == "" {
		c.Locale = sorting.DefaultLocale
	}
	return c
}

// InitialSort is the sort state the screen starts in and resets to.
func (c Config) InitialSort() sorting.State {
	return sorting.NewState(c.SortField, c.SortDirection)
}
