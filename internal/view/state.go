package view

import (
	"net/url"

	"github.com/go-faster/errors"
	"github.com/gorilla/schema"

	"github.com/imgajeed76/dataview/internal/sorting"
)

// State is a portable snapshot of a screen: sort, page, expanded rows and
// the search query the caller applied. It round-trips through a URL query
// string ("sort=name&dir=asc&page=2").
type State struct {
	SortField     string   `schema:"sort,omitempty"`
	SortDirection string   `schema:"dir,omitempty"`
	Page          int      `schema:"page,omitempty"`
	Expanded      []string `schema:"expanded,omitempty"`
	Query         string   `schema:"q,omitempty"`
}

// Snapshot captures the controller state. Query is left for the caller.
func (c *Controller) Snapshot() State {
	st := State{
		SortField:     c.sort.Field,
		SortDirection: string(c.sort.Direction),
		Page:          c.CurrentPage(),
	}
	if c.expanded.Len() > 0 {
		st.Expanded = c.expanded.IDs()
	}
	return st
}

// Restore applies a snapshot. Parts belonging to a disabled capability are
// ignored, and an unparseable sort restores as unsorted.
func (c *Controller) Restore(st State) {
	if !c.cfg.DisableSorting {
		c.sort = sorting.NewState(st.SortField, sorting.ParseDirection(st.SortDirection))
	}
	if !c.cfg.DisablePagination {
		c.page = max(st.Page, 1)
	}
	if !c.cfg.DisableExpansion {
		c.expanded = NewExpansionSet(st.Expanded...)
	}
}

var (
	stateEncoder = schema.NewEncoder()
	stateDecoder = func() *schema.Decoder {
		d := schema.NewDecoder()
		d.IgnoreUnknownKeys(true)
		return d
	}()
)

// EncodeState renders st as a URL query string.
func EncodeState(st State) (string, error) {
	values := url.Values{}
	if err := stateEncoder.Encode(st, values); err != nil {
		return "", errors.Wrap(err, "encode view state")
	}
	return values.Encode(), nil
}

// DecodeState parses a query string produced by EncodeState. A leading
// "?" is accepted.
func DecodeState(raw string) (State, error) {
	if len(raw) > 0 && raw[0] == '?' {
		raw = raw[1:]
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return State{}, errors.Wrap(err, "parse view state")
	}
	var st State
	if err := stateDecoder.Decode(&st, values); err != nil {
		return State{}, errors.Wrap(err, "decode view state")
	}
	return st, nil
}
