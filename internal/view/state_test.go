package view

import (
	"testing"

	"github.com/imgajeed76/dataview/internal/sorting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestore(t *testing.T) {
	c := New(DefaultConfig(), areas(30))
	c.HandleSort("name")
	c.HandleSort("name")
	c.HandlePageChange(2)
	c.ToggleRowExpansion("7")
	c.ToggleRowExpansion("3")

	st := c.Snapshot()
	assert.Equal(t, State{SortField: "name", SortDirection: "asc", Page: 2, Expanded: []string{"3", "7"}}, st)

	other := New(DefaultConfig(), areas(30))
	other.Restore(st)
	assert.Equal(t, c.SortState(), other.SortState())
	assert.Equal(t, 2, other.CurrentPage())
	assert.True(t, other.IsRowExpanded("7"))
	assert.Equal(t, pageIDs(c.Paginated()), pageIDs(other.Paginated()))
}

func TestRestore_RespectsDisabledCapabilities(t *testing.T) {
	c := New(Config{DisableSorting: true, DisablePagination: true, DisableExpansion: true}, areas(30))
	c.Restore(State{SortField: "name", SortDirection: "desc", Page: 3, Expanded: []string{"1"}})

	assert.False(t, c.SortState().IsSorted())
	assert.Equal(t, 1, c.CurrentPage())
	assert.Equal(t, 0, c.Expanded().Len())
}

func TestRestore_BadSortIsUnsorted(t *testing.T) {
	c := New(DefaultConfig(), areas(5))
	c.Restore(State{SortField: "name", SortDirection: "sideways", Page: -2})
	assert.Equal(t, sorting.State{}, c.SortState())
	assert.Equal(t, 1, c.CurrentPage())
}

func TestEncodeDecodeState(t *testing.T) {
	st := State{SortField: "created_at", SortDirection: "desc", Page: 3, Expanded: []string{"a", "b"}, Query: "área"}

	raw, err := EncodeState(st)
	require.NoError(t, err)
	assert.Contains(t, raw, "sort=created_at")
	assert.Contains(t, raw, "page=3")

	got, err := DecodeState("?" + raw)
	require.NoError(t, err)
	assert.Equal(t, st, got)
}

func TestEncodeState_OmitsEmpty(t *testing.T) {
	raw, err := EncodeState(State{})
	require.NoError(t, err)
	assert.Equal(t, "", raw)
}

func TestDecodeState_Errors(t *testing.T) {
	_, err := DecodeState("page=two")
	assert.Error(t, err)

	_, err = DecodeState("%zz")
	assert.Error(t, err)

	st, err := DecodeState("sort=name&unknown=1")
	require.NoError(t, err)
	assert.Equal(t, "name", st.SortField)
}
