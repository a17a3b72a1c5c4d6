package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_Basic(t *testing.T) {
	info := Calculate(23, 10, 2)
	assert.Equal(t, Info{
		TotalItems:   23,
		TotalPages:   3,
		CurrentPage:  2,
		ItemsPerPage: 10,
		StartIndex:   10,
		EndIndex:     20,
		HasNextPage:  true,
		HasPrevPage:  true,
	}, info)
}

func TestCalculate_ClampsPage(t *testing.T) {
	info := Calculate(23, 10, 9)
	assert.Equal(t, 3, info.CurrentPage)
	assert.Equal(t, 20, info.StartIndex)
	assert.Equal(t, 23, info.EndIndex)
	assert.True(t, info.IsLastPage)
	assert.False(t, info.HasNextPage)

	info = Calculate(23, 10, -4)
	assert.Equal(t, 1, info.CurrentPage)
	assert.Equal(t, 0, info.StartIndex)
	assert.True(t, info.IsFirstPage)
	assert.False(t, info.HasPrevPage)
}

func TestCalculate_Empty(t *testing.T) {
	for _, page := range []int{-1, 0, 1, 5} {
		info := Calculate(0, 10, page)
		assert.Equal(t, 1, info.TotalPages)
		assert.Equal(t, 1, info.CurrentPage)
		assert.True(t, info.IsFirstPage)
		assert.True(t, info.IsLastPage)
		assert.Equal(t, DisplayRange{Start: 0, End: 0, Total: 0, Showing: 0}, DisplayRangeOf(info))
	}
}

func TestCalculate_DegenerateInput(t *testing.T) {
	info := Calculate(5, 0, 3)
	assert.Equal(t, 1, info.ItemsPerPage)
	assert.Equal(t, 5, info.TotalPages)
	assert.Equal(t, 2, info.StartIndex)

	info = Calculate(-3, 10, 1)
	assert.Equal(t, 0, info.TotalItems)
	assert.Equal(t, 1, info.TotalPages)
}

func TestCalculate_Bounds(t *testing.T) {
	items := make([]int, 0, 57)
	for i := range 57 {
		items = append(items, i)
	}
	for total := 0; total <= len(items); total++ {
		for perPage := 1; perPage <= 12; perPage++ {
			for page := -1; page <= 60; page += 7 {
				info := Calculate(total, perPage, page)
				require.GreaterOrEqual(t, info.TotalPages, 1)
				require.GreaterOrEqual(t, info.CurrentPage, 1)
				require.LessOrEqual(t, info.CurrentPage, info.TotalPages)

				slice := Slice(items[:total], info)
				require.Equal(t, info.EndIndex, info.StartIndex+len(slice))
				require.LessOrEqual(t, info.EndIndex, total)
			}
		}
	}
}

func TestLastPageScenario(t *testing.T) {
	info := Calculate(23, 10, 3)
	assert.Equal(t, DisplayRange{Start: 21, End: 23, Total: 23, Showing: 3}, DisplayRangeOf(info))

	nav := NavigationOf(info)
	assert.True(t, nav.CanGoPrev)
	assert.False(t, nav.CanGoNext)
	assert.Equal(t, 2, nav.PrevPage)
	assert.Equal(t, 0, nav.NextPage)
	assert.True(t, nav.IsLastPage)
	assert.False(t, nav.IsFirstPage)
}

func TestPageNumbers_Window(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageNumbers(12, 1, 5))
	assert.Equal(t, []int{8, 9, 10, 11, 12}, PageNumbers(12, 12, 5))
	assert.Equal(t, []int{4, 5, 6, 7, 8}, PageNumbers(12, 6, 5))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageNumbers(12, 2, 5))
	assert.Equal(t, []int{8, 9, 10, 11, 12}, PageNumbers(12, 11, 5))
}

func TestPageNumbers_Small(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, PageNumbers(3, 2, 5))
	assert.Equal(t, []int{1}, PageNumbers(0, 1, 5))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageNumbers(9, 1, 0), "default window")
	assert.Equal(t, []int{8, 9, 10, 11, 12}, PageNumbers(12, 40, 5), "current is clamped")
	assert.Equal(t, []int{3, 4, 5, 6}, PageNumbers(12, 5, 4))
}

func TestSlice(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	assert.Equal(t, []string{"c", "d"}, Slice(items, Calculate(5, 2, 2)))
	assert.Equal(t, []string{"e"}, Slice(items, Calculate(5, 2, 3)))
	assert.Empty(t, Slice([]string{}, Calculate(0, 2, 1)))

	// Stale info against a shorter slice never panics.
	assert.Equal(t, []string{"e"}, Slice(items, Info{StartIndex: 4, EndIndex: 40}))
	assert.Empty(t, Slice(items, Info{StartIndex: 10, EndIndex: 12}))

	page := Slice(items, Calculate(5, 2, 1))
	page = append(page, "x")
	assert.Equal(t, "c", items[2], "appending to a page must not clobber the source")
	assert.Len(t, page, 3)
}

func TestSingle(t *testing.T) {
	info := Single(42)
	assert.Equal(t, 1, info.TotalPages)
	assert.Equal(t, 0, info.StartIndex)
	assert.Equal(t, 42, info.EndIndex)
	assert.False(t, info.HasNextPage)
	assert.Equal(t, DisplayRange{Start: 1, End: 42, Total: 42, Showing: 42}, DisplayRangeOf(info))

	empty := Single(0)
	assert.Equal(t, DisplayRange{}, DisplayRangeOf(empty))
}

func TestValidatePage(t *testing.T) {
	tests := []struct {
		raw   string
		total int
		want  int
	}{
		{"3", 5, 3},
		{" 2 ", 5, 2},
		{"abc", 5, 1},
		{"", 5, 1},
		{"0", 5, 1},
		{"-2", 5, 1},
		{"9", 5, 5},
		{"9", 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidatePage(tt.raw, tt.total), tt.raw)
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i + 1
	}

	res := Paginate(items, 3, 10)
	assert.Equal(t, []int{21, 22, 23}, res.Data)
	assert.Equal(t, 3, res.Pagination.CurrentPage)
	assert.Equal(t, []int{1, 2, 3}, res.PageNumbers)
	assert.Equal(t, 21, res.DisplayRange.Start)
	assert.False(t, res.Navigation.CanGoNext)

	res = Paginate(items, 1, 0)
	assert.Equal(t, DefaultPerPage, res.Pagination.ItemsPerPage)
	assert.Len(t, res.Data, 10)
}
