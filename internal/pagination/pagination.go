// Package pagination computes page bounds, page-number windows and display
// ranges. Every function is pure and clamps out-of-range input instead of
// failing.
package pagination

import (
	"strconv"
	"strings"
)

// DefaultMaxVisible is the page window size used when none is given.
const DefaultMaxVisible = 5

// DefaultPerPage is the page size used by Paginate when none is given.
const DefaultPerPage = 10

// Info describes one page of a collection.
type Info struct {
	TotalItems   int  `json:"totalItems"`
	TotalPages   int  `json:"totalPages"`
	CurrentPage  int  `json:"currentPage"`
	ItemsPerPage int  `json:"itemsPerPage"`
	StartIndex   int  `json:"startIndex"`
	EndIndex     int  `json:"endIndex"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
	IsFirstPage  bool `json:"isFirstPage"`
	IsLastPage   bool `json:"isLastPage"`
}

// Calculate returns the pagination info for a page. There is always at
// least one page, and currentPage is clamped into [1, TotalPages] before
// anything else is derived from it.
func Calculate(totalItems, itemsPerPage, currentPage int) Info {
	if totalItems < 0 {
		totalItems = 0
	}
	if itemsPerPage < 1 {
		itemsPerPage = 1
	}
	totalPages := max(1, (totalItems+itemsPerPage-1)/itemsPerPage)
	currentPage = clamp(currentPage, 1, totalPages)

	start := (currentPage - 1) * itemsPerPage
	end := min(start+itemsPerPage, totalItems)

	return Info{
		TotalItems:   totalItems,
		TotalPages:   totalPages,
		CurrentPage:  currentPage,
		ItemsPerPage: itemsPerPage,
		StartIndex:   start,
		EndIndex:     end,
		HasNextPage:  currentPage < totalPages,
		HasPrevPage:  currentPage > 1,
		IsFirstPage:  currentPage == 1,
		IsLastPage:   currentPage == totalPages,
	}
}

// Single describes a collection shown as one page holding every item.
func Single(totalItems int) Info {
	if totalItems < 0 {
		totalItems = 0
	}
	return Info{
		TotalItems:   totalItems,
		TotalPages:   1,
		CurrentPage:  1,
		ItemsPerPage: max(1, totalItems),
		EndIndex:     totalItems,
		IsFirstPage:  true,
		IsLastPage:   true,
	}
}

// Slice returns the items on the page described by info. The result shares
// the backing array of items; callers must not append to it.
func Slice[T any](items []T, info Info) []T {
	start := clamp(info.StartIndex, 0, len(items))
	end := clamp(info.EndIndex, start, len(items))
	return items[start:end:end]
}

// PageNumbers returns the window of page numbers to show around
// currentPage. The window never runs past [1, totalPages].
func PageNumbers(totalPages, currentPage, maxVisible int) []int {
	if maxVisible < 1 {
		maxVisible = DefaultMaxVisible
	}
	if totalPages < 1 {
		totalPages = 1
	}
	currentPage = clamp(currentPage, 1, totalPages)

	if totalPages <= maxVisible {
		return pageRange(1, totalPages)
	}

	start := max(1, currentPage-maxVisible/2)
	end := min(totalPages, start+maxVisible-1)
	if end-start+1 < maxVisible {
		start = max(1, end-maxVisible+1)
	}
	return pageRange(start, end)
}

func pageRange(start, end int) []int {
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// DisplayRange is the 1-indexed "showing X-Y of Z" label of a page.
type DisplayRange struct {
	Start   int `json:"start"`
	End     int `json:"end"`
	Total   int `json:"total"`
	Showing int `json:"showing"`
}

// DisplayRangeOf derives the display range. Start is 0 only when the
// collection is empty.
func DisplayRangeOf(info Info) DisplayRange {
	start := 0
	if info.TotalItems > 0 {
		start = info.StartIndex + 1
	}
	return DisplayRange{
		Start:   start,
		End:     info.EndIndex,
		Total:   info.TotalItems,
		Showing: info.EndIndex - info.StartIndex,
	}
}

// Navigation holds the prev/next controls of a page. PrevPage and NextPage
// are 0 when there is no such page.
type Navigation struct {
	PrevPage    int  `json:"prevPage,omitempty"`
	NextPage    int  `json:"nextPage,omitempty"`
	CanGoPrev   bool `json:"canGoPrev"`
	CanGoNext   bool `json:"canGoNext"`
	IsFirstPage bool `json:"isFirstPage"`
	IsLastPage  bool `json:"isLastPage"`
}

func NavigationOf(info Info) Navigation {
	nav := Navigation{
		CanGoPrev:   info.HasPrevPage,
		CanGoNext:   info.HasNextPage,
		IsFirstPage: info.CurrentPage == 1,
		IsLastPage:  info.CurrentPage == info.TotalPages,
	}
	if info.HasPrevPage {
		nav.PrevPage = info.CurrentPage - 1
	}
	if info.HasNextPage {
		nav.NextPage = info.CurrentPage + 1
	}
	return nav
}

// ValidatePage parses a user-supplied page number. Garbage and values
// below 1 give 1; values past the end give the last page.
func ValidatePage(raw string, totalPages int) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	if page > totalPages {
		return max(1, totalPages)
	}
	return page
}

// Result bundles a page of items with everything needed to render its
// controls.
type Result[T any] struct {
	Data         []T          `json:"data"`
	Pagination   Info         `json:"pagination"`
	DisplayRange DisplayRange `json:"displayRange"`
	Navigation   Navigation   `json:"navigation"`
	PageNumbers  []int        `json:"pageNumbers"`
}

// Paginate pages items in one call. A perPage below 1 uses DefaultPerPage.
func Paginate[T any](items []T, page, perPage int) Result[T] {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	info := Calculate(len(items), perPage, page)
	return Result[T]{
		Data:         Slice(items, info),
		Pagination:   info,
		DisplayRange: DisplayRangeOf(info),
		Navigation:   NavigationOf(info),
		PageNumbers:  PageNumbers(info.TotalPages, info.CurrentPage, DefaultMaxVisible),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
