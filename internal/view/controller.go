// Package view owns the per-screen state of a list (sort, page, expanded
// rows) and derives everything a renderer needs from it.
//
// The pipeline is raw records -> sorted -> pagination info -> page slice ->
// page numbers. Each stage is memoized on its own inputs, so reading a
// derived value twice, or changing expansion, recomputes nothing. Filtering
// happens before records reach the controller.
package view

import (
	"github.com/imgajeed76/dataview/internal/pagination"
	"github.com/imgajeed76/dataview/internal/record"
	"github.com/imgajeed76/dataview/internal/sorting"
)

type sortedKey struct {
	generation uint64
	sort       sorting.State
}

type infoKey struct {
	total, perPage, page int
}

type pageKey struct {
	generation uint64
	sort       sorting.State
	info       pagination.Info
}

type numbersKey struct {
	totalPages, currentPage int
}

// Controller holds the state of one list screen. It is not safe for
// concurrent use. Slices returned by derived accessors are shared with the
// memo and must not be modified.
type Controller struct {
	cfg    Config
	sorter *sorting.Sorter

	records    []record.Record
	generation uint64

	sort     sorting.State
	page     int
	expanded ExpansionSet

	sorted  memo[sortedKey, []record.Record]
	info    memo[infoKey, pagination.Info]
	paged   memo[pageKey, []record.Record]
	numbers memo[numbersKey, []int]
}

// New builds a controller in the screen's initial state.
func New(cfg Config, records []record.Record) *Controller {
	cfg = cfg.normalized()
	c := &Controller{
		cfg:     cfg,
		sorter:  sorting.NewSorter(cfg.Locale),
		records: records,
	}
	c.reset()
	return c
}

// SetRecords replaces the collection, typically after the caller re-ran
// its search. Sort and page are kept; the page is clamped on next read.
func (c *Controller) SetRecords(records []record.Record) {
	c.records = records
	c.generation++
}

// Records returns the collection as given.
func (c *Controller) Records() []record.Record { return c.records }

func (c *Controller) Config() Config { return c.cfg }

func (c *Controller) reset() {
	c.sort = sorting.State{}
	if !c.cfg.DisableSorting {
		c.sort = c.cfg.InitialSort()
	}
	c.page = 1
	c.expanded = ExpansionSet{}
}

func (c *Controller) observe(stage Stage, cached bool) {
	if c.cfg.Observer != nil {
		c.cfg.Observer.StageEvaluated(stage, cached)
	}
}

// Commands

// HandleSort advances the sort toggle for field and goes back to page 1.
func (c *Controller) HandleSort(field string) {
	if c.cfg.DisableSorting {
		return
	}
	c.sort = sorting.Next(c.sort, field)
	c.page = 1
}

// HandlePageChange moves to page, clamped into range. It does nothing when
// pagination is disabled.
func (c *Controller) HandlePageChange(page int) {
	if c.cfg.DisablePagination {
		return
	}
	total := c.Pagination().TotalPages
	c.page = min(max(page, 1), total)
}

func (c *Controller) GoToPrevPage() {
	if nav := c.Navigation(); nav.CanGoPrev {
		c.HandlePageChange(nav.PrevPage)
	}
}

func (c *Controller) GoToNextPage() {
	if nav := c.Navigation(); nav.CanGoNext {
		c.HandlePageChange(nav.NextPage)
	}
}

func (c *Controller) GoToFirstPage() { c.HandlePageChange(1) }

func (c *Controller) GoToLastPage() { c.HandlePageChange(c.Pagination().TotalPages) }

// ToggleRowExpansion flips one row.
func (c *Controller) ToggleRowExpansion(id string) {
	if c.cfg.DisableExpansion {
		return
	}
	c.expanded = c.expanded.Toggle(id)
}

// ExpandAllRows expands exactly the rows on the current page. Rows without
// an id are skipped.
func (c *Controller) ExpandAllRows() {
	if c.cfg.DisableExpansion {
		return
	}
	page := c.Paginated()
	ids := make([]string, 0, len(page))
	for _, r := range page {
		if id, ok := r.ID(); ok {
			ids = append(ids, id)
		}
	}
	c.expanded = NewExpansionSet(ids...)
}

func (c *Controller) CollapseAllRows() {
	c.expanded = ExpansionSet{}
}

// ResetView restores the initial sort, page 1 and no expanded rows.
func (c *Controller) ResetView() {
	c.reset()
}

// Derived values

// Sorted returns the full collection in display order.
func (c *Controller) Sorted() []record.Record {
	if c.cfg.DisableSorting {
		return c.records
	}
	v, cached := c.sorted.get(sortedKey{c.generation, c.sort}, !c.cfg.DisableMemo, func() []record.Record {
		return c.sorter.Sort(c.records, c.cfg.Schema, c.sort)
	})
	c.observe(StageSorted, cached)
	return v
}

// Pagination returns the info of the current page.
func (c *Controller) Pagination() pagination.Info {
	total := len(c.Sorted())
	if c.cfg.DisablePagination {
		return pagination.Single(total)
	}
	key := infoKey{total: total, perPage: c.cfg.ItemsPerPage, page: c.page}
	v, cached := c.info.get(key, !c.cfg.DisableMemo, func() pagination.Info {
		return pagination.Calculate(total, c.cfg.ItemsPerPage, c.page)
	})
	c.observe(StagePagination, cached)
	return v
}

// Paginated returns the records on the current page.
func (c *Controller) Paginated() []record.Record {
	sorted := c.Sorted()
	if c.cfg.DisablePagination {
		return sorted
	}
	info := c.Pagination()
	v, cached := c.paged.get(pageKey{c.generation, c.sort, info}, !c.cfg.DisableMemo, func() []record.Record {
		return pagination.Slice(sorted, info)
	})
	c.observe(StagePaginated, cached)
	return v
}

// PageNumbers returns the window of page links. It is empty when
// pagination is disabled.
func (c *Controller) PageNumbers() []int {
	if c.cfg.DisablePagination {
		return []int{}
	}
	info := c.Pagination()
	key := numbersKey{info.TotalPages, info.CurrentPage}
	v, cached := c.numbers.get(key, !c.cfg.DisableMemo, func() []int {
		return pagination.PageNumbers(info.TotalPages, info.CurrentPage, c.cfg.MaxVisiblePages)
	})
	c.observe(StagePageNumbers, cached)
	return v
}

func (c *Controller) DisplayRange() pagination.DisplayRange {
	return pagination.DisplayRangeOf(c.Pagination())
}

func (c *Controller) Navigation() pagination.Navigation {
	return pagination.NavigationOf(c.Pagination())
}

// CurrentPage returns the page being shown, after clamping.
func (c *Controller) CurrentPage() int { return c.Pagination().CurrentPage }

func (c *Controller) SortState() sorting.State { return c.sort }

// SortInfo describes a column header.
type SortInfo struct {
	IsActive      bool
	Direction     sorting.Direction
	NextDirection sorting.Direction
	Icon          sorting.Icon
}

func (c *Controller) SortInfo(field string) SortInfo {
	info := SortInfo{
		IsActive:      sorting.IsSorted(field, c.sort),
		NextDirection: sorting.Next(c.sort, field).Direction,
		Icon:          sorting.IconFor(field, c.sort),
	}
	if info.IsActive {
		info.Direction = c.sort.Direction
	}
	return info
}

func (c *Controller) IsRowExpanded(id string) bool { return c.expanded.Has(id) }

func (c *Controller) Expanded() ExpansionSet { return c.expanded }

// Stats counts the current view.
type Stats struct {
	TotalItems    int `json:"totalItems"`
	FilteredItems int `json:"filteredItems"`
	VisibleItems  int `json:"visibleItems"`
	ExpandedItems int `json:"expandedItems"`
	CurrentPage   int `json:"currentPage"`
	TotalPages    int `json:"totalPages"`
}

func (c *Controller) Stats() Stats {
	info := c.Pagination()
	return Stats{
		TotalItems:    len(c.records),
		FilteredItems: len(c.Sorted()),
		VisibleItems:  len(c.Paginated()),
		ExpandedItems: c.expanded.Len(),
		CurrentPage:   info.CurrentPage,
		TotalPages:    info.TotalPages,
	}
}

// ResetMemo drops every cached stage.
func (c *Controller) ResetMemo() {
	c.sorted.reset()
	c.info.reset()
	c.paged.reset()
	c.numbers.reset()
}
