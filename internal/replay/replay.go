// Package replay drives list controllers through scripted interactions and
// compares what they render. It backs the check command and the benchmark.
package replay

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/imgajeed76/dataview/internal/pagination"
	"github.com/imgajeed76/dataview/internal/record"
	"github.com/imgajeed76/dataview/internal/sorting"
	"github.com/imgajeed76/dataview/internal/view"
)

// Kind is the interaction an Action performs.
type Kind string

const (
	KindSort        Kind = "sort"
	KindPage        Kind = "page"
	KindToggle      Kind = "toggle"
	KindExpandAll   Kind = "expand-all"
	KindCollapseAll Kind = "collapse-all"
	KindReset       Kind = "reset"
)

// Action is one user interaction on a list screen.
type Action struct {
	Kind  Kind
	Field string
	Page  int
	ID    string
}

func (a Action) String() string {
	switch a.Kind {
	case KindSort:
		return fmt.Sprintf("sort %s", a.Field)
	case KindPage:
		return fmt.Sprintf("page %d", a.Page)
	case KindToggle:
		return fmt.Sprintf("toggle %s", a.ID)
	}
	return string(a.Kind)
}

// Apply performs the action on ctl.
func (a Action) Apply(ctl *view.Controller) {
	switch a.Kind {
	case KindSort:
		ctl.HandleSort(a.Field)
	case KindPage:
		ctl.HandlePageChange(a.Page)
	case KindToggle:
		ctl.ToggleRowExpansion(a.ID)
	case KindExpandAll:
		ctl.ExpandAllRows()
	case KindCollapseAll:
		ctl.CollapseAllRows()
	case KindReset:
		ctl.ResetView()
	}
}

// Script walks every field through the sort toggle (desc, asc, unsorted)
// and, in each state, visits every page. With expand set, each page is
// also expanded and collapsed again. It ends with a reset.
func Script(fields []string, totalItems, perPage int, expand bool) []Action {
	pages := pagination.Calculate(totalItems, perPage, 1).TotalPages
	var out []Action
	for _, field := range fields {
		for range 3 {
			out = append(out, Action{Kind: KindSort, Field: field})
			for page := 1; page <= pages; page++ {
				out = append(out, Action{Kind: KindPage, Page: page})
				if expand {
					out = append(out,
						Action{Kind: KindExpandAll},
						Action{Kind: KindCollapseAll},
					)
				}
			}
		}
	}
	return append(out, Action{Kind: KindReset})
}

// Snapshot is everything a renderer reads from a controller.
type Snapshot struct {
	IDs      []string
	Info     pagination.Info
	Numbers  []int
	Sort     sorting.State
	Expanded []string
}

// Take reads the controller's derived values. Rows without an id are
// recorded as "?" so that row count still matters.
func Take(ctl *view.Controller) Snapshot {
	return Snapshot{
		IDs:      rowIDs(ctl.Paginated()),
		Info:     ctl.Pagination(),
		Numbers:  ctl.PageNumbers(),
		Sort:     ctl.SortState(),
		Expanded: ctl.Expanded().IDs(),
	}
}

// Reference derives the snapshot of ctl's current state in one pass,
// without the controller's stage caches: a fresh sort of its records and a
// one-call pagination of the result.
func Reference(ctl *view.Controller) Snapshot {
	cfg := ctl.Config()
	state := ctl.SortState()

	sorted := ctl.Records()
	if !cfg.DisableSorting {
		sortFn := sorting.Sort
		if cfg.Locale != "" && cfg.Locale != sorting.DefaultLocale {
			sortFn = sorting.NewSorter(cfg.Locale).Sort
		}
		sorted = sortFn(sorted, cfg.Schema, state)
	}

	snap := Snapshot{Sort: state, Expanded: ctl.Expanded().IDs()}
	page := sorted
	if cfg.DisablePagination {
		snap.Info = pagination.Single(len(sorted))
		snap.Numbers = []int{}
	} else {
		res := pagination.Paginate(sorted, ctl.CurrentPage(), cfg.ItemsPerPage)
		page = res.Data
		snap.Info = res.Pagination
		snap.Numbers = res.PageNumbers
		if cfg.MaxVisiblePages != pagination.DefaultMaxVisible {
			snap.Numbers = pagination.PageNumbers(res.Pagination.TotalPages, res.Pagination.CurrentPage, cfg.MaxVisiblePages)
		}
	}
	snap.IDs = rowIDs(page)
	return snap
}

func rowIDs(page []record.Record) []string {
	ids := make([]string, len(page))
	for i, r := range page {
		id, ok := r.ID()
		if !ok {
			id = "?"
		}
		ids[i] = id
	}
	return ids
}

// Fingerprint hashes a snapshot.
func Fingerprint(s Snapshot) (uint64, error) {
	h, err := hashstructure.Hash(s, hashstructure.FormatV2, nil)
	if err != nil {
		return 0, errors.Wrap(err, "hash snapshot")
	}
	return h, nil
}

// Mismatch records a step after which the two controllers disagreed.
type Mismatch struct {
	Step   int
	Action Action
	Want   Snapshot
	Got    Snapshot
}

// Compare applies script to both controllers and fingerprints them after
// every step. want is the reference (usually unmemoized); it is itself
// checked against Reference, and a step where it disagrees is reported
// with the one-pass snapshot as Want.
func Compare(want, got *view.Controller, script []Action) (int, []Mismatch, error) {
	checked := 0
	var mismatches []Mismatch
	for i, action := range script {
		action.Apply(want)
		action.Apply(got)

		rs, ws, gs := Reference(want), Take(want), Take(got)
		rh, err := Fingerprint(rs)
		if err != nil {
			return checked, mismatches, err
		}
		wh, err := Fingerprint(ws)
		if err != nil {
			return checked, mismatches, err
		}
		gh, err := Fingerprint(gs)
		if err != nil {
			return checked, mismatches, err
		}
		checked++
		switch {
		case rh != wh:
			mismatches = append(mismatches, Mismatch{Step: i + 1, Action: action, Want: rs, Got: ws})
		case wh != gh:
			mismatches = append(mismatches, Mismatch{Step: i + 1, Action: action, Want: ws, Got: gs})
		}
	}
	return checked, mismatches, nil
}

// Describe renders a snapshot one fact per line, for diffing.
func Describe(s Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "sort: %s %s\n", s.Sort.Field, s.Sort.Direction)
	fmt.Fprintf(&sb, "page: %d of %d (%d per page, %d items)\n",
		s.Info.CurrentPage, s.Info.TotalPages, s.Info.ItemsPerPage, s.Info.TotalItems)
	fmt.Fprintf(&sb, "window: %v\n", s.Numbers)
	fmt.Fprintf(&sb, "expanded: %v\n", s.Expanded)
	for _, id := range s.IDs {
		fmt.Fprintf(&sb, "row %s\n", id)
	}
	return sb.String()
}

// LineKind classifies a diff line.
type LineKind int

const (
	LineContext LineKind = iota
	LineAdd
	LineDelete
)

// Line is one line of a line diff.
type Line struct {
	Kind    LineKind
	Content string
}

// Prefix is the unified diff marker of the line.
func (l Line) Prefix() string {
	switch l.Kind {
	case LineAdd:
		return "+"
	case LineDelete:
		return "-"
	}
	return " "
}

// DiffLines is a line-level diff of two texts.
func DiffLines(oldText, newText string) []Line {
	dmp := diffmatchpatch.New()

	oldRunes, newRunes, lineArray := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var lines []Line
	for _, d := range diffs {
		parts := strings.Split(d.Text, "\n")
		for i, part := range parts {
			if i == len(parts)-1 && part == "" {
				continue
			}
			kind := LineContext
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				kind = LineAdd
			case diffmatchpatch.DiffDelete:
				kind = LineDelete
			}
			lines = append(lines, Line{Kind: kind, Content: part})
		}
	}
	return lines
}
