package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/imgajeed76/dataview/internal/config"
	"github.com/imgajeed76/dataview/internal/logging"
	"github.com/imgajeed76/dataview/internal/pagination"
	"github.com/imgajeed76/dataview/internal/record"
	"github.com/imgajeed76/dataview/internal/search"
	"github.com/imgajeed76/dataview/internal/sorting"
	"github.com/imgajeed76/dataview/internal/source"
	"github.com/imgajeed76/dataview/internal/ui/table"
	"github.com/imgajeed76/dataview/internal/util"
	"github.com/imgajeed76/dataview/internal/view"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// displayFlags are the flags shared by every command that shows a screen.
type displayFlags struct {
	screen    string
	sortField string
	direction string
	page      string
	perPage   int
	query     string
	fields    []string
	columns   []string
	state     string

	category  string
	embedding string
	active    string
	since     string
	until     string

	json    bool
	raw     bool
	noPager bool
}

func addDisplayFlags(cmd *cobra.Command, f *displayFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.screen, "screen", "s", "", "Screen declaration to use (see 'dataview screens')")
	flags.StringVar(&f.sortField, "sort", "", "Sort by this field")
	flags.StringVar(&f.direction, "dir", "", "Sort direction: asc or desc (default desc)")
	flags.StringVarP(&f.page, "page", "p", "", "Page to show (clamped into range)")
	flags.IntVarP(&f.perPage, "per-page", "n", 0, "Rows per page")
	flags.StringVarP(&f.query, "search", "q", "", "Keep records matching this text (accents and case ignored)")
	flags.StringSliceVar(&f.fields, "fields", nil, "Fields searched by --search")
	flags.StringSliceVar(&f.columns, "columns", nil, "Columns to show")
	flags.StringVar(&f.state, "state", "", "Restore a view state (sort=name&dir=asc&page=2&expanded=1)")
	flags.StringVar(&f.category, "category", "", "Keep records of this category id")
	flags.StringVar(&f.embedding, "embedding", "", "Keep records with or without an embedding: with|without")
	flags.StringVar(&f.active, "active", "", "Keep active (true) or inactive (false) records")
	flags.StringVar(&f.since, "since", "", "Keep records created on or after this date (YYYY-MM-DD)")
	flags.StringVar(&f.until, "until", "", "Keep records created on or before this date (YYYY-MM-DD)")
	flags.BoolVar(&f.json, "json", false, "Output the page as JSON")
	flags.BoolVar(&f.raw, "raw", false, "Output the page as tab-separated values")
	flags.BoolVar(&f.noPager, "no-pager", false, "Print a plain table even on a terminal")

	_ = cmd.RegisterFlagCompletionFunc("dir", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"asc", "desc"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("embedding", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"with", "without"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("screen", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		cfg, _, err := config.Load()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return cfg.ScreenNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

// screenView is everything needed to render one screen.
type screenView struct {
	ctl  *view.Controller
	all  []record.Record
	opts table.DisplayOptions
}

// resolveScreen returns the named screen, or an empty declaration.
func resolveScreen(cfg *config.Config, name string) (config.ScreenConfig, error) {
	if name == "" {
		return config.ScreenConfig{}, nil
	}
	screen, ok := cfg.Screen(name)
	if !ok {
		return config.ScreenConfig{}, util.ScreenNotFoundError(name)
	}
	return screen, nil
}

// viewConfig builds the controller config from the screen and the flags.
func (f *displayFlags) viewConfig(cfg *config.Config, screen config.ScreenConfig) (view.Config, error) {
	vcfg, err := screen.ViewConfig(cfg.Display)
	if err != nil {
		return view.Config{}, util.NewError("Invalid screen declaration").
			WithContext(f.screen).
			Wrap(err)
	}
	if f.sortField != "" {
		vcfg.SortField = f.sortField
		vcfg.SortDirection = sorting.Desc
	}
	if f.direction != "" {
		dir := sorting.ParseDirection(f.direction)
		if dir == sorting.None {
			return view.Config{}, errors.Errorf("invalid --dir %q: want asc or desc", f.direction)
		}
		vcfg.SortDirection = dir
	}
	if f.perPage > 0 {
		vcfg.ItemsPerPage = f.perPage
	}
	return vcfg, nil
}

// filters builds the record filters from the flags. The query falls back
// to the one carried by a restored state.
func (f *displayFlags) filters(screen config.ScreenConfig, columns []string, stateQuery string) (search.Filters, error) {
	fields := f.fields
	if len(fields) == 0 {
		fields = screen.SearchFields
	}
	if len(fields) == 0 {
		fields = columns
	}

	flt := search.Filters{
		Query:      f.query,
		Fields:     fields,
		CategoryID: f.category,
	}
	if flt.Query == "" {
		flt.Query = stateQuery
	}

	switch search.Embedding(strings.ToLower(f.embedding)) {
	case search.EmbeddingAny:
	case search.EmbeddingWith:
		flt.Embedding = search.EmbeddingWith
	case search.EmbeddingWithout:
		flt.Embedding = search.EmbeddingWithout
	default:
		return flt, errors.Errorf("invalid --embedding %q: want with or without", f.embedding)
	}

	if f.active != "" {
		active, err := parseBool(f.active)
		if err != nil {
			return flt, err
		}
		flt.Active = &active
	}

	var err error
	if flt.From, err = parseDate("since", f.since, false); err != nil {
		return flt, err
	}
	if flt.To, err = parseDate("until", f.until, true); err != nil {
		return flt, err
	}
	return flt, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	}
	return false, errors.Errorf("invalid --active %q: want true or false", s)
}

// parseDate reads a YYYY-MM-DD flag. endOfDay moves the time to the last
// instant of that day so --until is inclusive.
func parseDate(flag, s string, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, ok := record.AsTime(s)
	if !ok {
		return time.Time{}, errors.Errorf("invalid --%s %q: want YYYY-MM-DD", flag, s)
	}
	if endOfDay && len(strings.TrimSpace(s)) == len("2006-01-02") {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// build loads the screen, filters records, restores state and returns
// the controller ready to render. title is used when the screen has none.
func (f *displayFlags) build(ctx context.Context, cfg *config.Config, records []record.Record, columns []string, title string) (*screenView, error) {
	log := logging.FromContext(ctx)

	screen, err := resolveScreen(cfg, f.screen)
	if err != nil {
		return nil, err
	}
	vcfg, err := f.viewConfig(cfg, screen)
	if err != nil {
		return nil, err
	}
	vcfg.Observer = logging.NewStageLogger(log)

	var st view.State
	if f.state != "" {
		if st, err = view.DecodeState(f.state); err != nil {
			return nil, util.InvalidStateError(f.state, err)
		}
	}

	if !vcfg.DisableExpansion {
		var assigned int
		records, assigned = source.AssignIDs(records, search.DefaultDateField)
		if assigned > 0 {
			log.WithField("count", assigned).Debug("assigned ids to records without one")
		}
	}

	if len(f.columns) > 0 {
		columns = f.columns
	} else if len(screen.Columns) > 0 {
		columns = screen.Columns
	}
	cols := table.Columns(columns, vcfg.Schema, records)
	for i := range cols {
		if cols[i].Label == "" {
			cols[i].Label = screen.Label(cols[i].Name)
		}
	}
	colNames := make([]string, len(cols))
	for i, c := range cols {
		colNames[i] = c.Name
	}

	flt, err := f.filters(screen, colNames, st.Query)
	if err != nil {
		return nil, err
	}
	filtered := search.Apply(records, flt)
	stats := search.StatsOf(len(records), len(filtered))
	log.WithFields(logrus.Fields{
		"total":    stats.Total,
		"filtered": stats.Filtered,
		"hidden":   stats.Hidden,
	}).Debug("records filtered")

	ctl := view.New(vcfg, filtered)
	if f.state != "" {
		ctl.Restore(st)
	}
	if f.page != "" {
		ctl.HandlePageChange(pagination.ValidatePage(f.page, ctl.Pagination().TotalPages))
	}

	if screen.Title != "" {
		title = screen.Title
	}
	if flt.HasQuery() {
		title = fmt.Sprintf("%s (search: %s)", title, flt.Query)
	}

	return &screenView{
		ctl: ctl,
		all: filtered,
		opts: table.DisplayOptions{
			Title:        title,
			Columns:      cols,
			SearchFields: flt.Fields,
			DateFormat:   cfg.Display.DateFormat,
			JSON:         f.json,
			Raw:          f.raw,
			NoPager:      f.noPager || cfg.Display.Accessible,
		},
	}, nil
}

// show renders the screen and logs the state needed to come back to it.
func (sv *screenView) show(ctx context.Context, query string) error {
	if err := table.Display(sv.ctl, sv.all, sv.opts); err != nil {
		return err
	}
	st := sv.ctl.Snapshot()
	st.Query = query
	if enc, err := view.EncodeState(st); err == nil {
		logging.FromContext(ctx).WithField("state", enc).Debug("view state")
	}
	return nil
}
