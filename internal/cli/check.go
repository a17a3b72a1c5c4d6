package cli

import (
	"fmt"
	"io"

	"github.com/go-faster/errors"
	"github.com/imgajeed76/dataview/internal/config"
	"github.com/imgajeed76/dataview/internal/logging"
	"github.com/imgajeed76/dataview/internal/metrics"
	"github.com/imgajeed76/dataview/internal/record"
	"github.com/imgajeed76/dataview/internal/replay"
	"github.com/imgajeed76/dataview/internal/search"
	"github.com/imgajeed76/dataview/internal/source"
	"github.com/imgajeed76/dataview/internal/ui/styles"
	"github.com/imgajeed76/dataview/internal/ui/table"
	"github.com/imgajeed76/dataview/internal/util"
	"github.com/imgajeed76/dataview/internal/view"
	"github.com/spf13/cobra"
)

// maxReportedMismatches bounds the diffs printed by check.
const maxReportedMismatches = 3

func newCheckCmd() *cobra.Command {
	var (
		screenName string
		perPage    int
		columns    []string
		noExpand   bool
	)

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Verify that cached views render the same as recomputed ones",
		Long: `Replay every sort state of every column over every page of a record
file, once with stage caching and once recomputing everything, and compare
what the two would render after each step. The recomputing view is also
checked against a one-pass sort and paginate of the same records.

A summary of cache hits per pipeline stage is printed at the end.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return util.MissingArgumentError("file", "dataview check areas.json --screen areas")
			}
			if len(args) > 1 {
				return util.TooManyArgumentsError(1, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.Load()
			if err != nil {
				return err
			}
			records, err := source.LoadFile(args[0])
			if err != nil {
				return err
			}
			screen, err := resolveScreen(cfg, screenName)
			if err != nil {
				return err
			}
			vcfg, err := screen.ViewConfig(cfg.Display)
			if err != nil {
				return err
			}
			if perPage > 0 {
				vcfg.ItemsPerPage = perPage
			}
			if len(columns) == 0 {
				columns = screen.Columns
			}
			return runCheck(cmd, vcfg, records, columns, !noExpand)
		},
	}

	cmd.Flags().StringVarP(&screenName, "screen", "s", "", "Screen declaration to use")
	cmd.Flags().IntVarP(&perPage, "per-page", "n", 0, "Rows per page")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to sort by (default: all)")
	cmd.Flags().BoolVar(&noExpand, "no-expand", false, "Skip expand/collapse steps")
	return cmd
}

func runCheck(cmd *cobra.Command, vcfg view.Config, records []record.Record, columns []string, expand bool) error {
	log := logging.FromContext(cmd.Context())
	out := cmd.OutOrStdout()

	records, _ = source.AssignIDs(records, search.DefaultDateField)
	cols := table.Columns(columns, vcfg.Schema, records)
	fields := make([]string, len(cols))
	for i, c := range cols {
		fields[i] = c.Name
	}

	rec := metrics.New(nil)
	cached := vcfg
	cached.Observer = view.Observers(rec, logging.NewStageLogger(log))
	recomputed := vcfg
	recomputed.DisableMemo = true
	recomputed.Observer = nil

	script := replay.Script(fields, len(records), vcfg.ItemsPerPage, expand && !vcfg.DisableExpansion)
	checked, mismatches, err := replay.Compare(view.New(recomputed, records), view.New(cached, records), script)
	if err != nil {
		return err
	}

	for i, m := range mismatches {
		if i == maxReportedMismatches {
			fmt.Fprintln(out, styles.MutedMsg(fmt.Sprintf("... %d more", len(mismatches)-i)))
			break
		}
		printMismatch(out, m)
	}

	summary, err := rec.Summary()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, styles.SectionHeader("Stages"))
	for _, sc := range summary {
		fmt.Fprintln(out, styles.Indent(fmt.Sprintf("%-10s %6d hits %6d misses  %5.1f%%",
			sc.Stage, sc.Hits, sc.Misses, sc.HitRate()*100), 1))
	}
	fmt.Fprintln(out)

	if len(mismatches) > 0 {
		return util.NewError("Cached view diverged").
			WithMessage(fmt.Sprintf("%d of %d steps rendered differently", len(mismatches), checked)).
			Wrap(errors.Errorf("%d mismatches", len(mismatches)))
	}
	fmt.Fprintln(out, styles.SuccessMsg(fmt.Sprintf("%d steps over %d columns rendered identically", checked, len(fields))))
	return nil
}

func printMismatch(w io.Writer, m replay.Mismatch) {
	fmt.Fprintf(w, "%s step %d (%s)\n", styles.ErrorText("mismatch"), m.Step, m.Action)
	for _, line := range replay.DiffLines(replay.Describe(m.Want), replay.Describe(m.Got)) {
		text := line.Prefix() + line.Content
		switch line.Kind {
		case replay.LineAdd:
			text = styles.SuccessText(text)
		case replay.LineDelete:
			text = styles.ErrorText(text)
		}
		fmt.Fprintln(w, styles.Indent(text, 1))
	}
	fmt.Fprintln(w)
}
