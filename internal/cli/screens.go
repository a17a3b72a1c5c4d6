package cli

import (
	"fmt"
	"strings"

	"github.com/imgajeed76/dataview/internal/config"
	"github.com/imgajeed76/dataview/internal/record"
	"github.com/imgajeed76/dataview/internal/sorting"
	"github.com/imgajeed76/dataview/internal/ui/table"
	"github.com/imgajeed76/dataview/internal/view"
	"github.com/spf13/cobra"
)

func newScreensCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "screens",
		Short: "List the screens available to --screen",
		Long: `List built-in and configured screens.

Screens declared under [screens.<name>] in the config file replace the
built-in screen of the same name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.Load()
			if err != nil {
				return err
			}
			records := screenRecords(cfg)
			if jsonOutput {
				return table.PrintJSONRecords(cmd.OutOrStdout(), records)
			}

			ctl := view.New(view.Config{
				DisablePagination: true,
				DisableExpansion:  true,
				DisableSorting:    true,
			}, records)
			table.PrintPage(cmd.OutOrStdout(), ctl, table.DisplayOptions{
				Columns: table.Columns([]string{"id", "title", "sort", "per_page", "columns"}, screenSchema, records),
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

var screenSchema = record.NewSchema(
	record.Field{Name: "id", Label: "screen", Kind: record.KindString},
	record.Field{Name: "per_page", Label: "per page", Kind: record.KindNumber},
)

// screenRecords describes every screen as a record, in name order.
func screenRecords(cfg *config.Config) []record.Record {
	names := cfg.ScreenNames()
	out := make([]record.Record, 0, len(names))
	for _, name := range names {
		s, _ := cfg.Screen(name)
		sort := "—"
		if s.SortField != "" {
			dir := sorting.ParseDirection(s.SortDirection)
			if dir == sorting.None {
				dir = sorting.Desc
			}
			sort = fmt.Sprintf("%s %s", s.SortField, dir)
		}
		perPage := s.PerPage
		if perPage < 1 {
			perPage = cfg.Display.PerPage
		}
		out = append(out, record.Record{
			"id":       name,
			"title":    s.Title,
			"sort":     sort,
			"per_page": float64(perPage),
			"columns":  strings.Join(s.Columns, ","),
		})
	}
	return out
}
