package cli

import (
	"path/filepath"
	"strings"

	"github.com/imgajeed76/dataview/internal/config"
	"github.com/imgajeed76/dataview/internal/source"
	"github.com/imgajeed76/dataview/internal/util"
	"github.com/spf13/cobra"
)

func newViewCmd() *cobra.Command {
	var flags displayFlags

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Show a record file as a list screen",
		Long: `Show a JSON, JSON lines or TOML record file as a list screen.

The file holds a list of objects, either bare or under a "results",
"data", "items" or "records" key. Use "-" to read JSON from stdin.

On a terminal the screen is interactive: s sorts by the selected column
(desc, asc, unsorted), n/p change page, enter expands a row, / searches.
Elsewhere a plain table of the requested page is printed.

Examples:
  dataview view areas.json --screen areas
  dataview view users.json --sort date_joined --dir asc --page 2
  dataview view knowledge.json -s knowledge -q "contraseña" --embedding without
  dataview view areas.json --state 'sort=nombre&dir=asc&page=3' --json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return util.MissingArgumentError("file", "dataview view areas.json --screen areas")
			}
			if len(args) > 1 {
				return util.TooManyArgumentsError(1, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args[0], &flags)
		},
	}

	addDisplayFlags(cmd, &flags)
	return cmd
}

func runView(cmd *cobra.Command, path string, flags *displayFlags) error {
	cfg, _, err := config.Load()
	if err != nil {
		return err
	}

	records, err := source.LoadFile(path)
	if err != nil {
		return err
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if path == "-" {
		title = "stdin"
	}

	sv, err := flags.build(cmd.Context(), cfg, records, nil, title)
	if err != nil {
		return err
	}
	sv.opts.Out = cmd.OutOrStdout()
	return sv.show(cmd.Context(), flags.query)
}
