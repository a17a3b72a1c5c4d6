package cli

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/imgajeed76/dataview/internal/config"
	"github.com/imgajeed76/dataview/internal/db"
	"github.com/imgajeed76/dataview/internal/logging"
	"github.com/imgajeed76/dataview/internal/ui"
	"github.com/imgajeed76/dataview/internal/util"
	"github.com/spf13/cobra"
)

func newSQLCmd() *cobra.Command {
	var (
		flags   displayFlags
		url     string
		timeout int
	)

	cmd := &cobra.Command{
		Use:   "sql <query>",
		Short: "Show the result of a PostgreSQL query as a list screen",
		Long: `Run a read-only SQL query and show the rows as a list screen.

Columns keep the select-list order. The session is read-only, so queries
that modify data fail.

Examples:
  dataview sql "SELECT id, nombre, descripcion, created_at FROM org_area" --screen areas
  dataview sql "SELECT * FROM auth_user" --sort date_joined --json
  dataview sql "SELECT * FROM kb_entry" --url postgres://localhost/app`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return util.MissingArgumentError("query", `dataview sql "SELECT * FROM org_area"`)
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
			if url != "" {
				cfg.Database.URL = url
			}
			if timeout > 0 {
				cfg.Database.Timeout = timeout
			}
			return runSQL(cmd, args[0], cfg, &flags)
		},
	}

	addDisplayFlags(cmd, &flags)
	cmd.Flags().StringVar(&url, "url", "", "PostgreSQL connection URL (default: database.url)")
	cmd.Flags().IntVarP(&timeout, "timeout", "t", 0, "Query timeout in seconds (default: database.timeout)")

	return cmd
}

func runSQL(cmd *cobra.Command, query string, cfg *config.Config, flags *displayFlags) error {
	if cfg.Database.URL == "" {
		return util.NewError("No database configured").
			WithSuggestions(
				"dataview config database.url postgres://user@host/db",
				"dataview sql --url postgres://user@host/db <query>",
			).
			Wrap(util.ErrNoDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.Database.Timeout)*time.Second)
	defer cancel()

	log := logging.FromContext(ctx)

	spinner := ui.NewSpinner("Running query")
	spinner.Start()

	conn, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		spinner.Stop()
		return util.DatabaseConnectionError(cfg.Database.URL, err)
	}
	defer conn.Close()

	start := time.Now()
	res, err := conn.QueryRecords(ctx, query)
	spinner.Stop()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return util.NewError("Query timed out").
				WithContext(query).
				WithSuggestion("dataview sql --timeout 120 <query>").
				Wrap(err)
		}
		return util.NewError("Query failed").WithContext(query).Wrap(err)
	}
	log.WithField("rows", len(res.Records)).
		WithField("elapsed", time.Since(start).Round(time.Millisecond)).
		Debug("query finished")

	sv, err := flags.build(cmd.Context(), cfg, res.Records, res.Columns, queryTitle(query))
	if err != nil {
		return err
	}
	sv.opts.Out = cmd.OutOrStdout()
	return sv.show(cmd.Context(), flags.query)
}

// queryTitle shortens a query for the screen header.
func queryTitle(query string) string {
	return util.Truncate(strings.Join(strings.Fields(query), " "), 60)
}
