package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/imgajeed76/dataview/internal/config"
	"github.com/imgajeed76/dataview/internal/logging"
	"github.com/imgajeed76/dataview/internal/ui/styles"
	"github.com/imgajeed76/dataview/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataview",
		Short: "Sortable, paginated, searchable views over record lists",
		Long: `dataview shows record collections (JSON or TOML exports, or the result
of a PostgreSQL query) as list screens: sortable columns, pages with a page
window, expandable rows and accent-insensitive search.

Screens (areas, cargos, users, knowledge, categories, or your own) are
declared in the config file; see 'dataview config --help'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Version flag template to show more info
	cmd.SetVersionTemplate(fmt.Sprintf("dataview version %s\n  commit: %s\n  built:  %s\n", Version, CommitSHA, BuildDate))

	// Set up pre-run to handle global flags
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		noColor, _ := cmd.Flags().GetBool("no-color")

		env, err := config.ReadEnv()
		if err != nil {
			return err
		}
		styles.Configure(noColor || env.ColorDisabled(), env.AccessibleMode())

		log := logging.New(os.Stderr, verbose)
		cmd.SetContext(logging.WithLogger(cmd.Context(), log))
		return nil
	}

	// Add all subcommands
	cmd.AddCommand(
		newVersionCmd(),
		newViewCmd(),
		newSQLCmd(),
		newScreensCmd(),
		newConfigCmd(),
		newCheckCmd(),
		newDoctorCmd(),
		newCompletionCmd(),
	)
	return cmd
}

// Execute runs the root command and prints errors the way users see them.
func Execute() error {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		// Check if it's a structured error
		var dvErr *util.Error
		if errors.As(err, &dvErr) {
			fmt.Fprintln(os.Stderr, dvErr.Format())
		} else {
			// Simple error - still format nicely
			fmt.Fprintln(os.Stderr, styles.ErrorMsg(err.Error()))
		}
		return err
	}
	return nil
}

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for dataview.

To load completions:

Bash:
  $ source <(dataview completion bash)

Zsh:
  $ dataview completion zsh > "${fpath[1]}/_dataview"

Fish:
  $ dataview completion fish | source

PowerShell:
  PS> dataview completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(out)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dataview version %s\n", Version)
			fmt.Fprintf(out, "  commit: %s\n", CommitSHA)
			fmt.Fprintf(out, "  built:  %s\n", BuildDate)
		},
	}
}
