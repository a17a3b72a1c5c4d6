package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/imgajeed76/dataview/internal/config"
	"github.com/imgajeed76/dataview/internal/db"
	"github.com/imgajeed76/dataview/internal/ui/styles"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and diagnose issues",
		Long: `Run diagnostics to check if dataview is properly configured.

This command checks:
  - Config file location and syntax
  - Screen declarations (field kinds, derived fields, sort direction)
  - Terminal capabilities (interactive table, colors)
  - Database connectivity, when database.url is set`,
		Args: cobra.NoArgs,
		RunE: runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styles.Boldf("dataview doctor"))
	fmt.Fprintln(out)

	allOK := true

	env, err := config.ReadEnv()
	if err != nil {
		return err
	}
	path := config.Path(env)

	fmt.Fprint(out, "Checking config file... ")
	cfg, err := config.LoadFrom(path)
	switch {
	case err != nil:
		fmt.Fprintln(out, styles.Errorf("INVALID"))
		fmt.Fprintf(out, "  %v\n", err)
		allOK = false
	case fileExists(path):
		fmt.Fprintln(out, styles.Successf("OK")+fmt.Sprintf(" (%s)", path))
	default:
		fmt.Fprintln(out, styles.Mute("NOT CREATED"))
		fmt.Fprintln(out, "  Using defaults; 'dataview config <key> <value>' creates it")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	env.Apply(cfg)

	fmt.Fprint(out, "Checking screens... ")
	var broken []string
	for _, name := range cfg.ScreenNames() {
		screen, _ := cfg.Screen(name)
		if _, err := screen.ViewConfig(cfg.Display); err != nil {
			broken = append(broken, fmt.Sprintf("%s: %v", name, err))
		}
	}
	if len(broken) > 0 {
		fmt.Fprintln(out, styles.Errorf("%d invalid", len(broken)))
		for _, b := range broken {
			fmt.Fprintf(out, "  - %s\n", b)
		}
		allOK = false
	} else {
		fmt.Fprintln(out, styles.Successf("%d declared", len(cfg.ScreenNames())))
	}

	fmt.Fprint(out, "Checking terminal... ")
	switch {
	case cfg.Display.Accessible || styles.IsAccessible():
		fmt.Fprintln(out, styles.Mute("ACCESSIBLE")+" (plain tables only)")
	case term.IsTerminal(int(os.Stdout.Fd())):
		colors := "colors on"
		if styles.NoColor() {
			colors = "colors off"
		}
		fmt.Fprintln(out, styles.Successf("INTERACTIVE")+fmt.Sprintf(" (%s)", colors))
	default:
		fmt.Fprintln(out, styles.Mute("NOT A TTY")+" (plain tables only)")
	}

	fmt.Fprint(out, "Checking database connection... ")
	if cfg.Database.URL == "" {
		fmt.Fprintln(out, styles.Mute("NOT CONFIGURED"))
		fmt.Fprintln(out, "  Set database.url to use 'dataview sql'")
	} else if err := pingDatabase(cmd.Context(), cfg.Database); err != nil {
		fmt.Fprintln(out, styles.Errorf("FAILED"))
		fmt.Fprintf(out, "  Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(out, styles.Successf("OK"))
	}

	fmt.Fprintln(out)
	if allOK {
		fmt.Fprintln(out, styles.Successf("All checks passed!"))
		return nil
	}
	fmt.Fprintln(out, styles.Warningf("Some checks failed. See above for details."))
	return errors.New("doctor found problems")
}

func pingDatabase(ctx context.Context, cfg config.DatabaseConfig) error {
	timeout := time.Duration(min(cfg.Timeout, 10)) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := db.Connect(ctx, cfg.URL)
	if err != nil {
		return err
	}
	conn.Close()
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
