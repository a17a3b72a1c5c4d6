package cli

import (
	"fmt"

	"github.com/imgajeed76/dataview/internal/config"
	"github.com/imgajeed76/dataview/internal/ui/styles"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "Get and set dataview options",
		Long: `Get and set options in the dataview config file.

Options:
` + config.GenerateHelpText() + `

Screens are declared in the file itself under [screens.<name>]; see
'dataview screens' for the ones available.

Examples:
  dataview config display.per_page         # Get value
  dataview config display.per_page 25      # Set value
  dataview config database.url postgres://localhost/app
  dataview config --list                   # List all options
  dataview config --path                   # Show the config file location`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}

	cmd.Flags().BoolP("list", "l", false, "List all configuration")
	cmd.Flags().Bool("path", false, "Print the config file path")

	cmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return config.ListKeys(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	listAll, _ := cmd.Flags().GetBool("list")
	showPath, _ := cmd.Flags().GetBool("path")
	out := cmd.OutOrStdout()

	env, err := config.ReadEnv()
	if err != nil {
		return err
	}
	path := config.Path(env)

	if showPath {
		fmt.Fprintln(out, path)
		return nil
	}

	// Environment overrides are not applied here so they are never
	// written back to the file.
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}

	if listAll || len(args) == 0 {
		for _, key := range config.ListKeys() {
			value, _ := cfg.GetValue(key)
			fmt.Fprintf(out, "%s=%s\n", key, value)
		}
		return nil
	}

	key := args[0]

	// Get or set?
	if len(args) == 1 {
		value, ok := cfg.GetValue(key)
		if !ok {
			return fmt.Errorf("unknown config key: %s", key)
		}
		fmt.Fprintln(out, value)
		return nil
	}

	if err := cfg.SetValue(key, args[1]); err != nil {
		return err
	}
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintln(out, styles.SuccessMsg(fmt.Sprintf("%s = %s", key, args[1])))
	return nil
}
