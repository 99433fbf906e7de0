package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Shows the configuration in use, after the config file and
command-line overrides are applied, as YAML.

Use --defaults to print the built-in file as a starting point.

Examples:
  t2048 config
  t2048 config --defaults > ~/.t2048/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in default config file")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagDefaults {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "# source: %s\n", cfg.Source)
	_, err = out.Write(data)
	return err
}
