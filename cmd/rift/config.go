package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/aether-rift/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the search order and flag overrides
are applied. With --defaults, print the built-in config file, which is
a good starting point for ~/.aether-rift/config.yaml.

Examples:
  rift config
  rift config --defaults > ~/.aether-rift/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(a.cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	fmt.Printf("# source: %s\n", a.source)
	_, err = os.Stdout.Write(out)
	return err
}
