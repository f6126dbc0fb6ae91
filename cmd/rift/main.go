// rift is Aether Rift: dodge the guardians and activate every portal to seal
// the rift.
//
// Usage:
//
//	rift play               - Play in the terminal (Bubble Tea, or --backend tcell)
//	rift window             - Play in an 800x600 desktop window
//	rift serve              - Start SSH server for remote play
//	rift sim                - Run a headless simulation with random input
//	rift scores             - Show recorded runs
//	rift config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.aether-rift, ./configs)
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set run history path (default: ~/.aether-rift/runs.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/aether-rift/internal/config"
	"github.com/vovakirdan/aether-rift/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rift",
	Short: "Aether Rift - seal the rift before the guardians catch you",
	Long: `Aether Rift is a small top-down arcade game. Move through the field,
touch every portal to activate it and avoid the guardians that chase
you when you come too close.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  sim      - Run a headless simulation
  scores   - View recorded runs
  config   - Print the effective configuration

Examples:
  rift play
  rift play --backend tcell --seed 42
  rift window
  rift serve --ssh :2222
  rift sim --frames 3600 --seed 7
  rift scores --recent`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// app bundles what every command needs.
type app struct {
	cfg    config.Config
	source string
	logger *log.Logger
}

// loadApp loads the config, applies flag overrides and builds the logger.
func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Runtime.FPS = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Runtime.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.Path = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := newLogger(cfg.Log.Level)
	logger.Debug("config loaded", "source", source)

	return &app{cfg: cfg, source: source, logger: logger}, nil
}

// newLogger builds the process logger.
func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "rift",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// openStore opens the run history. Failure is a warning: play continues
// without history.
func (a *app) openStore() *storage.Store {
	store, err := storage.Open(a.cfg.DBPath())
	if err != nil {
		a.logger.Warn("could not open run history", "path", a.cfg.DBPath(), "error", err)
		return nil
	}
	return store
}

// playerName returns the name runs are recorded under.
func playerName(flag string) string {
	if flag != "" {
		return flag
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "anonymous"
}
