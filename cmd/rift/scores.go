package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/aether-rift/internal/platform/tui"
	"github.com/vovakirdan/aether-rift/internal/storage"
)

var (
	flagRecent bool
	flagLimit  int
	flagClear  bool
	flagPlain  bool
	flagOf     string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded runs",
	Long: `Display finished runs, best energy first. When stdout is a terminal
an interactive table is shown; use --plain for text output.
--player lists one player's recent runs as text.

Examples:
  rift scores
  rift scores --recent --limit 20
  rift scores --player ada
  rift scores --plain
  rift scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show in text output")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Always print plain text")
	scoresCmd.Flags().StringVar(&flagOf, "player", "", "Show only this player's recent runs")
}

func runScores(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	// Open run history
	store, err := storage.Open(a.cfg.DBPath())
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && flagOf == "" && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	return printScores(os.Stdout, store)
}

// printScores writes the run table as plain text.
func printScores(w io.Writer, store *storage.Store) error {
	var (
		title string
		runs  []storage.Run
		err   error
	)
	switch {
	case flagOf != "":
		title = "Runs of " + flagOf
		runs, err = store.PlayerRuns(flagOf, flagLimit)
	case flagRecent:
		title = "Recent Runs"
		runs, err = store.RecentRuns(flagLimit)
	default:
		title = "Top Runs"
		runs, err = store.TopRuns(flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Aether Rift - %s\n", title)
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'rift play' to set the first record!")
		return nil
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %-12s  %-6s  %-6s  %-7s  %-7s  %s\n", "Rank", "Player", "Result", "Energy", "Portals", "Time", "Date")
	fmt.Fprintf(w, "  %-4s  %-12s  %-6s  %-6s  %-7s  %-7s  %s\n", "----", "------", "------", "------", "-------", "----", "----")

	for _, row := range tui.RunRows(runs) {
		fmt.Fprintf(w, "  %-4s  %-12s  %-6s  %-6s  %-7s  %-7s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	}

	if flagOf != "" {
		best, err := store.BestEnergy()
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Record to beat: %d\n", best)
		return nil
	}

	// Show totals
	stats, err := store.Stats()
	if err == nil && stats.Runs > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Runs: %d  Won: %d (%.0f%%)  Best: %d\n", stats.Runs, stats.Wins, stats.WinRate()*100, stats.BestEnergy)
	}
	return nil
}
