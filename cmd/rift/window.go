package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/aether-rift/internal/platform/audio"
	"github.com/vovakirdan/aether-rift/internal/platform/tui"
	"github.com/vovakirdan/aether-rift/internal/platform/window"
	"github.com/vovakirdan/aether-rift/internal/rift"
)

var flagWindowPlayer string

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open an 800x600 window and start a run. Keys are read as truly
held, so movement is as smooth as the tick rate allows.

Controls:
  Arrows/WASD - Move
  Q/Esc       - Quit

Examples:
  rift window
  rift window --fps 30 --seed 7`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().StringVar(&flagWindowPlayer, "player", "", "Name recorded with the run (default: current user)")
}

func runWindow(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	opts := window.Options{Player: playerName(flagWindowPlayer)}

	store := a.openStore()
	if store != nil {
		defer store.Close()
		opts.Recorder = store
	}

	if a.cfg.Audio.Enabled {
		sound := audio.NewPlayer()
		if err := sound.Init(); err != nil {
			a.logger.Warn("sound disabled", "error", err)
		} else {
			defer sound.Close()
			opts.Observe = sound.Observe
		}
	}

	w := window.New(rift.New(), a.cfg.RuntimeConfig(rift.WorldWidth, rift.WorldHeight), opts)
	if err := window.Run(w); err != nil {
		return err
	}

	if err := w.SaveError(); err != nil {
		a.logger.Warn("could not record run", "error", err)
	}
	fmt.Printf("%s (seed %d)\n", tui.Result{State: w.State()}, w.Seed())
	return nil
}
