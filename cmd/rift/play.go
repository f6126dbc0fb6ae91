package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/aether-rift/internal/core"
	"github.com/vovakirdan/aether-rift/internal/loop"
	"github.com/vovakirdan/aether-rift/internal/platform/audio"
	"github.com/vovakirdan/aether-rift/internal/platform/tcellhost"
	"github.com/vovakirdan/aether-rift/internal/platform/tui"
	"github.com/vovakirdan/aether-rift/internal/rift"
	"github.com/vovakirdan/aether-rift/internal/storage"
)

// How long the tcell host shows the outcome before exiting.
const outcomeLinger = 2 * time.Second

var (
	flagBackend string
	flagPlayer  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal.

Controls:
  Arrows/WASD/HJKL - Move (diagonals allowed)
  Q/Esc/Ctrl+C     - Quit

Backends:
  tea    - Bubble Tea (default)
  tcell  - raw tcell screen with sound cues

Examples:
  rift play
  rift play --seed 42
  rift play --backend tcell --player ada`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", "tea", "Terminal backend: tea or tcell")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with the run (default: current user)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := a.cfg.RuntimeConfig(width, height)
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	player := playerName(flagPlayer)

	// Open run history
	store := a.openStore()
	var recorder tui.RunRecorder
	if store != nil {
		defer store.Close()
		recorder = store
	}

	switch flagBackend {
	case "tea":
		return playTea(a, rc, player, recorder)
	case "tcell":
		return playTcell(cmd.Context(), a, rc, player, recorder)
	default:
		return fmt.Errorf("unknown backend %q (want tea or tcell)", flagBackend)
	}
}

func playTea(a *app, rc core.RuntimeConfig, player string, recorder tui.RunRecorder) error {
	res, err := tui.Run(rift.New(), rc, tui.Options{
		Player:    player,
		HoldTicks: a.cfg.HoldTicks(),
		Recorder:  recorder,
	})
	if err != nil {
		return err
	}

	if res.SaveErr != nil {
		a.logger.Warn("could not record run", "error", res.SaveErr)
	}
	fmt.Printf("%s (seed %d)\n", res, res.Seed)
	return nil
}

func playTcell(ctx context.Context, a *app, rc core.RuntimeConfig, player string, recorder tui.RunRecorder) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sound is set up before the screen takes over the terminal.
	var observers []loop.Observer
	if a.cfg.Audio.Enabled {
		sound := audio.NewPlayer()
		if err := sound.Init(); err != nil {
			a.logger.Warn("sound disabled", "error", err)
		} else {
			defer sound.Close()
			observers = append(observers, sound.Observe)
		}
	}

	host, err := tcellhost.Open(a.cfg.HoldTicks())
	if err != nil {
		return err
	}

	game := rift.New()
	game.Reset(rc)

	pacer := loop.NewTickerPacer(rc.TickRate)
	defer pacer.Stop()

	state, runErr := loop.Run(ctx, game, host, host, pacer, observers...)
	if runErr == nil && state.GameOver() {
		if err := host.ShowOutcome(state); err == nil {
			lingerCtx, cancel := context.WithTimeout(ctx, outcomeLinger)
			host.WaitKey(lingerCtx.Done())
			cancel()
		}
	}
	host.Close()

	if runErr != nil && ctx.Err() == nil {
		return runErr
	}

	if state.GameOver() && recorder != nil {
		if _, err := recorder.SaveRun(storage.NewRun(player, rc, state)); err != nil {
			a.logger.Warn("could not record run", "error", err)
		}
	}

	fmt.Printf("%s (seed %d)\n", tui.Result{State: state}, rc.Seed)
	return nil
}
