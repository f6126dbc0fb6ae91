package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/aether-rift/internal/core"
	"github.com/vovakirdan/aether-rift/internal/loop"
	"github.com/vovakirdan/aether-rift/internal/rift"
)

var flagFrames int

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Run the game without a display, driven by a seeded random walk,
for a number of frames or until the run ends. Events are logged at
debug level. The final line includes a hash of the end state, so two
runs with the same seed can be compared.

Examples:
  rift sim --seed 7
  rift sim --seed 7 --frames 10000 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagFrames, "frames", 3600, "Frame budget (0 = until the run ends)")
}

func runSim(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	rc := a.cfg.RuntimeConfig(rift.WorldWidth, rift.WorldHeight)
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}

	game := rift.New()
	game.Reset(rc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logEvents := func(res core.StepResult) {
		for _, ev := range res.Events {
			a.logger.Debug("event", "tick", res.State.Tick, "kind", ev.Kind, "index", ev.Index, "energy", res.State.Score)
		}
	}

	walk := loop.NewRandomWalk(rc.Seed, flagFrames)
	start := time.Now()
	state, err := loop.Run(ctx, game, loop.Discard{}, walk, loop.Immediate{}, logEvents)
	if err != nil {
		return err
	}

	snap := game.Snapshot()
	a.logger.Info("simulation finished",
		"seed", rc.Seed,
		"frames", walk.Polled(),
		"elapsed", time.Since(start).Round(time.Microsecond),
	)
	fmt.Printf("outcome=%s energy=%d portals=%d/%d ticks=%d hash=%016x\n",
		state.Outcome, state.Score, state.PortalsActive, state.PortalsTotal, state.Tick, snap.Hash())
	return nil
}
