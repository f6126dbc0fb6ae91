// Package loop drives a core.Game with the Input -> Step -> Draw -> Present
// cycle for hosts that own their frame timing.
package loop

import (
	"context"
	"fmt"

	"github.com/vovakirdan/aether-rift/internal/core"
)

// Display is a drawing surface that can show a finished frame.
type Display interface {
	core.Surface

	// Present shows everything drawn since the last Clear.
	Present() error
}

// InputSource reports the actions held for the next tick.
type InputSource interface {
	// Poll returns the input for the coming tick and whether the player asked to quit.
	Poll() (core.InputFrame, bool)
}

// Observer is called with the result of every step, before drawing.
type Observer func(core.StepResult)

// Run plays game until it reaches a terminal outcome, input asks to quit or
// ctx is cancelled. A frame that ends the run is presented before Run
// returns. Quit and cancellation return at once, without drawing again.
// The game must already be Reset.
func Run(ctx context.Context, game core.Game, display Display, input InputSource, pacer Pacer, observers ...Observer) (core.GameState, error) {
	for {
		// ===== INPUT PHASE =====
		if err := ctx.Err(); err != nil {
			return game.State(), err
		}

		frame, quit := input.Poll()
		if quit {
			return game.State(), nil
		}

		// ===== UPDATE PHASE =====
		res := game.Step(frame)
		for _, obs := range observers {
			obs(res)
		}

		// ===== DRAW PHASE =====
		game.Draw(display)
		if err := display.Present(); err != nil {
			return res.State, fmt.Errorf("loop: present frame: %w", err)
		}

		if res.State.GameOver() {
			return res.State, nil
		}

		// ===== FRAME TIMING =====
		if err := pacer.Wait(ctx); err != nil {
			return res.State, err
		}
	}
}

// Discard is a Display that draws nothing, for headless runs.
type Discard struct{}

// Clear implements core.Surface.
func (Discard) Clear(core.Color) {}

// FillCircle implements core.Surface.
func (Discard) FillCircle(float64, float64, float64, core.Color) {}

// DrawText implements core.Surface.
func (Discard) DrawText(float64, float64, string, core.Color) {}

// Present implements Display.
func (Discard) Present() error { return nil }
