package loop

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/aether-rift/internal/core"
)

// countdownGame finishes with the given outcome after a number of steps.
type countdownGame struct {
	steps   int
	finish  int
	outcome core.Outcome
	draws   int
	inputs  []core.InputFrame
}

func (g *countdownGame) Title() string { return "countdown" }

func (g *countdownGame) Reset(core.RuntimeConfig) { g.steps = 0 }

func (g *countdownGame) State() core.GameState { return g.state() }

func (g *countdownGame) Draw(dst core.Surface) {
	g.draws++
	dst.Clear(core.ColorBlack)
}

func (g *countdownGame) Step(in core.InputFrame) core.StepResult {
	if g.state().GameOver() {
		return core.StepResult{State: g.state()}
	}
	g.steps++
	g.inputs = append(g.inputs, in)
	return core.StepResult{
		State:  g.state(),
		Events: []core.Event{{Kind: core.EventPortalSpawned, Index: g.steps}},
	}
}

func (g *countdownGame) state() core.GameState {
	s := core.GameState{Tick: g.steps, Outcome: core.OutcomeRunning}
	if g.finish > 0 && g.steps >= g.finish {
		s.Outcome = g.outcome
	}
	return s
}

type fakeDisplay struct {
	Discard
	presents int
	err      error
}

func (d *fakeDisplay) Present() error {
	d.presents++
	return d.err
}

// scriptedInput quits after the given number of polls.
type scriptedInput struct {
	quitAfter int
	polls     int
}

func (in *scriptedInput) Poll() (core.InputFrame, bool) {
	in.polls++
	if in.quitAfter > 0 && in.polls > in.quitAfter {
		return core.NewInputFrame(), true
	}
	return core.NewInputFrame(core.ActionLeft), false
}

type countingPacer struct {
	waits int
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.waits++
	return ctx.Err()
}

func TestRunStopsOnOutcome(t *testing.T) {
	tests := []struct {
		name    string
		outcome core.Outcome
	}{
		{"won", core.OutcomeWon},
		{"lost", core.OutcomeLost},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			game := &countdownGame{finish: 5, outcome: tc.outcome}
			display := &fakeDisplay{}
			pacer := &countingPacer{}

			state, err := Run(context.Background(), game, display, &scriptedInput{}, pacer)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if state.Outcome != tc.outcome {
				t.Errorf("outcome = %v, expected %v", state.Outcome, tc.outcome)
			}
			if game.steps != 5 {
				t.Errorf("steps = %d, expected 5", game.steps)
			}
			// The final frame is presented, but no wait follows it.
			if display.presents != 5 || game.draws != 5 {
				t.Errorf("presents = %d, draws = %d, expected 5 each", display.presents, game.draws)
			}
			if pacer.waits != 4 {
				t.Errorf("waits = %d, expected 4", pacer.waits)
			}
		})
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	game := &countdownGame{}
	input := &scriptedInput{quitAfter: 3}
	display := &fakeDisplay{}

	state, err := Run(context.Background(), game, display, input, Immediate{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if game.steps != 3 {
		t.Errorf("steps = %d, expected 3", game.steps)
	}
	// Quitting does not draw another frame.
	if display.presents != 3 || game.draws != 3 {
		t.Errorf("presents = %d, draws = %d, expected 3 each", display.presents, game.draws)
	}
	if state.Outcome != core.OutcomeRunning {
		t.Errorf("quitting should leave the run unfinished, got %v", state.Outcome)
	}
	for i, in := range game.inputs {
		if !in.Has(core.ActionLeft) {
			t.Errorf("step %d did not receive the polled input", i)
		}
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	game := &countdownGame{}

	observed := 0
	_, err := Run(ctx, game, Discard{}, &scriptedInput{}, Immediate{}, func(core.StepResult) {
		observed++
		if observed == 10 {
			cancel()
		}
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, expected context.Canceled", err)
	}
	if game.steps != 10 {
		t.Errorf("steps = %d, expected 10", game.steps)
	}
}

func TestRunPresentError(t *testing.T) {
	boom := errors.New("terminal gone")
	display := &fakeDisplay{err: boom}

	_, err := Run(context.Background(), &countdownGame{}, display, &scriptedInput{}, Immediate{})
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, expected wrapped %v", err, boom)
	}
	if display.presents != 1 {
		t.Errorf("presents = %d, expected 1", display.presents)
	}
}

func TestRunObserversSeeEveryStep(t *testing.T) {
	game := &countdownGame{finish: 4, outcome: core.OutcomeWon}

	var seen []int
	obs := func(res core.StepResult) {
		for _, e := range res.Events {
			seen = append(seen, e.Index)
		}
	}

	if _, err := Run(context.Background(), game, Discard{}, &scriptedInput{}, Immediate{}, obs); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(seen) != 4 {
		t.Fatalf("observer saw %d events, expected 4", len(seen))
	}
	for i, idx := range seen {
		if idx != i+1 {
			t.Errorf("event %d index = %d, expected %d", i, idx, i+1)
		}
	}
}

func TestTickerPacerCancel(t *testing.T) {
	p := NewTickerPacer(1)
	defer p.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, expected context.Canceled", err)
	}
}

func TestTickerPacerTicks(t *testing.T) {
	p := NewTickerPacer(1000)
	defer p.Stop()

	for range 3 {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
}
