package window

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/aether-rift/internal/core"
	"github.com/vovakirdan/aether-rift/internal/storage"
)

type stepGame struct {
	cfg    core.RuntimeConfig
	frames []core.InputFrame
	endAt  int
}

func (g *stepGame) Title() string { return "step" }

func (g *stepGame) Reset(cfg core.RuntimeConfig) { g.cfg = cfg }

func (g *stepGame) Draw(core.Surface) {}

func (g *stepGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in)
	return core.StepResult{State: g.State(), Events: []core.Event{{Kind: core.EventPortalSpawned}}}
}

func (g *stepGame) State() core.GameState {
	s := core.GameState{Tick: len(g.frames), Score: 20}
	if g.endAt > 0 && len(g.frames) >= g.endAt {
		s.Outcome = core.OutcomeWon
	}
	return s
}

type memRecorder struct {
	runs []storage.Run
}

func (r *memRecorder) SaveRun(run storage.Run) (int64, error) {
	r.runs = append(r.runs, run)
	return int64(len(r.runs)), nil
}

func keys(held ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, h := range held {
			if h == k {
				return true
			}
		}
		return false
	}
}

func TestFrame(t *testing.T) {
	tests := []struct {
		name    string
		held    []ebiten.Key
		actions []core.Action
		quit    bool
	}{
		{"nothing", nil, nil, false},
		{"arrow", []ebiten.Key{ebiten.KeyArrowLeft}, []core.Action{core.ActionLeft}, false},
		{"wasd diagonal", []ebiten.Key{ebiten.KeyW, ebiten.KeyD}, []core.Action{core.ActionUp, core.ActionRight}, false},
		{"both bindings", []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}, []core.Action{core.ActionDown}, false},
		{"escape", []ebiten.Key{ebiten.KeyEscape, ebiten.KeyA}, nil, true},
		{"q", []ebiten.Key{ebiten.KeyQ}, nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, quit := Frame(keys(tc.held...))
			if quit != tc.quit {
				t.Errorf("quit = %v, expected %v", quit, tc.quit)
			}
			if len(f.Actions) != len(tc.actions) {
				t.Errorf("actions = %v, expected %v", f.Actions, tc.actions)
			}
			for _, a := range tc.actions {
				if !f.Has(a) {
					t.Errorf("expected %v to be held", a)
				}
			}
		})
	}
}

func TestNewResetsAtWorldSize(t *testing.T) {
	game := &stepGame{}
	w := New(game, core.RuntimeConfig{ScreenW: 10, ScreenH: 10, Seed: 3}, Options{})

	if game.cfg.ScreenW != 800 || game.cfg.ScreenH != 600 {
		t.Errorf("reset with %dx%d, expected 800x600", game.cfg.ScreenW, game.cfg.ScreenH)
	}
	if game.cfg.TickRate != 60 {
		t.Errorf("tick rate = %d, expected default 60", game.cfg.TickRate)
	}
	if w.Seed() != 3 {
		t.Errorf("Seed() = %d, expected 3", w.Seed())
	}
	if lw, lh := w.Layout(1920, 1080); lw != 800 || lh != 600 {
		t.Errorf("Layout() = %dx%d, expected 800x600", lw, lh)
	}
}

func TestUpdateStepsAndRecords(t *testing.T) {
	game := &stepGame{endAt: 2}
	rec := &memRecorder{}
	var observed int
	w := New(game, core.RuntimeConfig{TickRate: 1, Seed: 7}, Options{
		Player:   "ada",
		Recorder: rec,
		Observe:  func(core.StepResult) { observed++ },
	})
	w.pressed = keys(ebiten.KeyArrowUp)

	for i := 0; i < 2; i++ {
		if err := w.Update(); err != nil {
			t.Fatalf("Update %d: %v", i, err)
		}
	}

	if len(game.frames) != 2 || !game.frames[0].Has(core.ActionUp) {
		t.Fatalf("unexpected frames %v", game.frames)
	}
	if observed != 2 {
		t.Errorf("observer called %d times, expected 2", observed)
	}
	if len(rec.runs) != 1 || rec.runs[0].Player != "ada" || rec.runs[0].Seed != 7 || rec.runs[0].Outcome != "won" {
		t.Errorf("unexpected recorded runs %+v", rec.runs)
	}

	// The banner lingers for two seconds at one tick per second.
	if err := w.Update(); err != nil {
		t.Fatalf("linger update: %v", err)
	}
	if err := w.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update() = %v, expected ebiten.Termination", err)
	}
	if len(game.frames) != 2 {
		t.Error("finished game must not be stepped")
	}
}

func TestUpdateQuit(t *testing.T) {
	game := &stepGame{}
	w := New(game, core.RuntimeConfig{}, Options{})
	w.pressed = keys(ebiten.KeyEscape)

	if err := w.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update() = %v, expected ebiten.Termination", err)
	}
	if len(game.frames) != 0 {
		t.Error("quit must not step the game")
	}
}
