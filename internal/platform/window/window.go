// Package window runs the game in an Ebitengine desktop window at the
// world's native 800x600 resolution. Keys are sampled as truly held,
// so no held-key emulation is needed.
package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/aether-rift/internal/core"
	"github.com/vovakirdan/aether-rift/internal/rift"
	"github.com/vovakirdan/aether-rift/internal/storage"
)

// Seconds the outcome banner stays up before the window closes.
const lingerSeconds = 2

// Recorder stores finished runs. *storage.Store implements it.
type Recorder interface {
	SaveRun(r storage.Run) (int64, error)
}

// Options configures a window session.
type Options struct {
	Title    string
	Player   string
	Recorder Recorder                // May be nil
	Observe  func(r core.StepResult) // Called after every step; may be nil
}

// keyBindings lists the keys held for each direction.
var keyBindings = map[core.Action][]ebiten.Key{
	core.ActionLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	core.ActionRight: {ebiten.KeyArrowRight, ebiten.KeyD},
	core.ActionUp:    {ebiten.KeyArrowUp, ebiten.KeyW},
	core.ActionDown:  {ebiten.KeyArrowDown, ebiten.KeyS},
}

var quitKeys = []ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}

// Window adapts a core.Game to ebiten.Game.
type Window struct {
	game     core.Game
	config   core.RuntimeConfig
	opts     Options
	pressed  func(ebiten.Key) bool
	state    core.GameState
	finished bool
	linger   int
	saveErr  error
}

// New creates a window host and resets the game.
func New(game core.Game, cfg core.RuntimeConfig, opts Options) *Window {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if opts.Player == "" {
		opts.Player = "anonymous"
	}
	if opts.Title == "" {
		opts.Title = game.Title()
	}

	cfg.ScreenW, cfg.ScreenH = rift.WorldWidth, rift.WorldHeight
	game.Reset(cfg)

	return &Window{
		game:    game,
		config:  cfg,
		opts:    opts,
		pressed: ebiten.IsKeyPressed,
		state:   game.State(),
	}
}

// Frame builds the input for one tick from the pressed-key query.
func Frame(pressed func(ebiten.Key) bool) (core.InputFrame, bool) {
	for _, k := range quitKeys {
		if pressed(k) {
			return core.NewInputFrame(), true
		}
	}

	f := core.NewInputFrame()
	for a, keys := range keyBindings {
		for _, k := range keys {
			if pressed(k) {
				f.Set(a)
				break
			}
		}
	}
	return f, false
}

// Update advances the game by one tick.
func (w *Window) Update() error {
	if w.finished {
		w.linger--
		if w.linger <= 0 {
			return ebiten.Termination
		}
		return nil
	}

	frame, quit := Frame(w.pressed)
	if quit {
		return ebiten.Termination
	}

	res := w.game.Step(frame)
	w.state = res.State
	if w.opts.Observe != nil {
		w.opts.Observe(res)
	}

	if w.state.GameOver() {
		w.finished = true
		w.linger = lingerSeconds * w.config.TickRate
		if w.opts.Recorder != nil {
			_, w.saveErr = w.opts.Recorder.SaveRun(storage.NewRun(w.opts.Player, w.config, w.state))
		}
	}
	return nil
}

// Draw renders the playfield, plus the outcome once the run has ended.
func (w *Window) Draw(screen *ebiten.Image) {
	w.game.Draw(imageSurface{screen})

	if w.finished {
		title, subtitle := rift.OutcomeMessage(w.state)
		ebitenutil.DebugPrintAt(screen, title, rift.WorldWidth/2-len(title)*3, rift.WorldHeight/2-20)
		ebitenutil.DebugPrintAt(screen, subtitle, rift.WorldWidth/2-len(subtitle)*3, rift.WorldHeight/2)
	}
}

// Layout keeps the logical screen at world size.
func (w *Window) Layout(_, _ int) (int, int) {
	return rift.WorldWidth, rift.WorldHeight
}

// State returns the last observed game state.
func (w *Window) State() core.GameState {
	return w.state
}

// SaveError returns the error from recording the run, if any.
func (w *Window) SaveError() error {
	return w.saveErr
}

// Seed returns the seed the run was started with.
func (w *Window) Seed() int64 {
	return w.config.Seed
}

// Run opens the window and blocks until it is closed or the run ends.
func Run(w *Window) error {
	ebiten.SetWindowSize(rift.WorldWidth, rift.WorldHeight)
	ebiten.SetWindowTitle(w.opts.Title)
	ebiten.SetTPS(w.config.TickRate)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: run: %w", err)
	}
	return nil
}

// imageSurface draws world coordinates straight onto an Ebitengine image.
type imageSurface struct {
	img *ebiten.Image
}

func (s imageSurface) Clear(c core.Color) {
	s.img.Fill(c.RGBA())
}

func (s imageSurface) FillCircle(x, y, r float64, c core.Color) {
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), c.RGBA(), true)
}

// DrawText uses the debug font, which is always white.
func (s imageSurface) DrawText(x, y float64, text string, _ core.Color) {
	ebitenutil.DebugPrintAt(s.img, text, int(x), int(y))
}
