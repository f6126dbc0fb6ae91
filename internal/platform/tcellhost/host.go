// Package tcellhost runs the game on a raw tcell screen. Host implements both
// loop.Display and loop.InputSource.
package tcellhost

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/aether-rift/internal/core"
	"github.com/vovakirdan/aether-rift/internal/rift"
)

// Host draws onto a tcell screen and turns its key events into held
// directions.
type Host struct {
	*core.ScaledSurface

	screen tcell.Screen
	cells  *core.Screen
	held   *core.HeldKeys
	events chan tcell.Event
	done   chan struct{}
	once   sync.Once
	quit   bool
}

// Open creates and initializes a terminal screen.
func Open(holdTicks int) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcellhost: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("tcellhost: init screen: %w", err)
	}
	return New(screen, holdTicks), nil
}

// New wraps an initialized screen and starts reading its events.
func New(screen tcell.Screen, holdTicks int) *Host {
	screen.HideCursor()
	w, h := screen.Size()
	cells := core.NewScreen(w, h)

	host := &Host{
		ScaledSurface: core.NewScaledSurface(cells, rift.WorldWidth, rift.WorldHeight),
		screen:        screen,
		cells:         cells,
		held:          core.NewHeldKeys(holdTicks),
		events:        make(chan tcell.Event, 100),
		done:          make(chan struct{}),
	}

	go host.pollEvents()
	return host
}

// pollEvents forwards screen events until the screen is finalized.
func (h *Host) pollEvents() {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case h.events <- ev:
		case <-h.done:
			return
		}
	}
}

// Poll drains pending events and returns the held directions for the next
// tick.
func (h *Host) Poll() (core.InputFrame, bool) {
	for drained := false; !drained; {
		select {
		case ev := <-h.events:
			h.handleEvent(ev)
		default:
			drained = true
		}
	}

	frame := h.held.Frame()
	h.held.Tick()
	return frame, h.quit
}

// handleEvent applies one screen event.
func (h *Host) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a := MapKey(ev)
		if a == core.ActionQuit {
			h.quit = true
			return
		}
		h.held.Press(a)

	case *tcell.EventResize:
		w, hh := ev.Size()
		h.cells.Resize(w, hh)
		h.screen.Sync()
	}
}

// MapKey converts a tcell key event to a game action.
func MapKey(ev *tcell.EventKey) core.Action {
	switch ev.Key() {
	case tcell.KeyLeft:
		return core.ActionLeft
	case tcell.KeyRight:
		return core.ActionRight
	case tcell.KeyUp:
		return core.ActionUp
	case tcell.KeyDown:
		return core.ActionDown
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return core.ActionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'h':
			return core.ActionLeft
		case 'd', 'l':
			return core.ActionRight
		case 'w', 'k':
			return core.ActionUp
		case 's', 'j':
			return core.ActionDown
		case 'q':
			return core.ActionQuit
		}
	}
	return core.ActionNone
}

// Dismisses reports whether ev closes the outcome banner: Enter, Space or a
// quit key.
func Dismisses(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEnter:
		return true
	case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
		return true
	}
	return MapKey(ev) == core.ActionQuit
}

// Present copies the cell buffer to the terminal.
func (h *Host) Present() error {
	for y := 0; y < h.cells.Height(); y++ {
		for x := 0; x < h.cells.Width(); x++ {
			cell := h.cells.GetCell(x, y)
			h.screen.SetContent(x, y, cell.Rune, nil, Style(cell.Color))
		}
	}
	h.screen.Show()
	return nil
}

// ShowOutcome draws the outcome banner over the last frame.
func (h *Host) ShowOutcome(state core.GameState) error {
	rift.DrawBanner(h.cells, state)
	return h.Present()
}

// WaitKey blocks until a dismiss key is pressed or done is closed. Direction
// keys are ignored.
func (h *Host) WaitKey(done <-chan struct{}) {
	for {
		select {
		case ev := <-h.events:
			if key, ok := ev.(*tcell.EventKey); ok {
				if Dismisses(key) {
					return
				}
				continue
			}
			h.handleEvent(ev)
		case <-done:
			return
		}
	}
}

// Close restores the terminal.
func (h *Host) Close() {
	h.once.Do(func() {
		close(h.done)
		h.screen.Fini()
	})
}

// Style maps a cell color to a tcell style.
func Style(c core.Color) tcell.Style {
	code := c.ANSI()
	if code < 0 {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(tcell.PaletteColor(code))
}
