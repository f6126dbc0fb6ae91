package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/aether-rift/internal/core"
	"github.com/vovakirdan/aether-rift/internal/rift"
	"github.com/vovakirdan/aether-rift/internal/storage"
)

// How long the final frame stays up before the program exits.
const lingerDuration = 2 * time.Second

// RunRecorder stores finished runs. *storage.Store implements it.
type RunRecorder interface {
	SaveRun(r storage.Run) (int64, error)
}

// Options configures a play session.
type Options struct {
	Player    string      // Name recorded with the run
	HoldTicks int         // Ticks a key press keeps its direction held
	Recorder  RunRecorder // May be nil: runs are not recorded

	// Renderer styles the output; nil uses the local terminal.
	Renderer *lipgloss.Renderer
}

// Model is the Bubble Tea model for one Aether Rift run.
type Model struct {
	game      core.Game
	screen    *core.Screen
	surface   *core.ScaledSurface
	config    core.RuntimeConfig
	opts      Options
	held      *core.HeldKeys
	keyMapper *KeyMapper
	help      help.Model
	styles    ColorStyles
	helpStyle lipgloss.Style
	gameState core.GameState
	quitting  bool
	finished  bool
	saveErr   error
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game core.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Player == "" {
		opts.Player = "anonymous"
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	styles := colorStyles
	if opts.Renderer != nil {
		styles = NewColorStyles(opts.Renderer)
	}

	screen := core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH))
	game.Reset(cfg)

	return Model{
		game:      game,
		screen:    screen,
		surface:   core.NewScaledSurface(screen, rift.WorldWidth, rift.WorldHeight),
		config:    cfg,
		opts:      opts,
		held:      core.NewHeldKeys(opts.HoldTicks),
		keyMapper: NewKeyMapper(),
		help:      newHelp(renderer),
		styles:    styles,
		helpStyle: newHelpStyle(renderer),
		gameState: game.State(),
	}
}

// playfieldHeight leaves one row for the help line.
func playfieldHeight(h int) int {
	return max(h-1, 1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case lingerMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.finished {
		if !m.keyMapper.Dismisses(msg) {
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	if m.keyMapper.MapKeyToHeld(msg, m.held) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize rescales the playfield. The world keeps its size, so the run
// continues unchanged.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.finished {
		return m, nil
	}

	result := m.game.Step(m.held.Frame())
	m.held.Tick()
	m.gameState = result.State

	if m.gameState.GameOver() {
		m.finished = true
		m.saveErr = m.record()
		return m, lingerCmd(lingerDuration)
	}

	return m, tickCmd(m.config.TickRate)
}

// record saves the finished run, if a recorder is configured.
func (m Model) record() error {
	if m.opts.Recorder == nil {
		return nil
	}
	_, err := m.opts.Recorder.SaveRun(storage.NewRun(m.opts.Player, m.config, m.gameState))
	return err
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Draw(m.surface)
	if m.finished {
		rift.DrawBanner(m.screen, m.gameState)
	}

	var b strings.Builder
	b.WriteString(m.styles.Render(m.screen))
	b.WriteString("\n")
	b.WriteString(m.helpStyle.Render(m.help.View(m.keyMapper.Keys())))
	return b.String()
}

// newHelp binds the help bubble's styles to r.
func newHelp(r *lipgloss.Renderer) help.Model {
	h := help.New()
	st := &h.Styles
	for _, s := range []*lipgloss.Style{
		&st.Ellipsis, &st.ShortKey, &st.ShortDesc, &st.ShortSeparator,
		&st.FullKey, &st.FullDesc, &st.FullSeparator,
	} {
		*s = s.Renderer(r)
	}
	return h
}

func newHelpStyle(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(lipgloss.Color("241"))
}

var helpStyle = newHelpStyle(lipgloss.DefaultRenderer())

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// SaveError returns the error from recording the run, if any.
func (m Model) SaveError() error {
	return m.saveErr
}

// Result summarises how a play session ended.
type Result struct {
	State   core.GameState
	Seed    int64
	SaveErr error
}

// String returns a one-line summary.
func (r Result) String() string {
	if !r.State.GameOver() {
		return fmt.Sprintf("quit after %d ticks, energy %d", r.State.Tick, r.State.Score)
	}
	return fmt.Sprintf("%s after %d ticks, energy %d, portals %d/%d",
		r.State.Outcome, r.State.Tick, r.State.Score, r.State.PortalsActive, r.State.PortalsTotal)
}

// Run starts the Bubble Tea program with the given game.
func Run(game core.Game, cfg core.RuntimeConfig, opts Options) (Result, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("tui: run program: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Result{}, nil
	}
	return Result{State: m.State(), Seed: m.config.Seed, SaveErr: m.SaveError()}, nil
}
