package core

// RuntimeConfig contains configuration passed to the game at initialization.
// Hosts fill it from the application config and command-line flags.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters (terminal hosts only)
	ScreenH  int   // Screen height in characters (terminal hosts only)
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Outcome is the run's position in the Running -> Won | Lost state machine.
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeWon
	OutcomeLost
)

// String returns the lowercase name stored in run history.
func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (o Outcome) Terminal() bool {
	return o == OutcomeWon || o == OutcomeLost
}

// GameState represents the current state of a run.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score         int     // Energy collected so far
	Outcome       Outcome // Running, Won or Lost
	Tick          int     // Ticks simulated since Reset
	PortalsActive int
	PortalsTotal  int
}

// GameOver reports whether the run has ended.
func (s GameState) GameOver() bool {
	return s.Outcome.Terminal()
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventPortalActivated EventKind = iota
	EventPortalSpawned
	EventCaught
	EventWon
)

// String returns a short name for logs.
func (k EventKind) String() string {
	switch k {
	case EventPortalActivated:
		return "portal_activated"
	case EventPortalSpawned:
		return "portal_spawned"
	case EventCaught:
		return "caught"
	case EventWon:
		return "won"
	default:
		return "unknown"
	}
}

// Event is emitted by Step. Index refers to the portal or guardian involved.
type Event struct {
	Kind  EventKind
	Index int
	Pos   Vec
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Game is the contract every host drives: reset once, then one Step per frame
// followed by Draw. The game owns no timing, input devices or output.
type Game interface {
	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes the run from the runtime config (seed in particular).
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in InputFrame) StepResult

	// Draw renders the current state onto the surface.
	Draw(dst Surface)

	// State returns the current game state.
	State() GameState
}
