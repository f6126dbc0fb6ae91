// Package rift implements Aether Rift: the player evades wandering guardians
// while activating every portal on the field.
package rift

import (
	"math/rand"

	"github.com/vovakirdan/aether-rift/internal/core"
)

// World and entity tuning. All values are in world units (pixels of the
// 800x600 playfield) per tick at 60 ticks per second.
const (
	WorldWidth  = 800
	WorldHeight = 600

	PlayerSize   = 20
	GuardianSize = 25
	PortalSize   = 15

	PlayerSpeed   = 4
	GuardianSpeed = 2

	ChaseRadius     = 200
	WanderJitter    = 0.1 // Max heading change per tick while wandering (radians)
	ActivationRange = 50
	EnergyPerPortal = 20

	GuardianCount       = 3
	InitialPortals      = 5
	MaxPortals          = 10
	MinPortalSeparation = 100
	SpawnMargin         = 50
	SpawnChance         = 0.02
	MaxSpawnAttempts    = 1000

	TargetFPS = 60
)

// Game implements the Aether Rift simulation.
type Game struct {
	player      Player
	guardians   []Guardian
	portals     []Portal
	energy      int
	spawnChance float64
	outcome     core.Outcome
	tickCount   int
	rng         Rand
	seed        int64
	events      []core.Event // Events of the tick in progress
}

// New creates a new Aether Rift game instance. Call Reset before stepping.
func New() *Game {
	return &Game{}
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Aether Rift"
}

// Reset starts a new run: the player at the centre, guardians at random
// positions with random headings, and the initial batch of portals.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	g.rng = rand.New(rand.NewSource(cfg.Seed)) //#nosec G404 -- gameplay randomness
	g.setup()
}

// ResetWithRand is Reset with an explicit random source.
func (g *Game) ResetWithRand(rng Rand) {
	g.seed = 0
	g.rng = rng
	g.setup()
}

// setup lays out a fresh run using the current random source.
func (g *Game) setup() {
	g.player = Player{Pos: core.Vec{X: WorldWidth / 2, Y: WorldHeight / 2}}
	g.energy = 0
	g.spawnChance = SpawnChance
	g.outcome = core.OutcomeRunning
	g.tickCount = 0
	g.events = nil

	g.guardians = make([]Guardian, 0, GuardianCount)
	for range GuardianCount {
		pos := core.Vec{
			X: float64(randInt(g.rng, SpawnMargin, WorldWidth-SpawnMargin)),
			Y: float64(randInt(g.rng, SpawnMargin, WorldHeight-SpawnMargin)),
		}
		g.guardians = append(g.guardians, Guardian{Pos: pos, Angle: randomHeading(g.rng)})
	}

	g.portals = make([]Portal, 0, MaxPortals)
	g.spawnBatch(InitialPortals)
	g.events = nil
}

// SetRand replaces the random source mid-run.
func (g *Game) SetRand(rng Rand) {
	g.rng = rng
}

// Step advances the run by one tick in fixed order: player, portals,
// guardians, collision, win check, spawn roll. Finished runs do not change.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil
	if g.outcome.Terminal() {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	g.player.Move(in)
	g.activatePortals()

	for i := range g.guardians {
		g.guardians[i].Move(g.player.Pos, g.rng)
	}

	if idx := caughtBy(g.player, g.guardians); idx >= 0 {
		g.outcome = core.OutcomeLost
		g.emit(core.Event{Kind: core.EventCaught, Index: idx, Pos: g.guardians[idx].Pos})
		return g.result()
	}

	if allActive(g.portals) {
		g.outcome = core.OutcomeWon
		g.emit(core.Event{Kind: core.EventWon, Index: -1, Pos: g.player.Pos})
		return g.result()
	}

	g.rollSpawn()

	return g.result()
}

// result packages the current state with the tick's events.
func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// emit records an event for the tick in progress.
func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:         g.energy,
		Outcome:       g.outcome,
		Tick:          g.tickCount,
		PortalsActive: activeCount(g.portals),
		PortalsTotal:  len(g.portals),
	}
}

// Seed returns the seed the run was started with.
func (g *Game) Seed() int64 {
	return g.seed
}

// Player returns a copy of the player.
func (g *Game) Player() Player {
	return g.player
}

// Guardians returns a copy of the guardians.
func (g *Game) Guardians() []Guardian {
	return append([]Guardian(nil), g.guardians...)
}

// Portals returns a copy of the portals.
func (g *Game) Portals() []Portal {
	return append([]Portal(nil), g.portals...)
}
