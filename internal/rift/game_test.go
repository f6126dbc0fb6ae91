package rift

import (
	"testing"

	"github.com/vovakirdan/aether-rift/internal/core"
)

// stubRand replays fixed values, cycling when exhausted.
type stubRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *stubRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *stubRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return n / 2
	}
	v := r.ints[r.ii%len(r.ints)]
	r.ii++
	return v % n
}

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

// newQuietGame returns a seeded game with no guardians and a single
// unreachable portal, so tests can place entities without the run ending.
func newQuietGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Reset(testConfig(1))
	g.guardians = nil
	g.portals = []Portal{{Pos: core.Vec{X: -1000, Y: -1000}}}
	g.SetRand(&stubRand{floats: []float64{0.5}})
	return g
}

func TestGameReset(t *testing.T) {
	g := New()
	g.Reset(testConfig(42))

	if g.player.Pos != (core.Vec{X: 400, Y: 300}) {
		t.Errorf("player should start at the centre, got %+v", g.player.Pos)
	}
	if len(g.guardians) != GuardianCount {
		t.Errorf("expected %d guardians, got %d", GuardianCount, len(g.guardians))
	}
	for i, gd := range g.guardians {
		if gd.Pos.X < SpawnMargin || gd.Pos.X > WorldWidth-SpawnMargin ||
			gd.Pos.Y < SpawnMargin || gd.Pos.Y > WorldHeight-SpawnMargin {
			t.Errorf("guardian %d spawned outside the margin: %+v", i, gd.Pos)
		}
	}
	if len(g.portals) != InitialPortals {
		t.Errorf("expected %d initial portals, got %d", InitialPortals, len(g.portals))
	}

	state := g.State()
	if state.Score != 0 || state.Outcome != core.OutcomeRunning || state.Tick != 0 {
		t.Errorf("fresh state should be zeroed and running, got %+v", state)
	}
	if state.PortalsTotal != InitialPortals || state.PortalsActive != 0 {
		t.Errorf("portal counts = %d/%d, expected 0/%d", state.PortalsActive, state.PortalsTotal, InitialPortals)
	}

	// Play a few ticks, then reset again.
	for range 30 {
		g.Step(core.NewInputFrame(core.ActionLeft))
	}
	g.Reset(testConfig(42))
	if g.tickCount != 0 || g.energy != 0 {
		t.Errorf("Reset should clear tick count and energy, got %d and %d", g.tickCount, g.energy)
	}
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and same inputs must produce identical runs.
	inputs := make([]core.InputFrame, 300)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch (i / 40) % 4 {
		case 0:
			inputs[i].Set(core.ActionLeft)
		case 1:
			inputs[i].Set(core.ActionUp)
		case 2:
			inputs[i].Set(core.ActionRight)
			inputs[i].Set(core.ActionDown)
		}
	}

	run := func() Snapshot {
		g := New()
		g.Reset(testConfig(12345))
		for _, in := range inputs {
			if res := g.Step(in); res.State.GameOver() {
				break
			}
		}
		return g.Snapshot()
	}

	snap1, snap2 := run(), run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Tick != snap2.Tick {
		t.Errorf("Determinism failed: tick counts differ. Run1=%d, Run2=%d", snap1.Tick, snap2.Tick)
	}

	g := New()
	g.Reset(testConfig(999))
	other := g.Snapshot()
	if other.Hash() == snap1.Hash() {
		t.Error("different seeds should not produce the same snapshot")
	}
}

func TestActivationScenario(t *testing.T) {
	g := newQuietGame(t)
	g.player.Pos = core.Vec{X: 400, Y: 300}
	g.portals = []Portal{{Pos: core.Vec{X: 410, Y: 300}}}

	res := g.Step(core.NewInputFrame())

	if !g.portals[0].Active {
		t.Fatal("portal 10 units away should activate in one step")
	}
	if res.State.Score != 20 {
		t.Errorf("energy = %d, expected 20", res.State.Score)
	}
	if len(res.Events) == 0 || res.Events[0].Kind != core.EventPortalActivated || res.Events[0].Index != 0 {
		t.Errorf("expected a portal_activated event for portal 0, got %+v", res.Events)
	}
	// The only portal is now active, so the run is won.
	if res.State.Outcome != core.OutcomeWon {
		t.Errorf("outcome = %v, expected won", res.State.Outcome)
	}
}

func TestActivationRangeIsStrict(t *testing.T) {
	g := newQuietGame(t)
	g.player.Pos = core.Vec{X: 400, Y: 300}
	g.portals = []Portal{
		{Pos: core.Vec{X: 450, Y: 300}}, // exactly ActivationRange away
		{Pos: core.Vec{X: 400, Y: 349}}, // just inside
	}

	g.Step(core.NewInputFrame())

	if g.portals[0].Active {
		t.Error("portal at exactly the activation range should stay inactive")
	}
	if !g.portals[1].Active {
		t.Error("portal inside the activation range should activate")
	}
}

func TestPortalActivationIsMonotonic(t *testing.T) {
	g := newQuietGame(t)
	g.player.Pos = core.Vec{X: 400, Y: 300}
	g.portals = []Portal{
		{Pos: core.Vec{X: 420, Y: 300}},
		{Pos: core.Vec{X: 700, Y: 500}},
	}

	g.Step(core.NewInputFrame())
	if !g.portals[0].Active || g.energy != EnergyPerPortal {
		t.Fatalf("first portal should be active with energy %d, got active=%v energy=%d",
			EnergyPerPortal, g.portals[0].Active, g.energy)
	}

	// Walk away and back over the active portal: no second credit, no reset.
	lastEnergy := g.energy
	for i := 0; i < 60; i++ {
		action := core.ActionLeft
		if i >= 30 {
			action = core.ActionRight
		}
		g.Step(core.NewInputFrame(action))

		if !g.portals[0].Active {
			t.Fatalf("active portal reverted on tick %d", g.tickCount)
		}
		if g.energy < lastEnergy {
			t.Fatalf("energy decreased from %d to %d", lastEnergy, g.energy)
		}
		lastEnergy = g.energy
	}
	if g.energy != EnergyPerPortal {
		t.Errorf("re-entering an active portal should not add energy, got %d", g.energy)
	}
}

func TestEnergyPerActivation(t *testing.T) {
	g := newQuietGame(t)
	g.player.Pos = core.Vec{X: 400, Y: 300}
	g.portals = []Portal{
		{Pos: core.Vec{X: 390, Y: 300}},
		{Pos: core.Vec{X: 400, Y: 320}},
		{Pos: core.Vec{X: 700, Y: 500}},
	}

	res := g.Step(core.NewInputFrame())

	if res.State.Score != 2*EnergyPerPortal {
		t.Errorf("two activations should give %d energy, got %d", 2*EnergyPerPortal, res.State.Score)
	}
	activations := 0
	for _, e := range res.Events {
		if e.Kind == core.EventPortalActivated {
			activations++
		}
	}
	if activations != 2 {
		t.Errorf("expected 2 activation events, got %d", activations)
	}
}

func TestAllActive(t *testing.T) {
	tests := []struct {
		name     string
		portals  []Portal
		expected bool
	}{
		{"no portals", nil, true},
		{"one inactive", []Portal{{}}, false},
		{"one active", []Portal{{Active: true}}, true},
		{"many all active", []Portal{{Active: true}, {Active: true}, {Active: true}}, true},
		{"many one inactive", []Portal{{Active: true}, {Active: false}, {Active: true}}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := allActive(tc.portals); got != tc.expected {
				t.Errorf("allActive() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCollisionEndsRun(t *testing.T) {
	g := newQuietGame(t)
	g.player.Pos = core.Vec{X: 400, Y: 300}
	g.guardians = []Guardian{{Pos: core.Vec{X: 405, Y: 300}, Angle: 0}}

	res := g.Step(core.NewInputFrame())

	if res.State.Outcome != core.OutcomeLost {
		t.Fatalf("outcome = %v, expected lost", res.State.Outcome)
	}
	last := res.Events[len(res.Events)-1]
	if last.Kind != core.EventCaught || last.Index != 0 {
		t.Errorf("expected caught event for guardian 0, got %+v", last)
	}
}

func TestLossTakesPrecedenceOverWin(t *testing.T) {
	g := newQuietGame(t)
	g.player.Pos = core.Vec{X: 400, Y: 300}
	g.portals = []Portal{{Pos: core.Vec{X: 410, Y: 300}}}
	g.guardians = []Guardian{{Pos: core.Vec{X: 395, Y: 300}}}

	res := g.Step(core.NewInputFrame())

	if res.State.Outcome != core.OutcomeLost {
		t.Errorf("outcome = %v, expected lost when caught on the winning frame", res.State.Outcome)
	}
	// Activation runs before collision, so the portal still counted.
	if res.State.Score != EnergyPerPortal {
		t.Errorf("energy = %d, expected %d", res.State.Score, EnergyPerPortal)
	}
}

func TestFinishedRunIsFrozen(t *testing.T) {
	g := newQuietGame(t)
	g.player.Pos = core.Vec{X: 400, Y: 300}
	g.guardians = []Guardian{{Pos: core.Vec{X: 400, Y: 300}}}
	g.Step(core.NewInputFrame())

	before := g.Snapshot()
	res := g.Step(core.NewInputFrame(core.ActionRight))
	after := g.Snapshot()

	if before.Hash() != after.Hash() {
		t.Error("stepping a finished run should not change it")
	}
	if len(res.Events) != 0 {
		t.Errorf("finished run should emit no events, got %+v", res.Events)
	}
	if res.State.Outcome != core.OutcomeLost {
		t.Errorf("outcome should stay lost, got %v", res.State.Outcome)
	}
}

func TestPlayerStaysInBounds(t *testing.T) {
	g := newQuietGame(t)
	half := PlayerSize / 2.0

	sequences := [][]core.Action{
		{core.ActionLeft, core.ActionUp},
		{core.ActionRight, core.ActionDown},
		{core.ActionLeft, core.ActionDown},
		{core.ActionRight, core.ActionUp},
	}

	for _, held := range sequences {
		in := core.NewInputFrame(held...)
		for i := 0; i < 250; i++ {
			g.Step(in)
			p := g.player.Pos
			if p.X < half || p.X > WorldWidth-half || p.Y < half || p.Y > WorldHeight-half {
				t.Fatalf("player left bounds at %+v holding %v", p, held)
			}
		}
	}

	// Last sequence pinned the player in the top-right corner.
	if g.player.Pos != (core.Vec{X: WorldWidth - half, Y: half}) {
		t.Errorf("player should rest in the top-right corner, got %+v", g.player.Pos)
	}
}

func TestPlayerDiagonalNotNormalized(t *testing.T) {
	g := newQuietGame(t)
	g.player.Pos = core.Vec{X: 400, Y: 300}

	g.Step(core.NewInputFrame(core.ActionRight, core.ActionDown))

	if g.player.Pos != (core.Vec{X: 404, Y: 304}) {
		t.Errorf("diagonal move should be full speed on both axes, got %+v", g.player.Pos)
	}
}

func TestGuardiansStayInBounds(t *testing.T) {
	half := GuardianSize / 2.0

	for seed := int64(1); seed <= 20; seed++ {
		g := New()
		g.Reset(testConfig(seed))

		for i := 0; i < 2000 && !g.outcome.Terminal(); i++ {
			g.Step(core.NewInputFrame())
			for j, gd := range g.guardians {
				if gd.Pos.X < half || gd.Pos.X > WorldWidth-half ||
					gd.Pos.Y < half || gd.Pos.Y > WorldHeight-half {
					t.Fatalf("seed %d: guardian %d left bounds at %+v", seed, j, gd.Pos)
				}
			}
		}
	}
}

func TestSpawnRollAddsOnePortal(t *testing.T) {
	g := newQuietGame(t)
	g.SetRand(&stubRand{floats: []float64{0.01}, ints: []int{600, 400}})

	res := g.Step(core.NewInputFrame())

	if len(g.portals) != 2 {
		t.Fatalf("successful roll should add exactly one portal, have %d", len(g.portals))
	}
	if g.portals[1].Pos != (core.Vec{X: 650, Y: 450}) {
		t.Errorf("spawned portal at %+v, expected (650, 450)", g.portals[1].Pos)
	}
	found := false
	for _, e := range res.Events {
		if e.Kind == core.EventPortalSpawned && e.Index == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected portal_spawned event, got %+v", res.Events)
	}
}

func TestSpawnRollRespectsChanceAndCap(t *testing.T) {
	g := newQuietGame(t)
	g.SetRand(&stubRand{floats: []float64{0.5}})
	g.Step(core.NewInputFrame())
	if len(g.portals) != 1 {
		t.Errorf("failed roll should not spawn, have %d portals", len(g.portals))
	}

	g = newQuietGame(t)
	g.portals = g.portals[:0]
	for i := 0; i < MaxPortals; i++ {
		g.portals = append(g.portals, Portal{Pos: core.Vec{X: float64(60 + 70*i), Y: 60}})
	}
	g.SetRand(&stubRand{floats: []float64{0.01}})
	g.Step(core.NewInputFrame())
	if len(g.portals) != MaxPortals {
		t.Errorf("portal count should stay at the cap, have %d", len(g.portals))
	}
}

func TestSpawnSeparation(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		g := New()
		g.Reset(testConfig(seed))

		// Fill up to the cap one portal at a time.
		for len(g.portals) < MaxPortals {
			existing := g.Portals()
			if !g.spawnPortal() {
				break
			}
			added := g.portals[len(g.portals)-1].Pos
			for _, pt := range existing {
				if d := pt.Pos.Dist(added); d < MinPortalSeparation {
					t.Fatalf("seed %d: new portal %+v only %.1f from %+v", seed, added, d, pt.Pos)
				}
			}
			if added.X < SpawnMargin || added.X > WorldWidth-SpawnMargin ||
				added.Y < SpawnMargin || added.Y > WorldHeight-SpawnMargin {
				t.Fatalf("seed %d: portal spawned outside the margin at %+v", seed, added)
			}
		}

		if len(g.portals) == MaxPortals {
			if n := g.spawnBatch(5); n != 0 {
				t.Fatalf("seed %d: batch past the cap added %d portals", seed, n)
			}
		}
	}
}

func TestSpawnGivesUpWhenCrowded(t *testing.T) {
	g := newQuietGame(t)
	// Every sample lands on the same spot, next to the existing portal.
	g.portals = []Portal{{Pos: core.Vec{X: 400, Y: 300}}}
	g.SetRand(&stubRand{ints: []int{350, 250}})

	if g.spawnPortal() {
		t.Error("spawnPortal should fail when every sample is too close")
	}
	if len(g.portals) != 1 {
		t.Errorf("no portal should be added, have %d", len(g.portals))
	}
}
