package rift

import "github.com/vovakirdan/aether-rift/internal/core"

// activatePortals switches on every inactive portal within ActivationRange of
// the player and credits EnergyPerPortal for each. Active portals are skipped.
func (g *Game) activatePortals() {
	for i := range g.portals {
		pt := &g.portals[i]
		if pt.Active || !pt.InRange(g.player.Pos) {
			continue
		}
		pt.Active = true
		g.energy += EnergyPerPortal
		g.emit(core.Event{Kind: core.EventPortalActivated, Index: i, Pos: pt.Pos})
	}
}

// allActive reports whether every portal is active. Vacuously true for none.
func allActive(portals []Portal) bool {
	for _, pt := range portals {
		if !pt.Active {
			return false
		}
	}
	return true
}

// activeCount returns how many portals are active.
func activeCount(portals []Portal) int {
	n := 0
	for _, pt := range portals {
		if pt.Active {
			n++
		}
	}
	return n
}

// spawnBatch adds up to n portals, stopping early if the cap is reached or
// no free position can be found.
func (g *Game) spawnBatch(n int) int {
	added := 0
	for added < n && len(g.portals) < MaxPortals {
		if !g.spawnPortal() {
			break
		}
		added++
	}
	return added
}

// spawnPortal samples positions inside the spawn margin until one is at least
// MinPortalSeparation from every existing portal, then appends it.
// Returns false if MaxSpawnAttempts samples all landed too close.
func (g *Game) spawnPortal() bool {
	for attempt := 0; attempt < MaxSpawnAttempts; attempt++ {
		pos := g.randomSpawnPoint()
		if !clearOf(g.portals, pos, MinPortalSeparation) {
			continue
		}
		g.portals = append(g.portals, Portal{Pos: pos})
		g.emit(core.Event{Kind: core.EventPortalSpawned, Index: len(g.portals) - 1, Pos: pos})
		return true
	}
	return false
}

// rollSpawn adds one portal with probability SpawnChance while under the cap.
func (g *Game) rollSpawn() {
	if g.rng.Float64() < g.spawnChance && len(g.portals) < MaxPortals {
		g.spawnPortal()
	}
}

// clearOf reports whether pos is at least minDist from every portal.
func clearOf(portals []Portal, pos core.Vec, minDist float64) bool {
	for _, pt := range portals {
		if pt.Pos.Dist(pos) < minDist {
			return false
		}
	}
	return true
}

// randomSpawnPoint returns an integer position inside the spawn margin.
func (g *Game) randomSpawnPoint() core.Vec {
	return core.Vec{
		X: float64(randInt(g.rng, SpawnMargin, WorldWidth-SpawnMargin)),
		Y: float64(randInt(g.rng, SpawnMargin, WorldHeight-SpawnMargin)),
	}
}
