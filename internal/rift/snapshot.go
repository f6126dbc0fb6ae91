package rift

import "math"

// Snapshot contains the complete run state for determinism checks and replays.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick    uint64
	Energy  int
	Outcome int

	PlayerX, PlayerY float64

	// Guardian state (each guardian is 3 floats: X, Y, Angle)
	GuardianData []float64

	// Portal state (each portal is 3 floats: X, Y, Active as 0/1)
	PortalData []float64
}

// Snapshot returns the current run state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	guardianData := make([]float64, 0, len(g.guardians)*3)
	for _, gd := range g.guardians {
		guardianData = append(guardianData, gd.Pos.X, gd.Pos.Y, gd.Angle)
	}

	portalData := make([]float64, 0, len(g.portals)*3)
	for _, pt := range g.portals {
		active := 0.0
		if pt.Active {
			active = 1
		}
		portalData = append(portalData, pt.Pos.X, pt.Pos.Y, active)
	}

	return Snapshot{
		Tick:         uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		Energy:       g.energy,
		Outcome:      int(g.outcome),
		PlayerX:      g.player.Pos.X,
		PlayerY:      g.player.Pos.Y,
		GuardianData: guardianData,
		PortalData:   portalData,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Energy)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Outcome) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.PlayerX)
	h = h*31 + math.Float64bits(snap.PlayerY)

	for _, v := range snap.GuardianData {
		h = h*31 + math.Float64bits(v)
	}

	for _, v := range snap.PortalData {
		h = h*31 + math.Float64bits(v)
	}

	return h
}
