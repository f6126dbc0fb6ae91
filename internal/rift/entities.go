package rift

import (
	"math"

	"github.com/vovakirdan/aether-rift/internal/core"
)

// Player is the avatar steered by the held direction keys.
type Player struct {
	Pos core.Vec
}

// Move shifts the player by PlayerSpeed along every held axis, then clamps the
// centre so the avatar stays fully on screen. Diagonals are not normalized.
func (p *Player) Move(in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		p.Pos.X -= PlayerSpeed
	}
	if in.Has(core.ActionRight) {
		p.Pos.X += PlayerSpeed
	}
	if in.Has(core.ActionUp) {
		p.Pos.Y -= PlayerSpeed
	}
	if in.Has(core.ActionDown) {
		p.Pos.Y += PlayerSpeed
	}
	p.Pos = clampToWorld(p.Pos, PlayerSize)
}

// Box returns the player's square hitbox.
func (p Player) Box() core.Rect {
	return core.RectAround(p.Pos, PlayerSize)
}

// Guardian is an enemy that chases the player when close and wanders otherwise.
type Guardian struct {
	Pos   core.Vec
	Angle float64 // Heading in radians
}

// Chasing reports whether the guardian is within chase range of target.
func (g Guardian) Chasing(target core.Vec) bool {
	return g.Pos.Dist(target) < ChaseRadius
}

// Move updates the heading and advances one step along it.
// Within ChaseRadius the heading snaps towards target; otherwise it random-walks.
func (g *Guardian) Move(target core.Vec, rng Rand) {
	if g.Chasing(target) {
		g.Angle = g.Pos.Heading(target)
	} else {
		g.Angle += uniform(rng, -WanderJitter, WanderJitter)
	}
	g.Pos = clampToWorld(g.Pos.Add(core.Polar(g.Angle, GuardianSpeed)), GuardianSize)
}

// Box returns the guardian's square hitbox.
func (g Guardian) Box() core.Rect {
	return core.RectAround(g.Pos, GuardianSize)
}

// Portal is a stationary objective. Active only ever goes false -> true.
type Portal struct {
	Pos    core.Vec
	Active bool
}

// InRange reports whether p is close enough to activate the portal.
func (pt Portal) InRange(p core.Vec) bool {
	return pt.Pos.Dist(p) < ActivationRange
}

// clampToWorld keeps a centre at least size/2 away from every world edge.
func clampToWorld(p core.Vec, size float64) core.Vec {
	half := size / 2
	return core.Vec{
		X: core.ClampF(p.X, half, WorldWidth-half),
		Y: core.ClampF(p.Y, half, WorldHeight-half),
	}
}

// randomHeading returns a uniform angle in [0, 2pi).
func randomHeading(rng Rand) float64 {
	return rng.Float64() * 2 * math.Pi
}
