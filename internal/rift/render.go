package rift

import (
	"fmt"

	"github.com/vovakirdan/aether-rift/internal/core"
)

// Colors for each entity.
const (
	BackgroundColor   = core.ColorBlack
	PlayerColor       = core.ColorBlue
	GuardianColor     = core.ColorOrange
	PortalIdleColor   = core.ColorWhite
	PortalActiveColor = core.ColorPurple
	HUDColor          = core.ColorWhite
)

// HUD text anchors in world units.
const (
	hudX     = 10
	energyY  = 10
	portalsY = 40
)

// Draw renders the playfield and HUD onto dst.
func (g *Game) Draw(dst core.Surface) {
	dst.Clear(BackgroundColor)

	dst.FillCircle(g.player.Pos.X, g.player.Pos.Y, PlayerSize/2, PlayerColor)

	for _, gd := range g.guardians {
		dst.FillCircle(gd.Pos.X, gd.Pos.Y, GuardianSize/2, GuardianColor)
	}

	for _, pt := range g.portals {
		c := PortalIdleColor
		if pt.Active {
			c = PortalActiveColor
		}
		dst.FillCircle(pt.Pos.X, pt.Pos.Y, PortalSize/2, c)
	}

	dst.DrawText(hudX, energyY, fmt.Sprintf("Energy: %d", g.energy), HUDColor)
	dst.DrawText(hudX, portalsY, fmt.Sprintf("Portals: %d/%d", activeCount(g.portals), len(g.portals)), HUDColor)
}

// OutcomeMessage returns the banner title and subtitle for a finished run.
func OutcomeMessage(s core.GameState) (string, string) {
	switch s.Outcome {
	case core.OutcomeWon:
		return "RIFT SEALED", fmt.Sprintf("All %d portals active  |  Energy: %d", s.PortalsTotal, s.Score)
	case core.OutcomeLost:
		return "CAUGHT", fmt.Sprintf("Portals %d/%d  |  Energy: %d", s.PortalsActive, s.PortalsTotal, s.Score)
	default:
		return "", ""
	}
}

var bannerColor = map[core.Outcome]core.Color{
	core.OutcomeWon:  core.ColorBrightMagenta,
	core.OutcomeLost: core.ColorBrightRed,
}

// DrawBanner boxes the outcome message in the middle of a character screen.
// It draws nothing while the run is still going.
func DrawBanner(s *core.Screen, state core.GameState) {
	title, subtitle := OutcomeMessage(state)
	if title == "" {
		return
	}

	w := max(len(title), len(subtitle)) + 4
	h := 4
	x := (s.Width() - w) / 2
	y := (s.Height() - h) / 2
	c := bannerColor[state.Outcome]

	s.DrawBox(x, y, w, h, c)
	s.DrawTextCentered(y+1, title, c)
	s.DrawTextCentered(y+2, subtitle, core.ColorWhite)
}
