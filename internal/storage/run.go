package storage

import "github.com/vovakirdan/aether-rift/internal/core"

// NewRun builds the history record for a run finished under cfg.
func NewRun(player string, cfg core.RuntimeConfig, s core.GameState) Run {
	return Run{
		Player:        player,
		Outcome:       s.Outcome.String(),
		Energy:        s.Score,
		PortalsActive: s.PortalsActive,
		PortalsTotal:  s.PortalsTotal,
		Ticks:         s.Tick,
		TickRate:      cfg.TickRate,
		Seed:          cfg.Seed,
	}
}
