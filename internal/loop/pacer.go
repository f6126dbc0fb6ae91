package loop

import (
	"context"
	"time"
)

// Pacer blocks between frames.
type Pacer interface {
	Wait(ctx context.Context) error
}

// TickerPacer releases one frame per tick of a fixed-rate ticker.
type TickerPacer struct {
	ticker *time.Ticker
}

// NewTickerPacer creates a pacer running at fps frames per second.
// Non-positive rates fall back to 60.
func NewTickerPacer(fps int) *TickerPacer {
	if fps <= 0 {
		fps = 60
	}
	return &TickerPacer{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

// Wait blocks until the next tick or until ctx is done.
func (p *TickerPacer) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ticker.C:
		return nil
	}
}

// Stop releases the ticker.
func (p *TickerPacer) Stop() {
	p.ticker.Stop()
}

// Immediate never blocks. Used for headless simulation.
type Immediate struct{}

// Wait returns at once, reporting cancellation of ctx.
func (Immediate) Wait(ctx context.Context) error {
	return ctx.Err()
}
