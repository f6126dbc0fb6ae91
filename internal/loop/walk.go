package loop

import (
	"math/rand"

	"github.com/vovakirdan/aether-rift/internal/core"
)

// RandomWalk is a scripted InputSource that holds a random direction for a
// random number of frames, then picks another. It quits after a fixed budget.
type RandomWalk struct {
	rng     *rand.Rand
	frames  int
	polled  int
	current core.InputFrame
	left    int // Frames remaining on the current heading
}

// Longest stretch a single heading is held.
const maxWalkStretch = 45

// NewRandomWalk creates a walker that quits after frames polls.
// A non-positive budget never quits on its own.
func NewRandomWalk(seed int64, frames int) *RandomWalk {
	return &RandomWalk{
		rng:     rand.New(rand.NewSource(seed)), //#nosec G404 -- simulated input
		frames:  frames,
		current: core.NewInputFrame(),
	}
}

// Poll implements InputSource.
func (w *RandomWalk) Poll() (core.InputFrame, bool) {
	if w.frames > 0 && w.polled >= w.frames {
		return core.NewInputFrame(), true
	}
	w.polled++

	if w.left <= 0 {
		w.current = core.NewInputFrame()
		// Zero to two directions, never a pair of opposites.
		for range w.rng.Intn(3) {
			a := core.Directions[w.rng.Intn(len(core.Directions))]
			if !w.current.Has(a.Opposite()) {
				w.current.Set(a)
			}
		}
		w.left = 1 + w.rng.Intn(maxWalkStretch)
	}
	w.left--

	return w.current, false
}

// Polled returns how many frames were handed out.
func (w *RandomWalk) Polled() int {
	return w.polled
}
