// Package audio plays short synthesized cues for game events.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/aether-rift/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Note is a single sine tone.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// Cues maps each event to the notes played for it, in order.
var Cues = map[core.EventKind][]Note{
	core.EventPortalActivated: {
		{Freq: 660, Duration: 60 * time.Millisecond},
		{Freq: 990, Duration: 90 * time.Millisecond},
	},
	core.EventPortalSpawned: {
		{Freq: 440, Duration: 40 * time.Millisecond},
	},
	core.EventCaught: {
		{Freq: 220, Duration: 120 * time.Millisecond},
		{Freq: 110, Duration: 250 * time.Millisecond},
	},
	core.EventWon: {
		{Freq: 523, Duration: 100 * time.Millisecond},
		{Freq: 659, Duration: 100 * time.Millisecond},
		{Freq: 784, Duration: 100 * time.Millisecond},
		{Freq: 1047, Duration: 300 * time.Millisecond},
	},
}

// CueStreamer builds the streamer for an event. It returns nil for events
// without a cue.
func CueStreamer(kind core.EventKind) (beep.Streamer, error) {
	notes := Cues[kind]
	if len(notes) == 0 {
		return nil, nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sampleRate, n.Freq)
		if err != nil {
			return nil, fmt.Errorf("audio: tone %.0fHz: %w", n.Freq, err)
		}
		parts = append(parts, beep.Take(sampleRate.N(n.Duration), tone))
	}
	return beep.Seq(parts...), nil
}

// Player mixes event cues into the speaker. The zero value is not usable;
// a Player that was never initialized ignores every event.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates a player. Call Init before events are heard.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the speaker. Failure leaves the player silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues the cue for one event.
func (p *Player) Play(kind core.EventKind) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	s, err := CueStreamer(kind)
	if err != nil || s == nil {
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Observe plays the cues for every event of a tick. It matches the frame
// loop's observer signature.
func (p *Player) Observe(result core.StepResult) {
	for _, ev := range result.Events {
		p.Play(ev.Kind)
	}
}

// Close silences all pending cues.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
