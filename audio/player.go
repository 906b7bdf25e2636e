package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep/speaker"
)

// Player owns the speaker. It initialises it on first use and turns itself
// off if that fails, so a machine without audio still runs the game.
type Player struct {
	mu       sync.Mutex
	volume   float64
	ready    bool
	disabled bool
}

func NewPlayer(volume float64) *Player {
	return &Player{volume: volume}
}

// PlayChime starts the win chime without waiting for it to finish.
func (p *Player) PlayChime() {
	if p == nil || !p.init() {
		return
	}
	speaker.Play(Chime(SampleRate, p.volume))
}

func (p *Player) init() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return true
	}
	if p.disabled {
		return false
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		log.Printf("audio: speaker unavailable, sound disabled: %v", err)
		p.disabled = true
		return false
	}
	p.ready = true
	return true
}

func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		speaker.Close()
		p.ready = false
	}
}
