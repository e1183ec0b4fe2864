// Package player mirrors the state of an externally driven media element.
//
// The media resource is the source of truth for playback. Player only copies
// what the resource reports through its callbacks, except when the user seeks,
// when the new position is written to the resource first and then mirrored.
package player

import (
	"fmt"
	"math"
	"sync"
)

// Media is the playback resource being mirrored, typically a video element.
type Media interface {
	Play() error
	Pause()
	CurrentTime() float64
	SetCurrentTime(t float64)
	Duration() float64
}

type PlaybackState struct {
	IsPlaying   bool    `json:"isPlaying"`
	CurrentTime float64 `json:"currentTime"`
	Duration    float64 `json:"duration"`
}

type Player struct {
	mu    sync.Mutex
	media Media
	state PlaybackState
}

func New(media Media) *Player {
	return &Player{media: media}
}

// TogglePlay pauses a playing resource or starts a paused one. The mirrored
// flag flips only when the resource accepted the request.
func (p *Player) TogglePlay() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.media == nil {
		return nil
	}
	if p.state.IsPlaying {
		p.media.Pause()
	} else if err := p.media.Play(); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	p.state.IsPlaying = !p.state.IsPlaying
	return nil
}

// Seek moves the resource to t, clamped into [0, duration].
func (p *Player) Seek(t float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.media == nil {
		return
	}
	t = clamp(t, 0, p.state.Duration)
	p.media.SetCurrentTime(t)
	p.state.CurrentTime = t
}

func (p *Player) HandlePlay() {
	p.mu.Lock()
	p.state.IsPlaying = true
	p.mu.Unlock()
}

func (p *Player) HandlePause() {
	p.mu.Lock()
	p.state.IsPlaying = false
	p.mu.Unlock()
}

func (p *Player) HandleTimeUpdate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.media != nil {
		p.state.CurrentTime = p.media.CurrentTime()
	}
}

func (p *Player) HandleLoadedMetadata() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.media != nil {
		p.state.Duration = sanitize(p.media.Duration())
	}
}

func (p *Player) State() PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Readout is the "elapsed / total" label shown next to the transport controls.
func (p *Player) Readout() string {
	s := p.State()
	return FormatTime(s.CurrentTime) + " / " + FormatTime(s.Duration)
}

// FormatTime renders seconds as m:ss. Minutes are not wrapped into hours.
func FormatTime(seconds float64) string {
	seconds = sanitize(seconds)
	minutes := math.Floor(seconds / 60)
	secs := math.Floor(math.Mod(seconds, 60))
	return fmt.Sprintf("%d:%02d", int64(minutes), int64(secs))
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
