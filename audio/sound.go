// Package audio plays the short synthesized cues of the menu.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager mixes menu cues into the speaker. Every method is safe to
// call before Initialize or after it failed; cues are then dropped.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup drops pending cues and stops accepting new ones.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Navigate is a short high blip for moving the selection.
func (sm *SoundManager) Navigate() {
	sm.play(beep.Take(sampleRate.N(40*time.Millisecond), NewToneGenerator(sampleRate, 880, 0.15)))
}

// Select is a two-tone chirp for activating an item.
func (sm *SoundManager) Select() {
	sm.play(beep.Seq(
		beep.Take(sampleRate.N(50*time.Millisecond), NewToneGenerator(sampleRate, 660, 0.2)),
		beep.Take(sampleRate.N(70*time.Millisecond), NewToneGenerator(sampleRate, 990, 0.2)),
	))
}

// Error is a low buzz for failed actions.
func (sm *SoundManager) Error() {
	sm.play(beep.Take(sampleRate.N(150*time.Millisecond), NewBuzzGenerator(sampleRate, 120)))
}

// ToneGenerator is a sine tone with an exponential decay.
type ToneGenerator struct {
	sr     beep.SampleRate
	freq   float64
	volume float64
	pos    int
}

func NewToneGenerator(sr beep.SampleRate, freq, volume float64) *ToneGenerator {
	return &ToneGenerator{sr: sr, freq: freq, volume: volume}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := g.volume * math.Exp(-t*20) * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// BuzzGenerator is a harmonic-rich low buzz with a short fade in.
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)

		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope * 0.2

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}
