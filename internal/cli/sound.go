package cli

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Sound plays the revolver effects. A failed Initialize leaves it silent; the
// game runs without audio.
type Sound struct {
	initialized bool
}

// NewSound creates a silent player; call Initialize to enable output.
func NewSound() *Sound {
	return &Sound{}
}

// Initialize opens the audio device.
func (s *Sound) Initialize() error {
	if s == nil || s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	s.initialized = true
	return nil
}

// Close releases the audio device.
func (s *Sound) Close() {
	if s == nil || !s.initialized {
		return
	}
	speaker.Close()
	s.initialized = false
}

func (s *Sound) play(st beep.Streamer) {
	if s == nil || !s.initialized {
		return
	}
	speaker.Play(st)
}

// Click is the hammer falling on an empty chamber.
func (s *Sound) Click() {
	s.play(beep.Take(sampleRate.N(40*time.Millisecond), NewClickGenerator(sampleRate, 2200)))
}

// Bang is the shot.
func (s *Sound) Bang() {
	s.play(beep.Take(sampleRate.N(600*time.Millisecond), NewShotGenerator(sampleRate, 7)))
}

// Thunk is a jam or a dud: a dull, short knock.
func (s *Sound) Thunk() {
	s.play(beep.Take(sampleRate.N(120*time.Millisecond), NewClickGenerator(sampleRate, 180)))
}

// ClickGenerator is a sine burst with a fast exponential decay.
type ClickGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewClickGenerator creates a click at the given pitch.
func NewClickGenerator(sr beep.SampleRate, freq float64) *ClickGenerator {
	return &ClickGenerator{sr: sr, freq: freq}
}

func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := 0.4 * math.Sin(2*math.Pi*g.freq*t) * math.Exp(-t*60)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ClickGenerator) Err() error {
	return nil
}

// ShotGenerator is white noise under a decaying envelope plus a low thump.
type ShotGenerator struct {
	sr    beep.SampleRate
	decay float64
	pos   int
	rng   *rand.Rand
}

// NewShotGenerator creates a gunshot; higher decay means a shorter tail.
func NewShotGenerator(sr beep.SampleRate, decay float64) *ShotGenerator {
	return &ShotGenerator{sr: sr, decay: decay, rng: rand.New(rand.NewSource(1))}
}

func (g *ShotGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * g.decay)
		noise := g.rng.Float64()*2 - 1
		thump := math.Sin(2 * math.Pi * 60 * t)
		sample := envelope * (0.6*noise + 0.3*thump)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ShotGenerator) Err() error {
	return nil
}
