package audio

import (
	"time"

	"github.com/faiface/beep"

	"github.com/iburimskiy/leap-visualizer/internal/latest"
	"github.com/iburimskiy/leap-visualizer/internal/spectrum"
)

// AmplitudeSample is one spectrum frame computed from recently played audio.
type AmplitudeSample struct {
	Timestamp  time.Duration
	Duration   time.Duration
	Magnitudes []float64
	Phases     []float64
}

// Magnitude returns the lowest band's magnitude, the only value the particle
// engine reacts to. Missing or negative values read as zero.
func (s AmplitudeSample) Magnitude() float64 {
	if len(s.Magnitudes) == 0 || !(s.Magnitudes[0] > 0) {
		return 0
	}
	return s.Magnitudes[0]
}

// Tap wraps a beep.Streamer, keeps the last Window mono samples in a ring and
// every hop samples publishes a spectrum frame of them. The ring is only
// touched from the goroutine that calls Stream.
type Tap struct {
	Source beep.Streamer

	analyzer   *spectrum.Analyzer
	sampleRate beep.SampleRate
	out        *latest.Cell[AmplitudeSample]

	ring      []float64
	nextIndex int
	window    []float64
	hop       int
	sinceLast int
	played    int
}

// NewTap creates a tap publishing into out. hop <= 0 analyses once per window.
func NewTap(src beep.Streamer, sr beep.SampleRate, a *spectrum.Analyzer, hop int, out *latest.Cell[AmplitudeSample]) *Tap {
	if hop <= 0 {
		hop = a.Window
	}
	return &Tap{
		Source:     src,
		analyzer:   a,
		sampleRate: sr,
		out:        out,
		ring:       make([]float64, a.Window),
		window:     make([]float64, a.Window),
		hop:        hop,
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	for i := 0; i < n; i++ {
		t.ring[t.nextIndex] = (samples[i][0] + samples[i][1]) * 0.5
		t.nextIndex++
		if t.nextIndex >= len(t.ring) {
			t.nextIndex = 0
		}
		t.played++
		t.sinceLast++
		if t.sinceLast >= t.hop {
			t.sinceLast = 0
			t.publish()
		}
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

func (t *Tap) publish() {
	mags, phases := t.analyzer.Analyze(t.snapshot())
	t.out.Publish(AmplitudeSample{
		Timestamp:  t.sampleRate.D(t.played),
		Duration:   t.sampleRate.D(t.hop),
		Magnitudes: mags,
		Phases:     phases,
	})
}

// snapshot returns the ring contents in chronological order.
func (t *Tap) snapshot() []float64 {
	n := copy(t.window, t.ring[t.nextIndex:])
	copy(t.window[n:], t.ring[:t.nextIndex])
	return t.window
}
