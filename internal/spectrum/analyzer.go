// Package spectrum turns a block of mono samples into per-band magnitudes and
// phases, the shape of data the visualizer consumes from its audio source.
package spectrum

import "math"

// Analyzer computes a Hann-windowed DFT over the lowest Bands non-DC bins of a
// Window-sample block. Magnitudes are reported in dB above ThresholdDB and
// never drop below zero.
type Analyzer struct {
	Bands       int
	Window      int
	ThresholdDB float64

	hann    []float64
	gain    float64
	cos     []float64
	sin     []float64
	scratch []float64
}

// New creates an analyzer. window must be at least 2*bands.
func New(bands, window int, thresholdDB float64) *Analyzer {
	a := &Analyzer{
		Bands:       bands,
		Window:      window,
		ThresholdDB: thresholdDB,
		hann:        make([]float64, window),
		cos:         make([]float64, window),
		sin:         make([]float64, window),
		scratch:     make([]float64, window),
	}
	for n := 0; n < window; n++ {
		a.hann[n] = 0.5 * (1 - math.Cos(2*math.Pi*float64(n)/float64(window)))
		a.gain += a.hann[n]
		a.cos[n] = math.Cos(2 * math.Pi * float64(n) / float64(window))
		a.sin[n] = math.Sin(2 * math.Pi * float64(n) / float64(window))
	}
	return a
}

// Analyze uses the last Window samples of mono (zero padded in front when
// shorter) and returns Bands magnitudes and phases, lowest frequency first.
func (a *Analyzer) Analyze(mono []float64) (magnitudes, phases []float64) {
	x := a.scratch
	clear(x)
	if len(mono) > a.Window {
		mono = mono[len(mono)-a.Window:]
	}
	copy(x[a.Window-len(mono):], mono)
	for n := range x {
		x[n] *= a.hann[n]
	}

	magnitudes = make([]float64, a.Bands)
	phases = make([]float64, a.Bands)
	for b := 0; b < a.Bands; b++ {
		k := b + 1
		var re, im float64
		for n, v := range x {
			m := (k * n) % a.Window
			re += v * a.cos[m]
			im -= v * a.sin[m]
		}
		amp := 2 * math.Hypot(re, im) / a.gain
		magnitudes[b] = a.level(amp)
		phases[b] = math.Atan2(im, re)
	}
	return magnitudes, phases
}

func (a *Analyzer) level(amp float64) float64 {
	if amp <= 0 {
		return 0
	}
	db := 20*math.Log10(amp) - a.ThresholdDB
	if db < 0 || math.IsNaN(db) {
		return 0
	}
	return db
}

// BinFrequency returns the centre frequency of band b at the given sample rate.
func (a *Analyzer) BinFrequency(b int, sampleRate float64) float64 {
	return float64(b+1) * sampleRate / float64(a.Window)
}
