package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(n, bin int, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*float64(bin)*float64(i)/float64(n))
	}
	return out
}

func TestAnalyzeSilence(t *testing.T) {
	a := New(8, 64, -60)
	mags, phases := a.Analyze(make([]float64, 64))
	require.Len(t, mags, 8)
	require.Len(t, phases, 8)
	for _, m := range mags {
		assert.Zero(t, m)
	}
}

func TestAnalyzeOnBinSine(t *testing.T) {
	a := New(8, 64, -60)
	mags, _ := a.Analyze(sine(64, 2, 1))

	// bin 2 is band 1; a full-scale sine sits 60 dB above the threshold
	assert.InDelta(t, 60, mags[1], 1e-6)
	// Hann leaks half the amplitude into each neighbouring bin
	assert.InDelta(t, 60+20*math.Log10(0.5), mags[0], 1e-6)
	assert.InDelta(t, 60+20*math.Log10(0.5), mags[2], 1e-6)
	assert.Zero(t, mags[5])
}

func TestAnalyzeQuietSignalClampsToZero(t *testing.T) {
	a := New(4, 64, -60)
	mags, _ := a.Analyze(sine(64, 1, 1e-5))
	assert.Zero(t, mags[0])
}

func TestAnalyzeUsesMostRecentWindow(t *testing.T) {
	a := New(4, 64, -60)
	block := append(make([]float64, 500), sine(64, 1, 0.1)...)
	mags, _ := a.Analyze(block)
	assert.InDelta(t, 40, mags[0], 1e-6)

	short, _ := a.Analyze(sine(32, 1, 0.1))
	assert.Greater(t, short[0], 0.0)
}

func TestBinFrequency(t *testing.T) {
	a := New(4, 1024, -60)
	assert.InDelta(t, 44100.0/1024, a.BinFrequency(0, 44100), 1e-9)
}
