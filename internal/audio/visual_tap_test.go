package audio

import (
	"math"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/leap-visualizer/internal/latest"
	"github.com/iburimskiy/leap-visualizer/internal/spectrum"
)

// toneStreamer yields a sine that completes one period every period samples.
func toneStreamer(period int, amp float64) beep.Streamer {
	i := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for k := range samples {
			v := amp * math.Sin(2*math.Pi*float64(i)/float64(period))
			samples[k] = [2]float64{v, v}
			i++
		}
		return len(samples), true
	})
}

func TestTapPublishesEveryHop(t *testing.T) {
	var cell latest.Cell[AmplitudeSample]
	a := spectrum.New(4, 64, -60)
	tap := NewTap(toneStreamer(64, 1), beep.SampleRate(6400), a, 32, &cell)

	buf := make([][2]float64, 31)
	n, ok := tap.Stream(buf)
	require.Equal(t, 31, n)
	require.True(t, ok)
	_, published := cell.Load()
	assert.False(t, published, "no frame before a full hop")

	tap.Stream(make([][2]float64, 97))
	s, published := cell.Load()
	require.True(t, published)
	assert.Equal(t, 128*time.Second/6400, s.Timestamp)
	assert.Equal(t, 32*time.Second/6400, s.Duration)
	require.Len(t, s.Magnitudes, 4)
	require.Len(t, s.Phases, 4)
	// after two full periods the window holds an on-bin tone at bin 1
	assert.InDelta(t, 60, s.Magnitude(), 1e-6)
}

func TestTapPassesSamplesThrough(t *testing.T) {
	var cell latest.Cell[AmplitudeSample]
	tap := NewTap(toneStreamer(8, 0.5), beep.SampleRate(44100), spectrum.New(2, 8, -60), 0, &cell)

	buf := make([][2]float64, 3)
	tap.Stream(buf)
	assert.InDelta(t, 0.5*math.Sin(2*math.Pi/8), buf[1][0], 1e-12)
	assert.NoError(t, tap.Err())
}

func TestAmplitudeSampleMagnitude(t *testing.T) {
	assert.Zero(t, AmplitudeSample{}.Magnitude())
	assert.Zero(t, AmplitudeSample{Magnitudes: []float64{-3}}.Magnitude())
	assert.Zero(t, AmplitudeSample{Magnitudes: []float64{math.NaN()}}.Magnitude())
	assert.Equal(t, 12.5, AmplitudeSample{Magnitudes: []float64{12.5, 1}}.Magnitude())
}
