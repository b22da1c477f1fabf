// Package audio plays music files and publishes spectrum frames of what is
// being played, together with the playback rate the particle field follows.
package audio

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/leap-visualizer/internal/latest"
	"github.com/iburimskiy/leap-visualizer/internal/spectrum"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

const (
	resampleQuality = 4
	seekCooldown    = 50 * time.Millisecond
)

// Player decodes a track and plays it through the speaker. The chain is
// decoder -> resampler (playback rate) -> tap (spectrum) -> ctrl (pause).
//
// Methods are meant to be called from one goroutine (the frame loop); the
// speaker goroutine only touches the chain under speaker.Lock.
type Player struct {
	bands, window, hop int
	thresholdDB        float64
	minRate, maxRate   float64

	Samples latest.Cell[AmplitudeSample]

	file      *os.File
	streamer  beep.StreamSeekCloser
	format    beep.Format
	resampler *beep.Resampler
	ctrl      *beep.Ctrl
	path      string

	rate         float64
	paused       bool
	initDone     bool
	lastSeekTime time.Time

	finished atomic.Bool
}

// NewPlayer creates a player whose taps analyse bands over window samples
// every hop samples. Playback rates are clamped to [minRate, maxRate].
func NewPlayer(bands, window, hop int, thresholdDB, minRate, maxRate float64) *Player {
	return &Player{
		bands:       bands,
		window:      window,
		hop:         hop,
		thresholdDB: thresholdDB,
		minRate:     minRate,
		maxRate:     maxRate,
		rate:        1,
	}
}

// decode opens path and picks a decoder by extension.
func decode(path string) (*os.File, beep.StreamSeekCloser, beep.Format, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".flac":
	default:
		return nil, nil, format, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, format, err
	}
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, nil, format, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return f, streamer, format, nil
}

// Load stops the current track and starts playing path.
func (p *Player) Load(path string) error {
	f, streamer, format, err := decode(path)
	if err != nil {
		return err
	}

	analyzer := spectrum.New(p.bands, p.window, p.thresholdDB)
	resampler := beep.ResampleRatio(resampleQuality, p.rate, streamer)
	tap := NewTap(resampler, format.SampleRate, analyzer, p.hop, &p.Samples)
	ctrl := &beep.Ctrl{Streamer: tap, Paused: false}

	// (Re)initialize speaker if needed
	bufferSize := format.SampleRate.N(time.Second / 20)
	if !p.initDone || p.format.SampleRate != format.SampleRate {
		if p.initDone {
			speaker.Lock()
			speaker.Clear()
			speaker.Unlock()
		}
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("speaker init: %w", err)
		}
		p.initDone = true
	} else {
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
	}
	p.closeCurrent()

	p.file = f
	p.streamer = streamer
	p.format = format
	p.resampler = resampler
	p.ctrl = ctrl
	p.path = path
	p.paused = false
	p.finished.Store(false)
	p.Samples.Reset()

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		p.finished.Store(true)
	})))
	log.Printf("audio: playing %s (%d Hz)", filepath.Base(path), format.SampleRate)
	return nil
}

// TakeFinished reports, once, that the current track reached its end.
func (p *Player) TakeFinished() bool {
	return p.finished.Swap(false)
}

// Loaded reports whether a track is loaded.
func (p *Player) Loaded() bool { return p.streamer != nil }

// Track returns the path of the loaded track.
func (p *Player) Track() string { return p.path }

func (p *Player) Paused() bool { return p.paused }

func (p *Player) TogglePause() {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

// Rate returns the playback rate, 1.0 when nothing is loaded.
func (p *Player) Rate() float64 {
	if p.streamer == nil {
		return 1
	}
	return p.rate
}

// SetRate changes the playback rate, clamped to the player's range.
func (p *Player) SetRate(r float64) {
	if r < p.minRate {
		r = p.minRate
	}
	if r > p.maxRate {
		r = p.maxRate
	}
	p.rate = r
	if p.resampler == nil {
		return
	}
	speaker.Lock()
	p.resampler.SetRatio(r)
	speaker.Unlock()
}

// Position returns how far into the track playback is.
func (p *Player) Position() time.Duration {
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
}

// Duration returns the track length.
func (p *Player) Duration() time.Duration {
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// Seek jumps to fraction (0..1) of the track. Calls closer than the seek
// cooldown apart are ignored.
func (p *Player) Seek(fraction float64) error {
	if p.streamer == nil {
		return nil
	}
	if time.Since(p.lastSeekTime) < seekCooldown {
		return nil
	}
	fraction = clamp(fraction, 0, 1)

	seekPos := int(fraction * float64(p.streamer.Len()))
	if maxPos := p.streamer.Len() - 1; seekPos > maxPos {
		seekPos = maxPos
	}
	if seekPos < 0 {
		seekPos = 0
	}

	speaker.Lock()
	err := p.streamer.Seek(seekPos)
	speaker.Unlock()
	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	p.lastSeekTime = time.Now()
	return nil
}

// Close stops playback and releases the track.
func (p *Player) Close() {
	if p.initDone {
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
	}
	p.closeCurrent()
}

func (p *Player) closeCurrent() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		_ = p.file.Close()
		p.file = nil
	}
	p.resampler = nil
	p.ctrl = nil
	p.path = ""
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
