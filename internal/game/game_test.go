package game

import (
	"errors"
	"testing"

	"github.com/ncruces/zenity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/leap-visualizer/internal/audio"
	"github.com/iburimskiy/leap-visualizer/internal/config"
	"github.com/iburimskiy/leap-visualizer/internal/gesture"
	"github.com/iburimskiy/leap-visualizer/internal/latest"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.Particles = 50
	cfg.Seed = 1
	player := audio.NewPlayer(cfg.SpectrumBands, cfg.SpectrumWindow, cfg.SpectrumHop, cfg.SensitivityDB, config.MinRate, config.MaxRate)
	return NewGame(cfg, player, &audio.Playlist{}, &latest.Cell[gesture.Frame]{}, true)
}

func TestGameLayout(t *testing.T) {
	g := newTestGame(t)
	w, h := g.Layout(10, 10)
	assert.Equal(t, config.WindowWidth, w)
	assert.Equal(t, config.WindowHeight, h)
	assert.Equal(t, float64(config.FieldWidth), g.Controller().Field().Beat().Center().X*2)
}

func TestOpenFilesCancelled(t *testing.T) {
	g := newTestGame(t)
	g.OpenFiles = func() ([]string, error) { return nil, zenity.ErrCanceled }
	g.openFiles()
	assert.NoError(t, g.lastErr)
	assert.Zero(t, g.playlist.Len())

	g.OpenFiles = func() ([]string, error) { return nil, errors.New("no dialog") }
	g.openFiles()
	assert.EqualError(t, g.lastErr, "no dialog")
}

func TestOpenFilesQueuesAndReportsLoadErrors(t *testing.T) {
	g := newTestGame(t)
	g.OpenFiles = func() ([]string, error) {
		return []string{"/music/cover.jpg", "/music/cover.jpg"}, nil
	}
	g.openFiles()

	require.Equal(t, 1, g.playlist.Len())
	assert.ErrorIs(t, g.lastErr, audio.ErrUnsupportedFormat)
	assert.False(t, g.player.Loaded())
	assert.Empty(t, g.trackName())
}
