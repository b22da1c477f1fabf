package config

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
)

const (
	WindowWidth  = 1300
	WindowHeight = 700

	// HUD strip below the particle field
	HUDHeight   = 120
	FieldWidth  = WindowWidth
	FieldHeight = WindowHeight - HUDHeight

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = FieldHeight + 10

	// Progress bar
	BarX      = ButtonX + ButtonWidth + 20
	BarY      = FieldHeight + 20
	BarWidth  = WindowWidth - BarX - 20
	BarHeight = 20

	// Level meter
	MeterX      = BarX
	MeterY      = BarY + BarHeight + 30
	MeterWidth  = BarWidth
	MeterHeight = 12

	MinRate  = 0.25
	MaxRate  = 4.0
	RateStep = 0.25
)

var (
	Background  = color.RGBA{R: 64, G: 64, B: 64, A: 255}
	HandColor   = color.RGBA{R: 128, G: 191, B: 204, A: 102}
	FingerColor = color.RGBA{R: 76, G: 81, B: 109, A: 255}
	BeatColor   = color.RGBA{R: 255, G: 255, B: 255, A: 24}

	Palette = []color.RGBA{
		{R: 255, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
)

// Config holds the tunables of the visualizer.
type Config struct {
	Particles int
	TrailSize int
	BaseSpeed float64

	// Beat circle radius target is BeatScale*(BeatBaseline-magnitude).
	BeatBaseline      float64
	BeatScale         float64
	BeatStep          int
	BeatMinRadius     int
	BeatMaxRadius     int
	BeatInitialRadius int

	HandRadius   int
	FingerRadius int

	SpectrumBands  int
	SpectrumWindow int
	SpectrumHop    int
	SensitivityDB  float64

	GestureURL string
	Pointer    bool
	Terminal   bool
	LogFile    string
	TPS        int
	Seed       int64
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Particles:         5000,
		TrailSize:         3,
		BaseSpeed:         1.5,
		BeatBaseline:      40,
		BeatScale:         2,
		BeatStep:          15,
		BeatMinRadius:     0,
		BeatMaxRadius:     200,
		BeatInitialRadius: 80,
		HandRadius:        60,
		FingerRadius:      15,
		SpectrumBands:     128,
		SpectrumWindow:    1024,
		SpectrumHop:       1024,
		SensitivityDB:     -60,
		Pointer:           true,
		TPS:               60,
	}
}

// RegisterFlags binds the configuration to command line flags.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Particles, "particles", c.Particles, "particle population")
	fs.IntVar(&c.TrailSize, "trail", c.TrailSize, "trail length per particle")
	fs.Float64Var(&c.BaseSpeed, "speed", c.BaseSpeed, "particle displacement per tick at playback rate 1")
	fs.IntVar(&c.BeatStep, "beat-step", c.BeatStep, "beat circle radius change per tick")
	fs.IntVar(&c.BeatMaxRadius, "beat-max", c.BeatMaxRadius, "maximum beat circle radius")
	fs.IntVar(&c.HandRadius, "hand-radius", c.HandRadius, "hand marker radius")
	fs.Float64Var(&c.SensitivityDB, "sensitivity", c.SensitivityDB, "spectrum threshold in dB")
	fs.StringVar(&c.GestureURL, "gesture", c.GestureURL, "gesture websocket URL, or \"leap\" for the local Leap Motion service")
	fs.BoolVar(&c.Pointer, "pointer", c.Pointer, "use the mouse as a hand when no gesture source is set")
	fs.BoolVar(&c.Terminal, "term", c.Terminal, "render in the terminal instead of a window")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "append log output to this file (terminal mode discards it otherwise)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed, 0 for time based")
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Particles <= 0:
		return fmt.Errorf("particles must be positive, got %d", c.Particles)
	case c.TrailSize <= 0:
		return fmt.Errorf("trail must be positive, got %d", c.TrailSize)
	case c.BeatStep <= 0:
		return fmt.Errorf("beat-step must be positive, got %d", c.BeatStep)
	case c.BeatMinRadius < 0:
		return errors.New("beat circle minimum radius is negative")
	case c.BeatMinRadius > c.BeatMaxRadius:
		return fmt.Errorf("beat radius bounds inverted: %d > %d", c.BeatMinRadius, c.BeatMaxRadius)
	case c.SpectrumBands <= 0 || c.SpectrumWindow < 2*c.SpectrumBands:
		return fmt.Errorf("spectrum window %d too small for %d bands", c.SpectrumWindow, c.SpectrumBands)
	case c.TPS <= 0:
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	}
	return nil
}
