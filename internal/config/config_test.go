package config

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"no particles":    func(c *Config) { c.Particles = 0 },
		"no trail":        func(c *Config) { c.TrailSize = -1 },
		"zero step":       func(c *Config) { c.BeatStep = 0 },
		"negative min":    func(c *Config) { c.BeatMinRadius = -1 },
		"inverted bounds": func(c *Config) { c.BeatMinRadius = 300 },
		"tiny window":     func(c *Config) { c.SpectrumWindow = 16 },
		"zero tps":        func(c *Config) { c.TPS = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestRegisterFlags(t *testing.T) {
	c := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)

	require.NoError(t, fs.Parse([]string{"-particles", "100", "-trail", "5", "-term", "-gesture", "ws://localhost:8080/ws/gesture"}))
	assert.Equal(t, 100, c.Particles)
	assert.Equal(t, 5, c.TrailSize)
	assert.True(t, c.Terminal)
	assert.Equal(t, "ws://localhost:8080/ws/gesture", c.GestureURL)
	assert.Equal(t, 15, c.BeatStep)
}

func TestFieldFitsAboveHUD(t *testing.T) {
	assert.Equal(t, WindowHeight, FieldHeight+HUDHeight)
	assert.Less(t, MeterY+MeterHeight, WindowHeight)
}
