package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/leap-visualizer/internal/config"
)

// levelMeter eases the displayed low-band level toward the latest magnitude.
type levelMeter struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newLevelMeter(fps int) levelMeter {
	return levelMeter{spring: harmonica.NewSpring(harmonica.FPS(fps), 8, 0.6)}
}

func (m *levelMeter) step(target float64) float64 {
	m.pos, m.vel = m.spring.Update(m.pos, m.vel, target)
	return m.pos
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, config.FieldHeight, config.WindowWidth, config.HUDHeight, color.RGBA{R: 20, G: 25, B: 35, A: 255}, false)
	g.drawButton(screen)
	g.drawProgressBar(screen)
	g.drawMeter(screen)

	status := ""
	switch {
	case !g.player.Loaded():
		status = "Click Open or press O to add music"
	case g.player.Paused():
		status = "Paused - Space to play, N/P next/prev, +/- rate"
	default:
		status = "Playing - Space to pause, N/P next/prev, +/- rate"
	}
	status += fmt.Sprintf(" | rate %.2fx | beat r=%d", g.player.Rate(), g.ctrl.Field().Beat().Radius())
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) drawButton(screen *ebiten.Image) {
	var bgColor color.Color
	switch {
	case g.buttonPressed:
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255}
	case g.buttonHovered:
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255}
	default:
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	}
	vector.DrawFilledRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, bgColor, false)
	vector.StrokeRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, 2, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)

	text := "Open File"
	textWidth := len(text) * 8 // Approximate character width
	ebitenutil.DebugPrintAt(screen, text, config.ButtonX+(config.ButtonWidth-textWidth)/2, config.ButtonY+(config.ButtonHeight-16)/2)
}

func (g *Game) drawProgressBar(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, config.BarX, config.BarY, config.BarWidth, config.BarHeight, color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)
	vector.StrokeRect(screen, config.BarX, config.BarY, config.BarWidth, config.BarHeight, 2, color.RGBA{R: 70, G: 80, B: 100, A: 255}, false)

	duration := g.player.Duration()
	if duration == 0 {
		return
	}
	position := g.player.Position()
	progress := clamp01(float64(position) / float64(duration))

	if progress > 0 {
		r, gv, b := hsvToRgb(progress*180, 0.8, 0.9)
		vector.DrawFilledRect(screen, config.BarX, config.BarY, float32(progress*config.BarWidth), config.BarHeight, color.RGBA{R: r, G: gv, B: b, A: 180}, false)
	}
	indicatorX := float32(config.BarX + progress*config.BarWidth)
	vector.DrawFilledCircle(screen, indicatorX, config.BarY+config.BarHeight/2, 8, color.White, true)

	ebitenutil.DebugPrintAt(screen, formatDuration(position), config.BarX, config.BarY+config.BarHeight+4)
	total := formatDuration(duration)
	ebitenutil.DebugPrintAt(screen, total, config.BarX+config.BarWidth-len(total)*6, config.BarY+config.BarHeight+4)
	if name := g.trackName(); name != "" {
		ebitenutil.DebugPrintAt(screen, name, config.BarX+config.BarWidth/2-len(name)*3, config.BarY+config.BarHeight+4)
	}
}

func (g *Game) drawMeter(screen *ebiten.Image) {
	level := clamp01(g.meter.step(g.ctrl.Magnitude() / -g.cfg.SensitivityDB))
	vector.DrawFilledRect(screen, config.MeterX, config.MeterY, config.MeterWidth, config.MeterHeight, color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)
	if level > 0 {
		r, gv, b := hsvToRgb(120-level*120, 0.8, 0.9)
		vector.DrawFilledRect(screen, config.MeterX, config.MeterY, float32(level*config.MeterWidth), config.MeterHeight, color.RGBA{R: r, G: gv, B: b, A: 220}, false)
	}
	ebitenutil.DebugPrintAt(screen, "Low", config.MeterX-28, config.MeterY-2)
}

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
