package game

import (
	"errors"
	"image"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/leap-visualizer/internal/audio"
	"github.com/iburimskiy/leap-visualizer/internal/config"
	"github.com/iburimskiy/leap-visualizer/internal/geom"
	"github.com/iburimskiy/leap-visualizer/internal/gesture"
	"github.com/iburimskiy/leap-visualizer/internal/latest"
)

// Game hosts the controller in an ebiten window. ebiten paces the frames:
// Update runs one controller step, Draw renders it together with the HUD.
type Game struct {
	cfg      config.Config
	ctrl     *Controller
	player   *audio.Player
	playlist *audio.Playlist

	gestures *latest.Cell[gesture.Frame]
	pointer  *gesture.Pointer
	handsUp  *gesture.HandsUpDetector
	meter    levelMeter

	// OpenFiles asks the user for tracks; replaced in tests.
	OpenFiles func() ([]string, error)

	buttonHovered bool
	buttonPressed bool
	barDragging   bool

	lastErr error
}

// NewGame wires a controller to the player's spectrum frames and playback
// rate and to gestures. With usePointer set the mouse acts as a hand.
func NewGame(cfg config.Config, player *audio.Player, playlist *audio.Playlist, gestures *latest.Cell[gesture.Frame], usePointer bool) *Game {
	g := &Game{
		cfg:       cfg,
		ctrl:      NewController(cfg, config.FieldWidth, config.FieldHeight, &player.Samples, gestures, player),
		player:    player,
		playlist:  playlist,
		gestures:  gestures,
		handsUp:   gesture.NewHandsUpDetector(config.FieldWidth),
		meter:     newLevelMeter(cfg.TPS),
		OpenFiles: selectFiles,
	}
	if usePointer {
		g.pointer = &gesture.Pointer{Out: gestures}
	}
	return g
}

func (g *Game) Controller() *Controller { return g.ctrl }

func (g *Game) Update() error {
	mouseX, mouseY := ebiten.CursorPosition()
	g.handleButton(mouseX, mouseY)
	g.handleProgressBar(mouseX, mouseY)

	if err := g.handleKeys(); err != nil {
		return err
	}

	if g.pointer != nil {
		pos := geom.Pt(float64(mouseX), float64(mouseY))
		inside := pos.Positive() && pos.X < config.FieldWidth && pos.Y < config.FieldHeight
		g.pointer.Move(pos, inside, inside && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	}
	if f, ok := g.gestures.Load(); ok && g.handsUp.Observe(f) {
		log.Printf("gesture: hands up, skipping track")
		g.step(g.playlist.Next)
	}
	if g.player.TakeFinished() {
		g.step(g.playlist.Next)
	}

	g.ctrl.Step(config.FieldWidth, config.FieldHeight)
	return nil
}

func (g *Game) handleButton(mouseX, mouseY int) {
	g.buttonHovered = mouseX >= config.ButtonX && mouseX <= config.ButtonX+config.ButtonWidth &&
		mouseY >= config.ButtonY && mouseY <= config.ButtonY+config.ButtonHeight

	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			g.openFiles()
		}
		g.buttonPressed = false
	}
}

func (g *Game) handleProgressBar(mouseX, mouseY int) {
	hovered := mouseX >= config.BarX && mouseX <= config.BarX+config.BarWidth &&
		mouseY >= config.BarY && mouseY <= config.BarY+config.BarHeight

	if hovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.barDragging = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.barDragging = false
	}
	if g.barDragging && g.player.Loaded() {
		fraction := clamp01(float64(mouseX-config.BarX) / config.BarWidth)
		if err := g.player.Seek(fraction); err != nil {
			g.lastErr = err
		}
	}
}

func (g *Game) handleKeys() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.player.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.openFiles()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.step(g.playlist.Next)
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.step(g.playlist.Prev)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		g.player.SetRate(g.player.Rate() + config.RateStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		g.player.SetRate(g.player.Rate() - config.RateStep)
	}
	return nil
}

// openFiles adds the chosen tracks and starts playing the first new one when
// nothing is loaded yet.
func (g *Game) openFiles() {
	paths, err := g.OpenFiles()
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			g.lastErr = err
		}
		return
	}
	for _, p := range paths {
		if g.playlist.Add(p) {
			log.Printf("playlist: added %s", p)
		}
	}
	if !g.player.Loaded() && g.playlist.Len() > 0 {
		g.step(g.playlist.Current)
	}
}

// step loads the track chosen by move.
func (g *Game) step(move func() (string, bool)) {
	path, ok := move()
	if !ok {
		return
	}
	if err := g.player.Load(path); err != nil {
		log.Printf("audio: %v", err)
		g.lastErr = err
		return
	}
	g.lastErr = nil
}

func (g *Game) trackName() string {
	if !g.player.Loaded() {
		return ""
	}
	return filepath.Base(g.player.Track())
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(config.Background)
	fieldImg := screen.SubImage(image.Rect(0, 0, config.FieldWidth, config.FieldHeight)).(*ebiten.Image)
	g.ctrl.Render(imageSurface{img: fieldImg})
	g.drawHUD(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

func selectFiles() ([]string, error) {
	return zenity.SelectFileMultiple(
		zenity.Title("Open Audio Files"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
}
