package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/leap-visualizer/internal/config"
	"github.com/iburimskiy/leap-visualizer/internal/game"
	"github.com/iburimskiy/leap-visualizer/internal/gesture"
)

// Host drives a controller from a ticker, drawing into a tcell screen.
type Host struct {
	Screen  tcell.Screen
	Surface *Surface
	Ctrl    *game.Controller
	// Pointer, when set, receives mouse positions as a hand.
	Pointer *gesture.Pointer
	// OnKey handles runes other than the quit keys.
	OnKey func(r rune)
	// OnTick runs before each controller tick.
	OnTick func()
}

// NewHost enables the mouse on an initialised screen and prepares a surface.
func NewHost(screen tcell.Screen, ctrl *game.Controller, pointer *gesture.Pointer) *Host {
	screen.EnableMouse()
	screen.HideCursor()
	return &Host{
		Screen:  screen,
		Surface: NewSurface(screen, config.Background),
		Ctrl:    ctrl,
		Pointer: pointer,
	}
}

// Run ticks tps times per second until ctx is done or the user quits with
// Esc, q or Ctrl-C. Ticks never overlap: input and ticks share one loop.
func (h *Host) Run(ctx context.Context, tps int) error {
	eventChan := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := h.Screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-eventChan:
			if !ok || !h.handle(ev) {
				return nil
			}
		case <-ticker.C:
			h.Tick()
		}
	}
}

// Tick redraws one frame.
func (h *Host) Tick() {
	if h.OnTick != nil {
		h.OnTick()
	}
	h.Surface.Clear()
	h.Ctrl.Tick(h.Surface)
	h.Screen.Show()
}

// handle processes one input event and reports whether to keep running.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && h.OnKey != nil:
			h.OnKey(ev.Rune())
		}
	case *tcell.EventMouse:
		if h.Pointer != nil {
			x, y := ev.Position()
			cols, rows := h.Screen.Size()
			inside := x >= 0 && y >= 0 && x < cols && y < rows
			h.Pointer.Move(Cell(x, y), inside, ev.Buttons()&tcell.Button1 != 0)
		}
	case *tcell.EventResize:
		h.Screen.Sync()
	}
	return true
}
