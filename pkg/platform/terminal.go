// pkg/platform/terminal.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

import (
	"fmt"
	"time"

	"github.com/trackplot/gpxview/pkg/log"

	"github.com/gdamore/tcell/v2"
)

// TerminalFrameInterval is how often the terminal platform presents a
// frame; there is no vsync to pace it.
const TerminalFrameInterval = time.Second / 30

// TerminalPlatform implements the Platform interface on a character
// terminal using tcell. Each cell is one unit of the window coordinate
// system; the bottom row is reserved for the window title, which serves
// as a status line.
type TerminalPlatform struct {
	screen tcell.Screen
	lg     *log.Logger

	title      string
	buttons    tcell.ButtonMask
	pointer    [2]int
	frameTimer *time.Ticker
}

var _ Platform = (*TerminalPlatform)(nil)

// NewTerminal takes over the controlling terminal.
func NewTerminal(lg *log.Logger) (*TerminalPlatform, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	return NewTerminalWithScreen(screen, lg), nil
}

// NewTerminalWithScreen returns a TerminalPlatform that uses an already
// initialized screen, e.g. a tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen, lg *log.Logger) *TerminalPlatform {
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	screen.HideCursor()
	screen.Clear()

	w, h := screen.Size()
	lg.Infof("Terminal: %dx%d", w, h)

	return &TerminalPlatform{
		screen:     screen,
		lg:         lg,
		title:      windowTitle,
		frameTimer: time.NewTicker(TerminalFrameInterval),
	}
}

// Screen returns the tcell screen that the platform draws into.
func (t *TerminalPlatform) Screen() tcell.Screen {
	return t.screen
}

// terminalButtonMasks is indexed by MouseButton.
var terminalButtonMasks = [MouseButtonCount]tcell.ButtonMask{tcell.Button1, tcell.Button2, tcell.Button3}

func (t *TerminalPlatform) PollEvents() []Event {
	var events []Event
	for t.screen.HasPendingEvent() {
		events = t.translate(t.screen.PollEvent(), events)
	}
	return events
}

// translate appends the Events corresponding to the given tcell event.
func (t *TerminalPlatform) translate(ev tcell.Event, events []Event) []Event {
	switch e := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()

	case *tcell.EventKey:
		switch e.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			events = append(events, QuitEvent{})
		case tcell.KeyUp:
			events = append(events, KeyEvent{Key: KeyUpArrow})
		case tcell.KeyDown:
			events = append(events, KeyEvent{Key: KeyDownArrow})
		case tcell.KeyLeft:
			events = append(events, KeyEvent{Key: KeyLeftArrow})
		case tcell.KeyRight:
			events = append(events, KeyEvent{Key: KeyRightArrow})
		case tcell.KeyRune:
			if r := e.Rune(); r == 'q' || r == 'Q' {
				events = append(events, QuitEvent{})
			} else if k := KeyForRune(r); k != KeyNone {
				events = append(events, KeyEvent{Key: k})
			}
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		pos := [2]int{x, y}
		buttons := e.Buttons()

		if buttons&tcell.WheelUp != 0 {
			events = append(events, WheelEvent{Pos: pos, DeltaY: 1})
		}
		if buttons&tcell.WheelDown != 0 {
			events = append(events, WheelEvent{Pos: pos, DeltaY: -1})
		}

		// tcell reports the current button state rather than
		// transitions, so motion and presses/releases are derived by
		// comparing with the previous event.
		if pos != t.pointer {
			events = append(events, MouseMotionEvent{Pos: pos})
			t.pointer = pos
		}
		for button, mask := range terminalButtonMasks {
			if down := buttons&mask != 0; down != (t.buttons&mask != 0) {
				events = append(events, MouseButtonEvent{Button: MouseButton(button), Down: down, Pos: pos})
			}
		}
		t.buttons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	}
	return events
}

// PostRender draws the status line, shows the screen, and then waits
// until it is time for the next frame.
func (t *TerminalPlatform) PostRender() {
	w, h := t.screen.Size()
	if h > 0 {
		style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
		x := 0
		for _, r := range t.title {
			if x >= w {
				break
			}
			t.screen.SetContent(x, h-1, r, nil, style)
			x++
		}
		for ; x < w; x++ {
			t.screen.SetContent(x, h-1, ' ', nil, style)
		}
	}
	t.screen.Show()
	<-t.frameTimer.C
}

func (t *TerminalPlatform) Dispose() {
	t.frameTimer.Stop()
	t.screen.Fini()
}

func (t *TerminalPlatform) SetWindowTitle(text string) {
	t.title = text
}

// EnableFullScreen is a no-op; the terminal always uses the entire
// screen.
func (t *TerminalPlatform) EnableFullScreen(fullscreen bool) {}

func (t *TerminalPlatform) IsFullScreen() bool {
	return true
}

func (t *TerminalPlatform) WindowSize() [2]int {
	w, h := t.screen.Size()
	return [2]int{w, max(h-1, 0)}
}

func (t *TerminalPlatform) FramebufferSize() [2]int {
	return t.WindowSize()
}
