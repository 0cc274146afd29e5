// pkg/platform/platform_test.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyForRune(t *testing.T) {
	for r, k := range map[rune]Key{
		'a': KeyA,
		'P': KeyP,
		's': KeyS,
		'z': KeyZ,
		'Z': KeyZ,
		'1': KeyNone,
		'é': KeyNone,
	} {
		if got := KeyForRune(r); got != k {
			t.Errorf("%q: got %v, expected %v", r, got, k)
		}
	}
	if KeyF.String() != "F" || KeyUpArrow.String() != "Up" {
		t.Errorf("unexpected key names %s %s", KeyF, KeyUpArrow)
	}
}

func TestEventKindString(t *testing.T) {
	for e, name := range map[Event]string{
		QuitEvent{}:        "quit",
		WheelEvent{}:       "wheel",
		KeyEvent{}:         "key",
		MouseButtonEvent{}: "mouse button",
		MouseMotionEvent{}: "mouse motion",
	} {
		if got := e.Kind().String(); got != name {
			t.Errorf("%T: got %q, expected %q", e, got, name)
		}
	}
	if got := EventKind(42).String(); got != "EventKind(42)" {
		t.Errorf("unknown kind gave %q", got)
	}
}

func TestEventQueue(t *testing.T) {
	var q EventQueue
	q.Push(KeyEvent{Key: KeyP})
	q.Push(QuitEvent{})

	ev := q.Drain()
	if len(ev) != 2 || ev[0].Kind() != EventKey || ev[1].Kind() != EventQuit {
		t.Errorf("unexpected events %v", ev)
	}
	if len(q.Drain()) != 0 {
		t.Errorf("queue should be empty after Drain")
	}
}

func TestConfigWindowGeometry(t *testing.T) {
	var c Config
	if sz := c.defaultWindowSize(1920, 1080); sz != [2]int{1770, 930} {
		t.Errorf("got default size %v", sz)
	}
	c.InitialWindowSize = [2]int{800, 600}
	if sz := c.defaultWindowSize(1920, 1080); sz != [2]int{800, 600} {
		t.Errorf("got size %v", sz)
	}

	c.InitialWindowPosition = [2]int{3000, 20}
	if p := c.windowPosition(1920, 1080); p != [2]int{100, 100} {
		t.Errorf("offscreen position not reset: %v", p)
	}
	c.InitialWindowPosition = [2]int{30, 20}
	if p := c.windowPosition(1920, 1080); p != [2]int{30, 20} {
		t.Errorf("got position %v", p)
	}
}

func newSimulatedTerminal(t *testing.T) (*TerminalPlatform, tcell.SimulationScreen) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(40, 12)
	p := NewTerminalWithScreen(screen, nil)
	t.Cleanup(p.Dispose)
	p.PollEvents() // discard anything from initialization
	return p, screen
}

func TestTerminalKeys(t *testing.T) {
	p, screen := newSimulatedTerminal(t)

	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'S', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, '7', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	expected := []Event{
		KeyEvent{Key: KeyUpArrow},
		KeyEvent{Key: KeyP},
		KeyEvent{Key: KeyS},
		QuitEvent{},
		QuitEvent{},
		QuitEvent{},
	}
	if got := p.PollEvents(); !reflect.DeepEqual(got, expected) {
		t.Errorf("got events %v, expected %v", got, expected)
	}
}

func TestTerminalMouse(t *testing.T) {
	p, screen := newSimulatedTerminal(t)

	screen.InjectMouse(5, 3, tcell.Button1, tcell.ModNone)
	screen.InjectMouse(8, 4, tcell.Button1, tcell.ModNone)
	screen.InjectMouse(8, 4, tcell.ButtonNone, tcell.ModNone)
	screen.InjectMouse(10, 6, tcell.WheelUp, tcell.ModNone)
	screen.InjectMouse(10, 6, tcell.WheelDown, tcell.ModNone)

	expected := []Event{
		MouseMotionEvent{Pos: [2]int{5, 3}},
		MouseButtonEvent{Button: MouseButtonPrimary, Down: true, Pos: [2]int{5, 3}},
		MouseMotionEvent{Pos: [2]int{8, 4}},
		MouseButtonEvent{Button: MouseButtonPrimary, Down: false, Pos: [2]int{8, 4}},
		WheelEvent{Pos: [2]int{10, 6}, DeltaY: 1},
		MouseMotionEvent{Pos: [2]int{10, 6}},
		WheelEvent{Pos: [2]int{10, 6}, DeltaY: -1},
	}
	if got := p.PollEvents(); !reflect.DeepEqual(got, expected) {
		t.Errorf("got events %v\nexpected %v", got, expected)
	}
}

func TestTerminalStatusLine(t *testing.T) {
	p, screen := newSimulatedTerminal(t)

	if sz := p.WindowSize(); sz != [2]int{40, 11} {
		t.Errorf("got window size %v", sz)
	}
	if !p.IsFullScreen() {
		t.Errorf("terminal should always be fullscreen")
	}

	p.SetWindowTitle("Distance Threshold: 1.00 km")
	p.PostRender()

	var line []rune
	for x := range 27 {
		ch, _, _, _ := screen.GetContent(x, 11)
		line = append(line, ch)
	}
	if string(line) != "Distance Threshold: 1.00 km" {
		t.Errorf("got status line %q", string(line))
	}
}
