// pkg/platform/events.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

import "fmt"

// EventKind identifies the concrete type of an Event.
type EventKind int

const (
	EventQuit EventKind = iota
	EventWheel
	EventKey
	EventMouseButton
	EventMouseMotion
)

// Event is one user input event, as returned by Platform.PollEvents. The
// concrete type is one of the *Event structs below.
type Event interface {
	Kind() EventKind
}

// QuitEvent is delivered when the user asks to close the window.
type QuitEvent struct{}

// WheelEvent reports vertical scrolling; DeltaY > 0 is scrolling up. Pos
// is the mouse position at the time of the scroll.
type WheelEvent struct {
	Pos    [2]int
	DeltaY float32
}

// KeyEvent is delivered once for each key press (and again for key
// repeat); releases are not reported.
type KeyEvent struct {
	Key Key
}

type MouseButtonEvent struct {
	Button MouseButton
	Down   bool
	Pos    [2]int
}

type MouseMotionEvent struct {
	Pos [2]int
}

func (QuitEvent) Kind() EventKind        { return EventQuit }
func (WheelEvent) Kind() EventKind       { return EventWheel }
func (KeyEvent) Kind() EventKind         { return EventKey }
func (MouseButtonEvent) Kind() EventKind { return EventMouseButton }
func (MouseMotionEvent) Kind() EventKind { return EventMouseMotion }

func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "quit"
	case EventWheel:
		return "wheel"
	case EventKey:
		return "key"
	case EventMouseButton:
		return "mouse button"
	case EventMouseMotion:
		return "mouse motion"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// EventQueue accumulates events between calls to PollEvents; backends
// that deliver input via callbacks append to it.
type EventQueue struct {
	events []Event
}

func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Drain returns all queued events in arrival order and empties the queue.
func (q *EventQueue) Drain() []Event {
	ev := q.events
	q.events = nil
	return ev
}
