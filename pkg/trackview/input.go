// pkg/trackview/input.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package trackview

import (
	"fmt"
	"io"
	"strings"

	"github.com/trackplot/gpxview/pkg/log"
	"github.com/trackplot/gpxview/pkg/math"
	"github.com/trackplot/gpxview/pkg/platform"
)

type eventHandler func(vs ViewState, e platform.Event) ViewState

// eventHandlers gives the ViewState update for each kind of event. Quit
// is handled by the Controller itself since it doesn't affect the view.
var eventHandlers = map[platform.EventKind]eventHandler{
	platform.EventWheel:       handleWheel,
	platform.EventKey:         handleKey,
	platform.EventMouseButton: handleMouseButton,
	platform.EventMouseMotion: handleMouseMotion,
}

var keyHandlers = map[platform.Key]func(ViewState) ViewState{
	platform.KeyUpArrow: func(vs ViewState) ViewState {
		vs.MaxDistanceKm *= ThresholdFactor
		return vs
	},
	platform.KeyDownArrow: func(vs ViewState) ViewState {
		vs.MaxDistanceKm = math.Max(MinDistanceKm, vs.MaxDistanceKm/ThresholdFactor)
		return vs
	},
	platform.KeyP: func(vs ViewState) ViewState {
		vs.DrawPoints = !vs.DrawPoints
		return vs
	},
	platform.KeyS: func(vs ViewState) ViewState {
		vs.ColorLines = !vs.ColorLines
		return vs
	},
	platform.KeyF: func(vs ViewState) ViewState {
		vs.FullScreen = !vs.FullScreen
		return vs
	},
}

func handleWheel(vs ViewState, e platform.Event) ViewState {
	w := e.(platform.WheelEvent)
	prevScale := vs.Scale
	if w.DeltaY > 0 {
		vs.Scale = math.Min(vs.Scale*ZoomFactor, MaxScale)
	} else if w.DeltaY < 0 {
		vs.Scale /= ZoomFactor
	}
	vs.OffsetX, vs.OffsetY = ZoomAt(w.Pos[0], w.Pos[1], prevScale, vs.Scale, vs.OffsetX, vs.OffsetY)
	return vs
}

func handleKey(vs ViewState, e platform.Event) ViewState {
	if h, ok := keyHandlers[e.(platform.KeyEvent).Key]; ok {
		return h(vs)
	}
	return vs
}

func handleMouseButton(vs ViewState, e platform.Event) ViewState {
	b := e.(platform.MouseButtonEvent)
	if b.Button != platform.MouseButtonPrimary {
		return vs
	}
	vs.Dragging = b.Down
	if b.Down {
		vs.LastPointer = b.Pos
	}
	return vs
}

func handleMouseMotion(vs ViewState, e platform.Event) ViewState {
	if !vs.Dragging {
		return vs
	}
	pos := e.(platform.MouseMotionEvent).Pos
	vs.OffsetX += pos[0] - vs.LastPointer[0]
	vs.OffsetY += pos[1] - vs.LastPointer[1]
	vs.LastPointer = pos
	return vs
}

// Controller applies input events to a ViewState. After each key press
// it reports the display modes to its status writer.
type Controller struct {
	status io.Writer
	lg     *log.Logger
	quit   bool
}

// NewController returns a Controller that writes status messages to
// status, which may be nil.
func NewController(status io.Writer, lg *log.Logger) *Controller {
	if status == nil {
		status = io.Discard
	}
	return &Controller{status: status, lg: lg}
}

// Apply returns the view state that results from handling e.
func (c *Controller) Apply(vs ViewState, e platform.Event) ViewState {
	if e.Kind() == platform.EventQuit {
		c.quit = true
		return vs
	}

	h, ok := eventHandlers[e.Kind()]
	if !ok {
		return vs
	}
	vs = h(vs, e)

	if e.Kind() == platform.EventKey {
		status := vs.StatusLines()
		fmt.Fprintln(c.status, strings.Join(status, "\n"))
		c.lg.Debug("input", "event", e.Kind().String(), "key", e.(platform.KeyEvent).Key.String(), "view", vs)
	}
	return vs
}

// ApplyAll handles the events in order, stopping after a QuitEvent.
func (c *Controller) ApplyAll(vs ViewState, events []platform.Event) ViewState {
	for _, e := range events {
		if vs = c.Apply(vs, e); c.quit {
			break
		}
	}
	return vs
}

// QuitRequested reports whether a QuitEvent has been handled.
func (c *Controller) QuitRequested() bool {
	return c.quit
}
