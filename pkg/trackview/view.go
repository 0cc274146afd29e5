// pkg/trackview/view.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package trackview draws a track as an interactive 2D map: it maps
// geographic positions to the window, classifies segments by implied
// speed, and updates the pan/zoom state in response to user input.
package trackview

import (
	"fmt"
	"log/slog"
)

const (
	// ZoomFactor is the scale change for one notch of the mouse wheel.
	ZoomFactor = 1.1
	// ThresholdFactor is the change in the distance threshold for one
	// press of the up or down arrow key.
	ThresholdFactor = 1.1
	// MinDistanceKm is the smallest distance threshold the down arrow
	// will go to.
	MinDistanceKm = 0.1
	// DefaultDistanceKm is the initial distance threshold.
	DefaultDistanceKm = 1
	// MaxScale bounds zooming in so that projected coordinates of
	// on-screen geometry stay well within int32.
	MaxScale = 1e5
)

// ViewState holds everything that the user can change about how the
// track is displayed. It is owned by the frame loop and passed by value
// to the input handlers, which return an updated copy.
type ViewState struct {
	// Scale multiplies the fitted track size; it is always positive.
	Scale float64
	// OffsetX and OffsetY translate the drawing, in window units.
	OffsetX, OffsetY int
	// MaxDistanceKm is the longest segment that is drawn; longer ones
	// are treated as gaps in recording.
	MaxDistanceKm float64

	DrawPoints bool
	ColorLines bool
	FullScreen bool

	Dragging    bool
	LastPointer [2]int
}

// NewViewState returns the initial view: the whole track fitted to the
// window, drawn as white lines.
func NewViewState(maxDistanceKm float64, fullscreen bool) ViewState {
	if maxDistanceKm <= 0 {
		maxDistanceKm = DefaultDistanceKm
	}
	return ViewState{
		Scale:         1,
		MaxDistanceKm: maxDistanceKm,
		FullScreen:    fullscreen,
	}
}

// StatusLines returns the messages describing the current display modes,
// one per line.
func (vs ViewState) StatusLines() []string {
	var lines []string
	if vs.DrawPoints {
		lines = append(lines, "Drawing points")
	} else {
		lines = append(lines, "Drawing lines")
	}
	if vs.ColorLines {
		lines = append(lines, "Color coding lines")
	} else {
		lines = append(lines, "Default line color")
	}
	if vs.FullScreen {
		lines = append(lines, "Fullscreen mode")
	} else {
		lines = append(lines, "Windowed mode")
	}
	return append(lines, fmt.Sprintf("Distance Threshold: %.6g km", vs.MaxDistanceKm))
}

// Title returns a one-line summary of the view suitable for a window
// title or status bar.
func (vs ViewState) Title() string {
	mode := "lines"
	if vs.DrawPoints {
		mode = "points"
	} else if vs.ColorLines {
		mode = "speed"
	}
	return fmt.Sprintf("GPX Track Visualizer - %s - zoom %.2fx - threshold %.2f km", mode, vs.Scale, vs.MaxDistanceKm)
}

func (vs ViewState) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("scale", vs.Scale),
		slog.Int("offset_x", vs.OffsetX),
		slog.Int("offset_y", vs.OffsetY),
		slog.Float64("max_distance_km", vs.MaxDistanceKm),
		slog.Bool("draw_points", vs.DrawPoints),
		slog.Bool("color_lines", vs.ColorLines),
		slog.Bool("fullscreen", vs.FullScreen),
	)
}
