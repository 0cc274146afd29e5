// pkg/trackview/render.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package trackview

import (
	gomath "math"

	"github.com/trackplot/gpxview/pkg/renderer"
	"github.com/trackplot/gpxview/pkg/track"
)

var (
	ClearColor = renderer.RGBAFromUInt8(0, 0, 0, 255)
	PointColor = renderer.RGBAFromUInt8(255, 0, 0, 255)
	LineColor  = renderer.RGBAFromUInt8(255, 255, 255, 255)
)

// RenderFrame adds the commands to draw the track with the given view
// into a width x height window to cb. In point mode each track point is
// drawn; otherwise each segment no longer than the view's distance
// threshold is drawn as a line, colored by speed if requested.
func RenderFrame(cb *renderer.CommandBuffer, tr *track.Track, vs ViewState, width, height int) {
	cb.ClearRGBA(ClearColor)

	box := tr.Bounds()
	project := func(i int) (int, int) {
		return Project(tr.Point(i), box, vs.Scale, vs.OffsetX, vs.OffsetY, width, height)
	}

	if vs.DrawPoints {
		cb.SetRGBA(PointColor)
		for i := range tr.Len() {
			if x, y := project(i); fitsInt32(x, y) {
				cb.Point(x, y)
			}
		}
		return
	}

	// Only emit a color change when it differs from the previous
	// segment's, so that backends can batch runs of lines.
	var current renderer.RGBA
	haveColor := false
	for i := range tr.NumSegments() {
		d := tr.SegmentKm(i)
		if d > vs.MaxDistanceKm {
			continue
		}

		x0, y0 := project(i)
		x1, y1 := project(i + 1)
		if !fitsInt32(x0, y0, x1, y1) {
			// Far off screen after panning a deep zoom.
			continue
		}

		color := LineColor
		if vs.ColorLines {
			color = ColorFor(d).RGBA()
		}
		if !haveColor || color != current {
			cb.SetRGBA(color)
			current, haveColor = color, true
		}
		cb.Line(x0, y0, x1, y1)
	}
}

// fitsInt32 reports whether all of the coordinates can be stored in a
// CommandBuffer.
func fitsInt32(v ...int) bool {
	for _, c := range v {
		if c < gomath.MinInt32 || c > gomath.MaxInt32 {
			return false
		}
	}
	return true
}
