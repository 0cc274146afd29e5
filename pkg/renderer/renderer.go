// pkg/renderer/renderer.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"
	"log/slog"

	"github.com/trackplot/gpxview/pkg/log"
)

// Also available as a global, though only used by CommandBuffer
var lg *log.Logger

// Renderer defines an interface for all of the drawing that happens in
// gpxview. There are three implementations: OpenGL2Renderer, which draws
// into a GLFW window's context, SDLRenderer, which uses SDL's 2D renderer,
// and TerminalRenderer, which rasterizes into the cells of a tcell screen.
type Renderer interface {
	// RenderCommandBuffer executes all of the commands encoded in the
	// provided command buffer, returning statistics about what was
	// rendered.
	RenderCommandBuffer(*CommandBuffer) RendererStats

	// Dispose releases resources allocated by the renderer.
	Dispose()
}

// Executor is implemented by backends that draw one primitive at a time;
// CommandBuffer.Execute decodes a buffer into calls to its methods.
// Coordinates are in the units given by the most recent Ortho2D call,
// with (0,0) at the upper left.
type Executor interface {
	ClearRGBA(c RGBA)
	SetRGBA(c RGBA)
	Viewport(x, y, w, h int)
	Ortho2D(w, h int)
	DrawPoint(x, y int)
	DrawLine(x0, y0, x1, y1 int)
}

// RendererStats encapsulates assorted statistics from rendering.
type RendererStats struct {
	Buffers, BufferBytes int
	DrawCalls            int
	Points, Lines        int
}

func (rs RendererStats) String() string {
	return fmt.Sprintf("%d buffers (%.2f MB), %d draw calls: %d points, %d lines",
		rs.Buffers, float32(rs.BufferBytes)/(1024*1024), rs.DrawCalls, rs.Points, rs.Lines)
}

func (rs *RendererStats) Merge(s RendererStats) {
	rs.Buffers += s.Buffers
	rs.BufferBytes += s.BufferBytes
	rs.DrawCalls += s.DrawCalls
	rs.Points += s.Points
	rs.Lines += s.Lines
}

func (rs RendererStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("buffers", rs.Buffers),
		slog.Int("buffer_memory", rs.BufferBytes),
		slog.Int("draw_calls", rs.DrawCalls),
		slog.Int("points_drawn", rs.Points),
		slog.Int("lines", rs.Lines),
	)
}
