// pkg/renderer/ogl2.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"

	"github.com/trackplot/gpxview/pkg/log"

	"github.com/go-gl/gl/v2.1/gl"
)

// OpenGL2Renderer draws using the OpenGL 2.1 fixed-function pipeline.
// Consecutive points or lines of the same color are batched into a
// single vertex array and drawn with one glDrawArrays call.
type OpenGL2Renderer struct {
	lg *log.Logger

	mode      uint32 // gl.POINTS or gl.LINES for the pending batch
	vertices  []int32
	drawCalls int
}

// NewOpenGL2Renderer initializes OpenGL; the caller must already have
// made an OpenGL context current.
func NewOpenGL2Renderer(l *log.Logger) (Renderer, error) {
	lg = l

	lg.Info("Starting OpenGL2Renderer initialization")
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	lg.Infof("OpenGL vendor %s renderer %s version %s", gl.GoStr(gl.GetString(gl.VENDOR)),
		gl.GoStr(gl.GetString(gl.RENDERER)), gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.PointSize(1)
	gl.LineWidth(1)

	lg.Info("Finished OpenGL2Renderer initialization")
	return &OpenGL2Renderer{lg: lg}, nil
}

func (ogl2 *OpenGL2Renderer) Dispose() {
	gl.DisableClientState(gl.VERTEX_ARRAY)
}

func (ogl2 *OpenGL2Renderer) RenderCommandBuffer(cb *CommandBuffer) RendererStats {
	ogl2.drawCalls = 0
	stats := cb.Execute(ogl2)
	ogl2.flush()
	stats.DrawCalls = ogl2.drawCalls
	return stats
}

// flush draws any pending batch of vertices.
func (ogl2 *OpenGL2Renderer) flush() {
	if len(ogl2.vertices) == 0 {
		return
	}

	gl.EnableClientState(gl.VERTEX_ARRAY)
	gl.VertexPointer(2, gl.INT, 0, gl.Ptr(ogl2.vertices))
	gl.DrawArrays(ogl2.mode, 0, int32(len(ogl2.vertices)/2))
	gl.DisableClientState(gl.VERTEX_ARRAY)

	ogl2.drawCalls++
	ogl2.vertices = ogl2.vertices[:0]
}

func (ogl2 *OpenGL2Renderer) batch(mode uint32) {
	if mode != ogl2.mode {
		ogl2.flush()
		ogl2.mode = mode
	}
}

func (ogl2 *OpenGL2Renderer) ClearRGBA(c RGBA) {
	ogl2.flush()
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (ogl2 *OpenGL2Renderer) SetRGBA(c RGBA) {
	ogl2.flush()
	gl.Color4f(c.R, c.G, c.B, c.A)
}

func (ogl2 *OpenGL2Renderer) Viewport(x, y, w, h int) {
	ogl2.flush()
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
}

func (ogl2 *OpenGL2Renderer) Ortho2D(w, h int) {
	ogl2.flush()
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(0, float64(w), float64(h), 0, -1, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()
}

func (ogl2 *OpenGL2Renderer) DrawPoint(x, y int) {
	ogl2.batch(gl.POINTS)
	ogl2.vertices = append(ogl2.vertices, int32(x), int32(y))
}

func (ogl2 *OpenGL2Renderer) DrawLine(x0, y0, x1, y1 int) {
	ogl2.batch(gl.LINES)
	ogl2.vertices = append(ogl2.vertices, int32(x0), int32(y0), int32(x1), int32(y1))
}
