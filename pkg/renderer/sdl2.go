// pkg/renderer/sdl2.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"github.com/trackplot/gpxview/pkg/log"

	"github.com/veandco/go-sdl2/sdl"
)

// SDLRenderer executes command buffers using SDL's 2D rendering API. The
// sdl.Renderer itself is owned by the SDL platform, which presents it.
type SDLRenderer struct {
	r  *sdl.Renderer
	lg *log.Logger

	// Only the first error from SDL is logged; they tend to repeat
	// every frame otherwise.
	reported bool
}

func NewSDLRenderer(r *sdl.Renderer, l *log.Logger) (Renderer, error) {
	lg = l

	if info, err := r.GetInfo(); err == nil {
		lg.Infof("SDL renderer %s", info.Name)
	}
	if err := r.SetDrawBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		return nil, err
	}
	return &SDLRenderer{r: r, lg: lg}, nil
}

func (sr *SDLRenderer) Dispose() {}

func (sr *SDLRenderer) RenderCommandBuffer(cb *CommandBuffer) RendererStats {
	stats := cb.Execute(sr)
	stats.DrawCalls = stats.Points + stats.Lines
	return stats
}

func (sr *SDLRenderer) check(err error) {
	if err != nil && !sr.reported {
		sr.lg.Errorf("SDL renderer: %v", err)
		sr.reported = true
	}
}

func (sr *SDLRenderer) ClearRGBA(c RGBA) {
	sr.SetRGBA(c)
	sr.check(sr.r.Clear())
}

func (sr *SDLRenderer) SetRGBA(c RGBA) {
	r, g, b, a := c.UInt8()
	sr.check(sr.r.SetDrawColor(r, g, b, a))
}

// Viewport is a no-op: SDL always renders to the entire output and
// Ortho2D takes care of the mapping from window coordinates.
func (sr *SDLRenderer) Viewport(x, y, w, h int) {}

func (sr *SDLRenderer) Ortho2D(w, h int) {
	ow, oh, err := sr.r.GetOutputSize()
	if err != nil || w <= 0 || h <= 0 {
		sr.check(err)
		return
	}
	// On high-DPI displays the output is larger than the window.
	sr.check(sr.r.SetScale(float32(ow)/float32(w), float32(oh)/float32(h)))
}

func (sr *SDLRenderer) DrawPoint(x, y int) {
	sr.check(sr.r.DrawPoint(int32(x), int32(y)))
}

func (sr *SDLRenderer) DrawLine(x0, y0, x1, y1 int) {
	sr.check(sr.r.DrawLine(int32(x0), int32(y0), int32(x1), int32(y1)))
}
