// pkg/renderer/terminal.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	gomath "math"

	"github.com/trackplot/gpxview/pkg/log"

	"github.com/gdamore/tcell/v2"
)

const (
	terminalPointRune = '•'
	terminalLineRune  = '█'
)

// TerminalRenderer rasterizes command buffers into the cells of a tcell
// screen, one cell per unit of the Ortho2D coordinate system. The
// terminal platform owns the screen and shows it after each frame.
type TerminalRenderer struct {
	screen tcell.Screen
	lg     *log.Logger

	background tcell.Color
	style      tcell.Style
	width      int
	height     int
}

func NewTerminalRenderer(screen tcell.Screen, l *log.Logger) Renderer {
	lg = l
	w, h := screen.Size()
	return &TerminalRenderer{
		screen:     screen,
		lg:         l,
		background: tcell.ColorBlack,
		style:      tcell.StyleDefault,
		width:      w,
		height:     h,
	}
}

func (tr *TerminalRenderer) Dispose() {}

func (tr *TerminalRenderer) RenderCommandBuffer(cb *CommandBuffer) RendererStats {
	stats := cb.Execute(tr)
	stats.DrawCalls = stats.Points + stats.Lines
	return stats
}

func terminalColor(c RGBA) tcell.Color {
	r, g, b, _ := c.Premultiplied().UInt8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (tr *TerminalRenderer) ClearRGBA(c RGBA) {
	tr.background = terminalColor(c)
	tr.screen.Fill(' ', tcell.StyleDefault.Background(tr.background))
}

func (tr *TerminalRenderer) SetRGBA(c RGBA) {
	tr.style = tcell.StyleDefault.Foreground(terminalColor(c)).Background(tr.background)
}

func (tr *TerminalRenderer) Viewport(x, y, w, h int) {}

// Ortho2D sets the region that may be drawn into; anything outside of it
// (and outside of the screen) is clipped.
func (tr *TerminalRenderer) Ortho2D(w, h int) {
	sw, sh := tr.screen.Size()
	tr.width, tr.height = min(w, sw), min(h, sh)
}

func (tr *TerminalRenderer) DrawPoint(x, y int) {
	if x >= 0 && x < tr.width && y >= 0 && y < tr.height {
		tr.screen.SetContent(x, y, terminalPointRune, nil, tr.style)
	}
}

func (tr *TerminalRenderer) DrawLine(x0, y0, x1, y1 int) {
	rasterizeLine(x0, y0, x1, y1, tr.width, tr.height, func(x, y int) {
		tr.screen.SetContent(x, y, terminalLineRune, nil, tr.style)
	})
}

// rasterizeLine calls plot for each cell along the line from (x0,y0) to
// (x1,y1) that is inside [0,w)x[0,h). The line is clipped first so that
// the work done is proportional to the visible length when zoomed in.
func rasterizeLine(x0, y0, x1, y1, w, h int, plot func(x, y int)) {
	if w <= 0 || h <= 0 {
		return
	}
	fx0, fy0, fx1, fy1, ok := clipLine(float64(x0), float64(y0), float64(x1), float64(y1),
		0, 0, float64(w-1), float64(h-1))
	if !ok {
		return
	}
	x0, y0 = int(gomath.Round(fx0)), int(gomath.Round(fy0))
	x1, y1 = int(gomath.Round(fx1)), int(gomath.Round(fy1))

	// Bresenham
	dx, dy := x1-x0, -(y1 - y0)
	if dx < 0 {
		dx = -dx
	}
	if dy > 0 {
		dy = -dy
	}
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if x0 >= 0 && x0 < w && y0 >= 0 && y0 < h {
			plot(x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// clipLine clips the segment against the rectangle [xmin,xmax]x[ymin,ymax]
// using the Liang-Barsky algorithm; ok is false if nothing remains.
func clipLine(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	t0, t1 := 0., 1.
	dx, dy := x1-x0, y1-y0

	for _, pq := range [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	} {
		p, q := pq[0], pq[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, t)
		}
	}

	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
