// pkg/renderer/renderer_test.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"
	gomath "math"
	"slices"
	"testing"

	"github.com/gdamore/tcell/v2"
)

type recordingExecutor struct {
	calls []string
}

func (r *recordingExecutor) ClearRGBA(c RGBA) {
	r.calls = append(r.calls, fmt.Sprintf("clear %v", c))
}
func (r *recordingExecutor) SetRGBA(c RGBA) {
	r.calls = append(r.calls, fmt.Sprintf("rgba %v", c))
}
func (r *recordingExecutor) Viewport(x, y, w, h int) {
	r.calls = append(r.calls, fmt.Sprintf("viewport %d %d %d %d", x, y, w, h))
}
func (r *recordingExecutor) Ortho2D(w, h int) {
	r.calls = append(r.calls, fmt.Sprintf("ortho %d %d", w, h))
}
func (r *recordingExecutor) DrawPoint(x, y int) {
	r.calls = append(r.calls, fmt.Sprintf("point %d %d", x, y))
}
func (r *recordingExecutor) DrawLine(x0, y0, x1, y1 int) {
	r.calls = append(r.calls, fmt.Sprintf("line %d %d %d %d", x0, y0, x1, y1))
}

func TestCommandBufferExecute(t *testing.T) {
	cb := GetCommandBuffer()
	defer ReturnCommandBuffer(cb)

	red := RGBAFromUInt8(255, 0, 0, 255)
	cb.ClearRGBA(RGBA{A: 1})
	cb.Viewport(0, 0, 200, 100)
	cb.Ortho2D(100, 50)
	cb.SetRGBA(red)
	cb.Point(3, -4)
	cb.Line(-10, 20, 30, 40)
	cb.Point(7, 8)

	var rec recordingExecutor
	stats := cb.Execute(&rec)

	expected := []string{
		fmt.Sprintf("clear %v", RGBA{A: 1}),
		"viewport 0 0 200 100",
		"ortho 100 50",
		fmt.Sprintf("rgba %v", red),
		"point 3 -4",
		"line -10 20 30 40",
		"point 7 8",
	}
	if !slices.Equal(rec.calls, expected) {
		t.Errorf("got calls %v, expected %v", rec.calls, expected)
	}
	if stats.Points != 2 || stats.Lines != 1 || stats.Buffers != 1 || stats.BufferBytes != 4*len(cb.Buf) {
		t.Errorf("unexpected stats %s", stats)
	}

	cb.Reset()
	rec.calls = nil
	if stats := cb.Execute(&rec); len(rec.calls) != 0 || stats.Points != 0 {
		t.Errorf("expected empty buffer to do nothing")
	}
}

func TestRGBA(t *testing.T) {
	c := RGBAFromUInt8(150, 0, 0, 150)
	r, g, b, a := c.UInt8()
	if r != 150 || g != 0 || b != 0 || a != 150 {
		t.Errorf("round trip gave %d %d %d %d", r, g, b, a)
	}

	pr, _, _, pa := c.Premultiplied().UInt8()
	if pr != 88 || pa != 255 {
		t.Errorf("premultiplied gave r %d a %d", pr, pa)
	}

	if r, _, _, _ := (RGBA{R: 2}).UInt8(); r != 255 {
		t.Errorf("out of range component should clamp, got %d", r)
	}
}

func TestClipLine(t *testing.T) {
	for _, test := range []struct {
		in  [4]float64
		out [4]float64
		ok  bool
	}{
		{in: [4]float64{1, 1, 5, 5}, out: [4]float64{1, 1, 5, 5}, ok: true},
		{in: [4]float64{-10, 5, 20, 5}, out: [4]float64{0, 5, 9, 5}, ok: true},
		{in: [4]float64{5, -10, 5, 20}, out: [4]float64{5, 0, 5, 9}, ok: true},
		{in: [4]float64{-5, -5, -1, -1}, ok: false},
		{in: [4]float64{20, 20, 20, 20}, ok: false},
		{in: [4]float64{3, 3, 3, 3}, out: [4]float64{3, 3, 3, 3}, ok: true},
	} {
		x0, y0, x1, y1, ok := clipLine(test.in[0], test.in[1], test.in[2], test.in[3], 0, 0, 9, 9)
		if ok != test.ok {
			t.Errorf("%v: got ok %v", test.in, ok)
			continue
		}
		got := [4]float64{x0, y0, x1, y1}
		for i := range got {
			if ok && gomath.Abs(got[i]-test.out[i]) > 1e-9 {
				t.Errorf("%v: got %v, expected %v", test.in, got, test.out)
				break
			}
		}
	}
}

func TestRasterizeLine(t *testing.T) {
	var cells [][2]int
	plot := func(x, y int) { cells = append(cells, [2]int{x, y}) }

	rasterizeLine(0, 0, 3, 3, 10, 10, plot)
	if !slices.Equal(cells, [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}) {
		t.Errorf("diagonal: got %v", cells)
	}

	cells = nil
	rasterizeLine(4, 2, 0, 2, 10, 10, plot)
	if !slices.Equal(cells, [][2]int{{4, 2}, {3, 2}, {2, 2}, {1, 2}, {0, 2}}) {
		t.Errorf("horizontal: got %v", cells)
	}

	// A very long line should only touch visible cells.
	cells = nil
	rasterizeLine(-1000000, 5, 1000000, 5, 10, 10, plot)
	if len(cells) != 10 {
		t.Errorf("long line: got %d cells, expected 10", len(cells))
	}

	cells = nil
	rasterizeLine(0, 0, 5, 5, 0, 0, plot)
	if len(cells) != 0 {
		t.Errorf("empty target: got %v", cells)
	}
}

func TestTerminalRenderer(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(20, 10)

	r := NewTerminalRenderer(screen, nil)
	defer r.Dispose()

	cb := GetCommandBuffer()
	defer ReturnCommandBuffer(cb)
	cb.ClearRGBA(RGBAFromUInt8(0, 0, 0, 255))
	cb.Ortho2D(20, 9)
	cb.SetRGBA(RGBAFromUInt8(0, 255, 0, 255))
	cb.Line(0, 0, 4, 0)
	cb.SetRGBA(RGBAFromUInt8(255, 0, 0, 255))
	cb.Point(10, 5)
	cb.Point(10, 9) // beyond the drawable area; the last row is left alone
	cb.Point(-1, 3)

	stats := r.RenderCommandBuffer(cb)
	if stats.Points != 3 || stats.Lines != 1 {
		t.Errorf("unexpected stats %s", stats)
	}

	for x := range 5 {
		ch, _, style, _ := screen.GetContent(x, 0)
		fg, bg, _ := style.Decompose()
		if ch != terminalLineRune || fg != tcell.NewRGBColor(0, 255, 0) || bg != tcell.NewRGBColor(0, 0, 0) {
			t.Errorf("(%d,0): got %q fg %v bg %v", x, ch, fg, bg)
		}
	}
	if ch, _, _, _ := screen.GetContent(5, 0); ch != ' ' {
		t.Errorf("(5,0): got %q, expected blank", ch)
	}

	ch, _, style, _ := screen.GetContent(10, 5)
	if fg, _, _ := style.Decompose(); ch != terminalPointRune || fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("(10,5): got %q fg %v", ch, fg)
	}
	if ch, _, _, _ := screen.GetContent(10, 9); ch == terminalPointRune {
		t.Errorf("point drawn into the status row")
	}
}
