// pkg/renderer/commandbuffer.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	gomath "math"
	"sync"
)

// The command buffer stores a series of rendering commands, represented by
// the following values. Each one is followed in the buffer by a number of
// command arguments, after which the next command follows. Comments after
// each command briefly describe its arguments.
const (
	RendererClearRGBA = iota // 4 float32: RGBA
	RendererSetRGBA          // 4 float32: RGBA
	RendererViewport         // 4 int32: x, y, width, height
	RendererOrtho2D          // 2 int32: width, height
	RendererPoint            // 2 int32: x, y
	RendererLine             // 4 int32: x0, y0, x1, y1
)

// CommandBuffer encodes a sequence of rendering commands in an
// API-agnostic manner, so that the track view can be drawn the same way
// regardless of which backend ends up executing it.
type CommandBuffer struct {
	Buf []uint32
}

// CommandBuffers are managed using a sync.Pool so that their buf slice
// allocations persist across multiple uses.
var commandBufferPool = sync.Pool{New: func() any { return &CommandBuffer{} }}

func GetCommandBuffer() *CommandBuffer {
	return commandBufferPool.Get().(*CommandBuffer)
}

func ReturnCommandBuffer(cb *CommandBuffer) {
	cb.Reset()
	commandBufferPool.Put(cb)
}

// Reset resets the command buffer's length to zero so that it can be
// reused.
func (cb *CommandBuffer) Reset() {
	cb.Buf = cb.Buf[:0]
}

// growFor ensures that at least n more values can be added to the end of
// the buffer without going past its capacity.
func (cb *CommandBuffer) growFor(n int) {
	if len(cb.Buf)+n > cap(cb.Buf) {
		sz := max(2*cap(cb.Buf), 1024, 2*(len(cb.Buf)+n))
		b := make([]uint32, len(cb.Buf), sz)
		copy(b, cb.Buf)
		cb.Buf = b
	}
}

func (cb *CommandBuffer) appendFloats(floats ...float32) {
	for _, f := range floats {
		// Convert each one to a uint32 since that's the type that is
		// actually stored...
		cb.Buf = append(cb.Buf, gomath.Float32bits(f))
	}
}

func (cb *CommandBuffer) appendInts(ints ...int) {
	cb.growFor(len(ints))
	for _, i := range ints {
		if i != int(int32(i)) {
			lg.Errorf("%d: attempting to add non-32-bit value to CommandBuffer", i)
		}
		cb.Buf = append(cb.Buf, uint32(int32(i)))
	}
}

// ClearRGBA adds a command to the command buffer to clear the framebuffer
// to the specified color.
func (cb *CommandBuffer) ClearRGBA(color RGBA) {
	cb.appendInts(RendererClearRGBA)
	cb.appendFloats(color.R, color.G, color.B, color.A)
}

// SetRGBA adds a command to the command buffer to set the current RGBA
// color. Subsequent draw commands will use this color.
func (cb *CommandBuffer) SetRGBA(rgba RGBA) {
	cb.appendInts(RendererSetRGBA)
	cb.appendFloats(rgba.R, rgba.G, rgba.B, rgba.A)
}

// Viewport adds a command to the command buffer to set the viewport to the
// specified rectangle, given in framebuffer pixels.
func (cb *CommandBuffer) Viewport(x, y, w, h int) {
	cb.appendInts(RendererViewport, x, y, w, h)
}

// Ortho2D adds a command to the command buffer that establishes a
// coordinate system where (0,0) is the upper-left corner of the viewport
// and (w,h) is the lower-right.
func (cb *CommandBuffer) Ortho2D(w, h int) {
	cb.appendInts(RendererOrtho2D, w, h)
}

// Point adds a command to draw a single point at (x,y).
func (cb *CommandBuffer) Point(x, y int) {
	cb.appendInts(RendererPoint, x, y)
}

// Line adds a command to draw a line from (x0,y0) to (x1,y1).
func (cb *CommandBuffer) Line(x0, y0, x1, y1 int) {
	cb.appendInts(RendererLine, x0, y0, x1, y1)
}

// Execute decodes the commands in the buffer and issues them in order to
// the provided Executor. The returned stats count the buffer and the
// primitives; draw calls are left to the caller, since only it knows how
// it batched them.
func (cb *CommandBuffer) Execute(e Executor) RendererStats {
	var stats RendererStats
	stats.Buffers++
	stats.BufferBytes += 4 * len(cb.Buf)

	i := 0
	i32 := func() int {
		v := int32(cb.Buf[i])
		i++
		return int(v)
	}
	rgba := func() RGBA {
		c := RGBA{
			R: gomath.Float32frombits(cb.Buf[i]),
			G: gomath.Float32frombits(cb.Buf[i+1]),
			B: gomath.Float32frombits(cb.Buf[i+2]),
			A: gomath.Float32frombits(cb.Buf[i+3]),
		}
		i += 4
		return c
	}

	for i < len(cb.Buf) {
		cmd := cb.Buf[i]
		i++
		switch cmd {
		case RendererClearRGBA:
			e.ClearRGBA(rgba())

		case RendererSetRGBA:
			e.SetRGBA(rgba())

		case RendererViewport:
			x := i32()
			y := i32()
			w := i32()
			h := i32()
			e.Viewport(x, y, w, h)

		case RendererOrtho2D:
			w := i32()
			h := i32()
			e.Ortho2D(w, h)

		case RendererPoint:
			x := i32()
			y := i32()
			e.DrawPoint(x, y)
			stats.Points++

		case RendererLine:
			x0 := i32()
			y0 := i32()
			x1 := i32()
			y1 := i32()
			e.DrawLine(x0, y0, x1, y1)
			stats.Lines++

		default:
			lg.Errorf("%d: unhandled command", cmd)
			return stats
		}
	}

	return stats
}
