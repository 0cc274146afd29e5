// pkg/renderer/rgb.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"github.com/trackplot/gpxview/pkg/math"
)

///////////////////////////////////////////////////////////////////////////
// RGBA

type RGBA struct {
	R, G, B, A float32
}

func RGBAFromUInt8(r, g, b, a uint8) RGBA {
	return RGBA{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255, A: float32(a) / 255}
}

// UInt8 returns the color's components scaled to [0,255].
func (c RGBA) UInt8() (r, g, b, a uint8) {
	cvt := func(v float32) uint8 {
		return uint8(math.Clamp(v, 0, 1)*255 + 0.5)
	}
	return cvt(c.R), cvt(c.G), cvt(c.B), cvt(c.A)
}

// Premultiplied returns the color that results from compositing c over
// black; it is used by backends that cannot blend.
func (c RGBA) Premultiplied() RGBA {
	return RGBA{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: 1}
}
