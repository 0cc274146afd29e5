// pkg/trackview/transform.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package trackview

import (
	"github.com/trackplot/gpxview/pkg/math"
)

// Project maps a position to window coordinates. The bounding box is
// stretched to fill width x height (latitude and longitude are scaled
// independently), then scaled and offset. North is up. An axis along
// which the box has no extent maps to the middle of the window.
func Project(p math.GeoPoint, box math.Extent, scale float64, offsetX, offsetY int, width, height int) (x, y int) {
	fx, fy := 0.5, 0.5
	if w := box.Width(); w != 0 {
		fx = (p.Lon - box.MinLon) / w
	}
	if h := box.Height(); h != 0 {
		fy = 1 - (p.Lat-box.MinLat)/h
	}
	return int(fx*float64(width)*scale) + offsetX, int(fy*float64(height)*scale) + offsetY
}

// ZoomAt returns the offset that keeps the point under the window
// position (px, py) fixed when the scale changes from prevScale to
// newScale.
func ZoomAt(px, py int, prevScale, newScale float64, offsetX, offsetY int) (int, int) {
	if prevScale == newScale {
		return offsetX, offsetY
	}
	vx := float64(px-offsetX) / prevScale
	vy := float64(py-offsetY) / prevScale
	return px - int(vx*newScale), py - int(vy*newScale)
}
