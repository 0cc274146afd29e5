// pkg/track/track.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package track holds the immutable, ordered sequence of positions that
// gpxview draws, along with the quantities derived from it that the
// renderer needs every frame.
package track

import (
	"log/slog"

	"github.com/trackplot/gpxview/pkg/math"
)

// Track is an ordered sequence of positions; adjacent points form the
// path. It must not be modified after New returns it.
type Track struct {
	points []math.GeoPoint
	bounds math.Extent
	// segmentKm[i] is the distance between points[i] and points[i+1].
	segmentKm []float64
}

// New returns a Track holding pts in the given order. The slice is not
// copied; the caller must not modify it afterward.
func New(pts []math.GeoPoint) *Track {
	t := &Track{
		points: pts,
		bounds: math.ExtentFromPoints(pts),
	}
	if len(pts) > 1 {
		t.segmentKm = make([]float64, len(pts)-1)
		for i := range t.segmentKm {
			t.segmentKm[i] = math.DistanceKm(pts[i], pts[i+1])
		}
	}
	return t
}

func (t *Track) Len() int {
	return len(t.points)
}

// Point returns the i-th point of the track.
func (t *Track) Point(i int) math.GeoPoint {
	return t.points[i]
}

// Bounds returns the latitude-longitude bounding box of all of the
// track's points.
func (t *Track) Bounds() math.Extent {
	return t.bounds
}

// NumSegments returns the number of segments between adjacent points.
func (t *Track) NumSegments() int {
	return len(t.segmentKm)
}

// SegmentKm returns the great-circle length of the segment from point i
// to point i+1.
func (t *Track) SegmentKm(i int) float64 {
	return t.segmentKm[i]
}

// TotalKm returns the summed length of all segments no longer than
// maxSegmentKm; longer segments are gaps and aren't counted.
func (t *Track) TotalKm(maxSegmentKm float64) float64 {
	var sum float64
	for _, d := range t.segmentKm {
		if d <= maxSegmentKm {
			sum += d
		}
	}
	return sum
}

func (t *Track) LogValue() slog.Value {
	b := t.bounds
	return slog.GroupValue(
		slog.Int("points", len(t.points)),
		slog.Group("bounds",
			slog.String("sw", math.GeoPoint{Lat: b.MinLat, Lon: b.MinLon}.DDString()),
			slog.String("ne", math.GeoPoint{Lat: b.MaxLat, Lon: b.MaxLon}.DDString())),
	)
}
