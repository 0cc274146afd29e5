// pkg/math/latlong.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	gomath "math"
)

// EarthRadiusKm is the mean radius of the sphere used for great-circle
// distances.
const EarthRadiusKm = 6371

///////////////////////////////////////////////////////////////////////////
// GeoPoint

// GeoPoint is a position on the Earth in decimal degrees. Values are not
// range-checked; whatever the track file says is what we draw.
type GeoPoint struct {
	Lat float64 `msgpack:"lat"`
	Lon float64 `msgpack:"lon"`
}

// DDString returns the position in decimal degrees, e.g.:
// (39.860901, -75.274864)
func (p GeoPoint) DDString() string {
	return fmt.Sprintf("(%f, %f)", p.Lat, p.Lon)
}

// DistanceKm returns the great-circle distance between a and b using the
// haversine formula.
// https://www.movable-type.co.uk/scripts/latlong.html
func DistanceKm(a, b GeoPoint) float64 {
	lat1, lon1 := Radians(a.Lat), Radians(a.Lon)
	lat2, lon2 := Radians(b.Lat), Radians(b.Lon)
	dlat, dlon := lat2-lat1, lon2-lon1

	h := Sqr(gomath.Sin(dlat/2)) + gomath.Cos(lat1)*gomath.Cos(lat2)*Sqr(gomath.Sin(dlon/2))
	// Rounding can push h a hair outside [0,1] for antipodal points.
	h = Clamp(h, 0, 1)
	c := 2 * gomath.Atan2(gomath.Sqrt(h), gomath.Sqrt(1-h))
	return EarthRadiusKm * c
}

///////////////////////////////////////////////////////////////////////////
// Extent

// Extent is an axis-aligned latitude-longitude bounding box.
type Extent struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// EmptyExtent returns an extent that contains nothing; adding any point
// to it gives a zero-area extent at that point.
func EmptyExtent() Extent {
	return Extent{
		MinLat: gomath.Inf(1), MaxLat: gomath.Inf(-1),
		MinLon: gomath.Inf(1), MaxLon: gomath.Inf(-1),
	}
}

func ExtentFromPoints(pts []GeoPoint) Extent {
	if len(pts) == 0 {
		return Extent{}
	}
	e := EmptyExtent()
	for _, p := range pts {
		e = e.Union(p)
	}
	return e
}

// Union returns the smallest extent that includes both e and p.
func (e Extent) Union(p GeoPoint) Extent {
	e.MinLat = Min(e.MinLat, p.Lat)
	e.MaxLat = Max(e.MaxLat, p.Lat)
	e.MinLon = Min(e.MinLon, p.Lon)
	e.MaxLon = Max(e.MaxLon, p.Lon)
	return e
}

func (e Extent) Width() float64 {
	return e.MaxLon - e.MinLon
}

func (e Extent) Height() float64 {
	return e.MaxLat - e.MinLat
}

func (e Extent) Inside(p GeoPoint) bool {
	return p.Lat >= e.MinLat && p.Lat <= e.MaxLat && p.Lon >= e.MinLon && p.Lon <= e.MaxLon
}
