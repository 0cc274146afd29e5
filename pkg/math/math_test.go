// pkg/math/math_test.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
	"testing"
)

var testPoints = []GeoPoint{
	{Lat: 0, Lon: 0},
	{Lat: 0, Lon: 0.001},
	{Lat: 40.6328888, Lon: -73.771385}, // JFK VOR
	{Lat: 51.4775, Lon: -0.461389},     // LHR
	{Lat: -33.946111, Lon: 151.177222}, // SYD
	{Lat: 90, Lon: 0},
	{Lat: -90, Lon: 180},
	{Lat: 12.5, Lon: -180},
}

func TestDistanceKmIdentity(t *testing.T) {
	for _, p := range testPoints {
		if d := DistanceKm(p, p); d != 0 {
			t.Errorf("%s: distance to itself %g, expected 0", p.DDString(), d)
		}
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	for _, a := range testPoints {
		for _, b := range testPoints {
			ab, ba := DistanceKm(a, b), DistanceKm(b, a)
			if gomath.Abs(ab-ba) > 1e-9 {
				t.Errorf("%s-%s: %g vs %g reversed", a.DDString(), b.DDString(), ab, ba)
			}
		}
	}
}

func TestDistanceKm(t *testing.T) {
	for _, test := range []struct {
		a, b GeoPoint
		km   float64
		tol  float64
	}{
		{a: GeoPoint{0, 0}, b: GeoPoint{0, 0.001}, km: 0.1112, tol: 0.0005},
		{a: GeoPoint{0, 0.001}, b: GeoPoint{0, 10}, km: 1111.84, tol: 0.5},
		{a: GeoPoint{40.6328888, -73.771385}, b: GeoPoint{51.4775, -0.461389}, km: 5540, tol: 15},
		// Antipodal points exercise the clamp on h.
		{a: GeoPoint{0, 0}, b: GeoPoint{0, 180}, km: gomath.Pi * EarthRadiusKm, tol: 1e-6},
		{a: GeoPoint{90, 0}, b: GeoPoint{-90, 0}, km: gomath.Pi * EarthRadiusKm, tol: 1e-6},
	} {
		d := DistanceKm(test.a, test.b)
		if gomath.IsNaN(d) || gomath.Abs(d-test.km) > test.tol {
			t.Errorf("%s-%s: got %f km, expected %f", test.a.DDString(), test.b.DDString(), d, test.km)
		}
	}
}

func TestExtentFromPoints(t *testing.T) {
	e := ExtentFromPoints(testPoints[2:5])
	expect := Extent{MinLat: -33.946111, MaxLat: 51.4775, MinLon: -73.771385, MaxLon: 151.177222}
	if e != expect {
		t.Errorf("got extent %+v, expected %+v", e, expect)
	}
	for _, p := range testPoints[2:5] {
		if !e.Inside(p) {
			t.Errorf("%s: not inside extent %+v", p.DDString(), e)
		}
	}

	if e := ExtentFromPoints(nil); e != (Extent{}) {
		t.Errorf("empty point set gave %+v, expected zero extent", e)
	}

	single := ExtentFromPoints([]GeoPoint{{Lat: 47.5, Lon: 8.25}})
	if single.Width() != 0 || single.Height() != 0 {
		t.Errorf("single point extent %+v should be degenerate", single)
	}
	if !single.Inside(GeoPoint{Lat: 47.5, Lon: 8.25}) || single.Inside(GeoPoint{Lat: 47.5, Lon: 8.26}) {
		t.Errorf("single point extent %+v has the wrong interior", single)
	}
}

func TestClamp(t *testing.T) {
	if v := Clamp(1.0000001, 0, 1); v != 1 {
		t.Errorf("clamp high: got %g", v)
	}
	if v := Clamp(-1e-17, 0, 1); v != 0 {
		t.Errorf("clamp low: got %g", v)
	}
	if v := Clamp(3, 1, 5); v != 3 {
		t.Errorf("clamp passthrough: got %d", v)
	}
}
