// pkg/track/gpx_test.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package track

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trackplot/gpxview/pkg/log"
	"github.com/trackplot/gpxview/pkg/math"
	"github.com/trackplot/gpxview/pkg/util"
)

func gpxDocument(segments ...[]math.GeoPoint) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="gpxview-test" xmlns="http://www.topografix.com/GPX/1/1">
<trk><name>test</name>
`)
	for _, seg := range segments {
		sb.WriteString("<trkseg>\n")
		for _, p := range seg {
			fmt.Fprintf(&sb, `<trkpt lat="%f" lon="%f"><ele>400</ele></trkpt>`+"\n", p.Lat, p.Lon)
		}
		sb.WriteString("</trkseg>\n")
	}
	sb.WriteString("</trk>\n</gpx>\n")
	return sb.String()
}

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.NewWithWriter(&buf, slog.LevelDebug), &buf
}

func TestParseBytes(t *testing.T) {
	seg0 := []math.GeoPoint{{Lat: 47.1, Lon: 8.5}, {Lat: 47.2, Lon: 8.6}}
	seg1 := []math.GeoPoint{{Lat: 47.3, Lon: 8.7}}
	pts, err := ParseBytes([]byte(gpxDocument(seg0, seg1)))
	if err != nil {
		t.Fatal(err)
	}
	expect := append(append([]math.GeoPoint{}, seg0...), seg1...)
	if len(pts) != len(expect) {
		t.Fatalf("got %d points, expected %d", len(pts), len(expect))
	}
	for i := range pts {
		if pts[i] != expect[i] {
			t.Errorf("point %d: got %s, expected %s", i, pts[i].DDString(), expect[i].DDString())
		}
	}

	if _, err := ParseBytes([]byte(`<gpx version="1.1"><trk><trkseg><trkpt lat="1`)); err == nil {
		t.Errorf("expected error for truncated document")
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.gpx", gpxDocument([]math.GeoPoint{{Lat: 2, Lon: 2}, {Lat: 2.5, Lon: 2.5}}))
	writeFile(t, dir, "a.GPX", gpxDocument([]math.GeoPoint{{Lat: 1, Lon: 1}}))
	writeFile(t, dir, "c.gpx", `<gpx version="1.1"><trk><trkseg><trkpt lat="3" lon=`)
	writeFile(t, dir, "d.gpx", gpxDocument([]math.GeoPoint{{Lat: 4, Lon: 4}}))
	writeFile(t, dir, "notes.txt", "not a track")
	if err := os.Mkdir(filepath.Join(dir, "e.gpx"), 0o755); err != nil {
		t.Fatal(err)
	}

	lg, logs := testLogger()
	tr, err := LoadDirectory(context.Background(), dir, LoadOptions{Concurrency: 2}, lg)
	if err != nil {
		t.Fatal(err)
	}

	expect := []math.GeoPoint{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}, {Lat: 2.5, Lon: 2.5}, {Lat: 4, Lon: 4}}
	if tr.Len() != len(expect) {
		t.Fatalf("got %d points, expected %d", tr.Len(), len(expect))
	}
	for i, p := range expect {
		if tr.Point(i) != p {
			t.Errorf("point %d: got %s, expected %s", i, tr.Point(i).DDString(), p.DDString())
		}
	}
	if !strings.Contains(logs.String(), "c.gpx: skipping") {
		t.Errorf("malformed file was not reported in the log:\n%s", logs.String())
	}
}

func TestLoadDirectorySymlinks(t *testing.T) {
	target := t.TempDir()
	writeFile(t, target, "ride.gpx", gpxDocument([]math.GeoPoint{{Lat: 1, Lon: 1}, {Lat: 1.5, Lon: 1.5}}))

	dir := t.TempDir()
	if err := os.Symlink(filepath.Join(target, "ride.gpx"), filepath.Join(dir, "link.gpx")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := os.Symlink(target, filepath.Join(dir, "dir.gpx")); err != nil {
		t.Fatal(err)
	}

	files, err := ListFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "link.gpx" {
		t.Errorf("got files %v", files)
	}

	lg, _ := testLogger()
	tr, err := LoadDirectory(context.Background(), dir, LoadOptions{}, lg)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Len() != 2 {
		t.Errorf("got %d points through the link, expected 2", tr.Len())
	}
}

func TestLoadDirectoryErrors(t *testing.T) {
	lg, _ := testLogger()
	if _, err := LoadDirectory(context.Background(), filepath.Join(t.TempDir(), "nope"), LoadOptions{}, lg); err == nil {
		t.Errorf("expected error for missing directory")
	}

	tr, err := LoadDirectory(context.Background(), t.TempDir(), LoadOptions{}, lg)
	if err != nil {
		t.Fatalf("empty directory: %v", err)
	}
	if tr.Len() != 0 {
		t.Errorf("empty directory gave %d points", tr.Len())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()
	writeFile(t, dir, "a.gpx", gpxDocument([]math.GeoPoint{{Lat: 1, Lon: 1}}))
	if _, err := LoadDirectory(ctx, dir, LoadOptions{}, lg); err == nil {
		t.Errorf("expected error from cancelled context")
	}
}

func TestLoadDirectoryCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.gpx", gpxDocument([]math.GeoPoint{{Lat: 1, Lon: 1}, {Lat: 1.5, Lon: 1}}))
	writeFile(t, dir, "b.gpx", gpxDocument([]math.GeoPoint{{Lat: 2, Lon: 2}}))

	cache := &util.ObjectCache{Dir: t.TempDir()}
	lg, logs := testLogger()

	first, err := LoadDirectory(context.Background(), dir, LoadOptions{Cache: cache}, lg)
	if err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(filepath.Join(cache.Dir, "tracks"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 cache entries, got %d", len(entries))
	}

	logs.Reset()
	second, err := LoadDirectory(context.Background(), dir, LoadOptions{Cache: cache}, lg)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(logs.String(), "using cached parse") != 2 {
		t.Errorf("second load did not use the cache:\n%s", logs.String())
	}
	if first.Len() != second.Len() {
		t.Fatalf("cached load gave %d points, expected %d", second.Len(), first.Len())
	}
	for i := 0; i < first.Len(); i++ {
		if first.Point(i) != second.Point(i) {
			t.Errorf("point %d differs after cache: %s vs %s", i, first.Point(i).DDString(), second.Point(i).DDString())
		}
	}
}
