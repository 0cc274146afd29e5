// pkg/track/gpx.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package track

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/trackplot/gpxview/pkg/log"
	"github.com/trackplot/gpxview/pkg/math"
	"github.com/trackplot/gpxview/pkg/util"

	"github.com/tkrajina/gpxgo/gpx"
	"golang.org/x/sync/errgroup"
)

// Extension is the file extension (compared case-insensitively) of the
// files that LoadDirectory reads.
const Extension = ".gpx"

// LoadOptions controls how LoadDirectory finds and parses files.
type LoadOptions struct {
	// Cache, if non-nil, is used to avoid re-parsing files that haven't
	// changed since the last run.
	Cache *util.ObjectCache
	// Concurrency bounds the number of files parsed at once; zero means
	// runtime.GOMAXPROCS.
	Concurrency int
}

// ParseFile returns the points of all of the track segments in the given
// GPX file, in document order.
func ParseFile(path string) ([]math.GeoPoint, error) {
	g, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return gpxPoints(g), nil
}

// ParseBytes is the equivalent of ParseFile for an in-memory document.
func ParseBytes(b []byte) ([]math.GeoPoint, error) {
	g, err := gpx.ParseBytes(b)
	if err != nil {
		return nil, err
	}
	return gpxPoints(g), nil
}

func gpxPoints(g *gpx.GPX) []math.GeoPoint {
	var pts []math.GeoPoint
	for _, trk := range g.Tracks {
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				pts = append(pts, math.GeoPoint{Lat: p.Latitude, Lon: p.Longitude})
			}
		}
	}
	return pts
}

// ListFiles returns the paths of the GPX files directly inside dir in the
// order that os.ReadDir returns them. Symbolic links are followed.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !strings.EqualFold(filepath.Ext(e.Name()), Extension) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if e.Type()&fs.ModeSymlink != 0 {
			// Follow links; a dangling one is left for the parser to
			// report.
			if fi, err := os.Stat(path); err == nil && fi.IsDir() {
				continue
			}
		} else if e.IsDir() {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

// LoadDirectory parses all of the GPX files in dir and concatenates their
// points into a single Track, in file order. Files that fail to parse are
// logged and skipped; only a failure to read the directory itself is an
// error.
func LoadDirectory(ctx context.Context, dir string, opts LoadOptions, lg *log.Logger) (*Track, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to read directory: %w", dir, err)
	}
	lg.Infof("%s: found %d GPX files", dir, len(files))

	// Each file gets its own slot so that the parallel parse can't
	// change the order of the concatenated result.
	perFile := make([][]math.GeoPoint, len(files))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(util.Select(opts.Concurrency > 0, opts.Concurrency, runtime.GOMAXPROCS(0)))
	for i, fn := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pts, err := loadFile(fn, opts.Cache, lg)
			if err != nil {
				lg.Warnf("%s: skipping: %v", fn, err)
				return nil
			}
			perFile[i] = pts
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	n := 0
	for _, pts := range perFile {
		n += len(pts)
	}
	all := make([]math.GeoPoint, 0, n)
	for _, pts := range perFile {
		all = append(all, pts...)
	}

	t := New(all)
	lg.Info("Loaded track", "track", t)
	return t, nil
}

type cachedFile struct {
	Path   string          `msgpack:"path"`
	Points []math.GeoPoint `msgpack:"points"`
}

func loadFile(path string, cache *util.ObjectCache, lg *log.Logger) ([]math.GeoPoint, error) {
	var key string
	if cache != nil {
		if fi, err := os.Stat(path); err == nil {
			key = cacheKey(path, fi)
			var cf cachedFile
			if _, err := cache.Retrieve(key, &cf); err == nil {
				lg.Debugf("%s: using cached parse, %d points", path, len(cf.Points))
				return cf.Points, nil
			} else if !errors.Is(err, fs.ErrNotExist) {
				lg.Warnf("%s: cache: %v", path, err)
			}
		}
	}

	pts, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	lg.Debugf("%s: parsed %d points", path, len(pts))

	if key != "" {
		if err := cache.Store(key, cachedFile{Path: path, Points: pts}); err != nil {
			lg.Warnf("%s: unable to cache: %v", path, err)
		}
	}
	return pts, nil
}

// cacheKey identifies a particular version of a file; if the file is
// rewritten its size or modification time changes and so does the key.
func cacheKey(path string, fi os.FileInfo) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	h := sha256.New()
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(fi.Size(), 10)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(fi.ModTime().UnixNano(), 10)))
	return "tracks/" + hex.EncodeToString(h.Sum(nil)) + ".msgpack.zst"
}
