// cmd/gpxview/main.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// This file contains the implementation of the main() function, which
// loads the track, opens the display, and then runs the event loop until
// the user quits.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/trackplot/gpxview/pkg/log"
	"github.com/trackplot/gpxview/pkg/platform"
	"github.com/trackplot/gpxview/pkg/renderer"
	"github.com/trackplot/gpxview/pkg/track"
	"github.com/trackplot/gpxview/pkg/trackview"
	"github.com/trackplot/gpxview/pkg/util"

	"github.com/apenwarr/fixconsole"
)

func init() {
	// OpenGL and friends require that all calls be made from the primary
	// application thread, while by default, go allows the main thread to
	// run on different hardware threads over the course of
	// execution. Therefore, we must lock the main thread at startup time.
	runtime.LockOSThread()
}

func main() {
	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		// Not sure this will actually appear, but what else are we going
		// to do...
		fmt.Printf("FixConsole: %v\n", err)
	}

	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func usage(argv0 string) string {
	return fmt.Sprintf("Usage: %s <directory with GPX files>\n", argv0)
}

// run does all of the work of main and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) (exitCode int) {
	if len(args) < 2 {
		fmt.Fprint(stderr, usage(args[0]))
		return 1
	}
	// Any further arguments are ignored.
	dir := args[1]

	config, err := LoadConfig(log.DefaultDir(), ".")
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	// Initialize the logging system first and foremost.
	lg := log.New(config.LogLevel, config.LogDir)
	config.Log(lg)

	// Stays 1 if we panic; CatchAndReportCrash recovers and we return.
	exitCode = 1
	defer lg.CatchAndReportCrash()

	fmt.Fprint(stderr, trackview.Legend())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr, err := loadTrack(ctx, dir, config, lg)
	if err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintln(stderr, err)
		return 1
	}
	if tr.Len() == 0 {
		lg.Warnf("%s: no track points found", dir)
	}

	plat, rend, status, err := newBackend(config, stdout, lg)
	if err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer plat.Dispose()
	defer rend.Dispose()

	vs := trackview.NewViewState(config.DistanceThresholdKm, plat.IsFullScreen())
	vs, err = trackview.Run(ctx, plat, rend, tr, vs, trackview.Options{Status: status, Logger: lg})
	if err != nil && !errors.Is(err, context.Canceled) {
		lg.Errorf("%v", err)
		return 1
	}
	lg.Info("Exiting", "view", vs, "drawn_km", tr.TotalKm(vs.MaxDistanceKm))

	return 0
}

func loadTrack(ctx context.Context, dir string, config *Config, lg *log.Logger) (*track.Track, error) {
	opts := track.LoadOptions{Concurrency: config.Concurrency}

	if config.Cache.Enabled {
		if cache, err := util.NewObjectCache("parse"); err != nil {
			lg.Warnf("Unable to open parse cache: %v", err)
		} else {
			if err := cache.Cull(config.Cache.MaxMB * 1024 * 1024); err != nil {
				lg.Warnf("%s: unable to cull cache: %v", cache.Dir, err)
			}
			opts.Cache = cache
		}
	}

	return track.LoadDirectory(ctx, dir, opts, lg)
}

// newBackend creates the platform and renderer selected in the config
// along with the writer for status messages; if it returns an error,
// nothing needs to be disposed.
func newBackend(config *Config, stdout io.Writer, lg *log.Logger) (platform.Platform, renderer.Renderer, io.Writer, error) {
	lg = lg.With("backend", config.Backend)

	switch config.Backend {
	case "sdl":
		plat, err := platform.NewSDL(&config.Window, lg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("unable to create application window: %w", err)
		}
		rend, err := renderer.NewSDLRenderer(plat.Renderer(), lg)
		if err != nil {
			plat.Dispose()
			return nil, nil, nil, fmt.Errorf("unable to initialize SDL renderer: %w", err)
		}
		return plat, rend, stdout, nil

	case "terminal":
		plat, err := platform.NewTerminal(lg)
		if err != nil {
			return nil, nil, nil, err
		}
		// Anything written to stdout would clobber the screen, so the
		// status goes to the status line via the window title instead.
		return plat, renderer.NewTerminalRenderer(plat.Screen(), lg), io.Discard, nil

	default:
		plat, err := platform.NewGLFW(&config.Window, lg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("unable to create application window: %w", err)
		}
		rend, err := renderer.NewOpenGL2Renderer(lg)
		if err != nil {
			plat.Dispose()
			return nil, nil, nil, fmt.Errorf("unable to initialize OpenGL: %w", err)
		}
		return plat, rend, stdout, nil
	}
}
