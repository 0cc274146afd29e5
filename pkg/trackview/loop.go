// pkg/trackview/loop.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package trackview

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/trackplot/gpxview/pkg/log"
	"github.com/trackplot/gpxview/pkg/platform"
	"github.com/trackplot/gpxview/pkg/renderer"
	"github.com/trackplot/gpxview/pkg/track"
)

const defaultStatsInterval = time.Minute

type Options struct {
	// Status receives the display mode summary after each key press; it
	// may be nil.
	Status io.Writer
	Logger *log.Logger
	// StatsInterval is how often accumulated renderer statistics are
	// logged. Zero gives a default of one minute.
	StatsInterval time.Duration
}

// Run runs the interactive display of tr until the user quits, in which
// case it returns nil, or ctx is canceled, in which case it returns
// ctx.Err(). Each frame it handles all pending input, reconciles the
// platform's fullscreen state with the view's, draws, and presents.
// It must be called on the thread that created the platform.
func Run(ctx context.Context, plat platform.Platform, rend renderer.Renderer, tr *track.Track,
	vs ViewState, opts Options) (ViewState, error) {
	lg := opts.Logger
	interval := opts.StatsInterval
	if interval == 0 {
		interval = defaultStatsInterval
	}

	controller := NewController(opts.Status, lg)
	cb := renderer.GetCommandBuffer()
	defer renderer.ReturnCommandBuffer(cb)

	lg.Info("Starting display", slog.Any("track", tr), slog.Any("view", vs))

	fullscreen := vs.FullScreen
	var stats renderer.RendererStats
	frames, lastReport := 0, time.Now()

	for {
		if err := ctx.Err(); err != nil {
			return vs, err
		}

		vs = controller.ApplyAll(vs, plat.PollEvents())
		if controller.QuitRequested() {
			lg.Info("Quit requested", slog.Any("view", vs))
			return vs, nil
		}

		if vs.FullScreen != fullscreen {
			plat.EnableFullScreen(vs.FullScreen)
			fullscreen = vs.FullScreen
		}

		// Query the size every frame; it changes with fullscreen
		// toggles and when the user resizes the window.
		size, fbSize := plat.WindowSize(), plat.FramebufferSize()

		cb.Reset()
		cb.Viewport(0, 0, fbSize[0], fbSize[1])
		cb.Ortho2D(size[0], size[1])
		RenderFrame(cb, tr, vs, size[0], size[1])
		stats.Merge(rend.RenderCommandBuffer(cb))

		plat.SetWindowTitle(vs.Title())
		plat.PostRender()

		frames++
		if time.Since(lastReport) >= interval {
			lg.Info("Rendering", slog.Int("frames", frames), slog.Any("stats", stats))
			frames, stats, lastReport = 0, renderer.RendererStats{}, time.Now()
		}
	}
}
