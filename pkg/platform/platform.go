// pkg/platform/platform.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

// Platform is the interface that abstracts platform-specific features like
// creating windows, mouse and keyboard handling, etc.
type Platform interface {
	// PollEvents returns all of the input events that have arrived since
	// the last call, in the order they happened. It does not block.
	PollEvents() []Event
	// PostRender presents the frame that was just drawn; with v-sync
	// enabled it waits for the next display refresh.
	PostRender()
	// Dispose is called when the application is shutting down and is when
	// resources are be freed.
	Dispose()
	// SetWindowTitle sets the title of the application window.
	SetWindowTitle(text string)
	// EnableFullScreen switches between the application running in windowed and fullscreen mode.
	EnableFullScreen(fullscreen bool)
	// IsFullScreen returns true if the application is in full-screen mode.
	IsFullScreen() bool
	// WindowSize returns the size of the window in the units that mouse
	// positions are reported in.
	WindowSize() [2]int
	// FramebufferSize returns the dimension of the framebuffer in pixels;
	// it may be larger than WindowSize on high-DPI displays.
	FramebufferSize() [2]int
}

// Config holds the window settings; it is part of the user's
// configuration file.
type Config struct {
	InitialWindowSize     [2]int `mapstructure:"initial_window_size"`
	InitialWindowPosition [2]int `mapstructure:"initial_window_position"`

	EnableMSAA bool `mapstructure:"enable_msaa"`

	StartInFullScreen bool `mapstructure:"start_in_fullscreen"`
	FullScreenMonitor int  `mapstructure:"fullscreen_monitor" validate:"gte=0"`
}

const windowTitle = "GPX Track Visualizer"

// defaultWindowSize returns the size to use for a new window on a display
// of the given size if the user hasn't specified one.
func (c *Config) defaultWindowSize(displayWidth, displayHeight int) [2]int {
	if c.InitialWindowSize[0] > 0 && c.InitialWindowSize[1] > 0 {
		return c.InitialWindowSize
	}
	return [2]int{max(displayWidth-150, 320), max(displayHeight-150, 240)}
}

// windowPosition returns the initial window position, falling back to
// (100, 100) if the configured one is off the display.
func (c *Config) windowPosition(displayWidth, displayHeight int) [2]int {
	p := c.InitialWindowPosition
	if p[0] < 0 || p[1] < 0 || p[0] > displayWidth || p[1] > displayHeight {
		return [2]int{100, 100}
	}
	return p
}
