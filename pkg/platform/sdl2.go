// pkg/platform/sdl2.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

import (
	"fmt"

	"github.com/trackplot/gpxview/pkg/log"

	"github.com/veandco/go-sdl2/sdl"
)

// SDLPlatform implements the Platform interface using SDL2. Drawing is
// done through an SDL 2D renderer that the platform creates along with
// the window and presents in PostRender.
type SDLPlatform struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	config   *Config
	lg       *log.Logger

	windowTitle string
}

var _ Platform = (*SDLPlatform)(nil)

// NewSDL returns a new instance of a Platform implemented with SDL2. On
// failure, everything created so far is released.
func NewSDL(config *Config, lg *log.Logger) (*SDLPlatform, error) {
	lg.Info("Starting SDL2 initialization")

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL2: %w", err)
	}

	version := sdl.Version{}
	sdl.GetVersion(&version)
	lg.Infof("SDL2: %d.%d.%d", version.Major, version.Minor, version.Patch)

	numDisplays, _ := sdl.GetNumVideoDisplays()
	if config.FullScreenMonitor >= numDisplays || config.FullScreenMonitor < 0 {
		config.FullScreenMonitor = 0
	}
	displayBounds, err := sdl.GetDisplayBounds(config.FullScreenMonitor)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to get display mode: %w", err)
	}
	size := config.defaultWindowSize(int(displayBounds.W), int(displayBounds.H))
	pos := config.windowPosition(int(displayBounds.W), int(displayBounds.H))

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if config.StartInFullScreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if config.EnableMSAA {
		sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "1")
	}

	window, err := sdl.CreateWindow(windowTitle,
		int32(displayBounds.X)+int32(pos[0]), int32(displayBounds.Y)+int32(pos[1]),
		int32(size[0]), int32(size[1]), flags)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	lg.Info("Finished SDL2 initialization")

	return &SDLPlatform{
		window:      window,
		renderer:    renderer,
		config:      config,
		lg:          lg,
		windowTitle: windowTitle,
	}, nil
}

// Renderer returns the SDL renderer associated with the window.
func (p *SDLPlatform) Renderer() *sdl.Renderer {
	return p.renderer
}

func (p *SDLPlatform) PollEvents() []Event {
	var events []Event
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e := translateSDLEvent(event); e != nil {
			events = append(events, e)
		}
	}
	return events
}

func translateSDLEvent(event sdl.Event) Event {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return QuitEvent{}

	case *sdl.MouseWheelEvent:
		dy := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dy = -dy
		}
		if dy == 0 {
			return nil
		}
		x, y, _ := sdl.GetMouseState()
		return WheelEvent{Pos: [2]int{int(x), int(y)}, DeltaY: dy}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			return nil
		}
		if k := sdlKeyToKey(e.Keysym.Sym); k != KeyNone {
			return KeyEvent{Key: k}
		}

	case *sdl.MouseButtonEvent:
		var button MouseButton
		switch e.Button {
		case sdl.BUTTON_LEFT:
			button = MouseButtonPrimary
		case sdl.BUTTON_RIGHT:
			button = MouseButtonSecondary
		case sdl.BUTTON_MIDDLE:
			button = MouseButtonTertiary
		default:
			return nil
		}
		return MouseButtonEvent{
			Button: button,
			Down:   e.Type == sdl.MOUSEBUTTONDOWN,
			Pos:    [2]int{int(e.X), int(e.Y)},
		}

	case *sdl.MouseMotionEvent:
		return MouseMotionEvent{Pos: [2]int{int(e.X), int(e.Y)}}
	}
	return nil
}

func sdlKeyToKey(sym sdl.Keycode) Key {
	switch sym {
	case sdl.K_UP:
		return KeyUpArrow
	case sdl.K_DOWN:
		return KeyDownArrow
	case sdl.K_LEFT:
		return KeyLeftArrow
	case sdl.K_RIGHT:
		return KeyRightArrow
	case sdl.K_ESCAPE:
		return KeyEscape
	}
	// SDL keycodes for letters are their lowercase ASCII values.
	if sym >= sdl.K_a && sym <= sdl.K_z {
		return KeyForRune(rune(sym))
	}
	return KeyNone
}

func (p *SDLPlatform) PostRender() {
	p.renderer.Present()
}

func (p *SDLPlatform) Dispose() {
	if err := p.renderer.Destroy(); err != nil {
		p.lg.Warnf("SDL renderer: %v", err)
	}
	if err := p.window.Destroy(); err != nil {
		p.lg.Warnf("SDL window: %v", err)
	}
	sdl.Quit()
}

func (p *SDLPlatform) SetWindowTitle(text string) {
	if text != p.windowTitle {
		p.window.SetTitle(text)
		p.windowTitle = text
	}
}

func (p *SDLPlatform) EnableFullScreen(fullscreen bool) {
	if fullscreen == p.IsFullScreen() {
		return
	}
	var flags uint32
	if fullscreen {
		flags = sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if err := p.window.SetFullscreen(flags); err != nil {
		p.lg.Errorf("Unable to set fullscreen %v: %v", fullscreen, err)
		return
	}
	p.lg.Infof("Fullscreen: %v", fullscreen)
}

func (p *SDLPlatform) IsFullScreen() bool {
	return p.window.GetFlags()&sdl.WINDOW_FULLSCREEN != 0
}

func (p *SDLPlatform) WindowSize() [2]int {
	w, h := p.window.GetSize()
	return [2]int{int(w), int(h)}
}

func (p *SDLPlatform) FramebufferSize() [2]int {
	w, h, err := p.renderer.GetOutputSize()
	if err != nil {
		return p.WindowSize()
	}
	return [2]int{int(w), int(h)}
}
