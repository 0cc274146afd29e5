// pkg/platform/glfw.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

import (
	"fmt"

	"github.com/trackplot/gpxview/pkg/log"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwPlatform implements the Platform interface using GLFW. Rendering is
// done with OpenGL in the window's context.
type glfwPlatform struct {
	EventQueue

	window *glfw.Window
	config *Config
	lg     *log.Logger

	windowTitle string
}

// NewGLFW opens a window using GLFW and makes its OpenGL 2.1 context
// current. It must be called from the main goroutine with the OS thread
// locked.
func NewGLFW(config *Config, lg *log.Logger) (Platform, error) {
	lg.Info("Starting GLFW initialization")
	err := glfw.Init()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}
	lg.Infof("GLFW: %s", glfw.GetVersionString())

	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	monitors := glfw.GetMonitors()
	if len(monitors) == 0 {
		glfw.Terminate()
		return nil, fmt.Errorf("no monitors found")
	}
	if config.FullScreenMonitor >= len(monitors) || config.FullScreenMonitor < 0 {
		// Monitor saved in config not found, fallback to default
		config.FullScreenMonitor = 0
	}
	vm := monitors[config.FullScreenMonitor].GetVideoMode()
	size := config.defaultWindowSize(vm.Width, vm.Height)
	pos := config.windowPosition(vm.Width, vm.Height)

	// Start with an invisible window so that we can position it first
	glfw.WindowHint(glfw.Visible, 0)
	// Disable GLFW_AUTO_ICONIFY to stop the window from automatically minimizing in fullscreen
	glfw.WindowHint(glfw.AutoIconify, 0)
	if config.EnableMSAA {
		glfw.WindowHint(glfw.Samples, 4)
	}

	var window *glfw.Window
	if config.StartInFullScreen {
		window, err = glfw.CreateWindow(vm.Width, vm.Height, windowTitle, monitors[config.FullScreenMonitor], nil)
	} else {
		window, err = glfw.CreateWindow(size[0], size[1], windowTitle, nil, nil)
	}
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	if !config.StartInFullScreen {
		window.SetPos(pos[0], pos[1])
	}
	window.Show()
	window.MakeContextCurrent()

	g := &glfwPlatform{
		window:      window,
		config:      config,
		lg:          lg,
		windowTitle: windowTitle,
	}
	g.installCallbacks()
	glfw.SwapInterval(1)

	lg.Info("Finished GLFW initialization")
	return g, nil
}

func (g *glfwPlatform) installCallbacks() {
	g.window.SetCloseCallback(func(w *glfw.Window) {
		g.Push(QuitEvent{})
	})
	g.window.SetScrollCallback(func(w *glfw.Window, x, y float64) {
		if y != 0 {
			g.Push(WheelEvent{Pos: g.cursorPos(), DeltaY: float32(y)})
		}
	})
	g.window.SetMouseButtonCallback(g.mouseButtonChange)
	g.window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		g.Push(MouseMotionEvent{Pos: [2]int{int(x), int(y)}})
	})
	g.window.SetKeyCallback(g.keyChange)
}

var glfwButtonIndexByID = map[glfw.MouseButton]MouseButton{
	glfw.MouseButton1: MouseButtonPrimary,
	glfw.MouseButton2: MouseButtonSecondary,
	glfw.MouseButton3: MouseButtonTertiary,
}

func (g *glfwPlatform) mouseButtonChange(window *glfw.Window, rawButton glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	button, known := glfwButtonIndexByID[rawButton]
	if !known || (action != glfw.Press && action != glfw.Release) {
		return
	}
	g.Push(MouseButtonEvent{Button: button, Down: action == glfw.Press, Pos: g.cursorPos()})
}

func (g *glfwPlatform) keyChange(window *glfw.Window, keycode glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	if k := glfwKeyToKey(keycode); k != KeyNone {
		g.Push(KeyEvent{Key: k})
	}
}

func glfwKeyToKey(keycode glfw.Key) Key {
	switch {
	case keycode == glfw.KeyUp:
		return KeyUpArrow
	case keycode == glfw.KeyDown:
		return KeyDownArrow
	case keycode == glfw.KeyLeft:
		return KeyLeftArrow
	case keycode == glfw.KeyRight:
		return KeyRightArrow
	case keycode == glfw.KeyEscape:
		return KeyEscape
	case keycode >= glfw.KeyA && keycode <= glfw.KeyZ:
		return KeyA + Key(keycode-glfw.KeyA)
	default:
		return KeyNone
	}
}

func (g *glfwPlatform) cursorPos() [2]int {
	x, y := g.window.GetCursorPos()
	return [2]int{int(x), int(y)}
}

func (g *glfwPlatform) PollEvents() []Event {
	glfw.PollEvents()
	return g.Drain()
}

func (g *glfwPlatform) PostRender() {
	g.window.SwapBuffers()
}

func (g *glfwPlatform) Dispose() {
	g.window.Destroy()
	glfw.Terminate()
}

func (g *glfwPlatform) SetWindowTitle(text string) {
	if text != g.windowTitle {
		g.window.SetTitle(text)
		g.windowTitle = text
	}
}

func (g *glfwPlatform) IsFullScreen() bool {
	return g.window.GetMonitor() != nil
}

func (g *glfwPlatform) EnableFullScreen(fullscreen bool) {
	if fullscreen == g.IsFullScreen() {
		return
	}

	monitors := glfw.GetMonitors()
	if g.config.FullScreenMonitor >= len(monitors) {
		// Shouldn't happen, but just to be sure
		g.config.FullScreenMonitor = 0
	}
	monitor := monitors[g.config.FullScreenMonitor]
	vm := monitor.GetVideoMode()

	if fullscreen {
		g.window.SetMonitor(monitor, 0, 0, vm.Width, vm.Height, vm.RefreshRate)
	} else {
		size := g.config.defaultWindowSize(vm.Width, vm.Height)
		pos := g.config.windowPosition(vm.Width, vm.Height)
		g.window.SetMonitor(nil, pos[0], pos[1], size[0], size[1], glfw.DontCare)
	}
	g.lg.Infof("Fullscreen: %v", fullscreen)
}

func (g *glfwPlatform) WindowSize() [2]int {
	w, h := g.window.GetSize()
	return [2]int{w, h}
}

func (g *glfwPlatform) FramebufferSize() [2]int {
	w, h := g.window.GetFramebufferSize()
	return [2]int{w, h}
}
