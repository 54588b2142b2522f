package gungale

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowHost is a Host backed by a glfw window with no client API; the wgpu renderer
// creates its surface from it.
type WindowHost struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string
}

// NewWindowHost opens the window. It must be called from the main goroutine.
// If Width/Height are zero, sensible defaults are used.
func NewWindowHost(width, height int, title string) (*WindowHost, error) {
	if width <= 0 {
		width = 1200
	}
	if height <= 0 {
		height = 1000
	}
	if title == "" {
		title = "gungale"
	}

	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // wgpu owns the surface
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return &WindowHost{
		windowGlfw:   win,
		WindowWidth:  width,
		WindowHeight: height,
		windowTitle:  title,
	}, nil
}

// Window exposes the glfw handle for surface creation.
func (h *WindowHost) Window() *glfw.Window {
	return h.windowGlfw
}

func (h *WindowHost) Now() float64 {
	return glfw.GetTime()
}

func (h *WindowHost) CursorPos() (float64, float64) {
	return h.windowGlfw.GetCursorPos()
}

func (h *WindowHost) KeyDown(k Key) bool {
	glfwKey, ok := keyToGlfw[k]
	if !ok {
		return false
	}
	return h.windowGlfw.GetKey(glfwKey) == glfw.Press
}

func (h *WindowHost) PollEvents() {
	glfw.PollEvents()
}

func (h *WindowHost) ShouldClose() bool {
	return h.windowGlfw.ShouldClose()
}

func (h *WindowHost) FramebufferSize() (int, int) {
	return h.windowGlfw.GetFramebufferSize()
}

// SetCursorCaptured hides and locks the pointer while captured.
func (h *WindowHost) SetCursorCaptured(captured bool) {
	if captured {
		h.windowGlfw.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		h.windowGlfw.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (h *WindowHost) Close() {
	h.windowGlfw.Destroy()
	glfw.Terminate()
}

var keyToGlfw = map[Key]glfw.Key{
	KeyA:       glfw.KeyA,
	KeyD:       glfw.KeyD,
	KeyS:       glfw.KeyS,
	KeyW:       glfw.KeyW,
	KeySpace:   glfw.KeySpace,
	KeyEscape:  glfw.KeyEscape,
	KeyTab:     glfw.KeyTab,
	KeyControl: glfw.KeyLeftControl,
	KeyF1:      glfw.KeyF1,
}
