package window

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/input"
	"github.com/Faultbox/learngl/internal/logger"
)

type glfwWindow struct {
	win      *glfw.Window
	keys     *input.State
	onResize func(width, height int)
}

func newGLFW(cfg Config) (*glfwWindow, error) {
	logger.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	if cfg.CoreProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	if cfg.ForwardCompat {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	glfw.WindowHint(glfw.Resizable, boolHint(cfg.Resizable))

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	win.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &glfwWindow{win: win, keys: input.New()}
	win.SetFramebufferSizeCallback(w.framebufferSizeCallback)
	win.SetKeyCallback(w.keyCallback)

	logger.Info("window created",
		zap.String("backend", BackendGLFW),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("gl_major", cfg.GLMajor),
		zap.Int("gl_minor", cfg.GLMinor),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

func (w *glfwWindow) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *glfwWindow) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	k := glfwKey(key)
	switch action {
	case glfw.Press, glfw.Repeat:
		w.keys.Press(k)
	case glfw.Release:
		w.keys.Release(k)
	}
}

func (w *glfwWindow) ShouldClose() bool                   { return w.win.ShouldClose() }
func (w *glfwWindow) SetShouldClose(v bool)               { w.win.SetShouldClose(v) }
func (w *glfwWindow) KeyDown(k input.Key) bool            { return w.keys.Down(k) }
func (w *glfwWindow) KeyPressed(k input.Key) bool         { return w.keys.Pressed(k) }
func (w *glfwWindow) SetResizeCallback(fn func(int, int)) { w.onResize = fn }
func (w *glfwWindow) FramebufferSize() (int, int)         { return w.win.GetFramebufferSize() }
func (w *glfwWindow) SwapBuffers()                        { w.win.SwapBuffers() }

func (w *glfwWindow) PollEvents() {
	w.keys.BeginFrame()
	glfw.PollEvents()
}

func (w *glfwWindow) ProcAddress(name string) unsafe.Pointer {
	return glfw.GetProcAddress(name)
}

func (w *glfwWindow) Close() {
	logger.Info("closing window")
	w.win.Destroy()
	glfw.Terminate()
}

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

func glfwKey(key glfw.Key) input.Key {
	switch key {
	case glfw.KeyEscape:
		return input.KeyEscape
	case glfw.KeyF1:
		return input.KeyF1
	default:
		return input.KeyNone
	}
}
