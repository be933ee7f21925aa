// Package window creates the OS window and its OpenGL context.
//
// Two backends are available: GLFW (the default) and SDL2. Both deliver
// framebuffer resizes through the callback set with SetResizeCallback and
// feed keyboard events into an input.State.
package window

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/Faultbox/learngl/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// ErrUnknownBackend is returned by New for an unsupported Config.Backend.
var ErrUnknownBackend = errors.New("unknown window backend")

const (
	BackendGLFW = "glfw"
	BackendSDL  = "sdl"
)

// Config holds window and context configuration.
type Config struct {
	Backend       string
	Title         string
	Width         int
	Height        int
	GLMajor       int
	GLMinor       int
	CoreProfile   bool
	ForwardCompat bool
	Resizable     bool
	VSync         bool
}

// Window is the windowing/context collaborator used by the frame loop.
type Window interface {
	ShouldClose() bool
	SetShouldClose(bool)
	// KeyDown reports whether k is held as of the last PollEvents.
	KeyDown(k input.Key) bool
	// KeyPressed reports whether k went down during the last PollEvents.
	KeyPressed(k input.Key) bool
	// SetResizeCallback registers fn to receive framebuffer sizes in pixels.
	// It is invoked from PollEvents.
	SetResizeCallback(fn func(width, height int))
	FramebufferSize() (width, height int)
	SwapBuffers()
	PollEvents()
	// ProcAddress resolves a GL entry point for the window's context.
	ProcAddress(name string) unsafe.Pointer
	Close()
}

// New creates a window with a current OpenGL context.
func New(cfg Config) (Window, error) {
	switch cfg.Backend {
	case BackendGLFW, "":
		return newGLFW(cfg)
	case BackendSDL:
		return newSDL(cfg)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, cfg.Backend)
	}
}
