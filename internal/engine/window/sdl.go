package window

import (
	"fmt"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/input"
	"github.com/Faultbox/learngl/internal/logger"
)

// sdlWindow wraps an SDL2 window and its OpenGL context.
type sdlWindow struct {
	win         *sdl.Window
	glContext   sdl.GLContext
	keys        *input.State
	onResize    func(width, height int)
	shouldClose bool
}

func newSDL(cfg Config) (*sdlWindow, error) {
	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Attributes must be set before the window is created.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, cfg.GLMajor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, cfg.GLMinor)
	if cfg.CoreProfile {
		sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	}
	if cfg.ForwardCompat {
		sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	}
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}

	win, err := sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logger.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	logger.Info("window created",
		zap.String("backend", BackendSDL),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("gl_major", cfg.GLMajor),
		zap.Int("gl_minor", cfg.GLMinor),
		zap.Bool("vsync", cfg.VSync),
	)

	return &sdlWindow{win: win, glContext: ctx, keys: input.New()}, nil
}

func (w *sdlWindow) ShouldClose() bool { return w.shouldClose }

func (w *sdlWindow) SetShouldClose(v bool) { w.shouldClose = v }

func (w *sdlWindow) KeyDown(k input.Key) bool { return w.keys.Down(k) }

func (w *sdlWindow) KeyPressed(k input.Key) bool { return w.keys.Pressed(k) }

func (w *sdlWindow) SetResizeCallback(fn func(int, int)) { w.onResize = fn }

func (w *sdlWindow) FramebufferSize() (int, int) {
	width, height := w.win.GLGetDrawableSize()
	return int(width), int(height)
}

func (w *sdlWindow) SwapBuffers() { w.win.GLSwap() }

// PollEvents drains the SDL queue. Only SIZE_CHANGED is forwarded as a
// resize since SDL also emits RESIZED for the same user action.
func (w *sdlWindow) PollEvents() {
	w.keys.BeginFrame()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.shouldClose = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED && w.onResize != nil {
				w.onResize(w.FramebufferSize())
			}

		case *sdl.KeyboardEvent:
			k := sdlKey(e.Keysym.Scancode)
			if e.Type == sdl.KEYDOWN {
				w.keys.Press(k)
			} else if e.Type == sdl.KEYUP {
				w.keys.Release(k)
			}
		}
	}
}

func (w *sdlWindow) ProcAddress(name string) unsafe.Pointer {
	return sdl.GLGetProcAddress(name)
}

func (w *sdlWindow) Close() {
	logger.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.win != nil {
		w.win.Destroy()
	}
	sdl.Quit()
}

func sdlKey(code sdl.Scancode) input.Key {
	switch code {
	case sdl.SCANCODE_ESCAPE:
		return input.KeyEscape
	case sdl.SCANCODE_F1:
		return input.KeyF1
	default:
		return input.KeyNone
	}
}
