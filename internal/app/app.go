// Package app runs the frame loop shared by the tutorial commands.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/input"
	"github.com/Faultbox/learngl/internal/engine/renderer"
	"github.com/Faultbox/learngl/internal/logger"
)

// Window is the part of window.Window the frame loop needs.
type Window interface {
	ShouldClose() bool
	SetShouldClose(bool)
	KeyDown(k input.Key) bool
	KeyPressed(k input.Key) bool
	SetResizeCallback(fn func(width, height int))
	SwapBuffers()
	PollEvents()
}

// Scene draws one frame's worth of geometry and owns its GPU resources.
type Scene interface {
	Draw() error
	Close()
}

// App ties a window, a renderer and a scene together.
type App struct {
	win      Window
	renderer *renderer.Renderer
	scene    Scene
	frames   uint64
}

// New creates an app and routes window resizes into the renderer viewport.
func New(win Window, r *renderer.Renderer, scene Scene) *App {
	a := &App{
		win:      win,
		renderer: r,
		scene:    scene,
	}
	win.SetResizeCallback(a.renderer.Resize)
	return a
}

// Frames returns the number of completed frames.
func (a *App) Frames() uint64 { return a.frames }

// Run loops until the window is asked to close. A close request made while
// processing input lets the current frame finish first.
func (a *App) Run() error {
	lastTime := time.Now()
	fpsTimer := lastTime
	frameCount := 0

	logger.Info("starting frame loop")

	for !a.win.ShouldClose() {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if err := a.Frame(); err != nil {
			return fmt.Errorf("frame %d: %w", a.frames, err)
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("dt", dt),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	logger.Info("frame loop finished", zap.Uint64("frames", a.frames))
	return nil
}

// Frame runs one iteration: input, clear, draw, swap, poll events.
func (a *App) Frame() error {
	a.processInput()

	a.renderer.Begin()
	if err := a.scene.Draw(); err != nil {
		return fmt.Errorf("draw: %w", err)
	}

	a.win.SwapBuffers()
	a.win.PollEvents()
	a.frames++
	return nil
}

// Close releases the scene.
func (a *App) Close() {
	logger.Info("closing app")
	if a.scene != nil {
		a.scene.Close()
	}
}

// processInput closes on Escape and toggles wireframe on each F1 press.
func (a *App) processInput() {
	if a.win.KeyDown(input.KeyEscape) {
		a.win.SetShouldClose(true)
	}
	if a.win.KeyPressed(input.KeyF1) {
		enabled := !a.renderer.Wireframe()
		a.renderer.SetWireframe(enabled)
		logger.Debug("wireframe toggled", zap.Bool("enabled", enabled))
	}
}
