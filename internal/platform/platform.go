// Package platform opens a window and loads OpenGL for it.
package platform

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/app"
	"github.com/Faultbox/learngl/internal/config"
	"github.com/Faultbox/learngl/internal/engine/gpu"
	"github.com/Faultbox/learngl/internal/engine/gpu/opengl"
	"github.com/Faultbox/learngl/internal/engine/renderer"
	"github.com/Faultbox/learngl/internal/engine/window"
	"github.com/Faultbox/learngl/internal/logger"
)

// InitError reports a failure to create the window or load the GL entry
// points. The process cannot continue after one.
type InitError struct {
	Op  string
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Op, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// Open creates the configured window, makes its context current and loads
// OpenGL through the window's proc address lookup.
func Open(cfg *config.Config) (window.Window, *opengl.Driver, error) {
	win, err := window.New(WindowConfig(cfg))
	if err != nil {
		return nil, nil, &InitError{Op: "window", Err: err}
	}

	drv, err := opengl.Load(win.ProcAddress)
	if err != nil {
		win.Close()
		return nil, nil, &InitError{Op: "OpenGL loader", Err: err}
	}

	return win, drv, nil
}

// WindowConfig maps application settings onto window.Config.
func WindowConfig(cfg *config.Config) window.Config {
	return window.Config{
		Backend:       cfg.Window.Backend,
		Title:         cfg.Window.Title,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		GLMajor:       cfg.GL.Major,
		GLMinor:       cfg.GL.Minor,
		CoreProfile:   cfg.GL.CoreProfile,
		ForwardCompat: cfg.GL.ForwardCompat,
		Resizable:     cfg.Window.Resizable,
		VSync:         cfg.Window.VSync,
	}
}

// SceneFunc builds the scene once the GL context is current.
type SceneFunc func(drv gpu.Driver) (app.Scene, error)

// Run opens the platform, builds the scene and runs the frame loop until the
// window closes. Window and loader failures are returned as *InitError.
func Run(cfg *config.Config, newScene SceneFunc) error {
	win, drv, err := Open(cfg)
	if err != nil {
		return err
	}
	defer win.Close()

	width, height := win.FramebufferSize()
	r := renderer.New(drv, renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Render.ClearColor,
		Wireframe:  cfg.Render.Wireframe,
	})

	scene, err := newScene(drv)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	a := app.New(win, r, scene)
	defer a.Close()

	if err := a.Run(); err != nil {
		return err
	}
	logger.Info("window closed", zap.Uint64("frames", a.Frames()))
	return nil
}
