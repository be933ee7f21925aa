// Package renderer owns per-frame GL state: viewport, clear colour and
// polygon mode.
package renderer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/gpu"
	"github.com/Faultbox/learngl/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
	Wireframe  bool
}

// Renderer handles frame setup on top of a gpu.Driver.
type Renderer struct {
	drv    gpu.Driver
	config Config
}

// New creates a renderer. The GL context must already be current.
func New(drv gpu.Driver, cfg Config) *Renderer {
	r := &Renderer{drv: drv, config: cfg}

	version, name := drv.Info()
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", name),
	)

	drv.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	if cfg.Wireframe {
		drv.Wireframe(true)
	}
	return r
}

// Resize updates the viewport to the new framebuffer size.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	r.drv.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetWireframe switches between line and fill polygon mode.
func (r *Renderer) SetWireframe(enabled bool) {
	r.config.Wireframe = enabled
	r.drv.Wireframe(enabled)
}

// Wireframe reports the current polygon mode.
func (r *Renderer) Wireframe() bool { return r.config.Wireframe }

// Begin starts a new frame by clearing the colour buffer.
func (r *Renderer) Begin() {
	c := r.config.ClearColor
	r.drv.ClearColor(c[0], c[1], c[2], c[3])
	r.drv.Clear(gpu.ColorBuffer)
}
