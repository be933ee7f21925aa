package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/gpu"
	"github.com/Faultbox/learngl/internal/engine/mesh"
	"github.com/Faultbox/learngl/internal/engine/shader"
	"github.com/Faultbox/learngl/internal/engine/watch"
	"github.com/Faultbox/learngl/internal/logger"
)

// Position followed by colour, both vec3.
var colorLayout = mesh.NewLayout(
	mesh.Attribute{Index: 0, Components: 3, Type: gpu.Float},
	mesh.Attribute{Index: 1, Components: 3, Type: gpu.Float},
)

var coloredVertices = []float32{
	// positions      // colors
	-0.5, -0.5, 0.0, 1.0, 0.0, 0.0,
	0.5, -0.5, 0.0, 0.0, 1.0, 0.0,
	0.0, 0.5, 0.0, 0.0, 0.0, 1.0,
}

// ColoredTriangle draws a vertex-coloured triangle with shaders read from
// disk, shifted horizontally by the "offset" uniform.
type ColoredTriangle struct {
	drv          gpu.Driver
	vertexPath   string
	fragmentPath string
	opts         []shader.Option

	program *shader.Program
	mesh    *mesh.Mesh
	offset  float32
	watcher *watch.Watcher
}

// NewColoredTriangle loads the program from vertexPath and fragmentPath.
// Unreadable files are an error; compile and link failures are logged and
// the scene keeps going.
func NewColoredTriangle(drv gpu.Driver, vertexPath, fragmentPath string, offset float32, opts ...shader.Option) (*ColoredTriangle, error) {
	prog, err := shader.Load(drv, vertexPath, fragmentPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("colored triangle shader: %w", err)
	}
	if !prog.Valid() {
		logger.Warn("colored triangle shader is not usable, drawing anyway", zap.Error(prog.Err()))
	}

	m, err := mesh.New(drv, coloredVertices, nil, colorLayout)
	if err != nil {
		prog.Delete()
		return nil, err
	}

	return &ColoredTriangle{
		drv:          drv,
		vertexPath:   vertexPath,
		fragmentPath: fragmentPath,
		opts:         opts,
		program:      prog,
		mesh:         m,
		offset:       offset,
	}, nil
}

// Watch reloads the program whenever either source file changes on disk.
// The reload happens at the start of the next Draw.
func (c *ColoredTriangle) Watch() error {
	if c.watcher != nil {
		return nil
	}
	w, err := watch.New(c.vertexPath, c.fragmentPath)
	if err != nil {
		return err
	}
	c.watcher = w
	logger.Info("watching shader sources",
		zap.String("vertex", c.vertexPath),
		zap.String("fragment", c.fragmentPath),
	)
	return nil
}

// Reload rebuilds the program from disk. The current program is kept when
// the new sources cannot be read or do not link.
func (c *ColoredTriangle) Reload() error {
	prog, err := shader.Load(c.drv, c.vertexPath, c.fragmentPath, c.opts...)
	if err != nil {
		return fmt.Errorf("reload shader: %w", err)
	}
	if !prog.Valid() {
		err := prog.Err()
		prog.Delete()
		return fmt.Errorf("reload shader: %w", err)
	}

	c.program.Delete()
	c.program = prog
	logger.Info("shader reloaded", zap.Uint32("program", prog.ID()))
	return nil
}

// Program exposes the scene's shader program.
func (c *ColoredTriangle) Program() *shader.Program { return c.program }

func (c *ColoredTriangle) Draw() error {
	if c.watcher != nil && c.watcher.Changed() {
		if err := c.Reload(); err != nil {
			logger.Warn("keeping previous shader", zap.Error(err))
		}
	}

	c.program.Use()
	if err := c.program.SetFloat("offset", c.offset); err != nil && !errors.Is(err, shader.ErrNotCurrent) {
		return err
	}
	c.mesh.DrawArrays(gpu.Triangles)
	return nil
}

func (c *ColoredTriangle) Close() {
	if c.watcher != nil {
		c.watcher.Close()
		c.watcher = nil
	}
	c.mesh.Delete()
	c.program.Delete()
}
