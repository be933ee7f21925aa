// Package scene holds the drawable scenes run by the commands.
package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/config"
	"github.com/Faultbox/learngl/internal/engine/gpu"
	"github.com/Faultbox/learngl/internal/engine/mesh"
	"github.com/Faultbox/learngl/internal/engine/shader"
	"github.com/Faultbox/learngl/internal/logger"
	"github.com/Faultbox/learngl/shaders"
)

// positionLayout is a single vec3 at location 0.
var positionLayout = mesh.NewLayout(mesh.Attribute{Index: 0, Components: 3, Type: gpu.Float})

// Two triangles touching at (0, -0.5).
var twoTriangles = []float32{
	0.5, 0.5, 0.0,
	0.5, -0.5, 0.0,
	0.0, -0.5, 0.0,
	0.0, -0.5, 0.0,
	-0.5, -0.5, 0.0,
	-0.5, 0.5, 0.0,
}

// A rectangle built from two triangles sharing an edge.
var (
	quadVertices = []float32{
		0.5, 0.5, 0.0,
		0.5, -0.5, 0.0,
		-0.5, -0.5, 0.0,
		-0.5, 0.5, 0.0,
	}
	quadIndices = []uint32{
		0, 1, 3,
		1, 2, 3,
	}
)

// Triangle draws flat orange geometry with the embedded triangle shaders.
type Triangle struct {
	program *shader.Program
	mesh    *mesh.Mesh
}

// NewTriangle builds the scene for drawMode, config.DrawArrays or
// config.DrawElements. A shader that fails to build is logged and the scene
// still draws with it.
func NewTriangle(drv gpu.Driver, drawMode string, opts ...shader.Option) (*Triangle, error) {
	vertices, indices := twoTriangles, []uint32(nil)
	switch drawMode {
	case config.DrawArrays, "":
	case config.DrawElements:
		vertices, indices = quadVertices, quadIndices
	default:
		return nil, fmt.Errorf("unknown draw mode %q", drawMode)
	}

	prog, err := shader.NewFromSource(drv, shaders.TriangleVertexShader, shaders.TriangleFragmentShader, opts...)
	if err != nil {
		return nil, fmt.Errorf("triangle shader: %w", err)
	}
	if !prog.Valid() {
		logger.Warn("triangle shader is not usable, drawing anyway", zap.Error(prog.Err()))
	}

	m, err := mesh.New(drv, vertices, indices, positionLayout)
	if err != nil {
		prog.Delete()
		return nil, err
	}

	return &Triangle{program: prog, mesh: m}, nil
}

// Program exposes the scene's shader program.
func (t *Triangle) Program() *shader.Program { return t.program }

func (t *Triangle) Draw() error {
	t.program.Use()
	t.mesh.Draw(gpu.Triangles)
	return nil
}

func (t *Triangle) Close() {
	t.mesh.Delete()
	t.program.Delete()
}
