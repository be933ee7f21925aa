// Package mesh uploads interleaved vertex data and optional indices to the GPU.
package mesh

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/gpu"
	"github.com/Faultbox/learngl/internal/logger"
)

// ErrNotIndexed is returned by DrawElements on a mesh without indices.
var ErrNotIndexed = errors.New("mesh has no index buffer")

// Attribute describes one vertex attribute. Offset is filled in by NewLayout.
type Attribute struct {
	Index      uint32
	Components int32
	Type       gpu.AttribType
	Normalized bool
	Offset     int
}

// Layout is the interleaved arrangement of attributes inside one vertex.
type Layout struct {
	Attributes []Attribute
	Stride     int32
}

// NewLayout packs attrs back to back in the given order.
func NewLayout(attrs ...Attribute) Layout {
	l := Layout{Attributes: make([]Attribute, len(attrs))}
	for i, a := range attrs {
		a.Offset = int(l.Stride)
		l.Stride += a.Components * int32(a.Type.Size())
		l.Attributes[i] = a
	}
	return l
}

// FloatsPerVertex is the number of 4-byte components in one vertex.
func (l Layout) FloatsPerVertex() int {
	return int(l.Stride) / 4
}

// Mesh owns a vertex array object, its vertex buffer and an optional
// element buffer.
type Mesh struct {
	drv         gpu.Driver
	vao         uint32
	vbo         uint32
	ebo         uint32
	vertexCount int32
	indexCount  int32
}

// New uploads vertices (and indices, when non-empty) with static usage and
// records layout on a fresh vertex array object.
func New(drv gpu.Driver, vertices []float32, indices []uint32, layout Layout) (*Mesh, error) {
	per := layout.FloatsPerVertex()
	if per == 0 {
		return nil, errors.New("mesh: empty vertex layout")
	}
	if len(vertices) == 0 || len(vertices)%per != 0 {
		return nil, fmt.Errorf("mesh: %d floats is not a whole number of %d-float vertices", len(vertices), per)
	}
	count := len(vertices) / per
	for i, idx := range indices {
		if int(idx) >= count {
			return nil, fmt.Errorf("mesh: index %d at position %d out of range for %d vertices", idx, i, count)
		}
	}

	m := &Mesh{
		drv:         drv,
		vertexCount: int32(count),
		indexCount:  int32(len(indices)),
	}

	m.vao = drv.GenVertexArray()
	drv.BindVertexArray(m.vao)

	if len(indices) > 0 {
		m.ebo = drv.GenBuffer()
		drv.BindBuffer(gpu.ElementArrayBuffer, m.ebo)
		drv.BufferIndices(gpu.ElementArrayBuffer, indices, gpu.StaticDraw)
	}

	m.vbo = drv.GenBuffer()
	drv.BindBuffer(gpu.ArrayBuffer, m.vbo)
	drv.BufferFloats(gpu.ArrayBuffer, vertices, gpu.StaticDraw)

	for _, a := range layout.Attributes {
		drv.VertexAttribPointer(a.Index, a.Components, a.Type, a.Normalized, layout.Stride, a.Offset)
		drv.EnableVertexAttribArray(a.Index)
	}

	// The element buffer binding is VAO state, so only the array buffer
	// is unbound here.
	drv.BindBuffer(gpu.ArrayBuffer, 0)
	drv.BindVertexArray(0)

	logger.Debug("mesh created",
		zap.Uint32("vao", m.vao),
		zap.Uint32("vbo", m.vbo),
		zap.Uint32("ebo", m.ebo),
		zap.Int32("vertices", m.vertexCount),
		zap.Int32("indices", m.indexCount),
	)
	return m, nil
}

// Indexed reports whether the mesh has an element buffer.
func (m *Mesh) Indexed() bool { return m.ebo != 0 }

// DrawArrays draws every vertex in order, ignoring any index buffer.
func (m *Mesh) DrawArrays(mode gpu.Primitive) {
	m.drv.BindVertexArray(m.vao)
	m.drv.DrawArrays(mode, 0, m.vertexCount)
}

// DrawElements draws through the index buffer.
func (m *Mesh) DrawElements(mode gpu.Primitive) error {
	if !m.Indexed() {
		return ErrNotIndexed
	}
	m.drv.BindVertexArray(m.vao)
	m.drv.DrawElements(mode, m.indexCount, 0)
	return nil
}

// Draw uses the index buffer when there is one.
func (m *Mesh) Draw(mode gpu.Primitive) {
	if m.Indexed() {
		_ = m.DrawElements(mode)
		return
	}
	m.DrawArrays(mode)
}

// Delete releases the GPU objects. Safe to call more than once.
func (m *Mesh) Delete() {
	if m == nil || m.vao == 0 {
		return
	}
	m.drv.DeleteVertexArray(m.vao)
	m.drv.DeleteBuffer(m.vbo)
	if m.ebo != 0 {
		m.drv.DeleteBuffer(m.ebo)
	}
	m.vao, m.vbo, m.ebo = 0, 0, 0
}
