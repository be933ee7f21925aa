package mesh

import (
	"errors"
	"testing"

	"github.com/Faultbox/learngl/internal/engine/gpu"
	"github.com/Faultbox/learngl/internal/engine/gpu/gputest"
)

var posColor = NewLayout(
	Attribute{Index: 0, Components: 3, Type: gpu.Float},
	Attribute{Index: 1, Components: 3, Type: gpu.Float},
)

func TestNewLayout(t *testing.T) {
	if posColor.Stride != 24 {
		t.Errorf("stride = %d, want 24", posColor.Stride)
	}
	if posColor.Attributes[0].Offset != 0 || posColor.Attributes[1].Offset != 12 {
		t.Errorf("offsets = %d, %d, want 0, 12", posColor.Attributes[0].Offset, posColor.Attributes[1].Offset)
	}
	if posColor.FloatsPerVertex() != 6 {
		t.Errorf("floats per vertex = %d, want 6", posColor.FloatsPerVertex())
	}
}

func TestNewUploadsAndDescribesLayout(t *testing.T) {
	drv := gputest.New()
	vertices := []float32{
		-0.5, -0.5, 0.0, 1.0, 0.0, 0.0,
		0.5, -0.5, 0.0, 0.0, 1.0, 0.0,
		0.0, 0.5, 0.0, 0.0, 0.0, 1.0,
	}

	m, err := New(drv, vertices, nil, posColor)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Delete()

	if m.vertexCount != 3 || m.Indexed() {
		t.Errorf("unexpected mesh: %d vertices, indexed=%v", m.vertexCount, m.Indexed())
	}
	if got := drv.Floats(m.vbo); len(got) != len(vertices) {
		t.Errorf("uploaded %d floats, want %d", len(got), len(vertices))
	}

	want := []gputest.Attrib{
		{VAO: m.vao, Index: 0, Size: 3, Type: gpu.Float, Stride: 24, Offset: 0, Enabled: true},
		{VAO: m.vao, Index: 1, Size: 3, Type: gpu.Float, Stride: 24, Offset: 12, Enabled: true},
	}
	got := drv.Attribs()
	if len(got) != len(want) {
		t.Fatalf("got %d attribute calls, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("attrib %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		indices  []uint32
		layout   Layout
	}{
		{name: "empty layout", vertices: []float32{0, 0, 0}, layout: NewLayout()},
		{name: "no vertices", layout: posColor},
		{name: "partial vertex", vertices: []float32{0, 0, 0, 1}, layout: posColor},
		{name: "index out of range", vertices: make([]float32, 12), indices: []uint32{0, 1, 2}, layout: posColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(gputest.New(), tt.vertices, tt.indices, tt.layout); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestDrawModes(t *testing.T) {
	drv := gputest.New()
	position := NewLayout(Attribute{Index: 0, Components: 3, Type: gpu.Float})
	quad := []float32{
		0.5, 0.5, 0.0,
		0.5, -0.5, 0.0,
		-0.5, -0.5, 0.0,
		-0.5, 0.5, 0.0,
	}
	indices := []uint32{0, 1, 3, 1, 2, 3}

	m, err := New(drv, quad, indices, position)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := drv.Indices(m.ebo); len(got) != 6 {
		t.Fatalf("uploaded %d indices, want 6", len(got))
	}

	m.DrawArrays(gpu.Triangles)
	if err := m.DrawElements(gpu.Triangles); err != nil {
		t.Fatalf("DrawElements: %v", err)
	}
	m.Draw(gpu.Triangles)

	draws := drv.Draws()
	if len(draws) != 3 {
		t.Fatalf("got %d draws, want 3", len(draws))
	}
	if draws[0].Indexed || draws[0].Count != 4 {
		t.Errorf("DrawArrays recorded %+v", draws[0])
	}
	if !draws[1].Indexed || draws[1].Count != 6 {
		t.Errorf("DrawElements recorded %+v", draws[1])
	}
	if !draws[2].Indexed {
		t.Error("Draw should prefer the index buffer")
	}
	for _, d := range draws {
		if d.VAO != m.vao {
			t.Errorf("draw used VAO %d, want %d", d.VAO, m.vao)
		}
	}
}

func TestDrawElementsWithoutIndices(t *testing.T) {
	m, err := New(gputest.New(), make([]float32, 18), nil, posColor)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.DrawElements(gpu.Triangles); !errors.Is(err, ErrNotIndexed) {
		t.Errorf("expected ErrNotIndexed, got %v", err)
	}
}

func TestDeleteOnce(t *testing.T) {
	drv := gputest.New()
	m, err := New(drv, make([]float32, 9), []uint32{0, 1, 2}, NewLayout(Attribute{Index: 0, Components: 3, Type: gpu.Float}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	vao, vbo, ebo := m.vao, m.vbo, m.ebo

	m.Delete()
	m.Delete()

	if drv.VertexArrayDeletes(vao) != 1 || drv.BufferDeletes(vbo) != 1 || drv.BufferDeletes(ebo) != 1 {
		t.Errorf("objects not released exactly once: vao=%d vbo=%d ebo=%d",
			drv.VertexArrayDeletes(vao), drv.BufferDeletes(vbo), drv.BufferDeletes(ebo))
	}
}
