// Package opengl implements gpu.Driver on the system OpenGL 3.3 core library.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/Faultbox/learngl/internal/engine/gpu"
)

// Driver is the gpu.Driver backed by go-gl. It remembers link results and
// the selected program so the hot uniform path never queries GL state.
type Driver struct {
	linked  map[uint32]bool
	current uint32
}

var _ gpu.Driver = (*Driver)(nil)

// Load resolves every GL entry point through procAddr, which is supplied by
// the window backend that owns the current context. It must run after the
// context is made current and before any other GL call.
func Load(procAddr func(name string) unsafe.Pointer) (*Driver, error) {
	if err := gl.InitWithProcAddrFunc(procAddr); err != nil {
		return nil, fmt.Errorf("load OpenGL functions: %w", err)
	}
	return &Driver{linked: make(map[uint32]bool)}, nil
}

func (*Driver) CreateShader(stage gpu.Stage) uint32 {
	return gl.CreateShader(stageToGL(stage))
}

func (*Driver) ShaderSource(shader uint32, source string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
}

func (*Driver) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (*Driver) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (*Driver) ShaderInfoLog(shader uint32, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	buf := make([]byte, maxLen)
	var n int32
	gl.GetShaderInfoLog(shader, int32(maxLen), &n, &buf[0])
	return string(buf[:n])
}

func (*Driver) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (*Driver) CreateProgram() uint32 { return gl.CreateProgram() }

func (*Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (*Driver) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (d *Driver) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	ok := status != gl.FALSE
	d.linked[program] = ok
	return ok
}

func (*Driver) ProgramInfoLog(program uint32, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	buf := make([]byte, maxLen)
	var n int32
	gl.GetProgramInfoLog(program, int32(maxLen), &n, &buf[0])
	return string(buf[:n])
}

func (d *Driver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
	delete(d.linked, program)
	if d.current == program {
		d.current = 0
	}
}

// UseProgram skips programs that did not link, which GL would reject with
// GL_INVALID_OPERATION while keeping the previous program current.
func (d *Driver) UseProgram(program uint32) {
	if program != 0 && !d.linked[program] {
		return
	}
	gl.UseProgram(program)
	d.current = program
}

func (d *Driver) CurrentProgram() uint32 { return d.current }

func (*Driver) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*Driver) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (*Driver) Uniform1i(location int32, v int32) { gl.Uniform1i(location, v) }

func (*Driver) Uniform2f(location int32, x, y float32) { gl.Uniform2f(location, x, y) }

func (*Driver) Uniform3f(location int32, x, y, z float32) { gl.Uniform3f(location, x, y, z) }

func (*Driver) Uniform4f(location int32, x, y, z, w float32) { gl.Uniform4f(location, x, y, z, w) }

func (*Driver) UniformMatrix4f(location int32, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (*Driver) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (*Driver) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (*Driver) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (*Driver) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (*Driver) BindBuffer(target gpu.Target, buffer uint32) {
	gl.BindBuffer(targetToGL(target), buffer)
}

func (*Driver) BufferFloats(target gpu.Target, data []float32, usage gpu.Usage) {
	if len(data) == 0 {
		gl.BufferData(targetToGL(target), 0, nil, usageToGL(usage))
		return
	}
	gl.BufferData(targetToGL(target), len(data)*4, gl.Ptr(&data[0]), usageToGL(usage))
}

func (*Driver) BufferIndices(target gpu.Target, data []uint32, usage gpu.Usage) {
	if len(data) == 0 {
		gl.BufferData(targetToGL(target), 0, nil, usageToGL(usage))
		return
	}
	gl.BufferData(targetToGL(target), len(data)*4, gl.Ptr(&data[0]), usageToGL(usage))
}

func (*Driver) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (*Driver) VertexAttribPointer(index uint32, size int32, typ gpu.AttribType, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, attribTypeToGL(typ), normalized, stride, uintptr(offset))
}

func (*Driver) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (*Driver) DrawArrays(mode gpu.Primitive, first, count int32) {
	gl.DrawArrays(primitiveToGL(mode), first, count)
}

func (*Driver) DrawElements(mode gpu.Primitive, count int32, offset int) {
	gl.DrawElements(primitiveToGL(mode), count, gl.UNSIGNED_INT, gl.PtrOffset(offset))
}

func (*Driver) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (*Driver) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (*Driver) Clear(mask gpu.ClearMask) {
	var bits uint32
	if mask&gpu.ColorBuffer != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gpu.DepthBuffer != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if mask&gpu.StencilBuffer != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (*Driver) Wireframe(enabled bool) {
	if enabled {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (*Driver) Info() (version, renderer string) {
	return gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER))
}

func stageToGL(s gpu.Stage) uint32 {
	switch s {
	case gpu.StageVertex:
		return gl.VERTEX_SHADER
	case gpu.StageFragment:
		return gl.FRAGMENT_SHADER
	default:
		return 0
	}
}

func targetToGL(t gpu.Target) uint32 {
	if t == gpu.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func usageToGL(u gpu.Usage) uint32 {
	switch u {
	case gpu.DynamicDraw:
		return gl.DYNAMIC_DRAW
	case gpu.StreamDraw:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

func primitiveToGL(p gpu.Primitive) uint32 {
	switch p {
	case gpu.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case gpu.Lines:
		return gl.LINES
	case gpu.Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func attribTypeToGL(t gpu.AttribType) uint32 {
	switch t {
	case gpu.Int:
		return gl.INT
	case gpu.UnsignedInt:
		return gl.UNSIGNED_INT
	default:
		return gl.FLOAT
	}
}
