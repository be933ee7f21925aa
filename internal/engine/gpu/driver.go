// Package gpu describes the subset of the OpenGL API the engine talks to.
//
// Everything above this package goes through Driver, so the shader, mesh and
// renderer packages can be exercised against an in-memory driver in tests.
// The go-gl implementation lives in the opengl subpackage.
package gpu

// Stage is a programmable pipeline stage.
type Stage int

const (
	StageVertex Stage = iota + 1
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Target is a buffer binding point.
type Target int

const (
	ArrayBuffer Target = iota + 1
	ElementArrayBuffer
)

// Usage is the buffer data usage hint.
type Usage int

const (
	StaticDraw Usage = iota + 1
	DynamicDraw
	StreamDraw
)

// Primitive is the topology used by draw calls.
type Primitive int

const (
	Triangles Primitive = iota + 1
	TriangleStrip
	Lines
	Points
)

// AttribType is the component type of a vertex attribute.
type AttribType int

const (
	Float AttribType = iota + 1
	Int
	UnsignedInt
)

// Size returns the size in bytes of one component.
func (t AttribType) Size() int {
	switch t {
	case Float, Int, UnsignedInt:
		return 4
	default:
		return 0
	}
}

// ClearMask selects which buffers Clear resets.
type ClearMask uint32

const (
	ColorBuffer ClearMask = 1 << iota
	DepthBuffer
	StencilBuffer
)

// Driver is the graphics driver collaborator. All methods must be called on
// the thread that owns the GL context.
type Driver interface {
	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	// ShaderInfoLog returns at most maxLen-1 bytes of the shader log.
	ShaderInfoLog(shader uint32, maxLen int) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	// ProgramInfoLog returns at most maxLen-1 bytes of the program log.
	ProgramInfoLog(program uint32, maxLen int) string
	DeleteProgram(program uint32)
	// UseProgram selects program for drawing. A program that did not link
	// is not selected and the previous one stays current.
	UseProgram(program uint32)
	// CurrentProgram reports the program selected by the last successful
	// UseProgram, without a round trip to the driver.
	CurrentProgram() uint32

	UniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform1i(location int32, v int32)
	Uniform2f(location int32, x, y float32)
	Uniform3f(location int32, x, y, z float32)
	Uniform4f(location int32, x, y, z, w float32)
	UniformMatrix4f(location int32, m [16]float32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	GenBuffer() uint32
	BindBuffer(target Target, buffer uint32)
	BufferFloats(target Target, data []float32, usage Usage)
	BufferIndices(target Target, data []uint32, usage Usage)
	DeleteBuffer(buffer uint32)
	VertexAttribPointer(index uint32, size int32, typ AttribType, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(index uint32)

	DrawArrays(mode Primitive, first, count int32)
	DrawElements(mode Primitive, count int32, offset int)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	Wireframe(enabled bool)

	// Info returns the driver version and renderer strings.
	Info() (version, renderer string)
}
