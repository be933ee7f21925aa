// Package gputest provides an in-memory gpu.Driver for tests.
//
// The fake "compiles" GLSL with a shallow sanity check (version directive,
// a main function, balanced brackets), collects uniforms declared in the
// sources and records every state-changing call so tests can assert on it.
package gputest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Faultbox/learngl/internal/engine/gpu"
)

// DrawCall records one draw.
type DrawCall struct {
	Mode    gpu.Primitive
	Indexed bool
	VAO     uint32
	Program uint32
	First   int32
	Count   int32
	Offset  int
}

// Attrib records one VertexAttribPointer call.
type Attrib struct {
	VAO        uint32
	Index      uint32
	Size       int32
	Type       gpu.AttribType
	Normalized bool
	Stride     int32
	Offset     int
	Enabled    bool
}

type shader struct {
	stage    gpu.Stage
	source   string
	compiled bool
	log      string
	deleted  int
}

type program struct {
	attached []uint32
	linked   bool
	log      string
	uniforms map[string]int32
	values   map[int32]any
	deleted  int
}

// Driver is a fake gpu.Driver. The zero value is not usable; call New.
type Driver struct {
	// CompileCheck decides whether a source compiles. It returns the
	// diagnostic log, empty on success. Defaults to CheckSource.
	CompileCheck func(stage gpu.Stage, source string) string

	// LinkFailure, when set, makes every link fail with this log.
	LinkFailure string

	nextID   uint32
	shaders  map[uint32]*shader
	programs map[uint32]*program
	current  uint32

	vao          uint32
	buffers      map[gpu.Target]uint32
	floatData    map[uint32][]float32
	indexData    map[uint32][]uint32
	deletedVAOs  map[uint32]int
	deletedBufs  map[uint32]int
	attribs      []Attrib
	draws        []DrawCall
	viewports    [][4]int32
	clearColor   [4]float32
	clears       []gpu.ClearMask
	wireframe    bool
	lastFloats   uint32
	lastIndices  uint32
	UniformCalls int
}

// New returns an empty fake driver.
func New() *Driver {
	return &Driver{
		CompileCheck: CheckSource,
		shaders:      make(map[uint32]*shader),
		programs:     make(map[uint32]*program),
		buffers:      make(map[gpu.Target]uint32),
		floatData:    make(map[uint32][]float32),
		indexData:    make(map[uint32][]uint32),
		deletedVAOs:  make(map[uint32]int),
		deletedBufs:  make(map[uint32]int),
	}
}

var _ gpu.Driver = (*Driver)(nil)

func (d *Driver) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Driver) CreateShader(stage gpu.Stage) uint32 {
	id := d.id()
	d.shaders[id] = &shader{stage: stage}
	return id
}

func (d *Driver) ShaderSource(id uint32, source string) {
	if s, ok := d.shaders[id]; ok {
		s.source = source
	}
}

func (d *Driver) CompileShader(id uint32) {
	s, ok := d.shaders[id]
	if !ok {
		return
	}
	s.log = d.CompileCheck(s.stage, s.source)
	s.compiled = s.log == ""
}

func (d *Driver) ShaderCompiled(id uint32) bool {
	s, ok := d.shaders[id]
	return ok && s.compiled
}

func (d *Driver) ShaderInfoLog(id uint32, maxLen int) string {
	s, ok := d.shaders[id]
	if !ok {
		return ""
	}
	return clip(s.log, maxLen)
}

func (d *Driver) DeleteShader(id uint32) {
	if s, ok := d.shaders[id]; ok {
		s.deleted++
	}
}

func (d *Driver) CreateProgram() uint32 {
	id := d.id()
	d.programs[id] = &program{
		uniforms: make(map[string]int32),
		values:   make(map[int32]any),
	}
	return id
}

func (d *Driver) AttachShader(prog, sh uint32) {
	if p, ok := d.programs[prog]; ok {
		p.attached = append(p.attached, sh)
	}
}

func (d *Driver) LinkProgram(id uint32) {
	p, ok := d.programs[id]
	if !ok {
		return
	}
	p.linked = false
	p.uniforms = make(map[string]int32)
	if d.LinkFailure != "" {
		p.log = d.LinkFailure
		return
	}

	stages := make(map[gpu.Stage]bool)
	var names []string
	for _, sid := range p.attached {
		s := d.shaders[sid]
		if s == nil || !s.compiled {
			p.log = fmt.Sprintf("error: linking with uncompiled/unspecialized shader %d", sid)
			return
		}
		stages[s.stage] = true
		names = append(names, declaredUniforms(s.source)...)
	}
	if !stages[gpu.StageVertex] || !stages[gpu.StageFragment] {
		p.log = "error: program lacks a vertex or fragment stage"
		return
	}

	sort.Strings(names)
	var loc int32
	for _, n := range names {
		if _, dup := p.uniforms[n]; dup {
			continue
		}
		p.uniforms[n] = loc
		loc++
	}
	p.linked = true
	p.log = ""
}

func (d *Driver) ProgramLinked(id uint32) bool {
	p, ok := d.programs[id]
	return ok && p.linked
}

func (d *Driver) ProgramInfoLog(id uint32, maxLen int) string {
	p, ok := d.programs[id]
	if !ok {
		return ""
	}
	return clip(p.log, maxLen)
}

func (d *Driver) DeleteProgram(id uint32) {
	if p, ok := d.programs[id]; ok {
		p.deleted++
	}
	if d.current == id {
		d.current = 0
	}
}

// UseProgram follows GL: selecting a program that is not linked is an
// invalid operation and leaves the current program unchanged.
func (d *Driver) UseProgram(id uint32) {
	if id != 0 {
		p, ok := d.programs[id]
		if !ok || !p.linked || p.deleted > 0 {
			return
		}
	}
	d.current = id
}

func (d *Driver) CurrentProgram() uint32 { return d.current }

func (d *Driver) UniformLocation(prog uint32, name string) int32 {
	p, ok := d.programs[prog]
	if !ok || !p.linked {
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *Driver) setUniform(loc int32, v any) {
	d.UniformCalls++
	if loc < 0 {
		return
	}
	p, ok := d.programs[d.current]
	if !ok || !p.linked {
		return
	}
	p.values[loc] = v
}

func (d *Driver) Uniform1f(loc int32, v float32)          { d.setUniform(loc, v) }
func (d *Driver) Uniform1i(loc int32, v int32)            { d.setUniform(loc, v) }
func (d *Driver) Uniform2f(loc int32, x, y float32)       { d.setUniform(loc, [2]float32{x, y}) }
func (d *Driver) Uniform3f(loc int32, x, y, z float32)    { d.setUniform(loc, [3]float32{x, y, z}) }
func (d *Driver) Uniform4f(loc int32, x, y, z, w float32) { d.setUniform(loc, [4]float32{x, y, z, w}) }
func (d *Driver) UniformMatrix4f(loc int32, m [16]float32) {
	d.setUniform(loc, m)
}

func (d *Driver) GenVertexArray() uint32 { return d.id() }

func (d *Driver) BindVertexArray(vao uint32) { d.vao = vao }

func (d *Driver) DeleteVertexArray(vao uint32) { d.deletedVAOs[vao]++ }

func (d *Driver) GenBuffer() uint32 { return d.id() }

func (d *Driver) BindBuffer(target gpu.Target, buf uint32) { d.buffers[target] = buf }

func (d *Driver) BufferFloats(target gpu.Target, data []float32, _ gpu.Usage) {
	d.lastFloats = d.buffers[target]
	d.floatData[d.buffers[target]] = append([]float32(nil), data...)
}

func (d *Driver) BufferIndices(target gpu.Target, data []uint32, _ gpu.Usage) {
	d.lastIndices = d.buffers[target]
	d.indexData[d.buffers[target]] = append([]uint32(nil), data...)
}

func (d *Driver) DeleteBuffer(buf uint32) { d.deletedBufs[buf]++ }

func (d *Driver) VertexAttribPointer(index uint32, size int32, typ gpu.AttribType, normalized bool, stride int32, offset int) {
	d.attribs = append(d.attribs, Attrib{
		VAO:        d.vao,
		Index:      index,
		Size:       size,
		Type:       typ,
		Normalized: normalized,
		Stride:     stride,
		Offset:     offset,
	})
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	for i := range d.attribs {
		if d.attribs[i].VAO == d.vao && d.attribs[i].Index == index {
			d.attribs[i].Enabled = true
		}
	}
}

func (d *Driver) DrawArrays(mode gpu.Primitive, first, count int32) {
	d.draws = append(d.draws, DrawCall{Mode: mode, VAO: d.vao, Program: d.current, First: first, Count: count})
}

func (d *Driver) DrawElements(mode gpu.Primitive, count int32, offset int) {
	d.draws = append(d.draws, DrawCall{Mode: mode, Indexed: true, VAO: d.vao, Program: d.current, Count: count, Offset: offset})
}

func (d *Driver) Viewport(x, y, w, h int32) { d.viewports = append(d.viewports, [4]int32{x, y, w, h}) }

func (d *Driver) ClearColor(r, g, b, a float32) { d.clearColor = [4]float32{r, g, b, a} }

func (d *Driver) Clear(mask gpu.ClearMask) { d.clears = append(d.clears, mask) }

func (d *Driver) Wireframe(enabled bool) { d.wireframe = enabled }

func (d *Driver) Info() (string, string) { return "3.3.0 gputest", "gputest" }

// Uniform returns the value last uploaded to name in prog.
func (d *Driver) Uniform(prog uint32, name string) (any, bool) {
	p, ok := d.programs[prog]
	if !ok {
		return nil, false
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

// ShaderDeletes reports how many times shader id was deleted.
func (d *Driver) ShaderDeletes(id uint32) int {
	if s, ok := d.shaders[id]; ok {
		return s.deleted
	}
	return 0
}

// Shaders returns the ids of every shader created so far.
func (d *Driver) Shaders() []uint32 {
	ids := make([]uint32, 0, len(d.shaders))
	for id := range d.shaders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Programs returns the ids of every program created so far.
func (d *Driver) Programs() []uint32 {
	ids := make([]uint32, 0, len(d.programs))
	for id := range d.programs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ProgramDeletes reports how many times program id was deleted.
func (d *Driver) ProgramDeletes(id uint32) int {
	if p, ok := d.programs[id]; ok {
		return p.deleted
	}
	return 0
}

// Accessors for recorded state.

func (d *Driver) VertexArrayDeletes(id uint32) int { return d.deletedVAOs[id] }
func (d *Driver) BufferDeletes(id uint32) int      { return d.deletedBufs[id] }
func (d *Driver) Floats(buf uint32) []float32      { return d.floatData[buf] }
func (d *Driver) LastFloatBuffer() uint32          { return d.lastFloats }
func (d *Driver) Indices(buf uint32) []uint32      { return d.indexData[buf] }
func (d *Driver) LastIndexBuffer() uint32          { return d.lastIndices }
func (d *Driver) Attribs() []Attrib                { return d.attribs }
func (d *Driver) Draws() []DrawCall                { return d.draws }
func (d *Driver) Viewports() [][4]int32            { return d.viewports }
func (d *Driver) ClearColorValue() [4]float32      { return d.clearColor }
func (d *Driver) Clears() []gpu.ClearMask          { return d.clears }
func (d *Driver) WireframeEnabled() bool           { return d.wireframe }

// Reset forgets recorded draws, viewports and clears.
func (d *Driver) Reset() {
	d.draws = nil
	d.viewports = nil
	d.clears = nil
}

// CheckSource is a shallow GLSL sanity check in the style of a driver log.
func CheckSource(_ gpu.Stage, source string) string {
	if !strings.HasPrefix(strings.TrimSpace(source), "#version") {
		return "0:1(1): error: missing #version directive"
	}
	if !strings.Contains(source, "void main") {
		return "0:1(1): error: no main() function defined"
	}
	line := 1
	var stack []rune
	pairs := map[rune]rune{'}': '{', ')': '(', ']': '['}
	for _, r := range source {
		switch r {
		case '\n':
			line++
		case '{', '(', '[':
			stack = append(stack, r)
		case '}', ')', ']':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[r] {
				return fmt.Sprintf("0:%d(1): error: syntax error, unexpected '%c'", line, r)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) != 0 {
		return fmt.Sprintf("0:%d(1): error: syntax error, unexpected end of file", line)
	}
	return ""
}

func declaredUniforms(source string) []string {
	var names []string
	for _, line := range strings.Split(source, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 3 || fields[0] != "uniform" {
			continue
		}
		name := strings.TrimSuffix(fields[2], ";")
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		names = append(names, name)
	}
	return names
}

func clip(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) > maxLen-1 {
		return s[:maxLen-1]
	}
	return s
}
