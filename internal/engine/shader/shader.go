// Package shader loads, compiles and links GLSL programs.
//
// A Program is built from one vertex and one fragment source. By default a
// stage that fails to compile, or a program that fails to link, does not abort
// construction: the diagnostics are logged and kept on the Program, which is
// then left in StatusLinkFailed. WithStrict turns those failures into errors.
package shader

import (
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/gpu"
	"github.com/Faultbox/learngl/internal/logger"
)

// MaxInfoLog bounds the driver diagnostics kept for a stage or program.
const MaxInfoLog = 512

// Status is the lifecycle state of a Program.
type Status int

const (
	StatusUninitialized Status = iota
	StatusCompiling
	StatusLinked
	StatusLinkFailed
	StatusDeleted
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusCompiling:
		return "compiling"
	case StatusLinked:
		return "linked"
	case StatusLinkFailed:
		return "link failed"
	case StatusDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

type options struct {
	strict     bool
	maxInfoLog int
}

// Option configures program construction.
type Option func(*options)

// WithStrict makes construction return the first compile or link error and
// release the program instead of keeping an unusable one.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}

// WithInfoLogLimit overrides MaxInfoLog.
func WithInfoLogLimit(n int) Option {
	return func(o *options) { o.maxInfoLog = n }
}

// Program is a linked GL program plus the diagnostics of building it.
// It is owned by a single goroutine, the one holding the GL context.
type Program struct {
	drv       gpu.Driver
	id        uint32
	status    Status
	diags     []error
	locations map[string]int32
}

// Load reads vertexPath and fragmentPath and builds a program from them.
// An unreadable file yields an *IOError and no program.
func Load(drv gpu.Driver, vertexPath, fragmentPath string, opts ...Option) (*Program, error) {
	vsrc, err := readSource(gpu.StageVertex, vertexPath)
	if err != nil {
		return nil, err
	}
	fsrc, err := readSource(gpu.StageFragment, fragmentPath)
	if err != nil {
		return nil, err
	}

	p, err := NewFromSource(drv, vsrc, fsrc, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("shader sources loaded",
		zap.Uint32("program", p.id),
		zap.String("vertex", vertexPath),
		zap.String("fragment", fragmentPath),
	)
	return p, nil
}

// NewFromSource builds a program from in-memory sources.
func NewFromSource(drv gpu.Driver, vertexSrc, fragmentSrc string, opts ...Option) (*Program, error) {
	o := options{maxInfoLog: MaxInfoLog}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Program{
		drv:       drv,
		status:    StatusCompiling,
		locations: make(map[string]int32),
	}

	vert, err := p.compile(gpu.StageVertex, vertexSrc, o.maxInfoLog)
	defer drv.DeleteShader(vert)
	if err != nil {
		if o.strict {
			return nil, err
		}
		p.report(err)
	}

	frag, err := p.compile(gpu.StageFragment, fragmentSrc, o.maxInfoLog)
	defer drv.DeleteShader(frag)
	if err != nil {
		if o.strict {
			return nil, err
		}
		p.report(err)
	}

	p.id = drv.CreateProgram()
	drv.AttachShader(p.id, vert)
	drv.AttachShader(p.id, frag)
	drv.LinkProgram(p.id)

	if !drv.ProgramLinked(p.id) {
		lerr := &LinkError{Log: infoLog(drv.ProgramInfoLog(p.id, o.maxInfoLog))}
		if o.strict {
			drv.DeleteProgram(p.id)
			return nil, lerr
		}
		p.report(lerr)
		p.status = StatusLinkFailed
		return p, nil
	}

	// A link can succeed after a reported compile error only with a driver
	// that ignores failed stages; the program is still not trustworthy.
	if len(p.diags) > 0 {
		p.status = StatusLinkFailed
		return p, nil
	}

	p.status = StatusLinked
	logger.Debug("shader program linked", zap.Uint32("program", p.id))
	return p, nil
}

func (p *Program) compile(stage gpu.Stage, source string, maxLog int) (uint32, error) {
	id := p.drv.CreateShader(stage)
	p.drv.ShaderSource(id, source)
	p.drv.CompileShader(id)

	if !p.drv.ShaderCompiled(id) {
		return id, &CompileError{Stage: stage, Log: infoLog(p.drv.ShaderInfoLog(id, maxLog))}
	}
	return id, nil
}

func (p *Program) report(err error) {
	p.diags = append(p.diags, err)

	var cerr *CompileError
	if errors.As(err, &cerr) {
		logger.Error("shader compilation failed",
			zap.Stringer("stage", cerr.Stage),
			zap.String("log", cerr.Log),
		)
		return
	}
	logger.Error("shader program link failed", zap.Error(err))
}

// ID returns the driver handle, 0 after Delete or on a nil Program.
func (p *Program) ID() uint32 {
	if p == nil {
		return 0
	}
	return p.id
}

// Status returns the lifecycle state. A nil Program, as returned with an
// IOError, is StatusUninitialized.
func (p *Program) Status() Status {
	if p == nil {
		return StatusUninitialized
	}
	return p.status
}

// Valid reports whether the program linked cleanly.
func (p *Program) Valid() bool { return p != nil && p.status == StatusLinked }

// Diagnostics returns the compile and link errors collected during
// construction, in the order they occurred.
func (p *Program) Diagnostics() []error {
	if p == nil {
		return nil
	}
	return append([]error(nil), p.diags...)
}

// Err joins the diagnostics, nil for a valid program.
func (p *Program) Err() error {
	if p == nil {
		return nil
	}
	return errors.Join(p.diags...)
}

// Use makes p the current program for subsequent draw calls. It does not
// check Valid; callers decide whether to draw with a failed program. Use on
// a nil or deleted Program does nothing.
func (p *Program) Use() {
	if p == nil || p.id == 0 {
		return
	}
	p.drv.UseProgram(p.id)
}

// Delete releases the program handle. It is safe on a nil Program and on
// repeated calls.
func (p *Program) Delete() {
	if p == nil || p.id == 0 {
		return
	}
	p.drv.DeleteProgram(p.id)
	p.id = 0
	p.status = StatusDeleted
	clear(p.locations)
}

func readSource(stage gpu.Stage, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &IOError{Stage: stage, Path: path, Err: err}
	}
	return string(data), nil
}

func infoLog(log string) string {
	if log == "" {
		return "(driver returned no log)"
	}
	return log
}
