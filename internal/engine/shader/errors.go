package shader

import (
	"errors"
	"fmt"

	"github.com/Faultbox/learngl/internal/engine/gpu"
)

// ErrNotCurrent is returned by uniform setters when another program is
// selected on the driver. Nothing is uploaded in that case.
var ErrNotCurrent = errors.New("shader program is not the current program")

// IOError reports a shader source file that could not be read.
type IOError struct {
	Stage gpu.Stage
	Path  string
	Err   error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read %s shader %s: %v", e.Stage, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// CompileError carries the driver log of a stage that failed to compile.
type CompileError struct {
	Stage gpu.Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

// LinkError carries the driver log of a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader program link failed: %s", e.Log)
}
