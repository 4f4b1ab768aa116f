package shader

import (
	"errors"
	"fmt"
)

var (
	ErrDeleted  = errors.New("shader program has been deleted")
	ErrReleased = errors.New("shader binding has been released")
)

// FileReadError is returned when a shader source file can't be read.
type FileReadError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("reading %v shader %q: %v", e.Stage, e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// CompileError holds the compiler log of a stage that failed to compile.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%v shader failed to compile: %v", e.Stage, e.Log)
}

// LinkError holds the linker log of a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("program failed to link: %v", e.Log)
}
