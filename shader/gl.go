package shader

// Stage is a programmable pipeline stage.
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "VERTEX"
	case Fragment:
		return "FRAGMENT"
	}
	return "UNKNOWN"
}

// programTag labels link diagnostics.
const programTag = "PROGRAM"

// GL is the subset of the graphics API a Program needs.
//
// Every method must be called from the thread that owns the graphics context.
// Uniform uploads target the currently active program, and a location of -1 is
// a no-op, matching OpenGL.
type GL interface {
	CreateShader(stage Stage) uint32
	// CompileShader sets the shader's source, compiles it and reports the status
	// together with the compiler's info log.
	CompileShader(shader uint32, source string) (ok bool, log string)
	DeleteShader(shader uint32)

	CreateProgram() uint32
	// LinkProgram attaches the shaders, links the program and reports the status
	// together with the linker's info log.
	LinkProgram(program uint32, shaders ...uint32) (ok bool, log string)
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	CurrentProgram() uint32

	UniformLocation(program uint32, name string) int32
	Uniform1iv(location int32, v []int32)
	Uniform1fv(location int32, v []float32)
	Uniform2fv(location int32, v []float32)
	Uniform3fv(location int32, v []float32)
	Uniform4fv(location int32, v []float32)
	UniformMatrix4fv(location int32, v []float32)
	GetUniformf(program uint32, location int32) float32
}
