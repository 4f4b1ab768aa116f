package programs

import (
	"embed"
	"errors"
	"fmt"
	"sort"
)

// Shaders holds the GLSL sources referenced by every Pass.
//
//go:embed shaders
var Shaders embed.FS

var ErrUnknownProgram = errors.New("unknown program")

func NumPrograms() int {
	return len(programs)
}

func GetProgram(i int) Program {
	return programs[i]
}

// Lookup finds a registered program by name.
func Lookup(name string) (Program, error) {
	for _, p := range programs {
		if p.Name == name {
			return p, nil
		}
	}
	return Program{}, fmt.Errorf("%w %q", ErrUnknownProgram, name)
}

// Names returns the names of all registered programs, sorted.
func Names() []string {
	names := make([]string, len(programs))
	for i, p := range programs {
		names[i] = p.Name
	}
	sort.Strings(names)
	return names
}

func NewProgram(p Program) error {
	if _, err := Lookup(p.Name); err == nil {
		return fmt.Errorf("program %q already registered", p.Name)
	}
	programs = append(programs, p)
	return nil
}

var programs []Program

// Program is one tutorial scene. Each pass is drawn in order with its own
// shader program and mesh.
type Program struct {
	Name        string
	Description string
	Passes      []Pass
}

// UniformFunc returns the uniforms for a pass at time t seconds since start.
// The result is a struct with `uniform:"name"` tagged fields.
type UniformFunc func(t float64) any

type Pass struct {
	// VertexPath and FragmentPath name files in Shaders, or in the shader
	// directory when the sources are loaded from disk.
	VertexPath   string
	FragmentPath string
	Mesh         Mesh
	Uniforms     UniformFunc
}

// Attribute is one float vertex attribute in an interleaved layout.
type Attribute struct {
	Location uint32
	Size     int32
}

// Mesh is interleaved float vertex data, optionally indexed.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
	Layout   []Attribute
}

// Stride is the number of floats per vertex.
func (m Mesh) Stride() int {
	stride := 0
	for _, a := range m.Layout {
		stride += int(a.Size)
	}
	return stride
}

// Count is the number of vertices drawn.
func (m Mesh) Count() int {
	if len(m.Indices) > 0 {
		return len(m.Indices)
	}
	if stride := m.Stride(); stride > 0 {
		return len(m.Vertices) / stride
	}
	return 0
}
