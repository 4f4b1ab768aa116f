package shader

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
)

type fakeShader struct {
	stage   Stage
	source  string
	deleted bool
}

type fakeProgram struct {
	linked   bool
	deleted  bool
	uniforms map[string]int32
	ints     map[int32][]int32
	floats   map[int32][]float32
}

// fakeGL stands in for a graphics context. A stage compiles if it has a main
// function and balanced braces, and linking picks up `uniform` declarations
// from the attached sources. Misuse is recorded in diagnostics.
type fakeGL struct {
	next        uint32
	shaders     map[uint32]*fakeShader
	programs    map[uint32]*fakeProgram
	current     uint32
	linkLog     string
	lookups     int
	diagnostics []string
}

func newFakeGL() *fakeGL {
	return &fakeGL{
		shaders:  make(map[uint32]*fakeShader),
		programs: make(map[uint32]*fakeProgram),
	}
}

func (f *fakeGL) diag(format string, args ...any) {
	f.diagnostics = append(f.diagnostics, fmt.Sprintf(format, args...))
}

func (f *fakeGL) CreateShader(stage Stage) uint32 {
	f.next++
	f.shaders[f.next] = &fakeShader{stage: stage}
	return f.next
}

func (f *fakeGL) CompileShader(shader uint32, source string) (bool, string) {
	s, ok := f.shaders[shader]
	if !ok {
		f.diag("compile of unknown shader %v", shader)
		return false, ""
	}
	s.source = source

	if !strings.Contains(source, "void main()") {
		return false, "0:1(1): error: syntax error, unexpected end of file\n\x00"
	}
	if strings.Count(source, "{") != strings.Count(source, "}") {
		return false, "0:7(1): error: syntax error, unexpected end of file, expecting '}'\n\x00"
	}
	return true, ""
}

func (f *fakeGL) DeleteShader(shader uint32) {
	s, ok := f.shaders[shader]
	if !ok || s.deleted {
		f.diag("delete of unknown shader %v", shader)
		return
	}
	s.deleted = true
}

func (f *fakeGL) CreateProgram() uint32 {
	f.next++
	f.programs[f.next] = &fakeProgram{
		uniforms: make(map[string]int32),
		ints:     make(map[int32][]int32),
		floats:   make(map[int32][]float32),
	}
	return f.next
}

func (f *fakeGL) LinkProgram(program uint32, shaders ...uint32) (bool, string) {
	p, ok := f.programs[program]
	if !ok {
		f.diag("link of unknown program %v", program)
		return false, ""
	}

	var next int32
	for _, id := range shaders {
		s, ok := f.shaders[id]
		if !ok || s.deleted {
			f.diag("attach of unknown shader %v", id)
			return false, ""
		}

		for _, line := range strings.Split(s.source, "\n") {
			fields := strings.Fields(strings.TrimSpace(line))
			if len(fields) < 3 || fields[0] != "uniform" {
				continue
			}
			name := strings.TrimSuffix(fields[2], ";")
			if i := strings.IndexByte(name, '['); i >= 0 {
				name = name[:i]
			}
			if _, ok := p.uniforms[name]; !ok {
				p.uniforms[name] = next
				next++
			}
		}
	}

	if f.linkLog != "" {
		return false, f.linkLog
	}
	p.linked = true
	return true, ""
}

func (f *fakeGL) DeleteProgram(program uint32) {
	p, ok := f.programs[program]
	if !ok || p.deleted {
		f.diag("delete of unknown program %v", program)
		return
	}
	p.deleted = true
}

func (f *fakeGL) UseProgram(program uint32) {
	if program != 0 {
		p, ok := f.programs[program]
		if !ok || !p.linked || p.deleted {
			f.diag("GL_INVALID_OPERATION: use of unusable program %v", program)
		}
	}
	f.current = program
}

func (f *fakeGL) CurrentProgram() uint32 {
	return f.current
}

func (f *fakeGL) UniformLocation(program uint32, name string) int32 {
	f.lookups++
	p, ok := f.programs[program]
	if !ok || !p.linked {
		f.diag("uniform lookup on unlinked program %v", program)
		return -1
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return -1
	}
	return loc
}

func (f *fakeGL) active() *fakeProgram {
	p, ok := f.programs[f.current]
	if !ok {
		f.diag("uniform upload with no active program")
		return nil
	}
	return p
}

func (f *fakeGL) Uniform1iv(location int32, v []int32) {
	if location == -1 {
		return
	}
	if p := f.active(); p != nil {
		p.ints[location] = append([]int32(nil), v...)
	}
}

func (f *fakeGL) uploadFloats(location int32, v []float32) {
	if location == -1 {
		return
	}
	if p := f.active(); p != nil {
		p.floats[location] = append([]float32(nil), v...)
	}
}

func (f *fakeGL) Uniform1fv(location int32, v []float32)       { f.uploadFloats(location, v) }
func (f *fakeGL) Uniform2fv(location int32, v []float32)       { f.uploadFloats(location, v) }
func (f *fakeGL) Uniform3fv(location int32, v []float32)       { f.uploadFloats(location, v) }
func (f *fakeGL) Uniform4fv(location int32, v []float32)       { f.uploadFloats(location, v) }
func (f *fakeGL) UniformMatrix4fv(location int32, v []float32) { f.uploadFloats(location, v) }

func (f *fakeGL) GetUniformf(program uint32, location int32) float32 {
	p, ok := f.programs[program]
	if !ok || len(p.floats[location]) == 0 {
		return 0
	}
	return p.floats[location][0]
}

// Draw checks the state a draw call would need.
func (f *fakeGL) Draw() {
	p, ok := f.programs[f.current]
	if !ok || !p.linked || p.deleted {
		f.diag("GL_INVALID_OPERATION: draw without a usable program")
	}
}

// uniform returns the values last uploaded to name in program.
func (f *fakeGL) uniform(program uint32, name string) ([]float32, []int32) {
	p := f.programs[program]
	loc, ok := p.uniforms[name]
	if !ok {
		return nil, nil
	}
	return p.floats[loc], p.ints[loc]
}

func (f *fakeGL) liveShaders() int {
	n := 0
	for _, s := range f.shaders {
		if !s.deleted {
			n++
		}
	}
	return n
}

func (f *fakeGL) livePrograms() int {
	n := 0
	for _, p := range f.programs {
		if !p.deleted {
			n++
		}
	}
	return n
}

func testLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

const (
	positionVertex = `#version 330 core
layout (location = 0) in vec3 aPos;

void main() {
	gl_Position = vec4(aPos, 1.0);
}
`

	orangeFragment = `#version 330 core
out vec4 FragColor;

void main() {
	FragColor = vec4(1.0f, 0.5f, 0.2f, 1.0f);
}
`

	uniformFragment = `#version 330 core
out vec4 FragColor;

uniform vec4 ourColor;
uniform float alpha;
uniform int mode;
uniform bool enabled;
uniform mat4 transform;
uniform vec2 offset;
uniform vec3 lights[2];

void main() {
	FragColor = vec4(ourColor.rgb, alpha);
}
`

	brokenFragment = `#version 330 core
out vec4 FragColor;

void main() {
	FragColor = vec4(1.0)
`
)
