// Package gldriver implements shader.GL on top of OpenGL 4.1 core, and holds
// the few fixed call sequences the scenes need.
//
// Everything in this package must be called on the thread owning the context.
package gldriver

import (
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stewi1014/glhello/shader"
)

// Init loads the OpenGL function pointers for the current context.
func Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl.Init failed: %w", err)
	}

	slog.Info("OpenGL initialised",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)
	return nil
}

var _ shader.GL = Driver{}

// Driver is the OpenGL implementation of shader.GL.
type Driver struct{}

func stageType(stage shader.Stage) uint32 {
	switch stage {
	case shader.Vertex:
		return gl.VERTEX_SHADER
	case shader.Fragment:
		return gl.FRAGMENT_SHADER
	}
	panic(fmt.Sprintf("gldriver: unknown shader stage %d", stage))
}

func (Driver) CreateShader(stage shader.Stage) uint32 {
	return gl.CreateShader(stageType(stage))
}

func (Driver) CompileShader(id uint32, source string) (bool, string) {
	csources, free := gl.Strs(source + "\x00")
	defer free()

	gl.ShaderSource(id, 1, csources, nil)
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}

	var l int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &l)

	log := strings.Repeat("\x00", int(l+1))
	gl.GetShaderInfoLog(id, l, nil, gl.Str(log))
	return false, log
}

func (Driver) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (Driver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (Driver) LinkProgram(program uint32, shaders ...uint32) (bool, string) {
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}

	var l int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &l)

	log := strings.Repeat("\x00", int(l+1))
	gl.GetProgramInfoLog(program, l, nil, gl.Str(log))
	return false, log
}

func (Driver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (Driver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (Driver) CurrentProgram() uint32 {
	var id int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &id)
	return uint32(id)
}

func (Driver) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (Driver) Uniform1iv(location int32, v []int32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1iv(location, int32(len(v)), &v[0])
}

func (Driver) Uniform1fv(location int32, v []float32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1fv(location, int32(len(v)), &v[0])
}

func (Driver) Uniform2fv(location int32, v []float32) {
	if len(v) < 2 {
		return
	}
	gl.Uniform2fv(location, int32(len(v)/2), &v[0])
}

func (Driver) Uniform3fv(location int32, v []float32) {
	if len(v) < 3 {
		return
	}
	gl.Uniform3fv(location, int32(len(v)/3), &v[0])
}

func (Driver) Uniform4fv(location int32, v []float32) {
	if len(v) < 4 {
		return
	}
	gl.Uniform4fv(location, int32(len(v)/4), &v[0])
}

func (Driver) UniformMatrix4fv(location int32, v []float32) {
	if len(v) < 16 {
		return
	}
	gl.UniformMatrix4fv(location, int32(len(v)/16), false, &v[0])
}

func (Driver) GetUniformf(program uint32, location int32) float32 {
	// large enough for a mat4, glGetUniformfv writes the whole uniform
	var v [16]float32
	gl.GetUniformfv(program, location, &v[0])
	return v[0]
}

// GLError lists the error flags that were set in the context.
type GLError struct {
	Codes []uint32
}

func (e *GLError) Error() string {
	names := make([]string, len(e.Codes))
	for i, code := range e.Codes {
		names[i] = errorName(code)
	}
	return "OpenGL error: " + strings.Join(names, ", ")
}

func errorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "invalidEnum"
	case gl.INVALID_VALUE:
		return "invalidValue"
	case gl.INVALID_OPERATION:
		return "invalidOperation"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "invalidFramebufferOperation"
	case gl.OUT_OF_MEMORY:
		return "outOfMemory"
	}
	return fmt.Sprintf("unknown(0x%x)", code)
}

// CheckError drains the context's error flags, returning a *GLError if any
// were set.
func CheckError() error {
	var codes []uint32
	for i := 0; i < 16; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		codes = append(codes, code)
	}

	if len(codes) == 0 {
		return nil
	}
	return &GLError{Codes: codes}
}

func Clear(colour [4]float32) {
	gl.ClearColor(colour[0], colour[1], colour[2], colour[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// ReadPixels reads the bottom-left origin framebuffer into an image. Rows come
// out bottom-up.
func ReadPixels(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return img
	}

	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	return img
}
