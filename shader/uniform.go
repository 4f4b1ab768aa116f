package shader

import (
	"fmt"
	"math"
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
)

// location returns the cached location of the named uniform, or -1 if the
// program doesn't have it. Lookups of missing names are cached as well, so the
// debug line is written once per name.
func (p *Program) location(name string) int32 {
	if p.state != Linked {
		return -1
	}

	loc, ok := p.locations[name]
	if ok {
		return loc
	}

	loc = p.gl.UniformLocation(p.id, name)
	p.locations[name] = loc
	if loc < 0 {
		p.logger.Debug("uniform not found", "program", p.id, "name", name)
	}
	return loc
}

// The setters below upload to the active program. They have no effect unless p
// is active, and silently do nothing for names p doesn't declare.

func (p *Program) SetBool(name string, value bool) {
	if loc := p.location(name); loc >= 0 {
		p.gl.Uniform1iv(loc, []int32{boolToInt(value)})
	}
}

func (p *Program) SetInt(name string, value int32) {
	if loc := p.location(name); loc >= 0 {
		p.gl.Uniform1iv(loc, []int32{value})
	}
}

func (p *Program) SetFloat(name string, value float32) {
	if loc := p.location(name); loc >= 0 {
		p.gl.Uniform1fv(loc, []float32{value})
	}
}

func (p *Program) SetVec2(name string, value mgl32.Vec2) {
	if loc := p.location(name); loc >= 0 {
		p.gl.Uniform2fv(loc, value[:])
	}
}

func (p *Program) SetVec3(name string, value mgl32.Vec3) {
	if loc := p.location(name); loc >= 0 {
		p.gl.Uniform3fv(loc, value[:])
	}
}

func (p *Program) SetVec4(name string, value mgl32.Vec4) {
	if loc := p.location(name); loc >= 0 {
		p.gl.Uniform4fv(loc, value[:])
	}
}

// SetMat4 uploads a column-major 4x4 matrix.
func (p *Program) SetMat4(name string, value mgl32.Mat4) {
	if loc := p.location(name); loc >= 0 {
		p.gl.UniformMatrix4fv(loc, value[:])
	}
}

// GetFloat reads back the first component of a float uniform.
// ok is false if the program doesn't declare name.
func (p *Program) GetFloat(name string) (value float32, ok bool) {
	loc := p.location(name)
	if loc < 0 {
		return 0, false
	}
	return p.gl.GetUniformf(p.id, loc), true
}

type uniformKind int

const (
	kindInt uniformKind = iota
	kindFloat
	kindVec2
	kindVec3
	kindVec4
	kindMat4
)

var uniformKinds = map[reflect.Type]uniformKind{
	reflect.TypeOf(false):        kindInt,
	reflect.TypeOf(int(0)):       kindInt,
	reflect.TypeOf(int32(0)):     kindInt,
	reflect.TypeOf(float32(0)):   kindFloat,
	reflect.TypeOf(mgl32.Vec2{}): kindVec2,
	reflect.TypeOf(mgl32.Vec3{}): kindVec3,
	reflect.TypeOf(mgl32.Vec4{}): kindVec4,
	reflect.TypeOf(mgl32.Mat4{}): kindMat4,
}

// SetUniforms uploads every field of the struct v (or pointer to one) that has
// a `uniform:"name"` tag. Supported field types are bool, int, int32, float32,
// mgl32.Vec2, Vec3, Vec4, Mat4 and fixed size arrays of them.
func (p *Program) SetUniforms(v any) error {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("uniforms must be a struct, got %T", v)
	}

	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("uniform")
		if name == "" || name == "-" {
			continue
		}

		if err := p.upload(name, rv.Field(i)); err != nil {
			return fmt.Errorf("uniform %q: %w", name, err)
		}
	}
	return nil
}

func (p *Program) upload(name string, f reflect.Value) error {
	t := f.Type()
	count := 1
	array := false
	if _, ok := uniformKinds[t]; !ok && t.Kind() == reflect.Array {
		t, count, array = t.Elem(), f.Len(), true
	}

	kind, ok := uniformKinds[t]
	if !ok {
		return fmt.Errorf("unsupported uniform type %v", f.Type())
	}

	loc := p.location(name)
	if loc < 0 || count == 0 {
		return nil
	}

	elem := func(i int) reflect.Value {
		if array {
			return f.Index(i)
		}
		return f
	}

	switch kind {
	case kindInt:
		data := make([]int32, count)
		for i := range data {
			e := elem(i)
			if e.Kind() == reflect.Bool {
				data[i] = boolToInt(e.Bool())
				continue
			}
			n := e.Int()
			if n < math.MinInt32 || n > math.MaxInt32 {
				return fmt.Errorf("value %d overflows a 32 bit int", n)
			}
			data[i] = int32(n)
		}
		p.gl.Uniform1iv(loc, data)

	case kindFloat:
		data := make([]float32, count)
		for i := range data {
			data[i] = float32(elem(i).Float())
		}
		p.gl.Uniform1fv(loc, data)

	default:
		var data []float32
		for i := 0; i < count; i++ {
			e := elem(i)
			for j := 0; j < e.Len(); j++ {
				data = append(data, float32(e.Index(j).Float()))
			}
		}

		switch kind {
		case kindVec2:
			p.gl.Uniform2fv(loc, data)
		case kindVec3:
			p.gl.Uniform3fv(loc, data)
		case kindVec4:
			p.gl.Uniform4fv(loc, data)
		case kindMat4:
			p.gl.UniformMatrix4fv(loc, data)
		}
	}

	return nil
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
