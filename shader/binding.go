package shader

import "github.com/go-gl/mathgl/mgl32"

// Binding is a scoped activation of a Program. While it is held the program is
// the active one; Release restores whichever program was active before.
//
// Setters called after Release panic with ErrReleased.
type Binding struct {
	program  *Program
	previous previous
	released bool
}

// previous is what was active when a Binding was made. A handle owned by one of
// our Programs is tracked through the Program, since Reload and Delete replace
// or free the handle while the binding is held.
type previous struct {
	program *Program
	id      uint32
}

func (p previous) restore(gl GL) {
	id := p.id
	if p.program != nil {
		id = 0
		if p.program.state == Linked {
			id = p.program.id
		}
	}
	gl.UseProgram(id)
}

// Bind makes p the active program until the returned Binding is released.
func (p *Program) Bind() (*Binding, error) {
	if p.state != Linked {
		return nil, ErrDeleted
	}

	id := p.gl.CurrentProgram()
	prev := previous{id: id}
	if id != 0 {
		prev.program = owner(p.gl, id)
	}

	p.gl.UseProgram(p.id)
	return &Binding{
		program:  p,
		previous: prev,
	}, nil
}

// With binds p for the duration of fn.
func (p *Program) With(fn func(b *Binding) error) error {
	b, err := p.Bind()
	if err != nil {
		return err
	}
	defer b.Release()

	return fn(b)
}

func (b *Binding) Program() *Program {
	return b.program
}

// Release restores the previously active program. If that program was
// reloaded meanwhile its new handle is restored; if it was deleted no program
// is left active. Extra calls do nothing.
func (b *Binding) Release() {
	if b.released {
		return
	}
	b.released = true
	b.previous.restore(b.program.gl)
}

func (b *Binding) check() {
	if b.released {
		panic(ErrReleased)
	}
}

func (b *Binding) SetBool(name string, value bool) {
	b.check()
	b.program.SetBool(name, value)
}

func (b *Binding) SetInt(name string, value int32) {
	b.check()
	b.program.SetInt(name, value)
}

func (b *Binding) SetFloat(name string, value float32) {
	b.check()
	b.program.SetFloat(name, value)
}

func (b *Binding) SetVec2(name string, value mgl32.Vec2) {
	b.check()
	b.program.SetVec2(name, value)
}

func (b *Binding) SetVec3(name string, value mgl32.Vec3) {
	b.check()
	b.program.SetVec3(name, value)
}

func (b *Binding) SetVec4(name string, value mgl32.Vec4) {
	b.check()
	b.program.SetVec4(name, value)
}

func (b *Binding) SetMat4(name string, value mgl32.Mat4) {
	b.check()
	b.program.SetMat4(name, value)
}

func (b *Binding) SetUniforms(v any) error {
	b.check()
	return b.program.SetUniforms(v)
}

func (b *Binding) GetFloat(name string) (float32, bool) {
	b.check()
	return b.program.GetFloat(name)
}
