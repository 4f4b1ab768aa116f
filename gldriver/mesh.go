package gldriver

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stewi1014/glhello/programs"
)

// Mesh is geometry uploaded to a vertex array object.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// NewMesh uploads the interleaved vertices and optional indices of m.
func NewMesh(m programs.Mesh) *Mesh {
	mesh := &Mesh{count: int32(m.Count())}

	gl.GenVertexArrays(1, &mesh.vao)
	gl.BindVertexArray(mesh.vao)

	gl.GenBuffers(1, &mesh.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	if len(m.Indices) > 0 {
		gl.GenBuffers(1, &mesh.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mesh.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}

	stride := int32(m.Stride() * 4)
	offset := uintptr(0)
	for _, attr := range m.Layout {
		gl.VertexAttribPointerWithOffset(attr.Location, attr.Size, gl.FLOAT, false, stride, offset)
		gl.EnableVertexAttribArray(attr.Location)
		offset += uintptr(attr.Size) * 4
	}

	// the element buffer binding is part of the VAO, so only the array buffer
	// is unbound before the VAO
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return mesh
}

func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	if m.ebo != 0 {
		gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}
	gl.BindVertexArray(0)
}

func (m *Mesh) Delete() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
	*m = Mesh{}
}
