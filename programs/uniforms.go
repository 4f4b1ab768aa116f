package programs

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PulseUniforms drives shaders/transform.vert and shaders/pulse.frag.
type PulseUniforms struct {
	Colour     mgl32.Vec4 `uniform:"ourColor"`
	Brightness float32    `uniform:"brightness"`
	Invert     bool       `uniform:"invert"`
	Transform  mgl32.Mat4 `uniform:"transform"`
}

// Pulse fades the green channel in and out, spins the quad about z and
// inverts the colour every other five seconds.
func Pulse(t float64) PulseUniforms {
	green := float32(math.Sin(t)/2 + 0.5)
	return PulseUniforms{
		Colour:     mgl32.Vec4{0, green, 0, 1},
		Brightness: 0.75 + 0.25*float32(math.Cos(t*2)),
		Invert:     int(t/5)%2 == 1,
		Transform:  mgl32.HomogRotate3DZ(float32(t)).Mul4(mgl32.Scale3D(0.75, 0.75, 1)),
	}
}

func init() {
	NewProgram(Program{
		Name:        "uniforms",
		Description: "a spinning rectangle whose colour is set from uniforms every frame",
		Passes: []Pass{{
			VertexPath:   "shaders/transform.vert",
			FragmentPath: "shaders/pulse.frag",
			Mesh: Mesh{
				Vertices: []float32{
					0.5, 0.5, 0.0,
					0.5, -0.5, 0.0,
					-0.5, -0.5, 0.0,
					-0.5, 0.5, 0.0,
				},
				Indices: []uint32{
					0, 1, 3,
					1, 2, 3,
				},
				Layout: positionLayout,
			},
			Uniforms: func(t float64) any { return Pulse(t) },
		}},
	})
}
