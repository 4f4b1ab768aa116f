package programs

var positionLayout = []Attribute{{Location: 0, Size: 3}}

func init() {
	NewProgram(Program{
		Name:        "triangle",
		Description: "a single orange triangle",
		Passes: []Pass{{
			VertexPath:   "shaders/position.vert",
			FragmentPath: "shaders/orange.frag",
			Mesh: Mesh{
				Vertices: []float32{
					-0.5, -0.5, 0.0,
					0.5, -0.5, 0.0,
					0.0, 0.5, 0.0,
				},
				Layout: positionLayout,
			},
		}},
	})
}
