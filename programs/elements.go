package programs

func init() {
	NewProgram(Program{
		Name:        "elements",
		Description: "a rectangle drawn from four indexed vertices",
		Passes: []Pass{{
			VertexPath:   "shaders/position.vert",
			FragmentPath: "shaders/orange.frag",
			Mesh: Mesh{
				Vertices: []float32{
					0.5, 0.5, 0.0, // top right
					0.5, -0.5, 0.0, // bottom right
					-0.5, -0.5, 0.0, // bottom left
					-0.5, 0.5, 0.0, // top left
				},
				Indices: []uint32{
					0, 1, 3,
					1, 2, 3,
				},
				Layout: positionLayout,
			},
		}},
	})
}
