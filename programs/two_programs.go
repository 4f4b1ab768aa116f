package programs

func init() {
	NewProgram(Program{
		Name:        "two-programs",
		Description: "two triangles, each with its own vertex array and shader program",
		Passes: []Pass{
			{
				VertexPath:   "shaders/position.vert",
				FragmentPath: "shaders/orange.frag",
				Mesh: Mesh{
					Vertices: []float32{
						-0.9, -0.5, 0.0,
						-0.0, -0.5, 0.0,
						-0.45, 0.5, 0.0,
					},
					Layout: positionLayout,
				},
			},
			{
				VertexPath:   "shaders/position.vert",
				FragmentPath: "shaders/yellow.frag",
				Mesh: Mesh{
					Vertices: []float32{
						0.0, -0.5, 0.0,
						0.9, -0.5, 0.0,
						0.45, 0.5, 0.0,
					},
					Layout: positionLayout,
				},
			},
		},
	})
}
