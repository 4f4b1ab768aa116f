package programs

func init() {
	NewProgram(Program{
		Name:        "colors",
		Description: "a triangle with a colour per vertex, interpolated across the face",
		Passes: []Pass{{
			VertexPath:   "shaders/colors.vert",
			FragmentPath: "shaders/colors.frag",
			Mesh: Mesh{
				Vertices: []float32{
					// position      colour
					-0.5, -0.5, 0.0, 1.0, 0.0, 0.0,
					0.5, -0.5, 0.0, 0.0, 1.0, 0.0,
					0.0, 0.5, 0.0, 0.0, 0.0, 1.0,
				},
				Layout: []Attribute{
					{Location: 0, Size: 3},
					{Location: 1, Size: 3},
				},
			},
		}},
	})
}
