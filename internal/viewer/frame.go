package viewer

// Frame is everything a backend needs to draw one frame.
type Frame struct {
	Transforms
	Index       uint64
	Primitive   Primitive
	VertexCount int
	Err         error
}

// RenderFrame composes the frame for s and returns the state with its frame
// counter advanced. A frame with Err set must not be drawn.
func RenderFrame(s State) (State, Frame) {
	s.Frames++
	f := Frame{
		Index:       s.Frames,
		Primitive:   Triangles,
		VertexCount: s.VertexCount,
	}
	if s.Wireframe {
		f.Primitive = Lines
	}

	t, err := Compose(s)
	if err != nil {
		f.Err = err
		return s, f
	}
	f.Transforms = t
	return s, f
}
