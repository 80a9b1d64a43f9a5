package remote

import (
	"github.com/Faultbox/heightview/internal/viewer"
	"github.com/Faultbox/heightview/pkg/math"
)

// Server-to-client message types. Client-to-server text messages are
// input.Event values; binary messages are image files to load.
const (
	MessageFrame = "frame"
	MessageMesh  = "mesh"
	MessageError = "error"
)

// FrameMessage carries the matrices for one frame. Matrices are column-major.
type FrameMessage struct {
	Type        string    `json:"type"`
	Index       uint64    `json:"index"`
	ModelView   math.Mat4 `json:"model_view"`
	Projection  math.Mat4 `json:"projection"`
	Primitive   string    `json:"primitive"`
	VertexCount int       `json:"vertex_count"`
	Subject     string    `json:"subject"`
	Error       string    `json:"error,omitempty"`
}

// MeshMessage announces a new mesh. It is followed by one binary message
// holding the mesh as a GLB asset.
type MeshMessage struct {
	Type       string     `json:"type"`
	Generation uint64     `json:"generation"`
	Source     string     `json:"source"`
	Width      int        `json:"width,omitempty"`
	Height     int        `json:"height,omitempty"`
	Triangles  int        `json:"triangles"`
	Min        [3]float32 `json:"min"`
	Max        [3]float32 `json:"max"`
}

// ErrorMessage reports a rejected message or a failed load.
type ErrorMessage struct {
	Type       string `json:"type"`
	Error      string `json:"error"`
	Generation uint64 `json:"generation,omitempty"`
}

func newFrameMessage(s viewer.State, f viewer.Frame) FrameMessage {
	m := FrameMessage{
		Type:        MessageFrame,
		Index:       f.Index,
		ModelView:   f.ModelView,
		Projection:  f.Projection,
		Primitive:   f.Primitive.String(),
		VertexCount: f.VertexCount,
		Subject:     s.Subject.String(),
	}
	if f.Err != nil {
		m.Error = f.Err.Error()
	}
	return m
}
