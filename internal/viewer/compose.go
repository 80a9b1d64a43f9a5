package viewer

import (
	"github.com/Faultbox/heightview/internal/engine/input"
	"github.com/Faultbox/heightview/pkg/math"
)

// Projection parameters.
const (
	FieldOfView = 70 // degrees
	NearPlane   = 0.1
	FarPlane    = 100
	OrthoExtent = 5
)

// Transforms are the matrices for one frame.
type Transforms struct {
	Model      math.Mat4
	View       math.Mat4
	ModelView  math.Mat4
	Projection math.Mat4
}

// Compose builds the frame matrices from s.
//
// Model is Scale(1, HeightScale, 1) * Pitch * Yaw * Pan * Scale(Zoom): zoom is
// applied to the mesh first and the height scale last.
func Compose(s State) (Transforms, error) {
	view, err := s.Camera.ViewMatrix()
	if err != nil {
		return Transforms{}, err
	}

	model := math.Scale(1, s.HeightScale, 1).
		Mul(math.RotateX(s.Pitch)).
		Mul(math.RotateY(s.Yaw)).
		Mul(math.Translate(s.ModelPan.X, s.ModelPan.Y, s.ModelPan.Z)).
		Mul(math.UniformScale(s.Zoom))

	return Transforms{
		Model:      model,
		View:       view,
		ModelView:  view.Mul(model),
		Projection: ProjectionMatrix(s),
	}, nil
}

// ProjectionMatrix returns the projection for s's mode and viewport.
func ProjectionMatrix(s State) math.Mat4 {
	if s.Projection == input.Orthographic {
		return math.Ortho(-OrthoExtent, OrthoExtent, -OrthoExtent, OrthoExtent, NearPlane, FarPlane)
	}
	return math.Perspective(math.Deg2Rad(FieldOfView), s.Viewport.Aspect(), NearPlane, FarPlane)
}
