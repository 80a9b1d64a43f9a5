package viewer

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/heightview/internal/engine/camera"
	"github.com/Faultbox/heightview/internal/engine/input"
	"github.com/Faultbox/heightview/internal/engine/interaction"
	"github.com/Faultbox/heightview/pkg/math"
)

const tol = 1e-5

func nearVec(a, b math.Vec3) bool {
	d := a.Sub(b)
	return d.Length() < 1e-4
}

func testState() State {
	s := NewState(DefaultOptions())
	s.Viewport = interaction.Viewport{Width: 800, Height: 600}
	return s
}

func TestComposeDefault(t *testing.T) {
	s := testState()
	tr, err := Compose(s)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if !tr.Model.ApproxEqual(math.Identity(), tol) {
		t.Errorf("default model = %v, want identity", tr.Model)
	}
	view, _ := camera.Default().ViewMatrix()
	if !tr.View.ApproxEqual(view, tol) || !tr.ModelView.ApproxEqual(view, tol) {
		t.Errorf("view/modelview do not match the default camera")
	}

	want := math.Perspective(math.Deg2Rad(70), 800.0/600.0, 0.1, 100)
	if !tr.Projection.ApproxEqual(want, tol) {
		t.Errorf("projection = %v, want %v", tr.Projection, want)
	}
}

func TestComposeOrthographic(t *testing.T) {
	s := testState()
	s.Projection = input.Orthographic
	tr, err := Compose(s)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if want := math.Ortho(-5, 5, -5, 5, 0.1, 100); !tr.Projection.ApproxEqual(want, tol) {
		t.Errorf("projection = %v, want %v", tr.Projection, want)
	}
}

func TestProjectionZeroDimensionViewport(t *testing.T) {
	tests := []struct {
		name   string
		vp     interaction.Viewport
		aspect float32
	}{
		{"zero height", interaction.Viewport{Width: 640}, 640},
		{"zero width", interaction.Viewport{Height: 600}, 1.0 / 600},
		{"empty", interaction.Viewport{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Reduce(NewState(DefaultOptions()), input.Event{
				Type: input.EventResize, Width: tt.vp.Width, Height: tt.vp.Height,
			})
			_, f := RenderFrame(s)
			if f.Err != nil {
				t.Fatalf("frame error: %v", f.Err)
			}
			for i, v := range f.Projection {
				if gomath.IsInf(float64(v), 0) || gomath.IsNaN(float64(v)) {
					t.Fatalf("projection[%d] = %v", i, v)
				}
			}
			want := math.Perspective(math.Deg2Rad(70), tt.aspect, 0.1, 100)
			if !f.Projection.ApproxEqual(want, 1e-3) {
				t.Errorf("projection = %v, want aspect %v", f.Projection, tt.aspect)
			}
		})
	}
}

func TestComposeOrder(t *testing.T) {
	// Zoom applies to the mesh first, then pan.
	s := testState()
	s.Zoom = 2
	s.ModelPan = math.Vec3{X: 1}
	tr, _ := Compose(s)
	if p := tr.Model.TransformPoint(math.Vec3{X: 1}); !nearVec(p, math.Vec3{X: 3}) {
		t.Errorf("zoom then pan: got %v, want (3, 0, 0)", p)
	}

	// Height scale applies after pitch: +Z pitched to -Y is then stretched.
	s = testState()
	s.Pitch = gomath.Pi / 2
	s.HeightScale = 2
	tr, _ = Compose(s)
	if p := tr.Model.TransformPoint(math.Vec3{Z: 1}); !nearVec(p, math.Vec3{Y: -2}) {
		t.Errorf("pitch then height scale: got %v, want (0, -2, 0)", p)
	}

	// Yaw applies before pitch.
	s = testState()
	s.Pitch = gomath.Pi / 2
	s.Yaw = gomath.Pi / 2
	tr, _ = Compose(s)
	want := math.RotateX(s.Pitch).Mul(math.RotateY(s.Yaw))
	if !tr.Model.ApproxEqual(want, tol) {
		t.Errorf("model = %v, want RotateX * RotateY", tr.Model)
	}
}

func TestComposeDoesNotMutate(t *testing.T) {
	s := testState()
	s.Zoom = 3
	before := s
	if _, err := Compose(s); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if s != before {
		t.Error("Compose modified its argument")
	}
}

func TestRenderFrame(t *testing.T) {
	s := testState()
	s, f := RenderFrame(s)
	if f.Err != nil {
		t.Fatalf("frame error: %v", f.Err)
	}
	if f.Index != 1 || s.Frames != 1 {
		t.Errorf("frame index = %d, frames = %d; want 1, 1", f.Index, s.Frames)
	}
	if f.Primitive != Triangles || f.VertexCount != 36 {
		t.Errorf("frame = %v x %d, want triangles x 36", f.Primitive, f.VertexCount)
	}

	s.Wireframe = true
	_, f = RenderFrame(s)
	if f.Primitive != Lines || f.Index != 2 {
		t.Errorf("wireframe frame = %v #%d, want lines #2", f.Primitive, f.Index)
	}
}

func TestRenderFrameDegenerateCamera(t *testing.T) {
	s := testState()
	s.Camera = camera.Camera{Eye: math.Vec3{Y: 3}, Up: math.Vec3{Y: 1}}
	_, f := RenderFrame(s)
	if f.Err == nil {
		t.Error("expected frame error for a camera looking along its up hint")
	}
}
