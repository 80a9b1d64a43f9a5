package viewer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/Faultbox/heightview/internal/engine/input"
	"github.com/Faultbox/heightview/internal/engine/terrain"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetGray(x, y, color.Gray{Y: uint8((x + y) * 20)})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func newTestViewer(t *testing.T) (*Viewer, *recordingBackend) {
	t.Helper()
	b := newRecordingBackend()
	v, err := New(b, DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(v.Close)
	return v, b
}

func waitCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestNewUploadsCube(t *testing.T) {
	v, b := newTestViewer(t)

	if b.programs != 1 {
		t.Errorf("programs compiled = %d, want 1", b.programs)
	}
	if len(b.buffers) != 1 || b.buffers[1] != 108 {
		t.Errorf("buffers = %v, want one buffer of 108 floats", b.buffers)
	}
	if mesh, source := v.Mesh(); mesh.TriangleCount() != 12 || source != "" {
		t.Errorf("initial mesh = %d triangles from %q", mesh.TriangleCount(), source)
	}
}

func TestNewCompileFailure(t *testing.T) {
	b := newRecordingBackend()
	b.compileErr = errors.New("0:1: syntax error")

	_, err := New(b, DefaultOptions())
	if !errors.Is(err, b.compileErr) {
		t.Errorf("New error = %v, want wrapped compile error", err)
	}
}

func TestDrawSetsUniforms(t *testing.T) {
	v, b := newTestViewer(t)
	v.Handle(input.Event{Type: input.EventResize, Width: 800, Height: 600})
	v.Handle(input.Event{Type: input.EventKeyDown, Key: input.KeyWireframe})

	f, err := v.Draw()
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}

	if got := b.uniforms[UniformModelView]; got != f.ModelView {
		t.Errorf("modelview uniform = %v, want %v", got, f.ModelView)
	}
	if got := b.uniforms[UniformProjection]; got != f.Projection {
		t.Errorf("projection uniform = %v, want %v", got, f.Projection)
	}
	want := drawCall{program: 1, buffer: 1, primitive: Lines, count: 36}
	if len(b.draws) != 1 || b.draws[0] != want {
		t.Errorf("draws = %+v, want [%+v]", b.draws, want)
	}
	if v.State().Frames != 1 {
		t.Errorf("frames = %d, want 1", v.State().Frames)
	}
}

func TestLoadSwapsMesh(t *testing.T) {
	v, b := newTestViewer(t)

	v.OpenBytes("ramp.png", encodePNG(t, 4, 3))
	if err := v.Wait(waitCtx(t)); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	s := v.State()
	if s.Subject != SubjectTerrain || s.VertexCount != 6*4*3 {
		t.Errorf("state = %v with %d vertices, want terrain with 72", s.Subject, s.VertexCount)
	}
	if len(b.deleted) != 1 || b.deleted[0] != 1 {
		t.Errorf("deleted = %v, want cube buffer 1", b.deleted)
	}
	if b.buffers[2] != 18*4*3 {
		t.Errorf("terrain buffer floats = %d, want 216", b.buffers[2])
	}
	if _, source := v.Mesh(); source != "ramp.png" {
		t.Errorf("source = %q", source)
	}

	if _, err := v.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if last := b.draws[len(b.draws)-1]; last.buffer != 2 || last.count != 72 {
		t.Errorf("draw = %+v, want buffer 2 with 72 vertices", last)
	}
}

func TestLoadFailureKeepsMesh(t *testing.T) {
	v, b := newTestViewer(t)

	v.OpenBytes("broken.png", []byte("not an image"))
	err := v.Wait(waitCtx(t))

	var invalid *terrain.InvalidImageError
	if !errors.As(err, &invalid) {
		t.Fatalf("Wait error = %v, want InvalidImageError", err)
	}
	if v.State().Subject != SubjectCube || len(b.deleted) != 0 {
		t.Errorf("failed load replaced the mesh: subject=%v deleted=%v", v.State().Subject, b.deleted)
	}
}

func TestUpdateWithoutLoad(t *testing.T) {
	v, _ := newTestViewer(t)
	if err := v.Update(); err != nil {
		t.Errorf("Update with nothing pending = %v", err)
	}
}

func TestUploadFailureKeepsMesh(t *testing.T) {
	v, b := newTestViewer(t)
	b.uploadErr = errors.New("out of memory")

	v.OpenBytes("ramp.png", encodePNG(t, 2, 2))
	if err := v.Wait(waitCtx(t)); !errors.Is(err, b.uploadErr) {
		t.Errorf("Wait error = %v, want upload error", err)
	}
	if mesh, _ := v.Mesh(); mesh.TriangleCount() != 12 {
		t.Errorf("mesh replaced after failed upload")
	}
}
