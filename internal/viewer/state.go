// Package viewer holds the renderer state, the reducer that applies input
// events to it and the per-frame transform composition.
//
// State, Reduce, Compose and RenderFrame are pure. Viewer is the adapter that
// owns GPU resources and the asynchronous loader.
package viewer

import (
	"github.com/Faultbox/heightview/internal/engine/camera"
	"github.com/Faultbox/heightview/internal/engine/input"
	"github.com/Faultbox/heightview/internal/engine/interaction"
	"github.com/Faultbox/heightview/internal/engine/terrain"
	"github.com/Faultbox/heightview/pkg/math"
)

// Subject is what the scene shows.
type Subject int

const (
	// SubjectCube is shown until a heightmap is loaded. Right-drag moves the model.
	SubjectCube Subject = iota
	// SubjectTerrain is a heightmap mesh. Right-drag moves the camera.
	SubjectTerrain
)

func (s Subject) String() string {
	if s == SubjectTerrain {
		return "terrain"
	}
	return "cube"
}

// Options are the configured starting values. Reset restores them.
type Options struct {
	Camera      camera.Camera
	Projection  input.Projection
	Wireframe   bool
	HeightScale float32
	PanSpeed    float32
	Rotation    interaction.RotationMode
	Mapping     terrain.Mapping
}

// DefaultOptions returns the stock viewer options.
func DefaultOptions() Options {
	return Options{
		Camera:      camera.Default(),
		Projection:  input.Perspective,
		HeightScale: 1,
		PanSpeed:    0.01,
		Rotation:    interaction.RotationDelta,
		Mapping:     terrain.MappingCentered,
	}
}

// State is the complete renderer state.
type State struct {
	Options Options

	Camera   camera.Camera
	Drag     interaction.Drag
	Viewport interaction.Viewport

	// Model transform accumulators. They compose with the camera when a frame
	// is drawn and are never folded into it.
	Pitch       float32
	Yaw         float32
	Zoom        float32
	HeightScale float32
	ModelPan    math.Vec3

	Projection input.Projection
	Wireframe  bool

	Subject     Subject
	VertexCount int
	Frames      uint64
	Quit        bool

	// Err is the reason the last event was rejected, if it was.
	Err error
}

// NewState returns the initial state for opts showing the cube.
func NewState(opts Options) State {
	return State{
		Options:     opts,
		Camera:      opts.Camera,
		Zoom:        1,
		HeightScale: opts.HeightScale,
		Projection:  opts.Projection,
		Wireframe:   opts.Wireframe,
		Subject:     SubjectCube,
		VertexCount: terrain.BoxVertexCount,
	}
}

// WithMesh returns s showing a new subject. The drag, camera and model
// transform start over; projection, wireframe and height scale are controls
// and survive the load.
func (s State) WithMesh(subject Subject, vertexCount int) State {
	s.Camera = s.Options.Camera
	s.Drag = interaction.Drag{}
	s.Pitch, s.Yaw, s.Zoom = 0, 0, 1
	s.ModelPan = math.Vec3{}
	s.Subject = subject
	s.VertexCount = vertexCount
	return s
}

// reset restores the configured view, keeping the viewport and subject.
func (s State) reset() State {
	n := NewState(s.Options)
	n.Viewport = s.Viewport
	n.Subject = s.Subject
	n.VertexCount = s.VertexCount
	n.Frames = s.Frames
	return n
}
