package viewer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/heightview/internal/engine/input"
	"github.com/Faultbox/heightview/internal/engine/terrain"
	"github.com/Faultbox/heightview/internal/logger"
	"github.com/Faultbox/heightview/internal/viewer/shaders"
)

// Uniform names used by the scene shaders.
const (
	UniformModelView  = "modelview"
	UniformProjection = "projection"
)

// Viewer drives a Backend from input events and asynchronous heightmap loads.
// All methods must be called from the goroutine that owns the backend.
type Viewer struct {
	backend Backend
	loader  *terrain.Loader

	program ProgramHandle
	buffer  BufferHandle
	mesh    *terrain.Mesh
	source  string

	state State
}

// New compiles the scene program and uploads the cube.
func New(backend Backend, opts Options) (*Viewer, error) {
	program, err := backend.CompileProgram(shaders.SceneVertexShader, shaders.SceneFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("compiling scene program: %w", err)
	}

	box := terrain.BuildBox()
	buffer, err := backend.UploadVertexBuffer(box.Positions)
	if err != nil {
		return nil, fmt.Errorf("uploading cube: %w", err)
	}

	logger.Debug("viewer created",
		zap.Uint32("program", uint32(program)),
		zap.Stringer("mapping", opts.Mapping),
		zap.Stringer("rotation", opts.Rotation),
	)

	return &Viewer{
		backend: backend,
		loader:  terrain.NewLoader(opts.Mapping),
		program: program,
		buffer:  buffer,
		mesh:    box,
		state:   NewState(opts),
	}, nil
}

// Close cancels pending loads and releases the mesh buffer.
func (v *Viewer) Close() {
	v.loader.Close()
	if v.buffer != 0 {
		v.backend.DeleteBuffer(v.buffer)
		v.buffer = 0
	}
}

// State returns the current renderer state.
func (v *Viewer) State() State {
	return v.state
}

// Mesh returns the mesh currently on screen and where it came from
// ("" for the cube).
func (v *Viewer) Mesh() (*terrain.Mesh, string) {
	return v.mesh, v.source
}

// Handle applies one input event.
func (v *Viewer) Handle(e input.Event) {
	v.state = Reduce(v.state, e)
	if v.state.Err != nil {
		logger.Debug("input rejected",
			zap.Stringer("event", e.Type),
			zap.Error(v.state.Err),
		)
	}
}

// Open starts loading an image file as the new terrain. The current mesh
// stays on screen until the load completes.
func (v *Viewer) Open(path string) uint64 {
	gen := v.loader.Load(path)
	logger.Info("loading heightmap", zap.String("path", path), zap.Uint64("generation", gen))
	return gen
}

// OpenBytes is Open for an in-memory image.
func (v *Viewer) OpenBytes(source string, data []byte) uint64 {
	gen := v.loader.LoadBytes(source, data)
	logger.Info("loading heightmap", zap.String("source", source), zap.Int("bytes", len(data)), zap.Uint64("generation", gen))
	return gen
}

// Update swaps in a finished load, if any. It never blocks.
func (v *Viewer) Update() error {
	res, ok := v.loader.Poll()
	if !ok {
		return nil
	}
	return v.apply(res)
}

// Wait blocks until the latest requested load finishes and swaps it in.
func (v *Viewer) Wait(ctx context.Context) error {
	res, err := v.loader.Next(ctx)
	if err != nil {
		return err
	}
	return v.apply(res)
}

func (v *Viewer) apply(res terrain.LoadResult) error {
	if res.Err != nil {
		logger.Warn("heightmap load failed",
			zap.String("source", res.Source),
			zap.Error(res.Err),
		)
		return res.Err
	}

	buffer, err := v.backend.UploadVertexBuffer(res.Mesh.Positions)
	if err != nil {
		logger.Error("uploading terrain mesh", zap.String("source", res.Source), zap.Error(err))
		return fmt.Errorf("uploading terrain mesh: %w", err)
	}

	old := v.buffer
	v.buffer = buffer
	v.mesh = res.Mesh
	v.source = res.Source
	v.state = v.state.WithMesh(SubjectTerrain, res.Mesh.VertexCount())
	if old != 0 {
		v.backend.DeleteBuffer(old)
	}

	logger.Info("heightmap loaded",
		zap.String("source", res.Source),
		zap.Int("width", res.Heightmap.Width),
		zap.Int("height", res.Heightmap.Height),
		zap.Int("triangles", res.Mesh.TriangleCount()),
		zap.Uint64("generation", res.Generation),
	)
	return nil
}

// Draw renders one frame through the backend.
func (v *Viewer) Draw() (Frame, error) {
	var f Frame
	v.state, f = RenderFrame(v.state)
	if f.Err != nil {
		logger.Warn("frame skipped", zap.Uint64("frame", f.Index), zap.Error(f.Err))
		return f, f.Err
	}

	v.backend.SetUniformMatrix(v.program, UniformModelView, f.ModelView)
	v.backend.SetUniformMatrix(v.program, UniformProjection, f.Projection)
	v.backend.Draw(v.program, v.buffer, f.Primitive, f.VertexCount)
	return f, nil
}
