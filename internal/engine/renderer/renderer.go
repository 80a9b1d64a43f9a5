// Package renderer provides the OpenGL implementation of viewer.Backend.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/heightview/internal/engine/shader"
	"github.com/Faultbox/heightview/internal/logger"
	"github.com/Faultbox/heightview/internal/viewer"
	"github.com/Faultbox/heightview/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// mesh is an uploaded vertex buffer and the VAO describing it.
type mesh struct {
	vao uint32
	vbo uint32
}

// Renderer draws through OpenGL 4.1 core.
type Renderer struct {
	config Config

	meshes   map[viewer.BufferHandle]mesh
	programs []uint32
	uniforms map[uniformKey]int32
}

type uniformKey struct {
	program uint32
	name    string
}

var _ viewer.Backend = (*Renderer)(nil)

// New creates a new renderer.
// Must be called after the OpenGL context is current.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	// Both sides of every triangle are visible.
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0.2, 0.2, 0.2, 1.0)

	r := &Renderer{
		config:   cfg,
		meshes:   make(map[viewer.BufferHandle]mesh),
		uniforms: make(map[uniformKey]int32),
	}
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close releases all buffers and programs.
func (r *Renderer) Close() {
	logger.Info("closing renderer", zap.Int("buffers", len(r.meshes)))
	for h := range r.meshes {
		r.DeleteBuffer(h)
	}
	for _, p := range r.programs {
		gl.DeleteProgram(p)
	}
	r.programs = nil
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// CompileProgram implements viewer.Backend.
func (r *Renderer) CompileProgram(vertexSrc, fragmentSrc string) (viewer.ProgramHandle, error) {
	program, err := shader.CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return 0, err
	}
	r.programs = append(r.programs, program)
	logger.Debug("shader program created", zap.Uint32("program", program))
	return viewer.ProgramHandle(program), nil
}

// UploadVertexBuffer implements viewer.Backend. Positions are xyz triples
// bound to attribute location 0.
func (r *Renderer) UploadVertexBuffer(positions []float32) (viewer.BufferHandle, error) {
	if len(positions) == 0 || len(positions)%3 != 0 {
		return 0, fmt.Errorf("vertex buffer: %d floats is not a list of xyz positions", len(positions))
	}

	var m mesh
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, unsafe.Pointer(&positions[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteVertexArrays(1, &m.vao)
		return 0, fmt.Errorf("vertex buffer upload: GL error 0x%x", errCode)
	}

	h := viewer.BufferHandle(m.vbo)
	r.meshes[h] = m
	logger.Debug("vertex buffer uploaded",
		zap.Uint32("vao", m.vao),
		zap.Uint32("vbo", m.vbo),
		zap.Int("vertices", len(positions)/3),
	)
	return h, nil
}

// DeleteBuffer implements viewer.Backend.
func (r *Renderer) DeleteBuffer(h viewer.BufferHandle) {
	m, ok := r.meshes[h]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
	delete(r.meshes, h)
}

// SetUniformMatrix implements viewer.Backend. Unknown or inactive uniforms
// are ignored.
func (r *Renderer) SetUniformMatrix(program viewer.ProgramHandle, name string, m math.Mat4) {
	key := uniformKey{uint32(program), name}
	loc, ok := r.uniforms[key]
	if !ok {
		loc = shader.Uniform(uint32(program), name)
		r.uniforms[key] = loc
	}
	if loc < 0 {
		return
	}
	gl.UseProgram(uint32(program))
	gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
}

// Draw implements viewer.Backend. Lines draws the triangle edges.
func (r *Renderer) Draw(program viewer.ProgramHandle, buffer viewer.BufferHandle, primitive viewer.Primitive, count int) {
	m, ok := r.meshes[buffer]
	if !ok {
		return
	}

	mode := uint32(gl.FILL)
	if primitive == viewer.Lines {
		mode = gl.LINE
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)

	gl.UseProgram(uint32(program))
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))
	gl.BindVertexArray(0)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}
