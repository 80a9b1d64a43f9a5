package viewer

import "github.com/Faultbox/heightview/pkg/math"

// ProgramHandle identifies a compiled shader program.
type ProgramHandle uint32

// BufferHandle identifies an uploaded vertex buffer.
type BufferHandle uint32

// Primitive selects how vertices are assembled.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
)

func (p Primitive) String() string {
	if p == Lines {
		return "lines"
	}
	return "triangles"
}

// Backend is the rendering API the viewer draws through.
type Backend interface {
	CompileProgram(vertexSrc, fragmentSrc string) (ProgramHandle, error)
	// UploadVertexBuffer uploads tightly packed xyz positions.
	UploadVertexBuffer(positions []float32) (BufferHandle, error)
	DeleteBuffer(BufferHandle)
	SetUniformMatrix(program ProgramHandle, name string, m math.Mat4)
	Draw(program ProgramHandle, buffer BufferHandle, primitive Primitive, count int)
}
