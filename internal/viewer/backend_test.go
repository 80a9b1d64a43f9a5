package viewer

import (
	"fmt"

	"github.com/Faultbox/heightview/pkg/math"
)

type drawCall struct {
	program   ProgramHandle
	buffer    BufferHandle
	primitive Primitive
	count     int
}

// recordingBackend is a Backend that records calls instead of drawing.
type recordingBackend struct {
	compileErr error
	uploadErr  error

	programs int
	next     BufferHandle
	buffers  map[BufferHandle]int // handle -> float count
	deleted  []BufferHandle
	uniforms map[string]math.Mat4
	draws    []drawCall
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{
		buffers:  make(map[BufferHandle]int),
		uniforms: make(map[string]math.Mat4),
	}
}

func (b *recordingBackend) CompileProgram(vertexSrc, fragmentSrc string) (ProgramHandle, error) {
	if b.compileErr != nil {
		return 0, b.compileErr
	}
	if vertexSrc == "" || fragmentSrc == "" {
		return 0, fmt.Errorf("empty shader source")
	}
	b.programs++
	return ProgramHandle(b.programs), nil
}

func (b *recordingBackend) UploadVertexBuffer(positions []float32) (BufferHandle, error) {
	if b.uploadErr != nil {
		return 0, b.uploadErr
	}
	b.next++
	b.buffers[b.next] = len(positions)
	return b.next, nil
}

func (b *recordingBackend) DeleteBuffer(h BufferHandle) {
	delete(b.buffers, h)
	b.deleted = append(b.deleted, h)
}

func (b *recordingBackend) SetUniformMatrix(_ ProgramHandle, name string, m math.Mat4) {
	b.uniforms[name] = m
}

func (b *recordingBackend) Draw(program ProgramHandle, buffer BufferHandle, primitive Primitive, count int) {
	b.draws = append(b.draws, drawCall{program, buffer, primitive, count})
}
