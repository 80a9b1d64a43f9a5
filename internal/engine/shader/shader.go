// Package shader compiles and links GLSL programs.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CompileError reports a shader stage that failed to compile.
type CompileError struct {
	Stage string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader: compile failed: %s", e.Stage, e.Log)
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("program link failed: %s", e.Log)
}

// CompileProgram builds a program from vertex and fragment sources. Failures
// are *CompileError or *LinkError carrying the driver's info log.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	stages := []struct {
		name string
		kind uint32
		src  string
	}{
		{"vertex", gl.VERTEX_SHADER, vertexSrc},
		{"fragment", gl.FRAGMENT_SHADER, fragmentSrc},
	}

	program := gl.CreateProgram()
	for _, st := range stages {
		sh, err := compile(st.name, st.kind, st.src)
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		gl.AttachShader(program, sh)
		// Flagged for deletion; freed with the program.
		gl.DeleteShader(sh)
	}
	gl.LinkProgram(program)

	if log, ok := status(program, gl.LINK_STATUS, gl.GetProgramiv, gl.GetProgramInfoLog); !ok {
		gl.DeleteProgram(program)
		return 0, &LinkError{Log: log}
	}
	return program, nil
}

func compile(stage string, kind uint32, source string) (uint32, error) {
	sh := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, csource, nil)
	free()
	gl.CompileShader(sh)

	if log, ok := status(sh, gl.COMPILE_STATUS, gl.GetShaderiv, gl.GetShaderInfoLog); !ok {
		gl.DeleteShader(sh)
		return 0, &CompileError{Stage: stage, Log: log}
	}
	return sh, nil
}

// status reads a GL object's status flag and, when it is false, its info log.
func status(
	obj, param uint32,
	getiv func(uint32, uint32, *int32),
	getLog func(uint32, int32, *int32, *uint8),
) (string, bool) {
	var ok int32
	getiv(obj, param, &ok)
	if ok != gl.FALSE {
		return "", true
	}
	var logLen int32
	getiv(obj, gl.INFO_LOG_LENGTH, &logLen)
	return infoLog(logLen, func(buf *uint8) { getLog(obj, logLen, nil, buf) }), false
}

// infoLog reads a GL info log of logLen bytes through fill.
func infoLog(logLen int32, fill func(*uint8)) string {
	if logLen <= 0 {
		return "(no info log)"
	}
	buf := make([]byte, logLen)
	fill(&buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}

// Uniform returns the uniform's location, or -1 when the program has no
// active uniform by that name.
func Uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
