// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SceneVertexShader transforms mesh positions by the modelview and
// projection uniforms.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader shades fragments by model-space height.
//
//go:embed scene.frag
var SceneFragmentShader string
