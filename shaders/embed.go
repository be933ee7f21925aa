// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TriangleVertexShader passes positions through unchanged.
//
//go:embed triangle.vert
var TriangleVertexShader string

// TriangleFragmentShader fills with a constant orange.
//
//go:embed triangle.frag
var TriangleFragmentShader string

// SimpleVertexShader and SimpleFragmentShader are the defaults that
// config.Default points at on disk. They are embedded too so tests can
// check the shipped files.
//
//go:embed simple.vert
var SimpleVertexShader string

//go:embed simple.frag
var SimpleFragmentShader string
