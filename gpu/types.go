// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "fmt"

// Handle is the device name of a shader, program, buffer, vertex array
// or texture. 0 is the null object.
type Handle uint32

// ShaderTypes are the stages of a program.
type ShaderTypes int32

const (
	VertexShader ShaderTypes = iota
	FragmentShader
)

func (st ShaderTypes) String() string {
	if st == FragmentShader {
		return "fragment"
	}
	return "vertex"
}

// Stages are the steps of building a program that can fail.
type Stages int32

const (
	VertexStage Stages = iota
	FragmentStage
	LinkStage
)

func (st Stages) String() string {
	switch st {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	case LinkStage:
		return "link"
	}
	return fmt.Sprintf("Stages(%d)", int32(st))
}

// StageOf returns the build stage compiling the given shader type.
func StageOf(st ShaderTypes) Stages {
	if st == FragmentShader {
		return FragmentStage
	}
	return VertexStage
}

// BlendModes are the color blending modes.
type BlendModes int32

const (
	// NoBlend writes the source color.
	NoBlend BlendModes = iota

	// AlphaBlend is src*alpha + dst*(1-alpha).
	AlphaBlend

	// PremultipliedBlend is src + dst*(1-alpha), for premultiplied colors.
	PremultipliedBlend

	// AdditiveBlend is src*alpha + dst.
	AdditiveBlend

	// SubtractiveBlend is dst - src*alpha.
	SubtractiveBlend

	// MultiplyBlend is src * dst.
	MultiplyBlend
)

// CullModes are the faces that are culled.
type CullModes int32

const (
	CullNone CullModes = iota
	CullBack
	CullFront
)

// FrontFaces is the winding of front facing triangles.
type FrontFaces int32

const (
	CCW FrontFaces = iota
	CW
)

// CompareFuncs are the depth and stencil test functions.
type CompareFuncs int32

const (
	Never CompareFuncs = iota
	Less
	Equal
	LessEqual
	Greater
	NotEqual
	GreaterEqual
	Always
)

// StencilOps are the stencil buffer update operations.
type StencilOps int32

const (
	Keep StencilOps = iota
	Zero
	Replace
	Incr
	Decr
	Invert
)

// BufferTargets are the buffer binding points.
type BufferTargets int32

const (
	ArrayBuffer BufferTargets = iota
	ElementArrayBuffer
	UniformBuffer

	// BufferTargetsN is the number of buffer targets.
	BufferTargetsN
)

// Primitives are the draw primitive topologies.
type Primitives int32

const (
	Triangles Primitives = iota
	Lines
	Points
)

// UniformInfo is a uniform reported by program reflection.
type UniformInfo struct {

	// Name is the GLSL name; arrays are reported as name[0].
	Name string

	// Location is the location to upload values to.
	Location int32

	// Size is the number of array elements, 1 for non-arrays.
	Size int
}

// StencilFunc is the stencil test function, reference and mask.
type StencilFunc struct {
	Func CompareFuncs
	Ref  int32
	Mask uint32
}

// StencilOp are the stencil operations for stencil fail,
// depth fail, and depth pass.
type StencilOp struct {
	Fail, ZFail, ZPass StencilOps
}

// PolygonOffset is the depth offset state.
type PolygonOffset struct {
	On     bool
	Factor float32
	Units  float32
}
