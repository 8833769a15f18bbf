// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Device is the command interface of a GPU graphics context, modeled on
// OpenGL: state is set on the context and persists until changed.
// All methods must be called from the thread that owns the context.
//
// Device performs no redundancy checks: renderers issue state changes
// through a [State], which skips calls that would not change anything.
type Device interface {

	// CreateShader compiles a shader of the given type. A compile failure
	// returns a *ShaderError with the diagnostic log.
	CreateShader(typ ShaderTypes, src string) (Handle, error)

	DeleteShader(sh Handle)

	// CreateProgram links the given shaders into a program. A link failure
	// returns a *ShaderError for the [LinkStage]. The shaders can be
	// deleted after linking.
	CreateProgram(vert, frag Handle) (Handle, error)

	DeleteProgram(pr Handle)

	// ActiveUniforms returns the uniforms used by the linked program.
	ActiveUniforms(pr Handle) []UniformInfo

	UseProgram(pr Handle)

	CreateBuffer() Handle
	DeleteBuffer(buf Handle)
	BindBuffer(target BufferTargets, buf Handle)

	// BufferFloat32 and BufferUint32 upload data to the buffer
	// bound to the target.
	BufferFloat32(target BufferTargets, data []float32)
	BufferUint32(target BufferTargets, data []uint32)

	CreateVertexArray() Handle
	DeleteVertexArray(va Handle)
	BindVertexArray(va Handle)

	// VertexAttrib enables the attribute at the given location, reading
	// size float32s per vertex from the bound array buffer.
	VertexAttrib(loc uint32, size int32)

	CreateTexture() Handle
	DeleteTexture(tex Handle)

	// TextureImage uploads the image to the texture, decoding from sRGB if srgb.
	// It may use the last texture unit, which [State] never binds.
	TextureImage(tex Handle, img *image.RGBA, srgb bool)

	// CopyFramebuffer copies the current color buffer into the texture,
	// which is resized to the given size. Same texture unit use as TextureImage.
	CopyFramebuffer(tex Handle, size image.Point)

	BindTexture(unit int, tex Handle)

	// MaxTextureUnits is the number of texture units, including the
	// one reserved for uploads.
	MaxTextureUnits() int

	SetBlending(mode BlendModes)
	SetDepthTest(on bool)
	SetDepthFunc(fn CompareFuncs)
	SetDepthMask(on bool)
	SetColorMask(on bool)
	SetStencilTest(on bool)
	SetStencilFunc(fn StencilFunc)
	SetStencilOp(op StencilOp)
	SetStencilMask(mask uint32)
	SetCullFace(mode CullModes)
	SetFrontFace(ff FrontFaces)
	SetViewport(r image.Rectangle)
	SetScissorTest(on bool)
	SetScissor(r image.Rectangle)
	SetPolygonOffset(po PolygonOffset)
	SetLineWidth(w float32)

	// SetWireframe rasterizes polygons as their edges.
	SetWireframe(on bool)
	SetClearColor(c mgl32.Vec4)

	Clear(color, depth, stencil bool)

	Uniform1i(loc int32, v int32)
	Uniform1f(loc int32, v float32)
	Uniform2f(loc int32, v mgl32.Vec2)
	Uniform3f(loc int32, v mgl32.Vec3)
	Uniform4f(loc int32, v mgl32.Vec4)
	Uniform3fv(loc int32, v []mgl32.Vec3)
	Uniform4fv(loc int32, v []mgl32.Vec4)
	UniformMatrix3(loc int32, m mgl32.Mat3)
	UniformMatrix4(loc int32, m mgl32.Mat4)

	// DrawElements draws count indexes starting at index start from the
	// element buffer of the bound vertex array. Instances > 1 draws instanced.
	DrawElements(mode Primitives, start, count, instances int)

	// DrawArrays draws count vertexes starting at vertex start.
	DrawArrays(mode Primitives, start, count, instances int)

	// ContextLost returns true if the context was lost, after which
	// every handle is invalid and nothing is drawn.
	ContextLost() bool
}
