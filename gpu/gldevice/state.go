// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gldevice

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/forward/gpu"
)

// enable turns a capability on or off.
func enable(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// SetBlending sets the blend function based on the blend mode.
// NoBlend disables blending.
func (dv *Device) SetBlending(mode gpu.BlendModes) {
	enable(gl.BLEND, mode != gpu.NoBlend)
	switch mode {
	case gpu.AlphaBlend:
		gl.BlendEquation(gl.FUNC_ADD)
		gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	case gpu.PremultipliedBlend:
		gl.BlendEquation(gl.FUNC_ADD)
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	case gpu.AdditiveBlend:
		gl.BlendEquation(gl.FUNC_ADD)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	case gpu.SubtractiveBlend:
		gl.BlendEquation(gl.FUNC_REVERSE_SUBTRACT)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	case gpu.MultiplyBlend:
		gl.BlendEquation(gl.FUNC_ADD)
		gl.BlendFunc(gl.DST_COLOR, gl.ONE_MINUS_SRC_ALPHA)
	}
}

func (dv *Device) SetDepthTest(on bool) {
	enable(gl.DEPTH_TEST, on)
}

var glCompare = [...]uint32{gl.NEVER, gl.LESS, gl.EQUAL, gl.LEQUAL, gl.GREATER, gl.NOTEQUAL, gl.GEQUAL, gl.ALWAYS}

func (dv *Device) SetDepthFunc(fn gpu.CompareFuncs) {
	gl.DepthFunc(glCompare[fn])
}

func (dv *Device) SetDepthMask(on bool) {
	gl.DepthMask(on)
}

func (dv *Device) SetColorMask(on bool) {
	gl.ColorMask(on, on, on, on)
}

func (dv *Device) SetStencilTest(on bool) {
	enable(gl.STENCIL_TEST, on)
}

func (dv *Device) SetStencilFunc(fn gpu.StencilFunc) {
	gl.StencilFunc(glCompare[fn.Func], fn.Ref, fn.Mask)
}

var glStencilOps = [...]uint32{gl.KEEP, gl.ZERO, gl.REPLACE, gl.INCR, gl.DECR, gl.INVERT}

func (dv *Device) SetStencilOp(op gpu.StencilOp) {
	gl.StencilOp(glStencilOps[op.Fail], glStencilOps[op.ZFail], glStencilOps[op.ZPass])
}

func (dv *Device) SetStencilMask(mask uint32) {
	gl.StencilMask(mask)
}

func (dv *Device) SetCullFace(mode gpu.CullModes) {
	enable(gl.CULL_FACE, mode != gpu.CullNone)
	switch mode {
	case gpu.CullBack:
		gl.CullFace(gl.BACK)
	case gpu.CullFront:
		gl.CullFace(gl.FRONT)
	}
}

func (dv *Device) SetFrontFace(ff gpu.FrontFaces) {
	if ff == gpu.CW {
		gl.FrontFace(gl.CW)
	} else {
		gl.FrontFace(gl.CCW)
	}
}

func (dv *Device) SetViewport(r image.Rectangle) {
	gl.Viewport(int32(r.Min.X), int32(r.Min.Y), int32(r.Dx()), int32(r.Dy()))
}

func (dv *Device) SetScissorTest(on bool) {
	enable(gl.SCISSOR_TEST, on)
}

func (dv *Device) SetScissor(r image.Rectangle) {
	gl.Scissor(int32(r.Min.X), int32(r.Min.Y), int32(r.Dx()), int32(r.Dy()))
}

func (dv *Device) SetPolygonOffset(po gpu.PolygonOffset) {
	enable(gl.POLYGON_OFFSET_FILL, po.On)
	if po.On {
		gl.PolygonOffset(po.Factor, po.Units)
	}
}

func (dv *Device) SetLineWidth(w float32) {
	gl.LineWidth(w)
}

func (dv *Device) SetWireframe(on bool) {
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (dv *Device) SetClearColor(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
}

// Clear clears the given buffers of the current render target
func (dv *Device) Clear(color, depth, stencil bool) {
	bits := uint32(0)
	if color {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if stencil {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (dv *Device) Uniform1i(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

func (dv *Device) Uniform1f(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

func (dv *Device) Uniform2f(loc int32, v mgl32.Vec2) {
	gl.Uniform2f(loc, v[0], v[1])
}

func (dv *Device) Uniform3f(loc int32, v mgl32.Vec3) {
	gl.Uniform3f(loc, v[0], v[1], v[2])
}

func (dv *Device) Uniform4f(loc int32, v mgl32.Vec4) {
	gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
}

func (dv *Device) Uniform3fv(loc int32, v []mgl32.Vec3) {
	if len(v) > 0 {
		gl.Uniform3fv(loc, int32(len(v)), &v[0][0])
	}
}

func (dv *Device) Uniform4fv(loc int32, v []mgl32.Vec4) {
	if len(v) > 0 {
		gl.Uniform4fv(loc, int32(len(v)), &v[0][0])
	}
}

func (dv *Device) UniformMatrix3(loc int32, m mgl32.Mat3) {
	gl.UniformMatrix3fv(loc, 1, false, &m[0])
}

func (dv *Device) UniformMatrix4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

var glPrimitives = [...]uint32{gl.TRIANGLES, gl.LINES, gl.POINTS}

// DrawElements uses all existing settings to draw indexed primitives.
func (dv *Device) DrawElements(mode gpu.Primitives, start, count, instances int) {
	offset := uintptr(start * 4)
	if instances > 1 {
		gl.DrawElementsInstancedWithOffset(glPrimitives[mode], int32(count), gl.UNSIGNED_INT, offset, int32(instances))
		return
	}
	gl.DrawElementsWithOffset(glPrimitives[mode], int32(count), gl.UNSIGNED_INT, offset)
}

// DrawArrays uses all existing settings to draw non-indexed primitives.
func (dv *Device) DrawArrays(mode gpu.Primitives, start, count, instances int) {
	if instances > 1 {
		gl.DrawArraysInstanced(glPrimitives[mode], int32(start), int32(count), int32(instances))
		return
	}
	gl.DrawArrays(glPrimitives[mode], int32(start), int32(count))
}
