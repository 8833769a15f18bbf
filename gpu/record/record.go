// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package record provides a [gpu.Device] that records and counts
// the calls made to it instead of rendering, for tests and benchmarks.
package record

import (
	"image"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/forward/gpu"
)

// UniformCall is a recorded uniform upload.
type UniformCall struct {
	Program  gpu.Handle
	Location int32
	Name     string
	Value    any
}

// DrawCall is a recorded draw.
type DrawCall struct {
	Program     gpu.Handle
	VertexArray gpu.Handle
	Mode        gpu.Primitives
	Indexed     bool
	Start       int
	Count       int
	Instances   int
}

// Device is a [gpu.Device] that keeps no GPU state of its own beyond
// what is needed to answer queries, and records every call.
type Device struct {

	// Calls counts every call by method name.
	Calls map[string]int

	// Uniforms are the uniform uploads, if RecordUniforms is set.
	Uniforms []UniformCall

	// Draws are the draw calls, in order.
	Draws []DrawCall

	// RecordUniforms enables recording of Uniforms.
	RecordUniforms bool

	// FailShader, if set, is called for each compiled shader; a non-empty
	// return value fails the compile with that diagnostic log.
	FailShader func(typ gpu.ShaderTypes, src string) string

	// FailLink, if set, fails linking with the returned log when non-empty.
	FailLink func(vertSrc, fragSrc string) string

	// Lost simulates a lost context.
	Lost bool

	// Units is the number of texture units; 16 by default.
	Units int

	last     gpu.Handle
	shaders  map[gpu.Handle]string
	programs map[gpu.Handle][]gpu.UniformInfo
	program  gpu.Handle
	va       gpu.Handle
}

// New returns a new recording device.
func New() *Device {
	dv := &Device{}
	dv.Reset()
	return dv
}

// Reset clears all recorded calls and objects.
func (dv *Device) Reset() {
	dv.Calls = make(map[string]int)
	dv.Uniforms = nil
	dv.Draws = nil
	dv.shaders = make(map[gpu.Handle]string)
	dv.programs = make(map[gpu.Handle][]gpu.UniformInfo)
	dv.program = 0
	dv.va = 0
}

// ClearCalls clears the recorded calls but keeps the objects.
func (dv *Device) ClearCalls() {
	dv.Calls = make(map[string]int)
	dv.Uniforms = nil
	dv.Draws = nil
}

// Count returns the number of calls of the named method.
func (dv *Device) Count(name string) int {
	return dv.Calls[name]
}

// Programs returns the number of live programs.
func (dv *Device) Programs() int {
	return len(dv.programs)
}

// UniformsNamed returns the recorded uploads to the uniform of the given name.
func (dv *Device) UniformsNamed(name string) []UniformCall {
	var ucs []UniformCall
	for _, uc := range dv.Uniforms {
		if uc.Name == name {
			ucs = append(ucs, uc)
		}
	}
	return ucs
}

func (dv *Device) call(name string) {
	dv.Calls[name]++
}

func (dv *Device) newHandle() gpu.Handle {
	dv.last++
	return dv.last
}

func (dv *Device) CreateShader(typ gpu.ShaderTypes, src string) (gpu.Handle, error) {
	dv.call("CreateShader")
	if dv.FailShader != nil {
		if lg := dv.FailShader(typ, src); lg != "" {
			return 0, &gpu.ShaderError{Stage: gpu.StageOf(typ), Log: lg}
		}
	}
	h := dv.newHandle()
	dv.shaders[h] = src
	return h, nil
}

func (dv *Device) DeleteShader(sh gpu.Handle) {
	dv.call("DeleteShader")
	delete(dv.shaders, sh)
}

var uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*(\[\s*(\w+)\s*\])?\s*;`)

func (dv *Device) CreateProgram(vert, frag gpu.Handle) (gpu.Handle, error) {
	dv.call("CreateProgram")
	vs, fs := dv.shaders[vert], dv.shaders[frag]
	if dv.FailLink != nil {
		if lg := dv.FailLink(vs, fs); lg != "" {
			return 0, &gpu.ShaderError{Stage: gpu.LinkStage, Log: lg}
		}
	}
	h := dv.newHandle()
	var unis []gpu.UniformInfo
	seen := map[string]bool{}
	loc := int32(0)
	for _, src := range []string{vs, fs} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			nm := m[1]
			if seen[nm] {
				continue
			}
			seen[nm] = true
			size := 1
			if m[2] != "" {
				nm += "[0]"
				size = 8 // length given by a define
				if n, err := strconv.Atoi(m[3]); err == nil {
					size = n
				}
			}
			unis = append(unis, gpu.UniformInfo{Name: nm, Location: loc, Size: size})
			loc += int32(size)
		}
	}
	dv.programs[h] = unis
	return h, nil
}

func (dv *Device) DeleteProgram(pr gpu.Handle) {
	dv.call("DeleteProgram")
	delete(dv.programs, pr)
}

func (dv *Device) ActiveUniforms(pr gpu.Handle) []gpu.UniformInfo {
	dv.call("ActiveUniforms")
	return dv.programs[pr]
}

func (dv *Device) UseProgram(pr gpu.Handle) {
	dv.call("UseProgram")
	dv.program = pr
}

func (dv *Device) CreateBuffer() gpu.Handle {
	dv.call("CreateBuffer")
	return dv.newHandle()
}

func (dv *Device) DeleteBuffer(buf gpu.Handle) { dv.call("DeleteBuffer") }

func (dv *Device) BindBuffer(target gpu.BufferTargets, buf gpu.Handle) { dv.call("BindBuffer") }

func (dv *Device) BufferFloat32(target gpu.BufferTargets, data []float32) {
	dv.call("BufferFloat32")
}

func (dv *Device) BufferUint32(target gpu.BufferTargets, data []uint32) {
	dv.call("BufferUint32")
}

func (dv *Device) CreateVertexArray() gpu.Handle {
	dv.call("CreateVertexArray")
	return dv.newHandle()
}

func (dv *Device) DeleteVertexArray(va gpu.Handle) { dv.call("DeleteVertexArray") }

func (dv *Device) BindVertexArray(va gpu.Handle) {
	dv.call("BindVertexArray")
	dv.va = va
}

func (dv *Device) VertexAttrib(loc uint32, size int32) { dv.call("VertexAttrib") }

func (dv *Device) CreateTexture() gpu.Handle {
	dv.call("CreateTexture")
	return dv.newHandle()
}

func (dv *Device) DeleteTexture(tex gpu.Handle) { dv.call("DeleteTexture") }

func (dv *Device) TextureImage(tex gpu.Handle, img *image.RGBA, srgb bool) {
	dv.call("TextureImage")
}

func (dv *Device) CopyFramebuffer(tex gpu.Handle, size image.Point) {
	dv.call("CopyFramebuffer")
}

func (dv *Device) BindTexture(unit int, tex gpu.Handle) { dv.call("BindTexture") }

func (dv *Device) MaxTextureUnits() int {
	if dv.Units > 0 {
		return dv.Units
	}
	return 16
}

func (dv *Device) SetBlending(mode gpu.BlendModes)       { dv.call("SetBlending") }
func (dv *Device) SetDepthTest(on bool)                  { dv.call("SetDepthTest") }
func (dv *Device) SetDepthFunc(fn gpu.CompareFuncs)      { dv.call("SetDepthFunc") }
func (dv *Device) SetDepthMask(on bool)                  { dv.call("SetDepthMask") }
func (dv *Device) SetColorMask(on bool)                  { dv.call("SetColorMask") }
func (dv *Device) SetStencilTest(on bool)                { dv.call("SetStencilTest") }
func (dv *Device) SetStencilFunc(fn gpu.StencilFunc)     { dv.call("SetStencilFunc") }
func (dv *Device) SetStencilOp(op gpu.StencilOp)         { dv.call("SetStencilOp") }
func (dv *Device) SetStencilMask(mask uint32)            { dv.call("SetStencilMask") }
func (dv *Device) SetCullFace(mode gpu.CullModes)        { dv.call("SetCullFace") }
func (dv *Device) SetFrontFace(ff gpu.FrontFaces)        { dv.call("SetFrontFace") }
func (dv *Device) SetViewport(r image.Rectangle)         { dv.call("SetViewport") }
func (dv *Device) SetScissorTest(on bool)                { dv.call("SetScissorTest") }
func (dv *Device) SetScissor(r image.Rectangle)          { dv.call("SetScissor") }
func (dv *Device) SetPolygonOffset(po gpu.PolygonOffset) { dv.call("SetPolygonOffset") }
func (dv *Device) SetLineWidth(w float32)                { dv.call("SetLineWidth") }
func (dv *Device) SetWireframe(on bool)                  { dv.call("SetWireframe") }
func (dv *Device) SetClearColor(c mgl32.Vec4)            { dv.call("SetClearColor") }

func (dv *Device) Clear(color, depth, stencil bool) { dv.call("Clear") }

// uniform records an upload of v to the location of the current program.
func (dv *Device) uniform(loc int32, v any) {
	dv.call("Uniform")
	if !dv.RecordUniforms {
		return
	}
	name := ""
	for _, u := range dv.programs[dv.program] {
		if u.Location == loc {
			name = strings.TrimSuffix(u.Name, "[0]")
			break
		}
	}
	dv.Uniforms = append(dv.Uniforms, UniformCall{Program: dv.program, Location: loc, Name: name, Value: v})
}

func (dv *Device) Uniform1i(loc int32, v int32)            { dv.uniform(loc, v) }
func (dv *Device) Uniform1f(loc int32, v float32)          { dv.uniform(loc, v) }
func (dv *Device) Uniform2f(loc int32, v mgl32.Vec2)       { dv.uniform(loc, v) }
func (dv *Device) Uniform3f(loc int32, v mgl32.Vec3)       { dv.uniform(loc, v) }
func (dv *Device) Uniform4f(loc int32, v mgl32.Vec4)       { dv.uniform(loc, v) }
func (dv *Device) Uniform3fv(loc int32, v []mgl32.Vec3)    { dv.uniform(loc, v) }
func (dv *Device) Uniform4fv(loc int32, v []mgl32.Vec4)    { dv.uniform(loc, v) }
func (dv *Device) UniformMatrix3(loc int32, m mgl32.Mat3) { dv.uniform(loc, m) }
func (dv *Device) UniformMatrix4(loc int32, m mgl32.Mat4) { dv.uniform(loc, m) }

func (dv *Device) DrawElements(mode gpu.Primitives, start, count, instances int) {
	dv.call("DrawElements")
	dv.Draws = append(dv.Draws, DrawCall{Program: dv.program, VertexArray: dv.va, Mode: mode, Indexed: true, Start: start, Count: count, Instances: instances})
}

func (dv *Device) DrawArrays(mode gpu.Primitives, start, count, instances int) {
	dv.call("DrawArrays")
	dv.Draws = append(dv.Draws, DrawCall{Program: dv.program, VertexArray: dv.va, Mode: mode, Start: start, Count: count, Instances: instances})
}

func (dv *Device) ContextLost() bool {
	dv.call("ContextLost")
	return dv.Lost
}
