// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gldevice implements [gpu.Device] on an OpenGL 4.1 core context.
package gldevice

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/forward/gpu"
)

// Device is a [gpu.Device] for the OpenGL context current on the calling
// thread. GL has no portable context loss notification in 4.1 core,
// so the host reports loss with [Device.SetLost].
type Device struct {
	units int
	lost  bool
}

// New initializes the GL function pointers for the current context
// and returns a new Device for it.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gldevice: %w", err)
	}
	var units int32
	gl.GetIntegerv(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS, &units)
	return &Device{units: int(units)}, nil
}

// Version returns the GL version string of the context.
func (dv *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// SetLost records that the context was lost or restored.
func (dv *Device) SetLost(lost bool) {
	dv.lost = lost
}

func (dv *Device) ContextLost() bool {
	return dv.lost
}

var glShaders = map[gpu.ShaderTypes]uint32{
	gpu.VertexShader:   gl.VERTEX_SHADER,
	gpu.FragmentShader: gl.FRAGMENT_SHADER,
}

func (dv *Device) CreateShader(typ gpu.ShaderTypes, src string) (gpu.Handle, error) {
	handle := gl.CreateShader(glShaders[typ])
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(msg))
		gl.DeleteShader(handle)
		return 0, &gpu.ShaderError{Stage: gpu.StageOf(typ), Log: strings.TrimRight(msg, "\x00")}
	}
	return gpu.Handle(handle), nil
}

func (dv *Device) DeleteShader(sh gpu.Handle) {
	gl.DeleteShader(uint32(sh))
}

func (dv *Device) CreateProgram(vert, frag gpu.Handle) (gpu.Handle, error) {
	handle := gl.CreateProgram()
	gl.AttachShader(handle, uint32(vert))
	gl.AttachShader(handle, uint32(frag))
	gl.LinkProgram(handle)
	gl.DetachShader(handle, uint32(vert))
	gl.DetachShader(handle, uint32(frag))

	var status int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var lgLength int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &lgLength)
		lg := strings.Repeat("\x00", int(lgLength+1))
		gl.GetProgramInfoLog(handle, lgLength, nil, gl.Str(lg))
		gl.DeleteProgram(handle)
		return 0, &gpu.ShaderError{Stage: gpu.LinkStage, Log: strings.TrimRight(lg, "\x00")}
	}
	return gpu.Handle(handle), nil
}

func (dv *Device) DeleteProgram(pr gpu.Handle) {
	gl.DeleteProgram(uint32(pr))
}

func (dv *Device) ActiveUniforms(pr gpu.Handle) []gpu.UniformInfo {
	var n, maxLen int32
	gl.GetProgramiv(uint32(pr), gl.ACTIVE_UNIFORMS, &n)
	gl.GetProgramiv(uint32(pr), gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	unis := make([]gpu.UniformInfo, 0, n)
	buf := make([]uint8, maxLen+1)
	for i := range uint32(n) {
		var length, size int32
		var typ uint32
		gl.GetActiveUniform(uint32(pr), i, maxLen, &length, &size, &typ, &buf[0])
		name := string(buf[:length])
		loc := gl.GetUniformLocation(uint32(pr), gl.Str(name+"\x00"))
		if loc < 0 { // in a uniform block
			continue
		}
		unis = append(unis, gpu.UniformInfo{Name: name, Location: loc, Size: int(size)})
	}
	return unis
}

func (dv *Device) UseProgram(pr gpu.Handle) {
	gl.UseProgram(uint32(pr))
}

var glTargets = [gpu.BufferTargetsN]uint32{gl.ARRAY_BUFFER, gl.ELEMENT_ARRAY_BUFFER, gl.UNIFORM_BUFFER}

func (dv *Device) CreateBuffer() gpu.Handle {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return gpu.Handle(buf)
}

func (dv *Device) DeleteBuffer(buf gpu.Handle) {
	b := uint32(buf)
	gl.DeleteBuffers(1, &b)
}

func (dv *Device) BindBuffer(target gpu.BufferTargets, buf gpu.Handle) {
	gl.BindBuffer(glTargets[target], uint32(buf))
}

func (dv *Device) BufferFloat32(target gpu.BufferTargets, data []float32) {
	if len(data) == 0 {
		gl.BufferData(glTargets[target], 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(glTargets[target], len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (dv *Device) BufferUint32(target gpu.BufferTargets, data []uint32) {
	if len(data) == 0 {
		gl.BufferData(glTargets[target], 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(glTargets[target], len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (dv *Device) CreateVertexArray() gpu.Handle {
	var va uint32
	gl.GenVertexArrays(1, &va)
	return gpu.Handle(va)
}

func (dv *Device) DeleteVertexArray(va gpu.Handle) {
	v := uint32(va)
	gl.DeleteVertexArrays(1, &v)
}

func (dv *Device) BindVertexArray(va gpu.Handle) {
	gl.BindVertexArray(uint32(va))
}

func (dv *Device) VertexAttrib(loc uint32, size int32) {
	gl.EnableVertexAttribArray(loc)
	gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, 0, 0)
}

func (dv *Device) CreateTexture() gpu.Handle {
	var tex uint32
	gl.GenTextures(1, &tex)
	return gpu.Handle(tex)
}

func (dv *Device) DeleteTexture(tex gpu.Handle) {
	t := uint32(tex)
	gl.DeleteTextures(1, &t)
}

// bindUpload binds the texture on the reserved upload unit.
func (dv *Device) bindUpload(tex gpu.Handle) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(dv.units-1))
	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
}

func (dv *Device) TextureImage(tex gpu.Handle, img *image.RGBA, srgb bool) {
	dv.bindUpload(tex)
	format := int32(gl.RGBA8)
	if srgb {
		format = gl.SRGB8_ALPHA8
	}
	sz := img.Bounds().Size()
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, format, int32(sz.X), int32(sz.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (dv *Device) CopyFramebuffer(tex gpu.Handle, size image.Point) {
	dv.bindUpload(tex)
	gl.CopyTexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, 0, 0, int32(size.X), int32(size.Y), 0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

func (dv *Device) BindTexture(unit int, tex gpu.Handle) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
}

func (dv *Device) MaxTextureUnits() int {
	return dv.units
}
