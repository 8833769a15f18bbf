// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu_test

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"cogentcore.org/forward/gpu"
	"cogentcore.org/forward/gpu/record"
)

func TestStateSkipsRedundant(t *testing.T) {
	dev := record.New()
	st := gpu.NewState(dev)

	st.SetBlending(gpu.AlphaBlend)
	st.SetBlending(gpu.AlphaBlend)
	assert.Equal(t, 1, dev.Count("SetBlending"))
	st.SetBlending(gpu.NoBlend)
	assert.Equal(t, 2, dev.Count("SetBlending"))

	assert.True(t, st.UseProgram(3))
	assert.False(t, st.UseProgram(3))
	assert.Equal(t, 1, dev.Count("UseProgram"))

	st.SetDepthTest(true)
	st.SetDepthTest(true)
	st.SetDepthMask(false)
	st.SetDepthMask(false)
	st.SetViewport(image.Rect(0, 0, 640, 480))
	st.SetViewport(image.Rect(0, 0, 640, 480))
	st.SetClearColor(mgl32.Vec4{1, 1, 1, 1})
	st.SetClearColor(mgl32.Vec4{1, 1, 1, 1})
	st.SetStencilFunc(gpu.StencilFunc{Func: gpu.Always, Ref: 1, Mask: 0xff})
	st.SetStencilFunc(gpu.StencilFunc{Func: gpu.Always, Ref: 1, Mask: 0xff})
	assert.Equal(t, 1, dev.Count("SetDepthTest"))
	assert.Equal(t, 1, dev.Count("SetDepthMask"))
	assert.Equal(t, 1, dev.Count("SetViewport"))
	assert.Equal(t, 1, dev.Count("SetClearColor"))
	assert.Equal(t, 1, dev.Count("SetStencilFunc"))

	assert.Equal(t, 8, st.Stats.Issued)
	assert.Equal(t, 7, st.Stats.Skipped)
}

func TestStateTextures(t *testing.T) {
	dev := record.New()
	dev.Units = 4
	st := gpu.NewState(dev)
	assert.Equal(t, 3, st.TextureUnits(), "last unit is reserved")

	st.BindTexture(0, 10)
	st.BindTexture(1, 10)
	st.BindTexture(0, 10)
	assert.Equal(t, 2, dev.Count("BindTexture"))
	assert.False(t, st.BindTexture(3, 10))
	assert.Equal(t, 2, dev.Count("BindTexture"))

	st.DeleteTexture(10)
	assert.False(t, st.BindTexture(0, 0), "deleted textures are unbound")
	assert.True(t, st.BindTexture(1, 11))
}

func TestStateReset(t *testing.T) {
	dev := record.New()
	st := gpu.NewState(dev)
	st.UseProgram(1)
	st.SetCullFace(gpu.CullBack)
	st.BindVertexArray(5)
	st.SetPolygonOffset(gpu.PolygonOffset{})

	st.Reset()
	st.UseProgram(1)
	st.SetCullFace(gpu.CullBack)
	st.BindVertexArray(5)
	st.SetPolygonOffset(gpu.PolygonOffset{Factor: 3})
	assert.Equal(t, 2, dev.Count("UseProgram"))
	assert.Equal(t, 2, dev.Count("SetCullFace"))
	assert.Equal(t, 2, dev.Count("BindVertexArray"))
	assert.Equal(t, 2, dev.Count("SetPolygonOffset"))

	// rebuilt
	st.UseProgram(1)
	st.SetPolygonOffset(gpu.PolygonOffset{Units: 2})
	assert.Equal(t, 2, dev.Count("UseProgram"))
	assert.Equal(t, 2, dev.Count("SetPolygonOffset"), "disabled offsets are equal")
}

func TestStateObjectLifetimes(t *testing.T) {
	dev := record.New()
	st := gpu.NewState(dev)

	st.UseProgram(7)
	st.DeleteProgram(7)
	assert.True(t, st.UseProgram(7), "a new program can reuse the handle")

	st.BindVertexArray(2)
	st.BindBuffer(gpu.ElementArrayBuffer, 3)
	st.BindVertexArray(4)
	assert.True(t, st.BindBuffer(gpu.ElementArrayBuffer, 3), "element buffer belongs to the vertex array")
	st.BindBuffer(gpu.ArrayBuffer, 3)
	st.DeleteBuffer(3)
	assert.True(t, st.BindBuffer(gpu.ArrayBuffer, 3))
	assert.Equal(t, 1, dev.Count("DeleteBuffer"))
	assert.Equal(t, 1, dev.Count("DeleteProgram"))
}

func TestErrors(t *testing.T) {
	err := error(&gpu.ContextLostError{Frame: 3})
	assert.ErrorIs(t, err, gpu.ErrContextLost)
	assert.Contains(t, err.Error(), "frame 3")

	se := &gpu.ShaderError{Stage: gpu.LinkStage, Log: "ERROR: 0:1: bad\n"}
	assert.Equal(t, "gpu: link stage failed: ERROR: 0:1: bad", se.Error())
	assert.Equal(t, gpu.FragmentStage, gpu.StageOf(gpu.FragmentShader))
}
