// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"context"
	"image"
	"image/color"
	"strings"
	"testing"

	"cogentcore.org/core/base/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/forward/gpu"
	"cogentcore.org/forward/gpu/record"
	"cogentcore.org/forward/program"
	"cogentcore.org/forward/xyz"
)

func newTestRenderer() (*Renderer, *record.Device) {
	dev := record.New()
	dev.RecordUniforms = true
	r := NewRenderer(NewContext(dev))
	r.SetSize(image.Pt(640, 480))
	return r, dev
}

// collect makes the renderer collect its reported errors.
func collect(r *Renderer) *[]error {
	var errs []error
	r.OnError = func(err error) { errs = append(errs, err) }
	return &errs
}

func TestTwoMaterialsOneProgram(t *testing.T) {
	r, dev := newTestRenderer()
	sc := xyz.NewScene("s")
	box := xyz.NewBox("box", 1, 1, 1)
	red := xyz.NewMaterial("red", xyz.Phong)
	red.Color = color.RGBA{255, 0, 0, 255}
	blue := xyz.NewMaterial("blue", xyz.Phong)
	blue.Color = color.RGBA{0, 0, 255, 255}
	sc.Root.NewChild("a").SetPos(-1, 0, 0).AddDrawable(box, red)
	sc.Root.NewChild("b").SetPos(1, 0, 0).AddDrawable(box, blue)
	r.Context.Resources.UploadScene(sc)

	require.NoError(t, r.Render(sc))
	assert.Equal(t, 1, r.Context.Programs.Compiles())
	assert.Equal(t, 1, r.Context.Programs.Len())
	diffuse := dev.UniformsNamed("diffuse")
	require.Len(t, diffuse, 2)
	assert.NotEqual(t, diffuse[0].Value, diffuse[1].Value)
	assert.ElementsMatch(t, []any{mgl32.Vec4{1, 0, 0, 1}, mgl32.Vec4{0, 0, 1, 1}},
		[]any{diffuse[0].Value, diffuse[1].Value})

	stats := r.Stats()
	assert.Equal(t, uint64(1), stats.Frame)
	assert.Equal(t, 2, stats.DrawCalls)
	assert.Equal(t, 24, stats.Triangles)
	assert.Equal(t, 1, stats.ProgramSwitches)
	assert.Equal(t, 1, dev.Count("UseProgram"))
	assert.Len(t, dev.UniformsNamed("viewMatrix"), 1, "frame uniforms once per program")
	assert.Equal(t, 1, dev.Count("BindVertexArray"), "only bound by the upload")
	assert.Equal(t, Idle, r.Phase())
}

func TestDrawOrder(t *testing.T) {
	r, dev := newTestRenderer()
	sc := xyz.NewScene("s")
	cubeGeom := xyz.NewBox("cube", 1, 1, 1)
	quadGeom := xyz.NewPlane("quad", 2, 2)
	glass := xyz.NewMaterial("glass", xyz.Basic)
	glass.Opacity = 0.5
	sc.Root.NewChild("quad").SetPos(0, 0, -5).AddDrawable(quadGeom, glass)
	sc.Root.NewChild("cube").AddDrawable(cubeGeom, xyz.NewMaterial("solid", xyz.Lambert))
	r.Context.Resources.UploadScene(sc)

	require.NoError(t, r.Render(sc))
	cube, err := r.Context.Resources.Geometry(cubeGeom)
	require.NoError(t, err)
	quad, err := r.Context.Resources.Geometry(quadGeom)
	require.NoError(t, err)
	require.Len(t, dev.Draws, 2)
	assert.Equal(t, cube.VertexArray, dev.Draws[0].VertexArray)
	assert.Equal(t, quad.VertexArray, dev.Draws[1].VertexArray)
	assert.True(t, dev.Draws[0].Indexed)
	assert.Equal(t, 36, dev.Draws[0].Count)
	assert.Equal(t, 6, dev.Draws[1].Count)
	assert.Equal(t, 1, dev.Count("Clear"))
}

func TestMissingResource(t *testing.T) {
	r, dev := newTestRenderer()
	errs := collect(r)
	sc := xyz.NewScene("s")
	box := xyz.NewBox("box", 1, 1, 1)
	sc.Root.NewChild("a").AddDrawable(box, xyz.NewMaterial("m", xyz.Basic))

	require.NoError(t, r.Render(sc))
	require.NoError(t, r.Render(sc))
	assert.Equal(t, 1, r.Stats().Skipped)
	assert.Equal(t, 0, r.Stats().DrawCalls)
	require.Len(t, *errs, 1, "reported once")
	var me *MissingResourceError
	require.True(t, errors.As((*errs)[0], &me))
	assert.Equal(t, "geometry", me.Kind)
	assert.Equal(t, box.ID(), me.ID)
	assert.Len(t, dev.Draws, 0)

	r.Context.Resources.UploadScene(sc)
	require.NoError(t, r.Render(sc))
	assert.Equal(t, 1, r.Stats().DrawCalls)
}

func TestMissingTexture(t *testing.T) {
	r, _ := newTestRenderer()
	errs := collect(r)
	sc := xyz.NewScene("s")
	box := xyz.NewBox("box", 1, 1, 1)
	tex := xyz.NewTexture("tex", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	mt := xyz.NewMaterial("m", xyz.Basic).SetAlphaTest(0.5).SetTexture(xyz.MapSlot, tex)
	sc.Root.NewChild("a").AddDrawable(box, mt)
	r.Context.Resources.UploadGeometry(box)

	require.NoError(t, r.Render(sc))
	require.Len(t, *errs, 1)
	assert.Contains(t, (*errs)[0].Error(), "texture")

	r.AutoUpload = true
	require.NoError(t, r.Render(sc))
	assert.Equal(t, 1, r.Stats().DrawCalls)
	assert.True(t, r.Context.Resources.HasTexture(tex))
}

func TestUnsampledTexture(t *testing.T) {
	r, dev := newTestRenderer()
	errs := collect(r)
	sc := xyz.NewScene("s")
	box := xyz.NewBox("box", 1, 1, 1)
	// basic materials are unlit and never sample a normal map
	bump := xyz.NewTexture("bump", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	mt := xyz.NewMaterial("m", xyz.Basic).SetTexture(xyz.NormalMapSlot, bump)
	sc.Root.NewChild("a").AddDrawable(box, mt)
	r.Context.Resources.UploadGeometry(box)

	require.NoError(t, r.Render(sc))
	assert.Empty(t, *errs)
	assert.Equal(t, 0, r.Stats().Skipped)
	assert.Equal(t, 1, r.Stats().DrawCalls)
	assert.Equal(t, 0, dev.Count("BindTexture"))
	assert.Empty(t, dev.UniformsNamed("normalMap"))
	assert.False(t, r.Context.Resources.HasTexture(bump))

	r.AutoUpload = true
	require.NoError(t, r.Render(sc))
	assert.False(t, r.Context.Resources.HasTexture(bump), "not uploaded either")
}

func TestCompileErrorSkipsDraw(t *testing.T) {
	r, dev := newTestRenderer()
	errs := collect(r)
	dev.FailShader = func(typ gpu.ShaderTypes, src string) string {
		if typ == gpu.FragmentShader && strings.Contains(src, "#define KIND_PHONG\n") {
			return "0:1: error"
		}
		return ""
	}
	sc := xyz.NewScene("s")
	box := xyz.NewBox("box", 1, 1, 1)
	sc.Root.NewChild("bad").AddDrawable(box, xyz.NewMaterial("bad", xyz.Phong))
	sc.Root.NewChild("good").SetPos(1, 0, 0).AddDrawable(box, xyz.NewMaterial("good", xyz.Basic))
	r.Context.Resources.UploadScene(sc)

	require.NoError(t, r.Render(sc))
	require.NoError(t, r.Render(sc))
	stats := r.Stats()
	assert.Equal(t, 1, stats.DrawCalls)
	assert.Equal(t, 1, stats.CompileErrors)
	assert.Equal(t, 1, stats.Skipped)
	require.Len(t, *errs, 1)
	var ce *program.CompileError
	require.True(t, errors.As((*errs)[0], &ce))
	assert.Equal(t, gpu.FragmentStage, ce.Stage)
	assert.Equal(t, 2, r.Context.Programs.Compiles(), "the failed key is not retried")
}

func TestContextLost(t *testing.T) {
	r, dev := newTestRenderer()
	sc := xyz.NewScene("s")
	box := xyz.NewBox("box", 1, 1, 1)
	sc.Root.NewChild("a").AddDrawable(box, xyz.NewMaterial("m", xyz.Standard))
	r.Context.Resources.UploadScene(sc)
	require.NoError(t, r.Render(sc))

	dev.Lost = true
	err := r.Render(sc)
	var cle *gpu.ContextLostError
	require.True(t, errors.As(err, &cle))
	assert.True(t, errors.Is(err, gpu.ErrContextLost))
	assert.Equal(t, uint64(2), cle.Frame)
	assert.Equal(t, 0, r.Context.Programs.Len())
	assert.False(t, r.Context.Resources.HasGeometry(box))
	assert.Equal(t, Idle, r.Phase())

	dev.Lost = false
	dev.Reset()
	r.Restore()
	assert.True(t, r.Context.Resources.HasGeometry(box))
	require.NoError(t, r.Render(sc))
	assert.Equal(t, 1, r.Stats().DrawCalls)
	assert.Equal(t, 2, r.Context.Programs.Compiles())
	assert.Equal(t, 1, dev.Count("UseProgram"), "the state shadow was reset")
}

func TestReentry(t *testing.T) {
	r, _ := newTestRenderer()
	sc := xyz.NewScene("s")
	sc.Root.NewChild("a").AddDrawable(xyz.NewBox("box", 1, 1, 1), xyz.NewMaterial("m", xyz.Basic))
	var inner error
	var phase Phases
	r.OnError = func(err error) {
		phase = r.Phase()
		inner = r.Render(sc)
	}
	require.NoError(t, r.Render(sc))
	assert.ErrorIs(t, inner, ErrFrameInProgress)
	assert.Equal(t, Drawing, phase)
	assert.Equal(t, uint64(1), r.Frame())
}

func TestEmptyFrame(t *testing.T) {
	r, dev := newTestRenderer()
	sc := xyz.NewScene("s")
	box := xyz.NewBox("box", 1, 1, 1)
	sc.Root.NewChild("far").SetPos(1000, 0, 0).AddDrawable(box, xyz.NewMaterial("m", xyz.Basic))
	r.Context.Resources.UploadScene(sc)
	require.NoError(t, r.Render(sc))
	assert.Equal(t, 0, r.Stats().DrawCalls)
	assert.Equal(t, 1, r.Stats().Culled)
	assert.Equal(t, 1, dev.Count("Clear"))
}

func TestFrameUniforms(t *testing.T) {
	r, dev := newTestRenderer()
	sc := xyz.NewScene("s")
	xyz.NewDirLight(sc, "sun", 1, xyz.DirectSun)
	xyz.NewAmbientLight(sc, "amb", 0.5, xyz.DirectSun)
	box := xyz.NewBox("box", 1, 1, 1)
	mt := xyz.NewMaterial("m", xyz.Phong)
	for i := range 3 {
		sc.Root.NewChild("b").SetPos(float32(i-1), 0, 0).AddDrawable(box, mt)
	}
	r.Context.Resources.UploadScene(sc)
	require.NoError(t, r.Render(sc))
	require.NoError(t, r.Render(sc))
	assert.Len(t, dev.UniformsNamed("viewMatrix"), 2, "once per frame")
	assert.Len(t, dev.UniformsNamed("modelMatrix"), 6, "once per draw")
	dirs := dev.UniformsNamed("dirLightDirection")
	require.Len(t, dirs, 2)
	d := dirs[0].Value.([]mgl32.Vec3)
	require.Len(t, d, 1)
	assert.InDelta(t, 1, d[0].Len(), 1e-5)
	amb := dev.UniformsNamed("ambientLightColor")
	require.NotEmpty(t, amb)
	assert.NotEqual(t, mgl32.Vec3{}, amb[0].Value)
	pr := r.Context.Programs.Programs()[0]
	assert.Equal(t, 1, pr.Key.Lights.Dir)
	assert.Equal(t, 1, pr.Key.Lights.Ambient)
}

func TestMaterialState(t *testing.T) {
	r, dev := newTestRenderer()
	sc := xyz.NewScene("s")
	box := xyz.NewBox("box", 1, 1, 1)
	add := xyz.NewMaterial("add", xyz.Basic).SetSide(xyz.DoubleSide)
	add.Blending = xyz.AdditiveBlending
	sc.Root.NewChild("a").AddDrawable(box, add)
	sc.Root.NewChild("b").AddDrawable(box, xyz.NewMaterial("plain", xyz.Basic))
	r.Context.Resources.UploadScene(sc)
	require.NoError(t, r.Render(sc))
	assert.Equal(t, 2, dev.Count("SetBlending"))
	assert.Equal(t, 2, dev.Count("SetCullFace"))
	assert.Equal(t, 1, dev.Count("SetDepthFunc"))

	assert.Equal(t, gpu.AdditiveBlend, blendMode(add, add.Features()))
	glass := xyz.NewMaterial("glass", xyz.Basic).SetPremultipliedAlpha(true)
	assert.Equal(t, gpu.NoBlend, blendMode(glass, glass.Features()))
	glass.Opacity = 0.5
	assert.Equal(t, gpu.PremultipliedBlend, blendMode(glass, glass.Features()))
	assert.Equal(t, gpu.CullFront, cullMode(xyz.BackSide))
}

func TestTransmission(t *testing.T) {
	r, dev := newTestRenderer()
	sc := xyz.NewScene("s")
	box := xyz.NewBox("box", 1, 1, 1)
	sc.Root.NewChild("floor").SetPos(0, 0, -3).AddDrawable(box, xyz.NewMaterial("floor", xyz.Standard))
	glass := xyz.NewMaterial("glass", xyz.Physical).SetTransmission(0.9)
	sc.Root.NewChild("glass").AddDrawable(box, glass)
	r.Context.Resources.UploadScene(sc)

	require.NoError(t, r.Render(sc))
	assert.Equal(t, 1, dev.Count("CopyFramebuffer"))
	assert.Equal(t, 2, r.Stats().DrawCalls)
	size := dev.UniformsNamed("transmissionSize")
	require.Len(t, size, 1)
	assert.Equal(t, mgl32.Vec2{640, 480}, size[0].Value)
	assert.Len(t, dev.UniformsNamed("transmissionMap"), 1)
}

func TestSetSettings(t *testing.T) {
	r, dev := newTestRenderer()
	sc := xyz.NewScene("s")
	box := xyz.NewBox("box", 1, 1, 1)
	sc.Root.NewChild("a").AddDrawable(box, xyz.NewMaterial("m", xyz.Standard))
	r.Context.Resources.UploadScene(sc)
	require.NoError(t, r.Render(sc))
	assert.Equal(t, 1, r.Context.Programs.Compiles())

	s := r.Settings()
	s.Wireframe = true
	s.ClearColor = []float32{0, 0, 0, 1}
	r.SetSettings(s)
	require.NoError(t, r.Render(sc))
	assert.Equal(t, 2, r.Context.Programs.Compiles())
	prs := r.Context.Programs.Programs()
	require.Len(t, prs, 1, "the old program is evicted")
	assert.True(t, prs[0].Key.Features.Has(xyz.FeatureWireframe))
	assert.Equal(t, 2, dev.Count("SetWireframe"))
	assert.Equal(t, 2, dev.Count("SetClearColor"))
}

func TestStaleGeometry(t *testing.T) {
	r, dev := newTestRenderer()
	sc := xyz.NewScene("s")
	box := xyz.NewBox("box", 1, 1, 1)
	sc.Root.NewChild("a").AddDrawable(box, xyz.NewMaterial("m", xyz.Basic))
	r.Context.Resources.UploadScene(sc)
	require.NoError(t, r.Render(sc))
	assert.Equal(t, 1, dev.Count("CreateVertexArray"))

	box.SetPositions(append([]float32(nil), box.Positions...))
	require.NoError(t, r.Render(sc))
	assert.Equal(t, 2, dev.Count("CreateVertexArray"))
	assert.Equal(t, 1, dev.Count("DeleteVertexArray"))
	assert.Equal(t, 1, r.Stats().DrawCalls)
}

func TestPrecompile(t *testing.T) {
	r, _ := newTestRenderer()
	sc := xyz.NewScene("s")
	box := xyz.NewBox("box", 1, 1, 1)
	sc.Root.NewChild("a").AddDrawable(box, xyz.NewMaterial("a", xyz.Toon))
	sc.Root.NewChild("b").AddDrawable(box, xyz.NewMaterial("b", xyz.Normal))
	r.Context.Resources.UploadScene(sc)
	require.NoError(t, r.Precompile(context.Background(), sc))
	assert.Equal(t, 2, r.Context.Programs.Compiles())
	require.NoError(t, r.Render(sc))
	assert.Equal(t, 2, r.Context.Programs.Compiles())
	assert.Equal(t, 2, r.Stats().DrawCalls)
}

func TestNoSort(t *testing.T) {
	r, dev := newTestRenderer()
	sc := xyz.NewScene("s")
	far := xyz.NewBox("far", 1, 1, 1)
	near := xyz.NewBox("near", 1, 1, 1)
	mt := xyz.NewMaterial("m", xyz.Basic)
	sc.Root.NewChild("far").SetPos(0, 0, -5).AddDrawable(far, mt)
	sc.Root.NewChild("near").SetPos(0, 0, 5).AddDrawable(near, mt)
	r.Context.Resources.UploadScene(sc)
	nearBuf, _ := r.Context.Resources.Geometry(near)
	farBuf, _ := r.Context.Resources.Geometry(far)

	require.NoError(t, r.Render(sc))
	assert.Equal(t, nearBuf.VertexArray, dev.Draws[0].VertexArray)

	s := r.Settings()
	s.Sort = false
	r.SetSettings(s)
	dev.ClearCalls()
	require.NoError(t, r.Render(sc))
	assert.Equal(t, farBuf.VertexArray, dev.Draws[0].VertexArray)
}

func TestDispose(t *testing.T) {
	r, dev := newTestRenderer()
	sc := xyz.NewScene("s")
	sc.Root.NewChild("a").AddDrawable(xyz.NewBox("box", 1, 1, 1), xyz.NewMaterial("m", xyz.Basic))
	r.Context.Resources.UploadScene(sc)
	require.NoError(t, r.Render(sc))
	r.Dispose()
	assert.Equal(t, 0, dev.Programs())
	assert.Equal(t, 1, dev.Count("DeleteVertexArray"))
	g, tx := r.Context.Resources.Len()
	assert.Zero(t, g)
	assert.Zero(t, tx)
}

func TestCullMargin(t *testing.T) {
	r, _ := newTestRenderer()
	sc := xyz.NewScene("s")
	box := xyz.NewBox("box", 1, 1, 1)
	sc.Root.NewChild("in").AddDrawable(box, xyz.NewMaterial("m", xyz.Basic))
	// just outside the right plane of the default camera
	sc.Root.NewChild("edge").SetPos(5.5, 0, 0).AddDrawable(box, xyz.NewMaterial("m", xyz.Basic))
	r.Context.Resources.UploadScene(sc)

	require.NoError(t, r.Render(sc))
	assert.Equal(t, 1, r.Stats().Culled)
	assert.Equal(t, 1, r.Stats().Entries)
	assert.Equal(t, r.builder.Visible(), r.Stats().Entries, "every drawable that passed culling is listed")

	s := r.Settings()
	s.CullMargin = 1
	r.SetSettings(s)
	require.NoError(t, r.Render(sc))
	assert.Equal(t, 0, r.Stats().Culled)
	assert.Equal(t, 2, r.Stats().DrawCalls)
}

func TestPhases(t *testing.T) {
	assert.Equal(t, "ListBuilding", ListBuilding.String())
	assert.Equal(t, "Phases(9)", Phases(9).String())
}
