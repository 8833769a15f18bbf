// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"context"
	"fmt"
	"image"

	"cogentcore.org/core/base/errors"
	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/forward/gpu"
	"cogentcore.org/forward/program"
	"cogentcore.org/forward/renderlist"
	"cogentcore.org/forward/xyz"
)

// ErrFrameInProgress is returned by [Renderer.Render] when called
// while a frame is being rendered.
var ErrFrameInProgress = errors.New("render: frame in progress")

// Phases are the phases of a frame.
type Phases int32

const (
	// Idle is between frames.
	Idle Phases = iota

	// Culling updates the world matrices and the camera, and tests
	// the drawables against the view frustum.
	Culling

	// ListBuilding collects the drawables that passed culling into
	// render lists.
	ListBuilding

	// Sorting sorts the render lists.
	Sorting

	// Drawing issues the draws of the lists.
	Drawing
)

var phaseNames = [...]string{"Idle", "Culling", "ListBuilding", "Sorting", "Drawing"}

func (ph Phases) String() string {
	if ph < 0 || int(ph) >= len(phaseNames) {
		return fmt.Sprintf("Phases(%d)", int32(ph))
	}
	return phaseNames[ph]
}

// Stats are the statistics of one frame.
type Stats struct {
	Frame uint64

	// Entries is the number of render list entries.
	Entries int

	DrawCalls int
	Triangles int

	// Culled is the number of drawables outside the view frustum.
	Culled int

	// Skipped is the number of entries not drawn because of a
	// missing resource or a program error.
	Skipped int

	// ProgramSwitches is the number of program changes.
	ProgramSwitches int

	// CompileErrors is the number of entries skipped because
	// their program failed to build.
	CompileErrors int
}

// Renderer renders frames of scenes into the current framebuffer
// of its context. Frames are strictly sequential: a frame runs to
// completion in [Renderer.Render].
type Renderer struct {
	Context *Context

	// OnError receives the errors of draws that are skipped: program
	// build failures and missing resources, each reported once.
	// By default they are logged.
	OnError func(err error)

	// AutoUpload uploads missing geometries and textures when they
	// are drawn, instead of skipping them.
	AutoUpload bool

	size     image.Point
	settings Settings
	pending  *Settings
	phase    Phases
	frame    uint64
	stats    Stats
	builder  renderlist.Builder
	env      program.Env
	fu       frameUniforms
	reported map[error]bool

	// transmission is the texture holding the opaque pass of the frame.
	transmission gpu.Handle
}

// NewRenderer returns a new renderer for the context with default settings.
func NewRenderer(cx *Context) *Renderer {
	r := &Renderer{Context: cx, reported: make(map[error]bool)}
	r.applySettings(DefaultSettings())
	return r
}

// Phase returns the current phase.
func (r *Renderer) Phase() Phases {
	return r.phase
}

// Stats returns the statistics of the last frame.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Frame returns the number of the last frame.
func (r *Renderer) Frame() uint64 {
	return r.frame
}

// Settings returns the current settings.
func (r *Renderer) Settings() Settings {
	return r.settings
}

// SetSettings sets the renderer settings. During a frame they are
// applied when the next frame starts. Settings that select programs
// make every material derive its program again.
func (r *Renderer) SetSettings(s Settings) {
	if r.phase != Idle {
		r.pending = &s
		return
	}
	r.applySettings(s)
}

func (r *Renderer) applySettings(s Settings) {
	r.settings = s
	r.pending = nil
	r.Context.Programs.SetSettings(s.Options())
}

// SetSize sets the size of the framebuffer, used for the viewport
// and the transmission texture.
func (r *Renderer) SetSize(size image.Point) {
	r.size = size
}

// Size returns the size of the framebuffer.
func (r *Renderer) Size() image.Point {
	return r.size
}

func (r *Renderer) report(err error) {
	if r.OnError != nil {
		r.OnError(err)
		return
	}
	errors.Log(err)
}

// reportOnce reports the error the first time it is seen.
func (r *Renderer) reportOnce(err error) {
	if r.reported[err] {
		return
	}
	r.reported[err] = true
	r.report(err)
}

// lost invalidates everything on the device after a context loss.
func (r *Renderer) lost() error {
	r.Context.Invalidate()
	r.transmission = 0
	clear(r.reported)
	return &gpu.ContextLostError{Frame: r.frame}
}

// Restore uploads the known resources again after a context loss.
// Programs are rebuilt as they are used.
func (r *Renderer) Restore() {
	r.Context.Resources.Restore()
}

// Render renders a frame of the scene. Draws that cannot be made are
// skipped and reported to OnError; the frame still completes. If the
// context is lost, every cache is invalidated and a
// [*gpu.ContextLostError] is returned.
func (r *Renderer) Render(sc *xyz.Scene) error {
	if r.phase != Idle {
		return ErrFrameInProgress
	}
	if r.pending != nil {
		r.applySettings(*r.pending)
	}
	r.frame++
	r.stats = Stats{Frame: r.frame}
	if r.Context.Device.ContextLost() {
		return r.lost()
	}
	defer func() { r.phase = Idle }()

	r.phase = Culling
	sc.Update()
	r.builder.Margin = r.settings.CullMargin
	r.builder.Cull(sc.Root, &sc.Camera)
	r.stats.Culled = r.builder.Culled()

	r.phase = ListBuilding
	ls := r.builder.List(&sc.Camera)
	r.stats.Entries = ls.Len()

	r.phase = Sorting
	if r.settings.Sort {
		ls.Sort()
	}

	r.phase = Drawing
	r.begin(sc)
	r.drawList(&ls.Opaque)
	if ls.Transmissive.Len() > 0 && r.size != (image.Point{}) {
		r.transmission = r.Context.Resources.TransmissionTexture(r.size)
	}
	r.drawList(&ls.Transmissive)
	r.drawList(&ls.Transparent)
	r.Context.Programs.Evict()

	if r.Context.Device.ContextLost() {
		return r.lost()
	}
	return nil
}

// begin sets up the frame uniforms, the viewport and clears the framebuffer.
func (r *Renderer) begin(sc *xyz.Scene) {
	st := r.Context.State
	r.env = program.EnvOf(sc)
	r.fu.set(sc, r.settings.Exposure)
	if r.size != (image.Point{}) {
		st.SetViewport(image.Rectangle{Max: r.size})
	}
	clr, ok := r.settings.clearColor()
	if !ok {
		bg := sc.BackgroundColor
		clr = colorVec3(bg).Vec4(float32(bg.A) / 255)
	}
	st.SetClearColor(clr)
	st.SetScissorTest(false)
	st.SetDepthMask(true)
	st.SetColorMask(true)
	r.Context.Device.Clear(true, true, true)
}

func (r *Renderer) drawList(l *renderlist.List) {
	for i := range l.Entries {
		r.draw(&l.Entries[i])
	}
}

// skip reports a draw that is not made.
func (r *Renderer) skip(err error) {
	r.stats.Skipped++
	var me *MissingResourceError
	if errors.As(err, &me) {
		if r.Context.Resources.firstReport(me) {
			r.report(err)
		}
		return
	}
	r.stats.CompileErrors++
	r.reportOnce(err)
}

// geometry returns the buffers of the geometry, uploading them if enabled.
func (r *Renderer) geometry(g *xyz.Geometry) (*GeometryBuffers, error) {
	res := r.Context.Resources
	if r.AutoUpload && !res.HasGeometry(g) {
		return res.UploadGeometry(g), nil
	}
	return res.Geometry(g)
}

// textures resolves the texture handles of the material for the
// slots the program samples.
func (r *Renderer) textures(mt *xyz.Material, feats xyz.Features, handles *[xyz.TextureSlotsN]gpu.Handle) error {
	res := r.Context.Resources
	var err error
	mt.Textures(func(slot xyz.TextureSlots, tx *xyz.Texture) {
		if err != nil || !feats.Has(slot.Feature()) {
			return
		}
		if r.AutoUpload && !res.HasTexture(tx) {
			handles[slot] = res.UploadTexture(tx)
			return
		}
		handles[slot], err = res.Texture(tx)
	})
	return err
}

// draw draws one entry.
func (r *Renderer) draw(e *renderlist.Entry) {
	cx := r.Context
	st := cx.State
	gb, err := r.geometry(e.Geometry)
	if err != nil {
		r.skip(err)
		return
	}
	pr, err := cx.Programs.Acquire(e.Material, e.Geometry, r.env)
	if err != nil {
		r.skip(err)
		return
	}
	var texs [xyz.TextureSlotsN]gpu.Handle
	if err := r.textures(e.Material, pr.Key.Features, &texs); err != nil {
		r.skip(err)
		return
	}
	start, count := e.Geometry.DrawRange(e.Group)
	if count == 0 {
		return
	}

	if st.UseProgram(pr.Handle) {
		r.stats.ProgramSwitches++
	}
	u := uniforms{dev: cx.Device, pr: pr}
	if pr.BeginFrame(r.frame) {
		u.frame(&r.fu)
	}
	r.materialState(e.Material, pr.Key.Features)

	unit := 0
	for slot, h := range texs {
		if h == 0 || unit >= st.TextureUnits() {
			continue
		}
		st.BindTexture(unit, h)
		u.sampler(samplerNames[slot], unit)
		unit++
	}
	if pr.Key.Features.Has(xyz.FeatureTransmission) && r.transmission != 0 && unit < st.TextureUnits() {
		st.BindTexture(unit, r.transmission)
		u.sampler("transmissionMap", unit)
		u.vec2("transmissionSize", mgl32.Vec2{float32(r.size.X), float32(r.size.Y)})
	}

	st.BindVertexArray(gb.VertexArray)
	u.draw(e.Node, e.Geometry, e.Material, r.fu.view)

	inst := max(e.Geometry.Instances, 1)
	if gb.Indexed {
		cx.Device.DrawElements(gpu.Triangles, start, count, inst)
	} else {
		cx.Device.DrawArrays(gpu.Triangles, start, count, inst)
	}
	r.stats.DrawCalls++
	r.stats.Triangles += count / 3 * inst
}

// materialState sets the blending, depth, culling and rasterization
// state of the material.
func (r *Renderer) materialState(mt *xyz.Material, feats xyz.Features) {
	st := r.Context.State
	st.SetBlending(blendMode(mt, feats))
	st.SetDepthTest(mt.DepthTest)
	st.SetDepthFunc(gpu.LessEqual)
	st.SetDepthMask(mt.DepthWrite)
	st.SetColorMask(mt.ColorWrite)
	st.SetCullFace(cullMode(mt.Side()))
	st.SetFrontFace(gpu.CCW)
	st.SetPolygonOffset(gpu.PolygonOffset{On: mt.PolygonOffset, Factor: mt.PolygonOffsetFactor, Units: mt.PolygonOffsetUnits})
	st.SetWireframe(feats.Has(xyz.FeatureWireframe))
}

// blendMode returns the blend mode of the material. Opaque materials
// with normal blending are not blended.
func blendMode(mt *xyz.Material, feats xyz.Features) gpu.BlendModes {
	switch mt.Blending {
	case xyz.NoBlending:
		return gpu.NoBlend
	case xyz.AdditiveBlending:
		return gpu.AdditiveBlend
	case xyz.SubtractiveBlending:
		return gpu.SubtractiveBlend
	case xyz.MultiplyBlending:
		return gpu.MultiplyBlend
	}
	if !mt.IsTransparent() {
		return gpu.NoBlend
	}
	if feats.Has(xyz.FeaturePremultiplied) {
		return gpu.PremultipliedBlend
	}
	return gpu.AlphaBlend
}

func cullMode(side xyz.Sides) gpu.CullModes {
	switch side {
	case xyz.BackSide:
		return gpu.CullFront
	case xyz.DoubleSide:
		return gpu.CullNone
	}
	return gpu.CullBack
}

// Precompile builds the programs of every drawable of the scene
// with the current settings and lights, so that the first frames do
// not stall on compiles. Sources are generated concurrently.
func (r *Renderer) Precompile(ctx context.Context, sc *xyz.Scene) error {
	env := program.EnvOf(sc)
	opts := r.settings.Options()
	var keys []program.Key
	sc.Root.Walk(func(n *xyz.Node) bool {
		for _, d := range n.Drawables {
			if d.Geometry != nil && d.Material != nil {
				keys = append(keys, program.NewKey(d.Material, d.Geometry, env, opts))
			}
		}
		return xyz.Continue
	})
	p, err := program.Prepare(ctx, keys)
	if err != nil {
		return err
	}
	return r.Context.Programs.Install(p)
}

// Dispose deletes every device object of the renderer.
func (r *Renderer) Dispose() {
	r.Context.Dispose()
	r.transmission = 0
}
