// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// slot is one value of the shadow state. An invalid slot never matches,
// so the next set is always issued.
type slot[T comparable] struct {
	val   T
	valid bool
}

// set records v and returns true if the call must be issued.
func (s *slot[T]) set(v T) bool {
	if s.valid && s.val == v {
		return false
	}
	s.val = v
	s.valid = true
	return true
}

func (s *slot[T]) reset() {
	s.valid = false
}

// forget marks an object that was deleted as unbound, matching the
// device behavior of unbinding deleted objects.
func (s *slot[T]) forget(v T) {
	var zero T
	if s.valid && s.val == v {
		s.val = zero
	}
}

// StateStats counts the state calls made through a [State].
type StateStats struct {

	// Issued is the number of calls passed on to the device.
	Issued int

	// Skipped is the number of calls that matched the shadow state.
	Skipped int
}

// State is a shadow copy of the state of one [Device], used to skip
// calls that would set the state to what it already is. It caches
// writes only: after anything changes the device state behind its back,
// such as a context loss, call [State.Reset] so that every call is
// issued again until the shadow is rebuilt.
//
// Use one State per device, from the thread that owns the device.
type State struct {
	Stats StateStats

	dev Device

	program       slot[Handle]
	vertexArray   slot[Handle]
	buffers       [BufferTargetsN]slot[Handle]
	textures      []slot[Handle]
	blending      slot[BlendModes]
	depthTest     slot[bool]
	depthFunc     slot[CompareFuncs]
	depthMask     slot[bool]
	colorMask     slot[bool]
	stencilTest   slot[bool]
	stencilFunc   slot[StencilFunc]
	stencilOp     slot[StencilOp]
	stencilMask   slot[uint32]
	cullFace      slot[CullModes]
	frontFace     slot[FrontFaces]
	viewport      slot[image.Rectangle]
	scissorTest   slot[bool]
	scissor       slot[image.Rectangle]
	polygonOffset slot[PolygonOffset]
	lineWidth     slot[float32]
	wireframe     slot[bool]
	clearColor    slot[mgl32.Vec4]
}

// NewState returns a new State for the device, with nothing known,
// so that the first call to each setter is always issued.
func NewState(dev Device) *State {
	st := &State{dev: dev}
	units := max(dev.MaxTextureUnits()-1, 1)
	st.textures = make([]slot[Handle], units)
	return st
}

// Device returns the device this state tracks.
func (st *State) Device() Device {
	return st.dev
}

// TextureUnits returns the number of texture units available for binding.
func (st *State) TextureUnits() int {
	return len(st.textures)
}

// Reset invalidates the whole shadow state.
func (st *State) Reset() {
	st.program.reset()
	st.vertexArray.reset()
	for i := range st.buffers {
		st.buffers[i].reset()
	}
	for i := range st.textures {
		st.textures[i].reset()
	}
	st.blending.reset()
	st.depthTest.reset()
	st.depthFunc.reset()
	st.depthMask.reset()
	st.colorMask.reset()
	st.stencilTest.reset()
	st.stencilFunc.reset()
	st.stencilOp.reset()
	st.stencilMask.reset()
	st.cullFace.reset()
	st.frontFace.reset()
	st.viewport.reset()
	st.scissorTest.reset()
	st.scissor.reset()
	st.polygonOffset.reset()
	st.lineWidth.reset()
	st.wireframe.reset()
	st.clearColor.reset()
}

// issue counts the call and returns changed.
func (st *State) issue(changed bool) bool {
	if changed {
		st.Stats.Issued++
	} else {
		st.Stats.Skipped++
	}
	return changed
}

// Program returns the program in use, 0 if none or unknown.
func (st *State) Program() Handle {
	return st.program.val
}

// UseProgram makes the program current. Returns true if it was not
// already current, in which case per-program uniforms must be uploaded.
func (st *State) UseProgram(pr Handle) bool {
	if st.issue(st.program.set(pr)) {
		st.dev.UseProgram(pr)
		return true
	}
	return false
}

// DeleteProgram deletes the program. A later program can get the same
// handle, so the program slot is invalidated if it was in use.
func (st *State) DeleteProgram(pr Handle) {
	if st.program.valid && st.program.val == pr {
		st.program.reset()
	}
	st.dev.DeleteProgram(pr)
}

// BindVertexArray binds the vertex array. Binding a vertex array also
// changes the element buffer binding, so that slot is invalidated.
func (st *State) BindVertexArray(va Handle) bool {
	if st.issue(st.vertexArray.set(va)) {
		st.dev.BindVertexArray(va)
		st.buffers[ElementArrayBuffer].reset()
		return true
	}
	return false
}

// DeleteVertexArray deletes the vertex array, unbinding it if bound.
func (st *State) DeleteVertexArray(va Handle) {
	st.vertexArray.forget(va)
	st.dev.DeleteVertexArray(va)
}

// BindBuffer binds the buffer to the target.
func (st *State) BindBuffer(target BufferTargets, buf Handle) bool {
	if st.issue(st.buffers[target].set(buf)) {
		st.dev.BindBuffer(target, buf)
		return true
	}
	return false
}

// DeleteBuffer deletes the buffer, unbinding it if bound.
func (st *State) DeleteBuffer(buf Handle) {
	for i := range st.buffers {
		st.buffers[i].forget(buf)
	}
	st.dev.DeleteBuffer(buf)
}

// BindTexture binds the texture to the texture unit.
func (st *State) BindTexture(unit int, tex Handle) bool {
	if unit < 0 || unit >= len(st.textures) {
		return false
	}
	if st.issue(st.textures[unit].set(tex)) {
		st.dev.BindTexture(unit, tex)
		return true
	}
	return false
}

// DeleteTexture deletes the texture, unbinding it from any unit.
func (st *State) DeleteTexture(tex Handle) {
	for i := range st.textures {
		st.textures[i].forget(tex)
	}
	st.dev.DeleteTexture(tex)
}

func (st *State) SetBlending(mode BlendModes) {
	if st.issue(st.blending.set(mode)) {
		st.dev.SetBlending(mode)
	}
}

func (st *State) SetDepthTest(on bool) {
	if st.issue(st.depthTest.set(on)) {
		st.dev.SetDepthTest(on)
	}
}

func (st *State) SetDepthFunc(fn CompareFuncs) {
	if st.issue(st.depthFunc.set(fn)) {
		st.dev.SetDepthFunc(fn)
	}
}

func (st *State) SetDepthMask(on bool) {
	if st.issue(st.depthMask.set(on)) {
		st.dev.SetDepthMask(on)
	}
}

func (st *State) SetColorMask(on bool) {
	if st.issue(st.colorMask.set(on)) {
		st.dev.SetColorMask(on)
	}
}

func (st *State) SetStencilTest(on bool) {
	if st.issue(st.stencilTest.set(on)) {
		st.dev.SetStencilTest(on)
	}
}

func (st *State) SetStencilFunc(fn StencilFunc) {
	if st.issue(st.stencilFunc.set(fn)) {
		st.dev.SetStencilFunc(fn)
	}
}

func (st *State) SetStencilOp(op StencilOp) {
	if st.issue(st.stencilOp.set(op)) {
		st.dev.SetStencilOp(op)
	}
}

func (st *State) SetStencilMask(mask uint32) {
	if st.issue(st.stencilMask.set(mask)) {
		st.dev.SetStencilMask(mask)
	}
}

func (st *State) SetCullFace(mode CullModes) {
	if st.issue(st.cullFace.set(mode)) {
		st.dev.SetCullFace(mode)
	}
}

func (st *State) SetFrontFace(ff FrontFaces) {
	if st.issue(st.frontFace.set(ff)) {
		st.dev.SetFrontFace(ff)
	}
}

func (st *State) SetViewport(r image.Rectangle) {
	if st.issue(st.viewport.set(r)) {
		st.dev.SetViewport(r)
	}
}

func (st *State) SetScissorTest(on bool) {
	if st.issue(st.scissorTest.set(on)) {
		st.dev.SetScissorTest(on)
	}
}

func (st *State) SetScissor(r image.Rectangle) {
	if st.issue(st.scissor.set(r)) {
		st.dev.SetScissor(r)
	}
}

// SetPolygonOffset sets the depth offset. The factor and units of a
// disabled offset are irrelevant, so all disabled offsets are equal.
func (st *State) SetPolygonOffset(po PolygonOffset) {
	if !po.On {
		po = PolygonOffset{}
	}
	if st.issue(st.polygonOffset.set(po)) {
		st.dev.SetPolygonOffset(po)
	}
}

func (st *State) SetLineWidth(w float32) {
	if st.issue(st.lineWidth.set(w)) {
		st.dev.SetLineWidth(w)
	}
}

func (st *State) SetWireframe(on bool) {
	if st.issue(st.wireframe.set(on)) {
		st.dev.SetWireframe(on)
	}
}

func (st *State) SetClearColor(c mgl32.Vec4) {
	if st.issue(st.clearColor.set(c)) {
		st.dev.SetClearColor(c)
	}
}
