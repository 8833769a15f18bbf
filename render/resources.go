// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image"

	"cogentcore.org/forward/gpu"
	"cogentcore.org/forward/program"
	"cogentcore.org/forward/xyz"
)

// MissingResourceError is reported when a drawable references a
// geometry or texture that is not uploaded. The object is skipped
// for the frame.
type MissingResourceError struct {

	// Kind is "geometry" or "texture".
	Kind string
	Name string
	ID   uint64
}

func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("render: %s %q (%d) is not uploaded", e.Kind, e.Name, e.ID)
}

// GeometryBuffers are the device objects of an uploaded geometry.
type GeometryBuffers struct {
	VertexArray gpu.Handle
	Buffers     []gpu.Handle
	Indexed     bool

	geom    *xyz.Geometry
	version uint64
}

type textureObject struct {
	tex     *xyz.Texture
	handle  gpu.Handle
	version uint64
}

// Resources are the geometries and textures uploaded to the device.
// Uploaded objects whose data changed are uploaded again when drawn.
type Resources struct {
	st         *gpu.State
	geometries map[uint64]*GeometryBuffers
	textures   map[uint64]*textureObject
	reported   map[uint64]bool

	transmission     gpu.Handle
	transmissionSize image.Point
}

// NewResources returns new empty resources on the device of the state.
func NewResources(st *gpu.State) *Resources {
	return &Resources{
		st:         st,
		geometries: make(map[uint64]*GeometryBuffers),
		textures:   make(map[uint64]*textureObject),
		reported:   make(map[uint64]bool),
	}
}

// Len returns the number of known geometries and textures.
func (rs *Resources) Len() (geometries, textures int) {
	return len(rs.geometries), len(rs.textures)
}

// UploadGeometry uploads the vertex data of the geometry,
// replacing any previous upload.
func (rs *Resources) UploadGeometry(g *xyz.Geometry) *GeometryBuffers {
	gb := rs.geometries[g.ID()]
	if gb == nil {
		gb = &GeometryBuffers{geom: g}
		rs.geometries[g.ID()] = gb
	} else {
		rs.deleteGeometry(gb)
	}
	dev := rs.st.Device()
	gb.VertexArray = dev.CreateVertexArray()
	rs.st.BindVertexArray(gb.VertexArray)
	attrib := func(loc uint32, size int32, data []float32) {
		if len(data) == 0 {
			return
		}
		buf := dev.CreateBuffer()
		gb.Buffers = append(gb.Buffers, buf)
		rs.st.BindBuffer(gpu.ArrayBuffer, buf)
		dev.BufferFloat32(gpu.ArrayBuffer, data)
		dev.VertexAttrib(loc, size)
	}
	attrib(program.PositionAttrib, 3, g.Positions)
	attrib(program.NormalAttrib, 3, g.Normals)
	attrib(program.UVAttrib, 2, g.UVs)
	attrib(program.ColorAttrib, 4, g.Colors)
	gb.Indexed = g.IsIndexed()
	if gb.Indexed {
		buf := dev.CreateBuffer()
		gb.Buffers = append(gb.Buffers, buf)
		rs.st.BindBuffer(gpu.ElementArrayBuffer, buf)
		dev.BufferUint32(gpu.ElementArrayBuffer, g.Indices)
	}
	gb.version = g.Version()
	delete(rs.reported, g.ID())
	return gb
}

// UploadTexture uploads the image of the texture, replacing any
// previous upload.
func (rs *Resources) UploadTexture(tx *xyz.Texture) gpu.Handle {
	to := rs.textures[tx.ID()]
	if to == nil {
		to = &textureObject{tex: tx}
		rs.textures[tx.ID()] = to
	}
	if to.handle == 0 {
		to.handle = rs.st.Device().CreateTexture()
	}
	rs.st.Device().TextureImage(to.handle, tx.RGBA, tx.ColorSpace == xyz.SRGBSpace)
	to.version = tx.Version()
	delete(rs.reported, tx.ID())
	return to.handle
}

// UploadMaterial uploads the textures of the material.
func (rs *Resources) UploadMaterial(mt *xyz.Material) {
	mt.Textures(func(slot xyz.TextureSlots, tx *xyz.Texture) {
		rs.UploadTexture(tx)
	})
}

// UploadScene uploads the geometries and textures of every
// drawable in the scene that are not uploaded yet.
func (rs *Resources) UploadScene(sc *xyz.Scene) {
	sc.Root.Walk(func(n *xyz.Node) bool {
		for _, d := range n.Drawables {
			if d.Geometry != nil && !rs.HasGeometry(d.Geometry) {
				rs.UploadGeometry(d.Geometry)
			}
			if d.Material == nil {
				continue
			}
			d.Material.Textures(func(slot xyz.TextureSlots, tx *xyz.Texture) {
				if !rs.HasTexture(tx) {
					rs.UploadTexture(tx)
				}
			})
		}
		return xyz.Continue
	})
}

// HasGeometry returns true if the geometry is uploaded.
func (rs *Resources) HasGeometry(g *xyz.Geometry) bool {
	gb := rs.geometries[g.ID()]
	return gb != nil && gb.VertexArray != 0
}

// HasTexture returns true if the texture is uploaded.
func (rs *Resources) HasTexture(tx *xyz.Texture) bool {
	to := rs.textures[tx.ID()]
	return to != nil && to.handle != 0
}

// Geometry returns the buffers of an uploaded geometry, uploading it
// again if its data changed. It returns a [*MissingResourceError]
// if the geometry was never uploaded.
func (rs *Resources) Geometry(g *xyz.Geometry) (*GeometryBuffers, error) {
	gb := rs.geometries[g.ID()]
	if gb == nil || gb.VertexArray == 0 {
		return nil, &MissingResourceError{Kind: "geometry", Name: g.Name, ID: g.ID()}
	}
	if gb.version != g.Version() {
		rs.UploadGeometry(g)
	}
	return gb, nil
}

// Texture returns the handle of an uploaded texture, uploading it
// again if its image changed.
func (rs *Resources) Texture(tx *xyz.Texture) (gpu.Handle, error) {
	to := rs.textures[tx.ID()]
	if to == nil || to.handle == 0 {
		return 0, &MissingResourceError{Kind: "texture", Name: tx.Name, ID: tx.ID()}
	}
	if to.version != tx.Version() {
		rs.UploadTexture(tx)
	}
	return to.handle, nil
}

// firstReport returns true the first time a missing resource is
// reported since it was last uploaded.
func (rs *Resources) firstReport(err *MissingResourceError) bool {
	if rs.reported[err.ID] {
		return false
	}
	rs.reported[err.ID] = true
	return true
}

// TransmissionTexture copies the current framebuffer of the given size
// into the transmission texture and returns it.
func (rs *Resources) TransmissionTexture(size image.Point) gpu.Handle {
	dev := rs.st.Device()
	if rs.transmission == 0 {
		rs.transmission = dev.CreateTexture()
	}
	dev.CopyFramebuffer(rs.transmission, size)
	rs.transmissionSize = size
	return rs.transmission
}

func (rs *Resources) deleteGeometry(gb *GeometryBuffers) {
	if gb.VertexArray != 0 {
		rs.st.DeleteVertexArray(gb.VertexArray)
	}
	for _, buf := range gb.Buffers {
		rs.st.DeleteBuffer(buf)
	}
	gb.VertexArray = 0
	gb.Buffers = nil
}

// DeleteGeometry deletes the upload of the geometry.
func (rs *Resources) DeleteGeometry(g *xyz.Geometry) {
	gb := rs.geometries[g.ID()]
	if gb == nil {
		return
	}
	rs.deleteGeometry(gb)
	delete(rs.geometries, g.ID())
}

// DeleteTexture deletes the upload of the texture.
func (rs *Resources) DeleteTexture(tx *xyz.Texture) {
	to := rs.textures[tx.ID()]
	if to == nil {
		return
	}
	if to.handle != 0 {
		rs.st.DeleteTexture(to.handle)
	}
	delete(rs.textures, tx.ID())
}

// Invalidate forgets the device objects of every resource after a
// context loss, keeping the resources known for [Resources.Restore].
func (rs *Resources) Invalidate() {
	for _, gb := range rs.geometries {
		gb.VertexArray = 0
		gb.Buffers = nil
	}
	for _, to := range rs.textures {
		to.handle = 0
	}
	rs.transmission = 0
	clear(rs.reported)
}

// Restore uploads every known resource again, after a context loss.
func (rs *Resources) Restore() {
	for _, gb := range rs.geometries {
		if gb.VertexArray == 0 {
			rs.UploadGeometry(gb.geom)
		}
	}
	for _, to := range rs.textures {
		if to.handle == 0 {
			rs.UploadTexture(to.tex)
		}
	}
}

// Dispose deletes every resource from the device.
func (rs *Resources) Dispose() {
	for _, gb := range rs.geometries {
		rs.deleteGeometry(gb)
	}
	for _, to := range rs.textures {
		if to.handle != 0 {
			rs.st.DeleteTexture(to.handle)
		}
	}
	if rs.transmission != 0 {
		rs.st.DeleteTexture(rs.transmission)
	}
	clear(rs.geometries)
	clear(rs.textures)
	clear(rs.reported)
	rs.transmission = 0
}
