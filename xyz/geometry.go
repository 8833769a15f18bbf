// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cogentcore.org/core/math32"

	"cogentcore.org/forward/bounds"
)

// GeometryGroup is a sub-range of the indexes (or vertexes for non-indexed
// geometry) of a [Geometry], drawn as a separate draw call.
type GeometryGroup struct {
	Start int
	Count int
}

// Geometry holds vertex data and optional indexes for triangle meshes,
// with lazily computed bounding volumes. All vertex attributes are packed
// float32 arrays: 3 per vertex for positions and normals, 2 for uvs,
// 4 for colors.
//
// Changing the vertex data bumps the version (so that the GPU copy is
// re-uploaded) but never invalidates the bounding volumes:
// call [Geometry.InvalidateBounds] when the extent changed.
type Geometry struct {

	// Name is the name of the geometry, used in messages.
	Name string

	// Positions are the xyz vertex positions.
	Positions []float32

	// Normals are the xyz vertex normals.
	Normals []float32

	// UVs are the texture coordinates.
	UVs []float32

	// Colors are the optional rgba per-vertex colors.
	Colors []float32

	// Indices are the optional triangle indexes.
	Indices []uint32

	// Groups are the optional draw groups.
	Groups []GeometryGroup

	// MorphTargets is the number of morph targets, which selects a shader variant.
	MorphTargets int

	// Skinned marks geometry deformed by a skeleton, which selects a shader variant.
	Skinned bool

	// Instances is the number of instances drawn; 0 or 1 for regular draws.
	Instances int

	// InstanceOffset is the translation between successive instances.
	InstanceOffset math32.Vector3

	id      uint64
	version uint64
	bbox    *math32.Box3
	sphere  *math32.Sphere
}

// NewGeometry returns a new empty geometry.
func NewGeometry(name string) *Geometry {
	return &Geometry{Name: name, id: nextID()}
}

// ID returns the unique object id of the geometry.
func (g *Geometry) ID() uint64 {
	return g.id
}

// Version returns the vertex data version, which increases
// every time the data is changed through a setter or [Geometry.SetChanged].
func (g *Geometry) Version() uint64 {
	return g.version
}

// SetChanged records that the vertex data was modified directly.
func (g *Geometry) SetChanged() {
	g.version++
}

// SetPositions sets the vertex positions.
func (g *Geometry) SetPositions(pos []float32) *Geometry {
	g.Positions = pos
	g.version++
	return g
}

// SetNormals sets the vertex normals.
func (g *Geometry) SetNormals(norm []float32) *Geometry {
	g.Normals = norm
	g.version++
	return g
}

// SetUVs sets the texture coordinates.
func (g *Geometry) SetUVs(uv []float32) *Geometry {
	g.UVs = uv
	g.version++
	return g
}

// SetColors sets the per-vertex colors.
func (g *Geometry) SetColors(clr []float32) *Geometry {
	g.Colors = clr
	g.version++
	return g
}

// SetIndices sets the triangle indexes.
func (g *Geometry) SetIndices(idx []uint32) *Geometry {
	g.Indices = idx
	g.version++
	return g
}

// AddGroup adds a draw group.
func (g *Geometry) AddGroup(start, count int) *Geometry {
	g.Groups = append(g.Groups, GeometryGroup{Start: start, Count: count})
	return g
}

// NumVertex returns the number of vertexes.
func (g *Geometry) NumVertex() int {
	return len(g.Positions) / 3
}

// IsIndexed returns true if the geometry has indexes.
func (g *Geometry) IsIndexed() bool {
	return len(g.Indices) > 0
}

// HasColors returns true if the geometry has per-vertex colors.
func (g *Geometry) HasColors() bool {
	return len(g.Colors) > 0
}

// DrawRange returns the start and count of the elements to draw for the
// given group index (-1 or out of range = whole geometry). For indexed
// geometry these are indexes, otherwise vertexes.
func (g *Geometry) DrawRange(group int) (start, count int) {
	total := g.NumVertex()
	if g.IsIndexed() {
		total = len(g.Indices)
	}
	if group < 0 || group >= len(g.Groups) {
		return 0, total
	}
	gr := g.Groups[group]
	start = min(max(gr.Start, 0), total)
	count = min(gr.Count, total-start)
	return start, max(count, 0)
}

// Triangles returns the number of triangles drawn for the given group.
func (g *Geometry) Triangles(group int) int {
	_, n := g.DrawRange(group)
	return n / 3
}

// BoundingBox returns the bounding box of the positions, computing and
// caching it on first use. With more than one instance, the box encloses
// every instance. Returns false if there are no positions.
func (g *Geometry) BoundingBox() (math32.Box3, bool) {
	if g.bbox == nil {
		bb := bounds.FromPositions(g.Positions)
		g.bbox = &bb
	}
	bb := bounds.Instanced(*g.bbox, g.InstanceOffset, g.Instances)
	return bb, !bb.IsEmpty()
}

// BoundingSphere returns the bounding sphere of the positions, computing and
// caching it on first use. With more than one instance, the sphere encloses
// every instance. Returns false if there are no positions,
// in which case the geometry must be treated as always visible.
func (g *Geometry) BoundingSphere() (math32.Sphere, bool) {
	if g.sphere == nil {
		sp := bounds.SphereFromPositions(g.Positions)
		g.sphere = &sp
	}
	sp := bounds.InstancedSphere(*g.sphere, g.InstanceOffset, g.Instances)
	return sp, !bounds.SphereIsEmpty(sp)
}

// HasBounds returns true if the bounding volumes have been computed
// and are not empty.
func (g *Geometry) HasBounds() bool {
	return g.sphere != nil && !bounds.SphereIsEmpty(*g.sphere)
}

// SetBoundingSphere sets an explicit bounding sphere of a single
// instance, e.g., one enclosing all animation frames.
func (g *Geometry) SetBoundingSphere(sp math32.Sphere) {
	g.sphere = &sp
}

// InvalidateBounds discards the cached bounding volumes so that they
// are recomputed on next use.
func (g *Geometry) InvalidateBounds() {
	g.bbox = nil
	g.sphere = nil
}
