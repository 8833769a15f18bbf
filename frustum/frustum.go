// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frustum tests bounding volumes against the view volume
// of a camera, on top of [math32.Frustum].
//
// Tests are conservative: a volume that straddles a plane is
// reported as visible, so a genuinely visible object is never
// culled, at the cost of drawing some invisible ones. Empty volumes
// and degenerate planes never cull anything.
package frustum

import (
	"cogentcore.org/core/math32"

	"cogentcore.org/forward/bounds"
)

// Planes are the indexes of the frustum planes, in the order
// set by [math32.Frustum.SetFromMatrix].
type Planes int32

const (
	Right Planes = iota
	Left
	Bottom
	Top
	Far
	Near
	PlanesN
)

// Frustum is the view volume of a camera.
type Frustum struct {
	math32.Frustum
}

// New returns the frustum for the given projection * view matrix.
func New(viewProjection *math32.Matrix4) Frustum {
	fr := Frustum{}
	fr.SetFromMatrix(viewProjection)
	return fr
}

// SetFromMatrix extracts the normalized planes from the given
// projection * view matrix. A plane with no normal, as produced by a
// singular matrix, is replaced by one that every point is inside.
func (fr *Frustum) SetFromMatrix(m *math32.Matrix4) {
	fr.Frustum.SetFromMatrix(m)
	for i := range fr.Planes {
		pl := &fr.Planes[i]
		if math32.IsNaN(pl.Norm.X) || math32.IsNaN(pl.Norm.Y) || math32.IsNaN(pl.Norm.Z) || math32.IsNaN(pl.Off) {
			pl.Set(math32.Vector3{}, math32.Infinity)
		}
	}
}

// Plane returns the plane with the given index.
func (fr *Frustum) Plane(p Planes) math32.Plane {
	return fr.Planes[p]
}

// IntersectsSphere returns true if any part of the sphere is inside the frustum.
// Empty spheres are treated as always visible.
func (fr *Frustum) IntersectsSphere(sp math32.Sphere) bool {
	if bounds.SphereIsEmpty(sp) {
		return true
	}
	return fr.Frustum.IntersectsSphere(sp)
}

// IntersectsBox returns true if any part of the box is inside the frustum.
// Empty boxes are treated as always visible.
func (fr *Frustum) IntersectsBox(bx math32.Box3) bool {
	if bx.IsEmpty() {
		return true
	}
	return fr.Frustum.IntersectsBox(bx)
}

// Expand moves every plane outward by the given margin in world units.
func (fr *Frustum) Expand(margin float32) {
	margin = math32.Abs(margin)
	for i := range fr.Planes {
		fr.Planes[i].Off += margin
	}
}
