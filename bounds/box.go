// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bounds computes the [math32.Box3] and [math32.Sphere]
// bounding volumes used for culling and depth sorting.
//
// An empty box has Min > Max on some axis (see [math32.B3Empty]),
// and an empty sphere has a negative radius. Empty volumes pass
// through transforms unchanged, so that culling can fail open on them.
package bounds

import (
	"cogentcore.org/core/math32"
)

// EmptySphere returns a sphere that contains nothing.
func EmptySphere() math32.Sphere {
	return math32.Sphere{Radius: -1}
}

// SphereIsEmpty returns true if the sphere contains nothing.
func SphereIsEmpty(sp math32.Sphere) bool {
	return sp.Radius < 0
}

// Points returns the packed xyz positions as vectors.
func Points(pos []float32) []math32.Vector3 {
	pts := make([]math32.Vector3, 0, len(pos)/3)
	for i := 0; i+2 < len(pos); i += 3 {
		pts = append(pts, math32.Vec3(pos[i], pos[i+1], pos[i+2]))
	}
	return pts
}

// FromPositions returns the box enclosing the given packed xyz positions.
func FromPositions(pos []float32) math32.Box3 {
	bx := math32.B3Empty()
	for i := 0; i+2 < len(pos); i += 3 {
		bx.ExpandByPoint(math32.Vec3(pos[i], pos[i+1], pos[i+2]))
	}
	return bx
}

// SphereFromPositions returns a sphere enclosing the given packed xyz positions,
// centered on their bounding box, with the radius of the farthest point.
func SphereFromPositions(pos []float32) math32.Sphere {
	if len(pos) < 3 {
		return EmptySphere()
	}
	sp := math32.Sphere{}
	sp.SetFromPoints(Points(pos), nil)
	return sp
}

// SphereFromBox returns the sphere enclosing the box.
func SphereFromBox(bx math32.Box3) math32.Sphere {
	if bx.IsEmpty() {
		return EmptySphere()
	}
	return bx.GetBoundingSphere()
}

// MulMatrix4 returns the axis-aligned box enclosing the box
// transformed by the given matrix.
func MulMatrix4(bx math32.Box3, m *math32.Matrix4) math32.Box3 {
	if bx.IsEmpty() {
		return bx
	}
	return bx.MulMatrix4(m)
}

// SphereMulMatrix4 returns the sphere transformed by the given matrix.
// The radius is scaled by the largest axis scale of the matrix,
// so the result always encloses the transformed volume.
func SphereMulMatrix4(sp math32.Sphere, m *math32.Matrix4) math32.Sphere {
	if SphereIsEmpty(sp) {
		return sp
	}
	sp.MulMatrix4(m)
	return sp
}

// Instanced returns the box enclosing n copies of the box,
// the i-th one translated by offset * i.
func Instanced(bx math32.Box3, offset math32.Vector3, n int) math32.Box3 {
	if n <= 1 || bx.IsEmpty() {
		return bx
	}
	return bx.Union(bx.Translate(offset.MulScalar(float32(n - 1))))
}

// InstancedSphere returns the sphere enclosing n copies of the sphere,
// the i-th one translated by offset * i.
func InstancedSphere(sp math32.Sphere, offset math32.Vector3, n int) math32.Sphere {
	if n <= 1 || SphereIsEmpty(sp) {
		return sp
	}
	half := offset.MulScalar(0.5 * float32(n-1))
	return math32.Sphere{Center: sp.Center.Add(half), Radius: sp.Radius + half.Length()}
}
