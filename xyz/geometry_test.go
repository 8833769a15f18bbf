// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryBoundsLazy(t *testing.T) {
	g := NewGeometry("tri")
	assert.False(t, g.HasBounds())
	_, ok := g.BoundingSphere()
	assert.False(t, ok)

	g.InvalidateBounds()
	g.SetPositions([]float32{0, 0, 0, 2, 0, 0, 0, 2, 0})
	sp, ok := g.BoundingSphere()
	require.True(t, ok)
	assert.Equal(t, math32.Vec3(1, 1, 0), sp.Center)

	// changing the data does not invalidate the cached bounds
	v := g.Version()
	g.SetPositions([]float32{0, 0, 0, 20, 0, 0, 0, 20, 0})
	assert.Greater(t, g.Version(), v)
	sp, _ = g.BoundingSphere()
	assert.Equal(t, math32.Vec3(1, 1, 0), sp.Center)
	bb, _ := g.BoundingBox()
	assert.Equal(t, math32.Vec3(20, 20, 0), bb.Max)

	g.InvalidateBounds()
	sp, _ = g.BoundingSphere()
	assert.Equal(t, math32.Vec3(10, 10, 0), sp.Center)
}

func TestGeometryDrawRange(t *testing.T) {
	g := NewBox("box", 1, 1, 1)
	assert.Equal(t, 24, g.NumVertex())
	assert.True(t, g.IsIndexed())
	start, count := g.DrawRange(-1)
	assert.Equal(t, 0, start)
	assert.Equal(t, 36, count)

	g.AddGroup(0, 6).AddGroup(30, 12)
	start, count = g.DrawRange(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 6, count)
	start, count = g.DrawRange(1)
	assert.Equal(t, 30, start)
	assert.Equal(t, 6, count, "clamped to the index count")
	start, count = g.DrawRange(5)
	assert.Equal(t, 0, start)
	assert.Equal(t, 36, count)

	d := &Drawable{Geometry: g, Group: 0}
	_, count = d.DrawRange()
	assert.Equal(t, 6, count)

	p := NewGeometry("points")
	p.SetPositions([]float32{0, 0, 0, 1, 1, 1, 2, 2, 2})
	_, count = p.DrawRange(-1)
	assert.Equal(t, 3, count)
}

func TestPlane(t *testing.T) {
	g := NewPlane("plane", 2, 4)
	bb, ok := g.BoundingBox()
	require.True(t, ok)
	assert.Equal(t, math32.Vec3(-1, -2, 0), bb.Min)
	assert.Equal(t, math32.Vec3(1, 2, 0), bb.Max)
	assert.False(t, g.HasColors())
}

func TestGeometryInstancedBounds(t *testing.T) {
	g := NewBox("box", 2, 2, 2)
	g.Instances = 11
	g.InstanceOffset = math32.Vec3(4, 0, 0)
	bb, ok := g.BoundingBox()
	require.True(t, ok)
	assert.Equal(t, math32.Vec3(-1, -1, -1), bb.Min)
	assert.Equal(t, math32.Vec3(41, 1, 1), bb.Max)

	sp, ok := g.BoundingSphere()
	require.True(t, ok)
	assert.InDelta(t, 20, sp.Center.X, 1e-5)
	for _, p := range []math32.Vector3{bb.Min, bb.Max, math32.Vec3(41, -1, 1), math32.Vec3(-1, 1, -1)} {
		assert.True(t, sp.Radius+1e-4 >= p.DistanceTo(sp.Center), "corner %v", p)
	}

	// the cached volumes are those of a single instance
	g.Instances = 1
	sp, _ = g.BoundingSphere()
	assert.Equal(t, math32.Vector3{}, sp.Center)
	assert.InDelta(t, math32.Sqrt(3), sp.Radius, 1e-5)
}
