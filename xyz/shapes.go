// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

// NewBox returns a box geometry centered at the origin with the given size,
// with 4 vertexes per face so that each face has its own normal.
func NewBox(name string, width, height, depth float32) *Geometry {
	hx, hy, hz := width/2, height/2, depth/2
	type face struct {
		norm    [3]float32
		corners [4][3]float32
	}
	faces := []face{
		{[3]float32{1, 0, 0}, [4][3]float32{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
		{[3]float32{0, 0, 1}, [4][3]float32{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
	}
	g := NewGeometry(name)
	pos := make([]float32, 0, 6*4*3)
	norm := make([]float32, 0, 6*4*3)
	uv := make([]float32, 0, 6*4*2)
	idx := make([]uint32, 0, 6*6)
	for fi, f := range faces {
		for _, c := range f.corners {
			pos = append(pos, c[0], c[1], c[2])
			norm = append(norm, f.norm[0], f.norm[1], f.norm[2])
		}
		uv = append(uv, 0, 0, 1, 0, 1, 1, 0, 1)
		b := uint32(fi * 4)
		idx = append(idx, b, b+1, b+2, b, b+2, b+3)
	}
	g.SetPositions(pos).SetNormals(norm).SetUVs(uv).SetIndices(idx)
	return g
}

// NewPlane returns a plane geometry in the XY plane, centered at the origin,
// with the normal pointing toward +Z.
func NewPlane(name string, width, height float32) *Geometry {
	hx, hy := width/2, height/2
	g := NewGeometry(name)
	g.SetPositions([]float32{-hx, -hy, 0, hx, -hy, 0, hx, hy, 0, -hx, hy, 0})
	g.SetNormals([]float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1})
	g.SetUVs([]float32{0, 0, 1, 0, 1, 1, 0, 1})
	g.SetIndices([]uint32{0, 1, 2, 0, 2, 3})
	return g
}
