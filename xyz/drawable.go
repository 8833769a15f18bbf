// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

// Drawable is a geometry drawn with a material, attached to a [Node].
// It is owned by its node and released with it.
type Drawable struct {

	// Geometry is the shape to draw.
	Geometry *Geometry

	// Material determines the shading of the geometry.
	Material *Material

	// Group is the index of the [Geometry.Groups] draw range to draw,
	// or -1 to draw the whole geometry.
	Group int

	node *Node
}

// Node returns the node this drawable is attached to,
// nil once the node was destroyed.
func (d *Drawable) Node() *Node {
	return d.node
}

// DrawRange returns the first index (or vertex, for non-indexed geometry)
// and the number of indexes to draw.
func (d *Drawable) DrawRange() (start, count int) {
	return d.Geometry.DrawRange(d.Group)
}
