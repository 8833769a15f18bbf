// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cogentcore.org/core/math32"

	"cogentcore.org/forward/bounds"
)

// NewGroup makes a new node with no drawables of its own under the given parent.
// It has a transform that applies to all nodes under it.
func NewGroup(parent *Node, name string) *Node {
	return parent.NewChild(name)
}

// WorldBBox returns the world-space bounding box of all the drawables in the
// subtree, using the cached world matrices. Geometry without bounds is skipped.
func (n *Node) WorldBBox() math32.Box3 {
	bb := math32.B3Empty()
	n.Walk(func(c *Node) bool {
		for _, d := range c.Drawables {
			if d.Geometry == nil {
				continue
			}
			gb, ok := d.Geometry.BoundingBox()
			if !ok {
				continue
			}
			bb.ExpandByBox(bounds.MulMatrix4(gb, &c.WorldMatrix))
		}
		return Continue
	})
	return bb
}
