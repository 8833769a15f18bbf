// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cogentcore.org/core/math32"

	"cogentcore.org/forward/bounds"
)

type worldItem struct {
	node  *Node
	force bool
}

// UpdateWorldMatrices updates the world matrix for node and everything inside it,
// in a depth-first pre-order walk. A node is recomputed if its local pose
// changed since the last update, if it was flagged with [Node.SetNeedsUpdate],
// or if any ancestor was recomputed in this walk.
//
// Every node is visited, including invisible ones and subtrees that
// will be culled, so animated descendants are never left stale.
// If the node has a parent, its world matrix is assumed to be current.
func UpdateWorldMatrices(root *Node) {
	if root == nil {
		return
	}
	stack := make([]worldItem, 1, 64)
	stack[0] = worldItem{node: root}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := it.node
		recompute := n.Pose.UpdateMatrix() || it.force || n.needsUpdate
		if recompute {
			if n.parent == nil {
				n.WorldMatrix = n.Pose.Matrix
			} else {
				n.WorldMatrix.MulMatrices(&n.parent.WorldMatrix, &n.Pose.Matrix)
			}
			n.needsUpdate = false
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, worldItem{node: n.children[i], force: recompute})
		}
	}
}

// UpdateWorldMatrix updates the world matrix of just this node, first bringing
// all of its ancestors up to date. Use this for ad-hoc queries between frames.
func (n *Node) UpdateWorldMatrix() math32.Matrix4 {
	var chain []*Node
	for p := n; p != nil; p = p.parent {
		chain = append(chain, p)
	}
	force := false
	for i := len(chain) - 1; i >= 0; i-- {
		c := chain[i]
		if c.Pose.UpdateMatrix() || force || c.needsUpdate {
			if c.parent == nil {
				c.WorldMatrix = c.Pose.Matrix
			} else {
				c.WorldMatrix.MulMatrices(&c.parent.WorldMatrix, &c.Pose.Matrix)
			}
			c.needsUpdate = false
			force = true
			// siblings and descendants depend on the new matrix
			for _, k := range c.children {
				k.needsUpdate = true
			}
		}
	}
	return n.WorldMatrix
}

// WorldBoundingSphere returns the bounding sphere of the given drawable's
// geometry in world space, using the cached world matrix of its node.
// The sphere encloses every instance of instanced geometry.
// Returns false if the geometry has no bounds.
func (d *Drawable) WorldBoundingSphere() (math32.Sphere, bool) {
	if d.Geometry == nil || d.node == nil {
		return bounds.EmptySphere(), false
	}
	sp, ok := d.Geometry.BoundingSphere()
	if !ok {
		return sp, false
	}
	return bounds.SphereMulMatrix4(sp, &d.node.WorldMatrix), true
}
