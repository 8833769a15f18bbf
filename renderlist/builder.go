// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderlist

import (
	"cogentcore.org/core/math32"

	"cogentcore.org/forward/xyz"
)

// Builder builds the render lists of a scene for a camera, in two
// steps: [Builder.Cull] selects the drawables the camera sees, and
// [Builder.List] sorts them into lists. The lists are reused by every
// build; a Builder is owned by one renderer.
type Builder struct {

	// Margin moves every frustum plane outward by this distance in
	// world units before culling, so objects just outside the view
	// are kept.
	Margin float32

	visible []visible
	lists   Lists
	culled  int
}

// visible is a drawable that passed culling, with the world position
// it is depth sorted by.
type visible struct {
	node   *xyz.Node
	index  int
	center math32.Vector3
}

// Lists returns the lists of the last Build or List.
func (b *Builder) Lists() *Lists {
	return &b.lists
}

// Culled returns the number of drawables culled by the last Cull.
func (b *Builder) Culled() int {
	return b.culled
}

// Visible returns the number of drawables that passed the last Cull.
func (b *Builder) Visible() int {
	return len(b.visible)
}

// Build culls the drawables under root and collects the rest into lists,
// as [Builder.Cull] followed by [Builder.List].
// The lists are not sorted; see [Lists.Sort].
func (b *Builder) Build(root *xyz.Node, cam *xyz.Camera) *Lists {
	b.Cull(root, cam)
	return b.List(cam)
}

// Cull collects the drawables under root that the camera sees.
// World matrices and camera matrices must be up to date. Invisible subtrees are skipped; a node outside the camera layers
// contributes no drawables, but its children are still visited.
// Drawables whose world bounding sphere is outside the view frustum
// are culled, unless their node disables culling or the geometry
// has no bounds.
func (b *Builder) Cull(root *xyz.Node, cam *xyz.Camera) {
	clear(b.visible)
	b.visible = b.visible[:0]
	b.culled = 0
	if root == nil {
		return
	}
	fr := cam.Frustum()
	if b.Margin != 0 {
		fr.Expand(b.Margin)
	}
	root.Walk(func(n *xyz.Node) bool {
		if !n.Visible {
			return xyz.Break
		}
		if !n.Layers.Test(cam.Layers) {
			return xyz.Continue
		}
		for i, d := range n.Drawables {
			if d.Geometry == nil || d.Material == nil {
				continue
			}
			center := n.WorldPosition()
			if sp, ok := d.WorldBoundingSphere(); ok {
				if n.FrustumCulled && !fr.IntersectsSphere(sp) {
					b.culled++
					continue
				}
				center = sp.Center
			}
			b.visible = append(b.visible, visible{node: n, index: i, center: center})
		}
		return xyz.Continue
	})
}

// List sorts the drawables of the last Cull into the opaque,
// transmissive and transparent lists, with their view depth.
// The lists are not sorted in draw order; see [Lists.Sort].
func (b *Builder) List(cam *xyz.Camera) *Lists {
	b.lists.Reset()
	for _, v := range b.visible {
		d := v.node.Drawables[v.index]
		e := Entry{
			Node:        v.node,
			Geometry:    d.Geometry,
			Material:    d.Material,
			Group:       d.Group,
			ID:          v.node.ID(),
			Index:       v.index,
			Depth:       cam.ViewDepth(v.center),
			RenderOrder: v.node.RenderOrder,
			stateKey:    d.Material.StateKey(),
		}
		switch {
		case d.Material.RequiresTransmission():
			b.lists.Transmissive.add(e)
		case d.Material.IsTransparent():
			b.lists.Transparent.add(e)
		default:
			b.lists.Opaque.add(e)
		}
	}
	return &b.lists
}
