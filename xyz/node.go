// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"slices"
	"strings"
	"sync/atomic"

	"cogentcore.org/core/math32"
)

// Continue and Break are the return values for [Node.Walk] functions:
// Continue descends into the children of the node, Break skips them.
const (
	Continue = true
	Break    = false
)

// lastID is the last object id handed out to a Node, Geometry, Material or Texture.
// Ids increase in creation order, so they are reproducible for a scene
// built by the same code, unlike pointer addresses.
var lastID atomic.Uint64

func nextID() uint64 {
	return lastID.Add(1)
}

// Node is an element of the scenegraph. It has a local [Pose] relative to
// its parent, a cached world matrix, and any number of [Drawable]s.
// Children are owned by their parent: destroying a node destroys its subtree.
type Node struct {

	// Name is the name of the node, used in paths and for lookup.
	Name string

	// Pose is the local transform relative to the parent.
	Pose Pose

	// WorldMatrix is the cached parent.WorldMatrix * Pose.Matrix,
	// valid after [UpdateWorldMatrices] when the node is not dirty.
	WorldMatrix math32.Matrix4

	// Visible controls whether this node and its subtree are drawn.
	Visible bool

	// Layers is the render layer mask; a camera draws the node only
	// if its own layers intersect these.
	Layers Layers

	// RenderOrder is the primary sort key for the drawables of this node.
	RenderOrder int

	// FrustumCulled enables frustum culling; if false the node is
	// always considered in view.
	FrustumCulled bool

	// Drawables are the geometry / material pairs attached to this node.
	Drawables []*Drawable

	id          uint64
	parent      *Node
	children    []*Node
	needsUpdate bool
}

// NewNode returns a new visible node with an identity pose.
func NewNode(name string) *Node {
	n := &Node{Name: name}
	n.Defaults()
	n.id = nextID()
	return n
}

// Defaults sets default initial settings for node params.
func (n *Node) Defaults() {
	n.Pose.Defaults()
	n.WorldMatrix.SetIdentity()
	n.Visible = true
	n.Layers = DefaultLayers
	n.FrustumCulled = true
	n.needsUpdate = true
}

// ID returns the unique object id of the node.
func (n *Node) ID() uint64 {
	return n.id
}

// Parent returns the parent of the node, nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the children of the node. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Child returns the child at the given index.
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// ChildByName returns the first child with the given name, or nil.
func (n *Node) ChildByName(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// IsAncestorOf returns true if the node is the given node
// or one of its ancestors.
func (n *Node) IsAncestorOf(o *Node) bool {
	for p := o; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// AddChild adds the given node as the last child, removing it from
// any previous parent. Attaching a node under itself or one of its
// descendants returns a [*CycleError] and leaves the graph unchanged.
func (n *Node) AddChild(child *Node) error {
	if child.IsAncestorOf(n) {
		return &CycleError{Parent: n.Path(), Child: child.Path()}
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	child.needsUpdate = true
	n.children = append(n.children, child)
	return nil
}

// NewChild makes a new node with the given name as a child of this node.
func (n *Node) NewChild(name string) *Node {
	c := NewNode(name)
	c.parent = n
	n.children = append(n.children, c)
	return c
}

// RemoveChild removes the given child, returning false if it is not a child.
// The child keeps its own subtree and can be added elsewhere.
func (n *Node) RemoveChild(child *Node) bool {
	i := slices.Index(n.children, child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	child.needsUpdate = true
	return true
}

// Destroy detaches the node from its parent and releases its subtree,
// including all drawables.
func (n *Node) Destroy() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
	n.destroy()
}

func (n *Node) destroy() {
	for _, d := range n.Drawables {
		d.node = nil
	}
	n.Drawables = nil
	kids := n.children
	n.children = nil
	for _, k := range kids {
		k.parent = nil
		k.destroy()
	}
}

// Walk calls fun on the node and its descendants in depth-first pre-order.
// If fun returns [Break] the children of that node are skipped.
func (n *Node) Walk(fun func(n *Node) bool) {
	stack := []*Node{n}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fun(c) {
			continue
		}
		for i := len(c.children) - 1; i >= 0; i-- {
			stack = append(stack, c.children[i])
		}
	}
}

// Path returns the slash-separated names from the root to this node.
func (n *Node) Path() string {
	var names []string
	for p := n; p != nil; p = p.parent {
		names = append(names, p.Name)
	}
	slices.Reverse(names)
	return "/" + strings.Join(names, "/")
}

// SetNeedsUpdate forces the world matrix of the node and its subtree
// to be recomputed on the next [UpdateWorldMatrices].
func (n *Node) SetNeedsUpdate() {
	n.needsUpdate = true
}

// NeedsUpdate returns whether the world matrix is known to be stale.
// Changes made directly to the Pose fields are only detected during
// [UpdateWorldMatrices].
func (n *Node) NeedsUpdate() bool {
	return n.needsUpdate || n.Pose.changed()
}

// SetPos sets the [Pose.Pos] position of the node.
func (n *Node) SetPos(x, y, z float32) *Node {
	n.Pose.Pos.Set(x, y, z)
	return n
}

// SetScale sets the [Pose.Scale] scale of the node.
func (n *Node) SetScale(x, y, z float32) *Node {
	n.Pose.Scale.Set(x, y, z)
	return n
}

// SetAxisRotation sets the [Pose.Quat] rotation of the node,
// from local axis and angle in degrees.
func (n *Node) SetAxisRotation(x, y, z, angle float32) *Node {
	n.Pose.SetAxisRotation(x, y, z, angle)
	return n
}

// SetEulerRotation sets the [Pose.Quat] rotation of the node,
// from euler angles in degrees.
func (n *Node) SetEulerRotation(x, y, z float32) *Node {
	n.Pose.SetEulerRotation(x, y, z)
	return n
}

// SetRenderOrder sets the [Node.RenderOrder].
func (n *Node) SetRenderOrder(order int) *Node {
	n.RenderOrder = order
	return n
}

// WorldPosition returns the world-space origin of the node
// from the cached world matrix.
func (n *Node) WorldPosition() math32.Vector3 {
	return n.WorldMatrix.Pos()
}

// AddDrawable attaches the given geometry drawn with the given material,
// over the whole geometry.
func (n *Node) AddDrawable(geom *Geometry, mat *Material) *Drawable {
	return n.AddDrawableGroup(geom, mat, -1)
}

// AddDrawableGroup attaches the given geometry drawn with the given material,
// restricted to the geometry draw group at the given index (-1 = whole geometry).
func (n *Node) AddDrawableGroup(geom *Geometry, mat *Material, group int) *Drawable {
	d := &Drawable{Geometry: geom, Material: mat, Group: group, node: n}
	n.Drawables = append(n.Drawables, d)
	return d
}

// Clone returns a deep copy of the node and its subtree, with new ids.
// Drawables are copied but share their Geometry and Material.
// The clone has no parent.
func (n *Node) Clone() *Node {
	nn := &Node{}
	*nn = *n
	nn.id = nextID()
	nn.parent = nil
	nn.children = nil
	nn.needsUpdate = true
	nn.Drawables = make([]*Drawable, len(n.Drawables))
	for i, d := range n.Drawables {
		nd := *d
		nd.node = nn
		nn.Drawables[i] = &nd
	}
	for _, c := range n.children {
		cc := c.Clone()
		cc.parent = nn
		nn.children = append(nn.children, cc)
	}
	return nn
}
