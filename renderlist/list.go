// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package renderlist collects the drawables of a scene that are
// visible to a camera into sorted opaque, transmissive and
// transparent lists, in the order they are drawn.
package renderlist

import (
	"cmp"
	"slices"

	"cogentcore.org/forward/xyz"
)

// Entry is one draw: a drawable of a node with the values it is sorted by.
type Entry struct {
	Node     *xyz.Node
	Geometry *xyz.Geometry
	Material *xyz.Material

	// Group is the geometry draw group, or -1 for the whole geometry.
	Group int

	// ID is the id of the node, the stable object identity.
	ID uint64

	// Index is the index of the drawable in [xyz.Node.Drawables].
	Index int

	// Depth is the view-space distance of the world bounding sphere
	// center in front of the camera; only used for sorting.
	Depth float32

	RenderOrder int

	// stateKey is the cached state key of the material.
	stateKey uint64
}

// List is a list of entries that keeps its storage across frames,
// so that building the same scene again does not allocate.
type List struct {
	Entries []Entry
}

// Reset empties the list, keeping its capacity.
func (l *List) Reset() {
	clear(l.Entries)
	l.Entries = l.Entries[:0]
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.Entries)
}

func (l *List) add(e Entry) {
	l.Entries = append(l.Entries, e)
}

// SortOpaque sorts by render order, then material state to minimize
// state changes, then front to back to maximize early depth rejection.
func (l *List) SortOpaque() {
	slices.SortFunc(l.Entries, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.RenderOrder, b.RenderOrder),
			cmp.Compare(a.stateKey, b.stateKey),
			cmp.Compare(a.Depth, b.Depth),
			cmp.Compare(a.Material.ID(), b.Material.ID()),
			cmp.Compare(a.ID, b.ID),
			cmp.Compare(a.Group, b.Group),
			cmp.Compare(a.Index, b.Index),
		)
	})
}

// SortBackToFront sorts by render order, then back to front,
// as needed for blending.
func (l *List) SortBackToFront() {
	slices.SortFunc(l.Entries, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.RenderOrder, b.RenderOrder),
			cmp.Compare(b.Depth, a.Depth),
			cmp.Compare(a.ID, b.ID),
			cmp.Compare(a.Group, b.Group),
			cmp.Compare(a.Index, b.Index),
		)
	})
}

// Lists are the render lists of one frame, drawn in field order.
type Lists struct {
	Opaque       List
	Transmissive List
	Transparent  List
}

// Reset empties all lists.
func (ls *Lists) Reset() {
	ls.Opaque.Reset()
	ls.Transmissive.Reset()
	ls.Transparent.Reset()
}

// Len returns the total number of entries.
func (ls *Lists) Len() int {
	return ls.Opaque.Len() + ls.Transmissive.Len() + ls.Transparent.Len()
}

// Sort sorts every list in its draw order.
func (ls *Lists) Sort() {
	ls.Opaque.SortOpaque()
	ls.Transmissive.SortBackToFront()
	ls.Transparent.SortBackToFront()
}

// Passes returns the lists in draw order.
func (ls *Lists) Passes() [3]*List {
	return [3]*List{&ls.Opaque, &ls.Transmissive, &ls.Transparent}
}
