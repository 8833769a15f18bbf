// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

// Layers is a bitmask of up to 32 render layers.
type Layers uint32

// DefaultLayers has only layer 0 enabled.
const DefaultLayers Layers = 1

// AllLayers has every layer enabled.
const AllLayers Layers = ^Layers(0)

// Test returns true if the two masks share at least one layer.
func (l Layers) Test(o Layers) bool {
	return l&o != 0
}

// Set makes the given layer the only enabled one.
func (l *Layers) Set(layer int) {
	*l = 1 << uint(layer)
}

// Enable enables the given layer.
func (l *Layers) Enable(layer int) {
	*l |= 1 << uint(layer)
}

// Disable disables the given layer.
func (l *Layers) Disable(layer int) {
	*l &^= 1 << uint(layer)
}

// IsEnabled returns whether the given layer is enabled.
func (l Layers) IsEnabled(layer int) bool {
	return l&(1<<uint(layer)) != 0
}
