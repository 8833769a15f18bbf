// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws scenes with the forward pipeline: each frame
// updates the scene, builds and sorts the render lists, and issues
// one draw per list entry through the state tracker.
package render

import (
	"cogentcore.org/forward/gpu"
	"cogentcore.org/forward/program"
)

// Context is the device state shared by everything that renders into
// one graphics context: the device, its state tracker, the program
// cache and the uploaded resources. It must only be used on the
// thread that owns the context.
type Context struct {
	Device    gpu.Device
	State     *gpu.State
	Programs  *program.Cache
	Resources *Resources
}

// NewContext returns a new context for the device.
func NewContext(dev gpu.Device) *Context {
	st := gpu.NewState(dev)
	return &Context{
		Device:    dev,
		State:     st,
		Programs:  program.NewCache(st),
		Resources: NewResources(st),
	}
}

// Invalidate forgets every device object after a context loss:
// programs, the state shadow and the uploaded resources.
// Nothing is deleted on the device.
func (cx *Context) Invalidate() {
	cx.Programs.Invalidate()
	cx.State.Reset()
	cx.Resources.Invalidate()
}

// Dispose deletes every device object of the context.
func (cx *Context) Dispose() {
	cx.Programs.Dispose()
	cx.Resources.Dispose()
}
