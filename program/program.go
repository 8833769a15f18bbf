// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package program builds and caches the shader programs of
// material variants. A program is identified by its [Key], compiled
// once, and shared by every material that resolves to that key.
package program

import (
	"strings"

	"cogentcore.org/forward/gpu"
)

// Program is a linked shader program for one [Key].
type Program struct {

	// Key of the variant.
	Key Key

	// Handle of the linked program on the device.
	Handle gpu.Handle

	uniforms map[string]int32

	// refs is the number of material bindings using the program.
	refs int

	// acquired is set once the program was bound to a material;
	// installed programs that were never acquired are not evicted.
	acquired bool

	// frame is the last frame that uploaded the frame uniforms.
	frame uint64
}

func newProgram(key Key, h gpu.Handle, unis []gpu.UniformInfo) *Program {
	pr := &Program{Key: key, Handle: h, uniforms: make(map[string]int32, len(unis))}
	for _, u := range unis {
		pr.uniforms[strings.TrimSuffix(u.Name, "[0]")] = u.Location
	}
	return pr
}

// Location returns the location of the named uniform,
// or -1 if the program does not use it.
func (pr *Program) Location(name string) int32 {
	if loc, ok := pr.uniforms[name]; ok {
		return loc
	}
	return -1
}

// Has returns true if the program uses the named uniform.
func (pr *Program) Has(name string) bool {
	_, ok := pr.uniforms[name]
	return ok
}

// Refs returns the number of material bindings using the program.
func (pr *Program) Refs() int {
	return pr.refs
}

// BeginFrame returns true the first time it is called for a frame,
// when the frame uniforms of the program must be uploaded.
func (pr *Program) BeginFrame(frame uint64) bool {
	if pr.frame == frame {
		return false
	}
	pr.frame = frame
	return true
}

// compile builds the program for the key from the given sources.
// The shaders are deleted once linked.
func compile(dev gpu.Device, key Key, vs, fs string) (*Program, error) {
	vsh, err := dev.CreateShader(gpu.VertexShader, vs)
	if err != nil {
		return nil, compileError(key, err)
	}
	defer dev.DeleteShader(vsh)
	fsh, err := dev.CreateShader(gpu.FragmentShader, fs)
	if err != nil {
		return nil, compileError(key, err)
	}
	defer dev.DeleteShader(fsh)
	h, err := dev.CreateProgram(vsh, fsh)
	if err != nil {
		return nil, compileError(key, err)
	}
	return newProgram(key, h, dev.ActiveUniforms(h)), nil
}
