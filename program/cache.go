// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package program

import (
	"slices"

	"cogentcore.org/forward/gpu"
	"cogentcore.org/forward/xyz"
)

// CacheStats are counters of the work done by a [Cache].
type CacheStats struct {

	// Compiles is the number of programs built, including failures.
	Compiles int

	// Failures is the number of failed builds.
	Failures int

	// Hits is the number of acquisitions served by a material binding.
	Hits int

	// Evictions is the number of programs deleted by Evict.
	Evictions int
}

// variant is the part of a geometry that selects the program.
type variant struct {
	morphTargets int
	skinned      bool
	instanced    bool
}

func variantOf(geom *xyz.Geometry) variant {
	if geom == nil {
		return variant{}
	}
	return variant{geom.MorphTargets, geom.Skinned, geom.Instances > 1}
}

type bindingKey struct {
	material uint64
	variant  variant
}

// binding is the program resolved for a material at a given
// material version, settings generation and environment.
type binding struct {
	key     Key
	prog    *Program
	err     error
	version uint64
	gen     uint64
	env     Env
}

// Cache is the program cache. Programs are compiled on demand for the
// key of each material, shared by every material with an equal key, and
// refcounted by material bindings. It must only be used on the render thread.
type Cache struct {
	Stats CacheStats

	st       *gpu.State
	settings Options
	gen      uint64
	programs map[Key]*Program
	failed   map[Key]error
	bindings map[bindingKey]*binding
}

// NewCache returns a new empty cache that builds programs on the
// device of the given state.
func NewCache(st *gpu.State) *Cache {
	c := &Cache{st: st}
	c.reset()
	return c
}

func (c *Cache) reset() {
	c.programs = make(map[Key]*Program)
	c.failed = make(map[Key]error)
	c.bindings = make(map[bindingKey]*binding)
}

// Settings returns the current settings.
func (c *Cache) Settings() Options {
	return c.settings
}

// SetSettings sets the renderer-wide settings. A change forces
// every material to derive its key again on its next acquisition.
func (c *Cache) SetSettings(opts Options) bool {
	if opts == c.settings {
		return false
	}
	c.settings = opts
	c.gen++
	clear(c.failed)
	return true
}

// Acquire returns the program for drawing the geometry with the material
// in the given environment, compiling it if needed. Unless the material
// changed since its last acquisition, this is a single map lookup.
// A failed build returns a [*CompileError], and the same failure is
// returned until the material version changes or the cache is invalidated.
func (c *Cache) Acquire(mat *xyz.Material, geom *xyz.Geometry, env Env) (*Program, error) {
	bk := bindingKey{material: mat.ID(), variant: variantOf(geom)}
	b := c.bindings[bk]
	if b != nil && b.version == mat.Version() && b.gen == c.gen && b.env == env {
		c.Stats.Hits++
		if b.err != nil {
			return nil, b.err
		}
		return b.prog, nil
	}
	key := NewKey(mat, geom, env, c.settings)
	if b != nil && b.prog != nil && b.key == key {
		b.version, b.gen, b.env = mat.Version(), c.gen, env
		return b.prog, nil
	}
	retry := b != nil && b.version != mat.Version()
	if b != nil && b.prog != nil {
		c.Release(b.prog)
	}
	pr, err := c.program(key, retry)
	if b == nil {
		b = &binding{}
		c.bindings[bk] = b
	}
	*b = binding{key: key, prog: pr, err: err, version: mat.Version(), gen: c.gen, env: env}
	if err != nil {
		return nil, err
	}
	return pr, nil
}

// program returns the program of the key with one more reference.
func (c *Cache) program(key Key, retry bool) (*Program, error) {
	if pr, ok := c.programs[key]; ok {
		pr.refs++
		pr.acquired = true
		return pr, nil
	}
	if err, ok := c.failed[key]; ok && !retry {
		return nil, err
	}
	vs, fs := Sources(key)
	pr, err := c.build(key, vs, fs)
	if err != nil {
		return nil, err
	}
	pr.refs++
	pr.acquired = true
	return pr, nil
}

// build compiles and records the program of the key.
func (c *Cache) build(key Key, vs, fs string) (*Program, error) {
	c.Stats.Compiles++
	pr, err := compile(c.st.Device(), key, vs, fs)
	if err != nil {
		c.Stats.Failures++
		c.failed[key] = err
		return nil, err
	}
	delete(c.failed, key)
	c.programs[key] = pr
	return pr, nil
}

// Release drops one reference to the program. Programs without
// references stay cached until the next [Cache.Evict].
func (c *Cache) Release(pr *Program) {
	if pr != nil && pr.refs > 0 {
		pr.refs--
	}
}

// ReleaseMaterial drops the bindings of the material, releasing
// their programs. It is called when a material is disposed.
func (c *Cache) ReleaseMaterial(mat *xyz.Material) {
	for bk, b := range c.bindings {
		if bk.material != mat.ID() {
			continue
		}
		c.Release(b.prog)
		delete(c.bindings, bk)
	}
}

// Evict deletes the programs that have no references left and
// returns how many were deleted. Installed programs that were
// never acquired are kept.
func (c *Cache) Evict() int {
	n := 0
	for key, pr := range c.programs {
		if pr.refs > 0 || !pr.acquired {
			continue
		}
		c.st.DeleteProgram(pr.Handle)
		delete(c.programs, key)
		n++
	}
	c.Stats.Evictions += n
	return n
}

// Invalidate forgets every program, binding and failure without
// touching the device, whose objects are gone after a context loss.
func (c *Cache) Invalidate() {
	c.reset()
	c.gen++
}

// Dispose deletes every program from the device and empties the cache.
func (c *Cache) Dispose() {
	for _, pr := range c.Programs() {
		c.st.DeleteProgram(pr.Handle)
	}
	c.reset()
	c.gen++
}

// Compiles returns the number of programs built so far.
func (c *Cache) Compiles() int {
	return c.Stats.Compiles
}

// Len returns the number of cached programs.
func (c *Cache) Len() int {
	return len(c.programs)
}

// Get returns the cached program of the key, if any.
func (c *Cache) Get(key Key) *Program {
	return c.programs[key]
}

// Programs returns the cached programs in handle order.
func (c *Cache) Programs() []*Program {
	prs := make([]*Program, 0, len(c.programs))
	for _, pr := range c.programs {
		prs = append(prs, pr)
	}
	slices.SortFunc(prs, func(a, b *Program) int {
		return int(a.Handle) - int(b.Handle)
	})
	return prs
}
