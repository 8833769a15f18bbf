// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package program

import (
	"context"

	"cogentcore.org/core/base/errors"
	"golang.org/x/sync/errgroup"
)

// Prepared is a batch of program sources generated ahead of use,
// ready to be compiled by [Cache.Install].
type Prepared struct {
	Keys     []Key
	Vertex   []string
	Fragment []string
}

// Len returns the number of programs in the batch.
func (p *Prepared) Len() int {
	return len(p.Keys)
}

// Prepare generates the sources of the given keys concurrently.
// It can run on any goroutine; the returned batch is handed to
// [Cache.Install] on the render thread. Duplicate keys are dropped.
func Prepare(ctx context.Context, keys []Key) (*Prepared, error) {
	seen := make(map[Key]bool, len(keys))
	p := &Prepared{}
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		p.Keys = append(p.Keys, k)
	}
	p.Vertex = make([]string, len(p.Keys))
	p.Fragment = make([]string, len(p.Keys))
	g, ctx := errgroup.WithContext(ctx)
	for i, k := range p.Keys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.Vertex[i], p.Fragment[i] = Sources(k)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return p, nil
}

// Install compiles the programs of the batch that are not cached yet.
// Installed programs have no references and are not evicted until a
// material acquires and releases them. The failures are joined in
// the returned error; the other programs are still installed.
func (c *Cache) Install(p *Prepared) error {
	var errs []error
	for i, k := range p.Keys {
		if _, ok := c.programs[k]; ok {
			continue
		}
		if _, err := c.build(k, p.Vertex[i], p.Fragment[i]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
