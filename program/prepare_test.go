// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package program

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/forward/gpu"
	"cogentcore.org/forward/xyz"
)

func TestPrepareInstall(t *testing.T) {
	c, dev := newTestCache()
	basic := xyz.NewMaterial("b", xyz.Basic)
	phong := xyz.NewMaterial("p", xyz.Phong)
	keys := []Key{
		NewKey(basic, nil, Env{}, Options{}),
		NewKey(phong, nil, Env{}, Options{}),
		NewKey(basic, nil, Env{}, Options{}),
	}
	p, err := Prepare(context.Background(), keys)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())
	vs, fs := Sources(keys[1])
	assert.Equal(t, vs, p.Vertex[1])
	assert.Equal(t, fs, p.Fragment[1])

	require.NoError(t, c.Install(p))
	assert.Equal(t, 2, c.Compiles())
	assert.Equal(t, 0, c.Evict(), "installed programs are kept until used")

	pr, err := c.Acquire(phong, nil, Env{})
	require.NoError(t, err)
	assert.Same(t, c.Get(keys[1]), pr)
	assert.Equal(t, 2, c.Compiles())

	// installing again is a no-op
	require.NoError(t, c.Install(p))
	assert.Equal(t, 2, c.Compiles())
	assert.Equal(t, 2, dev.Programs())
}

func TestPrepareCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Prepare(ctx, []Key{NewKey(xyz.NewMaterial("b", xyz.Basic), nil, Env{}, Options{})})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInstallFailure(t *testing.T) {
	c, dev := newTestCache()
	dev.FailShader = func(typ gpu.ShaderTypes, src string) string {
		if typ == gpu.VertexShader {
			return "bad"
		}
		return ""
	}
	p, err := Prepare(context.Background(), []Key{
		NewKey(xyz.NewMaterial("b", xyz.Basic), nil, Env{}, Options{}),
		NewKey(xyz.NewMaterial("n", xyz.Normal), nil, Env{}, Options{}),
	})
	require.NoError(t, err)
	err = c.Install(p)
	var ce *CompileError
	assert.ErrorAs(t, err, &ce)
	assert.Equal(t, gpu.VertexStage, ce.Stage)
	assert.Equal(t, 2, c.Stats.Failures)
	assert.Equal(t, 0, c.Len())
}
