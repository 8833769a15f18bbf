// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/forward/render"
)

func TestBench(t *testing.T) {
	res, err := bench(10, render.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, 10, res.Frames)
	assert.Positive(t, res.Total.DrawCalls)
	assert.Positive(t, res.Total.Triangles)
	assert.Zero(t, res.Total.Skipped)
	assert.Zero(t, res.Total.CompileErrors)
	assert.Positive(t, res.Compiles)
	assert.Equal(t, res.Compiles, res.Programs, "programs are compiled once")

	var buf bytes.Buffer
	res.print(&buf)
	assert.Contains(t, buf.String(), "10 frames")
	assert.Contains(t, buf.String(), "draw calls")
}

func TestBenchCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("exposure = 2\ntone_mapping = \"aces\"\n"), 0o644))

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"bench", "--frames", "3", "--settings", path})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "3 frames")

	cmd = rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"bench", "--settings", filepath.Join(t.TempDir(), "x.ini")})
	assert.Error(t, cmd.Execute())
}

func TestDemoScene(t *testing.T) {
	d := newDemo()
	lc := d.Scene.LightCounts()
	assert.Equal(t, 1, lc.Dir)
	assert.Equal(t, 1, lc.Point)
	assert.Equal(t, 1, lc.Spot)
	assert.Equal(t, 1, lc.DirShadows)
	before := d.orbit.Pose.Pos
	d.animate(1)
	assert.NotEqual(t, before, d.orbit.Pose.Pos)

	// the instanced fence is bounded around its middle post
	d.Scene.Update()
	fence := d.Scene.Root.ChildByName("fence")
	require.NotNil(t, fence)
	sp, ok := fence.Drawables[0].WorldBoundingSphere()
	require.True(t, ok)
	assert.InDelta(t, 0, sp.Center.X, 1e-4)
	assert.Greater(t, sp.Radius, float32(8))
}
