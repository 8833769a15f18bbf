// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/forward/program"
	"cogentcore.org/forward/xyz"
)

func TestLoadSettingsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forward.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
tone_mapping = "aces"
exposure = 1.5
output_space = "linear"
wireframe = true
clear_color = [0.1, 0.2, 0.3, 1.0]
`), 0666))
	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, program.ACESFilmicToneMapping, s.ToneMapping)
	assert.Equal(t, float32(1.5), s.Exposure)
	assert.Equal(t, xyz.LinearSpace, s.OutputSpace)
	assert.True(t, s.Wireframe)
	assert.True(t, s.Sort, "defaults are kept")
	clr, ok := s.clearColor()
	assert.True(t, ok)
	assert.InDelta(t, 0.2, clr[1], 1e-6)
}

func TestLoadSettingsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forward.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shadow_type: pcfsoft\nprecision: mediump\nsort: false\n"), 0666))
	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, program.PCFSoftShadows, s.ShadowType)
	assert.Equal(t, program.MediumPrecision, s.Precision)
	assert.False(t, s.Sort)
	assert.Equal(t, xyz.SRGBSpace, s.OutputSpace)
	_, ok := s.clearColor()
	assert.False(t, ok)
}

func TestLoadSettingsErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadSettings(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte(`tone_mapping = "filmic"`), 0666))
	s, err := LoadSettings(bad)
	assert.Error(t, err)
	assert.Equal(t, DefaultSettings(), s)

	other := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(other, []byte(`{}`), 0666))
	_, err = LoadSettings(other)
	assert.ErrorContains(t, err, "unknown settings file type")
	assert.ErrorContains(t, SaveSettings(DefaultSettings(), other), "unknown settings file type")
}

func TestSaveSettings(t *testing.T) {
	dir := t.TempDir()
	s := DefaultSettings()
	s.ToneMapping = program.ReinhardToneMapping
	s.Exposure = 2
	s.CullMargin = 0.5
	s.ClearColor = []float32{0, 0, 0, 1}
	for _, name := range []string{"s.toml", "s.yml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, SaveSettings(s, path))
		got, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, s, got, name)
	}

	b, err := os.ReadFile(filepath.Join(dir, "s.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "cull_margin = 0.5")
	assert.Contains(t, string(b), "reinhard")
}

func TestWatchSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forward.toml")
	require.NoError(t, os.WriteFile(path, []byte(`exposure = 1.0`), 0666))
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := WatchSettings(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`exposure = 3.0`), 0666))
	timeout := time.After(5 * time.Second)
	// a write can be seen as several events, some before the new content
	for done := false; !done; {
		select {
		case s := <-ch:
			done = s.Exposure == 3
		case <-timeout:
			t.Fatal("no settings received")
		}
	}

	cancel()
	for range ch {
		// drain until closed
	}
}
