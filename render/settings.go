// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"path/filepath"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/iox/tomlx"
	"cogentcore.org/core/base/iox/yamlx"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mitchellh/go-homedir"

	"cogentcore.org/forward/program"
	"cogentcore.org/forward/xyz"
)

// Settings are the renderer-wide settings, typically toggled from a
// settings or debug panel between frames. They are stored in TOML or
// YAML files.
type Settings struct {

	// ToneMapping is the tone mapping of lit materials.
	ToneMapping program.ToneMappings `toml:"tone_mapping" yaml:"tone_mapping"`

	// Exposure scales the color before tone mapping.
	Exposure float32 `toml:"exposure" yaml:"exposure"`

	// OutputSpace is the color space of the framebuffer.
	OutputSpace xyz.ColorSpaces `toml:"output_space" yaml:"output_space"`

	// ShadowType is the shadow map filtering.
	ShadowType program.ShadowTypes `toml:"shadow_type" yaml:"shadow_type"`

	// Precision is the float precision of the shaders.
	Precision program.Precisions `toml:"precision" yaml:"precision"`

	// Wireframe draws every material as lines.
	Wireframe bool `toml:"wireframe" yaml:"wireframe"`

	// ClearColor, if set to 4 rgba values, overrides the
	// background color of the scene.
	ClearColor []float32 `toml:"clear_color,omitempty" yaml:"clear_color,omitempty"`

	// Sort sorts the render lists; turning it off draws in
	// traversal order, for debugging.
	Sort bool `toml:"sort" yaml:"sort"`

	// CullMargin moves the frustum planes outward by this distance
	// in world units when culling.
	CullMargin float32 `toml:"cull_margin" yaml:"cull_margin"`
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		Exposure:    1,
		OutputSpace: xyz.SRGBSpace,
		Sort:        true,
	}
}

// Options returns the program options of the settings.
func (s *Settings) Options() program.Options {
	return program.Options{
		ToneMapping: s.ToneMapping,
		OutputSpace: s.OutputSpace,
		ShadowType:  s.ShadowType,
		Precision:   s.Precision,
		Wireframe:   s.Wireframe,
	}
}

// clearColor returns the clear color override, if any.
func (s *Settings) clearColor() (mgl32.Vec4, bool) {
	if len(s.ClearColor) != 4 {
		return mgl32.Vec4{}, false
	}
	return mgl32.Vec4{s.ClearColor[0], s.ClearColor[1], s.ClearColor[2], s.ClearColor[3]}, true
}

// LoadSettings reads settings from the given TOML (.toml) or YAML
// (.yaml, .yml) file, starting from the defaults. A leading ~ in
// the path is expanded to the home directory.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	path, err := homedir.Expand(path)
	if err != nil {
		return s, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = tomlx.Open(&s, path)
	case ".yaml", ".yml":
		err = yamlx.Open(&s, path)
	default:
		err = errors.New("render: unknown settings file type: " + path)
	}
	if err != nil {
		return DefaultSettings(), err
	}
	return s, nil
}

// SaveSettings writes the settings to the given TOML or YAML file.
func SaveSettings(s Settings, path string) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return tomlx.Save(&s, path)
	case ".yaml", ".yml":
		return yamlx.Save(&s, path)
	}
	return errors.New("render: unknown settings file type: " + path)
}
