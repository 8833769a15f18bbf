// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package program

import (
	"fmt"
	"strings"

	"cogentcore.org/forward/xyz"
)

// Key identifies a program variant. Two draws with equal keys use the
// same program; everything that differs between them is uploaded as
// uniforms. Key is comparable and used as a map key.
type Key struct {
	Kind     xyz.Kind
	Features xyz.Features

	// Lights are only set for lit kinds; unlit programs
	// are shared across all lighting setups.
	Lights xyz.LightCounts

	Fog            FogModes
	ToneMapping    ToneMappings
	OutputSpace    xyz.ColorSpaces
	ShadowType     ShadowTypes
	Precision      Precisions
	ClippingPlanes int
	MorphTargets   int
	Skinned        bool
	Instanced      bool
}

// NewKey returns the program key for drawing the geometry with the material
// in the given environment and options. Everything the kind of the
// material does not use is left out, so that it does not split programs.
func NewKey(mat *xyz.Material, geom *xyz.Geometry, env Env, opts Options) Key {
	info := mat.Kind().Info()
	k := Key{
		Kind:           mat.Kind(),
		Features:       mat.Features(),
		ToneMapping:    opts.ToneMapping,
		OutputSpace:    opts.OutputSpace,
		Precision:      opts.Precision,
		ClippingPlanes: env.ClippingPlanes,
	}
	if opts.Wireframe {
		k.Features |= xyz.FeatureWireframe & info.Features
	}
	if env.Fog == NoFog {
		k.Features &^= xyz.FeatureFog
	}
	if k.Features.Has(xyz.FeatureFog) {
		k.Fog = env.Fog
	}
	if info.Lit {
		k.Lights = env.Lights
		lc := env.Lights
		if lc.DirShadows+lc.PointShadows+lc.SpotShadows > 0 {
			k.ShadowType = opts.ShadowType
		}
	} else {
		// unlit output is not tone mapped
		k.ToneMapping = NoToneMapping
	}
	if geom != nil {
		k.MorphTargets = geom.MorphTargets
		k.Skinned = geom.Skinned
		k.Instanced = geom.Instances > 1
	}
	return k
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// String returns the textual form of the key, used in messages.
func (k Key) String() string {
	var b strings.Builder
	b.WriteString(k.Kind.String())
	b.WriteString("|")
	b.WriteString(k.Features.String())
	if k.Kind.Info().Lit {
		fmt.Fprintf(&b, "|lights %s", k.Lights)
	}
	fmt.Fprintf(&b, "|fog %d|tone %s|out %s|shadow %s|%s|clip %d|morph %d|skin %d|inst %d",
		k.Fog, k.ToneMapping, k.OutputSpace, k.ShadowType, k.Precision,
		k.ClippingPlanes, k.MorphTargets, boolInt(k.Skinned), boolInt(k.Instanced))
	return b.String()
}
