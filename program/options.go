// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package program

import (
	"fmt"
	"slices"
	"strings"

	"cogentcore.org/forward/xyz"
)

// setEnum sets the enum to the index of the name in names.
func setEnum[T ~int32](e *T, names []string, text []byte, typ string) error {
	i := slices.Index(names, strings.ToLower(string(text)))
	if i < 0 {
		return fmt.Errorf("program: %q is not a valid %s", text, typ)
	}
	*e = T(i)
	return nil
}

// ToneMappings are the tone mapping operators applied to the
// output color of lit materials.
type ToneMappings int32

const (
	NoToneMapping ToneMappings = iota
	LinearToneMapping
	ReinhardToneMapping
	ACESFilmicToneMapping
)

var toneMappingNames = [...]string{"none", "linear", "reinhard", "aces"}

func (tm ToneMappings) String() string {
	if tm < 0 || int(tm) >= len(toneMappingNames) {
		return "invalid"
	}
	return toneMappingNames[tm]
}

func (tm ToneMappings) MarshalText() ([]byte, error) {
	return []byte(tm.String()), nil
}

func (tm *ToneMappings) UnmarshalText(text []byte) error {
	return setEnum(tm, toneMappingNames[:], text, "ToneMappings")
}

// ShadowTypes are the shadow map filtering types.
type ShadowTypes int32

const (
	NoShadows ShadowTypes = iota
	BasicShadows
	PCFShadows
	PCFSoftShadows
)

var shadowNames = [...]string{"none", "basic", "pcf", "pcfsoft"}

func (st ShadowTypes) String() string {
	if st < 0 || int(st) >= len(shadowNames) {
		return "invalid"
	}
	return shadowNames[st]
}

func (st ShadowTypes) MarshalText() ([]byte, error) {
	return []byte(st.String()), nil
}

func (st *ShadowTypes) UnmarshalText(text []byte) error {
	return setEnum(st, shadowNames[:], text, "ShadowTypes")
}

// Precisions are the float precisions of the shaders.
type Precisions int32

const (
	HighPrecision Precisions = iota
	MediumPrecision
	LowPrecision
)

var precisionNames = [...]string{"highp", "mediump", "lowp"}

func (pr Precisions) String() string {
	if pr < 0 || int(pr) >= len(precisionNames) {
		return "invalid"
	}
	return precisionNames[pr]
}

func (pr Precisions) MarshalText() ([]byte, error) {
	return []byte(pr.String()), nil
}

func (pr *Precisions) UnmarshalText(text []byte) error {
	return setEnum(pr, precisionNames[:], text, "Precisions")
}

// Options are the renderer-wide settings that select shader programs.
// Changing any of them changes the program of every material.
type Options struct {
	ToneMapping ToneMappings
	OutputSpace xyz.ColorSpaces
	ShadowType  ShadowTypes
	Precision   Precisions

	// Wireframe draws every material as lines.
	Wireframe bool
}

// FogModes are the fog equations.
type FogModes int32

const (
	NoFog FogModes = iota
	LinearFog
	Exp2Fog
)

// Env is the part of the frame environment that selects programs:
// the lights, the fog and the clipping planes of the scene.
type Env struct {
	Lights         xyz.LightCounts
	Fog            FogModes
	ClippingPlanes int
}

// EnvOf returns the program environment of the scene.
func EnvOf(sc *xyz.Scene) Env {
	env := Env{Lights: sc.LightCounts(), ClippingPlanes: len(sc.ClippingPlanes)}
	switch {
	case sc.Fog == nil:
	case sc.Fog.IsExp2():
		env.Fog = Exp2Fog
	default:
		env.Fog = LinearFog
	}
	return env
}
