// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package program

import (
	"embed"
	"fmt"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/forward/xyz"
)

//go:embed shaders/*.glsl
var shaders embed.FS

var (
	vertexSource   = readShader("shaders/forward.vert.glsl")
	fragmentSource = readShader("shaders/forward.frag.glsl")
)

func readShader(name string) string {
	return string(errors.Log1(shaders.ReadFile(name)))
}

// Vertex attribute locations of the forward programs.
const (
	PositionAttrib uint32 = iota
	NormalAttrib
	UVAttrib
	ColorAttrib
)

// Sources returns the vertex and fragment sources of the program
// for the given key: a define prelude derived from the key
// followed by the shared shader sources.
func Sources(k Key) (vert, frag string) {
	pre := Defines(k)
	return pre + vertexSource, pre + fragmentSource
}

// lenDefine returns a #define of an array length.
func lenDefine(name string, n int) string {
	return fmt.Sprintf("#define %s %d\n", name, n)
}

// Defines returns the source prelude of the program for the given key:
// the version directive followed by one #define per variant choice.
func Defines(k Key) string {
	var b strings.Builder
	b.WriteString("#version 410 core\n")
	fmt.Fprintf(&b, "precision %s float;\n", k.Precision)
	fmt.Fprintf(&b, "#define KIND_%s\n", k.Kind.Info().Name)
	if k.Kind.Info().Lit {
		b.WriteString("#define LIT\n")
	}
	for _, d := range k.Features.Defines() {
		b.WriteString("#define " + d + "\n")
	}
	lc := k.Lights
	b.WriteString(lenDefine("NUM_HEMI_LIGHTS", lc.Hemisphere))
	b.WriteString(lenDefine("NUM_DIR_LIGHTS", lc.Dir))
	b.WriteString(lenDefine("NUM_POINT_LIGHTS", lc.Point))
	b.WriteString(lenDefine("NUM_SPOT_LIGHTS", lc.Spot))
	b.WriteString(lenDefine("NUM_DIR_LIGHT_SHADOWS", lc.DirShadows))
	b.WriteString(lenDefine("NUM_POINT_LIGHT_SHADOWS", lc.PointShadows))
	b.WriteString(lenDefine("NUM_SPOT_LIGHT_SHADOWS", lc.SpotShadows))
	b.WriteString(lenDefine("NUM_CLIPPING_PLANES", k.ClippingPlanes))
	b.WriteString(lenDefine("MORPH_TARGETS", k.MorphTargets))
	b.WriteString(lenDefine("TONE_MAPPING", int(k.ToneMapping)))
	b.WriteString(lenDefine("SHADOWMAP_TYPE", int(k.ShadowType)))
	if k.Fog == Exp2Fog {
		b.WriteString("#define FOG_EXP2\n")
	}
	if k.OutputSpace == xyz.SRGBSpace {
		b.WriteString("#define OUTPUT_SRGB\n")
	}
	if k.Skinned {
		b.WriteString("#define USE_SKINNING\n")
	}
	if k.Instanced {
		b.WriteString("#define USE_INSTANCING\n")
	}
	return b.String()
}
