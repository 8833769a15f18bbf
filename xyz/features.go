// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"math/bits"
	"strings"
)

// Features is a bit set of the shader features a material enables.
// The features, masked by what the material [Kind] supports,
// are part of the program key.
type Features uint64

const (
	FeatureMap Features = 1 << iota
	FeatureAlphaMap
	FeatureNormalMap
	FeatureNormalMapObjectSpace
	FeatureEmissiveMap
	FeatureRoughnessMap
	FeatureMetalnessMap
	FeatureAOMap
	FeatureEnvMap
	FeatureLightMap
	FeatureVertexColors
	FeatureFlatShading
	FeatureDoubleSided
	FeatureBackSide
	FeatureAlphaTest
	FeatureTransmission
	FeatureClearcoat
	FeatureSheen
	FeatureFog
	FeatureWireframe
	FeaturePremultiplied
	FeatureDithering

	// FeaturesN is the number of features.
	FeaturesN = iota
)

var featureNames = [FeaturesN]string{
	"Map", "AlphaMap", "NormalMap", "NormalMapObjectSpace", "EmissiveMap",
	"RoughnessMap", "MetalnessMap", "AOMap", "EnvMap", "LightMap",
	"VertexColors", "FlatShading", "DoubleSided", "BackSide", "AlphaTest",
	"Transmission", "Clearcoat", "Sheen", "Fog", "Wireframe",
	"Premultiplied", "Dithering",
}

// Has returns true if all of the given features are set.
func (f Features) Has(o Features) bool {
	return f&o == o
}

// Len returns the number of features set.
func (f Features) Len() int {
	return bits.OnesCount64(uint64(f))
}

// Names returns the names of the features set, in bit order.
func (f Features) Names() []string {
	var nms []string
	for i := 0; i < FeaturesN; i++ {
		if f&(1<<i) != 0 {
			nms = append(nms, featureNames[i])
		}
	}
	return nms
}

// Defines returns the shader preprocessor names of the features set,
// e.g. USE_MAP for [FeatureMap].
func (f Features) Defines() []string {
	nms := f.Names()
	for i, nm := range nms {
		nms[i] = "USE_" + strings.ToUpper(nm)
	}
	return nms
}

func (f Features) String() string {
	if f == 0 {
		return "None"
	}
	return strings.Join(f.Names(), "|")
}
