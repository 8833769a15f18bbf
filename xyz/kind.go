// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

// Kind is the shading model of a [Material]. The set of kinds is closed:
// everything that differs between kinds is in the [KindInfo] table.
type Kind int32

const (
	// Basic is unlit: color, maps and vertex colors only.
	Basic Kind = iota

	// Lambert is diffuse-only lighting evaluated per fragment.
	Lambert

	// Phong is diffuse plus specular highlights controlled by Shininess.
	Phong

	// Standard is metalness / roughness physically based shading.
	Standard

	// Physical extends Standard with transmission, clearcoat and sheen.
	Physical

	// Toon is lit shading quantized into bands.
	Toon

	// Normal renders view-space normals as colors.
	Normal

	// Depth renders view-space depth.
	Depth

	// KindsN is the number of material kinds.
	KindsN
)

// KindInfo is the capability table entry of a material [Kind].
type KindInfo struct {

	// Name is the name of the kind, used as the shader define.
	Name string

	// Lit means the shading depends on lights, so the light counts
	// are part of the program key.
	Lit bool

	// Features are the features the kind supports; all others
	// are dropped from the program key.
	Features Features
}

const (
	commonFeatures  = FeatureDoubleSided | FeatureBackSide | FeatureWireframe
	blendFeatures   = FeatureAlphaTest | FeaturePremultiplied | FeatureDithering
	surfaceFeatures = commonFeatures | blendFeatures | FeatureMap | FeatureAlphaMap |
		FeatureVertexColors | FeatureFog | FeatureAOMap | FeatureLightMap
	normalFeatures = FeatureNormalMap | FeatureNormalMapObjectSpace
	litFeatures    = surfaceFeatures | normalFeatures | FeatureEmissiveMap |
		FeatureFlatShading | FeatureEnvMap
	standardFeatures = litFeatures | FeatureRoughnessMap | FeatureMetalnessMap
)

// Kinds is the capability table, indexed by [Kind].
var Kinds = [KindsN]KindInfo{
	Basic:    {Name: "BASIC", Features: surfaceFeatures | FeatureEnvMap},
	Lambert:  {Name: "LAMBERT", Lit: true, Features: litFeatures},
	Phong:    {Name: "PHONG", Lit: true, Features: litFeatures},
	Standard: {Name: "STANDARD", Lit: true, Features: standardFeatures},
	Physical: {Name: "PHYSICAL", Lit: true, Features: standardFeatures | FeatureTransmission | FeatureClearcoat | FeatureSheen},
	Toon:     {Name: "TOON", Lit: true, Features: surfaceFeatures | normalFeatures | FeatureEmissiveMap},
	Normal:   {Name: "NORMAL", Features: commonFeatures | normalFeatures | FeatureFlatShading},
	Depth:    {Name: "DEPTH", Features: commonFeatures | FeatureMap | FeatureAlphaMap | FeatureAlphaTest},
}

// IsValid returns true if the kind is one of the defined kinds.
func (k Kind) IsValid() bool {
	return k >= 0 && k < KindsN
}

// Info returns the capability table entry for the kind.
// Invalid kinds fall back to [Basic].
func (k Kind) Info() *KindInfo {
	if !k.IsValid() {
		return &Kinds[Basic]
	}
	return &Kinds[k]
}

// Supports returns true if the kind supports all of the given features.
func (k Kind) Supports(f Features) bool {
	return k.Info().Features.Has(f)
}

func (k Kind) String() string {
	if !k.IsValid() {
		return "Kind(invalid)"
	}
	return Kinds[k].Name
}
