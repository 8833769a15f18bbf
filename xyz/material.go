// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/reflectx"
	"github.com/jinzhu/copier"
)

// Blending is the blend mode of a [Material].
type Blending int32

const (
	NoBlending Blending = iota
	NormalBlending
	AdditiveBlending
	SubtractiveBlending
	MultiplyBlending
)

// Sides are the faces of a surface that are drawn.
type Sides int32

const (
	FrontSide Sides = iota
	BackSide
	DoubleSide
)

// TextureSlots are the texture inputs of a [Material].
type TextureSlots int32

const (
	MapSlot TextureSlots = iota
	AlphaMapSlot
	NormalMapSlot
	EmissiveMapSlot
	RoughnessMapSlot
	MetalnessMapSlot
	AOMapSlot
	EnvMapSlot
	LightMapSlot

	// TextureSlotsN is the number of texture slots.
	TextureSlotsN
)

var slotFeatures = [TextureSlotsN]Features{
	FeatureMap, FeatureAlphaMap, FeatureNormalMap, FeatureEmissiveMap,
	FeatureRoughnessMap, FeatureMetalnessMap, FeatureAOMap, FeatureEnvMap, FeatureLightMap,
}

// Feature returns the feature enabled by a texture in this slot.
func (ts TextureSlots) Feature() Features {
	return slotFeatures[ts]
}

// Material describes the shading of a surface. The exported fields are
// uniform values, uploaded per draw, and can be changed at any time.
// Everything that selects a different shader program is behind a setter
// that increments [Material.Version] when the program could change,
// so that the program cache re-derives the program key.
type Material struct {

	// Name is the name of the material, used in messages.
	Name string

	// Color is the main surface color; alpha multiplies Opacity.
	Color color.RGBA

	// Emissive is the color the surface emits independent of lighting.
	Emissive color.RGBA

	// Opacity is the overall opacity; below 1 makes the material transparent.
	Opacity float32

	// Transparent forces the material into the transparent list,
	// drawn back to front with blending.
	Transparent bool

	// Blending is the blend mode used when drawing.
	Blending Blending

	// DepthTest enables the depth test.
	DepthTest bool

	// DepthWrite enables writing to the depth buffer.
	DepthWrite bool

	// ColorWrite enables writing to the color buffer.
	ColorWrite bool

	// PolygonOffset enables the depth offset given by
	// PolygonOffsetFactor and PolygonOffsetUnits.
	PolygonOffset       bool
	PolygonOffsetFactor float32
	PolygonOffsetUnits  float32

	// Shininess is the specular exponent for [Phong].
	Shininess float32

	// Roughness is the surface roughness for [Standard] and [Physical].
	Roughness float32

	// Metalness is the metalness for [Standard] and [Physical].
	Metalness float32

	// IOR is the index of refraction used by transmission.
	IOR float32

	// Thickness is the volume thickness used by transmission.
	Thickness float32

	// NormalScale scales the normal map perturbation.
	NormalScale float32

	id                 uint64
	version            uint64
	kind               Kind
	side               Sides
	alphaTest          float32
	transmission       float32
	clearcoat          float32
	sheen              float32
	normalObjectSpace  bool
	vertexColors       bool
	flatShading        bool
	fog                bool
	wireframe          bool
	premultipliedAlpha bool
	dithering          bool
	maps               [TextureSlotsN]*Texture
}

// NewMaterial returns a new material of the given kind with default values.
func NewMaterial(name string, kind Kind) *Material {
	mt := &Material{Name: name, id: nextID()}
	mt.Defaults()
	mt.kind = kind
	return mt
}

// Defaults sets default surface parameters
func (mt *Material) Defaults() {
	mt.Color = color.RGBA{255, 255, 255, 255}
	mt.Emissive = color.RGBA{0, 0, 0, 255}
	mt.Opacity = 1
	mt.Blending = NormalBlending
	mt.DepthTest = true
	mt.DepthWrite = true
	mt.ColorWrite = true
	mt.Shininess = 30
	mt.Roughness = 1
	mt.IOR = 1.5
	mt.NormalScale = 1
	mt.fog = true
}

// ID returns the unique object id of the material.
func (mt *Material) ID() uint64 {
	return mt.id
}

// Version returns the compile version, which increases whenever
// a change could select a different shader program.
func (mt *Material) Version() uint64 {
	return mt.version
}

// NeedsUpdate forces a version increment, for changes made
// outside of the setters, e.g., to a shared texture's color space.
func (mt *Material) NeedsUpdate() {
	mt.version++
}

// bump increments the version if changed is true.
func (mt *Material) bump(changed bool) {
	if changed {
		mt.version++
	}
}

func (mt *Material) Kind() Kind { return mt.kind }

// SetKind sets the shading model.
func (mt *Material) SetKind(k Kind) *Material {
	mt.bump(k != mt.kind)
	mt.kind = k
	return mt
}

func (mt *Material) Side() Sides { return mt.side }

// SetSide sets which faces are drawn.
func (mt *Material) SetSide(s Sides) *Material {
	mt.bump(s != mt.side)
	mt.side = s
	return mt
}

func (mt *Material) AlphaTest() float32 { return mt.alphaTest }

// SetAlphaTest sets the alpha threshold below which fragments are discarded;
// 0 disables the test. Only enabling or disabling changes the program.
func (mt *Material) SetAlphaTest(v float32) *Material {
	mt.bump((v > 0) != (mt.alphaTest > 0))
	mt.alphaTest = v
	return mt
}

func (mt *Material) Transmission() float32 { return mt.transmission }

// SetTransmission sets the amount of light transmitted through the
// surface, for [Physical] materials. Any amount above 0 moves the material
// into the transmissive list.
func (mt *Material) SetTransmission(v float32) *Material {
	mt.bump((v > 0) != (mt.transmission > 0))
	mt.transmission = v
	return mt
}

func (mt *Material) Clearcoat() float32 { return mt.clearcoat }

// SetClearcoat sets the clearcoat layer intensity, for [Physical] materials.
func (mt *Material) SetClearcoat(v float32) *Material {
	mt.bump((v > 0) != (mt.clearcoat > 0))
	mt.clearcoat = v
	return mt
}

func (mt *Material) Sheen() float32 { return mt.sheen }

// SetSheen sets the sheen intensity, for [Physical] materials.
func (mt *Material) SetSheen(v float32) *Material {
	mt.bump((v > 0) != (mt.sheen > 0))
	mt.sheen = v
	return mt
}

// SetNormalMapObjectSpace sets whether the normal map is in object space
// instead of tangent space.
func (mt *Material) SetNormalMapObjectSpace(on bool) *Material {
	mt.bump(on != mt.normalObjectSpace)
	mt.normalObjectSpace = on
	return mt
}

// SetVertexColors sets whether per-vertex colors multiply the color.
func (mt *Material) SetVertexColors(on bool) *Material {
	mt.bump(on != mt.vertexColors)
	mt.vertexColors = on
	return mt
}

// SetFlatShading sets whether face normals are used instead of vertex normals.
func (mt *Material) SetFlatShading(on bool) *Material {
	mt.bump(on != mt.flatShading)
	mt.flatShading = on
	return mt
}

// SetFog sets whether the material is affected by the scene fog.
func (mt *Material) SetFog(on bool) *Material {
	mt.bump(on != mt.fog)
	mt.fog = on
	return mt
}

func (mt *Material) Wireframe() bool { return mt.wireframe }

// SetWireframe sets whether the geometry is drawn as lines.
func (mt *Material) SetWireframe(on bool) *Material {
	mt.bump(on != mt.wireframe)
	mt.wireframe = on
	return mt
}

// SetPremultipliedAlpha sets whether the output color is premultiplied by alpha.
func (mt *Material) SetPremultipliedAlpha(on bool) *Material {
	mt.bump(on != mt.premultipliedAlpha)
	mt.premultipliedAlpha = on
	return mt
}

// SetDithering sets whether the output is dithered to reduce banding.
func (mt *Material) SetDithering(on bool) *Material {
	mt.bump(on != mt.dithering)
	mt.dithering = on
	return mt
}

// Texture returns the texture in the given slot, nil if none.
func (mt *Material) Texture(slot TextureSlots) *Texture {
	return mt.maps[slot]
}

// SetTexture sets the texture for the given slot; nil removes it.
// Adding or removing a texture changes the program, replacing
// one texture with another does not.
func (mt *Material) SetTexture(slot TextureSlots, tx *Texture) *Material {
	mt.bump((tx == nil) != (mt.maps[slot] == nil))
	mt.maps[slot] = tx
	return mt
}

// Textures calls the given function for each texture that is set,
// in slot order.
func (mt *Material) Textures(fun func(slot TextureSlots, tx *Texture)) {
	for i, tx := range mt.maps {
		if tx != nil {
			fun(TextureSlots(i), tx)
		}
	}
}

// IsTransparent returns true if the material is flagged transparent,
// has opacity below 1, or its color texture has transparency.
// Transparent materials are sorted back to front and blended.
func (mt *Material) IsTransparent() bool {
	if mt.Transparent || mt.Opacity < 1 {
		return true
	}
	if tx := mt.maps[MapSlot]; tx != nil && tx.Transparent && mt.alphaTest == 0 {
		return true
	}
	return false
}

// RequiresTransmission returns true if the material samples the
// rendered opaque scene for refraction.
func (mt *Material) RequiresTransmission() bool {
	return mt.transmission > 0 && mt.kind.Supports(FeatureTransmission)
}

// Features returns the features of the material that its kind supports.
func (mt *Material) Features() Features {
	var f Features
	for i, tx := range mt.maps {
		if tx != nil {
			f |= slotFeatures[i]
		}
	}
	set := func(on bool, ft Features) {
		if on {
			f |= ft
		}
	}
	set(mt.normalObjectSpace && mt.maps[NormalMapSlot] != nil, FeatureNormalMapObjectSpace)
	set(mt.vertexColors, FeatureVertexColors)
	set(mt.flatShading, FeatureFlatShading)
	set(mt.side == DoubleSide, FeatureDoubleSided)
	set(mt.side == BackSide, FeatureBackSide)
	set(mt.alphaTest > 0, FeatureAlphaTest)
	set(mt.transmission > 0, FeatureTransmission)
	set(mt.clearcoat > 0, FeatureClearcoat)
	set(mt.sheen > 0, FeatureSheen)
	set(mt.fog, FeatureFog)
	set(mt.wireframe, FeatureWireframe)
	set(mt.premultipliedAlpha, FeaturePremultiplied)
	set(mt.dithering, FeatureDithering)
	return f & mt.kind.Info().Features
}

// StateKey returns a coarse signature of the program and blend state
// of the material, used to group opaque draws that can share state.
func (mt *Material) StateKey() uint64 {
	return uint64(mt.kind)<<56 | uint64(mt.Blending&0xff)<<48 | uint64(mt.Features())&(1<<48-1)
}

// Clone returns a copy of the material with a new id,
// sharing the textures.
func (mt *Material) Clone() *Material {
	cp := &Material{}
	errors.Log(copier.CopyWithOption(cp, mt, copier.Option{DeepCopy: true}))
	cp.id = nextID()
	cp.version = 0
	cp.kind = mt.kind
	cp.side = mt.side
	cp.alphaTest = mt.alphaTest
	cp.transmission = mt.transmission
	cp.clearcoat = mt.clearcoat
	cp.sheen = mt.sheen
	cp.normalObjectSpace = mt.normalObjectSpace
	cp.vertexColors = mt.vertexColors
	cp.flatShading = mt.flatShading
	cp.fog = mt.fog
	cp.wireframe = mt.wireframe
	cp.premultipliedAlpha = mt.premultipliedAlpha
	cp.dithering = mt.dithering
	cp.maps = mt.maps
	return cp
}

func (mt *Material) String() string {
	return mt.Name + " " + mt.kind.String() + " " + reflectx.StringJSON(mt)
}
