// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"image"
	"strings"
)

// ColorSpaces are the color spaces of texture data.
type ColorSpaces int32

const (
	// LinearSpace is linear data: normal, roughness, metalness maps.
	LinearSpace ColorSpaces = iota

	// SRGBSpace is sRGB encoded color data, decoded on sampling.
	SRGBSpace
)

func (cs ColorSpaces) String() string {
	if cs == SRGBSpace {
		return "sRGB"
	}
	return "Linear"
}

func (cs ColorSpaces) MarshalText() ([]byte, error) {
	return []byte(cs.String()), nil
}

func (cs *ColorSpaces) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "linear":
		*cs = LinearSpace
	case "srgb":
		*cs = SRGBSpace
	default:
		return fmt.Errorf("xyz: %q is not a valid ColorSpaces", text)
	}
	return nil
}

// Texture is an image used by a [Material] texture slot.
// It uses an [image.RGBA] as the underlying image storage
// to facilitate interface with GPU.
type Texture struct {

	// Name is the name of the texture, used in messages.
	Name string

	// ColorSpace is the encoding of the image data.
	ColorSpace ColorSpaces

	// Transparent is whether the texture has transparency.
	Transparent bool

	// RGBA is the image data.
	RGBA *image.RGBA

	id      uint64
	version uint64
}

// NewTexture returns a new texture for the given image,
// in the sRGB color space.
func NewTexture(name string, img *image.RGBA) *Texture {
	tx := &Texture{Name: name, ColorSpace: SRGBSpace, id: nextID()}
	tx.SetImage(img)
	return tx
}

// ID returns the unique object id of the texture.
func (tx *Texture) ID() uint64 {
	return tx.id
}

// Version returns the image version, which increases every time
// the image is set, so that the GPU copy can be re-uploaded.
func (tx *Texture) Version() uint64 {
	return tx.version
}

// SetImage sets the image data, updating the Transparent flag.
func (tx *Texture) SetImage(img *image.RGBA) *Texture {
	tx.RGBA = img
	tx.Transparent = img != nil && !img.Opaque()
	tx.version++
	return tx
}

// Size returns the size of the image.
func (tx *Texture) Size() image.Point {
	if tx.RGBA == nil {
		return image.Point{}
	}
	return tx.RGBA.Bounds().Size()
}
