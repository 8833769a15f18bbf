// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"image/color"

	"cogentcore.org/core/math32"
)

// Light represents a light that illuminates a scene.
// These are stored on the [Scene] object and not within the tree.
type Light interface {

	// AsLightBase returns the [LightBase] for this Light,
	// which provides the core functionality of a light.
	AsLightBase() *LightBase
}

// LightBase provides the core implementation of the [Light] interface.
type LightBase struct {

	// Name is the name of the light, which matters since lights are accessed by name.
	Name string

	// On is whether the light is turned on.
	On bool

	// Lumens is the brightness/intensity/strength of the light in normalized 0-1 units.
	// It is just multiplied by the color, and is convenient for easily modulating overall brightness.
	Lumens float32

	// Color is the color of the light at full intensity.
	Color color.RGBA

	// CastShadow makes the light cast shadows, for the light types that can.
	CastShadow bool
}

func (lb *LightBase) AsLightBase() *LightBase {
	return lb
}

func (lb *LightBase) init(name string, lumens float32, clr LightColors) {
	lb.Name = name
	lb.On = true
	lb.Color = LightColorMap[clr]
	lb.Lumens = lumens
}

// AmbientLight provides diffuse uniform lighting; typically only one of these in a [Scene].
type AmbientLight struct {
	LightBase
}

// NewAmbientLight adds Ambient to given scene, with given name, standard color, and lumens (0-1 normalized)
func NewAmbientLight(sc *Scene, name string, lumens float32, color LightColors) *AmbientLight {
	lt := &AmbientLight{}
	lt.init(name, lumens, color)
	sc.AddLight(lt)
	return lt
}

// HemisphereLight blends between a sky color from above and
// the ground color from below, based on the surface normal.
type HemisphereLight struct {
	LightBase

	// GroundColor is the color from below; Color is the sky color.
	GroundColor color.RGBA

	// Up is the sky direction.
	Up math32.Vector3
}

// NewHemisphereLight adds a hemisphere light to given scene, with Color as the sky color.
func NewHemisphereLight(sc *Scene, name string, lumens float32, sky LightColors, ground color.RGBA) *HemisphereLight {
	lt := &HemisphereLight{GroundColor: ground, Up: math32.Vec3(0, 1, 0)}
	lt.init(name, lumens, sky)
	sc.AddLight(lt)
	return lt
}

// DirLight is directional light, which is assumed to project light toward
// the origin based on its position, with no attenuation, like the Sun.
// For rendering, the position is negated and normalized to get the direction
// vector (i.e., absolute distance doesn't matter)
type DirLight struct {
	LightBase

	// position of direct light; assumed to point at the origin so this determines direction
	Pos math32.Vector3
}

// NewDirLight adds direct light to given scene, with given name, standard color, and lumens (0-1 normalized)
// By default it is located overhead and toward the default camera (0, 1, 1); change Pos otherwise
func NewDirLight(sc *Scene, name string, lumens float32, color LightColors) *DirLight {
	lt := &DirLight{Pos: math32.Vec3(0, 1, 1)}
	lt.init(name, lumens, color)
	sc.AddLight(lt)
	return lt
}

// ViewDir gets the direction normal vector, pre-computing the view transform
func (dl *DirLight) ViewDir(viewMat *math32.Matrix4) math32.Vector3 {
	// the 0 in the 4-vector drops any translation factors from the 4 matrix
	return dl.Pos.MulMatrix4AsVector4(viewMat, 0)
}

// PointLight is an omnidirectional light with a position
// and associated decay factors, which divide the light intensity as a function of
// linear and quadratic distance.  The quadratic factor dominates at longer distances.
type PointLight struct {
	LightBase

	// position of light in world coordinates
	Pos math32.Vector3

	// Distance linear decay factor; defaults to .1
	LinDecay float32

	// Distance quadratic decay factor; defaults to .01; dominates at longer distances
	QuadDecay float32
}

// NewPointLight adds point light to given scene, with given name, standard color, and lumens (0-1 normalized)
// By default it is located at 0,5,5 (up and between default camera and origin); set Pos to change.
func NewPointLight(sc *Scene, name string, lumens float32, color LightColors) *PointLight {
	lt := &PointLight{Pos: math32.Vec3(0, 5, 5), LinDecay: .1, QuadDecay: .01}
	lt.init(name, lumens, color)
	sc.AddLight(lt)
	return lt
}

// ViewPos gets the position vector, pre-computing the view transform
func (pl *PointLight) ViewPos(viewMat *math32.Matrix4) math32.Vector3 {
	return pl.Pos.MulMatrix4AsVector4(viewMat, 1)
}

// SpotLight is a light with a position and direction and associated decay factors and angles.
// which divide the light intensity as a function of linear and quadratic distance.
// The quadratic factor dominates at longer distances.
type SpotLight struct {
	LightBase

	// position and orientation
	Pose Pose

	// Angular decay factor; defaults to 15
	AngDecay float32

	// Cut off angle (in degrees); defaults to 45, max of 90
	CutoffAngle float32

	// Distance linear decay factor; defaults to .01
	LinDecay float32

	// Distance quadratic decay factor; defaults to .001; dominates at longer distances
	QuadDecay float32
}

// NewSpotLight adds spot light to given scene, with given name, standard color, and lumens (0-1 normalized)
// By default it is located at 0,2,5 and pointing at the origin.
// Use the LookAt function to point it at other locations.
// In its unrotated state, it points down the -Z axis (i.e., into the scene using default view parameters)
func NewSpotLight(sc *Scene, name string, lumens float32, color LightColors) *SpotLight {
	lt := &SpotLight{AngDecay: 15, CutoffAngle: 45, LinDecay: .01, QuadDecay: .001}
	lt.init(name, lumens, color)
	lt.Pose.Defaults()
	lt.Pose.Pos = math32.Vec3(0, 2, 5)
	lt.LookAtOrigin()
	sc.AddLight(lt)
	return lt
}

// ViewDir gets the world direction normal vector of the light.
func (sl *SpotLight) ViewDir() math32.Vector3 {
	sl.Pose.UpdateMatrix()
	return math32.Vec3(0, 0, -1).MulQuat(sl.Pose.Quat).Normal()
}

// LookAt points the spotlight at given target location, using given up direction.
func (sl *SpotLight) LookAt(target, upDir math32.Vector3) {
	sl.Pose.LookAt(target, upDir)
}

// LookAtOrigin points the spotlight at origin with Y axis pointing Up (i.e., standard)
func (sl *SpotLight) LookAtOrigin() {
	sl.LookAt(math32.Vector3{}, math32.Vec3(0, 1, 0))
}

// LightCounts are the number of lights of each type that are on,
// which select the shader program of lit materials.
type LightCounts struct {
	Ambient      int
	Hemisphere   int
	Dir          int
	Point        int
	Spot         int
	DirShadows   int
	PointShadows int
	SpotShadows  int
}

func (lc LightCounts) String() string {
	return fmt.Sprintf("a%d h%d d%d/%d p%d/%d s%d/%d", lc.Ambient, lc.Hemisphere,
		lc.Dir, lc.DirShadows, lc.Point, lc.PointShadows, lc.Spot, lc.SpotShadows)
}

// AddLight adds given light to lights
// see NewX for convenience methods to add specific lights
func (sc *Scene) AddLight(lt Light) {
	sc.Lights.Add(lt.AsLightBase().Name, lt)
}

// LightCounts returns the counts of lights that are on, per type.
func (sc *Scene) LightCounts() LightCounts {
	var lc LightCounts
	for _, kv := range sc.Lights.Order {
		lb := kv.Value.AsLightBase()
		if !lb.On {
			continue
		}
		switch kv.Value.(type) {
		case *AmbientLight:
			lc.Ambient++
		case *HemisphereLight:
			lc.Hemisphere++
		case *DirLight:
			lc.Dir++
			if lb.CastShadow {
				lc.DirShadows++
			}
		case *PointLight:
			lc.Point++
			if lb.CastShadow {
				lc.PointShadows++
			}
		case *SpotLight:
			lc.Spot++
			if lb.CastShadow {
				lc.SpotShadows++
			}
		}
	}
	return lc
}

// LightColors are standard light colors for different light sources
type LightColors int32

// http://planetpixelemporium.com/tutorialpages/light.html
const (
	DirectSun LightColors = iota
	CarbonArc
	Halogen
	Tungsten100W
	Tungsten40W
	Candle
	Overcast
	FluorWarm
	FluorStd
	FluorCool
	FluorFull
	FluorGrow
	MercuryVapor
	SodiumVapor
	MetalHalide
)

// LightColorMap provides a map of named light colors
var LightColorMap = map[LightColors]color.RGBA{
	DirectSun:    {255, 255, 255, 255},
	CarbonArc:    {255, 250, 244, 255},
	Halogen:      {255, 241, 224, 255},
	Tungsten100W: {255, 214, 170, 255},
	Tungsten40W:  {255, 197, 143, 255},
	Candle:       {255, 147, 41, 255},
	Overcast:     {201, 226, 255, 255},
	FluorWarm:    {255, 244, 229, 255},
	FluorStd:     {244, 255, 250, 255},
	FluorCool:    {212, 235, 255, 255},
	FluorFull:    {255, 244, 242, 255},
	FluorGrow:    {255, 239, 247, 255},
	MercuryVapor: {216, 247, 255, 255},
	SodiumVapor:  {255, 209, 178, 255},
	MetalHalide:  {242, 252, 255, 255},
}
