// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image"
	"image/color"

	"cogentcore.org/core/math32"

	"cogentcore.org/forward/xyz"
)

// demo is the scene shown by the run and bench commands,
// with the nodes that are animated.
type demo struct {
	Scene   *xyz.Scene
	spinner *xyz.Node
	orbit   *xyz.Node
}

// checker returns a checkerboard image of the given size and cell size.
func checker(size, cell int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}
	return img
}

func newDemo() *demo {
	sc := xyz.NewScene("demo")
	sc.BackgroundColor = color.RGBA{30, 32, 40, 255}
	sc.Fog = &xyz.Fog{Color: sc.BackgroundColor, Near: 15, Far: 40}
	sc.Camera.Pose.Pos = math32.Vec3(0, 4, 12)
	sc.Camera.LookAt(math32.Vec3(0, 0.5, 0), math32.Vec3(0, 1, 0))

	xyz.NewAmbientLight(sc, "ambient", 0.2, xyz.DirectSun)
	xyz.NewHemisphereLight(sc, "sky", 0.3, xyz.Overcast, color.RGBA{60, 50, 40, 255})
	sun := xyz.NewDirLight(sc, "sun", 1, xyz.DirectSun)
	sun.Pos = math32.Vec3(1, 2, 1)
	sun.CastShadow = true
	lamp := xyz.NewPointLight(sc, "lamp", 1, xyz.Halogen)
	lamp.Pos = math32.Vec3(-3, 2, 2)
	spot := xyz.NewSpotLight(sc, "spot", 1, xyz.FluorCool)
	spot.Pose.Pos = math32.Vec3(3, 5, 3)
	spot.LookAt(math32.Vec3(2, 0, 0), math32.Vec3(0, 1, 0))

	box := xyz.NewBox("box", 1, 1, 1)
	plane := xyz.NewPlane("plane", 1, 1)

	tiles := xyz.NewTexture("tiles", checker(256, 32,
		color.RGBA{200, 200, 200, 255}, color.RGBA{90, 90, 90, 255}))
	floorMat := xyz.NewMaterial("floor", xyz.Lambert).SetTexture(xyz.MapSlot, tiles).SetFog(true)
	floor := sc.Root.NewChild("floor")
	floor.SetScale(20, 20, 1).SetEulerRotation(-90, 0, 0)
	floor.AddDrawable(plane, floorMat)

	objs := xyz.NewGroup(sc.Root, "objects")
	kinds := []xyz.Kind{xyz.Basic, xyz.Lambert, xyz.Phong, xyz.Standard}
	colors := []color.RGBA{{220, 80, 60, 255}, {80, 200, 90, 255}, {70, 110, 220, 255}, {230, 200, 70, 255}}
	for i, k := range kinds {
		mt := xyz.NewMaterial(k.String(), k).SetFog(true)
		mt.Color = colors[i]
		mt.Roughness = 0.4
		n := objs.NewChild(k.String())
		n.SetPos(float32(i)*1.8-2.7, 0.5, 0)
		n.AddDrawable(box, mt)
	}

	// a row of posts drawn as one instanced draw
	post := xyz.NewBox("post", 0.2, 1, 0.2)
	post.Instances = 12
	post.InstanceOffset = math32.Vec3(1.5, 0, 0)
	wood := xyz.NewMaterial("wood", xyz.Standard).SetFog(true)
	wood.Color = color.RGBA{140, 100, 60, 255}
	fence := sc.Root.NewChild("fence")
	fence.SetPos(-8.25, 0.5, -6)
	fence.AddDrawable(post, wood)

	glass := xyz.NewMaterial("glass", xyz.Physical).SetTransmission(0.9).SetFog(true)
	glass.Color = color.RGBA{230, 240, 255, 255}
	glass.Roughness = 0.05
	glass.Thickness = 0.5
	spinner := sc.Root.NewChild("glass")
	spinner.SetPos(0, 1.5, 2).SetScale(1.2, 1.2, 1.2)
	spinner.AddDrawable(box, glass)

	veil := xyz.NewMaterial("veil", xyz.Basic).SetSide(xyz.DoubleSide)
	veil.Color = color.RGBA{255, 120, 200, 255}
	veil.Opacity = 0.5
	orbit := sc.Root.NewChild("veil")
	orbit.SetPos(0, 1.5, -2).SetScale(2, 2, 1)
	orbit.AddDrawable(plane, veil)

	return &demo{Scene: sc, spinner: spinner, orbit: orbit}
}

// animate updates the animated nodes for the time t in seconds.
func (d *demo) animate(t float32) {
	d.spinner.SetEulerRotation(t*20, t*45, 0)
	a := math32.DegToRad(t * 30)
	d.orbit.SetPos(3*math32.Sin(a), 1.5, -2+math32.Cos(a))
}
