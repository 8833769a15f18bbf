// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"image/color"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/core/math32"
)

// Scene is the overall scenegraph, holding the root node and everything
// that applies to the whole scene: the camera, the lights, the background
// and fog.
type Scene struct {

	// Name is the name of the scene, used in messages.
	Name string

	// Root is the root node of the scenegraph.
	Root *Node

	// camera determines view onto scene
	Camera Camera

	// background color, used as the clear color
	BackgroundColor color.RGBA

	// all lights used in the scene
	Lights ordmap.Map[string, Light]

	// Fog, if non-nil, fades distant fragments of materials with fog enabled.
	Fog *Fog

	// ClippingPlanes are world space planes (normal xyz, constant w);
	// fragments on the negative side are discarded.
	ClippingPlanes []math32.Vector4

	// library of objects that can be used in the scene
	Library map[string]*Node

	// saved cameras; can Save and Set these to view the scene from different angles
	SavedCams map[string]Camera
}

// Fog is the distance fog of a [Scene].
type Fog struct {

	// Color is the color fog fades to.
	Color color.RGBA

	// Near and Far are the distances where linear fog starts and is complete.
	Near, Far float32

	// Density, if > 0, selects exponential squared fog instead of linear fog.
	Density float32
}

// IsExp2 returns true for exponential squared fog.
func (fg *Fog) IsExp2() bool {
	return fg.Density > 0
}

// NewScene returns a new Scene with a root node and a default camera.
func NewScene(name string) *Scene {
	sc := &Scene{Name: name}
	sc.Defaults()
	return sc
}

// Defaults sets default scene params (camera, bg = white)
func (sc *Scene) Defaults() {
	if sc.Root == nil {
		sc.Root = NewNode("root")
	}
	sc.Camera.Defaults()
	sc.BackgroundColor = color.RGBA{255, 255, 255, 255}
	sc.Lights.Init()
}

// Update brings the world matrices of all nodes and the camera matrices
// up to date. It must be called after all changes to the scene for a frame
// have been made, before it is rendered.
func (sc *Scene) Update() {
	UpdateWorldMatrices(sc.Root)
	sc.Camera.UpdateMatrix()
}

// SaveCamera saves the current camera with given name; can be restored later with SetCamera.
func (sc *Scene) SaveCamera(name string) {
	if sc.SavedCams == nil {
		sc.SavedCams = make(map[string]Camera)
	}
	sc.SavedCams[name] = sc.Camera
}

// SetCamera sets the current camera to that of given name; error if not found.
func (sc *Scene) SetCamera(name string) error {
	cam, ok := sc.SavedCams[name]
	if !ok {
		return fmt.Errorf("xyz.Scene: %v saved camera of name: %v not found", sc.Name, name)
	}
	sc.Camera = cam
	sc.Camera.UpdateMatrix()
	return nil
}

// Destroy destroys all the nodes of the scene.
func (sc *Scene) Destroy() {
	sc.Root.Destroy()
	sc.Root = NewNode("root")
}

// Materials returns the distinct materials used by the visible drawables
// of the scene, in traversal order.
func (sc *Scene) Materials() []*Material {
	var mats []*Material
	seen := make(map[*Material]bool)
	sc.Root.Walk(func(n *Node) bool {
		if !n.Visible {
			return Break
		}
		for _, d := range n.Drawables {
			if d.Material != nil && !seen[d.Material] {
				seen[d.Material] = true
				mats = append(mats, d.Material)
			}
		}
		return Continue
	})
	return mats
}
