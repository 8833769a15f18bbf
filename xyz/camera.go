// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cogentcore.org/core/math32"

	"cogentcore.org/forward/frustum"
)

// Camera defines the properties of the camera
type Camera struct {

	// overall orientation and direction of the camera, relative to pointing at negative Z axis with up (positive Y) direction
	Pose Pose

	// target location for the camera, where it is pointing at; defaults to the origin,
	// and is reset by a call to LookAt method
	Target math32.Vector3

	// up direction for camera, which way is up; defaults to positive Y axis,
	// and is reset by call to LookAt method
	UpDir math32.Vector3

	// default is a Perspective camera; set this to make it Orthographic instead,
	// in which case the view height is the one the perspective camera has at the Target distance.
	Ortho bool

	// field of view in degrees
	FOV float32

	// aspect ratio (width/height)
	Aspect float32

	// near plane z coordinate
	Near float32

	// far plane z coordinate
	Far float32

	// Layers is the mask of node layers this camera draws.
	Layers Layers

	// view matrix (inverse of the Pose.Matrix)
	ViewMatrix math32.Matrix4

	// projection matrix, defining the camera perspective / ortho transform
	ProjectionMatrix math32.Matrix4

	// ViewProjection is ProjectionMatrix * ViewMatrix
	ViewProjection math32.Matrix4

	// external is set when the matrices were supplied by SetMatrices
	external bool
}

// NewCamera returns a new camera with default parameters.
func NewCamera() *Camera {
	cm := &Camera{}
	cm.Defaults()
	return cm
}

func (cm *Camera) Defaults() {
	cm.FOV = 30
	cm.Aspect = 1.5
	cm.Near = .01
	cm.Far = 1000
	cm.Layers = DefaultLayers
	cm.DefaultPose()
}

// DefaultPose resets the camera pose to default location and orientation, looking
// at the origin from 0,0,10, with up Y axis
func (cm *Camera) DefaultPose() {
	cm.Pose.Defaults()
	cm.Pose.Pos = math32.Vec3(0, 0, 10)
	cm.LookAtOrigin()
}

// UpdateMatrix updates the view and projection matrices.
// It does nothing if the matrices were set with [Camera.SetMatrices].
func (cm *Camera) UpdateMatrix() {
	if cm.external {
		return
	}
	cm.Pose.UpdateMatrix()
	cm.ViewMatrix.SetInverse(&cm.Pose.Matrix)
	if cm.Ortho {
		dist := cm.Pose.Pos.DistanceTo(cm.Target)
		if dist == 0 {
			dist = 1
		}
		height := 2 * dist * math32.Tan(math32.DegToRad(cm.FOV*0.5))
		cm.ProjectionMatrix.SetOrthographic(cm.Aspect*height, height, cm.Near, cm.Far)
	} else {
		cm.ProjectionMatrix.SetPerspective(cm.FOV, cm.Aspect, cm.Near, cm.Far)
	}
	cm.ViewProjection.MulMatrices(&cm.ProjectionMatrix, &cm.ViewMatrix)
}

// SetMatrices sets the view and projection matrices directly,
// for cameras driven by an external controller. The pose is no
// longer used until [Camera.ClearMatrices] is called.
func (cm *Camera) SetMatrices(view, projection math32.Matrix4) {
	cm.external = true
	cm.ViewMatrix = view
	cm.ProjectionMatrix = projection
	cm.ViewProjection.MulMatrices(&cm.ProjectionMatrix, &cm.ViewMatrix)
}

// ClearMatrices returns to computing the matrices from the pose.
func (cm *Camera) ClearMatrices() {
	cm.external = false
	cm.UpdateMatrix()
}

// LookAt points the camera at given target location, using given up direction,
// and sets the Target, UpDir fields for future camera movements.
func (cm *Camera) LookAt(target, upDir math32.Vector3) {
	cm.Target = target
	if upDir == (math32.Vector3{}) {
		upDir = math32.Vec3(0, 1, 0)
	}
	cm.UpDir = upDir
	cm.Pose.LookAt(target, upDir)
	cm.UpdateMatrix()
}

// LookAtOrigin points the camera at origin with Y axis pointing Up (i.e., standard)
func (cm *Camera) LookAtOrigin() {
	cm.LookAt(math32.Vector3{}, math32.Vec3(0, 1, 0))
}

// LookAtTarget points the camera at current target using current up direction
func (cm *Camera) LookAtTarget() {
	cm.LookAt(cm.Target, cm.UpDir)
}

// ViewVector is the vector between the camera position and target
func (cm *Camera) ViewVector() math32.Vector3 {
	return cm.Pose.Pos.Sub(cm.Target)
}

// Position returns the world position of the camera.
func (cm *Camera) Position() math32.Vector3 {
	if cm.external {
		cam := math32.Matrix4{}
		cam.SetInverse(&cm.ViewMatrix)
		return cam.Pos()
	}
	return cm.Pose.Pos
}

// Frustum returns the view frustum of the current matrices.
func (cm *Camera) Frustum() frustum.Frustum {
	return frustum.New(&cm.ViewProjection)
}

// ViewDepth returns the signed distance in front of the camera
// of the given world position: positive in front, negative behind.
func (cm *Camera) ViewDepth(p math32.Vector3) float32 {
	return -p.MulMatrix4(&cm.ViewMatrix).Z
}

// Zoom moves along axis given pct closer or further from the target
func (cm *Camera) Zoom(zoomPct float32) {
	ctaxis := cm.ViewVector()
	if ctaxis == (math32.Vector3{}) {
		ctaxis = math32.Vec3(0, 0, 1)
	}
	cm.Pose.Pos = cm.Pose.Pos.Add(ctaxis.MulScalar(zoomPct))
	cm.UpdateMatrix()
}
