// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cogentcore.org/core/math32"
)

// Pose contains the full specification of position and orientation,
// always relevant to the parent element.
type Pose struct {

	// Pos is the position of the center of the element (relative to parent).
	Pos math32.Vector3

	// Scale is the scale (relative to parent).
	Scale math32.Vector3

	// Quat is the rotation (relative to parent).
	Quat math32.Quat

	// Matrix is the local matrix computed from Pos, Quat and Scale
	// by [Pose.UpdateMatrix].
	Matrix math32.Matrix4

	// applied are the values Matrix was last computed from
	applied poseValues
	valid   bool
}

type poseValues struct {
	pos   math32.Vector3
	scale math32.Vector3
	quat  math32.Quat
}

// Defaults sets defaults only if current values are nil
func (ps *Pose) Defaults() {
	if ps.Scale == (math32.Vector3{}) {
		ps.Scale.Set(1, 1, 1)
	}
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
	ps.Matrix.SetIdentity()
}

func (ps *Pose) values() poseValues {
	return poseValues{pos: ps.Pos, scale: ps.Scale, quat: ps.Quat}
}

// changed returns true if Pos, Quat or Scale differ from the
// values the Matrix was computed from.
func (ps *Pose) changed() bool {
	return !ps.valid || ps.values() != ps.applied
}

// UpdateMatrix updates the local transform matrix based on its position,
// quaternion, and scale, if any of them changed since the last update.
// Returns true if the matrix was recomputed.
func (ps *Pose) UpdateMatrix() bool {
	if !ps.changed() {
		return false
	}
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
	q := ps.Quat
	q.Normalize()
	ps.Matrix.SetTransform(ps.Pos, q, ps.Scale)
	ps.applied = ps.values()
	ps.valid = true
	return true
}

// SetAxisRotation sets the rotation from local axis and angle in degrees.
func (ps *Pose) SetAxisRotation(x, y, z, angle float32) {
	ps.Quat.SetFromAxisAngle(math32.Vec3(x, y, z).Normal(), math32.DegToRad(angle))
}

// SetEulerRotation sets the rotation from euler angles in degrees,
// applied in X, Y, Z order.
func (ps *Pose) SetEulerRotation(x, y, z float32) {
	ps.Quat.SetFromEuler(math32.Vec3(x, y, z).MulScalar(math32.DegToRadFactor))
}

// RotateOnAxis rotates the current rotation around the given local axis
// by the given angle in degrees.
func (ps *Pose) RotateOnAxis(x, y, z, angle float32) {
	ps.Quat.SetMul(math32.NewQuatAxisAngle(math32.Vec3(x, y, z).Normal(), math32.DegToRad(angle)))
}

// MoveOnAxis moves (translates) the specified distance on the specified local axis,
// relative to the current rotation orientation.
func (ps *Pose) MoveOnAxis(x, y, z, dist float32) {
	ps.Pos.SetAdd(math32.Vec3(x, y, z).Normal().MulQuat(ps.Quat).MulScalar(dist))
}

// LookAt rotates the pose so that its -Z axis points at the given target,
// with the given up direction.
func (ps *Pose) LookAt(target, upDir math32.Vector3) {
	if upDir == (math32.Vector3{}) {
		upDir = math32.Vec3(0, 1, 0)
	}
	ps.Quat.SetFromRotationMatrix(math32.NewLookAt(ps.Pos, target, upDir))
}
