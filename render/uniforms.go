// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image/color"

	"cogentcore.org/core/math32"
	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/forward/gpu"
	"cogentcore.org/forward/program"
	"cogentcore.org/forward/xyz"
)

// frameUniforms are the camera and light values of a frame, in view
// space, uploaded once per program per frame.
type frameUniforms struct {
	view       mgl32.Mat4
	projection mgl32.Mat4
	exposure   float32
	ambient    mgl32.Vec3

	hemiSky    []mgl32.Vec3
	hemiGround []mgl32.Vec3
	hemiDir    []mgl32.Vec3

	dirDir   []mgl32.Vec3
	dirColor []mgl32.Vec3

	pointPos   []mgl32.Vec3
	pointColor []mgl32.Vec3
	pointDecay []mgl32.Vec3

	spotPos    []mgl32.Vec3
	spotDir    []mgl32.Vec3
	spotColor  []mgl32.Vec3
	spotParams []mgl32.Vec4

	fogColor  mgl32.Vec3
	fogParams mgl32.Vec3
	clip      []mgl32.Vec4
}

// gpuVec3, gpuVec4 and gpuMat4 convert scene values to the
// types uploaded to the device. Both matrix types are column-major.
func gpuVec3(v math32.Vector3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func gpuVec4(v math32.Vector4) mgl32.Vec4 {
	return mgl32.Vec4{v.X, v.Y, v.Z, v.W}
}

func gpuMat4(m *math32.Matrix4) mgl32.Mat4 {
	return mgl32.Mat4(*m)
}

func colorVec3(c color.RGBA) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

func lightColor(lb *xyz.LightBase) mgl32.Vec3 {
	return colorVec3(lb.Color).Mul(lb.Lumens)
}

// set computes the frame uniforms of the scene, whose camera
// matrices must be up to date.
func (fu *frameUniforms) set(sc *xyz.Scene, exposure float32) {
	view := &sc.Camera.ViewMatrix
	fu.view = gpuMat4(view)
	fu.projection = gpuMat4(&sc.Camera.ProjectionMatrix)
	fu.exposure = exposure
	fu.ambient = mgl32.Vec3{}
	fu.hemiSky, fu.hemiGround, fu.hemiDir = fu.hemiSky[:0], fu.hemiGround[:0], fu.hemiDir[:0]
	fu.dirDir, fu.dirColor = fu.dirDir[:0], fu.dirColor[:0]
	fu.pointPos, fu.pointColor, fu.pointDecay = fu.pointPos[:0], fu.pointColor[:0], fu.pointDecay[:0]
	fu.spotPos, fu.spotDir, fu.spotColor, fu.spotParams = fu.spotPos[:0], fu.spotDir[:0], fu.spotColor[:0], fu.spotParams[:0]
	for _, kv := range sc.Lights.Order {
		lb := kv.Value.AsLightBase()
		if !lb.On {
			continue
		}
		clr := lightColor(lb)
		switch lt := kv.Value.(type) {
		case *xyz.AmbientLight:
			fu.ambient = fu.ambient.Add(clr)
		case *xyz.HemisphereLight:
			fu.hemiSky = append(fu.hemiSky, clr)
			fu.hemiGround = append(fu.hemiGround, colorVec3(lt.GroundColor).Mul(lb.Lumens))
			fu.hemiDir = append(fu.hemiDir, gpuVec3(lt.Up.MulMatrix4AsVector4(view, 0).Normal()))
		case *xyz.DirLight:
			fu.dirDir = append(fu.dirDir, gpuVec3(lt.ViewDir(view).Normal()))
			fu.dirColor = append(fu.dirColor, clr)
		case *xyz.PointLight:
			fu.pointPos = append(fu.pointPos, gpuVec3(lt.ViewPos(view)))
			fu.pointColor = append(fu.pointColor, clr)
			fu.pointDecay = append(fu.pointDecay, mgl32.Vec3{lt.LinDecay, lt.QuadDecay, 0})
		case *xyz.SpotLight:
			fu.spotPos = append(fu.spotPos, gpuVec3(lt.Pose.Pos.MulMatrix4(view)))
			fu.spotDir = append(fu.spotDir, gpuVec3(lt.ViewDir().MulMatrix4AsVector4(view, 0).Normal()))
			fu.spotColor = append(fu.spotColor, clr)
			cutoff := math32.Cos(math32.DegToRad(lt.CutoffAngle))
			fu.spotParams = append(fu.spotParams, mgl32.Vec4{cutoff, lt.AngDecay, lt.LinDecay, lt.QuadDecay})
		}
	}
	if fog := sc.Fog; fog != nil {
		fu.fogColor = colorVec3(fog.Color)
		fu.fogParams = mgl32.Vec3{fog.Near, fog.Far, fog.Density}
	}
	// planes transform by the inverse transpose of the view matrix
	fu.clip = fu.clip[:0]
	if len(sc.ClippingPlanes) > 0 {
		it := fu.view.Inv().Transpose()
		for _, pl := range sc.ClippingPlanes {
			fu.clip = append(fu.clip, it.Mul4x1(gpuVec4(pl)))
		}
	}
}

// uniforms uploads values to the uniforms of one program,
// skipping the uniforms the program does not use.
type uniforms struct {
	dev gpu.Device
	pr  *program.Program
}

func (u uniforms) sampler(name string, unit int) {
	if loc := u.pr.Location(name); loc >= 0 {
		u.dev.Uniform1i(loc, int32(unit))
	}
}

func (u uniforms) float(name string, v float32) {
	if loc := u.pr.Location(name); loc >= 0 {
		u.dev.Uniform1f(loc, v)
	}
}

func (u uniforms) vec2(name string, v mgl32.Vec2) {
	if loc := u.pr.Location(name); loc >= 0 {
		u.dev.Uniform2f(loc, v)
	}
}

func (u uniforms) vec3(name string, v mgl32.Vec3) {
	if loc := u.pr.Location(name); loc >= 0 {
		u.dev.Uniform3f(loc, v)
	}
}

func (u uniforms) vec4(name string, v mgl32.Vec4) {
	if loc := u.pr.Location(name); loc >= 0 {
		u.dev.Uniform4f(loc, v)
	}
}

func (u uniforms) vec3s(name string, v []mgl32.Vec3) {
	if len(v) == 0 {
		return
	}
	if loc := u.pr.Location(name); loc >= 0 {
		u.dev.Uniform3fv(loc, v)
	}
}

func (u uniforms) vec4s(name string, v []mgl32.Vec4) {
	if len(v) == 0 {
		return
	}
	if loc := u.pr.Location(name); loc >= 0 {
		u.dev.Uniform4fv(loc, v)
	}
}

func (u uniforms) mat3(name string, m mgl32.Mat3) {
	if loc := u.pr.Location(name); loc >= 0 {
		u.dev.UniformMatrix3(loc, m)
	}
}

func (u uniforms) mat4(name string, m mgl32.Mat4) {
	if loc := u.pr.Location(name); loc >= 0 {
		u.dev.UniformMatrix4(loc, m)
	}
}

// frame uploads the frame uniforms.
func (u uniforms) frame(fu *frameUniforms) {
	u.mat4("viewMatrix", fu.view)
	u.mat4("projectionMatrix", fu.projection)
	u.float("toneMappingExposure", fu.exposure)
	u.vec3("ambientLightColor", fu.ambient)
	u.vec3s("hemiSkyColor", fu.hemiSky)
	u.vec3s("hemiGroundColor", fu.hemiGround)
	u.vec3s("hemiDirection", fu.hemiDir)
	u.vec3s("dirLightDirection", fu.dirDir)
	u.vec3s("dirLightColor", fu.dirColor)
	u.vec3s("pointLightPosition", fu.pointPos)
	u.vec3s("pointLightColor", fu.pointColor)
	u.vec3s("pointLightDecay", fu.pointDecay)
	u.vec3s("spotLightPosition", fu.spotPos)
	u.vec3s("spotLightDirection", fu.spotDir)
	u.vec3s("spotLightColor", fu.spotColor)
	u.vec4s("spotLightParams", fu.spotParams)
	u.vec3("fogColor", fu.fogColor)
	u.vec3("fogParams", fu.fogParams)
	u.vec4s("clippingPlanes", fu.clip)
}

// draw uploads the model matrices and the material values of one draw.
func (u uniforms) draw(n *xyz.Node, geom *xyz.Geometry, mt *xyz.Material, view mgl32.Mat4) {
	model := gpuMat4(&n.WorldMatrix)
	u.mat4("modelMatrix", model)
	u.mat3("normalMatrix", view.Mul4(model).Mat3().Inv().Transpose())
	c := colorVec3(mt.Color)
	u.vec4("diffuse", c.Vec4(mt.Opacity))
	u.vec3("emissive", colorVec3(mt.Emissive))
	u.float("shininess", mt.Shininess)
	u.float("roughness", mt.Roughness)
	u.float("metalness", mt.Metalness)
	u.float("ior", mt.IOR)
	u.float("thickness", mt.Thickness)
	u.float("normalScale", mt.NormalScale)
	u.float("alphaTest", mt.AlphaTest())
	u.float("transmission", mt.Transmission())
	u.float("clearcoat", mt.Clearcoat())
	u.float("sheen", mt.Sheen())
	u.vec3("instanceOffset", gpuVec3(geom.InstanceOffset))
}

// samplerNames are the sampler uniforms of the texture slots.
var samplerNames = [xyz.TextureSlotsN]string{
	xyz.MapSlot:          "map",
	xyz.AlphaMapSlot:     "alphaMap",
	xyz.NormalMapSlot:    "normalMap",
	xyz.EmissiveMapSlot:  "emissiveMap",
	xyz.RoughnessMapSlot: "roughnessMap",
	xyz.MetalnessMapSlot: "metalnessMap",
	xyz.AOMapSlot:        "aoMap",
	xyz.EnvMapSlot:       "envMap",
	xyz.LightMapSlot:     "lightMap",
}
