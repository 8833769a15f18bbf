// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderlist

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/forward/xyz"
)

// newTestScene returns a scene with the default camera at (0,0,10)
// looking down -Z at the origin.
func newTestScene() *xyz.Scene {
	return xyz.NewScene("test")
}

func build(sc *xyz.Scene) (*Builder, *Lists) {
	sc.Update()
	b := &Builder{}
	ls := b.Build(sc.Root, &sc.Camera)
	ls.Sort()
	return b, ls
}

func nodes(l *List) []string {
	var nms []string
	for _, e := range l.Entries {
		nms = append(nms, e.Node.Name)
	}
	return nms
}

func TestExampleScene(t *testing.T) {
	sc := newTestScene()
	box := xyz.NewBox("box", 1, 1, 1)
	plane := xyz.NewPlane("plane", 2, 2)
	glass := xyz.NewMaterial("glass", xyz.Basic)
	glass.Opacity = 0.5

	quad := sc.Root.NewChild("quad").SetPos(0, 0, -5)
	quad.AddDrawable(plane, glass)
	cube := sc.Root.NewChild("cube")
	cube.AddDrawable(box, xyz.NewMaterial("red", xyz.Phong))

	_, ls := build(sc)
	assert.Equal(t, []string{"cube"}, nodes(&ls.Opaque))
	assert.Equal(t, []string{"quad"}, nodes(&ls.Transparent))
	assert.Equal(t, 0, ls.Transmissive.Len())

	var order []string
	for _, l := range ls.Passes() {
		order = append(order, nodes(l)...)
	}
	assert.Equal(t, []string{"cube", "quad"}, order)
	assert.InDelta(t, 10, ls.Opaque.Entries[0].Depth, 1e-4)
	assert.InDelta(t, 15, ls.Transparent.Entries[0].Depth, 1e-4)
}

func TestBuckets(t *testing.T) {
	sc := newTestScene()
	box := xyz.NewBox("box", 1, 1, 1)
	trans := xyz.NewMaterial("trans", xyz.Physical).SetTransmission(0.8)
	trans.Opacity = 0.5
	sc.Root.NewChild("transmissive").AddDrawable(box, trans)
	faded := xyz.NewMaterial("faded", xyz.Standard)
	faded.Transparent = true
	sc.Root.NewChild("transparent").AddDrawable(box, faded)
	sc.Root.NewChild("opaque").AddDrawable(box, xyz.NewMaterial("solid", xyz.Standard))
	// transmission is not supported by Standard
	sc.Root.NewChild("plain").AddDrawable(box, xyz.NewMaterial("plain", xyz.Standard).SetTransmission(1))

	_, ls := build(sc)
	assert.Equal(t, []string{"transmissive"}, nodes(&ls.Transmissive))
	assert.Equal(t, []string{"transparent"}, nodes(&ls.Transparent))
	assert.ElementsMatch(t, []string{"opaque", "plain"}, nodes(&ls.Opaque))
	assert.Equal(t, 4, ls.Len())
}

func TestInvisible(t *testing.T) {
	sc := newTestScene()
	box := xyz.NewBox("box", 1, 1, 1)
	mat := xyz.NewMaterial("m", xyz.Basic)
	hidden := sc.Root.NewChild("hidden")
	hidden.Visible = false
	hidden.AddDrawable(box, mat)
	hidden.NewChild("child").AddDrawable(box, mat)
	sc.Root.NewChild("shown").AddDrawable(box, mat)

	_, ls := build(sc)
	assert.Equal(t, []string{"shown"}, nodes(&ls.Opaque))
}

func TestLayers(t *testing.T) {
	sc := newTestScene()
	box := xyz.NewBox("box", 1, 1, 1)
	mat := xyz.NewMaterial("m", xyz.Basic)
	other := sc.Root.NewChild("other")
	other.Layers.Set(3)
	other.AddDrawable(box, mat)
	other.NewChild("child").AddDrawable(box, mat)

	_, ls := build(sc)
	assert.Equal(t, []string{"child"}, nodes(&ls.Opaque), "children carry their own layers")

	sc.Camera.Layers.Enable(3)
	_, ls = build(sc)
	assert.ElementsMatch(t, []string{"other", "child"}, nodes(&ls.Opaque))
}

func TestCulling(t *testing.T) {
	sc := newTestScene()
	box := xyz.NewBox("box", 1, 1, 1)
	mat := xyz.NewMaterial("m", xyz.Basic)
	sc.Root.NewChild("in").AddDrawable(box, mat)
	sc.Root.NewChild("out").SetPos(100, 0, 0).AddDrawable(box, mat)
	behind := sc.Root.NewChild("behind").SetPos(0, 0, 20)
	behind.AddDrawable(box, mat)
	always := sc.Root.NewChild("always").SetPos(100, 0, 0)
	always.FrustumCulled = false
	always.AddDrawable(box, mat)
	sc.Root.NewChild("nobounds").SetPos(100, 0, 0).AddDrawable(xyz.NewGeometry("empty"), mat)

	b, ls := build(sc)
	assert.ElementsMatch(t, []string{"in", "always", "nobounds"}, nodes(&ls.Opaque))
	assert.Equal(t, 2, b.Culled())
}

func TestStraddling(t *testing.T) {
	sc := newTestScene()
	// a large plane crossing the near plane and every side plane
	big := xyz.NewPlane("big", 1000, 1000)
	sc.Root.NewChild("floor").SetPos(0, 0, 5).AddDrawable(big, xyz.NewMaterial("m", xyz.Basic))
	b, ls := build(sc)
	assert.Equal(t, 1, ls.Opaque.Len())
	assert.Equal(t, 0, b.Culled())
}

func TestOpaqueOrder(t *testing.T) {
	sc := newTestScene()
	box := xyz.NewBox("box", 1, 1, 1)
	m1 := xyz.NewMaterial("m1", xyz.Phong)
	m2 := xyz.NewMaterial("m2", xyz.Phong)
	sc.Root.NewChild("far").SetPos(0, 0, -20).AddDrawable(box, m1)
	sc.Root.NewChild("near").SetPos(0, 0, 5).AddDrawable(box, m2)
	sc.Root.NewChild("mid").AddDrawable(box, m1)

	_, ls := build(sc)
	assert.Equal(t, []string{"near", "mid", "far"}, nodes(&ls.Opaque))

	// render order comes first
	sc.Root.ChildByName("far").SetRenderOrder(-1)
	_, ls = build(sc)
	assert.Equal(t, []string{"far", "near", "mid"}, nodes(&ls.Opaque))

	// then the material state
	sc.Root.ChildByName("far").SetRenderOrder(0)
	m2.SetKind(xyz.Standard)
	_, ls = build(sc)
	assert.Equal(t, []string{"mid", "far", "near"}, nodes(&ls.Opaque))
}

func TestTransparentOrder(t *testing.T) {
	sc := newTestScene()
	plane := xyz.NewPlane("plane", 1, 1)
	mat := xyz.NewMaterial("glass", xyz.Basic)
	mat.Opacity = 0.3
	sc.Root.NewChild("near").SetPos(0, 0, 5).AddDrawable(plane, mat)
	sc.Root.NewChild("far").SetPos(0, 0, -20).AddDrawable(plane, mat)
	sc.Root.NewChild("mid").AddDrawable(plane, mat)

	_, ls := build(sc)
	assert.Equal(t, []string{"far", "mid", "near"}, nodes(&ls.Transparent))

	sc.Root.ChildByName("near").SetRenderOrder(-1)
	_, ls = build(sc)
	assert.Equal(t, []string{"near", "far", "mid"}, nodes(&ls.Transparent))
}

func TestGroups(t *testing.T) {
	sc := newTestScene()
	box := xyz.NewBox("box", 1, 1, 1).AddGroup(0, 18).AddGroup(18, 18)
	mat := xyz.NewMaterial("m", xyz.Basic)
	n := sc.Root.NewChild("n")
	n.AddDrawableGroup(box, mat, 1)
	n.AddDrawableGroup(box, mat, 0)

	_, ls := build(sc)
	require.Equal(t, 2, ls.Opaque.Len())
	assert.Equal(t, 0, ls.Opaque.Entries[0].Group)
	assert.Equal(t, 1, ls.Opaque.Entries[1].Group)
}

func TestDeterministic(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	sc := newTestScene()
	box := xyz.NewBox("box", 1, 1, 1)
	mats := []*xyz.Material{
		xyz.NewMaterial("a", xyz.Basic),
		xyz.NewMaterial("b", xyz.Phong),
		xyz.NewMaterial("c", xyz.Phong),
	}
	mats[2].Opacity = 0.5
	for i := range 200 {
		n := sc.Root.NewChild(fmt.Sprintf("n%d", i))
		// many equal depths so that ties are common
		n.SetPos(float32(rnd.Intn(3)), float32(rnd.Intn(3)), float32(-rnd.Intn(3)))
		n.AddDrawable(box, mats[rnd.Intn(len(mats))])
	}
	ids := func(ls *Lists) []uint64 {
		var out []uint64
		for _, l := range ls.Passes() {
			for _, e := range l.Entries {
				out = append(out, e.ID)
			}
		}
		return out
	}
	_, ls1 := build(sc)
	first := ids(ls1)
	for range 5 {
		_, ls := build(sc)
		assert.Equal(t, first, ids(ls))
	}
}

func TestReuse(t *testing.T) {
	sc := newTestScene()
	box := xyz.NewBox("box", 1, 1, 1)
	mat := xyz.NewMaterial("m", xyz.Basic)
	for i := range 10 {
		sc.Root.NewChild(fmt.Sprintf("n%d", i)).AddDrawable(box, mat)
	}
	sc.Update()
	b := &Builder{}
	ls := b.Build(sc.Root, &sc.Camera)
	first := &ls.Opaque.Entries[0]
	cp := cap(ls.Opaque.Entries)
	ls = b.Build(sc.Root, &sc.Camera)
	assert.Same(t, first, &ls.Opaque.Entries[0])
	assert.Equal(t, cp, cap(ls.Opaque.Entries))
	assert.Same(t, ls, b.Lists())
}

func TestInstancedCulling(t *testing.T) {
	sc := newTestScene()
	row := xyz.NewBox("row", 2, 2, 2)
	row.Instances = 11
	row.InstanceOffset.Set(4, 0, 0)
	// the first instance is outside the view, the middle ones are in it
	sc.Root.NewChild("row").SetPos(-20, 0, 0).AddDrawable(row, xyz.NewMaterial("m", xyz.Basic))

	b, ls := build(sc)
	assert.Equal(t, []string{"row"}, nodes(&ls.Opaque))
	assert.Equal(t, 0, b.Culled())

	row.Instances = 1
	b, ls = build(sc)
	assert.Equal(t, 0, ls.Opaque.Len())
	assert.Equal(t, 1, b.Culled())
}

func TestMargin(t *testing.T) {
	sc := newTestScene()
	box := xyz.NewBox("box", 1, 1, 1)
	// just outside the right plane at depth 10
	sc.Root.NewChild("edge").SetPos(5.5, 0, 0).AddDrawable(box, xyz.NewMaterial("m", xyz.Basic))
	sc.Update()

	b := &Builder{}
	ls := b.Build(sc.Root, &sc.Camera)
	assert.Equal(t, 0, ls.Len())
	assert.Equal(t, 1, b.Culled())

	b.Margin = 1
	ls = b.Build(sc.Root, &sc.Camera)
	assert.Equal(t, 1, ls.Opaque.Len())
	assert.Equal(t, 0, b.Culled())
}

func TestCullThenList(t *testing.T) {
	sc := newTestScene()
	box := xyz.NewBox("box", 1, 1, 1)
	mat := xyz.NewMaterial("m", xyz.Basic)
	sc.Root.NewChild("in").AddDrawable(box, mat)
	sc.Root.NewChild("out").SetPos(100, 0, 0).AddDrawable(box, mat)
	sc.Update()

	b := &Builder{}
	b.Cull(sc.Root, &sc.Camera)
	assert.Equal(t, 1, b.Visible())
	assert.Equal(t, 1, b.Culled())
	assert.Equal(t, 0, b.Lists().Len(), "culling does not fill the lists")

	ls := b.List(&sc.Camera)
	assert.Equal(t, []string{"in"}, nodes(&ls.Opaque))
	assert.InDelta(t, 10, ls.Opaque.Entries[0].Depth, 1e-4)
}

func TestDrawableIndexOrder(t *testing.T) {
	sc := newTestScene()
	plane := xyz.NewPlane("plane", 1, 1)
	glass := xyz.NewMaterial("glass", xyz.Basic)
	glass.Opacity = 0.5
	solid := xyz.NewMaterial("solid", xyz.Basic)
	n := sc.Root.NewChild("n")
	for range 40 {
		n.AddDrawable(plane, glass)
		n.AddDrawable(plane, solid)
	}

	_, ls := build(sc)
	for _, l := range []*List{&ls.Opaque, &ls.Transparent} {
		require.Equal(t, 40, l.Len())
		for i := 1; i < l.Len(); i++ {
			assert.Less(t, l.Entries[i-1].Index, l.Entries[i].Index)
		}
	}
	assert.Equal(t, 0, ls.Transparent.Entries[0].Index)
	assert.Equal(t, 1, ls.Opaque.Entries[0].Index)
}
