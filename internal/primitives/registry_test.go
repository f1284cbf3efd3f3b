package primitives

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"cubetea/internal/geom"
	"cubetea/internal/scene"
	"cubetea/internal/shade"
)

func TestBuiltins(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"box", "sphere"}, r.Types())

	e, err := r.Spawn("box", 3, r3.Vec{Y: 1}, geom.DefaultOrientation)
	require.NoError(t, err)
	b := e.(*scene.Box)
	assert.Equal(t, "box3", b.Name)
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, b.Dims)
	assert.Equal(t, shade.ObjectDefault, b.Color())

	e, err = r.Spawn("Sphere", 1, r3.Vec{}, geom.DefaultOrientation)
	require.NoError(t, err)
	assert.Equal(t, "sphere1", e.Base().Name)

	_, err = r.Spawn("cone", 1, r3.Vec{}, geom.DefaultOrientation)
	assert.Error(t, err)
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"primitives/box.yaml":    {Data: []byte("type: box\nprefix: crate\nsize: [2, 1, 3]\ncolor: \"#008000\"\n")},
		"primitives/sphere.yaml": {Data: []byte("type: sphere\nradius: 3\ncolor: 0,40,160\n")},
		"primitives/README.md":   {Data: []byte("not yaml")},
	}
	r := NewRegistry()
	require.NoError(t, r.LoadFS(fsys, "primitives"))

	e, err := r.Spawn("box", 2, r3.Vec{}, geom.DefaultOrientation)
	require.NoError(t, err)
	b := e.(*scene.Box)
	assert.Equal(t, "crate2", b.Name)
	assert.Equal(t, r3.Vec{X: 2, Y: 1, Z: 3}, b.Dims)
	assert.Equal(t, shade.Color{G: 128}, b.Color())

	e, err = r.Spawn("sphere", 1, r3.Vec{}, geom.DefaultOrientation)
	require.NoError(t, err)
	s := e.(*scene.Sphere)
	assert.Equal(t, 3.0, s.Radius)
	assert.Equal(t, shade.Color{G: 40, B: 160}, s.Color())
}

func TestLoadFSRejectsBadDefs(t *testing.T) {
	bad := map[string]string{
		"unknown type": "type: cone\n",
		"bad color":    "type: box\ncolor: teal\n",
		"bad size":     "type: box\nsize: [1, -1, 1]\n",
		"bad yaml":     "type: [box\n",
	}
	for name, data := range bad {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{"p/x.yaml": {Data: []byte(data)}}
			assert.Error(t, NewRegistry().LoadFS(fsys, "p"))
		})
	}
}

func TestLoadDirMissing(t *testing.T) {
	assert.NoError(t, NewRegistry().LoadDir(t.TempDir()+"/none"))
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ffb464")
	require.NoError(t, err)
	assert.Equal(t, shade.Color{R: 255, G: 180, B: 100}, c)
	c, err = ParseColor(" 1, 2 ,3 ")
	require.NoError(t, err)
	assert.Equal(t, shade.Color{R: 1, G: 2, B: 3}, c)
	_, err = ParseColor("256,0,0")
	assert.Error(t, err)
	_, err = ParseColor("#fff")
	assert.Error(t, err)
}
