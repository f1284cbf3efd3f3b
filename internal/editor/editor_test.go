package editor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"cubetea/internal/common"
	"cubetea/internal/editorconfig"
	"cubetea/internal/logger"
	"cubetea/internal/primitives"
	"cubetea/internal/render"
	"cubetea/internal/scene"
	"cubetea/internal/shade"
	"cubetea/internal/store"
)

const autosavePath = "tmp/cubetea_AUTO.json"

type fixture struct {
	ed    *Editor
	st    *store.Store
	fs    *mem.FS
	prefs editorconfig.Prefs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs, err := mem.NewFS()
	require.NoError(t, err)
	prefs := editorconfig.Default()
	prefs.AutosavePath = autosavePath
	st := store.NewFS(fs)
	return &fixture{
		ed:    New(prefs, st, primitives.NewRegistry(), logger.Nop()),
		st:    st,
		fs:    fs,
		prefs: prefs,
	}
}

func (f *fixture) exec(t *testing.T, lines ...string) {
	t.Helper()
	for _, l := range lines {
		require.NoError(t, f.ed.Exec(l), l)
	}
}

func assertVecNear(t *testing.T, want, got r3.Vec) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-9, "z")
}

func TestAddPlacesInFrontOfCamera(t *testing.T) {
	f := newFixture(t)
	f.exec(t, "add -type box", "add -type sphere")

	s := f.ed.Scene()
	require.Equal(t, 4, s.Len())
	box := s.Objects[2].(*scene.Box)
	assert.Equal(t, "box2", box.Name)
	assertVecNear(t, r3.Vec{Y: 1}, box.Position)
	assert.Equal(t, s.Camera.Orientation, box.Orientation)
	assert.Equal(t, "sphere2", s.Objects[3].Base().Name)
	assert.Equal(t, 3, f.ed.Selected())

	saved, err := f.st.Load(autosavePath)
	require.NoError(t, err)
	assert.Equal(t, 4, saved.Len())

	assert.Error(t, f.ed.Exec("add -type cone"))
}

func TestEditSelection(t *testing.T) {
	f := newFixture(t)
	assert.True(t, errors.Is(f.ed.Exec("move 1 0 0"), errNoSelection))

	f.exec(t,
		"select 0",
		"move 1 0 0",
		`name "big crate"`,
		"color 10 20 30",
		"dims 1 2 3",
	)
	box := f.ed.Scene().Objects[0].(*scene.Box)
	assertVecNear(t, r3.Vec{X: 1, Y: 2}, box.Position)
	assert.Equal(t, "big crate", box.Name)
	assert.Equal(t, shade.Color{R: 10, G: 20, B: 30}, box.Color())
	assert.Equal(t, shade.NewTiers(shade.Color{R: 10, G: 20, B: 30}), box.Tiers())
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, box.Dims)

	assert.Error(t, f.ed.Exec("radius 2"))
	assert.True(t, errors.Is(f.ed.Exec("dims 1 0 3"), common.ErrDegenerateGeometry))
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, box.Dims)
	assert.Error(t, f.ed.Exec("move 1 2"))

	f.exec(t, "position 4 5 6", "euler 10 20 30", "quat 2 0 0 0")
	assert.Equal(t, r3.Vec{X: 4, Y: 5, Z: 6}, box.Position)
	assert.InDelta(t, 1, box.Orientation.Real, 1e-12)

	f.exec(t, "euler 10 20 30")
	e := box.Euler()
	assert.InDelta(t, 10, e.X, 1e-9)
	assert.InDelta(t, 20, e.Y, 1e-9)
	assert.InDelta(t, 30, e.Z, 1e-9)

	f.exec(t, "select 1", "radius 0.5")
	assert.Equal(t, 0.5, f.ed.Scene().Objects[1].(*scene.Sphere).Radius)
	assert.Error(t, f.ed.Exec("quat 0 0 0 0"))
}

func TestRotateAboutPivot(t *testing.T) {
	f := newFixture(t)
	f.exec(t, "select 0", "position 1 0 0")
	f.ed.Scene().Objects[1].Base().SetPosition(r3.Vec{})

	f.exec(t, "pivot -index 1", "rotate -axis z -deg 90")
	assertVecNear(t, r3.Vec{Y: -1}, f.ed.Scene().Objects[0].Base().Position)

	f.exec(t, "position 1 0 0", "rotate -axis z -deg 270")
	assertVecNear(t, r3.Vec{Y: 1}, f.ed.Scene().Objects[0].Base().Position)

	assert.True(t, errors.Is(f.ed.Exec("rotate -axis 0,0,0"), common.ErrDegenerateGeometry))
}

func TestDeleteKeepsIndices(t *testing.T) {
	f := newFixture(t)
	f.exec(t, "add -type box", "select 2", "pivot -index 1", "delete -index 0")
	assert.Equal(t, 1, f.ed.Selected())
	assert.Equal(t, 0, f.ed.Pivot())
	assert.Equal(t, "box2", f.ed.Scene().Objects[1].Base().Name)

	f.exec(t, "delete")
	assert.Equal(t, NoIndex, f.ed.Selected())
	assert.Equal(t, 1, f.ed.Scene().Len())
	assert.Error(t, f.ed.Exec("delete"))
	assert.Error(t, f.ed.Exec("select 7"))
}

func TestDuplicate(t *testing.T) {
	f := newFixture(t)
	f.exec(t, "select 0", "duplicate", "move 0 0 5")
	s := f.ed.Scene()
	require.Equal(t, 3, s.Len())
	assert.Equal(t, "box1_copy", s.Objects[2].Base().Name)
	assert.Equal(t, 2, f.ed.Selected())
	assertVecNear(t, r3.Vec{Y: 2}, s.Objects[0].Base().Position)
	assertVecNear(t, r3.Vec{Y: 2, Z: 5}, s.Objects[2].Base().Position)
}

func TestCameraMoves(t *testing.T) {
	f := newFixture(t)
	cam := f.ed.Scene().Camera

	f.exec(t, "camera -move forward -steps 10")
	assertVecNear(t, r3.Vec{}, cam.Position)
	f.exec(t, "camera -move up")
	assertVecNear(t, r3.Vec{Z: 0.1}, cam.Position)
	f.exec(t, "camera -move right")
	assertVecNear(t, r3.Vec{X: -0.1, Z: 0.1}, cam.Position)

	f.exec(t, "camera -reset")
	assert.Equal(t, scene.HomePosition, cam.Position)
	assert.Error(t, f.ed.Exec("camera -move sideways"))
}

func TestCameraTurns(t *testing.T) {
	f := newFixture(t)
	cam := f.ed.Scene().Camera

	f.exec(t, "camera -turn yawL -steps 15")
	assertVecNear(t, scene.HomePosition, cam.Position)
	assertVecNear(t, r3.Vec{X: 1}, cam.Forward())
	assert.InDelta(t, 1, cam.Orientation.Norm(), 1e-12)

	f.exec(t, "camera -reset")
	pivot := f.ed.Scene().Objects[1].Base().Position
	before := r3.Norm(r3.Sub(cam.Position, pivot))
	f.exec(t, "pivot -index 1", "camera -turn pitchU -steps 7", "camera -turn rollR -steps 3")
	assert.InDelta(t, before, r3.Norm(r3.Sub(cam.Position, pivot)), 1e-9)
	assert.Error(t, f.ed.Exec("camera -turn spin"))
}

func TestCameraShape(t *testing.T) {
	f := newFixture(t)
	cam := f.ed.Scene().Camera
	f.exec(t, "camera -plane 8x6 -viewport 64x48 -color 1,2,3")
	assert.Equal(t, 8.0, cam.ViewPlane.X)
	assert.Equal(t, 6.0, cam.ViewPlane.Y)
	assert.Equal(t, [2]int{64, 48}, cam.Viewport)
	assert.Equal(t, shade.Color{R: 1, G: 2, B: 3}, cam.Color())

	assert.True(t, errors.Is(f.ed.Exec("camera -viewport 1x48"), common.ErrDegenerateResolution))
	assert.Error(t, f.ed.Exec("camera -viewport 10.5x48"))
	assert.Error(t, f.ed.Exec("camera -plane 8"))
	assert.Equal(t, [2]int{64, 48}, cam.Viewport)
}

func TestOverlay(t *testing.T) {
	f := newFixture(t)
	assert.Nil(t, f.ed.Overlay())

	f.exec(t, "select 0")
	items := f.ed.Overlay()
	require.Len(t, items, 12)
	assert.Equal(t, f.prefs.Select().RGB(), items[0].Color)

	f.exec(t, "pivot -index 1")
	items = f.ed.Overlay()
	require.Len(t, items, 1)
	assert.Equal(t, render.Circle, items[0].Kind)
	assert.Equal(t, f.prefs.Pivot().RGB(), items[0].Color)

	f.exec(t, "pivot -clear")
	assert.Len(t, f.ed.Overlay(), 12)
	f.exec(t, "select -index -1")
	assert.Nil(t, f.ed.Overlay())
}

func TestMode(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, render.Wireframe, f.ed.Mode())
	f.exec(t, "mode")
	assert.Equal(t, render.Raytrace, f.ed.Mode())
	f.exec(t, "mode wireframe")
	assert.Equal(t, render.Wireframe, f.ed.Mode())
	assert.Error(t, f.ed.Exec("mode phong"))
}

func TestSaveLoad(t *testing.T) {
	f := newFixture(t)
	f.exec(t, "save scenes/a.json", "select 0", "move 0 0 1")
	f.exec(t, "load scenes/a.json")
	assertVecNear(t, r3.Vec{Y: 2}, f.ed.Scene().Objects[0].Base().Position)
	assert.Equal(t, NoIndex, f.ed.Selected())

	before := f.ed.Scene()
	assert.Error(t, f.ed.Exec("load missing.json"))
	require.NoError(t, hackpadfs.WriteFullFile(f.fs, "bad.json", []byte(`[{"type":"Box"}]`), 0644))
	err := f.ed.Exec("load bad.json")
	assert.True(t, errors.Is(err, common.ErrInvalidScene))
	assert.Same(t, before, f.ed.Scene())

	assert.Error(t, f.ed.Exec("save"))
}

func TestNewScene(t *testing.T) {
	f := newFixture(t)
	f.exec(t, "select 0", "delete", "new")
	assert.Equal(t, 2, f.ed.Scene().Len())
	assert.Equal(t, NoIndex, f.ed.Selected())
}

func TestResume(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.ed.Resume())

	f.exec(t, "add -type sphere")
	next := New(f.prefs, f.st, primitives.NewRegistry(), logger.Nop())
	require.True(t, next.Resume())
	assert.Equal(t, 3, next.Scene().Len())

	require.NoError(t, hackpadfs.WriteFullFile(f.fs, autosavePath, []byte(`{`), 0644))
	broken := New(f.prefs, f.st, primitives.NewRegistry(), logger.Nop())
	assert.False(t, broken.Resume())
	assert.Equal(t, 2, broken.Scene().Len())
}

func TestRender(t *testing.T) {
	f := newFixture(t)
	f.exec(t, "camera -viewport 16x16", "select 0")

	img, err := f.ed.RenderMode(context.Background(), render.Wireframe, false)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())

	img, err = f.ed.RenderMode(context.Background(), render.Raytrace, false)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dy())

	out := filepath.Join(t.TempDir(), "shot.png")
	f.exec(t, "render -o "+out+" -simple")
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
	assert.Error(t, f.ed.Exec("render -o shot.gif"))
}

func TestRenderScaled(t *testing.T) {
	f := newFixture(t)
	f.prefs.ScaleFactor = 2
	ed := New(f.prefs, f.st, primitives.NewRegistry(), logger.Nop())
	require.NoError(t, ed.Exec("camera -viewport 10x12"))
	img, err := ed.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 24, img.Bounds().Dy())
}

func TestHistoryAndHelp(t *testing.T) {
	f := newFixture(t)
	f.exec(t, "help", "help camera")
	assert.Error(t, f.ed.Exec("help nope"))
	assert.Error(t, f.ed.Exec("frobnicate"))
	h := f.ed.History()
	assert.NotEmpty(t, h)
	assert.Contains(t, h[0], "> help")
	assert.NoError(t, f.ed.Exec("   "))
}
