// Package editor holds the state of an editing session (scene, selection, pivot, render mode)
// and the console commands that change it.
package editor

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"cubetea/internal/commands"
	"cubetea/internal/editorconfig"
	"cubetea/internal/geom"
	"cubetea/internal/logger"
	"cubetea/internal/primitives"
	"cubetea/internal/render"
	"cubetea/internal/scene"
	"cubetea/internal/store"
)

// spawnDistance is how far in front of the camera new primitives appear.
const spawnDistance = 2

// NoIndex marks an empty selection or pivot.
const NoIndex = -1

var errNoSelection = errors.New("nothing selected")

// cameraMoves are camera-space steps; "up" is toward the top of the view.
var cameraMoves = map[string]r3.Vec{
	"up":       {Z: -1},
	"down":     {Z: 1},
	"forward":  {Y: 1},
	"backward": {Y: -1},
	"right":    {X: 1},
	"left":     {X: -1},
}

// cameraTurns are the rotation axes for each turn direction.
var cameraTurns = map[string]r3.Vec{
	"rollr":  {Y: 1},
	"rolll":  {Y: -1},
	"pitchu": {X: -1},
	"pitchd": {X: 1},
	"yawr":   {Z: -1},
	"yawl":   {Z: 1},
}

// Editor is one editing session. It is not safe for concurrent use.
type Editor struct {
	scene    *scene.Scene
	prefs    editorconfig.Prefs
	store    *store.Store
	prims    *primitives.Registry
	log      *logger.Logger
	cmds     *commands.Registry
	mode     render.Mode
	selected int
	pivot    int
}

// New starts a session on the default scene.
func New(prefs editorconfig.Prefs, st *store.Store, prims *primitives.Registry, log *logger.Logger) *Editor {
	e := &Editor{
		scene:    scene.Default(),
		prefs:    prefs,
		store:    st,
		prims:    prims,
		log:      log,
		mode:     prefs.Mode(),
		selected: NoIndex,
		pivot:    NoIndex,
	}
	e.cmds = e.registerCommands()
	return e
}

func (e *Editor) Scene() *scene.Scene          { return e.scene }
func (e *Editor) Prefs() editorconfig.Prefs    { return e.prefs }
func (e *Editor) Mode() render.Mode            { return e.mode }
func (e *Editor) Selected() int                { return e.selected }
func (e *Editor) Pivot() int                   { return e.pivot }
func (e *Editor) Commands() *commands.Registry { return e.cmds }
func (e *Editor) History() []string            { return e.log.Lines() }
func (e *Editor) SetMode(m render.Mode)        { e.mode = m }

// Exec parses and runs one console line. Commands that change the scene autosave it.
func (e *Editor) Exec(line string) error {
	args, err := commands.Parse(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	e.log.Log("> " + strings.Join(args, " "))
	if err := e.cmds.Execute(args); err != nil {
		e.log.Warn("command failed", zap.String("cmd", args[0]), zap.Error(err))
		return err
	}
	return nil
}

// Resume replaces the scene with the autosave if one exists. It reports whether it did.
func (e *Editor) Resume() bool {
	path := e.prefs.AutosavePath
	if path == "" || !e.store.Exists(path) {
		return false
	}
	if err := e.Load(path); err != nil {
		e.log.Warn("autosave not resumed", zap.String("path", path), zap.Error(err))
		return false
	}
	return true
}

// autosave writes the scene to the autosave path. Failures are logged, not returned: an edit
// that succeeded stays applied.
func (e *Editor) autosave() {
	path := e.prefs.AutosavePath
	if path == "" {
		return
	}
	if err := e.store.Save(path, e.scene); err != nil {
		e.log.Error("autosave failed", zap.String("path", path), zap.Error(err))
	}
}

// NewScene discards the current scene for the default one.
func (e *Editor) NewScene() {
	e.install(scene.Default())
	e.log.Info("new scene")
}

// Load reads a scene file. On failure the current scene is left untouched.
func (e *Editor) Load(path string) error {
	s, err := e.store.Load(path)
	if err != nil {
		return err
	}
	e.install(s)
	e.log.Info("scene loaded", zap.String("path", path), zap.Int("objects", s.Len()))
	return nil
}

// Save writes the scene to path.
func (e *Editor) Save(path string) error {
	if err := e.store.Save(path, e.scene); err != nil {
		return err
	}
	e.log.Info("scene saved", zap.String("path", path))
	return nil
}

func (e *Editor) install(s *scene.Scene) {
	e.scene = s
	e.selected, e.pivot = NoIndex, NoIndex
}

// Select makes object i the selection and clears the pivot. NoIndex clears the selection.
func (e *Editor) Select(i int) error {
	if i != NoIndex {
		if _, ok := e.scene.At(i); !ok {
			return errors.Errorf("no object at index %d", i)
		}
	}
	e.selected, e.pivot = i, NoIndex
	return nil
}

// SetPivot makes object i the rotation pivot. NoIndex clears it.
func (e *Editor) SetPivot(i int) error {
	if i != NoIndex {
		if _, ok := e.scene.At(i); !ok {
			return errors.Errorf("no object at index %d", i)
		}
	}
	e.pivot = i
	return nil
}

// pivotPoint is the pivot object's position, or nil when there is no pivot.
func (e *Editor) pivotPoint() *r3.Vec {
	o, ok := e.scene.At(e.pivot)
	if !ok {
		return nil
	}
	p := o.Base().Position
	return &p
}

func (e *Editor) selection() (scene.Entity, error) {
	o, ok := e.scene.At(e.selected)
	if !ok {
		return nil, errNoSelection
	}
	return o, nil
}

// Add spawns a primitive two units in front of the camera, facing the way the camera does,
// and selects it. It is named after its type and the number of that type in the scene.
func (e *Editor) Add(typ string) (int, error) {
	def, ok := e.prims.Def(typ)
	if !ok {
		return NoIndex, errors.Errorf("unknown primitive type %q", typ)
	}
	kind := scene.KindBox
	if def.Type == primitives.TypeSphere {
		kind = scene.KindSphere
	}
	cam := e.scene.Camera
	pos := r3.Add(cam.Position, r3.Scale(spawnDistance, cam.Forward()))
	obj, err := e.prims.Spawn(def.Type, e.scene.Count(kind)+1, pos, cam.Orientation)
	if err != nil {
		return NoIndex, err
	}
	i, err := e.scene.Add(obj)
	if err != nil {
		return NoIndex, err
	}
	e.selected, e.pivot = i, NoIndex
	e.log.Info("added", zap.String("name", obj.Base().Name), zap.Int("index", i))
	return i, nil
}

// Delete removes object i. Selection and pivot indices are kept pointing at the same objects.
func (e *Editor) Delete(i int) error {
	o, ok := e.scene.At(i)
	if !ok {
		return errors.Errorf("no object at index %d", i)
	}
	if err := e.scene.Remove(i); err != nil {
		return err
	}
	e.selected = shiftAfterRemove(e.selected, i)
	e.pivot = shiftAfterRemove(e.pivot, i)
	e.log.Info("deleted", zap.String("name", o.Base().Name))
	return nil
}

func shiftAfterRemove(idx, removed int) int {
	switch {
	case idx == removed:
		return NoIndex
	case idx > removed:
		return idx - 1
	}
	return idx
}

// Duplicate appends a deep copy of the selection and selects it.
func (e *Editor) Duplicate() (int, error) {
	o, err := e.selection()
	if err != nil {
		return NoIndex, err
	}
	c := scene.Clone(o)
	c.Base().Name = o.Base().Name + "_copy"
	i, err := e.scene.Add(c)
	if err != nil {
		return NoIndex, err
	}
	e.selected, e.pivot = i, NoIndex
	return i, nil
}

// RotateSelection turns the selection by deg degrees about axis, revolving it around the pivot
// when one is set.
func (e *Editor) RotateSelection(axis r3.Vec, deg float64) error {
	o, err := e.selection()
	if err != nil {
		return err
	}
	q, err := geom.FromAxisAngle(axis, deg*math.Pi/180)
	if err != nil {
		return err
	}
	o.Base().Rotate(q, e.pivotPoint())
	return nil
}

// MoveCamera steps the camera one translation step along one of its own axes.
func (e *Editor) MoveCamera(dir string) error {
	d, ok := cameraMoves[strings.ToLower(dir)]
	if !ok {
		return errors.Errorf("unknown camera move %q", dir)
	}
	cam := e.scene.Camera
	cam.Translate(r3.Scale(e.prefs.TranslationStep, cam.FromCamera(d)))
	return nil
}

// TurnCamera rotates the camera one rotation step, around the pivot when one is set.
func (e *Editor) TurnCamera(dir string) error {
	axis, ok := cameraTurns[strings.ToLower(dir)]
	if !ok {
		return errors.Errorf("unknown camera turn %q", dir)
	}
	q, err := geom.FromAxisAngle(axis, e.prefs.RotationStep())
	if err != nil {
		return err
	}
	e.scene.Camera.Rotate(q, e.pivotPoint())
	return nil
}
