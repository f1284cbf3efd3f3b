package primitives

import (
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"cubetea/internal/geom"
	"cubetea/internal/scene"
	"cubetea/internal/shade"
)

// Type names understood by Spawn.
const (
	TypeBox    = "box"
	TypeSphere = "sphere"
)

// defaultPrimitiveColor is the color of primitives whose definition has none.
var defaultPrimitiveColor = shade.ObjectDefault

// Registry maps primitive type names to their defaults. It starts with built-in box and
// sphere definitions; YAML files can override them.
type Registry struct {
	defs map[string]PrimitiveDef
}

// NewRegistry returns a registry with the built-in unit box and sphere.
func NewRegistry() *Registry {
	return &Registry{defs: map[string]PrimitiveDef{
		TypeBox:    {Type: TypeBox, Prefix: TypeBox, Size: [3]float64{1, 1, 1}},
		TypeSphere: {Type: TypeSphere, Prefix: TypeSphere, Radius: 1},
	}}
}

// LoadDir reads every *.yaml file in dir. A missing directory leaves the built-ins in place.
func (r *Registry) LoadDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return r.LoadFS(os.DirFS(dir), ".")
}

// LoadFS reads every *.yaml file in dir of fsys. Only box and sphere types are accepted.
func (r *Registry) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return errors.Wrapf(err, "read primitives dir %s", dir)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		name := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return errors.Wrapf(err, "read %s", name)
		}
		var def PrimitiveDef
		if err := yaml.Unmarshal(data, &def); err != nil {
			return errors.Wrapf(err, "parse %s", name)
		}
		if err := r.Register(def); err != nil {
			return errors.Wrapf(err, "%s", name)
		}
	}
	return nil
}

// Register adds or replaces a definition after checking it can spawn.
func (r *Registry) Register(def PrimitiveDef) error {
	def.Type = strings.ToLower(strings.TrimSpace(def.Type))
	switch def.Type {
	case TypeBox:
		if def.Size == ([3]float64{}) {
			def.Size = [3]float64{1, 1, 1}
		}
	case TypeSphere:
		if def.Radius == 0 {
			def.Radius = 1
		}
	default:
		return errors.Errorf("unknown primitive type %q", def.Type)
	}
	if def.Prefix == "" {
		def.Prefix = def.Type
	}
	if def.Color != "" {
		if _, err := ParseColor(def.Color); err != nil {
			return err
		}
	}
	if _, err := spawn(def, def.Prefix, r3.Vec{}, geom.DefaultOrientation); err != nil {
		return err
	}
	r.defs[def.Type] = def
	return nil
}

// Def returns the definition for typ.
func (r *Registry) Def(typ string) (PrimitiveDef, bool) {
	d, ok := r.defs[strings.ToLower(typ)]
	return d, ok
}

// Types returns the registered type names, sorted.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.defs))
	for k := range r.defs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Spawn creates the n-th instance of typ (named prefix+n) at position with orientation q.
func (r *Registry) Spawn(typ string, n int, position r3.Vec, q geom.Quat) (scene.Entity, error) {
	def, ok := r.Def(typ)
	if !ok {
		return nil, errors.Errorf("unknown primitive type %q (have %s)", typ, strings.Join(r.Types(), ", "))
	}
	return spawn(def, def.Prefix+strconv.Itoa(n), position, q)
}

func spawn(def PrimitiveDef, name string, position r3.Vec, q geom.Quat) (scene.Entity, error) {
	col := defaultPrimitiveColor
	if def.Color != "" {
		c, err := ParseColor(def.Color)
		if err != nil {
			return nil, err
		}
		col = c
	}
	switch def.Type {
	case TypeBox:
		return scene.NewBox(name, position, q, col, r3.Vec{X: def.Size[0], Y: def.Size[1], Z: def.Size[2]})
	case TypeSphere:
		return scene.NewSphere(name, position, q, col, def.Radius)
	}
	return nil, errors.Errorf("unknown primitive type %q", def.Type)
}
