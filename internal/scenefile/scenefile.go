// Package scenefile reads and writes scenes as a JSON array of typed entity records.
package scenefile

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"cubetea/internal/common"
	"cubetea/internal/geom"
	"cubetea/internal/scene"
	"cubetea/internal/shade"
)

// record is one element of the array. Vectors are slices so a wrong length can be told
// apart from a missing field.
type record struct {
	Type        string    `json:"type"`
	Name        *string   `json:"name,omitempty"`
	Position    []float64 `json:"position"`
	Orientation []float64 `json:"quaternion"`
	Color       []float64 `json:"color"`
	Dims        []float64 `json:"dims,omitempty"`
	Radius      *float64  `json:"radius,omitempty"`
	VDims       []float64 `json:"vdims,omitempty"`
}

// legacy is the wrapper older editor builds wrote around the array.
type legacy struct {
	Objs *json.RawMessage `json:"objs"`
}

// Encode writes the objects in order followed by the camera.
func Encode(s *scene.Scene) ([]byte, error) {
	if s.Camera == nil {
		return nil, errors.Wrap(common.ErrInvalidScene, "scene has no camera")
	}
	recs := make([]record, 0, len(s.Objects)+1)
	for i, o := range s.Objects {
		r, err := encodeEntity(o)
		if err != nil {
			return nil, errors.Wrapf(err, "object %d", i)
		}
		recs = append(recs, r)
	}
	cam, err := encodeEntity(s.Camera)
	if err != nil {
		return nil, err
	}
	recs = append(recs, cam)
	return json.MarshalIndent(recs, "", "  ")
}

// wireConverters turn the typed entity fields into the record's plain number lists.
var wireConverters = []copier.TypeConverter{
	{
		SrcType: r3.Vec{},
		DstType: []float64{},
		Fn: func(src interface{}) (interface{}, error) {
			v := src.(r3.Vec)
			return []float64{v.X, v.Y, v.Z}, nil
		},
	},
	{
		SrcType: geom.Quat{},
		DstType: []float64{},
		Fn: func(src interface{}) (interface{}, error) {
			a := src.(geom.Quat).Array()
			return a[:], nil
		},
	},
	{
		SrcType: shade.Color{},
		DstType: []float64{},
		Fn: func(src interface{}) (interface{}, error) {
			a := src.(shade.Color).Array()
			return a[:], nil
		},
	},
}

// encodeEntity fills a record from the entity's same-named fields (Name, Position, Orientation,
// Dims, Radius) and its Color method. The camera's view plane and viewport are set by hand.
func encodeEntity(e scene.Entity) (record, error) {
	var r record
	switch e.(type) {
	case *scene.Box, *scene.Sphere, *scene.Camera:
	default:
		return record{}, errors.Wrapf(common.ErrInvalidScene, "cannot encode %T", e)
	}
	if err := copier.CopyWithOption(&r, e, copier.Option{Converters: wireConverters}); err != nil {
		return record{}, errors.Wrapf(err, "encode %s", e.Base().Name)
	}
	r.Type = e.Kind().String()
	if v, ok := e.(*scene.Camera); ok {
		r.Name = nil
		r.Dims = []float64{v.ViewPlane.X, v.ViewPlane.Y}
		r.VDims = []float64{float64(v.Viewport[0]), float64(v.Viewport[1])}
	}
	return r, nil
}

// Decode parses a scene. It accepts a bare array or the legacy {"objs": [...]} wrapper.
// Any problem is reported as common.ErrInvalidScene and no scene is returned.
func Decode(data []byte) (*scene.Scene, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var l legacy
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, errors.Wrapf(common.ErrInvalidScene, "parse: %v", err)
		}
		if l.Objs == nil {
			return nil, errors.Wrap(common.ErrInvalidScene, `object form needs an "objs" array`)
		}
		data = *l.Objs
	}
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, errors.Wrapf(common.ErrInvalidScene, "parse: %v", err)
	}

	var cam *scene.Camera
	var objects []scene.Entity
	for i, r := range recs {
		e, err := decodeRecord(r)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		if c, ok := e.(*scene.Camera); ok {
			if cam != nil {
				return nil, errors.Wrapf(common.ErrInvalidScene, "entry %d: more than one camera", i)
			}
			cam = c
			continue
		}
		objects = append(objects, e)
	}
	if cam == nil {
		return nil, errors.Wrap(common.ErrInvalidScene, "camera is missing")
	}
	s := scene.New(cam)
	s.Objects = objects
	return s, nil
}

func decodeRecord(r record) (scene.Entity, error) {
	pos, err := vec3(r.Position, "position")
	if err != nil {
		return nil, err
	}
	if len(r.Orientation) != 4 {
		return nil, fieldError("quaternion", r.Orientation, 4)
	}
	q := geom.NewQuat(r.Orientation[0], r.Orientation[1], r.Orientation[2], r.Orientation[3])
	if len(r.Color) != 3 {
		return nil, fieldError("color", r.Color, 3)
	}
	col := shade.ColorFromArray([3]float64{r.Color[0], r.Color[1], r.Color[2]})

	var e scene.Entity
	switch r.Type {
	case "Box":
		if r.Name == nil {
			return nil, missing("name")
		}
		var dims r3.Vec
		if dims, err = vec3(r.Dims, "dims"); err != nil {
			return nil, err
		}
		e, err = scene.NewBox(*r.Name, pos, q, col, dims)
	case "Sphere":
		if r.Name == nil {
			return nil, missing("name")
		}
		if r.Radius == nil {
			return nil, missing("radius")
		}
		e, err = scene.NewSphere(*r.Name, pos, q, col, *r.Radius)
	case "Camera":
		if len(r.Dims) != 2 {
			return nil, fieldError("dims", r.Dims, 2)
		}
		if len(r.VDims) != 2 {
			return nil, fieldError("vdims", r.VDims, 2)
		}
		var vp [2]int
		for i, d := range r.VDims {
			if d != math.Trunc(d) || math.Abs(d) > math.MaxInt32 {
				return nil, errors.Wrapf(common.ErrInvalidScene, "vdims must be whole numbers, got %v", r.VDims)
			}
			vp[i] = int(d)
		}
		e, err = scene.NewCamera(pos, q, col, r2.Vec{X: r.Dims[0], Y: r.Dims[1]}, vp)
	case "":
		return nil, missing("type")
	default:
		return nil, errors.Wrapf(common.ErrInvalidScene, "unknown type %q", r.Type)
	}
	if err != nil {
		return nil, errors.Wrapf(common.ErrInvalidScene, "%s: %v", r.Type, err)
	}
	return e, nil
}

func vec3(v []float64, field string) (r3.Vec, error) {
	if len(v) != 3 {
		return r3.Vec{}, fieldError(field, v, 3)
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}

func fieldError(field string, v []float64, want int) error {
	if v == nil {
		return missing(field)
	}
	return errors.Wrapf(common.ErrInvalidScene, "%s has %d components, want %d", field, len(v), want)
}

func missing(field string) error {
	return errors.Wrapf(common.ErrInvalidScene, "missing field %q", field)
}
