package scene

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"cubetea/internal/common"
	"cubetea/internal/geom"
	"cubetea/internal/shade"
)

// Scene is one camera plus an ordered list of boxes and spheres. Object order is the
// tie-break order for intersection and the order objects are persisted in.
type Scene struct {
	Camera  *Camera
	Objects []Entity
}

// New returns an empty scene viewed through camera.
func New(camera *Camera) *Scene {
	return &Scene{Camera: camera}
}

// Default returns the starter scene a fresh editor opens with: a tilted green box in front of
// the camera and a blue sphere behind it.
func Default() *Scene {
	cam, _ := NewCamera(HomePosition, HomeOrientation, shade.BackgroundDefault, r2.Vec{X: 10, Y: 10}, [2]int{480, 480})
	s := New(cam)

	tilt, _ := geom.FromAxisAngle(r3.Vec{Y: 1, Z: 1}, math.Pi/4)
	box, _ := NewBox("box1", r3.Vec{Y: 2}, geom.DefaultOrientation, shade.Color{G: 128}, r3.Vec{X: 2, Y: 1, Z: 3})
	box.Rotate(tilt, nil)
	sphere, _ := NewSphere("sphere1", r3.Vec{X: 1, Y: 4, Z: 1}, geom.DefaultOrientation, shade.Color{G: 40, B: 160}, 3)
	s.Objects = append(s.Objects, box, sphere)
	return s
}

// Len returns the number of objects, not counting the camera.
func (s *Scene) Len() int { return len(s.Objects) }

// At returns object i.
func (s *Scene) At(i int) (Entity, bool) {
	if i < 0 || i >= len(s.Objects) {
		return nil, false
	}
	return s.Objects[i], true
}

// Add appends a box or sphere and returns its index. A scene has exactly one camera, so
// cameras are rejected.
func (s *Scene) Add(e Entity) (int, error) {
	switch e.(type) {
	case *Box, *Sphere:
	default:
		return -1, errors.Wrapf(common.ErrInvalidScene, "cannot add %T as an object", e)
	}
	s.Objects = append(s.Objects, e)
	return len(s.Objects) - 1, nil
}

// Remove deletes object i, keeping the order of the rest.
func (s *Scene) Remove(i int) error {
	if i < 0 || i >= len(s.Objects) {
		return errors.Errorf("object index %d out of range [0,%d)", i, len(s.Objects))
	}
	s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
	return nil
}

// Count returns how many entities of kind k the scene holds, camera included.
func (s *Scene) Count(k Kind) int {
	n := 0
	if k == KindCamera && s.Camera != nil {
		n++
	}
	for _, o := range s.Objects {
		if o.Kind() == k {
			n++
		}
	}
	return n
}

// Clone returns a deep copy that shares nothing with s.
func (s *Scene) Clone() *Scene {
	out := &Scene{Objects: make([]Entity, 0, len(s.Objects))}
	if s.Camera != nil {
		out.Camera = s.Camera.Clone()
	}
	for _, o := range s.Objects {
		out.Objects = append(out.Objects, Clone(o))
	}
	return out
}
