package scene

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"cubetea/internal/common"
	"cubetea/internal/geom"
	"cubetea/internal/shade"
)

// Sphere is a ball of Radius around its position. Its orientation is kept for editing and
// persistence but does not change how it looks.
type Sphere struct {
	Body
	Radius float64
}

func NewSphere(name string, position r3.Vec, orientation geom.Quat, color shade.Color, radius float64) (*Sphere, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	return &Sphere{Body: newBody(name, position, orientation, color), Radius: radius}, nil
}

func (*Sphere) Kind() Kind { return KindSphere }
func (*Sphere) entity()    {}

func (s *Sphere) SetRadius(r float64) error {
	if err := checkRadius(r); err != nil {
		return err
	}
	s.Radius = r
	return nil
}

// Clone returns a copy of s. Every field is a value, so the copy shares nothing.
func (s *Sphere) Clone() *Sphere {
	out := *s
	return &out
}

func checkRadius(r float64) error {
	if r <= 0 {
		return errors.Wrapf(common.ErrDegenerateGeometry, "sphere radius must be positive, got %g", r)
	}
	return nil
}
