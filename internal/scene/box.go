package scene

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"cubetea/internal/common"
	"cubetea/internal/geom"
	"cubetea/internal/shade"
)

// Box is a rectangular solid centered on its position. Dims are the full edge lengths along
// the box's local axes.
type Box struct {
	Body
	Dims r3.Vec
}

// NewBox returns a box. Every dimension must be positive.
func NewBox(name string, position r3.Vec, orientation geom.Quat, color shade.Color, dims r3.Vec) (*Box, error) {
	if err := checkDims(dims); err != nil {
		return nil, err
	}
	return &Box{Body: newBody(name, position, orientation, color), Dims: dims}, nil
}

func (*Box) Kind() Kind { return KindBox }
func (*Box) entity()    {}

// SetDims replaces the edge lengths. Non-positive dims are rejected and leave the box as it was.
func (b *Box) SetDims(dims r3.Vec) error {
	if err := checkDims(dims); err != nil {
		return err
	}
	b.Dims = dims
	return nil
}

// Corners returns the eight world-space corners. Corner n has local coordinates
// (±X/2, ±Y/2, ±Z/2) with the sign of X taken from bit 2, Y from bit 1 and Z from bit 0
// (clear bit = negative).
func (b *Box) Corners() [8]r3.Vec {
	half := r3.Scale(0.5, b.Dims)
	toWorld := b.Basis().Transpose()
	var out [8]r3.Vec
	for n := 0; n < 8; n++ {
		local := r3.Vec{X: -half.X, Y: -half.Y, Z: -half.Z}
		if n&4 != 0 {
			local.X = half.X
		}
		if n&2 != 0 {
			local.Y = half.Y
		}
		if n&1 != 0 {
			local.Z = half.Z
		}
		out[n] = r3.Add(b.Position, toWorld.MulVec(local))
	}
	return out
}

// Clone returns a copy of b. Every field is a value, so the copy shares nothing.
func (b *Box) Clone() *Box {
	out := *b
	return &out
}

func checkDims(d r3.Vec) error {
	if d.X <= 0 || d.Y <= 0 || d.Z <= 0 {
		return errors.Wrapf(common.ErrDegenerateGeometry, "box dims must be positive, got (%g, %g, %g)", d.X, d.Y, d.Z)
	}
	return nil
}
