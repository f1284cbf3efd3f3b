package scene

import (
	"gonum.org/v1/gonum/spatial/r3"

	"cubetea/internal/geom"
	"cubetea/internal/shade"
)

// Kind names an entity variant. It is also the "type" tag of the scene file.
type Kind int

const (
	KindBox Kind = iota
	KindSphere
	KindCamera
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "Box"
	case KindSphere:
		return "Sphere"
	case KindCamera:
		return "Camera"
	default:
		return "Unknown"
	}
}

// Entity is one of *Box, *Sphere or *Camera. The set is closed: code that needs per-variant
// behavior switches on the concrete type.
type Entity interface {
	Kind() Kind
	// Base returns the shared name/placement/color state.
	Base() *Body
	entity()
}

// Body is the state every entity shares: a name, a placement and a base color with its
// cached shading tiers.
type Body struct {
	Name        string
	Position    r3.Vec
	Orientation geom.Quat

	color shade.Color
	tiers shade.Tiers
}

func newBody(name string, position r3.Vec, orientation geom.Quat, color shade.Color) Body {
	b := Body{Name: name, Position: position, Orientation: orientation}
	b.SetColor(color)
	return b
}

func (b *Body) Base() *Body { return b }

// Color returns the base color.
func (b *Body) Color() shade.Color { return b.color }

// Tiers returns the shading tiers derived from the base color.
func (b *Body) Tiers() shade.Tiers { return b.tiers }

// SetColor changes the base color and rebuilds the shading tiers.
func (b *Body) SetColor(c shade.Color) {
	b.color = c
	b.tiers = shade.NewTiers(c)
}

// Translate moves the entity by delta.
func (b *Body) Translate(delta r3.Vec) {
	b.Position = r3.Add(b.Position, delta)
}

func (b *Body) SetPosition(p r3.Vec) {
	b.Position = p
}

func (b *Body) SetOrientation(q geom.Quat) {
	b.Orientation = q
}

// Basis returns the world→object rotation.
func (b *Body) Basis() geom.Mat3 {
	return b.Orientation.Matrix()
}

// Euler returns the orientation as XYZ Euler angles in degrees.
func (b *Body) Euler() r3.Vec {
	return b.Orientation.Euler()
}

// SetEuler replaces the orientation with the one described by deg.
func (b *Body) SetEuler(deg r3.Vec) {
	b.Orientation = geom.FromEuler(deg)
}

// Rotate composes delta onto the orientation and, when pivot is not nil, revolves the
// position about pivot. The composed orientation is renormalised so repeated edits do not
// drift off the unit sphere.
//
// The stored orientation rotates the object→world basis, so the pivot offset turns by the
// inverse of delta. A zero rotation or a pivot at the position leaves the position alone.
func (b *Body) Rotate(delta geom.Quat, pivot *r3.Vec) {
	b.Orientation = geom.Compose(b.Orientation, delta).Normalize()
	if pivot == nil {
		return
	}
	offset := r3.Sub(b.Position, *pivot)
	if r3.Norm(offset) == 0 {
		return
	}
	axis, angle, ok := delta.Normalize().AxisAngle()
	if !ok {
		return
	}
	inv, err := geom.FromAxisAngle(axis, -angle)
	if err != nil {
		return
	}
	b.Position = r3.Add(*pivot, inv.Matrix().MulVec(offset))
}

// Clone returns an independent deep copy of e.
func Clone(e Entity) Entity {
	switch v := e.(type) {
	case *Box:
		return v.Clone()
	case *Sphere:
		return v.Clone()
	case *Camera:
		return v.Clone()
	default:
		return nil
	}
}
