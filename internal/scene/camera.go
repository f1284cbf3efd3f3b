package scene

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"cubetea/internal/common"
	"cubetea/internal/geom"
	"cubetea/internal/shade"
)

// CameraName is the fixed name of the scene camera.
const CameraName = "camera"

var (
	// HomePosition and HomeOrientation are where Reset puts the camera.
	HomePosition    = r3.Vec{Y: -1}
	HomeOrientation = geom.DefaultOrientation
)

// Camera is the orthographic viewer. Its color is the background color, ViewPlane is the
// world-space width and height of the view and Viewport is the output resolution in pixels.
type Camera struct {
	Body
	ViewPlane r2.Vec
	Viewport  [2]int
}

// NewCamera returns a camera. The view plane must be positive and the viewport at least 2×2.
func NewCamera(position r3.Vec, orientation geom.Quat, background shade.Color, plane r2.Vec, viewport [2]int) (*Camera, error) {
	if err := checkPlane(plane); err != nil {
		return nil, err
	}
	if err := checkViewport(viewport); err != nil {
		return nil, err
	}
	return &Camera{
		Body:      newBody(CameraName, position, orientation, background),
		ViewPlane: plane,
		Viewport:  viewport,
	}, nil
}

func (*Camera) Kind() Kind { return KindCamera }
func (*Camera) entity()    {}

// Right, Forward and Up are the camera's world-space axes (rows of its basis).
func (c *Camera) Right() r3.Vec   { return c.Basis().Row(0) }
func (c *Camera) Forward() r3.Vec { return c.Basis().Row(1) }
func (c *Camera) Up() r3.Vec      { return c.Basis().Row(2) }

// ToCamera expresses world point p in camera coordinates (right, forward, up).
func (c *Camera) ToCamera(p r3.Vec) r3.Vec {
	return c.Basis().MulVec(r3.Sub(p, c.Position))
}

// FromCamera maps a camera-space offset to a world-space direction.
func (c *Camera) FromCamera(v r3.Vec) r3.Vec {
	return c.Basis().Transpose().MulVec(v)
}

// PixelRatio is the number of viewport pixels per world unit. Both axes use the horizontal
// ratio.
func (c *Camera) PixelRatio() float64 {
	return float64(c.Viewport[0]) / c.ViewPlane.X
}

func (c *Camera) SetViewPlane(plane r2.Vec) error {
	if err := checkPlane(plane); err != nil {
		return err
	}
	c.ViewPlane = plane
	return nil
}

func (c *Camera) SetViewport(viewport [2]int) error {
	if err := checkViewport(viewport); err != nil {
		return err
	}
	c.Viewport = viewport
	return nil
}

// Reset returns the camera to its home placement. View plane, viewport and background are kept.
func (c *Camera) Reset() {
	c.Position = HomePosition
	c.Orientation = HomeOrientation
}

// Clone returns a copy of c. Every field is a value, so the copy shares nothing.
func (c *Camera) Clone() *Camera {
	out := *c
	return &out
}

func checkPlane(p r2.Vec) error {
	if p.X <= 0 || p.Y <= 0 {
		return errors.Wrapf(common.ErrDegenerateGeometry, "view plane must be positive, got %gx%g", p.X, p.Y)
	}
	return nil
}

func checkViewport(v [2]int) error {
	if v[0] < 2 || v[1] < 2 {
		return errors.Wrapf(common.ErrDegenerateResolution, "viewport must be at least 2x2, got %dx%d", v[0], v[1])
	}
	return nil
}
