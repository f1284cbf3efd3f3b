package geom

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"cubetea/internal/common"
)

// degPerRad converts radians to degrees.
const degPerRad = 180 / math.Pi

// Quat is an orientation quaternion. Real is w; Imag, Jmag and Kmag are x, y and z.
// Orientations are unit quaternions by convention; nothing here renormalises implicitly.
type Quat quat.Number

var (
	// Identity is the zero rotation.
	Identity = Quat{Real: 1}
	// DefaultOrientation is the orientation every new entity starts with (half turn about Y).
	DefaultOrientation = Quat{Jmag: 1}
)

// NewQuat builds a quaternion from its w, x, y, z components.
func NewQuat(w, x, y, z float64) Quat {
	return Quat{Real: w, Imag: x, Jmag: y, Kmag: z}
}

// QuatFromArray reads the persisted [w, x, y, z] order.
func QuatFromArray(a [4]float64) Quat {
	return NewQuat(a[0], a[1], a[2], a[3])
}

// Array returns the components in persisted [w, x, y, z] order.
func (q Quat) Array() [4]float64 {
	return [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag}
}

// Vector returns the imaginary part (x, y, z).
func (q Quat) Vector() r3.Vec {
	return r3.Vec{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
}

// Compose returns the Hamilton product a*b. Applying b after a to an object's basis
// is Compose(a, b).
func Compose(a, b Quat) Quat {
	return Quat(quat.Mul(quat.Number(a), quat.Number(b)))
}

// Norm returns |q|.
func (q Quat) Norm() float64 {
	return quat.Abs(quat.Number(q))
}

// Normalize returns q/|q|. The zero quaternion is returned unchanged.
func (q Quat) Normalize() Quat {
	n := q.Norm()
	if n == 0 {
		return q
	}
	return Quat(quat.Scale(1/n, quat.Number(q)))
}

// Conj returns the conjugate, which is the inverse rotation for a unit quaternion.
func (q Quat) Conj() Quat {
	return Quat(quat.Conj(quat.Number(q)))
}

// Dot returns the 4D dot product. |Dot| == 1 for two unit quaternions describing the same
// orientation, whatever their sign.
func (q Quat) Dot(p Quat) float64 {
	return q.Real*p.Real + q.Imag*p.Imag + q.Jmag*p.Jmag + q.Kmag*p.Kmag
}

// FromAxisAngle returns the rotation of angle radians about axis. The axis does not need to
// be unit length, but it must not be zero.
func FromAxisAngle(axis r3.Vec, angle float64) (Quat, error) {
	n := r3.Norm(axis)
	if n == 0 {
		return Quat{}, errors.Wrap(common.ErrDegenerateGeometry, "rotation axis is the zero vector")
	}
	s := math.Sin(angle / 2)
	u := r3.Scale(s/n, axis)
	return NewQuat(math.Cos(angle/2), u.X, u.Y, u.Z), nil
}

// AxisAngle recovers the unit axis and angle (radians, in [0, 2π]) of a unit quaternion.
// ok is false for a zero rotation, where the axis is undefined.
func (q Quat) AxisAngle() (axis r3.Vec, angle float64, ok bool) {
	v := q.Vector()
	n := r3.Norm(v)
	if n < 1e-12 {
		return r3.Vec{}, 0, false
	}
	return r3.Scale(1/n, v), 2 * math.Atan2(n, q.Real), true
}

// Matrix returns the rotation matrix of a unit quaternion.
func (q Quat) Matrix() Mat3 {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return Mat3{M: [3][3]float64{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w)},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w)},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y)},
	}}
}

// Euler returns the XYZ Euler angles of q in degrees. X and Z are wrapped into [0, 360)
// with a half-turn offset, so DefaultOrientation reads as (0, 0, 0); Y stays in [-90, 90].
func (q Quat) Euler() r3.Vec {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	rx := degPerRad * math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))
	sy := 2 * (w*y - z*x)
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}
	ry := degPerRad * math.Asin(sy)
	rz := degPerRad * math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))
	return r3.Vec{X: wrapDegrees(rx + 180), Y: ry, Z: wrapDegrees(rz + 180)}
}

// FromEuler is the inverse of Euler: FromEuler(q.Euler()) is q or -q.
func FromEuler(deg r3.Vec) Quat {
	e0 := 0.5 * (deg.X + 180) / degPerRad
	e1 := 0.5 * deg.Y / degPerRad
	e2 := 0.5 * (deg.Z + 180) / degPerRad
	s0, c0 := math.Sincos(e0)
	s1, c1 := math.Sincos(e1)
	s2, c2 := math.Sincos(e2)
	return NewQuat(
		c0*c1*c2+s0*s1*s2,
		s0*c1*c2-c0*s1*s2,
		c0*s1*c2+s0*c1*s2,
		c0*c1*s2-s0*s1*c2,
	)
}

func wrapDegrees(v float64) float64 {
	v = math.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	if v >= 360 {
		v -= 360
	}
	return v
}
