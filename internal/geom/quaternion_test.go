package geom

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
	"pgregory.net/rapid"

	"cubetea/internal/common"
)

const eps = 1e-9

// unitQuat draws a random unit quaternion from an axis and an angle.
func unitQuat(t *rapid.T) Quat {
	axis := r3.Vec{
		X: rapid.Float64Range(-1, 1).Draw(t, "ax"),
		Y: rapid.Float64Range(-1, 1).Draw(t, "ay"),
		Z: rapid.Float64Range(-1, 1).Draw(t, "az"),
	}
	if r3.Norm(axis) < 1e-3 {
		axis = r3.Vec{Z: 1}
	}
	angle := rapid.Float64Range(-2*math.Pi, 2*math.Pi).Draw(t, "angle")
	q, err := FromAxisAngle(axis, angle)
	if err != nil {
		t.Fatalf("FromAxisAngle: %v", err)
	}
	return q
}

func assertQuatNear(t assert.TestingT, want, got Quat, tol float64) {
	assert.InDelta(t, want.Real, got.Real, tol, "w")
	assert.InDelta(t, want.Imag, got.Imag, tol, "x")
	assert.InDelta(t, want.Jmag, got.Jmag, tol, "y")
	assert.InDelta(t, want.Kmag, got.Kmag, tol, "z")
}

func TestComposeHamiltonProduct(t *testing.T) {
	i := NewQuat(0, 1, 0, 0)
	j := NewQuat(0, 0, 1, 0)
	k := NewQuat(0, 0, 0, 1)

	assertQuatNear(t, k, Compose(i, j), eps)
	assertQuatNear(t, NewQuat(0, 0, 0, -1), Compose(j, i), eps)
	assertQuatNear(t, i, Compose(j, k), eps)
	assertQuatNear(t, NewQuat(-1, 0, 0, 0), Compose(i, i), eps)

	// scalar/vector split: s = s1 s2 - v1·v2, v = s1 v2 + s2 v1 + v1×v2
	a := NewQuat(1, 2, 3, 4)
	b := NewQuat(5, 6, 7, 8)
	assertQuatNear(t, NewQuat(-60, 12, 30, 24), Compose(a, b), eps)
}

func TestComposeIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := unitQuat(t)
		assertQuatNear(t, q, Compose(q, Identity), eps)
		assertQuatNear(t, q, Compose(Identity, q), eps)
	})
}

func TestMatrixIsOrthonormal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		R := unitQuat(t).Matrix()
		P := R.Transpose().Mul(R)
		I := I3()
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				if d := math.Abs(P.M[r][c] - I.M[r][c]); d > 1e-9 {
					t.Fatalf("R^T R != I at (%d,%d): %.3g", r, c, d)
				}
			}
		}
	})
}

func TestMatrixRotatesAboutZ(t *testing.T) {
	q, err := FromAxisAngle(r3.Vec{Z: 2}, math.Pi/2)
	require.NoError(t, err)
	v := q.Matrix().MulVec(r3.Vec{X: 1})
	assert.InDelta(t, 0, v.X, eps)
	assert.InDelta(t, 1, v.Y, eps)
	assert.InDelta(t, 0, v.Z, eps)

	back := q.Conj().Matrix().MulVec(v)
	assert.InDelta(t, 1, back.X, eps)
	assert.InDelta(t, 0, back.Y, eps)
}

func TestFromAxisAngleZeroAxis(t *testing.T) {
	_, err := FromAxisAngle(r3.Vec{}, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDegenerateGeometry))
}

func TestAxisAngle(t *testing.T) {
	q, err := FromAxisAngle(r3.Vec{X: 0, Y: 3, Z: 0}, 2.5)
	require.NoError(t, err)
	axis, angle, ok := q.AxisAngle()
	require.True(t, ok)
	assert.InDelta(t, 1, axis.Y, eps)
	assert.InDelta(t, 2.5, angle, eps)

	_, _, ok = Identity.AxisAngle()
	assert.False(t, ok)
}

func TestEulerOfKnownOrientations(t *testing.T) {
	e := DefaultOrientation.Euler()
	assert.InDelta(t, 0, e.X, eps)
	assert.InDelta(t, 0, e.Y, eps)
	assert.InDelta(t, 0, e.Z, eps)

	e = Identity.Euler()
	assert.InDelta(t, 180, e.X, eps)
	assert.InDelta(t, 0, e.Y, eps)
	assert.InDelta(t, 180, e.Z, eps)

	assertQuatNear(t, DefaultOrientation, FromEuler(r3.Vec{}), eps)
	assertQuatNear(t, Identity, FromEuler(r3.Vec{X: 180, Z: 180}), eps)
}

func TestEulerRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := unitQuat(t).Euler()
		if e.X < 0 || e.X >= 360 || e.Z < 0 || e.Z >= 360 {
			t.Fatalf("x/z out of [0,360): %+v", e)
		}
		if e.Y < -90 || e.Y > 90 {
			t.Fatalf("y out of [-90,90]: %+v", e)
		}
	})
}

func TestEulerRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := unitQuat(t)
		// Away from gimbal lock the angles are well conditioned.
		if math.Abs(2*(q.Real*q.Jmag-q.Kmag*q.Imag)) > 0.999 {
			t.Skip("near gimbal lock")
		}
		back := FromEuler(q.Euler())
		if d := math.Abs(back.Dot(q)); math.Abs(d-1) > 1e-9 {
			t.Fatalf("orientation changed: q=%+v back=%+v |dot|=%.12g", q, back, d)
		}
	})
}

func TestEulerFromEulerInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		deg := r3.Vec{
			X: rapid.Float64Range(0, 359.9).Draw(t, "rx"),
			Y: rapid.Float64Range(-89, 89).Draw(t, "ry"),
			Z: rapid.Float64Range(0, 359.9).Draw(t, "rz"),
		}
		got := FromEuler(deg).Euler()
		for _, d := range []float64{got.X - deg.X, got.Y - deg.Y, got.Z - deg.Z} {
			d = math.Mod(math.Abs(d), 360)
			if d > 1e-6 && 360-d > 1e-6 {
				t.Fatalf("want %+v got %+v", deg, got)
			}
		}
	})
}

func TestNormalize(t *testing.T) {
	q := NewQuat(2, 0, 0, 0).Normalize()
	assert.InDelta(t, 1, q.Norm(), eps)
	assert.Equal(t, Quat{}, Quat{}.Normalize())
}

func TestArrayOrder(t *testing.T) {
	q := NewQuat(0.1, 0.2, 0.3, 0.4)
	assert.Equal(t, [4]float64{0.1, 0.2, 0.3, 0.4}, q.Array())
	assert.Equal(t, q, QuatFromArray(q.Array()))
}
