package geom

import "gonum.org/v1/gonum/spatial/r3"

// Mat3 is a row-major 3×3 matrix. Rotation matrices built from a Quat are used as the
// world→object basis, so row i is the object's i-th axis expressed in world coordinates.
type Mat3 struct {
	M [3][3]float64
}

// I3 returns the identity matrix.
func I3() Mat3 {
	return Mat3{M: [3][3]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

func (A Mat3) Mul(B Mat3) Mat3 {
	var R Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += A.M[r][k] * B.M[k][c]
			}
			R.M[r][c] = sum
		}
	}
	return R
}

func (A Mat3) Transpose() Mat3 {
	var R Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			R.M[r][c] = A.M[c][r]
		}
	}
	return R
}

// MulVec returns A·v.
func (A Mat3) MulVec(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: A.M[0][0]*v.X + A.M[0][1]*v.Y + A.M[0][2]*v.Z,
		Y: A.M[1][0]*v.X + A.M[1][1]*v.Y + A.M[1][2]*v.Z,
		Z: A.M[2][0]*v.X + A.M[2][1]*v.Y + A.M[2][2]*v.Z,
	}
}

// Row returns row i as a vector.
func (A Mat3) Row(i int) r3.Vec {
	return r3.Vec{X: A.M[i][0], Y: A.M[i][1], Z: A.M[i][2]}
}

// Component returns v's i-th coordinate (0=X, 1=Y, 2=Z).
func Component(v r3.Vec, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
