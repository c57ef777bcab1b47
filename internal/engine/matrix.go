package engine

import "math"

// Matrix represents a 3D affine transformation in homogeneous coordinates.
// Layout is row-major:
// | m0  m1  m2  m3  |
// | m4  m5  m6  m7  |
// | m8  m9  m10 m11 |
// | m12 m13 m14 m15 |
//
// Translation lives in m3, m7 and m11. Every matrix built by this package keeps
// the bottom row at [0, 0, 0, 1].
type Matrix [16]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(dx, dy, dz float64) Matrix {
	return Matrix{
		1, 0, 0, dx,
		0, 1, 0, dy,
		0, 0, 1, dz,
		0, 0, 0, 1,
	}
}

// Scale returns a scale matrix.
func Scale(sx, sy, sz float64) Matrix {
	return Matrix{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, sz, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation about the X axis (angle in degrees).
func RotateX(degrees float64) Matrix {
	sin, cos := math.Sincos(radians(degrees))
	return Matrix{
		1, 0, 0, 0,
		0, cos, -sin, 0,
		0, sin, cos, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation about the Y axis (angle in degrees).
func RotateY(degrees float64) Matrix {
	sin, cos := math.Sincos(radians(degrees))
	return Matrix{
		cos, 0, sin, 0,
		0, 1, 0, 0,
		-sin, 0, cos, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a rotation about the Z axis (angle in degrees).
func RotateZ(degrees float64) Matrix {
	sin, cos := math.Sincos(radians(degrees))
	return Matrix{
		cos, -sin, 0, 0,
		sin, cos, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// Multiply returns m * other.
// Applied to a point, the result applies 'other' first, then 'm', so
// Translate(...).Multiply(RotateZ(...)) rotates and then translates.
func (m Matrix) Multiply(other Matrix) Matrix {
	var out Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[row*4+col] = m[row*4+0]*other[0*4+col] +
				m[row*4+1]*other[1*4+col] +
				m[row*4+2]*other[2*4+col] +
				m[row*4+3]*other[3*4+col]
		}
	}
	return out
}

// Multiply returns a * b. See Matrix.Multiply.
func Multiply(a, b Matrix) Matrix {
	return a.Multiply(b)
}

// TransformPoint applies the matrix to a point. The bottom row is never read:
// w is taken to be 1 on the way in and dropped on the way out. The point's
// identity is carried over unchanged.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		ID: p.ID,
		X:  m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3],
		Y:  m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7],
		Z:  m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11],
	}
}

// Equal reports whether every element of m is within eps of other.
func (m Matrix) Equal(other Matrix, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}

// IsAffine checks that the bottom row is [0, 0, 0, 1].
func (m Matrix) IsAffine() bool {
	return m[12] == 0 && m[13] == 0 && m[14] == 0 && m[15] == 1
}

// IsIdentity checks if this is the identity matrix (within epsilon).
func (m Matrix) IsIdentity() bool {
	const eps = 1e-10
	return m.Equal(Identity(), eps)
}
