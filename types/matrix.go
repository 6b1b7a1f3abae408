package types

import (
	"errors"
	"math"

	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrSingularMatrix = errors.New("types: matrix is singular or ill-conditioned")
)

// A 4x4 matrix stored in row-major order.
type Mat4 f64.Mat4

// Create a 4x4 identity matrix.
func Ident4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Build a matrix from 16 values in column-major order. This is the layout
// used by host-side matrix libraries (three.js, glm) when flattening a
// matrix to an array.
func Mat4FromColumnMajor(values [16]float64) Mat4 {
	return Mat4(values).Transpose()
}

// Return the value stored at the given row and column.
func (m Mat4) At(row, col int) float64 {
	return m[row*4+col]
}

// Transpose matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// Multiply two matrices (m * m2).
func (m Mat4) Mul4(m2 Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * m2[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// Multiply matrix with a 4 component column vector.
func (m Mat4) Mul4x1(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3]*v[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7]*v[3],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11]*v[3],
		m[12]*v[0] + m[13]*v[1] + m[14]*v[2] + m[15]*v[3],
	}
}

// Transform a point (homogeneous W = 1). The resulting W component is
// dropped without a perspective divide; only affine transforms are
// meaningful here.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// Returns true if no matrix element is NaN or infinite.
func (m Mat4) IsFinite() bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Calculate the matrix inverse. Returns ErrSingularMatrix if the matrix
// cannot be inverted or is too badly conditioned for the inverse to be
// trusted.
func (m Mat4) Inverse() (Mat4, error) {
	if !m.IsFinite() {
		return Mat4{}, ErrSingularMatrix
	}

	src := mat.NewDense(4, 4, m[:])
	var inv mat.Dense
	if err := inv.Inverse(src); err != nil {
		// gonum reports both exact singularity and a mat.Condition error
		// for matrices whose condition number exceeds its tolerance.
		return Mat4{}, ErrSingularMatrix
	}

	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[row*4+col] = inv.At(row, col)
		}
	}

	if !out.IsFinite() {
		return Mat4{}, ErrSingularMatrix
	}
	return out, nil
}
