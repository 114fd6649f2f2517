package math3d

// Mat3 is a 3x3 matrix stored in column-major order, acting on column
// vectors. It is used almost exclusively to carry the upper-left 3x3 of a
// Mat4 through the inverse-transpose normal transform.
type Mat3 [9]float64

// UpperLeft3x3 extracts the rotation/scale block of a Mat4, discarding the
// translation column and the projective row.
func UpperLeft3x3(m Mat4) Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Determinant returns the determinant of the matrix.
func (m Mat3) Determinant() float64 {
	return m[0]*(m[4]*m[8]-m[7]*m[5]) -
		m[3]*(m[1]*m[8]-m[7]*m[2]) +
		m[6]*(m[1]*m[5]-m[4]*m[2])
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Inverse returns the inverse of the matrix via the adjugate. Result is
// undefined (and left as the zero matrix) when the determinant is zero;
// callers are expected to guarantee invertibility, matching the math
// kernel's documented contract for the inverse-transpose operation.
func (m Mat3) Inverse() Mat3 {
	det := m.Determinant()
	if det == 0 {
		return Mat3{}
	}
	invDet := 1.0 / det

	// Cofactors written row by row into column-major storage, which lays
	// them out as the adjugate directly.
	adj := Mat3{
		m[4]*m[8] - m[7]*m[5], -(m[1]*m[8] - m[7]*m[2]), m[1]*m[5] - m[4]*m[2],
		-(m[3]*m[8] - m[6]*m[5]), m[0]*m[8] - m[6]*m[2], -(m[0]*m[5] - m[3]*m[2]),
		m[3]*m[7] - m[6]*m[4], -(m[0]*m[7] - m[6]*m[1]), m[0]*m[4] - m[3]*m[1],
	}

	for i := range adj {
		adj[i] *= invDet
	}
	return adj
}

// MulVec3 transforms a direction vector by the matrix.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// NormalMatrix computes the inverse-transpose of a Mat4's upper-left 3x3,
// the matrix that correctly transforms surface normals under a non-uniform
// scale (plain rotation/translation matrices are their own normal matrix,
// but this is not assumed here). Returns the zero matrix when the upper-left
// 3x3 is singular; the caller guarantees invertibility.
func NormalMatrix(m Mat4) Mat3 {
	return UpperLeft3x3(m).Inverse().Transpose()
}
