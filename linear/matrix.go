// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

// M3 is a column-major 3x3 matrix of float32.
type M3 [3]V3

// I makes m an identity matrix.
func (m *M3) I() { *m = M3{{1}, {0, 1}, {0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M3) Mul(l, r *M3) {
	var p M3
	for i := range p {
		for j := range p {
			for k := range p {
				p[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = p
}

// Transpose sets m to contain the transpose of n.
func (m *M3) Transpose(n *M3) {
	for i := range m {
		m[i][i] = n[i][i]
		for j := i + 1; j < len(m); j++ {
			m[i][j], m[j][i] = n[j][i], n[i][j]
		}
	}
}

// Invert sets m to contain the inverse of n.
// n must be invertible.
func (m *M3) Invert(n *M3) {
	c := *n
	s0 := c[1][1]*c[2][2] - c[1][2]*c[2][1]
	s1 := c[1][0]*c[2][2] - c[1][2]*c[2][0]
	s2 := c[1][0]*c[2][1] - c[1][1]*c[2][0]
	idet := 1 / (c[0][0]*s0 - c[0][1]*s1 + c[0][2]*s2)
	m[0][0] = s0 * idet
	m[0][1] = -(c[0][1]*c[2][2] - c[0][2]*c[2][1]) * idet
	m[0][2] = (c[0][1]*c[1][2] - c[0][2]*c[1][1]) * idet
	m[1][0] = -s1 * idet
	m[1][1] = (c[0][0]*c[2][2] - c[0][2]*c[2][0]) * idet
	m[1][2] = -(c[0][0]*c[1][2] - c[0][2]*c[1][0]) * idet
	m[2][0] = s2 * idet
	m[2][1] = -(c[0][0]*c[2][1] - c[0][1]*c[2][0]) * idet
	m[2][2] = (c[0][0]*c[1][1] - c[0][1]*c[1][0]) * idet
}

// Upper sets m to contain the upper-left 3x3 block of n.
func (m *M3) Upper(n *M4) {
	for i := range m {
		m[i] = V3{n[i][0], n[i][1], n[i][2]}
	}
}

// M4 is a column-major 4x4 matrix of float32.
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M4) Mul(l, r *M4) {
	var p M4
	for i := range p {
		for j := range p {
			for k := range p {
				p[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = p
}

// Transpose sets m to contain the transpose of n.
func (m *M4) Transpose(n *M4) {
	for i := range m {
		m[i][i] = n[i][i]
		for j := i + 1; j < len(m); j++ {
			m[i][j], m[j][i] = n[j][i], n[i][j]
		}
	}
}

// Invert sets m to contain the inverse of n.
// n must be invertible. If it is not, m will contain
// non-finite values.
func (m *M4) Invert(n *M4) {
	c := *n
	s0 := c[0][0]*c[1][1] - c[0][1]*c[1][0]
	s1 := c[0][0]*c[1][2] - c[0][2]*c[1][0]
	s2 := c[0][0]*c[1][3] - c[0][3]*c[1][0]
	s3 := c[0][1]*c[1][2] - c[0][2]*c[1][1]
	s4 := c[0][1]*c[1][3] - c[0][3]*c[1][1]
	s5 := c[0][2]*c[1][3] - c[0][3]*c[1][2]
	c0 := c[2][0]*c[3][1] - c[2][1]*c[3][0]
	c1 := c[2][0]*c[3][2] - c[2][2]*c[3][0]
	c2 := c[2][0]*c[3][3] - c[2][3]*c[3][0]
	c3 := c[2][1]*c[3][2] - c[2][2]*c[3][1]
	c4 := c[2][1]*c[3][3] - c[2][3]*c[3][1]
	c5 := c[2][2]*c[3][3] - c[2][3]*c[3][2]
	idet := 1 / (s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0)
	m[0][0] = (c5*c[1][1] - c4*c[1][2] + c3*c[1][3]) * idet
	m[0][1] = (-c5*c[0][1] + c4*c[0][2] - c3*c[0][3]) * idet
	m[0][2] = (s5*c[3][1] - s4*c[3][2] + s3*c[3][3]) * idet
	m[0][3] = (-s5*c[2][1] + s4*c[2][2] - s3*c[2][3]) * idet
	m[1][0] = (-c5*c[1][0] + c2*c[1][2] - c1*c[1][3]) * idet
	m[1][1] = (c5*c[0][0] - c2*c[0][2] + c1*c[0][3]) * idet
	m[1][2] = (-s5*c[3][0] + s2*c[3][2] - s1*c[3][3]) * idet
	m[1][3] = (s5*c[2][0] - s2*c[2][2] + s1*c[2][3]) * idet
	m[2][0] = (c4*c[1][0] - c2*c[1][1] + c0*c[1][3]) * idet
	m[2][1] = (-c4*c[0][0] + c2*c[0][1] - c0*c[0][3]) * idet
	m[2][2] = (s4*c[3][0] - s2*c[3][1] + s0*c[3][3]) * idet
	m[2][3] = (-s4*c[2][0] + s2*c[2][1] - s0*c[2][3]) * idet
	m[3][0] = (-c3*c[1][0] + c1*c[1][1] - c0*c[1][2]) * idet
	m[3][1] = (c3*c[0][0] - c1*c[0][1] + c0*c[0][2]) * idet
	m[3][2] = (-s3*c[3][0] + s1*c[3][1] - s0*c[3][2]) * idet
	m[3][3] = (s3*c[2][0] - s1*c[2][1] + s0*c[2][2]) * idet
}

// Translate sets m to contain a translation matrix.
func (m *M4) Translate(x, y, z float32) {
	*m = M4{{1}, {0, 1}, {0, 0, 1}, {x, y, z, 1}}
}

// Scale sets m to contain a scale matrix.
func (m *M4) Scale(x, y, z float32) {
	*m = M4{{x}, {1: y}, {2: z}, {3: 1}}
}

// RotateQ sets m to contain the rotation described by
// the unit quaternion q.
func (m *M4) RotateQ(q *Q) {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.R
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	*m = M4{
		{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0},
		{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0},
		{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0},
		{0, 0, 0, 1},
	}
}

// TRS sets m to contain the composition T ⋅ R ⋅ S of a
// translation t, a rotation r and a scale s.
func (m *M4) TRS(t *V3, r *Q, s *V3) {
	m.RotateQ(r)
	for i := range s {
		for j := 0; j < 3; j++ {
			m[i][j] *= s[i]
		}
	}
	m[3] = V4{t[0], t[1], t[2], 1}
}
