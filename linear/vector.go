// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package linear implements math for 3D graphics.
package linear

import (
	"math"
)

// V3 is a 3-component vector of float32.
type V3 [3]float32

// Add sets v to contain l + r.
func (v *V3) Add(l, r *V3) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V3) Sub(l, r *V3) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s ⋅ w.
func (v *V3) Scale(s float32, w *V3) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Hadamard sets v to contain the component-wise
// product of l and r.
func (v *V3) Hadamard(l, r *V3) {
	for i := range v {
		v[i] = l[i] * r[i]
	}
}

// Min sets v to contain the component-wise minimum
// of l and r.
func (v *V3) Min(l, r *V3) {
	for i := range v {
		v[i] = min32(l[i], r[i])
	}
}

// Max sets v to contain the component-wise maximum
// of l and r.
func (v *V3) Max(l, r *V3) {
	for i := range v {
		v[i] = max32(l[i], r[i])
	}
}

// Dot returns v ⋅ w.
func (v *V3) Dot(w *V3) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// Len returns the length of v.
func (v *V3) Len() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Norm sets v to contain w normalized.
// The result is undefined if w has zero length.
func (v *V3) Norm(w *V3) {
	v.Scale(1/w.Len(), w)
}

// Cross sets v to contain l × r.
func (v *V3) Cross(l, r *V3) {
	x := l[1]*r[2] - l[2]*r[1]
	y := l[2]*r[0] - l[0]*r[2]
	z := l[0]*r[1] - l[1]*r[0]
	*v = V3{x, y, z}
}

// Mul sets v to contain m ⋅ w.
func (v *V3) Mul(m *M3, w *V3) {
	var u V3
	for i := range m {
		for j := range u {
			u[j] += m[i][j] * w[i]
		}
	}
	*v = u
}

// V4 is a 4-component vector of float32.
type V4 [4]float32

// Mul sets v to contain m ⋅ w.
func (v *V4) Mul(m *M4, w *V4) {
	var u V4
	for i := range m {
		for j := range u {
			u[j] += m[i][j] * w[i]
		}
	}
	*v = u
}

// Point sets v to contain the point p transformed by
// the affine matrix m (i.e., m ⋅ [p 1], truncated).
func (v *V3) Point(m *M4, p *V3) {
	w := V4{p[0], p[1], p[2], 1}
	w.Mul(m, &w)
	*v = V3{w[0], w[1], w[2]}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
