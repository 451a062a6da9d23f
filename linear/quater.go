// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
)

// Q is a quaternion of float32.
type Q struct {
	V V3
	R float32
}

// I makes q an identity quaternion.
func (q *Q) I() { *q = Q{R: 1} }

// Mul sets q to contain l ⋅ r.
func (q *Q) Mul(l, r *Q) {
	var v, w V3
	v.Scale(r.R, &l.V)
	w.Scale(l.R, &r.V)
	v.Add(&v, &w)
	w.Cross(&l.V, &r.V)
	d := l.V.Dot(&r.V)
	q.R = l.R*r.R - d
	q.V.Add(&v, &w)
}

// Rotate sets q to contain a rotation of angle radians
// about axis.
// axis must be a unit vector.
func (q *Q) Rotate(angle float32, axis *V3) {
	s, c := math.Sincos(float64(angle) * 0.5)
	q.V.Scale(float32(s), axis)
	q.R = float32(c)
}

// Norm sets q to contain p normalized.
func (q *Q) Norm(p *Q) {
	d := p.V.Dot(&p.V) + p.R*p.R
	s := 1 / float32(math.Sqrt(float64(d)))
	q.V.Scale(s, &p.V)
	q.R = s * p.R
}
