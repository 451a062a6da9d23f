// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestV(t *testing.T) {
	var u V3
	v := V3{1, 2, 4}
	w := V3{0, -1, 2}

	if u.Add(&v, &w); u != (V3{1, 1, 6}) {
		t.Fatalf("V3.Add\nhave %v\nwant [1 1 6]", u)
	}
	if u.Sub(&v, &w); u != (V3{1, 3, 2}) {
		t.Fatalf("V3.Sub\nhave %v\nwant [1 3 2]", u)
	}
	if u.Scale(-1, &v); u != (V3{-1, -2, -4}) {
		t.Fatalf("V3.Scale\nhave %v\nwant [-1 -2 -4]", u)
	}
	if u.Scale(2, &w); u != (V3{0, -2, 4}) {
		t.Fatalf("V3.Scale\nhave %v\nwant [0 -2 4]", u)
	}
	if d := v.Dot(&w); d != 6 {
		t.Fatalf("V3.Dot\nhave %v\nwant 6\n", d)
	}
	if d := v.Dot(&v); d != 21 {
		t.Fatalf("V3.Dot\nhave %v\nwant 21\n", d)
	}
	if l := v.Len(); l != float32(math.Sqrt(21)) {
		t.Fatalf("V3.Len\nhave %v\nwant %v\n", l, math.Sqrt(21))
	}
	if l := w.Len(); l != float32(math.Sqrt(5)) {
		t.Fatalf("V3.Len\nhave %v\nwant %v\n", l, math.Sqrt(5))
	}

	v = V3{0, 0, -2}
	w = V3{0, 4, 0}

	if v.Norm(&v); v != (V3{0, 0, -1}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 0 -1]", v)
	}
	if w.Norm(&w); w != (V3{0, 1, 0}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 1 0]", w)
	}
	if u.Cross(&v, &w); u != (V3{1, 0, 0}) {
		t.Fatalf("V3.Cross\nhave %v\nwant [1 0 0]", u)
	}
	if u.Cross(&w, &v); u != (V3{-1, 0, 0}) {
		t.Fatalf("V3.Cross\nhave %v\nwant [-1 0 0]", u)
	}

	m := M3{
		{2, 0, 1},
		{1, 3, 2},
		{4, 2, 3},
	}
	v = V3{-1, 0, 1}

	if u.Mul(&m, &v); u != (V3{2, 2, 2}) {
		t.Fatalf("V3.Mul\nhave %v\nwant [2 2 2]", u)
	}
	m.I()
	if u.Mul(&m, &v); u != v {
		t.Fatalf("V3.Mul\nhave %v\nwant %v", u, v)
	}
}

func TestM(t *testing.T) {
	var l M3
	m := M3{
		{1, 4, 7},
		{2, 5, 8},
		{3, 6, 9},
	}
	n := M3{
		{0, 1, 0},
		{0, 0, 1},
		{1, 0, 0},
	}

	if l.I(); l != (M3{{1}, {0, 1}, {0, 0, 1}}) {
		t.Fatalf("M3.I\nhave %v\nwant [%v %v %v]", l, V3{1}, V3{0, 1}, V3{0, 0, 1})
	}
	if l.Mul(&m, &n); l != (M3{m[1], m[2], m[0]}) {
		t.Fatalf("M3.Mul\nhave %v\nwant [%v %v %v]", l, m[1], m[2], m[0])
	}
	if l.Mul(&n, &m); l != (M3{{7, 1, 4}, {8, 2, 5}, {9, 3, 6}}) {
		t.Fatalf("M3.Mul\nhave %v\nwant %v", l, M3{{7, 1, 4}, {8, 2, 5}, {9, 3, 6}})
	}
	if l.Transpose(&m); l != (M3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}) {
		t.Fatalf("M3.Transpose\nhave %v\nwant %v", l, M3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	}
	if l.Invert(&n); l != (M3{n[1], n[2], n[0]}) {
		t.Fatalf("M3.Invert\nhave %v\nwant %v", l, M3{n[1], n[2], n[0]})
	}
}

func TestQ(t *testing.T) {
	var r Q
	q := Q{V: V3{1, 0, 0}, R: 3}
	p := Q{V: V3{0, 1, 0}, R: 3}

	if r.Mul(&q, &p); r.V != (V3{3, 3, 1}) || r.R != 9 {
		t.Fatalf("Q.Mul\nhave %v\nwant {[3 3 1] 9}", r)
	}
	if r.Mul(&p, &q); r.V != (V3{3, 3, -1}) || r.R != 9 {
		t.Fatalf("Q.Mul\nhave %v\nwant {[3 3 -1] 9}", r)
	}
	if q.Mul(&q, &q); q.V != (V3{6}) || q.R != 8 {
		t.Fatalf("Q.Mul\nhave %v\nwant {[6 0 0] 8}", q)
	}
}

func TestTRS(t *testing.T) {
	var x, r, s M4
	var q Q

	x.Translate(-1, -2, -3)
	q.Rotate(0, &V3{1})
	r.RotateQ(&q)
	s.Scale(5, 5, 5)
	x.Mul(&x, &r)
	x.Mul(&x, &s)
	if x != (M4{{5}, {1: 5}, {2: 5}, {-1, -2, -3, 1}}) {
		t.Fatalf("T*R*S\nhave %v\nwant %v", x, M4{{5}, {1: 5}, {2: 5}, {-1, -2, -3, 1}})
	}
	v := V4{1, 1, 1, 1}
	v.Mul(&x, &v)
	if v != (V4{4, 3, 2, 1}) {
		t.Fatalf("TRS*v\nhave %v\nwant %v", v, V4{4, 3, 2, 1})
	}
}

func TestMinMax(t *testing.T) {
	var u V3
	v := V3{-1, 5, 2}
	w := V3{3, -4, 2}

	if u.Min(&v, &w); u != (V3{-1, -4, 2}) {
		t.Fatalf("V3.Min\nhave %v\nwant [-1 -4 2]", u)
	}
	if u.Max(&v, &w); u != (V3{3, 5, 2}) {
		t.Fatalf("V3.Max\nhave %v\nwant [3 5 2]", u)
	}
	if u.Hadamard(&v, &w); u != (V3{-3, -20, 4}) {
		t.Fatalf("V3.Hadamard\nhave %v\nwant [-3 -20 4]", u)
	}
}

// near reports whether every element of a and b differs
// by at most eps.
func near(a, b []float32, eps float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if d := a[i] - b[i]; d > eps || d < -eps {
			return false
		}
	}
	return true
}

func flat(m *M4) []float32 {
	s := make([]float32, 0, 16)
	for i := range m {
		s = append(s, m[i][:]...)
	}
	return s
}

func TestInvertM4(t *testing.T) {
	var q Q
	axis := V3{0, 0.6, 0.8}
	q.Rotate(1.2, &axis)

	var m, n, p M4
	m.TRS(&V3{3, -2, 7}, &q, &V3{2, 0.5, 4})
	n.Invert(&m)

	var gl mgl32.Mat4
	copy(gl[:], flat(&m))
	ref := gl.Inv()
	if !near(flat(&n), ref[:], 1e-4) {
		t.Fatalf("M4.Invert\nhave %v\nwant %v", n, ref)
	}

	var id M4
	id.I()
	if p.Mul(&m, &n); !near(flat(&p), flat(&id), 1e-4) {
		t.Fatalf("M4.Mul(m, inv(m))\nhave %v\nwant %v", p, id)
	}

	// Aliasing must not corrupt the result.
	p = m
	if p.Invert(&p); !near(flat(&p), flat(&n), 1e-6) {
		t.Fatalf("M4.Invert (aliased)\nhave %v\nwant %v", p, n)
	}
}

func TestRotateQ(t *testing.T) {
	for _, x := range [...]struct {
		angle float32
		axis  V3
	}{
		{0, V3{1}},
		{math.Pi / 2, V3{0, 1}},
		{-math.Pi / 3, V3{0, 0, 1}},
		{2.5, V3{0.48, 0.6, 0.64}},
	} {
		var q Q
		var m M4
		q.Rotate(x.angle, &x.axis)
		m.RotateQ(&q)
		ref := mgl32.QuatRotate(x.angle, mgl32.Vec3(x.axis)).Mat4()
		if !near(flat(&m), ref[:], 1e-5) {
			t.Fatalf("M4.RotateQ(%v, %v)\nhave %v\nwant %v", x.angle, x.axis, m, ref)
		}
	}
}

func TestPoint(t *testing.T) {
	var q Q
	var m M4
	q.Rotate(math.Pi/2, &V3{0, 0, 1})
	m.TRS(&V3{10}, &q, &V3{2, 2, 2})

	var p V3
	p.Point(&m, &V3{1})
	if !near(p[:], []float32{10, 2, 0}, 1e-5) {
		t.Fatalf("V3.Point\nhave %v\nwant [10 2 0]", p)
	}

	var inv M4
	inv.Invert(&m)
	p.Point(&inv, &p)
	if !near(p[:], []float32{1, 0, 0}, 1e-5) {
		t.Fatalf("V3.Point (inverse)\nhave %v\nwant [1 0 0]", p)
	}
}

func TestQNorm(t *testing.T) {
	q := Q{V: V3{0, 3, 0}, R: 4}
	if q.Norm(&q); !near([]float32{q.V[0], q.V[1], q.V[2], q.R}, []float32{0, 0.6, 0, 0.8}, 1e-6) {
		t.Fatalf("Q.Norm\nhave %v\nwant {[0 0.6 0] 0.8}", q)
	}
	var i Q
	if i.I(); i != (Q{R: 1}) {
		t.Fatalf("Q.I\nhave %v\nwant {[0 0 0] 1}", i)
	}
}
