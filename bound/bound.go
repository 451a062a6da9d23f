// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package bound implements axis-aligned bounding boxes.
package bound

import (
	"math"

	"github.com/gviegas/assembly/linear"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Min linear.V3
	Max linear.V3
}

var (
	inf  = float32(math.Inf(1))
	ninf = float32(math.Inf(-1))
)

// Empty returns the empty box.
// It is the identity element of Box.Union.
func Empty() Box {
	return Box{
		Min: linear.V3{inf, inf, inf},
		Max: linear.V3{ninf, ninf, ninf},
	}
}

// Cube returns a box of the given side length centered
// at c.
// Far from the origin, where half of side is below the
// float32 spacing, each axis is widened to the adjacent
// representable values so the box keeps positive extent.
func Cube(c linear.V3, side float32) Box {
	h := side / 2
	b := Box{
		Min: linear.V3{c[0] - h, c[1] - h, c[2] - h},
		Max: linear.V3{c[0] + h, c[1] + h, c[2] + h},
	}
	if side > 0 {
		for i := range b.Min {
			if b.Max[i] <= b.Min[i] {
				b.Min[i] = math.Nextafter32(c[i], ninf)
				b.Max[i] = math.Nextafter32(c[i], inf)
			}
		}
	}
	return b
}

// IsEmpty reports whether b contains no points.
func (b *Box) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// Valid reports whether b is finite and has positive
// extent along every axis.
func (b *Box) Valid() bool {
	for i := range b.Min {
		if !finite(b.Min[i]) || !finite(b.Max[i]) || b.Max[i] <= b.Min[i] {
			return false
		}
	}
	return true
}

func finite(x float32) bool { return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0) }

// Extend grows b to contain p.
func (b *Box) Extend(p *linear.V3) {
	b.Min.Min(&b.Min, p)
	b.Max.Max(&b.Max, p)
}

// Union sets b to contain the smallest box enclosing
// both l and r.
func (b *Box) Union(l, r *Box) {
	b.Min.Min(&l.Min, &r.Min)
	b.Max.Max(&l.Max, &r.Max)
}

// Contains reports whether c is entirely inside b.
// The empty box is contained by every box.
func (b *Box) Contains(c *Box) bool {
	if c.IsEmpty() {
		return true
	}
	for i := range b.Min {
		if c.Min[i] < b.Min[i] || c.Max[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Center returns the center of b.
func (b *Box) Center() linear.V3 {
	var c linear.V3
	c.Add(&b.Min, &b.Max)
	c.Scale(0.5, &c)
	return c
}

// Size returns the extent of b along each axis.
func (b *Box) Size() linear.V3 {
	var s linear.V3
	s.Sub(&b.Max, &b.Min)
	return s
}

// Transform sets b to contain the smallest axis-aligned
// box that encloses c transformed by the affine matrix m.
// Rotations produce a box larger than c.
// If c is empty, b is set to the empty box.
func (b *Box) Transform(m *linear.M4, c *Box) {
	if c.IsEmpty() {
		*b = Empty()
		return
	}
	// Each output axis is the translation plus, for every
	// input axis, the smaller/larger of the two scaled
	// extremes. This is equivalent to transforming all
	// eight corners.
	var r linear.M3
	r.Upper(m)
	lo := linear.V3{m[3][0], m[3][1], m[3][2]}
	hi := lo
	for i := range r {
		for j := range lo {
			e := r[i][j] * c.Min[i]
			f := r[i][j] * c.Max[i]
			if e > f {
				e, f = f, e
			}
			lo[j] += e
			hi[j] += f
		}
	}
	b.Min = lo
	b.Max = hi
}
