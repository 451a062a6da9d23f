// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package assembly

import (
	"github.com/gviegas/assembly/linear"
	"github.com/gviegas/assembly/mesh"
)

// Part represents a single rigid part of an assembly.
// Its local transform is the composition of a translation,
// a rotation and a scale, applied in reverse order.
// Parts that have no Mesh act as groups.
// The zero value is a part with identity transform.
type Part struct {
	// Name for the part.
	// It need not be unique.
	Name string
	// Mesh is optional.
	Mesh *mesh.Mesh

	t     linear.V3
	r     linear.Q
	s     linear.V3
	local linear.M4
	fixed bool
	stale bool
	init  bool
}

// NewPart creates a part with identity transform.
func NewPart(name string, m *mesh.Mesh) *Part {
	return new(Part).Init(name, m)
}

// Init initializes p.
func (p *Part) Init(name string, m *mesh.Mesh) *Part {
	*p = Part{Name: name, Mesh: m}
	p.identity()
	return p
}

// identity sets the transform of a zero Part.
func (p *Part) identity() {
	if !p.init {
		p.r.I()
		p.s = linear.V3{1, 1, 1}
		p.local.I()
		p.init = true
	}
}

// Translation returns the local translation of p.
func (p *Part) Translation() linear.V3 { return p.t }

// Rotation returns the local rotation of p.
func (p *Part) Rotation() linear.Q {
	p.identity()
	return p.r
}

// Scale returns the local scale of p.
func (p *Part) Scale() linear.V3 {
	p.identity()
	return p.s
}

// SetTranslation sets the local translation of p.
func (p *Part) SetTranslation(t linear.V3) {
	p.identity()
	p.t = t
	p.fixed = false
	p.stale = true
}

// SetRotation sets the local rotation of p.
// r must be a unit quaternion.
func (p *Part) SetRotation(r linear.Q) {
	p.identity()
	p.r = r
	p.fixed = false
	p.stale = true
}

// SetScale sets the local scale of p.
func (p *Part) SetScale(s linear.V3) {
	p.identity()
	p.s = s
	p.fixed = false
	p.stale = true
}

// SetMatrix replaces the local transform of p with m.
// The translation, rotation and scale of p are ignored
// until one of them is set again.
func (p *Part) SetMatrix(m *linear.M4) {
	p.identity()
	p.local = *m
	p.fixed = true
	p.stale = false
}

// Local implements node.Interface.
func (p *Part) Local() *linear.M4 {
	p.identity()
	if p.stale && !p.fixed {
		p.local.TRS(&p.t, &p.r, &p.s)
		p.stale = false
	}
	return &p.local
}
