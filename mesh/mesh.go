// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package mesh implements the geometry data attached to
// scene nodes.
package mesh

import (
	"errors"

	"github.com/gviegas/assembly/bound"
	"github.com/gviegas/assembly/linear"
)

const prefix = "mesh: "

// Topology is the type of primitive topologies.
type Topology int

// Topologies.
const (
	TPoint Topology = iota
	TLine
	TLnStrip
	TTriangle
	TTriStrip
)

// PrimitiveData describes a mesh's primitive.
// Indices is optional; if set, only the vertices it
// references are considered part of the primitive.
type PrimitiveData struct {
	Topology  Topology
	Positions []linear.V3
	Indices   []uint32
}

// Data defines the data of a whole mesh.
type Data struct {
	Primitives []PrimitiveData
}

type primitive struct {
	topo Topology
	pos  []linear.V3
	idx  []uint32
}

// Mesh is a collection of primitives.
// It caches its local bounding box once computed.
// Editing the positions of a mesh requires a call to
// Invalidate.
type Mesh struct {
	prims  []primitive
	box    bound.Box
	cached bool
}

// New creates a new mesh.
// The position and index data are copied.
func New(data *Data) (m *Mesh, err error) {
	var reason string
	switch {
	case data == nil:
		reason = "nil data"
	case len(data.Primitives) == 0:
		reason = "no primitive data"
	default:
		goto validData
	}
	err = errors.New(prefix + reason)
	return
validData:
	prims := make([]primitive, len(data.Primitives))
	for i := range data.Primitives {
		if prims[i], err = newPrimitive(&data.Primitives[i]); err != nil {
			return
		}
	}
	m = &Mesh{prims: prims}
	return
}

// newPrimitive validates and copies pdata.
func newPrimitive(pdata *PrimitiveData) (p primitive, err error) {
	var reason string
	cnt := len(pdata.Positions)
	if len(pdata.Indices) > 0 {
		cnt = len(pdata.Indices)
	}
	switch pdata.Topology {
	case TPoint:
	case TLine:
		if cnt&1 != 0 {
			reason = "invalid count for TLine"
		}
	case TLnStrip:
		if cnt < 2 {
			reason = "invalid count for TLnStrip"
		}
	case TTriangle:
		if cnt%3 != 0 {
			reason = "invalid count for TTriangle"
		}
	case TTriStrip:
		if cnt < 3 {
			reason = "invalid count for TTriStrip"
		}
	default:
		reason = "undefined Topology constant"
	}
	if reason == "" {
		for _, x := range pdata.Indices {
			if int64(x) >= int64(len(pdata.Positions)) {
				reason = "index out of bounds"
				break
			}
		}
	}
	if reason != "" {
		err = errors.New(prefix + reason)
		return
	}
	p = primitive{
		topo: pdata.Topology,
		pos:  append([]linear.V3(nil), pdata.Positions...),
		idx:  append([]uint32(nil), pdata.Indices...),
	}
	return
}

// Len returns the number of primitives in m.
func (m *Mesh) Len() int { return len(m.prims) }

// Bounds returns the local bounding box of m, computing
// and caching it if necessary.
// ok is false if the geometry does not produce a valid
// box (e.g., no vertices or a flat/degenerate extent).
func (m *Mesh) Bounds() (b bound.Box, ok bool) {
	if !m.cached {
		m.box = m.compute()
		m.cached = true
	}
	return m.box, m.box.Valid()
}

func (m *Mesh) compute() bound.Box {
	b := bound.Empty()
	for i := range m.prims {
		p := &m.prims[i]
		if len(p.idx) == 0 {
			for j := range p.pos {
				b.Extend(&p.pos[j])
			}
			continue
		}
		for _, x := range p.idx {
			b.Extend(&p.pos[x])
		}
	}
	return b
}

// Cached reports whether m holds a local bounding box.
func (m *Mesh) Cached() bool { return m.cached }

// SetBounds sets the cached local bounding box of m,
// replacing any computed value.
func (m *Mesh) SetBounds(b bound.Box) {
	m.box = b
	m.cached = true
}

// Invalidate discards the cached bounding box.
func (m *Mesh) Invalidate() {
	m.box = bound.Box{}
	m.cached = false
}

// Clone returns a copy of m that shares no memory
// with it.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		prims:  make([]primitive, len(m.prims)),
		box:    m.box,
		cached: m.cached,
	}
	for i, p := range m.prims {
		c.prims[i] = primitive{
			topo: p.topo,
			pos:  append([]linear.V3(nil), p.pos...),
			idx:  append([]uint32(nil), p.idx...),
		}
	}
	return c
}

// Free invalidates m and releases its data.
func (m *Mesh) Free() {
	*m = Mesh{}
}
