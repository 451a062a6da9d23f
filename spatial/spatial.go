// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package spatial implements world-space measurements and
// frame conversions over a scene graph.
//
// Every query recomputes the world transforms it depends on,
// so callers need not refresh the graph beforehand. Queries
// never fail: subtrees without usable geometry produce a
// small fallback box centered on the node's world position.
package spatial

import (
	"github.com/gviegas/assembly/bound"
	"github.com/gviegas/assembly/linear"
	"github.com/gviegas/assembly/node"
)

// FallbackSize is the side length of the box that Bounds
// produces for subtrees that contain no valid geometry.
const FallbackSize = 0.01

// Graph is the scene graph that queries read from.
// *assembly.Scene implements it.
type Graph interface {
	// Parent returns the immediate ancestor of n,
	// or node.Nil if n is a root.
	Parent(n node.Node) node.Node

	// ForEach calls f for each descendant of n,
	// depth-first.
	ForEach(n node.Node, f func(node.Node))

	// World recomputes and returns the world transform
	// of n. node.Nil refers to the global frame.
	World(n node.Node) *linear.M4

	// LocalBounds returns the local bounding box of the
	// geometry attached to n. It may compute and cache
	// the box. ok is false if n has no usable geometry.
	LocalBounds(n node.Node) (b bound.Box, ok bool)
}

// Query performs spatial queries on a Graph.
// It holds no state other than the graph.
type Query struct {
	g Graph
}

// New creates a Query for g.
func New(g Graph) *Query { return &Query{g} }

// Bounds computes the world-space bounding box of n and all
// of its descendants.
// The result always has positive extent along every axis.
// If no node in the subtree contributes a valid box, the
// result is a cube of side FallbackSize centered at the world
// position of n. Such a box does not describe real geometry.
// If n is node.Nil, the whole graph is considered.
func (q *Query) Bounds(n node.Node) bound.Box {
	acc := bound.Empty()
	q.add(&acc, n)
	q.g.ForEach(n, func(x node.Node) { q.add(&acc, x) })
	if acc.IsEmpty() {
		return bound.Cube(q.WorldPosition(n), FallbackSize)
	}
	return acc
}

// add unions the world box of n's geometry into acc.
func (q *Query) add(acc *bound.Box, n node.Node) {
	if n == node.Nil {
		return
	}
	local, ok := q.g.LocalBounds(n)
	if !ok {
		return
	}
	var b bound.Box
	b.Transform(q.g.World(n), &local)
	if !b.Valid() {
		return
	}
	acc.Union(acc, &b)
}

// WorldPosition returns the origin of n's local frame
// in world space.
func (q *Query) WorldPosition(n node.Node) linear.V3 {
	w := q.g.World(n)
	return linear.V3{w[3][0], w[3][1], w[3][2]}
}

// WorldToLocal converts a point p from world space to the
// local space of frame.
// The world transform of frame must be invertible
// (i.e., no zero scale along any axis); otherwise the
// result is undefined.
func (q *Query) WorldToLocal(p linear.V3, frame node.Node) linear.V3 {
	var inv linear.M4
	inv.Invert(q.g.World(frame))
	p.Point(&inv, &p)
	return p
}

// LocalToWorld converts a point p from the local space of
// frame to world space.
func (q *Query) LocalToWorld(p linear.V3, frame node.Node) linear.V3 {
	p.Point(q.g.World(frame), &p)
	return p
}

// Center returns the center of n's world bounding box.
func (q *Query) Center(n node.Node) linear.V3 {
	b := q.Bounds(n)
	return b.Center()
}

// Size returns the extent of n's world bounding box along
// each axis.
func (q *Query) Size(n node.Node) linear.V3 {
	b := q.Bounds(n)
	return b.Size()
}

// Distance returns the distance between the centers of the
// world bounding boxes of a and b.
func (q *Query) Distance(a, b node.Node) float32 {
	ca := q.Center(a)
	cb := q.Center(b)
	ca.Sub(&ca, &cb)
	return ca.Len()
}

// LocalOffset returns the center of dst's world bounding box
// expressed in the local space of src's parent.
// This is the position that src would need to have, in its
// own parent frame, to sit at dst's center.
// If src is a root, the world-space center is returned.
func (q *Query) LocalOffset(src, dst node.Node) linear.V3 {
	c := q.Center(dst)
	prev := node.Nil
	if src != node.Nil {
		prev = q.g.Parent(src)
	}
	if prev == node.Nil {
		return c
	}
	return q.WorldToLocal(c, prev)
}

// Extreme returns the point on the surface of n's world
// bounding box in the given direction, computed as
//
//	center + 0.5 ⋅ size ⊙ normalize(dir)
//
// This is an approximation that is exact only for directions
// along the principal axes; it is not the support point of
// the actual geometry.
// dir must not be the zero vector.
func (q *Query) Extreme(n node.Node, dir linear.V3) linear.V3 {
	b := q.Bounds(n)
	c := b.Center()
	s := b.Size()
	dir.Norm(&dir)
	s.Hadamard(&s, &dir)
	s.Scale(0.5, &s)
	c.Add(&c, &s)
	return c
}
