// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package assembly provides scene graphs of rigid parts
// whose spatial queries are implemented in package spatial.
package assembly

import (
	"github.com/gviegas/assembly/bound"
	"github.com/gviegas/assembly/node"
)

// Scene defines a scene graph of parts.
// A Scene must not be used concurrently.
type Scene struct {
	node.Graph
}

// New creates an initialized scene.
func New() *Scene { return new(Scene).Init() }

// Init initializes a scene.
func (s *Scene) Init() *Scene {
	*s = Scene{}
	return s
}

// Insert inserts part p as the last immediate descendant
// of prev. If prev is node.Nil, p becomes a root.
func (s *Scene) Insert(p *Part, prev node.Node) node.Node {
	if p == nil {
		panic("assembly: nil Part")
	}
	return s.Graph.Insert(p, prev)
}

// Remove removes n and its descendants from the scene.
// It returns the part that n identified.
func (s *Scene) Remove(n node.Node) *Part {
	return s.Graph.Remove(n).(*Part)
}

// Part returns the part that n identifies.
func (s *Scene) Part(n node.Node) *Part {
	return s.Graph.Get(n).(*Part)
}

// LocalBounds returns the local bounding box of the mesh
// of n, computing it if necessary.
// ok is false if n has no mesh or if the mesh does not
// produce a valid box.
func (s *Scene) LocalBounds(n node.Node) (b bound.Box, ok bool) {
	p := s.Part(n)
	if p.Mesh == nil {
		return
	}
	return p.Mesh.Bounds()
}

// Find returns the first node in depth-first order whose
// part is named name, or node.Nil if there is none.
func (s *Scene) Find(name string) node.Node {
	found := node.Nil
	s.Until(node.Nil, func(n node.Node) bool {
		if s.Part(n).Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node whose part is named name,
// in depth-first order.
func (s *Scene) FindAll(name string) (ns []node.Node) {
	s.ForEach(node.Nil, func(n node.Node) {
		if s.Part(n).Name == name {
			ns = append(ns, n)
		}
	})
	return
}
