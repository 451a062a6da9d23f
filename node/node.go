// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package node implements the scene's graph.
package node

import (
	"github.com/gviegas/assembly/internal/bitm"
	"github.com/gviegas/assembly/linear"
)

const prefix = "node: "

// Interface of a node.
type Interface interface {
	// Local returns the local transform of the node.
	// It must not return nil.
	Local() *linear.M4
}

// Node identifies a node in a Graph.
type Node int

// Nil represents an invalid Node.
// In calls that expect an ancestor, it refers to the
// graph itself (i.e., the global frame).
const Nil Node = 0

type node struct {
	parent Node
	next   Node
	prev   Node
	sub    Node
	data   int
}

type data struct {
	local Interface
	world linear.M4
	node  Node
}

// Graph is a node graph.
// Immediate descendants of a node are kept in insertion
// order. The parent of a node is a non-owning reference;
// removing a node removes its descendants as well.
//
// The zero value is an empty graph ready for use.
// A Graph must not be used concurrently.
type Graph struct {
	sub     Node
	world   linear.M4
	init    bool
	nodes   []node
	nodeMap bitm.Bitm[uint32]
	data    []data
}

// global returns the global world transform, which is
// the identity unless set by SetWorld.
func (g *Graph) global() *linear.M4 {
	if !g.init {
		g.world.I()
		g.init = true
	}
	return &g.world
}

// Valid reports whether n identifies a node in g.
func (g *Graph) Valid(n Node) bool { return n > Nil && g.nodeMap.IsSet(int(n)-1) }

func (g *Graph) check(n Node) {
	if !g.Valid(n) {
		panic(prefix + "invalid Node")
	}
}

// Len returns the number of nodes in g.
func (g *Graph) Len() int { return g.nodeMap.Len() }

// Insert inserts a new node as the last immediate
// descendant of prev.
// If prev is Nil, the new node becomes a root.
func (g *Graph) Insert(node Interface, prev Node) Node {
	if node == nil {
		panic(prefix + "nil Interface")
	}
	if prev != Nil {
		g.check(prev)
	}
	idx, ok := g.nodeMap.Search()
	if !ok {
		idx = g.nodeMap.Grow(1)
	}
	g.nodeMap.Set(idx)
	for len(g.nodes) <= idx {
		g.nodes = append(g.nodes, nodeZero)
	}
	n := Node(idx + 1)
	g.data = append(g.data, data{local: node, node: n})
	g.data[len(g.data)-1].world.I()
	g.nodes[idx] = nodeZero
	g.nodes[idx].parent = prev
	g.nodes[idx].data = len(g.data) - 1
	g.link(n, prev)
	return n
}

var nodeZero node

func (g *Graph) at(n Node) *node { return &g.nodes[n-1] }

// link appends n to the list of immediate descendants
// of prev.
func (g *Graph) link(n, prev Node) {
	first := &g.sub
	if prev != Nil {
		first = &g.at(prev).sub
	}
	if *first == Nil {
		*first = n
		return
	}
	last := *first
	for g.at(last).next != Nil {
		last = g.at(last).next
	}
	g.at(last).next = n
	g.at(n).prev = last
}

// unlink removes n from the list of immediate
// descendants of its parent.
func (g *Graph) unlink(n Node) {
	nd := g.at(n)
	if nd.prev != Nil {
		g.at(nd.prev).next = nd.next
	} else if nd.parent != Nil {
		g.at(nd.parent).sub = nd.next
	} else {
		g.sub = nd.next
	}
	if nd.next != Nil {
		g.at(nd.next).prev = nd.prev
	}
	nd.next = Nil
	nd.prev = Nil
	nd.parent = Nil
}

// Remove removes a node and all of its descendants.
// It returns the Interface of the removed node.
func (g *Graph) Remove(node Node) Interface {
	g.check(node)
	local := g.data[g.at(node).data].local
	g.unlink(node)
	que := []Node{node}
	for len(que) > 0 {
		n := que[len(que)-1]
		que = que[:len(que)-1]
		for x := g.at(n).sub; x != Nil; x = g.at(x).next {
			que = append(que, x)
		}
		g.free(n)
	}
	return local
}

// free releases the slot and data of n.
func (g *Graph) free(n Node) {
	i := g.at(n).data
	last := len(g.data) - 1
	if i != last {
		g.data[i] = g.data[last]
		g.at(g.data[i].node).data = i
	}
	g.data[last] = data{}
	g.data = g.data[:last]
	*g.at(n) = nodeZero
	g.nodeMap.Unset(int(n) - 1)
}

// Get returns the Interface of node.
func (g *Graph) Get(node Node) Interface {
	g.check(node)
	return g.data[g.at(node).data].local
}

// Parent returns the immediate ancestor of node,
// or Nil if node is a root.
func (g *Graph) Parent(node Node) Node {
	g.check(node)
	return g.at(node).parent
}

// Sub returns the first immediate descendant of node,
// or Nil if it has none.
// If node is Nil, it returns the first root.
func (g *Graph) Sub(node Node) Node {
	if node == Nil {
		return g.sub
	}
	g.check(node)
	return g.at(node).sub
}

// Next returns the next sibling of node, or Nil if
// node is the last immediate descendant of its parent.
func (g *Graph) Next(node Node) Node {
	g.check(node)
	return g.at(node).next
}

// ForEach calls f for each descendant of node, depth-first.
// Ancestors are processed before their descendants.
// If node is Nil, it iterates over every node in g.
// The graph must not be changed until this method returns.
func (g *Graph) ForEach(node Node, f func(Node)) {
	g.Until(node, func(n Node) bool {
		f(n)
		return true
	})
}

// Until is like ForEach, but returns immediately if f
// returns false.
func (g *Graph) Until(node Node, f func(Node) bool) {
	stk := []Node{g.Sub(node)}
	for len(stk) > 0 {
		n := stk[len(stk)-1]
		stk = stk[:len(stk)-1]
		if n == Nil {
			continue
		}
		if !f(n) {
			return
		}
		// Next sibling goes below the first descendant
		// so that the subtree is visited first.
		stk = append(stk, g.at(n).next, g.at(n).sub)
	}
}

// SetWorld sets the global world transform.
// It applies to every root of g.
func (g *Graph) SetWorld(world *linear.M4) {
	g.init = true
	g.world = *world
}

// World recomputes and returns the world transform of node.
// The world transforms of node's ancestors are refreshed as
// well. If node is Nil, it returns the global world transform.
// The returned pointer is only valid until g is modified.
func (g *Graph) World(node Node) *linear.M4 {
	if node == Nil {
		return g.global()
	}
	g.check(node)
	var buf [16]Node
	chain := buf[:0]
	for n := node; n != Nil; n = g.at(n).parent {
		chain = append(chain, n)
	}
	w := g.global()
	for i := len(chain) - 1; i >= 0; i-- {
		d := &g.data[g.at(chain[i]).data]
		d.world.Mul(w, d.local.Local())
		w = &d.world
	}
	return w
}

// Update recomputes the world transforms of every node in g.
func (g *Graph) Update() {
	w := g.global()
	g.ForEach(Nil, func(n Node) {
		nd := g.at(n)
		anc := w
		if nd.parent != Nil {
			anc = &g.data[g.at(nd.parent).data].world
		}
		d := &g.data[nd.data]
		d.world.Mul(anc, d.local.Local())
	})
}

// Position returns the world-space position of node
// (i.e., the translation of its world transform).
func (g *Graph) Position(node Node) linear.V3 {
	w := g.World(node)
	return linear.V3{w[3][0], w[3][1], w[3][2]}
}
