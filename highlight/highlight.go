// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package highlight manages outline overlays drawn around
// parts of a scene.
//
// An outline is made of two copies of each mesh under the
// designated part: one that writes the stencil buffer and
// one, enlarged by OutlineScale, that is drawn where the
// stencil test passes. Overlays are inserted into the scene
// as roots so that they do not contribute to the bounds of
// the parts they outline.
package highlight

import (
	"errors"

	"github.com/gviegas/assembly"
	"github.com/gviegas/assembly/linear"
	"github.com/gviegas/assembly/node"
)

const prefix = "highlight: "

// Overlay is a part spawned by a Manager.
type Overlay struct {
	// Source is the node whose mesh was copied.
	Source node.Node
	// Node is the overlay part in the scene.
	Node     node.Node
	Pass     Pass
	Material *Material

	// Parts identified by Source and Node when spawned.
	src  *assembly.Part
	part *assembly.Part
}

// Manager tracks the overlays it spawns in a scene.
// A Manager must not be used concurrently.
type Manager struct {
	s        *assembly.Scene
	write    Material
	outline  Material
	overlays []Overlay
}

// NewManager creates a manager for s.
// color is the outline color and ref is the stencil
// reference value.
func NewManager(s *assembly.Scene, color [4]float32, ref uint32) *Manager {
	return &Manager{
		s:       s,
		write:   WriteMaterial(ref),
		outline: OutlineMaterial(ref, color),
	}
}

// Outline spawns overlays for every node with a mesh in the
// subtree rooted at target (target included).
// It returns the number of overlays created.
func (m *Manager) Outline(target node.Node) (int, error) {
	if !m.s.Valid(target) {
		return 0, errors.New(prefix + "invalid target node")
	}
	var srcs []node.Node
	if m.s.Part(target).Mesh != nil {
		srcs = append(srcs, target)
	}
	m.s.ForEach(target, func(n node.Node) {
		if m.s.Part(n).Mesh != nil {
			srcs = append(srcs, n)
		}
	})
	if len(srcs) == 0 {
		return 0, errors.New(prefix + "target has no mesh")
	}
	n := len(m.overlays)
	for _, src := range srcs {
		sp := m.s.Part(src)
		for _, x := range [...]struct {
			pass Pass
			mat  *Material
		}{
			{WritePass, &m.write},
			{OutlinePass, &m.outline},
		} {
			p := assembly.NewPart(sp.Name+"#"+x.pass.String(), sp.Mesh.Clone())
			ov := Overlay{
				Source:   src,
				Node:     m.s.Insert(p, node.Nil),
				Pass:     x.pass,
				Material: x.mat,
				src:      sp,
				part:     p,
			}
			m.place(&ov)
			m.overlays = append(m.overlays, ov)
		}
	}
	return len(m.overlays) - n, nil
}

// place sets the local transform of ov's part from the
// current world transform of its source.
func (m *Manager) place(ov *Overlay) {
	w := *m.s.World(ov.Source)
	if ov.Pass == OutlinePass {
		var s linear.M4
		s.Scale(OutlineScale, OutlineScale, OutlineScale)
		w.Mul(&w, &s)
	}
	m.s.Part(ov.Node).SetMatrix(&w)
}

// Sync re-places every overlay to follow its source.
// Overlays whose source was removed from the scene are
// removed as well. Overlays whose part was removed by
// other means are dropped.
func (m *Manager) Sync() {
	ovs := m.overlays[:0]
	for _, ov := range m.overlays {
		switch {
		case !m.owns(&ov):
		case !m.hasSource(&ov):
			m.remove(&ov)
		default:
			m.place(&ov)
			ovs = append(ovs, ov)
		}
	}
	m.overlays = ovs
}

// Clear removes every overlay from the scene and releases
// the copied geometry.
// It returns the number of overlays removed.
func (m *Manager) Clear() (n int) {
	for _, ov := range m.overlays {
		if m.owns(&ov) {
			m.remove(&ov)
			n++
		}
	}
	m.overlays = m.overlays[:0]
	return
}

// owns reports whether ov.Node still identifies the part
// spawned for ov.
func (m *Manager) owns(ov *Overlay) bool {
	return m.s.Valid(ov.Node) && m.s.Part(ov.Node) == ov.part
}

// hasSource reports whether ov.Source still identifies the
// part that ov was copied from.
func (m *Manager) hasSource(ov *Overlay) bool {
	return m.s.Valid(ov.Source) && m.s.Part(ov.Source) == ov.src
}

// remove removes ov's part from the scene and frees its mesh.
// ov.Node must be owned.
func (m *Manager) remove(ov *Overlay) {
	if p := m.s.Remove(ov.Node); p.Mesh != nil {
		p.Mesh.Free()
	}
}

// Len returns the number of tracked overlays.
func (m *Manager) Len() int { return len(m.overlays) }

// Overlays returns the tracked overlays.
// The returned slice must not be modified.
func (m *Manager) Overlays() []Overlay { return m.overlays }
