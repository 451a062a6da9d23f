// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package sceneconf decodes YAML descriptions of assemblies.
package sceneconf

import (
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gviegas/assembly"
	"github.com/gviegas/assembly/bound"
	"github.com/gviegas/assembly/command"
	"github.com/gviegas/assembly/linear"
	"github.com/gviegas/assembly/mesh"
	"github.com/gviegas/assembly/node"
)

// Config is the root of a scene description.
type Config struct {
	// World is the global transform applied to every root.
	World    *Transform `yaml:"world,omitempty"`
	Parts    []Part     `yaml:"parts"`
	Commands *Commands  `yaml:"commands,omitempty"`
}

// Transform describes a local transform.
// Missing fields default to the identity.
type Transform struct {
	Translation *[3]float32 `yaml:"translation,omitempty"`
	Rotation    *Rotation   `yaml:"rotation,omitempty"`
	Scale       *[3]float32 `yaml:"scale,omitempty"`
}

// Rotation is an axis-angle rotation.
// Angle is in degrees.
type Rotation struct {
	Axis  [3]float32 `yaml:"axis"`
	Angle float32    `yaml:"angle"`
}

// Part describes a part and its descendants.
type Part struct {
	Name      string `yaml:"name"`
	Transform `yaml:",inline"`
	// Box is a precomputed local bounding box.
	Box      *Box   `yaml:"box,omitempty"`
	Mesh     *Mesh  `yaml:"mesh,omitempty"`
	Children []Part `yaml:"children,omitempty"`
}

// Box is an axis-aligned box.
type Box struct {
	Min [3]float32 `yaml:"min"`
	Max [3]float32 `yaml:"max"`
}

// Mesh is a single-primitive mesh.
type Mesh struct {
	// Topology is one of point (default), line,
	// line-strip, triangle and triangle-strip.
	Topology  string       `yaml:"topology,omitempty"`
	Positions [][3]float32 `yaml:"positions"`
	Indices   []uint32     `yaml:"indices,omitempty"`
}

// Commands overrides the default command tables.
type Commands struct {
	Triggers []string  `yaml:"triggers"`
	Left     []Command `yaml:"left"`
	Right    []Command `yaml:"right"`
}

// Command is a single command table entry.
type Command struct {
	Kind   string `yaml:"kind"`
	Target string `yaml:"target"`
}

// Decode decodes r into a new Config.
func Decode(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(err, "decoding scene")
	}
	return &c, nil
}

// Load decodes the file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening scene %q", path)
	}
	defer f.Close()
	return Decode(f)
}

// Build creates a scene from c.
func (c *Config) Build() (*assembly.Scene, error) {
	s := assembly.New()
	if c.World != nil {
		var w linear.M4
		if err := c.World.matrix(&w); err != nil {
			return nil, errors.Wrap(err, "world")
		}
		s.SetWorld(&w)
	}
	for i := range c.Parts {
		if err := c.Parts[i].insert(s, node.Nil); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (t *Transform) trs() (tr linear.V3, r linear.Q, sc linear.V3, err error) {
	r.I()
	sc = linear.V3{1, 1, 1}
	if t.Translation != nil {
		tr = *t.Translation
	}
	if t.Scale != nil {
		sc = *t.Scale
	}
	if x := t.Rotation; x != nil {
		axis := linear.V3(x.Axis)
		if axis.Len() == 0 {
			err = errors.New("zero rotation axis")
			return
		}
		axis.Norm(&axis)
		r.Rotate(x.Angle*math.Pi/180, &axis)
	}
	return
}

func (t *Transform) matrix(m *linear.M4) error {
	tr, r, sc, err := t.trs()
	if err != nil {
		return err
	}
	m.TRS(&tr, &r, &sc)
	return nil
}

var topologies = map[string]mesh.Topology{
	"":               mesh.TPoint,
	"point":          mesh.TPoint,
	"line":           mesh.TLine,
	"line-strip":     mesh.TLnStrip,
	"triangle":       mesh.TTriangle,
	"triangle-strip": mesh.TTriStrip,
}

// insert inserts p and its descendants under prev.
func (p *Part) insert(s *assembly.Scene, prev node.Node) error {
	tr, r, sc, err := p.trs()
	if err != nil {
		return errors.Wrapf(err, "part %q", p.Name)
	}
	m, err := p.mesh()
	if err != nil {
		return errors.Wrapf(err, "part %q", p.Name)
	}
	part := assembly.NewPart(p.Name, m)
	part.SetTranslation(tr)
	part.SetRotation(r)
	part.SetScale(sc)
	n := s.Insert(part, prev)
	for i := range p.Children {
		if err := p.Children[i].insert(s, n); err != nil {
			return err
		}
	}
	return nil
}

// mesh creates the mesh of p, if any.
func (p *Part) mesh() (*mesh.Mesh, error) {
	if p.Mesh == nil && p.Box == nil {
		return nil, nil
	}
	pd := mesh.PrimitiveData{Topology: mesh.TPoint}
	if x := p.Mesh; x != nil {
		topo, ok := topologies[x.Topology]
		if !ok {
			return nil, errors.Errorf("unknown topology %q", x.Topology)
		}
		pd.Topology = topo
		pd.Indices = x.Indices
		pd.Positions = make([]linear.V3, len(x.Positions))
		for i, v := range x.Positions {
			pd.Positions[i] = v
		}
	}
	m, err := mesh.New(&mesh.Data{Primitives: []mesh.PrimitiveData{pd}})
	if err != nil {
		return nil, err
	}
	if b := p.Box; b != nil {
		m.SetBounds(bound.Box{Min: b.Min, Max: b.Max})
	}
	return m, nil
}

// Classifier returns the command classifier described by c,
// or command.Default if c has no commands.
func (c *Config) Classifier() (*command.Classifier, error) {
	if c.Commands == nil {
		return command.Default(), nil
	}
	if len(c.Commands.Triggers) == 0 {
		return nil, errors.New("commands: no triggers")
	}
	cl := &command.Classifier{Triggers: c.Commands.Triggers}
	for _, x := range [...]struct {
		src []Command
		dst *[]command.Command
	}{
		{c.Commands.Left, &cl.Left},
		{c.Commands.Right, &cl.Right},
	} {
		for _, cmd := range x.src {
			k, ok := command.ParseKind(cmd.Kind)
			if !ok {
				return nil, errors.Errorf("commands: unknown kind %q", cmd.Kind)
			}
			*x.dst = append(*x.dst, command.Command{Kind: k, Target: cmd.Target})
		}
	}
	return cl, nil
}
