// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/gviegas/assembly"
	"github.com/gviegas/assembly/bound"
	"github.com/gviegas/assembly/highlight"
	"github.com/gviegas/assembly/internal/sceneconf"
	"github.com/gviegas/assembly/linear"
	"github.com/gviegas/assembly/node"
	"github.com/gviegas/assembly/spatial"
)

// Outline overlay settings.
var (
	outlineColor = [4]float32{1, 0.6, 0, 1}
	outlineRef   = uint32(1)
)

// env is the state shared by every action.
type env struct {
	conf  *sceneconf.Config
	scene *assembly.Scene
	query *spatial.Query
}

func load(c *cli.Context) (*env, error) {
	path := c.String(flagScene)
	conf, err := sceneconf.Load(path)
	if err != nil {
		return nil, err
	}
	s, err := conf.Build()
	if err != nil {
		return nil, errors.Wrapf(err, "building scene %q", path)
	}
	logger.Debugw("scene loaded", "path", path, "parts", s.Len())
	return &env{conf, s, spatial.New(s)}, nil
}

// part returns the first node named name.
func (e *env) part(name string) (node.Node, error) {
	n := e.scene.Find(name)
	if n == node.Nil {
		return node.Nil, errors.Errorf("no part named %q", name)
	}
	if m := e.scene.FindAll(name); len(m) > 1 {
		logger.Warnw("part name is not unique", "name", name, "count", len(m))
	}
	return n, nil
}

func checkArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return errors.Errorf("%s: expected %d argument(s), got %d", c.Command.Name, n, c.NArg())
	}
	return nil
}

// partAndPoint parses the <part> <x> <y> <z> arguments.
func (e *env) partAndPoint(c *cli.Context) (n node.Node, p linear.V3, err error) {
	if err = checkArgs(c, 4); err != nil {
		return
	}
	if n, err = e.part(c.Args().Get(0)); err != nil {
		return
	}
	for i := range p {
		var f float64
		f, err = strconv.ParseFloat(c.Args().Get(i+1), 32)
		if err != nil {
			err = errors.Wrapf(err, "%s: coordinate %d", c.Command.Name, i)
			return
		}
		p[i] = float32(f)
	}
	return
}

func formatV3(v linear.V3) string {
	return fmt.Sprintf("%g %g %g", v[0], v[1], v[2])
}

func formatBox(b bound.Box) string {
	return fmt.Sprintf("min %s max %s", formatV3(b.Min), formatV3(b.Max))
}

func treeAction(c *cli.Context) error {
	e, err := load(c)
	if err != nil {
		return err
	}
	var visit func(node.Node, int)
	visit = func(n node.Node, depth int) {
		for ; n != node.Nil; n = e.scene.Next(n) {
			p := e.scene.Part(n)
			mark := ""
			if p.Mesh != nil {
				mark = " *"
			}
			fmt.Fprintf(c.App.Writer, "%s%s%s\n", strings.Repeat("  ", depth), p.Name, mark)
			visit(e.scene.Sub(n), depth+1)
		}
	}
	visit(e.scene.Sub(node.Nil), 0)
	return nil
}

func boundsAction(c *cli.Context) error {
	e, err := load(c)
	if err != nil {
		return err
	}
	n := node.Nil
	switch c.NArg() {
	case 0:
	case 1:
		if n, err = e.part(c.Args().First()); err != nil {
			return err
		}
	default:
		return checkArgs(c, 1)
	}
	fmt.Fprintln(c.App.Writer, formatBox(e.query.Bounds(n)))
	return nil
}

func centerAction(c *cli.Context) error {
	return partV3(c, (*spatial.Query).Center)
}

func sizeAction(c *cli.Context) error {
	return partV3(c, (*spatial.Query).Size)
}

// partV3 prints the result of a single-part query.
func partV3(c *cli.Context, f func(*spatial.Query, node.Node) linear.V3) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	e, err := load(c)
	if err != nil {
		return err
	}
	n, err := e.part(c.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, formatV3(f(e.query, n)))
	return nil
}

// twoParts parses the arguments of queries on two parts.
func (e *env) twoParts(c *cli.Context) (a, b node.Node, err error) {
	if err = checkArgs(c, 2); err != nil {
		return
	}
	if a, err = e.part(c.Args().Get(0)); err != nil {
		return
	}
	b, err = e.part(c.Args().Get(1))
	return
}

func distanceAction(c *cli.Context) error {
	e, err := load(c)
	if err != nil {
		return err
	}
	a, b, err := e.twoParts(c)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%g\n", e.query.Distance(a, b))
	return nil
}

func offsetAction(c *cli.Context) error {
	e, err := load(c)
	if err != nil {
		return err
	}
	src, dst, err := e.twoParts(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, formatV3(e.query.LocalOffset(src, dst)))
	return nil
}

func extremeAction(c *cli.Context) error {
	e, err := load(c)
	if err != nil {
		return err
	}
	n, dir, err := e.partAndPoint(c)
	if err != nil {
		return err
	}
	if dir.Len() == 0 {
		return errors.New("extreme: zero direction")
	}
	fmt.Fprintln(c.App.Writer, formatV3(e.query.Extreme(n, dir)))
	return nil
}

func toLocalAction(c *cli.Context) error {
	e, err := load(c)
	if err != nil {
		return err
	}
	n, p, err := e.partAndPoint(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, formatV3(e.query.WorldToLocal(p, n)))
	return nil
}

func toWorldAction(c *cli.Context) error {
	e, err := load(c)
	if err != nil {
		return err
	}
	n, p, err := e.partAndPoint(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, formatV3(e.query.LocalToWorld(p, n)))
	return nil
}

func classifyAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("classify: no text")
	}
	e, err := load(c)
	if err != nil {
		return err
	}
	cl, err := e.conf.Classifier()
	if err != nil {
		return err
	}
	text := strings.Join(c.Args().Slice(), " ")
	cmds, side, ok := cl.Classify(text)
	if !ok {
		logger.Debugw("no trigger in text", "text", text)
		fmt.Fprintln(c.App.Writer, "no command")
		return nil
	}
	logger.Debugw("text classified", "side", side, "commands", len(cmds))
	for _, x := range cmds {
		if e.scene.Find(x.Target) == node.Nil {
			logger.Warnw("command target not in scene", "kind", x.Kind, "target", x.Target)
		}
		fmt.Fprintf(c.App.Writer, "%s %s\n", x.Kind, x.Target)
	}
	return nil
}

func outlineAction(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	e, err := load(c)
	if err != nil {
		return err
	}
	n, err := e.part(c.Args().First())
	if err != nil {
		return err
	}
	m := highlight.NewManager(e.scene, outlineColor, outlineRef)
	cnt, err := m.Outline(n)
	if err != nil {
		return err
	}
	logger.Debugw("overlays created", "target", c.Args().First(), "count", cnt)
	for _, ov := range m.Overlays() {
		fmt.Fprintf(c.App.Writer, "%s %s %s\n",
			ov.Pass, e.scene.Part(ov.Source).Name, formatBox(e.query.Bounds(ov.Node)))
	}
	return nil
}
