// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package command classifies free-text input into lists of
// animation commands.
package command

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Kind is the type of animation commands.
type Kind int

// Command kinds.
const (
	Frame Kind = iota
	Highlight
	Open
	Close
	Reset
)

var kindNames = [...]string{
	Frame:     "frame",
	Highlight: "highlight",
	Open:      "open",
	Close:     "close",
	Reset:     "reset",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "!command.Kind"
	}
	return kindNames[k]
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, bool) {
	for i, x := range kindNames {
		if strings.EqualFold(s, x) {
			return Kind(i), true
		}
	}
	return 0, false
}

// Command is a single animation command that targets the
// part named Target.
type Command struct {
	Kind   Kind
	Target string
}

// Side is the type of side modifiers.
type Side int

// Sides.
const (
	Left Side = iota
	Right
)

// String implements fmt.Stringer.
func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "!command.Side"
	}
}

// Classifier maps text to one of two fixed command tables.
// The text is searched for the first trigger keyword; the
// last side modifier that precedes it selects the table.
// Left is used when no modifier is present.
type Classifier struct {
	Triggers []string
	Left     []Command
	Right    []Command
}

// Default returns the classifier for the damper animations.
func Default() *Classifier {
	return &Classifier{
		Triggers: []string{"damper"},
		Left: []Command{
			{Frame, "damper_left"},
			{Highlight, "damper_left"},
			{Open, "damper_left"},
		},
		Right: []Command{
			{Frame, "damper_right"},
			{Highlight, "damper_right"},
			{Open, "damper_right"},
		},
	}
}

// Tokens normalizes text into a list of case-folded words.
// Punctuation and symbols separate words.
func Tokens(text string) []string {
	text = cases.Fold().String(text)
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// Classify returns the command table that text selects.
// ok is false if text contains none of c.Triggers.
// The returned slice must not be modified.
func (c *Classifier) Classify(text string) (cmds []Command, side Side, ok bool) {
	toks := Tokens(text)
	trig := -1
	for i, t := range toks {
		if c.isTrigger(t) {
			trig = i
			break
		}
	}
	if trig < 0 {
		return
	}
	side = Left
	for _, t := range toks[:trig] {
		switch t {
		case "left":
			side = Left
		case "right":
			side = Right
		}
	}
	if side == Right {
		return c.Right, side, true
	}
	return c.Left, side, true
}

func (c *Classifier) isTrigger(tok string) bool {
	fold := cases.Fold()
	for _, x := range c.Triggers {
		if fold.String(x) == tok {
			return true
		}
	}
	return false
}
