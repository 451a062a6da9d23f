// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package highlight

// CmpFunc is the type of comparison functions.
type CmpFunc int

// Comparison functions.
const (
	CNever CmpFunc = iota
	CLess
	CEqual
	CLessEqual
	CGreater
	CNotEqual
	CGreaterEqual
	CAlways
)

// StencilOp is the type of stencil operations.
type StencilOp int

// Stencil operations.
const (
	SKeep StencilOp = iota
	SZero
	SReplace
	SIncClamp
	SDecClamp
	SInvert
	SIncWrap
	SDecWrap
)

// Stencil defines the stencil test of a material.
// DSFail holds the operations for depth fail and stencil
// fail, in that order.
type Stencil struct {
	Test      bool
	Cmp       CmpFunc
	Ref       uint32
	ReadMask  uint32
	WriteMask uint32
	DSFail    [2]StencilOp
	Pass      StencilOp
}

// Material describes how an overlay is drawn.
// It is plain data for the renderer to consume.
type Material struct {
	Name       string
	Color      [4]float32
	ColorWrite bool
	DepthTest  bool
	DepthWrite bool
	Stencil    Stencil
}

// Pass identifies one of the two overlay passes.
type Pass int

// Passes.
const (
	// WritePass marks the part's silhouette in the
	// stencil buffer.
	WritePass Pass = iota
	// OutlinePass draws the enlarged copy that produces
	// the outline.
	OutlinePass
)

// String implements fmt.Stringer.
func (p Pass) String() string {
	switch p {
	case WritePass:
		return "write"
	case OutlinePass:
		return "outline"
	default:
		return "!highlight.Pass"
	}
}

// OutlineScale is the scale applied to the outline copy.
const OutlineScale = 1.03

// WriteMaterial returns the material of the stencil write
// pass. Every fragment passes and stores ref.
func WriteMaterial(ref uint32) Material {
	return Material{
		Name:       "outline-write",
		ColorWrite: true,
		DepthTest:  true,
		DepthWrite: true,
		Stencil: Stencil{
			Test:      true,
			Cmp:       CAlways,
			Ref:       ref,
			ReadMask:  0xff,
			WriteMask: 0xff,
			DSFail:    [2]StencilOp{SKeep, SKeep},
			Pass:      SReplace,
		},
	}
}

// OutlineMaterial returns the material of the outline pass.
// Fragments are compared for equality against ref and the
// stencil buffer is left unchanged.
func OutlineMaterial(ref uint32, color [4]float32) Material {
	return Material{
		Name:       "outline-draw",
		Color:      color,
		ColorWrite: true,
		Stencil: Stencil{
			Test:     true,
			Cmp:      CEqual,
			Ref:      ref,
			ReadMask: 0xff,
			DSFail:   [2]StencilOp{SKeep, SKeep},
			Pass:     SKeep,
		},
	}
}
